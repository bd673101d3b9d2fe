package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PromptModel is the bubbletea model for a single line of text input
type PromptModel struct {
	title     string
	input     textinput.Model
	fallback  string
	validate  func(string) error
	err       error
	submitted bool
}

// NewPromptModel creates a prompt. An empty answer yields fallback; validate,
// when set, must accept the answer before it is submitted.
func NewPromptModel(title, fallback string, validate func(string) error) PromptModel {
	ti := textinput.New()
	ti.Placeholder = fallback
	ti.Prompt = "> "
	ti.CharLimit = 4096
	ti.Width = 60
	ti.Focus()

	return PromptModel{
		title:    title,
		input:    ti,
		fallback: fallback,
		validate: validate,
	}
}

func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		m.err = nil
		switch key.Type {
		case tea.KeyEnter:
			value := m.Value()
			if m.validate != nil {
				if err := m.validate(value); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.submitted = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m PromptModel) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("? " + m.title))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	if m.err != nil {
		sb.WriteString(selectedStyle.Render("  " + m.err.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString(hintStyle.Render("(enter to confirm, esc to cancel)"))
	sb.WriteString("\n")

	return sb.String()
}

// Value returns the trimmed answer, or the fallback when nothing was typed
func (m PromptModel) Value() string {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		return m.fallback
	}
	return value
}

// Submitted reports whether the answer was confirmed
func (m PromptModel) Submitted() bool {
	return m.submitted
}

// RunPrompt asks for one line of text. ok is false when the user cancelled.
func RunPrompt(title, fallback string, validate func(string) error) (value string, ok bool, err error) {
	p := tea.NewProgram(NewPromptModel(title, fallback, validate))

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	result := finalModel.(PromptModel)
	if !result.Submitted() {
		return "", false, nil
	}
	return result.Value(), true, nil
}
