package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	normalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	checkedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	uncheckedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle     = lipgloss.NewStyle().Bold(true)
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// MenuOption represents a menu choice
type MenuOption struct {
	Label string
	Value string
}

// MenuModel is the bubbletea model for a single-choice menu
type MenuModel struct {
	title    string
	options  []MenuOption
	cursor   int
	selected string
}

// NewMenuModel creates a new menu
func NewMenuModel(title string, options []MenuOption) MenuModel {
	return MenuModel{
		title:   title,
		options: options,
	}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.options) > 0 {
				m.selected = m.options[m.cursor].Value
			}
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m MenuModel) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("? " + m.title))
	sb.WriteString("\n\n")

	for i, opt := range m.options {
		cursor := "  "
		style := normalStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedStyle
		}
		sb.WriteString(fmt.Sprintf("%s%s\n", cursor, style.Render(opt.Label)))
	}

	sb.WriteString(hintStyle.Render("\n(up/down to navigate, enter to select, q to quit)"))
	sb.WriteString("\n")
	return sb.String()
}

// Selected returns the selected value, empty when cancelled
func (m MenuModel) Selected() string {
	return m.selected
}

// RunMenu displays the menu and returns the selection
func RunMenu(title string, options []MenuOption) (string, error) {
	p := tea.NewProgram(NewMenuModel(title, options))

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	return finalModel.(MenuModel).Selected(), nil
}
