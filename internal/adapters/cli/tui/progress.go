package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// StepStatus represents the state of a progress step
type StepStatus int

const (
	StepPending StepStatus = iota
	StepRunning
	StepComplete
	StepSkipped
	StepError
)

// ProgressStep represents a single step in the progress
type ProgressStep struct {
	Name    string
	Status  StepStatus
	Total   int64 // total bytes, only for download steps
	Current int64
	Error   string
}

// Output is a labelled result line printed by Complete
type Output struct {
	Label string
	Value string
}

// ProgressDisplay manages multi-step progress output
type ProgressDisplay struct {
	out        io.Writer
	steps      []ProgressStep
	spinnerIdx int
	enabled    bool
	mu         sync.Mutex
	lastRender time.Time
	rendered   bool
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const barWidth = 20

// ProgressEnabled reports whether redrawing progress on w makes sense
func ProgressEnabled(w io.Writer, quiet bool) bool {
	if quiet {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// NewProgressDisplay creates a progress display writing to out. A disabled
// display tracks state but prints nothing.
func NewProgressDisplay(out io.Writer, steps []string, enabled bool) *ProgressDisplay {
	pd := &ProgressDisplay{
		out:     out,
		steps:   make([]ProgressStep, len(steps)),
		enabled: enabled,
	}
	for i, name := range steps {
		pd.steps[i] = ProgressStep{Name: name, Status: StepPending}
	}
	return pd
}

// StartStep marks a step as running. Earlier steps still running are
// completed, earlier pending ones are skipped.
func (p *ProgressDisplay) StartStep(index int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index < 0 || index >= len(p.steps) {
		return
	}
	for i := 0; i < index; i++ {
		switch p.steps[i].Status {
		case StepRunning:
			p.steps[i].Status = StepComplete
		case StepPending:
			p.steps[i].Status = StepSkipped
		}
	}
	p.steps[index].Status = StepRunning
	p.render()
}

// CompleteStep marks a step as complete
func (p *ProgressDisplay) CompleteStep(index int) {
	p.setStatus(index, StepComplete, "")
}

// FailStep marks a step as failed
func (p *ProgressDisplay) FailStep(index int, err string) {
	p.setStatus(index, StepError, err)
}

// FailRunning marks whichever step is running as failed
func (p *ProgressDisplay) FailRunning(err string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.steps {
		if p.steps[i].Status == StepRunning {
			p.steps[i].Status = StepError
			p.steps[i].Error = err
		}
	}
	p.render()
}

// CompleteAll marks every running step complete and every pending one skipped
func (p *ProgressDisplay) CompleteAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.steps {
		switch p.steps[i].Status {
		case StepRunning:
			p.steps[i].Status = StepComplete
		case StepPending:
			p.steps[i].Status = StepSkipped
		}
	}
	p.render()
}

func (p *ProgressDisplay) setStatus(index int, status StepStatus, err string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index >= 0 && index < len(p.steps) {
		p.steps[index].Status = status
		p.steps[index].Error = err
		p.render()
	}
}

// Status returns the current status of a step
func (p *ProgressDisplay) Status(index int) StepStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index < 0 || index >= len(p.steps) {
		return StepPending
	}
	return p.steps[index].Status
}

// UpdateProgress updates download progress for a step
func (p *ProgressDisplay) UpdateProgress(index int, current, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index >= 0 && index < len(p.steps) {
		p.steps[index].Current = current
		p.steps[index].Total = total
		// Throttle renders to avoid flickering
		if time.Since(p.lastRender) > 100*time.Millisecond {
			p.render()
		}
	}
}

// Tick advances the spinner animation
func (p *ProgressDisplay) Tick() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.spinnerIdx = (p.spinnerIdx + 1) % len(spinnerFrames)
	p.render()
}

func (p *ProgressDisplay) render() {
	if !p.enabled {
		return
	}

	p.lastRender = time.Now()

	if p.rendered {
		fmt.Fprintf(p.out, "\033[%dA", len(p.steps)) // move up
		fmt.Fprint(p.out, "\033[J")                  // clear to end
	}

	total := len(p.steps)
	for i, step := range p.steps {
		fmt.Fprintf(p.out, "[%d/%d] %s... %s\n", i+1, total, step.Name, p.statusText(step))
	}

	p.rendered = true
}

func (p *ProgressDisplay) statusText(step ProgressStep) string {
	switch step.Status {
	case StepRunning:
		if step.Total > 0 {
			return fmt.Sprintf("%s %s / %s",
				renderProgressBar(step.Current, step.Total, barWidth),
				FormatSize(step.Current),
				FormatSize(step.Total))
		}
		return spinnerFrames[p.spinnerIdx]
	case StepComplete:
		return "✓"
	case StepSkipped:
		return "-"
	case StepError:
		return "✗ " + step.Error
	default:
		return " "
	}
}

// renderProgressBar draws [=====>    ]; a full bar has no head
func renderProgressBar(current, total int64, width int) string {
	if total <= 0 || current <= 0 {
		return "[" + strings.Repeat(" ", width) + "]"
	}
	if current >= total {
		return "[" + strings.Repeat("=", width) + "]"
	}

	filled := int(current * int64(width) / total)
	if filled >= width {
		filled = width - 1
	}
	return "[" + strings.Repeat("=", filled) + ">" + strings.Repeat(" ", width-filled-1) + "]"
}

// Complete prints the final success message
func (p *ProgressDisplay) Complete(outputs []Output) {
	if !p.enabled {
		return
	}

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "✓ Complete!")
	for _, o := range outputs {
		fmt.Fprintf(p.out, "  %s: %s\n", o.Label, o.Value)
	}
}

// StartSpinner ticks the spinner in the background. The returned stop func
// blocks until the last tick has been drawn.
func (p *ProgressDisplay) StartSpinner() (stop func()) {
	if !p.enabled {
		return func() {}
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p.Tick()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}
