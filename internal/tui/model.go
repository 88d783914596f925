package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tubesum/tubesum/internal/pipeline"
)

// progressMsg relays one pipeline stage update to the interface loop
type progressMsg struct {
	message string
}

// doneMsg carries the job outcome back to the interface loop
type doneMsg struct {
	result *pipeline.Result
	err    error
}

type model struct {
	spinner spinner.Model
	url     string
	stages  []string
	current string
	done    bool
	result  *pipeline.Result
	err     error
}

func newModel(url string) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		spinner: s,
		url:     url,
		current: "Starting",
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || (m.done && msg.String() == "q") {
			return m, tea.Quit
		}
		return m, nil

	case progressMsg:
		if m.current != "" {
			m.stages = append(m.stages, m.current)
		}
		m.current = msg.message
		return m, nil

	case doneMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("tubesum") + "  " + stageStyle.Render(m.url) + "\n\n")

	for _, stage := range m.stages {
		b.WriteString(doneStyle.Render("  ✓ ") + stageStyle.Render(stage) + "\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("  ✗ "+m.err.Error()) + "\n")
	case m.done && m.result != nil:
		b.WriteString(doneStyle.Render("  ✓ Done in "+m.result.Elapsed.Round(time.Second).String()) + "\n\n")
		b.WriteString("  Summary: " + pathStyle.Render(m.result.MarkdownPath) + "\n")
		if m.result.DocxPath != "" {
			b.WriteString("  Docx:    " + pathStyle.Render(m.result.DocxPath) + "\n")
		}
	default:
		b.WriteString("  " + m.spinner.View() + stageStyle.Render(m.current) + "\n")
	}

	return b.String()
}

// Run drives the pipeline from an interactive progress view. The job runs
// in its own goroutine; the interface thread only consumes messages.
func Run(ctx context.Context, job pipeline.Job, build func(pipeline.ProgressFunc) pipeline.Pipeline) (*pipeline.Result, error) {
	prog := tea.NewProgram(newModel(job.URL))

	go func() {
		p := build(func(_, message string) {
			prog.Send(progressMsg{message: message})
		})
		result, err := p.Run(ctx, job)
		prog.Send(doneMsg{result: result, err: err})
	}()

	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("interface error: %w", err)
	}

	m := final.(model)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}
