package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Stage is the step of a command shown by the progress display
type Stage int

const (
	StageLoadFiles Stage = iota
	StageAnalyze
	StageRewrite
)

var stageLabels = map[Stage]string{
	StageLoadFiles: "Loading prompts...",
	StageAnalyze:   "Analyzing prompts...",
	StageRewrite:   "Rewriting prompt...",
}

type (
	stageMsg     Stage
	operationMsg string
	totalMsg     int
	stepMsg      struct{}
	doneMsg      struct{}
)

// model renders a spinner line under an optional progress bar. The bar only
// appears once a total is known.
type model struct {
	stage    Stage
	spinner  spinner.Model
	bar      progress.Model
	op       string
	total    int
	finished int
	quitting bool
}

func newModel(stage Stage, op string) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		stage:   stage,
		spinner: s,
		bar:     progress.New(progress.WithDefaultGradient()),
		op:      op,
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.bar.Width = min(msg.Width-4, 60)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case stageMsg:
		m.stage = Stage(msg)
		m.op = ""
	case operationMsg:
		m.op = string(msg)
	case totalMsg:
		m.total = int(msg)
	case stepMsg:
		m.finished++
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	if m.stage == StageAnalyze && m.total > 0 {
		sb.WriteString(m.bar.ViewAs(float64(m.finished) / float64(m.total)))
		sb.WriteString("\n")
	}
	sb.WriteString(m.spinner.View())
	sb.WriteString(" ")
	if m.op != "" {
		sb.WriteString(m.op)
	} else {
		sb.WriteString(stageLabels[m.stage])
	}
	return sb.String()
}
