package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Progress drives the progress display from command code. A nil *Progress
// is valid and ignores every call; non-interactive modes get one.
type Progress struct {
	program *tea.Program
	done    chan struct{}
}

// StartProgress shows the progress display on ErrWriter, starting at stage.
// Outside interactive mode it prints nothing and returns nil.
func (ui *UI) StartProgress(stage Stage) *Progress {
	if ui.Mode != OutputModeInteractive {
		return nil
	}
	return ui.run(newModel(stage, ""))
}

// StartSpinner shows a single spinner line with message until Done. Outside
// interactive mode the message is printed once to ErrWriter.
func (ui *UI) StartSpinner(stage Stage, message string) *Progress {
	if ui.Mode != OutputModeInteractive {
		fmt.Fprintln(ui.ErrWriter, message)
		return nil
	}
	return ui.run(newModel(stage, message))
}

func (ui *UI) run(m model) *Progress {
	p := &Progress{
		program: tea.NewProgram(m, tea.WithOutput(ui.ErrWriter)),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(p.done)
		// A failed display must not fail the command.
		_, _ = p.program.Run()
	}()
	return p
}

func (p *Progress) send(msg tea.Msg) {
	if p != nil {
		p.program.Send(msg)
	}
}

// SetStage moves to stage and clears the operation text
func (p *Progress) SetStage(stage Stage) { p.send(stageMsg(stage)) }

// SetOperation replaces the stage label with op
func (p *Progress) SetOperation(op string) { p.send(operationMsg(op)) }

// SetTotal sets how many steps the progress bar counts to
func (p *Progress) SetTotal(n int) { p.send(totalMsg(n)) }

// FileStart shows the file being analyzed
func (p *Progress) FileStart(path string) {
	p.send(operationMsg(fmt.Sprintf("Analyzing %s...", path)))
}

// FileDone advances the progress bar by one
func (p *Progress) FileDone() { p.send(stepMsg{}) }

// Done clears the display and waits for it to exit. Calling it twice is safe.
func (p *Progress) Done() {
	if p == nil {
		return
	}
	p.program.Send(doneMsg{})
	<-p.done
}
