package tui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"debacademy/internal/model"
	"debacademy/internal/runner"
	"debacademy/internal/ui"
)

// MsgCommandDone reports a live command that has finished.
type MsgCommandDone struct {
	Command  string
	Output   string
	ExitCode int
	Err      error
}

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.DetailsViewport.Width = msg.Width / 2
		m.DetailsViewport.Height = msg.Height - 10 // title, footer, borders
		if m.DetailsViewport.Height < 3 {
			m.DetailsViewport.Height = 3
		}
		return m, nil

	case MsgCommandDone:
		m.Running = false
		if msg.Err != nil {
			m.Log.Warn("command did not run", zap.String("command", msg.Command), zap.Error(msg.Err))
		}
		m.Log.Info("ran command", zap.String("command", msg.Command), zap.Int("exit_code", msg.ExitCode))
		m.setOutput(liveReport(msg))
		return m, nil

	case tea.KeyMsg:
		if m.ShowHelp {
			switch msg.String() {
			case "?", "esc", "q":
				m.ShowHelp = false
				m.HelpScrollY = 0
			case "up", "k":
				if m.HelpScrollY > 0 {
					m.HelpScrollY--
				}
			case "down", "j":
				m.HelpScrollY++
			}
			return m, nil
		}
		if m.Running {
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			return m, tea.Quit
		case "?":
			m.ShowHelp = true
			return m, nil
		case "tab":
			m.RightFocus = !m.RightFocus
			return m, nil
		case "esc", "backspace", "left", "h":
			m.back()
			return m, nil
		case "enter", "right", "l":
			if m.Screen == screenLesson {
				return m.runDemo()
			}
			return m.selectOption()
		case "r":
			if m.Screen == screenLesson {
				return m.runDemo()
			}
		case "d":
			if m.Screen == screenLesson {
				m.explain()
			}
			return m, nil
		case "up", "k":
			if !m.RightFocus {
				m.moveCursor(-1)
				return m, nil
			}
		case "down", "j":
			if !m.RightFocus {
				m.moveCursor(1)
				return m, nil
			}
		}
	}

	if m.RightFocus {
		m.DetailsViewport, cmd = m.DetailsViewport.Update(msg)
	}
	return m, cmd
}

func (m *AppModel) moveCursor(delta int) {
	if m.Screen == screenLesson {
		m.DemoIdx = clamp(m.DemoIdx+delta, len(m.Demos))
		return
	}
	m.SelectedIdx = clamp(m.SelectedIdx+delta, len(m.current().Options))
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// selectOption acts on the highlighted menu option.
func (m AppModel) selectOption() (tea.Model, tea.Cmd) {
	menu := m.current()
	if len(menu.Options) == 0 {
		return m, nil
	}
	opt := menu.Options[m.SelectedIdx]
	m.Log.Debug("menu choice", zap.String("menu", menu.Title), zap.String("option", opt.Label))

	switch opt.Action.Kind {
	case model.ActionExit:
		m.Quitting = true
		return m, tea.Quit
	case model.ActionBack:
		m.back()
	case model.ActionSubmenu:
		m.Stack = append(m.Stack, opt.Action.Submenu)
		m.SelectedIdx = 0
		m.setOutput(m.menuText(opt.Action.Submenu))
	case model.ActionLesson:
		m.openLesson(opt.Label, opt.Action.Steps)
	}
	return m, nil
}

// openLesson splits the steps that apply to this session into notes and
// demos. The menu's outro joins the notes.
func (m *AppModel) openLesson(label string, steps []model.Step) {
	m.Screen = screenLesson
	m.LessonTitle = label
	m.Notes = nil
	m.Demos = nil
	m.DemoIdx = 0
	for _, step := range append(append([]model.Step{}, steps...), m.current().Outro...) {
		if !step.When.Holds(m.Config) {
			continue
		}
		if step.Demo != nil {
			m.Demos = append(m.Demos, *step.Demo)
			continue
		}
		m.Notes = append(m.Notes, step)
	}
	m.setOutput(m.lessonText())
}

// back leaves the open lesson, or else the current submenu. The root menu
// has nowhere to go back to.
func (m *AppModel) back() {
	if m.Screen == screenLesson {
		m.Screen = screenMenu
		m.setOutput(m.menuText(m.current()))
		return
	}
	if len(m.Stack) > 1 {
		m.Stack = m.Stack[:len(m.Stack)-1]
		m.SelectedIdx = 0
		m.setOutput(m.menuText(m.current()))
	}
}

func (m *AppModel) explain() {
	if len(m.Demos) == 0 {
		return
	}
	entry := m.Demos[m.DemoIdx]
	m.setOutput(fmt.Sprintf("%s More details:\n%s\n\n%s Command: %s", model.IconDetails, entry.Description, model.IconCommand, entry.Command))
}

// runDemo simulates the highlighted demo in place, or hands the terminal
// to the shell for a live run.
func (m AppModel) runDemo() (tea.Model, tea.Cmd) {
	if len(m.Demos) == 0 {
		return m, nil
	}
	entry := m.Demos[m.DemoIdx]

	if m.Config.Simulate() {
		var buf bytes.Buffer
		sim := runner.NewExecutor(m.Config, nil, &buf, ui.NewPalette(&buf, true), m.Log)
		sim.Execute(context.Background(), entry.Command, entry.SimulatedOutput)
		m.setOutput(buf.String())
		return m, nil
	}

	m.Running = true
	return m, m.execLive(entry.Command)
}

func (m AppModel) execLive(command string) tea.Cmd {
	adapted := runner.Adapt(m.Config.Mode, command)
	c := &capturedCmd{Cmd: m.Shell.Command(context.Background(), adapted)}
	return tea.Exec(c, func(err error) tea.Msg {
		code, err := runner.ExitCode(err)
		return MsgCommandDone{Command: adapted, Output: c.out.String(), ExitCode: code, Err: err}
	})
}

// capturedCmd lets bubbletea hand the terminal to the command while keeping
// a copy of what it printed for the details panel.
type capturedCmd struct {
	*exec.Cmd
	out lockedBuffer
}

func (c *capturedCmd) SetStdin(r io.Reader) { c.Cmd.Stdin = r }

func (c *capturedCmd) SetStdout(w io.Writer) { c.Cmd.Stdout = io.MultiWriter(w, &c.out) }

func (c *capturedCmd) SetStderr(w io.Writer) { c.Cmd.Stderr = io.MultiWriter(w, &c.out) }

// lockedBuffer is written by the stdout and stderr copy goroutines of one
// command at once.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func liveReport(msg MsgCommandDone) string {
	var buf bytes.Buffer
	pal := ui.NewPalette(&buf, true)
	fmt.Fprintf(&buf, "%s Running: %s\n", model.IconRun, msg.Command)
	fmt.Fprintln(&buf, ui.Rule)
	buf.WriteString(msg.Output)
	if msg.Output != "" && msg.Output[len(msg.Output)-1] != '\n' {
		buf.WriteByte('\n')
	}
	runner.Report(&buf, pal, msg.ExitCode)
	return buf.String()
}
