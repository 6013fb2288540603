package tui

import (
	"io"
	"os/exec"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debacademy/internal/lesson"
	"debacademy/internal/model"
	"debacademy/internal/runner"
	"debacademy/internal/ui"
)

func newTestModel(t *testing.T, mode model.Mode) AppModel {
	t.Helper()
	root, err := lesson.Load()
	require.NoError(t, err)
	return InitialModel(model.NewConfig(mode, ""), root, nil, ui.Palette{}, nil)
}

func press(t *testing.T, m AppModel, keys ...string) (AppModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(AppModel)
	}
	return m, cmd
}

func TestNavigateIntoLesson(t *testing.T) {
	m := newTestModel(t, model.ModeSimulatedDebian)
	assert.Contains(t, m.OutputText, "System: not detected")

	m, _ = press(t, m, "enter")
	require.Len(t, m.Stack, 2)
	assert.Contains(t, m.current().Title, "System Information")
	assert.Contains(t, m.OutputText, "SIMULATION MODE")

	m, _ = press(t, m, "enter")
	assert.Equal(t, screenLesson, m.Screen)
	assert.Equal(t, "See basic system information", m.LessonTitle)
	require.Len(t, m.Demos, 3)
	assert.Equal(t, "uname -a", m.Demos[0].Command)
	assert.Contains(t, m.OutputText, "Pro tip", "the topic footer shows with the lesson")
}

func TestCursorStaysInRange(t *testing.T) {
	m := newTestModel(t, model.ModeSimulatedDebian)

	m, _ = press(t, m, "up", "up")
	assert.Equal(t, 0, m.SelectedIdx)

	m, _ = press(t, m, "down", "down", "down", "down", "down", "down", "down", "down")
	assert.Equal(t, len(m.Root.Options)-1, m.SelectedIdx)
}

func TestSimulatedRun(t *testing.T) {
	m := newTestModel(t, model.ModeSimulatedDebian)
	m, _ = press(t, m, "enter", "enter")

	m, cmd := press(t, m, "r")

	assert.Nil(t, cmd, "simulation never schedules a process")
	assert.False(t, m.Running)
	assert.Contains(t, m.OutputText, "Simulating: uname -a")
	assert.Contains(t, m.OutputText, "Linux debian-server 6.1.0-13-amd64")
	assert.Contains(t, m.OutputText, "Simulation completed successfully!")
}

func TestLiveRunReportsExitCode(t *testing.T) {
	m := newTestModel(t, model.ModeDebian)
	m, _ = press(t, m, "enter", "enter", "down")

	m, cmd := press(t, m, "enter")
	require.NotNil(t, cmd)
	assert.True(t, m.Running)

	// Keys are ignored while the terminal belongs to the command.
	m, _ = press(t, m, "up")
	assert.Equal(t, 1, m.DemoIdx)

	next, _ := m.Update(MsgCommandDone{Command: "lsb_release -a", Output: "sh: lsb_release: not found", ExitCode: 127})
	m = next.(AppModel)

	assert.False(t, m.Running)
	assert.Contains(t, m.OutputText, "Running: lsb_release -a")
	assert.Contains(t, m.OutputText, "sh: lsb_release: not found\n")
	assert.Contains(t, m.OutputText, "Command had issues (exit code: 127)")
	assert.Contains(t, m.OutputText, "This might be normal depending on your system setup.")
}

func TestExplain(t *testing.T) {
	m := newTestModel(t, model.ModeSimulatedDebian)
	m, _ = press(t, m, "down", "enter", "enter", "d")

	assert.Contains(t, m.OutputText, "More details:\nPrint Working Directory - where am I?")
}

func TestBackNavigation(t *testing.T) {
	m := newTestModel(t, model.ModeSimulatedDebian)
	m, _ = press(t, m, "enter", "enter")
	require.Equal(t, screenLesson, m.Screen)

	m, _ = press(t, m, "esc")
	assert.Equal(t, screenMenu, m.Screen)
	assert.Len(t, m.Stack, 2)

	m, _ = press(t, m, "esc")
	assert.Len(t, m.Stack, 1)

	m, _ = press(t, m, "esc")
	assert.Len(t, m.Stack, 1, "the root menu stays put")
}

func TestBackOption(t *testing.T) {
	m := newTestModel(t, model.ModeSimulatedDebian)
	m, _ = press(t, m, "enter")
	for range m.current().Options {
		m, _ = press(t, m, "down")
	}
	m, _ = press(t, m, "enter")

	assert.Len(t, m.Stack, 1)
	assert.Equal(t, 0, m.SelectedIdx)
}

func TestExitOptionQuits(t *testing.T) {
	m := newTestModel(t, model.ModeSimulatedDebian)
	for range m.Root.Options {
		m, _ = press(t, m, "down")
	}

	m, cmd := press(t, m, "enter")

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Quitting)
	assert.Contains(t, m.View(), "Thanks for learning with us!")
}

func TestConditionalNotes(t *testing.T) {
	open := func(mode model.Mode) AppModel {
		m := newTestModel(t, mode)
		m, _ = press(t, m, "down", "down", "down", "enter", "down", "enter")
		require.Equal(t, "Installing and removing packages", m.LessonTitle)
		return m
	}

	live := open(model.ModeUbuntu)
	assert.Contains(t, live.OutputText, "These commands require root privileges (sudo)!")

	sim := open(model.ModeSimulatedDebian)
	assert.NotContains(t, sim.OutputText, "require root privileges")
}

func TestView(t *testing.T) {
	m := newTestModel(t, model.ModeUbuntu)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(AppModel)

	view := m.View()
	assert.Contains(t, view, "Mode: ubuntu")
	assert.Contains(t, view, "Details")

	m, _ = press(t, m, "?")
	assert.Contains(t, m.View(), "Toggle this help")
	m, _ = press(t, m, "?")
	assert.False(t, m.ShowHelp)
}

func TestCapturedCmdKeepsBothStreams(t *testing.T) {
	script := `i=0; while [ $i -lt 500 ]; do echo out; echo err >&2; i=$((i+1)); done`
	c := &capturedCmd{Cmd: exec.Command(runner.DefaultShell, "-c", script)}
	c.SetStdin(strings.NewReader(""))
	c.SetStdout(io.Discard)
	c.SetStderr(io.Discard)

	require.NoError(t, c.Run())

	out := c.out.String()
	assert.Equal(t, 500, strings.Count(out, "out\n"))
	assert.Equal(t, 500, strings.Count(out, "err\n"))
}

func TestViewHonoursNoColor(t *testing.T) {
	root, err := lesson.Load()
	require.NoError(t, err)
	cfg := model.NewConfig(model.ModeDebian, "")
	size := tea.WindowSizeMsg{Width: 120, Height: 40}

	color := lipgloss.NewRenderer(io.Discard)
	color.SetColorProfile(termenv.ANSI256)
	next, _ := InitialModel(cfg, root, nil, ui.Palette{Renderer: color}, nil).Update(size)
	assert.Contains(t, next.View(), "\x1b[38;5;")

	next, _ = InitialModel(cfg, root, nil, ui.NewPalette(io.Discard, true), nil).Update(size)
	assert.NotContains(t, next.View(), "\x1b[38;")
}
