package academy

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debacademy/internal/lesson"
	"debacademy/internal/model"
	"debacademy/internal/runner"
	"debacademy/internal/ui"
)

type fakeRunner struct {
	code     int
	commands []string
}

func (f *fakeRunner) Run(_ context.Context, command string) (int, error) {
	f.commands = append(f.commands, command)
	return f.code, nil
}

// play configures a session from script and runs it to completion.
func play(t *testing.T, script string, detected string, host runner.HostRunner) (string, error) {
	t.Helper()
	root, err := lesson.Load()
	require.NoError(t, err)

	var out bytes.Buffer
	pal := ui.NewPalette(&out, true)
	p := NewPrompter(strings.NewReader(script), &out, pal)

	cfg, err := Configure(p, &out, pal, ConfigureOptions{DetectedName: detected})
	if err != nil {
		return out.String(), err
	}
	exec := runner.NewExecutor(cfg, host, &out, pal, nil)
	s := NewSession(cfg, root, p, NewDemoRunner(p, exec, &out, pal), &out, pal, nil)
	err = s.Run(context.Background())
	return out.String(), err
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func TestSession_SimulatedUname(t *testing.T) {
	host := &fakeRunner{}
	script := lines(
		"3", "", // simulation mode, continue
		"",  // welcome
		"1", // System Information
		"1", // basic system information
		"1", // run uname -a
		"3", // skip lsb_release
		"3", // skip hostnamectl
		"",  // continue
		"6", // exit
	)

	out, err := play(t, script, "", host)

	require.NoError(t, err)
	assert.Empty(t, host.commands, "simulation must never reach the host")
	assert.Contains(t, out, "Simulating: uname -a")
	assert.Contains(t, out, "Linux debian-server 6.1.0-13-amd64 #1 SMP PREEMPT_DYNAMIC Debian 6.1.55-1 (2023-09-29) x86_64 GNU/Linux")
	assert.Contains(t, out, "Pro tip: Combine commands with pipes!")
	assert.Contains(t, out, "Thanks for learning with us!")
	assert.NotContains(t, out, "Distributor ID: Debian", "skipped commands print nothing")
	assert.Equal(t, 2, strings.Count(out, "What would you like to explore today?"), "main menu shown before and after the lesson")
}

func TestSession_LiveFailureContinues(t *testing.T) {
	host := &fakeRunner{code: 2}
	script := lines(
		"1", "", // Debian live mode
		"",
		"1", "1",
		"1", // run uname -a, fails
		"1", // run lsb_release -a, fails too
		"3",
		"",
		"6",
	)

	out, err := play(t, script, "Debian", host)

	require.NoError(t, err)
	assert.Equal(t, []string{"uname -a", "lsb_release -a"}, host.commands)
	assert.Equal(t, 2, strings.Count(out, "Command had issues (exit code: 2)"))
	warning := strings.Index(out, "exit code: 2")
	next := strings.Index(out, "Command: lsb_release -a")
	assert.Greater(t, next, warning, "the session moves on to the next command after a failure")
	assert.Contains(t, out, "Thanks for learning with us!")
}

func TestSession_ExplainShowsDescription(t *testing.T) {
	script := lines("3", "", "", "2", "1", "2", "3", "3", "", "6")

	out, err := play(t, script, "", &fakeRunner{})

	require.NoError(t, err)
	assert.Contains(t, out, "More details:\nPrint Working Directory - where am I?")
	assert.NotContains(t, out, "Simulating: pwd")
}

func TestSession_BackReturnsWithoutPause(t *testing.T) {
	// File System, Back, then Exit. No continue prompt is consumed in between.
	script := lines("3", "", "", "2", "5", "6")

	out, err := play(t, script, "", &fakeRunner{})

	require.NoError(t, err)
	assert.Contains(t, out, "File System Navigation & Management")
	assert.Equal(t, 2, strings.Count(out, "Press Enter to continue..."), "config and welcome only")
}

func TestSession_ConditionalNotes(t *testing.T) {
	// Packages > Installing and removing, skipping all three commands.
	script := func(mode string) string {
		return lines(mode, "", "", "4", "2", "3", "3", "3", "", "6")
	}

	t.Run("ubuntu live", func(t *testing.T) {
		out, err := play(t, script("2"), "Ubuntu", &fakeRunner{})
		require.NoError(t, err)
		assert.Contains(t, out, "You're on Ubuntu - APT works the same way!")
		assert.Contains(t, out, "These commands require root privileges (sudo)!")
		assert.NotContains(t, out, "SIMULATION MODE")
	})

	t.Run("simulation", func(t *testing.T) {
		out, err := play(t, script("3"), "", &fakeRunner{})
		require.NoError(t, err)
		assert.NotContains(t, out, "You're on Ubuntu")
		assert.NotContains(t, out, "require root privileges")
		assert.Contains(t, out, "SIMULATION MODE: Commands will show example outputs")
	})
}

func TestSession_MainMenuHeader(t *testing.T) {
	out, err := play(t, lines("2", "", "", "6"), "", &fakeRunner{})

	require.NoError(t, err)
	assert.Contains(t, out, "Mode: ubuntu | "+model.IconLive+" Live")
	assert.Contains(t, out, "Mode: Live | System: not detected")
	assert.Contains(t, out, "Choose your adventure (1-6): ")
	assert.Contains(t, out, ui.ClearScreen)
}

func TestSession_InvalidMainMenuChoice(t *testing.T) {
	out, err := play(t, lines("3", "", "", "0", "seven", "6"), "", &fakeRunner{})

	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Please enter a number between 1 and 6: "))
}

func TestSession_InputClosedMidLesson(t *testing.T) {
	out, err := play(t, lines("3", "", "", "1", "1"), "", &fakeRunner{})

	assert.ErrorIs(t, err, ErrInputClosed)
	assert.Contains(t, out, "Command: uname -a")
}
