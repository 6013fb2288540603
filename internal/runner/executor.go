package runner

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"debacademy/internal/model"
	"debacademy/internal/ui"
)

// SimulatedPlaceholder is printed when a simulated command has no canned output.
const SimulatedPlaceholder = "[Simulated - command would execute safely]"

// Outcome describes what happened to one executed or simulated command.
type Outcome struct {
	Command   string
	Simulated bool
	ExitCode  int
}

// OK reports whether the command succeeded.
func (o Outcome) OK() bool {
	return o.ExitCode == 0
}

// Adapt rewrites command for the configured distribution. Every command used
// by the lessons behaves the same on Debian and Ubuntu, so this is the
// identity for now.
func Adapt(mode model.Mode, command string) string {
	return command
}

// Executor prints simulated output or hands commands to the host, depending
// on the session mode.
type Executor struct {
	cfg    model.Config
	runner HostRunner
	out    io.Writer
	pal    ui.Palette
	log    *zap.Logger
}

// NewExecutor creates an Executor. runner may be nil when cfg simulates.
func NewExecutor(cfg model.Config, runner HostRunner, out io.Writer, pal ui.Palette, log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{cfg: cfg, runner: runner, out: out, pal: pal, log: log}
}

// Execute runs or simulates command. A failing command is reported to the
// user and never returned as an error.
func (e *Executor) Execute(ctx context.Context, command, simulatedOutput string) Outcome {
	verb := "Running"
	if e.cfg.Simulate() {
		verb = "Simulating"
	}
	fmt.Fprintln(e.out)
	fmt.Fprintln(e.out, e.pal.Yellow.Render(fmt.Sprintf("%s %s: %s", model.IconRun, verb, command)))
	fmt.Fprintln(e.out, e.pal.Yellow.Render(ui.Rule))

	if e.cfg.Simulate() {
		return e.simulate(command, simulatedOutput)
	}
	return e.run(ctx, command)
}

func (e *Executor) simulate(command, simulatedOutput string) Outcome {
	if simulatedOutput != "" {
		fmt.Fprintln(e.out, simulatedOutput)
	} else {
		fmt.Fprintln(e.out, e.pal.Cyan.Render(SimulatedPlaceholder))
	}
	fmt.Fprintln(e.out, ui.Rule)
	fmt.Fprintln(e.out, e.pal.Green.Render(model.IconOK+" Simulation completed successfully!"))
	e.log.Debug("simulated command", zap.String("command", command))
	return Outcome{Command: command, Simulated: true}
}

func (e *Executor) run(ctx context.Context, command string) Outcome {
	adapted := Adapt(e.cfg.Mode, command)

	code, err := e.runner.Run(ctx, adapted)
	if err != nil {
		e.log.Warn("command did not run", zap.String("command", adapted), zap.Error(err))
	}
	outcome := Outcome{Command: adapted, ExitCode: code}
	if outcome.OK() {
		e.log.Info("ran command", zap.String("command", adapted))
	} else {
		e.log.Info("command reported issues", zap.String("command", adapted), zap.Int("exit_code", code))
	}

	Report(e.out, e.pal, code)
	return outcome
}

// Report writes the closing rule and verdict for a live command that exited
// with code.
func Report(w io.Writer, pal ui.Palette, code int) {
	fmt.Fprintln(w, ui.Rule)
	fmt.Fprintln(w, StatusLine(pal, code))
	if code != 0 {
		fmt.Fprintln(w, "This might be normal depending on your system setup.")
	}
}

// StatusLine is the coloured verdict printed after a live command.
func StatusLine(pal ui.Palette, code int) string {
	if code == 0 {
		return pal.Green.Render(model.IconOK + " Command completed successfully!")
	}
	return pal.Red.Render(fmt.Sprintf("%s Command had issues (exit code: %d)", model.IconWarning, code))
}
