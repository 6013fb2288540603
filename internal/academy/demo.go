package academy

import (
	"context"
	"fmt"
	"io"

	"debacademy/internal/model"
	"debacademy/internal/runner"
	"debacademy/internal/ui"
)

// Demo sub-choices.
const (
	DemoRun = iota + 1
	DemoExplain
	DemoSkip
)

// DemoRunner offers one command at a time: run it, explain it, or skip it.
type DemoRunner struct {
	prompter *Prompter
	exec     *runner.Executor
	out      io.Writer
	pal      ui.Palette
}

// NewDemoRunner creates a DemoRunner.
func NewDemoRunner(p *Prompter, exec *runner.Executor, out io.Writer, pal ui.Palette) *DemoRunner {
	return &DemoRunner{prompter: p, exec: exec, out: out, pal: pal}
}

// Run presents entry and acts on the user's pick.
func (d *DemoRunner) Run(ctx context.Context, entry model.DemoEntry) error {
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, d.pal.Blue.Render(model.IconCommand+" Command: ")+d.pal.Yellow.Render(entry.Command))
	fmt.Fprintln(d.out, d.pal.Green.Render("What it does: "+entry.Description))
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, "Would you like to:")
	fmt.Fprintln(d.out, "1. Run this command now")
	fmt.Fprintln(d.out, "2. Just see the explanation")
	fmt.Fprintln(d.out, "3. Skip to next")

	choice, err := d.prompter.ReadChoice(DemoSkip)
	if err != nil {
		return err
	}

	switch choice {
	case DemoRun:
		d.exec.Execute(ctx, entry.Command, entry.SimulatedOutput)
	case DemoExplain:
		fmt.Fprintln(d.out)
		fmt.Fprintln(d.out, ui.Lines(d.pal.Blue, model.IconDetails+" More details:\n"+entry.Description))
	}
	fmt.Fprintln(d.out)
	return nil
}
