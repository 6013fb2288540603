package academy

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"debacademy/internal/detect"
	"debacademy/internal/model"
	"debacademy/internal/ui"
)

// Learning-mode choices, numbered as on the configuration screen.
const (
	ChoiceDebian = iota + 1
	ChoiceUbuntu
	ChoiceSimulate
	ChoiceAuto
)

var modeChoiceNames = map[string]int{
	"debian":   ChoiceDebian,
	"ubuntu":   ChoiceUbuntu,
	"simulate": ChoiceSimulate,
	"sim":      ChoiceSimulate,
	"auto":     ChoiceAuto,
}

// ParseModeChoice maps a --mode value to its choice number. An empty value
// returns 0, meaning "ask the user".
func ParseModeChoice(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}
	if c, ok := modeChoiceNames[s]; ok {
		return c, nil
	}
	return 0, errors.Errorf("unknown mode %q (want debian, ubuntu, simulate or auto)", s)
}

// ResolveMode turns a learning-mode choice into a Mode. Auto picks Ubuntu
// only when detection said so and falls back to Debian otherwise.
func ResolveMode(choice int, detectedName string) model.Mode {
	switch choice {
	case ChoiceUbuntu:
		return model.ModeUbuntu
	case ChoiceSimulate:
		return model.ModeSimulatedDebian
	case ChoiceAuto:
		if strings.Contains(detectedName, detect.Ubuntu) {
			return model.ModeUbuntu
		}
		return model.ModeDebian
	default:
		return model.ModeDebian
	}
}

func confirmation(choice int, mode model.Mode) string {
	if choice == ChoiceAuto {
		if mode == model.ModeUbuntu {
			return "Auto-selected Ubuntu mode based on detection"
		}
		return "Auto-selected Debian mode"
	}
	switch mode {
	case model.ModeUbuntu:
		return "Ubuntu mode: Commands adapted where needed"
	case model.ModeSimulatedDebian:
		return "Simulation mode: Safe Debian practice environment"
	default:
		return "Debian mode: Real commands will be executed"
	}
}

// ConfigureOptions feeds Configure.
type ConfigureOptions struct {
	DetectedName string
	Preset       int // A Choice* value; 0 asks the user
}

// Configure shows the detection screen, asks for the learning mode unless
// one was preset, and returns the session configuration.
func Configure(p *Prompter, out io.Writer, pal ui.Palette, opts ConfigureOptions) (model.Config, error) {
	fmt.Fprint(out, ui.ClearScreen)
	fmt.Fprintln(out, pal.Cyan.Render(model.IconDetect+" System Detection & Configuration"))
	fmt.Fprintln(out, pal.Cyan.Render(strings.Repeat("═", 36)))
	fmt.Fprintln(out)

	if opts.DetectedName != "" {
		fmt.Fprintln(out, pal.Green.Render(fmt.Sprintf("%s Detected: %s system", model.IconTarget, opts.DetectedName)))
	}

	choice := opts.Preset
	if choice < ChoiceDebian || choice > ChoiceAuto {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "This tutorial focuses on Debian system administration.")
		fmt.Fprintln(out, "How would you like to proceed?")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "1. 🐧 I'm on Debian - use real commands")
		fmt.Fprintln(out, "2. 🟠 I'm on Ubuntu - adapt commands when possible")
		fmt.Fprintln(out, "3. 🎭 Simulate Debian environment (safe practice mode)")
		fmt.Fprintln(out, "4. 🤔 I'm not sure - let me choose based on detection")
		fmt.Fprint(out, "\n"+pal.Blue.Render("Choose your learning mode (1-4): "))

		var err error
		if choice, err = p.ReadChoice(ChoiceAuto); err != nil {
			return model.Config{}, err
		}
	}

	mode := ResolveMode(choice, opts.DetectedName)
	cfg := model.NewConfig(mode, opts.DetectedName)

	fmt.Fprintln(out)
	fmt.Fprintln(out, pal.Green.Render(model.IconOK+" "+confirmation(choice, mode)))

	if cfg.Simulate() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.Lines(pal.Yellow, model.IconSimulate+" Simulation Mode Active!\n"+
			"Commands will show realistic Debian outputs without\n"+
			"actually modifying your system. Perfect for safe learning!"))
	}

	if err := p.WaitForEnter(); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}
