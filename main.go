package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"debacademy/internal/academy"
	"debacademy/internal/config"
	"debacademy/internal/detect"
	"debacademy/internal/lesson"
	"debacademy/internal/logger"
	"debacademy/internal/model"
	"debacademy/internal/runner"
	"debacademy/internal/tui"
	"debacademy/internal/ui"
)

// settings is the merged result of config.toml and the command line.
type settings struct {
	mode      string
	osRelease string
	logFile   string
	noColor   bool
	tui       bool
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: debacademy [options]\n\n")
		fmt.Fprintf(os.Stderr, "debacademy is an interactive tutor for Debian system administration.\n")
		fmt.Fprintf(os.Stderr, "Pick a topic, read what each command does, then run it for real or\n")
		fmt.Fprintf(os.Stderr, "watch a simulated run that never touches your system.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  debacademy                 # Ask for the learning mode, then start\n")
		fmt.Fprintf(os.Stderr, "  debacademy -m simulate     # Safe practice mode, no questions\n")
		fmt.Fprintf(os.Stderr, "  debacademy -t              # Full-screen browser\n")
		fmt.Fprintf(os.Stderr, "  debacademy --catalog       # List every lesson and command\n")
	}

	modeFlag := pflag.StringP("mode", "m", "", "Learning mode: debian, ubuntu, simulate or auto (asks when empty)")
	osReleaseFlag := pflag.String("os-release", detect.DefaultPath, "OS descriptor file used for detection")
	configFlag := pflag.StringP("config", "c", config.DefaultPath(), "Path to the TOML settings file")
	logFileFlag := pflag.String("log-file", "", "Write a JSON session log to this file")
	tuiFlag := pflag.BoolP("tui", "t", false, "Browse the lessons in a full-screen interface")
	catalogFlag := pflag.BoolP("catalog", "l", false, "Print the lesson catalog and exit")
	noColorFlag := pflag.Bool("no-color", false, "Disable coloured output")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("debacademy version %s\n", model.Version)
		return
	}

	root, err := lesson.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading lessons: %v\n", err)
		os.Exit(1)
	}

	if *catalogFlag {
		lesson.WriteCatalog(os.Stdout, root)
		return
	}

	file, err := config.Load(*configFlag, pflag.Lookup("config").Changed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	s := settings{
		mode:      pick(*modeFlag, file.Mode, pflag.Lookup("mode").Changed),
		osRelease: pick(*osReleaseFlag, file.OSRelease, pflag.Lookup("os-release").Changed),
		logFile:   pick(*logFileFlag, file.LogFile, pflag.Lookup("log-file").Changed),
		noColor:   *noColorFlag || file.NoColor,
		tui:       *tuiFlag || file.TUI,
	}

	preset, err := academy.ParseModeChoice(s.mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logOpts := logger.DefaultOptions()
	logOpts.LogFilePath = s.logFile
	log, err := logger.New(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("session started", zap.String("version", model.Version))

	if err := run(root, s, preset, log); err != nil {
		if errors.Is(err, academy.ErrInputClosed) {
			log.Info("input closed")
			fmt.Fprintln(os.Stderr, "\nInput closed, leaving the academy.")
		} else {
			log.Error("session failed", zap.Error(err))
			fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		}
		log.Sync()
		os.Exit(1)
	}
	log.Info("session finished")
}

// pick prefers the flag when it was given, then the config file value,
// then the flag's default.
func pick(flag, file string, changed bool) string {
	if changed || file == "" {
		return flag
	}
	return file
}

func run(root *model.Menu, s settings, preset int, log *zap.Logger) error {
	detected, err := detect.Detect(s.osRelease)
	if err != nil {
		log.Debug("os detection failed", zap.Error(err))
	}
	log.Debug("detected system", zap.String("name", detected), zap.String("path", s.osRelease))

	pal := ui.NewPalette(os.Stdout, s.noColor)
	prompter := academy.NewPrompter(os.Stdin, os.Stdout, pal)

	cfg, err := academy.Configure(prompter, os.Stdout, pal, academy.ConfigureOptions{
		DetectedName: detected,
		Preset:       preset,
	})
	if err != nil {
		return err
	}
	log.Info("configured", zap.Stringer("mode", cfg.Mode), zap.Bool("simulate", cfg.Simulate()))

	shell := runner.NewShellRunner(runner.StdIO())

	if s.tui {
		return runTuiMode(cfg, root, shell, pal, log)
	}

	executor := runner.NewExecutor(cfg, shell, os.Stdout, pal, log)
	demos := academy.NewDemoRunner(prompter, executor, os.Stdout, pal)
	return academy.NewSession(cfg, root, prompter, demos, os.Stdout, pal, log).Run(context.Background())
}

func runTuiMode(cfg model.Config, root *model.Menu, shell *runner.ShellRunner, pal ui.Palette, log *zap.Logger) error {
	m := tui.InitialModel(cfg, root, shell, pal, log)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "tui failed")
	}
	return nil
}
