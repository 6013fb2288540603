package academy

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/common-nighthawk/go-figure"
	"go.uber.org/zap"

	"debacademy/internal/model"
	"debacademy/internal/ui"
)

// Session walks the menu tree until the user exits.
type Session struct {
	cfg      model.Config
	root     *model.Menu
	prompter *Prompter
	demos    *DemoRunner
	out      io.Writer
	pal      ui.Palette
	log      *zap.Logger
}

// NewSession creates a Session over root.
func NewSession(cfg model.Config, root *model.Menu, p *Prompter, demos *DemoRunner, out io.Writer, pal ui.Palette, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{cfg: cfg, root: root, prompter: p, demos: demos, out: out, pal: pal, log: log}
}

// Run shows the welcome screen and then the main menu until Exit. It only
// fails when input runs out (ErrInputClosed) or cannot be read.
func (s *Session) Run(ctx context.Context) error {
	s.showWelcome()
	if err := s.prompter.WaitForEnter(); err != nil {
		return err
	}
	_, err := s.runMenu(ctx, s.root)
	return err
}

// runMenu shows m and dispatches on the choice. The root menu repeats until
// Exit; any other menu returns to its parent after one choice. exit is true
// once the user asked to leave.
func (s *Session) runMenu(ctx context.Context, m *model.Menu) (exit bool, err error) {
	for {
		s.showMenu(m)
		choice, err := s.prompter.ReadChoice(len(m.Options))
		if err != nil {
			return false, err
		}
		opt := m.Options[choice-1]
		s.log.Debug("menu choice", zap.String("menu", m.Title), zap.String("option", opt.Label))

		switch opt.Action.Kind {
		case model.ActionExit:
			fmt.Fprintln(s.out)
			fmt.Fprintln(s.out, s.pal.Green.Render("Thanks for learning with us! Keep exploring Linux! "+model.IconPenguin))
			return true, nil
		case model.ActionBack:
			return false, nil
		case model.ActionSubmenu:
			exit, err := s.runMenu(ctx, opt.Action.Submenu)
			if err != nil || exit {
				return exit, err
			}
		case model.ActionLesson:
			if err := s.runLesson(ctx, m, opt.Action.Steps); err != nil {
				return false, err
			}
		}

		if !m.Root {
			return false, nil
		}
	}
}

// runLesson plays steps in order, then the menu's outro, then waits.
func (s *Session) runLesson(ctx context.Context, m *model.Menu, steps []model.Step) error {
	for _, step := range steps {
		if !step.When.Holds(s.cfg) {
			continue
		}
		if step.Demo != nil {
			if err := s.demos.Run(ctx, *step.Demo); err != nil {
				return err
			}
			continue
		}
		s.printNote(step)
	}
	for _, step := range m.Outro {
		if step.When.Holds(s.cfg) {
			s.printNote(step)
		}
	}
	return s.prompter.WaitForEnter()
}

func (s *Session) printNote(step model.Step) {
	fmt.Fprintln(s.out, ui.Lines(s.pal.For(step.Style), step.Note))
}

func (s *Session) showMenu(m *model.Menu) {
	fmt.Fprint(s.out, ui.ClearScreen)

	if m.Root {
		label := model.IconLive + " Live"
		if s.cfg.Simulate() {
			label = model.IconSimulate + " Simulation"
		}
		fmt.Fprintln(s.out, s.pal.Yellow.Render(m.Title))
		fmt.Fprintln(s.out, s.pal.Yellow.Render(fmt.Sprintf("Mode: %s | %s", s.cfg.PromptPrefix, label)))
		fmt.Fprintln(s.out)
	} else {
		fmt.Fprintln(s.out, s.pal.Yellow.Render(m.Title))
		fmt.Fprintln(s.out, s.pal.Yellow.Render(strings.Repeat("═", lipgloss.Width(m.Title)+2)))
		fmt.Fprintln(s.out)
		if s.cfg.Simulate() {
			fmt.Fprintln(s.out, s.pal.Cyan.Render(model.IconSimulate+" SIMULATION MODE: Commands will show example outputs without affecting your system"))
			fmt.Fprintln(s.out)
		}
		for _, step := range m.Intro {
			if step.When.Holds(s.cfg) {
				s.printNote(step)
			}
		}
		fmt.Fprintln(s.out)
	}

	style := s.pal.Plain
	if !m.Root {
		style = s.pal.Green
	}
	if m.Heading != "" {
		fmt.Fprintln(s.out, style.Render(m.Heading))
	}
	for i, opt := range m.Options {
		fmt.Fprintln(s.out, style.Render(fmt.Sprintf("%d. %s", i+1, opt.Label)))
	}
	if m.Prompt != "" {
		fmt.Fprint(s.out, "\n"+s.pal.Blue.Render(fmt.Sprintf("%s (1-%d): ", m.Prompt, len(m.Options))))
	}
}

func (s *Session) showWelcome() {
	fmt.Fprint(s.out, ui.ClearScreen)

	banner := figure.NewFigure("Debian", "", true).String()
	box := s.pal.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2).
		Align(lipgloss.Center).
		Render(strings.TrimRight(banner, "\n") + "\n\n" +
			model.IconPenguin + " SysAdmin Academy! " + model.IconPenguin + "\n\n" +
			"Learn essential Linux system administration skills\n" +
			"through hands-on, interactive lessons")
	fmt.Fprintln(s.out, ui.Lines(s.pal.Blue, box))

	system := s.cfg.DetectedName
	if system == "" {
		system = "not detected"
	}
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, ui.Lines(s.pal.Green, "Hey there, future sysadmin! "+model.IconWave+"\n"+
		fmt.Sprintf("Mode: %s | System: %s\n", s.cfg.ModeLabel(), system)+
		"Ready to dive into Debian system administration?\n"+
		"We'll explore real commands, understand what they do, and\n"+
		"build your confidence step by step."))
}
