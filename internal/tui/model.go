package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"debacademy/internal/model"
	"debacademy/internal/runner"
	"debacademy/internal/ui"
)

type screen int

const (
	screenMenu screen = iota
	screenLesson
)

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Config model.Config
	Root   *model.Menu
	Shell  *runner.ShellRunner
	Log    *zap.Logger

	// Navigation
	Stack       []*model.Menu // entered menus, Root first
	Screen      screen
	LessonTitle string
	Notes       []model.Step
	Demos       []model.DemoEntry
	SelectedIdx int // cursor in the current menu
	DemoIdx     int // cursor in the open lesson
	WindowSize  tea.WindowSizeMsg

	// Output
	Running    bool
	OutputText string
	RightFocus bool
	Quitting   bool

	// Help
	ShowHelp    bool
	HelpScrollY int

	// Components
	DetailsViewport viewport.Model

	styles styles
}

// InitialModel returns the model positioned on root. Colours follow pal's
// renderer; a zero Palette uses lipgloss' default renderer.
func InitialModel(cfg model.Config, root *model.Menu, shell *runner.ShellRunner, pal ui.Palette, log *zap.Logger) AppModel {
	if log == nil {
		log = zap.NewNop()
	}
	if shell == nil {
		shell = runner.NewShellRunner(runner.IOBindings{})
	}
	m := AppModel{
		Config:          cfg,
		Root:            root,
		Shell:           shell,
		Log:             log,
		Stack:           []*model.Menu{root},
		DetailsViewport: viewport.New(60, 20),
		styles:          newStyles(pal.Renderer),
	}
	m.setOutput(m.menuText(root))
	return m
}

func (m *AppModel) current() *model.Menu {
	return m.Stack[len(m.Stack)-1]
}

func (m *AppModel) setOutput(text string) {
	m.OutputText = text
	m.DetailsViewport.SetContent(text)
	m.DetailsViewport.GotoTop()
}
