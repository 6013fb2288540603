package model

// ActionKind tags what an Option does when chosen.
type ActionKind int

const (
	ActionSubmenu ActionKind = iota // Open Action.Submenu
	ActionLesson                    // Run Action.Steps in order
	ActionBack                      // Return to the parent menu
	ActionExit                      // End the session
)

// Action is the tagged variant carried by an Option. Only the field matching
// Kind is set.
type Action struct {
	Kind    ActionKind
	Submenu *Menu
	Steps   []Step
}

// Option is one numbered entry of a Menu.
type Option struct {
	Label  string
	Action Action
}

// Menu is a static, numbered list of options plus the text shown around it.
type Menu struct {
	Title   string
	Intro   []Step // Notes printed before the options
	Heading string // Line printed right above the options, e.g. "Would you like to:"
	Options []Option
	Outro   []Step // Notes printed after any lesson of this menu completes
	Prompt  string // Optional "<Prompt> (1-N): " line
	Root    bool   // The root menu loops until Exit; the others run once
}

// DemoEntry is one demonstrated command.
type DemoEntry struct {
	Command         string
	Description     string
	SimulatedOutput string // "" means print the generic placeholder
}

// NoteStyle picks the colour a note is printed in.
type NoteStyle string

const (
	StylePlain  NoteStyle = "plain"
	StyleInfo   NoteStyle = "info"   // blue
	StyleTip    NoteStyle = "tip"    // green
	StyleWarn   NoteStyle = "warn"   // red
	StyleNotice NoteStyle = "notice" // yellow
	StyleAccent NoteStyle = "accent" // cyan
)

// Condition gates a step on the session configuration.
type Condition string

const (
	Always       Condition = ""
	WhenLive     Condition = "live"
	WhenSimulate Condition = "simulate"
	WhenUbuntu   Condition = "ubuntu"
)

// Holds reports whether the condition is met for cfg.
func (c Condition) Holds(cfg Config) bool {
	switch c {
	case WhenLive:
		return !cfg.Simulate()
	case WhenSimulate:
		return cfg.Simulate()
	case WhenUbuntu:
		return cfg.Mode == ModeUbuntu
	default:
		return true
	}
}

// Step is either a command demo (Demo != nil) or a note.
type Step struct {
	Demo  *DemoEntry
	Note  string
	Style NoteStyle
	When  Condition
}

// Demos returns the demo entries of steps, in order.
func Demos(steps []Step) []DemoEntry {
	var out []DemoEntry
	for _, s := range steps {
		if s.Demo != nil {
			out = append(out, *s.Demo)
		}
	}
	return out
}
