package model

import "fmt"

// Version is the application version, overridden at build time via -ldflags.
var Version = "0.3.0"

// Mode selects how demoed commands are handled.
type Mode int

const (
	ModeDebian          Mode = iota // Live commands on a Debian host
	ModeUbuntu                      // Live commands on an Ubuntu host
	ModeSimulatedDebian             // Canned Debian output, nothing is executed
)

// String returns the short prefix used in menu headers.
func (m Mode) String() string {
	switch m {
	case ModeDebian:
		return "debian"
	case ModeUbuntu:
		return "ubuntu"
	case ModeSimulatedDebian:
		return "sim-debian"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Config is the session configuration. It is built once, before any menu is
// shown, and passed by value to everything that needs it.
type Config struct {
	Mode         Mode
	DetectedName string // Best-effort distribution guess, "" if unknown
	PromptPrefix string
}

// NewConfig builds a Config for the given mode.
func NewConfig(mode Mode, detectedName string) Config {
	return Config{
		Mode:         mode,
		DetectedName: detectedName,
		PromptPrefix: mode.String(),
	}
}

// Simulate reports whether commands are simulated instead of executed.
// It is derived from Mode so the two can never disagree.
func (c Config) Simulate() bool {
	return c.Mode == ModeSimulatedDebian
}

// ModeLabel is the human label for the execution mode.
func (c Config) ModeLabel() string {
	if c.Simulate() {
		return "Simulation"
	}
	return "Live"
}
