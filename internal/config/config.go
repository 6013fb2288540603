// Package config reads the optional TOML settings file. Command-line flags
// take precedence over anything found here.
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// File mirrors config.toml.
type File struct {
	Mode      string `toml:"mode"`
	OSRelease string `toml:"os_release"`
	LogFile   string `toml:"log_file"`
	NoColor   bool   `toml:"no_color"`
	TUI       bool   `toml:"tui"`
}

// DefaultPath is $XDG_CONFIG_HOME/debacademy/config.toml, or "" when the
// user config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "debacademy", "config.toml")
}

// Load parses the file at path. A missing file yields the zero File unless
// explicit is set, i.e. the user named the file on the command line.
func Load(path string, explicit bool) (File, error) {
	var f File
	if path == "" {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return f, nil
		}
		return f, errors.Wrapf(err, "failed to read config %s", path)
	}
	if err := toml.Unmarshal(data, &f); err != nil {
		return f, errors.Wrapf(err, "failed to parse config %s", path)
	}
	return f, nil
}
