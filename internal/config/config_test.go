package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
mode = "simulate"
os_release = "/tmp/os-release"
log_file = "/tmp/academy.log"
no_color = true
`)

	f, err := Load(path, true)

	require.NoError(t, err)
	assert.Equal(t, File{
		Mode:      "simulate",
		OSRelease: "/tmp/os-release",
		LogFile:   "/tmp/academy.log",
		NoColor:   true,
	}, f)
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	f, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, File{}, f)

	_, err = Load(path, true)
	assert.Error(t, err, "a file named on the command line must exist")

	f, err = Load("", false)
	require.NoError(t, err)
	assert.Equal(t, File{}, f)
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, "mode = \n")

	_, err := Load(path, false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "debacademy", "config.toml"), DefaultPath())
}
