package detect

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// DefaultPath is the descriptor file consulted to guess the distribution.
const DefaultPath = "/etc/os-release"

// Names returned by Detect.
const (
	Debian = "Debian"
	Ubuntu = "Ubuntu"
)

// Detect guesses the distribution from the os-release style file at path.
// Every ID= line is looked at in order and the first recognised one wins.
// It returns "" when no line is recognised. The error is only informational:
// a missing or unreadable file is not a failure for callers.
func Detect(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", path)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "ID=") {
			continue
		}
		if name := classify(idValue(line)); name != "" {
			return name, nil
		}
	}
	return "", nil
}

// idValue unquotes the value of an ID= line. A line godotenv rejects is
// matched as written.
func idValue(line string) string {
	vars, err := godotenv.Unmarshal(line)
	if err != nil {
		return strings.TrimPrefix(line, "ID=")
	}
	return vars["ID"]
}

func classify(id string) string {
	switch {
	case strings.Contains(id, "debian"):
		return Debian
	case strings.Contains(id, "ubuntu"):
		return Ubuntu
	default:
		return ""
	}
}
