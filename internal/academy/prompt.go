// Package academy drives the line-based lesson session: reading menu
// choices, configuring the mode, and walking the menu tree.
package academy

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"debacademy/internal/ui"
)

// ErrInputClosed is returned once standard input is exhausted. The session
// cannot continue without input, so callers treat it as the end.
var ErrInputClosed = errors.New("input closed")

var leadingInt = regexp.MustCompile(`^[+-]?[0-9]+`)

// Prompter reads menu choices from a line-oriented input.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	pal ui.Palette
}

// NewPrompter wraps r. Re-prompts are written to w.
func NewPrompter(r io.Reader, w io.Writer, pal ui.Palette) *Prompter {
	return &Prompter{in: bufio.NewReader(r), out: w, pal: pal}
}

// ReadChoice returns the first line whose leading integer lies in
// [1, maxOptions]. Anything else is answered with a re-prompt. The only
// error is ErrInputClosed (or a wrapped read error).
func (p *Prompter) ReadChoice(maxOptions int) (int, error) {
	for {
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if n, ok := ParseLeadingInt(line); ok && n >= 1 && n <= maxOptions {
			return n, nil
		}
		fmt.Fprint(p.out, p.pal.Red.Render(fmt.Sprintf("Please enter a number between 1 and %d: ", maxOptions)))
	}
}

// WaitForEnter shows the continue prompt and consumes one line.
func (p *Prompter) WaitForEnter() error {
	fmt.Fprint(p.out, "\n"+p.pal.Blue.Render("Press Enter to continue..."))
	_, err := p.readLine()
	return err
}

// readLine returns the next line. A final line without a newline is still
// returned; only a read that yields nothing reports ErrInputClosed.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			if line != "" {
				return line, nil
			}
			return "", ErrInputClosed
		}
		return "", errors.Wrap(err, "failed to read input")
	}
	return line, nil
}

// ParseLeadingInt parses the integer at the start of s, after optional
// whitespace, ignoring whatever follows it ("3abc" is 3). Values that do not
// fit in an int are rejected.
func ParseLeadingInt(s string) (int, bool) {
	m := leadingInt.FindString(strings.TrimLeft(s, " \t\r\n\v\f"))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}
