package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"debacademy/internal/model"
)

// ClearScreen wipes the terminal and homes the cursor.
const ClearScreen = "\033[2J\033[H"

// Rule separates command output from the surrounding text.
const Rule = "───────────────────────────────────────"

// Palette holds the styles used by the line-based screens. The styles are
// bound to the writer they render for, so a pipe or a test buffer gets
// plain text.
type Palette struct {
	Renderer *lipgloss.Renderer

	Green  lipgloss.Style
	Blue   lipgloss.Style
	Yellow lipgloss.Style
	Red    lipgloss.Style
	Cyan   lipgloss.Style
	Plain  lipgloss.Style
}

// NewPalette builds a Palette for w. noColor forces plain output.
func NewPalette(w io.Writer, noColor bool) Palette {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return Palette{
		Renderer: r,
		Green:    r.NewStyle().Foreground(lipgloss.Color("2")),
		Blue:     r.NewStyle().Foreground(lipgloss.Color("4")),
		Yellow:   r.NewStyle().Foreground(lipgloss.Color("3")),
		Red:      r.NewStyle().Foreground(lipgloss.Color("1")),
		Cyan:     r.NewStyle().Foreground(lipgloss.Color("6")),
		Plain:    r.NewStyle(),
	}
}

// For maps a note style to its lipgloss style.
func (p Palette) For(s model.NoteStyle) lipgloss.Style {
	switch s {
	case model.StyleInfo:
		return p.Blue
	case model.StyleTip:
		return p.Green
	case model.StyleWarn:
		return p.Red
	case model.StyleNotice:
		return p.Yellow
	case model.StyleAccent:
		return p.Cyan
	default:
		return p.Plain
	}
}

// Lines renders text line by line with style. lipgloss pads every line of a
// multi-line block to the widest one, which we don't want for prose.
func Lines(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = style.Render(l)
	}
	return strings.Join(lines, "\n")
}
