package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"debacademy/internal/model"
)

var (
	borderColor = lipgloss.Color("63")
	activeColor = lipgloss.Color("205")
)

// styles are bound to the renderer of the session palette, so --no-color
// reaches the full-screen view too.
type styles struct {
	renderer   *lipgloss.Renderer
	title      lipgloss.Style
	panelTitle lipgloss.Style
	selected   lipgloss.Style
	normal     lipgloss.Style
	dim        lipgloss.Style
	warn       lipgloss.Style
	tip        lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return styles{
		renderer: r,
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		panelTitle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		selected:   r.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		normal:     r.NewStyle().Foreground(lipgloss.Color("255")),
		dim:        r.NewStyle().Foreground(lipgloss.Color("240")),
		warn:       r.NewStyle().Foreground(lipgloss.Color("208")), // Orange
		tip:        r.NewStyle().Foreground(lipgloss.Color("42")),
	}
}

// HelpContent is shown by the '?' dialog.
const HelpContent = `Keys

  ↑/↓, k/j     Move the cursor
  Enter, →     Open a topic or lesson; run the highlighted command
  r            Run the highlighted command
  d            Explain the highlighted command
  Esc, ←       Leave the lesson or go back to the main menu
  Tab          Scroll the details panel with ↑/↓
  ?            Toggle this help
  q, Ctrl+C    Quit

In simulation mode commands show example output and never touch
your system. In live mode the command runs in your terminal and its
output is kept in the details panel afterwards.`

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) View() string {
	if m.Quitting {
		return "Thanks for learning with us! Keep exploring Linux! " + model.IconPenguin + "\n"
	}
	if m.ShowHelp {
		return m.renderHelpDialog()
	}

	width := m.WindowSize.Width
	height := m.WindowSize.Height

	netWidth := width - 6
	if netWidth < 40 {
		netWidth = 40
	}
	leftWidth := netWidth * 2 / 5
	rightWidth := netWidth - leftWidth

	interiorHeight := height - 8
	if interiorHeight < 6 {
		interiorHeight = 6
	}

	// Header
	modeLabel := model.IconLive + " Live"
	if m.Config.Simulate() {
		modeLabel = model.IconSimulate + " Simulation"
	}
	header := m.styles.title.Render(model.IconPenguin+" Debian SysAdmin Academy") + "  " +
		m.styles.dim.Render(fmt.Sprintf("Mode: %s | %s", m.Config.PromptPrefix, modeLabel))

	// LEFT PANEL: menu options or lesson commands
	var leftView strings.Builder
	if m.Screen == screenLesson {
		leftView.WriteString(m.styles.panelTitle.Render(m.LessonTitle))
		leftView.WriteString("\n\n")
		for i, d := range m.Demos {
			line := fmt.Sprintf("%d. %s", i+1, d.Command)
			leftView.WriteString(m.itemStyle(i == m.DemoIdx).Render(truncate(line, leftWidth-2)))
			leftView.WriteString("\n")
		}
	} else {
		menu := m.current()
		leftView.WriteString(m.styles.panelTitle.Render(menu.Title))
		leftView.WriteString("\n\n")
		for i, opt := range menu.Options {
			line := fmt.Sprintf("%d. %s", i+1, opt.Label)
			leftView.WriteString(m.itemStyle(i == m.SelectedIdx).Render(truncate(line, leftWidth-2)))
			leftView.WriteString("\n")
		}
	}

	lBorder, rBorder := activeColor, borderColor
	if m.RightFocus {
		lBorder, rBorder = borderColor, activeColor
	}

	left := m.styles.renderer.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lBorder).
		Render(strings.TrimSuffix(leftView.String(), "\n"))

	// RIGHT PANEL: details
	details := m.styles.panelTitle.Render("Details") + "\n\n" + m.DetailsViewport.View()
	if m.Running {
		details = m.styles.panelTitle.Render("Details") + "\n\n" + m.styles.warn.Render("Command running in your terminal...")
	}
	right := m.styles.renderer.NewStyle().
		Width(rightWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(rBorder).
		Render(details)

	// Footer
	help := "↑/↓: Navigate • Enter: Open • Esc: Back • Tab: Scroll Details • ?: Help • q: Quit"
	if m.Screen == screenLesson {
		help = "↑/↓: Select Command • Enter/r: Run • d: Explain • Esc: Back • Tab: Scroll Details • ?: Help • q: Quit"
	}

	return header + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, left, right) + "\n\n" + m.styles.dim.Render(help)
}

func (m AppModel) itemStyle(selected bool) lipgloss.Style {
	if selected && !m.RightFocus {
		return m.styles.selected
	}
	return m.styles.normal
}

func truncate(line string, width int) string {
	if width < 4 || lipgloss.Width(line) <= width {
		return line
	}
	r := []rune(line)
	if len(r) > width-3 {
		r = r[:width-3]
	}
	return string(r) + "..."
}

// menuText is the details panel for a menu: the session summary at the
// root, the topic introduction below it.
func (m AppModel) menuText(menu *model.Menu) string {
	var b strings.Builder
	if menu.Root {
		system := m.Config.DetectedName
		if system == "" {
			system = "not detected"
		}
		fmt.Fprintf(&b, "Hey there, future sysadmin! %s\n\n", model.IconWave)
		fmt.Fprintf(&b, "Mode: %s | System: %s\n\n", m.Config.ModeLabel(), system)
		b.WriteString("Pick a topic on the left to start a lesson.")
		return b.String()
	}
	if m.Config.Simulate() {
		b.WriteString(model.IconSimulate + " SIMULATION MODE: Commands will show example outputs without affecting your system\n\n")
	}
	for _, step := range menu.Intro {
		if step.When.Holds(m.Config) {
			b.WriteString(m.renderNote(step))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// lessonText lists the lesson's notes ahead of its first run.
func (m AppModel) lessonText() string {
	var b strings.Builder
	for _, step := range m.Notes {
		b.WriteString(m.renderNote(step))
		b.WriteString("\n")
	}
	if len(m.Demos) > 0 {
		b.WriteString("\nPress Enter to run the highlighted command, d to explain it.")
	}
	return strings.TrimLeft(b.String(), "\n")
}

func (m AppModel) renderNote(step model.Step) string {
	style := m.styles.normal
	switch step.Style {
	case model.StyleWarn:
		style = m.styles.warn
	case model.StyleTip:
		style = m.styles.tip
	}
	lines := strings.Split(step.Note, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = style.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

func (m AppModel) renderHelpDialog() string {
	w, h := m.WindowSize.Width, m.WindowSize.Height
	if w < 20 || h < 10 {
		return "Window too small"
	}

	helpWidth := w * 80 / 100
	if helpWidth < 40 {
		helpWidth = 40
	}
	if helpWidth > w-4 {
		helpWidth = w - 4
	}
	helpHeight := h - 6
	if helpHeight < 5 {
		helpHeight = 5
	}

	lines := strings.Split(HelpContent, "\n")
	contentHeight := helpHeight - 2

	startY := m.HelpScrollY
	if startY > len(lines)-contentHeight {
		startY = len(lines) - contentHeight
	}
	if startY < 0 {
		startY = 0
	}
	endY := startY + contentHeight
	if endY > len(lines) {
		endY = len(lines)
	}

	dialog := m.styles.renderer.NewStyle().
		Width(helpWidth).
		Height(helpHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Render(strings.Join(lines[startY:endY], "\n"))

	return m.styles.renderer.Place(w, h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}
