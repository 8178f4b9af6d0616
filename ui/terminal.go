package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/logrusorgru/aurora"
	runewidth "github.com/mattn/go-runewidth"
	indent "github.com/openconfig/goyang/pkg/indent"
	"golang.org/x/term"
)

const (
	indentUnit   = "  "
	sectionWidth = 50
)

// TerminalUI writes coloured output to a terminal. Colours are enabled only
// when the writer is os.Stdout attached to a real terminal.
type TerminalUI struct {
	indentLevel int
	out         io.Writer
	au          aurora.Aurora
	interactive bool
}

func NewTerminalUI() *TerminalUI {
	return NewTerminalUIWithWriter(os.Stdout)
}

func NewTerminalUIWithWriter(out io.Writer) *TerminalUI {
	interactive := false
	if f, ok := out.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return &TerminalUI{
		out:         out,
		au:          aurora.NewAurora(interactive),
		interactive: interactive,
	}
}

func (u *TerminalUI) prefix() string {
	return strings.Repeat(indentUnit, u.indentLevel)
}

// writeLine writes a single line to the output with the current indent prefix.
func (u *TerminalUI) writeLine(line string) {
	fmt.Fprintf(u.out, "%s%s\n", u.prefix(), line)
}

func (u *TerminalUI) Style(t StyledText) string {
	switch t.Severity {
	case SeveritySuccess:
		return u.au.Green(t.Text).String()
	case SeverityWarn:
		return u.au.Yellow(t.Text).String()
	case SeverityError:
		return u.au.Red(t.Text).String()
	case SeverityCritical:
		return u.au.Bold(t.Text).String()
	default: // SeverityInfo
		return t.Text
	}
}

func (u *TerminalUI) Info(format string, args ...any) {
	u.writeLine(fmt.Sprintf(format, args...))
}

func (u *TerminalUI) Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	u.writeLine(u.au.Green(msg).String())
}

func (u *TerminalUI) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	u.writeLine(u.au.Yellow(msg).String())
}

func (u *TerminalUI) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	u.writeLine(u.au.Red(msg).String())
}

func (u *TerminalUI) Critical(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	u.writeLine(u.au.Bold(msg).String())
}

// Section prints a separator line centred around the title, surrounded by
// blank lines.
//
//	===== multiProvide =====
func (u *TerminalUI) Section(title string) {
	titled := " " + title + " "
	bars := sectionWidth - len(titled)
	if bars < 6 {
		bars = 6
	}
	left := bars / 2
	right := bars - left
	line := strings.Repeat("=", left) + titled + strings.Repeat("=", right)
	fmt.Fprintf(u.out, "\n%s%s\n\n", u.prefix(), line)
}

func (u *TerminalUI) KeyValue(rows [][2]string) {
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	for _, r := range rows {
		u.writeLine(fmt.Sprintf("%-*s  %s", width, r[0], r[1]))
	}
}

func (u *TerminalUI) Table(headers []string, rows [][]string) {
	u.TableWithGroups(headers, [][][]string{rows})
}

// visibleWidth is the display width of s once ANSI escapes are stripped.
func visibleWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

// columnWidths computes per-column widths over the header and every row of
// every group, so all groups align.
func columnWidths(headers []string, groups [][][]string) []int {
	ncols := len(headers)
	for _, g := range groups {
		for _, r := range g {
			ncols = max(ncols, len(r))
		}
	}
	widths := make([]int, ncols)
	measure := func(row []string) {
		for i, cell := range row {
			widths[i] = max(widths[i], visibleWidth(cell))
		}
	}
	measure(headers)
	for _, g := range groups {
		for _, r := range g {
			measure(r)
		}
	}
	return widths
}

func (u *TerminalUI) TableWithGroups(headers []string, groups [][][]string) {
	if len(groups) == 0 {
		return
	}
	widths := columnWidths(headers, groups)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	rule := func(left, mid, right string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return style.Render(left + strings.Join(parts, mid) + right)
	}
	row := func(cells []string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = " " + cell + strings.Repeat(" ", w-visibleWidth(cell)) + " "
		}
		bar := style.Render("│")
		return bar + strings.Join(parts, bar) + bar
	}

	u.writeLine(rule("┌", "┬", "┐"))
	if len(headers) > 0 {
		u.writeLine(row(headers))
		u.writeLine(rule("├", "┼", "┤"))
	}
	for gi, group := range groups {
		if gi > 0 {
			u.writeLine(rule("├", "┼", "┤"))
		}
		for _, r := range group {
			u.writeLine(row(r))
		}
	}
	u.writeLine(rule("└", "┴", "┘"))
}

// Spinner starts an animated spinner with msg and returns a stop function.
// The stop function clears the spinner line. On non-terminal outputs the
// spinner is a no-op and only the message is printed once.
func (u *TerminalUI) Spinner(msg string) func() {
	if !u.interactive {
		fmt.Fprintf(u.out, "%s%s\n", u.prefix(), msg)
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(u.out))
	s.Suffix = " " + msg
	s.Start()
	return func() {
		s.Stop()
		// spinner clears the line with \r and leaves the cursor on it
		fmt.Fprintf(u.out, "\n")
	}
}

func (u *TerminalUI) Indent() UI {
	return &TerminalUI{
		indentLevel: u.indentLevel + 1,
		out:         u.out,
		au:          u.au,
		interactive: u.interactive,
	}
}

func (u *TerminalUI) Writer() io.Writer {
	if u.indentLevel == 0 {
		return u.out
	}
	return indent.NewWriter(u.out, u.prefix())
}
