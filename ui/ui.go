package ui

import (
	"encoding/json"
	"io"
)

// Severity classifies the visual weight of a piece of inline text. The print
// layer maps each value to a terminal style; data consumers (JSON, tests) see
// plain text.
type Severity uint8

const (
	SeverityInfo     Severity = iota // plain
	SeveritySuccess                  // green
	SeverityWarn                     // yellow
	SeverityError                    // red
	SeverityCritical                 // bold
)

// StyledText pairs a plain string with a Severity annotation. It marshals to
// JSON as the plain Text string.
type StyledText struct {
	Text     string
	Severity Severity
}

func (s StyledText) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Text)
}

// UI is all terminal output of the gelato commands.
//
// Production code uses TerminalUI; tests use RecordingUI, which captures
// every call so assertions never depend on ANSI codes.
type UI interface {
	// Style returns the text from t coloured according to its Severity.
	Style(t StyledText) string

	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)

	// Error writes a failure in red. It does not exit.
	Error(format string, args ...any)

	// Critical writes data the user must not miss: tx hashes, signed
	// payloads, encoded calldata.
	Critical(format string, args ...any)

	// Section writes a separator centred around title.
	Section(title string)

	// KeyValue renders an aligned 2-column block.
	KeyValue(rows [][2]string)

	// Table renders a bordered table with an optional header row.
	Table(headers []string, rows [][]string)

	// TableWithGroups renders a bordered table with a divider between
	// groups, e.g. one group per event log.
	TableWithGroups(headers []string, groups [][][]string)

	// Spinner starts an animated spinner and returns its stop function.
	Spinner(msg string) func()

	// Indent returns a child UI one level deeper sharing the same writer.
	Indent() UI

	// Writer returns an io.Writer that prefixes the current indentation.
	Writer() io.Writer
}
