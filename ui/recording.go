package ui

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Entry records a single UI method call.
type Entry struct {
	Method string
	Value  string
}

type recordLog struct {
	entries []Entry
	buf     *bytes.Buffer
}

// RecordingUI implements UI for tests. Every call is appended to a log shared
// with the children returned by Indent.
type RecordingUI struct {
	log         *recordLog
	indentLevel int
}

func NewRecordingUI() *RecordingUI {
	return &RecordingUI{log: &recordLog{buf: &bytes.Buffer{}}}
}

func (r *RecordingUI) record(method, value string) {
	r.log.entries = append(r.log.entries, Entry{Method: method, Value: value})
}

func (r *RecordingUI) Style(t StyledText) string {
	return t.Text
}

func (r *RecordingUI) Info(format string, args ...any) {
	r.record("Info", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Success(format string, args ...any) {
	r.record("Success", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Warn(format string, args ...any) {
	r.record("Warn", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Error(format string, args ...any) {
	r.record("Error", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Critical(format string, args ...any) {
	r.record("Critical", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Section(title string) {
	r.record("Section", title)
}

func (r *RecordingUI) KeyValue(rows [][2]string) {
	for _, row := range rows {
		r.record("KeyValue", row[0]+"="+row[1])
	}
}

func (r *RecordingUI) Table(headers []string, rows [][]string) {
	r.TableWithGroups(headers, [][][]string{rows})
}

// TableWithGroups records one "Table" entry per row, cells joined by " | ".
func (r *RecordingUI) TableWithGroups(headers []string, groups [][][]string) {
	for _, g := range groups {
		for _, row := range g {
			r.record("Table", strings.Join(row, " | "))
		}
	}
}

func (r *RecordingUI) Spinner(msg string) func() {
	r.record("Spinner", msg)
	return func() {}
}

func (r *RecordingUI) Indent() UI {
	return &RecordingUI{log: r.log, indentLevel: r.indentLevel + 1}
}

func (r *RecordingUI) Writer() io.Writer {
	return r.log.buf
}

// Entries returns all recorded calls in order.
func (r *RecordingUI) Entries() []Entry {
	return r.log.entries
}

// Messages returns the values recorded for method.
func (r *RecordingUI) Messages(method string) []string {
	var out []string
	for _, e := range r.log.entries {
		if e.Method == method {
			out = append(out, e.Value)
		}
	}
	return out
}

// HasMessage reports whether any recorded value contains substr,
// case-insensitively.
func (r *RecordingUI) HasMessage(substr string) bool {
	lower := strings.ToLower(substr)
	for _, e := range r.log.entries {
		if strings.Contains(strings.ToLower(e.Value), lower) {
			return true
		}
	}
	return false
}

// Output returns everything written to Writer().
func (r *RecordingUI) Output() string {
	return r.log.buf.String()
}
