package ui_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CryptYlliON/gelato-network/ui"
)

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(ansi.Strip(buf.String()), "\n"), "\n")
}

func TestTerminalUIPlainOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	u := ui.NewTerminalUIWithWriter(buf)

	u.Info("hello %s", "world")
	u.Critical("0x%x", 10)
	u.Indent().Warn("nested")
	u.Indent().Indent().Error("deeper")

	assert.Equal(t, []string{"hello world", "0xa", "  nested", "    deeper"}, lines(buf))
}

func TestTerminalUISection(t *testing.T) {
	buf := &bytes.Buffer{}
	ui.NewTerminalUIWithWriter(buf).Section("multiProvide")

	out := strings.TrimSpace(buf.String())
	assert.Equal(t, 50, len(out))
	assert.Contains(t, out, "= multiProvide =")
}

func TestTerminalUIKeyValue(t *testing.T) {
	buf := &bytes.Buffer{}
	ui.NewTerminalUIWithWriter(buf).KeyValue([][2]string{{"a", "1"}, {"long key", "2"}})
	assert.Equal(t, []string{"a         1", "long key  2"}, lines(buf))
}

func TestTerminalUITableWithGroups(t *testing.T) {
	buf := &bytes.Buffer{}
	ui.NewTerminalUIWithWriter(buf).TableWithGroups(
		[]string{"Event", "Argument", "Value"},
		[][][]string{
			{{"#0 LogProvideFunds", "provider", "0x01"}, {"", "amount", "100"}},
			{{"#1 LogAddProviderModule", "module", "0x02"}},
		},
	)
	out := lines(buf)
	// top, header, divider, 2 rows, divider, 1 row, bottom
	require.Len(t, out, 8)
	width := len([]rune(out[0]))
	for i, l := range out {
		assert.Equal(t, width, len([]rune(l)), "line %d", i)
	}
	assert.True(t, strings.HasPrefix(out[0], "┌"))
	assert.True(t, strings.HasPrefix(out[5], "├"))
	assert.Contains(t, out[6], "LogAddProviderModule")

	buf.Reset()
	ui.NewTerminalUIWithWriter(buf).TableWithGroups(nil, nil)
	assert.Empty(t, buf.String())
}

func TestTerminalUISpinnerWithoutTerminal(t *testing.T) {
	buf := &bytes.Buffer{}
	stop := ui.NewTerminalUIWithWriter(buf).Spinner("waiting")
	stop()
	assert.Equal(t, "waiting\n", buf.String())
}

func TestIndentedWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := ui.NewTerminalUIWithWriter(buf).Indent().Writer()
	fmt.Fprint(w, "a\nb\n")
	assert.Equal(t, "  a\n  b\n", buf.String())
}

func TestRecordingUI(t *testing.T) {
	r := ui.NewRecordingUI()
	r.Info("one")
	r.Indent().Success("two")
	r.Table([]string{"h"}, [][]string{{"a", "b"}})
	r.KeyValue([][2]string{{"k", "v"}})
	fmt.Fprint(r.Writer(), "raw")

	assert.Len(t, r.Entries(), 4)
	assert.Equal(t, []string{"two"}, r.Messages("Success"))
	assert.Equal(t, []string{"a | b"}, r.Messages("Table"))
	assert.True(t, r.HasMessage("K=V"))
	assert.Equal(t, "raw", r.Output())
}
