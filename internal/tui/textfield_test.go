package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) ReadAll() (string, error) {
	return c.text, c.err
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeInto(t *testing.T, f *textField, cb Clipboard, keys ...tea.KeyMsg) fieldResult {
	t.Helper()
	res := fieldEditing
	for _, k := range keys {
		var err error
		res, err = f.Update(k, cb)
		require.NoError(t, err)
	}
	return res
}

func TestTextField_Editing(t *testing.T) {
	f := newTextField("ab", false)
	cb := &fakeClipboard{}

	res := typeInto(t, &f, cb, typed("c"), keyOf(tea.KeyLeft), keyOf(tea.KeyBackspace), keyOf(tea.KeySpace))
	assert.Equal(t, fieldEditing, res)
	assert.Equal(t, "a c", f.String())
	assert.True(t, f.Changed())

	typeInto(t, &f, cb, keyOf(tea.KeyHome), keyOf(tea.KeyDelete))
	assert.Equal(t, " c", f.String())

	typeInto(t, &f, cb, keyOf(tea.KeyEnd), typed("d"), keyOf(tea.KeyLeft), keyOf(tea.KeyCtrlU))
	assert.Equal(t, "d", f.String())
}

func TestTextField_SingleLineCommitsOnEnter(t *testing.T) {
	f := newTextField("title", false)
	assert.Equal(t, fieldCommit, typeInto(t, &f, nil, keyOf(tea.KeyEnter)))
	assert.False(t, f.Changed())

	assert.Equal(t, fieldCancel, typeInto(t, &f, nil, keyOf(tea.KeyEsc)))
}

func TestTextField_MultiLine(t *testing.T) {
	f := newTextField("one", true)

	assert.Equal(t, fieldEditing, typeInto(t, &f, nil, keyOf(tea.KeyEnter), typed("two")))
	assert.Equal(t, "one\ntwo", f.String())
	assert.Equal(t, fieldCommit, typeInto(t, &f, nil, keyOf(tea.KeyCtrlS)))
}

func TestTextField_View(t *testing.T) {
	f := newTextField("a\nb", true)
	assert.Equal(t, "a⏎b█", f.View())

	typeInto(t, &f, nil, keyOf(tea.KeyHome))
	assert.Equal(t, "█⏎b", f.View())
}

func TestTextField_Clipboard(t *testing.T) {
	cb := &fakeClipboard{}
	f := newTextField("copy me", false)

	typeInto(t, &f, cb, keyOf(tea.KeyCtrlC))
	assert.Equal(t, "copy me", cb.text)

	cb.text = `{\rtf1\ansi pasted\par text}`
	f = newTextField("", true)
	typeInto(t, &f, cb, keyOf(tea.KeyCtrlV))
	assert.Equal(t, "pasted\ntext", f.String())

	f = newTextField("", false)
	typeInto(t, &f, cb, keyOf(tea.KeyCtrlV))
	assert.Equal(t, "pasted text", f.String())
}

func TestTextField_ClipboardError(t *testing.T) {
	cb := &fakeClipboard{err: errors.New("no display")}
	f := newTextField("x", false)

	_, err := f.Update(keyOf(tea.KeyCtrlV), cb)
	assert.Error(t, err)
	assert.Equal(t, "x", f.String())
}

func TestTextField_BracketedPaste(t *testing.T) {
	f := newTextField("", false)
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a\r\nb\tc\x07"), Paste: true}
	typeInto(t, &f, nil, msg)
	assert.Equal(t, "a b c", f.String())
}

func TestCleanPaste(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		multiline bool
		want      string
	}{
		{"plain", "hello", false, "hello"},
		{"crlf kept in labels", "a\r\nb\rc", true, "a\nb\nc"},
		{"folded in one-line fields", "a\nb", false, "a b"},
		{"rtf escapes", `{\rtf1 \{x\}\\y}`, false, `{x}\y`},
		{"rtf line break", `{\rtf1 a\line b}`, true, "a\nb"},
		{"controls dropped", "a\x00b\x1b", false, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanPaste(tt.in, tt.multiline))
		})
	}
}
