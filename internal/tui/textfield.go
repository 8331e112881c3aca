package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type fieldResult int

const (
	fieldEditing fieldResult = iota
	fieldCommit
	fieldCancel
)

// textField is a one-field line editor. Multi-line fields take Enter as a
// newline and commit on Ctrl+S; single-line fields commit on Enter.
type textField struct {
	value     []rune
	cursor    int
	multiline bool
	original  string
}

func newTextField(value string, multiline bool) textField {
	r := []rune(value)
	return textField{value: r, cursor: len(r), multiline: multiline, original: value}
}

func (f *textField) String() string {
	return string(f.value)
}

func (f *textField) Changed() bool {
	return string(f.value) != f.original
}

func (f *textField) insert(s string) {
	if s == "" {
		return
	}
	r := []rune(s)
	v := make([]rune, 0, len(f.value)+len(r))
	v = append(v, f.value[:f.cursor]...)
	v = append(v, r...)
	v = append(v, f.value[f.cursor:]...)
	f.value = v
	f.cursor += len(r)
}

// Update applies one key. Ctrl+C and Ctrl+V work on the OS clipboard while a
// field has focus; they never reach the node clipboard.
func (f *textField) Update(msg tea.KeyMsg, cb Clipboard) (fieldResult, error) {
	switch msg.Type {
	case tea.KeyEsc:
		return fieldCancel, nil
	case tea.KeyCtrlS:
		return fieldCommit, nil
	case tea.KeyEnter:
		if !f.multiline {
			return fieldCommit, nil
		}
		f.insert("\n")
	case tea.KeyLeft:
		if f.cursor > 0 {
			f.cursor--
		}
	case tea.KeyRight:
		if f.cursor < len(f.value) {
			f.cursor++
		}
	case tea.KeyHome, tea.KeyCtrlA:
		f.cursor = 0
	case tea.KeyEnd, tea.KeyCtrlE:
		f.cursor = len(f.value)
	case tea.KeyBackspace:
		if f.cursor > 0 {
			f.value = append(f.value[:f.cursor-1], f.value[f.cursor:]...)
			f.cursor--
		}
	case tea.KeyDelete:
		if f.cursor < len(f.value) {
			f.value = append(f.value[:f.cursor], f.value[f.cursor+1:]...)
		}
	case tea.KeyCtrlU:
		f.value = f.value[f.cursor:]
		f.cursor = 0
	case tea.KeyCtrlC:
		return fieldEditing, cb.WriteAll(f.String())
	case tea.KeyCtrlV:
		text, err := cb.ReadAll()
		if err != nil {
			return fieldEditing, err
		}
		f.insert(cleanPaste(text, f.multiline))
	case tea.KeySpace:
		f.insert(" ")
	case tea.KeyRunes:
		if msg.Paste {
			f.insert(cleanPaste(string(msg.Runes), f.multiline))
			break
		}
		f.insert(string(msg.Runes))
	}
	return fieldEditing, nil
}

// View renders the value with a block cursor. Newlines show as ⏎ so the field
// fits on the status line.
func (f *textField) View() string {
	var b strings.Builder
	for i, r := range f.value {
		if i == f.cursor {
			b.WriteRune('█')
			continue
		}
		if r == '\n' {
			b.WriteRune('⏎')
			continue
		}
		b.WriteRune(r)
	}
	if f.cursor >= len(f.value) {
		b.WriteRune('█')
	}
	return b.String()
}
