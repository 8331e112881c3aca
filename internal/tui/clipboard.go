package tui

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// Clipboard is the OS clipboard text fields copy to and paste from.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) {
	if runtime.GOOS == "darwin" {
		// Ask for plain text first; a rich copy otherwise arrives as RTF.
		if out, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(out), nil
		}
	}
	return clipboard.ReadAll()
}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// cleanPaste turns clipboard contents into field text: RTF markup is
// stripped, line endings normalized, control characters dropped. Single-line
// fields get newlines folded into spaces.
func cleanPaste(text string, multiline bool) string {
	if text == "" {
		return text
	}
	text = stripRTF(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' && multiline:
			b.WriteRune(r)
		case r == '\n' || r == '\t':
			b.WriteRune(' ')
		case r >= 32:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stripRTF(text string) string {
	if !strings.HasPrefix(text, "{\\rtf") {
		return text
	}
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '{', '}':
			continue
		case '\\':
			if i+1 >= len(runes) {
				continue
			}
			next := runes[i+1]
			if next == '\\' || next == '{' || next == '}' {
				b.WriteRune(next)
				i++
				continue
			}
			// Control word: letters, an optional numeric argument, and one
			// delimiting space.
			j := i + 1
			for j < len(runes) && isASCIILetter(runes[j]) {
				j++
			}
			word := string(runes[i+1 : j])
			for j < len(runes) && (runes[j] == '-' || runes[j] >= '0' && runes[j] <= '9') {
				j++
			}
			if j < len(runes) && runes[j] == ' ' {
				j++
			}
			if word == "par" || word == "line" {
				b.WriteRune('\n')
			}
			i = j - 1
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func isASCIILetter(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}
