package panel

import (
	"encoding/base64"
	"net/http"
	"os"
	"strings"

	"github.com/pkg/errors"
)

var ErrNotImage = errors.New("file is not an image")

// Staged is a free-text field whose value is only written to the model when
// it is submitted.
type Staged struct {
	open  bool
	Value string
}

// Begin opens the field pre-filled with the current model value.
func (s *Staged) Begin(current string) {
	s.open = true
	s.Value = current
}

func (s *Staged) Open() bool {
	return s.open
}

// Cancel hides the field and drops whatever was typed.
func (s *Staged) Cancel() {
	s.open = false
	s.Value = ""
}

// DataURL embeds a local image file as a base64 data URL.
func DataURL(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read image %s", path)
	}
	ct := http.DetectContentType(b)
	if !strings.HasPrefix(ct, "image/") {
		return "", errors.Wrapf(ErrNotImage, "%s is %s", path, ct)
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}

func isFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
