package export

import (
	"bufio"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/pkg/errors"
)

type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	PDF  Format = "pdf"
)

// ParseFormat accepts the format names a user would type.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	case "pdf":
		return PDF, nil
	}
	return "", errors.Errorf("unknown export format %q", s)
}

// Ext is the file extension written for the format.
func (f Format) Ext() string {
	if f == JPEG {
		return "jpg"
	}
	return string(f)
}

// Encode writes img in the given raster or document format.
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	bw := bufio.NewWriter(w)
	var err error
	switch f {
	case PNG:
		err = png.Encode(bw, img)
	case JPEG:
		err = jpeg.Encode(bw, img, &jpeg.Options{Quality: quality})
	case PDF:
		err = writePDF(bw, img)
	default:
		return errors.Errorf("unknown export format %q", f)
	}
	if err != nil {
		return errors.Wrapf(err, "encode %s", f)
	}
	return bw.Flush()
}
