package export

import (
	"bytes"
	"image"
	"image/png"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// writePDF emits a single page sized to the bitmap in points, one point per
// pixel, with the bitmap filling the page.
func writePDF(w io.Writer, img image.Image) error {
	b := img.Bounds()
	width, height := float64(b.Dx()), float64(b.Dy())
	if width <= 0 || height <= 0 {
		return errors.New("empty bitmap")
	}

	orientation := "P"
	if width > height {
		orientation = "L"
	}
	// fpdf swaps the size for landscape pages, so it is given short side first.
	size := fpdf.SizeType{Wd: min(width, height), Ht: max(width, height)}
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           size,
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("canvas", opts, &buf)
	doc.ImageOptions("canvas", 0, 0, width, height, false, opts, 0, "")
	if err := doc.Error(); err != nil {
		return err
	}
	return doc.Output(w)
}
