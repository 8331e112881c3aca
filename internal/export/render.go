package export

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	_ "golang.org/x/image/webp"

	"neonmap/internal/graph"
)

var (
	ErrEmptyCanvas    = errors.New("nothing to export")
	ErrCanvasTooLarge = errors.New("canvas too large to export")
)

const (
	canvasPadding = 48
	wrapperInset  = 6
	cornerRadius  = 8
	lineSpacing   = 1.25
	linkColor     = "#38bdf8"
	captionGap    = 6
	imageShare    = 0.6

	// Bitmaps never exceed these; the pixel ratio shrinks to fit.
	maxCanvasSide   = 16384
	maxCanvasPixels = 1 << 26
	minPixelRatio   = 0.05
)

type RenderOptions struct {
	// PixelRatio is the output pixel density relative to canvas units.
	PixelRatio float64
	Background string
	// Selected nodes keep their selection border colour.
	Selected graph.IDSet
}

// Rasterize draws the visible part of the map into a bitmap covering every
// visible node plus a margin.
func Rasterize(m *graph.Map, opts RenderOptions) (image.Image, error) {
	proj := graph.Project(m.Nodes, m.Edges)
	nodes := proj.VisibleNodes()
	bounds, ok := graph.Bounds(nodes)
	if !ok {
		return nil, ErrEmptyCanvas
	}
	bounds = bounds.Inset(-canvasPadding)

	ratio := opts.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	ratio = fitRatio(bounds, ratio)
	if ratio < minPixelRatio {
		return nil, errors.Wrapf(ErrCanvasTooLarge, "%.0fx%.0f canvas units", bounds.W, bounds.H)
	}
	w := min(int(math.Ceil(bounds.W*ratio)), maxCanvasSide)
	h := min(int(math.Ceil(bounds.H*ratio)), maxCanvasSide)

	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parse font")
	}

	r := &renderer{
		dc:    gg.NewContext(w, h),
		ratio: ratio,
		font:  ttf,
		faces: make(map[float64]font.Face),
		m:     m,
		sel:   opts.Selected,
	}
	bg := opts.Background
	if bg == "" {
		bg = "#020617"
	}
	r.dc.SetHexColor(bg)
	r.dc.Clear()
	r.dc.Scale(ratio, ratio)
	r.dc.Translate(-bounds.X, -bounds.Y)

	// Edges sit behind nodes.
	for _, e := range proj.VisibleEdges() {
		r.edge(&e)
	}
	for i := range nodes {
		r.node(&nodes[i])
	}
	return r.dc.Image(), nil
}

// fitRatio lowers ratio until the bitmap for bounds fits the side and pixel
// limits.
func fitRatio(bounds graph.Rect, ratio float64) float64 {
	ratio = math.Min(ratio, maxCanvasSide/bounds.W)
	ratio = math.Min(ratio, maxCanvasSide/bounds.H)
	return math.Min(ratio, math.Sqrt(maxCanvasPixels/(bounds.W*bounds.H)))
}

type renderer struct {
	dc    *gg.Context
	ratio float64
	font  *truetype.Font
	faces map[float64]font.Face
	m     *graph.Map
	sel   graph.IDSet
}

func (r *renderer) face(size float64) font.Face {
	if f, ok := r.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(r.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	r.faces[size] = f
	return f
}

// Line widths and dash lengths are applied in device pixels by gg.
func (r *renderer) px(v float64) float64 {
	return v * r.ratio
}

// text draws s anchored at canvas point (x, y). Glyphs are rasterized at the
// output density instead of being scaled up from canvas size.
func (r *renderer) text(s string, x, y float64, size int, hex string, ax, ay float64) {
	dc := r.dc
	dc.Push()
	dc.Scale(1/r.ratio, 1/r.ratio)
	dc.SetFontFace(r.face(float64(size) * r.ratio))
	dc.SetHexColor(hex)
	dc.DrawStringAnchored(s, x*r.ratio, y*r.ratio, ax, ay)
	dc.Pop()
}

func (r *renderer) measure(s string, size int) (float64, float64) {
	r.dc.Push()
	r.dc.SetFontFace(r.face(float64(size) * r.ratio))
	w, h := r.dc.MeasureString(s)
	r.dc.Pop()
	return w / r.ratio, h / r.ratio
}

func (r *renderer) lines(lines []string, cx, cy float64, size int, hex string) {
	step := float64(size) * lineSpacing
	top := cy - step*float64(len(lines)-1)/2
	for i, line := range lines {
		r.text(line, cx, top+step*float64(i), size, hex, 0.5, 0.35)
	}
}

func (r *renderer) node(n *graph.Node) {
	dc := r.dc
	b := n.Bounds()
	c := b.Center()
	d := n.Data

	dc.Push()
	dc.RotateAbout(gg.Radians(d.Rotation), c.X, c.Y)

	card := b
	if d.WrapperEnabled {
		wrapper := d.Color
		if wrapper == "" {
			wrapper = graph.DefaultWrapperColor
		}
		dc.DrawRoundedRectangle(b.X, b.Y, b.W, b.H, cornerRadius+wrapperInset)
		dc.SetHexColor(wrapper)
		dc.FillPreserve()
		dc.SetHexColor(graph.DefaultWrapperBorder)
		dc.SetLineWidth(r.px(1))
		dc.Stroke()
		card = b.Inset(wrapperInset)
	}

	shapePath(dc, d.Shape, card)
	dc.SetHexColor(d.CardColor)
	dc.FillPreserve()
	dc.SetHexColor(n.ResolvedBorderColor(r.sel.Has(n.ID)))
	dc.SetLineWidth(r.px(2))
	dc.Stroke()

	labelY := c.Y
	if img := decodeDataURL(d.Image); img != nil {
		labelY = r.image(img, card, d.ImageSize)
	}
	r.lines(n.Lines(), c.X, labelY, d.LabelFontSize, d.LabelColor)

	if d.Link != "" {
		y := card.Y + card.H - float64(d.LinkFontSize)
		r.text(d.Link, c.X, y, d.LinkFontSize, linkColor, 0.5, 0.5)
	}

	if d.TopText != "" {
		r.text(d.TopText, c.X, b.Y-captionGap, d.TopTextFontSize, d.TopTextColor, 0.5, 0)
	}
	if d.BottomText != "" {
		r.text(d.BottomText, c.X, b.Y+b.H+captionGap, d.BottomTextFontSize, d.BottomTextColor, 0.5, 1)
	}
	dc.Pop()
}

// image draws img in the upper part of the card and returns where the label
// centre moves to.
func (r *renderer) image(img image.Image, card graph.Rect, pct int) float64 {
	src := img.Bounds()
	if src.Dx() == 0 || src.Dy() == 0 {
		return card.Center().Y
	}
	w := card.W * imageShare * float64(pct) / 100
	h := w * float64(src.Dy()) / float64(src.Dx())
	if limit := card.H * imageShare; h > limit {
		w, h = w*limit/h, limit
	}
	x := card.X + (card.W-w)/2
	y := card.Y + wrapperInset

	dst := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(w*r.ratio)), int(math.Ceil(h*r.ratio))))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Over, nil)

	r.dc.Push()
	r.dc.Scale(1/r.ratio, 1/r.ratio)
	r.dc.DrawImage(dst, int(x*r.ratio), int(y*r.ratio))
	r.dc.Pop()

	return y + h + (card.Y+card.H-(y+h))/2
}

func (r *renderer) edge(e *graph.Edge) {
	path, ok := r.m.Route(e)
	if !ok {
		return
	}
	dc := r.dc
	d := e.Data

	if path.Kind == graph.PathBezier {
		p0, p3 := path.Points[0], path.Points[len(path.Points)-1]
		dc.MoveTo(p0.X, p0.Y)
		dc.CubicTo(path.Controls[0].X, path.Controls[0].Y, path.Controls[1].X, path.Controls[1].Y, p3.X, p3.Y)
	} else {
		for i, p := range path.Points {
			if i == 0 {
				dc.MoveTo(p.X, p.Y)
				continue
			}
			dc.LineTo(p.X, p.Y)
		}
	}
	dash := d.Style.Dash()
	scaled := make([]float64, len(dash))
	for i, v := range dash {
		scaled[i] = r.px(v)
	}
	dc.SetDash(scaled...)
	dc.SetHexColor(d.Color)
	dc.SetLineWidth(r.px(d.StrokeWidth))
	dc.SetLineCap(gg.LineCapRound)
	dc.Stroke()
	dc.SetDash()

	if e.HasLabel() {
		r.edgeLabel(e, path.Label)
	}
}

func (r *renderer) edgeLabel(e *graph.Edge, at graph.Point) {
	dc := r.dc
	d := e.Data
	tw, th := r.measure(d.Label, d.LabelFontSize)
	pv, ph := d.LabelWrapperSize.Padding()
	w, h := tw+2*ph, th+2*pv

	dc.Push()
	dc.RotateAbout(gg.Radians(d.LabelRotation), at.X, at.Y)
	dc.DrawRoundedRectangle(at.X-w/2, at.Y-h/2, w, h, 4)
	dc.SetHexColor(d.LabelWrapperColor)
	dc.Fill()
	r.text(d.Label, at.X, at.Y, d.LabelFontSize, d.LabelColor, 0.5, 0.35)
	dc.Pop()
}

func shapePath(dc *gg.Context, shape graph.Shape, b graph.Rect) {
	c := b.Center()
	switch shape {
	case graph.ShapeCircle:
		dc.DrawCircle(c.X, c.Y, min(b.W, b.H)/2)
	case graph.ShapeOval:
		dc.DrawEllipse(c.X, c.Y, b.W/2, b.H/2)
	case graph.ShapeDiamond:
		polygon(dc, graph.Point{X: c.X, Y: b.Y}, graph.Point{X: b.X + b.W, Y: c.Y},
			graph.Point{X: c.X, Y: b.Y + b.H}, graph.Point{X: b.X, Y: c.Y})
	case graph.ShapeHexagon:
		q := b.W / 4
		polygon(dc, graph.Point{X: b.X + q, Y: b.Y}, graph.Point{X: b.X + b.W - q, Y: b.Y},
			graph.Point{X: b.X + b.W, Y: c.Y}, graph.Point{X: b.X + b.W - q, Y: b.Y + b.H},
			graph.Point{X: b.X + q, Y: b.Y + b.H}, graph.Point{X: b.X, Y: c.Y})
	case graph.ShapeTriangle:
		polygon(dc, graph.Point{X: c.X, Y: b.Y}, graph.Point{X: b.X + b.W, Y: b.Y + b.H},
			graph.Point{X: b.X, Y: b.Y + b.H})
	case graph.ShapeCloud:
		dc.DrawRoundedRectangle(b.X, b.Y, b.W, b.H, b.H/2)
	default:
		dc.DrawRoundedRectangle(b.X, b.Y, b.W, b.H, cornerRadius)
	}
}

func polygon(dc *gg.Context, pts ...graph.Point) {
	dc.NewSubPath()
	for i, p := range pts {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
			continue
		}
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
}

// decodeDataURL returns the embedded bitmap of a base64 data URL. Remote
// URLs are not fetched.
func decodeDataURL(s string) image.Image {
	if !strings.HasPrefix(s, "data:") {
		return nil
	}
	comma := strings.IndexByte(s, ',')
	if comma < 0 || !strings.HasSuffix(s[:comma], ";base64") {
		return nil
	}
	raw, err := base64.StdEncoding.DecodeString(s[comma+1:])
	if err != nil {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil
	}
	return img
}
