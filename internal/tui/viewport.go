package tui

import (
	"math"

	"neonmap/internal/graph"
)

// One terminal cell covers cellWidth×cellHeight canvas units at zoom 1.
const (
	cellWidth  = 8
	cellHeight = 16

	fitPadding = 0.2
)

var zoomSteps = []float64{0.5, 0.75, 1, 1.25, 1.5, 2}

const (
	minZoom = 0.5
	maxZoom = 2
)

// Viewport maps the infinite canvas onto the terminal grid. X and Y are the
// canvas coordinates of the top-left cell.
type Viewport struct {
	X, Y float64
	Zoom float64
}

func NewViewport() Viewport {
	return Viewport{Zoom: 1}
}

func (v Viewport) unitX() float64 { return cellWidth / v.Zoom }
func (v Viewport) unitY() float64 { return cellHeight / v.Zoom }

// ToCell returns the cell containing p.
func (v Viewport) ToCell(p graph.Point) (col, row int) {
	return int(math.Floor((p.X - v.X) / v.unitX())), int(math.Floor((p.Y - v.Y) / v.unitY()))
}

// ToWorld returns the canvas point at the top-left corner of a cell.
func (v Viewport) ToWorld(col, row int) graph.Point {
	return graph.Point{X: v.X + float64(col)*v.unitX(), Y: v.Y + float64(row)*v.unitY()}
}

// Delta converts a motion of dc columns and dr rows into canvas units.
func (v Viewport) Delta(dc, dr int) (dx, dy float64) {
	return float64(dc) * v.unitX(), float64(dr) * v.unitY()
}

// Pan scrolls the view by whole cells.
func (v *Viewport) Pan(dc, dr int) {
	dx, dy := v.Delta(dc, dr)
	v.X += dx
	v.Y += dy
}

// ZoomStep moves to the next zoom step in the given direction, keeping the
// centre of a cols×rows view in place. It reports whether the zoom changed.
func (v *Viewport) ZoomStep(dir, cols, rows int) bool {
	next := v.Zoom
	if dir > 0 {
		for _, z := range zoomSteps {
			if z > v.Zoom+1e-9 {
				next = z
				break
			}
		}
	} else {
		for i := len(zoomSteps) - 1; i >= 0; i-- {
			if zoomSteps[i] < v.Zoom-1e-9 {
				next = zoomSteps[i]
				break
			}
		}
	}
	if next == v.Zoom {
		return false
	}
	v.zoomAround(next, cols, rows)
	return true
}

func (v *Viewport) zoomAround(zoom float64, cols, rows int) {
	centre := graph.Point{
		X: v.X + float64(cols)*v.unitX()/2,
		Y: v.Y + float64(rows)*v.unitY()/2,
	}
	v.Zoom = zoom
	v.centreOn(centre, cols, rows)
}

func (v *Viewport) centreOn(p graph.Point, cols, rows int) {
	v.X = p.X - float64(cols)*v.unitX()/2
	v.Y = p.Y - float64(rows)*v.unitY()/2
}

// Fit zooms and pans so bounds fills a cols×rows view with padding around
// it. The zoom stays within the step range.
func (v *Viewport) Fit(bounds graph.Rect, cols, rows int) {
	if cols < 1 || rows < 1 {
		return
	}
	w := math.Max(bounds.W, 1) * (1 + fitPadding)
	h := math.Max(bounds.H, 1) * (1 + fitPadding)
	zoom := math.Min(float64(cols)*cellWidth/w, float64(rows)*cellHeight/h)
	v.Zoom = math.Max(minZoom, math.Min(maxZoom, zoom))
	v.centreOn(bounds.Center(), cols, rows)
}
