package graph

import (
	"encoding/json"
	"strings"
)

type Shape string

const (
	ShapeRectangle Shape = "rectangle"
	ShapeCircle    Shape = "circle"
	ShapeOval      Shape = "oval"
	ShapeDiamond   Shape = "diamond"
	ShapeHexagon   Shape = "hexagon"
	ShapeTriangle  Shape = "triangle"
	ShapeCloud     Shape = "cloud"
)

// Shapes lists every node shape in the order the panel offers them.
var Shapes = []Shape{ShapeRectangle, ShapeCircle, ShapeOval, ShapeDiamond, ShapeHexagon, ShapeTriangle, ShapeCloud}

func (s Shape) Valid() bool {
	for _, v := range Shapes {
		if v == s {
			return true
		}
	}
	return false
}

const (
	MinNodeWidth  = 100
	MinNodeHeight = 44

	DefaultNodeWidth  = 200
	DefaultNodeHeight = 80

	DefaultLabelFontSize   = 10
	DefaultCaptionFontSize = 12
	DefaultLinkFontSize    = 14
	DefaultImageSize       = 100

	MinImageSize = 50
	MaxImageSize = 150

	DefaultLabelColor = "#e2e8f0"
	DefaultCardColor  = "#0f172a"

	// Border colours used when a node has no explicit border colour.
	SelectedBorderColor   = "#8b5cf6"
	UnselectedBorderColor = "#22c55e"

	DefaultWrapperColor  = "#1e293b"
	DefaultWrapperBorder = "#475569"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// NodeData holds every persisted presentation and behaviour attribute of a
// node. Values are always fully populated once decoded or built by NewNode.
type NodeData struct {
	Label          string
	Color          string
	WrapperEnabled bool
	CardColor      string
	BorderColor    string

	Image     string
	ImageSize int

	Link         string
	LinkFontSize int

	Shape    Shape
	Rotation float64

	Width  float64
	Height float64

	LabelFontSize int
	LabelColor    string

	TopText         string
	TopTextColor    string
	TopTextFontSize int

	BottomText         string
	BottomTextColor    string
	BottomTextFontSize int

	Collapsed        bool
	DragWithChildren bool
}

type Node struct {
	ID       string
	Type     string
	Position Point
	Width    float64
	Height   float64
	Data     NodeData

	// Style is the web client's inline style object, kept opaque so a save
	// hands it back untouched.
	Style json.RawMessage
}

func (n *Node) Lines() []string {
	return strings.Split(n.Data.Label, "\n")
}

// Bounds returns the node rectangle in canvas space.
func (n *Node) Bounds() Rect {
	return Rect{X: n.Position.X, Y: n.Position.Y, W: n.Width, H: n.Height}
}

// ResolvedBorderColor returns the border colour to draw for the given
// selection state.
func (n *Node) ResolvedBorderColor(selected bool) string {
	if n.Data.BorderColor != "" {
		return n.Data.BorderColor
	}
	if selected {
		return SelectedBorderColor
	}
	return UnselectedBorderColor
}

// SetSize writes a size onto the node and its persisted data, enforcing the
// minimum.
func (n *Node) SetSize(width, height float64) {
	width, height = ClampSize(width, height)
	n.Width = width
	n.Height = height
	n.Data.Width = width
	n.Data.Height = height
}

func ClampSize(width, height float64) (float64, float64) {
	if width < MinNodeWidth {
		width = MinNodeWidth
	}
	if height < MinNodeHeight {
		height = MinNodeHeight
	}
	return width, height
}

func ClampImageSize(pct int) int {
	if pct < MinImageSize {
		return MinImageSize
	}
	if pct > MaxImageSize {
		return MaxImageSize
	}
	return pct
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	minX, minY := min(r.X, o.X), min(r.Y, o.Y)
	maxX, maxY := max(r.X+r.W, o.X+o.W), max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}
