package graph

// PathType is the routing of an edge. The zero value and "default" both
// mean bezier.
type PathType string

const (
	PathBezier     PathType = "default"
	PathStraight   PathType = "straight"
	PathSmoothStep PathType = "smoothstep"
	PathStep       PathType = "step"
)

var PathTypes = []PathType{PathBezier, PathStraight, PathSmoothStep, PathStep}

type StrokeStyle string

const (
	StrokeSolid  StrokeStyle = "solid"
	StrokeDashed StrokeStyle = "dashed"
	StrokeDotted StrokeStyle = "dotted"
)

var StrokeStyles = []StrokeStyle{StrokeSolid, StrokeDashed, StrokeDotted}

// Dash returns the dash pattern of the stroke style, nil for solid.
func (s StrokeStyle) Dash() []float64 {
	switch s {
	case StrokeDashed:
		return []float64{28, 14}
	case StrokeDotted:
		return []float64{12, 10}
	default:
		return nil
	}
}

type WrapperSize string

const (
	WrapperSmall  WrapperSize = "small"
	WrapperMedium WrapperSize = "medium"
	WrapperLarge  WrapperSize = "large"
)

var WrapperSizes = []WrapperSize{WrapperSmall, WrapperMedium, WrapperLarge}

// Padding returns the vertical and horizontal label padding in pixels.
func (s WrapperSize) Padding() (vertical, horizontal float64) {
	switch s {
	case WrapperSmall:
		return 2, 4
	case WrapperLarge:
		return 6, 10
	default:
		return 4, 6
	}
}

const (
	DefaultEdgeColor         = "#22d3ee"
	DefaultEdgeStrokeWidth   = 2
	DefaultEdgeLabelFontSize = 12
)

type EdgeData struct {
	Style             StrokeStyle
	Color             string
	StrokeWidth       float64
	Label             string
	LabelColor        string
	LabelFontSize     int
	LabelRotation     float64
	LabelWrapperColor string
	LabelWrapperSize  WrapperSize
}

type Edge struct {
	ID     string
	Source string
	Target string
	Type   PathType
	Data   EdgeData
}

// Path resolves the routing from the type tag.
func (e *Edge) Path() PathType {
	switch e.Type {
	case PathStraight, PathSmoothStep, PathStep:
		return e.Type
	default:
		return PathBezier
	}
}

// HasLabel reports whether the edge renders a label box.
func (e *Edge) HasLabel() bool {
	return e.Data.Label != ""
}
