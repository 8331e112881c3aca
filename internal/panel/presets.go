package panel

import (
	"strings"

	"neonmap/internal/graph"
)

type ColorPreset struct {
	Name  string
	Value string
}

// ColorPresets is the palette shared by nodes and edges, ordered by hue with
// the neutrals last.
var ColorPresets = []ColorPreset{
	{"Red", "#FF0000"},
	{"Brown", "#A52A2A"},
	{"Orange", "#FFA500"},
	{"Yellow", "#FFFF00"},
	{"Olive", "#808000"},
	{"Chartreuse", "#7FFF00"},
	{"Green", "#008000"},
	{"Cyan", "#00FFFF"},
	{"Blue", "#0000FF"},
	{"Indigo", "#4B0082"},
	{"Purple", "#800080"},
	{"Crimson", "#DC143C"},
	{"Pink", "#FFC0CB"},
	{"Gray", "#808080"},
	{"Black", "#000000"},
	{"White", "#FFFFFF"},
}

var (
	NodeFontSizes = []int{4, 6, 8, 10, 12, 14, 16, 18, 20, 24, 28, 32, 36, 40, 48, 52}
	EdgeFontSizes = []int{4, 6, 8, 10, 12, 14, 16, 18, 20, 24, 28, 32}
	StrokeWidths  = []float64{2, 4, 6, 8, 10, 12}
	ImageSizes    = []int{50, 75, 100, 125, 150}
	Rotations     = []float64{0, -45, -90, 45, 90, 180}
)

type SizePreset struct {
	Title string
	W, H  float64
}

var SizePresets = []SizePreset{
	{"S", 120, 56},
	{"M", 160, 72},
	{"L", 200, 88},
	{"XL", 260, 100},
	{"XXL", 320, 120},
	{"3XL", 400, 150},
	{"4XL", 500, 180},
}

// NodeColorTarget picks which node attribute a colour preset writes.
type NodeColorTarget string

const (
	NodeColorWrapper    NodeColorTarget = "wrapper"
	NodeColorCard       NodeColorTarget = "card"
	NodeColorLabel      NodeColorTarget = "label"
	NodeColorTopText    NodeColorTarget = "top text"
	NodeColorBottomText NodeColorTarget = "bottom text"
	NodeColorBorder     NodeColorTarget = "border"
)

var NodeColorTargets = []NodeColorTarget{
	NodeColorWrapper, NodeColorCard, NodeColorLabel, NodeColorTopText, NodeColorBottomText, NodeColorBorder,
}

func (t NodeColorTarget) get(d *graph.NodeData) string {
	switch t {
	case NodeColorWrapper:
		return d.Color
	case NodeColorLabel:
		return d.LabelColor
	case NodeColorTopText:
		return d.TopTextColor
	case NodeColorBottomText:
		return d.BottomTextColor
	case NodeColorBorder:
		return d.BorderColor
	default:
		return d.CardColor
	}
}

func (t NodeColorTarget) set(d *graph.NodeData, v string) {
	switch t {
	case NodeColorWrapper:
		d.Color = v
	case NodeColorLabel:
		d.LabelColor = v
	case NodeColorTopText:
		d.TopTextColor = v
	case NodeColorBottomText:
		d.BottomTextColor = v
	case NodeColorBorder:
		d.BorderColor = v
	default:
		d.CardColor = v
	}
}

// NodeFontTarget picks which node text a font size preset writes.
type NodeFontTarget string

const (
	NodeFontLabel      NodeFontTarget = "label"
	NodeFontTopText    NodeFontTarget = "top text"
	NodeFontBottomText NodeFontTarget = "bottom text"
)

var NodeFontTargets = []NodeFontTarget{NodeFontLabel, NodeFontTopText, NodeFontBottomText}

func (t NodeFontTarget) get(d *graph.NodeData) int {
	switch t {
	case NodeFontTopText:
		return d.TopTextFontSize
	case NodeFontBottomText:
		return d.BottomTextFontSize
	default:
		return d.LabelFontSize
	}
}

func (t NodeFontTarget) set(d *graph.NodeData, v int) {
	switch t {
	case NodeFontTopText:
		d.TopTextFontSize = v
	case NodeFontBottomText:
		d.BottomTextFontSize = v
	default:
		d.LabelFontSize = v
	}
}

type EdgeColorTarget string

const (
	EdgeColorLabel   EdgeColorTarget = "label"
	EdgeColorLine    EdgeColorTarget = "line"
	EdgeColorWrapper EdgeColorTarget = "wrapper"
)

var EdgeColorTargets = []EdgeColorTarget{EdgeColorLabel, EdgeColorLine, EdgeColorWrapper}

func (t EdgeColorTarget) get(d *graph.EdgeData) string {
	switch t {
	case EdgeColorLabel:
		return d.LabelColor
	case EdgeColorWrapper:
		return d.LabelWrapperColor
	default:
		return d.Color
	}
}

func (t EdgeColorTarget) set(d *graph.EdgeData, v string) {
	switch t {
	case EdgeColorLabel:
		d.LabelColor = v
	case EdgeColorWrapper:
		d.LabelWrapperColor = v
	default:
		d.Color = v
	}
}

func colorIndex(v string) int {
	for i, c := range ColorPresets {
		if strings.EqualFold(c.Value, v) {
			return i
		}
	}
	return -1
}
