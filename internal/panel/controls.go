package panel

import (
	"fmt"
	"strconv"

	"neonmap/internal/editor"
	"neonmap/internal/graph"
)

type ControlKind int

const (
	KindText ControlKind = iota
	KindChoice
	KindToggle
	KindStaged
	KindAction
)

// Control is one row of the panel as the view renders it.
type Control struct {
	Name     string
	Kind     ControlKind
	Value    string
	Options  []string
	Index    int
	Disabled bool

	cycle    func(i int) bool
	activate func() bool
	text     func(v string) bool
}

func textControl(name, value string, set func(string) bool) Control {
	return Control{Name: name, Kind: KindText, Value: value, Index: -1, text: set}
}

func choice(name string, options []string, current int, apply func(int) bool) Control {
	c := Control{Name: name, Kind: KindChoice, Options: options, Index: current, cycle: apply}
	if current >= 0 && current < len(options) {
		c.Value = options[current]
	}
	return c
}

func toggle(name string, on bool, flip func() bool) Control {
	v := "off"
	if on {
		v = "on"
	}
	return Control{Name: name, Kind: KindToggle, Value: v, Index: -1, activate: flip}
}

func indexOf[T comparable](list []T, v T) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return -1
}

func labels[T any](list []T, format func(T) string) []string {
	out := make([]string, len(list))
	for i, v := range list {
		out[i] = format(v)
	}
	return out
}

func colorNames() []string {
	return labels(ColorPresets, func(c ColorPreset) string { return c.Name })
}

func degrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "°"
}

// Controls lists the controls for the current target. It is empty when
// nothing is selected.
func (p *Panel) Controls() []Control {
	switch p.Sync().Kind {
	case editor.TargetNode:
		return p.nodeControls(p.node())
	case editor.TargetEdge:
		return p.edgeControls(p.edge())
	}
	return nil
}

func (p *Panel) nodeControls(n *graph.Node) []Control {
	d := n.Data
	update := func(fn func(*graph.NodeData)) bool {
		return p.updateNode(func(n *graph.Node) { fn(&n.Data) })
	}
	font := p.NodeFontTarget()
	color := p.NodeColorTarget()

	sizeIndex := -1
	for i, s := range SizePresets {
		if s.W == n.Width && s.H == n.Height {
			sizeIndex = i
		}
	}

	image := Control{Name: "Image", Kind: KindStaged, Value: d.Image, Index: -1, activate: func() bool {
		p.BeginImage()
		return true
	}}
	link := Control{Name: "Link", Kind: KindStaged, Value: d.Link, Index: -1, activate: func() bool {
		p.BeginLink()
		return true
	}}

	collapse := toggle("Collapse", d.Collapsed, func() bool { return p.ed.ToggleCollapsed(n.ID) })
	collapse.Disabled = !p.ed.Map().HasChildren(n.ID)

	return []Control{
		textControl("Label", d.Label, func(v string) bool {
			return update(func(d *graph.NodeData) { d.Label = v })
		}),
		choice("Font for", labels(NodeFontTargets, func(t NodeFontTarget) string { return string(t) }), p.nodeFont, func(i int) bool {
			p.nodeFont = i
			return false
		}),
		choice("Font size", labels(NodeFontSizes, strconv.Itoa), indexOf(NodeFontSizes, font.get(&d)), func(i int) bool {
			return update(func(d *graph.NodeData) { font.set(d, NodeFontSizes[i]) })
		}),
		choice("Colour for", labels(NodeColorTargets, func(t NodeColorTarget) string { return string(t) }), p.nodeColor, func(i int) bool {
			p.nodeColor = i
			return false
		}),
		choice("Colour", colorNames(), colorIndex(color.get(&d)), func(i int) bool {
			return p.ApplyNodeColor(ColorPresets[i].Value)
		}),
		toggle("Wrapper", d.WrapperEnabled, func() bool {
			return update(func(d *graph.NodeData) { d.WrapperEnabled = !d.WrapperEnabled })
		}),
		textControl("Top text", d.TopText, func(v string) bool {
			return update(func(d *graph.NodeData) { d.TopText = v })
		}),
		textControl("Bottom text", d.BottomText, func(v string) bool {
			return update(func(d *graph.NodeData) { d.BottomText = v })
		}),
		image,
		choice("Image size", labels(ImageSizes, func(v int) string { return fmt.Sprintf("%d%%", v) }), indexOf(ImageSizes, d.ImageSize), func(i int) bool {
			return update(func(d *graph.NodeData) { d.ImageSize = ImageSizes[i] })
		}),
		link,
		choice("Link size", labels(NodeFontSizes, strconv.Itoa), indexOf(NodeFontSizes, d.LinkFontSize), func(i int) bool {
			return update(func(d *graph.NodeData) { d.LinkFontSize = NodeFontSizes[i] })
		}),
		choice("Rotation", labels(Rotations, degrees), indexOf(Rotations, d.Rotation), func(i int) bool {
			return update(func(d *graph.NodeData) { d.Rotation = Rotations[i] })
		}),
		choice("Shape", labels(graph.Shapes, func(s graph.Shape) string { return string(s) }), indexOf(graph.Shapes, d.Shape), func(i int) bool {
			return update(func(d *graph.NodeData) { d.Shape = graph.Shapes[i] })
		}),
		choice("Size", labels(SizePresets, func(s SizePreset) string { return s.Title }), sizeIndex, p.ApplySizePreset),
		collapse,
		toggle("Drag branch", d.DragWithChildren, func() bool { return p.ed.ToggleDragWithChildren(n.ID) }),
		{Name: "Delete node", Kind: KindAction, Index: -1, activate: p.Delete},
	}
}

func (p *Panel) edgeControls(e *graph.Edge) []Control {
	d := e.Data
	update := func(fn func(*graph.Edge)) bool { return p.updateEdge(fn) }
	color := p.EdgeColorTarget()

	return []Control{
		textControl("Label", d.Label, func(v string) bool {
			return update(func(e *graph.Edge) { e.Data.Label = v })
		}),
		choice("Font size", labels(EdgeFontSizes, strconv.Itoa), indexOf(EdgeFontSizes, d.LabelFontSize), func(i int) bool {
			return update(func(e *graph.Edge) { e.Data.LabelFontSize = EdgeFontSizes[i] })
		}),
		choice("Rotation", labels(Rotations, degrees), indexOf(Rotations, d.LabelRotation), func(i int) bool {
			return update(func(e *graph.Edge) { e.Data.LabelRotation = Rotations[i] })
		}),
		choice("Stroke", labels(graph.StrokeStyles, func(s graph.StrokeStyle) string { return string(s) }), indexOf(graph.StrokeStyles, d.Style), func(i int) bool {
			return update(func(e *graph.Edge) { e.Data.Style = graph.StrokeStyles[i] })
		}),
		choice("Colour for", labels(EdgeColorTargets, func(t EdgeColorTarget) string { return string(t) }), p.edgeColor, func(i int) bool {
			p.edgeColor = i
			return false
		}),
		choice("Colour", colorNames(), colorIndex(color.get(&d)), func(i int) bool {
			return p.ApplyEdgeColor(ColorPresets[i].Value)
		}),
		choice("Width", labels(StrokeWidths, func(w float64) string { return strconv.FormatFloat(w, 'f', -1, 64) }), indexOf(StrokeWidths, d.StrokeWidth), func(i int) bool {
			return update(func(e *graph.Edge) { e.Data.StrokeWidth = StrokeWidths[i] })
		}),
		choice("Wrapper", labels(graph.WrapperSizes, func(s graph.WrapperSize) string { return string(s) }), indexOf(graph.WrapperSizes, d.LabelWrapperSize), func(i int) bool {
			return update(func(e *graph.Edge) { e.Data.LabelWrapperSize = graph.WrapperSizes[i] })
		}),
		choice("Path", labels(graph.PathTypes, pathName), indexOf(graph.PathTypes, e.Path()), func(i int) bool {
			return update(func(e *graph.Edge) { e.Type = graph.PathTypes[i] })
		}),
		{Name: "Delete edge", Kind: KindAction, Index: -1, activate: p.Delete},
	}
}

func pathName(t graph.PathType) string {
	if t == graph.PathBezier {
		return "bezier"
	}
	return string(t)
}

// Cycle steps a choice control by delta options and applies the result. A
// control showing a value outside its presets starts from the first or the
// last preset.
func (p *Panel) Cycle(row, delta int) bool {
	controls := p.Controls()
	if row < 0 || row >= len(controls) {
		return false
	}
	c := controls[row]
	if c.Kind != KindChoice || c.Disabled || len(c.Options) == 0 || delta == 0 {
		return false
	}
	n := len(c.Options)
	var next int
	switch {
	case c.Index < 0 && delta > 0:
		next = 0
	case c.Index < 0:
		next = n - 1
	default:
		next = ((c.Index+delta)%n + n) % n
	}
	c.cycle(next)
	return true
}

// Choose applies a specific option of a choice control.
func (p *Panel) Choose(row, option int) bool {
	controls := p.Controls()
	if row < 0 || row >= len(controls) {
		return false
	}
	c := controls[row]
	if c.Kind != KindChoice || c.Disabled || option < 0 || option >= len(c.Options) {
		return false
	}
	c.cycle(option)
	return true
}

// Activate flips a toggle, runs an action or opens a staged field.
func (p *Panel) Activate(row int) bool {
	controls := p.Controls()
	if row < 0 || row >= len(controls) {
		return false
	}
	c := controls[row]
	if c.activate == nil || c.Disabled {
		return false
	}
	return c.activate()
}

// SetText writes a text control straight into the model.
func (p *Panel) SetText(row int, v string) bool {
	controls := p.Controls()
	if row < 0 || row >= len(controls) || controls[row].text == nil {
		return false
	}
	return controls[row].text(v)
}

// Row returns the index of the named control, or -1.
func (p *Panel) Row(name string) int {
	for i, c := range p.Controls() {
		if c.Name == name {
			return i
		}
	}
	return -1
}
