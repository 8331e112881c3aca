// Package panel binds the settings controls to the selected node or edge.
// Every control reads the live entity and writes its patch straight back
// through the editor.
package panel

import (
	"strings"

	"neonmap/internal/editor"
	"neonmap/internal/graph"
)

type Panel struct {
	ed     *editor.Editor
	target editor.Target

	Image Staged
	Link  Staged

	nodeColor int
	nodeFont  int
	edgeColor int
}

func New(ed *editor.Editor) *Panel {
	p := &Panel{
		ed:        ed,
		nodeColor: 1, // card
		edgeColor: 1, // line
	}
	p.target = ed.Target()
	return p
}

// Sync remounts the panel when the selection moved to another entity. Staged
// fields start fresh for the new entity.
func (p *Panel) Sync() editor.Target {
	t := p.ed.Target()
	if t != p.target {
		p.target = t
		p.Image.Cancel()
		p.Link.Cancel()
	}
	return t
}

func (p *Panel) Target() editor.Target {
	return p.Sync()
}

func (p *Panel) node() *graph.Node {
	if t := p.Sync(); t.Kind == editor.TargetNode {
		return p.ed.Map().Node(t.ID)
	}
	return nil
}

func (p *Panel) edge() *graph.Edge {
	if t := p.Sync(); t.Kind == editor.TargetEdge {
		return p.ed.Map().Edge(t.ID)
	}
	return nil
}

func (p *Panel) updateNode(fn func(*graph.Node)) bool {
	n := p.node()
	if n == nil {
		return false
	}
	return p.ed.UpdateNode(n.ID, fn)
}

func (p *Panel) updateEdge(fn func(*graph.Edge)) bool {
	e := p.edge()
	if e == nil {
		return false
	}
	return p.ed.UpdateEdge(e.ID, fn)
}

// Staging returns the staged field currently open, if any.
func (p *Panel) Staging() *Staged {
	p.Sync()
	switch {
	case p.Image.Open():
		return &p.Image
	case p.Link.Open():
		return &p.Link
	}
	return nil
}

func (p *Panel) BeginImage() {
	if n := p.node(); n != nil {
		p.Link.Cancel()
		p.Image.Begin(n.Data.Image)
	}
}

// SubmitImage commits the staged image. A path naming a local file is
// embedded as a data URL; anything else is stored as a URL. An empty value
// closes the field without touching the model. When the file is not an
// image the field stays open.
func (p *Panel) SubmitImage() error {
	if p.node() == nil || !p.Image.Open() {
		return nil
	}
	v := strings.TrimSpace(p.Image.Value)
	if isFile(v) {
		url, err := DataURL(v)
		if err != nil {
			return err
		}
		v = url
	}
	p.Image.Cancel()
	if v == "" {
		return nil
	}
	p.updateNode(func(n *graph.Node) { n.Data.Image = v })
	return nil
}

func (p *Panel) RemoveImage() bool {
	p.Image.Cancel()
	return p.updateNode(func(n *graph.Node) { n.Data.Image = "" })
}

func (p *Panel) BeginLink() {
	if n := p.node(); n != nil {
		p.Image.Cancel()
		p.Link.Begin(n.Data.Link)
	}
}

// SubmitLink commits the staged link. Submitting an empty value removes the
// link.
func (p *Panel) SubmitLink() {
	if p.node() == nil || !p.Link.Open() {
		return
	}
	v := strings.TrimSpace(p.Link.Value)
	p.Link.Cancel()
	p.updateNode(func(n *graph.Node) { n.Data.Link = v })
}

func (p *Panel) RemoveLink() bool {
	p.Link.Cancel()
	return p.updateNode(func(n *graph.Node) { n.Data.Link = "" })
}

// SubmitStaged commits whichever staged field is open.
func (p *Panel) SubmitStaged() error {
	switch p.Staging() {
	case &p.Image:
		return p.SubmitImage()
	case &p.Link:
		p.SubmitLink()
	}
	return nil
}

func (p *Panel) CancelStaged() {
	p.Image.Cancel()
	p.Link.Cancel()
}

func (p *Panel) NodeColorTarget() NodeColorTarget {
	return NodeColorTargets[p.nodeColor]
}

func (p *Panel) NodeFontTarget() NodeFontTarget {
	return NodeFontTargets[p.nodeFont]
}

func (p *Panel) EdgeColorTarget() EdgeColorTarget {
	return EdgeColorTargets[p.edgeColor]
}

// ApplySizePreset resizes the node to one of the size presets.
func (p *Panel) ApplySizePreset(i int) bool {
	if i < 0 || i >= len(SizePresets) {
		return false
	}
	n := p.node()
	if n == nil {
		return false
	}
	return p.ed.Resize(n.ID, SizePresets[i].W, SizePresets[i].H)
}

func (p *Panel) ApplyNodeColor(value string) bool {
	target := p.NodeColorTarget()
	return p.updateNode(func(n *graph.Node) { target.set(&n.Data, value) })
}

func (p *Panel) ApplyEdgeColor(value string) bool {
	target := p.EdgeColorTarget()
	return p.updateEdge(func(e *graph.Edge) { target.set(&e.Data, value) })
}

func (p *Panel) Delete() bool {
	switch t := p.Sync(); t.Kind {
	case editor.TargetNode:
		return p.ed.DeleteNode(t.ID)
	case editor.TargetEdge:
		return p.ed.DeleteEdge(t.ID)
	}
	return false
}
