package editor

import "neonmap/internal/graph"

type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetNode
	TargetEdge
)

// Target is the single entity the settings panel binds to.
type Target struct {
	Kind TargetKind
	ID   string
}

// Target returns the selected edge if there is one, otherwise the first
// selected node in map order.
func (e *Editor) Target() Target {
	if e.selectedEdge != "" && e.m.Edge(e.selectedEdge) != nil {
		return Target{Kind: TargetEdge, ID: e.selectedEdge}
	}
	for _, n := range e.m.Nodes {
		if e.selected.Has(n.ID) {
			return Target{Kind: TargetNode, ID: n.ID}
		}
	}
	return Target{}
}

func (e *Editor) IsSelected(id string) bool {
	return e.selected.Has(id)
}

func (e *Editor) SelectedEdge() string {
	return e.selectedEdge
}

// SelectedNodes returns the selected node ids in map order.
func (e *Editor) SelectedNodes() []string {
	var ids []string
	for _, n := range e.m.Nodes {
		if e.selected.Has(n.ID) {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// Select makes id the only selected node.
func (e *Editor) Select(id string) {
	e.ClearSelection()
	if e.m.Node(id) != nil {
		e.selected.Add(id)
	}
}

// ToggleSelect adds id to or removes it from a multi-selection.
func (e *Editor) ToggleSelect(id string) {
	if e.m.Node(id) == nil {
		return
	}
	e.selectedEdge = ""
	if e.selected.Has(id) {
		delete(e.selected, id)
		return
	}
	e.selected.Add(id)
}

func (e *Editor) SelectNodes(ids ...string) {
	e.ClearSelection()
	for _, id := range ids {
		if e.m.Node(id) != nil {
			e.selected.Add(id)
		}
	}
}

func (e *Editor) SelectEdge(id string) {
	e.ClearSelection()
	if e.m.Edge(id) != nil {
		e.selectedEdge = id
	}
}

func (e *Editor) ClearSelection() {
	e.selected = make(graph.IDSet)
	e.selectedEdge = ""
}

// CycleSelection moves a single selection to the next visible node, or the
// previous one when back is set.
func (e *Editor) CycleSelection(back bool) string {
	visible := e.Projection().VisibleNodes()
	if len(visible) == 0 {
		return ""
	}
	current := -1
	for i, n := range visible {
		if e.selected.Has(n.ID) {
			current = i
			break
		}
	}
	var next int
	switch {
	case current < 0 && back:
		next = len(visible) - 1
	case current < 0:
		next = 0
	case back:
		next = (current - 1 + len(visible)) % len(visible)
	default:
		next = (current + 1) % len(visible)
	}
	e.Select(visible[next].ID)
	return visible[next].ID
}

func (e *Editor) forget(nodeIDs []string, edgeIDs []string) {
	for _, id := range nodeIDs {
		delete(e.selected, id)
	}
	for _, id := range edgeIDs {
		if e.selectedEdge == id {
			e.selectedEdge = ""
		}
	}
}
