package editor

import (
	"fmt"
	"math"
	"strconv"

	"neonmap/internal/graph"
)

const (
	NewNodeLabel = "New node"
	pasteOffset  = 40
)

// MoveNode translates a node by (dx, dy). When the node drags with its
// children, every descendant moves by the same delta. It returns the ids
// that moved.
func (e *Editor) MoveNode(id string, dx, dy float64) []string {
	if dx == 0 && dy == 0 {
		return nil
	}
	n := e.m.Node(id)
	if n == nil {
		return nil
	}
	ids := graph.NewIDSet(id)
	if n.Data.DragWithChildren {
		for d := range graph.DescendantsOf(e.m.Edges, id) {
			ids.Add(d)
		}
	}
	return e.translate(ids, dx, dy)
}

// SetPosition applies a position-change event carrying an absolute
// position.
func (e *Editor) SetPosition(id string, pos graph.Point) []string {
	n := e.m.Node(id)
	if n == nil {
		return nil
	}
	return e.MoveNode(id, pos.X-n.Position.X, pos.Y-n.Position.Y)
}

// MoveSelection translates every selected node, and the branches of those
// that drag with children, exactly once.
func (e *Editor) MoveSelection(dx, dy float64) []string {
	if dx == 0 && dy == 0 || len(e.selected) == 0 {
		return nil
	}
	ids := make(graph.IDSet)
	for _, n := range e.m.Nodes {
		if !e.selected.Has(n.ID) {
			continue
		}
		ids.Add(n.ID)
		if n.Data.DragWithChildren {
			for d := range graph.DescendantsOf(e.m.Edges, n.ID) {
				ids.Add(d)
			}
		}
	}
	return e.translate(ids, dx, dy)
}

func (e *Editor) translate(ids graph.IDSet, dx, dy float64) []string {
	var moved []string
	for i := range e.m.Nodes {
		n := &e.m.Nodes[i]
		if ids.Has(n.ID) {
			n.Position = n.Position.Add(dx, dy)
			moved = append(moved, n.ID)
		}
	}
	delta := graph.Point{X: dx, Y: dy}
	e.journal.Record(Change{
		Kind:    ChangeMove,
		IDs:     moved,
		Data:    MoveData{IDs: moved, Delta: delta},
		Inverse: MoveData{IDs: moved, Delta: graph.Point{X: -dx, Y: -dy}},
	})
	return moved
}

// Resize finalizes a resize gesture. The size is rounded to whole units and
// held at the minimum; descendants are untouched.
func (e *Editor) Resize(id string, width, height float64) bool {
	n := e.m.Node(id)
	if n == nil {
		return false
	}
	before := *n
	n.SetSize(math.Round(width), math.Round(height))
	if n.Width == before.Width && n.Height == before.Height {
		return false
	}
	e.journal.Record(Change{
		Kind:    ChangeResize,
		IDs:     []string{id},
		Data:    NodeState{Node: *n},
		Inverse: NodeState{Node: before},
	})
	return true
}

// ToggleCollapsed flips the collapsed flag of a node that has children.
// Leaves cannot be collapsed; false is returned for them.
func (e *Editor) ToggleCollapsed(id string) bool {
	n := e.m.Node(id)
	if n == nil || !e.m.HasChildren(id) {
		return false
	}
	n.Data.Collapsed = !n.Data.Collapsed
	e.journal.Record(Change{
		Kind:    ChangeCollapse,
		IDs:     []string{id},
		Data:    n.Data.Collapsed,
		Inverse: !n.Data.Collapsed,
	})
	return true
}

func (e *Editor) ToggleDragWithChildren(id string) bool {
	return e.UpdateNode(id, func(n *graph.Node) {
		n.Data.DragWithChildren = !n.Data.DragWithChildren
	})
}

// Connect appends a default edge from source to target.
func (e *Editor) Connect(source, target string) (graph.Edge, error) {
	if e.m.Node(source) == nil || e.m.Node(target) == nil {
		return graph.Edge{}, ErrUnknownNode
	}
	if e.opts.RejectCycles {
		if source == target {
			return graph.Edge{}, ErrSelfLoop
		}
		if graph.WouldCycle(e.m.Edges, source, target) {
			return graph.Edge{}, ErrCycle
		}
	}
	id := uniqueID(fmt.Sprintf("xy-edge__%s-%s", source, target), e.m.IDs())
	edge := graph.NewEdge(id, source, target)
	e.m.AddEdge(edge)
	e.journal.Record(Change{
		Kind:    ChangeConnect,
		IDs:     []string{id},
		Data:    Subgraph{Edges: []graph.Edge{edge}},
		Inverse: Subgraph{},
	})
	return edge, nil
}

// AddNode creates a default node near the canvas origin.
func (e *Editor) AddNode() graph.Node {
	pos := graph.Point{X: 250, Y: 150}
	if len(e.m.Nodes) > 0 {
		pos = graph.Point{
			X: 250 + e.opts.Rand.Float64()*100,
			Y: 150 + e.opts.Rand.Float64()*100,
		}
	}
	id := uniqueID("node-"+strconv.FormatInt(e.millis(), 10), e.m.IDs())
	n := graph.NewNode(id, pos, NewNodeLabel)
	e.m.AddNode(n)
	e.journal.Record(Change{
		Kind:    ChangeAddNode,
		IDs:     []string{id},
		Data:    Subgraph{Nodes: []graph.Node{n}},
		Inverse: Subgraph{},
	})
	return n
}

// DeleteNode removes a node together with every attached edge.
func (e *Editor) DeleteNode(id string) bool {
	n, dropped, ok := e.m.RemoveNode(id)
	if !ok {
		return false
	}
	edgeIDs := make([]string, len(dropped))
	for i, d := range dropped {
		edgeIDs[i] = d.ID
	}
	e.forget([]string{id}, edgeIDs)
	e.journal.Record(Change{
		Kind:    ChangeDelete,
		IDs:     append([]string{id}, edgeIDs...),
		Data:    Subgraph{},
		Inverse: Subgraph{Nodes: []graph.Node{n}, Edges: dropped},
	})
	return true
}

func (e *Editor) DeleteEdge(id string) bool {
	edge, ok := e.m.RemoveEdge(id)
	if !ok {
		return false
	}
	e.forget(nil, []string{id})
	e.journal.Record(Change{
		Kind:    ChangeDelete,
		IDs:     []string{id},
		Data:    Subgraph{},
		Inverse: Subgraph{Edges: []graph.Edge{edge}},
	})
	return true
}

// DeleteSelection removes the selected edge, or else every selected node.
func (e *Editor) DeleteSelection() int {
	if e.selectedEdge != "" {
		if e.DeleteEdge(e.selectedEdge) {
			return 1
		}
		return 0
	}
	count := 0
	for _, id := range e.SelectedNodes() {
		if e.DeleteNode(id) {
			count++
		}
	}
	return count
}

// UpdateNode applies a patch to a node in place. The size minimum and the
// image scale range are enforced afterwards.
func (e *Editor) UpdateNode(id string, patch func(*graph.Node)) bool {
	n := e.m.Node(id)
	if n == nil {
		return false
	}
	before := *n
	patch(n)
	n.ID = before.ID
	n.SetSize(n.Width, n.Height)
	n.Data.ImageSize = graph.ClampImageSize(n.Data.ImageSize)
	e.journal.Record(Change{
		Kind:    ChangeUpdateNode,
		IDs:     []string{id},
		Data:    NodeState{Node: *n},
		Inverse: NodeState{Node: before},
	})
	return true
}

func (e *Editor) UpdateEdge(id string, patch func(*graph.Edge)) bool {
	edge := e.m.Edge(id)
	if edge == nil {
		return false
	}
	before := *edge
	patch(edge)
	edge.ID, edge.Source, edge.Target = before.ID, before.Source, before.Target
	edge.Type = edge.Path()
	e.journal.Record(Change{
		Kind:    ChangeUpdateEdge,
		IDs:     []string{id},
		Data:    EdgeState{Edge: *edge},
		Inverse: EdgeState{Edge: before},
	})
	return true
}

// uniqueID returns base, or base with the smallest numeric suffix that is not
// already used.
func uniqueID(base string, used graph.IDSet) string {
	if !used.Has(base) {
		return base
	}
	for i := 1; ; i++ {
		id := base + "-" + strconv.Itoa(i)
		if !used.Has(id) {
			return id
		}
	}
}
