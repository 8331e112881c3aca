package editor

import (
	"fmt"

	"neonmap/internal/graph"
)

// Clipboard is a deep copy of selected nodes and the edges running between
// them.
type Clipboard struct {
	Nodes []graph.Node
	Edges []graph.Edge
}

func (c Clipboard) Empty() bool {
	return len(c.Nodes) == 0
}

// Clipboard returns a copy of the current buffer.
func (e *Editor) Clipboard() Clipboard {
	return Clipboard{
		Nodes: graph.CloneNodes(e.clipboard.Nodes),
		Edges: append([]graph.Edge(nil), e.clipboard.Edges...),
	}
}

// Copy snapshots the selected nodes and their internal edges into the
// buffer. With nothing selected the buffer is left as it was. Calling it a
// second time after the event settles overwrites the first snapshot.
func (e *Editor) Copy() bool {
	var nodes []graph.Node
	for _, n := range e.m.Nodes {
		if e.selected.Has(n.ID) {
			nodes = append(nodes, n)
		}
	}
	if len(nodes) == 0 {
		return false
	}
	ids := make(graph.IDSet, len(nodes))
	for _, n := range nodes {
		ids.Add(n.ID)
	}
	var internal []graph.Edge
	for _, edge := range e.m.Edges {
		if ids.Has(edge.Source) && ids.Has(edge.Target) {
			internal = append(internal, edge)
		}
	}
	e.clipboard = Clipboard{Nodes: graph.CloneNodes(nodes), Edges: internal}
	return true
}

// Paste inserts the buffer with fresh ids, offset by (40, 40) from the
// copied positions. Pasted nodes become the selection. Edge endpoints are
// remapped to the pasted nodes; an endpoint outside the buffer keeps its
// original id.
func (e *Editor) Paste() []string {
	if e.clipboard.Empty() {
		return nil
	}
	ts := e.millis()
	used := e.m.IDs()
	remap := make(map[string]string, len(e.clipboard.Nodes))

	nodes := graph.CloneNodes(e.clipboard.Nodes)
	pasted := make([]string, len(nodes))
	for i := range nodes {
		id := uniqueID(fmt.Sprintf("node-%d-%d", ts, i), used)
		used.Add(id)
		remap[nodes[i].ID] = id
		nodes[i].ID = id
		nodes[i].Position = nodes[i].Position.Add(pasteOffset, pasteOffset)
		pasted[i] = id
	}

	edges := append([]graph.Edge(nil), e.clipboard.Edges...)
	for i := range edges {
		id := uniqueID(fmt.Sprintf("edge-paste-%d-%d", ts, i), used)
		used.Add(id)
		edges[i].ID = id
		if to, ok := remap[edges[i].Source]; ok {
			edges[i].Source = to
		}
		if to, ok := remap[edges[i].Target]; ok {
			edges[i].Target = to
		}
	}

	e.m.Nodes = append(e.m.Nodes, nodes...)
	e.m.Edges = append(e.m.Edges, edges...)
	e.SelectNodes(pasted...)

	ids := append([]string(nil), pasted...)
	for _, edge := range edges {
		ids = append(ids, edge.ID)
	}
	e.journal.Record(Change{
		Kind:    ChangePaste,
		IDs:     ids,
		Data:    Subgraph{Nodes: graph.CloneNodes(nodes), Edges: append([]graph.Edge(nil), edges...)},
		Inverse: Subgraph{},
	})
	return pasted
}
