package graph

import "encoding/json"

const (
	DefaultRootLabel = "Root"
	RootWidth        = 140
	RootHeight       = 44
)

// Map is the editable aggregate: ordered nodes, ordered edges and a title.
type Map struct {
	Title string
	Nodes []Node
	Edges []Edge
}

// NewMap seeds a brand-new map with a single root node.
func NewMap(title string) *Map {
	root := NewNode("1", Point{X: 250, Y: 150}, DefaultRootLabel)
	root.SetSize(RootWidth, RootHeight)
	root.Data.LabelFontSize = DefaultLabelFontSize
	return &Map{Title: title, Nodes: []Node{root}}
}

// Hydrate decodes serialized node and edge lists, resolving defaults.
func Hydrate(title string, nodes, edges json.RawMessage) (*Map, error) {
	m := &Map{Title: title}
	if len(nodes) > 0 && string(nodes) != "null" {
		if err := json.Unmarshal(nodes, &m.Nodes); err != nil {
			return nil, err
		}
	}
	if len(edges) > 0 && string(edges) != "null" {
		if err := json.Unmarshal(edges, &m.Edges); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Serialize encodes the node and edge lists for the persistence adapter.
func (m *Map) Serialize() (nodes, edges json.RawMessage, err error) {
	ns := m.Nodes
	if ns == nil {
		ns = []Node{}
	}
	es := m.Edges
	if es == nil {
		es = []Edge{}
	}
	if nodes, err = json.Marshal(ns); err != nil {
		return nil, nil, err
	}
	if edges, err = json.Marshal(es); err != nil {
		return nil, nil, err
	}
	return nodes, edges, nil
}

func (m *Map) NodeIndex(id string) int {
	for i := range m.Nodes {
		if m.Nodes[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Map) Node(id string) *Node {
	if i := m.NodeIndex(id); i >= 0 {
		return &m.Nodes[i]
	}
	return nil
}

func (m *Map) EdgeIndex(id string) int {
	for i := range m.Edges {
		if m.Edges[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Map) Edge(id string) *Edge {
	if i := m.EdgeIndex(id); i >= 0 {
		return &m.Edges[i]
	}
	return nil
}

// HasChildren reports whether any edge starts at id.
func (m *Map) HasChildren(id string) bool {
	for _, e := range m.Edges {
		if e.Source == id {
			return true
		}
	}
	return false
}

func (m *Map) AddNode(n Node) {
	m.Nodes = append(m.Nodes, n)
}

func (m *Map) AddEdge(e Edge) {
	m.Edges = append(m.Edges, e)
}

// RemoveNode deletes a node and every edge attached to it.
func (m *Map) RemoveNode(id string) (Node, []Edge, bool) {
	i := m.NodeIndex(id)
	if i < 0 {
		return Node{}, nil, false
	}
	removed := m.Nodes[i]
	m.Nodes = append(m.Nodes[:i:i], m.Nodes[i+1:]...)

	var dropped []Edge
	kept := m.Edges[:0:0]
	for _, e := range m.Edges {
		if e.Source == id || e.Target == id {
			dropped = append(dropped, e)
			continue
		}
		kept = append(kept, e)
	}
	m.Edges = kept
	return removed, dropped, true
}

func (m *Map) RemoveEdge(id string) (Edge, bool) {
	i := m.EdgeIndex(id)
	if i < 0 {
		return Edge{}, false
	}
	removed := m.Edges[i]
	m.Edges = append(m.Edges[:i:i], m.Edges[i+1:]...)
	return removed, true
}

// IDs returns every node and edge id currently in use.
func (m *Map) IDs() IDSet {
	ids := make(IDSet, len(m.Nodes)+len(m.Edges))
	for _, n := range m.Nodes {
		ids.Add(n.ID)
	}
	for _, e := range m.Edges {
		ids.Add(e.ID)
	}
	return ids
}

// DanglingEdges returns edges whose source or target is not a node of the
// map. Such edges are a data-integrity error of the caller.
func (m *Map) DanglingEdges() []Edge {
	nodes := make(IDSet, len(m.Nodes))
	for _, n := range m.Nodes {
		nodes.Add(n.ID)
	}
	var out []Edge
	for _, e := range m.Edges {
		if !nodes.Has(e.Source) || !nodes.Has(e.Target) {
			out = append(out, e)
		}
	}
	return out
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	c := &Map{Title: m.Title}
	c.Nodes = CloneNodes(m.Nodes)
	c.Edges = append([]Edge(nil), m.Edges...)
	return c
}

func CloneNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n
		if n.Style != nil {
			out[i].Style = append(json.RawMessage(nil), n.Style...)
		}
	}
	return out
}

// Bounds returns the rectangle covering every node, false for an empty map.
func Bounds(nodes []Node) (Rect, bool) {
	if len(nodes) == 0 {
		return Rect{}, false
	}
	r := nodes[0].Bounds()
	for i := 1; i < len(nodes); i++ {
		r = r.Union(nodes[i].Bounds())
	}
	return r, true
}
