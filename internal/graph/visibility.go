package graph

type VisibleNode struct {
	Node   Node
	Hidden bool
}

type VisibleEdge struct {
	Edge   Edge
	Hidden bool
}

// Projection is the render-time view of a map: the same nodes and edges in
// the same order, each flagged hidden when a collapsed ancestor hides it.
type Projection struct {
	Nodes  []VisibleNode
	Edges  []VisibleEdge
	Hidden IDSet
}

// Project computes which nodes and edges are hidden by collapsed ancestors.
// It copies entities and never writes to the inputs.
func Project(nodes []Node, edges []Edge) Projection {
	children := Children(edges)
	hidden := make(IDSet)
	for _, n := range nodes {
		if !n.Data.Collapsed {
			continue
		}
		for id := range descendants(children, n.ID) {
			hidden.Add(id)
		}
	}

	p := Projection{
		Nodes:  make([]VisibleNode, len(nodes)),
		Edges:  make([]VisibleEdge, len(edges)),
		Hidden: hidden,
	}
	for i, n := range nodes {
		p.Nodes[i] = VisibleNode{Node: n, Hidden: hidden.Has(n.ID)}
	}
	for i, e := range edges {
		p.Edges[i] = VisibleEdge{Edge: e, Hidden: hidden.Has(e.Source) || hidden.Has(e.Target)}
	}
	return p
}

// VisibleNodes returns only the nodes that are not hidden.
func (p Projection) VisibleNodes() []Node {
	out := make([]Node, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		if !n.Hidden {
			out = append(out, n.Node)
		}
	}
	return out
}

func (p Projection) VisibleEdges() []Edge {
	out := make([]Edge, 0, len(p.Edges))
	for _, e := range p.Edges {
		if !e.Hidden {
			out = append(out, e.Edge)
		}
	}
	return out
}

// HiddenUnder counts how many nodes a collapsed node is hiding.
func HiddenUnder(edges []Edge, id string) int {
	return len(DescendantsOf(edges, id))
}
