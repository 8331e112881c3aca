package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func treeMap() *Map {
	m := NewMap("test")
	m.Nodes[0].ID = "r"
	m.AddNode(NewNode("c1", Point{X: 250, Y: 300}, "c1"))
	m.AddNode(NewNode("c2", Point{X: 250, Y: 450}, "c2"))
	m.AddNode(NewNode("s", Point{X: 500, Y: 300}, "sibling"))
	m.AddEdge(NewEdge("r-c1", "r", "c1"))
	m.AddEdge(NewEdge("c1-c2", "c1", "c2"))
	m.AddEdge(NewEdge("r-s", "r", "s"))
	return m
}

func hiddenIDs(p Projection) []string {
	return p.Hidden.Sorted()
}

func TestProject_NothingCollapsed(t *testing.T) {
	m := treeMap()

	p := Project(m.Nodes, m.Edges)

	assert.Empty(t, p.Hidden)
	assert.Len(t, p.VisibleNodes(), 4)
	assert.Len(t, p.VisibleEdges(), 3)
}

func TestProject_CollapseHidesSubtree(t *testing.T) {
	m := treeMap()
	m.Node("c1").Data.Collapsed = true

	p := Project(m.Nodes, m.Edges)

	assert.Equal(t, []string{"c2"}, hiddenIDs(p))
	require.Len(t, p.Nodes, 4)
	assert.False(t, p.Nodes[0].Hidden)
	assert.False(t, p.Nodes[1].Hidden)
	assert.True(t, p.Nodes[2].Hidden)
	assert.False(t, p.Nodes[3].Hidden)

	require.Len(t, p.Edges, 3)
	assert.False(t, p.Edges[0].Hidden)
	assert.True(t, p.Edges[1].Hidden)
	assert.False(t, p.Edges[2].Hidden)
}

func TestProject_CollapseToggleIsIdempotent(t *testing.T) {
	m := treeMap()
	root := m.Node("r")

	root.Data.Collapsed = true
	first := hiddenIDs(Project(m.Nodes, m.Edges))

	root.Data.Collapsed = false
	assert.Empty(t, Project(m.Nodes, m.Edges).Hidden)

	root.Data.Collapsed = true
	again := hiddenIDs(Project(m.Nodes, m.Edges))

	assert.Equal(t, DescendantsOf(m.Edges, "r").Sorted(), first)
	assert.Equal(t, first, again)
}

func TestProject_DoesNotTouchEntities(t *testing.T) {
	m := treeMap()
	m.Node("r").Data.Collapsed = true
	before := m.Clone()

	p := Project(m.Nodes, m.Edges)
	p.Nodes[1].Node.Position = Point{X: -1, Y: -1}

	assert.Equal(t, before.Nodes, m.Nodes)
	assert.Equal(t, before.Edges, m.Edges)
}

func TestProject_PositionsKeptWhileCollapsed(t *testing.T) {
	m := treeMap()
	want := m.Node("c2").Position

	m.Node("c1").Data.Collapsed = true
	Project(m.Nodes, m.Edges)
	m.Node("c1").Data.Collapsed = false

	assert.Equal(t, want, m.Node("c2").Position)
}

func TestHiddenUnder(t *testing.T) {
	m := treeMap()

	assert.Equal(t, 3, HiddenUnder(m.Edges, "r"))
	assert.Equal(t, 0, HiddenUnder(m.Edges, "c2"))
}
