package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMap_SeedsRoot(t *testing.T) {
	m := NewMap("Plans")

	require.Len(t, m.Nodes, 1)
	root := m.Nodes[0]
	assert.Equal(t, "Plans", m.Title)
	assert.Equal(t, DefaultRootLabel, root.Data.Label)
	assert.Equal(t, Point{X: 250, Y: 150}, root.Position)
	assert.Equal(t, float64(RootWidth), root.Width)
	assert.Equal(t, float64(RootHeight), root.Height)
	assert.Empty(t, m.Edges)
}

func TestMap_RemoveNodeDropsAttachedEdges(t *testing.T) {
	m := treeMap()

	removed, dropped, ok := m.RemoveNode("c1")

	require.True(t, ok)
	assert.Equal(t, "c1", removed.ID)
	assert.Len(t, dropped, 2)
	assert.Nil(t, m.Node("c1"))
	require.Len(t, m.Edges, 1)
	assert.Equal(t, "r-s", m.Edges[0].ID)

	_, _, ok = m.RemoveNode("c1")
	assert.False(t, ok)
}

func TestMap_RemoveEdge(t *testing.T) {
	m := treeMap()

	e, ok := m.RemoveEdge("c1-c2")
	require.True(t, ok)
	assert.Equal(t, "c2", e.Target)
	assert.False(t, m.HasChildren("c1"))
	assert.True(t, m.HasChildren("r"))
}

func TestMap_SerializeHydrate(t *testing.T) {
	m := treeMap()
	m.Node("c1").Data.Collapsed = true

	nodes, edges, err := m.Serialize()
	require.NoError(t, err)

	back, err := Hydrate(m.Title, nodes, edges)
	require.NoError(t, err)
	assert.Equal(t, m.Nodes, back.Nodes)
	assert.Equal(t, m.Edges, back.Edges)
}

func TestMap_SerializeEmpty(t *testing.T) {
	nodes, edges, err := (&Map{}).Serialize()
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(nodes))
	assert.JSONEq(t, `[]`, string(edges))

	back, err := Hydrate("x", json.RawMessage("null"), nil)
	require.NoError(t, err)
	assert.Empty(t, back.Nodes)
	assert.Empty(t, back.Edges)
}

func TestMap_HydrateRejectsGarbage(t *testing.T) {
	_, err := Hydrate("x", json.RawMessage(`{"not":"a list"}`), nil)
	assert.Error(t, err)
}

func TestMap_DanglingEdges(t *testing.T) {
	m := treeMap()
	m.AddEdge(NewEdge("bad", "c2", "ghost"))

	dangling := m.DanglingEdges()
	require.Len(t, dangling, 1)
	assert.Equal(t, "bad", dangling[0].ID)
}

func TestMap_CloneIsDeep(t *testing.T) {
	m := treeMap()
	m.Nodes[0].Style = json.RawMessage(`{"a":1}`)
	c := m.Clone()

	c.Nodes[0].Position.X = 999
	c.Nodes[0].Style[2] = 'b'
	c.Edges[0].Data.Label = "changed"

	assert.NotEqual(t, 999.0, m.Nodes[0].Position.X)
	assert.JSONEq(t, `{"a":1}`, string(m.Nodes[0].Style))
	assert.Empty(t, m.Edges[0].Data.Label)
}

func TestBounds(t *testing.T) {
	_, ok := Bounds(nil)
	assert.False(t, ok)

	m := treeMap()
	r, ok := Bounds(m.Nodes)
	require.True(t, ok)
	assert.Equal(t, Rect{X: 250, Y: 150, W: 450, H: 380}, r)
}
