package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neonmap/internal/graph"
)

func TestCopy_NothingSelectedKeepsBuffer(t *testing.T) {
	e := newTestEditor(t, testOptions())
	e.Select("o")
	require.True(t, e.Copy())

	e.ClearSelection()
	assert.False(t, e.Copy())

	clip := e.Clipboard()
	require.Len(t, clip.Nodes, 1)
	assert.Equal(t, "o", clip.Nodes[0].ID)
}

func TestCopy_OnlyInternalEdges(t *testing.T) {
	e := newTestEditor(t, testOptions())
	e.SelectNodes("c1", "c2")

	require.True(t, e.Copy())

	clip := e.Clipboard()
	assert.Len(t, clip.Nodes, 2)
	require.Len(t, clip.Edges, 1)
	assert.Equal(t, "c1-c2", clip.Edges[0].ID)
}

func TestCopy_BufferIsDeep(t *testing.T) {
	e := newTestEditor(t, testOptions())
	e.Select("c1")
	require.True(t, e.Copy())

	e.Map().Node("c1").Data.Label = "changed"
	e.MoveNode("c1", 500, 500)

	clip := e.Clipboard()
	assert.Equal(t, "c1", clip.Nodes[0].Data.Label)
	assert.Equal(t, graph.Point{X: 250, Y: 300}, clip.Nodes[0].Position)
}

func TestCopy_SecondSnapshotWins(t *testing.T) {
	e := newTestEditor(t, testOptions())
	e.Select("c1")
	require.True(t, e.Copy())

	e.UpdateNode("c1", func(n *graph.Node) { n.Data.Label = "settled" })
	require.True(t, e.Copy())

	assert.Equal(t, "settled", e.Clipboard().Nodes[0].Data.Label)
}

func TestPaste_ClipboardScope(t *testing.T) {
	e := newTestEditor(t, testOptions())
	before := e.Snapshot()
	preIDs := before.IDs()
	e.SelectNodes("c1", "c2")
	require.True(t, e.Copy())

	pasted := e.Paste()

	require.Len(t, pasted, 2)
	assert.Len(t, e.Map().Nodes, len(before.Nodes)+2)
	assert.Len(t, e.Map().Edges, len(before.Edges)+1)

	pastedSet := graph.NewIDSet(pasted...)
	for _, id := range pasted {
		assert.False(t, preIDs.Has(id), "id %s collides", id)
	}

	newEdge := e.Map().Edges[len(e.Map().Edges)-1]
	assert.False(t, preIDs.Has(newEdge.ID))
	assert.True(t, pastedSet.Has(newEdge.Source))
	assert.True(t, pastedSet.Has(newEdge.Target))

	count := 0
	for _, edge := range e.Map().Edges {
		if edge.Source == "r" {
			count++
		}
	}
	assert.Equal(t, 1, count, "r→c1 must not be duplicated")
}

func TestPaste_OffsetAndSelection(t *testing.T) {
	e := newTestEditor(t, testOptions())
	e.SelectNodes("c1", "c2")
	require.True(t, e.Copy())
	e.Select("o")

	pasted := e.Paste()

	require.Equal(t, []string{"node-1700000000000-0", "node-1700000000000-1"}, pasted)
	assert.Equal(t, graph.Point{X: 290, Y: 340}, e.Map().Node(pasted[0]).Position)
	assert.Equal(t, graph.Point{X: 290, Y: 490}, e.Map().Node(pasted[1]).Position)
	assert.Equal(t, pasted, e.SelectedNodes())
	assert.False(t, e.IsSelected("o"))
	assert.Equal(t, "c1", e.Map().Node(pasted[0]).Data.Label)

	edge := e.Map().Edges[len(e.Map().Edges)-1]
	assert.Equal(t, "edge-paste-1700000000000-0", edge.ID)
	assert.Equal(t, pasted[0], edge.Source)
	assert.Equal(t, pasted[1], edge.Target)
}

func TestPaste_TwiceInSameMillisecondStaysUnique(t *testing.T) {
	e := newTestEditor(t, testOptions())
	e.Select("c1")
	require.True(t, e.Copy())

	first := e.Paste()
	second := e.Paste()

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.NotEqual(t, first[0], second[0])
	assert.Equal(t, "node-1700000000000-0-1", second[0])
}

func TestPaste_StaleEndpointFallsBack(t *testing.T) {
	e := newTestEditor(t, testOptions())
	e.clipboard = Clipboard{
		Nodes: []graph.Node{*e.Map().Node("c2")},
		Edges: []graph.Edge{graph.NewEdge("x", "c1", "c2")},
	}

	pasted := e.Paste()

	require.Len(t, pasted, 1)
	edge := e.Map().Edges[len(e.Map().Edges)-1]
	assert.Equal(t, "c1", edge.Source)
	assert.Equal(t, pasted[0], edge.Target)
}

func TestPaste_EmptyBuffer(t *testing.T) {
	e := newTestEditor(t, testOptions())

	assert.Nil(t, e.Paste())
	assert.False(t, e.Dirty())
}
