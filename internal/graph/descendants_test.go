package graph

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func edgeList(pairs ...string) []Edge {
	var out []Edge
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, NewEdge(pairs[i]+"-"+pairs[i+1], pairs[i], pairs[i+1]))
	}
	return out
}

func TestDescendantsOf_Forest(t *testing.T) {
	es := edgeList(
		"r", "a",
		"r", "b",
		"a", "a1",
		"a1", "a2",
		"x", "y",
	)

	got := DescendantsOf(es, "r")

	assert.Equal(t, []string{"a", "a1", "a2", "b"}, got.Sorted())
	assert.False(t, got.Has("x"))
	assert.False(t, got.Has("y"))
	assert.False(t, got.Has("r"))
}

func TestDescendantsOf_Leaf(t *testing.T) {
	es := edgeList("r", "a")

	assert.Empty(t, DescendantsOf(es, "a"))
	assert.Empty(t, DescendantsOf(es, "missing"))
	assert.Empty(t, DescendantsOf(nil, "r"))
}

func TestDescendantsOf_Diamond(t *testing.T) {
	es := edgeList(
		"r", "a",
		"r", "b",
		"a", "c",
		"b", "c",
	)

	assert.Equal(t, []string{"a", "b", "c"}, DescendantsOf(es, "r").Sorted())
}

func TestDescendantsOf_CycleTerminates(t *testing.T) {
	es := edgeList(
		"a", "b",
		"b", "c",
		"c", "a",
		"a", "a",
	)

	got := DescendantsOf(es, "a")

	assert.Equal(t, []string{"b", "c"}, got.Sorted())
}

func TestDescendantsOf_DoesNotMutateEdges(t *testing.T) {
	es := edgeList("r", "a", "a", "b")
	before := append([]Edge(nil), es...)

	DescendantsOf(es, "r")

	assert.Equal(t, before, es)
}

func TestDescendantsOf_DeepChain(t *testing.T) {
	var es []Edge
	for i := 0; i < 5000; i++ {
		es = append(es, Edge{ID: "e", Source: strconv.Itoa(i), Target: strconv.Itoa(i + 1)})
	}

	assert.Len(t, DescendantsOf(es, "0"), 5000)
}

func TestWouldCycle(t *testing.T) {
	es := edgeList("r", "a", "a", "b")

	assert.True(t, WouldCycle(es, "b", "r"))
	assert.True(t, WouldCycle(es, "a", "a"))
	assert.False(t, WouldCycle(es, "r", "b"))
	assert.False(t, WouldCycle(es, "b", "c"))
}
