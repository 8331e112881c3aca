package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathMap() (*Map, *Edge) {
	m := &Map{}
	m.AddNode(NewNode("a", Point{X: 0, Y: 0}, "a"))
	m.AddNode(NewNode("b", Point{X: 200, Y: 200}, "b"))
	m.AddEdge(NewEdge("e", "a", "b"))
	return m, &m.Edges[0]
}

func TestHandles(t *testing.T) {
	n := NewNode("a", Point{X: 10, Y: 20}, "")

	assert.Equal(t, Point{X: 110, Y: 100}, SourceHandle(&n))
	assert.Equal(t, Point{X: 110, Y: 20}, TargetHandle(&n))
}

func TestRoute_Straight(t *testing.T) {
	m, e := pathMap()
	e.Type = PathStraight

	p, ok := m.Route(e)
	require.True(t, ok)

	assert.Equal(t, []Point{{X: 100, Y: 80}, {X: 300, Y: 200}}, p.Points)
	assert.Equal(t, Point{X: 200, Y: 140}, p.Label)
}

func TestRoute_BezierEndpointsFollowNodes(t *testing.T) {
	m, e := pathMap()

	p, ok := m.Route(e)
	require.True(t, ok)
	assert.Equal(t, PathBezier, p.Kind)

	flat := p.Flatten(16)
	require.Len(t, flat, 17)
	assert.Equal(t, Point{X: 100, Y: 80}, flat[0])
	assert.Equal(t, Point{X: 300, Y: 200}, flat[16])
	assert.InDelta(t, 200, p.Label.X, 1e-9)
	assert.InDelta(t, 140, p.Label.Y, 1e-9)

	m.Node("b").Position = Point{X: 400, Y: 400}
	moved, _ := m.Route(e)
	assert.Equal(t, Point{X: 500, Y: 400}, moved.Points[1])
}

func TestRoute_StepIsOrthogonal(t *testing.T) {
	for _, kind := range []PathType{PathStep, PathSmoothStep} {
		for _, target := range []Point{{X: 300, Y: 200}, {X: 300, Y: -200}} {
			p := RouteBetween(kind, Point{X: 100, Y: 80}, target)
			require.GreaterOrEqual(t, len(p.Points), 4)
			for i := 1; i < len(p.Points); i++ {
				a, b := p.Points[i-1], p.Points[i]
				assert.True(t, a.X == b.X || a.Y == b.Y, "segment %v-%v is diagonal", a, b)
			}
			assert.Equal(t, target, p.Points[len(p.Points)-1])
		}
	}
	assert.Equal(t, float64(smoothRadius), RouteBetween(PathSmoothStep, Point{}, Point{Y: 100}).Radius)
	assert.Zero(t, RouteBetween(PathStep, Point{}, Point{Y: 100}).Radius)
}

func TestRoute_DanglingEdge(t *testing.T) {
	m, e := pathMap()
	e.Target = "gone"

	_, ok := m.Route(e)
	assert.False(t, ok)
}
