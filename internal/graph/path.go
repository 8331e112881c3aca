package graph

import "math"

const (
	bezierCurvature = 0.25
	stepOffset      = 20
	smoothRadius    = 5
)

// SourceHandle is where outgoing edges leave a node: its bottom centre.
func SourceHandle(n *Node) Point {
	return Point{X: n.Position.X + n.Width/2, Y: n.Position.Y + n.Height}
}

// TargetHandle is where incoming edges enter a node: its top centre.
func TargetHandle(n *Node) Point {
	return Point{X: n.Position.X + n.Width/2, Y: n.Position.Y}
}

// EdgePath is the routed geometry of one edge. Bezier paths carry two
// control points; the other kinds are polylines through Points.
type EdgePath struct {
	Kind     PathType
	Points   []Point
	Controls [2]Point
	Label    Point
	Radius   float64
}

// Route computes the path of e from the live positions of its endpoints.
// ok is false when either endpoint is missing from the map.
func (m *Map) Route(e *Edge) (EdgePath, bool) {
	src, tgt := m.Node(e.Source), m.Node(e.Target)
	if src == nil || tgt == nil {
		return EdgePath{}, false
	}
	return RouteBetween(e.Path(), SourceHandle(src), TargetHandle(tgt)), true
}

func RouteBetween(kind PathType, s, t Point) EdgePath {
	switch kind {
	case PathStraight:
		return EdgePath{
			Kind:   kind,
			Points: []Point{s, t},
			Label:  Point{X: (s.X + t.X) / 2, Y: (s.Y + t.Y) / 2},
		}
	case PathSmoothStep, PathStep:
		p := stepPath(kind, s, t)
		if kind == PathSmoothStep {
			p.Radius = smoothRadius
		}
		return p
	default:
		return bezierPath(s, t)
	}
}

// controlOffset mirrors the web canvas: a target below the source pulls the
// control point halfway down, a target above bends away by a root curve.
func controlOffset(distance float64) float64 {
	if distance >= 0 {
		return 0.5 * distance
	}
	return bezierCurvature * 25 * math.Sqrt(-distance)
}

func bezierPath(s, t Point) EdgePath {
	c1 := Point{X: s.X, Y: s.Y + controlOffset(t.Y-s.Y)}
	c2 := Point{X: t.X, Y: t.Y - controlOffset(t.Y-s.Y)}
	return EdgePath{
		Kind:     PathBezier,
		Points:   []Point{s, t},
		Controls: [2]Point{c1, c2},
		Label:    cubicAt(s, c1, c2, t, 0.5),
	}
}

func stepPath(kind PathType, s, t Point) EdgePath {
	p := EdgePath{Kind: kind}
	if t.Y-s.Y >= 2*stepOffset {
		midY := (s.Y + t.Y) / 2
		p.Points = []Point{s, {X: s.X, Y: midY}, {X: t.X, Y: midY}, t}
		p.Label = Point{X: (s.X + t.X) / 2, Y: midY}
		return p
	}
	// Target sits above or too close: leave downwards, cross over, then come
	// into the target from above.
	midX := (s.X + t.X) / 2
	if s.X == t.X {
		midX = s.X + 2*stepOffset
	}
	down := s.Y + stepOffset
	up := t.Y - stepOffset
	p.Points = []Point{
		s,
		{X: s.X, Y: down},
		{X: midX, Y: down},
		{X: midX, Y: up},
		{X: t.X, Y: up},
		t,
	}
	p.Label = Point{X: midX, Y: (down + up) / 2}
	return p
}

func cubicAt(p0, p1, p2, p3 Point, t float64) Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// Flatten approximates the path by a polyline. Bezier curves are sampled
// with steps segments; polylines are returned as they are.
func (p EdgePath) Flatten(steps int) []Point {
	if p.Kind != PathBezier || len(p.Points) != 2 {
		return append([]Point(nil), p.Points...)
	}
	if steps < 1 {
		steps = 1
	}
	out := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		out = append(out, cubicAt(p.Points[0], p.Controls[0], p.Controls[1], p.Points[1], float64(i)/float64(steps)))
	}
	return out
}
