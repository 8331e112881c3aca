package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"neonmap/internal/graph"
)

type cell struct {
	r     rune
	color string
	owner string
}

type box struct {
	left, top, right, bottom int
}

// Grid is one rendered frame of the canvas. Every drawn cell remembers the
// node or edge it belongs to so mouse presses can be hit-tested against the
// frame the user is looking at.
type Grid struct {
	w, h  int
	cells []cell
	boxes map[string]box
}

func newGrid(w, h int) *Grid {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	g := &Grid{w: w, h: h, cells: make([]cell, w*h), boxes: make(map[string]box)}
	for i := range g.cells {
		g.cells[i].r = ' '
	}
	return g
}

func (g *Grid) inside(col, row int) bool {
	return col >= 0 && col < g.w && row >= 0 && row < g.h
}

func (g *Grid) set(col, row int, r rune, color, owner string) {
	if !g.inside(col, row) {
		return
	}
	g.cells[row*g.w+col] = cell{r: r, color: color, owner: owner}
}

func (g *Grid) at(col, row int) cell {
	if !g.inside(col, row) {
		return cell{r: ' '}
	}
	return g.cells[row*g.w+col]
}

// write places s starting at col, clipped to [col, limit).
func (g *Grid) write(col, row, limit int, s, color, owner string) {
	for _, r := range s {
		if col >= limit {
			return
		}
		g.set(col, row, r, color, owner)
		col++
	}
}

// centred writes s centred between left and right inclusive.
func (g *Grid) centred(left, right, row int, s, color, owner string) {
	width := right - left + 1
	if width <= 0 {
		return
	}
	s = runewidth.Truncate(s, width, "…")
	col := left + (width-runewidth.StringWidth(s))/2
	g.write(col, row, right+1, s, color, owner)
}

type HitKind int

const (
	HitNone HitKind = iota
	HitNode
	HitCorner
	HitEdge
)

type Hit struct {
	Kind HitKind
	ID   string
}

// HitTest reports what is drawn at a cell. The bottom-right corner of a node
// box is its resize handle.
func (g *Grid) HitTest(col, row int) Hit {
	c := g.at(col, row)
	if c.owner == "" {
		return Hit{}
	}
	if b, ok := g.boxes[c.owner]; ok {
		if col == b.right && row == b.bottom {
			return Hit{Kind: HitCorner, ID: c.owner}
		}
		return Hit{Kind: HitNode, ID: c.owner}
	}
	return Hit{Kind: HitEdge, ID: c.owner}
}

// Plain returns the frame without styling.
func (g *Grid) Plain() []string {
	lines := make([]string, g.h)
	for row := 0; row < g.h; row++ {
		var b strings.Builder
		for col := 0; col < g.w; col++ {
			b.WriteRune(g.at(col, row).r)
		}
		lines[row] = b.String()
	}
	return lines
}

// Render returns the frame with each run of same-coloured cells styled.
func (g *Grid) Render() []string {
	lines := make([]string, g.h)
	for row := 0; row < g.h; row++ {
		var b, run strings.Builder
		color := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if color == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(run.String()))
			}
			run.Reset()
		}
		for col := 0; col < g.w; col++ {
			c := g.at(col, row)
			if c.color != color {
				flush()
				color = c.color
			}
			run.WriteRune(c.r)
		}
		flush()
		lines[row] = b.String()
	}
	return lines
}

type borderSet struct {
	tl, tr, bl, br, h, v rune
}

var (
	squareBorder = borderSet{'┌', '┐', '└', '┘', '─', '│'}
	roundBorder  = borderSet{'╭', '╮', '╰', '╯', '─', '│'}
	doubleBorder = borderSet{'╔', '╗', '╚', '╝', '═', '║'}
	heavyBorder  = borderSet{'┏', '┓', '┗', '┛', '━', '┃'}
)

const (
	imageMarker = '▣'
	linkMarker  = '↗'
	arrowHead   = '▼'

	minBoxCols = 3
	minBoxRows = 3
)

func borderFor(shape graph.Shape, selected bool) borderSet {
	if selected {
		return heavyBorder
	}
	switch shape {
	case graph.ShapeCircle, graph.ShapeOval, graph.ShapeCloud:
		return roundBorder
	case graph.ShapeDiamond, graph.ShapeHexagon, graph.ShapeTriangle:
		return doubleBorder
	default:
		return squareBorder
	}
}

// Scene is everything one frame draws.
type Scene struct {
	Map          *graph.Map
	Projection   graph.Projection
	Selected     graph.IDSet
	SelectedEdge string
	Theme        Theme
}

// Draw renders the visible part of a scene into a w×h grid. Edges go down
// first so node boxes cover them.
func Draw(s Scene, vp Viewport, w, h int) *Grid {
	g := newGrid(w, h)
	if s.Map == nil {
		return g
	}
	posOf := make(map[string]*graph.Node, len(s.Map.Nodes))
	for i := range s.Map.Nodes {
		posOf[s.Map.Nodes[i].ID] = &s.Map.Nodes[i]
	}
	for _, ve := range s.Projection.Edges {
		if ve.Hidden {
			continue
		}
		src, tgt := posOf[ve.Edge.Source], posOf[ve.Edge.Target]
		if src == nil || tgt == nil {
			continue
		}
		drawEdge(g, s, vp, &ve.Edge, src, tgt)
	}
	for _, vn := range s.Projection.Nodes {
		if vn.Hidden {
			continue
		}
		drawNode(g, s, vp, &vn.Node)
	}
	return g
}

func nodeBox(vp Viewport, n *graph.Node) box {
	left, top := vp.ToCell(n.Position)
	right, bottom := vp.ToCell(graph.Point{X: n.Position.X + n.Width, Y: n.Position.Y + n.Height})
	return box{
		left:   left,
		top:    top,
		right:  max(right-1, left+minBoxCols-1),
		bottom: max(bottom-1, top+minBoxRows-1),
	}
}

func drawNode(g *Grid, s Scene, vp Viewport, n *graph.Node) {
	b := nodeBox(vp, n)
	g.boxes[n.ID] = b

	selected := s.Selected.Has(n.ID)
	border := borderFor(n.Data.Shape, selected)
	color := n.ResolvedBorderColor(selected)

	for row := b.top; row <= b.bottom; row++ {
		for col := b.left; col <= b.right; col++ {
			r := ' '
			switch {
			case row == b.top && col == b.left:
				r = border.tl
			case row == b.top && col == b.right:
				r = border.tr
			case row == b.bottom && col == b.left:
				r = border.bl
			case row == b.bottom && col == b.right:
				r = border.br
			case row == b.top || row == b.bottom:
				r = border.h
			case col == b.left || col == b.right:
				r = border.v
			}
			g.set(col, row, r, color, n.ID)
		}
	}

	lines := n.Lines()
	inner := b.bottom - b.top - 1
	first := b.top + 1
	if len(lines) < inner {
		first += (inner - len(lines)) / 2
	}
	labelColor := s.Theme.label(n.Data.LabelColor)
	for i, line := range lines {
		row := first + i
		if row >= b.bottom {
			break
		}
		g.centred(b.left+1, b.right-1, row, line, labelColor, n.ID)
	}

	if n.Data.Image != "" {
		g.set(b.left+1, b.top, imageMarker, color, n.ID)
	}
	if n.Data.Link != "" {
		g.set(b.right-1, b.top, linkMarker, s.Theme.Link, n.ID)
	}
	if n.Data.Collapsed {
		if hidden := graph.HiddenUnder(s.Map.Edges, n.ID); hidden > 0 {
			g.centred(b.left+1, b.right-1, b.bottom, "[+"+strconv.Itoa(hidden)+"]", color, n.ID)
		}
	}
	if n.Data.TopText != "" {
		g.centred(b.left, b.right, b.top-1, n.Data.TopText, s.Theme.label(n.Data.TopTextColor), n.ID)
	}
	if n.Data.BottomText != "" {
		g.centred(b.left, b.right, b.bottom+1, n.Data.BottomText, s.Theme.label(n.Data.BottomTextColor), n.ID)
	}
}

type strokeGlyphs struct {
	h, v rune
}

func glyphsFor(style graph.StrokeStyle) strokeGlyphs {
	switch style {
	case graph.StrokeDashed:
		return strokeGlyphs{'╌', '╎'}
	case graph.StrokeDotted:
		return strokeGlyphs{'┄', '┆'}
	default:
		return strokeGlyphs{'─', '│'}
	}
}

// drawEdge runs an orthogonal cell path from the cell under the source handle
// down to the cell above the target handle: a vertical leg, a horizontal leg
// at the middle row, and a final vertical leg.
func drawEdge(g *Grid, s Scene, vp Viewport, e *graph.Edge, src, tgt *graph.Node) {
	color := e.Data.Color
	if e.ID == s.SelectedEdge {
		color = graph.SelectedBorderColor
	}
	glyphs := glyphsFor(e.Data.Style)

	sc, sr := vp.ToCell(graph.SourceHandle(src))
	tc, tr := vp.ToCell(graph.TargetHandle(tgt))
	tr--
	mid := sr + (tr-sr)/2
	if e.Path() == graph.PathBezier {
		// Bend at the curve midpoint so the label sits where the raster
		// export puts it.
		path := graph.RouteBetween(graph.PathBezier, graph.SourceHandle(src), graph.TargetHandle(tgt))
		_, mid = vp.ToCell(path.Label)
	}

	vertical(g, sc, sr, mid, glyphs.v, color, e.ID)
	horizontal(g, mid, sc, tc, glyphs.h, color, e.ID)
	vertical(g, tc, mid, tr, glyphs.v, color, e.ID)
	if sc != tc {
		g.set(sc, mid, entryCorner(mid >= sr, tc > sc), color, e.ID)
		g.set(tc, mid, exitCorner(tc > sc, tr >= mid), color, e.ID)
	}
	g.set(tc, tr, arrowHead, color, e.ID)

	if e.HasLabel() {
		label := "[" + strings.SplitN(e.Data.Label, "\n", 2)[0] + "]"
		cc := sc + (tc-sc)/2
		half := runewidth.StringWidth(label) / 2
		g.write(cc-half, mid, g.w, label, s.Theme.label(e.Data.LabelColor), e.ID)
	}
}

func vertical(g *Grid, col, from, to int, r rune, color, owner string) {
	if from > to {
		from, to = to, from
	}
	for row := from; row <= to; row++ {
		g.set(col, row, r, color, owner)
	}
}

func horizontal(g *Grid, row, from, to int, r rune, color, owner string) {
	if from > to {
		from, to = to, from
	}
	for col := from; col <= to; col++ {
		g.set(col, row, r, color, owner)
	}
}

// entryCorner turns from the first vertical leg onto the horizontal one.
func entryCorner(down, right bool) rune {
	switch {
	case down && right:
		return '└'
	case down:
		return '┘'
	case right:
		return '┌'
	default:
		return '┐'
	}
}

// exitCorner turns from the horizontal leg onto the last vertical one.
func exitCorner(fromLeft, down bool) rune {
	switch {
	case fromLeft && down:
		return '┐'
	case fromLeft:
		return '┘'
	case down:
		return '┌'
	default:
		return '└'
	}
}
