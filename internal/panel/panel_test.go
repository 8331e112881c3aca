package panel

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neonmap/internal/editor"
	"neonmap/internal/graph"
)

// newTestPanel builds r → c1 plus a leaf o, with one edge selected on demand.
func newTestPanel(t *testing.T) (*Panel, *editor.Editor) {
	t.Helper()
	m := graph.NewMap("panel")
	m.Nodes[0].ID = "r"
	m.AddNode(graph.NewNode("c1", graph.Point{X: 250, Y: 300}, "c1"))
	m.AddNode(graph.NewNode("o", graph.Point{X: 600, Y: 150}, "o"))
	m.AddEdge(graph.NewEdge("r-c1", "r", "c1"))
	ed := editor.New(m, editor.Options{})
	return New(ed), ed
}

func writePNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(t.TempDir(), "dot.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestControls_EmptyWithoutSelection(t *testing.T) {
	p, _ := newTestPanel(t)
	assert.Nil(t, p.Controls())
	assert.Equal(t, editor.TargetNone, p.Target().Kind)
}

func TestControls_EdgeWinsOverNodes(t *testing.T) {
	p, ed := newTestPanel(t)
	ed.SelectEdge("r-c1")

	controls := p.Controls()

	require.NotEmpty(t, controls)
	assert.Equal(t, editor.Target{Kind: editor.TargetEdge, ID: "r-c1"}, p.Target())
	assert.Equal(t, "Delete edge", controls[len(controls)-1].Name)
	assert.Equal(t, "bezier", controls[p.Row("Path")].Value)
}

func TestSync_RemountResetsStaging(t *testing.T) {
	p, ed := newTestPanel(t)
	ed.Select("c1")
	p.BeginLink()
	p.Link.Value = "https://half-typed"
	require.NotNil(t, p.Staging())

	ed.Select("o")

	assert.Nil(t, p.Staging())
	assert.Empty(t, p.Link.Value)
	assert.Empty(t, ed.Map().Node("c1").Data.Link)
}

func TestSubmitLink(t *testing.T) {
	p, ed := newTestPanel(t)
	ed.Select("c1")

	p.BeginLink()
	p.Link.Value = "  https://example.com  "
	p.SubmitLink()
	assert.Equal(t, "https://example.com", ed.Map().Node("c1").Data.Link)
	assert.Nil(t, p.Staging())

	p.BeginLink()
	assert.Equal(t, "https://example.com", p.Link.Value, "field opens pre-filled")
	p.Link.Value = ""
	p.SubmitLink()
	assert.Empty(t, ed.Map().Node("c1").Data.Link, "an empty submit removes the link")
}

func TestStagedImage_CancelLeavesModel(t *testing.T) {
	p, ed := newTestPanel(t)
	ed.Select("c1")
	ed.MarkSaved()

	p.BeginImage()
	p.Image.Value = "https://example.com/cat.png"
	p.CancelStaged()

	assert.Empty(t, ed.Map().Node("c1").Data.Image)
	assert.False(t, ed.Dirty())
}

func TestSubmitImage_EmptyDoesNothing(t *testing.T) {
	p, ed := newTestPanel(t)
	ed.Select("c1")
	require.True(t, ed.UpdateNode("c1", func(n *graph.Node) { n.Data.Image = "https://example.com/a.png" }))

	p.BeginImage()
	p.Image.Value = "   "
	require.NoError(t, p.SubmitImage())

	assert.Equal(t, "https://example.com/a.png", ed.Map().Node("c1").Data.Image)
	assert.Nil(t, p.Staging())
}

func TestSubmitImage_FileBecomesDataURL(t *testing.T) {
	p, ed := newTestPanel(t)
	ed.Select("c1")

	p.BeginImage()
	p.Image.Value = writePNG(t)
	require.NoError(t, p.SubmitImage())

	img := ed.Map().Node("c1").Data.Image
	assert.True(t, strings.HasPrefix(img, "data:image/png;base64,"), img)
}

func TestSubmitImage_NonImageRejected(t *testing.T) {
	p, ed := newTestPanel(t)
	ed.Select("c1")
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not pixels"), 0o644))

	p.BeginImage()
	p.Image.Value = path
	err := p.SubmitImage()

	assert.ErrorIs(t, err, ErrNotImage)
	assert.Same(t, &p.Image, p.Staging(), "field stays open")
	assert.Empty(t, ed.Map().Node("c1").Data.Image)
}

func TestRemoveImage(t *testing.T) {
	p, ed := newTestPanel(t)
	ed.Select("c1")
	require.True(t, ed.UpdateNode("c1", func(n *graph.Node) { n.Data.Image = "https://example.com/a.png" }))

	assert.True(t, p.RemoveImage())
	assert.Empty(t, ed.Map().Node("c1").Data.Image)
}

func TestColorTarget_DefaultsToCard(t *testing.T) {
	p, ed := newTestPanel(t)
	ed.Select("c1")

	require.True(t, p.Choose(p.Row("Colour"), 0))

	d := ed.Map().Node("c1").Data
	assert.Equal(t, "#FF0000", d.CardColor)
	assert.Empty(t, d.Color)
}

func TestColorTarget_Border(t *testing.T) {
	p, ed := newTestPanel(t)
	ed.Select("c1")

	row := p.Row("Colour for")
	require.True(t, p.Choose(row, 5))
	assert.Equal(t, NodeColorBorder, p.NodeColorTarget())

	require.True(t, p.Choose(p.Row("Colour"), 8))
	n := ed.Map().Node("c1")
	assert.Equal(t, "#0000FF", n.Data.BorderColor)
	assert.Equal(t, "#0000FF", n.ResolvedBorderColor(true))
}

func TestColor_ShowsCurrentPreset(t *testing.T) {
	p, ed := newTestPanel(t)
	ed.Select("c1")
	require.True(t, ed.UpdateNode("c1", func(n *graph.Node) { n.Data.CardColor = "#ffa500" }))

	c := p.Controls()[p.Row("Colour")]
	assert.Equal(t, 2, c.Index)
	assert.Equal(t, "Orange", c.Value)
}

func TestFontTarget(t *testing.T) {
	p, ed := newTestPanel(t)
	ed.Select("c1")

	require.True(t, p.Choose(p.Row("Font for"), 1))
	require.True(t, p.Choose(p.Row("Font size"), indexOf(NodeFontSizes, 20)))

	d := ed.Map().Node("c1").Data
	assert.Equal(t, 20, d.TopTextFontSize)
	assert.Equal(t, graph.DefaultLabelFontSize, d.LabelFontSize)
}

func TestCycle_Wraps(t *testing.T) {
	p, ed := newTestPanel(t)
	ed.Select("c1")
	row := p.Row("Shape")

	require.True(t, p.Cycle(row, -1))
	assert.Equal(t, graph.ShapeCloud, ed.Map().Node("c1").Data.Shape)

	require.True(t, p.Cycle(row, 1))
	assert.Equal(t, graph.ShapeRectangle, ed.Map().Node("c1").Data.Shape)
}

func TestCycle_OffPresetStartsAtFirst(t *testing.T) {
	p, ed := newTestPanel(t)
	ed.Select("c1")
	row := p.Row("Size")
	require.Equal(t, -1, p.Controls()[row].Index, "200x80 is not a preset")

	require.True(t, p.Cycle(row, 1))

	n := ed.Map().Node("c1")
	assert.Equal(t, 120.0, n.Width)
	assert.Equal(t, 56.0, n.Height)
	assert.Equal(t, 120.0, n.Data.Width)
}

func TestApplySizePreset_Bounds(t *testing.T) {
	p, ed := newTestPanel(t)
	ed.Select("c1")

	assert.False(t, p.ApplySizePreset(-1))
	assert.False(t, p.ApplySizePreset(len(SizePresets)))
	require.True(t, p.ApplySizePreset(6))
	assert.Equal(t, 500.0, ed.Map().Node("c1").Width)
}

func TestCollapse_DisabledForLeaves(t *testing.T) {
	p, ed := newTestPanel(t)

	ed.Select("o")
	row := p.Row("Collapse")
	assert.True(t, p.Controls()[row].Disabled)
	assert.False(t, p.Activate(row))

	ed.Select("r")
	assert.False(t, p.Controls()[row].Disabled)
	require.True(t, p.Activate(row))
	assert.True(t, ed.Map().Node("r").Data.Collapsed)
	assert.Equal(t, "on", p.Controls()[row].Value)
}

func TestSetText_WritesThrough(t *testing.T) {
	p, ed := newTestPanel(t)
	ed.Select("c1")

	require.True(t, p.SetText(p.Row("Label"), "line one\nline two"))
	require.True(t, p.SetText(p.Row("Bottom text"), "caption"))

	n := ed.Map().Node("c1")
	assert.Equal(t, []string{"line one", "line two"}, n.Lines())
	assert.Equal(t, "caption", n.Data.BottomText)
	assert.False(t, p.SetText(p.Row("Shape"), "circle"), "choices take no text")
}

func TestEdgeControls(t *testing.T) {
	p, ed := newTestPanel(t)
	ed.SelectEdge("r-c1")

	require.True(t, p.Choose(p.Row("Stroke"), 1))
	require.True(t, p.Choose(p.Row("Width"), 2))
	require.True(t, p.Choose(p.Row("Path"), 3))
	require.True(t, p.SetText(p.Row("Label"), "because"))

	e := ed.Map().Edge("r-c1")
	assert.Equal(t, graph.StrokeDashed, e.Data.Style)
	assert.Equal(t, 6.0, e.Data.StrokeWidth)
	assert.Equal(t, graph.PathStep, e.Type)
	assert.True(t, e.HasLabel())
	assert.Equal(t, "r", e.Source)
}

func TestEdgeColorTarget_DefaultsToLine(t *testing.T) {
	p, ed := newTestPanel(t)
	ed.SelectEdge("r-c1")
	assert.Equal(t, EdgeColorLine, p.EdgeColorTarget())

	require.True(t, p.Choose(p.Row("Colour for"), 2))
	require.True(t, p.Choose(p.Row("Colour"), 15))

	d := ed.Map().Edge("r-c1").Data
	assert.Equal(t, "#FFFFFF", d.LabelWrapperColor)
	assert.Equal(t, graph.DefaultEdgeColor, d.Color)
}

func TestDelete(t *testing.T) {
	p, ed := newTestPanel(t)
	ed.Select("r")

	require.True(t, p.Activate(p.Row("Delete node")))

	assert.Nil(t, ed.Map().Node("r"))
	assert.Empty(t, ed.Map().Edges)
	assert.Nil(t, p.Controls())
}

func TestDataURL_MissingFile(t *testing.T) {
	_, err := DataURL(filepath.Join(t.TempDir(), "absent.png"))
	assert.Error(t, err)
}
