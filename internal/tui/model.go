// Package tui is the interactive editor: a bubbletea program that draws the
// map on a terminal canvas and routes keys and mouse events into the editor.
//
// All model mutations happen inside Update on the program's event loop.
// Saves, loads and exports run as commands and report back as messages.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"neonmap/internal/config"
	"neonmap/internal/editor"
	"neonmap/internal/export"
	"neonmap/internal/graph"
	"neonmap/internal/panel"
	"neonmap/internal/store"
)

type Mode int

const (
	ModeLoading Mode = iota
	ModeNormal
	ModeConnect
	ModeText
	ModePanel
	ModeConfirm
	ModeBlocked
)

type fieldTarget int

const (
	editLabel fieldTarget = iota
	editTitle
	editPanelText
	editStaged
)

type dragKind int

const (
	dragNone dragKind = iota
	dragMove
	dragResize
	dragPan
)

type drag struct {
	kind     dragKind
	id       string
	col, row int
}

// Session binds the editor to a stored map. A session without an id is in
// "new" mode: the first save creates the record.
type Session struct {
	ID    store.ID
	Owner store.OwnerContext
}

func (s Session) Existing() bool {
	return s.ID != ""
}

type Options struct {
	// Map seeds a new-mode session. Ignored when Load is set.
	Map  *graph.Map
	Load store.ID

	Owner     store.OwnerContext
	Adapter   store.Adapter
	Exporter  *export.Exporter
	Config    *config.Config
	Log       *zap.Logger
	Clipboard Clipboard
	Editor    editor.Options
}

type Model struct {
	ed       *editor.Editor
	panel    *panel.Panel
	adapter  store.Adapter
	exporter *export.Exporter
	cfg      *config.Config
	log      *zap.Logger
	clip     Clipboard

	session Session
	loadID  store.ID

	vp     Viewport
	grid   *Grid
	theme  Theme
	width  int
	height int
	fitted bool

	mode       Mode
	help       bool
	helpScroll int
	panelOpen  bool
	panelRow   int

	field       textField
	fieldTarget fieldTarget
	fieldRow    int
	fieldBack   Mode

	connectFrom string
	drag        drag

	saving    bool
	exporting bool

	status    string
	statusErr bool
	statusSeq int

	err error
}

func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = systemClipboard{}
	}
	exporter := opts.Exporter
	if exporter == nil {
		exporter = export.NewExporter(cfg.Export, log)
	}
	opts.Editor.RejectCycles = opts.Editor.RejectCycles || cfg.Editor.RejectCycles

	m := &Model{
		adapter:  opts.Adapter,
		exporter: exporter,
		cfg:      cfg,
		log:      log,
		clip:     clip,
		session:  Session{Owner: opts.Owner},
		vp:       NewViewport(),
		theme:    NewTheme(cfg.Editor.Theme),
		mode:     ModeNormal,
	}

	seed := opts.Map
	if opts.Load != "" {
		m.loadID = opts.Load
		m.mode = ModeLoading
		seed = &graph.Map{}
	} else if seed == nil {
		seed = graph.NewMap("")
	}
	m.ed = editor.New(seed, opts.Editor)
	m.panel = panel.New(m.ed)
	return m
}

func (m *Model) Init() tea.Cmd {
	if m.loadID != "" {
		return loadCmd(m.adapter, m.loadID)
	}
	return nil
}

// Err is the error that kept the editor from opening its map, if any.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) Editor() *editor.Editor {
	return m.ed
}

func (m *Model) Session() Session {
	return m.session
}

func (m *Model) Mode() Mode {
	return m.mode
}

// canvasSize is the grid left for the canvas once the status line and the
// open panel are accounted for.
func (m *Model) canvasSize() (cols, rows int) {
	cols, rows = m.width, m.height-1
	if m.panelOpen {
		cols -= panelWidth
	}
	return max(cols, 1), max(rows, 1)
}

func (m *Model) scene() Scene {
	selected := make(graph.IDSet)
	for _, id := range m.ed.SelectedNodes() {
		selected.Add(id)
	}
	return Scene{
		Map:          m.ed.Map(),
		Projection:   m.ed.Projection(),
		Selected:     selected,
		SelectedEdge: m.ed.SelectedEdge(),
		Theme:        m.theme,
	}
}

// redraw rebuilds the frame the view shows and mouse presses hit-test
// against.
func (m *Model) redraw() {
	cols, rows := m.canvasSize()
	m.grid = Draw(m.scene(), m.vp, cols, rows)
}

// fitView frames every visible node.
func (m *Model) fitView() {
	bounds, ok := graph.Bounds(m.ed.Projection().VisibleNodes())
	if !ok {
		return
	}
	cols, rows := m.canvasSize()
	m.vp.Fit(bounds, cols, rows)
}

// setStatus shows a transient notification that clears itself.
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.status = msg
	m.statusErr = isErr
	m.statusSeq++
	return expireStatus(m.statusSeq)
}
