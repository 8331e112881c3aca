// Package editor applies user interactions to a mind map: selection, drag
// with branch, resize, collapse, connections and the node clipboard.
//
// An Editor is owned by one event loop and is not safe for concurrent use.
package editor

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"neonmap/internal/graph"
)

var (
	ErrUnknownNode = errors.New("unknown node")
	ErrSelfLoop    = errors.New("connection would loop a node onto itself")
	ErrCycle       = errors.New("connection would create a cycle")
)

type Options struct {
	// RejectCycles refuses connections that would close a directed cycle.
	RejectCycles bool

	Now  func() time.Time
	Rand *rand.Rand
}

type Editor struct {
	m    *graph.Map
	opts Options

	selected     graph.IDSet
	selectedEdge string

	clipboard Clipboard
	journal   Journal
}

func New(m *graph.Map, opts Options) *Editor {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if m == nil {
		m = &graph.Map{}
	}
	return &Editor{
		m:        m,
		opts:     opts,
		selected: make(graph.IDSet),
	}
}

// Map returns the live model. Callers on the event loop may read it; writes
// go through the editor so they are journaled.
func (e *Editor) Map() *graph.Map {
	return e.m
}

// Snapshot returns a deep copy safe to hand to a background save or export.
func (e *Editor) Snapshot() *graph.Map {
	return e.m.Clone()
}

// Replace swaps in a freshly loaded map and resets transient state.
func (e *Editor) Replace(m *graph.Map) {
	e.m = m
	e.ClearSelection()
	e.journal.Clear()
}

func (e *Editor) Projection() graph.Projection {
	return graph.Project(e.m.Nodes, e.m.Edges)
}

func (e *Editor) Journal() *Journal {
	return &e.journal
}

// Dirty reports whether there are changes since the last save.
func (e *Editor) Dirty() bool {
	return e.journal.Len() > 0
}

func (e *Editor) MarkSaved() {
	e.journal.Clear()
}

func (e *Editor) SetTitle(title string) bool {
	if title == e.m.Title {
		return false
	}
	before := e.m.Title
	e.m.Title = title
	e.journal.Record(Change{
		Kind:    ChangeRename,
		Data:    TitleData{Title: title},
		Inverse: TitleData{Title: before},
	})
	return true
}

func (e *Editor) millis() int64 {
	return e.opts.Now().UnixMilli()
}
