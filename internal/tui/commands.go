package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"neonmap/internal/export"
	"neonmap/internal/graph"
	"neonmap/internal/store"
)

const (
	requestTimeout = 30 * time.Second
	statusTTL      = 4 * time.Second

	// The second clipboard snapshot lands one frame after the copy key.
	copySettleDelay = 16 * time.Millisecond
)

type loadedMsg struct {
	rec *store.Record
	m   *graph.Map
	err error
}

type savedMsg struct {
	rec      *store.Record
	created  bool
	revision uint64
	err      error
}

type renamedMsg struct {
	rec      *store.Record
	revision uint64
	err      error
}

type exportedMsg struct {
	format export.Format
	path   string
	err    error
}

type copySettledMsg struct{}

type statusExpiredMsg struct {
	seq int
}

func loadCmd(adapter store.Adapter, id store.ID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		rec, err := adapter.Load(ctx, id)
		if err != nil {
			return loadedMsg{err: err}
		}
		m, err := rec.Map()
		return loadedMsg{rec: rec, m: m, err: err}
	}
}

// saveCmd persists a snapshot: Create in new mode, a nodes+edges Update
// otherwise. revision is the journal revision the snapshot covers.
func saveCmd(adapter store.Adapter, session Session, snap *graph.Map, revision uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if !session.Existing() {
			in, err := store.NewRecordFromMap(snap, session.Owner)
			if err != nil {
				return savedMsg{created: true, err: err}
			}
			rec, err := adapter.Create(ctx, in)
			return savedMsg{rec: rec, created: true, revision: revision, err: err}
		}
		patch, err := store.GraphPatch(snap)
		if err != nil {
			return savedMsg{err: err}
		}
		rec, err := adapter.Update(ctx, session.ID, patch)
		return savedMsg{rec: rec, revision: revision, err: err}
	}
}

// renameCmd stores a new title; revision is the journal entry it settles.
func renameCmd(adapter store.Adapter, id store.ID, title string, revision uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		rec, err := adapter.Update(ctx, id, store.TitlePatch(title))
		return renamedMsg{rec: rec, revision: revision, err: err}
	}
}

func exportCmd(x *export.Exporter, snap *graph.Map, f export.Format, selected graph.IDSet) tea.Cmd {
	return func() tea.Msg {
		path, err := x.Export(context.Background(), snap, f, selected)
		return exportedMsg{format: f, path: path, err: err}
	}
}

func settleCopy() tea.Cmd {
	return tea.Tick(copySettleDelay, func(time.Time) tea.Msg { return copySettledMsg{} })
}

func expireStatus(seq int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return statusExpiredMsg{seq: seq} })
}
