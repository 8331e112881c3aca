package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"neonmap/internal/apperr"
	"neonmap/internal/graph"
	"neonmap/internal/store"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if !m.fitted && m.mode != ModeLoading {
			m.fitView()
			m.fitted = true
		}

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case loadedMsg:
		cmd = m.loaded(msg)

	case savedMsg:
		cmd = m.saved(msg)

	case renamedMsg:
		cmd = m.renamed(msg)

	case exportedMsg:
		cmd = m.exported(msg)

	case copySettledMsg:
		m.ed.Copy()

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
	}
	m.redraw()
	return m, cmd
}

func (m *Model) loaded(msg loadedMsg) tea.Cmd {
	if msg.err != nil {
		m.err = msg.err
		m.mode = ModeBlocked
		m.log.Error("load failed", zap.String("map", m.loadID.String()), zap.Error(msg.err))
		if apperr.IsNotFound(msg.err) || apperr.IsForbidden(msg.err) {
			m.status = "Map not found"
		} else {
			m.status = "Could not load map: " + apperr.MessageOf(msg.err)
		}
		m.statusErr = true
		return nil
	}
	m.ed.Replace(msg.m)
	m.session = Session{
		ID: msg.rec.ID,
		Owner: store.OwnerContext{
			Workspace:       msg.rec.Workspace,
			Project:         msg.rec.Project,
			RelatedWorkItem: msg.rec.RelatedWorkItem,
		},
	}
	m.mode = ModeNormal
	m.log.Info("map loaded", zap.String("map", msg.rec.ID.String()), zap.Int("nodes", len(msg.m.Nodes)))
	if m.width > 0 {
		m.fitView()
		m.fitted = true
	}
	return nil
}

func (m *Model) save() tea.Cmd {
	if m.saving || m.adapter == nil {
		return nil
	}
	m.saving = true
	return saveCmd(m.adapter, m.session, m.ed.Snapshot(), m.ed.Journal().Seal())
}

func (m *Model) saved(msg savedMsg) tea.Cmd {
	m.saving = false
	if msg.err != nil {
		m.log.Error("save failed", zap.String("map", m.session.ID.String()), zap.Error(msg.err))
		return m.setStatus("Save failed: "+apperr.MessageOf(msg.err), true)
	}
	m.ed.Journal().Drop(msg.revision)
	if msg.created {
		m.session.ID = msg.rec.ID
		m.ed.Map().Title = msg.rec.Title
		m.log.Info("map created", zap.String("map", msg.rec.ID.String()))
		return m.setStatus("Map created", false)
	}
	m.log.Info("map saved", zap.String("map", m.session.ID.String()))
	return m.setStatus("Map saved", false)
}

// commitTitle applies a renamed title. Only a changed title reaches the
// store, and only for a map that already exists there.
func (m *Model) commitTitle(title string) tea.Cmd {
	if !m.ed.SetTitle(title) {
		return nil
	}
	if !m.session.Existing() || m.adapter == nil {
		return nil
	}
	return renameCmd(m.adapter, m.session.ID, title, m.ed.Journal().Revision())
}

func (m *Model) renamed(msg renamedMsg) tea.Cmd {
	if msg.err != nil {
		m.log.Error("rename failed", zap.String("map", m.session.ID.String()), zap.Error(msg.err))
		return m.setStatus("Rename failed: "+apperr.MessageOf(msg.err), true)
	}
	// The store may have replaced a blank title.
	m.ed.Map().Title = msg.rec.Title
	m.ed.Journal().Forget(msg.revision)
	return m.setStatus("Title saved", false)
}

func (m *Model) startExport(key string) tea.Cmd {
	f := exportKeys[key]
	if m.exporting || m.exporter.Busy() {
		return nil
	}
	m.exporting = true
	selected := graph.NewIDSet(m.ed.SelectedNodes()...)
	return tea.Batch(
		m.setStatus("Exporting "+string(f)+"…", false),
		exportCmd(m.exporter, m.ed.Snapshot(), f, selected),
	)
}

// exported clears the in-flight flag. A failure is only logged, which the
// exporter has done already.
func (m *Model) exported(msg exportedMsg) tea.Cmd {
	m.exporting = false
	if msg.err != nil {
		m.status = ""
		return nil
	}
	return m.setStatus("Exported "+msg.path, false)
}
