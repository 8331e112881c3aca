package tui

import tea "github.com/charmbracelet/bubbletea"

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch m.mode {
	case ModeLoading, ModeBlocked, ModeConfirm, ModeText:
		return nil
	}
	if m.help {
		return nil
	}
	cols, rows := m.canvasSize()
	onCanvas := msg.X < cols && msg.Y < rows

	switch msg.Type {
	case tea.MouseWheelUp:
		if onCanvas {
			m.vp.ZoomStep(1, cols, rows)
		}
	case tea.MouseWheelDown:
		if onCanvas {
			m.vp.ZoomStep(-1, cols, rows)
		}
	case tea.MouseLeft:
		// Some terminals repeat the press while the button is held.
		if m.drag.kind != dragNone {
			m.dragTo(msg.X, msg.Y)
			return nil
		}
		if !onCanvas {
			if m.panelOpen {
				m.mode = ModePanel
			}
			return nil
		}
		return m.press(msg)
	case tea.MouseMotion:
		if m.drag.kind != dragNone {
			m.dragTo(msg.X, msg.Y)
		}
	case tea.MouseRelease:
		m.drag = drag{}
	}
	return nil
}

func (m *Model) press(msg tea.MouseMsg) tea.Cmd {
	if m.grid == nil {
		m.redraw()
	}
	hit := m.grid.HitTest(msg.X, msg.Y)
	if m.mode == ModePanel {
		m.mode = ModeNormal
	}

	if m.mode == ModeConnect {
		if hit.Kind == HitNode || hit.Kind == HitCorner {
			return m.connect(hit.ID)
		}
		m.connectFrom = ""
		m.mode = ModeNormal
		return nil
	}

	additive := msg.Shift || msg.Ctrl
	switch hit.Kind {
	case HitNone:
		if !additive {
			m.ed.ClearSelection()
		}
		m.drag = drag{kind: dragPan, col: msg.X, row: msg.Y}
	case HitEdge:
		m.ed.SelectEdge(hit.ID)
	case HitCorner:
		m.ed.Select(hit.ID)
		m.drag = drag{kind: dragResize, id: hit.ID, col: msg.X, row: msg.Y}
	case HitNode:
		switch {
		case additive:
			m.ed.ToggleSelect(hit.ID)
		case !m.ed.IsSelected(hit.ID):
			m.ed.Select(hit.ID)
		}
		m.drag = drag{kind: dragMove, id: hit.ID, col: msg.X, row: msg.Y}
	}
	return nil
}

// dragTo applies one motion event of the active gesture.
func (m *Model) dragTo(col, row int) {
	dc, dr := col-m.drag.col, row-m.drag.row
	if dc == 0 && dr == 0 {
		return
	}
	switch m.drag.kind {
	case dragMove:
		dx, dy := m.vp.Delta(dc, dr)
		if m.ed.IsSelected(m.drag.id) && len(m.ed.SelectedNodes()) > 1 {
			m.ed.MoveSelection(dx, dy)
		} else {
			m.ed.MoveNode(m.drag.id, dx, dy)
		}
	case dragResize:
		n := m.ed.Map().Node(m.drag.id)
		if n == nil {
			break
		}
		corner := m.vp.ToWorld(col+1, row+1)
		m.ed.Resize(m.drag.id, corner.X-n.Position.X, corner.Y-n.Position.Y)
	case dragPan:
		m.vp.Pan(-dc, -dr)
	}
	m.drag.col, m.drag.row = col, row
}
