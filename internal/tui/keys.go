package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"neonmap/internal/editor"
	"neonmap/internal/export"
	"neonmap/internal/graph"
	"neonmap/internal/panel"
)

var exportKeys = map[string]export.Format{
	"P": export.PNG,
	"J": export.JPEG,
	"D": export.PDF,
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.help {
		m.helpKey(msg)
		return nil
	}
	switch m.mode {
	case ModeLoading:
		if msg.String() == "q" || msg.Type == tea.KeyCtrlC {
			return tea.Quit
		}
		return nil
	case ModeBlocked:
		return tea.Quit
	case ModeText:
		return m.textKey(msg)
	case ModeConfirm:
		return m.confirmKey(msg)
	case ModePanel:
		return m.panelKey(msg)
	case ModeConnect:
		return m.connectKey(msg)
	}
	return m.normalKey(msg)
}

func moveSpeed(key string) int {
	switch key {
	case "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func direction(key string) (dc, dr int) {
	switch key {
	case "left", "shift+left", "h":
		return -1, 0
	case "right", "shift+right", "l":
		return 1, 0
	case "up", "shift+up", "k":
		return 0, -1
	case "down", "shift+down", "j":
		return 0, 1
	}
	return 0, 0
}

func (m *Model) normalKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if msg.Type == tea.KeySpace {
		key = " "
	}
	cols, rows := m.canvasSize()

	switch key {
	case "?":
		m.help = true
		m.helpScroll = 0

	case "q":
		if m.ed.Dirty() && m.cfg.Editor.Confirmations {
			m.mode = ModeConfirm
			return nil
		}
		return tea.Quit

	case "left", "right", "up", "down", "shift+left", "shift+right", "shift+up", "shift+down":
		dc, dr := direction(key)
		speed := moveSpeed(key)
		if len(m.ed.SelectedNodes()) == 0 {
			m.vp.Pan(dc*speed, dr*speed)
			return nil
		}
		dx, dy := m.vp.Delta(dc*speed, dr*speed)
		m.ed.MoveSelection(dx, dy)

	case "h", "j", "k", "l":
		dc, dr := direction(key)
		m.vp.Pan(dc, dr)

	case "tab":
		m.ed.CycleSelection(false)
	case "shift+tab":
		m.ed.CycleSelection(true)

	case "esc":
		m.ed.ClearSelection()

	case "n":
		n := m.ed.AddNode()
		m.ed.Select(n.ID)

	case "d", "delete":
		if count := m.ed.DeleteSelection(); count > 0 {
			return m.setStatus(fmt.Sprintf("Deleted %d", count), false)
		}

	case "c":
		t := m.ed.Target()
		if t.Kind != editor.TargetNode {
			return m.setStatus("Select a node to connect from", true)
		}
		m.connectFrom = t.ID
		m.mode = ModeConnect

	case " ":
		if t := m.ed.Target(); t.Kind == editor.TargetNode {
			m.ed.ToggleCollapsed(t.ID)
		}

	case "ctrl+c":
		if m.ed.Copy() {
			count := len(m.ed.Clipboard().Nodes)
			return tea.Batch(settleCopy(), m.setStatus(fmt.Sprintf("Copied %d", count), false))
		}

	case "ctrl+v":
		if ids := m.ed.Paste(); len(ids) > 0 {
			return m.setStatus(fmt.Sprintf("Pasted %d", len(ids)), false)
		}

	case "e":
		m.editLabel()

	case "t":
		m.openField(newTextField(m.ed.Map().Title, false), editTitle, ModeNormal)

	case "p":
		m.panelOpen = true
		m.mode = ModePanel

	case "s":
		return m.save()

	case "P", "J", "D":
		return m.startExport(key)

	case "f":
		m.fitView()

	case "+", "=":
		m.vp.ZoomStep(1, cols, rows)
	case "-", "_":
		m.vp.ZoomStep(-1, cols, rows)

	case "T":
		m.theme = m.theme.Toggle()
	}
	return nil
}

func (m *Model) openField(f textField, target fieldTarget, back Mode) {
	m.field = f
	m.fieldTarget = target
	m.fieldBack = back
	m.mode = ModeText
}

func (m *Model) editLabel() {
	t := m.ed.Target()
	switch t.Kind {
	case editor.TargetNode:
		m.openField(newTextField(m.ed.Map().Node(t.ID).Data.Label, true), editLabel, ModeNormal)
	case editor.TargetEdge:
		m.openField(newTextField(m.ed.Map().Edge(t.ID).Data.Label, false), editLabel, ModeNormal)
	}
}

func (m *Model) textKey(msg tea.KeyMsg) tea.Cmd {
	res, err := m.field.Update(msg, m.clip)
	if err != nil {
		m.log.Warn("clipboard unavailable", zap.Error(err))
		return m.setStatus("Clipboard unavailable", true)
	}
	switch res {
	case fieldCommit:
		return m.commitField()
	case fieldCancel:
		// Leaving the title field keeps what was typed.
		if m.fieldTarget == editTitle {
			return m.commitField()
		}
		if m.fieldTarget == editStaged {
			m.panel.CancelStaged()
		}
		m.mode = m.fieldBack
	}
	return nil
}

func (m *Model) commitField() tea.Cmd {
	v := m.field.String()
	m.mode = m.fieldBack

	switch m.fieldTarget {
	case editTitle:
		return m.commitTitle(v)

	case editLabel:
		if !m.field.Changed() {
			return nil
		}
		t := m.ed.Target()
		switch t.Kind {
		case editor.TargetNode:
			m.ed.UpdateNode(t.ID, func(n *graph.Node) { n.Data.Label = v })
		case editor.TargetEdge:
			m.ed.UpdateEdge(t.ID, func(e *graph.Edge) { e.Data.Label = v })
		}

	case editPanelText:
		if m.field.Changed() {
			m.panel.SetText(m.fieldRow, v)
		}

	case editStaged:
		st := m.panel.Staging()
		if st == nil {
			return nil
		}
		st.Value = v
		if err := m.panel.SubmitStaged(); err != nil {
			// The staged field stays open so the path can be corrected.
			m.mode = ModeText
			return m.setStatus(err.Error(), true)
		}
	}
	return nil
}

func (m *Model) confirmKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		return tea.Quit
	case "n", "N", "esc":
		m.mode = ModeNormal
	}
	return nil
}

func (m *Model) connectKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.connectFrom = ""
		m.mode = ModeNormal
	case "tab":
		m.ed.CycleSelection(false)
	case "shift+tab":
		m.ed.CycleSelection(true)
	case "enter":
		if t := m.ed.Target(); t.Kind == editor.TargetNode {
			return m.connect(t.ID)
		}
	}
	return nil
}

// connect finishes a connection gesture from the node it started on.
func (m *Model) connect(target string) tea.Cmd {
	from := m.connectFrom
	m.connectFrom = ""
	m.mode = ModeNormal
	if _, err := m.ed.Connect(from, target); err != nil {
		return m.setStatus(err.Error(), true)
	}
	m.ed.Select(target)
	return m.setStatus("Connected", false)
}

func (m *Model) panelKey(msg tea.KeyMsg) tea.Cmd {
	controls := m.panel.Controls()
	if m.panelRow >= len(controls) {
		m.panelRow = max(len(controls)-1, 0)
	}
	key := msg.String()
	if msg.Type == tea.KeySpace {
		key = " "
	}

	switch key {
	case "esc", "p":
		m.panelOpen = false
		m.mode = ModeNormal
	case "tab":
		m.mode = ModeNormal
	case "up", "k":
		if m.panelRow > 0 {
			m.panelRow--
		}
	case "down", "j":
		if m.panelRow < len(controls)-1 {
			m.panelRow++
		}
	case "left", "h":
		m.panel.Cycle(m.panelRow, -1)
	case "right", "l":
		m.panel.Cycle(m.panelRow, 1)
	case "x":
		if m.panelRow < len(controls) {
			switch controls[m.panelRow].Name {
			case "Image":
				m.panel.RemoveImage()
			case "Link":
				m.panel.RemoveLink()
			}
		}
	case "enter", " ":
		if m.panelRow < len(controls) {
			m.activate(controls[m.panelRow])
		}
	case "s":
		return m.save()
	}
	return nil
}

func (m *Model) activate(c panel.Control) {
	switch c.Kind {
	case panel.KindText:
		m.fieldRow = m.panelRow
		m.openField(newTextField(c.Value, c.Name == "Label"), editPanelText, ModePanel)
	case panel.KindStaged:
		m.panel.Activate(m.panelRow)
		if st := m.panel.Staging(); st != nil {
			m.openField(newTextField(st.Value, false), editStaged, ModePanel)
		}
	case panel.KindChoice:
		m.panel.Cycle(m.panelRow, 1)
	default:
		m.panel.Activate(m.panelRow)
	}
}

func (m *Model) helpKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		if m.helpScroll < len(helpLines)-1 {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	}
}
