package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"neonmap/internal/editor"
	"neonmap/internal/panel"
	"neonmap/internal/store"
)

const panelWidth = 36

func (m *Model) View() string {
	if m.help {
		return m.helpView()
	}
	switch m.mode {
	case ModeLoading:
		return "Loading map " + m.loadID.String() + "…"
	case ModeBlocked:
		return m.theme.errorText(m.status) + "\n\nPress any key to exit."
	}
	if m.grid == nil {
		m.redraw()
	}

	canvas := strings.Join(m.grid.Render(), "\n")
	if m.panelOpen {
		_, rows := m.canvasSize()
		canvas = lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.panelView(rows))
	}
	return canvas + "\n" + m.statusLine()
}

func (m *Model) modeString() string {
	switch m.mode {
	case ModeLoading:
		return "LOADING"
	case ModeNormal:
		return "NORMAL"
	case ModeConnect:
		return "CONNECT"
	case ModeText:
		return "EDIT"
	case ModePanel:
		return "PANEL"
	case ModeConfirm:
		return "CONFIRM"
	case ModeBlocked:
		return "BLOCKED"
	default:
		return "UNKNOWN"
	}
}

func (m *Model) fieldName() string {
	switch m.fieldTarget {
	case editTitle:
		return "Title"
	case editLabel:
		return "Label"
	case editStaged:
		if st := m.panel.Staging(); st == &m.panel.Image {
			return "Image URL or file"
		}
		return "Link URL"
	default:
		controls := m.panel.Controls()
		if m.fieldRow < len(controls) {
			return controls[m.fieldRow].Name
		}
		return "Text"
	}
}

func (m *Model) statusLine() string {
	var status string
	switch m.mode {
	case ModeText:
		keys := "Enter=save, Esc=cancel"
		if m.field.multiline {
			keys = "Enter=newline, Ctrl+S=save, Esc=cancel"
		}
		status = fmt.Sprintf("Mode: EDIT | %s: %s | %s", m.fieldName(), m.field.View(), keys)
	case ModeConfirm:
		status = "Mode: CONFIRM | Quit with unsaved changes? (y/n)"
	case ModeConnect:
		status = fmt.Sprintf("Mode: CONNECT | From %s | click a node or Tab+Enter, Esc=cancel", m.connectFrom)
	default:
		title := m.ed.Map().Title
		if title == "" {
			title = store.DefaultTitle
		}
		if !m.session.Existing() {
			title += " (new)"
		}
		if m.ed.Dirty() {
			title += " *"
		}
		status = fmt.Sprintf("Mode: %s | %s | Zoom %d%%", m.modeString(), title, int(m.vp.Zoom*100))
		switch t := m.ed.Target(); t.Kind {
		case editor.TargetNode:
			if n := len(m.ed.SelectedNodes()); n > 1 {
				status += fmt.Sprintf(" | Selected: %d nodes", n)
			} else {
				status += " | Selected: " + t.ID
			}
		case editor.TargetEdge:
			status += " | Edge: " + t.ID
		}
		if m.saving {
			status += " | Saving…"
		}
		if m.status == "" {
			status += " | ? for help | q to quit"
		}
	}

	status = runewidth.Truncate(status, max(m.width-runewidth.StringWidth(m.status)-3, 10), "…")
	line := m.theme.Status.Render(status)
	if m.status != "" && m.mode != ModeText {
		note := m.theme.successText(m.status)
		if m.statusErr {
			note = m.theme.errorText("ERROR: " + m.status)
		}
		line += m.theme.Status.Render(" | ") + note
	}
	return line
}

func (m *Model) panelView(rows int) string {
	inner := panelWidth - 4
	var lines []string

	controls := m.panel.Controls()
	t := m.panel.Target()
	switch t.Kind {
	case editor.TargetNode:
		lines = append(lines, m.theme.PanelTitle.Render("Node "+t.ID))
	case editor.TargetEdge:
		lines = append(lines, m.theme.PanelTitle.Render("Edge "+t.ID))
	default:
		lines = append(lines, m.theme.PanelTitle.Render("Settings"), "", "Nothing selected")
	}

	// Keep the active row on screen when the panel is taller than the view.
	window := max(rows-4, 1)
	first := 0
	if m.panelRow >= window {
		first = m.panelRow - window + 1
	}
	for i := first; i < len(controls) && i < first+window; i++ {
		row := controlRow(controls[i], inner)
		switch {
		case i == m.panelRow && m.mode == ModePanel:
			row = m.theme.PanelActive.Render(row)
		case controls[i].Disabled:
			row = m.theme.PanelDisabled.Render(row)
		}
		lines = append(lines, row)
	}
	if st := m.panel.Staging(); st != nil && m.mode != ModeText {
		lines = append(lines, "", "Staged: "+runewidth.Truncate(st.Value, inner-8, "…"))
	}
	return m.theme.Panel.Width(panelWidth - 2).Render(strings.Join(lines, "\n"))
}

func controlRow(c panel.Control, width int) string {
	value := c.Value
	switch c.Kind {
	case panel.KindChoice:
		if c.Index < 0 {
			value = "custom"
		}
		value = "‹ " + value + " ›"
	case panel.KindText:
		value = strings.ReplaceAll(value, "\n", "⏎")
	case panel.KindStaged:
		if strings.HasPrefix(value, "data:") {
			value = "embedded image"
		}
		if value == "" {
			value = "none"
		}
	case panel.KindAction:
		return runewidth.FillRight("["+c.Name+"]", width)
	}
	name := runewidth.FillRight(c.Name, 12)
	return runewidth.FillRight(runewidth.Truncate(name+value, width, "…"), width)
}

var helpLines = []string{
	"neonmap Help",
	"============",
	"",
	"Canvas:",
	"-------",
	"  h/j/k/l          Pan the view",
	"  arrows           Move selected nodes (pan when nothing is selected)",
	"  shift+arrows     Move faster",
	"  f                Fit all visible nodes",
	"  + / -            Zoom in / out (also the mouse wheel)",
	"  T                Toggle dark / light theme",
	"",
	"Selection:",
	"----------",
	"  click            Select a node or edge",
	"  shift+click      Add to or remove from the selection",
	"  tab / shift+tab  Select the next / previous visible node",
	"  esc              Clear the selection",
	"",
	"Editing:",
	"--------",
	"  drag             Move a node (with its branch when drag branch is on)",
	"  drag corner      Resize a node from its bottom-right corner",
	"  n                Add a node",
	"  e                Edit the label of the selection",
	"  c                Connect the selected node to the next node clicked",
	"  space            Collapse or expand the selected node",
	"  d                Delete the selection",
	"  ctrl+c / ctrl+v  Copy / paste selected nodes",
	"",
	"Settings panel:",
	"---------------",
	"  p                Open the panel for the selection",
	"  up/down          Choose a row",
	"  left/right       Step through the options of a row",
	"  enter            Edit text, toggle, or open a staged field",
	"  x                Remove the image or link",
	"  tab              Back to the canvas, panel stays open",
	"  esc              Close the panel",
	"",
	"Text fields:",
	"------------",
	"  enter            Save (newline in labels, save with ctrl+s)",
	"  esc              Cancel (the title field keeps what was typed)",
	"  ctrl+c / ctrl+v  Copy / paste text with the system clipboard",
	"",
	"Map:",
	"----",
	"  t                Rename the map",
	"  s                Save",
	"  P / J / D        Export PNG / JPEG / PDF",
	"  q                Quit",
	"  ?                Toggle this help",
}

func (m *Model) helpView() string {
	height := max(m.height-1, 1)
	end := min(m.helpScroll+height, len(helpLines))
	visible := helpLines[m.helpScroll:end]
	return strings.Join(visible, "\n") + "\n" + m.theme.Status.Render("j/k=scroll, esc=close")
}
