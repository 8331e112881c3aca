package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"neonmap/internal/graph"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

type Theme struct {
	Name string

	Text    string
	Muted   string
	Link    string
	Accent  string
	Error   string
	Success string

	Status        lipgloss.Style
	Panel         lipgloss.Style
	PanelTitle    lipgloss.Style
	PanelActive   lipgloss.Style
	PanelDisabled lipgloss.Style
}

func NewTheme(name string) Theme {
	t := Theme{
		Name:    ThemeDark,
		Text:    graph.DefaultLabelColor,
		Muted:   "#64748b",
		Link:    "#38bdf8",
		Accent:  graph.SelectedBorderColor,
		Error:   "#ef4444",
		Success: "#22c55e",
	}
	if name == ThemeLight {
		t = Theme{
			Name:    ThemeLight,
			Text:    "#0f172a",
			Muted:   "#64748b",
			Link:    "#0284c7",
			Accent:  "#7c3aed",
			Error:   "#dc2626",
			Success: "#16a34a",
		}
	}

	t.Status = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted))
	t.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Accent)).
		Padding(0, 1)
	t.PanelTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Accent))
	t.PanelActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Text)).Reverse(true)
	t.PanelDisabled = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)).Faint(true)
	return t
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t.Name == ThemeLight {
		return NewTheme(ThemeDark)
	}
	return NewTheme(ThemeLight)
}

// label resolves a text colour for the terminal. The default label colour is
// near-white, so the light theme swaps it for its own text colour.
func (t Theme) label(hex string) string {
	if hex == "" || t.Name == ThemeLight && strings.EqualFold(hex, graph.DefaultLabelColor) {
		return t.Text
	}
	return hex
}

func (t Theme) errorText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Error)).Render(s)
}

func (t Theme) successText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Render(s)
}
