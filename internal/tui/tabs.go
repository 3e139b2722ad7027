package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/visionplan/pkg/models"
)

// Tab indexes, in display order.
const (
	TabIndexOverview = iota
	TabIndexEpics
	TabIndexSprints
)

// section is one tab of the viewer: its label and how its body is rendered.
type section struct {
	label  string
	render func(*models.Plan) string
}

// TabBar tracks the selected section of a plan and renders the tab strip.
type TabBar struct {
	sections []section
	active   int

	activeStyle   lipgloss.Style
	inactiveStyle lipgloss.Style
	barStyle      lipgloss.Style
}

// NewTabBar creates the Overview, Epics and Sprints tabs for plan. The
// Epics and Sprints labels carry their item counts.
func NewTabBar(plan *models.Plan) TabBar {
	return TabBar{
		sections: []section{
			{label: "Overview", render: renderOverview},
			{label: fmt.Sprintf("Epics (%d)", len(plan.Epics)), render: renderEpics},
			{label: fmt.Sprintf("Sprints (%d)", len(plan.Sprints)), render: renderSprints},
		},
		active: TabIndexOverview,

		activeStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 2),
		inactiveStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 2),
		barStyle: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("238")),
	}
}

// Next selects the following tab, wrapping after the last.
func (t *TabBar) Next() {
	t.active = (t.active + 1) % len(t.sections)
}

// Prev selects the preceding tab, wrapping before the first.
func (t *TabBar) Prev() {
	t.active = (t.active - 1 + len(t.sections)) % len(t.sections)
}

// SetActive sets the active tab by index, clamped to the valid range.
func (t *TabBar) SetActive(index int) {
	t.active = min(max(index, 0), len(t.sections)-1)
}

// Active returns the currently active tab index.
func (t TabBar) Active() int {
	return t.active
}

// Len returns the number of tabs.
func (t TabBar) Len() int {
	return len(t.sections)
}

// Body renders the active section of plan.
func (t TabBar) Body(plan *models.Plan) string {
	return t.sections[t.active].render(plan)
}

// View renders the tab strip.
func (t TabBar) View() string {
	rendered := make([]string, 0, len(t.sections))
	for i, s := range t.sections {
		style := t.inactiveStyle
		if i == t.active {
			style = t.activeStyle
		}
		rendered = append(rendered, style.Render(fmt.Sprintf("%d %s", i+1, s.label)))
	}
	return t.barStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
}
