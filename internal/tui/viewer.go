package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/visionplan/pkg/models"
)

// chromeHeight is the number of lines taken by the title, tab bar and footer.
const chromeHeight = 4

type keyMap struct {
	Next key.Binding
	Prev key.Binding
	Jump key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Next: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	Prev: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous tab")),
	Jump: key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "go to tab")),
	Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Viewer is a read-only, scrollable plan browser with one tab per section.
type Viewer struct {
	plan     *models.Plan
	tabs     TabBar
	viewport viewport.Model
	width    int
	height   int
	quitting bool

	titleStyle lipgloss.Style
	hintStyle  lipgloss.Style
}

// NewViewer creates a Viewer for plan sized for an 80x24 terminal until the
// first window size message arrives.
func NewViewer(plan *models.Plan) *Viewer {
	v := &Viewer{
		plan:     plan,
		tabs:     NewTabBar(plan),
		viewport: viewport.New(80, 24-chromeHeight),
		width:    80,
		height:   24,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1),
		hintStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
	v.refresh()
	return v
}

// Init implements tea.Model.
func (v *Viewer) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.viewport.Width = msg.Width
		v.viewport.Height = max(msg.Height-chromeHeight, 1)
		return v, nil

	case tea.KeyMsg:
		prev := v.tabs.Active()
		switch {
		case key.Matches(msg, keys.Quit):
			v.quitting = true
			return v, tea.Quit
		case key.Matches(msg, keys.Next):
			v.tabs.Next()
		case key.Matches(msg, keys.Prev):
			v.tabs.Prev()
		case key.Matches(msg, keys.Jump):
			v.tabs.SetActive(int(msg.Runes[0] - '1'))
		default:
			var cmd tea.Cmd
			v.viewport, cmd = v.viewport.Update(msg)
			return v, cmd
		}
		if v.tabs.Active() != prev {
			v.refresh()
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View implements tea.Model.
func (v *Viewer) View() string {
	if v.quitting {
		return ""
	}

	title := v.titleStyle.Render(v.plan.Name)
	hints := v.hintStyle.Render("tab/1-3: switch • ↑/↓ pgup/pgdn: scroll • q: quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		v.tabs.View(),
		v.viewport.View(),
		hints,
	)
}

// ActiveTab returns the index of the visible tab.
func (v *Viewer) ActiveTab() int {
	return v.tabs.Active()
}

// refresh renders the active tab into the viewport and scrolls to the top.
func (v *Viewer) refresh() {
	v.viewport.SetContent(v.tabs.Body(v.plan))
	v.viewport.GotoTop()
}

// Run shows plan in a full-screen viewer until the user quits.
func Run(plan *models.Plan) error {
	p := tea.NewProgram(NewViewer(plan), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
