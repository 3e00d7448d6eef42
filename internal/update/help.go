package update

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/tally/internal/views"
)

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	global := m.globalBindings()
	screen := m.screenBindings()
	return views.RenderHelpPanel(views.HelpPanelData{
		Screen: string(m.Screen),
		HelpView: m.helpModel.View(helpKeyMap{
			short: append(append([]key.Binding{}, screen...), global...),
			full:  [][]key.Binding{screen, global},
		}),
	}, m.styles())
}

func (m Model) globalBindings() []key.Binding {
	return []key.Binding{m.Keys.Goals, m.Keys.History, m.Keys.Settings, m.Keys.Palette, m.Keys.Help, m.Keys.Quit}
}

func (m Model) screenBindings() []key.Binding {
	switch m.Screen {
	case ScreenGoals:
		return []key.Binding{m.Keys.Up, m.Keys.Down, m.Keys.Open, m.Keys.Add, m.Keys.MoveUp, m.Keys.MoveDown, m.Keys.Hold, m.Keys.Continue, m.Keys.Delete}
	case ScreenGoal:
		return []key.Binding{m.Keys.Tap, m.Keys.Undo, m.Keys.Hold, m.Keys.Continue, m.Keys.Edit, m.Keys.Delete, m.Keys.Next, m.Keys.Prev, m.Keys.Back}
	case ScreenHistory:
		return []key.Binding{m.Keys.Up, m.Keys.Down, m.Keys.Restart, m.Keys.Delete}
	case ScreenSettings:
		return []key.Binding{m.Keys.Up, m.Keys.Down, m.Keys.Select}
	default:
		return nil
	}
}

// footer is the one-line short help shown under every screen.
func (m Model) footer() string {
	h := m.helpModel
	h.ShowAll = false
	return h.View(helpKeyMap{short: []key.Binding{m.Keys.Goals, m.Keys.History, m.Keys.Settings, m.Keys.Palette, m.Keys.Help, m.Keys.Quit}})
}
