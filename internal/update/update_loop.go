package update

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tally/internal/session"
	"github.com/sandeepkv93/tally/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.engine != nil {
		return waitForTaskCmd(m.engine.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.descViewport.Width = max(min(typed.Width-8, 64), 20)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	case SwitchScreenMsg:
		if isKnownScreen(typed.Screen) && typed.Screen != ScreenGoal {
			m.switchScreen(typed.Screen)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case TaskDueMsg:
		m.applyTask(typed.Task)
		if m.engine != nil {
			return m, waitForTaskCmd(m.engine.C())
		}
		return m, nil
	case FileChangedMsg:
		if m.store.Reload() {
			m.syncSession()
			m.Status = StatusBar{Text: m.t("reloaded")}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.palette.Active {
		return m.handlePaletteKey(msg), nil
	}
	if m.form.Active() {
		return m.handleFormKey(msg)
	}
	if m.confirm.Active {
		return m.handleConfirmKey(msg)
	}
	if m.Screen == ScreenGoal && m.session != nil && m.session.State() == session.JustCompleted {
		return m.handleGoalKey(msg)
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Help):
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case key.Matches(msg, m.Keys.Palette):
		m.openPalette()
		return m, nil
	case key.Matches(msg, m.Keys.Goals):
		m.switchScreen(ScreenGoals)
		return m, nil
	case key.Matches(msg, m.Keys.History):
		m.switchScreen(ScreenHistory)
		return m, nil
	case key.Matches(msg, m.Keys.Settings):
		m.switchScreen(ScreenSettings)
		return m, nil
	}

	switch m.Screen {
	case ScreenGoals:
		return m.handleGoalsKey(msg)
	case ScreenGoal:
		return m.handleGoalKey(msg)
	case ScreenHistory:
		return m.handleHistoryKey(msg)
	case ScreenSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m *Model) switchScreen(s Screen) {
	if m.Screen == ScreenGoal && s != ScreenGoal {
		m.leaveGoal()
	}
	m.Screen = s
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	body := ""
	overlay := ""
	switch m.Screen {
	case ScreenGoals:
		body = m.renderGoalsScreen()
	case ScreenGoal:
		if m.session != nil && m.session.State() == session.JustCompleted {
			overlay = m.renderCompletion()
		} else {
			body = m.renderGoalScreen()
		}
	case ScreenHistory:
		body = m.renderHistoryScreen()
	case ScreenSettings:
		body = m.renderSettingsScreen()
	}
	if palette := m.renderCommandPalette(); palette != "" {
		body += "\n\n" + palette
	}

	active := m.Screen
	if active == ScreenGoal {
		active = ScreenGoals
	}
	tabs := []views.TabData{
		{Label: m.t("goals"), Active: active == ScreenGoals},
		{Label: m.t("history"), Active: active == ScreenHistory},
		{Label: m.t("settings"), Active: active == ScreenSettings},
	}
	return views.RenderApp(views.AppData{
		Title:         "tally",
		Tabs:          tabs,
		Body:          body,
		Overlay:       overlay,
		Side:          m.renderHelpIfVisible(),
		StatusLine:    m.Status.Text,
		StatusIsError: m.Status.IsError,
		Footer:        m.footer(),
		Width:         m.width,
	}, m.styles())
}

func isKnownScreen(s Screen) bool {
	switch s {
	case ScreenGoals, ScreenGoal, ScreenHistory, ScreenSettings:
		return true
	default:
		return false
	}
}
