package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tally/internal/model"
	"github.com/sandeepkv93/tally/internal/session"
	"github.com/sandeepkv93/tally/internal/views"
)

// openGoal starts a progress session and switches to the goal screen.
func (m Model) openGoal(id string) (Model, tea.Cmd) {
	opts := session.Options{
		Store:        m.store,
		DismissAfter: m.cfg.DismissAfter(),
		Logger:       m.logger,
		OnClose: func(goalID string, reason session.Reason) {
			m.logger.Printf("session: %s closed: %s", goalID, reason)
		},
	}
	if m.engine != nil {
		opts.Scheduler = m.engine
	}
	s, err := session.Open(id, opts)
	if err != nil {
		m.Status = StatusBar{Text: m.t("goalNotFound"), IsError: true}
		return m, nil
	}
	m.session = s
	m.showDesc = false
	m.Screen = ScreenGoal
	return m, nil
}

// leaveGoal drops the session and returns to the goals list.
func (m *Model) leaveGoal() {
	var id string
	if m.session != nil {
		id = m.session.GoalID()
		m.session.Close()
	}
	m.session = nil
	m.Screen = ScreenGoals
	if idx := model.IndexByID(m.goalRows(), id); idx >= 0 {
		m.cursor = idx
	}
}

// syncSession closes the goal screen when its goal vanished underneath it.
func (m *Model) syncSession() {
	if m.session == nil {
		return
	}
	m.session.Sync()
	if m.session.State() == session.Closed {
		m.leaveGoal()
	}
}

func (m Model) handleGoalKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	s := m.session
	if s == nil {
		m.Screen = ScreenGoals
		return m, nil
	}
	if s.State() == session.JustCompleted {
		if msg.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		s.Acknowledge()
		m.leaveGoal()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.Keys.Back):
		m.leaveGoal()
	case key.Matches(msg, m.Keys.Tap):
		s.Increment()
	case key.Matches(msg, m.Keys.Undo):
		s.Undo()
	case key.Matches(msg, m.Keys.Hold):
		if s.HoldOver() {
			m.leaveGoal()
		}
	case key.Matches(msg, m.Keys.Continue):
		s.Continue()
	case key.Matches(msg, m.Keys.Edit):
		if g, ok := s.Goal(); ok && !g.IsHeldOver {
			m.form = newEditForm(g, m.t)
		}
	case key.Matches(msg, m.Keys.Delete):
		m.confirm = confirmState{Active: true, GoalID: s.GoalID()}
	case key.Matches(msg, m.Keys.Next):
		s.Next()
		m.showDesc = false
	case key.Matches(msg, m.Keys.Prev):
		s.Previous()
		m.showDesc = false
	case msg.String() == "v":
		m.showDesc = !m.showDesc
		m.refreshDescription()
	default:
		if m.showDesc {
			var cmd tea.Cmd
			m.descViewport, cmd = m.descViewport.Update(msg)
			return m, cmd
		}
	}
	if s.State() == session.Closed {
		m.leaveGoal()
	}
	return m, nil
}

func (m Model) renderGoalScreen() string {
	if m.session == nil {
		return ""
	}
	g, ok := m.session.Goal()
	if !ok {
		return m.t("goalNotFound")
	}
	data := views.GoalScreenData{
		Name:         g.Name,
		Attempt:      fmt.Sprintf("%s %d", m.t("set"), g.AttemptCount),
		Counter:      fmt.Sprintf("%d/%d", g.CurrentRepeats, g.TotalRepeats),
		RepeatsWord:  m.catalog.Repeats(g.TotalRepeats),
		ProgressView: m.progressBar.ViewAs(g.Progress()),
	}
	if g.IsHeldOver {
		data.HeldLabel = m.t("heldOver")
	} else {
		current := m.store.CurrentGoals()
		if idx := model.IndexByID(current, g.ID); idx >= 0 && len(current) > 1 {
			data.Position = fmt.Sprintf("%d/%d", idx+1, len(current))
		}
	}
	if g.Description != "" {
		if m.showDesc {
			data.Description = m.descViewport.View()
		} else {
			data.Description = m.styles().Muted.Render("v: " + m.t("viewDescription"))
		}
	}
	switch {
	case m.form.Active():
		data.FormView = m.renderForm()
	case m.confirm.Active:
		data.ConfirmView = m.renderConfirm()
	}
	return views.RenderGoalScreen(data, m.styles())
}

func (m *Model) refreshDescription() {
	if m.session == nil {
		return
	}
	g, ok := m.session.Goal()
	if !ok {
		return
	}
	m.descViewport.SetContent(views.RenderMarkdown(g.Description, m.store.Theme(), m.descViewport.Width))
	m.descViewport.GotoTop()
}

func (m Model) renderCompletion() string {
	if m.session == nil || m.session.State() != session.JustCompleted {
		return ""
	}
	name := ""
	if g, ok := m.store.CompletedGoal(m.session.GoalID()); ok {
		name = g.Name
	}
	return views.RenderCompletion(views.CompletionData{
		Title: m.t("congratulations"),
		Body:  m.t("goalCompleted"),
		Name:  name,
		Hint:  m.t("tapAnywhere"),
	}, m.styles())
}
