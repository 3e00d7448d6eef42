package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tally/internal/model"
	"github.com/sandeepkv93/tally/internal/views"
)

func (m Model) handleGoalsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	rows := m.goalRows()
	switch {
	case key.Matches(msg, m.Keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.Keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.Keys.MoveUp), key.Matches(msg, m.Keys.MoveDown):
		g, ok := m.selectedGoal()
		if !ok || g.IsHeldOver {
			return m, nil
		}
		delta := 1
		if key.Matches(msg, m.Keys.MoveUp) {
			delta = -1
		}
		if m.store.Move(g.ID, delta) {
			m.cursor = model.IndexByID(m.store.CurrentGoals(), g.ID)
		}
	case key.Matches(msg, m.Keys.Add):
		m.form = newAddForm(m.t)
	case key.Matches(msg, m.Keys.Open):
		if g, ok := m.selectedGoal(); ok {
			return m.openGoal(g.ID)
		}
	case key.Matches(msg, m.Keys.Hold):
		if g, ok := m.selectedGoal(); ok && !g.IsHeldOver {
			m.store.HoldOver(g.ID)
			m.cursor = model.IndexByID(m.goalRows(), g.ID)
		}
	case key.Matches(msg, m.Keys.Continue):
		if g, ok := m.selectedGoal(); ok && g.IsHeldOver {
			m.store.Continue(g.ID)
			m.cursor = model.IndexByID(m.goalRows(), g.ID)
		}
	case key.Matches(msg, m.Keys.Delete):
		if g, ok := m.selectedGoal(); ok {
			m.confirm = confirmState{Active: true, GoalID: g.ID}
		}
	}
	return m, nil
}

func (m Model) goalRowData(g model.Goal, index int, selected bool) views.GoalRowData {
	return views.GoalRowData{
		Index:    index,
		Name:     g.Name,
		Count:    fmt.Sprintf("%d/%d", g.CurrentRepeats, g.TotalRepeats),
		Attempt:  fmt.Sprintf("%s %d", m.t("set"), g.AttemptCount),
		Selected: selected,
		IsNew:    g.IsNew,
	}
}

func (m Model) renderGoalsScreen() string {
	current := m.store.CurrentGoals()
	held := m.store.HeldOverGoals()
	data := views.GoalsScreenData{
		CurrentTitle: m.t("current"),
		HeldTitle:    m.t("heldOver"),
		EmptyTitle:   m.t("noGoalsYet"),
		EmptyHint:    m.t("addFirstGoal"),
	}
	for i, g := range current {
		data.Current = append(data.Current, m.goalRowData(g, i+1, i == m.cursor))
	}
	for i, g := range held {
		idx := len(current) + i
		data.Held = append(data.Held, m.goalRowData(g, idx+1, idx == m.cursor))
	}
	switch {
	case m.form.Active():
		data.FormView = m.renderForm()
	case m.confirm.Active:
		data.FormView = m.renderConfirm()
	}
	return views.RenderGoalsScreen(data, m.styles())
}
