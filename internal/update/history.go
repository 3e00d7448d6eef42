package update

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/sandeepkv93/tally/internal/views"
)

func historyColumns(t func(string) string) []table.Column {
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: t("goalName"), Width: 24},
		{Title: t("repeats"), Width: 14},
		{Title: t("attempt"), Width: 8},
		{Title: t("completedAt"), Width: 16},
	}
}

func (m Model) historyRows() []table.Row {
	goals := m.historyGoals()
	rows := make([]table.Row, 0, len(goals))
	for i, g := range goals {
		when := "-"
		if g.CompletedAt != nil {
			when = humanize.Time(*g.CompletedAt)
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			g.Name,
			fmt.Sprintf("%d %s", g.TotalRepeats, m.catalog.Repeats(g.TotalRepeats)),
			strconv.Itoa(g.AttemptCount),
			when,
		})
	}
	return rows
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Restart):
		if g, ok := m.selectedCompleted(); ok {
			m.form = newRestartForm(g, m.t)
		}
		return m, nil
	case key.Matches(msg, m.Keys.Delete):
		if g, ok := m.selectedCompleted(); ok {
			m.confirm = confirmState{Active: true, GoalID: g.ID, Completed: true}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.historyTable, cmd = m.historyTable.Update(msg)
	return m, cmd
}

func (m Model) renderHistoryScreen() string {
	data := views.HistoryScreenData{
		Title:      m.t("completed"),
		TableView:  m.historyTable.View(),
		Empty:      len(m.historyTable.Rows()) == 0,
		EmptyTitle: m.t("noCompletedGoals"),
		EmptyHint:  m.t("completedGoalsWillAppearHere"),
	}
	if m.form.Active() {
		data.FormView = m.renderForm()
	}
	if m.confirm.Active {
		data.ConfirmView = m.renderConfirm()
	}
	return views.RenderHistoryScreen(data, m.styles())
}
