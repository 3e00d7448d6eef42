package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tally/internal/scheduler"
	"github.com/sandeepkv93/tally/internal/session"
)

func waitForTaskCmd(ch <-chan scheduler.Task) tea.Cmd {
	return func() tea.Msg {
		task, ok := <-ch
		if !ok {
			return nil
		}
		return TaskDueMsg{Task: task}
	}
}

// scheduleHighlight clears the new-goal highlight after the configured
// delay. Without a scheduler the highlight stays until the next update.
func (m *Model) scheduleHighlight(goalID string) {
	if m.engine == nil || m.cfg.HighlightMS <= 0 {
		return
	}
	err := m.engine.Schedule(scheduler.Task{
		ID:     "highlight-" + goalID,
		Kind:   scheduler.KindHighlight,
		GoalID: goalID,
		DueAt:  time.Now().Add(m.cfg.HighlightAfter()),
	})
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("highlight schedule failed: %v", err), IsError: true}
	}
}

func (m *Model) applyTask(task scheduler.Task) {
	switch task.Kind {
	case scheduler.KindHighlight:
		m.store.ClearNew(task.GoalID)
	case scheduler.KindDismiss:
		if m.session == nil {
			return
		}
		if m.session.Expire(task.Token) && m.session.State() == session.Closed {
			m.leaveGoal()
		}
	}
}
