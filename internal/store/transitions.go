package store

import (
	"strings"
	"time"

	"github.com/sandeepkv93/tally/internal/i18n"
	"github.com/sandeepkv93/tally/internal/model"
)

// transition computes the next state. It must not modify its input.
type transition func(state model.AppState, cmd Command, now time.Time) model.AppState

var transitions = map[Kind]transition{
	KindAdd:         addGoal,
	KindUpdate:      updateGoal,
	KindDelete:      deleteGoal,
	KindComplete:    completeGoal,
	KindHoldOver:    holdOverGoal,
	KindContinue:    continueGoal,
	KindReorder:     reorderPriorities,
	KindSetLanguage: setLanguage,
	KindSetTheme:    setTheme,
	KindClearNew:    clearNew,
	KindEdit:        editGoal,
}

func apply(state model.AppState, cmd Command, now time.Time) (model.AppState, bool) {
	fn, ok := transitions[cmd.Kind]
	if !ok {
		return state, false
	}
	return fn(state, cmd, now), true
}

func addGoal(state model.AppState, cmd Command, _ time.Time) model.AppState {
	g := cmd.Goal.Clone()
	if strings.TrimSpace(g.ID) == "" || strings.TrimSpace(g.Name) == "" || g.TotalRepeats < 1 {
		return state
	}
	if state.Contains(g.ID) {
		return state
	}
	g.CurrentRepeats = clamp(g.CurrentRepeats, 0, g.TotalRepeats)
	goals := make([]model.Goal, 0, len(state.Goals)+1)
	goals = append(goals, state.Goals...)
	state.Goals = append(goals, g)
	return state
}

func updateGoal(state model.AppState, cmd Command, _ time.Time) model.AppState {
	g := cmd.Goal.Clone()
	if strings.TrimSpace(g.Name) == "" || g.TotalRepeats < 1 {
		return state
	}
	return mapGoal(state, g.ID, func(model.Goal) model.Goal {
		g.IsNew = false
		g.CurrentRepeats = clamp(g.CurrentRepeats, 0, g.TotalRepeats)
		return g
	})
}

func deleteGoal(state model.AppState, cmd Command, _ time.Time) model.AppState {
	state.Goals = without(state.Goals, cmd.ID)
	state.CompletedGoals = without(state.CompletedGoals, cmd.ID)
	return state
}

func completeGoal(state model.AppState, cmd Command, now time.Time) model.AppState {
	idx := state.IndexOf(cmd.ID)
	if idx < 0 {
		return state
	}
	return moveToCompleted(state, idx, now)
}

func holdOverGoal(state model.AppState, cmd Command, _ time.Time) model.AppState {
	return mapGoal(state, cmd.ID, func(g model.Goal) model.Goal {
		g.IsHeldOver = true
		return g
	})
}

func continueGoal(state model.AppState, cmd Command, _ time.Time) model.AppState {
	return mapGoal(state, cmd.ID, func(g model.Goal) model.Goal {
		g.IsHeldOver = false
		return g
	})
}

// reorderPriorities rebuilds the current subset in cmd.Order. Unknown and
// repeated ids are skipped; current goals the order leaves out follow in
// their list order. Held-over goals keep their relative order after them.
func reorderPriorities(state model.AppState, cmd Command, now time.Time) model.AppState {
	live := make(map[string]model.Goal, len(state.Goals))
	for _, g := range state.Goals {
		if !g.IsHeldOver {
			live[g.ID] = g
		}
	}
	ordered := make([]model.Goal, 0, len(live))
	seen := make(map[string]bool, len(live))
	for _, id := range cmd.Order {
		g, ok := live[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ordered = append(ordered, g.Clone())
	}
	for _, g := range state.Goals {
		if !g.IsHeldOver && !seen[g.ID] {
			ordered = append(ordered, g.Clone())
		}
	}
	base := now.UnixMilli()
	for i := range ordered {
		ordered[i].Priority = base - int64(i)
	}
	state.Goals = append(ordered, state.HeldOverGoals()...)
	state.ManualOrder = true
	return state
}

func setLanguage(state model.AppState, cmd Command, _ time.Time) model.AppState {
	code := i18n.Normalize(cmd.Language)
	if code == "" {
		return state
	}
	state.Language = code
	return state
}

func setTheme(state model.AppState, cmd Command, _ time.Time) model.AppState {
	if !cmd.Theme.IsValid() {
		return state
	}
	state.Theme = cmd.Theme
	return state
}

func clearNew(state model.AppState, cmd Command, _ time.Time) model.AppState {
	return mapGoal(state, cmd.ID, func(g model.Goal) model.Goal {
		g.IsNew = false
		return g
	})
}

func editGoal(state model.AppState, cmd Command, _ time.Time) model.AppState {
	idx := state.IndexOf(cmd.ID)
	if idx < 0 {
		return state
	}
	current := state.Goals[idx]
	if model.ValidateName(cmd.Name) != nil {
		return state
	}
	if model.ValidateRepeats(cmd.Repeats, current.CurrentRepeats+1) != nil {
		return state
	}
	return mapGoal(state, cmd.ID, func(g model.Goal) model.Goal {
		g.Name = strings.TrimSpace(cmd.Name)
		g.Description = cmd.Description
		g.TotalRepeats = cmd.Repeats
		g.IsNew = false
		return g
	})
}

// settle moves every active goal that reached its target into history.
func settle(state model.AppState, now time.Time) model.AppState {
	for i := 0; i < len(state.Goals); {
		if state.Goals[i].IsComplete() {
			state = moveToCompleted(state, i, now)
			continue
		}
		i++
	}
	return state
}

func moveToCompleted(state model.AppState, idx int, now time.Time) model.AppState {
	done := state.Goals[idx].Clone()
	if done.CompletedAt == nil {
		at := now
		done.CompletedAt = &at
	}
	done.IsNew = false
	state.Goals = without(state.Goals, done.ID)
	completed := make([]model.Goal, 0, len(state.CompletedGoals)+1)
	completed = append(completed, state.CompletedGoals...)
	state.CompletedGoals = append(completed, done)
	return state
}

func mapGoal(state model.AppState, id string, fn func(model.Goal) model.Goal) model.AppState {
	idx := state.IndexOf(id)
	if idx < 0 {
		return state
	}
	goals := make([]model.Goal, len(state.Goals))
	copy(goals, state.Goals)
	next := fn(goals[idx].Clone())
	next.ID = id
	goals[idx] = next
	state.Goals = goals
	return state
}

func without(goals []model.Goal, id string) []model.Goal {
	out := make([]model.Goal, 0, len(goals))
	for _, g := range goals {
		if g.ID != id {
			out = append(out, g)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
