package model

import "sort"

// CurrentGoals returns active goals that are not held over, in list order.
func (s AppState) CurrentGoals() []Goal {
	out := make([]Goal, 0, len(s.Goals))
	for _, g := range s.Goals {
		if !g.IsHeldOver {
			out = append(out, g.Clone())
		}
	}
	return out
}

func (s AppState) HeldOverGoals() []Goal {
	out := make([]Goal, 0)
	for _, g := range s.Goals {
		if g.IsHeldOver {
			out = append(out, g.Clone())
		}
	}
	return out
}

// SortByPriority orders goals by descending priority. Ties keep their
// relative order.
func SortByPriority(goals []Goal) {
	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].Priority > goals[j].Priority
	})
}

// SortByCompletion orders history newest first.
func SortByCompletion(goals []Goal) {
	sort.SliceStable(goals, func(i, j int) bool {
		a, b := goals[i].CompletedAt, goals[j].CompletedAt
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}

// Wrap maps an arbitrary step onto [0, n).
func Wrap(index, n int) int {
	if n <= 0 {
		return 0
	}
	index %= n
	if index < 0 {
		index += n
	}
	return index
}

func IndexByID(goals []Goal, id string) int {
	for i := range goals {
		if goals[i].ID == id {
			return i
		}
	}
	return -1
}
