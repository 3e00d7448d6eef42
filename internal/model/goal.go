package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxNameLength = 35

var (
	ErrInvalidTheme = errors.New("model: invalid theme")
	ErrInvalidGoal  = errors.New("model: invalid goal")
)

type Theme string

const (
	ThemeColor Theme = "color"
	ThemeBW    Theme = "bw"
)

func (t Theme) IsValid() bool {
	switch t {
	case ThemeColor, ThemeBW:
		return true
	default:
		return false
	}
}

const (
	DefaultLanguage = "ru"
	DefaultTheme    = ThemeColor
)

type Goal struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	TotalRepeats   int        `json:"totalRepeats"`
	CurrentRepeats int        `json:"currentRepeats"`
	Priority       int64      `json:"priority"`
	IsHeldOver     bool       `json:"isHeldOver"`
	AttemptCount   int        `json:"attemptCount"`
	CreatedAt      time.Time  `json:"createdAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	IsNew          bool       `json:"isNew,omitempty"`
}

// Validate checks the structural invariants of a stored goal. It is
// stricter than the form validators: it also checks the repeat counters.
func (g Goal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidGoal)
	}
	if err := ValidateName(g.Name); err != nil {
		return err
	}
	if g.TotalRepeats < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidRepeats, g.TotalRepeats)
	}
	if g.CurrentRepeats < 0 || g.CurrentRepeats > g.TotalRepeats {
		return fmt.Errorf("%w: current_repeats %d outside [0, %d]", ErrInvalidGoal, g.CurrentRepeats, g.TotalRepeats)
	}
	if g.AttemptCount < 1 {
		return fmt.Errorf("%w: attempt_count must be at least 1", ErrInvalidGoal)
	}
	return nil
}

func (g Goal) IsComplete() bool {
	return g.TotalRepeats > 0 && g.CurrentRepeats >= g.TotalRepeats
}

// Progress returns completion in [0, 1].
func (g Goal) Progress() float64 {
	if g.TotalRepeats <= 0 {
		return 0
	}
	p := float64(g.CurrentRepeats) / float64(g.TotalRepeats)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (g Goal) Clone() Goal {
	out := g
	if g.CompletedAt != nil {
		at := *g.CompletedAt
		out.CompletedAt = &at
	}
	return out
}

type AppState struct {
	Goals          []Goal `json:"goals"`
	CompletedGoals []Goal `json:"completedGoals"`
	Language       string `json:"language"`
	Theme          Theme  `json:"theme"`
	// ManualOrder is set by the first reorder. From then on the list order
	// of current goals is the display order.
	ManualOrder bool `json:"manualOrder,omitempty"`
}

func NewAppState() AppState {
	return AppState{
		Goals:          []Goal{},
		CompletedGoals: []Goal{},
		Language:       DefaultLanguage,
		Theme:          DefaultTheme,
	}
}

func (s AppState) Clone() AppState {
	out := AppState{
		Goals:          make([]Goal, 0, len(s.Goals)),
		CompletedGoals: make([]Goal, 0, len(s.CompletedGoals)),
		Language:       s.Language,
		Theme:          s.Theme,
		ManualOrder:    s.ManualOrder,
	}
	for _, g := range s.Goals {
		out.Goals = append(out.Goals, g.Clone())
	}
	for _, g := range s.CompletedGoals {
		out.CompletedGoals = append(out.CompletedGoals, g.Clone())
	}
	return out
}

// Normalize fills defaults for fields a decoded snapshot may lack.
func (s AppState) Normalize() AppState {
	if s.Goals == nil {
		s.Goals = []Goal{}
	}
	if s.CompletedGoals == nil {
		s.CompletedGoals = []Goal{}
	}
	if strings.TrimSpace(s.Language) == "" {
		s.Language = DefaultLanguage
	}
	if !s.Theme.IsValid() {
		s.Theme = DefaultTheme
	}
	return s
}

func (s AppState) IndexOf(id string) int {
	for i := range s.Goals {
		if s.Goals[i].ID == id {
			return i
		}
	}
	return -1
}

func (s AppState) CompletedIndexOf(id string) int {
	for i := range s.CompletedGoals {
		if s.CompletedGoals[i].ID == id {
			return i
		}
	}
	return -1
}

func (s AppState) Contains(id string) bool {
	return s.IndexOf(id) >= 0 || s.CompletedIndexOf(id) >= 0
}

// AttemptsFor counts goals in both lists sharing name.
func (s AppState) AttemptsFor(name string) int {
	n := 0
	for _, g := range s.Goals {
		if g.Name == name {
			n++
		}
	}
	for _, g := range s.CompletedGoals {
		if g.Name == name {
			n++
		}
	}
	return n
}

func nameLength(name string) int {
	return utf8.RuneCountInString(name)
}
