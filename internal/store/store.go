package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/tally/internal/model"
	"github.com/sandeepkv93/tally/internal/storage"
)

var (
	ErrNotFound  = errors.New("store: goal not found")
	ErrAmbiguous = errors.New("store: ambiguous goal id")
)

// Persister is the durable side of the store. The storage package
// provides the implementations.
type Persister interface {
	Load(ctx context.Context) (model.AppState, error)
	Save(ctx context.Context, state model.AppState) error
}

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type IDGenerator interface {
	NewID() string
}

type IDFunc func() string

func (f IDFunc) NewID() string { return f() }

// LanguageApplier receives the active language whenever it changes.
type LanguageApplier interface {
	SetLanguage(code string) bool
}

type Options struct {
	Persister    Persister
	Clock        Clock
	IDs          IDGenerator
	Language     LanguageApplier
	Logger       *log.Logger
	WriteTimeout time.Duration
}

// Store owns the application state. Every mutation goes through Dispatch,
// which applies commands under one lock and writes one snapshot.
type Store struct {
	mu           sync.Mutex
	state        model.AppState
	persister    Persister
	clock        Clock
	ids          IDGenerator
	language     LanguageApplier
	logger       *log.Logger
	writeTimeout time.Duration
	writes       int
}

// New restores the last snapshot. A missing or unreadable snapshot starts
// from an empty state; nothing is written until the first mutation.
func New(opts Options) *Store {
	s := &Store{
		persister:    opts.Persister,
		clock:        opts.Clock,
		ids:          opts.IDs,
		language:     opts.Language,
		logger:       opts.Logger,
		writeTimeout: opts.WriteTimeout,
	}
	if s.clock == nil {
		s.clock = ClockFunc(time.Now)
	}
	if s.ids == nil {
		s.ids = IDFunc(uuid.NewString)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.writeTimeout <= 0 {
		s.writeTimeout = 5 * time.Second
	}

	state, err := s.load()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Printf("store: restore snapshot: %v", err)
		}
		state = model.NewAppState()
	}
	s.state = s.sanitize(state)
	s.applyLanguage(s.state.Language)
	return s
}

// Dispatch applies cmds in order as a single mutation and persists the
// result once. Any active goal left at its target is moved to history.
func (s *Store) Dispatch(cmds ...Command) model.AppState {
	if len(cmds) == 0 {
		return s.State()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	next := s.state.Clone()
	languageChanged := false
	for _, cmd := range cmds {
		var ok bool
		next, ok = apply(next, cmd, now)
		if !ok {
			s.logger.Printf("store: unknown command kind %q", cmd.Kind)
			continue
		}
		if cmd.Kind == KindSetLanguage {
			languageChanged = true
		}
	}
	next = settle(next, now)

	s.state = next
	if languageChanged {
		s.applyLanguage(next.Language)
	}
	s.persist(next)
	return next.Clone()
}

func (s *Store) Add(goal model.Goal) {
	s.Dispatch(AddCommand(goal))
}

func (s *Store) Update(goal model.Goal) {
	s.Dispatch(UpdateCommand(goal))
}

func (s *Store) Delete(id string) {
	s.Dispatch(DeleteCommand(id))
}

func (s *Store) Complete(id string) {
	s.Dispatch(CompleteCommand(id))
}

func (s *Store) HoldOver(id string) {
	s.Dispatch(HoldOverCommand(id))
}

func (s *Store) Continue(id string) {
	s.Dispatch(ContinueCommand(id))
}

func (s *Store) ClearNew(id string) {
	s.Dispatch(ClearNewCommand(id))
}

func (s *Store) SetLanguage(code string) {
	s.Dispatch(SetLanguageCommand(code))
}

func (s *Store) SetTheme(theme model.Theme) {
	s.Dispatch(SetThemeCommand(theme))
}

// ReorderPriorities makes goals the new order of the current subset. Only
// ids are read from goals; current goals not listed keep their display
// order after the listed ones.
func (s *Store) ReorderPriorities(goals []model.Goal) {
	ids := make([]string, 0, len(goals))
	for _, g := range goals {
		ids = append(ids, g.ID)
	}
	s.ReorderIDs(ids)
}

func (s *Store) ReorderIDs(ids []string) {
	listed := make(map[string]bool, len(ids))
	for _, id := range ids {
		listed[id] = true
	}
	full := append([]string(nil), ids...)
	for _, g := range s.CurrentGoals() {
		if !listed[g.ID] {
			full = append(full, g.ID)
		}
	}
	s.Dispatch(ReorderCommand(full...))
}

// Move shifts a current goal by delta positions in display order. It
// reports false when the goal is not current or would not move.
func (s *Store) Move(id string, delta int) bool {
	current := s.CurrentGoals()
	from := model.IndexByID(current, id)
	if from < 0 {
		return false
	}
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to > len(current)-1 {
		to = len(current) - 1
	}
	if to == from {
		return false
	}
	moved := current[from]
	current = append(current[:from], current[from+1:]...)
	current = append(current[:to], append([]model.Goal{moved}, current[to:]...)...)
	s.ReorderPriorities(current)
	return true
}

// Edit applies the change-parameters form. The new total must exceed the
// current count so the goal stays active.
func (s *Store) Edit(id, name, description string, totalRepeats int) error {
	g, ok := s.Goal(id)
	if !ok {
		return nil
	}
	if err := model.ValidateName(name); err != nil {
		return err
	}
	if err := model.ValidateRepeats(totalRepeats, g.CurrentRepeats+1); err != nil {
		return err
	}
	s.Dispatch(EditCommand(id, name, description, totalRepeats))
	return nil
}

// NewGoal builds a fresh goal without adding it.
func (s *Store) NewGoal(name, description string, totalRepeats int) (model.Goal, error) {
	if err := model.ValidateName(name); err != nil {
		return model.Goal{}, err
	}
	if err := model.ValidateRepeats(totalRepeats, 0); err != nil {
		return model.Goal{}, err
	}
	name = strings.TrimSpace(name)
	now := s.clock.Now()
	return model.Goal{
		ID:           s.ids.NewID(),
		Name:         name,
		Description:  description,
		TotalRepeats: totalRepeats,
		Priority:     now.UnixMilli(),
		AttemptCount: s.AttemptsFor(name) + 1,
		CreatedAt:    now,
		IsNew:        true,
	}, nil
}

// Create builds a goal and adds it.
func (s *Store) Create(name, description string, totalRepeats int) (model.Goal, error) {
	g, err := s.NewGoal(name, description, totalRepeats)
	if err != nil {
		return model.Goal{}, err
	}
	s.Add(g)
	return g, nil
}

// Restart starts a new attempt of a completed goal. The completed record
// is left untouched.
func (s *Store) Restart(completedID string, totalRepeats int, description string) (model.Goal, error) {
	done, ok := s.CompletedGoal(completedID)
	if !ok {
		return model.Goal{}, ErrNotFound
	}
	return s.Create(done.Name, description, totalRepeats)
}

// Reload replaces the in-memory state with the persisted snapshot. It
// never writes. It reports whether the state changed.
func (s *Store) Reload() bool {
	state, err := s.load()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Printf("store: reload snapshot: %v", err)
		}
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	state = s.sanitize(state)
	if statesEqual(s.state, state) {
		return false
	}
	languageChanged := s.state.Language != state.Language
	s.state = state
	if languageChanged {
		s.applyLanguage(state.Language)
	}
	return true
}

func (s *Store) State() model.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) Goal(id string) (model.Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.state.IndexOf(id)
	if idx < 0 {
		return model.Goal{}, false
	}
	return s.state.Goals[idx].Clone(), true
}

func (s *Store) CompletedGoal(id string) (model.Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.state.CompletedIndexOf(id)
	if idx < 0 {
		return model.Goal{}, false
	}
	return s.state.CompletedGoals[idx].Clone(), true
}

// CurrentGoals returns the non-held-over goals in display order.
func (s *Store) CurrentGoals() []model.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state.CurrentGoals()
	if !s.state.ManualOrder {
		model.SortByPriority(out)
	}
	return out
}

func (s *Store) HeldOverGoals() []model.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.HeldOverGoals()
}

func (s *Store) CompletedGoals() []model.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone().CompletedGoals
}

func (s *Store) AttemptsFor(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.AttemptsFor(name)
}

func (s *Store) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Language
}

func (s *Store) Theme() model.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Theme
}

// Resolve finds a goal in either list by id or unique id prefix.
func (s *Store) Resolve(prefix string) (model.Goal, bool, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return model.Goal{}, false, ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.state.IndexOf(prefix); idx >= 0 {
		return s.state.Goals[idx].Clone(), false, nil
	}
	if idx := s.state.CompletedIndexOf(prefix); idx >= 0 {
		return s.state.CompletedGoals[idx].Clone(), true, nil
	}

	type hit struct {
		goal      model.Goal
		completed bool
	}
	var hits []hit
	for _, g := range s.state.Goals {
		if strings.HasPrefix(g.ID, prefix) {
			hits = append(hits, hit{goal: g, completed: false})
		}
	}
	for _, g := range s.state.CompletedGoals {
		if strings.HasPrefix(g.ID, prefix) {
			hits = append(hits, hit{goal: g, completed: true})
		}
	}
	switch len(hits) {
	case 0:
		return model.Goal{}, false, ErrNotFound
	case 1:
		return hits[0].goal.Clone(), hits[0].completed, nil
	default:
		return model.Goal{}, false, fmt.Errorf("%w: %q", ErrAmbiguous, prefix)
	}
}

func (s *Store) load() (model.AppState, error) {
	if s.persister == nil {
		return model.AppState{}, storage.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()
	return s.persister.Load(ctx)
}

// persist runs with s.mu held so writes keep call order.
func (s *Store) persist(state model.AppState) {
	if s.persister == nil {
		return
	}
	s.writes++
	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()
	if err := s.persister.Save(ctx, state); err != nil {
		s.logger.Printf("store: persist snapshot: %v", err)
	}
}

func (s *Store) applyLanguage(code string) {
	if s.language == nil {
		return
	}
	if !s.language.SetLanguage(code) {
		s.logger.Printf("store: language %q has no translations", code)
	}
}

// sanitize enforces the id uniqueness rule on a restored snapshot and
// settles goals left at their target.
func (s *Store) sanitize(state model.AppState) model.AppState {
	state = state.Normalize()
	seen := make(map[string]bool, len(state.Goals)+len(state.CompletedGoals))
	keep := func(goals []model.Goal, list string) []model.Goal {
		out := make([]model.Goal, 0, len(goals))
		for _, g := range goals {
			if strings.TrimSpace(g.ID) == "" || seen[g.ID] {
				s.logger.Printf("store: dropping %s goal with empty or duplicate id %q", list, g.ID)
				continue
			}
			seen[g.ID] = true
			out = append(out, g)
		}
		return out
	}
	state.Goals = keep(state.Goals, "active")
	state.CompletedGoals = keep(state.CompletedGoals, "completed")
	return settle(state, s.clock.Now())
}

func statesEqual(a, b model.AppState) bool {
	if a.Language != b.Language || a.Theme != b.Theme || a.ManualOrder != b.ManualOrder {
		return false
	}
	return goalsEqual(a.Goals, b.Goals) && goalsEqual(a.CompletedGoals, b.CompletedGoals)
}

func goalsEqual(a, b []model.Goal) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := a[i], b[i]
		if x.ID != y.ID || x.Name != y.Name || x.Description != y.Description ||
			x.TotalRepeats != y.TotalRepeats || x.CurrentRepeats != y.CurrentRepeats ||
			x.Priority != y.Priority || x.IsHeldOver != y.IsHeldOver ||
			x.AttemptCount != y.AttemptCount || x.IsNew != y.IsNew ||
			!x.CreatedAt.Equal(y.CreatedAt) {
			return false
		}
		if (x.CompletedAt == nil) != (y.CompletedAt == nil) {
			return false
		}
		if x.CompletedAt != nil && !x.CompletedAt.Equal(*y.CompletedAt) {
			return false
		}
	}
	return true
}
