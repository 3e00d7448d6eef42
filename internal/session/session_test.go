package session

import (
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/sandeepkv93/tally/internal/model"
	"github.com/sandeepkv93/tally/internal/scheduler"
	"github.com/sandeepkv93/tally/internal/storage"
	"github.com/sandeepkv93/tally/internal/store"
)

type fakeScheduler struct {
	tasks    map[string]scheduler.Task
	canceled []string
	err      error
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{tasks: make(map[string]scheduler.Task)}
}

func (f *fakeScheduler) Schedule(task scheduler.Task) error {
	if f.err != nil {
		return f.err
	}
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeScheduler) Cancel(id string) bool {
	if _, ok := f.tasks[id]; !ok {
		return false
	}
	delete(f.tasks, id)
	f.canceled = append(f.canceled, id)
	return true
}

func (f *fakeScheduler) only(t *testing.T) scheduler.Task {
	t.Helper()
	if len(f.tasks) != 1 {
		t.Fatalf("expected one pending task, got %d", len(f.tasks))
	}
	for _, task := range f.tasks {
		return task
	}
	return scheduler.Task{}
}

type closeRecord struct {
	goalID string
	reason Reason
}

type fixture struct {
	store  *store.Store
	mem    *storage.MemoryStore
	sched  *fakeScheduler
	closes []closeRecord
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		mem:   storage.NewMemoryStore(),
		sched: newFakeScheduler(),
		now:   time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
	}
	f.store = store.New(store.Options{
		Persister: f.mem,
		Clock:     store.ClockFunc(func() time.Time { return f.now }),
		Logger:    log.New(io.Discard, "", 0),
	})
	return f
}

func (f *fixture) goal(t *testing.T, name string, repeats int) model.Goal {
	t.Helper()
	g, err := f.store.Create(name, "", repeats)
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	f.now = f.now.Add(time.Second)
	return g
}

func (f *fixture) open(t *testing.T, id string) *Session {
	t.Helper()
	s, err := Open(id, Options{
		Store:     f.store,
		Scheduler: f.sched,
		Now:       func() time.Time { return f.now },
		OnClose: func(goalID string, reason Reason) {
			f.closes = append(f.closes, closeRecord{goalID: goalID, reason: reason})
		},
		Logger: log.New(io.Discard, "", 0),
	})
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	return s
}

func TestOpenMissingGoal(t *testing.T) {
	f := newFixture(t)
	if _, err := Open("nope", Options{Store: f.store}); !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestIncrementCompletesExactlyOnce(t *testing.T) {
	f := newFixture(t)
	g := f.goal(t, "Push-ups", 3)
	s := f.open(t, g.ID)
	writesBefore := f.mem.Saves()

	for i := 0; i < 3; i++ {
		if !s.Increment() {
			t.Fatalf("tap %d should count", i+1)
		}
	}
	if s.State() != JustCompleted {
		t.Fatalf("expected JustCompleted, got %s", s.State())
	}
	if s.Increment() {
		t.Fatalf("tap after target must be a no-op")
	}

	state := f.store.State()
	if len(state.Goals) != 0 || len(state.CompletedGoals) != 1 {
		t.Fatalf("unexpected lists: %+v", state)
	}
	if state.CompletedGoals[0].CurrentRepeats != 3 {
		t.Fatalf("unexpected count %d", state.CompletedGoals[0].CurrentRepeats)
	}
	if got := f.mem.Saves() - writesBefore; got != 3 {
		t.Fatalf("expected 3 writes, got %d", got)
	}

	task := f.sched.only(t)
	if task.Kind != scheduler.KindDismiss || task.Token != s.Token() || task.GoalID != g.ID {
		t.Fatalf("unexpected dismissal task: %+v", task)
	}
	if !task.DueAt.Equal(f.now.Add(DefaultDismissAfter)) {
		t.Fatalf("unexpected due time %v", task.DueAt)
	}
}

func TestExpireClosesOnceAndIgnoresStaleTokens(t *testing.T) {
	f := newFixture(t)
	g := f.goal(t, "Squats", 1)
	s := f.open(t, g.ID)
	s.Increment()
	token := s.Token()

	if s.Expire(token + 1000) {
		t.Fatalf("stale token must be ignored")
	}
	if !s.Expire(token) {
		t.Fatalf("expected expiry to close the session")
	}
	if s.Expire(token) || s.Acknowledge() {
		t.Fatalf("closed session must ignore further events")
	}
	if len(f.closes) != 1 || f.closes[0].reason != ReasonExpired {
		t.Fatalf("expected single expired close, got %+v", f.closes)
	}
}

func TestAcknowledgeCancelsDismissal(t *testing.T) {
	f := newFixture(t)
	g := f.goal(t, "Squats", 1)
	s := f.open(t, g.ID)
	s.Increment()
	token := s.Token()
	task := f.sched.only(t)

	if !s.Acknowledge() {
		t.Fatalf("expected acknowledge to succeed")
	}
	if len(f.sched.canceled) != 1 || f.sched.canceled[0] != task.ID {
		t.Fatalf("dismissal not canceled: %+v", f.sched.canceled)
	}
	if s.Expire(token) {
		t.Fatalf("expiry after acknowledge must be ignored")
	}
	if len(f.closes) != 1 || f.closes[0].reason != ReasonAcknowledged {
		t.Fatalf("unexpected closes %+v", f.closes)
	}
}

func TestAcknowledgeOnlyFromJustCompleted(t *testing.T) {
	f := newFixture(t)
	g := f.goal(t, "Squats", 3)
	s := f.open(t, g.ID)
	if s.Acknowledge() {
		t.Fatalf("acknowledge from Active must be a no-op")
	}
	if s.State() != Active {
		t.Fatalf("state changed: %s", s.State())
	}
}

func TestUndoRoundTrip(t *testing.T) {
	f := newFixture(t)
	g := f.goal(t, "Reading", 5)
	s := f.open(t, g.ID)

	if s.Undo() {
		t.Fatalf("undo at zero must be a no-op")
	}
	s.Increment()
	s.Increment()
	if !s.Undo() {
		t.Fatalf("expected undo to succeed")
	}
	live, _ := f.store.Goal(g.ID)
	if live.CurrentRepeats != 1 {
		t.Fatalf("expected 1 after undo, got %d", live.CurrentRepeats)
	}
}

func TestHeldOverBlocksTapsUntilContinue(t *testing.T) {
	f := newFixture(t)
	g := f.goal(t, "Reading", 5)
	f.store.HoldOver(g.ID)
	s := f.open(t, g.ID)

	if s.Increment() || s.Undo() {
		t.Fatalf("taps must be blocked on a held-over goal")
	}
	if !s.Continue() {
		t.Fatalf("expected continue to succeed")
	}
	if !s.Increment() {
		t.Fatalf("tap should count after continue")
	}
}

func TestHoldOverAndDeleteClose(t *testing.T) {
	f := newFixture(t)
	a := f.goal(t, "A", 5)
	b := f.goal(t, "B", 5)

	s := f.open(t, a.ID)
	if !s.HoldOver() {
		t.Fatalf("expected hold over to succeed")
	}
	if s.State() != Closed {
		t.Fatalf("hold over should close the session")
	}

	s2 := f.open(t, b.ID)
	if !s2.Delete() {
		t.Fatalf("expected delete to succeed")
	}
	if _, ok := f.store.Goal(b.ID); ok {
		t.Fatalf("goal not deleted")
	}
	if len(f.closes) != 2 || f.closes[0].reason != ReasonHeldOver || f.closes[1].reason != ReasonDeleted {
		t.Fatalf("unexpected closes %+v", f.closes)
	}
}

func TestNextPreviousWrapOverLiveList(t *testing.T) {
	f := newFixture(t)
	a := f.goal(t, "A", 5)
	b := f.goal(t, "B", 5)
	c := f.goal(t, "C", 5)
	// Display order is c, b, a.
	s := f.open(t, c.ID)

	s.Next()
	if s.GoalID() != b.ID {
		t.Fatalf("expected b, got %s", s.GoalID())
	}
	s.Next()
	s.Next()
	if s.GoalID() != c.ID {
		t.Fatalf("expected wrap to c, got %s", s.GoalID())
	}
	s.Previous()
	if s.GoalID() != a.ID {
		t.Fatalf("expected wrap back to a, got %s", s.GoalID())
	}

	f.store.Delete(b.ID)
	s.Previous()
	if s.GoalID() != c.ID {
		t.Fatalf("expected live list without b, got %s", s.GoalID())
	}
}

func TestNavigationClosesWhenGoalVanished(t *testing.T) {
	f := newFixture(t)
	a := f.goal(t, "A", 5)
	f.goal(t, "B", 5)
	s := f.open(t, a.ID)

	f.store.Delete(a.ID)
	if s.Next() {
		t.Fatalf("navigation from a vanished goal must not move")
	}
	if s.State() != Closed || len(f.closes) != 1 || f.closes[0].reason != ReasonVanished {
		t.Fatalf("expected vanished close, got %s %+v", s.State(), f.closes)
	}
}

func TestSyncClosesActiveSessionOnly(t *testing.T) {
	f := newFixture(t)
	a := f.goal(t, "A", 1)
	b := f.goal(t, "B", 5)

	done := f.open(t, a.ID)
	done.Increment()
	done.Sync()
	if done.State() != JustCompleted {
		t.Fatalf("completed goal lives in history; session should stay JustCompleted")
	}

	s := f.open(t, b.ID)
	s.Sync()
	if s.State() != Active {
		t.Fatalf("sync with live goal should keep session")
	}
	f.store.Delete(b.ID)
	s.Sync()
	if s.State() != Closed {
		t.Fatalf("sync should close after external delete")
	}
}

func TestCloseCancelsPendingDismissal(t *testing.T) {
	f := newFixture(t)
	g := f.goal(t, "A", 1)
	s := f.open(t, g.ID)
	s.Increment()
	s.Close()
	s.Close()

	if len(f.sched.tasks) != 0 {
		t.Fatalf("dismissal still pending after close")
	}
	if len(f.closes) != 1 || f.closes[0].reason != ReasonExited {
		t.Fatalf("expected one exit close, got %+v", f.closes)
	}
}

func TestScheduleFailureKeepsCompletion(t *testing.T) {
	f := newFixture(t)
	f.sched.err = scheduler.ErrStopped
	g := f.goal(t, "A", 1)
	s := f.open(t, g.ID)

	if !s.Increment() {
		t.Fatalf("expected tap to count")
	}
	if _, ok := f.store.CompletedGoal(g.ID); !ok {
		t.Fatalf("goal should complete even when the timer cannot be scheduled")
	}
	if !s.Acknowledge() {
		t.Fatalf("manual acknowledge must still work")
	}
}

func TestStateString(t *testing.T) {
	if Active.String() != "active" || JustCompleted.String() != "just_completed" || Closed.String() != "closed" {
		t.Fatalf("unexpected state names")
	}
}
