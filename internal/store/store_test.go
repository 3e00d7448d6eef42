package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/tally/internal/model"
	"github.com/sandeepkv93/tally/internal/storage"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type sequentialIDs struct {
	n int
}

func (s *sequentialIDs) NewID() string {
	s.n++
	return fmt.Sprintf("goal-%d", s.n)
}

type recordingLanguage struct {
	applied []string
}

func (r *recordingLanguage) SetLanguage(code string) bool {
	r.applied = append(r.applied, code)
	return code == "en" || code == "ru"
}

type harness struct {
	store *Store
	mem   *storage.MemoryStore
	clock *fakeClock
	lang  *recordingLanguage
	logs  *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWith(t, storage.NewMemoryStore())
}

func newHarnessWith(t *testing.T, mem *storage.MemoryStore) *harness {
	t.Helper()
	h := &harness{
		mem:   mem,
		clock: &fakeClock{now: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)},
		lang:  &recordingLanguage{},
		logs:  &bytes.Buffer{},
	}
	h.store = New(Options{
		Persister: mem,
		Clock:     h.clock,
		IDs:       &sequentialIDs{},
		Language:  h.lang,
		Logger:    log.New(h.logs, "", 0),
	})
	return h
}

func (h *harness) create(t *testing.T, name string, repeats int) model.Goal {
	t.Helper()
	g, err := h.store.Create(name, "", repeats)
	if err != nil {
		t.Fatalf("create %q: %v", name, err)
	}
	h.clock.Advance(time.Second)
	return g
}

func ids(goals []model.Goal) string {
	out := make([]string, 0, len(goals))
	for _, g := range goals {
		out = append(out, g.ID)
	}
	return strings.Join(out, ",")
}

func TestNewStartsEmptyWithoutWriting(t *testing.T) {
	h := newHarness(t)
	state := h.store.State()
	if len(state.Goals) != 0 || len(state.CompletedGoals) != 0 {
		t.Fatalf("expected empty state, got %+v", state)
	}
	if state.Language != "ru" || state.Theme != model.ThemeColor {
		t.Fatalf("unexpected defaults: %q %q", state.Language, state.Theme)
	}
	if h.mem.Saves() != 0 {
		t.Fatalf("expected no writes on startup, got %d", h.mem.Saves())
	}
	if len(h.lang.applied) != 1 || h.lang.applied[0] != "ru" {
		t.Fatalf("expected ru applied before first render, got %v", h.lang.applied)
	}
	if h.logs.Len() != 0 {
		t.Fatalf("missing snapshot should not be logged: %s", h.logs.String())
	}
}

func TestAddThenDeleteRestoresState(t *testing.T) {
	h := newHarness(t)
	before := h.store.State()

	g := h.create(t, "Push-ups", 3)
	if _, ok := h.store.Goal(g.ID); !ok {
		t.Fatalf("expected goal to be added")
	}
	h.store.Delete(g.ID)

	after := h.store.State()
	if ids(after.Goals) != ids(before.Goals) || ids(after.CompletedGoals) != ids(before.CompletedGoals) {
		t.Fatalf("state not restored: %+v", after)
	}
	h.store.Delete(g.ID)
	if h.mem.Saves() != 3 {
		t.Fatalf("expected one write per mutation, got %d", h.mem.Saves())
	}
}

func TestAddRejectsInvalidAndDuplicates(t *testing.T) {
	h := newHarness(t)
	g := h.create(t, "Push-ups", 3)

	h.store.Add(model.Goal{ID: "x", Name: "Zero", TotalRepeats: 0, AttemptCount: 1})
	h.store.Add(model.Goal{ID: "y", Name: "   ", TotalRepeats: 2, AttemptCount: 1})
	dup := g
	dup.Name = "Other"
	h.store.Add(dup)

	state := h.store.State()
	if len(state.Goals) != 1 || state.Goals[0].Name != "Push-ups" {
		t.Fatalf("expected only the original goal, got %+v", state.Goals)
	}
}

func TestUpdateClearsNewAndClamps(t *testing.T) {
	h := newHarness(t)
	g := h.create(t, "Reading", 10)
	if !g.IsNew {
		t.Fatalf("new goals should be highlighted")
	}

	g.CurrentRepeats = -4
	h.store.Update(g)
	got, _ := h.store.Goal(g.ID)
	if got.IsNew {
		t.Fatalf("update should clear isNew")
	}
	if got.CurrentRepeats != 0 {
		t.Fatalf("expected clamp to 0, got %d", got.CurrentRepeats)
	}

	h.store.Update(model.Goal{ID: "missing", Name: "Ghost", TotalRepeats: 1, AttemptCount: 1})
	if len(h.store.State().Goals) != 1 {
		t.Fatalf("update of a missing goal must not add it")
	}
}

func TestUpdateToTargetSettlesIntoHistory(t *testing.T) {
	h := newHarness(t)
	g := h.create(t, "Squats", 2)
	g.CurrentRepeats = 5
	h.store.Update(g)

	if _, ok := h.store.Goal(g.ID); ok {
		t.Fatalf("goal at target must not stay active")
	}
	done, ok := h.store.CompletedGoal(g.ID)
	if !ok || done.CurrentRepeats != 2 || done.CompletedAt == nil {
		t.Fatalf("expected settled completion, got %+v ok=%v", done, ok)
	}
}

func TestPushUpsScenario(t *testing.T) {
	h := newHarness(t)
	g := h.create(t, "Push-ups", 3)

	for i := 1; i <= 3; i++ {
		live, ok := h.store.Goal(g.ID)
		if !ok {
			t.Fatalf("goal vanished before tap %d", i)
		}
		live.CurrentRepeats++
		cmds := []Command{UpdateCommand(live)}
		if live.CurrentRepeats == live.TotalRepeats {
			cmds = append(cmds, CompleteCommand(live.ID))
		}
		h.store.Dispatch(cmds...)
	}

	state := h.store.State()
	if len(state.Goals) != 0 || len(state.CompletedGoals) != 1 {
		t.Fatalf("unexpected lists: %+v", state)
	}
	done := state.CompletedGoals[0]
	if done.CurrentRepeats != 3 || done.CompletedAt == nil || !done.CompletedAt.Equal(h.clock.now) {
		t.Fatalf("unexpected completed record: %+v", done)
	}
	if h.mem.Saves() != 4 {
		t.Fatalf("expected 4 writes (add + 3 taps), got %d", h.mem.Saves())
	}
}

func TestCompleteMissingIsNoop(t *testing.T) {
	h := newHarness(t)
	h.create(t, "Push-ups", 3)
	h.store.Complete("nope")
	if len(h.store.CompletedGoals()) != 0 {
		t.Fatalf("unexpected completion")
	}
}

func TestHoldOverAndContinue(t *testing.T) {
	h := newHarness(t)
	a := h.create(t, "A", 3)
	b := h.create(t, "B", 3)

	h.store.HoldOver(a.ID)
	if got := ids(h.store.CurrentGoals()); got != b.ID {
		t.Fatalf("held-over goal still current: %s", got)
	}
	if got := ids(h.store.HeldOverGoals()); got != a.ID {
		t.Fatalf("unexpected held-over list: %s", got)
	}

	h.store.Continue(a.ID)
	if len(h.store.HeldOverGoals()) != 0 || len(h.store.CurrentGoals()) != 2 {
		t.Fatalf("continue did not restore goal")
	}
	h.store.HoldOver("missing")
	h.store.Continue("missing")
}

func TestDisplayOrderByPriorityUntilReorder(t *testing.T) {
	h := newHarness(t)
	a := h.create(t, "A", 3)
	b := h.create(t, "B", 3)
	c := h.create(t, "C", 3)

	if got, want := ids(h.store.CurrentGoals()), ids([]model.Goal{c, b, a}); got != want {
		t.Fatalf("expected newest first %s, got %s", want, got)
	}

	h.store.ReorderIDs([]string{a.ID, c.ID, b.ID})
	if got, want := ids(h.store.CurrentGoals()), ids([]model.Goal{a, c, b}); got != want {
		t.Fatalf("expected manual order %s, got %s", want, got)
	}

	d := h.create(t, "D", 3)
	if got, want := ids(h.store.CurrentGoals()), ids([]model.Goal{a, c, b, d}); got != want {
		t.Fatalf("list order should stay authoritative after reorder: want %s got %s", want, got)
	}
}

func TestManualOrderSurvivesRestore(t *testing.T) {
	mem := storage.NewMemoryStore()
	h := newHarnessWith(t, mem)
	a := h.create(t, "A", 3)
	b := h.create(t, "B", 3)
	c := h.create(t, "C", 3)
	h.store.ReorderIDs([]string{a.ID, b.ID, c.ID})
	d := h.create(t, "D", 3)

	want := ids([]model.Goal{a, b, c, d})
	if got := ids(h.store.CurrentGoals()); got != want {
		t.Fatalf("same process: want %s got %s", want, got)
	}
	again := newHarnessWith(t, mem)
	if got := ids(again.store.CurrentGoals()); got != want {
		t.Fatalf("after restore: want %s got %s", want, got)
	}
	if !again.store.State().ManualOrder {
		t.Fatalf("manual order flag not restored")
	}
}

func TestPriorityOrderIsNotPersistedAsManual(t *testing.T) {
	mem := storage.NewMemoryStore()
	h := newHarnessWith(t, mem)
	a := h.create(t, "A", 3)
	b := h.create(t, "B", 3)

	again := newHarnessWith(t, mem)
	if again.store.State().ManualOrder {
		t.Fatalf("manual order set without a reorder")
	}
	if got, want := ids(again.store.CurrentGoals()), ids([]model.Goal{b, a}); got != want {
		t.Fatalf("want %s got %s", want, got)
	}
}

func TestReorderPrioritiesRewritesAndKeepsHeldOver(t *testing.T) {
	h := newHarness(t)
	a := h.create(t, "A", 3)
	held1 := h.create(t, "H1", 3)
	b := h.create(t, "B", 3)
	held2 := h.create(t, "H2", 3)
	h.store.HoldOver(held1.ID)
	h.store.HoldOver(held2.ID)

	h.store.ReorderPriorities([]model.Goal{b, a, {ID: "unknown"}, b, held1})

	state := h.store.State()
	if got, want := ids(state.Goals), ids([]model.Goal{b, a, held1, held2}); got != want {
		t.Fatalf("unexpected stored order: want %s got %s", want, got)
	}
	base := h.clock.now.UnixMilli()
	if state.Goals[0].Priority != base || state.Goals[1].Priority != base-1 {
		t.Fatalf("unexpected priorities: %d %d (base %d)", state.Goals[0].Priority, state.Goals[1].Priority, base)
	}
	if !state.Goals[2].IsHeldOver || !state.Goals[3].IsHeldOver {
		t.Fatalf("held-over goals must be kept")
	}
}

func TestReorderUsesLiveRecordsAndIsIdempotent(t *testing.T) {
	h := newHarness(t)
	a := h.create(t, "A", 5)
	b := h.create(t, "B", 5)

	live, _ := h.store.Goal(a.ID)
	live.CurrentRepeats = 2
	h.store.Update(live)

	stale := a
	h.store.ReorderPriorities([]model.Goal{stale, b})
	first := ids(h.store.CurrentGoals())
	got, _ := h.store.Goal(a.ID)
	if got.CurrentRepeats != 2 {
		t.Fatalf("reorder must not resurrect stale payload, got %d", got.CurrentRepeats)
	}

	h.clock.Advance(time.Minute)
	h.store.ReorderPriorities([]model.Goal{a, b})
	if second := ids(h.store.CurrentGoals()); second != first {
		t.Fatalf("reorder not idempotent: %s vs %s", first, second)
	}
}

func TestReorderAppendsMissingCurrentGoals(t *testing.T) {
	h := newHarness(t)
	a := h.create(t, "A", 3)
	b := h.create(t, "B", 3)
	c := h.create(t, "C", 3)

	h.store.ReorderIDs([]string{a.ID})
	if got, want := ids(h.store.CurrentGoals()), ids([]model.Goal{a, c, b}); got != want {
		t.Fatalf("want %s got %s", want, got)
	}
}

func TestMove(t *testing.T) {
	h := newHarness(t)
	a := h.create(t, "A", 3)
	b := h.create(t, "B", 3)

	if !h.store.Move(a.ID, -1) {
		t.Fatalf("expected move up to succeed")
	}
	if got, want := ids(h.store.CurrentGoals()), ids([]model.Goal{a, b}); got != want {
		t.Fatalf("want %s got %s", want, got)
	}
	if h.store.Move(a.ID, -1) {
		t.Fatalf("moving the first goal up should report false")
	}
	if h.store.Move("missing", 1) {
		t.Fatalf("moving a missing goal should report false")
	}
}

func TestSetLanguageAndTheme(t *testing.T) {
	h := newHarness(t)
	h.store.SetLanguage("EN-us")
	if h.store.Language() != "en" {
		t.Fatalf("expected normalized en, got %q", h.store.Language())
	}
	if last := h.lang.applied[len(h.lang.applied)-1]; last != "en" {
		t.Fatalf("language not applied to translator: %v", h.lang.applied)
	}

	h.store.SetTheme(model.ThemeBW)
	h.store.SetTheme(model.Theme("neon"))
	if h.store.Theme() != model.ThemeBW {
		t.Fatalf("unknown theme must be ignored, got %q", h.store.Theme())
	}
}

func TestPersistFailureIsLoggedNotReturned(t *testing.T) {
	h := newHarness(t)
	h.mem.FailWith(errors.New("disk full"))

	g := h.create(t, "Push-ups", 3)
	if _, ok := h.store.Goal(g.ID); !ok {
		t.Fatalf("in-memory state must stay authoritative")
	}
	if !strings.Contains(h.logs.String(), "disk full") {
		t.Fatalf("expected failure to be logged, got %q", h.logs.String())
	}
	if h.store.writes != 1 {
		t.Fatalf("expected the write to be attempted once, got %d", h.store.writes)
	}
}

func TestRestoreFromSnapshot(t *testing.T) {
	mem := storage.NewMemoryStore()
	h := newHarnessWith(t, mem)
	g := h.create(t, "Push-ups", 3)
	h.store.SetLanguage("en")
	h.store.SetTheme(model.ThemeBW)

	again := newHarnessWith(t, mem)
	state := again.store.State()
	if ids(state.Goals) != g.ID || state.Language != "en" || state.Theme != model.ThemeBW {
		t.Fatalf("snapshot not restored: %+v", state)
	}
	if again.lang.applied[0] != "en" {
		t.Fatalf("restored language not applied: %v", again.lang.applied)
	}
}

func TestRestoreCorruptSnapshotStartsEmpty(t *testing.T) {
	mem := storage.NewMemoryStore()
	mem.SetRaw([]byte("{broken"))
	h := newHarnessWith(t, mem)
	if len(h.store.State().Goals) != 0 || h.store.Language() != "ru" {
		t.Fatalf("expected defaults after corrupt snapshot")
	}
	if !strings.Contains(h.logs.String(), "restore snapshot") {
		t.Fatalf("expected corrupt snapshot to be logged, got %q", h.logs.String())
	}
}

func TestRestoreDropsDuplicateIDs(t *testing.T) {
	mem := storage.NewMemoryStore()
	raw := `{"goals":[{"id":"a","name":"A","totalRepeats":3,"attemptCount":1}],
	"completedGoals":[{"id":"a","name":"A","totalRepeats":3,"currentRepeats":3,"attemptCount":1}],
	"language":"en","theme":"color"}`
	mem.SetRaw([]byte(raw))
	h := newHarnessWith(t, mem)
	state := h.store.State()
	if len(state.Goals) != 1 || len(state.CompletedGoals) != 0 {
		t.Fatalf("duplicate id survived restore: %+v", state)
	}
}

func TestReadingAttemptCount(t *testing.T) {
	h := newHarness(t)
	first := h.create(t, "Reading", 1)
	first.CurrentRepeats = 1
	h.store.Dispatch(UpdateCommand(first), CompleteCommand(first.ID))

	second := h.create(t, "Reading", 4)
	if second.AttemptCount != 2 {
		t.Fatalf("expected attemptCount 2, got %d", second.AttemptCount)
	}
}

func TestRestartCreatesNewAttempt(t *testing.T) {
	h := newHarness(t)
	g := h.create(t, "Push-ups", 2)
	g.CurrentRepeats = 2
	h.store.Update(g)
	done, ok := h.store.CompletedGoal(g.ID)
	if !ok {
		t.Fatalf("expected completed goal")
	}

	restarted, err := h.store.Restart(done.ID, 5, "again")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if restarted.ID == done.ID || restarted.TotalRepeats != 5 || restarted.CurrentRepeats != 0 {
		t.Fatalf("unexpected restarted goal: %+v", restarted)
	}
	if restarted.AttemptCount != 2 || !restarted.IsNew || restarted.Description != "again" {
		t.Fatalf("unexpected restart metadata: %+v", restarted)
	}
	after, _ := h.store.CompletedGoal(done.ID)
	if after.TotalRepeats != done.TotalRepeats || after.CurrentRepeats != done.CurrentRepeats {
		t.Fatalf("completed record mutated: %+v", after)
	}

	if _, err := h.store.Restart("missing", 5, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := h.store.Restart(done.ID, 0, ""); !errors.Is(err, model.ErrInvalidRepeats) {
		t.Fatalf("expected ErrInvalidRepeats, got %v", err)
	}
}

func TestEditEnforcesMinimumRepeats(t *testing.T) {
	h := newHarness(t)
	g := h.create(t, "Push-ups", 5)
	g.CurrentRepeats = 3
	h.store.Update(g)

	err := h.store.Edit(g.ID, "Push-ups", "", 3)
	var verr *model.ValidationError
	if !errors.As(err, &verr) || verr.Key != model.KeyMinRepeats || verr.Arg != 4 {
		t.Fatalf("expected minRepeatsError(4), got %v", err)
	}

	if err := h.store.Edit(g.ID, " Pull-ups ", "*slow*", 4); err != nil {
		t.Fatalf("edit: %v", err)
	}
	got, _ := h.store.Goal(g.ID)
	if got.Name != "Pull-ups" || got.TotalRepeats != 4 || got.Description != "*slow*" {
		t.Fatalf("edit not applied: %+v", got)
	}
	if err := h.store.Edit("missing", "X", "", 3); err != nil {
		t.Fatalf("edit of missing goal should be a no-op, got %v", err)
	}
}

func TestClearNewOnlyTouchesHighlight(t *testing.T) {
	h := newHarness(t)
	g := h.create(t, "Push-ups", 5)
	h.store.ClearNew(g.ID)
	got, _ := h.store.Goal(g.ID)
	if got.IsNew || got.CurrentRepeats != 0 || got.Priority != g.Priority {
		t.Fatalf("unexpected goal after ClearNew: %+v", got)
	}
}

func TestResolvePrefix(t *testing.T) {
	h := newHarness(t)
	h.store.Add(model.Goal{ID: "abc-1", Name: "A", TotalRepeats: 2, AttemptCount: 1})
	h.store.Add(model.Goal{ID: "abd-2", Name: "B", TotalRepeats: 2, AttemptCount: 1})

	g, completed, err := h.store.Resolve("abc")
	if err != nil || g.ID != "abc-1" || completed {
		t.Fatalf("unexpected resolve: %+v %v %v", g, completed, err)
	}
	if _, _, err := h.store.Resolve("ab"); !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous, got %v", err)
	}
	if _, _, err := h.store.Resolve("zzz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	mem := storage.NewMemoryStore()
	h := newHarnessWith(t, mem)
	h.create(t, "A", 3)

	external := h.store.State()
	external.Theme = model.ThemeBW
	external.Language = "en"
	if err := mem.Save(context.Background(), external); err != nil {
		t.Fatalf("external save: %v", err)
	}
	writes := mem.Saves()

	if !h.store.Reload() {
		t.Fatalf("expected reload to report a change")
	}
	if h.store.Theme() != model.ThemeBW {
		t.Fatalf("reload not applied")
	}
	if h.store.Reload() {
		t.Fatalf("second reload should report no change")
	}
	if mem.Saves() != writes {
		t.Fatalf("reload must not write")
	}

	mem.SetRaw([]byte("garbage"))
	if h.store.Reload() {
		t.Fatalf("corrupt snapshot must not replace state")
	}
	if h.store.Theme() != model.ThemeBW {
		t.Fatalf("state lost on corrupt reload")
	}
}

func TestDispatchUnknownKindIsLogged(t *testing.T) {
	h := newHarness(t)
	h.store.Dispatch(Command{Kind: Kind("explode")})
	if !strings.Contains(h.logs.String(), "explode") {
		t.Fatalf("expected unknown kind to be logged")
	}
}
