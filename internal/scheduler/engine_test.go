package scheduler

import (
	"testing"
	"time"
)

func TestEngineEmitsInDueOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Task{ID: "later", Kind: KindDismiss, DueAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Task{ID: "sooner", Kind: KindHighlight, DueAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitTask(t, engine.C(), time.Second)
	second := waitTask(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d", engine.Pending())
	}
}

func TestEngineCancelPreventsDelivery(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Task{ID: "dismiss", Kind: KindDismiss, Token: 1, DueAt: now.Add(30 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := engine.Schedule(Task{ID: "marker", DueAt: now.Add(90 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule marker: %v", err)
	}
	if !engine.Cancel("dismiss") {
		t.Fatal("expected pending task to be canceled")
	}
	if engine.Cancel("dismiss") {
		t.Fatal("second cancel should report false")
	}

	got := waitTask(t, engine.C(), time.Second)
	if got.ID != "marker" {
		t.Fatalf("canceled task was delivered: %+v", got)
	}
}

func TestEngineRescheduleReplacesPendingTask(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	_ = engine.Schedule(Task{ID: "hl-1", Kind: KindHighlight, Token: 1, DueAt: now.Add(20 * time.Millisecond)})
	_ = engine.Schedule(Task{ID: "hl-1", Kind: KindHighlight, Token: 2, DueAt: now.Add(40 * time.Millisecond)})
	if engine.Pending() != 1 {
		t.Fatalf("expected one pending task, got %d", engine.Pending())
	}

	got := waitTask(t, engine.C(), time.Second)
	if got.Token != 2 {
		t.Fatalf("expected replacement token 2, got %d", got.Token)
	}
	select {
	case extra := <-engine.C():
		t.Fatalf("unexpected extra task: %+v", extra)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	due := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Task{ID: string(rune('a' + i)), DueAt: due}); err != nil {
			t.Fatalf("schedule task: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped tasks > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesTask(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Task{ID: "bad"}); err != ErrInvalidDueTime {
		t.Fatalf("expected ErrInvalidDueTime, got %v", err)
	}
	if err := engine.Schedule(Task{DueAt: time.Now()}); err != ErrMissingID {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
	engine.Stop()
	if err := engine.Schedule(Task{ID: "late", DueAt: time.Now()}); err != ErrStopped {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func waitTask(t *testing.T, ch <-chan Task, timeout time.Duration) Task {
	t.Helper()
	select {
	case task := <-ch:
		return task
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for task")
		return Task{}
	}
}
