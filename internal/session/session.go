package session

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/tally/internal/model"
	"github.com/sandeepkv93/tally/internal/scheduler"
	"github.com/sandeepkv93/tally/internal/store"
)

const DefaultDismissAfter = 5 * time.Second

var ErrGoalNotFound = errors.New("session: goal not found")

type State int

const (
	Active State = iota
	JustCompleted
	Closed
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case JustCompleted:
		return "just_completed"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type Reason string

const (
	ReasonAcknowledged Reason = "acknowledged"
	ReasonExpired      Reason = "expired"
	ReasonVanished     Reason = "vanished"
	ReasonHeldOver     Reason = "held_over"
	ReasonDeleted      Reason = "deleted"
	ReasonExited       Reason = "exited"
)

// GoalStore is the part of store.Store a session drives.
type GoalStore interface {
	Goal(id string) (model.Goal, bool)
	CurrentGoals() []model.Goal
	Dispatch(cmds ...store.Command) model.AppState
}

type Scheduler interface {
	Schedule(task scheduler.Task) error
	Cancel(id string) bool
}

type Options struct {
	Store        GoalStore
	Scheduler    Scheduler
	Now          func() time.Time
	DismissAfter time.Duration
	OnClose      func(goalID string, reason Reason)
	Logger       *log.Logger
}

var tokens atomic.Uint64

// Session tracks one open goal. Taps become store updates; reaching the
// target completes the goal once and schedules the acknowledgement to
// dismiss itself.
type Session struct {
	mu      sync.Mutex
	opts    Options
	goalID  string
	state   State
	token   uint64
	taskID  string
	closing sync.Once
}

func Open(goalID string, opts Options) (*Session, error) {
	if opts.Store == nil {
		return nil, errors.New("session: store is required")
	}
	if _, ok := opts.Store.Goal(goalID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrGoalNotFound, goalID)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DismissAfter <= 0 {
		opts.DismissAfter = DefaultDismissAfter
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Session{opts: opts, goalID: goalID, state: Active}, nil
}

func (s *Session) GoalID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goalID
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token identifies the pending dismissal; zero when none is pending.
func (s *Session) Token() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Goal returns the live record of the viewed goal.
func (s *Session) Goal() (model.Goal, bool) {
	return s.opts.Store.Goal(s.GoalID())
}

// Increment records one tap. It reports whether the count changed.
func (s *Session) Increment() bool {
	s.mu.Lock()
	if s.state != Active {
		s.mu.Unlock()
		return false
	}
	g, ok := s.opts.Store.Goal(s.goalID)
	if !ok || g.IsHeldOver || g.CurrentRepeats >= g.TotalRepeats {
		s.mu.Unlock()
		return false
	}

	g.CurrentRepeats++
	cmds := []store.Command{store.UpdateCommand(g)}
	if g.CurrentRepeats == g.TotalRepeats {
		cmds = append(cmds, store.CompleteCommand(g.ID))
		s.state = JustCompleted
		s.scheduleDismissLocked()
	}
	s.opts.Store.Dispatch(cmds...)
	s.mu.Unlock()
	return true
}

// Undo removes the last tap from a current goal.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Active {
		return false
	}
	g, ok := s.opts.Store.Goal(s.goalID)
	if !ok || g.IsHeldOver || g.CurrentRepeats <= 0 {
		return false
	}
	g.CurrentRepeats--
	s.opts.Store.Dispatch(store.UpdateCommand(g))
	return true
}

// Acknowledge dismisses the completion before the timer does.
func (s *Session) Acknowledge() bool {
	s.mu.Lock()
	if s.state != JustCompleted {
		s.mu.Unlock()
		return false
	}
	s.cancelDismissLocked()
	id := s.closeLocked()
	s.mu.Unlock()
	s.notifyClose(id, ReasonAcknowledged)
	return true
}

// Expire is the delivery of the dismissal task. Stale or canceled tokens
// are ignored.
func (s *Session) Expire(token uint64) bool {
	s.mu.Lock()
	if s.state != JustCompleted || token == 0 || token != s.token {
		s.mu.Unlock()
		return false
	}
	s.token = 0
	s.taskID = ""
	id := s.closeLocked()
	s.mu.Unlock()
	s.notifyClose(id, ReasonExpired)
	return true
}

func (s *Session) Next() bool {
	return s.step(1)
}

func (s *Session) Previous() bool {
	return s.step(-1)
}

func (s *Session) step(delta int) bool {
	s.mu.Lock()
	if s.state != Active {
		s.mu.Unlock()
		return false
	}
	if _, ok := s.opts.Store.Goal(s.goalID); !ok {
		id := s.closeLocked()
		s.mu.Unlock()
		s.notifyClose(id, ReasonVanished)
		return false
	}
	current := s.opts.Store.CurrentGoals()
	idx := model.IndexByID(current, s.goalID)
	if idx < 0 || len(current) < 2 {
		s.mu.Unlock()
		return false
	}
	s.goalID = current[model.Wrap(idx+delta, len(current))].ID
	s.mu.Unlock()
	return true
}

// Sync re-checks the viewed goal after the store changed underneath the
// session. A goal that disappeared closes an active session.
func (s *Session) Sync() {
	s.mu.Lock()
	if s.state != Active {
		s.mu.Unlock()
		return
	}
	if _, ok := s.opts.Store.Goal(s.goalID); ok {
		s.mu.Unlock()
		return
	}
	id := s.closeLocked()
	s.mu.Unlock()
	s.notifyClose(id, ReasonVanished)
}

func (s *Session) HoldOver() bool {
	s.mu.Lock()
	if s.state != Active {
		s.mu.Unlock()
		return false
	}
	g, ok := s.opts.Store.Goal(s.goalID)
	if !ok || g.IsHeldOver {
		s.mu.Unlock()
		return false
	}
	s.opts.Store.Dispatch(store.HoldOverCommand(g.ID))
	id := s.closeLocked()
	s.mu.Unlock()
	s.notifyClose(id, ReasonHeldOver)
	return true
}

func (s *Session) Continue() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Active {
		return false
	}
	g, ok := s.opts.Store.Goal(s.goalID)
	if !ok || !g.IsHeldOver {
		return false
	}
	s.opts.Store.Dispatch(store.ContinueCommand(g.ID))
	return true
}

func (s *Session) Delete() bool {
	s.mu.Lock()
	if s.state != Active {
		s.mu.Unlock()
		return false
	}
	s.opts.Store.Dispatch(store.DeleteCommand(s.goalID))
	id := s.closeLocked()
	s.mu.Unlock()
	s.notifyClose(id, ReasonDeleted)
	return true
}

// Close leaves the goal screen. A pending dismissal is canceled.
func (s *Session) Close() {
	s.mu.Lock()
	if s.state == Closed {
		s.mu.Unlock()
		return
	}
	s.cancelDismissLocked()
	id := s.closeLocked()
	s.mu.Unlock()
	s.notifyClose(id, ReasonExited)
}

func (s *Session) scheduleDismissLocked() {
	s.token = tokens.Add(1)
	if s.opts.Scheduler == nil {
		return
	}
	s.taskID = fmt.Sprintf("dismiss-%d", s.token)
	err := s.opts.Scheduler.Schedule(scheduler.Task{
		ID:     s.taskID,
		Kind:   scheduler.KindDismiss,
		GoalID: s.goalID,
		Token:  s.token,
		DueAt:  s.opts.Now().Add(s.opts.DismissAfter),
	})
	if err != nil {
		s.opts.Logger.Printf("session: schedule dismissal for %s: %v", s.goalID, err)
		s.taskID = ""
	}
}

func (s *Session) cancelDismissLocked() {
	if s.taskID != "" && s.opts.Scheduler != nil {
		s.opts.Scheduler.Cancel(s.taskID)
	}
	s.taskID = ""
	s.token = 0
}

func (s *Session) closeLocked() string {
	s.state = Closed
	return s.goalID
}

func (s *Session) notifyClose(goalID string, reason Reason) {
	s.closing.Do(func() {
		if s.opts.OnClose != nil {
			s.opts.OnClose(goalID, reason)
		}
	})
}
