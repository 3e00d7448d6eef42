package scheduler

import (
	"container/heap"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidDueTime = errors.New("scheduler: invalid due time")
	ErrMissingID      = errors.New("scheduler: task id is required")
	ErrStopped        = errors.New("scheduler: engine stopped")
)

type Kind string

const (
	// KindDismiss closes a completion acknowledgement.
	KindDismiss Kind = "dismiss"
	// KindHighlight clears the new-goal highlight.
	KindHighlight Kind = "highlight"
)

type Task struct {
	ID     string
	Kind   Kind
	GoalID string
	Token  uint64
	DueAt  time.Time
}

type queueItem struct {
	task  Task
	seq   uint64
	index int
}

type priorityQueue []*queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].task.DueAt.Equal(pq[j].task.DueAt) {
		return pq[i].seq < pq[j].seq
	}
	return pq[i].task.DueAt.Before(pq[j].task.DueAt)
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	item := x.(*queueItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[0 : n-1]
	return item
}

// Engine delivers tasks on C once they are due. Tasks are keyed by ID:
// scheduling an ID that is still pending replaces it, and Cancel removes
// it so it is never delivered.
type Engine struct {
	mu      sync.Mutex
	queue   priorityQueue
	pending map[string]*queueItem
	seq     uint64
	out     chan Task
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:   make(priorityQueue, 0),
		pending: make(map[string]*queueItem),
		out:     make(chan Task, bufferSize),
		wakeup:  make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

func (e *Engine) C() <-chan Task {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(task Task) error {
	if strings.TrimSpace(task.ID) == "" {
		return ErrMissingID
	}
	if task.DueAt.IsZero() {
		return ErrInvalidDueTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}

	if prev, ok := e.pending[task.ID]; ok {
		heap.Remove(&e.queue, prev.index)
	}
	e.seq++
	item := &queueItem{task: task, seq: e.seq}
	heap.Push(&e.queue, item)
	e.pending[task.ID] = item
	e.signalWakeup()
	return nil
}

// Cancel reports whether a pending task was removed.
func (e *Engine) Cancel(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	item, ok := e.pending[id]
	if !ok {
		return false
	}
	heap.Remove(&e.queue, item.index)
	delete(e.pending, id)
	e.signalWakeup()
	return true
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.DueAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			for _, task := range e.popDue(time.Now()) {
				select {
				case e.out <- task:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Task, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return Task{}, false
	}
	return e.queue[0].task, true
}

func (e *Engine) popDue(now time.Time) []Task {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Task, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].task
		if next.DueAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(*queueItem)
		delete(e.pending, item.task.ID)
		out = append(out, item.task)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
