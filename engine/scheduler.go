package engine

// @lixen: #focus{lifecycle[timer,deadline],event[dispatch]}

import (
	"container/heap"
	"time"

	"github.com/lixenwraith/deskrush/parameter"
)

type timerState uint8

const (
	timerPending timerState = iota
	timerFired
	timerCancelled
)

// Timer is a handle to one scheduled callback
// A nil *Timer is valid and behaves as an already-finished timer
type Timer struct {
	deadline time.Time
	seq      uint64
	label    string
	fn       func()
	index    int
	state    timerState
	sched    *Scheduler
}

// Cancel removes a pending timer; returns false if it already fired or was cancelled
func (t *Timer) Cancel() bool {
	if t == nil || t.state != timerPending {
		return false
	}
	t.state = timerCancelled
	if t.index >= 0 {
		heap.Remove(&t.sched.queue, t.index)
	}
	t.fn = nil
	return true
}

// Pending reports whether the callback is still scheduled
func (t *Timer) Pending() bool {
	return t != nil && t.state == timerPending
}

// Deadline returns the game time at which the callback fires
func (t *Timer) Deadline() time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.deadline
}

// Label returns the debug label given at scheduling
func (t *Timer) Label() string {
	if t == nil {
		return ""
	}
	return t.label
}

// timerHeap orders by deadline, then scheduling order
type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Scheduler holds deadline-keyed callbacks advanced by the world step
// Every delayed transition in the game (expiry, resolution, unlock) is a Timer here
// Not safe for concurrent use; the world step owns it
type Scheduler struct {
	clock *Clock
	queue timerHeap
	seq   uint64
}

// NewScheduler creates a scheduler reading game time from clock
func NewScheduler(clock *Clock) *Scheduler {
	return &Scheduler{clock: clock}
}

// At schedules fn to run at the first step where game time >= deadline
func (s *Scheduler) At(deadline time.Time, label string, fn func()) *Timer {
	s.seq++
	t := &Timer{
		deadline: deadline,
		seq:      s.seq,
		label:    label,
		fn:       fn,
		sched:    s,
	}
	heap.Push(&s.queue, t)
	return t
}

// After schedules fn to run d after the current game time
func (s *Scheduler) After(d time.Duration, label string, fn func()) *Timer {
	return s.At(s.clock.Now().Add(d), label, fn)
}

// RunDue fires every timer whose deadline has been reached, in deadline order
// Timers scheduled by a callback that are already due fire in the same call
func (s *Scheduler) RunDue() int {
	now := s.clock.Now()
	fired := 0
	for len(s.queue) > 0 {
		next := s.queue[0]
		if next.deadline.After(now) {
			break
		}
		heap.Pop(&s.queue)
		fn := next.fn
		next.fn = nil
		next.state = timerFired
		fired++
		if fn != nil {
			fn()
		}
	}
	return fired
}

// Len returns the number of pending timers
func (s *Scheduler) Len() int {
	return len(s.queue)
}

// Clear cancels every pending timer
func (s *Scheduler) Clear() {
	for _, t := range s.queue {
		t.state = timerCancelled
		t.fn = nil
		t.index = -1
	}
	s.queue = s.queue[:0]
}

// Name returns system's name
func (s *Scheduler) Name() string {
	return "timers"
}

// Priority returns the system's priority (after drag input, before spawn)
func (s *Scheduler) Priority() int {
	return parameter.PriorityTimers
}

// Update fires due timers; dt is already applied to the shared clock
func (s *Scheduler) Update(time.Duration) {
	s.RunDue()
}
