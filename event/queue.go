package event

import (
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/deskrush/parameter"
)

// EventQueue is a bounded FIFO of game events
// Producers may push from any goroutine; the world step is the only consumer
// When full the oldest unread event is overwritten and counted as dropped
type EventQueue struct {
	mu      sync.Mutex
	ring    [parameter.EventQueueSize]GameEvent
	first   int // index of the oldest pending event
	pending int
	dropped atomic.Uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends an event, evicting the oldest one when the ring is full
func (eq *EventQueue) Push(ev GameEvent) {
	eq.mu.Lock()
	defer eq.mu.Unlock()

	slot := (eq.first + eq.pending) % parameter.EventQueueSize
	eq.ring[slot] = ev
	if eq.pending == parameter.EventQueueSize {
		eq.first = (eq.first + 1) % parameter.EventQueueSize
		eq.dropped.Add(1)
		return
	}
	eq.pending++
}

// Consume returns every pending event oldest first and empties the queue
// Returns nil when nothing is pending
func (eq *EventQueue) Consume() []GameEvent {
	eq.mu.Lock()
	defer eq.mu.Unlock()

	if eq.pending == 0 {
		return nil
	}
	out := make([]GameEvent, eq.pending)
	for i := range out {
		slot := (eq.first + i) % parameter.EventQueueSize
		out[i] = eq.ring[slot]
		eq.ring[slot] = GameEvent{}
	}
	eq.first, eq.pending = 0, 0
	return out
}

// Len returns the pending event count
func (eq *EventQueue) Len() int {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	return eq.pending
}

// Dropped returns the number of events overwritten before being consumed
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped.Load()
}
