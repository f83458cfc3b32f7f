package telemetry

import (
	"sync/atomic"

	"github.com/lixenwraith/deskrush/engine"
	"github.com/lixenwraith/deskrush/event"
)

// StatusCounter mirrors every game event into the world's status registry
// as "events.<name>" counters, plus the last resolving and expiring stations
type StatusCounter struct {
	counters map[event.EventType]*atomic.Int64
}

// NewStatusCounter registers one counter per event type up front
func NewStatusCounter(w *engine.World) *StatusCounter {
	s := &StatusCounter{counters: make(map[event.EventType]*atomic.Int64)}
	for _, t := range event.AllEventTypes() {
		s.counters[t] = w.Status.Ints.Get("events." + t.String())
	}
	return s
}

func (s *StatusCounter) EventTypes() []event.EventType {
	return event.AllEventTypes()
}

func (s *StatusCounter) HandleEvent(w *engine.World, ev event.GameEvent) {
	if c, ok := s.counters[ev.Type]; ok {
		c.Add(1)
	}

	p, ok := ev.Payload.(*event.TaskPayload)
	if !ok {
		return
	}
	switch ev.Type {
	case event.EventTaskResolved:
		w.Status.Strings.Get("task.last_resolved").Store(string(p.Station) + "/" + p.Task)
	case event.EventTaskExpired:
		w.Status.Strings.Get("task.last_expired").Store(string(p.Station) + "/" + p.Task)
	}
}
