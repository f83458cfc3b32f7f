package system

import (
	"time"

	"github.com/lixenwraith/deskrush/component"
	"github.com/lixenwraith/deskrush/engine"
	"github.com/lixenwraith/deskrush/event"
	"github.com/lixenwraith/deskrush/parameter"
)

// LevelGoals are optional win conditions; zero values disable them
type LevelGoals struct {
	ResolveTarget int
	Survive       time.Duration
}

// Outcome is the terminal result of a session
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeCleared
	OutcomeTimeOut
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCleared:
		return "cleared"
	case OutcomeTimeOut:
		return "time_out"
	default:
		return "none"
	}
}

// LevelSystem turns task and countdown events into level signals
// Countdown expiry is forwarded as EventTimeOut; a reached goal raises EventLevelCleared once
// It never ends the session itself; SessionFlow or an external level flow does
type LevelSystem struct {
	world     *engine.World
	countdown *Countdown
	goals     LevelGoals

	resolved int
	expired  int
	cleared  bool
}

// NewLevelSystem creates the level signal stage
func NewLevelSystem(world *engine.World, countdown *Countdown, goals LevelGoals) *LevelSystem {
	return &LevelSystem{
		world:     world,
		countdown: countdown,
		goals:     goals,
	}
}

func (s *LevelSystem) Name() string  { return "level" }
func (s *LevelSystem) Priority() int { return parameter.PriorityLevel }

// Start begins the level music
func (s *LevelSystem) Start() {
	s.world.Collab.Sound.PlaySound(component.CueLevelMusic, true)
}

// Update checks the survival goal
func (s *LevelSystem) Update(time.Duration) {
	if s.goals.Survive > 0 && s.world.Clock.Elapsed() >= s.goals.Survive {
		s.clear()
	}
}

// EventTypes returns the event types LevelSystem handles
func (s *LevelSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventTaskResolved,
		event.EventTaskExpired,
		event.EventCountdownExpired,
	}
}

// HandleEvent counts outcomes and raises level signals
func (s *LevelSystem) HandleEvent(w *engine.World, ev event.GameEvent) {
	switch ev.Type {
	case event.EventTaskResolved:
		s.resolved++
		w.Status.Ints.Get("tasks.resolved").Store(int64(s.resolved))
		if s.goals.ResolveTarget > 0 && s.resolved >= s.goals.ResolveTarget {
			s.clear()
		}
	case event.EventTaskExpired:
		s.expired++
		w.Status.Ints.Get("tasks.expired").Store(int64(s.expired))
	case event.EventCountdownExpired:
		if s.cleared {
			return
		}
		w.PushEvent(event.EventTimeOut, s.summary())
	}
}

func (s *LevelSystem) clear() {
	if s.cleared || s.countdown.HasExpired() {
		return
	}
	s.cleared = true
	s.world.PushEvent(event.EventLevelCleared, s.summary())
}

func (s *LevelSystem) summary() *event.LevelPayload {
	return &event.LevelPayload{
		Elapsed:   s.world.Clock.Elapsed(),
		Remaining: s.countdown.Remaining(),
		Resolved:  s.resolved,
		Expired:   s.expired,
	}
}

// Resolved returns the number of resolved tasks
func (s *LevelSystem) Resolved() int {
	return s.resolved
}

// Expired returns the number of expired tasks
func (s *LevelSystem) Expired() int {
	return s.expired
}

// SessionFlow is the default level flow: on the first terminal signal it ends the
// countdown session, suspends the world, swaps music for the outcome cue and reports
type SessionFlow struct {
	countdown *Countdown
	outcome   Outcome
	summary   event.LevelPayload
	onOutcome func(Outcome, event.LevelPayload)
}

// NewSessionFlow creates the flow; onOutcome may be nil
func NewSessionFlow(countdown *Countdown, onOutcome func(Outcome, event.LevelPayload)) *SessionFlow {
	return &SessionFlow{countdown: countdown, onOutcome: onOutcome}
}

func (f *SessionFlow) EventTypes() []event.EventType {
	return []event.EventType{event.EventTimeOut, event.EventLevelCleared}
}

func (f *SessionFlow) HandleEvent(w *engine.World, ev event.GameEvent) {
	if f.outcome != OutcomeNone {
		return
	}
	cue := component.CueLevelCleared
	f.outcome = OutcomeCleared
	if ev.Type == event.EventTimeOut {
		cue = component.CueTimeOut
		f.outcome = OutcomeTimeOut
	}
	if p, ok := ev.Payload.(*event.LevelPayload); ok {
		f.summary = *p
	}

	f.countdown.End()
	w.Suspend()
	w.Status.Bools.Get("level.over").Store(true)
	w.Status.Strings.Get("level.outcome").Store(f.outcome.String())
	w.Collab.Sound.StopSound(component.CueLevelMusic)
	w.Collab.Sound.PlaySound(cue, false)

	if f.onOutcome != nil {
		f.onOutcome(f.outcome, f.summary)
	}
}

// Outcome returns the terminal outcome, OutcomeNone while playing
func (f *SessionFlow) Outcome() Outcome {
	return f.outcome
}
