package engine

// @lixen: #dev{base(core),feature[drag(render,system)],feature[station(render,system)]}

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/deskrush/event"
	"github.com/lixenwraith/deskrush/parameter"
	"github.com/lixenwraith/deskrush/status"
)

// System is one stage of the world step
type System interface {
	Name() string
	Priority() int // Lower values run first
	Update(dt time.Duration)
}

// World owns the shared step state: clock, timers, events, randomness and the
// priority-ordered system list. All gameplay mutation happens inside Step
type World struct {
	Clock     *Clock
	Scheduler *Scheduler
	Events    *event.EventQueue
	Status    *status.Registry
	Rand      RandSource
	Collab    Collaborators

	router  *event.Router[*World]
	systems []System

	frame     atomic.Int64
	suspended atomic.Bool

	teardown []func()

	mu          sync.RWMutex
	updateMutex sync.Mutex
}

// WorldOptions configures a new World; zero fields use defaults
type WorldOptions struct {
	Epoch  time.Time
	Rand   RandSource
	Status *status.Registry
	Collab Collaborators
}

// NewWorld creates a world with its clock at epoch and the timer system registered
func NewWorld(opts WorldOptions) *World {
	if opts.Rand == nil {
		opts.Rand = NewRandSource(uint64(time.Now().UnixNano()))
	}
	if opts.Status == nil {
		opts.Status = status.NewRegistry()
	}

	clock := NewClock(opts.Epoch)
	queue := event.NewEventQueue()
	w := &World{
		Clock:     clock,
		Scheduler: NewScheduler(clock),
		Events:    queue,
		Status:    opts.Status,
		Rand:      opts.Rand,
		Collab:    opts.Collab.Resolve(),
	}
	w.router = event.NewRouter[*World](queue)
	w.AddSystem(w.Scheduler)
	return w
}

// AddSystem adds a system and keeps the list sorted by priority
// Equal priorities keep registration order
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)

	// Insertion sort, small N, stable
	for i := len(w.systems) - 1; i > 0; i-- {
		if w.systems[i-1].Priority() <= w.systems[i].Priority() {
			break
		}
		w.systems[i-1], w.systems[i] = w.systems[i], w.systems[i-1]
	}
}

// Systems returns a copy of all registered systems in step order
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// RegisterHandler adds an event handler to the end-of-step dispatch
func (w *World) RegisterHandler(h event.Handler[*World]) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.router.Register(h)
}

// OnTeardown registers a hook run once by Teardown, in registration order
func (w *World) OnTeardown(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.teardown = append(w.teardown, fn)
}

// PushEvent emits a game event stamped with the current frame
func (w *World) PushEvent(eventType event.EventType, payload any) {
	w.Events.Push(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Frame:   w.frame.Load(),
	})
}

// Now returns current game time
func (w *World) Now() time.Time {
	return w.Clock.Now()
}

// FrameNumber returns the number of completed steps
func (w *World) FrameNumber() int64 {
	return w.frame.Load()
}

// Step advances game time by dt and runs one full step:
// systems in priority order, then event dispatch
// A suspended world ignores steps
func (w *World) Step(dt time.Duration) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()

	if w.suspended.Load() {
		return
	}

	if dt < 0 {
		dt = 0
	}
	if dt > parameter.MaxStepDelta {
		dt = parameter.MaxStepDelta
	}

	w.frame.Add(1)
	w.Clock.Advance(dt)

	w.mu.RLock()
	systems := w.systems
	w.mu.RUnlock()

	for _, s := range systems {
		s.Update(dt)
	}

	w.router.DispatchAll(w)
}

// RunSafe executes fn while holding the step lock, for readers outside the loop
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Suspend stops gameplay stepping; used by the level flow after a terminal signal
func (w *World) Suspend() {
	w.suspended.Store(true)
}

// Resume re-enables stepping
func (w *World) Resume() {
	w.suspended.Store(false)
}

// Suspended reports whether steps are ignored
func (w *World) Suspended() bool {
	return w.suspended.Load()
}

// Teardown suspends the world, runs teardown hooks and cancels every pending timer
// No scheduled callback fires afterwards
// Must not be called from inside Step
func (w *World) Teardown() {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()

	w.suspended.Store(true)

	w.mu.Lock()
	hooks := w.teardown
	w.teardown = nil
	w.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	w.Scheduler.Clear()
	_ = w.Events.Consume()
}
