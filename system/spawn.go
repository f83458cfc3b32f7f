package system

// @lixen: #interact{state[spawn,interval]}

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/deskrush/engine"
	"github.com/lixenwraith/deskrush/event"
	"github.com/lixenwraith/deskrush/parameter"
)

// SpawnConfig sets the shrinking spawn cadence
type SpawnConfig struct {
	Initial time.Duration
	Min     time.Duration
	Step    time.Duration
}

// Validate checks the interval bounds
func (c SpawnConfig) Validate() error {
	if c.Min <= 0 {
		return errors.New("spawn: minimum interval must be positive")
	}
	if c.Initial < c.Min {
		return fmt.Errorf("spawn: initial interval %v below minimum %v", c.Initial, c.Min)
	}
	if c.Step < 0 {
		return fmt.Errorf("spawn: negative decrease step %v", c.Step)
	}
	return nil
}

// SpawnSystem picks an idle station at a steadily shrinking interval
// The interval drops by Step after every attempt, hit or miss, and never below Min
type SpawnSystem struct {
	world    *engine.World
	stations []*StationTask
	cfg      SpawnConfig

	current     time.Duration
	accumulated time.Duration

	attempts uint64
	spawned  uint64
}

// NewSpawnSystem creates a scheduler over the given station pool
func NewSpawnSystem(world *engine.World, stations []*StationTask, cfg SpawnConfig) (*SpawnSystem, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &SpawnSystem{
		world:    world,
		stations: stations,
		cfg:      cfg,
		current:  cfg.Initial,
	}, nil
}

// Name returns system's name
func (s *SpawnSystem) Name() string {
	return "spawn"
}

// Priority returns the system's priority (after timers, so stations freed this step are eligible)
func (s *SpawnSystem) Priority() int {
	return parameter.PrioritySpawn
}

// Update advances the spawn accumulator
func (s *SpawnSystem) Update(dt time.Duration) {
	s.Tick(dt)
}

// Tick accumulates elapsed time and runs one attempt when the interval has elapsed
// Stations whose artifact vanished are reconciled first, every step
func (s *SpawnSystem) Tick(dt time.Duration) {
	for _, st := range s.stations {
		st.reconcile()
	}

	s.accumulated += dt
	if s.accumulated < s.current {
		return
	}

	s.accumulated = 0
	s.current -= s.cfg.Step
	if s.current < s.cfg.Min {
		s.current = s.cfg.Min
	}
	s.AttemptSpawn()
}

// AttemptSpawn activates one idle station chosen uniformly at random
// Returns false when every station is busy
func (s *SpawnSystem) AttemptSpawn() bool {
	s.attempts++

	idle := make([]*StationTask, 0, len(s.stations))
	for _, st := range s.stations {
		if st.IsIdle() {
			idle = append(idle, st)
		}
	}

	if len(idle) == 0 {
		s.world.PushEvent(event.EventSpawnSkipped, &event.SpawnPayload{Interval: s.current})
		return false
	}

	if !idle[s.world.Rand.IntN(len(idle))].Activate() {
		return false
	}
	s.spawned++
	return true
}

// Interval returns the current spawn interval
func (s *SpawnSystem) Interval() time.Duration {
	return s.current
}

// Attempts returns the number of spawn attempts so far
func (s *SpawnSystem) Attempts() uint64 {
	return s.attempts
}

// Spawned returns the number of successful activations
func (s *SpawnSystem) Spawned() uint64 {
	return s.spawned
}
