package system

// @lixen: #interact{state[task,timer],end[artifact],trigger[timer]}

import (
	"log"
	"time"

	"github.com/lixenwraith/deskrush/component"
	"github.com/lixenwraith/deskrush/engine"
	"github.com/lixenwraith/deskrush/event"
	"github.com/lixenwraith/deskrush/vmath"
)

// Ledger is the countdown surface a station mutates
type Ledger interface {
	Credit(amount time.Duration)
	Debit(amount time.Duration)
}

// StationConfig describes one station and the tasks it can show
type StationConfig struct {
	ID         component.StationID
	Position   vmath.Vec3F
	ZoneRadius float64

	// DockOffset and DockYaw place a docked pawn relative to the station
	DockOffset vmath.Vec3F
	DockYaw    float64

	Pool            []component.TaskDefinition
	ExpiryTimeout   time.Duration
	ResolutionDelay time.Duration

	ArtifactLift  float64
	ArtifactScale float64
}

// ResolutionHandle ties a pawn lock window to one resolving activation
// The zero value is invalid and is returned when a resolve request is rejected
type ResolutionHandle struct {
	Station     component.StationID
	Activation  uint64
	StartedAt   time.Time
	CompletesAt time.Time
}

// Valid reports whether BeginResolve accepted the request
func (h ResolutionHandle) Valid() bool {
	return h.Station != ""
}

// LockWindow is the span the committed pawn stays locked
func (h ResolutionHandle) LockWindow() time.Duration {
	return h.CompletesAt.Sub(h.StartedAt)
}

// StationTask is the per-station task lifecycle:
// Idle -> Active -> Resolving -> Idle (resolved) or Active -> Idle (expired)
type StationTask struct {
	cfg    StationConfig
	world  *engine.World
	ledger Ledger

	state       component.TaskState
	def         component.TaskDefinition
	activation  uint64
	activatedAt time.Time
	deadline    time.Time

	artifact     engine.ArtifactHandle
	expiryTimer  *engine.Timer
	resolveTimer *engine.Timer
}

// NewStationTask creates an idle station
// Pool must be non-empty; see Validate on the config layer
func NewStationTask(world *engine.World, ledger Ledger, cfg StationConfig) *StationTask {
	return &StationTask{
		cfg:    cfg,
		world:  world,
		ledger: ledger,
		state:  component.TaskIdle,
	}
}

// ID returns the station id
func (s *StationTask) ID() component.StationID {
	return s.cfg.ID
}

// State returns the current lifecycle state without reconciling external destruction
func (s *StationTask) State() component.TaskState {
	return s.state
}

// Required returns the identity the current activation needs; empty while idle
func (s *StationTask) Required() component.Identity {
	if s.state == component.TaskIdle {
		return ""
	}
	return s.def.Required
}

// Current returns the active task definition and whether one is shown
func (s *StationTask) Current() (component.TaskDefinition, bool) {
	return s.def, s.state != component.TaskIdle
}

// Deadline returns the expiry deadline of the current activation
func (s *StationTask) Deadline() time.Time {
	return s.deadline
}

// Activation returns how many times this station was activated
func (s *StationTask) Activation() uint64 {
	return s.activation
}

// Volume returns the trigger volume used for zone membership
func (s *StationTask) Volume() component.TriggerVolume {
	return component.TriggerVolume{Center: s.cfg.Position, Radius: s.cfg.ZoneRadius}
}

// Position returns the station origin
func (s *StationTask) Position() vmath.Vec3F {
	return s.cfg.Position
}

// DockPose returns the fixed pose a pawn docks to at this station
func (s *StationTask) DockPose() component.Pose {
	return component.Pose{
		Position: vmath.V3FAdd(s.cfg.Position, s.cfg.DockOffset),
		Yaw:      s.cfg.DockYaw,
		Scale:    1,
	}
}

// IsIdle reports whether the station can take a new task
// A station whose artifact was destroyed externally is reset to idle here
func (s *StationTask) IsIdle() bool {
	s.reconcile()
	return s.state == component.TaskIdle
}

// Activate shows a task drawn uniformly from the pool
// Returns false unless the station is idle
func (s *StationTask) Activate() bool {
	if !s.IsIdle() || len(s.cfg.Pool) == 0 {
		return false
	}

	s.def = s.cfg.Pool[s.world.Rand.IntN(len(s.cfg.Pool))]
	s.activation++
	s.activatedAt = s.world.Now()
	s.deadline = s.activatedAt.Add(s.cfg.ExpiryTimeout)

	pose := component.Pose{
		Position: vmath.V3FAdd(s.cfg.Position, vmath.Vec3F{Y: s.cfg.ArtifactLift}),
		Scale:    s.cfg.ArtifactScale,
	}
	s.artifact = s.world.Collab.Artifacts.SpawnArtifact(s.cfg.ID, s.def, pose)

	activation := s.activation
	s.expiryTimer = s.world.Scheduler.At(s.deadline, "expire:"+string(s.cfg.ID), func() {
		s.onExpiryElapsed(activation)
	})
	s.state = component.TaskActive

	s.world.Collab.Sound.PlaySound(cueOr(s.def.ShowCue, component.CueTaskShow), false)
	s.world.PushEvent(event.EventTaskActivated, s.payload(component.TaskActive, 0))
	log.Printf("station %s: task %q shown, requires %s", s.cfg.ID, s.def.Name, s.def.Required)
	return true
}

// CanResolve reports whether a pawn of the given identity resolves the shown task
// Pure query, safe to call any number of times
func (s *StationTask) CanResolve(identity component.Identity) bool {
	if s.state != component.TaskActive {
		return false
	}
	if s.artifact != nil && !s.artifact.Alive() {
		return false
	}
	return identity == s.def.Required
}

// BeginResolve commits the shown task to resolution
// The expiry timer is cancelled; completion fires after the resolution delay
// Returns the zero handle when the station is not active
func (s *StationTask) BeginResolve() ResolutionHandle {
	s.reconcile()
	if s.state != component.TaskActive {
		return ResolutionHandle{}
	}

	s.expiryTimer.Cancel()
	s.expiryTimer = nil

	now := s.world.Now()
	h := ResolutionHandle{
		Station:     s.cfg.ID,
		Activation:  s.activation,
		StartedAt:   now,
		CompletesAt: now.Add(s.cfg.ResolutionDelay),
	}

	activation := s.activation
	s.resolveTimer = s.world.Scheduler.At(h.CompletesAt, "resolve:"+string(s.cfg.ID), func() {
		s.onResolutionComplete(activation)
	})
	s.state = component.TaskResolving

	s.world.PushEvent(event.EventTaskResolving, s.payload(component.TaskResolving, 0))
	return h
}

// onResolutionComplete credits the reward and clears the task
func (s *StationTask) onResolutionComplete(activation uint64) {
	s.resolveTimer = nil
	if s.state != component.TaskResolving || activation != s.activation {
		return
	}
	if s.artifactLost() {
		s.reset()
		return
	}

	s.ledger.Credit(s.def.Reward)
	s.clear()

	s.world.Collab.Sound.PlaySound(cueOr(s.def.ResolvedCue, component.CueTaskResolved), false)
	s.world.PushEvent(event.EventTaskResolved, s.payload(component.TaskResolved, s.def.Reward))
	log.Printf("station %s: task %q resolved, +%v", s.cfg.ID, s.def.Name, s.def.Reward)
}

// onExpiryElapsed debits the penalty when the task was never committed
func (s *StationTask) onExpiryElapsed(activation uint64) {
	s.expiryTimer = nil
	if s.state != component.TaskActive || activation != s.activation {
		return
	}
	if s.artifactLost() {
		s.reset()
		return
	}

	s.ledger.Debit(s.def.Penalty)
	s.clear()

	s.world.Collab.Sound.PlaySound(component.CueTaskExpired, false)
	s.world.PushEvent(event.EventTaskExpired, s.payload(component.TaskExpired, s.def.Penalty))
	log.Printf("station %s: task %q expired, -%v", s.cfg.ID, s.def.Name, s.def.Penalty)
}

// Teardown cancels pending timers and destroys the artifact; no callback fires afterwards
func (s *StationTask) Teardown() {
	s.reset()
}

func (s *StationTask) artifactLost() bool {
	return s.artifact != nil && !s.artifact.Alive()
}

// reconcile treats an externally destroyed artifact as an already-idle station
func (s *StationTask) reconcile() {
	if s.state != component.TaskIdle && s.artifactLost() {
		log.Printf("station %s: artifact destroyed externally, resetting", s.cfg.ID)
		s.reset()
	}
}

// clear destroys the artifact and returns to idle after a completed activation
func (s *StationTask) clear() {
	if s.artifact != nil {
		s.artifact.Destroy()
		s.artifact = nil
	}
	s.state = component.TaskIdle
}

// reset abandons the activation without reward or penalty
func (s *StationTask) reset() {
	s.expiryTimer.Cancel()
	s.resolveTimer.Cancel()
	s.expiryTimer = nil
	s.resolveTimer = nil
	s.clear()
}

func (s *StationTask) payload(state component.TaskState, amount time.Duration) *event.TaskPayload {
	return &event.TaskPayload{
		Station:    s.cfg.ID,
		Task:       s.def.Name,
		Required:   s.def.Required,
		State:      state,
		Activation: s.activation,
		Amount:     amount,
		Elapsed:    s.world.Now().Sub(s.activatedAt),
	}
}

func cueOr(cue, fallback component.SoundCue) component.SoundCue {
	if cue == "" {
		return fallback
	}
	return cue
}
