package system

// @lixen: #focus{control[drag,dock,lock]}

import (
	"sync"
	"time"

	"github.com/lixenwraith/deskrush/component"
	"github.com/lixenwraith/deskrush/engine"
	"github.com/lixenwraith/deskrush/event"
	"github.com/lixenwraith/deskrush/parameter"
	"github.com/lixenwraith/deskrush/vmath"
)

// PointerPhase is the gesture phase of a pointer event
type PointerPhase uint8

const (
	PointerBegin PointerPhase = iota
	PointerMove
	PointerEnd
)

// PointerEvent is a pointer sample already projected onto the ground plane
type PointerEvent struct {
	Phase PointerPhase
	Pos   vmath.Vec3F
}

// PawnPicker resolves the topmost pawn under a pointer position
type PawnPicker interface {
	PickPawn(pos vmath.Vec3F) (component.PawnID, bool)
}

// ZoneQuery returns every station whose trigger volume contains a position, nearest first
type ZoneQuery interface {
	Query(p vmath.Vec3F) []component.StationID
}

// DockConfig bounds the docking interpolation
type DockConfig struct {
	Speed       float64 // world units per second
	MinDuration time.Duration
	MaxDuration time.Duration
	GhostHeight float64
}

// DefaultDockConfig returns the built-in docking tunables
func DefaultDockConfig() DockConfig {
	return DockConfig{
		Speed:       parameter.DockSpeed,
		MinDuration: parameter.DockMinDuration,
		MaxDuration: parameter.DockMaxDuration,
		GhostHeight: parameter.GhostHeight,
	}
}

// DragSystem is the drag-and-assign controller
// It owns every pawn's transient drag state and the single active gesture
// Pointer events queued between steps are applied at the start of the next step,
// ahead of timer callbacks, so a release commits before a same-step expiry
type DragSystem struct {
	world    *engine.World
	cfg      DockConfig
	stations map[component.StationID]*StationTask
	zones    ZoneQuery
	picker   PawnPicker

	pawns map[component.PawnID]*Pawn
	index *PawnIndex

	active *Pawn

	pendingMu sync.Mutex
	pending   []PointerEvent
}

// NewDragSystem creates the controller over the given stations
// zones may be nil, in which case stations are indexed into a fresh ZoneIndex
func NewDragSystem(world *engine.World, stations []*StationTask, zones ZoneQuery, cfg DockConfig) *DragSystem {
	s := &DragSystem{
		world:    world,
		cfg:      cfg,
		stations: make(map[component.StationID]*StationTask, len(stations)),
		pawns:    make(map[component.PawnID]*Pawn),
		index:    &PawnIndex{},
	}
	for _, st := range stations {
		s.stations[st.ID()] = st
	}
	if zones == nil {
		ix := engine.NewZoneIndex(0)
		for _, st := range stations {
			ix.Insert(st.ID(), st.Volume())
		}
		zones = ix
	}
	s.zones = zones
	s.picker = s.index
	return s
}

// SetPicker replaces the built-in pawn pick query
func (s *DragSystem) SetPicker(p PawnPicker) {
	s.picker = p
}

// AddPawn registers a pawn; a duplicate id replaces nothing and returns the existing pawn
func (s *DragSystem) AddPawn(cfg PawnConfig) *Pawn {
	if p, ok := s.pawns[cfg.ID]; ok {
		return p
	}
	if cfg.PickRadius <= 0 {
		cfg.PickRadius = parameter.PawnPickRadius
	}
	p := newPawn(cfg)
	s.pawns[cfg.ID] = p
	s.index.order = append(s.index.order, p)
	return p
}

// Pawn returns a registered pawn
func (s *DragSystem) Pawn(id component.PawnID) (*Pawn, bool) {
	p, ok := s.pawns[id]
	return p, ok
}

// Pawns returns pawns in registration order
func (s *DragSystem) Pawns() []*Pawn {
	out := make([]*Pawn, len(s.index.order))
	copy(out, s.index.order)
	return out
}

// Active returns the pawn being dragged, if any
func (s *DragSystem) Active() (*Pawn, bool) {
	return s.active, s.active != nil
}

// Name returns system's name
func (s *DragSystem) Name() string {
	return "drag"
}

// Priority returns the system's priority (first in the step)
func (s *DragSystem) Priority() int {
	return parameter.PriorityDrag
}

// Push queues a pointer event for the next step; safe from any goroutine
// Events arriving while the world is suspended are dropped, never replayed on resume
func (s *DragSystem) Push(ev PointerEvent) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	if s.world.Suspended() {
		s.pending = nil
		return
	}
	s.pending = append(s.pending, ev)
}

// Update applies queued pointer events in arrival order
func (s *DragSystem) Update(time.Duration) {
	s.pendingMu.Lock()
	batch := s.pending
	s.pending = nil
	s.pendingMu.Unlock()

	for _, ev := range batch {
		switch ev.Phase {
		case PointerBegin:
			s.OnGrabBegin(ev.Pos)
		case PointerMove:
			s.OnPointerMove(ev.Pos)
		case PointerEnd:
			s.OnGrabEnd(ev.Pos)
		}
	}
}

// OnGrabBegin starts a drag when the pick test lands on a free pawn
// Rejected without state change when another drag is active, nothing is under
// the pointer, or the pawn is locked or docking
func (s *DragSystem) OnGrabBegin(pos vmath.Vec3F) bool {
	if s.active != nil {
		return false
	}
	id, ok := s.picker.PickPawn(pos)
	if !ok {
		return false
	}
	p, ok := s.pawns[id]
	if !ok || !p.Drag.Grabbable() {
		return false
	}

	pointer := vmath.V3FOnGround(pos, 0)
	p.Drag.GrabOffset = vmath.V3FSub(vmath.V3FOnGround(p.Body.Position, 0), pointer)
	p.Drag.IsDragging = true

	p.Body.Gravity = false
	p.Body.VelocityY = 0

	p.Ghost = component.Ghost{Active: true, Position: s.ghostAt(p, pos)}
	p.Drag.CurrentZone = s.zoneAt(p.Ghost.Position)

	s.active = p
	s.world.Collab.Animator.SetAnimation(p.cfg.ID, component.AnimMoving)
	s.world.PushEvent(event.EventPawnGrabbed, s.pawnPayload(p, ""))
	return true
}

// OnPointerMove moves the ghost and re-polls zone membership
func (s *DragSystem) OnPointerMove(pos vmath.Vec3F) {
	p := s.active
	if p == nil || !p.Drag.IsDragging {
		return
	}
	p.Ghost.Position = s.ghostAt(p, pos)
	p.Drag.CurrentZone = s.zoneAt(p.Ghost.Position)
}

// OnGrabEnd finishes the active drag
// Inside a zone the pawn docks; when the station accepts the identity the pawn
// also locks for the resolution window. Outside every zone it drops where the ghost was
// A second call without an intervening grab does nothing and returns false
func (s *DragSystem) OnGrabEnd(pos vmath.Vec3F) bool {
	p := s.active
	if p == nil || !p.Drag.IsDragging {
		return false
	}

	p.Ghost.Position = s.ghostAt(p, pos)
	p.Drag.CurrentZone = s.zoneAt(p.Ghost.Position)
	release := p.Ghost.Position
	zone := p.Drag.CurrentZone

	p.Ghost = component.Ghost{}
	p.Drag.IsDragging = false
	p.Body.Gravity = true
	s.active = nil

	station, inZone := s.stations[zone]
	if !inZone {
		// Drop at the ghost position and let gravity settle it
		p.Body.Position = release
		p.Body.VelocityY = 0
		p.Body.Kinematic = false
		p.Drag.CurrentZone = ""
		s.world.Collab.Animator.SetAnimation(p.cfg.ID, component.AnimResting)
		s.world.PushEvent(event.EventPawnReleased, s.pawnPayload(p, ""))
		return true
	}

	match := station.CanResolve(p.cfg.Identity)
	s.startDock(p, release, station)

	if match {
		if h := station.BeginResolve(); h.Valid() {
			s.lock(p, h)
		}
	}

	s.world.PushEvent(event.EventPawnReleased, s.pawnPayload(p, zone))
	return true
}

// ghostAt projects pointer + grab offset onto the ghost's hover plane
func (s *DragSystem) ghostAt(p *Pawn, pos vmath.Vec3F) vmath.Vec3F {
	return vmath.V3FOnGround(vmath.V3FAdd(vmath.V3FOnGround(pos, 0), p.Drag.GrabOffset), s.cfg.GhostHeight)
}

func (s *DragSystem) zoneAt(pos vmath.Vec3F) component.StationID {
	ids := s.zones.Query(pos)
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

func (s *DragSystem) startDock(p *Pawn, from vmath.Vec3F, station *StationTask) {
	to := station.DockPose()
	dist := vmath.V3FDist(from, to.Position)

	duration := s.cfg.MaxDuration
	if s.cfg.Speed > 0 {
		duration = time.Duration(dist / s.cfg.Speed * float64(time.Second))
	}
	if duration < s.cfg.MinDuration {
		duration = s.cfg.MinDuration
	}
	if s.cfg.MaxDuration > 0 && duration > s.cfg.MaxDuration {
		duration = s.cfg.MaxDuration
	}

	p.Body.Position = from
	p.Body.VelocityY = 0
	p.Body.Kinematic = true
	p.Drag.Docking = true
	p.dock = &dockMotion{
		from:    component.Pose{Position: from, Yaw: p.Body.Yaw, Scale: 1},
		to:      to,
		station: station.ID(),
		total:   duration.Seconds(),
	}
	s.world.Collab.Animator.SetAnimation(p.cfg.ID, component.AnimMoving)
}

// advanceDocks steps every docking interpolation by dt
func (s *DragSystem) advanceDocks(dt time.Duration) {
	for _, p := range s.index.order {
		m := p.dock
		if m == nil {
			continue
		}
		m.elapsed += dt.Seconds()

		t := 1.0
		if m.total > 0 {
			t = m.elapsed / m.total
		}
		p.Body.Position = vmath.V3FLerp(m.from.Position, m.to.Position, t)
		p.Body.Yaw = vmath.LerpAngle(m.from.Yaw, m.to.Yaw, t)

		if t < 1 {
			continue
		}

		p.Body.Position = m.to.Position
		p.Body.Yaw = m.to.Yaw
		p.dock = nil
		p.Drag.Docking = false
		if !p.Drag.IsLocked {
			p.Body.Kinematic = false
		}
		s.world.Collab.Animator.SetAnimation(p.cfg.ID, component.AnimResting)
		s.world.PushEvent(event.EventPawnDocked, s.pawnPayload(p, m.station))
	}
}

func (s *DragSystem) lock(p *Pawn, h ResolutionHandle) {
	p.Drag.IsLocked = true
	p.Body.Kinematic = true
	p.resolution = h
	p.lockTimer = s.world.Scheduler.At(h.CompletesAt, "unlock:"+string(p.cfg.ID), func() {
		s.unlock(p)
	})
	s.world.PushEvent(event.EventPawnLocked, s.pawnPayload(p, h.Station))
}

func (s *DragSystem) unlock(p *Pawn) {
	station := p.resolution.Station
	p.lockTimer = nil
	p.resolution = ResolutionHandle{}
	p.Drag.IsLocked = false

	if p.cfg.Respawn != nil {
		p.dock = nil
		p.Drag.Docking = false
		p.Body.Position = p.cfg.Respawn.Position
		p.Body.Yaw = p.cfg.Respawn.Yaw
		p.Body.VelocityY = 0
		p.Drag.CurrentZone = ""
	}
	if !p.Drag.Docking {
		p.Body.Kinematic = false
	}
	s.world.PushEvent(event.EventPawnUnlocked, s.pawnPayload(p, station))
}

// Teardown cancels lock timers and abandons the active drag
func (s *DragSystem) Teardown() {
	for _, p := range s.index.order {
		p.lockTimer.Cancel()
		p.lockTimer = nil
		p.Ghost = component.Ghost{}
		p.dock = nil
		p.Drag = component.PawnDragState{}
	}
	s.active = nil
	s.pendingMu.Lock()
	s.pending = nil
	s.pendingMu.Unlock()
}

func (s *DragSystem) pawnPayload(p *Pawn, station component.StationID) *event.PawnPayload {
	return &event.PawnPayload{
		Pawn:     p.cfg.ID,
		Identity: p.cfg.Identity,
		Station:  station,
		Position: p.Body.Position,
	}
}

// DockSystem advances docking interpolations owned by a DragSystem
type DockSystem struct {
	drag *DragSystem
}

// NewDockSystem creates the docking stage for drag
func NewDockSystem(drag *DragSystem) *DockSystem {
	return &DockSystem{drag: drag}
}

func (s *DockSystem) Name() string  { return "dock" }
func (s *DockSystem) Priority() int { return parameter.PriorityDock }

func (s *DockSystem) Update(dt time.Duration) {
	s.drag.advanceDocks(dt)
}
