package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/deskrush/component"
	"github.com/lixenwraith/deskrush/engine"
	"github.com/lixenwraith/deskrush/event"
	"github.com/lixenwraith/deskrush/vmath"
)

// GameConfig is everything needed to assemble one level
type GameConfig struct {
	Countdown time.Duration
	Stations  []StationConfig
	Pawns     []PawnConfig
	Spawn     SpawnConfig
	Dock      DockConfig
	Goals     LevelGoals
}

// Game wires the countdown, stations, spawner and drag controller into one World
type Game struct {
	World     *engine.World
	Countdown *Countdown
	Stations  []*StationTask
	Spawn     *SpawnSystem
	Drag      *DragSystem
	Level     *LevelSystem
	Zones     *engine.ZoneIndex
}

// NewGame builds a level; the world is ready to Step after Start
func NewGame(cfg GameConfig, opts engine.WorldOptions) (*Game, error) {
	if len(cfg.Stations) == 0 {
		return nil, errors.New("game: no stations")
	}

	world := engine.NewWorld(opts)
	countdown := NewCountdown(world, cfg.Countdown)

	zones := engine.NewZoneIndex(0)
	stations := make([]*StationTask, 0, len(cfg.Stations))
	seen := make(map[component.StationID]bool, len(cfg.Stations))
	for _, sc := range cfg.Stations {
		if len(sc.Pool) == 0 {
			return nil, fmt.Errorf("game: station %s has an empty task pool", sc.ID)
		}
		if seen[sc.ID] {
			return nil, fmt.Errorf("game: duplicate station id %s", sc.ID)
		}
		seen[sc.ID] = true
		st := NewStationTask(world, countdown, sc)
		stations = append(stations, st)
		zones.Insert(st.ID(), st.Volume())
	}

	spawn, err := NewSpawnSystem(world, stations, cfg.Spawn)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	drag := NewDragSystem(world, stations, zones, cfg.Dock)
	for _, pc := range cfg.Pawns {
		drag.AddPawn(pc)
	}

	level := NewLevelSystem(world, countdown, cfg.Goals)

	world.AddSystem(drag)
	world.AddSystem(spawn)
	world.AddSystem(NewDockSystem(drag))
	world.AddSystem(NewPhysicsSystem(drag))
	world.AddSystem(level)
	world.AddSystem(countdown)
	world.RegisterHandler(level)

	world.OnTeardown(drag.Teardown)
	world.OnTeardown(func() {
		for _, st := range stations {
			st.Teardown()
		}
	})

	return &Game{
		World:     world,
		Countdown: countdown,
		Stations:  stations,
		Spawn:     spawn,
		Drag:      drag,
		Level:     level,
		Zones:     zones,
	}, nil
}

// Start begins level music; gameplay advances with Step
func (g *Game) Start() {
	g.Level.Start()
}

// Step advances the level by dt
func (g *Game) Step(dt time.Duration) {
	g.World.Step(dt)
}

// Pointer queues a pointer event for the next step
func (g *Game) Pointer(phase PointerPhase, pos vmath.Vec3F) {
	g.Drag.Push(PointerEvent{Phase: phase, Pos: pos})
}

// Station looks up a station by id
func (g *Game) Station(id component.StationID) (*StationTask, bool) {
	for _, st := range g.Stations {
		if st.ID() == id {
			return st, true
		}
	}
	return nil, false
}

// OnEvent registers fn for the given event types
func (g *Game) OnEvent(fn func(*engine.World, event.GameEvent), types ...event.EventType) {
	g.World.RegisterHandler(event.HandlerFunc[*engine.World]{Types: types, Fn: fn})
}

// Teardown ends the level; no scheduled callback fires afterwards
func (g *Game) Teardown() {
	g.World.Teardown()
}

// StationView is a read-only copy of a station for renderers and APIs
type StationView struct {
	ID        component.StationID
	Position  vmath.Vec3F
	Radius    float64
	State     component.TaskState
	Task      string
	Required  component.Identity
	Glyph     rune
	Remaining time.Duration
}

// PawnView is a read-only copy of a pawn for renderers and APIs
type PawnView struct {
	ID       component.PawnID
	Identity component.Identity
	Position vmath.Vec3F
	Ghost    component.Ghost
	Drag     component.PawnDragState
}

// Snapshot is a consistent copy of the level state
type Snapshot struct {
	Frame     int64
	Elapsed   time.Duration
	Remaining time.Duration
	Expired   bool
	Interval  time.Duration
	Stations  []StationView
	Pawns     []PawnView
}

// Snapshot copies level state under the step lock
func (g *Game) Snapshot() Snapshot {
	var snap Snapshot
	g.World.RunSafe(func() {
		now := g.World.Now()
		snap = Snapshot{
			Frame:     g.World.FrameNumber(),
			Elapsed:   g.World.Clock.Elapsed(),
			Remaining: g.Countdown.Remaining(),
			Expired:   g.Countdown.HasExpired(),
			Interval:  g.Spawn.Interval(),
			Stations:  make([]StationView, 0, len(g.Stations)),
			Pawns:     make([]PawnView, 0, len(g.Drag.index.order)),
		}
		for _, st := range g.Stations {
			v := StationView{
				ID:       st.ID(),
				Position: st.Position(),
				Radius:   st.cfg.ZoneRadius,
				State:    st.State(),
			}
			if def, shown := st.Current(); shown {
				v.Task = def.Name
				v.Required = def.Required
				v.Glyph = def.Glyph
				if st.State() == component.TaskActive {
					v.Remaining = st.Deadline().Sub(now)
				}
			}
			snap.Stations = append(snap.Stations, v)
		}
		for _, p := range g.Drag.index.order {
			snap.Pawns = append(snap.Pawns, PawnView{
				ID:       p.cfg.ID,
				Identity: p.cfg.Identity,
				Position: p.Body.Position,
				Ghost:    p.Ghost,
				Drag:     p.Drag,
			})
		}
	})
	return snap
}
