package system

import (
	"time"

	"github.com/lixenwraith/deskrush/component"
	"github.com/lixenwraith/deskrush/engine"
	"github.com/lixenwraith/deskrush/event"
	"github.com/lixenwraith/deskrush/vmath"
)

var testEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// fakeArtifact can be destroyed by the owner or by a test playing the outside world
type fakeArtifact struct {
	station component.StationID
	def     component.TaskDefinition
	pose    component.Pose
	alive   bool
}

func (a *fakeArtifact) Destroy()    { a.alive = false }
func (a *fakeArtifact) Alive() bool { return a.alive }

type recordingArtifacts struct {
	spawned []*fakeArtifact
}

func (r *recordingArtifacts) SpawnArtifact(station component.StationID, def component.TaskDefinition, pose component.Pose) engine.ArtifactHandle {
	a := &fakeArtifact{station: station, def: def, pose: pose, alive: true}
	r.spawned = append(r.spawned, a)
	return a
}

func (r *recordingArtifacts) last() *fakeArtifact {
	if len(r.spawned) == 0 {
		return nil
	}
	return r.spawned[len(r.spawned)-1]
}

type recordingSound struct {
	played  []component.SoundCue
	stopped []component.SoundCue
}

func (r *recordingSound) PlaySound(cue component.SoundCue, _ bool) { r.played = append(r.played, cue) }
func (r *recordingSound) StopSound(cue component.SoundCue)         { r.stopped = append(r.stopped, cue) }

func (r *recordingSound) count(cue component.SoundCue) int {
	n := 0
	for _, c := range r.played {
		if c == cue {
			n++
		}
	}
	return n
}

type recordingDisplay struct {
	texts []string
}

func (r *recordingDisplay) SetTimeText(text string) { r.texts = append(r.texts, text) }

func (r *recordingDisplay) last() string {
	if len(r.texts) == 0 {
		return ""
	}
	return r.texts[len(r.texts)-1]
}

type recordingAnimator struct {
	states map[component.PawnID]component.AnimState
}

func (r *recordingAnimator) SetAnimation(pawn component.PawnID, state component.AnimState) {
	if r.states == nil {
		r.states = make(map[component.PawnID]component.AnimState)
	}
	r.states[pawn] = state
}

// fakeLedger records credits and debits without any countdown behavior
type fakeLedger struct {
	credits []time.Duration
	debits  []time.Duration
}

func (l *fakeLedger) Credit(d time.Duration) { l.credits = append(l.credits, d) }
func (l *fakeLedger) Debit(d time.Duration)  { l.debits = append(l.debits, d) }

type harness struct {
	world     *engine.World
	artifacts *recordingArtifacts
	sound     *recordingSound
	display   *recordingDisplay
	animator  *recordingAnimator
	rand      *engine.ScriptedRand
}

func newHarness(picks ...int) *harness {
	h := &harness{
		artifacts: &recordingArtifacts{},
		sound:     &recordingSound{},
		display:   &recordingDisplay{},
		animator:  &recordingAnimator{},
		rand:      &engine.ScriptedRand{Picks: picks},
	}
	h.world = engine.NewWorld(engine.WorldOptions{
		Epoch: testEpoch,
		Rand:  h.rand,
		Collab: engine.Collaborators{
			Artifacts: h.artifacts,
			Sound:     h.sound,
			Animator:  h.animator,
			Display:   h.display,
		},
	})
	return h
}

// advance steps the world in 100ms increments
func (h *harness) advance(d time.Duration) {
	advanceWorld(h.world, d)
}

func advanceWorld(w *engine.World, d time.Duration) {
	const step = 100 * time.Millisecond
	for d > 0 {
		dt := step
		if d < step {
			dt = d
		}
		w.Step(dt)
		d -= dt
	}
}

// eventLog records every dispatched event of the given types
type eventLog struct {
	events []event.GameEvent
}

func (l *eventLog) attach(w *engine.World, types ...event.EventType) {
	if len(types) == 0 {
		types = event.AllEventTypes()
	}
	w.RegisterHandler(event.HandlerFunc[*engine.World]{
		Types: types,
		Fn: func(_ *engine.World, ev event.GameEvent) {
			l.events = append(l.events, ev)
		},
	})
}

func (l *eventLog) count(t event.EventType) int {
	n := 0
	for _, ev := range l.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func countQueued(w *engine.World, t event.EventType) int {
	n := 0
	for _, ev := range w.Events.Consume() {
		if ev.Type == t {
			n++
		}
	}
	return n
}

var (
	taskFileReport = component.TaskDefinition{
		Name:     "file report",
		Required: "Blue",
		Reward:   5 * time.Second,
		Penalty:  3 * time.Second,
		Glyph:    'R',
	}
	taskFixPrinter = component.TaskDefinition{
		Name:        "fix printer",
		Required:    "Red",
		Reward:      5 * time.Second,
		Penalty:     3 * time.Second,
		ShowCue:     "printer_jam",
		ResolvedCue: "printer_ok",
		Glyph:       'P',
	}
)

func deskConfig(id component.StationID, x float64, pool ...component.TaskDefinition) StationConfig {
	if len(pool) == 0 {
		pool = []component.TaskDefinition{taskFileReport}
	}
	return StationConfig{
		ID:              id,
		Position:        vmath.Vec3F{X: x},
		ZoneRadius:      1.5,
		DockOffset:      vmath.Vec3F{Z: 0.5},
		DockYaw:         90,
		Pool:            pool,
		ExpiryTimeout:   10 * time.Second,
		ResolutionDelay: 3 * time.Second,
		ArtifactLift:    2,
		ArtifactScale:   1,
	}
}
