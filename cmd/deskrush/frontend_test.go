package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/deskrush/component"
	"github.com/lixenwraith/deskrush/config"
	"github.com/lixenwraith/deskrush/engine"
	"github.com/lixenwraith/deskrush/event"
	"github.com/lixenwraith/deskrush/render"
	"github.com/lixenwraith/deskrush/system"
)

type soundCall struct {
	cue  component.SoundCue
	stop bool
}

type recordingSound struct {
	calls []soundCall
}

func (s *recordingSound) PlaySound(cue component.SoundCue, _ bool) {
	s.calls = append(s.calls, soundCall{cue: cue})
}

func (s *recordingSound) StopSound(cue component.SoundCue) {
	s.calls = append(s.calls, soundCall{cue: cue, stop: true})
}

type fixture struct {
	fe     *frontend
	game   *system.Game
	view   *render.View
	sound  *recordingSound
	time   *engine.MockTimeProvider
	screen tcell.SimulationScreen
}

func newFixture(t *testing.T, debug bool) *fixture {
	t.Helper()

	gc, err := config.Default().GameConfig()
	if err != nil {
		t.Fatal(err)
	}

	epoch := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	view := render.NewView()
	sound := &recordingSound{}
	collab := view.Collaborators()
	collab.Sound = sound

	game, err := system.NewGame(gc, engine.WorldOptions{
		Epoch:  epoch,
		Rand:   &engine.ScriptedRand{},
		Collab: collab,
	})
	if err != nil {
		t.Fatal(err)
	}

	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	sim.SetSize(81, 22)
	t.Cleanup(sim.Fini)

	mock := engine.NewMockTimeProvider(epoch)
	fe := newFrontend(sim, game, view, sound, engine.NewPausableClock(mock), debug)
	return &fixture{fe: fe, game: game, view: view, sound: sound, time: mock, screen: sim}
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestFrontendFrameAdvancesGameTime(t *testing.T) {
	f := newFixture(t, false)

	f.time.Advance(50 * time.Millisecond)
	f.fe.frame()

	snap := f.game.Snapshot()
	if snap.Elapsed != 50*time.Millisecond || snap.Frame != 1 {
		t.Errorf("Expected one 50ms step, got frame %d elapsed %v", snap.Frame, snap.Elapsed)
	}
	if f.view.TimeText() != "0:59" {
		t.Errorf("Expected countdown shown, got %q", f.view.TimeText())
	}
}

func TestFrontendPause(t *testing.T) {
	f := newFixture(t, false)

	if err := f.fe.handle(key('p')); err != nil {
		t.Fatal(err)
	}
	f.time.Advance(time.Second)
	f.fe.frame()

	if got := f.game.Snapshot().Elapsed; got != 0 {
		t.Errorf("Expected no game time while paused, got %v", got)
	}

	f.fe.handle(key('p'))
	f.time.Advance(100 * time.Millisecond)
	f.fe.frame()
	if got := f.game.Snapshot().Elapsed; got != 100*time.Millisecond {
		t.Errorf("Expected time to resume, got %v", got)
	}
}

func TestFrontendQuit(t *testing.T) {
	f := newFixture(t, false)
	if err := f.fe.handle(key('q')); !errors.Is(err, errQuit) {
		t.Errorf("Expected quit, got %v", err)
	}
}

// TestFrontendMouseDrag grabs the blue pawn through the terminal mapping
func TestFrontendMouseDrag(t *testing.T) {
	f := newFixture(t, false)
	f.fe.frame() // establishes the viewport

	// blue pawn at (-4,0,6) maps to cell (32,16)
	f.fe.handle(tcell.NewEventMouse(32, 16, tcell.Button1, tcell.ModNone))
	f.fe.frame()

	blue := f.game.Snapshot().Pawns[0]
	if !blue.Drag.IsDragging || !blue.Ghost.Active {
		t.Fatalf("Expected blue pawn grabbed, got %+v", blue.Drag)
	}
	if f.view.Animation("blue") != component.AnimMoving {
		t.Error("Expected moving animation during drag")
	}

	f.fe.handle(tcell.NewEventMouse(32, 16, tcell.ButtonNone, tcell.ModNone))
	f.fe.frame()
	if f.game.Snapshot().Pawns[0].Drag.IsDragging {
		t.Error("Expected drag released")
	}
}

func TestFrontendMuteToggle(t *testing.T) {
	f := newFixture(t, false)

	f.fe.handle(key('m'))
	f.fe.handle(key('m'))

	want := []soundCall{
		{cue: component.CueLevelMusic, stop: true},
		{cue: component.CueLevelMusic},
	}
	if len(f.sound.calls) != len(want) {
		t.Fatalf("Expected %v, got %v", want, f.sound.calls)
	}
	for i := range want {
		if f.sound.calls[i] != want[i] {
			t.Errorf("Call %d: expected %+v, got %+v", i, want[i], f.sound.calls[i])
		}
	}
}

func TestFrontendDropTasksNeedsDebug(t *testing.T) {
	for _, debug := range []bool{false, true} {
		f := newFixture(t, debug)
		desk, _ := f.game.Station("desk")
		f.game.World.RunSafe(func() { desk.Activate() })

		f.fe.handle(key('x'))
		f.fe.frame()

		idle := f.game.Snapshot().Stations[0].State == component.TaskIdle
		if idle != debug {
			t.Errorf("debug=%v: expected idle=%v", debug, debug)
		}
	}
}

func TestFrontendRunStopsOnQuitAndCancel(t *testing.T) {
	f := newFixture(t, false)

	events := make(chan tcell.Event, 1)
	events <- key('q')
	if err := f.fe.run(context.Background(), events); !errors.Is(err, errQuit) {
		t.Errorf("Expected quit from key, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := f.fe.run(ctx, make(chan tcell.Event)); err != nil {
		t.Errorf("Expected clean stop on cancel, got %v", err)
	}
}

func TestOutcomeBanner(t *testing.T) {
	sum := event.LevelPayload{Resolved: 4, Expired: 2}
	if got := outcomeBanner(system.OutcomeTimeOut, sum); got != "TIME OUT  resolved 4, expired 2  q to quit" {
		t.Errorf("Unexpected banner %q", got)
	}
	if got := outcomeBanner(system.OutcomeNone, sum); got != "" {
		t.Errorf("Expected no banner while playing, got %q", got)
	}
}
