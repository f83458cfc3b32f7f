package main

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/deskrush/component"
	"github.com/lixenwraith/deskrush/engine"
	"github.com/lixenwraith/deskrush/input"
	"github.com/lixenwraith/deskrush/parameter"
	"github.com/lixenwraith/deskrush/render"
	"github.com/lixenwraith/deskrush/system"
)

// errQuit ends the session on user request
var errQuit = errors.New("quit")

// frontend owns the terminal side of a session: input, pause, mute and drawing
// All of its methods run on the frame loop goroutine
type frontend struct {
	screen  tcell.Screen
	game    *system.Game
	view    *render.View
	machine *input.Machine
	clock   *engine.PausableClock
	sound   engine.SoundPlayer
	muted   bool
}

func newFrontend(screen tcell.Screen, game *system.Game, view *render.View, sound engine.SoundPlayer, clock *engine.PausableClock, debug bool) *frontend {
	if sound == nil {
		sound = engine.NopSound{}
	}
	return &frontend{
		screen:  screen,
		game:    game,
		view:    view,
		machine: input.NewMachine(view, debug),
		clock:   clock,
		sound:   sound,
	}
}

// handle applies one terminal event
func (f *frontend) handle(ev tcell.Event) error {
	in := f.machine.Process(ev)
	switch in.Type {
	case input.IntentQuit:
		return errQuit
	case input.IntentPause:
		f.view.SetPaused(f.clock.Toggle())
	case input.IntentMute:
		f.toggleMusic()
	case input.IntentResize:
		f.screen.Sync()
	case input.IntentPointer:
		// A release still goes through while paused so no drag is left dangling
		if !f.clock.IsPaused() || in.Phase == system.PointerEnd {
			f.game.Pointer(in.Phase, in.Pos)
		}
	case input.IntentDropTasks:
		f.view.DropArtifacts()
	}
	return nil
}

func (f *frontend) toggleMusic() {
	f.muted = !f.muted
	if f.muted {
		f.sound.StopSound(component.CueLevelMusic)
		return
	}
	if !f.game.World.Suspended() {
		f.sound.PlaySound(component.CueLevelMusic, true)
	}
}

// frame steps by the game time since the previous frame and redraws
func (f *frontend) frame() {
	f.game.Step(f.clock.Delta())
	f.view.Draw(f.screen, f.game.Snapshot())
}

// run drives frames until quit, a closed event channel, or ctx cancellation
func (f *frontend) run(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	f.frame()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return errQuit
			}
			if err := f.handle(ev); err != nil {
				return err
			}
		case <-ticker.C:
			f.frame()
		}
	}
}
