package system

import (
	"testing"
	"time"

	"github.com/lixenwraith/deskrush/component"
	"github.com/lixenwraith/deskrush/event"
)

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		o    Outcome
		want string
	}{
		{OutcomeNone, "none"},
		{OutcomeCleared, "cleared"},
		{OutcomeTimeOut, "time_out"},
	}
	for _, tt := range tests {
		if got := tt.o.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.o, got, tt.want)
		}
	}
}

// Countdown expiry ends the session through the default flow
func TestSessionFlowTimeOut(t *testing.T) {
	g, h := newTestGame(t, func(cfg *GameConfig) {
		cfg.Countdown = 2 * time.Second
	})

	var reported []Outcome
	var summary event.LevelPayload
	flow := NewSessionFlow(g.Countdown, func(o Outcome, s event.LevelPayload) {
		reported = append(reported, o)
		summary = s
	})
	g.World.RegisterHandler(flow)

	g.Start()
	if h.sound.count(component.CueLevelMusic) != 1 {
		t.Fatal("Expected level music on start")
	}

	advanceWorld(g.World, 3*time.Second)

	if flow.Outcome() != OutcomeTimeOut {
		t.Fatalf("Expected time out, got %v", flow.Outcome())
	}
	if len(reported) != 1 || reported[0] != OutcomeTimeOut {
		t.Errorf("Expected one time out report, got %v", reported)
	}
	if summary.Elapsed != 2*time.Second {
		t.Errorf("Expected summary at 2s, got %v", summary.Elapsed)
	}
	if !g.World.Suspended() || !g.Countdown.Ended() {
		t.Error("Expected world suspended and countdown ended")
	}
	if g.World.Clock.Elapsed() != 2*time.Second {
		t.Errorf("Expected no steps after time out, clock at %v", g.World.Clock.Elapsed())
	}
	if h.sound.count(component.CueTimeOut) != 1 || len(h.sound.stopped) != 1 {
		t.Errorf("Expected music stopped and time out cue, played=%v stopped=%v", h.sound.played, h.sound.stopped)
	}
	if !g.World.Status.Bools.Get("level.over").Load() {
		t.Error("Expected level.over status")
	}
	if got := g.World.Status.Strings.Get("level.outcome").Load(); got != "time_out" {
		t.Errorf("Expected level.outcome time_out, got %q", got)
	}

	// A late credit cannot rescue an ended session
	g.Countdown.Credit(10 * time.Second)
	if !g.Countdown.HasExpired() {
		t.Error("Expected expired flag to stay set after session end")
	}
}

func TestLevelClearedByResolveTarget(t *testing.T) {
	g, h := newTestGame(t, func(cfg *GameConfig) {
		cfg.Goals.ResolveTarget = 1
	})
	flow := NewSessionFlow(g.Countdown, nil)
	g.World.RegisterHandler(flow)
	log := &eventLog{}
	log.attach(g.World, event.EventLevelCleared, event.EventTimeOut)

	g.Stations[0].Activate()
	dragTo(g, bluePawnAt, deskAt)
	advanceWorld(g.World, 4*time.Second)

	if flow.Outcome() != OutcomeCleared {
		t.Fatalf("Expected cleared, got %v", flow.Outcome())
	}
	if log.count(event.EventLevelCleared) != 1 || log.count(event.EventTimeOut) != 0 {
		t.Errorf("Expected one clear and no time out, got %d and %d",
			log.count(event.EventLevelCleared), log.count(event.EventTimeOut))
	}
	if h.sound.count(component.CueLevelCleared) != 1 {
		t.Errorf("Expected cleared cue, got %v", h.sound.played)
	}
	if g.Level.Resolved() != 1 || g.World.Status.Ints.Get("tasks.resolved").Load() != 1 {
		t.Errorf("Expected one resolved task counted, got %d", g.Level.Resolved())
	}
}

func TestLevelClearedBySurvival(t *testing.T) {
	g, _ := newTestGame(t, func(cfg *GameConfig) {
		cfg.Goals.Survive = 5 * time.Second
	})
	flow := NewSessionFlow(g.Countdown, nil)
	g.World.RegisterHandler(flow)

	advanceWorld(g.World, 4900*time.Millisecond)
	if flow.Outcome() != OutcomeNone {
		t.Fatalf("Expected no outcome yet, got %v", flow.Outcome())
	}
	advanceWorld(g.World, 200*time.Millisecond)
	if flow.Outcome() != OutcomeCleared {
		t.Errorf("Expected cleared after surviving, got %v", flow.Outcome())
	}
}

// Without a flow the level keeps signalling: one time out per expiry transition
func TestLevelForwardsEachExpiry(t *testing.T) {
	g, _ := newTestGame(t, func(cfg *GameConfig) {
		cfg.Countdown = time.Second
	})
	log := &eventLog{}
	log.attach(g.World, event.EventTimeOut)

	advanceWorld(g.World, 2*time.Second)
	g.World.RunSafe(func() { g.Countdown.Credit(time.Second) })
	advanceWorld(g.World, 2*time.Second)

	if log.count(event.EventTimeOut) != 2 {
		t.Errorf("Expected 2 time outs, got %d", log.count(event.EventTimeOut))
	}
}

func TestLevelCountsExpiredTasks(t *testing.T) {
	g, _ := newTestGame(t, nil)

	g.Stations[0].Activate()
	advanceWorld(g.World, 10*time.Second)

	if g.Level.Expired() != 1 {
		t.Errorf("Expected one expired task, got %d", g.Level.Expired())
	}
	if g.World.Status.Ints.Get("tasks.expired").Load() != 1 {
		t.Error("Expected tasks.expired status")
	}
}
