package render

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/deskrush/component"
	"github.com/lixenwraith/deskrush/config"
	"github.com/lixenwraith/deskrush/engine"
	"github.com/lixenwraith/deskrush/system"
	"github.com/lixenwraith/deskrush/vmath"
)

var testEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFitMapping(t *testing.T) {
	vp := Fit(81, 22, 16, 10)

	if vp.Width != 81 || vp.Height != 21 {
		t.Fatalf("Expected 81x21 play area, got %dx%d", vp.Width, vp.Height)
	}
	if vp.ScaleX != 2 || vp.ScaleZ != 1 {
		t.Errorf("Expected scale 2x1 keeping cell aspect, got %fx%f", vp.ScaleX, vp.ScaleZ)
	}
	if vp.OriginX != 40 || vp.OriginY != 10 {
		t.Errorf("Expected origin (40,10), got (%d,%d)", vp.OriginX, vp.OriginY)
	}

	x, y := vp.ToScreen(vmath.Vec3F{X: -12, Y: 3, Z: 4})
	if x != 16 || y != 14 {
		t.Errorf("Expected (16,14), got (%d,%d)", x, y)
	}
	p := vp.ToWorld(x, y)
	if p != (vmath.Vec3F{X: -12, Z: 4}) {
		t.Errorf("Expected ground point (-12,0,4), got %+v", p)
	}
}

func TestFitDegenerate(t *testing.T) {
	vp := Fit(0, 0, 16, 10)
	if vp.ScaleX <= 0 || vp.ScaleZ <= 0 {
		t.Fatalf("Expected positive scale on a tiny screen, got %fx%f", vp.ScaleX, vp.ScaleZ)
	}
	if vp.Contains(1, 1) {
		t.Error("Expected 1x1 play area")
	}
}

func TestIdentityColor(t *testing.T) {
	if got := IdentityColor("Blue"); got != tcell.ColorBlue {
		t.Errorf("Expected blue, got %v", got)
	}
	if got := IdentityColor("Nobody"); got != RgbFallback {
		t.Errorf("Expected fallback color, got %v", got)
	}
}

func TestPawnGlyph(t *testing.T) {
	tests := []struct {
		id   component.Identity
		want rune
	}{
		{"Blue", 'B'},
		{"red", 'R'},
		{"", '@'},
	}
	for _, tt := range tests {
		if got := PawnGlyph(tt.id); got != tt.want {
			t.Errorf("PawnGlyph(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestViewArtifactLifecycle(t *testing.T) {
	v := NewView()
	def := component.TaskDefinition{Name: "file report", Required: "Blue", Glyph: 'R'}

	first := v.SpawnArtifact("desk", def, component.Pose{})
	if !first.Alive() {
		t.Fatal("Expected spawned artifact alive")
	}

	second := v.SpawnArtifact("desk", def, component.Pose{})
	if first.Alive() {
		t.Error("Expected replaced artifact destroyed")
	}
	a, ok := v.ArtifactAt("desk")
	if !ok || a != second {
		t.Fatal("Expected newest artifact registered")
	}

	first.Destroy()
	if _, ok := v.ArtifactAt("desk"); !ok {
		t.Error("Destroying a stale handle must not remove the live one")
	}

	second.Destroy()
	second.Destroy()
	if second.Alive() {
		t.Error("Expected destroyed artifact dead")
	}
	if _, ok := v.ArtifactAt("desk"); ok {
		t.Error("Expected station cleared")
	}
}

func TestViewAnimationAndTime(t *testing.T) {
	v := NewView()
	v.SetAnimation("blue", component.AnimMoving)
	v.SetTimeText("0:42")

	if v.Animation("blue") != component.AnimMoving {
		t.Error("Expected moving flag stored")
	}
	if v.Animation("red") != component.AnimResting {
		t.Error("Expected unknown pawn resting")
	}
	if v.TimeText() != "0:42" {
		t.Errorf("Expected time text stored, got %q", v.TimeText())
	}
}

// newViewGame builds the default level with the view as its visual sink
func newViewGame(t *testing.T, v *View) *system.Game {
	t.Helper()
	gc, err := config.Default().GameConfig()
	if err != nil {
		t.Fatal(err)
	}
	g, err := system.NewGame(gc, engine.WorldOptions{
		Epoch:  testEpoch,
		Rand:   &engine.ScriptedRand{Picks: []int{0}},
		Collab: v.Collaborators(),
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func cellAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestDrawLevel(t *testing.T) {
	v := NewView()
	g := newViewGame(t, v)
	desk, _ := g.Station("desk")
	g.World.RunSafe(func() { desk.Activate() })

	screen := newSimScreen(t, 81, 22)
	v.Draw(screen, g.Snapshot())

	// desk sits at (-12,0) which maps to (16,10)
	if r := cellAt(screen, 16, 10); r != glyphStation {
		t.Errorf("Expected station body, got %q", r)
	}
	if r := cellAt(screen, 16, 9); r != 'R' {
		t.Errorf("Expected artifact glyph above station, got %q", r)
	}
	if r := cellAt(screen, 18, 9); r != '1' {
		t.Errorf("Expected remaining seconds beside artifact, got %q", r)
	}

	// blue pawn at (-4,6) maps to (32,16)
	if r := cellAt(screen, 32, 16); r != 'B' {
		t.Errorf("Expected blue pawn glyph, got %q", r)
	}

	// Status line shows the countdown text
	want := " " + v.TimeText()
	for i, r := range want {
		if got := cellAt(screen, i, 21); got != r {
			t.Fatalf("Status col %d: expected %q, got %q", i, r, got)
		}
	}
	if v.TimeText() != "01:00" {
		t.Errorf("Expected initial countdown text, got %q", v.TimeText())
	}
}

func TestDrawBannerAndPause(t *testing.T) {
	v := NewView()
	g := newViewGame(t, v)
	v.SetPaused(true)
	v.SetBanner("cleared")

	screen := newSimScreen(t, 81, 22)
	v.Draw(screen, g.Snapshot())

	// " 01:00 " then a gap then " PAUSED "
	if r := cellAt(screen, 9, 21); r != 'P' {
		t.Errorf("Expected paused indicator, got %q", r)
	}
	if r := cellAt(screen, 80-len("cleared"), 21); r != 'c' {
		t.Errorf("Expected right-aligned banner, got %q", r)
	}
}

func TestScreenToWorldUsesLastViewport(t *testing.T) {
	v := NewView()
	if _, ok := v.ScreenToWorld(10, 10); ok {
		t.Error("Expected no mapping before the first draw")
	}

	g := newViewGame(t, v)
	v.Draw(newSimScreen(t, 81, 22), g.Snapshot())

	p, ok := v.ScreenToWorld(16, 10)
	if !ok || p != (vmath.Vec3F{X: -12}) {
		t.Errorf("Expected desk position, got %+v ok=%v", p, ok)
	}
	if _, ok := v.ScreenToWorld(0, 21); ok {
		t.Error("Expected status line outside the play area")
	}
}

// TestDropArtifactsIdlesStations verifies an externally destroyed artifact
// returns its station to idle without touching the countdown
func TestDropArtifactsIdlesStations(t *testing.T) {
	v := NewView()
	g := newViewGame(t, v)
	desk, _ := g.Station("desk")
	g.World.RunSafe(func() { desk.Activate() })

	v.DropArtifacts()
	g.Step(100 * time.Millisecond)

	snap := g.Snapshot()
	if snap.Stations[0].State != component.TaskIdle {
		t.Errorf("Expected desk idle, got %v", snap.Stations[0].State)
	}
	if snap.Remaining != 60*time.Second-100*time.Millisecond {
		t.Errorf("Expected decay only, got %v", snap.Remaining)
	}
}
