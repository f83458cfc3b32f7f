package render

import (
	"sync"

	"github.com/lixenwraith/deskrush/component"
	"github.com/lixenwraith/deskrush/engine"
	"github.com/lixenwraith/deskrush/parameter"
	"github.com/lixenwraith/deskrush/vmath"
)

// View is the terminal presentation of a level
// It receives artifacts, animation flags and the countdown text from the game core
// and draws them with a Snapshot on every frame
type View struct {
	mu sync.Mutex

	artifacts map[component.StationID]*Artifact
	anims     map[component.PawnID]component.AnimState
	timeText  string
	banner    string
	paused    bool

	halfWidth float64
	halfDepth float64
	viewport  Viewport
}

// NewView creates a view fitted to the default floor extents
func NewView() *View {
	return &View{
		artifacts: make(map[component.StationID]*Artifact),
		anims:     make(map[component.PawnID]component.AnimState),
		halfWidth: parameter.WorldHalfWidth,
		halfDepth: parameter.WorldHalfDepth,
	}
}

// Collaborators returns the view as the game's visual sinks
func (v *View) Collaborators() engine.Collaborators {
	return engine.Collaborators{
		Artifacts: v,
		Animator:  v,
		Display:   v,
	}
}

// Artifact is a task visual parented under a station
type Artifact struct {
	view *View

	Station component.StationID
	Task    string
	Glyph   rune
	Color   component.Identity
	Pose    component.Pose

	alive bool
}

// Destroy removes the artifact; repeated calls are no-ops
func (a *Artifact) Destroy() {
	a.view.mu.Lock()
	defer a.view.mu.Unlock()
	a.destroyLocked()
}

func (a *Artifact) destroyLocked() {
	if !a.alive {
		return
	}
	a.alive = false
	if a.view.artifacts[a.Station] == a {
		delete(a.view.artifacts, a.Station)
	}
}

// Alive is false once destroyed by the station or by the view
func (a *Artifact) Alive() bool {
	a.view.mu.Lock()
	defer a.view.mu.Unlock()
	return a.alive
}

// SpawnArtifact implements engine.ArtifactSpawner; a station holds at most one artifact
func (v *View) SpawnArtifact(station component.StationID, def component.TaskDefinition, pose component.Pose) engine.ArtifactHandle {
	v.mu.Lock()
	defer v.mu.Unlock()

	if old, ok := v.artifacts[station]; ok {
		old.destroyLocked()
	}
	a := &Artifact{
		view:    v,
		Station: station,
		Task:    def.Name,
		Glyph:   def.Glyph,
		Color:   def.Required,
		Pose:    pose,
		alive:   true,
	}
	v.artifacts[station] = a
	return a
}

// DropArtifacts destroys every artifact from the view side
// Stations observe the loss on their next step and return to idle
func (v *View) DropArtifacts() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, a := range v.artifacts {
		a.destroyLocked()
	}
}

// ArtifactAt returns the live artifact of a station
func (v *View) ArtifactAt(station component.StationID) (*Artifact, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	a, ok := v.artifacts[station]
	return a, ok
}

// SetAnimation implements engine.Animator
func (v *View) SetAnimation(pawn component.PawnID, state component.AnimState) {
	v.mu.Lock()
	v.anims[pawn] = state
	v.mu.Unlock()
}

// Animation returns the last flag received for a pawn
func (v *View) Animation(pawn component.PawnID) component.AnimState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.anims[pawn]
}

// SetTimeText implements engine.TimeDisplay
func (v *View) SetTimeText(text string) {
	v.mu.Lock()
	v.timeText = text
	v.mu.Unlock()
}

// TimeText returns the last countdown text received
func (v *View) TimeText() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.timeText
}

// SetBanner shows a message on the right of the status line, empty clears it
func (v *View) SetBanner(text string) {
	v.mu.Lock()
	v.banner = text
	v.mu.Unlock()
}

// SetPaused toggles the paused indicator
func (v *View) SetPaused(paused bool) {
	v.mu.Lock()
	v.paused = paused
	v.mu.Unlock()
}

// Viewport returns the mapping used by the last Draw
func (v *View) Viewport() Viewport {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewport
}

// ScreenToWorld unprojects a cell through the last drawn viewport
func (v *View) ScreenToWorld(x, y int) (vmath.Vec3F, bool) {
	vp := v.Viewport()
	if vp.ScaleX == 0 || !vp.Contains(x, y) {
		return vmath.Vec3F{}, false
	}
	return vp.ToWorld(x, y), true
}
