package engine

import (
	"github.com/lixenwraith/deskrush/component"
)

// ArtifactHandle is a destroyable visual owned by a station while its task is shown
type ArtifactHandle interface {
	Destroy()
	// Alive is false once destroyed, by the owner or externally
	Alive() bool
}

// ArtifactSpawner instantiates task visuals parented under a station
type ArtifactSpawner interface {
	SpawnArtifact(station component.StationID, def component.TaskDefinition, pose component.Pose) ArtifactHandle
}

// SoundPlayer plays named cues
type SoundPlayer interface {
	PlaySound(cue component.SoundCue, loop bool)
	StopSound(cue component.SoundCue)
}

// Animator receives pawn animation flags
type Animator interface {
	SetAnimation(pawn component.PawnID, state component.AnimState)
}

// TimeDisplay receives the formatted countdown on every change
type TimeDisplay interface {
	SetTimeText(text string)
}

// Collaborators bundles the outbound side-effect sinks the game core calls
// Zero fields are replaced with no-op implementations by Resolve
type Collaborators struct {
	Artifacts ArtifactSpawner
	Sound     SoundPlayer
	Animator  Animator
	Display   TimeDisplay
}

// Resolve fills missing collaborators with no-op implementations
func (c Collaborators) Resolve() Collaborators {
	if c.Artifacts == nil {
		c.Artifacts = NopArtifacts{}
	}
	if c.Sound == nil {
		c.Sound = NopSound{}
	}
	if c.Animator == nil {
		c.Animator = NopAnimator{}
	}
	if c.Display == nil {
		c.Display = NopDisplay{}
	}
	return c
}

// NopArtifacts hands out handles that only track their own liveness
type NopArtifacts struct{}

func (NopArtifacts) SpawnArtifact(component.StationID, component.TaskDefinition, component.Pose) ArtifactHandle {
	return &nopHandle{alive: true}
}

type nopHandle struct {
	alive bool
}

func (h *nopHandle) Destroy()    { h.alive = false }
func (h *nopHandle) Alive() bool { return h.alive }

type NopSound struct{}

func (NopSound) PlaySound(component.SoundCue, bool) {}
func (NopSound) StopSound(component.SoundCue)       {}

type NopAnimator struct{}

func (NopAnimator) SetAnimation(component.PawnID, component.AnimState) {}

type NopDisplay struct{}

func (NopDisplay) SetTimeText(string) {}
