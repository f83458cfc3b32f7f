package component

import "github.com/lixenwraith/deskrush/vmath"

// PawnID identifies a pawn within a level
type PawnID string

// PawnDragState is the transient drag bookkeeping for one pawn
// IsDragging and IsLocked are never both true
type PawnDragState struct {
	IsDragging bool
	IsLocked   bool
	// Docking is true while the body interpolates to a station dock pose
	Docking     bool
	GrabOffset  vmath.Vec3F
	CurrentZone StationID // empty when outside every zone
}

// Grabbable reports whether a new grab may start
func (s PawnDragState) Grabbable() bool {
	return !s.IsDragging && !s.IsLocked && !s.Docking
}

// AnimState is the animation flag forwarded to the external animator
type AnimState uint8

const (
	AnimResting AnimState = iota
	AnimMoving
)

func (a AnimState) String() string {
	if a == AnimMoving {
		return "moving"
	}
	return "resting"
}
