package system

import (
	"github.com/lixenwraith/deskrush/component"
	"github.com/lixenwraith/deskrush/engine"
	"github.com/lixenwraith/deskrush/vmath"
)

// PawnConfig describes one draggable pawn
type PawnConfig struct {
	ID         component.PawnID
	Identity   component.Identity
	Position   vmath.Vec3F
	Yaw        float64
	PickRadius float64

	// Respawn, when set, is where the pawn goes once its resolution lock ends
	Respawn *component.Pose
}

// Pawn is the runtime state of one pawn
type Pawn struct {
	cfg   PawnConfig
	Body  component.Body
	Ghost component.Ghost
	Drag  component.PawnDragState

	dock       *dockMotion
	lockTimer  *engine.Timer
	resolution ResolutionHandle
}

func newPawn(cfg PawnConfig) *Pawn {
	return &Pawn{
		cfg: cfg,
		Body: component.Body{
			Position: cfg.Position,
			Yaw:      cfg.Yaw,
			Gravity:  true,
		},
	}
}

// ID returns the pawn id
func (p *Pawn) ID() component.PawnID {
	return p.cfg.ID
}

// Identity returns the token kind the pawn carries
func (p *Pawn) Identity() component.Identity {
	return p.cfg.Identity
}

// Resolution returns the handle of the resolution the pawn is locked to, if any
func (p *Pawn) Resolution() ResolutionHandle {
	return p.resolution
}

// dockMotion is a bounded interpolation of the real body toward a dock pose
type dockMotion struct {
	from    component.Pose
	to      component.Pose
	station component.StationID
	elapsed float64 // seconds
	total   float64 // seconds
}

// PawnIndex answers pick queries against registered pawns
// The topmost pawn wins: highest body, then nearest, then registration order
type PawnIndex struct {
	order []*Pawn
}

// PickPawn returns the pawn under pos, if any
func (ix *PawnIndex) PickPawn(pos vmath.Vec3F) (component.PawnID, bool) {
	var best *Pawn
	bestDist := 0.0
	for _, p := range ix.order {
		radius := p.cfg.PickRadius
		d := vmath.V3FPlanarDist(p.Body.Position, pos)
		if d > radius {
			continue
		}
		if best == nil ||
			p.Body.Position.Y > best.Body.Position.Y ||
			(p.Body.Position.Y == best.Body.Position.Y && d < bestDist) {
			best, bestDist = p, d
		}
	}
	if best == nil {
		return "", false
	}
	return best.cfg.ID, true
}
