package system

import (
	"time"

	"github.com/lixenwraith/deskrush/parameter"
)

// PhysicsSystem settles free pawns onto the ground under gravity
// Kinematic bodies (docking, locked) and bodies with gravity off (dragging) are skipped
type PhysicsSystem struct {
	drag    *DragSystem
	gravity float64
	ground  float64
}

// NewPhysicsSystem creates the settling stage for the pawns of drag
func NewPhysicsSystem(drag *DragSystem) *PhysicsSystem {
	return &PhysicsSystem{
		drag:    drag,
		gravity: parameter.Gravity,
		ground:  parameter.GroundHeight,
	}
}

func (s *PhysicsSystem) Name() string  { return "physics" }
func (s *PhysicsSystem) Priority() int { return parameter.PriorityPhysics }

// Update integrates vertical motion with semi-implicit Euler and clamps at the ground
func (s *PhysicsSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	for _, p := range s.drag.index.order {
		b := &p.Body
		if b.Kinematic || !b.Gravity {
			continue
		}
		if b.Position.Y <= s.ground && b.VelocityY <= 0 {
			b.Position.Y = s.ground
			b.VelocityY = 0
			continue
		}
		b.VelocityY -= s.gravity * sec
		b.Position.Y += b.VelocityY * sec
		if b.Position.Y <= s.ground {
			b.Position.Y = s.ground
			b.VelocityY = 0
		}
	}
}
