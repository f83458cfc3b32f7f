package component

import "github.com/lixenwraith/deskrush/vmath"

// Pose is a world-space placement with yaw in degrees around the up axis
type Pose struct {
	Position vmath.Vec3F
	Yaw      float64
	Scale    float64
}

// TriggerVolume is a vertical cylinder around a station used for zone membership
type TriggerVolume struct {
	Center vmath.Vec3F
	Radius float64
}

// Contains reports whether p lies inside the volume on the ground plane
func (v TriggerVolume) Contains(p vmath.Vec3F) bool {
	return vmath.V3FPlanarDist(v.Center, p) <= v.Radius
}

// Body is the physically simulated part of a pawn
type Body struct {
	Position  vmath.Vec3F
	Yaw       float64
	VelocityY float64

	// Gravity is off while a drag is in progress
	Gravity bool
	// Kinematic bodies ignore physics entirely (docking, resolution lock)
	Kinematic bool
}

// Ghost is the non-colliding proxy that follows the pointer during a drag
type Ghost struct {
	Position vmath.Vec3F
	Active   bool
}
