package event

import (
	"time"

	"github.com/lixenwraith/deskrush/component"
	"github.com/lixenwraith/deskrush/vmath"
)

// CountdownPayload carries the countdown value after a change
type CountdownPayload struct {
	Remaining time.Duration `json:"remaining"`
	Delta     time.Duration `json:"delta"`
	Expired   bool          `json:"expired"`
}

// TaskPayload describes one station activation at the moment of the transition
type TaskPayload struct {
	Station  component.StationID `json:"station"`
	Task     string              `json:"task"`
	Required component.Identity  `json:"required"`
	State    component.TaskState `json:"state"`
	// Activation counts activations of this station, starting at 1
	Activation uint64        `json:"activation"`
	Amount     time.Duration `json:"amount,omitempty"`
	Elapsed    time.Duration `json:"elapsed,omitempty"`
}

// SpawnPayload reports the scheduler interval after an attempt
type SpawnPayload struct {
	Interval time.Duration `json:"interval"`
}

// PawnPayload describes a pawn transition
type PawnPayload struct {
	Pawn     component.PawnID    `json:"pawn"`
	Identity component.Identity  `json:"identity"`
	Station  component.StationID `json:"station,omitempty"`
	Position vmath.Vec3F         `json:"position"`
}

// LevelPayload summarizes the session at a terminal signal
type LevelPayload struct {
	Elapsed   time.Duration `json:"elapsed"`
	Remaining time.Duration `json:"remaining"`
	Resolved  int           `json:"resolved"`
	Expired   int           `json:"expired"`
}
