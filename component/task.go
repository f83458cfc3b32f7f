package component

import "time"

// StationID identifies a station within a level
type StationID string

// Identity is the token kind a pawn carries and a task requires
type Identity string

// TaskState is the lifecycle phase of one station activation
type TaskState uint8

const (
	TaskIdle TaskState = iota
	TaskActive
	TaskResolving
	// TaskResolved and TaskExpired are terminal for an activation and reported in events only;
	// a station holding either returns to TaskIdle in the same transition
	TaskResolved
	TaskExpired
)

// String returns human-readable state name
func (s TaskState) String() string {
	switch s {
	case TaskIdle:
		return "Idle"
	case TaskActive:
		return "Active"
	case TaskResolving:
		return "Resolving"
	case TaskResolved:
		return "Resolved"
	case TaskExpired:
		return "Expired"
	default:
		return "Unknown"
	}
}

// TaskDefinition is one entry of the task pool a station draws from on activation
type TaskDefinition struct {
	Name     string
	Required Identity
	Reward   time.Duration
	Penalty  time.Duration

	// Cue names for the external audio collaborator, empty means silent
	ShowCue     SoundCue
	ResolvedCue SoundCue

	// Glyph is the artifact's visual key for the external renderer
	Glyph rune
}
