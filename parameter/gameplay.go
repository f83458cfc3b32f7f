package parameter

import "time"

// Countdown
const (
	// CountdownInitial is the level timer value at level start
	CountdownInitial = 60 * time.Second

	// RewardOnResolve is credited to the countdown when a task resolves
	RewardOnResolve = 5 * time.Second

	// PenaltyOnExpire is debited from the countdown when a task expires unresolved
	PenaltyOnExpire = 3 * time.Second

	// CountdownLongFormat is the threshold from which the display uses MM:SS
	CountdownLongFormat = 60 * time.Second
)

// Station Tasks
const (
	// TaskExpiryTimeout is how long a shown task waits for a matching pawn
	TaskExpiryTimeout = 10 * time.Second

	// ResolutionDelay is the time a committed pawn spends resolving a task
	ResolutionDelay = 3 * time.Second

	// ArtifactLift raises the task artifact above the station origin
	ArtifactLift = 2.0

	// ArtifactScale is the uniform scale applied to spawned artifacts
	ArtifactScale = 1.0
)

// Spawn Scheduling
const (
	SpawnInitialInterval = 15 * time.Second
	SpawnMinInterval     = 3 * time.Second
	SpawnDecreaseStep    = 500 * time.Millisecond
)

// Drag & Dock
const (
	// GhostHeight is the height above ground at which the drag ghost hovers
	GhostHeight = 0.5

	// DockSpeed is the docking interpolation speed in world units per second
	DockSpeed = 8.0

	// DockMaxDuration bounds a single docking interpolation
	DockMaxDuration = 750 * time.Millisecond

	// DockMinDuration keeps very short docks visible
	DockMinDuration = 100 * time.Millisecond

	// PawnPickRadius is the default pick radius around a pawn center
	PawnPickRadius = 0.75

	// StationZoneRadius is the default trigger volume radius around a station
	StationZoneRadius = 1.5
)

// Physics
const (
	// Gravity is the downward acceleration in units per second squared
	Gravity = 9.81

	// GroundHeight is the resting height of pawns
	GroundHeight = 0.0
)
