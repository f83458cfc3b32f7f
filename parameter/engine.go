package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the frame loop interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxStepDelta caps a single step so a stalled frame does not skip whole task lifecycles
	MaxStepDelta = 100 * time.Millisecond
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256
)

// Zone Index Defaults
const (
	// ZoneCellSize is the edge length of a zone index bucket in world units
	ZoneCellSize = 4.0
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "deskrush.log"
	MaxLogSize  = 10 * 1024 * 1024
)
