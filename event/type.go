package event

// EventType represents the type of game event
type EventType int

const (
	// === Countdown Event ===

	// EventCountdownChanged reports any change to the remaining time
	// Trigger: Countdown credit, debit, decay | Payload: *CountdownPayload
	EventCountdownChanged EventType = iota

	// EventCountdownExpired fires once per transition into the expired state
	// Trigger: CountdownSystem expiry check | Payload: *CountdownPayload
	EventCountdownExpired

	// EventCountdownRescued fires when a credit lifts an expired countdown above zero
	// Trigger: Countdown.Credit | Payload: *CountdownPayload
	EventCountdownRescued

	// === Task Event ===

	// EventTaskActivated signals a station began showing a task
	// Trigger: StationTask.Activate | Payload: *TaskPayload
	EventTaskActivated

	// EventTaskResolving signals a matching pawn committed to a task
	// Trigger: StationTask.BeginResolve | Payload: *TaskPayload
	EventTaskResolving

	// EventTaskResolved signals resolution completed and the reward was credited
	// Trigger: resolution timer | Payload: *TaskPayload
	EventTaskResolved

	// EventTaskExpired signals a task timed out and the penalty was debited
	// Trigger: expiry timer | Payload: *TaskPayload
	EventTaskExpired

	// EventSpawnSkipped signals a spawn attempt found no idle station
	// Trigger: SpawnSystem | Payload: *SpawnPayload
	EventSpawnSkipped

	// === Pawn Event ===

	// EventPawnGrabbed | Payload: *PawnPayload
	EventPawnGrabbed

	// EventPawnReleased | Payload: *PawnPayload
	EventPawnReleased

	// EventPawnDocked signals the docking interpolation finished | Payload: *PawnPayload
	EventPawnDocked

	// EventPawnLocked | Payload: *PawnPayload
	EventPawnLocked

	// EventPawnUnlocked | Payload: *PawnPayload
	EventPawnUnlocked

	// === Level Event ===

	// EventLevelCleared signals a configured level goal was reached
	// Trigger: LevelSystem | Payload: *LevelPayload
	EventLevelCleared

	// EventTimeOut is the terminal signal for the level flow collaborator
	// Trigger: LevelSystem on countdown expiry | Payload: *LevelPayload
	EventTimeOut
)

var eventNames = map[EventType]string{
	EventCountdownChanged: "countdown_changed",
	EventCountdownExpired: "countdown_expired",
	EventCountdownRescued: "countdown_rescued",
	EventTaskActivated:    "task_activated",
	EventTaskResolving:    "task_resolving",
	EventTaskResolved:     "task_resolved",
	EventTaskExpired:      "task_expired",
	EventSpawnSkipped:     "spawn_skipped",
	EventPawnGrabbed:      "pawn_grabbed",
	EventPawnReleased:     "pawn_released",
	EventPawnDocked:       "pawn_docked",
	EventPawnLocked:       "pawn_locked",
	EventPawnUnlocked:     "pawn_unlocked",
	EventLevelCleared:     "level_cleared",
	EventTimeOut:          "time_out",
}

// String returns the wire name used by telemetry sinks
func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "unknown"
}

// AllEventTypes returns every declared event type in declaration order
func AllEventTypes() []EventType {
	types := make([]EventType, 0, len(eventNames))
	for t := EventCountdownChanged; t <= EventTimeOut; t++ {
		types = append(types, t)
	}
	return types
}

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
