package parameter

// System Execution Priorities (lower runs first)
// Drag runs before timers so a release committed this step beats a same-step expiry
// Countdown runs last so every credit and debit of the step lands before the expiry check
const (
	PriorityDrag      = 10
	PriorityTimers    = 20
	PrioritySpawn     = 30
	PriorityDock      = 40
	PriorityPhysics   = 50
	PriorityLevel     = 60
	PriorityCountdown = 90
)
