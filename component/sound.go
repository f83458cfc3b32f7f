package component

// SoundCue names a sound for the external audio collaborator
type SoundCue string

// Built-in cues; task definitions may name additional ones
const (
	CueTaskShow     SoundCue = "task_show"
	CueTaskResolved SoundCue = "task_resolved"
	CueTaskExpired  SoundCue = "task_expired"
	CueLevelMusic   SoundCue = "level_music"
	CueTimeOut      SoundCue = "time_out"
	CueLevelCleared SoundCue = "level_cleared"
)
