package config

import (
	"github.com/lixenwraith/deskrush/parameter"
)

// Default returns the built-in office level
func Default() *Config {
	return &Config{
		Version:   1,
		Countdown: parameter.CountdownInitial,
		Tasks: TaskDefaults{
			Reward:          parameter.RewardOnResolve,
			Penalty:         parameter.PenaltyOnExpire,
			ExpiryTimeout:   parameter.TaskExpiryTimeout,
			ResolutionDelay: parameter.ResolutionDelay,
			ArtifactLift:    parameter.ArtifactLift,
			ArtifactScale:   parameter.ArtifactScale,
		},
		Pool: []TaskSpec{
			{Name: "file report", Required: "Blue", Glyph: "R", ShowCue: "task_show", ResolvedCue: "task_resolved"},
			{Name: "fix printer", Required: "Red", Glyph: "P", ShowCue: "printer_jam", ResolvedCue: "task_resolved"},
			{Name: "answer phone", Required: "Green", Glyph: "T", ShowCue: "phone_ring", ResolvedCue: "task_resolved"},
		},
		Stations: []StationSpec{
			{ID: "desk", Position: Vec3{X: -12, Z: 0}, ZoneRadius: parameter.StationZoneRadius, DockOffset: Vec3{Z: 1}},
			{ID: "copier", Position: Vec3{X: 0, Z: -6}, ZoneRadius: parameter.StationZoneRadius, DockOffset: Vec3{Z: 1}, DockYaw: 180},
			{ID: "phone", Position: Vec3{X: 12, Z: 0}, ZoneRadius: parameter.StationZoneRadius, DockOffset: Vec3{Z: 1}, DockYaw: 90},
		},
		Pawns: []PawnSpec{
			{ID: "blue", Identity: "Blue", Position: Vec3{X: -4, Z: 6}, Respawn: &PoseSpec{Position: Vec3{X: -4, Z: 6}}},
			{ID: "red", Identity: "Red", Position: Vec3{X: 0, Z: 6}, Respawn: &PoseSpec{Position: Vec3{X: 0, Z: 6}}},
			{ID: "green", Identity: "Green", Position: Vec3{X: 4, Z: 6}, Respawn: &PoseSpec{Position: Vec3{X: 4, Z: 6}}},
		},
		Spawn: SpawnSpec{
			Initial: parameter.SpawnInitialInterval,
			Min:     parameter.SpawnMinInterval,
			Step:    parameter.SpawnDecreaseStep,
		},
		Dock: DockSpec{
			Speed:       parameter.DockSpeed,
			MinDuration: parameter.DockMinDuration,
			MaxDuration: parameter.DockMaxDuration,
			GhostHeight: parameter.GhostHeight,
		},
	}
}
