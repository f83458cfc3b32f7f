package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/deskrush/component"
	"github.com/lixenwraith/deskrush/system"
	"github.com/lixenwraith/deskrush/vmath"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// EnvPrefix is prepended to every runtime environment variable
const EnvPrefix = "DESKRUSH_"

// Vec3 is a YAML-friendly vector, written as {x: 1, z: 2}
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Vec converts to the engine vector type
func (v Vec3) Vec() vmath.Vec3F {
	return vmath.Vec3F{X: v.X, Y: v.Y, Z: v.Z}
}

// TaskDefaults apply to every task and station that leaves them unset
type TaskDefaults struct {
	Reward          time.Duration `yaml:"reward"`
	Penalty         time.Duration `yaml:"penalty"`
	ExpiryTimeout   time.Duration `yaml:"expiry_timeout"`
	ResolutionDelay time.Duration `yaml:"resolution_delay"`
	ArtifactLift    float64       `yaml:"artifact_lift"`
	ArtifactScale   float64       `yaml:"artifact_scale"`
}

// TaskSpec is one entry of the task pool
type TaskSpec struct {
	Name        string        `yaml:"name"`
	Required    string        `yaml:"required"`
	Reward      time.Duration `yaml:"reward"`
	Penalty     time.Duration `yaml:"penalty"`
	ShowCue     string        `yaml:"show_cue"`
	ResolvedCue string        `yaml:"resolved_cue"`
	Glyph       string        `yaml:"glyph"`
}

// StationSpec places one station; Tasks names a subset of the pool, empty means all
type StationSpec struct {
	ID         string   `yaml:"id"`
	Position   Vec3     `yaml:"position"`
	ZoneRadius float64  `yaml:"zone_radius"`
	DockOffset Vec3     `yaml:"dock_offset"`
	DockYaw    float64  `yaml:"dock_yaw"`
	Tasks      []string `yaml:"tasks"`
}

// PoseSpec is a position with a heading in degrees
type PoseSpec struct {
	Position Vec3    `yaml:"position"`
	Yaw      float64 `yaml:"yaw"`
}

// PawnSpec places one pawn
type PawnSpec struct {
	ID         string    `yaml:"id"`
	Identity   string    `yaml:"identity"`
	Position   Vec3      `yaml:"position"`
	Yaw        float64   `yaml:"yaw"`
	PickRadius float64   `yaml:"pick_radius"`
	Respawn    *PoseSpec `yaml:"respawn"`
}

// SpawnSpec is the shrinking spawn cadence
type SpawnSpec struct {
	Initial time.Duration `yaml:"initial"`
	Min     time.Duration `yaml:"min"`
	Step    time.Duration `yaml:"step"`
}

// DockSpec bounds docking interpolation
type DockSpec struct {
	Speed       float64       `yaml:"speed"`
	MinDuration time.Duration `yaml:"min_duration"`
	MaxDuration time.Duration `yaml:"max_duration"`
	GhostHeight float64       `yaml:"ghost_height"`
}

// GoalSpec holds the optional win conditions
type GoalSpec struct {
	ResolveTarget  int     `yaml:"resolve_target"`
	SurviveSeconds float64 `yaml:"survive_seconds"`
}

// Runtime holds process settings read from the environment only
type Runtime struct {
	Debug       bool   `env:"DEBUG"`
	Seed        uint64 `env:"SEED"`
	HTTPAddr    string `env:"HTTP_ADDR"`
	MQTTURL     string `env:"MQTT_URL"`
	MQTTTopic   string `env:"MQTT_TOPIC" envDefault:"deskrush/events"`
	DatabaseURL string `env:"DATABASE_URL"`
	Mute        bool   `env:"MUTE"`
}

// Config is a level file plus runtime overrides
type Config struct {
	Version   int           `yaml:"version"`
	Seed      uint64        `yaml:"seed"`
	Countdown time.Duration `yaml:"countdown"`
	Tasks     TaskDefaults  `yaml:"tasks"`
	Pool      []TaskSpec    `yaml:"pool"`
	Stations  []StationSpec `yaml:"stations"`
	Pawns     []PawnSpec    `yaml:"pawns"`
	Spawn     SpawnSpec     `yaml:"spawn"`
	Dock      DockSpec      `yaml:"dock"`
	Goals     GoalSpec      `yaml:"goals"`

	Runtime Runtime `yaml:"-"`
}

// Load reads a level file over the built-in defaults; an empty path returns the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level file: %w", err)
	}
	if err := Parse(b, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, replacing only the fields the document sets
func Parse(b []byte, cfg *Config) error {
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parsing level yaml: %w", err)
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported level version: %d", cfg.Version)
	}
	return nil
}

// ApplyEnv reads DESKRUSH_* variables into Runtime; environ nil uses the process environment
// A non-zero DESKRUSH_SEED replaces the level seed
func (c *Config) ApplyEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&c.Runtime, opts); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	if c.Runtime.Seed != 0 {
		c.Seed = c.Runtime.Seed
	}
	return nil
}

// Validate checks invariants the game core relies on
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Countdown <= 0 {
		fail("countdown must be positive")
	}
	if c.Spawn.Min <= 0 {
		fail("spawn.min must be positive")
	}
	if c.Spawn.Initial < c.Spawn.Min {
		fail("spawn.initial %v below spawn.min %v", c.Spawn.Initial, c.Spawn.Min)
	}
	if c.Spawn.Step < 0 {
		fail("spawn.step must not be negative")
	}
	if c.Tasks.ExpiryTimeout <= 0 {
		fail("tasks.expiry_timeout must be positive")
	}
	if c.Tasks.ResolutionDelay <= 0 {
		fail("tasks.resolution_delay must be positive")
	}
	if c.Dock.MaxDuration > 0 && c.Dock.MinDuration > c.Dock.MaxDuration {
		fail("dock.min_duration above dock.max_duration")
	}

	if len(c.Pool) == 0 {
		fail("task pool is empty")
	}
	tasks := make(map[string]bool, len(c.Pool))
	for i, t := range c.Pool {
		switch {
		case t.Name == "":
			fail("pool[%d]: missing name", i)
		case tasks[t.Name]:
			fail("pool[%d]: duplicate task %q", i, t.Name)
		}
		if t.Required == "" {
			fail("pool[%d]: missing required identity", i)
		}
		tasks[t.Name] = true
	}

	if len(c.Stations) == 0 {
		fail("no stations")
	}
	stations := make(map[string]bool, len(c.Stations))
	for i, s := range c.Stations {
		if s.ID == "" {
			fail("stations[%d]: missing id", i)
		} else if stations[s.ID] {
			fail("stations[%d]: duplicate id %q", i, s.ID)
		}
		stations[s.ID] = true
		if s.ZoneRadius <= 0 {
			fail("station %q: zone_radius must be positive", s.ID)
		}
		for _, name := range s.Tasks {
			if !tasks[name] {
				fail("station %q: unknown task %q", s.ID, name)
			}
		}
	}

	pawns := make(map[string]bool, len(c.Pawns))
	for i, p := range c.Pawns {
		if p.ID == "" {
			fail("pawns[%d]: missing id", i)
		} else if pawns[p.ID] {
			fail("pawns[%d]: duplicate id %q", i, p.ID)
		}
		pawns[p.ID] = true
		if p.Identity == "" {
			fail("pawn %q: missing identity", p.ID)
		}
		if p.PickRadius < 0 {
			fail("pawn %q: negative pick_radius", p.ID)
		}
	}

	if c.Goals.ResolveTarget < 0 || c.Goals.SurviveSeconds < 0 {
		fail("goals must not be negative")
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// GameConfig validates and converts to the game core's assembly config
func (c *Config) GameConfig() (system.GameConfig, error) {
	if err := c.Validate(); err != nil {
		return system.GameConfig{}, err
	}

	pool := make(map[string]component.TaskDefinition, len(c.Pool))
	all := make([]component.TaskDefinition, 0, len(c.Pool))
	for _, t := range c.Pool {
		def := c.taskDefinition(t)
		pool[t.Name] = def
		all = append(all, def)
	}

	gc := system.GameConfig{
		Countdown: c.Countdown,
		Spawn: system.SpawnConfig{
			Initial: c.Spawn.Initial,
			Min:     c.Spawn.Min,
			Step:    c.Spawn.Step,
		},
		Dock: system.DockConfig{
			Speed:       c.Dock.Speed,
			MinDuration: c.Dock.MinDuration,
			MaxDuration: c.Dock.MaxDuration,
			GhostHeight: c.Dock.GhostHeight,
		},
		Goals: system.LevelGoals{
			ResolveTarget: c.Goals.ResolveTarget,
			Survive:       time.Duration(c.Goals.SurviveSeconds * float64(time.Second)),
		},
	}

	for _, s := range c.Stations {
		defs := all
		if len(s.Tasks) > 0 {
			defs = make([]component.TaskDefinition, 0, len(s.Tasks))
			for _, name := range s.Tasks {
				defs = append(defs, pool[name])
			}
		}
		gc.Stations = append(gc.Stations, system.StationConfig{
			ID:              component.StationID(s.ID),
			Position:        s.Position.Vec(),
			ZoneRadius:      s.ZoneRadius,
			DockOffset:      s.DockOffset.Vec(),
			DockYaw:         s.DockYaw,
			Pool:            defs,
			ExpiryTimeout:   c.Tasks.ExpiryTimeout,
			ResolutionDelay: c.Tasks.ResolutionDelay,
			ArtifactLift:    c.Tasks.ArtifactLift,
			ArtifactScale:   c.Tasks.ArtifactScale,
		})
	}

	for _, p := range c.Pawns {
		pc := system.PawnConfig{
			ID:         component.PawnID(p.ID),
			Identity:   component.Identity(p.Identity),
			Position:   p.Position.Vec(),
			Yaw:        p.Yaw,
			PickRadius: p.PickRadius,
		}
		if p.Respawn != nil {
			pc.Respawn = &component.Pose{
				Position: p.Respawn.Position.Vec(),
				Yaw:      p.Respawn.Yaw,
				Scale:    1,
			}
		}
		gc.Pawns = append(gc.Pawns, pc)
	}

	return gc, nil
}

func (c *Config) taskDefinition(t TaskSpec) component.TaskDefinition {
	def := component.TaskDefinition{
		Name:        t.Name,
		Required:    component.Identity(t.Required),
		Reward:      t.Reward,
		Penalty:     t.Penalty,
		ShowCue:     component.SoundCue(t.ShowCue),
		ResolvedCue: component.SoundCue(t.ResolvedCue),
		Glyph:       '?',
	}
	if def.Reward == 0 {
		def.Reward = c.Tasks.Reward
	}
	if def.Penalty == 0 {
		def.Penalty = c.Tasks.Penalty
	}
	for _, r := range t.Glyph {
		def.Glyph = r
		break
	}
	return def
}
