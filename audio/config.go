package audio

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/lixenwraith/deskrush/component"
)

// Config holds audio settings
type Config struct {
	Enabled      bool    `env:"AUDIO_ENABLED" envDefault:"true"`
	MasterVolume float64 `env:"MASTER_VOLUME" envDefault:"0.5"`
	SampleRate   int     `env:"SAMPLE_RATE" envDefault:"44100"`

	// CueVolumes scales individual cues; missing cues play at 1.0
	CueVolumes map[component.SoundCue]float64
}

// DefaultConfig returns the built-in audio settings
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   44100,
		CueVolumes: map[component.SoundCue]float64{
			component.CueTaskShow:     0.8,
			component.CueTaskResolved: 1.0,
			component.CueTaskExpired:  0.8,
			component.CueLevelMusic:   0.4,
			component.CueTimeOut:      1.0,
			component.CueLevelCleared: 1.0,
		},
	}
}

// LoadConfig reads DESKRUSH_AUDIO_ENABLED, DESKRUSH_MASTER_VOLUME and DESKRUSH_SAMPLE_RATE
// environ nil uses the process environment
func LoadConfig(environ map[string]string) (*Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "DESKRUSH_", Environment: environ}); err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}

	if cfg.MasterVolume < 0 {
		cfg.MasterVolume = 0
	}
	if cfg.MasterVolume > 1 {
		cfg.MasterVolume = 1
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 44100
	}
	return cfg, nil
}

// volumeFor returns the final gain of a cue
func (c *Config) volumeFor(cue component.SoundCue) float64 {
	v, ok := c.CueVolumes[cue]
	if !ok {
		v = 1.0
	}
	return v * c.MasterVolume
}
