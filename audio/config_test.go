package audio

import (
	"testing"

	"github.com/lixenwraith/deskrush/component"
)

// TestDefaultConfig verifies default configuration
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Enabled {
		t.Error("Expected default config to have Enabled=true")
	}
	if cfg.MasterVolume != 0.5 {
		t.Errorf("Expected default master volume 0.5, got %f", cfg.MasterVolume)
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("Expected default sample rate 44100, got %d", cfg.SampleRate)
	}
	if got := cfg.volumeFor(component.CueLevelMusic); got != 0.2 {
		t.Errorf("Expected music at 0.4*0.5, got %f", got)
	}
	if got := cfg.volumeFor("printer_jam"); got != 0.5 {
		t.Errorf("Expected unlisted cue at master volume, got %f", got)
	}
}

// TestLoadConfigDefaults verifies loading with no env vars
func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(map[string]string{})
	if err != nil {
		t.Fatal(err)
	}
	def := DefaultConfig()
	if cfg.Enabled != def.Enabled || cfg.MasterVolume != def.MasterVolume || cfg.SampleRate != def.SampleRate {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
	if len(cfg.CueVolumes) != len(def.CueVolumes) {
		t.Error("Expected cue volumes kept")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
		enabled bool
		volume  float64
		rate    int
	}{
		{"disable", map[string]string{"DESKRUSH_AUDIO_ENABLED": "false"}, false, 0.5, 44100},
		{"volume", map[string]string{"DESKRUSH_MASTER_VOLUME": "0.8"}, true, 0.8, 44100},
		{"volume clamped high", map[string]string{"DESKRUSH_MASTER_VOLUME": "3"}, true, 1, 44100},
		{"volume clamped low", map[string]string{"DESKRUSH_MASTER_VOLUME": "-1"}, true, 0, 44100},
		{"rate", map[string]string{"DESKRUSH_SAMPLE_RATE": "48000"}, true, 0.5, 48000},
		{"bad rate", map[string]string{"DESKRUSH_SAMPLE_RATE": "0"}, true, 0.5, 44100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.environ)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Enabled != tt.enabled || cfg.MasterVolume != tt.volume || cfg.SampleRate != tt.rate {
				t.Errorf("Got enabled=%v volume=%f rate=%d", cfg.Enabled, cfg.MasterVolume, cfg.SampleRate)
			}
		})
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	if _, err := LoadConfig(map[string]string{"DESKRUSH_MASTER_VOLUME": "loud"}); err == nil {
		t.Error("Expected parse error")
	}
}
