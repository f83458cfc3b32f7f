package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/deskrush/component"
)

// drain streams s to completion, up to limit samples
func drain(s beep.Streamer, limit int) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			v := buf[i][0]
			if v < 0 {
				v = -v
			}
			if v > peak {
				peak = v
			}
		}
		total += n
		if !ok {
			break
		}
	}
	return total, peak
}

// TestOscillatorWaves verifies every wave shape stays in range and ends on time
func TestOscillatorWaves(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(440, 100*time.Millisecond, wave, rate)
		n, peak := drain(osc, rate.N(time.Second))

		if n != rate.N(100*time.Millisecond) {
			t.Errorf("Wave %d: expected %d samples, got %d", wave, rate.N(100*time.Millisecond), n)
		}
		if peak > 1.0 {
			t.Errorf("Wave %d: sample out of range, peak %f", wave, peak)
		}
		if osc.Err() != nil {
			t.Errorf("Wave %d: unexpected error %v", wave, osc.Err())
		}
	}
}

// TestEnvelopeShapes verifies attack starts silent and release ends near silent
func TestEnvelopeShapes(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, time.Second, WaveSquare, rate) // constant +1
	env := NewEnvelope(osc, time.Second, 100*time.Millisecond, 100*time.Millisecond, rate)

	buf := make([][2]float64, 1000)
	n, _ := env.Stream(buf)
	if n != 1000 {
		t.Fatalf("Expected 1000 samples, got %d", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", buf[0][0])
	}
	if buf[500][0] != 1 {
		t.Errorf("Expected full sustain, got %f", buf[500][0])
	}
	if buf[999][0] > 0.02 {
		t.Errorf("Expected release near silence, got %f", buf[999][0])
	}
}

// TestVoicesAreFinite verifies one-shot cues end and music does not
func TestVoicesAreFinite(t *testing.T) {
	cfg := DefaultConfig()
	limit := cfg.SampleRate * 5

	for _, cue := range allCues {
		n, peak := drain(Voice(cue, cfg), limit)
		if cue == component.CueLevelMusic {
			if n < limit {
				t.Errorf("Expected endless music, ended after %d samples", n)
			}
			continue
		}
		if n == 0 || n >= limit {
			t.Errorf("Cue %q: expected a short one-shot, got %d samples", cue, n)
		}
		if peak == 0 {
			t.Errorf("Cue %q: expected audible output", cue)
		}
	}
}

func TestHasVoice(t *testing.T) {
	if !HasVoice(component.CueLevelMusic) || !HasVoice("phone_ring") {
		t.Error("Expected built-in voices")
	}
	if HasVoice("kazoo") {
		t.Error("Expected unknown cue to report no voice")
	}
}

// TestMutedVolumeIsSilent verifies zero master volume silences every cue
func TestMutedVolumeIsSilent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MasterVolume = 0

	_, peak := drain(Voice(component.CueTaskResolved, cfg), cfg.SampleRate)
	if peak != 0 {
		t.Errorf("Expected silence at zero volume, got peak %f", peak)
	}
}
