package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/deskrush/component"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1.0
			if o.phase >= 0.5 {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a finite stream
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	totalSamples int
}

// NewEnvelope shapes s over duration with the given attack and release spans
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:     s,
		attack:       rate.N(attack),
		release:      rate.N(release),
		totalSamples: rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.totalSamples - e.position; e.release > 0 && remaining < e.release {
			vol = math.Min(vol, float64(remaining)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; zero or less is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is one shaped oscillator tone
func note(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// Cue voices

// chime is a soft two-partial ding announcing a new task
func chime(rate beep.SampleRate) beep.Streamer {
	d := 250 * time.Millisecond
	return beep.Mix(
		newVolume(note(880, d, WaveSine, rate), 0.7),
		newVolume(note(1760, d/2, WaveSine, rate), 0.3),
	)
}

// arpeggio rises over a major triad for a resolved task
func arpeggio(rate beep.SampleRate) beep.Streamer {
	d := 90 * time.Millisecond
	return beep.Seq(
		note(523.25, d, WaveSquare, rate),
		note(659.25, d, WaveSquare, rate),
		note(783.99, 2*d, WaveSquare, rate),
	)
}

// buzz is the harsh low saw of an expired task
func buzz(rate beep.SampleRate) beep.Streamer {
	d := 200 * time.Millisecond
	return NewEnvelope(NewOscillator(110, d, WaveSaw, rate), d, 10*time.Millisecond, 80*time.Millisecond, rate)
}

// ring alternates two tones like a desk phone
func ring(rate beep.SampleRate) beep.Streamer {
	d := 60 * time.Millisecond
	return beep.Seq(
		note(1300, d, WaveSine, rate),
		note(1000, d, WaveSine, rate),
		note(1300, d, WaveSine, rate),
		note(1000, d, WaveSine, rate),
	)
}

// jam is a short burst of noise over a grinding square
func jam(rate beep.SampleRate) beep.Streamer {
	d := 220 * time.Millisecond
	return beep.Mix(
		newVolume(NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 5*time.Millisecond, 100*time.Millisecond, rate), 0.4),
		newVolume(note(90, d, WaveSquare, rate), 0.4),
	)
}

// fanfare ends a cleared level
func fanfare(rate beep.SampleRate) beep.Streamer {
	d := 120 * time.Millisecond
	return beep.Seq(
		note(523.25, d, WaveSquare, rate),
		note(659.25, d, WaveSquare, rate),
		note(783.99, d, WaveSquare, rate),
		note(1046.50, 4*d, WaveSquare, rate),
	)
}

// fall descends for a timed-out level
func fall(rate beep.SampleRate) beep.Streamer {
	d := 180 * time.Millisecond
	return beep.Seq(
		note(392.00, d, WaveSaw, rate),
		note(329.63, d, WaveSaw, rate),
		note(261.63, 3*d, WaveSaw, rate),
	)
}

// voices maps cue names to one-shot builders
var voices = map[component.SoundCue]func(beep.SampleRate) beep.Streamer{
	component.CueTaskShow:     chime,
	component.CueTaskResolved: arpeggio,
	component.CueTaskExpired:  buzz,
	component.CueTimeOut:      fall,
	component.CueLevelCleared: fanfare,
	"phone_ring":              ring,
	"printer_jam":             jam,
}

// HasVoice reports whether a cue has its own sound; others fall back to the task chime
func HasVoice(cue component.SoundCue) bool {
	if cue == component.CueLevelMusic {
		return true
	}
	_, ok := voices[cue]
	return ok
}

// Voice builds the streamer for a cue at the configured volume
// Level music is endless; every other cue is a finite one-shot
func Voice(cue component.SoundCue, cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	var s beep.Streamer
	if cue == component.CueLevelMusic {
		s = NewGrooveGenerator(rate)
	} else if build, ok := voices[cue]; ok {
		s = build(rate)
	} else {
		s = chime(rate)
	}
	return newVolume(s, cfg.volumeFor(cue))
}
