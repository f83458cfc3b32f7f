package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// GrooveGenerator is the endless level music: a kick on every beat over a walking bass
type GrooveGenerator struct {
	sr      beep.SampleRate
	pos     int
	beat    int
	kickLen int
}

// NewGrooveGenerator creates the music generator at 100 BPM
func NewGrooveGenerator(sr beep.SampleRate) *GrooveGenerator {
	return &GrooveGenerator{
		sr:      sr,
		beat:    sr.N(600 * time.Millisecond),
		kickLen: sr.N(100 * time.Millisecond),
	}
}

// bassLine walks four notes, one per beat
var bassLine = [4]float64{110.00, 130.81, 146.83, 98.00}

func (g *GrooveGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		beatPos := g.pos % g.beat
		t := float64(beatPos) / float64(g.sr)

		kick := 0.0
		if beatPos < g.kickLen {
			env := 1.0 - float64(beatPos)/float64(g.kickLen)
			kick = 0.4 * env * math.Sin(2*math.Pi*60*(1+2*env)*t)
		}

		freq := bassLine[(g.pos/g.beat)%len(bassLine)]
		bass := 0.15 * math.Sin(2*math.Pi*freq*t)

		sample := kick + bass
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *GrooveGenerator) Err() error {
	return nil
}
