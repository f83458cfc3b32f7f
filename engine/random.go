package engine

import "math/rand/v2"

// RandSource is the only randomness the game consumes
// Scenario tests substitute a scripted source
type RandSource interface {
	// IntN returns a value in [0, n); n > 0
	IntN(n int) int
}

// NewRandSource returns a PCG-backed source; equal seeds replay equal games
func NewRandSource(seed uint64) RandSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ScriptedRand replays fixed picks, each reduced modulo n; it repeats the last pick when exhausted
type ScriptedRand struct {
	Picks []int
	next  int
}

func (r *ScriptedRand) IntN(n int) int {
	if len(r.Picks) == 0 || n <= 0 {
		return 0
	}
	i := r.next
	if i >= len(r.Picks) {
		i = len(r.Picks) - 1
	} else {
		r.next++
	}
	v := r.Picks[i] % n
	if v < 0 {
		v += n
	}
	return v
}
