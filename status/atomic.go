package status

import (
	"math"
	"sync/atomic"
	"unicode/utf8"
)

// AtomicFloat is a float64 gauge; the zero value reads 0
type AtomicFloat struct {
	v atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) { f.v.Store(math.Float64bits(val)) }

func (f *AtomicFloat) Get() float64 { return math.Float64frombits(f.v.Load()) }

// Add applies delta with a compare-and-swap retry and returns the result
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		bits := f.v.Load()
		sum := math.Float64frombits(bits) + delta
		if f.v.CompareAndSwap(bits, math.Float64bits(sum)) {
			return sum
		}
	}
}

// MaxStringLen bounds stored labels in bytes; session ids and station/task pairs fit
const MaxStringLen = 64

// AtomicString is a short label; the zero value reads ""
type AtomicString struct {
	v atomic.Value
}

// Store keeps at most MaxStringLen bytes without splitting a rune
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		cut := MaxStringLen
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		val = val[:cut]
	}
	s.v.Store(val)
}

func (s *AtomicString) Load() string {
	val, _ := s.v.Load().(string)
	return val
}
