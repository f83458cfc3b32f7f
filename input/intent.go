package input

import (
	"github.com/lixenwraith/deskrush/system"
	"github.com/lixenwraith/deskrush/vmath"
)

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit   // q, Esc, Ctrl+C
	IntentPause  // p, Space
	IntentMute   // m
	IntentResize // Terminal resize event

	// Pointer gesture projected onto the ground plane
	IntentPointer

	// Debug only
	IntentDropTasks // x: destroy every shown artifact
)

// Intent is the parsed meaning of one terminal event
type Intent struct {
	Type IntentType

	// Set for IntentPointer
	Phase system.PointerPhase
	Pos   vmath.Vec3F
}
