package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/deskrush/system"
	"github.com/lixenwraith/deskrush/vmath"
)

// Projector unprojects a terminal cell onto the ground plane
// ok is false for cells outside the play area
type Projector interface {
	ScreenToWorld(x, y int) (pos vmath.Vec3F, ok bool)
}

// Machine parses tcell events into intents
// A left-button press, drag and release become pointer begin, move and end
type Machine struct {
	proj     Projector
	keyTable *KeyTable
	debug    bool

	pressed bool
	lastX   int
	lastY   int
	lastPos vmath.Vec3F
}

// NewMachine creates an input machine projecting through proj
func NewMachine(proj Projector, debug bool) *Machine {
	return &Machine{
		proj:     proj,
		keyTable: DefaultKeyTable(),
		debug:    debug,
	}
}

// Process returns the intent of ev, IntentNone when it has no meaning
func (m *Machine) Process(ev tcell.Event) Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventMouse:
		return m.processMouse(ev)
	case *tcell.EventResize:
		return Intent{Type: IntentResize}
	}
	return Intent{}
}

// Dragging reports whether the left button is held
func (m *Machine) Dragging() bool {
	return m.pressed
}

func (m *Machine) processKey(ev *tcell.EventKey) Intent {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if t, ok := m.keyTable.Runes[r]; ok {
			return Intent{Type: t}
		}
		if m.debug {
			if t, ok := m.keyTable.DebugRunes[r]; ok {
				return Intent{Type: t}
			}
		}
		return Intent{}
	}
	if t, ok := m.keyTable.SpecialKeys[ev.Key()]; ok {
		return Intent{Type: t}
	}
	return Intent{}
}

func (m *Machine) processMouse(ev *tcell.EventMouse) Intent {
	x, y := ev.Position()
	down := ev.Buttons()&tcell.Button1 != 0

	switch {
	case down && !m.pressed:
		pos, ok := m.proj.ScreenToWorld(x, y)
		if !ok {
			return Intent{}
		}
		m.pressed = true
		m.track(x, y, pos)
		return Intent{Type: IntentPointer, Phase: system.PointerBegin, Pos: pos}

	case down:
		if x == m.lastX && y == m.lastY {
			return Intent{}
		}
		pos, ok := m.proj.ScreenToWorld(x, y)
		if !ok {
			// Off the floor the ghost stays at the last valid point
			return Intent{}
		}
		m.track(x, y, pos)
		return Intent{Type: IntentPointer, Phase: system.PointerMove, Pos: pos}

	case m.pressed:
		m.pressed = false
		pos, ok := m.proj.ScreenToWorld(x, y)
		if !ok {
			pos = m.lastPos
		}
		return Intent{Type: IntentPointer, Phase: system.PointerEnd, Pos: pos}
	}
	return Intent{}
}

func (m *Machine) track(x, y int, pos vmath.Vec3F) {
	m.lastX, m.lastY = x, y
	m.lastPos = pos
}
