package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/deskrush/component"
)

var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbFloorDot   = tcell.NewRGBColor(50, 52, 70)    // Faint floor grid
	RgbZone       = tcell.NewRGBColor(90, 95, 130)   // Station trigger ring
	RgbZoneHot    = tcell.NewRGBColor(255, 165, 0)   // Ring under the dragged ghost
	RgbStation    = tcell.NewRGBColor(200, 200, 200) // Station body and label
	RgbGhost      = tcell.NewRGBColor(120, 120, 120) // Drag proxy
	RgbStatusText = tcell.NewRGBColor(0, 0, 0)       // Dark text for status

	RgbTimeBg     = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbTimeLowBg  = tcell.NewRGBColor(200, 50, 50)   // Red once under the warning threshold
	RgbPausedBg   = tcell.NewRGBColor(128, 0, 128)   // Dark purple
	RgbBannerBg   = tcell.NewRGBColor(255, 255, 255) // Bright white
	RgbResolvingF = tcell.NewRGBColor(144, 238, 144) // Light grass green
	RgbFallback   = tcell.NewRGBColor(255, 192, 203) // Pink for identities without a named color
)

// IdentityColor maps an identity to a terminal color by name, "Blue" renders blue
func IdentityColor(id component.Identity) tcell.Color {
	c := tcell.GetColor(strings.ToLower(string(id)))
	if c == tcell.ColorDefault {
		return RgbFallback
	}
	return c
}

// TaskStyle styles an artifact glyph for its state
func TaskStyle(state component.TaskState, required component.Identity) tcell.Style {
	base := tcell.StyleDefault.Background(RgbBackground)
	switch state {
	case component.TaskActive:
		return base.Foreground(IdentityColor(required)).Bold(true)
	case component.TaskResolving:
		return base.Foreground(RgbResolvingF).Blink(true)
	default:
		return base.Foreground(RgbStation)
	}
}
