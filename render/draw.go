package render

// @lixen: #dev{feature[drag(render,system)],feature[station(render,system)]}

import (
	"fmt"
	"math"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/deskrush/component"
	"github.com/lixenwraith/deskrush/system"
	"github.com/lixenwraith/deskrush/vmath"
)

const (
	floorSpacing = 4.0
	ringSteps    = 48
	lowTime      = 10 // seconds under which the clock turns red

	glyphStation = '#'
	glyphGhost   = '○'
	glyphFloor   = '·'
	glyphRing    = '.'
)

// Draw renders one frame of the snapshot and shows it
func (v *View) Draw(s tcell.Screen, snap system.Snapshot) {
	w, h := s.Size()

	v.mu.Lock()
	defer v.mu.Unlock()

	vp := Fit(w, h, v.halfWidth, v.halfDepth)
	v.viewport = vp

	bg := tcell.StyleDefault.Background(RgbBackground)
	s.Fill(' ', bg)

	v.drawFloor(s, vp, bg)

	// The ring under the dragged ghost is highlighted
	var hot component.StationID
	for _, p := range snap.Pawns {
		if p.Drag.IsDragging {
			hot = p.Drag.CurrentZone
		}
	}

	for _, st := range snap.Stations {
		v.drawStation(s, vp, bg, st, st.ID == hot)
	}
	for _, p := range snap.Pawns {
		v.drawPawn(s, vp, bg, p)
	}

	v.drawStatus(s, vp, w, snap)
	s.Show()
}

func (v *View) drawFloor(s tcell.Screen, vp Viewport, bg tcell.Style) {
	style := bg.Foreground(RgbFloorDot)
	for x := -v.halfWidth; x <= v.halfWidth; x += floorSpacing {
		for z := -v.halfDepth; z <= v.halfDepth; z += floorSpacing {
			setCell(s, vp, vmath.Vec3F{X: x, Z: z}, glyphFloor, style)
		}
	}
}

func (v *View) drawStation(s tcell.Screen, vp Viewport, bg tcell.Style, st system.StationView, hot bool) {
	ring := bg.Foreground(RgbZone)
	if hot {
		ring = bg.Foreground(RgbZoneHot)
	}
	for i := 0; i < ringSteps; i++ {
		a := 2 * math.Pi * float64(i) / ringSteps
		p := vmath.Vec3F{
			X: st.Position.X + st.Radius*math.Cos(a),
			Z: st.Position.Z + st.Radius*math.Sin(a),
		}
		setCell(s, vp, p, glyphRing, ring)
	}

	cx, cy := vp.ToScreen(st.Position)
	body := bg.Foreground(RgbStation)
	if vp.Contains(cx, cy) {
		s.SetContent(cx, cy, glyphStation, nil, body)
	}
	label := string(st.ID)
	drawText(s, vp, cx-utf8.RuneCountInString(label)/2, cy+1, label, body)

	a, ok := v.artifacts[st.ID]
	if !ok || !a.alive || st.State == component.TaskIdle {
		return
	}
	// Artifacts float one row above the station body
	style := TaskStyle(st.State, st.Required)
	if vp.Contains(cx, cy-1) {
		s.SetContent(cx, cy-1, a.Glyph, nil, style)
	}
	if st.State == component.TaskActive {
		secs := int(math.Ceil(st.Remaining.Seconds()))
		drawText(s, vp, cx+2, cy-1, fmt.Sprintf("%ds", secs), style)
	}
}

func (v *View) drawPawn(s tcell.Screen, vp Viewport, bg tcell.Style, p system.PawnView) {
	if p.Ghost.Active {
		setCell(s, vp, p.Ghost.Position, glyphGhost, bg.Foreground(RgbGhost))
	}

	style := bg.Foreground(IdentityColor(p.Identity))
	if v.anims[p.ID] == component.AnimMoving {
		style = style.Bold(true)
	}
	if p.Drag.IsLocked {
		style = style.Underline(true)
	}
	setCell(s, vp, p.Position, PawnGlyph(p.Identity), style)
}

func (v *View) drawStatus(s tcell.Screen, vp Viewport, width int, snap system.Snapshot) {
	y := vp.Height
	base := tcell.StyleDefault.Background(RgbBackground)
	for x := 0; x < width; x++ {
		s.SetContent(x, y, ' ', nil, base)
	}

	timeBg := RgbTimeBg
	if snap.Expired || snap.Remaining.Seconds() < lowTime {
		timeBg = RgbTimeLowBg
	}
	x := putText(s, 0, y, " "+v.timeText+" ", base.Foreground(RgbStatusText).Background(timeBg))

	if v.paused {
		x = putText(s, x+1, y, " PAUSED ", base.Foreground(RgbStatusText).Background(RgbPausedBg))
	}

	info := fmt.Sprintf(" spawn %.1fs  frame %d", snap.Interval.Seconds(), snap.Frame)
	putText(s, x, y, info, base.Foreground(RgbStation))

	if v.banner != "" {
		text := " " + v.banner + " "
		putText(s, width-utf8.RuneCountInString(text), y, text, base.Foreground(RgbStatusText).Background(RgbBannerBg))
	}
}

// PawnGlyph is the first letter of an identity, upper-cased
func PawnGlyph(id component.Identity) rune {
	r, _ := utf8.DecodeRuneInString(string(id))
	if r == utf8.RuneError {
		return '@'
	}
	return unicode.ToUpper(r)
}

func setCell(s tcell.Screen, vp Viewport, p vmath.Vec3F, r rune, style tcell.Style) {
	x, y := vp.ToScreen(p)
	if vp.Contains(x, y) {
		s.SetContent(x, y, r, nil, style)
	}
}

// drawText writes inside the play area only
func drawText(s tcell.Screen, vp Viewport, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		if vp.Contains(x, y) {
			s.SetContent(x, y, r, nil, style)
		}
		x++
	}
}

// putText writes unclipped and returns the column after the text
func putText(s tcell.Screen, x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
