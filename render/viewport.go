package render

import (
	"math"

	"github.com/lixenwraith/deskrush/parameter"
	"github.com/lixenwraith/deskrush/vmath"
)

// Viewport maps the XZ ground plane onto terminal cells
// Z grows downward on screen; the world origin sits at the play area center
type Viewport struct {
	// Width and Height of the play area in cells, HUD excluded
	Width  int
	Height int

	// Cells per world unit on each axis
	ScaleX float64
	ScaleZ float64

	OriginX int
	OriginY int
}

// Fit computes the largest viewport showing the given half extents with square world units
func Fit(screenW, screenH int, halfWidth, halfDepth float64) Viewport {
	h := screenH - parameter.HUDRows
	if h < 1 {
		h = 1
	}
	if screenW < 1 {
		screenW = 1
	}

	sx := float64(screenW-1) / (2 * halfWidth)
	sz := float64(h-1) / (2 * halfDepth)
	if sx > parameter.CellAspect*sz {
		sx = parameter.CellAspect * sz
	} else {
		sz = sx / parameter.CellAspect
	}
	// Degenerate terminals still get an invertible mapping
	if sz <= 0 {
		sz = 0.1
		sx = parameter.CellAspect * sz
	}

	return Viewport{
		Width:   screenW,
		Height:  h,
		ScaleX:  sx,
		ScaleZ:  sz,
		OriginX: screenW / 2,
		OriginY: h / 2,
	}
}

// ToScreen projects a world position to the nearest cell
func (v Viewport) ToScreen(p vmath.Vec3F) (x, y int) {
	x = v.OriginX + int(math.Round(p.X*v.ScaleX))
	y = v.OriginY + int(math.Round(p.Z*v.ScaleZ))
	return x, y
}

// ToWorld unprojects a cell center onto the ground plane
func (v Viewport) ToWorld(x, y int) vmath.Vec3F {
	return vmath.Vec3F{
		X: float64(x-v.OriginX) / v.ScaleX,
		Y: parameter.GroundHeight,
		Z: float64(y-v.OriginY) / v.ScaleZ,
	}
}

// Contains reports whether a cell lies in the play area
func (v Viewport) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < v.Width && y < v.Height
}
