package parameter

// Terminal View
const (
	// WorldHalfWidth and WorldHalfDepth bound the ground plane area fitted to the terminal
	WorldHalfWidth = 16.0
	WorldHalfDepth = 10.0

	// CellAspect is the height-to-width ratio of a terminal cell
	CellAspect = 2.0

	// HUDRows is reserved at the bottom of the screen for the status line
	HUDRows = 1
)
