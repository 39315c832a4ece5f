package mover

// ScreenExtents is a snapshot of the display size in scaled units and the
// reference point the square starts from.
type ScreenExtents struct {
	Width        int
	Height       int
	WidthCenter  int
	HeightCenter int

	// RefX, RefY is the midpoint of the upper-left quadrant.
	RefX int
	RefY int
}

// Extents computes ScreenExtents for a display of width x height pixels.
func Extents(width, height, scale int) ScreenExtents {
	w := width * scale
	h := height * scale
	wc := w / 2
	hc := h / 2
	return ScreenExtents{
		Width:        w,
		Height:       h,
		WidthCenter:  wc,
		HeightCenter: hc,
		RefX:         wc / 2,
		RefY:         hc / 2,
	}
}
