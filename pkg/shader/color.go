package shader

import (
	"math"
	"strconv"

	"pixelfrag/pkg/bitmap"
)

// FormatChannel returns v/255 as a GLSL float literal with exactly six
// fractional digits, e.g. 128 becomes "0.501961".
func FormatChannel(v uint8) string {
	return strconv.FormatFloat(float64(v)/255, 'f', 6, 64)
}

// Cell maps a normalized coordinate onto a grid column or row the way the
// generated main() does: clamp(floor(uv*16), 0, 15).
func Cell(uv float64) int {
	if math.IsNaN(uv) {
		return 0
	}
	c := math.Floor(uv * bitmap.Side)
	return int(math.Max(0, math.Min(bitmap.Side-1, c)))
}

// Index returns the table entry the generated program reads for a fragment
// at (fragX, fragY) in a width x height viewport. Coordinates follow
// gl_FragCoord: pixel centers sit at .5 and y grows upwards.
func Index(fragX, fragY, width, height float64) int {
	ix := Cell((fragX - 0.5) / width)
	iy := Cell((fragY - 0.5) / height)
	rowTop := bitmap.Side - 1 - iy
	return rowTop*bitmap.Side + ix
}
