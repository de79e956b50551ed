package bitmap

import (
	"image"
	"image/color"
)

const (
	// Side is the edge length of the pixel grid in cells.
	Side = 16
	// Cells is the number of entries in a Grid.
	Cells = Side * Side
)

var gridBounds = image.Rect(0, 0, Side, Side)

// Grid is a 16x16 opaque raster with row 0 at the top. It implements the
// image.Image interface and has no exported mutators; Sample is the only way
// to build one.
type Grid struct {
	pixels [Cells]RGB
}

// Bounds implements the image.Image interface.
func (g *Grid) Bounds() image.Rectangle {
	return gridBounds
}

// ColorModel implements the image.Image interface.
func (g *Grid) ColorModel() color.Model {
	return RGBModel
}

// At implements the image.Image interface.
func (g *Grid) At(x, y int) color.Color {
	return g.RGBAt(x, y)
}

// RGBAt returns the cell at column x, row y. Cells outside the grid are black.
func (g *Grid) RGBAt(x, y int) RGB {
	if x < 0 || x >= Side || y < 0 || y >= Side {
		return RGB{}
	}
	return g.pixels[Index(x, y)]
}

// Pixels returns a copy of all 256 cells in row-major order.
func (g *Grid) Pixels() []RGB {
	out := make([]RGB, Cells)
	copy(out, g.pixels[:])
	return out
}

func (g *Grid) set(x, y int, c RGB) {
	g.pixels[Index(x, y)] = c
}

// Index returns the row-major position of column x, row y.
func Index(x, y int) int {
	return y*Side + x
}

// RGB is an 8-bit color without alpha. It implements the color.Color
// interface and always reports itself as fully opaque.
type RGB struct {
	R, G, B uint8
}

// RGBA implements the color.Color interface.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	a = 0xFFFF
	return
}

// RGBModel converts any color to RGB by flattening it over black.
var RGBModel = color.ModelFunc(rgbModel)

func rgbModel(c color.Color) color.Color {
	if rgb, ok := c.(RGB); ok {
		return rgb
	}
	return Flatten(color.NRGBAModel.Convert(c).(color.NRGBA))
}

// Flatten composites c over a black background and drops the alpha channel.
// Opaque colors pass through untouched, fully transparent ones become black.
func Flatten(c color.NRGBA) RGB {
	if c.A == 0xff {
		return RGB{c.R, c.G, c.B}
	}
	return RGB{
		R: premul(c.R, c.A),
		G: premul(c.G, c.A),
		B: premul(c.B, c.A),
	}
}

// premul returns round(v*a/255). v*a/255 never has a fractional part of
// exactly one half, so adding 127 before the integer division rounds to the
// nearest value.
func premul(v, a uint8) uint8 {
	return uint8((uint32(v)*uint32(a) + 127) / 255)
}
