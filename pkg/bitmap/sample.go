package bitmap

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// ErrEmpty is returned when the source image has no pixels.
var ErrEmpty = errors.New("bitmap: empty source image")

// Sample resamples src to a 16x16 Grid.
//
// Every cell takes the color of exactly one source pixel: cell (x, y) reads
// the pixel at floor((x+0.5)*W/16), floor((y+0.5)*H/16) relative to the
// source origin, so hard edges and exact colors survive and sources smaller
// than 16 pixels repeat. The sampled color is then flattened over black.
func Sample(src image.Image) (*Grid, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, ErrEmpty
	}

	small := imaging.Resize(src, Side, Side, imaging.NearestNeighbor)

	g := &Grid{}
	for y := 0; y < Side; y++ {
		for x := 0; x < Side; x++ {
			g.set(x, y, Flatten(small.NRGBAAt(x, y)))
		}
	}

	return g, nil
}
