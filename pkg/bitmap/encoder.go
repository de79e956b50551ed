package bitmap

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// PreviewScale is the magnification used for the downloadable preview,
// giving a 256x256 raster.
const PreviewScale = 16

// Magnify scales the grid up by factor, turning every cell into a solid
// factor x factor block. Cell (c, r) lands at (c*factor, r*factor).
func Magnify(g *Grid, factor int) *image.NRGBA {
	if factor < 1 {
		factor = 1
	}
	return imaging.Resize(g, Side*factor, Side*factor, imaging.NearestNeighbor)
}

// Encode writes img to w as PNG.
func Encode(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}
