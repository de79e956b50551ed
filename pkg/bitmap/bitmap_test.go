package bitmap

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSolid creates a w x h image filled with c.
func newSolid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// newCoords creates an opaque image whose red and green channels hold the
// pixel's own column and row.
func newCoords(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), A: 0xff})
		}
	}
	return img
}

func TestSampleAlwaysFullGrid(t *testing.T) {
	for _, size := range []image.Point{{1, 1}, {3, 7}, {16, 16}, {17, 2}, {100, 37}, {640, 480}} {
		g, err := Sample(newSolid(size.X, size.Y, color.NRGBA{R: 10, G: 20, B: 30, A: 0xff}))
		require.NoError(t, err, "size %v", size)
		require.Len(t, g.Pixels(), Cells)
		for _, c := range g.Pixels() {
			assert.Equal(t, RGB{10, 20, 30}, c, "size %v", size)
		}
	}
}

func TestSampleEmpty(t *testing.T) {
	_, err := Sample(image.NewNRGBA(image.Rect(0, 0, 0, 5)))
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Sample(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestSampleQuadrants(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	src.SetNRGBA(1, 0, color.NRGBA{0, 255, 0, 255})
	src.SetNRGBA(0, 1, color.NRGBA{0, 0, 255, 255})
	src.SetNRGBA(1, 1, color.NRGBA{255, 255, 0, 128})

	g, err := Sample(src)
	require.NoError(t, err)

	for y := 0; y < Side; y++ {
		for x := 0; x < Side; x++ {
			var want RGB
			switch {
			case x < 8 && y < 8:
				want = RGB{255, 0, 0}
			case y < 8:
				want = RGB{0, 255, 0}
			case x < 8:
				want = RGB{0, 0, 255}
			default:
				want = RGB{128, 128, 0}
			}
			require.Equal(t, want, g.RGBAt(x, y), "cell %d,%d", x, y)
		}
	}
}

func TestSampleNearestCoordinates(t *testing.T) {
	for _, size := range []image.Point{{32, 32}, {5, 3}, {40, 200}, {16, 9}} {
		g, err := Sample(newCoords(size.X, size.Y))
		require.NoError(t, err)

		dx := float64(size.X) / Side
		dy := float64(size.Y) / Side
		for y := 0; y < Side; y++ {
			for x := 0; x < Side; x++ {
				sx := int((float64(x) + 0.5) * dx)
				sy := int((float64(y) + 0.5) * dy)
				require.Equal(t, RGB{uint8(sx), uint8(sy), 0}, g.RGBAt(x, y), "size %v cell %d,%d", size, x, y)
			}
		}
	}
}

func TestSampleOffsetBounds(t *testing.T) {
	big := newCoords(24, 24)
	sub := big.SubImage(image.Rect(4, 6, 20, 22))

	g, err := Sample(sub)
	require.NoError(t, err)

	for y := 0; y < Side; y++ {
		for x := 0; x < Side; x++ {
			require.Equal(t, RGB{uint8(x + 4), uint8(y + 6), 0}, g.RGBAt(x, y))
		}
	}
}

func TestSampleTransparent(t *testing.T) {
	g, err := Sample(newSolid(3, 3, color.NRGBA{200, 100, 50, 0}))
	require.NoError(t, err)
	for _, c := range g.Pixels() {
		assert.Equal(t, RGB{}, c)
	}
}

func TestFlatten(t *testing.T) {
	for _, tt := range []struct {
		in   color.NRGBA
		want RGB
	}{
		{color.NRGBA{12, 34, 56, 255}, RGB{12, 34, 56}},
		{color.NRGBA{255, 255, 255, 0}, RGB{0, 0, 0}},
		{color.NRGBA{255, 255, 0, 128}, RGB{128, 128, 0}},
		{color.NRGBA{100, 200, 1, 64}, RGB{25, 50, 0}},
		{color.NRGBA{255, 128, 3, 1}, RGB{1, 1, 0}},
	} {
		assert.Equal(t, tt.want, Flatten(tt.in), "%v", tt.in)
	}
}

func TestFlattenMatchesRounding(t *testing.T) {
	for a := 0; a < 256; a++ {
		for v := 0; v < 256; v++ {
			want := uint8(math.Round(float64(v) * float64(a) / 255))
			got := Flatten(color.NRGBA{uint8(v), 0, 0, uint8(a)}).R
			if got != want {
				t.Fatalf("v=%d a=%d: want %d, have %d", v, a, want, got)
			}
		}
	}
}

func TestRGBModel(t *testing.T) {
	assert.Equal(t, RGB{1, 2, 3}, RGBModel.Convert(RGB{1, 2, 3}))
	assert.Equal(t, RGB{9, 8, 7}, RGBModel.Convert(color.NRGBA{9, 8, 7, 255}))
	assert.Equal(t, RGB{}, RGBModel.Convert(color.Transparent))

	_, _, _, a := RGB{1, 2, 3}.RGBA()
	assert.EqualValues(t, 0xFFFF, a)
}

func TestGridOutOfBounds(t *testing.T) {
	g, err := Sample(newSolid(1, 1, color.NRGBA{255, 255, 255, 255}))
	require.NoError(t, err)

	assert.Equal(t, RGB{}, g.RGBAt(-1, 0))
	assert.Equal(t, RGB{}, g.RGBAt(0, Side))
	assert.Equal(t, RGB{255, 255, 255}, g.At(15, 15))
	assert.Equal(t, image.Rect(0, 0, 16, 16), g.Bounds())
}

func TestPixelsIsACopy(t *testing.T) {
	g, err := Sample(newSolid(2, 2, color.NRGBA{1, 1, 1, 255}))
	require.NoError(t, err)

	px := g.Pixels()
	px[0] = RGB{200, 200, 200}
	assert.Equal(t, RGB{1, 1, 1}, g.RGBAt(0, 0))
}

func TestMagnify(t *testing.T) {
	g, err := Sample(newCoords(16, 16))
	require.NoError(t, err)

	up := Magnify(g, PreviewScale)
	require.Equal(t, image.Rect(0, 0, 256, 256), up.Bounds())

	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			c := g.RGBAt(x/PreviewScale, y/PreviewScale)
			require.Equal(t, color.NRGBA{c.R, c.G, c.B, 0xff}, up.NRGBAAt(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestMagnifyClampsFactor(t *testing.T) {
	g, err := Sample(newSolid(4, 4, color.NRGBA{5, 6, 7, 255}))
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 16, 16), Magnify(g, 0).Bounds())
}

func TestEncode(t *testing.T) {
	g, err := Sample(newCoords(8, 8))
	require.NoError(t, err)

	up := Magnify(g, PreviewScale)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, up))

	dec, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, up.Bounds(), dec.Bounds())

	for y := 0; y < 256; y += 7 {
		for x := 0; x < 256; x += 5 {
			r1, g1, b1, a1 := up.At(x, y).RGBA()
			r2, g2, b2, a2 := dec.At(x, y).RGBA()
			require.Equal(t, [4]uint32{r1, g1, b1, a1}, [4]uint32{r2, g2, b2, a2})
		}
	}
}
