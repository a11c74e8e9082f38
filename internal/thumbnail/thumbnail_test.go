package thumbnail

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodePNG builds a w×h image whose left half is red and right half is blue.
func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: 255, A: 255}
			if x >= w/2 {
				c = color.RGBA{B: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestMakeSquareFromWideImage(t *testing.T) {
	out, err := Make(encodePNG(t, 200, 50), 32)
	require.NoError(t, err)

	w, h := decodeSize(t, out)
	assert.Equal(t, 32, w)
	assert.Equal(t, 32, h)
}

func TestMakeSquareFromTallImage(t *testing.T) {
	out, err := Make(encodePNG(t, 40, 300), 32)
	require.NoError(t, err)

	w, h := decodeSize(t, out)
	assert.Equal(t, 32, w)
	assert.Equal(t, 32, h)
}

func TestCenterCropKeepsMiddle(t *testing.T) {
	// A 200×50 red|blue image scaled to fill 32×32 crops to the horizontal
	// middle, so both halves must survive: red on the left, blue on the right.
	out, err := Make(encodePNG(t, 200, 50), 32)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	r, _, _, _ := img.At(2, 16).RGBA()
	_, _, b, _ := img.At(29, 16).RGBA()
	assert.Greater(t, r, uint32(0x8000), "left edge should still be red")
	assert.Greater(t, b, uint32(0x8000), "right edge should still be blue")
}

func TestMakeDefaultsSize(t *testing.T) {
	out, err := Make(encodePNG(t, 10, 10), 0)
	require.NoError(t, err)
	w, h := decodeSize(t, out)
	assert.Equal(t, DefaultSize, w)
	assert.Equal(t, DefaultSize, h)
}

func TestMakeRejectsGarbage(t *testing.T) {
	_, err := Make([]byte("not a png"), 32)
	assert.Error(t, err)
}
