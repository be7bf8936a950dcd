package loader

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rvalk/go-spriteblit/spriteblit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testImage builds an opaque NRGBA image from packed 0x00RRGGBB pixels in
// row-major order.
func testImage(t *testing.T, pixels []uint32, width int) *image.NRGBA {
	t.Helper()
	require.Equal(t, 0, len(pixels)%width, "pixel count must fill whole rows")

	height := len(pixels) / width
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := pixels[y*width+x]
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(p >> 16),
				G: uint8(p >> 8),
				B: uint8(p),
				A: 0xFF,
			})
		}
	}
	return img
}

// writePNG encodes img into dir and returns the file path.
func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestDecode(t *testing.T) {
	src := []uint32{
		0xFF00FF, 0xFF0000,
		0x00FF00, 0x0000FF,
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(t, src, 2)))

	bmp, err := Decode(&buf, spriteblit.DefaultMask)
	require.NoError(t, err)

	// PNG is lossless, so the packed pixels survive the round trip and the
	// magenta corner stays equal to the mask key.
	assert.Equal(t, 2, bmp.Width())
	assert.Equal(t, 2, bmp.Height())
	assert.Equal(t, src, bmp.Pixels())
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not an image")), spriteblit.DefaultMask)
	assert.ErrorContains(t, err, "could not decode image")
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "dot.png", testImage(t, []uint32{0xFF0000}, 1))

	bmp, err := DecodeFile(path, spriteblit.DefaultMask)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0xFF0000}, bmp.Pixels())
}

func TestDecodeFileMissing(t *testing.T) {
	_, err := DecodeFile(filepath.Join(t.TempDir(), "missing.png"), spriteblit.DefaultMask)
	assert.ErrorContains(t, err, "could not open image")
}

func TestScale(t *testing.T) {
	src := testImage(t, []uint32{
		0xFF0000, 0x00FF00,
		0x0000FF, 0xFF00FF,
	}, 2)

	scaled, err := Scale(src, 2)
	require.NoError(t, err)

	bmp, err := spriteblit.FromImage(scaled, spriteblit.DefaultMask)
	require.NoError(t, err)
	require.Equal(t, 4, bmp.Width())
	require.Equal(t, 4, bmp.Height())

	// Nearest-neighbor doubling turns each source pixel into an exact 2x2
	// block, no blended colors anywhere.
	assert.Equal(t, []uint32{
		0xFF0000, 0xFF0000, 0x00FF00, 0x00FF00,
		0xFF0000, 0xFF0000, 0x00FF00, 0x00FF00,
		0x0000FF, 0x0000FF, 0xFF00FF, 0xFF00FF,
		0x0000FF, 0x0000FF, 0xFF00FF, 0xFF00FF,
	}, bmp.Pixels())
}

func TestScaleIdentity(t *testing.T) {
	src := testImage(t, []uint32{0xFF0000}, 1)

	scaled, err := Scale(src, 1)
	require.NoError(t, err)
	assert.Same(t, image.Image(src), scaled)
}

func TestScaleRejectsBadFactor(t *testing.T) {
	src := testImage(t, []uint32{0xFF0000}, 1)

	_, err := Scale(src, 0)
	assert.ErrorContains(t, err, "invalid scale factor")

	_, err = Scale(src, -2)
	assert.ErrorContains(t, err, "invalid scale factor")

	_, err = Scale(src, 0.1)
	assert.ErrorContains(t, err, "collapses")
}
