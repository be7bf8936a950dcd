package spriteblit

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMask = uint32(0xFF00FF)
	red      = uint32(0xFF0000)
	green    = uint32(0x00FF00)
	blue     = uint32(0x0000FF)
)

func TestNewBitmap(t *testing.T) {
	tests := []struct {
		name    string
		pix     []uint32
		width   int
		wantErr bool
	}{
		{
			name:  "valid 2x2",
			pix:   []uint32{1, 2, 3, 4},
			width: 2,
		},
		{
			name:  "valid single row",
			pix:   []uint32{1, 2, 3},
			width: 3,
		},
		{
			name:  "valid single column",
			pix:   []uint32{1, 2, 3},
			width: 1,
		},
		{
			name:    "zero width",
			pix:     []uint32{1, 2},
			width:   0,
			wantErr: true,
		},
		{
			name:    "negative width",
			pix:     []uint32{1, 2},
			width:   -2,
			wantErr: true,
		},
		{
			name:    "empty pixels",
			pix:     []uint32{},
			width:   2,
			wantErr: true,
		},
		{
			name:    "pixel count not divisible by width",
			pix:     []uint32{1, 2, 3, 4, 5},
			width:   2,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBitmap(tt.pix, tt.width, testMask)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.width, b.Width())
			assert.Equal(t, len(tt.pix)/tt.width, b.Height())
			assert.Equal(t, testMask, b.Mask())
		})
	}
}

func TestBitmap_At(t *testing.T) {
	b, err := NewBitmap([]uint32{1, 2, 3, 4, 5, 6}, 3, testMask)
	require.NoError(t, err)

	assert.Equal(t, uint32(1), b.At(0, 0))
	assert.Equal(t, uint32(3), b.At(2, 0))
	assert.Equal(t, uint32(4), b.At(0, 1))
	assert.Equal(t, uint32(6), b.At(2, 1))
}

func TestFromImage(t *testing.T) {
	// 2x2 image: opaque red, transparent, barely transparent, barely opaque
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 0})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 127})
	img.SetNRGBA(1, 1, color.NRGBA{B: 255, A: 128})

	b, err := FromImage(img, testMask)
	require.NoError(t, err)

	assert.Equal(t, 2, b.Width())
	assert.Equal(t, 2, b.Height())
	assert.Equal(t, red, b.At(0, 0), "opaque pixel keeps its color")
	assert.Equal(t, testMask, b.At(1, 0), "transparent pixel becomes the mask")
	assert.Equal(t, testMask, b.At(0, 1), "alpha 127 is below the threshold")
	assert.Equal(t, blue, b.At(1, 1), "alpha 128 is opaque enough")
}

func TestFromImage_EmptyBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	_, err := FromImage(img, testMask)
	assert.Error(t, err)
}

func TestFromImage_OffsetBounds(t *testing.T) {
	// bounds not anchored at the origin still convert from their own top-left
	img := image.NewNRGBA(image.Rect(5, 7, 7, 8))
	img.SetNRGBA(5, 7, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(6, 7, color.NRGBA{G: 255, A: 255})

	b, err := FromImage(img, testMask)
	require.NoError(t, err)

	assert.Equal(t, 2, b.Width())
	assert.Equal(t, 1, b.Height())
	assert.Equal(t, red, b.At(0, 0))
	assert.Equal(t, green, b.At(1, 0))
}

func TestBitmap_Blit(t *testing.T) {
	// 2x2 bitmap with one masked corner
	sprite := []uint32{red, green, testMask, blue}

	tests := []struct {
		name string
		x, y int
		want map[[2]int]uint32 // buffer coordinates that must hold a sprite color
	}{
		{
			name: "fully inside",
			x:    1,
			y:    1,
			want: map[[2]int]uint32{
				{1, 1}: red,
				{2, 1}: green,
				{2, 2}: blue,
			},
		},
		{
			name: "clipped top left",
			x:    -1,
			y:    -1,
			want: map[[2]int]uint32{
				{0, 0}: blue, // only the bottom-right source pixel remains visible
			},
		},
		{
			name: "clipped bottom right",
			x:    3,
			y:    3,
			want: map[[2]int]uint32{
				{3, 3}: red,
			},
		},
		{
			name: "fully off screen left",
			x:    -2,
			y:    0,
			want: map[[2]int]uint32{},
		},
		{
			name: "fully off screen bottom",
			x:    0,
			y:    4,
			want: map[[2]int]uint32{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBitmap(sprite, 2, testMask)
			require.NoError(t, err)

			buf := NewPixelBuffer(4, 4)
			b.Blit(buf, tt.x, tt.y)

			for y := 0; y < 4; y++ {
				for x := 0; x < 4; x++ {
					want, ok := tt.want[[2]int{x, y}]
					if !ok {
						want = 0 // untouched background
					}
					assert.Equal(t, want, buf.At(x, y), "pixel (%d, %d)", x, y)
				}
			}
		})
	}
}

func TestBitmap_BlitMaskedPixelsLeaveBackground(t *testing.T) {
	// blit over an existing background: masked pixels must not erase it
	b, err := NewBitmap([]uint32{red, testMask}, 2, testMask)
	require.NoError(t, err)

	buf := NewPixelBuffer(2, 1)
	buf.Clear(blue)

	b.Blit(buf, 0, 0)

	assert.Equal(t, red, buf.At(0, 0), "opaque pixel overwrites")
	assert.Equal(t, blue, buf.At(1, 0), "masked pixel keeps the background")
}

func TestBitmap_BlitAllMaskIsNoOp(t *testing.T) {
	b, err := NewBitmap([]uint32{testMask, testMask, testMask, testMask}, 2, testMask)
	require.NoError(t, err)

	buf := NewPixelBuffer(4, 4)
	buf.Clear(green)
	b.Blit(buf, 1, 1)

	for i, p := range buf.Pixels() {
		assert.Equal(t, green, p, "pixel %d should be untouched", i)
	}
}
