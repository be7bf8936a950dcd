package loader

import (
	"testing"

	"github.com/rvalk/go-spriteblit/spriteblit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestPattern(t *testing.T) {
	const (
		m = uint32(0xFF00FF)
		y = uint32(0xFFD700)
		r = uint32(0xFF0000)
	)

	bmp, err := TestPattern(4, m)
	require.NoError(t, err)
	require.Equal(t, 4, bmp.Width())
	require.Equal(t, 4, bmp.Height())

	// Arrowhead triangle on top, shaft below, mask everywhere else.
	assert.Equal(t, []uint32{
		m, y, y, m,
		y, y, y, y,
		m, r, r, m,
		m, r, r, m,
	}, bmp.Pixels())
}

func TestTestPatternLargeSize(t *testing.T) {
	bmp, err := TestPattern(32, spriteblit.DefaultMask)
	require.NoError(t, err)
	assert.Equal(t, 32, bmp.Width())

	// The arrow must contain opaque pixels of both colors.
	var heads, shafts int
	for _, p := range bmp.Pixels() {
		switch p {
		case 0xFFD700:
			heads++
		case 0xFF0000:
			shafts++
		}
	}
	assert.Greater(t, heads, 0)
	assert.Greater(t, shafts, 0)

	// The apex row holds just the two center pixels, and the narrow shaft
	// leaves the side columns masked on the bottom half.
	top := bmp.Pixels()[:32]
	assert.Equal(t, uint32(0xFFD700), top[15])
	assert.Equal(t, uint32(0xFFD700), top[16])
	assert.Equal(t, spriteblit.DefaultMask, top[14])
	assert.Equal(t, spriteblit.DefaultMask, top[17])

	for row := 16; row < 32; row++ {
		assert.Equal(t, spriteblit.DefaultMask, bmp.Pixels()[row*32], "left column row %d", row)
		assert.Equal(t, spriteblit.DefaultMask, bmp.Pixels()[row*32+31], "right column row %d", row)
	}
}

func TestTestPatternRejectsTinySize(t *testing.T) {
	_, err := TestPattern(3, spriteblit.DefaultMask)
	assert.ErrorContains(t, err, "too small")
}
