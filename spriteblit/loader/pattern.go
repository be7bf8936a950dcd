package loader

import (
	"fmt"

	"github.com/rvalk/go-spriteblit/spriteblit"
)

const (
	patternHeadColor  = 0xFFD700
	patternShaftColor = 0xFF0000
)

// TestPattern draws a built-in upward arrow on a masked background, for
// checking the rendering pipeline without any image file. The asymmetric
// shape makes every rotation variant visually distinct.
func TestPattern(size int, mask uint32) (*spriteblit.Bitmap, error) {
	if size < 4 {
		return nil, fmt.Errorf("test pattern size %d too small, need at least 4", size)
	}

	pix := make([]uint32, size*size)
	half := size / 2
	shaft := size / 4

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// Distance from the vertical center line, doubled to stay in
			// integers for even sizes.
			d := 2*x + 1 - size
			if d < 0 {
				d = -d
			}

			c := mask
			if y < half {
				// Arrowhead: triangle widening toward the middle row.
				if d <= 2*y+1 {
					c = patternHeadColor
				}
			} else {
				if d <= shaft {
					c = patternShaftColor
				}
			}
			pix[y*size+x] = c
		}
	}

	return spriteblit.NewBitmap(pix, size, mask)
}
