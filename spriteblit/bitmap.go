package spriteblit

import (
	"fmt"
	"image"
	"image/color"
)

// DefaultMask is the conventional transparency key, pure magenta.
const DefaultMask uint32 = 0xFF00FF

// Bitmap is a fixed-size raster with one designated mask color. Pixels are
// packed 0x00RRGGBB; a pixel equal to the mask is transparent to Blit. A
// Bitmap is immutable once constructed and safe to share across goroutines.
type Bitmap struct {
	width  int
	height int
	mask   uint32
	pix    []uint32
}

// NewBitmap wraps raw row-major pixels into a Bitmap. The pixel count must
// be a positive multiple of width.
func NewBitmap(pix []uint32, width int, mask uint32) (*Bitmap, error) {
	if width <= 0 {
		return nil, fmt.Errorf("bitmap width must be positive, got %d", width)
	}
	if len(pix) == 0 {
		return nil, fmt.Errorf("bitmap has no pixels")
	}
	if len(pix)%width != 0 {
		return nil, fmt.Errorf("pixel count %d is not a multiple of width %d", len(pix), width)
	}

	return &Bitmap{
		width:  width,
		height: len(pix) / width,
		mask:   mask,
		pix:    pix,
	}, nil
}

// FromImage converts a decoded image into a Bitmap. Pixels that are less
// than half opaque become the mask color, everything else keeps its RGB
// value. Partial alpha does not survive: blitting is binary.
func FromImage(img image.Image, mask uint32) (*Bitmap, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("image has empty bounds %v", bounds)
	}

	pix := make([]uint32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			if c.A < 128 {
				pix[y*w+x] = mask
				continue
			}
			pix[y*w+x] = uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
		}
	}

	return NewBitmap(pix, w, mask)
}

func (b *Bitmap) Width() int   { return b.width }
func (b *Bitmap) Height() int  { return b.height }
func (b *Bitmap) Mask() uint32 { return b.mask }

// At returns the pixel at (x, y).
func (b *Bitmap) At(x, y int) uint32 {
	return b.pix[y*b.width+x]
}

// Pixels returns the backing slice, row-major. Callers must not modify it.
func (b *Bitmap) Pixels() []uint32 {
	return b.pix
}

// Blit copies the bitmap into dst with its top-left corner at (x, y).
// Pixels equal to the mask color are skipped and parts outside the buffer
// are clipped; a fully off-screen blit is a no-op.
func (b *Bitmap) Blit(dst *PixelBuffer, x, y int) {
	srcX, srcY := 0, 0
	w, h := b.width, b.height
	if x < 0 {
		srcX = -x
		w += x
		x = 0
	}
	if y < 0 {
		srcY = -y
		h += y
		y = 0
	}
	if x+w > dst.width {
		w = dst.width - x
	}
	if y+h > dst.height {
		h = dst.height - y
	}
	if w <= 0 || h <= 0 {
		return
	}

	for row := 0; row < h; row++ {
		si := (srcY+row)*b.width + srcX
		di := (y+row)*dst.width + x
		for col := 0; col < w; col++ {
			if c := b.pix[si+col]; c != b.mask {
				dst.pix[di+col] = c
			}
		}
	}
}
