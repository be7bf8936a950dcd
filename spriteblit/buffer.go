package spriteblit

// PixelBuffer is the flat destination raster for a frame, packed 0x00RRGGBB
// row-major. The host owns it: Render writes it, a presentation backend
// reads it, and nothing inside this package retains it between calls.
type PixelBuffer struct {
	width  int
	height int
	pix    []uint32
}

// NewPixelBuffer creates a zeroed buffer with the given dimensions.
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		width:  width,
		height: height,
		pix:    make([]uint32, width*height),
	}
}

func (p *PixelBuffer) Width() int  { return p.width }
func (p *PixelBuffer) Height() int { return p.height }

// At returns the pixel at (x, y).
func (p *PixelBuffer) At(x, y int) uint32 {
	return p.pix[y*p.width+x]
}

// Clear fills the whole buffer with one color.
func (p *PixelBuffer) Clear(color uint32) {
	for i := range p.pix {
		p.pix[i] = color
	}
}

// Pixels returns the backing slice for presentation. Compositing writes it
// in place, so the slice stays valid across frames.
func (p *PixelBuffer) Pixels() []uint32 {
	return p.pix
}
