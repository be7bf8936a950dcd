// Package loader decodes image files into bitmaps and bakes whole sprite
// sets from YAML manifests.
package loader

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"

	"github.com/rvalk/go-spriteblit/spriteblit"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

// Decode reads a single image from r and converts it into a bitmap keyed
// on mask. PNG, GIF, JPEG, BMP, TIFF and WebP decoders are registered.
func Decode(r io.Reader, mask uint32) (*spriteblit.Bitmap, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}
	return spriteblit.FromImage(img, mask)
}

// DecodeFile decodes the image at path into a bitmap keyed on mask.
func DecodeFile(path string, mask uint32) (*spriteblit.Bitmap, error) {
	img, err := decodeImage(path)
	if err != nil {
		return nil, err
	}
	return spriteblit.FromImage(img, mask)
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode image %q: %w", path, err)
	}
	return img, nil
}

// Scale resizes img by factor using nearest-neighbor sampling. Nearest
// keeps every output pixel an exact copy of some source pixel, so
// color-key masks survive the resize.
func Scale(img image.Image, factor float64) (image.Image, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("invalid scale factor: %g", factor)
	}
	if factor == 1 {
		return img, nil
	}

	bounds := img.Bounds()
	w := int(math.Round(float64(bounds.Dx()) * factor))
	h := int(math.Round(float64(bounds.Dy()) * factor))
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("scale factor %g collapses %dx%d image", factor, bounds.Dx(), bounds.Dy())
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst, nil
}
