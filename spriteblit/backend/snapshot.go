package backend

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rvalk/go-spriteblit/spriteblit"
	"github.com/rvalk/go-spriteblit/spriteblit/display"
)

// SavePNG writes buf as a timestamped PNG into directory and returns the
// file path. An empty directory means the current working directory.
func SavePNG(buf *spriteblit.PixelBuffer, baseName, directory string) (string, error) {
	w, h := buf.Width(), buf.Height()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, p := range buf.Pixels() {
		idx := i * display.RGBABytesPerPixel
		r, g, b := display.Unpack(p)
		img.Pix[idx] = r
		img.Pix[idx+1] = g
		img.Pix[idx+2] = b
		img.Pix[idx+3] = display.FullAlpha
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.png", baseName, timestamp)

	if directory == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %v", err)
		}
		directory = cwd
	}

	filePath := filepath.Join(directory, filename)
	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %v", filePath, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %v", err)
	}

	slog.Info("Snapshot saved", "path", filePath, "size", fmt.Sprintf("%dx%d", w, h))
	return filePath, nil
}
