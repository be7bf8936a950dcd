// Package headless runs the presentation side without any display, for
// automated tests, CI and benchmarks.
package headless

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rvalk/go-spriteblit/spriteblit"
	"github.com/rvalk/go-spriteblit/spriteblit/backend"
)

// Backend counts frames, optionally saves periodic PNG snapshots and raises
// ActionQuit once the frame budget is spent.
type Backend struct {
	config         backend.Config
	frameCount     int
	maxFrames      int
	snapshotConfig SnapshotConfig
}

// SnapshotConfig holds configuration for frame snapshots
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // Save snapshot every N frames
	Directory string // Directory to save snapshots
	BaseName  string // Base name for snapshot files
}

func New(maxFrames int, snapshotConfig SnapshotConfig) *Backend {
	return &Backend{
		maxFrames:      maxFrames,
		snapshotConfig: snapshotConfig,
	}
}

func (h *Backend) Init(config backend.Config) error {
	h.config = config

	slog.Info("Running headless mode",
		"frames", h.maxFrames,
		"snapshot_interval", h.snapshotConfig.Interval,
		"snapshot_dir", h.snapshotConfig.Directory)

	return nil
}

// Update counts a frame, handles snapshots and signals completion.
func (h *Backend) Update(buf *spriteblit.PixelBuffer) error {
	h.frameCount++

	if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval == 0 {
		h.saveSnapshot(buf)
	}

	// Log progress periodically
	if h.frameCount%10 == 0 {
		slog.Info("Frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}

	if h.maxFrames > 0 && h.frameCount >= h.maxFrames {
		// Save a final snapshot unless one was just written
		if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval != 0 {
			h.saveSnapshot(buf)
		}

		if h.snapshotConfig.Enabled {
			slog.Info("Headless run completed", "frames", h.maxFrames, "snapshots_saved_to", h.snapshotConfig.Directory)
		} else {
			slog.Info("Headless run completed", "frames", h.maxFrames)
		}

		if h.config.Callbacks.OnAction != nil {
			h.config.Callbacks.OnAction(backend.ActionQuit)
		}
	}

	return nil
}

func (h *Backend) Cleanup() error {
	return nil
}

// FrameCount reports how many frames have been presented.
func (h *Backend) FrameCount() int {
	return h.frameCount
}

// CreateSnapshotConfig builds a snapshot configuration from CLI parameters.
// An interval of 0 disables snapshots; an empty directory gets a temp dir.
func CreateSnapshotConfig(interval int, directory, sourcePath string) (SnapshotConfig, error) {
	config := SnapshotConfig{
		Enabled:  interval > 0,
		Interval: interval,
	}

	if !config.Enabled {
		return config, nil
	}

	if directory == "" {
		tempDir, err := os.MkdirTemp("", "spriteblit-snapshots-*")
		if err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %v", err)
		}
		config.Directory = tempDir
	} else {
		if err := os.MkdirAll(directory, 0755); err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %v", err)
		}
		config.Directory = directory
	}

	// Name snapshots after the sprite source file
	config.BaseName = filepath.Base(sourcePath)
	config.BaseName = strings.TrimSuffix(config.BaseName, filepath.Ext(config.BaseName))
	if config.BaseName == "" || config.BaseName == "." {
		config.BaseName = "frame"
	}

	return config, nil
}

func (h *Backend) saveSnapshot(buf *spriteblit.PixelBuffer) {
	pngBaseName := fmt.Sprintf("%s_frame_%d", h.snapshotConfig.BaseName, h.frameCount)

	if _, err := backend.SavePNG(buf, pngBaseName, h.snapshotConfig.Directory); err != nil {
		slog.Error("Failed to save PNG snapshot", "frame", h.frameCount, "error", err)
	}
}
