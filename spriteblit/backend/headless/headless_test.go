package headless_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rvalk/go-spriteblit/spriteblit"
	"github.com/rvalk/go-spriteblit/spriteblit/backend"
	"github.com/rvalk/go-spriteblit/spriteblit/backend/headless"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadlessBackend(t *testing.T) {
	t.Run("quits at the frame budget", func(t *testing.T) {
		h := headless.New(3, headless.SnapshotConfig{})

		var quits int
		config := backend.Config{
			Title: "Test",
			Callbacks: backend.Callbacks{
				OnAction: func(act backend.Action) {
					if act == backend.ActionQuit {
						quits++
					}
				},
			},
		}
		require.NoError(t, h.Init(config))

		buf := spriteblit.NewPixelBuffer(8, 8)
		for i := 0; i < 3; i++ {
			require.NoError(t, h.Update(buf))
			if i < 2 {
				// Should not quit before reaching max frames
				assert.Equal(t, 0, quits)
			}
		}

		assert.Equal(t, 1, quits)
		assert.Equal(t, 3, h.FrameCount())
		assert.NoError(t, h.Cleanup())
	})

	t.Run("runs without callbacks", func(t *testing.T) {
		h := headless.New(1, headless.SnapshotConfig{})
		require.NoError(t, h.Init(backend.Config{}))

		assert.NoError(t, h.Update(spriteblit.NewPixelBuffer(4, 4)))
	})

	t.Run("saves periodic snapshots", func(t *testing.T) {
		dir := t.TempDir()
		h := headless.New(5, headless.SnapshotConfig{
			Enabled:   true,
			Interval:  2,
			Directory: dir,
			BaseName:  "test",
		})
		require.NoError(t, h.Init(backend.Config{}))

		buf := spriteblit.NewPixelBuffer(4, 4)
		buf.Clear(0xFF0000)
		for i := 0; i < 5; i++ {
			require.NoError(t, h.Update(buf))
		}

		// Frames 2 and 4 hit the interval, frame 5 is the final frame.
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})
}

func TestCreateSnapshotConfig(t *testing.T) {
	t.Run("disabled when interval is zero", func(t *testing.T) {
		config, err := headless.CreateSnapshotConfig(0, "", "sprite.png")
		require.NoError(t, err)
		assert.False(t, config.Enabled)
	})

	t.Run("uses the source file stem", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "snaps")

		config, err := headless.CreateSnapshotConfig(10, dir, "assets/ship.png")
		require.NoError(t, err)
		assert.True(t, config.Enabled)
		assert.Equal(t, 10, config.Interval)
		assert.Equal(t, dir, config.Directory)
		assert.Equal(t, "ship", config.BaseName)
		assert.DirExists(t, dir)
	})

	t.Run("falls back to a temp directory", func(t *testing.T) {
		config, err := headless.CreateSnapshotConfig(1, "", "")
		require.NoError(t, err)
		defer os.RemoveAll(config.Directory)

		assert.True(t, config.Enabled)
		assert.NotEmpty(t, config.Directory)
		assert.Equal(t, "frame", config.BaseName)
	})
}

func TestHeadlessImplementsBackend(t *testing.T) {
	// Compile-time check that headless.Backend implements backend.Backend
	var _ backend.Backend = (*headless.Backend)(nil)
}
