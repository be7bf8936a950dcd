package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rvalk/go-spriteblit/spriteblit"
	"github.com/rvalk/go-spriteblit/spriteblit/backend"
	"github.com/rvalk/go-spriteblit/spriteblit/backend/ebitengine"
	"github.com/rvalk/go-spriteblit/spriteblit/backend/headless"
	"github.com/rvalk/go-spriteblit/spriteblit/backend/sdl2"
	"github.com/rvalk/go-spriteblit/spriteblit/backend/terminal"
	"github.com/rvalk/go-spriteblit/spriteblit/display"
	"github.com/rvalk/go-spriteblit/spriteblit/loader"
	"github.com/rvalk/go-spriteblit/spriteblit/timing"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "spriteblit"
	app.Description = "Bakes rotated sprite variants and composites a bouncing demo scene"
	app.Usage = "spriteblit [options] <image file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "image",
			Usage: "Path to the sprite image",
		},
		cli.StringFlag{
			Name:  "manifest",
			Usage: "Path to a YAML sprite manifest (alternative to a single image)",
		},
		cli.IntFlag{
			Name:  "rotations",
			Usage: "Number of rotation variants to bake",
			Value: 16,
		},
		cli.StringFlag{
			Name:  "mask",
			Usage: "Transparency key color as hex RRGGBB",
			Value: "FF00FF",
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "Display backend: terminal, ebitengine, sdl2 or headless",
		},
		cli.IntFlag{
			Name:  "scale",
			Usage: "Window pixels per buffer pixel",
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "Frame buffer width in pixels",
			Value: display.DefaultBufferWidth,
		},
		cli.IntFlag{
			Name:  "height",
			Usage: "Frame buffer height in pixels",
			Value: display.DefaultBufferHeight,
		},
		cli.IntFlag{
			Name:  "sprites",
			Usage: "Number of sprite placements in the demo scene",
			Value: 8,
		},
		cli.Float64Flag{
			Name:  "fps",
			Usage: "Frame rate limit",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
			Value: 0,
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.BoolFlag{
			Name:  "test-pattern",
			Usage: "Use a built-in test sprite instead of an image file",
		},
		cli.BoolFlag{
			Name:  "mute",
			Usage: "Disable audio",
		},
		cli.BoolFlag{
			Name:  "no-save-settings",
			Usage: "Do not load or persist backend/scale/fps choices",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
	}
	app.Action = runDemo

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running demo", "error", err)
		os.Exit(1)
	}
}

func runDemo(c *cli.Context) error {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	settings := loadSettings(!c.Bool("no-save-settings"))
	settings.applyFlags(c)
	defer func() {
		if err := settings.save(); err != nil {
			slog.Warn("Could not save settings", "error", err)
		}
	}()

	width := c.Int("width")
	height := c.Int("height")
	if width < 1 || height < 1 {
		return fmt.Errorf("invalid buffer size %dx%d", width, height)
	}

	store := spriteblit.NewStore()
	refs, sourcePath, err := loadSprites(c, store)
	if err != nil {
		return err
	}
	slog.Info("Sprites baked", "sprites", len(refs), "bitmaps", store.Len())

	sounds := newSoundBoard()
	if !settings.Values.Mute {
		if err := sounds.Init(); err != nil {
			// Non-fatal, the demo can run without sound
			slog.Warn("Audio initialization failed, continuing without sound", "error", err)
		}
	}
	defer sounds.Cleanup()

	buf := spriteblit.NewPixelBuffer(width, height)
	sc := newScene(store, refs, width, height, c.Int("sprites"), sounds.PlayBounce)

	baseName := filepath.Base(sourcePath)
	baseName = strings.TrimSuffix(baseName, filepath.Ext(baseName))
	if baseName == "" || baseName == "." {
		baseName = "frame"
	}
	snapshotDir := c.String("snapshot-dir")
	if snapshotDir != "" {
		if err := os.MkdirAll(snapshotDir, 0755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %v", err)
		}
	}

	running := true
	paused := false
	cfg := backend.Config{
		Title:  "spriteblit",
		Width:  width,
		Height: height,
		Scale:  settings.Values.Scale,
		Callbacks: backend.Callbacks{
			OnAction: func(act backend.Action) {
				switch act {
				case backend.ActionQuit:
					running = false
				case backend.ActionPause:
					paused = !paused
					slog.Info("Pause toggled", "paused", paused)
				case backend.ActionSnapshot:
					path, err := backend.SavePNG(buf, baseName, snapshotDir)
					if err != nil {
						slog.Error("Failed to save snapshot", "error", err)
					} else {
						slog.Info("Saved snapshot", "path", path)
					}
				}
			},
		},
	}

	b, err := selectBackend(settings.Values.Backend, c, sourcePath)
	if err != nil {
		return err
	}
	if err := b.Init(cfg); err != nil {
		return err
	}
	defer func() {
		if err := b.Cleanup(); err != nil {
			slog.Error("Backend cleanup failed", "error", err)
		}
	}()

	dt := float32(1.0 / settings.Values.FPS)
	frame := func() (*spriteblit.PixelBuffer, error) {
		if !running {
			return nil, backend.ErrStop
		}
		if !paused {
			sc.update(dt)
		}
		sc.render(buf)
		return buf, nil
	}

	// Backends like Ebitengine own the main loop; everything else is
	// driven by the host at a fixed rate.
	if looper, ok := b.(backend.Looper); ok {
		return looper.Run(frame)
	}

	var limiter timing.Limiter
	if settings.Values.Backend == "headless" {
		limiter = timing.NewNoOpLimiter()
	} else {
		limiter = timing.NewAdaptiveLimiter(settings.Values.FPS)
	}

	for running {
		if _, err := frame(); err != nil {
			if errors.Is(err, backend.ErrStop) {
				break
			}
			return err
		}
		if err := b.Update(buf); err != nil {
			return err
		}
		limiter.WaitForNextFrame()
	}
	return nil
}

// testPatternSize is the edge length of the built-in arrow sprite.
const testPatternSize = 32

// loadSprites bakes everything the command line asks for into the store
// and reports the source path snapshots will be named after.
func loadSprites(c *cli.Context, store *spriteblit.Store) (map[string]*spriteblit.SpriteRef, string, error) {
	if c.Bool("test-pattern") {
		slog.Info("Using built-in test pattern sprite")
		bmp, err := loader.TestPattern(testPatternSize, spriteblit.DefaultMask)
		if err != nil {
			return nil, "", err
		}
		ref, err := store.Bake(bmp, c.Int("rotations"))
		if err != nil {
			return nil, "", err
		}
		return map[string]*spriteblit.SpriteRef{"pattern": ref}, "test-pattern", nil
	}

	if manifestPath := c.String("manifest"); manifestPath != "" {
		refs, err := loader.LoadManifest(manifestPath, store)
		if err != nil {
			return nil, "", err
		}
		return refs, manifestPath, nil
	}

	imagePath := c.String("image")
	if imagePath == "" {
		if c.NArg() > 0 {
			imagePath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return nil, "", errors.New("no image or manifest provided")
		}
	}

	mask, err := loader.ParseMask(c.String("mask"))
	if err != nil {
		return nil, "", err
	}

	bmp, err := loader.DecodeFile(imagePath, mask)
	if err != nil {
		return nil, "", err
	}

	ref, err := store.Bake(bmp, c.Int("rotations"))
	if err != nil {
		return nil, "", err
	}

	name := filepath.Base(imagePath)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return map[string]*spriteblit.SpriteRef{name: ref}, imagePath, nil
}

func selectBackend(name string, c *cli.Context, sourcePath string) (backend.Backend, error) {
	switch name {
	case "headless":
		frames := c.Int("frames")
		if frames <= 0 {
			return nil, errors.New("headless mode requires --frames option with a positive value")
		}

		snapshotConfig, err := headless.CreateSnapshotConfig(c.Int("snapshot-interval"), c.String("snapshot-dir"), sourcePath)
		if err != nil {
			return nil, err
		}
		return headless.New(frames, snapshotConfig), nil
	case "terminal":
		return terminal.New(), nil
	case "ebitengine":
		return ebitengine.New(), nil
	case "sdl2":
		return sdl2.New(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}
