// Package ebitengine presents frames in an Ebitengine window. Unlike the
// other backends it owns the main loop: ebiten.RunGame does not return
// until the game ends, so hosts drive it through the Looper interface
// instead of per-frame Update calls.
package ebitengine

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/rvalk/go-spriteblit/spriteblit"
	"github.com/rvalk/go-spriteblit/spriteblit/backend"
	"github.com/rvalk/go-spriteblit/spriteblit/display"
)

// Backend implements backend.Backend and backend.Looper on top of
// Ebitengine.
type Backend struct {
	config backend.Config
	frame  backend.FrameFunc
	rgba   []byte
}

// New creates a new Ebitengine backend.
func New() *Backend {
	return &Backend{}
}

// Init stores the configuration and sets up the window.
func (e *Backend) Init(config backend.Config) error {
	e.config = config

	scale := config.Scale
	if scale < 1 {
		scale = display.DefaultPixelScale
	}
	ebiten.SetWindowSize(config.Width*scale, config.Height*scale)
	ebiten.SetWindowTitle(config.Title)

	e.rgba = make([]byte, config.Width*config.Height*display.RGBABytesPerPixel)
	return nil
}

// Update cannot drive this backend; the window only exists inside Run.
func (e *Backend) Update(buf *spriteblit.PixelBuffer) error {
	return fmt.Errorf("ebitengine backend owns the main loop, drive it with Run")
}

// Cleanup releases nothing; Ebitengine tears down with RunGame.
func (e *Backend) Cleanup() error {
	return nil
}

// Run hands control to Ebitengine, calling frame once per tick until the
// frame func returns backend.ErrStop or the window is closed.
func (e *Backend) Run(frame backend.FrameFunc) error {
	e.frame = frame

	err := ebiten.RunGame(&game{backend: e})
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("ebitengine loop failed: %w", err)
	}
	return nil
}

func (e *Backend) raise(a backend.Action) {
	if e.config.Callbacks.OnAction != nil {
		e.config.Callbacks.OnAction(a)
	}
}

// game adapts the backend to the ebiten.Game interface.
type game struct {
	backend *Backend
}

func (g *game) Update() error {
	e := g.backend

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		e.raise(backend.ActionQuit)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		e.raise(backend.ActionPause)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		e.raise(backend.ActionSnapshot)
	}

	buf, err := e.frame()
	if err != nil {
		if errors.Is(err, backend.ErrStop) {
			return ebiten.Termination
		}
		return err
	}

	for i, p := range buf.Pixels() {
		idx := i * display.RGBABytesPerPixel
		r, gg, b := display.Unpack(p)
		e.rgba[idx] = r
		e.rgba[idx+1] = gg
		e.rgba[idx+2] = b
		e.rgba[idx+3] = display.FullAlpha
	}

	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.backend.rgba)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.backend.config.Width, g.backend.config.Height
}
