//go:build sdl2

// Package sdl2 presents frames in an SDL2 window via a streaming texture.
package sdl2

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/rvalk/go-spriteblit/spriteblit"
	"github.com/rvalk/go-spriteblit/spriteblit/backend"
	"github.com/rvalk/go-spriteblit/spriteblit/display"
)

// Backend implements the Backend interface using SDL2 bindings.
// Note: building this requires SDL2 development libraries installed.
// Default builds skip this and use a stubbed backend, see build tags (sdl2)
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	running  bool
	config   backend.Config
	pixels   []byte
}

// New creates a new SDL2 backend
func New() *Backend {
	return &Backend{}
}

// Init initializes the SDL2 backend
func (s *Backend) Init(config backend.Config) error {
	s.config = config

	scale := config.Scale
	if scale < 1 {
		scale = display.DefaultPixelScale
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %v", err)
	}

	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(config.Width*scale),
		int32(config.Height*scale),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %v", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %v", err)
	}
	s.renderer = renderer

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(config.Width),
		int32(config.Height),
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create texture: %v", err)
	}
	s.texture = texture

	s.pixels = make([]byte, config.Width*config.Height*display.RGBABytesPerPixel)
	s.running = true

	slog.Info("SDL2 backend initialized")
	return nil
}

// Update renders a frame and processes events
func (s *Backend) Update(buf *spriteblit.PixelBuffer) error {
	if !s.running {
		return nil
	}

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		s.handleEvent(event)
	}

	if !s.running {
		return nil
	}

	s.renderFrame(buf)
	return nil
}

// Cleanup cleans up SDL2 resources
func (s *Backend) Cleanup() error {
	slog.Info("Cleaning up SDL2 backend")

	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()

	return nil
}

// keyMapping maps SDL2 keys to actions
var keyMapping = map[sdl.Keycode]backend.Action{
	sdl.K_ESCAPE: backend.ActionQuit,
	sdl.K_q:      backend.ActionQuit,
	sdl.K_SPACE:  backend.ActionPause,
	sdl.K_s:      backend.ActionSnapshot,
	sdl.K_F12:    backend.ActionSnapshot,
}

func (s *Backend) raise(a backend.Action) {
	if s.config.Callbacks.OnAction != nil {
		s.config.Callbacks.OnAction(a)
	}
}

func (s *Backend) handleEvent(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		s.running = false
		s.raise(backend.ActionQuit)

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			return
		}
		if act, exists := keyMapping[e.Keysym.Sym]; exists {
			if act == backend.ActionQuit {
				s.running = false
			}
			s.raise(act)
		}
	}
}

func (s *Backend) renderFrame(buf *spriteblit.PixelBuffer) {
	// ABGR byte order for little-endian RGBA8888
	for i, p := range buf.Pixels() {
		idx := i * display.RGBABytesPerPixel
		r, g, b := display.Unpack(p)
		s.pixels[idx] = display.FullAlpha
		s.pixels[idx+1] = b
		s.pixels[idx+2] = g
		s.pixels[idx+3] = r
	}

	s.texture.Update(nil, unsafe.Pointer(&s.pixels[0]), buf.Width()*display.RGBABytesPerPixel)

	s.renderer.SetDrawColor(0, 0, 0, display.FullAlpha)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
}
