// Package backend defines the presentation interface between a host loop
// and the platform that shows frames on a screen (or nowhere, for the
// headless backend).
package backend

import (
	"errors"

	"github.com/rvalk/go-spriteblit/spriteblit"
)

// Action is a host-level request raised by a backend, usually from user
// input. Backends translate their platform events into these; what happens
// next is the host's call.
type Action int

const (
	// ActionQuit asks the host to stop the frame loop and shut down.
	ActionQuit Action = iota
	// ActionPause asks the host to toggle scene updates.
	ActionPause
	// ActionSnapshot asks for a PNG snapshot of the current frame.
	// Backends that can save one directly handle it themselves.
	ActionSnapshot
)

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionPause:
		return "pause"
	case ActionSnapshot:
		return "snapshot"
	}
	return "unknown"
}

// Callbacks lets backends communicate with the host.
type Callbacks struct {
	// OnAction is invoked for every Action a backend raises. May be nil.
	OnAction func(Action)
}

// Config holds configuration common to all backends.
type Config struct {
	Title string
	// Width and Height are the pixel buffer dimensions, before scaling.
	Width  int
	Height int
	// Scale is the window magnification per buffer pixel. Backends without
	// a window ignore it.
	Scale     int
	Callbacks Callbacks
}

// Backend presents composited frames. The host drives it: one Update per
// frame with the freshly rendered buffer.
type Backend interface {
	// Init configures the backend. Required before the first Update.
	Init(config Config) error

	// Update presents one frame and processes platform events. Events
	// surface through the Callbacks given at Init.
	Update(buf *spriteblit.PixelBuffer) error

	// Cleanup releases platform resources.
	Cleanup() error
}

// FrameFunc produces the next frame for a backend that owns the loop.
// Returning ErrStop ends the loop cleanly.
type FrameFunc func() (*spriteblit.PixelBuffer, error)

// ErrStop is returned by a FrameFunc to end a Looper's loop without error.
var ErrStop = errors.New("stop requested")

// Looper is an optional capability for backends that must own the main
// loop instead of being driven by Update calls. Hosts should type-assert
// for it and prefer Run when present.
type Looper interface {
	Run(frame FrameFunc) error
}
