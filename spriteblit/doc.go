// Package spriteblit pre-renders rotated sprite variants at load time and
// composites them into a flat pixel buffer with color-keyed blitting.
//
// The package has no threading of its own: the host drives Render once per
// frame, and the Store's lock is what lets loading goroutines bake sprites
// while a frame is being drawn.
package spriteblit
