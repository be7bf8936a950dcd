package spriteblit

// RotationVariant is one pre-rendered orientation of a sprite: the stored
// bitmap plus the offset that keeps the rotated raster centered over the
// original footprint.
type RotationVariant struct {
	Bitmap  Handle
	OffsetX int
	OffsetY int
}

// SpriteRef is the immutable result of a bake: the baked variants in
// angular order and the step between them. A SpriteRef is cheap to share;
// any number of Sprites may point at the same one.
type SpriteRef struct {
	divisor  float64
	variants []RotationVariant
}

// Rotations returns the number of baked variants.
func (r *SpriteRef) Rotations() int {
	return len(r.variants)
}

// Divisor returns the angular step between variants in degrees.
func (r *SpriteRef) Divisor() float64 {
	return r.divisor
}

// Variant resolves an angle in degrees to a baked variant by truncating
// division: angles inside step k map to variant k. Anything that lands
// outside the baked range, like an exact 360, falls back to variant 0.
// Variant never panics on bad angles.
func (r *SpriteRef) Variant(angle float64) RotationVariant {
	idx := int(angle / r.divisor)
	if idx < 0 || idx >= len(r.variants) {
		return r.variants[0]
	}
	return r.variants[idx]
}

// NormalizeAngle brings an angle into rotation range by adding or
// subtracting full turns. An input of exactly 360 passes through unchanged;
// Variant resolves it to variant 0.
func NormalizeAngle(deg float64) float64 {
	for deg < 0 {
		deg += 360
	}
	for deg > 360 {
		deg -= 360
	}
	return deg
}

// Sprite places a SpriteRef on screen: a position in buffer coordinates and
// a rotation in degrees. The zero rotation shows variant 0. Sprites carry no
// draw state of their own; Render reads them every frame.
type Sprite struct {
	ref *SpriteRef
	x   int
	y   int
	rot float64
}

// NewSprite creates a placement at the origin with no rotation.
func NewSprite(ref *SpriteRef) *Sprite {
	return &Sprite{ref: ref}
}

// Ref returns the baked sprite this placement draws.
func (s *Sprite) Ref() *SpriteRef {
	return s.ref
}

// SetPos moves the sprite. Coordinates may be negative or past the buffer
// edge; compositing clips.
func (s *Sprite) SetPos(x, y int) {
	s.x = x
	s.y = y
}

// Pos returns the current position.
func (s *Sprite) Pos() (int, int) {
	return s.x, s.y
}

// SetRotation sets the rotation in degrees, normalized into rotation range.
func (s *Sprite) SetRotation(deg float64) {
	s.rot = NormalizeAngle(deg)
}

// Rotation returns the current rotation in degrees.
func (s *Sprite) Rotation() float64 {
	return s.rot
}
