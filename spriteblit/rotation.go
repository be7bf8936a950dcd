package spriteblit

import "fmt"

// Bake pre-renders evenly spaced rotated variants of src and inserts them
// into the store. Variant r covers angles from r*(360/rotations) up to the
// next step; variant 0 is always the unrotated bitmap with offset (0, 0).
// A rotations count below 1 bakes the single unrotated variant. Baking is
// deterministic: the same bitmap and count always produce pixel-identical
// variants.
//
// Baking fails fast: the first rotation error aborts the bake and no
// SpriteRef is returned. Variants inserted before the failure stay in the
// store, since the arena is append-only and never rolls back.
func (s *Store) Bake(src *Bitmap, rotations int) (*SpriteRef, error) {
	if rotations < 1 {
		rotations = 1
	}
	divisor := 360.0 / float64(rotations)

	ref := &SpriteRef{
		divisor:  divisor,
		variants: make([]RotationVariant, 0, rotations),
	}
	for r := 0; r < rotations; r++ {
		angle := float64(r) * divisor
		w, h, pix, err := Rotate(src.pix, src.width, src.mask, angle)
		if err != nil {
			return nil, fmt.Errorf("bake rotation %g: %w", angle, err)
		}
		rotated, err := NewBitmap(pix, w, src.mask)
		if err != nil {
			return nil, fmt.Errorf("bake rotation %g: %w", angle, err)
		}
		ref.variants = append(ref.variants, RotationVariant{
			Bitmap:  s.Insert(rotated),
			OffsetX: (src.width - w) / 2,
			OffsetY: (src.height - h) / 2,
		})
	}

	return ref, nil
}
