package spriteblit

// Render composites sprites into buf in slice order. Each sprite resolves
// its current angle to a baked variant, fetches the variant's bitmap from
// the store and blits it at the sprite position plus the centering offset.
// The buffer is not cleared first. Overlap resolves by plain overwrite, so
// order only matters where sprites overlap. Nil entries are skipped.
func Render(buf *PixelBuffer, store *Store, sprites []*Sprite) {
	for _, sprite := range sprites {
		if sprite == nil || sprite.ref == nil {
			continue
		}
		v := sprite.ref.Variant(sprite.rot)
		b := store.Get(v.Bitmap)
		b.Blit(buf, sprite.x+v.OffsetX, sprite.y+v.OffsetY)
	}
}
