package main

import (
	"math/rand"
	"sort"

	"github.com/rvalk/go-spriteblit/spriteblit"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const backgroundColor = 0x101018

// demoSprite is one bouncing, spinning placement in the scene. Position and
// velocity live in floats; the sprite itself only stores integer pixels.
type demoSprite struct {
	sprite *spriteblit.Sprite
	x, y   float64
	vx, vy float64 // pixels per second
	spin   float64 // degrees per second
	angle  float64
	w, h   int
	entry  *gween.Tween // drop-in animation, nil once landed
}

type scene struct {
	store    *spriteblit.Store
	width    int
	height   int
	sprites  []*demoSprite
	order    []*spriteblit.Sprite
	onBounce func()
}

// newScene spreads count placements over the available sprite refs. Each
// one drops in from above the buffer with a bounce ease, then drifts and
// spins on its own.
func newScene(store *spriteblit.Store, refs map[string]*spriteblit.SpriteRef, width, height, count int, onBounce func()) *scene {
	if count < 1 {
		count = 1
	}

	names := make([]string, 0, len(refs))
	for name := range refs {
		names = append(names, name)
	}
	sort.Strings(names)

	s := &scene{
		store:    store,
		width:    width,
		height:   height,
		onBounce: onBounce,
	}

	for i := 0; i < count; i++ {
		ref := refs[names[i%len(names)]]
		bmp := store.Get(ref.Variant(0).Bitmap)
		w, h := bmp.Width(), bmp.Height()

		maxX := width - w
		if maxX < 1 {
			maxX = 1
		}
		maxY := height - h
		if maxY < 1 {
			maxY = 1
		}

		d := &demoSprite{
			sprite: spriteblit.NewSprite(ref),
			x:      rand.Float64() * float64(maxX),
			vx:     randVelocity(),
			vy:     randVelocity(),
			spin:   randSpin(),
			angle:  rand.Float64() * 360,
			w:      w,
			h:      h,
		}
		d.y = -float64(h)
		d.entry = gween.New(float32(d.y), float32(rand.Float64()*float64(maxY)), 1.2+0.15*float32(i), ease.OutBounce)

		s.sprites = append(s.sprites, d)
		s.order = append(s.order, d.sprite)
	}

	return s
}

func (s *scene) update(dt float32) {
	fdt := float64(dt)
	for _, d := range s.sprites {
		if d.entry != nil {
			y, done := d.entry.Update(dt)
			d.y = float64(y)
			if done {
				d.entry = nil
			}
		} else {
			d.x += d.vx * fdt
			d.y += d.vy * fdt
			s.bounce(d)
		}

		d.angle = spriteblit.NormalizeAngle(d.angle + d.spin*fdt)
		d.sprite.SetPos(int(d.x), int(d.y))
		d.sprite.SetRotation(d.angle)
	}
}

func (s *scene) render(buf *spriteblit.PixelBuffer) {
	buf.Clear(backgroundColor)
	spriteblit.Render(buf, s.store, s.order)
}

func (s *scene) bounce(d *demoSprite) {
	maxX := float64(s.width - d.w)
	if maxX < 0 {
		maxX = 0
	}
	maxY := float64(s.height - d.h)
	if maxY < 0 {
		maxY = 0
	}

	bounced := false
	if d.x < 0 {
		d.x, d.vx = 0, -d.vx
		bounced = true
	} else if d.x > maxX {
		d.x, d.vx = maxX, -d.vx
		bounced = true
	}
	if d.y < 0 {
		d.y, d.vy = 0, -d.vy
		bounced = true
	} else if d.y > maxY {
		d.y, d.vy = maxY, -d.vy
		bounced = true
	}

	if bounced && s.onBounce != nil {
		s.onBounce()
	}
}

func randVelocity() float64 {
	v := 40 + rand.Float64()*80
	if rand.Float64() < 0.5 {
		return -v
	}
	return v
}

func randSpin() float64 {
	v := 30 + rand.Float64()*120
	if rand.Float64() < 0.5 {
		return -v
	}
	return v
}
