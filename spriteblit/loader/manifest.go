package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rvalk/go-spriteblit/spriteblit"
	"github.com/rvalk/go-spriteblit/spriteblit/parallel"

	"gopkg.in/yaml.v3"
)

// ManifestEntry describes one sprite to decode and bake.
type ManifestEntry struct {
	Name      string  `yaml:"name"`
	Path      string  `yaml:"path"`
	Mask      string  `yaml:"mask"`      // hex RRGGBB, empty means the default key
	Rotations int     `yaml:"rotations"` // 0 means a single unrotated variant
	Scale     float64 `yaml:"scale"`     // nearest-neighbor pre-scale, 0 or 1 means none
}

// Manifest is a YAML sprite sheet description: a list of images with their
// bake parameters.
type Manifest struct {
	Sprites []ManifestEntry `yaml:"sprites"`
}

// ParseMask converts a six-digit hex color such as "FF00FF" or "#FF00FF"
// into a packed 0x00RRGGBB mask. An empty string selects the default key.
func ParseMask(s string) (uint32, error) {
	if s == "" {
		return spriteblit.DefaultMask, nil
	}

	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 6 {
		return 0, fmt.Errorf("invalid mask color %q, expected RRGGBB", s)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid mask color %q: %w", s, err)
	}
	return uint32(v), nil
}

// ParseManifest parses and validates manifest YAML.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("could not parse manifest: %w", err)
	}

	if len(m.Sprites) == 0 {
		return nil, fmt.Errorf("manifest lists no sprites")
	}

	seen := make(map[string]bool, len(m.Sprites))
	for i, entry := range m.Sprites {
		if entry.Name == "" {
			return nil, fmt.Errorf("sprite %d has no name", i)
		}
		if seen[entry.Name] {
			return nil, fmt.Errorf("duplicate sprite name %q", entry.Name)
		}
		seen[entry.Name] = true

		if entry.Path == "" {
			return nil, fmt.Errorf("sprite %q has no path", entry.Name)
		}
		if _, err := ParseMask(entry.Mask); err != nil {
			return nil, fmt.Errorf("sprite %q: %w", entry.Name, err)
		}
		if entry.Scale < 0 {
			return nil, fmt.Errorf("sprite %q has negative scale %g", entry.Name, entry.Scale)
		}
	}

	return &m, nil
}

// LoadManifest reads the manifest at path and bakes every sprite it lists
// into store. Relative image paths resolve against the manifest's
// directory.
func LoadManifest(path string, store *spriteblit.Store) (map[string]*spriteblit.SpriteRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read manifest %q: %w", path, err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m.Load(filepath.Dir(path), store)
}

// Load decodes and bakes every sprite in the manifest, resolving relative
// image paths against baseDir. Entries bake concurrently on a worker
// pool; the store's lock makes the parallel inserts safe.
func (m *Manifest) Load(baseDir string, store *spriteblit.Store) (map[string]*spriteblit.SpriteRef, error) {
	refs := make([]*spriteblit.SpriteRef, len(m.Sprites))
	errs := make([]error, len(m.Sprites))

	pool := parallel.Start(0)
	for i, entry := range m.Sprites {
		pool.Do(func() {
			refs[i], errs[i] = bakeEntry(entry, baseDir, store)
		})
	}
	pool.Wait(true)

	out := make(map[string]*spriteblit.SpriteRef, len(m.Sprites))
	for i, entry := range m.Sprites {
		if errs[i] != nil {
			return nil, fmt.Errorf("sprite %q: %w", entry.Name, errs[i])
		}
		out[entry.Name] = refs[i]
	}
	return out, nil
}

func bakeEntry(entry ManifestEntry, baseDir string, store *spriteblit.Store) (*spriteblit.SpriteRef, error) {
	mask, err := ParseMask(entry.Mask)
	if err != nil {
		return nil, err
	}

	imgPath := entry.Path
	if !filepath.IsAbs(imgPath) {
		imgPath = filepath.Join(baseDir, imgPath)
	}

	img, err := decodeImage(imgPath)
	if err != nil {
		return nil, err
	}

	if entry.Scale != 0 && entry.Scale != 1 {
		if img, err = Scale(img, entry.Scale); err != nil {
			return nil, err
		}
	}

	bmp, err := spriteblit.FromImage(img, mask)
	if err != nil {
		return nil, err
	}

	rotations := entry.Rotations
	if rotations < 1 {
		rotations = 1
	}
	return store.Bake(bmp, rotations)
}
