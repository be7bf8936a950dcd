package main

import (
	"fmt"
	"log/slog"

	"github.com/quasilyte/gdata/v2"
	"github.com/rvalk/go-spriteblit/spriteblit/display"
	"github.com/rvalk/go-spriteblit/spriteblit/timing"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"
)

const (
	settingsObject   = "settings"
	settingsProperty = "demo"
)

// demoSettings are the choices worth remembering between runs.
type demoSettings struct {
	Backend string  `yaml:"backend"`
	Scale   int     `yaml:"scale"`
	FPS     float64 `yaml:"fps"`
	Mute    bool    `yaml:"mute"`
}

func defaultSettings() *demoSettings {
	return &demoSettings{
		Backend: "terminal",
		Scale:   display.DefaultPixelScale,
		FPS:     timing.DefaultFPS,
	}
}

// settingsFile wraps the persisted settings. With a nil manager it runs in
// a degraded in-memory mode: loads return defaults and saves do nothing.
type settingsFile struct {
	manager *gdata.Manager
	Values  *demoSettings
}

func loadSettings(persist bool) *settingsFile {
	sf := &settingsFile{Values: defaultSettings()}
	if !persist {
		return sf
	}

	manager, err := gdata.Open(gdata.Config{AppName: "spriteblit"})
	if err != nil {
		slog.Warn("Settings storage unavailable, changes will not persist", "error", err)
		return sf
	}
	sf.manager = manager

	if !manager.ObjectPropExists(settingsObject, settingsProperty) {
		return sf
	}

	data, err := manager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		slog.Warn("Could not load saved settings, using defaults", "error", err)
		return sf
	}

	var loaded demoSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		slog.Warn("Could not parse saved settings, using defaults", "error", err)
		return sf
	}

	sf.Values = &loaded
	slog.Debug("Settings loaded", "backend", loaded.Backend, "scale", loaded.Scale, "fps", loaded.FPS)
	return sf
}

func (sf *settingsFile) save() error {
	if sf.manager == nil {
		return nil
	}

	data, err := yaml.Marshal(sf.Values)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sf.manager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// applyFlags folds explicit command line choices into the settings and
// sanitizes whatever was loaded from disk.
func (sf *settingsFile) applyFlags(c *cli.Context) {
	if c.IsSet("backend") {
		sf.Values.Backend = c.String("backend")
	}
	if c.IsSet("scale") {
		sf.Values.Scale = c.Int("scale")
	}
	if c.IsSet("fps") {
		sf.Values.FPS = c.Float64("fps")
	}
	if c.Bool("mute") {
		sf.Values.Mute = true
	}

	if sf.Values.Backend == "" {
		sf.Values.Backend = "terminal"
	}
	if sf.Values.Scale < 1 {
		sf.Values.Scale = display.DefaultPixelScale
	}
	if sf.Values.FPS <= 0 {
		sf.Values.FPS = timing.DefaultFPS
	}
}
