package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/fov"
)

type Config struct {
	Map   MapConfig   `toml:"map"`
	View  ViewConfig  `toml:"view"`
	Audio AudioConfig `toml:"audio"`
}

type MapConfig struct {
	Source   string  `toml:"source"` // "cave", "maze" or "file"
	Path     string  `toml:"path"`   // raster file for source = "file"
	Width    int     `toml:"width"`
	Height   int     `toml:"height"`
	Seed     int64   `toml:"seed"` // 0 = random
	Fill     float64 `toml:"fill_ratio"`
	Braiding float64 `toml:"braiding"`
}

type ViewConfig struct {
	Radius       int     `toml:"radius"`
	Angle        float64 `toml:"angle"`
	Shape        string  `toml:"shape"` // square|circle|precalc|octagon
	Beam         bool    `toml:"beam"`
	WallLighting bool    `toml:"wall_lighting"`
}

type AudioConfig struct {
	Enabled bool `toml:"enabled"`
}

func defaults() *Config {
	return &Config{
		Map: MapConfig{
			Source:   "cave",
			Width:    80,
			Height:   40,
			Fill:     0.55,
			Braiding: 0.1,
		},
		View: ViewConfig{
			Radius:       20,
			Angle:        130,
			Shape:        "circle",
			WallLighting: true,
		},
		Audio: AudioConfig{Enabled: true},
	}
}

// loadConfig reads the TOML config at path. A missing file is not an
// error; defaults apply.
func loadConfig(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func parseShape(name string) (fov.Shape, error) {
	switch strings.ToLower(name) {
	case "square", "":
		return fov.Square, nil
	case "circle":
		return fov.Circle, nil
	case "precalc", "circle_precalculate":
		return fov.CirclePrecalculate, nil
	case "octagon":
		return fov.Octagon, nil
	default:
		return fov.Square, fmt.Errorf("unknown shape %q", name)
	}
}

func shapeName(s fov.Shape) string {
	switch s {
	case fov.Circle:
		return "circle"
	case fov.CirclePrecalculate:
		return "precalc"
	case fov.Octagon:
		return "octagon"
	default:
		return "square"
	}
}
