// Package config loads the scene settings from YAML. A missing file means defaults;
// anything the file leaves out keeps its default value.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"matcap-scene/internal/primitives"
	"matcap-scene/internal/scatter"
	"matcap-scene/internal/scene"
)

// DefaultPath is the config file, relative to the working directory.
const DefaultPath = "config/scene.yaml"

// Environment overrides.
const (
	EnvConfig     = "SCENE_CONFIG"
	EnvAssetsRoot = "SCENE_ASSETS_ROOT"
	EnvSeed       = "SCENE_SEED"
	EnvLogLevel   = "SCENE_LOG_LEVEL"
)

// Window sizes and paces the host window.
type Window struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	TargetFPS  int    `yaml:"target_fps"`
	MSAA       bool   `yaml:"msaa"`
}

// Assets names every file the scene loads. Root is a directory, a .zip pack or an
// http(s) base URL.
type Assets struct {
	Root    string    `yaml:"root"`
	Font    string    `yaml:"font"`
	Matcap  string    `yaml:"matcap"`
	CubeMap [6]string `yaml:"cube_map"`
}

// Camera sets the perspective camera; Position is in world units.
type Camera struct {
	FOV      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
}

// Controls tunes the orbit controls. A zero MaxDistance means unbounded.
type Controls struct {
	Damping       bool    `yaml:"damping"`
	DampingFactor float32 `yaml:"damping_factor"`
	RotateSpeed   float32 `yaml:"rotate_speed"`
	PanSpeed      float32 `yaml:"pan_speed"`
	ZoomSpeed     float32 `yaml:"zoom_speed"`
	MinDistance   float32 `yaml:"min_distance"`
	MaxDistance   float32 `yaml:"max_distance"`
}

// Scatter bounds the random placement of the shape families.
type Scatter struct {
	Spread      float32 `yaml:"spread"`
	MaxRotation float32 `yaml:"max_rotation"`
	Seed        int64   `yaml:"seed"`
}

// Options converts to the sampler's options.
func (s Scatter) Options() scatter.Options {
	return scatter.Options{Spread: s.Spread, MaxRotation: s.MaxRotation, Seed: s.Seed}
}

// Debug picks the overlays shown at startup.
type Debug struct {
	ShowFPS      bool `yaml:"show_fps"`
	ShowMemAlloc bool `yaml:"show_memalloc"`
	ShowPanel    bool `yaml:"show_panel"`
}

// Log sets the level name and the log file; a path of "-" disables the file.
type Log struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// Config is the whole settings file.
type Config struct {
	Window   Window           `yaml:"window"`
	Assets   Assets           `yaml:"assets"`
	Camera   Camera           `yaml:"camera"`
	Controls Controls         `yaml:"controls"`
	Text     []scene.TextLine `yaml:"text"`
	Families []primitives.Def `yaml:"families"`
	Scatter  Scatter          `yaml:"scatter"`
	Debug    Debug            `yaml:"debug"`
	Log      Log              `yaml:"log"`
}

// Default returns the stock scene.
func Default() Config {
	opts := scatter.DefaultOptions()
	return Config{
		Window: Window{Title: "matcap scene", Width: 1280, Height: 720, TargetFPS: 60, MSAA: true},
		Assets: Assets{
			Root:   ".",
			Font:   "/fonts/helvetiker_regular.typeface.json",
			Matcap: "textures/matcaps/3.png",
			CubeMap: [6]string{
				"textures/matcaps/1.png",
				"textures/matcaps/2.png",
				"textures/matcaps/3.png",
				"textures/matcaps/4.png",
				"textures/matcaps/5.png",
				"textures/matcaps/6.png",
			},
		},
		Camera: Camera{FOV: 75, Near: 0.1, Far: 100, Position: [3]float32{1, 1, 2}},
		Controls: Controls{
			Damping:       true,
			DampingFactor: 0.05,
			RotateSpeed:   1,
			PanSpeed:      1,
			ZoomSpeed:     1,
			MaxDistance:   1000,
		},
		Text:     scene.DefaultText(),
		Families: primitives.Defaults(),
		Scatter:  Scatter{Spread: opts.Spread, MaxRotation: opts.MaxRotation},
		Log:      Log{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file is not an error; malformed YAML is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes data over the defaults. Text entries overlay the stock line at the same
// index and family entries the stock family of the same name, so a partial entry keeps
// the rest of its defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: %w", err)
	}
	var over overlays
	if err := yaml.Unmarshal(data, &over); err != nil {
		return Default(), fmt.Errorf("config: %w", err)
	}
	text, err := MergeText(scene.DefaultText(), over.Text)
	if err != nil {
		return Default(), err
	}
	fams, err := MergeFamilies(primitives.Defaults(), over.Families)
	if err != nil {
		return Default(), err
	}
	cfg.Text, cfg.Families = text, fams
	return cfg, nil
}

// ApplyEnv applies the environment overrides read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvAssetsRoot); v != "" {
		c.Assets.Root = v
	}
	if v := getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvSeed, err)
		}
		c.Scatter.Seed = seed
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate reports the first setting the program cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("config: window size %dx%d", c.Window.Width, c.Window.Height)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("config: camera clip planes %v..%v", c.Camera.Near, c.Camera.Far)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("config: camera fov %v", c.Camera.FOV)
	case c.Controls.Damping && (c.Controls.DampingFactor <= 0 || c.Controls.DampingFactor > 1):
		return fmt.Errorf("config: damping factor %v", c.Controls.DampingFactor)
	}
	for i, l := range c.Text {
		switch {
		case l.Size <= 0:
			return fmt.Errorf("config: text line %d: size %v", i+1, l.Size)
		case l.Depth < 0:
			return fmt.Errorf("config: text line %d: depth %v", i+1, l.Depth)
		case l.CurveSegments < 1:
			return fmt.Errorf("config: text line %d: curve segments %d", i+1, l.CurveSegments)
		case l.Bevel.Enabled && l.Bevel.Segments < 1:
			return fmt.Errorf("config: text line %d: bevel segments %d", i+1, l.Bevel.Segments)
		}
	}
	for _, d := range c.Families {
		if d.Count < 0 {
			return fmt.Errorf("config: family %s: negative count", d.Name)
		}
		if _, err := primitives.Build(d); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

// Save writes c to path as YAML, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
