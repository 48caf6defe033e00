package bramble

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the engine configuration, usually read from a YAML file.
type Config struct {
	Window WindowConfig `yaml:"window"`
	TPS    int          `yaml:"tps"`
	Log    LogConfig    `yaml:"log"`
	Assets AssetConfig  `yaml:"assets"`
	Tiles  TileConfig   `yaml:"tiles"`
	Start  string       `yaml:"start"`
	Debug  bool         `yaml:"debug"`
}

// WindowConfig describes the host window.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
	VSync     *bool  `yaml:"vsync"`
}

// LogConfig selects the logger level and output format.
type LogConfig struct {
	Level       string `yaml:"level"`    // debug, info, warn, error
	Encoding    string `yaml:"encoding"` // console or json
	Development bool   `yaml:"development"`
}

// AssetConfig points at the atlas, its page images and the UI font.
// Paths are relative to Root.
type AssetConfig struct {
	Root     string   `yaml:"root"`
	Atlas    string   `yaml:"atlas"`
	Pages    []string `yaml:"pages"`
	Font     string   `yaml:"font"`
	FontPage string   `yaml:"fontPage"`
}

// TileConfig sizes the shared tile batch.
type TileConfig struct {
	Capacity int `yaml:"capacity"`
}

const (
	defaultWindowWidth  = 800
	defaultWindowHeight = 600
	defaultTPS          = 60
	defaultTileCapacity = 8192
)

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	vsync := true
	return Config{
		Window: WindowConfig{
			Title:  "bramble",
			Width:  defaultWindowWidth,
			Height: defaultWindowHeight,
			VSync:  &vsync,
		},
		TPS:    defaultTPS,
		Log:    LogConfig{Level: "info", Encoding: "console"},
		Assets: AssetConfig{Root: "."},
		Tiles:  TileConfig{Capacity: defaultTileCapacity},
	}
}

// LoadConfig decodes YAML from r. Fields left empty keep their defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("bramble: parse config: %w", err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

// LoadConfigFile reads and decodes the YAML file at path.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("bramble: open config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// fillDefaults repairs zero values an explicit YAML document may have set.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}
	if c.Window.Title == "" {
		c.Window.Title = def.Window.Title
	}
	if c.Window.VSync == nil {
		c.Window.VSync = def.Window.VSync
	}
	if c.TPS <= 0 {
		c.TPS = def.TPS
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Tiles.Capacity <= 0 {
		c.Tiles.Capacity = def.Tiles.Capacity
	}
	if c.Assets.Root == "" {
		c.Assets.Root = def.Assets.Root
	}
}
