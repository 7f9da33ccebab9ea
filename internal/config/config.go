// Package config loads blockbake settings from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the root of the YAML file.
type Config struct {
	Lighting LightingConfig `yaml:"lighting"`
	Meshing  MeshingConfig  `yaml:"meshing"`
	Atlas    AtlasConfig    `yaml:"atlas"`
	Assets   AssetsConfig   `yaml:"assets"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type LightingConfig struct {
	AmbientOcclusion bool `yaml:"ambient_occlusion"`
	Smooth           bool `yaml:"smooth"`
	CacheCapacity    int  `yaml:"cache_capacity"`
}

type MeshingConfig struct {
	Workers   int `yaml:"workers"`
	QueueSize int `yaml:"queue_size"`
}

type AtlasConfig struct {
	TileSize int `yaml:"tile_size"`
	Columns  int `yaml:"columns"`
}

type AssetsConfig struct {
	Path string `yaml:"path"`
}

type MetricsConfig struct {
	// Addr is the listen address for /metrics; empty disables the server.
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Lighting: LightingConfig{AmbientOcclusion: true, Smooth: true, CacheCapacity: 50},
		Meshing:  MeshingConfig{Workers: 4, QueueSize: 64},
		Atlas:    AtlasConfig{TileSize: 16, Columns: 16},
		Assets:   AssetsConfig{Path: "assets"},
	}
}

// Load reads a YAML file over Default(). An empty path falls back to
// BLOCKBAKE_CONFIG; with neither set the defaults are returned.
// BLOCKBAKE_WORKERS and BLOCKBAKE_ASSETS override the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("BLOCKBAKE_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	cfg.normalize()
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BLOCKBAKE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Meshing.Workers = n
		}
	}
	if v := os.Getenv("BLOCKBAKE_ASSETS"); v != "" {
		cfg.Assets.Path = v
	}
}

// normalize replaces unusable values with defaults and clamps the worker
// count.
func (c *Config) normalize() {
	d := Default()
	if c.Lighting.CacheCapacity <= 0 {
		c.Lighting.CacheCapacity = d.Lighting.CacheCapacity
	}
	c.Meshing.Workers = clampWorkers(c.Meshing.Workers)
	if c.Meshing.QueueSize <= 0 {
		c.Meshing.QueueSize = d.Meshing.QueueSize
	}
	if c.Atlas.TileSize <= 0 {
		c.Atlas.TileSize = d.Atlas.TileSize
	}
	if c.Atlas.Columns <= 0 {
		c.Atlas.Columns = d.Atlas.Columns
	}
	if c.Assets.Path == "" {
		c.Assets.Path = d.Assets.Path
	}
}
