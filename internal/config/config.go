package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	World   WorldConfig   `toml:"world"`
	Spatial SpatialConfig `toml:"spatial"`
	Bus     BusConfig     `toml:"bus"`
	Sim     SimConfig     `toml:"sim"`
	Scripts ScriptsConfig `toml:"scripts"`
	Logging LoggingConfig `toml:"logging"`
}

type WorldConfig struct {
	EntityPoolSize    int `toml:"entity_pool_size"`
	TransformCapacity int `toml:"transform_capacity"`
	RigidBodyCapacity int `toml:"rigidbody_capacity"`
}

type SpatialConfig struct {
	CellSize float64 `toml:"cell_size"`
}

type BusConfig struct {
	FastTopics       []string `toml:"fast_topics"`
	ValidatePayloads bool     `toml:"validate_payloads"`
	ShapeTable       string   `toml:"shape_table"`
}

type SimConfig struct {
	TickRate   time.Duration `toml:"tick_rate"`
	Asteroids  int           `toml:"asteroids"`
	FieldSize  float64       `toml:"field_size"`  // asteroids spawn in ±field_size/2 per axis
	StatsEvery int           `toml:"stats_every"` // ticks between stats log lines
}

type ScriptsConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		World: WorldConfig{
			EntityPoolSize:    256,
			TransformCapacity: 4096,
			RigidBodyCapacity: 2048,
		},
		Spatial: SpatialConfig{
			CellSize: 200,
		},
		Bus: BusConfig{
			ValidatePayloads: false,
			ShapeTable:       "config/topics.yaml",
		},
		Sim: SimConfig{
			TickRate:   16 * time.Millisecond,
			Asteroids:  64,
			FieldSize:  4000,
			StatsEvery: 300,
		},
		Scripts: ScriptsConfig{
			Enabled: false,
			Dir:     "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Default returns the built-in configuration, used when no file is present.
func Default() *Config {
	return defaults()
}
