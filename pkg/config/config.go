package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/df07/go-event-injector/pkg/core"
)

// Defaults applied by Load when a field is missing or non-positive
const (
	DefaultEvents    = 1000
	DefaultBatchSize = 100
	DefaultOutput    = "events.jsonl"
)

// ErrUnknownKind is returned when a config names a shape, distribution or
// injector kind that does not exist
var ErrUnknownKind = errors.New("config: unknown kind")

// Config describes one generation run
type Config struct {
	Seed      int64       `json:"seed"      env:"INJECTOR_SEED"`
	Events    int         `json:"events"    env:"INJECTOR_EVENTS"`
	Workers   int         `json:"workers"   env:"INJECTOR_WORKERS"`
	BatchSize int         `json:"batchSize"`
	Output    string      `json:"output"    env:"INJECTOR_OUTPUT"`
	Injector  InjectorCfg `json:"injector"`
}

// InjectorCfg selects and parameterizes one injector.
// Kind is one of "volume", "surface" or "li".
type InjectorCfg struct {
	Kind  string   `json:"kind"`
	Shape ShapeCfg `json:"shape"`

	Energy DistributionCfg `json:"energy"`
	Length DistributionCfg `json:"length,omitempty"`
	Time   DistributionCfg `json:"time,omitempty"`
	Types  TypesCfg        `json:"types"`

	// Volume injectors only: "uniform" (default) or "lowerHalfSphere"
	Angular string `json:"angular,omitempty"`

	// Surface injectors only
	CosMin   *float64 `json:"cosMin,omitempty"`
	CosMax   *float64 `json:"cosMax,omitempty"`
	MaxTries int      `json:"maxTries,omitempty"`

	Replay ReplayCfg `json:"replay"`
}

// ShapeCfg describes a cylinder, sphere, cuboid or fixed point.
// Height and Radius apply to cylinders, Radius to spheres, Size holds the
// full edge lengths of a cuboid.
type ShapeCfg struct {
	Kind   string    `json:"kind"`
	Center core.Vec3 `json:"center"`
	Height float64   `json:"height,omitempty"`
	Radius float64   `json:"radius,omitempty"`
	Size   core.Vec3 `json:"size,omitempty"`
}

// DistributionCfg describes a scalar distribution. Kind is one of
// "constant", "uniform", "powerLaw" or "logUniform".
type DistributionCfg struct {
	Kind  string  `json:"kind"`
	Value float64 `json:"value,omitempty"`
	Min   float64 `json:"min,omitempty"`
	Max   float64 `json:"max,omitempty"`
	Index float64 `json:"index,omitempty"`
}

// TypesCfg lists particle type names with optional relative weights
type TypesCfg struct {
	Names   []string  `json:"names"`
	Weights []float64 `json:"weights,omitempty"`
}

// ReplayCfg points an LI injector at a replay dataset. When Filter is set the
// injector's shape is used as the exclusion volume.
type ReplayCfg struct {
	Path   string `json:"path" env:"INJECTOR_REPLAY_PATH"`
	Filter bool   `json:"filter,omitempty"`
}

// Load reads a JSON config file, applies environment overrides and fills defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills zero-valued run parameters
func (c *Config) ApplyDefaults() {
	if c.Events <= 0 {
		c.Events = DefaultEvents
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
}

// Validate checks the parts of the config that do not need building
func (c *Config) Validate() error {
	switch c.Injector.Kind {
	case KindVolume, KindSurface:
		if len(c.Injector.Types.Names) == 0 {
			return fmt.Errorf("%s injector needs at least one particle type", c.Injector.Kind)
		}
	case KindLI:
		if c.Injector.Replay.Path == "" {
			return fmt.Errorf("li injector needs a replay path")
		}
	default:
		return fmt.Errorf("injector %q: %w", c.Injector.Kind, ErrUnknownKind)
	}
	return nil
}
