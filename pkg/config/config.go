// Package config loads the demo's YAML configuration. Every field has a
// default, so running without a config file reproduces the stock demo:
// two size-2 houses at (0,0,0) and (1,0,1), unioned with the BSP kernel
// and written to union_result.stl.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chazu/meshunion/pkg/stl"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Environment variables consulted by Load.
const (
	EnvConfig = "MESHUNION_CONFIG"
	EnvOutput = "MESHUNION_OUTPUT"
)

// Kernel names.
const (
	KernelBSP      = "bsp"
	KernelSDFX     = "sdfx"
	KernelManifold = "manifold"
)

// Defaults applied by Default and Load.
const (
	DefaultOutput    = "union_result.stl"
	DefaultFormat    = string(stl.ASCII)
	DefaultMeshCells = 200
	DefaultLogLevel  = "info"
)

var (
	ErrUnknownKernel = errors.New("config: unknown kernel")
	ErrInvalid       = errors.New("config: invalid value")
)

// Config is the root configuration.
type Config struct {
	Kernel    string        `yaml:"kernel"`
	Output    string        `yaml:"output"`
	Format    string        `yaml:"format"`
	MeshCells int           `yaml:"mesh_cells"`
	LogLevel  string        `yaml:"log_level"`
	Houses    []HouseConfig `yaml:"houses"`
}

// HouseConfig places one generated house.
type HouseConfig struct {
	Size   float64    `yaml:"size"`
	Offset [3]float64 `yaml:"offset"`
}

// OffsetVec returns the offset as a vector.
func (h HouseConfig) OffsetVec() v3.Vec {
	return v3.Vec{X: h.Offset[0], Y: h.Offset[1], Z: h.Offset[2]}
}

// Default returns the stock demo configuration.
func Default() *Config {
	return &Config{
		Kernel:    KernelBSP,
		Output:    DefaultOutput,
		Format:    DefaultFormat,
		MeshCells: DefaultMeshCells,
		LogLevel:  DefaultLogLevel,
		Houses: []HouseConfig{
			{Size: 2, Offset: [3]float64{0, 0, 0}},
			{Size: 2, Offset: [3]float64{1, 0, 1}},
		},
	}
}

// Load reads a YAML configuration file on top of the defaults.
// If path == "", it falls back to $MESHUNION_CONFIG; if that is unset too
// the defaults are returned. The output path comes from the file, then
// $MESHUNION_OUTPUT, then DefaultOutput.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.Output = ""
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := Parse(data, cfg); err != nil {
			return nil, err
		}
	}
	cfg.Output = outputWithEnvFallback(cfg.Output)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg. Keys missing from data keep their current
// values; an explicit empty output is treated as unset.
func Parse(data []byte, cfg *Config) error {
	var raw Config
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("config: parse: %w", err)
	}
	if raw.Kernel != "" {
		cfg.Kernel = raw.Kernel
	}
	cfg.Output = raw.Output
	if raw.Format != "" {
		cfg.Format = raw.Format
	}
	if raw.MeshCells != 0 {
		cfg.MeshCells = raw.MeshCells
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = raw.LogLevel
	}
	if raw.Houses != nil {
		cfg.Houses = raw.Houses
	}
	return nil
}

// outputWithEnvFallback returns the output path with priority:
// config -> env -> default.
func outputWithEnvFallback(configured string) string {
	if configured != "" {
		return configured
	}
	if env := os.Getenv(EnvOutput); env != "" {
		return env
	}
	return DefaultOutput
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	switch c.Kernel {
	case KernelBSP, KernelSDFX, KernelManifold:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKernel, c.Kernel)
	}
	if _, err := stl.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.MeshCells <= 0 {
		return fmt.Errorf("%w: mesh_cells must be positive, got %d", ErrInvalid, c.MeshCells)
	}
	if len(c.Houses) < 2 {
		return fmt.Errorf("%w: need at least two houses, got %d", ErrInvalid, len(c.Houses))
	}
	for i, h := range c.Houses {
		if h.Size <= 0 {
			return fmt.Errorf("%w: house %d size must be positive, got %g", ErrInvalid, i, h.Size)
		}
	}
	return nil
}
