package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds all jrmesh settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh"`
	Solver  SolverConfig  `yaml:"solver"`
	Run     RunConfig     `yaml:"run"`
	Store   StoreConfig   `yaml:"store"`
	Logging LoggingConfig `yaml:"logging"`
}

// MeshConfig sizes the coverage × approval grid.
type MeshConfig struct {
	CoverageParts int    `yaml:"coverage_parts"`
	ApprovalParts int    `yaml:"approval_parts"`
	InitialValue  string `yaml:"initial_value"` // single character
}

// SolverConfig bounds oracle calls.
type SolverConfig struct {
	Timeout        string `yaml:"timeout"`         // per call, e.g. "30s"; empty disables
	MaxRefinements int    `yaml:"max_refinements"` // 0 = unlimited
}

// RunConfig selects what an analysis computes.
type RunConfig struct {
	CommitteeSize  int               `yaml:"committee_size"`
	GroupsApproved int               `yaml:"groups_approved"`
	Rules          []string          `yaml:"rules"`
	Symbols        map[string]string `yaml:"symbols"` // rule name -> single character
	Workers        int               `yaml:"workers"`
}

// StoreConfig configures the cell result cache.
type StoreConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Path     string `yaml:"path"`
	InMemory bool   `yaml:"in_memory"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			CoverageParts: 10,
			ApprovalParts: 10,
			InitialValue:  ".",
		},
		Solver: SolverConfig{
			Timeout: "60s",
		},
		Run: RunConfig{
			CommitteeSize:  3,
			GroupsApproved: 1,
			Rules:          []string{"jr", "pjr", "ejr"},
			Symbols: map[string]string{
				"jr":           "j",
				"pjr":          "p",
				"ejr":          "e",
				"any":          "a",
				"max-approval": "m",
				"cc":           "c",
				"pav":          "v",
				"single-pav":   "s",
				"phragmen":     "f",
			},
			Workers: 4,
		},
		Store: StoreConfig{
			Path: filepath.Join(".jrmesh", "cache"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()

			return cfg, nil
		}

		return nil, errors.Wrap(err, "read config")
	}

	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create config directory")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	return errors.Wrap(os.WriteFile(path, data, 0o644), "write config")
}

// applyEnvOverrides applies environment variable overrides. Unparsable values
// are ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("JRMESH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Run.Workers = n
		}
	}
	if v := os.Getenv("JRMESH_SOLVER_TIMEOUT"); v != "" {
		if _, err := time.ParseDuration(v); err == nil {
			c.Solver.Timeout = v
		}
	}
}

// SolverTimeout returns the per-call oracle deadline; 0 means none.
func (c *Config) SolverTimeout() time.Duration {
	if c.Solver.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Solver.Timeout)
	if err != nil {
		return 0
	}

	return d
}

// InitialRune returns the mesh initial marker.
func (c *Config) InitialRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Mesh.InitialValue)

	return r
}

// Symbol returns the marker for rule, falling back to its first letter.
func (c *Config) Symbol(rule string) rune {
	if s, ok := c.Run.Symbols[rule]; ok && s != "" {
		r, _ := utf8.DecodeRuneInString(s)

		return r
	}
	r, _ := utf8.DecodeRuneInString(rule)

	return r
}

// Validate checks every field that later stages rely on.
func (c *Config) Validate() error {
	switch {
	case c.Mesh.CoverageParts < 1:
		return fmt.Errorf("%w: mesh.coverage_parts=%d", ErrInvalid, c.Mesh.CoverageParts)
	case c.Mesh.ApprovalParts < 1:
		return fmt.Errorf("%w: mesh.approval_parts=%d", ErrInvalid, c.Mesh.ApprovalParts)
	case utf8.RuneCountInString(c.Mesh.InitialValue) != 1:
		return fmt.Errorf("%w: mesh.initial_value=%q", ErrInvalid, c.Mesh.InitialValue)
	case c.Solver.MaxRefinements < 0:
		return fmt.Errorf("%w: solver.max_refinements=%d", ErrInvalid, c.Solver.MaxRefinements)
	case c.Run.CommitteeSize < 1:
		return fmt.Errorf("%w: run.committee_size=%d", ErrInvalid, c.Run.CommitteeSize)
	case c.Run.GroupsApproved < 1:
		return fmt.Errorf("%w: run.groups_approved=%d", ErrInvalid, c.Run.GroupsApproved)
	case c.Run.Workers < 1:
		return fmt.Errorf("%w: run.workers=%d", ErrInvalid, c.Run.Workers)
	case len(c.Run.Rules) == 0:
		return fmt.Errorf("%w: run.rules is empty", ErrInvalid)
	case c.Store.Enabled && !c.Store.InMemory && c.Store.Path == "":
		return fmt.Errorf("%w: store.path is empty", ErrInvalid)
	}
	if c.Solver.Timeout != "" {
		if d, err := time.ParseDuration(c.Solver.Timeout); err != nil || d < 0 {
			return fmt.Errorf("%w: solver.timeout=%q", ErrInvalid, c.Solver.Timeout)
		}
	}
	for rule, s := range c.Run.Symbols {
		if utf8.RuneCountInString(s) != 1 {
			return fmt.Errorf("%w: run.symbols.%s=%q", ErrInvalid, rule, s)
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level=%q", ErrInvalid, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: logging.format=%q", ErrInvalid, c.Logging.Format)
	}

	return nil
}
