// Package config defines the kernel's tunables: time resolution, run
// length, initialization stages, RNG seed, logging verbosity, and the
// colorizer's escape codes. Config is built with functional options and
// can additionally be loaded from a YAML file.
package config

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/discrete-sim/kernel/effector"
)

// Config holds every tunable the kernel itself consults. Both New and
// Load start from the standard defaults, so fields that no Option or
// file entry sets keep their default values.
type Config struct {
	TimeUnits       float64
	MaxSecs         float64
	NumInitStages   int
	Seed            uint64
	LogLevel        effector.Level
	LogLevels       map[string]effector.Level
	MaxLogPath      int
	Colorize        bool
	WorkerTimeoutMS int

	ErrorEscape     string
	WarningEscape   string
	InfoEscape      string
	DebugEscape     string
	ExcessiveEscape string
	EndEscape       string
}

// Option mutates a Config under construction.
type Option func(*Config)

// WithTimeUnits sets the number of ticks per simulated second.
func WithTimeUnits(units float64) Option {
	return func(c *Config) { c.TimeUnits = units }
}

// WithMaxSecs sets the simulated-seconds budget for a run.
func WithMaxSecs(secs float64) Option {
	return func(c *Config) { c.MaxSecs = secs }
}

// WithNumInitStages sets how many "init N" passes run before the main loop.
func WithNumInitStages(n int) Option {
	return func(c *Config) { c.NumInitStages = n }
}

// WithSeed sets the base RNG seed every worker's seed is derived from.
// A seed of 0 leaves the entropy-derived seed in place.
func WithSeed(seed uint64) Option {
	return func(c *Config) {
		if seed != 0 {
			c.Seed = seed
		}
	}
}

// WithLogLevel sets the default log level applied when no LogLevels
// pattern matches a component's path.
func WithLogLevel(level effector.Level) Option {
	return func(c *Config) { c.LogLevel = level }
}

// WithLogLevelPattern adds a glob-pattern override consulted before the
// default LogLevel. Patterns are kept in a map, so the order in which
// they are tried is not defined: when several patterns match the same
// path, which one applies is not defined either.
func WithLogLevelPattern(pattern string, level effector.Level) Option {
	return func(c *Config) {
		if c.LogLevels == nil {
			c.LogLevels = make(map[string]effector.Level)
		}
		c.LogLevels[pattern] = level
	}
}

// WithMaxLogPath sets the display-path truncation width used when
// logging (0 = unlimited).
func WithMaxLogPath(width int) Option {
	return func(c *Config) { c.MaxLogPath = width }
}

// WithColorize toggles the cmd/simcli colorizer.
func WithColorize(enabled bool) Option {
	return func(c *Config) { c.Colorize = enabled }
}

// WithWorkerTimeout sets how long the kernel waits for a worker's
// Effector before declaring it stalled.
func WithWorkerTimeout(ms int) Option {
	return func(c *Config) { c.WorkerTimeoutMS = ms }
}

// New builds a Config from defaults plus the given options.
func New(opts ...Option) *Config {
	c := defaults()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func defaults() *Config {
	return &Config{
		TimeUnits:       1_000_000,
		MaxSecs:         math.Inf(1),
		NumInitStages:   1,
		Seed:            entropySeed(),
		LogLevel:        effector.LevelInfo,
		LogLevels:       make(map[string]effector.Level),
		MaxLogPath:      0,
		Colorize:        true,
		WorkerTimeoutMS: 5000,
		ErrorEscape:     "\x1b[31;1m",
		WarningEscape:   "\x1b[31m",
		InfoEscape:      "\x1b[30;1m",
		DebugEscape:     "",
		ExcessiveEscape: "\x1b[1;38;5;244m",
		EndEscape:       "\x1b[0m",
	}
}

func entropySeed() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// yamlConfig mirrors the subset of Config an author may reasonably want
// to express in a file; escape codes and the pattern map are configured
// in code, not YAML, since they are rarely varied per-environment.
type yamlConfig struct {
	TimeUnits       float64 `yaml:"time_units"`
	MaxSecs         float64 `yaml:"max_secs"`
	NumInitStages   int     `yaml:"num_init_stages"`
	Seed            uint64  `yaml:"seed"`
	LogLevel        string  `yaml:"log_level"`
	MaxLogPath      int     `yaml:"max_log_path"`
	Colorize        *bool   `yaml:"colorize"`
	WorkerTimeoutMS int     `yaml:"worker_timeout_ms"`
}

// Load reads a YAML file and returns a Config built from its fields atop
// the standard defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var y yamlConfig
	if err := yaml.Unmarshal(raw, &y); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	c := defaults()
	if y.TimeUnits != 0 {
		c.TimeUnits = y.TimeUnits
	}
	if y.MaxSecs != 0 {
		c.MaxSecs = y.MaxSecs
	}
	if y.NumInitStages != 0 {
		c.NumInitStages = y.NumInitStages
	}
	if y.Seed != 0 {
		c.Seed = y.Seed
	}
	if y.LogLevel != "" {
		lvl, err := parseLevel(y.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
		c.LogLevel = lvl
	}
	if y.MaxLogPath != 0 {
		c.MaxLogPath = y.MaxLogPath
	}
	if y.Colorize != nil {
		c.Colorize = *y.Colorize
	}
	if y.WorkerTimeoutMS != 0 {
		c.WorkerTimeoutMS = y.WorkerTimeoutMS
	}
	return c, nil
}

// ParseLevel parses one of "error", "warning", "info", "debug" or
// "excessive" into an effector.Level, for callers outside this package
// (cmd/simcli's -log-level flag) that need the same vocabulary Load uses.
func ParseLevel(s string) (effector.Level, error) {
	return parseLevel(s)
}

func parseLevel(s string) (effector.Level, error) {
	switch s {
	case "error":
		return effector.LevelError, nil
	case "warning":
		return effector.LevelWarning, nil
	case "info":
		return effector.LevelInfo, nil
	case "debug":
		return effector.LevelDebug, nil
	case "excessive":
		return effector.LevelExcessive, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
