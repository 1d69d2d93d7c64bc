// Package config loads lifescan settings from YAML files and environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/7robots/conway-game-of-life/internal/logging"
)

// AppDir is the directory name used under the XDG config and data homes.
const AppDir = "conway-game-of-life"

const (
	MinSpeedMS = 10
	MaxSpeedMS = 500
)

// Config contains all lifescan settings.
type Config struct {
	Patterns PatternsConfig `yaml:"patterns"`
	Grid     GridConfig     `yaml:"grid"`
	Sim      SimConfig      `yaml:"sim"`
	Store    StoreConfig    `yaml:"store"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Sweep    SweepConfig    `yaml:"sweep"`
}

// PatternsConfig locates the pattern corpus.
type PatternsConfig struct {
	// Dir is the corpus directory. Empty selects the bundled corpus.
	Dir string `yaml:"dir"`

	// MaxBBox is the largest width or height a catalogued pattern may have.
	MaxBBox int `yaml:"max_bbox"`
}

// GridConfig sizes the simulation grid.
type GridConfig struct {
	Rows int  `yaml:"rows"`
	Cols int  `yaml:"cols"`
	Wrap bool `yaml:"wrap"`
}

// SimConfig controls pacing and random fills.
type SimConfig struct {
	// SpeedMS is the delay between generations, 10 to 500.
	SpeedMS int `yaml:"speed_ms"`

	// Density is the live-cell probability for random fills.
	Density float64 `yaml:"density"`

	// Seed for random fills. Zero means time-based.
	Seed int64 `yaml:"seed"`
}

// Speed returns SpeedMS as a duration.
func (s SimConfig) Speed() time.Duration {
	return time.Duration(s.SpeedMS) * time.Millisecond
}

// StoreConfig locates the run database.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig sets the log verbosity: "debug", "info", "warn" or "error".
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// SweepConfig sizes a soup sweep.
type SweepConfig struct {
	Soups       int `yaml:"soups"`
	Generations int `yaml:"generations"`
	Workers     int `yaml:"workers"`
}

// Default returns a Config with the stock settings.
func Default() *Config {
	return &Config{
		Patterns: PatternsConfig{MaxBBox: 10},
		Grid:     GridConfig{Rows: 50, Cols: 50},
		Sim:      SimConfig{SpeedMS: 100, Density: 0.3},
		Store:    StoreConfig{Path: DefaultStorePath()},
		Logging:  LoggingConfig{Level: "info"},
		Sweep:    SweepConfig{Soups: 100, Generations: 500},
	}
}

// DefaultStorePath is $XDG_DATA_HOME/conway-game-of-life/game_data.db,
// falling back to ~/.local/share.
func DefaultStorePath() string {
	return filepath.Join(xdgHome("XDG_DATA_HOME", ".local", "share"), AppDir, "game_data.db")
}

// DefaultConfigPath is $XDG_CONFIG_HOME/conway-game-of-life/config.yaml,
// falling back to ~/.config.
func DefaultConfigPath() string {
	return filepath.Join(xdgHome("XDG_CONFIG_HOME", ".config"), AppDir, "config.yaml")
}

func xdgHome(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(fallback...)
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// Load resolves configuration.
// Order: defaults -> path (or the default config file if it exists) -> environment.
// An explicit path that cannot be read is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	switch {
	case path != "":
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	default:
		def := DefaultConfigPath()
		if _, err := os.Stat(def); err == nil {
			fileCfg, err := LoadFromFile(def)
			if err != nil {
				return nil, fmt.Errorf("loading config file: %w", err)
			}
			cfg = fileCfg
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads a YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Patterns.MaxBBox < 1 {
		errs = append(errs, fmt.Errorf("patterns.max_bbox must be positive, got %d", c.Patterns.MaxBBox))
	}
	if c.Grid.Rows < 1 || c.Grid.Cols < 1 {
		errs = append(errs, fmt.Errorf("grid must be at least 1x1, got %dx%d", c.Grid.Rows, c.Grid.Cols))
	}
	if c.Sim.SpeedMS < MinSpeedMS || c.Sim.SpeedMS > MaxSpeedMS {
		errs = append(errs, fmt.Errorf("sim.speed_ms must be between %d and %d, got %d", MinSpeedMS, MaxSpeedMS, c.Sim.SpeedMS))
	}
	if c.Sim.Density < 0 || c.Sim.Density > 1 {
		errs = append(errs, fmt.Errorf("sim.density must be between 0 and 1, got %g", c.Sim.Density))
	}
	if !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Logging.Level))
	}
	if c.Sweep.Soups < 0 || c.Sweep.Generations < 0 || c.Sweep.Workers < 0 {
		errs = append(errs, errors.New("sweep settings must be non-negative"))
	}
	return errors.Join(errs...)
}

func applyEnvOverrides(cfg *Config) error {
	str := map[string]*string{
		"LIFESCAN_PATTERNS_DIR": &cfg.Patterns.Dir,
		"LIFESCAN_STORE_PATH":   &cfg.Store.Path,
		"LIFESCAN_LOG_LEVEL":    &cfg.Logging.Level,
		"LIFESCAN_METRICS_ADDR": &cfg.Metrics.Addr,
	}
	for key, dst := range str {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"LIFESCAN_MAX_BBOX":          &cfg.Patterns.MaxBBox,
		"LIFESCAN_GRID_ROWS":         &cfg.Grid.Rows,
		"LIFESCAN_GRID_COLS":         &cfg.Grid.Cols,
		"LIFESCAN_SPEED_MS":          &cfg.Sim.SpeedMS,
		"LIFESCAN_SWEEP_SOUPS":       &cfg.Sweep.Soups,
		"LIFESCAN_SWEEP_GENERATIONS": &cfg.Sweep.Generations,
		"LIFESCAN_SWEEP_WORKERS":     &cfg.Sweep.Workers,
	}
	for key, dst := range ints {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}

	if v := os.Getenv("LIFESCAN_GRID_WRAP"); v != "" {
		cfg.Grid.Wrap = v == "true" || v == "1"
	}
	if v := os.Getenv("LIFESCAN_DENSITY"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("LIFESCAN_DENSITY: %w", err)
		}
		cfg.Sim.Density = f
	}
	if v := os.Getenv("LIFESCAN_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("LIFESCAN_SEED: %w", err)
		}
		cfg.Sim.Seed = n
	}
	return nil
}
