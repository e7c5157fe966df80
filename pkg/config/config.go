// Package config loads gengui settings from YAML files and the environment.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/odvcencio/gengui/pkg/ui/theme"
)

// Default configuration values exported for documentation and validation
const (
	DefaultTitle         = "Tk"
	DefaultPadX          = 1
	DefaultPadY          = 0
	DefaultTheme         = "default"
	DefaultBackend       = BackendTcell
	DefaultSimWidth      = 80
	DefaultSimHeight     = 24
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultMetricsAddr   = "127.0.0.1:9464"
	DefaultWatchDebounce = 200 * time.Millisecond
)

// Backend names accepted by ui.backend.
const (
	BackendTcell = "tcell"
	BackendSim   = "sim"
)

// Config represents the complete gengui configuration
type Config struct {
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
	Watch   WatchConfig   `yaml:"watch"`
}

// UIConfig controls how documents are materialized and displayed.
type UIConfig struct {
	Title string `yaml:"title"`
	// PadX and PadY are the fixed grid margins, in cells, around every
	// widget the builder places.
	PadX      int    `yaml:"padx"`
	PadY      int    `yaml:"pady"`
	Theme     string `yaml:"theme"`
	Backend   string `yaml:"backend"`
	SimWidth  int    `yaml:"sim_width"`
	SimHeight int    `yaml:"sim_height"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text | json
	// File receives log output. Empty means stderr, which the terminal
	// backend owns while a window is shown.
	File string `yaml:"file"`
}

// MetricsConfig configures the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// TracingConfig configures OpenTelemetry spans around builds.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// WatchConfig configures document reloads on change.
type WatchConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Title:     DefaultTitle,
			PadX:      DefaultPadX,
			PadY:      DefaultPadY,
			Theme:     DefaultTheme,
			Backend:   DefaultBackend,
			SimWidth:  DefaultSimWidth,
			SimHeight: DefaultSimHeight,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Metrics: MetricsConfig{
			Addr: DefaultMetricsAddr,
		},
		Watch: WatchConfig{
			Debounce: DefaultWatchDebounce,
		},
	}
}

// Load loads configuration from default locations with proper precedence:
// defaults, ~/.gengui/config.yaml, ./.gengui/config.yaml, then GENGUI_*
// environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home != "" {
		userConfigPath := filepath.Join(home, ".gengui", "config.yaml")
		if err := loadAndMerge(cfg, userConfigPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading user config: %w", err)
		}
	}

	projectConfigPath := filepath.Join(".", ".gengui", "config.yaml")
	if err := loadAndMerge(cfg, projectConfigPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path on top of the
// defaults, then applies environment overrides.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadAndMerge(cfg, expandHomeDir(path)); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GENGUI_TITLE"); v != "" {
		cfg.UI.Title = v
	}
	if v := os.Getenv("GENGUI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("GENGUI_BACKEND"); v != "" {
		cfg.UI.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := envInt("GENGUI_PADX"); ok {
		cfg.UI.PadX = v
	}
	if v, ok := envInt("GENGUI_PADY"); ok {
		cfg.UI.PadY = v
	}
	if v := os.Getenv("GENGUI_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("GENGUI_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
	if v := os.Getenv("GENGUI_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := envBool("GENGUI_METRICS"); ok {
		cfg.Metrics.Enabled = v
	}
	if v := os.Getenv("GENGUI_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v, ok := envBool("GENGUI_TRACING"); ok {
		cfg.Tracing.Enabled = v
	}
	if v, ok := envBool("GENGUI_WATCH"); ok {
		cfg.Watch.Enabled = v
	}
}

func envBool(key string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

func envInt(key string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.UI.PadX < 0 || c.UI.PadY < 0 {
		return fmt.Errorf("ui.padx and ui.pady must be non-negative (got %d, %d)", c.UI.PadX, c.UI.PadY)
	}
	if _, ok := theme.ByName(c.UI.Theme); !ok {
		return fmt.Errorf("ui.theme %q is not one of %s", c.UI.Theme, strings.Join(theme.Names(), ", "))
	}
	switch c.UI.Backend {
	case BackendTcell, BackendSim:
	default:
		return fmt.Errorf("ui.backend must be %q or %q (got %q)", BackendTcell, BackendSim, c.UI.Backend)
	}
	if c.UI.SimWidth <= 0 || c.UI.SimHeight <= 0 {
		return fmt.Errorf("ui.sim_width and ui.sim_height must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error (got %q)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json (got %q)", c.Logging.Format)
	}
	if c.Metrics.Enabled {
		if _, _, err := net.SplitHostPort(c.Metrics.Addr); err != nil {
			return fmt.Errorf("metrics.addr %q: %w", c.Metrics.Addr, err)
		}
	}
	// the tcell backend owns the terminal, so spans need a file to land in
	if c.Tracing.Enabled && c.UI.Backend == BackendTcell && strings.TrimSpace(c.Logging.File) == "" {
		return fmt.Errorf("tracing.enabled with the %s backend requires logging.file", BackendTcell)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must be non-negative")
	}
	return nil
}

func expandHomeDir(path string) string {
	path = strings.TrimSpace(path)
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
