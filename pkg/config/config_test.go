package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/odvcencio/gengui/pkg/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	if cfg.UI.Title != "Tk" {
		t.Fatalf("default title = %q", cfg.UI.Title)
	}
	if cfg.UI.PadX != 1 || cfg.UI.PadY != 0 {
		t.Fatalf("default padding = %d,%d", cfg.UI.PadX, cfg.UI.PadY)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
}

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	cfgDir := filepath.Join(dir, ".gengui")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadHierarchy(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	t.Setenv("HOME", home)

	writeConfig(t, home, `
ui:
  title: user title
  theme: dark
  padx: 4
logging:
  level: debug
`)
	writeConfig(t, project, `
ui:
  title: project title
  pady: 2
watch:
  debounce: 50ms
`)
	chdir(t, project)
	t.Setenv("GENGUI_LOG_FORMAT", "JSON")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load returned error: %v", err)
	}

	if cfg.UI.Title != "project title" {
		t.Fatalf("expected project title override, got %q", cfg.UI.Title)
	}
	if cfg.UI.Theme != "dark" {
		t.Fatalf("expected user theme, got %q", cfg.UI.Theme)
	}
	if cfg.UI.PadX != 4 || cfg.UI.PadY != 2 {
		t.Fatalf("expected padding 4,2, got %d,%d", cfg.UI.PadX, cfg.UI.PadY)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected user log level, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected env log format, got %q", cfg.Logging.Format)
	}
	if cfg.Watch.Debounce != 50*time.Millisecond {
		t.Fatalf("expected 50ms debounce, got %s", cfg.Watch.Debounce)
	}
}

func TestExplicitZeroPaddingOverridesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gengui.yaml")
	if err := os.WriteFile(path, []byte("ui:\n  padx: 0\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.UI.PadX != 0 {
		t.Fatalf("expected explicit padx 0, got %d", cfg.UI.PadX)
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	if _, err := config.LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestInvalidThemeFailsValidation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, t.TempDir())

	t.Setenv("GENGUI_THEME", "solarized")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected config.Load to fail for unknown theme")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"negative padding", func(c *config.Config) { c.UI.PadX = -1 }},
		{"unknown backend", func(c *config.Config) { c.UI.Backend = "x11" }},
		{"zero sim size", func(c *config.Config) { c.UI.SimWidth = 0 }},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "trace" }},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"bad metrics addr", func(c *config.Config) {
			c.Metrics.Enabled = true
			c.Metrics.Addr = "nowhere"
		}},
		{"tracing under tcell without log file", func(c *config.Config) {
			c.UI.Backend = config.BackendTcell
			c.Tracing.Enabled = true
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestValidate_TracingDestination(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.UI.Backend = config.BackendTcell
	cfg.Tracing.Enabled = true
	cfg.Logging.File = filepath.Join(t.TempDir(), "gengui.log")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("tcell with a log file: %v", err)
	}

	cfg.Logging.File = ""
	cfg.UI.Backend = config.BackendSim
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sim traces to stderr: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, t.TempDir())

	t.Setenv("GENGUI_BACKEND", "SIM")
	t.Setenv("GENGUI_PADX", "3")
	t.Setenv("GENGUI_PADY", "not-a-number")
	t.Setenv("GENGUI_METRICS", "1")
	t.Setenv("GENGUI_METRICS_ADDR", "127.0.0.1:0")
	t.Setenv("GENGUI_TRACING", "true")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if cfg.UI.Backend != config.BackendSim {
		t.Fatalf("backend = %q", cfg.UI.Backend)
	}
	if cfg.UI.PadX != 3 {
		t.Fatalf("padx = %d", cfg.UI.PadX)
	}
	if cfg.UI.PadY != config.DefaultPadY {
		t.Fatalf("unparseable GENGUI_PADY should be ignored, got %d", cfg.UI.PadY)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Addr != "127.0.0.1:0" {
		t.Fatalf("metrics = %+v", cfg.Metrics)
	}
	if !cfg.Tracing.Enabled {
		t.Fatal("tracing should be enabled from env")
	}
}
