package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// loadAndMerge loads a YAML file and merges it into the config.
func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	mergeConfigs(cfg, &override, raw)
	return nil
}

// mergeConfigs merges override into base. Zero values only win when the raw
// document names the key explicitly.
func mergeConfigs(base, override *Config, raw map[string]any) {
	if override == nil {
		return
	}

	if strings.TrimSpace(override.UI.Title) != "" {
		base.UI.Title = override.UI.Title
	}
	if fieldSet(raw, "ui", "padx") {
		base.UI.PadX = override.UI.PadX
	}
	if fieldSet(raw, "ui", "pady") {
		base.UI.PadY = override.UI.PadY
	}
	if override.UI.Theme != "" {
		base.UI.Theme = override.UI.Theme
	}
	if override.UI.Backend != "" {
		base.UI.Backend = strings.ToLower(override.UI.Backend)
	}
	if override.UI.SimWidth != 0 {
		base.UI.SimWidth = override.UI.SimWidth
	}
	if override.UI.SimHeight != 0 {
		base.UI.SimHeight = override.UI.SimHeight
	}

	if override.Logging.Level != "" {
		base.Logging.Level = strings.ToLower(override.Logging.Level)
	}
	if override.Logging.Format != "" {
		base.Logging.Format = strings.ToLower(override.Logging.Format)
	}

	if override.Logging.File != "" {
		base.Logging.File = expandHomeDir(override.Logging.File)
	}

	if fieldSet(raw, "metrics", "enabled") {
		base.Metrics.Enabled = override.Metrics.Enabled
	}
	if override.Metrics.Addr != "" {
		base.Metrics.Addr = override.Metrics.Addr
	}

	if fieldSet(raw, "tracing", "enabled") {
		base.Tracing.Enabled = override.Tracing.Enabled
	}

	if fieldSet(raw, "watch", "enabled") {
		base.Watch.Enabled = override.Watch.Enabled
	}
	if fieldSet(raw, "watch", "debounce") {
		base.Watch.Debounce = override.Watch.Debounce
	}
}

func fieldSet(raw map[string]any, path ...string) bool {
	if len(path) == 0 || raw == nil {
		return false
	}
	current := any(raw)
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return false
		}
		val, ok := m[key]
		if !ok {
			return false
		}
		current = val
	}
	return true
}
