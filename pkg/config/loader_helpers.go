package config

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "github.com/odvcencio/tuikit/pkg/errors"
)

// loadAndMerge loads a YAML file and merges it into the config.
// A missing file is reported with an error satisfying os.IsNotExist.
func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var override Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&override); err != nil && err != io.EOF {
		return apperrors.Wrap(err, apperrors.ErrCodeConfigParse, "parsing YAML").WithContext("path", path)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeConfigParse, "parsing YAML").WithContext("path", path)
	}

	mergeConfigs(cfg, &override, raw)
	return nil
}

// mergeConfigs merges override into base. Strings replace when non-empty;
// numbers and booleans replace whenever the key is present, so an explicit
// zero or false wins over the default.
func mergeConfigs(base, override *Config, raw map[string]any) {
	if override == nil {
		return
	}

	if override.UI.CancelKey != "" {
		base.UI.CancelKey = override.UI.CancelKey
	}
	if override.UI.SizePolicy != "" {
		base.UI.SizePolicy = override.UI.SizePolicy
	}
	if fieldSet(raw, "ui", "min_width") {
		base.UI.MinWidth = override.UI.MinWidth
	}
	if fieldSet(raw, "ui", "min_height") {
		base.UI.MinHeight = override.UI.MinHeight
	}

	if fieldSet(raw, "logging", "enabled") {
		base.Logging.Enabled = override.Logging.Enabled
	}
	if override.Logging.Dir != "" {
		base.Logging.Dir = override.Logging.Dir
	}
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
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
