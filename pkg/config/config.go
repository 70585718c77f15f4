package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "github.com/odvcencio/tuikit/pkg/errors"
	"github.com/odvcencio/tuikit/pkg/logging"
	"github.com/odvcencio/tuikit/pkg/ui/runtime"
	"github.com/odvcencio/tuikit/pkg/ui/terminal"
)

// Config represents the complete tuikit configuration
type Config struct {
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// UIConfig controls the event loop.
type UIConfig struct {
	// CancelKey ends the loop, e.g. "esc", "ctrl+c" or "q".
	CancelKey string `yaml:"cancel_key"`

	// SizePolicy is "notice" (show a notice when the terminal is too small)
	// or "ignore" (render anyway and let widgets overlap).
	SizePolicy string `yaml:"size_policy"`

	// MinWidth and MinHeight override the minimum computed from the layout.
	// Zero means computed.
	MinWidth  int `yaml:"min_width"`
	MinHeight int `yaml:"min_height"`
}

// LoggingConfig controls the JSONL event log.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
	Level   string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file or env sets anything.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			CancelKey:  "esc",
			SizePolicy: string(runtime.SizePolicyNotice),
		},
		Logging: LoggingConfig{
			Enabled: true,
			Dir:     filepath.Join("~", ".tuikit", "logs"),
			Level:   string(logging.LevelInfo),
		},
	}
}

// Load loads configuration from default locations with proper precedence:
// defaults, ~/.tuikit/config.yaml, ./.tuikit/config.yaml, then environment.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to HOME env var if UserHomeDir fails
		home = os.Getenv("HOME")
	}
	if home != "" {
		userConfigPath := filepath.Join(home, ".tuikit", "config.yaml")
		if err := loadAndMerge(cfg, userConfigPath); err != nil && !os.IsNotExist(err) {
			return nil, wrapLoadError(err, userConfigPath, "loading user config")
		}
	}

	projectConfigPath := filepath.Join(".", ".tuikit", "config.yaml")
	if err := loadAndMerge(cfg, projectConfigPath); err != nil && !os.IsNotExist(err) {
		return nil, wrapLoadError(err, projectConfigPath, "loading project config")
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadAndMerge(cfg, path); err != nil {
		return nil, wrapLoadError(err, path, "loading config")
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func wrapLoadError(err error, path, message string) error {
	if apperrors.IsCode(err, apperrors.ErrCodeConfigParse) {
		return err
	}
	return apperrors.Wrap(err, apperrors.ErrCodeConfigLoad, message).WithContext("path", path)
}

// applyEnvOverrides applies TUIKIT_* environment variable overrides
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("TUIKIT_CANCEL_KEY"); v != "" {
		cfg.UI.CancelKey = v
	}
	if v := os.Getenv("TUIKIT_SIZE_POLICY"); v != "" {
		cfg.UI.SizePolicy = v
	}
	if v := os.Getenv("TUIKIT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TUIKIT_LOG_DIR"); v != "" {
		cfg.Logging.Dir = v
	}
	if val, ok := envBool("TUIKIT_LOG_ENABLED"); ok {
		cfg.Logging.Enabled = val
	}
	for key, field := range map[string]*int{
		"TUIKIT_MIN_WIDTH":  &cfg.UI.MinWidth,
		"TUIKIT_MIN_HEIGHT": &cfg.UI.MinHeight,
	} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeConfigInvalid, "invalid environment override").
				WithContext("var", key)
		}
		*field = n
	}
	return nil
}

func envBool(key string) (bool, bool) {
	val := os.Getenv(key)
	if val == "" {
		return false, false
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := terminal.ParseBinding(c.UI.CancelKey); err != nil {
		return invalid(err, "ui.cancel_key")
	}

	if _, err := runtime.ParseSizePolicy(c.UI.SizePolicy); err != nil {
		return invalid(err, "ui.size_policy")
	}

	if c.UI.MinWidth < 0 || c.UI.MinHeight < 0 {
		return invalid(fmt.Errorf("minimum size cannot be negative (%dx%d)", c.UI.MinWidth, c.UI.MinHeight), "ui.min_width")
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return invalid(err, "logging.level")
	}
	if c.Logging.Enabled && strings.TrimSpace(c.Logging.Dir) == "" {
		return invalid(fmt.Errorf("log directory is required when logging is enabled"), "logging.dir")
	}

	return nil
}

func invalid(err error, field string) error {
	return apperrors.Wrap(err, apperrors.ErrCodeConfigInvalid, "config validation").
		WithContext("field", field)
}

// CancelBinding returns the parsed cancel key.
func (c *Config) CancelBinding() terminal.Binding {
	b, err := terminal.ParseBinding(c.UI.CancelKey)
	if err != nil {
		return terminal.Binding{Key: terminal.KeyEscape}
	}
	return b
}

// SizePolicy returns the parsed size policy.
func (c *Config) SizePolicy() runtime.SizePolicy {
	policy, err := runtime.ParseSizePolicy(c.UI.SizePolicy)
	if err != nil {
		return runtime.SizePolicyNotice
	}
	return policy
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() logging.Level {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}

// LogDir returns the log directory with ~ expanded.
func (c *Config) LogDir() string {
	return expandHomeDir(c.Logging.Dir)
}
