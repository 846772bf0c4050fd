package flog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"
	"github.com/lixenwraith/flog/sanitizer"
)

// Config holds all logger configuration values
type Config struct {
	// Basic settings
	Level     int64  `toml:"level"`
	Name      string `toml:"name"` // Program name in directory and file names, empty = executable name
	Directory string `toml:"directory"`
	Extension string `toml:"extension"`

	// Console output
	EnableConsole        bool   `toml:"enable_console"`
	ConsoleTarget        string `toml:"console_target"`         // "stdout" or "stderr"
	ConsoleIgnoredFields int64  `toml:"console_ignored_fields"` // FieldTime|FieldThreadID|FieldFileLine|FieldFunc
	ConsoleSanitize      string `toml:"console_sanitize"`       // sanitizer policy: "raw", "txt" or "strip"

	// File output
	EnableFile      bool  `toml:"enable_file"`
	EnableAsync     bool  `toml:"enable_async"`
	MaxSizeBytes    int64 `toml:"max_size_bytes"`    // Rotation threshold, 0 disables rotation
	InitialSequence int64 `toml:"initial_sequence"`  // Sequence number of the first file
	MaxTotalSizeKB  int64 `toml:"max_total_size_kb"` // Run directory cap, 0 disables cleanup

	// Timers
	FlushIntervalMs int64 `toml:"flush_interval_ms"`

	// Heartbeat configuration
	HeartbeatLevel     int64 `toml:"heartbeat_level"`      // 0=disabled, 1=proc only, 2=proc+disk, 3=proc+disk+sys
	HeartbeatIntervalS int64 `toml:"heartbeat_interval_s"` // Interval seconds for heartbeat

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"`
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Level:     LevelTrace,
	Name:      "",
	Directory: "./logs",
	Extension: "log",

	EnableConsole:        true,
	ConsoleTarget:        "stdout",
	ConsoleIgnoredFields: FieldAll,
	ConsoleSanitize:      string(sanitizer.PolicyRaw),

	EnableFile:      true,
	EnableAsync:     false,
	MaxSizeBytes:    5 * 1024 * 1024,
	InitialSequence: 0,
	MaxTotalSizeKB:  0,

	FlushIntervalMs: 10,

	HeartbeatLevel:     0,
	HeartbeatIntervalS: 60,

	InternalErrorsToStderr: true,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from the [log] table of a TOML file.
// A missing file yields the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()

	if err := loader.RegisterStruct("log.", *cfg); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, "log.", cfg); err != nil {
		return nil, fmtErrorf("failed to extract config values: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmtErrorf("failed to apply overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig copies values found by the loader into cfg, keyed by toml tag
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue
		}

		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		if tomlTag := t.Field(i).Tag.Get("toml"); tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with type conversion for the shapes
// TOML decoding and Go callers produce
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		case float64:
			if v != float64(int64(v)) {
				return fmt.Errorf("expected integer, got %v", v)
			}
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if c.Level < LevelTrace || c.Level > LevelFatal {
		return fmtErrorf("level must be between %d and %d: %d", LevelTrace, LevelFatal, c.Level)
	}

	if strings.ContainsAny(c.Name, `/\`) {
		return fmtErrorf("name cannot contain path separators: %s", c.Name)
	}

	if c.EnableFile && strings.TrimSpace(c.Directory) == "" {
		return fmtErrorf("directory cannot be empty when file output is enabled")
	}

	if strings.HasPrefix(c.Extension, ".") {
		return fmtErrorf("extension should not start with dot: %s", c.Extension)
	}

	if c.ConsoleTarget != "stdout" && c.ConsoleTarget != "stderr" {
		return fmtErrorf("invalid console_target: '%s' (use stdout or stderr)", c.ConsoleTarget)
	}

	if c.ConsoleIgnoredFields&^FieldAll != 0 {
		return fmtErrorf("console_ignored_fields has unknown bits: %#x", c.ConsoleIgnoredFields)
	}

	if !sanitizer.ValidPolicy(c.ConsoleSanitize) {
		return fmtErrorf("invalid console_sanitize: '%s' (use raw, txt or strip)", c.ConsoleSanitize)
	}

	if c.MaxSizeBytes < 0 || c.MaxTotalSizeKB < 0 {
		return fmtErrorf("size limits cannot be negative")
	}

	if c.InitialSequence < 0 {
		return fmtErrorf("initial_sequence cannot be negative: %d", c.InitialSequence)
	}

	if c.FlushIntervalMs <= 0 {
		return fmtErrorf("flush_interval_ms must be positive: %d", c.FlushIntervalMs)
	}

	if c.HeartbeatLevel < 0 || c.HeartbeatLevel > 3 {
		return fmtErrorf("heartbeat_level must be between 0 and 3: %d", c.HeartbeatLevel)
	}

	if c.HeartbeatLevel > 0 && c.HeartbeatIntervalS <= 0 {
		return fmtErrorf("heartbeat_interval_s must be positive when heartbeat is enabled: %d",
			c.HeartbeatIntervalS)
	}

	return nil
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}

// configRequiresRestart reports changes the running worker cannot pick up
func configRequiresRestart(oldCfg, newCfg *Config) bool {
	return oldCfg.FlushIntervalMs != newCfg.FlushIntervalMs ||
		oldCfg.HeartbeatLevel != newCfg.HeartbeatLevel ||
		oldCfg.HeartbeatIntervalS != newCfg.HeartbeatIntervalS
}

// configRequiresNewRun reports changes that move output to a new run directory
func configRequiresNewRun(oldCfg, newCfg *Config) bool {
	return oldCfg.Directory != newCfg.Directory ||
		oldCfg.Name != newCfg.Name ||
		oldCfg.Extension != newCfg.Extension
}
