package flog

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyConfigString applies "key=value" overrides on top of the logger's
// current configuration. The configuration is cloned before modification.
//
// Example:
//
//	logger := flog.NewLogger()
//	err := logger.ApplyConfigString(
//	    "directory=/var/log/app",
//	    "level=debug",
//	    "enable_async=true",
//	)
func (l *Logger) ApplyConfigString(overrides ...string) error {
	cfg := l.getConfig().Clone()

	var errors []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}

		if err := applyConfigField(cfg, key, value); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return combineConfigErrors(errors)
	}

	return l.ApplyConfig(cfg)
}

// combineConfigErrors combines multiple configuration errors into a single error
func combineConfigErrors(errors []error) error {
	if len(errors) == 0 {
		return nil
	}
	if len(errors) == 1 {
		return errors[0]
	}

	var sb strings.Builder
	sb.WriteString("flog: multiple configuration errors:")
	for i, err := range errors {
		errMsg := strings.TrimPrefix(err.Error(), "flog: ")
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

func parseInt(key, value string) (int64, error) {
	intVal, err := strconv.ParseInt(value, 0, 64)
	if err != nil {
		return 0, fmtErrorf("invalid integer value for %s '%s': %w", key, value, err)
	}
	return intVal, nil
}

func parseBool(key, value string) (bool, error) {
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmtErrorf("invalid boolean value for %s '%s': %w", key, value, err)
	}
	return boolVal, nil
}

// applyConfigField applies a single key-value override to a Config
func applyConfigField(cfg *Config, key, value string) error {
	var err error

	switch key {
	// Basic settings
	case "level":
		// Accepts both numeric and named values
		levelVal, lerr := Level(value)
		if lerr != nil {
			return fmtErrorf("invalid level value '%s': %w", value, lerr)
		}
		cfg.Level = levelVal
	case "name":
		cfg.Name = value
	case "directory":
		cfg.Directory = value
	case "extension":
		cfg.Extension = value

	// Console output
	case "enable_console":
		cfg.EnableConsole, err = parseBool(key, value)
	case "console_target":
		cfg.ConsoleTarget = value
	case "console_ignored_fields":
		// Base prefix accepted, e.g. 0b1111 or 0x0f
		cfg.ConsoleIgnoredFields, err = parseInt(key, value)
	case "console_sanitize":
		cfg.ConsoleSanitize = value

	// File output
	case "enable_file":
		cfg.EnableFile, err = parseBool(key, value)
	case "enable_async":
		cfg.EnableAsync, err = parseBool(key, value)
	case "max_size_bytes":
		cfg.MaxSizeBytes, err = parseInt(key, value)
	case "initial_sequence":
		cfg.InitialSequence, err = parseInt(key, value)
	case "max_total_size_kb":
		cfg.MaxTotalSizeKB, err = parseInt(key, value)

	// Timers
	case "flush_interval_ms":
		cfg.FlushIntervalMs, err = parseInt(key, value)

	// Heartbeat configuration
	case "heartbeat_level":
		cfg.HeartbeatLevel, err = parseInt(key, value)
	case "heartbeat_interval_s":
		cfg.HeartbeatIntervalS, err = parseInt(key, value)

	// Internal error handling
	case "internal_errors_to_stderr":
		cfg.InternalErrorsToStderr, err = parseBool(key, value)

	default:
		return fmtErrorf("unknown configuration key '%s'", key)
	}

	return err
}
