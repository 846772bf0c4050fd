package flog

import (
	"time"
)

// Global instance for package-level functions
var defaultLogger = NewLogger()

// Default returns the package-level logger
func Default() *Logger {
	return defaultLogger
}

// Init configures the package-level logger and starts its flush worker
func Init(cfg *Config) error {
	if err := defaultLogger.ApplyConfig(cfg); err != nil {
		return err
	}
	return defaultLogger.Start()
}

// InitWithDefaults configures the package-level logger from defaults plus
// "key=value" overrides and starts its flush worker
func InitWithDefaults(overrides ...string) error {
	cfg := DefaultConfig()
	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			return err
		}
		if err := applyConfigField(cfg, key, value); err != nil {
			return err
		}
	}
	return Init(cfg)
}

// Shutdown drains and closes the package-level logger
func Shutdown(timeout ...time.Duration) error {
	return defaultLogger.Shutdown(timeout...)
}

// Flush writes queued records and syncs the file to disk
func Flush(timeout time.Duration) error {
	return defaultLogger.Flush(timeout)
}

// GetModule returns a named handle on the package-level logger
func GetModule(name string) *Module {
	return defaultLogger.Module(name)
}

// Tracef logs a formatted message at trace level through the package-level logger
func Tracef(format string, args ...any) {
	defaultLogger.log(2, LevelTrace, defaultModule, format, args)
}

// Debugf logs a formatted message at debug level through the package-level logger
func Debugf(format string, args ...any) {
	defaultLogger.log(2, LevelDebug, defaultModule, format, args)
}

// Infof logs a formatted message at info level through the package-level logger
func Infof(format string, args ...any) {
	defaultLogger.log(2, LevelInfo, defaultModule, format, args)
}

// Warnf logs a formatted message at warning level through the package-level logger
func Warnf(format string, args ...any) {
	defaultLogger.log(2, LevelWarn, defaultModule, format, args)
}

// Errorf logs a formatted message at error level through the package-level logger
func Errorf(format string, args ...any) {
	defaultLogger.log(2, LevelError, defaultModule, format, args)
}

// Fatalf logs a formatted message at fatal level through the package-level logger
func Fatalf(format string, args ...any) {
	defaultLogger.log(2, LevelFatal, defaultModule, format, args)
}

// Write outputs a raw line through the package-level logger
func Write(args ...any) {
	defaultLogger.Write(args...)
}
