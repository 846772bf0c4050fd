package flog

// Builder provides a fluent API for building logger configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg *Config
	err error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Logger with the accumulated configuration.
// The returned logger is configured but not started.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	logger := NewLogger()

	if err := logger.ApplyConfig(b.cfg.Clone()); err != nil {
		return nil, err
	}

	return logger, nil
}

// Config returns a copy of the accumulated configuration
func (b *Builder) Config() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.cfg.Clone(), nil
}

// Level sets the minimum log level
func (b *Builder) Level(level int64) *Builder {
	b.cfg.Level = level
	return b
}

// LevelString sets the log level from a string
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	levelVal, err := Level(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = levelVal
	return b
}

// Name sets the program name used in directory and file names
func (b *Builder) Name(name string) *Builder {
	b.cfg.Name = name
	return b
}

// Directory sets the root directory holding run directories
func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

// Extension sets the log file extension
func (b *Builder) Extension(ext string) *Builder {
	b.cfg.Extension = ext
	return b
}

// EnableConsole toggles console output
func (b *Builder) EnableConsole(enable bool) *Builder {
	b.cfg.EnableConsole = enable
	return b
}

// ConsoleTarget selects "stdout" or "stderr"
func (b *Builder) ConsoleTarget(target string) *Builder {
	b.cfg.ConsoleTarget = target
	return b
}

// ConsoleIgnoredFields sets which optional fields are hidden on the console
func (b *Builder) ConsoleIgnoredFields(fields int64) *Builder {
	b.cfg.ConsoleIgnoredFields = fields
	return b
}

// ConsoleSanitize sets the console sanitizer policy
func (b *Builder) ConsoleSanitize(policy string) *Builder {
	b.cfg.ConsoleSanitize = policy
	return b
}

// EnableFile toggles file output
func (b *Builder) EnableFile(enable bool) *Builder {
	b.cfg.EnableFile = enable
	return b
}

// EnableAsync toggles queued file writes
func (b *Builder) EnableAsync(enable bool) *Builder {
	b.cfg.EnableAsync = enable
	return b
}

// MaxSizeBytes sets the rotation threshold
func (b *Builder) MaxSizeBytes(size int64) *Builder {
	b.cfg.MaxSizeBytes = size
	return b
}

// MaxSizeMB sets the rotation threshold in MiB. Convenience.
func (b *Builder) MaxSizeMB(size int64) *Builder {
	b.cfg.MaxSizeBytes = size * 1024 * 1024
	return b
}

// InitialSequence sets the sequence number of the first file
func (b *Builder) InitialSequence(seq int64) *Builder {
	b.cfg.InitialSequence = seq
	return b
}

// MaxTotalSizeKB caps the run directory size
func (b *Builder) MaxTotalSizeKB(size int64) *Builder {
	b.cfg.MaxTotalSizeKB = size
	return b
}

// FlushIntervalMs sets the async drain interval
func (b *Builder) FlushIntervalMs(ms int64) *Builder {
	b.cfg.FlushIntervalMs = ms
	return b
}

// HeartbeatLevel sets the heartbeat monitoring level
func (b *Builder) HeartbeatLevel(level int64) *Builder {
	b.cfg.HeartbeatLevel = level
	return b
}

// HeartbeatIntervalS sets the heartbeat interval
func (b *Builder) HeartbeatIntervalS(interval int64) *Builder {
	b.cfg.HeartbeatIntervalS = interval
	return b
}

// InternalErrorsToStderr toggles internal diagnostics
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// Example usage:
// logger, err := flog.NewBuilder().
//
//	Directory("/var/log/app").
//	LevelString("debug").
//	EnableAsync(true).
//	MaxSizeMB(16).
//	Build()
//
// if err == nil {
//
//	 _ = logger.Start()
//	 defer logger.Shutdown()
//	 logger.Module("app").Infof("logger initialized")
//
// }
