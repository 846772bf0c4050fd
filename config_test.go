package flog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, LevelTrace, cfg.Level)
	assert.Empty(t, cfg.Name)
	assert.Equal(t, "./logs", cfg.Directory)
	assert.Equal(t, "log", cfg.Extension)
	assert.True(t, cfg.EnableConsole)
	assert.Equal(t, "stdout", cfg.ConsoleTarget)
	assert.Equal(t, FieldAll, cfg.ConsoleIgnoredFields)
	assert.Equal(t, "raw", cfg.ConsoleSanitize)
	assert.True(t, cfg.EnableFile)
	assert.False(t, cfg.EnableAsync)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxSizeBytes)
	assert.Equal(t, int64(10), cfg.FlushIntervalMs)
	assert.Zero(t, cfg.HeartbeatLevel)

	// Copies are independent
	cfg.Level = LevelFatal
	assert.Equal(t, LevelTrace, DefaultConfig().Level)
}

func TestConfigClone(t *testing.T) {
	cfg1 := DefaultConfig()
	cfg1.Level = LevelDebug
	cfg1.Directory = "/custom/path"

	cfg2 := cfg1.Clone()

	assert.Equal(t, cfg1.Level, cfg2.Level)
	assert.Equal(t, cfg1.Directory, cfg2.Directory)

	cfg1.Level = LevelError
	assert.Equal(t, LevelDebug, cfg2.Level)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError string
	}{
		{
			name:   "valid config",
			modify: func(c *Config) {},
		},
		{
			name:      "level out of range",
			modify:    func(c *Config) { c.Level = LevelProc },
			wantError: "level must be between",
		},
		{
			name:      "name with separator",
			modify:    func(c *Config) { c.Name = "a/b" },
			wantError: "name cannot contain path separators",
		},
		{
			name:      "empty directory",
			modify:    func(c *Config) { c.Directory = "" },
			wantError: "directory cannot be empty",
		},
		{
			name: "empty directory without file output",
			modify: func(c *Config) {
				c.Directory = ""
				c.EnableFile = false
			},
		},
		{
			name:      "extension with dot",
			modify:    func(c *Config) { c.Extension = ".log" },
			wantError: "extension should not start with dot",
		},
		{
			name:      "invalid console target",
			modify:    func(c *Config) { c.ConsoleTarget = "invalid" },
			wantError: "invalid console_target",
		},
		{
			name:      "unknown field bits",
			modify:    func(c *Config) { c.ConsoleIgnoredFields = 0x10 },
			wantError: "console_ignored_fields has unknown bits",
		},
		{
			name:      "unknown sanitizer policy",
			modify:    func(c *Config) { c.ConsoleSanitize = "html" },
			wantError: "invalid console_sanitize",
		},
		{
			name:      "negative rotation threshold",
			modify:    func(c *Config) { c.MaxSizeBytes = -1 },
			wantError: "size limits cannot be negative",
		},
		{
			name:      "negative initial sequence",
			modify:    func(c *Config) { c.InitialSequence = -1 },
			wantError: "initial_sequence cannot be negative",
		},
		{
			name:      "zero flush interval",
			modify:    func(c *Config) { c.FlushIntervalMs = 0 },
			wantError: "flush_interval_ms must be positive",
		},
		{
			name:      "invalid heartbeat level",
			modify:    func(c *Config) { c.HeartbeatLevel = 4 },
			wantError: "heartbeat_level must be between 0 and 3",
		},
		{
			name: "heartbeat without interval",
			modify: func(c *Config) {
				c.HeartbeatLevel = 1
				c.HeartbeatIntervalS = 0
			},
			wantError: "heartbeat_interval_s must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()

			if tt.wantError == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
			}
		})
	}
}

func TestNewConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.toml")
	content := `
[log]
level = 1
name = "svc"
directory = "/var/log/svc"
enable_async = true
console_target = "stderr"
max_size_bytes = 1024
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewConfigFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, LevelDebug, cfg.Level)
	assert.Equal(t, "svc", cfg.Name)
	assert.Equal(t, "/var/log/svc", cfg.Directory)
	assert.True(t, cfg.EnableAsync)
	assert.Equal(t, "stderr", cfg.ConsoleTarget)
	assert.Equal(t, int64(1024), cfg.MaxSizeBytes)

	// Unset keys keep their defaults
	assert.Equal(t, "log", cfg.Extension)
	assert.Equal(t, int64(10), cfg.FlushIntervalMs)

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := NewConfigFromFile(filepath.Join(dir, "absent.toml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.toml")
		require.NoError(t, os.WriteFile(bad, []byte("[log]\nflush_interval_ms = 0\n"), 0644))
		_, err := NewConfigFromFile(bad)
		assert.Error(t, err)
	})
}

func TestNewConfigFromDefaults(t *testing.T) {
	cfg, err := NewConfigFromDefaults(map[string]any{
		"level":          LevelWarn,
		"name":           "svc",
		"enable_console": false,
		"max_size_bytes": 2048,
	})
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, cfg.Level)
	assert.Equal(t, "svc", cfg.Name)
	assert.False(t, cfg.EnableConsole)
	assert.Equal(t, int64(2048), cfg.MaxSizeBytes)

	_, err = NewConfigFromDefaults(map[string]any{"unknown": 1})
	assert.Error(t, err)

	_, err = NewConfigFromDefaults(map[string]any{"enable_async": "yes"})
	assert.Error(t, err)
}

func TestConfigChangeClassification(t *testing.T) {
	base := DefaultConfig()

	changed := base.Clone()
	changed.FlushIntervalMs = 50
	assert.True(t, configRequiresRestart(base, changed))
	assert.False(t, configRequiresNewRun(base, changed))

	changed = base.Clone()
	changed.Directory = "/elsewhere"
	assert.True(t, configRequiresNewRun(base, changed))
	assert.False(t, configRequiresRestart(base, changed))

	changed = base.Clone()
	changed.Level = LevelError
	changed.EnableAsync = true
	assert.False(t, configRequiresRestart(base, changed))
	assert.False(t, configRequiresNewRun(base, changed))
}
