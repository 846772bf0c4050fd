package compat

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/flog"
	"github.com/valyala/fasthttp"
)

const fasthttpModule = "fasthttp"

var _ fasthttp.Logger = (*FastHTTPAdapter)(nil)

// FastHTTPAdapter implements fasthttp's Logger on a flog module handle
type FastHTTPAdapter struct {
	module        *flog.Module
	defaultLevel  int64
	levelDetector func(string) (int64, bool) // Detects the level from message content
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter
func NewFastHTTPAdapter(logger *flog.Logger, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		module:        logger.Module(fasthttpModule),
		defaultLevel:  flog.LevelInfo,
		levelDetector: DetectLogLevel,
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the level used when no level is detected
func WithDefaultLevel(level int64) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector sets a custom function to detect log level from message content.
// A nil detector logs everything at the default level.
func WithLevelDetector(detector func(string) (int64, bool)) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmtMessage(format, args)

	level := a.defaultLevel
	if a.levelDetector != nil {
		if detected, ok := a.levelDetector(msg); ok {
			level = detected
		}
	}

	a.module.Output(2, level, "%s", msg)
}

// DetectLogLevel guesses a level from keywords in msg. ok is false when
// nothing matched.
func DetectLogLevel(msg string) (level int64, ok bool) {
	msgLower := strings.ToLower(msg)

	switch {
	case strings.Contains(msgLower, "error") ||
		strings.Contains(msgLower, "failed") ||
		strings.Contains(msgLower, "fatal") ||
		strings.Contains(msgLower, "panic"):
		return flog.LevelError, true

	case strings.Contains(msgLower, "warn") ||
		strings.Contains(msgLower, "deprecated"):
		return flog.LevelWarn, true

	case strings.Contains(msgLower, "debug") ||
		strings.Contains(msgLower, "trace"):
		return flog.LevelDebug, true
	}

	return 0, false
}

func fmtMessage(format string, args []any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
