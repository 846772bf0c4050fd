package compat

import (
	"os"
	"time"

	"github.com/lixenwraith/flog"
	"github.com/panjf2000/gnet/v2/pkg/logging"
)

const gnetModule = "gnet"

var _ logging.Logger = (*GnetAdapter)(nil)

// GnetAdapter implements gnet's logging.Logger on a flog module handle.
// Records carry gnet's call site, not the adapter's.
type GnetAdapter struct {
	module       *flog.Module
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *flog.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		module: logger.Module(gnetModule),
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// WithGnetModule overrides the module name of gnet records
func WithGnetModule(name string) GnetOption {
	return func(a *GnetAdapter) {
		a.module = a.module.Logger().Module(name)
	}
}

func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.module.Output(2, flog.LevelDebug, format, args...)
}

func (a *GnetAdapter) Infof(format string, args ...any) {
	a.module.Output(2, flog.LevelInfo, format, args...)
}

func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.module.Output(2, flog.LevelWarn, format, args...)
}

func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.module.Output(2, flog.LevelError, format, args...)
}

// Fatalf logs at fatal level, flushes, then runs the fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	a.module.Output(2, flog.LevelFatal, format, args...)

	_ = a.module.Logger().Flush(100 * time.Millisecond)

	if a.fatalHandler != nil {
		a.fatalHandler(fmtMessage(format, args))
	}
}
