package compat

import (
	"fmt"

	"github.com/lixenwraith/flog"
)

// Builder creates logger adapters for gnet and fasthttp.
// It can use an existing *flog.Logger instance or create a new one from a *flog.Config
type Builder struct {
	logger *flog.Logger
	logCfg *flog.Config
	err    error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger specifies an existing logger to use for the adapters.
// If this is set WithConfig is ignored
func (b *Builder) WithLogger(l *flog.Logger) *Builder {
	if l == nil {
		b.err = fmt.Errorf("flog/compat: provided logger cannot be nil")
		return b
	}
	b.logger = l
	return b
}

// WithConfig provides a configuration for a new logger instance.
// If neither WithLogger nor WithConfig is used, a default logger is created
func (b *Builder) WithConfig(cfg *flog.Config) *Builder {
	b.logCfg = cfg
	return b
}

// getLogger resolves the logger to be used, creating and starting one if necessary
func (b *Builder) getLogger() (*flog.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.logger != nil {
		return b.logger, nil
	}

	l := flog.NewLogger()
	cfg := b.logCfg
	if cfg == nil {
		cfg = flog.DefaultConfig()
	}

	if err := l.ApplyConfig(cfg); err != nil {
		return nil, err
	}
	if err := l.Start(); err != nil {
		return nil, err
	}

	// Cache the newly created logger for subsequent builds with this builder
	b.logger = l
	return l, nil
}

// BuildGnet creates a gnet adapter logging under the "gnet" module
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter logging under the "fasthttp" module
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

// GetLogger returns the underlying *flog.Logger instance.
// If a logger has not been provided or created yet, it is initialized
func (b *Builder) GetLogger() (*flog.Logger, error) {
	return b.getLogger()
}
