package hrc

import (
	"io"
	"log/slog"
)

type readConfig struct {
	limits Limits
	logger *slog.Logger
}

type ReadOption func(*readConfig)

func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

// WithReadLogger routes decode diagnostics to l. The default discards them.
func WithReadLogger(l *slog.Logger) ReadOption {
	return func(c *readConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

func newReadConfig(opts []ReadOption) readConfig {
	cfg := readConfig{limits: defaultLimits(), logger: discardLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	return cfg
}

type writeConfig struct {
	limits      Limits
	compression Compression
	lenientJSON bool
	logger      *slog.Logger
}

type WriteOption func(*writeConfig)

func WithWriteLimits(l Limits) WriteOption {
	return func(c *writeConfig) { c.limits = l }
}

func WithCompression(comp Compression) WriteOption {
	return func(c *writeConfig) { c.compression = comp }
}

// WithLenientJSON lets .json sources carry comments and trailing commas.
// They are stripped before parsing and do not survive the round trip.
func WithLenientJSON(v bool) WriteOption {
	return func(c *writeConfig) { c.lenientJSON = v }
}

// WithLogger routes encode diagnostics to l. The default discards them.
func WithLogger(l *slog.Logger) WriteOption {
	return func(c *writeConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

func newWriteConfig(opts []WriteOption) writeConfig {
	cfg := writeConfig{
		limits:      defaultLimits(),
		compression: DefaultCompression,
		logger:      discardLogger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
