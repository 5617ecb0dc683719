package scan

import (
	"log/slog"
	"runtime"
)

const (
	defaultReadChunk   = 8 << 10
	defaultMaxTokenLen = 100
)

type config struct {
	workers     int
	readChunk   int
	maxTokenLen int
	logger      *slog.Logger
}

func defaultConfig() *config {
	return &config{
		workers:     runtime.NumCPU(),
		readChunk:   defaultReadChunk,
		maxTokenLen: defaultMaxTokenLen,
		logger:      slog.Default(),
	}
}

type Option func(*config)

// WithWorkers sets the number of parallel chunk workers. Defaults to the
// number of CPU cores.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithReadChunk sets the size in bytes of each half of a worker's double
// buffer.
func WithReadChunk(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.readChunk = n
		}
	}
}

// WithMaxTokenLen sets the fixed capacity of the token scratch buffers.
// Any station name or temperature literal longer than this is malformed.
func WithMaxTokenLen(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxTokenLen = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
