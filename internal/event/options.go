package event

import (
	"io"
	"log/slog"
)

// BusOption configures an event Bus.
type BusOption func(*busConfig)

// busConfig contains configuration for the event bus.
type busConfig struct {
	// panicHandler is called when a handler panics.
	panicHandler PanicHandler

	// logger receives subscription changes and recovered panics.
	logger *slog.Logger
}

// defaultBusConfig returns the default bus configuration.
func defaultBusConfig() busConfig {
	return busConfig{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithPanicHandler sets the handler called when a subscriber panics.
// Dispatch continues with the next subscriber either way.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(c *busConfig) {
		c.panicHandler = h
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) BusOption {
	return func(c *busConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
