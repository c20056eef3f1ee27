package httpserver

import (
	"context"
	"log/slog"
	"time"
)

// Option configures the HTTP server.
type Option func(*config)

func WithAddr(addr string) Option {
	if addr == "" {
		panic("WithAddr: addr cannot be empty")
	}
	return func(c *config) { c.addr = addr }
}

func WithReadTimeout(d time.Duration) Option {
	return durationOption("WithReadTimeout", d, func(c *config) { c.readTimeout = d })
}

func WithWriteTimeout(d time.Duration) Option {
	return durationOption("WithWriteTimeout", d, func(c *config) { c.writeTimeout = d })
}

func WithIdleTimeout(d time.Duration) Option {
	return durationOption("WithIdleTimeout", d, func(c *config) { c.idleTimeout = d })
}

// WithShutdownTimeout bounds how long in-flight requests may drain.
func WithShutdownTimeout(d time.Duration) Option {
	return durationOption("WithShutdownTimeout", d, func(c *config) { c.shutdownTimeout = d })
}

func durationOption(name string, d time.Duration, apply Option) Option {
	if d <= 0 {
		panic(name + ": duration must be > 0")
	}
	return apply
}

// WithLogger sets the logger for lifecycle events and http.Server errors.
// Nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStartHook runs h with the bound address once the server listens.
func WithStartHook(h func(ctx context.Context, addr string)) Option {
	if h == nil {
		panic("WithStartHook: nil hook")
	}
	return func(c *config) { c.startHooks = append(c.startHooks, h) }
}

// WithStopHook runs h after the server has drained.
func WithStopHook(h func(ctx context.Context)) Option {
	if h == nil {
		panic("WithStopHook: nil hook")
	}
	return func(c *config) { c.stopHooks = append(c.stopHooks, h) }
}
