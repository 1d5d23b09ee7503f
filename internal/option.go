package internal

import "log/slog"

// Option configures the serve runtime.
type Option func(*application)

type application struct {
	config *Config
	logger *slog.Logger
}

// WithConfig sets the service configuration. RunServe fails without one.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithLogger routes server logs through an existing logger instead of the
// default JSON handler on stdout.
func WithLogger(logger *slog.Logger) Option {
	return func(a *application) {
		a.logger = logger
	}
}
