package catalog

import "log/slog"

type options struct {
	logger *slog.Logger
}

// Option configures a loader
type Option func(*options)

// WithLogger sets the loader's logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}
