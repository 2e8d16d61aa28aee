package grove

import "go.uber.org/zap"

// Option configures a [Registry] during construction.
type Option func(*Registry)

// WithLogger sets the logger used for registry and scope-tree diagnostics.
// Events are emitted at debug level; the default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}
