package lang

import "github.com/ardnew/constx/log"

// DefaultMaxDepth is the default limit on list nesting.
const DefaultMaxDepth = 1000

// options holds the settings shared by a parse session and its evaluator.
type options struct {
	logger   log.Logger
	maxDepth int
}

// Option configures parsing and evaluation.
type Option func(*options)

func makeOptions(opts ...Option) options {
	o := options{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.maxDepth <= 0 {
		o.maxDepth = DefaultMaxDepth
	}

	return o
}

// WithMaxDepth sets the maximum nesting depth of list expressions.
// A value less than 1 selects [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
