package container

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Options configures a Container at construction time.
type Options struct {
	// DefaultToShared makes Add behave like AddShared.
	DefaultToShared bool
	// DefaultToOverwrite is ORed with every per-call overwrite flag.
	DefaultToOverwrite bool
	// Logger receives debug traces of resolution. Nil discards them.
	Logger logrus.FieldLogger
}

// Option mutates Options.
type Option func(*Options)

// WithDefaultToShared sets Options.DefaultToShared.
func WithDefaultToShared(shared bool) Option {
	return func(o *Options) { o.DefaultToShared = shared }
}

// WithDefaultToOverwrite sets Options.DefaultToOverwrite.
func WithDefaultToOverwrite(overwrite bool) Option {
	return func(o *Options) { o.DefaultToOverwrite = overwrite }
}

// WithLogger routes container traces to logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *Options) { o.Logger = logger }
}

func newOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.Logger = l
	}
	return o
}
