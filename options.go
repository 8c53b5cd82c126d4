package wordnet

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/cours-de-latin/wordnet"

type options struct {
	logger   *Logger
	parallel bool
	tracer   trace.Tracer
}

// Option configures a Dictionary.
type Option func(*options)

func buildOptions(opts []Option) options {
	o := options{
		logger:   NoopLogger(),
		parallel: true,
		tracer:   otel.Tracer(tracerName),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithLogger sets the logger used while loading and writing.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithParallelLoad controls whether the per-part-of-speech files are
// parsed concurrently. Enabled by default.
func WithParallelLoad(enabled bool) Option {
	return func(o *options) { o.parallel = enabled }
}

// WithTracer sets the tracer that receives load and write spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}
