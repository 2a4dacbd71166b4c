package meshgo

type options struct {
	logger                *Logger
	metrics               MetricsCollector
	degenerateEps         float64
	maxDegenerateFraction float64
	parallelism           int
}

// Option configures Surface construction behavior.
type Option func(*options)

// WithLogger configures the structured logger. If nil is passed, logging is
// disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics configures the metrics collector. If nil is passed, metrics
// collection is disabled.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithDegenerateEps configures the face area below which a face counts as
// degenerate for operator assembly and checking.
func WithDegenerateEps(eps float64) Option {
	return func(o *options) {
		o.degenerateEps = eps
	}
}

// WithMaxDegenerateFraction configures the fraction of degenerate faces
// above which operator assembly fails with ErrDegenerateMesh.
func WithMaxDegenerateFraction(frac float64) Option {
	return func(o *options) {
		o.maxDegenerateFraction = frac
	}
}

// WithParallelism bounds the number of goroutines used by batch quantity
// evaluation. Values below 1 fall back to GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}
