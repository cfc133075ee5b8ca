package widening

import (
	"go.opentelemetry.io/otel/trace"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	tracerProvider   trace.TracerProvider
}

// Option configures calculator construction.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// WithLogger configures structured logging for runs and rounds.
// Rounds are logged at debug level.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &widening.BasicMetricsCollector{}
//	calc, _ := widening.NewCalculator(refiner, sel, widening.WithMetricsCollector(metrics))
//	calc.Run(ctx, start)
//	stats := metrics.GetStats()
//	fmt.Printf("Rounds: %d\n", stats.RoundCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithTracerProvider configures the OpenTelemetry tracer provider.
// If unset, the global provider (otel.GetTracerProvider) is used.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

func applyOptions(optFns []Option) options {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}
