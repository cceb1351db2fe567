package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vdomkit/pkg/render"
)

// Default tracer name for vdomkit renderers.
const defaultTracerName = "vdomkit"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "vdomkit").
	TracerName string

	// Provider supplies the tracer. Default: the global provider.
	Provider trace.TracerProvider

	// Filter determines which cycles to trace.
	// If nil, all cycles are traced.
	Filter func(c *render.Cycle) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(c *render.Cycle) []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.Provider = tp
	}
}

// WithCycleFilter sets a filter function for cycles.
func WithCycleFilter(filter func(c *render.Cycle) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(c *render.Cycle) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates middleware that traces every render cycle.
//
// The middleware:
//   - starts a span named "vdomkit.render <kind>"
//   - stores the span context in the cycle (see Cycle.Context)
//   - records regions, bytes, hooks and merge points as span attributes
//   - records errors and sets the span status
//
// The tracer uses the global OpenTelemetry tracer provider unless
// WithTracerProvider is given. Configure it in main():
//
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) render.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	if config.Provider != nil {
		config.tracer = config.Provider.Tracer(config.TracerName)
	} else {
		config.tracer = otel.Tracer(config.TracerName)
	}

	return render.MiddlewareFunc(func(c *render.Cycle, next func() error) error {
		if config.Filter != nil && !config.Filter(c) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("vdomkit.cycle", string(c.Kind)),
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(c)...)
		}

		spanCtx, span := config.tracer.Start(
			c.Context(),
			"vdomkit.render "+string(c.Kind),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
			trace.WithTimestamp(time.Now()),
		)
		defer span.End()

		c.SetContext(spanCtx)

		err := next()

		span.SetAttributes(
			attribute.Int("vdomkit.regions", c.Regions),
			attribute.Int("vdomkit.bytes", c.Bytes),
			attribute.Int("vdomkit.hooks", c.Hooks),
			attribute.Int("vdomkit.merges", c.Merges),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return err
	})
}

// SpanFromCycle returns the span of the cycle, or nil when the cycle is not
// traced.
func SpanFromCycle(c *render.Cycle) trace.Span {
	span := trace.SpanFromContext(c.Context())
	if !span.SpanContext().IsValid() && !span.IsRecording() {
		return nil
	}
	return span
}

// TraceContext returns the context to propagate to calls made inside the
// cycle.
func TraceContext(c *render.Cycle) context.Context {
	return c.Context()
}
