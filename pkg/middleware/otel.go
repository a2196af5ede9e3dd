package middleware

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "a11ydocs"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "a11ydocs").
	TracerName string

	// IncludePage adds the page path to spans. Enabled by default.
	IncludePage bool

	// Filter reports whether an event is traced. If nil, all events are.
	Filter func(ev *Event) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(ev *Event) []attribute.KeyValue

	// Provider overrides the global tracer provider.
	Provider trace.TracerProvider

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

// WithIncludePage enables or disables the page attribute.
func WithIncludePage(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludePage = include
	}
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(ev *Event) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ev *Event) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// WithTracerProvider sets the tracer provider used instead of the global one.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.Provider = tp
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:  defaultTracerName,
		IncludePage: true,
	}
}

// OpenTelemetry returns middleware that starts a span for each widget event.
// The span context replaces the event context, so later middleware and the
// handler see it. Failed events record the error and an error status.
//
// Without WithTracerProvider the global provider is used; configure it with
// otel.SetTracerProvider before serving.
func OpenTelemetry(opts ...OTelOption) Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Provider != nil {
		config.tracer = config.Provider.Tracer(config.TracerName)
	} else {
		config.tracer = otel.Tracer(config.TracerName)
	}

	return func(ev *Event, next func() error) error {
		if config.Filter != nil && !config.Filter(ev) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("a11ydocs.session_id", ev.SessionID),
			attribute.String("a11ydocs.event_type", ev.Type),
			attribute.String("a11ydocs.widget_id", ev.WidgetID),
			attribute.String("a11ydocs.option_name", ev.OptionName()),
		}
		if config.IncludePage {
			attrs = append(attrs, attribute.String("a11ydocs.page", ev.Page))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(ev)...)
		}

		ctx, span := config.tracer.Start(ev.Context(), spanName(ev),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()
		ev.WithContext(ctx)

		err := next()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}

		if ev.Widget != nil {
			span.SetAttributes(attribute.String("a11ydocs.state", ev.Widget.State().String()))
		}
		span.SetStatus(codes.Ok, "")
		return nil
	}
}

// SpanFromEvent returns the span carried by the event's context. It returns
// a non-recording span when the event was not traced.
func SpanFromEvent(ev *Event) trace.Span {
	return trace.SpanFromContext(ev.Context())
}

func spanName(ev *Event) string {
	if ev.Type == "" {
		return "a11ydocs.event"
	}
	return "a11ydocs." + ev.Type
}
