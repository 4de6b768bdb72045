package bridgez

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/zoobzio/clockz"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/baggage"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Tracer presents an OpenTelemetry tracer through the
// opentracing.Tracer interface.
// Safe for concurrent use by multiple goroutines.
type Tracer struct {
	tracer trace.Tracer
	clock  clockz.Clock
}

var _ opentracing.Tracer = (*Tracer)(nil)

// New creates a bridge tracer emitting into the given OpenTelemetry
// tracer. Uses the real clock for production behavior.
func New(tracer trace.Tracer) *Tracer {
	return &Tracer{
		tracer: tracer,
		clock:  clockz.RealClock,
	}
}

// WithClock returns a new tracer with the specified clock.
// Enables clock injection for deterministic testing.
func (t *Tracer) WithClock(clock clockz.Clock) *Tracer {
	return &Tracer{
		tracer: t.tracer,
		clock:  clock,
	}
}

// StartSpan creates a new bridged span.
//
// The first ChildOfRef reference carrying a bridge SpanContext becomes
// the parent, else the first usable reference does. Every usable
// reference additionally becomes a link tagged with its OpenTracing
// reference type. The new span's initial baggage is the union of the
// references' baggage (first key wins), or empty when there are no
// references. Initial tags are set at creation time, except the error
// tag, which derives the span status after creation.
func (t *Tracer) StartSpan(operationName string, opts ...opentracing.StartSpanOption) opentracing.Span {
	var sso opentracing.StartSpanOptions
	for _, o := range opts {
		o.Apply(&sso)
	}

	ctx := context.Background()
	if parent, ok := parentSpanContext(sso.References); ok {
		ctx = trace.ContextWithSpanContext(ctx, parent.Context())
	}

	startTime := sso.StartTime
	if startTime.IsZero() {
		startTime = t.clock.Now()
	}

	startOpts := make([]trace.SpanStartOption, 0, 3)
	startOpts = append(startOpts, trace.WithTimestamp(startTime))
	if links := referenceLinks(sso.References); len(links) > 0 {
		startOpts = append(startOpts, trace.WithLinks(links...))
	}

	var errorValue interface{}
	var hasError bool
	attrs := make([]attribute.KeyValue, 0, len(sso.Tags))
	for key, value := range sso.Tags {
		if key == string(ext.Error) {
			errorValue, hasError = value, true
			continue
		}
		attrs = append(attrs, attribute.KeyValue{
			Key:   attribute.Key(key),
			Value: attributeValue(value),
		})
	}
	if len(attrs) > 0 {
		startOpts = append(startOpts, trace.WithAttributes(attrs...))
	}

	_, otelSpan := t.tracer.Start(ctx, operationName, startOpts...)

	span := &Span{
		otel:   otelSpan,
		tracer: t,
		ctx:    NewSpanContext(otelSpan.SpanContext(), referenceBaggage(sso.References)),
	}
	if hasError {
		span.setStatus(errorValue)
	}
	return span
}

// Inject is unsupported; the bridge carries no propagation formats.
func (t *Tracer) Inject(sm opentracing.SpanContext, format interface{}, carrier interface{}) error {
	return opentracing.ErrUnsupportedFormat
}

// Extract is unsupported; the bridge carries no propagation formats.
func (t *Tracer) Extract(format interface{}, carrier interface{}) (opentracing.SpanContext, error) {
	return nil, opentracing.ErrUnsupportedFormat
}

// asSpanContext recovers a bridge SpanContext from an OpenTracing
// reference. References created by foreign tracers are ignored.
func asSpanContext(sc opentracing.SpanContext) (SpanContext, bool) {
	switch c := sc.(type) {
	case SpanContext:
		return c, true
	case *SpanContext:
		if c != nil {
			return *c, true
		}
	}
	return SpanContext{}, false
}

// parentSpanContext picks the parent for a new span: the first
// ChildOfRef reference in the list, else the first usable reference.
func parentSpanContext(refs []opentracing.SpanReference) (SpanContext, bool) {
	var first SpanContext
	var found bool
	for _, ref := range refs {
		sc, ok := asSpanContext(ref.ReferencedContext)
		if !ok {
			continue
		}
		if ref.Type == opentracing.ChildOfRef {
			return sc, true
		}
		if !found {
			first, found = sc, true
		}
	}
	return first, found
}

// referenceLinks converts span references into links, each carrying
// the opentracing.ref_type attribute naming its reference type.
func referenceLinks(refs []opentracing.SpanReference) []trace.Link {
	links := make([]trace.Link, 0, len(refs))
	for _, ref := range refs {
		sc, ok := asSpanContext(ref.ReferencedContext)
		if !ok {
			continue
		}

		var refType attribute.KeyValue
		switch ref.Type {
		case opentracing.ChildOfRef:
			refType = semconv.OpentracingRefTypeChildOf
		case opentracing.FollowsFromRef:
			refType = semconv.OpentracingRefTypeFollowsFrom
		default:
			continue
		}

		links = append(links, trace.Link{
			SpanContext: sc.Context(),
			Attributes:  []attribute.KeyValue{refType},
		})
	}
	return links
}

// referenceBaggage builds the initial baggage of a new span as the
// union of all references' baggage. Which value survives a repeated
// key is unspecified; here the first occurrence wins.
func referenceBaggage(refs []opentracing.SpanReference) baggage.Baggage {
	var members []baggage.Member
	seen := make(map[string]bool)
	for _, ref := range refs {
		sc, ok := asSpanContext(ref.ReferencedContext)
		if !ok {
			continue
		}
		sc.ForeachBaggageItem(func(k, v string) bool {
			if seen[k] {
				return true
			}
			seen[k] = true
			if member, err := baggage.NewMemberRaw(k, v); err == nil {
				members = append(members, member)
			}
			return true
		})
	}

	if len(members) == 0 {
		return baggage.Baggage{}
	}
	bag, err := baggage.New(members...)
	if err != nil {
		return baggage.Baggage{}
	}
	return bag
}
