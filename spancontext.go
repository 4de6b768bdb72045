package bridgez

import (
	"github.com/opentracing/opentracing-go"
	"go.opentelemetry.io/otel/baggage"
	"go.opentelemetry.io/otel/trace"
)

// SpanContext pairs a fixed OpenTelemetry span identity with an
// immutable baggage set behind the opentracing.SpanContext interface.
//
// SpanContext has value semantics: updates return a new value and the
// receiver is never modified, so snapshots held by concurrent readers
// or earlier Clone calls stay valid indefinitely.
type SpanContext struct {
	sc  trace.SpanContext
	bag baggage.Baggage
}

var _ opentracing.SpanContext = SpanContext{}

// NewSpanContext creates a SpanContext from an OpenTelemetry span
// context and an initial baggage set.
func NewSpanContext(sc trace.SpanContext, bag baggage.Baggage) SpanContext {
	return SpanContext{sc: sc, bag: bag}
}

// Context returns the underlying OpenTelemetry span context.
// The identity is fixed at construction and never altered.
func (c SpanContext) Context() trace.SpanContext {
	return c.sc
}

// Baggage returns the baggage set carried by this context.
func (c SpanContext) Baggage() baggage.Baggage {
	return c.bag
}

// WithBaggageItem returns a new SpanContext sharing this context's
// identity and carrying baggage with key set to value, overwriting any
// prior value for that key. Keys or values the baggage container
// rejects leave the context unchanged.
func (c SpanContext) WithBaggageItem(key, value string) SpanContext {
	member, err := baggage.NewMemberRaw(key, value)
	if err != nil {
		return c
	}
	bag, err := c.bag.SetMember(member)
	if err != nil {
		return c
	}
	return SpanContext{sc: c.sc, bag: bag}
}

// BaggageItem returns the value for key and whether the key is present.
func (c SpanContext) BaggageItem(key string) (string, bool) {
	member := c.bag.Member(key)
	if member.Key() == "" {
		return "", false
	}
	return member.Value(), true
}

// ForeachBaggageItem calls handler for each baggage item, stopping
// early the first time handler returns false. The iteration order is
// unspecified but stable within a single call.
func (c SpanContext) ForeachBaggageItem(handler func(k, v string) bool) {
	for _, member := range c.bag.Members() {
		if !handler(member.Key(), member.Value()) {
			return
		}
	}
}

// TraceID renders the 128-bit trace id as 32 lowercase hex characters.
func (c SpanContext) TraceID() string {
	return c.sc.TraceID().String()
}

// SpanID renders the 64-bit span id as 16 lowercase hex characters.
func (c SpanContext) SpanID() string {
	return c.sc.SpanID().String()
}

// Clone returns an independent copy carrying the same identity and the
// same baggage reference. The baggage is immutable, so sharing the
// reference is safe.
func (c SpanContext) Clone() SpanContext {
	return SpanContext{sc: c.sc, bag: c.bag}
}
