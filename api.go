// Package bridgez lets code instrumented with the OpenTracing API drive
// spans in an OpenTelemetry tracer.
//
// bridgez translates the OpenTracing span surface onto OpenTelemetry
// primitives without owning any tracing machinery of its own: span
// recording, sampling, id generation, and export all belong to the
// wrapped OpenTelemetry tracer.
//
// Core Components:.
//   - Tracer: presents a trace.Tracer through the opentracing.Tracer interface.
//   - Span: presents a trace.Span through the opentracing.Span interface.
//   - SpanContext: immutable trace identity plus baggage, the
//     opentracing.SpanContext of every bridged span.
//
// Basic Usage:.
//
//	tp := sdktrace.NewTracerProvider(...)
//	tracer := bridgez.New(tp.Tracer("my-service"))
//
//	// Instrumented code keeps speaking OpenTracing.
//	span := tracer.StartSpan("operation-name")
//	defer span.Finish()
//
//	span.SetTag("user.id", "123")
//	span.SetBaggageItem("tenant", "acme")
//
// Mapping Rules:.
//
// The OpenTracing "error" tag never becomes an attribute; its rendered
// value derives the span status ("true" -> Error, "false" -> Ok,
// anything else -> Unset). Log calls become span events named by the
// "event" field (default "log"); an event named "error" is emitted as
// "exception" with the error.kind/message/stack fields renamed to the
// exception semantic-convention keys.
//
// Thread Safety:.
//
// Tracer is safe for concurrent use by multiple goroutines.
// Span baggage reads and writes are safe for concurrent use; the
// current SpanContext is replaced wholesale under a lock, so readers
// always observe a complete baggage set.
//
// SpanContext values are immutable. Updates return new values, and any
// snapshot taken earlier stays valid forever.
package bridgez

// Reserved OpenTracing field keys recognized during log translation.
const (
	eventFieldKey    = "event"
	defaultEventName = "log"
)

// OpenTracing log field keys rewritten onto the exception semantic
// conventions when an event resolves to the error name.
const (
	errorKindFieldKey = "error.kind"
	messageFieldKey   = "message"
	stackFieldKey     = "stack"
)
