package bridgez

import (
	"sync"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	otlog "github.com/opentracing/opentracing-go/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Span drives one OpenTelemetry span through the opentracing.Span
// interface. The wrapped span is fixed at construction; the current
// SpanContext is the only mutable part and is guarded because baggage
// reads and writes may race across goroutines sharing the same Span.
// Safe for concurrent use by multiple goroutines.
type Span struct {
	otel   trace.Span
	tracer *Tracer
	mu     sync.Mutex // Guards ctx replacement for baggage reads and writes.
	ctx    SpanContext
}

var _ opentracing.Span = (*Span)(nil)

// Context returns a snapshot of the span's current SpanContext.
// The snapshot is a complete, immutable value; later baggage updates
// on the span do not affect it.
func (s *Span) Context() opentracing.SpanContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

// Tracer returns the Tracer that started this span.
func (s *Span) Tracer() opentracing.Tracer {
	return s.tracer
}

// SetOperationName renames the underlying span.
func (s *Span) SetOperationName(operationName string) opentracing.Span {
	s.otel.SetName(operationName)
	return s
}

// SetTag sets a key-value attribute on the underlying span. The
// reserved "error" tag never becomes an attribute; its value derives
// the span status instead.
func (s *Span) SetTag(key string, value interface{}) opentracing.Span {
	if key == string(ext.Error) {
		s.setStatus(value)
	} else {
		s.otel.SetAttributes(attribute.KeyValue{
			Key:   attribute.Key(key),
			Value: attributeValue(value),
		})
	}
	return s
}

// setStatus derives the span status from the rendered error tag value.
// Only the exact literals map: "true" -> Error, "false" -> Ok, any
// other value -> Unset. No truthy coercion.
func (s *Span) setStatus(value interface{}) {
	code := codes.Unset
	switch stringValue(value) {
	case "true":
		code = codes.Error
	case "false":
		code = codes.Ok
	}
	s.otel.SetStatus(code, "")
}

// SetBaggageItem replaces the span's SpanContext with a copy carrying
// the updated baggage. The swap happens under the span's lock, so
// concurrent readers see either the old or the new context in full.
func (s *Span) SetBaggageItem(restrictedKey, value string) opentracing.Span {
	s.mu.Lock()
	s.ctx = s.ctx.WithBaggageItem(restrictedKey, value)
	s.mu.Unlock()
	return s
}

// BaggageItem returns the value for the given baggage key, or the
// empty string if the key is not set.
func (s *Span) BaggageItem(restrictedKey string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, _ := s.ctx.BaggageItem(restrictedKey)
	return value
}

// LogFields records the fields as a span event. The capture time is
// chosen by the underlying span.
func (s *Span) LogFields(fields ...otlog.Field) {
	s.logFields(time.Time{}, fields)
}

// LogKV records alternating key-value pairs as a span event.
// Malformed input (odd length, non-string keys) is dropped.
func (s *Span) LogKV(alternatingKeyValues ...interface{}) {
	fields, err := otlog.InterleavedKVToFields(alternatingKeyValues...)
	if err != nil {
		return
	}
	s.logFields(time.Time{}, fields)
}

// LogEvent records a named event.
//
// Deprecated: kept for the legacy OpenTracing surface. Use LogFields
// or LogKV.
func (s *Span) LogEvent(event string) {
	s.Log(opentracing.LogData{Event: event})
}

// LogEventWithPayload records a named event with a payload.
//
// Deprecated: kept for the legacy OpenTracing surface. Use LogFields
// or LogKV.
func (s *Span) LogEventWithPayload(event string, payload interface{}) {
	s.Log(opentracing.LogData{Event: event, Payload: payload})
}

// Log records a LogData entry, carrying its timestamp when present.
//
// Deprecated: kept for the legacy OpenTracing surface. Use LogFields
// or LogKV.
func (s *Span) Log(data opentracing.LogData) {
	record := data.ToLogRecord()
	s.logFields(record.Timestamp, record.Fields)
}

// logFields translates one ordered field set into a span event.
//
// Name resolution runs on the raw fields: the first field keyed
// "event" names the event, else the name defaults to "log". Only when
// the resolved name is "error" is the event renamed to "exception" and
// the error.kind/message/stack keys rewritten onto the exception
// semantic conventions; a field merely keyed "event" does not trigger
// the rewrite. Field order is preserved in the emitted attributes.
func (s *Span) logFields(timestamp time.Time, fields []otlog.Field) {
	name := defaultEventName
	for _, field := range fields {
		if field.Key() == eventFieldKey {
			name = stringValue(field.Value())
			break
		}
	}

	isError := name == string(ext.Error)
	if isError {
		name = semconv.ExceptionEventName
	}

	attrs := make([]attribute.KeyValue, 0, len(fields))
	for _, field := range fields {
		key := attribute.Key(field.Key())
		if isError {
			switch field.Key() {
			case errorKindFieldKey:
				key = semconv.ExceptionTypeKey
			case messageFieldKey:
				key = semconv.ExceptionMessageKey
			case stackFieldKey:
				key = semconv.ExceptionStacktraceKey
			}
		}
		attrs = append(attrs, attribute.KeyValue{
			Key:   key,
			Value: attributeValue(field.Value()),
		})
	}

	opts := make([]trace.EventOption, 0, 2)
	opts = append(opts, trace.WithAttributes(attrs...))
	if !timestamp.IsZero() {
		opts = append(opts, trace.WithTimestamp(timestamp))
	}
	s.otel.AddEvent(name, opts...)
}

// Finish ends the underlying span with an end time chosen by it.
func (s *Span) Finish() {
	s.FinishWithOptions(opentracing.FinishOptions{})
}

// FinishWithOptions replays any deferred log records as events, then
// ends the underlying span. An explicit FinishTime is forwarded
// unchanged, so a monotonic clock reading carried by the time.Time
// survives into the recorded end time.
func (s *Span) FinishWithOptions(opts opentracing.FinishOptions) {
	for _, record := range opts.LogRecords {
		s.logFields(record.Timestamp, record.Fields)
	}
	for _, data := range opts.BulkLogData {
		record := data.ToLogRecord()
		s.logFields(record.Timestamp, record.Fields)
	}

	if opts.FinishTime.IsZero() {
		s.otel.End()
		return
	}
	s.otel.End(trace.WithTimestamp(opts.FinishTime))
}
