package bridgez

import (
	"testing"

	"go.opentelemetry.io/otel/baggage"
	"go.opentelemetry.io/otel/trace"
)

func testIdentity() trace.SpanContext {
	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10},
		SpanID:     trace.SpanID{0xa1, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6, 0xa7, 0xa8},
		TraceFlags: trace.FlagsSampled,
	})
}

func TestSpanContextWithBaggageItem(t *testing.T) {
	ctx := NewSpanContext(testIdentity(), baggage.Baggage{})

	updated := ctx.WithBaggageItem("tenant", "acme")

	value, ok := updated.BaggageItem("tenant")
	if !ok {
		t.Fatal("Expected key to be present after update")
	}
	if value != "acme" {
		t.Errorf("Expected value acme, got %s", value)
	}

	// The original must be untouched.
	if _, ok := ctx.BaggageItem("tenant"); ok {
		t.Error("Expected original context to remain without the key")
	}

	// Identity is shared, never altered.
	if !updated.Context().Equal(ctx.Context()) {
		t.Error("Expected updated context to share the same identity")
	}
}

func TestSpanContextLastWriteWins(t *testing.T) {
	ctx := NewSpanContext(testIdentity(), baggage.Baggage{})

	ctx = ctx.WithBaggageItem("tenant", "first")
	ctx = ctx.WithBaggageItem("tenant", "second")

	value, ok := ctx.BaggageItem("tenant")
	if !ok {
		t.Fatal("Expected key to be present")
	}
	if value != "second" {
		t.Errorf("Expected second, got %s", value)
	}
}

func TestSpanContextBaggageItemMissing(t *testing.T) {
	ctx := NewSpanContext(testIdentity(), baggage.Baggage{})

	value, ok := ctx.BaggageItem("missing")
	if ok {
		t.Error("Expected missing key to report absent")
	}
	if value != "" {
		t.Errorf("Expected empty value for missing key, got %s", value)
	}
}

func TestSpanContextInvalidKeyLeavesContextUnchanged(t *testing.T) {
	ctx := NewSpanContext(testIdentity(), baggage.Baggage{}).WithBaggageItem("tenant", "acme")

	// A key the baggage container rejects must not fail or mutate.
	updated := ctx.WithBaggageItem("bad key", "value")

	if len(updated.Baggage().Members()) != 1 {
		t.Errorf("Expected 1 baggage member, got %d", len(updated.Baggage().Members()))
	}
	if value, _ := updated.BaggageItem("tenant"); value != "acme" {
		t.Errorf("Expected surviving member tenant=acme, got %s", value)
	}
}

func TestSpanContextForeachBaggageItem(t *testing.T) {
	ctx := NewSpanContext(testIdentity(), baggage.Baggage{})
	ctx = ctx.WithBaggageItem("a", "1")
	ctx = ctx.WithBaggageItem("b", "2")
	ctx = ctx.WithBaggageItem("c", "3")

	seen := make(map[string]string)
	ctx.ForeachBaggageItem(func(k, v string) bool {
		seen[k] = v
		return true
	})

	if len(seen) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(seen))
	}
	for key, want := range map[string]string{"a": "1", "b": "2", "c": "3"} {
		if seen[key] != want {
			t.Errorf("Expected %s=%s, got %s", key, want, seen[key])
		}
	}
}

func TestSpanContextForeachBaggageItemEarlyExit(t *testing.T) {
	ctx := NewSpanContext(testIdentity(), baggage.Baggage{})
	ctx = ctx.WithBaggageItem("a", "1")
	ctx = ctx.WithBaggageItem("b", "2")
	ctx = ctx.WithBaggageItem("c", "3")

	calls := 0
	ctx.ForeachBaggageItem(func(k, v string) bool {
		calls++
		return false
	})

	if calls != 1 {
		t.Errorf("Expected iteration to stop after 1 call, got %d", calls)
	}
}

func TestSpanContextIDRendering(t *testing.T) {
	ctx := NewSpanContext(testIdentity(), baggage.Baggage{})

	traceID := ctx.TraceID()
	if traceID != "0102030405060708090a0b0c0d0e0f10" {
		t.Errorf("Expected 0102030405060708090a0b0c0d0e0f10, got %s", traceID)
	}
	if len(traceID) != 32 { // 16 bytes = 32 hex chars.
		t.Errorf("Expected trace ID length 32, got %d", len(traceID))
	}

	spanID := ctx.SpanID()
	if spanID != "a1a2a3a4a5a6a7a8" {
		t.Errorf("Expected a1a2a3a4a5a6a7a8, got %s", spanID)
	}
	if len(spanID) != 16 { // 8 bytes = 16 hex chars.
		t.Errorf("Expected span ID length 16, got %d", len(spanID))
	}
}

func TestSpanContextClone(t *testing.T) {
	ctx := NewSpanContext(testIdentity(), baggage.Baggage{}).WithBaggageItem("tenant", "acme")

	clone := ctx.Clone()

	if !clone.Context().Equal(ctx.Context()) {
		t.Error("Expected clone to carry the same identity")
	}
	if value, _ := clone.BaggageItem("tenant"); value != "acme" {
		t.Errorf("Expected clone baggage tenant=acme, got %s", value)
	}

	// Updating the clone must not leak into the original.
	clone = clone.WithBaggageItem("region", "eu")
	if _, ok := ctx.BaggageItem("region"); ok {
		t.Error("Expected original context to remain without the clone's key")
	}
}
