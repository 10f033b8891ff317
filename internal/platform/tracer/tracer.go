// Package tracer is a thin tracing interface so the issuance and scenario
// packages can emit spans without importing OpenTelemetry directly.
//
// Implementations:
//   - NoopTracer: tests and the CLI
//   - RecordingTracer: tests that assert on emitted spans
//   - OTelTracer: OpenTelemetry adapter for the server
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span. A non-nil err marks it failed.
	// End must be called exactly once, typically via defer.
	End(err error)

	SetAttributes(attrs ...Attribute)

	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a span; the returned context carries it to child operations.
	//
	//   ctx, span := tr.Start(ctx, tracer.SpanIssuanceReview,
	//       tracer.String(tracer.AttrDocType, string(doc.DocType)),
	//   )
	//   defer span.End(nil)
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Float64(key string, value float64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanIssuanceReview   = "issuance.review"
	SpanScenarioGenerate = "scenario.generate"
	SpanScenarioReply    = "scenario.reply"
	SpanModelCall        = "scenario.model.call"
)

// Attribute keys.
const (
	AttrNationalIDHash = "national_id_hash"
	AttrDocType        = "doc_type"
	AttrVerdict        = "verdict.category"
	AttrSelfIssued     = "self_issued"
	AttrProvider       = "provider"
	AttrAttempt        = "attempt"
	AttrMissionType    = "mission_type"
	AttrDay            = "day"
	AttrFallback       = "fallback"
	AttrCircuitOpen    = "circuit.open"
)

// Event names.
const (
	EventRetry        = "retry"
	EventFallbackUsed = "fallback.used"
)
