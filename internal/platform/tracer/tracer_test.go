package tracer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"govos/internal/platform/tracer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestNoopTracer_Start(t *testing.T) {
	tr := tracer.NewNoop()
	ctx := context.Background()

	newCtx, span := tr.Start(ctx, tracer.SpanIssuanceReview, tracer.String(tracer.AttrDocType, "seal_cert"))

	assert.Equal(t, ctx, newCtx)
	require.NotNil(t, span)
	span.SetAttributes(tracer.Bool(tracer.AttrSelfIssued, false))
	span.AddEvent(tracer.EventRetry, tracer.Int64(tracer.AttrAttempt, 2))
	span.End(errors.New("ignored"))
}

func TestRecordingTracer(t *testing.T) {
	tr := tracer.NewRecording()

	_, span := tr.Start(context.Background(), tracer.SpanScenarioGenerate, tracer.Int64(tracer.AttrDay, 3))
	span.AddEvent(tracer.EventFallbackUsed)
	span.SetAttributes(tracer.Bool(tracer.AttrFallback, true))
	span.End(errors.New("model down"))

	got, ok := tr.Find(tracer.SpanScenarioGenerate)
	require.True(t, ok)
	assert.Equal(t, int64(3), got.Attributes[tracer.AttrDay])
	assert.Equal(t, true, got.Attributes[tracer.AttrFallback])
	assert.Equal(t, []string{tracer.EventFallbackUsed}, got.Events)
	assert.EqualError(t, got.Err, "model down")

	_, ok = tr.Find("missing")
	assert.False(t, ok)
}

func TestOTelTracer_WithNoopProvider(t *testing.T) {
	tr := tracer.NewOTel("govos/test", tracer.WithOTelTracer(noop.NewTracerProvider().Tracer("test")))

	ctx, span := tr.Start(context.Background(), tracer.SpanModelCall,
		tracer.String(tracer.AttrProvider, "gemini"),
		tracer.Duration("latency", 150*time.Millisecond),
	)

	require.NotNil(t, ctx)
	span.AddEvent(tracer.EventRetry)
	span.End(nil)
}

func TestAttributeConstructors(t *testing.T) {
	assert.Equal(t, tracer.Attribute{Key: "k", Value: "v"}, tracer.String("k", "v"))
	assert.Equal(t, int64(42), tracer.Int64("n", 42).Value)
	assert.Equal(t, 3.14, tracer.Float64("f", 3.14).Value)
	assert.Equal(t, int64(150), tracer.Duration("d", 150*time.Millisecond).Value)
}
