package tracer

import (
	"context"
	"sync"
)

// RecordedSpan is a finished span captured by RecordingTracer.
type RecordedSpan struct {
	Name       string
	Attributes map[string]any
	Events     []string
	Err        error
}

// RecordingTracer keeps finished spans in memory.
type RecordingTracer struct {
	mu    sync.Mutex
	spans []RecordedSpan
}

func NewRecording() *RecordingTracer {
	return &RecordingTracer{}
}

func (t *RecordingTracer) Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span) {
	s := &recordingSpan{parent: t, span: RecordedSpan{Name: name, Attributes: map[string]any{}}}
	s.SetAttributes(attrs...)
	return ctx, s
}

// Spans returns a copy of the finished spans in end order.
func (t *RecordingTracer) Spans() []RecordedSpan {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]RecordedSpan, len(t.spans))
	copy(out, t.spans)
	return out
}

// Find returns the last finished span with the given name.
func (t *RecordingTracer) Find(name string) (RecordedSpan, bool) {
	spans := t.Spans()
	for i := len(spans) - 1; i >= 0; i-- {
		if spans[i].Name == name {
			return spans[i], true
		}
	}
	return RecordedSpan{}, false
}

type recordingSpan struct {
	parent *RecordingTracer
	mu     sync.Mutex
	span   RecordedSpan
}

func (s *recordingSpan) End(err error) {
	s.mu.Lock()
	s.span.Err = err
	finished := s.span
	s.mu.Unlock()

	s.parent.mu.Lock()
	s.parent.spans = append(s.parent.spans, finished)
	s.parent.mu.Unlock()
}

func (s *recordingSpan) SetAttributes(attrs ...Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range attrs {
		s.span.Attributes[a.Key] = a.Value
	}
}

func (s *recordingSpan) AddEvent(name string, _ ...Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.span.Events = append(s.span.Events, name)
}

var (
	_ Tracer = (*RecordingTracer)(nil)
	_ Span   = (*recordingSpan)(nil)
)
