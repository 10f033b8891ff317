package scenario

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"govos/internal/platform/tracer"
	"govos/internal/scenario/metrics"
	dErrors "govos/pkg/domain-errors"
	"govos/pkg/platform/circuit"
)

// BackoffConfig configures retries of retryable model errors.
type BackoffConfig struct {
	InitialDelay time.Duration // delay before the second attempt
	Multiplier   float64
	MaxAttempts  int
}

// DefaultBackoff makes three attempts, waiting 1s then 2s.
var DefaultBackoff = BackoffConfig{InitialDelay: time.Second, Multiplier: 2, MaxAttempts: 3}

// DefaultTimeout bounds one Generate or Reply call including retries.
const DefaultTimeout = 30 * time.Second

// Director implements Generator and Replier on top of a Model.
type Director struct {
	model   Model
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
	breaker *circuit.Breaker
	backoff BackoffConfig
	timeout time.Duration
	clock   func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures the Director.
type Option func(*Director)

func WithLogger(l *slog.Logger) Option {
	return func(d *Director) {
		d.logger = l
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Director) {
		d.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(d *Director) {
		d.tracer = t
	}
}

// WithBreaker replaces the default breaker (5 failures to open, 3 probes to close).
func WithBreaker(b *circuit.Breaker) Option {
	return func(d *Director) {
		d.breaker = b
	}
}

func WithBackoff(b BackoffConfig) Option {
	return func(d *Director) {
		if b.MaxAttempts > 0 {
			d.backoff = b
		}
	}
}

// WithTimeout bounds each Generate and Reply call. Zero disables the bound.
func WithTimeout(t time.Duration) Option {
	return func(d *Director) {
		d.timeout = t
	}
}

// WithSeed makes the local randomness reproducible.
func WithSeed(seed uint64) Option {
	return func(d *Director) {
		d.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

func WithClock(clock func() time.Time) Option {
	return func(d *Director) {
		d.clock = clock
	}
}

func NewDirector(model Model, opts ...Option) *Director {
	d := &Director{
		model:   model,
		logger:  slog.New(slog.DiscardHandler),
		tracer:  tracer.NewNoop(),
		breaker: circuit.New("scenario_model"),
		backoff: DefaultBackoff,
		timeout: DefaultTimeout,
		clock:   time.Now,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Provider names the underlying model.
func (d *Director) Provider() string { return d.model.ID() }

// Check reports the model as unavailable while its circuit is open. Requests
// are still answered with fallbacks meanwhile.
func (d *Director) Check(_ context.Context) error {
	if d.breaker.IsOpen() {
		return dErrors.New(dErrors.CodeUnavailable, "scenario model circuit open")
	}
	return nil
}

// Generate produces the scenario for day. Model failures are logged and
// answered with the fallback scenario.
func (d *Director) Generate(ctx context.Context, day int) (Scenario, error) {
	if day < 1 {
		return Scenario{}, dErrors.Newf(dErrors.CodeInvalidInput, "day must be positive, got %d", day)
	}
	now := d.clock()

	d.mu.Lock()
	draft := newDraft(d.rng, day, now)
	d.mu.Unlock()

	ctx, span := d.tracer.Start(ctx, tracer.SpanScenarioGenerate,
		tracer.Int64(tracer.AttrDay, int64(day)),
		tracer.String(tracer.AttrProvider, d.model.ID()),
		tracer.String(tracer.AttrMissionType, string(draft.Mission)),
	)
	var spanErr error
	defer func() { span.End(spanErr) }()

	raw, err := d.complete(ctx, span, Request{
		Kind:   RequestScenario,
		System: SystemInstruction,
		Prompt: scenarioPrompt(draft),
		Draft:  &draft,
	})
	var sc Scenario
	if err == nil {
		var g generatedScenario
		if g, err = parseScenario(d.model.ID(), raw); err == nil {
			sc = assemble(g, draft, now)
		}
	}
	if err != nil {
		spanErr = err
		d.logger.WarnContext(ctx, "scenario generation failed, serving fallback",
			"provider", d.model.ID(),
			"day", day,
			"category", CategoryOf(err),
			"error", err,
		)
		if d.metrics != nil {
			d.metrics.IncrementFallback(string(RequestScenario), string(CategoryOf(err)))
		}
		span.AddEvent(tracer.EventFallbackUsed)
		span.SetAttributes(tracer.Bool(tracer.AttrFallback, true))

		d.mu.Lock()
		id := randomIdentity(d.rng)
		d.mu.Unlock()
		return Fallback(id, now), nil
	}

	if d.metrics != nil {
		d.metrics.IncrementMission(string(sc.Profile.MissionType))
	}
	d.logger.InfoContext(ctx, "scenario generated",
		"provider", d.model.ID(),
		"day", day,
		"mission", sc.Profile.MissionType,
		"doc_type", sc.Profile.RequestType,
	)
	return sc, nil
}

// Reply answers playerMessage in character. Tutorial scenarios use the
// scripted replies and never reach the model.
func (d *Director) Reply(ctx context.Context, sc Scenario, playerMessage string) (Reply, error) {
	playerMessage = strings.TrimSpace(playerMessage)
	if playerMessage == "" {
		return Reply{}, dErrors.New(dErrors.CodeInvalidInput, "message is required")
	}
	if sc.Kind == KindTutorial {
		return TutorialReply(playerMessage), nil
	}

	ctx, span := d.tracer.Start(ctx, tracer.SpanScenarioReply,
		tracer.String(tracer.AttrProvider, d.model.ID()),
		tracer.String(tracer.AttrMissionType, string(sc.Profile.MissionType)),
	)
	var spanErr error
	defer func() { span.End(spanErr) }()

	raw, err := d.complete(ctx, span, Request{
		Kind:          RequestReply,
		Prompt:        replyPrompt(sc, playerMessage),
		Scenario:      &sc,
		PlayerMessage: playerMessage,
	})
	var r Reply
	if err == nil {
		r, err = parseReply(d.model.ID(), raw)
	}
	if err != nil {
		spanErr = err
		d.logger.WarnContext(ctx, "reply generation failed, answering neutrally",
			"provider", d.model.ID(),
			"category", CategoryOf(err),
			"error", err,
		)
		if d.metrics != nil {
			d.metrics.IncrementFallback(string(RequestReply), string(CategoryOf(err)))
		}
		span.AddEvent(tracer.EventFallbackUsed)
		return NeutralReply, nil
	}
	return r, nil
}

// complete runs req through the breaker and the retry loop.
func (d *Director) complete(ctx context.Context, span tracer.Span, req Request) (string, error) {
	if !d.breaker.Allow(d.clock()) {
		span.SetAttributes(tracer.Bool(tracer.AttrCircuitOpen, true))
		return "", NewModelError(ErrorOutage, d.model.ID(), "circuit open", ErrCircuitOpen)
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	raw, err := d.completeWithBackoff(ctx, span, req)
	if err != nil {
		_, change := d.breaker.RecordFailure()
		if change.Opened {
			d.logger.ErrorContext(ctx, "circuit breaker opened",
				"circuit", d.breaker.Name(),
				"error", err,
			)
			if d.metrics != nil {
				d.metrics.SetCircuitOpen(d.model.ID(), true)
			}
		}
		return "", err
	}

	_, change := d.breaker.RecordSuccess()
	if change.Closed {
		d.logger.InfoContext(ctx, "circuit breaker closed", "circuit", d.breaker.Name())
		if d.metrics != nil {
			d.metrics.SetCircuitOpen(d.model.ID(), false)
		}
	}
	return raw, nil
}

func (d *Director) completeWithBackoff(ctx context.Context, span tracer.Span, req Request) (string, error) {
	var lastErr error
	delay := d.backoff.InitialDelay

	for attempt := 0; attempt < d.backoff.MaxAttempts; attempt++ {
		if attempt > 0 {
			span.AddEvent(tracer.EventRetry, tracer.Int64(tracer.AttrAttempt, int64(attempt+1)))
			select {
			case <-ctx.Done():
				return "", ClassifyContext(ctx, d.model.ID(), ctx.Err())
			case <-time.After(delay):
			}
			delay = time.Duration(float64(delay) * d.backoff.Multiplier)
		}

		start := time.Now()
		raw, err := d.model.Complete(ctx, req)
		outcome := "success"
		if err != nil {
			outcome = string(CategoryOf(err))
		}
		if d.metrics != nil {
			d.metrics.ObserveModelCall(d.model.ID(), string(req.Kind), outcome, time.Since(start))
		}
		if err == nil {
			return raw, nil
		}

		lastErr = err
		d.logger.DebugContext(ctx, "model attempt failed",
			"provider", d.model.ID(),
			"attempt", attempt+1,
			"error", err,
		)
		if !IsRetryable(err) {
			return "", err
		}
	}
	return "", lastErr
}

var (
	_ Generator = (*Director)(nil)
	_ Replier   = (*Director)(nil)
)
