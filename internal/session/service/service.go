package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"govos/internal/desktop"
	"govos/internal/document"
	"govos/internal/issuance"
	"govos/internal/scenario"
	"govos/internal/sentinel"
	"govos/internal/session"
	"govos/internal/session/metrics"
	"govos/pkg/domain"
	dErrors "govos/pkg/domain-errors"
	"govos/pkg/platform/middleware/requesttime"
	gsync "govos/pkg/platform/sync"
)

// Store defines the persistence interface for sessions.
// Error Contract:
// - Get and Delete return sentinel.ErrNotFound when no session exists
// - Other methods return nil on success or wrapped errors on failure
type Store interface {
	Save(ctx context.Context, st *session.State) error
	Get(ctx context.Context, id domain.SessionID) (*session.State, error)
	Delete(ctx context.Context, id domain.SessionID) error
	Count() int
}

// TokenIssuer signs the bearer token that grants access to one session.
type TokenIssuer interface {
	GenerateSessionToken(ctx context.Context, sessionID domain.SessionID) (string, error)
}

// WindowAction is a window-manager command.
type WindowAction string

const (
	WindowOpen     WindowAction = "open"
	WindowClose    WindowAction = "close"
	WindowMinimize WindowAction = "minimize"
	WindowFocus    WindowAction = "focus"
	WindowActivate WindowAction = "activate"
)

// DragPhase is a step of a window drag.
type DragPhase string

const (
	DragBegin DragPhase = "begin"
	DragMove  DragPhase = "move"
	DragEnd   DragPhase = "end"
)

// Created is a new session and the token that grants access to it.
type Created struct {
	Session session.Snapshot
	Token   string
}

// DefaultGenerationTimeout bounds one scenario or reply call, retries
// included.
const DefaultGenerationTimeout = 30 * time.Second

type Option func(*Service)

// Service runs session commands. Commands on one session are serialized by
// a sharded lock; model calls run outside the lock and their results are
// applied only if the session still waits for them.
type Service struct {
	store     Store
	locks     *gsync.ShardedMutex
	clerk     session.Clerk
	generator scenario.Generator
	replier   scenario.Replier
	tokens    TokenIssuer

	logger  *slog.Logger
	metrics *metrics.Metrics
	clock   requesttime.Clock
	spawn   func(func())
	timeout time.Duration
}

func New(store Store, clerk session.Clerk, generator scenario.Generator, replier scenario.Replier, tokens TokenIssuer, opts ...Option) *Service {
	svc := &Service{
		store:     store,
		locks:     gsync.NewShardedMutex(),
		clerk:     clerk,
		generator: generator,
		replier:   replier,
		tokens:    tokens,
		logger:    slog.New(slog.DiscardHandler),
		spawn:     func(fn func()) { go fn() },
		timeout:   DefaultGenerationTimeout,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// WithLogger sets the logger instance for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock pins the time source. Without it the request time is used.
func WithClock(clock requesttime.Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithSpawn replaces how model calls are started. Tests run them inline.
func WithSpawn(spawn func(func())) Option {
	return func(s *Service) {
		if spawn != nil {
			s.spawn = spawn
		}
	}
}

// WithGenerationTimeout bounds each model call. Zero or negative keeps the
// default.
func WithGenerationTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func (s *Service) now(ctx context.Context) time.Time {
	if s.clock != nil {
		return s.clock()
	}
	return requesttime.Now(ctx)
}

// Create starts a new session.
func (s *Service) Create(ctx context.Context, skipTutorial bool) (*Created, error) {
	now := s.now(ctx)
	st := session.New(domain.NewSessionID(), now)
	work := st.Start(skipTutorial, now)

	token, err := s.tokens.GenerateSessionToken(ctx, st.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue session token")
	}
	if err := s.store.Save(ctx, st); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save session")
	}
	snap := st.Snapshot(s.clerk)

	if s.metrics != nil {
		s.metrics.IncrementStarted(skipTutorial)
		s.metrics.SetActive(s.store.Count())
	}
	s.logger.InfoContext(ctx, "session started",
		"session_id", st.ID.String(),
		"skip_tutorial", skipTutorial,
	)
	s.dispatch(st.ID, work)
	return &Created{Session: snap, Token: token}, nil
}

// Get returns the session after firing any due events.
func (s *Service) Get(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
	return s.mutate(ctx, id, func(*session.State, time.Time) (*session.Work, error) {
		return nil, nil
	})
}

// End removes the session.
func (s *Service) End(ctx context.Context, id domain.SessionID) error {
	err := s.locks.Do(id.String(), func() error {
		return s.store.Delete(ctx, id)
	})
	if err != nil {
		return translate(err)
	}
	if s.metrics != nil {
		s.metrics.SetActive(s.store.Count())
	}
	s.logger.InfoContext(ctx, "session ended", "session_id", id.String())
	return nil
}

// Window runs a window-manager command.
func (s *Service) Window(ctx context.Context, id domain.SessionID, app desktop.AppID, action WindowAction) (session.Snapshot, error) {
	return s.mutate(ctx, id, func(st *session.State, now time.Time) (*session.Work, error) {
		switch action {
		case WindowOpen:
			return nil, st.OpenWindow(app, now)
		case WindowClose:
			return nil, st.CloseWindow(app, now)
		case WindowMinimize:
			return nil, st.MinimizeWindow(app, now)
		case WindowFocus:
			return nil, st.FocusWindow(app)
		case WindowActivate:
			return nil, st.ActivateWindow(app, now)
		default:
			return nil, dErrors.Newf(dErrors.CodeBadRequest, "unknown window action %q", action)
		}
	})
}

// ToggleStartMenu opens or closes the start menu.
func (s *Service) ToggleStartMenu(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
	return s.mutate(ctx, id, func(st *session.State, _ time.Time) (*session.Work, error) {
		st.ToggleStartMenu()
		return nil, nil
	})
}

// Drag runs one step of a window drag. app is only used to begin.
func (s *Service) Drag(ctx context.Context, id domain.SessionID, phase DragPhase, app desktop.AppID, p desktop.Point) (session.Snapshot, error) {
	return s.mutate(ctx, id, func(st *session.State, _ time.Time) (*session.Work, error) {
		switch phase {
		case DragBegin:
			return nil, st.BeginDrag(app, p)
		case DragMove:
			st.DragTo(p)
		case DragEnd:
			st.EndDrag()
		default:
			return nil, dErrors.Newf(dErrors.CodeBadRequest, "unknown drag phase %q", phase)
		}
		return nil, nil
	})
}

// Chat sends a line to the active citizen. The reply arrives later.
func (s *Service) Chat(ctx context.Context, id domain.SessionID, text string) (session.Snapshot, error) {
	return s.mutate(ctx, id, func(st *session.State, now time.Time) (*session.Work, error) {
		return st.Chat(text, now)
	})
}

// SelectDocument picks the portal document type.
func (s *Service) SelectDocument(ctx context.Context, id domain.SessionID, t document.DocType) (session.Snapshot, error) {
	return s.mutate(ctx, id, func(st *session.State, now time.Time) (*session.Work, error) {
		st.SelectDocument(t, now)
		return nil, nil
	})
}

// UpdateForm applies a portal form patch.
func (s *Service) UpdateForm(ctx context.Context, id domain.SessionID, patch issuance.FormPatch) (session.Snapshot, error) {
	return s.mutate(ctx, id, func(st *session.State, _ time.Time) (*session.Work, error) {
		return nil, st.UpdateForm(patch)
	})
}

// RequestIssue starts issuing the portal form.
func (s *Service) RequestIssue(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
	return s.mutate(ctx, id, func(st *session.State, now time.Time) (*session.Work, error) {
		return nil, st.RequestIssue(s.clerk, now)
	})
}

// ShredDocument discards the printed document.
func (s *Service) ShredDocument(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
	return s.mutate(ctx, id, func(st *session.State, now time.Time) (*session.Work, error) {
		return nil, st.ShredDocument(now)
	})
}

// ConfirmPrint hands the printed document to the citizen.
func (s *Service) ConfirmPrint(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
	return s.mutate(ctx, id, func(st *session.State, now time.Time) (*session.Work, error) {
		v, err := st.ConfirmPrint(ctx, s.clerk, now)
		if err != nil {
			return nil, err
		}
		if s.metrics != nil && !v.SelfIssued {
			s.metrics.IncrementOutcome(string(document.MissionIssue), v.MetricLabel(), st.Stats().Day)
		}
		return nil, nil
	})
}

// UpdateExcel writes spreadsheet cells.
func (s *Service) UpdateExcel(ctx context.Context, id domain.SessionID, cells []session.Cell) (session.Snapshot, error) {
	return s.mutate(ctx, id, func(st *session.State, _ time.Time) (*session.Work, error) {
		return nil, st.UpdateExcel(cells)
	})
}

// ReportExcel submits the spreadsheet.
func (s *Service) ReportExcel(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
	return s.mutate(ctx, id, func(st *session.State, now time.Time) (*session.Work, error) {
		ok, err := st.ReportExcel(now)
		if err != nil {
			return nil, err
		}
		if s.metrics != nil {
			result := "rejected"
			if ok {
				result = "accepted"
			}
			s.metrics.IncrementOutcome(string(document.MissionExcel), result, st.Stats().Day)
		}
		return nil, nil
	})
}

// Skip abandons the active request.
func (s *Service) Skip(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
	return s.mutate(ctx, id, func(st *session.State, now time.Time) (*session.Work, error) {
		if s.metrics != nil {
			s.metrics.IncrementSkip()
		}
		return st.Skip(now), nil
	})
}

// ReadMail marks a mail as read.
func (s *Service) ReadMail(ctx context.Context, id domain.SessionID, mailID int) (session.Snapshot, error) {
	return s.mutate(ctx, id, func(st *session.State, _ time.Time) (*session.Work, error) {
		return nil, st.ReadMail(mailID)
	})
}

// ReplyMail answers a mail.
func (s *Service) ReplyMail(ctx context.Context, id domain.SessionID, mailID int, body string) (session.Snapshot, error) {
	return s.mutate(ctx, id, func(st *session.State, now time.Time) (*session.Work, error) {
		return nil, st.ReplyMail(mailID, body, now)
	})
}

// DeleteMail removes a mail.
func (s *Service) DeleteMail(ctx context.Context, id domain.SessionID, mailID int) (session.Snapshot, error) {
	return s.mutate(ctx, id, func(st *session.State, _ time.Time) (*session.Work, error) {
		return nil, st.DeleteMail(mailID)
	})
}

type command func(st *session.State, now time.Time) (*session.Work, error)

// mutate loads the session under its lock, fires due events, runs cmd and
// saves the result. Work asked for by the events or the command starts
// after the lock is released.
func (s *Service) mutate(ctx context.Context, id domain.SessionID, cmd command) (session.Snapshot, error) {
	var (
		snap    session.Snapshot
		pending []*session.Work
		cmdErr  error
	)
	err := s.locks.Do(id.String(), func() error {
		st, err := s.store.Get(ctx, id)
		if err != nil {
			return err
		}
		now := s.now(ctx)
		pending = append(pending, st.Advance(now))

		work, err := cmd(st, now)
		if err != nil {
			cmdErr = err
		} else {
			pending = append(pending, work)
		}

		st.UpdatedAt = now
		if err := s.store.Save(ctx, st); err != nil {
			return err
		}
		snap = st.Snapshot(s.clerk)
		return nil
	})
	if err != nil {
		return session.Snapshot{}, translate(err)
	}

	for _, w := range pending {
		s.dispatch(id, w)
	}
	if cmdErr != nil {
		return session.Snapshot{}, cmdErr
	}
	return snap, nil
}

func (s *Service) dispatch(id domain.SessionID, w *session.Work) {
	if w == nil {
		return
	}
	work := *w
	s.spawn(func() { s.run(id, work) })
}

// run performs a model call and applies its result.
func (s *Service) run(id domain.SessionID, w session.Work) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var apply func(st *session.State, now time.Time) bool
	switch w.Kind {
	case session.WorkGenerate:
		sc, err := s.generator.Generate(ctx, w.Day)
		if err != nil {
			s.logger.ErrorContext(ctx, "scenario generation failed",
				"session_id", id.String(),
				"error", err,
			)
			sc = scenario.Fallback(scenario.Identity{}, s.now(ctx))
		}
		apply = func(st *session.State, now time.Time) bool {
			return st.CompleteGeneration(w.Seq, sc, now)
		}
	case session.WorkReply:
		r, err := s.replier.Reply(ctx, w.Scenario, w.Message)
		if err != nil {
			s.logger.WarnContext(ctx, "reply failed",
				"session_id", id.String(),
				"error", err,
			)
			r = scenario.NeutralReply
		}
		apply = func(st *session.State, now time.Time) bool {
			return st.CompleteReply(w.Seq, r, now)
		}
	default:
		return
	}

	err := s.locks.Do(id.String(), func() error {
		st, err := s.store.Get(ctx, id)
		if err != nil {
			return err
		}
		now := s.now(ctx)
		if !apply(st, now) {
			if s.metrics != nil {
				s.metrics.IncrementStale(string(w.Kind))
			}
			s.logger.DebugContext(ctx, "dropped stale model result",
				"session_id", id.String(),
				"kind", string(w.Kind),
				"seq", w.Seq,
			)
			return nil
		}
		return s.store.Save(ctx, st)
	})
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.ErrorContext(ctx, "failed to apply model result",
			"session_id", id.String(),
			"error", err,
		)
	}
}

// translate maps store errors to domain errors.
func translate(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "session not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "session store failure")
}
