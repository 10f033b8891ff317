package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"govos/internal/desktop"
	"govos/internal/document"
	"govos/internal/issuance"
	"govos/internal/platform/middleware"
	"govos/internal/ratelimit"
	"govos/internal/session"
	"govos/internal/session/service"
	"govos/pkg/domain"
	dErrors "govos/pkg/domain-errors"
	"govos/pkg/platform/httputil"
)

// Service defines the interface for session operations.
type Service interface {
	Create(ctx context.Context, skipTutorial bool) (*service.Created, error)
	Get(ctx context.Context, id domain.SessionID) (session.Snapshot, error)
	End(ctx context.Context, id domain.SessionID) error
	Window(ctx context.Context, id domain.SessionID, app desktop.AppID, action service.WindowAction) (session.Snapshot, error)
	ToggleStartMenu(ctx context.Context, id domain.SessionID) (session.Snapshot, error)
	Drag(ctx context.Context, id domain.SessionID, phase service.DragPhase, app desktop.AppID, p desktop.Point) (session.Snapshot, error)
	Chat(ctx context.Context, id domain.SessionID, text string) (session.Snapshot, error)
	SelectDocument(ctx context.Context, id domain.SessionID, t document.DocType) (session.Snapshot, error)
	UpdateForm(ctx context.Context, id domain.SessionID, patch issuance.FormPatch) (session.Snapshot, error)
	RequestIssue(ctx context.Context, id domain.SessionID) (session.Snapshot, error)
	ShredDocument(ctx context.Context, id domain.SessionID) (session.Snapshot, error)
	ConfirmPrint(ctx context.Context, id domain.SessionID) (session.Snapshot, error)
	UpdateExcel(ctx context.Context, id domain.SessionID, cells []session.Cell) (session.Snapshot, error)
	ReportExcel(ctx context.Context, id domain.SessionID) (session.Snapshot, error)
	Skip(ctx context.Context, id domain.SessionID) (session.Snapshot, error)
	ReadMail(ctx context.Context, id domain.SessionID, mailID int) (session.Snapshot, error)
	ReplyMail(ctx context.Context, id domain.SessionID, mailID int, body string) (session.Snapshot, error)
	DeleteMail(ctx context.Context, id domain.SessionID, mailID int) (session.Snapshot, error)
}

// Limiter returns middleware enforcing the request budget of a class.
type Limiter interface {
	Limit(class ratelimit.Class) func(http.Handler) http.Handler
}

// Handler handles game session endpoints.
type Handler struct {
	logger   *slog.Logger
	sessions Service
	auth     func(http.Handler) http.Handler
	limiter  Limiter
}

// Option configures a Handler.
type Option func(*Handler)

// WithLimiter limits session creation and the commands that call the
// scenario model.
func WithLimiter(l Limiter) Option {
	return func(h *Handler) {
		h.limiter = l
	}
}

// New creates a new session Handler. auth guards every route that names a
// session.
func New(sessions Service, auth func(http.Handler) http.Handler, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		logger:   logger,
		sessions: sessions,
		auth:     auth,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) limit(class ratelimit.Class) func(http.Handler) http.Handler {
	if h.limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return h.limiter.Limit(class)
}

// Register registers the session routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/documents", h.handleCatalog)
	r.With(h.limit(ratelimit.ClassSessionCreate)).Post("/sessions", h.handleCreate)

	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/", h.handleGet)
		r.Delete("/", h.handleEnd)

		r.Post("/windows/{app}/{action}", h.handleWindow)
		r.Post("/start-menu", h.handleStartMenu)
		r.Post("/drag/{phase}", h.handleDrag)

		r.With(h.limit(ratelimit.ClassModelCall)).Post("/chat", h.handleChat)

		r.Put("/form", h.handleUpdateForm)
		r.Post("/form/document", h.handleSelectDocument)
		r.Post("/issue", h.handleIssue)
		r.Post("/print/confirm", h.handleConfirmPrint)
		r.Post("/print/shred", h.handleShred)

		r.Put("/excel/cells", h.handleUpdateExcel)
		r.Post("/excel/report", h.handleReportExcel)

		r.With(h.limit(ratelimit.ClassModelCall)).Post("/skip", h.handleSkip)

		r.Post("/mail/{mailID}/read", h.handleReadMail)
		r.Post("/mail/{mailID}/reply", h.handleReplyMail)
		r.Delete("/mail/{mailID}", h.handleDeleteMail)
	})
}

func (h *Handler) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, toCatalogResponse(document.Catalog()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req := &CreateSessionRequest{}
	if r.ContentLength != 0 {
		var ok bool
		req, ok = httputil.DecodeJSON[CreateSessionRequest](w, r, h.logger, ctx, requestID)
		if !ok {
			return
		}
	}

	created, err := h.sessions.Create(ctx, req.SkipTutorial)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create session",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, CreateSessionResponse{
		Session:   created.Session,
		Token:     created.Token,
		TokenType: "Bearer",
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "get session", func(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
		return h.sessions.Get(ctx, id)
	})
}

func (h *Handler) handleEnd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	if err := h.sessions.End(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "failed to end session",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleWindow(w http.ResponseWriter, r *http.Request) {
	app, err := desktop.ParseAppID(chi.URLParam(r, "app"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, err.Error()))
		return
	}
	action := service.WindowAction(chi.URLParam(r, "action"))
	switch action {
	case service.WindowOpen, service.WindowClose, service.WindowMinimize, service.WindowFocus, service.WindowActivate:
	default:
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeNotFound, "unknown window action %q", action))
		return
	}
	h.run(w, r, "window command", func(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
		return h.sessions.Window(ctx, id, app, action)
	})
}

func (h *Handler) handleStartMenu(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "toggle start menu", func(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
		return h.sessions.ToggleStartMenu(ctx, id)
	})
}

func (h *Handler) handleDrag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	phase := service.DragPhase(chi.URLParam(r, "phase"))
	switch phase {
	case service.DragBegin, service.DragMove, service.DragEnd:
	default:
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeNotFound, "unknown drag phase %q", phase))
		return
	}

	req, ok := httputil.DecodeAndPrepare[DragRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	var app desktop.AppID
	if phase == service.DragBegin {
		parsed, err := desktop.ParseAppID(req.App)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, err.Error()))
			return
		}
		app = parsed
	}

	h.run(w, r, "drag window", func(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
		return h.sessions.Drag(ctx, id, phase, app, req.Point())
	})
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[ChatRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	h.run(w, r, "send chat", func(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
		return h.sessions.Chat(ctx, id, req.Text)
	})
}

func (h *Handler) handleUpdateForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	patch, ok := httputil.DecodeAndPrepare[issuance.FormPatch](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	h.run(w, r, "update form", func(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
		return h.sessions.UpdateForm(ctx, id, *patch)
	})
}

func (h *Handler) handleSelectDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[SelectDocumentRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	h.run(w, r, "select document", func(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
		return h.sessions.SelectDocument(ctx, id, req.Type())
	})
}

func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "request issue", func(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
		return h.sessions.RequestIssue(ctx, id)
	})
}

func (h *Handler) handleConfirmPrint(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "confirm print", func(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
		return h.sessions.ConfirmPrint(ctx, id)
	})
}

func (h *Handler) handleShred(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "shred document", func(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
		return h.sessions.ShredDocument(ctx, id)
	})
}

func (h *Handler) handleUpdateExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[UpdateCellsRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	h.run(w, r, "update spreadsheet", func(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
		return h.sessions.UpdateExcel(ctx, id, req.Cells)
	})
}

func (h *Handler) handleReportExcel(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "report spreadsheet", func(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
		return h.sessions.ReportExcel(ctx, id)
	})
}

func (h *Handler) handleSkip(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "skip request", func(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
		return h.sessions.Skip(ctx, id)
	})
}

func (h *Handler) handleReadMail(w http.ResponseWriter, r *http.Request) {
	mailID, ok := h.mailID(w, r)
	if !ok {
		return
	}
	h.run(w, r, "read mail", func(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
		return h.sessions.ReadMail(ctx, id, mailID)
	})
}

func (h *Handler) handleReplyMail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	mailID, ok := h.mailID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ReplyMailRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	h.run(w, r, "reply mail", func(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
		return h.sessions.ReplyMail(ctx, id, mailID, req.Body)
	})
}

func (h *Handler) handleDeleteMail(w http.ResponseWriter, r *http.Request) {
	mailID, ok := h.mailID(w, r)
	if !ok {
		return
	}
	h.run(w, r, "delete mail", func(ctx context.Context, id domain.SessionID) (session.Snapshot, error) {
		return h.sessions.DeleteMail(ctx, id, mailID)
	})
}

// run resolves the session from the path, calls op and writes the snapshot.
func (h *Handler) run(w http.ResponseWriter, r *http.Request, op string, call func(context.Context, domain.SessionID) (session.Snapshot, error)) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	snap, err := call(ctx, id)
	if err != nil {
		attrs := []any{
			"request_id", requestID,
			"session_id", id.String(),
			"error", err,
		}
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "failed to "+op, attrs...)
		} else {
			h.logger.WarnContext(ctx, "rejected "+op, attrs...)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, snap)
}

// sessionID parses the path session and checks it is the one the bearer
// token grants.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (domain.SessionID, bool) {
	ctx := r.Context()
	id, err := domain.ParseSessionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid session id"))
		return domain.SessionID{}, false
	}
	if granted := middleware.GetSessionID(ctx); granted != id.String() {
		h.logger.WarnContext(ctx, "token does not grant session",
			"request_id", middleware.GetRequestID(ctx),
			"session_id", id.String(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "token does not grant this session"))
		return domain.SessionID{}, false
	}
	return id, true
}

func (h *Handler) mailID(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "mailID"))
	if err != nil || n < 1 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid mail id"))
		return 0, false
	}
	return n, true
}
