// Package health provides liveness, readiness and status endpoints.
package health

import (
	"context"
	"maps"
	"net/http"
	"slices"
	"sync"
	"time"

	"govos/pkg/platform/httputil"

	"github.com/go-chi/chi/v5"
)

// Version is set at build time via ldflags.
var Version = "dev"

// CheckFunc reports nil when a dependency is usable.
type CheckFunc func(ctx context.Context) error

// Handler provides health check endpoints.
type Handler struct {
	startTime   time.Time
	environment string
	provider    string

	mu       sync.RWMutex
	checks   map[string]CheckFunc
	sessions func() int
}

// New creates a health handler for the given environment and scenario provider.
func New(environment, provider string) *Handler {
	return &Handler{
		startTime:   time.Now(),
		environment: environment,
		provider:    provider,
		checks:      make(map[string]CheckFunc),
	}
}

// RegisterCheck adds a named check to the readiness probe.
func (h *Handler) RegisterCheck(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

// SetSessionCounter reports the live session count on the status endpoint.
func (h *Handler) SetSessionCounter(fn func() int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions = fn
}

// Register mounts health check routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleStatus)
	r.Get("/health/live", h.HandleLiveness)
	r.Get("/health/ready", h.HandleReadiness)
}

type LivenessResponse struct {
	Status string `json:"status"`
}

// HandleLiveness always answers 200 while the process serves requests.
func (h *Handler) HandleLiveness(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, LivenessResponse{Status: "alive"})
}

type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HandleReadiness runs every registered check and answers 503 if any fails.
func (h *Handler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	checks := maps.Clone(h.checks)
	h.mu.RUnlock()

	resp := ReadinessResponse{Status: "ready", Checks: make(map[string]string, len(checks))}
	status := http.StatusOK
	for _, name := range slices.Sorted(maps.Keys(checks)) {
		if err := checks[name](r.Context()); err != nil {
			resp.Checks[name] = "down: " + err.Error()
			resp.Status = "not_ready"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "up"
	}
	httputil.WriteJSON(w, status, resp)
}

type StatusResponse struct {
	Status           string `json:"status"`
	Version          string `json:"version"`
	Environment      string `json:"environment"`
	ScenarioProvider string `json:"scenario_provider"`
	ActiveSessions   int    `json:"active_sessions"`
	UptimeSeconds    int64  `json:"uptime_seconds"`
	Timestamp        string `json:"timestamp"`
}

// HandleStatus returns version, provider, session count and uptime.
func (h *Handler) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	counter := h.sessions
	h.mu.RUnlock()

	active := 0
	if counter != nil {
		active = counter()
	}
	httputil.WriteJSON(w, http.StatusOK, StatusResponse{
		Status:           "healthy",
		Version:          Version,
		Environment:      h.environment,
		ScenarioProvider: h.provider,
		ActiveSessions:   active,
		UptimeSeconds:    int64(time.Since(h.startTime).Seconds()),
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	})
}
