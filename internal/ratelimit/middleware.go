package ratelimit

import (
	"log/slog"
	"net/http"
	"net/netip"
	"strconv"
	"strings"

	"govos/internal/platform/middleware"
	"govos/internal/platform/privacy"
	"govos/internal/ratelimit/metrics"
	"govos/pkg/platform/httputil"
)

// maxForwardedLength bounds the X-Forwarded-For header we are willing to parse.
const maxForwardedLength = 500

// Middleware rejects clients that exceed their budget with 429.
type Middleware struct {
	limiter        *Limiter
	trustedProxies []netip.Prefix
	logger         *slog.Logger
	metrics        *metrics.Metrics
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*Middleware)

// WithTrustedProxies lets requests from these prefixes name the client via
// X-Forwarded-For or X-Real-IP.
func WithTrustedProxies(prefixes []netip.Prefix) MiddlewareOption {
	return func(m *Middleware) {
		m.trustedProxies = prefixes
	}
}

// WithMetrics records rejected requests.
func WithMetrics(mt *metrics.Metrics) MiddlewareOption {
	return func(m *Middleware) {
		m.metrics = mt
	}
}

// NewMiddleware wraps limiter for use on chi routes.
func NewMiddleware(limiter *Limiter, logger *slog.Logger, opts ...MiddlewareOption) *Middleware {
	m := &Middleware{
		limiter: limiter,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Limit enforces the budget of class keyed by client IP.
func (m *Middleware) Limit(class Class) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := m.clientIP(r)
			result := m.limiter.Allow(ip, class)
			if result.Limit > 0 {
				addRateLimitHeaders(w, result)
			}

			if !result.Allowed {
				m.logger.WarnContext(r.Context(), "rate limit exceeded",
					"class", string(class),
					"ip_prefix", privacy.AnonymizeIP(ip),
					"request_id", middleware.GetRequestID(r.Context()),
				)
				if m.metrics != nil {
					m.metrics.IncrementRejected(string(class))
				}
				writeRateLimitExceeded(w, result)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func addRateLimitHeaders(w http.ResponseWriter, result Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeRateLimitExceeded(w http.ResponseWriter, result Result) {
	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &ExceededResponse{
		Error:            "rate_limit_exceeded",
		ErrorDescription: "Too many requests from this address. Please try again later.",
		RetryAfter:       result.RetryAfter,
	})
}

// clientIP returns the connection address, or the forwarded client when the
// connection comes from a trusted proxy.
func (m *Middleware) clientIP(r *http.Request) string {
	remoteIP := parseRemoteAddr(r.RemoteAddr)
	if remoteIP == "" {
		return "unknown"
	}
	if !m.isTrustedProxy(remoteIP) {
		return remoteIP
	}

	xff := r.Header.Get("X-Forwarded-For")
	if xff == "" {
		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" && len(xri) <= maxForwardedLength {
			if _, err := netip.ParseAddr(xri); err == nil {
				return xri
			}
		}
		return remoteIP
	}
	if len(xff) > maxForwardedLength {
		return remoteIP
	}

	first, _, _ := strings.Cut(xff, ",")
	first = strings.TrimSpace(first)
	if _, err := netip.ParseAddr(first); err != nil {
		return remoteIP
	}
	return first
}

func (m *Middleware) isTrustedProxy(ip string) bool {
	if len(m.trustedProxies) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	for _, prefix := range m.trustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// parseRemoteAddr strips the port, including from bracketed IPv6 forms.
func parseRemoteAddr(remoteAddr string) string {
	if remoteAddr == "" {
		return ""
	}
	if addrPort, err := netip.ParseAddrPort(remoteAddr); err == nil {
		return addrPort.Addr().String()
	}
	if addr, err := netip.ParseAddr(strings.Trim(remoteAddr, "[]")); err == nil {
		return addr.String()
	}
	if idx := strings.LastIndex(remoteAddr, ":"); idx != -1 {
		return remoteAddr[:idx]
	}
	return remoteAddr
}
