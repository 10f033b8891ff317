package scenario

import (
	"context"
	"errors"
	"fmt"
)

// RequestKind selects the response shape a Model must produce.
type RequestKind string

const (
	RequestScenario RequestKind = "scenario"
	RequestReply    RequestKind = "reply"
)

// Request is one completion request. Draft is set for scenario requests,
// Scenario and PlayerMessage for replies, so models that do not read the
// prompt can still answer.
type Request struct {
	Kind          RequestKind
	System        string
	Prompt        string
	Draft         *Draft
	Scenario      *Scenario
	PlayerMessage string
}

// Model is a language-model backend returning a JSON document.
type Model interface {
	// ID names the backend for logs and metrics (e.g. "gemini", "offline").
	ID() string

	// Complete returns the raw JSON text for req. Errors should be
	// *ModelError so the Director can decide whether to retry.
	Complete(ctx context.Context, req Request) (string, error)
}

// ErrorCategory classifies model failures.
type ErrorCategory string

const (
	ErrorTimeout        ErrorCategory = "timeout"
	ErrorBadData        ErrorCategory = "bad_data"
	ErrorAuthentication ErrorCategory = "authentication"
	ErrorOutage         ErrorCategory = "provider_outage"
	ErrorRateLimited    ErrorCategory = "rate_limited"
	ErrorInternal       ErrorCategory = "internal"
)

// ModelError wraps a backend failure with its category.
type ModelError struct {
	Category   ErrorCategory
	Model      string
	Message    string
	Underlying error
	Retryable  bool
}

func (e *ModelError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("model %s [%s]: %s: %v", e.Model, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("model %s [%s]: %s", e.Model, e.Category, e.Message)
}

func (e *ModelError) Unwrap() error {
	return e.Underlying
}

// NewModelError builds a ModelError. Timeouts, outages and rate limits are
// retryable; everything else is permanent.
func NewModelError(category ErrorCategory, model, message string, underlying error) *ModelError {
	retryable := category == ErrorTimeout ||
		category == ErrorOutage ||
		category == ErrorRateLimited

	return &ModelError{
		Category:   category,
		Model:      model,
		Message:    message,
		Underlying: underlying,
		Retryable:  retryable,
	}
}

// IsRetryable reports whether err is worth another attempt.
func IsRetryable(err error) bool {
	var me *ModelError
	if errors.As(err, &me) {
		return me.Retryable
	}
	return false
}

// CategoryOf extracts the error category, defaulting to ErrorInternal.
func CategoryOf(err error) ErrorCategory {
	var me *ModelError
	if errors.As(err, &me) {
		return me.Category
	}
	return ErrorInternal
}

// ClassifyContext maps context errors to a timeout ModelError and anything
// else to an outage.
func ClassifyContext(ctx context.Context, model string, err error) *ModelError {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
		return NewModelError(ErrorTimeout, model, "request timed out", err)
	}
	return NewModelError(ErrorOutage, model, "request failed", err)
}

// ErrCircuitOpen is returned when the breaker skipped the model call.
var ErrCircuitOpen = errors.New("scenario model circuit open")
