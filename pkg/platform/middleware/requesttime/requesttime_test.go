package requesttime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMiddleware_SetsTimeInContext(t *testing.T) {
	var captured time.Time
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = Now(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	before := time.Now()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	after := time.Now()

	assert.False(t, captured.Before(before))
	assert.False(t, captured.After(after))
}

func TestMiddlewareWithClock_UsesInjectedClock(t *testing.T) {
	fixed := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	var first, second time.Time
	handler := MiddlewareWithClock(func() time.Time { return fixed })(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		first = Now(r.Context())
		second = Now(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, fixed, first)
	assert.Equal(t, first, second)
}

func TestNow_FallbackToRealTime(t *testing.T) {
	before := time.Now()
	result := Now(context.Background())

	assert.False(t, result.Before(before))
}

func TestWithTime_OverridesExistingTime(t *testing.T) {
	original := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	ctx := WithTime(context.Background(), original)
	ctx = WithTime(ctx, updated)

	assert.Equal(t, updated, Now(ctx))
}
