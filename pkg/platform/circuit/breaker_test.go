package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b := New("gemini", WithFailureThreshold(3))

	for range 2 {
		useFallback, change := b.RecordFailure()
		assert.False(t, useFallback)
		assert.False(t, change.Opened)
	}
	useFallback, change := b.RecordFailure()
	assert.True(t, useFallback)
	assert.True(t, change.Opened)
	assert.True(t, b.IsOpen())
	assert.Equal(t, "open", b.State().String())
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b := New("gemini", WithFailureThreshold(2))

	b.RecordFailure()
	b.RecordSuccess()
	useFallback, _ := b.RecordFailure()

	assert.False(t, useFallback)
	assert.False(t, b.IsOpen())
}

func TestBreaker_ClosesAfterSuccessfulProbes(t *testing.T) {
	b := New("openai", WithFailureThreshold(1), WithSuccessThreshold(2))
	b.RecordFailure()
	assert.True(t, b.IsOpen())

	usePrimary, change := b.RecordSuccess()
	assert.False(t, usePrimary)
	assert.False(t, change.Closed)

	usePrimary, change = b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.True(t, change.Closed)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_AllowThrottlesProbesWhileOpen(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	b := New("gemini", WithFailureThreshold(1), WithProbeInterval(10*time.Second))

	assert.True(t, b.Allow(now), "closed circuit allows every call")

	b.RecordFailure()
	assert.True(t, b.Allow(now), "first probe after opening")
	assert.False(t, b.Allow(now.Add(5*time.Second)))
	assert.True(t, b.Allow(now.Add(10*time.Second)))
}

func TestBreaker_Reset(t *testing.T) {
	b := New("gemini", WithFailureThreshold(1))
	b.RecordFailure()
	b.Reset()

	assert.False(t, b.IsOpen())
	assert.Equal(t, "gemini", b.Name())
}
