package cleanup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"govos/internal/session"
	"govos/internal/session/store"
	"govos/pkg/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCleanupService_RunOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	sessions := store.New()

	idle := session.New(domain.NewSessionID(), now.Add(-3*time.Hour))
	fresh := session.New(domain.NewSessionID(), now.Add(-3*time.Hour))
	fresh.UpdatedAt = now.Add(-10 * time.Minute)
	require.NoError(t, sessions.Save(ctx, idle))
	require.NoError(t, sessions.Save(ctx, fresh))

	svc, err := New(sessions,
		WithIdleTTL(time.Hour),
		WithCleanupClock(func() time.Time { return now }),
	)
	require.NoError(t, err)

	removed, err := svc.RunOnce(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	_, err = sessions.Get(ctx, idle.ID)
	require.Error(t, err)
	_, err = sessions.Get(ctx, fresh.ID)
	require.NoError(t, err)
}

func TestCleanupService_RequiresStore(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

type failingStore struct{}

func (failingStore) DeleteIdle(context.Context, time.Time) (int, error) {
	return 0, errors.New("boom")
}

func (failingStore) Count() int { return 0 }

func TestCleanupService_RunOnceError(t *testing.T) {
	svc, err := New(failingStore{})
	require.NoError(t, err)

	_, err = svc.RunOnce(context.Background())
	require.ErrorContains(t, err, "delete idle sessions")
}

func TestCleanupService_StartStopsOnCancel(t *testing.T) {
	svc, err := New(store.New(), WithCleanupInterval(time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cleanup did not stop")
	}
}
