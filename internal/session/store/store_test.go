package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govos/internal/sentinel"
	"govos/internal/session"
	"govos/pkg/domain"
)

func TestInMemoryStoreOperations(t *testing.T) {
	store := New()
	ctx := context.Background()
	now := time.Now()

	// Save and get
	st := session.New(domain.NewSessionID(), now)
	st.Start(false, now)
	require.NoError(t, store.Save(ctx, st))
	assert.Equal(t, 1, store.Count())

	fetched, err := store.Get(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, st.ID, fetched.ID)
	assert.Equal(t, st.Stats(), fetched.Stats())

	// Copy integrity
	require.NoError(t, fetched.DeleteMail(1))
	again, err := store.Get(ctx, st.ID)
	require.NoError(t, err)
	assert.Len(t, again.Mailbox(), 3)

	// Delete
	require.NoError(t, store.Delete(ctx, st.ID))
	_, err = store.Get(ctx, st.ID)
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))
	assert.True(t, errors.Is(store.Delete(ctx, st.ID), sentinel.ErrNotFound))
	assert.Equal(t, 0, store.Count())
}

func TestDeleteIdle(t *testing.T) {
	store := New()
	ctx := context.Background()
	now := time.Now()

	idle := session.New(domain.NewSessionID(), now.Add(-3*time.Hour))
	active := session.New(domain.NewSessionID(), now.Add(-3*time.Hour))
	active.UpdatedAt = now.Add(-time.Minute)
	require.NoError(t, store.Save(ctx, idle))
	require.NoError(t, store.Save(ctx, active))

	removed, err := store.DeleteIdle(ctx, now.Add(-time.Hour))

	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	_, err = store.Get(ctx, idle.ID)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	_, err = store.Get(ctx, active.ID)
	assert.NoError(t, err)
}
