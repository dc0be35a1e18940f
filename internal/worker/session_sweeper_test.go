package worker_test

import (
	"context"
	"testing"
	"time"

	"taskgarden/internal/models/user"
	"taskgarden/internal/repository/inmemory"
	"taskgarden/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSweeper_Sweep(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()
	now := time.Now()

	live := &user.Session{Token: uuid.New(), UserID: 1, ExpiresAt: now.Add(time.Hour)}
	stale := &user.Session{Token: uuid.New(), UserID: 1, ExpiresAt: now.Add(-time.Hour)}
	require.NoError(t, store.CreateSession(ctx, live))
	require.NoError(t, store.CreateSession(ctx, stale))

	sweeper := worker.NewSessionSweeper(store, time.Minute)
	sweeper.Sweep(ctx)

	_, err := store.GetSession(ctx, live.Token)
	assert.NoError(t, err)
	_, err = store.GetSession(ctx, stale.Token)
	assert.Error(t, err)
}

func TestSessionSweeper_StartStopsOnCancel(t *testing.T) {
	store := inmemory.NewStore()
	sweeper := worker.NewSessionSweeper(store, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
