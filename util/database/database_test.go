package database

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAcquire_SharesInFlightAttempt(t *testing.T) {
	h := NewHandle("postgres://unused")

	var calls int32
	release := make(chan struct{})
	h.open = func(ctx context.Context) (*sql.DB, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return sql.Open("pgx", "postgres://unused")
	}

	const n = 8
	dbs := make([]*sql.DB, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dbs[i], errs[i] = h.Acquire(context.Background())
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		require.Same(t, dbs[0], dbs[i])
	}

	// connected: no further attempts
	again, err := h.Acquire(context.Background())
	require.NoError(t, err)
	require.Same(t, dbs[0], again)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestAcquire_FailedAttemptRetries(t *testing.T) {
	h := NewHandle("postgres://unused")

	var calls int32
	h.open = func(ctx context.Context) (*sql.DB, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, errors.New("connection refused")
		}
		return sql.Open("pgx", "postgres://unused")
	}

	_, err := h.Acquire(context.Background())
	require.Error(t, err)

	db, err := h.Acquire(context.Background())
	require.NoError(t, err)
	require.NotNil(t, db)
	require.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestAcquire_ContextCanceled(t *testing.T) {
	h := NewHandle("postgres://unused")

	release := make(chan struct{})
	defer close(release)
	h.open = func(ctx context.Context) (*sql.DB, error) {
		<-release
		return nil, errors.New("too late")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := h.Acquire(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestShutdown_Idempotent(t *testing.T) {
	h := NewHandle("postgres://unused")
	require.NoError(t, h.Shutdown())

	h.open = func(ctx context.Context) (*sql.DB, error) {
		return sql.Open("pgx", "postgres://unused")
	}
	_, err := h.Acquire(context.Background())
	require.NoError(t, err)

	require.NoError(t, h.Shutdown())
	require.NoError(t, h.Shutdown())

	_, err = h.DB()
	require.ErrorIs(t, err, ErrNotConnected)
}
