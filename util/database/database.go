package database

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Handle owns the lazily-initialized database connection pool. Acquire is
// idempotent: once connected it always returns the same *sql.DB, and
// concurrent callers during an in-flight connection attempt share that
// attempt's result instead of racing duplicate connections.
type Handle struct {
	dsn string

	mu      sync.Mutex
	db      *sql.DB
	attempt *attempt

	// overridable for tests
	open func(ctx context.Context) (*sql.DB, error)
}

type attempt struct {
	done chan struct{}
	db   *sql.DB
	err  error
}

func NewHandle(dsn string) *Handle {
	h := &Handle{dsn: dsn}
	h.open = h.connect
	return h
}

func (h *Handle) connect(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("pgx", h.dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

// Acquire returns the live pool, connecting on first use. A failed attempt
// is not cached; the next Acquire retries.
func (h *Handle) Acquire(ctx context.Context) (*sql.DB, error) {
	h.mu.Lock()
	if h.db != nil {
		db := h.db
		h.mu.Unlock()
		return db, nil
	}
	a := h.attempt
	if a == nil {
		a = &attempt{done: make(chan struct{})}
		h.attempt = a
		go h.run(a)
	}
	h.mu.Unlock()

	select {
	case <-a.done:
		return a.db, a.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (h *Handle) run(a *attempt) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := h.open(ctx)

	h.mu.Lock()
	if err == nil {
		h.db = db
	}
	h.attempt = nil
	h.mu.Unlock()

	a.db, a.err = db, err
	close(a.done)
}

// Shutdown closes the pool. Safe to call before Acquire or more than once.
func (h *Handle) Shutdown() error {
	h.mu.Lock()
	db := h.db
	h.db = nil
	h.mu.Unlock()
	if db == nil {
		return nil
	}
	return db.Close()
}

var ErrNotConnected = errors.New("database: not connected")

// DB returns the pool if a connection has been established.
func (h *Handle) DB() (*sql.DB, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.db == nil {
		return nil, ErrNotConnected
	}
	return h.db, nil
}
