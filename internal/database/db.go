// Package database owns the process wide pgx connection pool.
package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotConnected is returned by Status before Connect succeeded
var ErrNotConnected = errors.New("database not initialized")

// Config holds pool settings
type Config struct {
	URL             string
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

var (
	pool   *pgxpool.Pool
	poolMu sync.RWMutex
)

// Connect creates the connection pool and verifies it with a ping. Calling
// it again while connected is a no-op.
func Connect(ctx context.Context, cfg Config) error {
	poolMu.Lock()
	defer poolMu.Unlock()
	if pool != nil {
		return nil
	}

	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return fmt.Errorf("error parsing database config: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		pc.MinConns = int32(cfg.MinConns)
	}
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	pc.HealthCheckPeriod = time.Minute

	p, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return fmt.Errorf("error creating connection pool: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return fmt.Errorf("error connecting to database: %w", err)
	}

	pool = p
	return nil
}

// Close closes the pool; Connect may be called again afterwards
func Close() {
	poolMu.Lock()
	defer poolMu.Unlock()
	if pool != nil {
		pool.Close()
		pool = nil
	}
}

// Pool returns the connection pool, or nil when not connected
func Pool() *pgxpool.Pool {
	poolMu.RLock()
	defer poolMu.RUnlock()
	return pool
}

// Status pings the database
func Status(ctx context.Context) error {
	p := Pool()
	if p == nil {
		return ErrNotConnected
	}
	return p.Ping(ctx)
}

// Stats returns connection pool statistics
func Stats() *pgxpool.Stat {
	p := Pool()
	if p == nil {
		return nil
	}
	return p.Stat()
}
