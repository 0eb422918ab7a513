package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/pavannkulkarni/travel-companion-app/internal/logging"
)

// Readiness budget for a fresh Postgres instance. Container setups start
// the database alongside the API, so early pings are expected to fail.
const (
	dbPingTimeout   = 5 * time.Second
	dbReadyBudget   = 30 * time.Second
	dbRetryBaseWait = 500 * time.Millisecond
	dbRetryMaxWait  = 5 * time.Second
)

// openDatabase opens a pgx-backed handle and waits for the instance to
// answer pings before handing it out.
func openDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := pingUntilReady(ctx, db, dbReadyBudget); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// pingUntilReady retries pings with exponential backoff until the database
// responds, the budget runs out, or the caller cancels.
func pingUntilReady(ctx context.Context, db *sql.DB, budget time.Duration) error {
	deadline := time.Now().Add(budget)
	wait := dbRetryBaseWait

	var lastErr error
	for {
		pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
		lastErr = db.PingContext(pingCtx)
		cancel()

		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil || time.Now().After(deadline) {
			return fmt.Errorf("ping database: %w", lastErr)
		}

		logging.WithContext(ctx).Warn().
			Err(lastErr).
			Dur("retry_in", wait).
			Msg("database not ready")

		time.Sleep(wait)
		if wait *= 2; wait > dbRetryMaxWait {
			wait = dbRetryMaxWait
		}
	}
}
