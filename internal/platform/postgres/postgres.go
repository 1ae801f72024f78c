// Package postgres opens the shared database handle used by the PostgreSQL
// store implementations. Stores receive *sql.DB so they stay driver-agnostic;
// the pgx stdlib driver is registered here and nowhere else.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"yojana/internal/platform/config"
)

// Open connects to PostgreSQL and verifies the connection.
// Returns nil if the URL is empty (in-memory mode).
func Open(ctx context.Context, cfg config.Postgres) (*sql.DB, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return db, nil
}
