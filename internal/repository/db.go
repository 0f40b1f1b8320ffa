package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/AakashShah07/Web-Development-Assesment/internal/config"
)

// OpenDB opens the process-wide database handle. The caller owns it and
// must Close it on shutdown.
func OpenDB(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == "sqlite" {
		// A single connection keeps in-memory databases shared and
		// serializes writers.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(50)
		db.SetConnMaxLifetime(time.Hour)
	}

	return db, nil
}
