// Package migration creates the archive schema on first start.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type step struct {
	Name string
	SQL  string
}

// sentinel is the table whose presence means the schema is in place.
const sentinel = "public.analyses"

var steps = []step{
	{
		Name: "create_table_analyses",
		SQL: `CREATE TABLE IF NOT EXISTS analyses (
  id           UUID        PRIMARY KEY,
  filename     TEXT        NOT NULL,
  storage_path TEXT        NOT NULL UNIQUE,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  content_type TEXT        NOT NULL,
  mode         TEXT        NOT NULL CHECK (mode IN ('report', 'structured')),
  location     TEXT        NOT NULL DEFAULT '',
  analysis     JSONB,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_analyses_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses (created_at DESC, id DESC);`,
	},
	{
		Name: "create_index_analyses_mode",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_analyses_mode ON analyses (mode);`,
	},
}

// EnsureMigrated runs every step when the sentinel table is missing and does nothing otherwise.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *slog.Logger, dbHost string) error {
	start := time.Now()
	log := logger.With("component", "database", "db_host", dbHost)

	log.Info("db_migration_check", "status", "starting")

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", sentinel).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			"status", "error",
			"error_message", err.Error(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("check sentinel table: %w", err)
	}
	if exists {
		log.Info("db_migration_skip",
			"status", "success",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	for _, s := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, s.SQL); err != nil {
			log.Error("db_migration_failed",
				"status", "error",
				"migration_step", s.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return fmt.Errorf("migration step %s: %w", s.Name, err)
		}
		log.Info("db_migration_step",
			"status", "success",
			"migration_step", s.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("db_migration_success",
		"status", "success",
		"steps", len(steps),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
