package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_issues",
		SQL: `CREATE TABLE IF NOT EXISTS issues (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  seq         BIGSERIAL   NOT NULL UNIQUE,
  project     TEXT        NOT NULL,
  issue_title TEXT        NOT NULL CHECK (issue_title <> ''),
  issue_text  TEXT        NOT NULL CHECK (issue_text <> ''),
  created_by  TEXT        NOT NULL CHECK (created_by <> ''),
  assigned_to TEXT        NOT NULL DEFAULT '',
  status_text TEXT        NOT NULL DEFAULT '',
  open        BOOLEAN     NOT NULL DEFAULT TRUE,
  created_on  TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_on  TIMESTAMPTZ NOT NULL DEFAULT now(),
  CHECK (created_on <= updated_on)
);`,
	},
	{
		Name: "create_index_issues_project_seq",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_issues_project_seq ON issues (project, seq);`,
	},
	{
		Name: "create_index_issues_project_open",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_issues_project_open ON issues (project, open);`,
	},
}

// EnsureMigrated checks if the 'issues' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log zerolog.Logger, dbHost string) error {
	start := time.Now()
	log = log.With().Str("component", "database").Str("db_host", dbHost).Logger()

	log.Info().Str("event", "db_migration_check").Str("status", "starting").Send()

	var exists bool
	query := "SELECT to_regclass('public.issues') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error().
			Err(err).
			Str("event", "db_migration_failed").
			Str("status", "error").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info().
			Str("event", "db_migration_skip").
			Str("status", "success").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already exists, skipping migration")
		return nil
	}

	log.Info().Str("event", "db_migration_start").Str("status", "in_progress").Send()

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().
				Err(err).
				Str("event", "db_migration_failed").
				Str("status", "error").
				Str("migration_step", step.Name).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
				Send()
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info().
			Str("event", "db_migration_step").
			Str("status", "success").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Send()
	}

	log.Info().
		Str("event", "db_migration_success").
		Str("status", "success").
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Send()

	return nil
}
