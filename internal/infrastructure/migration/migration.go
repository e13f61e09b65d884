package migration

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"
)

// Migration is one idempotent schema step.
type Migration struct {
	Name string
	SQL  string
}

// Migrations lists the Postgres schema steps in the order they run.
var Migrations = []Migration{
	{
		Name: "create_documents",
		SQL: `
		CREATE TABLE IF NOT EXISTS documents (
			id         TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	},
	{
		Name: "create_exports",
		SQL: `
		CREATE TABLE IF NOT EXISTS exports (
			id           UUID PRIMARY KEY,
			document_id  TEXT NOT NULL,
			kind         TEXT NOT NULL,
			template     TEXT NOT NULL DEFAULT '',
			file_name    TEXT NOT NULL,
			content_type TEXT NOT NULL,
			size         INTEGER NOT NULL,
			pages        INTEGER NOT NULL DEFAULT 0,
			path         TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL
		);`,
	},
	{
		Name: "index_exports_document",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_exports_document ON exports (document_id, created_at);`,
	},
}

// RunMigrations applies every migration on startup. Each step is written to
// be safe to repeat.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	return run(ctx, func(ctx context.Context, sql string) error {
		_, err := pool.Exec(ctx, sql)
		return err
	}, log)
}

func run(ctx context.Context, exec func(context.Context, string) error, log zerolog.Logger) error {
	log.Info().Int("count", len(Migrations)).Msg("starting database migrations")
	for _, m := range Migrations {
		if err := exec(ctx, m.SQL); err != nil {
			log.Error().Err(err).Str("name", m.Name).Msg("migration failed")
			return err
		}
		log.Info().Str("name", m.Name).Msg("migration completed")
	}
	log.Info().Msg("all migrations completed")
	return nil
}
