package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"resume-composer/internal/config"
	"resume-composer/internal/domain"
	"resume-composer/internal/infrastructure/migration"
	"resume-composer/internal/model"
	infra "resume-composer/pkg/infrastructure"
)

// Store is what every backend implements.
type Store interface {
	Get(ctx context.Context, id string) (model.Document, error)
	Save(ctx context.Context, id string, doc model.Document) error
	RecordExport(ctx context.Context, e domain.Export) error
	Close() error
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*PostgresStore)(nil)
)

// Open builds the store selected by cfg.Store.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (Store, error) {
	switch cfg.Store {
	case config.StoreFile, "":
		return NewFileStore(cfg.DataDir)
	case config.StoreSQLite:
		return NewSQLiteStore(cfg.DataDir)
	case config.StorePostgres:
		pool, err := infra.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		if err := migration.RunMigrations(ctx, pool, log); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		return NewPostgresStore(pool), nil
	default:
		return nil, fmt.Errorf("unsupported store %q", cfg.Store)
	}
}
