package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"resume-composer/internal/domain"
	"resume-composer/internal/model"
)

// PostgresStore keeps documents as JSONB rows. The tables are created by
// internal/infrastructure/migration.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (r *PostgresStore) Get(ctx context.Context, id string) (model.Document, error) {
	if !ValidID(id) {
		return model.Document{}, ErrInvalidID
	}
	var data []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM documents WHERE id = $1`, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Document{}, ErrNotFound
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("getting document: %w", err)
	}
	return model.Decode(data)
}

func (r *PostgresStore) Save(ctx context.Context, id string, doc model.Document) error {
	if !ValidID(id) {
		return ErrInvalidID
	}
	b, err := model.Encode(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	now := time.Now().UTC()
	_, err = r.pool.Exec(ctx, `INSERT INTO documents (id, data, created_at, updated_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		id, b, now, now)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

func (r *PostgresStore) RecordExport(ctx context.Context, e domain.Export) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO exports (id, document_id, kind, template, file_name, content_type, size, pages, path, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		e.ID, e.DocumentID, e.Kind, e.Template, e.FileName, e.ContentType, e.Size, e.Pages, e.Path, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("recording export: %w", err)
	}
	return nil
}

func (r *PostgresStore) Close() error {
	r.pool.Close()
	return nil
}
