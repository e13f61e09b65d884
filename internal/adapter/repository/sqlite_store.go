package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"resume-composer/internal/domain"
	"resume-composer/internal/model"
)

//go:embed migrations/*.sql
var sqliteMigrations embed.FS

// SQLiteStore keeps documents and export records in a single SQLite file.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) <dataDir>/composer.db and applies any
// pending migrations.
func NewSQLiteStore(dataDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "composer.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Path() string { return s.path }

// migrate applies every NNN_name.up.sql newer than the recorded version.
func (s *SQLiteStore) migrate() error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	sub, err := fs.Sub(sqliteMigrations, "migrations")
	if err != nil {
		return err
	}
	entries, err := fs.ReadDir(sub, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= current {
			continue
		}
		content, err := fs.ReadFile(sub, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (model.Document, error) {
	if !ValidID(id) {
		return model.Document{}, ErrInvalidID
	}
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM documents WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Document{}, ErrNotFound
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("getting document: %w", err)
	}
	return model.Decode([]byte(data))
}

func (s *SQLiteStore) Save(ctx context.Context, id string, doc model.Document) error {
	if !ValidID(id) {
		return ErrInvalidID
	}
	b, err := model.Encode(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, id, string(b), now, now)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RecordExport(ctx context.Context, e domain.Export) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exports (id, document_id, kind, template, file_name, content_type, size, pages, path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID.String(), e.DocumentID, e.Kind, e.Template, e.FileName, e.ContentType,
		e.Size, e.Pages, e.Path, e.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("recording export: %w", err)
	}
	return nil
}

// Exports lists the export records of a document, oldest first.
func (s *SQLiteStore) Exports(ctx context.Context, documentID string) ([]domain.Export, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, kind, template, file_name, content_type, size, pages, path, created_at
		FROM exports WHERE document_id = ? ORDER BY created_at, id
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("listing exports: %w", err)
	}
	defer rows.Close()

	var out []domain.Export
	for rows.Next() {
		var (
			e  domain.Export
			id string
		)
		if err := rows.Scan(&id, &e.DocumentID, &e.Kind, &e.Template, &e.FileName,
			&e.ContentType, &e.Size, &e.Pages, &e.Path, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning export: %w", err)
		}
		if err := e.ID.UnmarshalText([]byte(id)); err != nil {
			return nil, fmt.Errorf("scanning export: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
