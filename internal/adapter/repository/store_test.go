package repository

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-composer/internal/config"
	"resume-composer/internal/domain"
	"resume-composer/internal/model"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	sq, err := NewSQLiteStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })
	return map[string]Store{"file": fs, "sqlite": sq}
}

func TestStores_SaveGet(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			doc := model.Default()
			require.NoError(t, s.Save(ctx, "doc-1", doc))

			got, err := s.Get(ctx, "doc-1")
			require.NoError(t, err)
			assert.Equal(t, doc, got)

			doc = doc.Apply(model.UpdateSummary{Text: "changed"})
			require.NoError(t, s.Save(ctx, "doc-1", doc))
			got, err = s.Get(ctx, "doc-1")
			require.NoError(t, err)
			assert.Equal(t, "changed", got.Summary)
		})
	}
}

func TestStores_RejectUnsafeIDs(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{"", "../etc", "a/b", "a b"} {
				assert.ErrorIs(t, s.Save(ctx, id, model.Document{}), ErrInvalidID, id)
				_, err := s.Get(ctx, id)
				assert.ErrorIs(t, err, ErrInvalidID, id)
			}
		})
	}
}

func TestFileStore_CorruptDocument(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "documents", "bad.json"), []byte(`{"sections":"nope"}`), 0o644))

	_, err = s.Get(context.Background(), "bad")
	assert.ErrorIs(t, err, model.ErrInvalidDocument)
}

func TestFileStore_RecordExport(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	for _, k := range []string{"pdf", "docx"} {
		require.NoError(t, s.RecordExport(context.Background(), domain.Export{ID: uuid.New(), DocumentID: "d", Kind: k}))
	}

	f, err := os.Open(filepath.Join(dir, "exports.jsonl"))
	require.NoError(t, err)
	defer f.Close()

	var kinds []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e domain.Export
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []string{"pdf", "docx"}, kinds)
}

func TestSQLiteStore_Exports(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLiteStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	first := domain.Export{
		ID: uuid.New(), DocumentID: "d", Kind: "pdf", Template: "classic",
		FileName: "Jane_Doe_Resume.pdf", ContentType: "application/pdf",
		Size: 1024, Pages: 2, Path: "out/Jane_Doe_Resume.pdf", CreatedAt: base,
	}
	second := domain.Export{ID: uuid.New(), DocumentID: "d", Kind: "docx", FileName: "Jane_Doe.docx", CreatedAt: base.Add(time.Minute)}
	require.NoError(t, s.RecordExport(ctx, second))
	require.NoError(t, s.RecordExport(ctx, first))
	require.NoError(t, s.RecordExport(ctx, domain.Export{ID: uuid.New(), DocumentID: "other", CreatedAt: base}))

	got, err := s.Exports(ctx, "d")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, 2, got[0].Pages)
	assert.Equal(t, "classic", got[0].Template)
	assert.True(t, base.Equal(got[0].CreatedAt))
	assert.Equal(t, second.ID, got[1].ID)
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewSQLiteStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "keep", model.Default()))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(dir)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, "keep")
	require.NoError(t, err)
	assert.Equal(t, model.Default().PersonalInfo, got.PersonalInfo)

	var version int
	require.NoError(t, s.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 2, version)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, &config.Config{Store: config.StoreSQLite, DataDir: t.TempDir()}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	s, err = Open(ctx, &config.Config{Store: config.StoreFile, DataDir: t.TempDir()}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	_, err = Open(ctx, &config.Config{Store: "mongo"}, zerolog.Nop())
	assert.Error(t, err)

	_, err = Open(ctx, &config.Config{Store: config.StorePostgres}, zerolog.Nop())
	assert.Error(t, err)
}
