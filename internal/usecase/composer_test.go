package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-composer/internal/adapter/repository"
	"resume-composer/internal/domain"
	"resume-composer/internal/export"
	"resume-composer/internal/export/raster"
	"resume-composer/internal/model"
	"resume-composer/internal/render"
)

type memStore struct {
	mu      sync.Mutex
	docs    map[string]model.Document
	exports []domain.Export
	saveErr error
}

func newMemStore() *memStore { return &memStore{docs: map[string]model.Document{}} }

func (s *memStore) Get(_ context.Context, id string) (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return model.Document{}, repository.ErrNotFound
	}
	return d.Clone(), nil
}

func (s *memStore) Save(_ context.Context, id string, doc model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.docs[id] = doc.Clone()
	return nil
}

func (s *memStore) RecordExport(_ context.Context, e domain.Export) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exports = append(s.exports, e)
	return nil
}

type fakePDF struct {
	html  []byte
	title string
	err   error
}

func (f *fakePDF) Export(_ context.Context, htmlDoc []byte, title string, w io.Writer) (raster.Result, error) {
	f.html, f.title = htmlDoc, title
	if f.err != nil {
		return raster.Result{}, f.err
	}
	_, err := w.Write([]byte("%PDF-1.3 fake"))
	return raster.Result{Pages: 2}, err
}

var fixedNow = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }

func TestComposer_DocumentFallsBackToDefault(t *testing.T) {
	c := NewComposer(newMemStore())

	doc, err := c.Document(context.Background(), "new")
	require.NoError(t, err)
	assert.Equal(t, model.Default(), doc)
}

func TestComposer_ApplySavesInOrder(t *testing.T) {
	store := newMemStore()
	c := NewComposer(store)
	ctx := context.Background()

	doc, err := c.Apply(ctx, "d",
		model.UpdateSummary{Text: "hello"},
		model.ReorderSections{From: 0, To: 2},
		model.ToggleSectionVisibility{Kind: model.KindSkills},
	)
	require.NoError(t, err)

	assert.Equal(t, "hello", doc.Summary)
	kinds := make([]model.SectionKind, len(doc.Sections))
	for i, s := range doc.Sections {
		kinds[i] = s.Kind
	}
	assert.Equal(t, []model.SectionKind{model.KindEducation, model.KindSkills, model.KindExperience}, kinds)

	saved, err := store.Get(ctx, "d")
	require.NoError(t, err)
	assert.Equal(t, doc, saved)
	sk, _ := saved.Section(model.KindSkills)
	assert.False(t, sk.IsVisible)
}

func TestComposer_ApplyConcurrentIntentsAllLand(t *testing.T) {
	store := newMemStore()
	c := NewComposer(store)
	ctx := context.Background()
	require.NoError(t, c.Replace(ctx, "d", model.Document{Sections: []model.Section{
		{Kind: model.KindInterests, Title: "Interests", IsVisible: true},
	}}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := c.Apply(ctx, "d", model.AddSectionItem{
				Kind: model.KindInterests,
				Item: model.Interest{ID: string(rune('a' + i)), Name: "x"},
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	doc, err := c.Document(ctx, "d")
	require.NoError(t, err)
	s, _ := doc.Section(model.KindInterests)
	assert.Len(t, s.Items, 20)
}

func TestComposer_ApplySaveError(t *testing.T) {
	store := newMemStore()
	store.saveErr = errors.New("read-only")
	c := NewComposer(store)

	_, err := c.Apply(context.Background(), "d", model.UpdateSummary{Text: "x"})
	assert.ErrorIs(t, err, store.saveErr)
}

func TestComposer_Preview(t *testing.T) {
	c := NewComposer(newMemStore())
	p := render.Presentation{Template: render.AcademicCV, Theme: render.DefaultTheme, Font: "lora"}

	out, err := c.Preview(context.Background(), "d", p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `data-template="academic-cv"`)
	assert.Contains(t, string(out), "Alex Morgan")
}

func TestComposer_ExportPDF(t *testing.T) {
	store := newMemStore()
	pdf := &fakePDF{}
	out := t.TempDir()
	c := NewComposer(store, WithPDF(pdf), WithOutputDir(out), WithClock(fixedNow))

	art, err := c.Export(context.Background(), "d", export.KindPDF, render.DefaultPresentation)
	require.NoError(t, err)

	assert.Equal(t, "Alex_Morgan_Resume.pdf", art.FileName)
	assert.Equal(t, export.ContentTypePDF, art.ContentType)
	assert.Equal(t, 2, art.Pages)
	assert.Equal(t, "Alex Morgan", pdf.title)
	assert.Contains(t, string(pdf.html), `id="resume-preview"`)
	assert.Equal(t, fixedNow(), art.CreatedAt)

	kept, err := os.ReadFile(filepath.Join(out, "d", "Alex_Morgan_Resume.pdf"))
	require.NoError(t, err)
	assert.Equal(t, art.Data, kept)
	assert.Equal(t, filepath.Join(out, "d", "Alex_Morgan_Resume.pdf"), art.Path)

	require.Len(t, store.exports, 1)
	assert.Equal(t, art.Export, store.exports[0])
}

func TestComposer_ExportDOCX(t *testing.T) {
	store := newMemStore()
	c := NewComposer(store, WithClock(fixedNow))

	art, err := c.Export(context.Background(), "d", export.KindDOCX, render.DefaultPresentation)
	require.NoError(t, err)

	assert.Equal(t, "Alex_Morgan.docx", art.FileName)
	assert.Equal(t, export.ContentTypeDOCX, art.ContentType)
	assert.True(t, bytes.HasPrefix(art.Data, []byte("PK")))
	assert.Empty(t, art.Path)
	assert.Len(t, store.exports, 1)
}

func TestComposer_ExportFailures(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	_, err := NewComposer(store).Export(ctx, "d", export.KindPDF, render.DefaultPresentation)
	assert.ErrorIs(t, err, export.ErrCapabilityMissing)

	failing := &fakePDF{err: export.Failed("rasterize", errors.New("gpu lost"))}
	_, err = NewComposer(store, WithPDF(failing)).Export(ctx, "d", export.KindPDF, render.DefaultPresentation)
	assert.ErrorIs(t, err, export.ErrExportFailed)

	_, err = NewComposer(store).Export(ctx, "d", export.Kind("odt"), render.DefaultPresentation)
	assert.ErrorIs(t, err, ErrUnknownExportKind)

	assert.Empty(t, store.exports)
}

func TestComposer_SectionConveniences(t *testing.T) {
	c := NewComposer(newMemStore())
	ctx := context.Background()

	avail, err := c.AvailableSections(ctx, "d")
	require.NoError(t, err)
	assert.Equal(t, []model.SectionKind{
		model.KindProjects, model.KindCertifications, model.KindLanguages, model.KindInterests,
	}, avail)

	doc, err := c.AddSection(ctx, "d", model.KindLanguages, "")
	require.NoError(t, err)
	sec, ok := doc.Section(model.KindLanguages)
	require.True(t, ok)
	assert.Equal(t, "Languages", sec.Title)
	assert.Len(t, sec.Items, 1)
	assert.True(t, sec.IsVisible)

	doc, entry, err := c.AddBlankItem(ctx, "d", model.KindLanguages)
	require.NoError(t, err)
	sec, _ = doc.Section(model.KindLanguages)
	require.Len(t, sec.Items, 2)
	assert.Equal(t, entry.EntryID(), sec.Items[1].EntryID())

	_, err = c.AddSection(ctx, "d", model.SectionKind("hobbies"), "")
	assert.ErrorIs(t, err, ErrUnknownSection)
	_, _, err = c.AddBlankItem(ctx, "d", model.SectionKind("hobbies"))
	assert.ErrorIs(t, err, ErrUnknownSection)
}
