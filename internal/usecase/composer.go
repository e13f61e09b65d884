package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"resume-composer/internal/adapter/repository"
	"resume-composer/internal/domain"
	"resume-composer/internal/export"
	"resume-composer/internal/export/docx"
	"resume-composer/internal/model"
	"resume-composer/internal/render"
	"resume-composer/internal/sections"
)

var (
	// ErrUnknownExportKind is returned for export kinds other than pdf and docx.
	ErrUnknownExportKind = errors.New("unknown export kind")
	// ErrUnknownSection is returned for section kinds missing from the registry.
	ErrUnknownSection = errors.New("unknown section kind")
)

// Composer owns the documents of a session: it applies edits, renders
// previews and runs exports.
type Composer struct {
	store   Store
	pdf     PDFExporter
	docx    DOCXExporter
	outDir  string
	timeout time.Duration
	log     zerolog.Logger
	now     func() time.Time

	// mu serializes read-modify-write cycles so intents apply one at a time.
	mu sync.Mutex
}

type Option func(*Composer)

// WithPDF enables PDF export. Without it PDF exports fail with
// export.ErrCapabilityMissing.
func WithPDF(e PDFExporter) Option { return func(c *Composer) { c.pdf = e } }

func WithDOCX(e DOCXExporter) Option { return func(c *Composer) { c.docx = e } }

// WithOutputDir keeps a copy of every artifact under dir/<document id>/.
func WithOutputDir(dir string) Option { return func(c *Composer) { c.outDir = dir } }

func WithTimeout(d time.Duration) Option { return func(c *Composer) { c.timeout = d } }

func WithLogger(l zerolog.Logger) Option { return func(c *Composer) { c.log = l } }

func WithClock(now func() time.Time) Option { return func(c *Composer) { c.now = now } }

func NewComposer(store Store, opts ...Option) *Composer {
	c := &Composer{
		store:   store,
		timeout: 60 * time.Second,
		log:     zerolog.Nop(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	if c.docx == nil {
		c.docx = docx.New(docx.WithLogger(c.log), docx.WithClock(c.now))
	}
	return c
}

// Document returns the saved document, or the built-in sample when nothing
// is saved under id yet.
func (c *Composer) Document(ctx context.Context, id string) (model.Document, error) {
	doc, err := c.store.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Default(), nil
	}
	return doc, err
}

// Replace saves doc under id as is.
func (c *Composer) Replace(ctx context.Context, id string, doc model.Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Save(ctx, id, doc)
}

// Apply runs intents in order against the document and saves the result.
func (c *Composer) Apply(ctx context.Context, id string, intents ...model.Intent) (model.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, err := c.Document(ctx, id)
	if err != nil {
		return model.Document{}, err
	}
	for _, in := range intents {
		doc = doc.Apply(in)
	}
	if err := c.store.Save(ctx, id, doc); err != nil {
		return model.Document{}, err
	}
	c.log.Debug().Str("document", id).Int("intents", len(intents)).Msg("composer: intents applied")
	return doc, nil
}

// AddSection inserts a registry section of kind holding one blank entry. A
// kind the document already holds is left as is.
func (c *Composer) AddSection(ctx context.Context, id string, kind model.SectionKind, title string) (model.Document, error) {
	sec, ok := sections.NewSection(kind, title)
	if !ok {
		return model.Document{}, fmt.Errorf("%w: %q", ErrUnknownSection, kind)
	}
	return c.Apply(ctx, id, model.AddSection{Section: sec})
}

// AddBlankItem appends a fresh blank entry to the section of kind and
// returns it alongside the updated document.
func (c *Composer) AddBlankItem(ctx context.Context, id string, kind model.SectionKind) (model.Document, model.Entry, error) {
	entry := sections.NewEntry(kind)
	if entry == nil {
		return model.Document{}, nil, fmt.Errorf("%w: %q", ErrUnknownSection, kind)
	}
	doc, err := c.Apply(ctx, id, model.AddSectionItem{Kind: kind, Item: entry})
	if err != nil {
		return model.Document{}, nil, err
	}
	return doc, entry, nil
}

// AvailableSections lists the registry kinds the document does not hold.
func (c *Composer) AvailableSections(ctx context.Context, id string) ([]model.SectionKind, error) {
	doc, err := c.Document(ctx, id)
	if err != nil {
		return nil, err
	}
	return sections.Available(doc), nil
}

// Preview renders the document as a standalone HTML page.
func (c *Composer) Preview(ctx context.Context, id string, p render.Presentation) ([]byte, error) {
	doc, err := c.Document(ctx, id)
	if err != nil {
		return nil, err
	}
	return render.RenderHTML(p.Input(doc))
}

// Export produces one artifact of the given kind. A failure is logged once
// and returned; it is never retried.
func (c *Composer) Export(ctx context.Context, id string, kind export.Kind, p render.Presentation) (Artifact, error) {
	doc, err := c.Document(ctx, id)
	if err != nil {
		return Artifact{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var (
		buf   bytes.Buffer
		pages int
	)
	switch kind {
	case export.KindPDF:
		pages, err = c.exportPDF(ctx, doc, p, &buf)
	case export.KindDOCX:
		_, err = c.docx.Export(ctx, doc, p.Theme, p.Font, &buf)
	default:
		return Artifact{}, fmt.Errorf("%w: %q", ErrUnknownExportKind, kind)
	}
	if err != nil {
		c.log.Error().Err(err).
			Str("document", id).
			Str("kind", string(kind)).
			Str("notice", export.Notice(err)).
			Msg("composer: export failed")
		return Artifact{}, err
	}

	rec := domain.Export{
		ID:          uuid.New(),
		DocumentID:  id,
		Kind:        string(kind),
		Template:    string(p.Template),
		FileName:    export.FileName(kind, doc.PersonalInfo.Name),
		ContentType: kind.ContentType(),
		Size:        buf.Len(),
		Pages:       pages,
		CreatedAt:   c.now().UTC(),
	}
	if c.outDir != "" {
		path, err := c.keep(id, rec.FileName, buf.Bytes())
		if err != nil {
			c.log.Warn().Err(err).Str("document", id).Msg("composer: unable to keep artifact copy")
		} else {
			rec.Path = path
		}
	}
	if err := c.store.RecordExport(ctx, rec); err != nil {
		c.log.Warn().Err(err).Str("document", id).Msg("composer: unable to record export")
	}

	c.log.Info().
		Str("document", id).
		Str("kind", rec.Kind).
		Str("file", rec.FileName).
		Int("size", rec.Size).
		Int("pages", rec.Pages).
		Msg("composer: export finished")
	return Artifact{Export: rec, Data: buf.Bytes()}, nil
}

func (c *Composer) exportPDF(ctx context.Context, doc model.Document, p render.Presentation, buf *bytes.Buffer) (int, error) {
	if c.pdf == nil {
		return 0, fmt.Errorf("pdf: %w: no browser configured", export.ErrCapabilityMissing)
	}
	in := p.Input(doc)
	htmlDoc, err := render.RenderHTML(in)
	if err != nil {
		return 0, export.Failed("render preview", err)
	}
	res, err := c.pdf.Export(ctx, htmlDoc, doc.PersonalInfo.Name, buf)
	if err != nil {
		return 0, err
	}
	return res.Pages, nil
}

func (c *Composer) keep(id, name string, data []byte) (string, error) {
	dir := filepath.Join(c.outDir, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
