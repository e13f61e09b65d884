package usecase

import (
	"context"
	"io"

	"resume-composer/internal/domain"
	"resume-composer/internal/export/docx"
	"resume-composer/internal/export/raster"
	"resume-composer/internal/model"
	"resume-composer/internal/render"
)

// Store persists documents by id and records finished exports.
type Store interface {
	Get(ctx context.Context, id string) (model.Document, error)
	Save(ctx context.Context, id string, doc model.Document) error
	RecordExport(ctx context.Context, e domain.Export) error
}

// PDFExporter turns a rendered preview document into a paginated PDF.
type PDFExporter interface {
	Export(ctx context.Context, htmlDoc []byte, title string, w io.Writer) (raster.Result, error)
}

// DOCXExporter serializes a document into a word-processing file.
type DOCXExporter interface {
	Export(ctx context.Context, doc model.Document, theme render.Theme, font render.Font, w io.Writer) (docx.Result, error)
}

// Artifact is a finished export: its record and its bytes.
type Artifact struct {
	domain.Export
	Data []byte
}
