package domain

import (
	"time"

	"github.com/google/uuid"
)

// Export is the record kept for every finished export artifact.
type Export struct {
	ID          uuid.UUID `json:"id"`
	DocumentID  string    `json:"document_id"`
	Kind        string    `json:"kind"`
	Template    string    `json:"template"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	Pages       int       `json:"pages,omitempty"`
	// Path is where the artifact was written, empty when it was only
	// streamed back to the caller.
	Path      string    `json:"path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
