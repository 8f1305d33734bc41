package blog

import (
	"context"
	"io"

	models "folio/internal/domain/models/blog"
)

// DocumentService is the editor-facing API: the four operations the
// authoring UI needs, plus export.
type DocumentService interface {
	// ListDocuments returns all index entries in stored order
	ListDocuments(ctx context.Context) ([]models.IndexEntry, error)

	// LoadDocument returns the document for id. An unknown id yields a blank
	// document with IsNew set rather than an error.
	LoadDocument(ctx context.Context, id string) (*LoadedDocument, error)

	// SaveDocument renders and persists a document, creating it when req.ID
	// is empty
	SaveDocument(ctx context.Context, req *SaveDocumentRequest, uploads []Upload) (*SaveResult, error)

	// DeleteDocument removes a document from every store. Unknown ids are a
	// silent no-op.
	DeleteDocument(ctx context.Context, id string) error

	// ExportDocument converts the rendered artifact of id to another format
	ExportDocument(ctx context.Context, id, format string) (*Export, error)
}

// SaveDocumentRequest is the payload submitted by the editor
type SaveDocumentRequest struct {
	ID        string         `json:"id"`        // Existing document id, empty for a new document
	Title     string         `json:"title"`     // Required
	Authors   string         `json:"authors"`   // Comma-separated, as typed
	Date      string         `json:"date"`      // Free-form display date
	Thumbnail string         `json:"thumbnail"` // Explicit thumbnail candidate
	Rename    bool           `json:"rename"`    // Re-derive the id from the title
	Blocks    []models.Block `json:"blocks"`
}

// Upload is a file submitted alongside a save, bound to the block whose id
// matches BlockID
type Upload struct {
	BlockID  string
	Filename string
	Body     io.Reader
}

// LoadedDocument is a document as presented to the editor
type LoadedDocument struct {
	models.Document
	IsNew bool `json:"is_new"`
}

// SaveResult describes a completed save
type SaveResult struct {
	Document   models.Document `json:"document"`
	Snippet    string          `json:"snippet"`
	Created    bool            `json:"created"`
	PreviousID string          `json:"previous_id,omitempty"` // Set when the save renamed the document
}

// Export is a converted document
type Export struct {
	ID          string `json:"id"`
	Format      string `json:"format"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

// Exporter converts rendered markup (without trailer) to one output format
type Exporter interface {
	Export(ctx context.Context, markup string) (string, error)

	// Format is the name used to select the exporter, e.g. "markdown"
	Format() string

	// ContentType is the media type of the exported body
	ContentType() string
}
