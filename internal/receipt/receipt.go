package receipt

import (
	"errors"
	"time"

	"github.com/zombor/invoice-ocr/internal/invoice"
)

var (
	// ErrUnsupportedFileType is returned when a file does not have an accepted image extension
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrNoTextDetected is returned when OCR finds no text at all
	ErrNoTextDetected = errors.New("no text detected")
	// ErrFetchFailed is returned when a remote image cannot be downloaded
	ErrFetchFailed = errors.New("could not download image")
	// ErrNotFound is returned when an extraction does not exist
	ErrNotFound = errors.New("extraction not found")
)

// Extraction is the stored record of one processed document
type Extraction struct {
	ID          string          `json:"id"`
	Filename    string          `json:"filename"`
	StoredFile  string          `json:"stored_file,omitempty"` // empty unless the upload was kept
	ContentType string          `json:"content_type"`
	Source      string          `json:"source,omitempty"` // URL for fetched images
	Engine      string          `json:"engine"`
	RawText     string          `json:"raw_text"`
	Confidence  float64         `json:"confidence"`
	Result      *invoice.Result `json:"result"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Meta carries the document metadata of a Response
type Meta struct {
	Filename string           `json:"filename"`
	Category invoice.Category `json:"category"`
}

// Response is the envelope returned for a successful extraction
type Response struct {
	ID       string         `json:"id,omitempty"`
	Filename string         `json:"filename"`
	RawText  string         `json:"rawText"`
	Meta     Meta           `json:"meta"`
	Invoice  invoice.Record `json:"invoice"`
	Items    []string       `json:"items"`
}

// Failure is the payload returned when a document could not be processed
type Failure struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// newResponse wraps an extraction result in the response envelope
func newResponse(e *Extraction) *Response {
	return &Response{
		ID:       e.ID,
		Filename: e.Filename,
		RawText:  e.RawText,
		Meta: Meta{
			Filename: e.Filename,
			Category: e.Result.Category,
		},
		Invoice: e.Result.Record,
		Items:   e.Result.Items,
	}
}
