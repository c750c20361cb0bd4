package receipt

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zombor/invoice-ocr/internal/invoice"
	"github.com/zombor/invoice-ocr/internal/scanning"
)

// IDGenerator generates unique IDs for extractions
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Config holds the service options
type Config struct {
	// AllowedExtensions lists accepted file extensions, DefaultAllowedExtensions when empty
	AllowedExtensions []string
	// KeepFiles stores a copy of every processed document
	KeepFiles bool
	// FullTextAudit logs the whole OCR text instead of its first 100 characters
	FullTextAudit bool
	// FetchTimeout bounds downloads of remote images
	FetchTimeout time.Duration
}

// Service runs documents through OCR and field extraction
type Service struct {
	db          DB
	engine      scanning.Engine
	storage     Storage
	fetcher     Fetcher
	extractor   *invoice.Extractor
	audit       *AuditLogger
	allowed     []string
	keepFiles   bool
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with an HTTP fetcher, UUIDs and the wall clock
func NewService(db DB, engine scanning.Engine, storage Storage, cfg Config) *Service {
	return NewServiceWithDeps(db, engine, storage, cfg, NewHTTPFetcher(cfg.FetchTimeout), &uuidGenerator{}, &defaultTimeSource{})
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing.
// db and storage may be nil, in which case nothing is persisted.
func NewServiceWithDeps(db DB, engine scanning.Engine, storage Storage, cfg Config, fetcher Fetcher, idGen IDGenerator, timeSrc TimeSource) *Service {
	allowed := cfg.AllowedExtensions
	if len(allowed) == 0 {
		allowed = DefaultAllowedExtensions
	}
	return &Service{
		db:          db,
		engine:      engine,
		storage:     storage,
		fetcher:     fetcher,
		extractor:   invoice.NewExtractor(slog.Default()),
		audit:       NewAuditLogger(slog.Default(), cfg.FullTextAudit),
		allowed:     allowed,
		keepFiles:   cfg.KeepFiles,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// EngineName returns the name of the OCR engine in use
func (s *Service) EngineName() string {
	return s.engine.Name()
}

// AllowedExtensions returns the accepted file extensions
func (s *Service) AllowedExtensions() []string {
	return s.allowed
}

func (s *Service) unsupported(filename string) error {
	return fmt.Errorf("%w: %q, expected one of %s", ErrUnsupportedFileType, filename, strings.Join(s.allowed, ", "))
}

// ProcessImage runs OCR over an uploaded image and extracts its invoice fields
func (s *Service) ProcessImage(filename string, data []byte, contentType string) (*Response, error) {
	return s.process(filename, data, contentType, "")
}

func (s *Service) process(filename string, data []byte, contentType, source string) (*Response, error) {
	if !AllowedFile(filename, s.allowed) {
		return nil, s.unsupported(filename)
	}
	// Multipart parts default to octet-stream; the extension says more
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = contentTypeFor(filename)
	}

	rec, err := s.engine.Recognize(data, contentType)
	if err != nil {
		slog.Error("Failed to recognize text",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"engine", s.engine.Name(),
			"error", err,
		)
		return nil, fmt.Errorf("recognizing text: %w", err)
	}
	if len(rec.Lines) == 0 {
		slog.Warn("No text detected", "filename", filename, "engine", s.engine.Name())
		return nil, ErrNoTextDetected
	}

	text := strings.Join(rec.Lines, "\n")
	result := s.extractor.ExtractLines(rec.Lines)
	if result.Record.IsEmpty() {
		slog.Warn("No invoice fields recognized", "filename", filename, "engine", s.engine.Name(), "lines", len(rec.Lines))
	}
	s.audit.LogExtraction(filename, text, result.Record.Amounts.Total, result.Category, rec.Confidence)

	extraction := &Extraction{
		ID:          s.idGenerator.Generate(),
		Filename:    filename,
		ContentType: contentType,
		Source:      source,
		Engine:      s.engine.Name(),
		RawText:     text,
		Confidence:  rec.Confidence,
		Result:      result,
		CreatedAt:   s.timeSource.Now(),
	}

	if err := s.persist(extraction, data); err != nil {
		return nil, err
	}

	return newResponse(extraction), nil
}

// persist saves the extraction and, when configured, the document itself
func (s *Service) persist(extraction *Extraction, data []byte) error {
	if s.keepFiles && s.storage != nil {
		key, err := s.storage.Save(fmt.Sprintf("%s_%s", extraction.ID, sanitizeFilename(extraction.Filename)), data)
		if err != nil {
			return fmt.Errorf("saving file: %w", err)
		}
		extraction.StoredFile = key
	}

	if s.db == nil {
		return nil
	}
	if err := s.db.SaveExtraction(extraction); err != nil {
		if extraction.StoredFile != "" {
			s.storage.Delete(extraction.StoredFile)
		}
		return fmt.Errorf("saving extraction to database: %w", err)
	}
	return nil
}

// filenameFromURL returns the last path segment of rawURL
func filenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return path.Base(rawURL)
	}
	return path.Base(u.Path)
}

// ProcessURL downloads an image and processes it like an upload.
// The filename is the last segment of the URL path.
func (s *Service) ProcessURL(ctx context.Context, rawURL string) (*Response, error) {
	filename := filenameFromURL(rawURL)
	if !AllowedFile(filename, s.allowed) {
		return nil, s.unsupported(filename)
	}

	data, contentType, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		slog.Error("Failed to fetch image", "url", rawURL, "error", err)
		return nil, err
	}

	// Servers often answer with a generic type; the extension is more reliable
	if !strings.HasPrefix(contentType, "image/") {
		contentType = contentTypeFor(filename)
	}
	return s.process(filename, data, contentType, rawURL)
}

// BatchResult is the outcome for one file of a directory run
type BatchResult struct {
	Filename string
	Response *Response
	Err      error
}

// ProcessDirectory processes every allowed image in dir, in name order.
// A failing file is recorded in its BatchResult and does not stop the run.
func (s *Service) ProcessDirectory(dir string) ([]BatchResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	results := make([]BatchResult, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !AllowedFile(entry.Name(), s.allowed) {
			continue
		}

		result := BatchResult{Filename: entry.Name()}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			result.Err = fmt.Errorf("reading file: %w", err)
		} else {
			result.Response, result.Err = s.ProcessImage(entry.Name(), data, "")
		}
		if result.Err != nil {
			slog.Warn("Batch file failed", "filename", entry.Name(), "error", result.Err)
		}
		results = append(results, result)
	}

	slog.Info("Batch finished", "directory", dir, "files", len(results))
	return results, nil
}

// GetExtraction retrieves an extraction by ID
func (s *Service) GetExtraction(id string) (*Extraction, error) {
	if s.db == nil {
		return nil, ErrNotFound
	}
	extraction, err := s.db.GetExtraction(id)
	if err != nil {
		return nil, fmt.Errorf("getting extraction: %w", err)
	}
	return extraction, nil
}

// ListExtractions returns the extraction history, newest first
func (s *Service) ListExtractions() ([]*Extraction, error) {
	if s.db == nil {
		return []*Extraction{}, nil
	}
	extractions, err := s.db.ListExtractions()
	if err != nil {
		return nil, fmt.Errorf("listing extractions: %w", err)
	}
	return extractions, nil
}

// DeleteExtraction removes an extraction and its stored file
func (s *Service) DeleteExtraction(id string) error {
	extraction, err := s.GetExtraction(id)
	if err != nil {
		return fmt.Errorf("getting extraction for deletion: %w", err)
	}

	if extraction.StoredFile != "" && s.storage != nil {
		if err := s.storage.Delete(extraction.StoredFile); err != nil {
			// Keep going, a missing file should not block the history cleanup
			slog.Warn("Failed to delete file", "filename", extraction.StoredFile, "error", err)
		}
	}

	if err := s.db.DeleteExtraction(id); err != nil {
		return fmt.Errorf("deleting extraction from database: %w", err)
	}
	return nil
}

// GetExtractionFile returns the stored document of an extraction
func (s *Service) GetExtractionFile(id string) ([]byte, string, error) {
	extraction, err := s.GetExtraction(id)
	if err != nil {
		return nil, "", err
	}
	if extraction.StoredFile == "" || s.storage == nil {
		return nil, "", fmt.Errorf("%w: no stored file for %s", ErrNotFound, id)
	}

	data, err := s.storage.Get(extraction.StoredFile)
	if err != nil {
		return nil, "", fmt.Errorf("getting extraction file: %w", err)
	}
	return data, extraction.ContentType, nil
}
