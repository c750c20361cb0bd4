package scanning

// Recognition is the text an OCR engine read from an image
type Recognition struct {
	// Lines are the recognized text lines in reading order
	Lines []string `json:"lines"`
	// Confidence is the engine's mean confidence in 0..1, 0 when unknown
	Confidence float64 `json:"confidence"`
}

// Engine defines the interface for OCR engines
type Engine interface {
	// Recognize reads the text lines of an image
	Recognize(imageData []byte, contentType string) (*Recognition, error)
	// Name identifies the engine in logs and health checks
	Name() string
	// Close closes the engine and releases resources
	Close() error
}
