package scanning

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract implements the Engine interface with a local Tesseract install.
// A gosseract client is not safe for concurrent use, so one is created per call.
type Tesseract struct {
	language string
}

// NewTesseract creates a Tesseract engine reading the given language(s), e.g. "spa" or "spa+eng"
func NewTesseract(language string) *Tesseract {
	if language == "" {
		language = "spa"
	}
	return &Tesseract{language: language}
}

// Name returns the engine name
func (t *Tesseract) Name() string {
	return "tesseract"
}

// Recognize runs preprocessing and Tesseract OCR over the image
func (t *Tesseract) Recognize(imageData []byte, contentType string) (*Recognition, error) {
	prepared, err := PrepareImage(imageData, contentType)
	if err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return nil, fmt.Errorf("setting tesseract language: %w", err)
	}
	if err := client.SetImageFromBytes(prepared); err != nil {
		return nil, fmt.Errorf("loading image into tesseract: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("running tesseract: %w", err)
	}

	rec := &Recognition{Lines: parseTranscript(text)}

	// Confidence is best effort; a failure here does not lose the text
	if boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD); err == nil && len(boxes) > 0 {
		var sum float64
		for _, b := range boxes {
			sum += b.Confidence
		}
		rec.Confidence = sum / float64(len(boxes)) / 100
	}

	return rec, nil
}

// Close is a no-op; clients are released after each call
func (t *Tesseract) Close() error {
	return nil
}
