package scanning

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/v3.0/computervision"
	"github.com/Azure/go-autorest/autorest"
)

// Azure implements the Engine interface with Azure Computer Vision printed-text OCR
type Azure struct {
	client   *computervision.BaseClient
	language computervision.OcrLanguages
}

// NewAzure creates a new Azure Engine instance
func NewAzure(endpoint, apiKey string) (*Azure, error) {
	if endpoint == "" || apiKey == "" {
		return nil, fmt.Errorf("azure endpoint and key are required")
	}

	client := computervision.New(endpoint)
	client.Authorizer = autorest.NewCognitiveServicesAuthorizer(apiKey)

	return &Azure{
		client:   &client,
		language: computervision.OcrLanguagesEs,
	}, nil
}

// Name returns the engine name
func (a *Azure) Name() string {
	return "azure"
}

// Recognize sends the preprocessed image to Azure and collects the lines in region order
func (a *Azure) Recognize(imageData []byte, contentType string) (*Recognition, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	prepared, err := PrepareImage(imageData, contentType)
	if err != nil {
		return nil, err
	}

	result, err := a.client.RecognizePrintedTextInStream(ctx, true, io.NopCloser(bytes.NewReader(prepared)), a.language)
	if err != nil {
		return nil, fmt.Errorf("recognizing printed text: %w", err)
	}

	return &Recognition{Lines: ocrResultLines(result)}, nil
}

// ocrResultLines flattens regions into text lines, skipping anything missing
func ocrResultLines(result computervision.OcrResult) []string {
	lines := make([]string, 0)
	if result.Regions == nil {
		return lines
	}
	for _, region := range *result.Regions {
		if region.Lines == nil {
			continue
		}
		for _, line := range *region.Lines {
			if line.Words == nil {
				continue
			}
			words := make([]string, 0, len(*line.Words))
			for _, word := range *line.Words {
				if word.Text != nil {
					words = append(words, *word.Text)
				}
			}
			if text := strings.TrimSpace(strings.Join(words, " ")); text != "" {
				lines = append(lines, text)
			}
		}
	}
	return lines
}

// Close is a no-op for the REST client
func (a *Azure) Close() error {
	return nil
}
