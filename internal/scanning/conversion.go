package scanning

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"
)

// ErrDecode is returned when image bytes cannot be decoded
var ErrDecode = errors.New("could not decode image, unsupported format or corrupt file")

// thresholdLevel splits gray pixels into ink and paper after the contrast boost
const thresholdLevel = 150

// pdfToImage renders the first page of a PDF
func pdfToImage(pdfData []byte) (image.Image, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	// Render the first page (most receipts are single page)
	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("rendering PDF page: %w", err)
	}
	return img, nil
}

// isPDF checks the MIME type and the %PDF magic bytes
func isPDF(data []byte, mimeType string) bool {
	return mimeType == "application/pdf" || bytes.HasPrefix(data, []byte("%PDF"))
}

// isHEICFormat checks if the image data is in HEIC/HEIF format
// HEIC files typically start with specific magic bytes
func isHEICFormat(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	// Check for ftyp at offset 4
	if string(data[4:8]) == "ftyp" {
		brand := string(data[8:12])
		if brand == "heic" || brand == "heif" || brand == "mif1" || brand == "msf1" {
			return true
		}
	}
	return false
}

// isHEICMimeType checks if the MIME type indicates HEIC/HEIF format
func isHEICMimeType(mimeType string) bool {
	return strings.Contains(mimeType, "heic") || strings.Contains(mimeType, "heif")
}

// decodeImage decodes JPEG, PNG, GIF, HEIC and the first page of a PDF
func decodeImage(imageData []byte, contentType string) (image.Image, error) {
	mimeType := strings.ToLower(strings.TrimSpace(contentType))

	var (
		img image.Image
		err error
	)
	switch {
	case isPDF(imageData, mimeType):
		img, err = pdfToImage(imageData)
	case isHEICFormat(imageData) || isHEICMimeType(mimeType):
		img, err = heic.Decode(bytes.NewReader(imageData))
	default:
		img, _, err = image.Decode(bytes.NewReader(imageData))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, nil
}

// Preprocess makes text stand out for OCR: grayscale, stronger contrast,
// sharpening and a global threshold to black and white.
func Preprocess(img image.Image) *image.NRGBA {
	gray := imaging.Grayscale(img)
	gray = imaging.AdjustContrast(gray, 30)
	gray = imaging.Sharpen(gray, 1.0)
	return imaging.AdjustFunc(gray, func(c color.NRGBA) color.NRGBA {
		v := uint8(0)
		if c.R >= thresholdLevel {
			v = 255
		}
		return color.NRGBA{R: v, G: v, B: v, A: c.A}
	})
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// prepareImageData decodes any supported format and re-encodes it as PNG
func prepareImageData(imageData []byte, contentType string) ([]byte, error) {
	img, err := decodeImage(imageData, contentType)
	if err != nil {
		return nil, err
	}
	return encodePNG(img)
}

// PrepareImage decodes, preprocesses and re-encodes the image as PNG.
// Undecodable input returns an error wrapping ErrDecode.
func PrepareImage(imageData []byte, contentType string) ([]byte, error) {
	img, err := decodeImage(imageData, contentType)
	if err != nil {
		return nil, err
	}
	return encodePNG(Preprocess(img))
}
