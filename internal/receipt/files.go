package receipt

import (
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultAllowedExtensions are the image types accepted when none are configured
var DefaultAllowedExtensions = []string{"jpeg", "jpg", "png"}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	repeatedSpaces      = regexp.MustCompile(`\s+`)
)

// AllowedFile reports whether filename has one of the allowed extensions.
// The name must contain a dot; the comparison ignores case.
func AllowedFile(filename string, allowed []string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	ext := strings.ToLower(filename[i+1:])
	for _, a := range allowed {
		if ext == strings.ToLower(strings.TrimPrefix(strings.TrimSpace(a), ".")) {
			return true
		}
	}
	return false
}

// contentTypeFor guesses a MIME type from the file extension
func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}

// sanitizeFilename strips special characters and long phone-generated names
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)

	base = unsafeFilenameChars.ReplaceAllString(base, "")
	base = repeatedSpaces.ReplaceAllString(base, " ")
	base = strings.TrimSpace(base)

	if len(base) > 50 {
		base = base[:50]
	}
	if base == "" {
		base = "document"
	}
	return base + strings.ToLower(ext)
}
