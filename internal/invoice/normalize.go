package invoice

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Document is the normalized view of OCR output that every extractor reads
type Document struct {
	// Text is the full text, NFC composed
	Text string
	// Lower is Text lower-cased for keyword search
	Lower string
	// Lines are the trimmed, non-empty lines of Text in reading order
	Lines []string
}

// Normalize splits raw OCR text into trimmed, non-empty lines.
// OCR engines sometimes emit decomposed accents, so the text is composed
// first to make "electrónica" match regardless of the engine.
func Normalize(text string) Document {
	text = norm.NFC.String(strings.ReplaceAll(text, "\r\n", "\n"))

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	// A Caser keeps state, so one is built per call.
	lower := cases.Lower(language.Spanish).String(text)

	return Document{
		Text:  text,
		Lower: lower,
		Lines: lines,
	}
}

// NormalizeLines joins already split OCR lines and normalizes them
func NormalizeLines(lines []string) Document {
	return Normalize(strings.Join(lines, "\n"))
}

// lower lower-cases a single line the same way the full text is lower-cased
func lower(s string) string {
	return cases.Lower(language.Spanish).String(s)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
