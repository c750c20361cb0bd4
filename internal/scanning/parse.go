package scanning

import "strings"

// transcriptionPrompt asks a vision model to act as a plain OCR engine
const transcriptionPrompt = `You are an OCR engine. Transcribe every line of text in this image of a receipt or invoice exactly as printed.

Rules:
- Output one line of text per printed line, top to bottom
- Keep the original spelling, accents, punctuation, numbers and casing
- Do not translate, summarize, correct or reformat anything
- Do not add commentary, headings or markdown
- If the image contains no legible text, output nothing`

// parseTranscript turns a model's transcription into trimmed, non-empty lines
func parseTranscript(text string) []string {
	text = strings.TrimSpace(text)

	// Remove markdown code blocks if present
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	lines := make([]string, 0)
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
