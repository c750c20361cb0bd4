package receipt

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/zombor/invoice-ocr/internal/invoice"
)

// auditTextLimit is how much OCR text an audit record keeps when full text is off
const auditTextLimit = 100

// AuditLogger writes one record per extraction for later review
type AuditLogger struct {
	logger   *slog.Logger
	fullText bool
}

// NewAuditLogger creates an AuditLogger. With fullText unset the OCR text is truncated.
func NewAuditLogger(logger *slog.Logger, fullText bool) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{logger: logger, fullText: fullText}
}

// LogExtraction records what was read from a document
func (a *AuditLogger) LogExtraction(filename, text string, total *decimal.Decimal, category invoice.Category, confidence float64) {
	if !a.fullText {
		text = truncateText(text, auditTextLimit)
	}

	attrs := []any{
		"filename", filename,
		"category", category,
		"confidence", confidence,
		"text", text,
	}
	if total != nil {
		attrs = append(attrs, "total", total.StringFixed(2))
	}
	a.logger.Info("Extraction", attrs...)
}

// truncateText cuts s to n runes and marks the cut
func truncateText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
