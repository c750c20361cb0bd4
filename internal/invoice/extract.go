package invoice

import "log/slog"

// step fills in one part of a Result
type step struct {
	field string
	run   func(doc Document, res *Result)
}

// defaultSteps run in this order on every document
var defaultSteps = []step{
	{"taxId", func(doc Document, res *Result) { res.Record.TaxID = TaxID(doc) }},
	{"series/number", func(doc Document, res *Result) {
		res.Record.Series, res.Record.Number = SeriesAndNumber(doc)
	}},
	{"issueDate", func(doc Document, res *Result) { res.Record.IssueDate = IssueDate(doc) }},
	{"documentType", func(doc Document, res *Result) { res.Record.DocumentType = DocumentType(doc) }},
	{"currency", func(doc Document, res *Result) { res.Record.Currency = CurrencyOf(doc) }},
	{"amounts.base", func(doc Document, res *Result) {
		res.Record.Amounts.Base = findAmountNear(baseKeywords, doc.Lines)
	}},
	{"amounts.tax", func(doc Document, res *Result) {
		res.Record.Amounts.Tax = findAmountNear(taxKeywords, doc.Lines)
	}},
	{"amounts.total", func(doc Document, res *Result) {
		res.Record.Amounts.Total = findAmountNear(totalKeywords, doc.Lines)
	}},
	{"items", func(doc Document, res *Result) { res.Items = LineItems(doc) }},
	{"category", func(doc Document, res *Result) { res.Category = Classify(doc) }},
}

// Extractor turns OCR text into a Result. It holds no per-call state and may
// be shared between goroutines.
type Extractor struct {
	logger *slog.Logger
	steps  []step
}

// NewExtractor creates an Extractor that reports extractor faults to logger
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		logger: logger,
		steps:  defaultSteps,
	}
}

// Extract runs every field extractor over text.
// It never fails: fields that cannot be found, or whose extractor faults,
// are left empty.
func (e *Extractor) Extract(text string) *Result {
	return e.run(Normalize(text))
}

// ExtractLines is Extract for OCR output that is already split into lines
func (e *Extractor) ExtractLines(lines []string) *Result {
	return e.run(NormalizeLines(lines))
}

func (e *Extractor) run(doc Document) *Result {
	res := &Result{Items: []string{}}
	for _, s := range e.steps {
		e.safely(s.field, func() { s.run(doc, res) })
	}
	return res
}

// safely runs fn and contains any panic to the field it was extracting
func (e *Extractor) safely(field string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Field extractor failed", "field", field, "panic", r)
		}
	}()
	fn()
}

// Extract runs the default Extractor over text
func Extract(text string) *Result {
	return NewExtractor(nil).Extract(text)
}
