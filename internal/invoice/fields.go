package invoice

import "strings"

// TaxID returns the issuer's 11 digit RUC, searching the full text
func TaxID(doc Document) string {
	return firstSubmatch(taxIDPatterns, doc.Text)
}

// SeriesAndNumber returns the series and correlative number of the document.
// Lines are scanned until both have been seen; if either is still missing the
// full text is searched for a combined "F001-0001234" token.
func SeriesAndNumber(doc Document) (series, number string) {
	for _, line := range doc.Lines {
		if s := firstSubmatch(seriesPatterns, line); s != "" {
			series = s
		}
		if n := firstSubmatch(numberPatterns, line); n != "" {
			number = n
		}
		if series != "" && number != "" {
			return series, number
		}
	}

	if m := seriesNumberPattern.FindStringSubmatch(doc.Text); m != nil {
		return m[1], m[2]
	}
	return series, number
}

// IssueDate returns the issue date exactly as printed.
// A date on a line labelled as a date beats any other date-shaped text.
func IssueDate(doc Document) string {
	for _, line := range doc.Lines {
		if !containsAny(lower(line), dateKeywords) {
			continue
		}
		if d := firstSubmatch(datePatterns, line); d != "" {
			return d
		}
	}
	return firstSubmatch(datePatterns, doc.Text)
}

// DocumentType returns the document type code, only invoices are recognized
func DocumentType(doc Document) string {
	if strings.Contains(doc.Lower, invoiceKeyword) {
		return DocumentTypeInvoice
	}
	return ""
}

// CurrencyOf returns the currency of the document. Soles win over dollars
// when both are mentioned.
func CurrencyOf(doc Document) Currency {
	switch {
	case solesPattern.MatchString(doc.Lower):
		return CurrencyPEN
	case dollarsPattern.MatchString(doc.Lower):
		return CurrencyUSD
	}
	return ""
}
