package invoice

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// DocumentTypeInvoice is the tax authority code for a "factura"
const DocumentTypeInvoice = "01"

// Currency is the ISO code of the currency printed on the document
type Currency string

const (
	CurrencyPEN Currency = "PEN"
	CurrencyUSD Currency = "USD"
)

// Category describes the medium the document was issued in
type Category string

const (
	CategoryElectronic Category = "comprobante_electronico"
	CategoryPhysical   Category = "comprobante_fisico"
)

// Amounts holds the monetary totals found on the document.
// A nil value means the amount was not found.
type Amounts struct {
	Base  *decimal.Decimal `json:"base,omitempty"`
	Tax   *decimal.Decimal `json:"tax,omitempty"`
	Total *decimal.Decimal `json:"total,omitempty"`
}

// MarshalJSON writes every present amount as a JSON number with two
// decimals, such as 118.00.
func (a Amounts) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Base  json.RawMessage `json:"base,omitempty"`
		Tax   json.RawMessage `json:"tax,omitempty"`
		Total json.RawMessage `json:"total,omitempty"`
	}{
		Base:  fixedAmount(a.Base),
		Tax:   fixedAmount(a.Tax),
		Total: fixedAmount(a.Total),
	})
}

func fixedAmount(d *decimal.Decimal) json.RawMessage {
	if d == nil {
		return nil
	}
	return json.RawMessage(d.StringFixed(2))
}

// Record contains the fields extracted from an invoice or receipt.
// Every field is optional; an empty value means it was not found.
type Record struct {
	TaxID        string   `json:"taxId,omitempty"`
	DocumentType string   `json:"documentType,omitempty"`
	Series       string   `json:"series,omitempty"`
	Number       string   `json:"number,omitempty"`
	IssueDate    string   `json:"issueDate,omitempty"` // as printed, not parsed
	Currency     Currency `json:"currency,omitempty"`
	Amounts      Amounts  `json:"amounts"`
}

// Result is the output of a single extraction
type Result struct {
	Record   Record   `json:"invoice"`
	Items    []string `json:"items"`
	Category Category `json:"category"`
}

// IsEmpty reports whether no field at all could be extracted
func (r Record) IsEmpty() bool {
	return r.TaxID == "" && r.DocumentType == "" && r.Series == "" && r.Number == "" &&
		r.IssueDate == "" && r.Currency == "" &&
		r.Amounts.Base == nil && r.Amounts.Tax == nil && r.Amounts.Total == nil
}
