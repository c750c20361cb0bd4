package invoice

import "regexp"

// Patterns are compiled once and only read afterwards, so they are shared by
// every extraction without locking. Within each slice order is precedence:
// the first pattern that matches wins.

var taxIDPatterns = []*regexp.Regexp{
	// "RUC", "R.U.C.", "r u c:" ... OCR likes to scatter punctuation inside the label
	regexp.MustCompile(`(?i)r[\s.:_-]*u[\s.:_-]*c[\s.:_-]*([0-9]{11})`),
	regexp.MustCompile(`\b([0-9]{11})\b`),
}

var seriesPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bser(?:ie)?\b\.?[\s.:_-]*([a-z0-9]{3,5})\b`),
	regexp.MustCompile(`(?i)\b([fb][0-9]{3,5})\b`),
	regexp.MustCompile(`(?i)\b([a-z]{1,3}[0-9]{3,5})\b`),
}

var numberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:n[úu]mero|num|nro|no|n)[\s.:_-]*[°º]?[\s.:_-]*([0-9]{5,10})\b`),
	regexp.MustCompile(`\b([0-9]{6,10})\b`),
}

// seriesNumberPattern recovers pairs such as "F001-0001234" from the full text.
// The series is held to a letter and three digits so that a pair printed
// without a separator, "F0010001234", still splits after "F001".
var seriesNumberPattern = regexp.MustCompile(`(?i)\b([fb][0-9]{3})[-\s:]*([0-9]{5,10})\b`)

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{2}[/-]\d{2}[/-]\d{4})`),
	regexp.MustCompile(`(\d{4}[/-]\d{2}[/-]\d{2})`),
	regexp.MustCompile(`(\d{2}[. ]\d{2}[. ]\d{4})`),
}

var dateKeywords = []string{"fecha", "emision", "emisión", "fec.", "f. emision"}

const invoiceKeyword = "factura"

var (
	solesPattern   = regexp.MustCompile(`s/|soles`)
	dollarsPattern = regexp.MustCompile(`usd|dólares|dolares`)
)

// amountPattern is 1-4 integer digits, a separator and at least two decimals
var amountPattern = regexp.MustCompile(`(\d{1,4}[.,]\d{2,})`)

// Keyword sets are searched in order, see findAmountNear.
var (
	baseKeywords  = []string{"gravado", "valor venta", "subtotal", "op. gravada", "sub total"}
	taxKeywords   = []string{"igv", "i.g.v"}
	totalKeywords = []string{"total a pagar", "importe total", "total", "son:"}
)

var itemPattern = regexp.MustCompile(`[A-ZÁÉÍÓÚÑ]{3,}`)

// itemExclusions lists the labels and headers that are never items
var itemExclusions = regexp.MustCompile(`(?i)(FACTURA|TOTAL|GRAVADO|IGV|IMPORTE|RUC|ELECTRONICA|BOLETA|SON|SUBTOTAL|VALOR|FECHA|N°|NRO|NUMERO|CANCELADO|CLIENTE|DIRECCION|MONEDA|EMISION|VENDEDOR|CREDITO|CONTADO|OP\.|BASE|SUB|P.UNIT|CANT|DESCRIPCION|UNIDAD|MEDIDA|CODIGO|FIRMA|SELLO|SUPERVISOR|ALMACEN|VB)`)

var electronicKeywords = []string{"electrónica", "electronica"}

// firstSubmatch returns the first capture group of the first pattern that matches s
func firstSubmatch(patterns []*regexp.Regexp, s string) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(s); m != nil {
			return m[1]
		}
	}
	return ""
}
