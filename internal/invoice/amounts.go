package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

// findAmountNear looks for the first line containing a keyword and returns
// the amount on that line or, failing that, on the line right after it.
// Precedence is by keyword, not by line: every line is scanned for the first
// keyword before the second is tried. So "total a pagar" is preferred to a
// bare "total" that also appears in "sub total", even when the "sub total"
// line comes first. Base, tax and total are each looked up separately, so
// one line may feed more than one amount.
func findAmountNear(keywords []string, lines []string) *decimal.Decimal {
	lowered := make([]string, len(lines))
	for i, l := range lines {
		lowered[i] = lower(l)
	}

	for _, kw := range keywords {
		for i, l := range lowered {
			if !strings.Contains(l, kw) {
				continue
			}
			if d := amountIn(lines[i]); d != nil {
				return d
			}
			if i+1 < len(lines) {
				if d := amountIn(lines[i+1]); d != nil {
					return d
				}
			}
		}
	}
	return nil
}

func amountIn(line string) *decimal.Decimal {
	m := amountPattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	d, err := ParseAmount(m[1])
	if err != nil {
		return nil
	}
	return &d
}

// ParseAmount parses an amount using either "," or "." as decimal separator
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
}
