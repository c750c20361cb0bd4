package receipt

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const workbookSheet = "Extractions"

var workbookHeaders = []string{
	"Filename",
	"Category",
	"Tax ID",
	"Document Type",
	"Series",
	"Number",
	"Issue Date",
	"Currency",
	"Base",
	"Tax",
	"Total",
	"Items",
	"Error",
}

// amountCell keeps absent amounts as empty cells
func amountCell(d *decimal.Decimal) any {
	if d == nil {
		return ""
	}
	f, _ := d.Float64()
	return f
}

// WriteWorkbook writes one row per batch result as an XLSX workbook
func WriteWorkbook(w io.Writer, results []BatchResult) error {
	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet rather than leaving an empty one behind
	if err := f.SetSheetName("Sheet1", workbookSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for i, h := range workbookHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(workbookSheet, cell, h)
	}

	for i, r := range results {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(workbookSheet, cell, v)
		}

		write(1, r.Filename)
		if r.Err != nil {
			write(13, r.Err.Error())
			continue
		}

		rec := r.Response.Invoice
		write(2, string(r.Response.Meta.Category))
		write(3, rec.TaxID)
		write(4, rec.DocumentType)
		write(5, rec.Series)
		write(6, rec.Number)
		write(7, rec.IssueDate)
		write(8, string(rec.Currency))
		write(9, amountCell(rec.Amounts.Base))
		write(10, amountCell(rec.Amounts.Tax))
		write(11, amountCell(rec.Amounts.Total))
		write(12, strings.Join(r.Response.Items, ", "))
	}

	_ = f.SetColWidth(workbookSheet, "A", "A", 28) // filename
	_ = f.SetColWidth(workbookSheet, "B", "B", 24) // category
	_ = f.SetColWidth(workbookSheet, "C", "H", 14)
	_ = f.SetColWidth(workbookSheet, "I", "K", 12) // amounts
	_ = f.SetColWidth(workbookSheet, "L", "M", 48)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
