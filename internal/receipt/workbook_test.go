package receipt

import (
	"bytes"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/zombor/invoice-ocr/internal/invoice"
)

var _ = Describe("WriteWorkbook", func() {
	var f *excelize.File

	BeforeEach(func() {
		total := decimal.RequireFromString("118.00")
		results := []BatchResult{
			{
				Filename: "a.jpg",
				Response: &Response{
					Filename: "a.jpg",
					Meta:     Meta{Filename: "a.jpg", Category: invoice.CategoryElectronic},
					Invoice: invoice.Record{
						TaxID:    "20123456789",
						Series:   "F001",
						Number:   "00012345",
						Currency: invoice.CurrencyPEN,
						Amounts:  invoice.Amounts{Total: &total},
					},
					Items: []string{"ARROZ", "AZUCAR"},
				},
			},
			{Filename: "b.png", Err: errors.New("no text detected")},
		}

		var buf bytes.Buffer
		Expect(WriteWorkbook(&buf, results)).To(Succeed())

		var err error
		f, err = excelize.OpenReader(&buf)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		f.Close()
	})

	cell := func(name string) string {
		v, err := f.GetCellValue(workbookSheet, name)
		Expect(err).NotTo(HaveOccurred())
		return v
	}

	It("should have a single named sheet", func() {
		Expect(f.GetSheetList()).To(Equal([]string{"Extractions"}))
	})

	It("should write the headers", func() {
		Expect(cell("A1")).To(Equal("Filename"))
		Expect(cell("K1")).To(Equal("Total"))
		Expect(cell("M1")).To(Equal("Error"))
	})

	It("should write the extracted fields", func() {
		Expect(cell("A2")).To(Equal("a.jpg"))
		Expect(cell("B2")).To(Equal("comprobante_electronico"))
		Expect(cell("C2")).To(Equal("20123456789"))
		Expect(cell("E2")).To(Equal("F001"))
		Expect(cell("F2")).To(Equal("00012345"))
		Expect(cell("H2")).To(Equal("PEN"))
		Expect(cell("K2")).To(Equal("118"))
		Expect(cell("L2")).To(Equal("ARROZ, AZUCAR"))
	})

	It("should leave missing amounts empty", func() {
		Expect(cell("I2")).To(BeEmpty())
	})

	It("should write the error for failed files", func() {
		Expect(cell("A3")).To(Equal("b.png"))
		Expect(cell("M3")).To(Equal("no text detected"))
		Expect(cell("C3")).To(BeEmpty())
	})
})
