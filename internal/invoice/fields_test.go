package invoice

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TaxID", func() {
	DescribeTable("finding the RUC",
		func(text, expected string) {
			Expect(TaxID(Normalize(text))).To(Equal(expected))
		},
		Entry("plain label", "RUC: 20123456789", "20123456789"),
		Entry("dotted label", "r.u.c. 20512345678", "20512345678"),
		Entry("label split by OCR noise", "R U C - 10456789012", "10456789012"),
		Entry("lower-case label without separator", "ruc20123456789", "20123456789"),
		Entry("bare 11 digit run", "Proveedor 20123456789", "20123456789"),
		Entry("labelled run beats an earlier bare run", "Cliente 10999999999\nRUC 20123456789", "20123456789"),
		Entry("no 11 digit run", "Telefono 987654321\nTotal 10.00", ""),
		Entry("empty text", "", ""),
	)
})

var _ = Describe("SeriesAndNumber", func() {
	var (
		text           string
		series, number string
	)

	JustBeforeEach(func() {
		series, number = SeriesAndNumber(Normalize(text))
	})

	When("both are labelled on one line", func() {
		BeforeEach(func() {
			text = "FACTURA ELECTRONICA\nRUC: 20123456789\nSerie F001 Numero 00012345"
		})

		It("should find the series", func() {
			Expect(series).To(Equal("F001"))
		})

		It("should find the number", func() {
			Expect(number).To(Equal("00012345"))
		})
	})

	When("they are printed as a hyphenated pair", func() {
		BeforeEach(func() {
			text = "BOLETA DE VENTA\nF001-0001234"
		})

		It("should split the pair", func() {
			Expect(series).To(Equal("F001"))
			Expect(number).To(Equal("0001234"))
		})
	})

	When("the number is too short for the line patterns", func() {
		BeforeEach(func() {
			text = "Comprobante\nB002-12345"
		})

		It("should recover both from the combined pattern", func() {
			Expect(series).To(Equal("B002"))
			Expect(number).To(Equal("12345"))
		})
	})

	When("the pair is printed without a separator", func() {
		BeforeEach(func() {
			text = "Factura F0010001234"
		})

		It("should split after the three digit series", func() {
			Expect(series).To(Equal("F001"))
			Expect(number).To(Equal("0001234"))
		})
	})

	When("only a number label is present", func() {
		BeforeEach(func() {
			text = "N° 0012345"
		})

		It("should find the number", func() {
			Expect(number).To(Equal("0012345"))
		})

		It("should leave the series empty", func() {
			Expect(series).To(BeEmpty())
		})
	})

	When("they are on different lines", func() {
		BeforeEach(func() {
			text = "Serie: E001\nNro. 4567890"
		})

		It("should keep scanning until both are found", func() {
			Expect(series).To(Equal("E001"))
			Expect(number).To(Equal("4567890"))
		})
	})

	When("neither is present", func() {
		BeforeEach(func() {
			text = "Gracias por su compra"
		})

		It("should return empty values", func() {
			Expect(series).To(BeEmpty())
			Expect(number).To(BeEmpty())
		})
	})
})

var _ = Describe("IssueDate", func() {
	DescribeTable("finding the date",
		func(text, expected string) {
			Expect(IssueDate(Normalize(text))).To(Equal(expected))
		},
		Entry("labelled date wins over an earlier one", "Vence 01/01/2025\nFecha Emision: 12/05/2024", "12/05/2024"),
		Entry("abbreviated label", "F. Emision 03-04-2024", "03-04-2024"),
		Entry("accented label", "Emisión 2024/04/03", "2024/04/03"),
		Entry("year first without label", "Documento 2024-03-15", "2024-03-15"),
		Entry("dotted date without label", "15.03.2024", "15.03.2024"),
		Entry("label without a date falls back to the full text", "Fecha de pago\nTOTAL 10.00\n05/06/2024", "05/06/2024"),
		Entry("no date", "TOTAL 10.00", ""),
	)
})

var _ = Describe("DocumentType", func() {
	It("should recognize invoices", func() {
		Expect(DocumentType(Normalize("Factura Electronica"))).To(Equal(DocumentTypeInvoice))
	})

	It("should leave other documents empty", func() {
		Expect(DocumentType(Normalize("BOLETA DE VENTA"))).To(BeEmpty())
	})
})

var _ = Describe("CurrencyOf", func() {
	DescribeTable("detecting the currency",
		func(text string, expected Currency) {
			Expect(CurrencyOf(Normalize(text))).To(Equal(expected))
		},
		Entry("soles symbol", "TOTAL S/ 10.00", CurrencyPEN),
		Entry("soles in words", "SON: DIEZ CON 00/100 SOLES", CurrencyPEN),
		Entry("dollars", "TOTAL USD 10.00", CurrencyUSD),
		Entry("dollars in words", "Moneda: Dólares", CurrencyUSD),
		Entry("soles win over dollars", "TOTAL USD 31.00\nTOTAL S/ 118.00", CurrencyPEN),
		Entry("no currency", "TOTAL 10.00", Currency("")),
	)
})

var _ = Describe("Classify", func() {
	It("should classify electronic receipts", func() {
		Expect(Classify(Normalize("BOLETA DE VENTA ELECTRÓNICA"))).To(Equal(CategoryElectronic))
	})

	It("should accept the unaccented spelling", func() {
		Expect(Classify(Normalize("factura electronica"))).To(Equal(CategoryElectronic))
	})

	It("should classify everything else as physical", func() {
		Expect(Classify(Normalize("TICKET 001"))).To(Equal(CategoryPhysical))
	})
})
