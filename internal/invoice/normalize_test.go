package invoice

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Normalize", func() {
	var (
		text string
		doc  Document
	)

	JustBeforeEach(func() {
		doc = Normalize(text)
	})

	When("text has blank and padded lines", func() {
		BeforeEach(func() {
			text = "  FACTURA  \n\n\t\nRUC 20123456789\r\n   \nTOTAL 10.00  "
		})

		It("should trim lines and drop the empty ones", func() {
			Expect(doc.Lines).To(Equal([]string{"FACTURA", "RUC 20123456789", "TOTAL 10.00"}))
		})

		It("should lower-case the full text", func() {
			Expect(doc.Lower).To(ContainSubstring("factura"))
			Expect(doc.Lower).NotTo(ContainSubstring("FACTURA"))
		})
	})

	When("text is empty", func() {
		BeforeEach(func() {
			text = ""
		})

		It("should return no lines", func() {
			Expect(doc.Lines).To(BeEmpty())
		})
	})

	When("accents are decomposed", func() {
		BeforeEach(func() {
			text = "BOLETA ELECTRO\u0301NICA"
		})

		It("should compose them", func() {
			Expect(doc.Lower).To(Equal("boleta electr\u00f3nica"))
		})
	})

	Describe("NormalizeLines", func() {
		It("should keep the order of the lines", func() {
			doc := NormalizeLines([]string{" b ", "", "a"})
			Expect(doc.Lines).To(Equal([]string{"b", "a"}))
		})
	})
})
