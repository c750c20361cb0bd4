package invoice

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LineItems", func() {
	var (
		text  string
		items []string
	)

	JustBeforeEach(func() {
		items = LineItems(Normalize(text))
	})

	When("the receipt lists products between labels", func() {
		BeforeEach(func() {
			text = `FACTURA ELECTRONICA
Cliente: JUAN PEREZ
CANT DESCRIPCION P.UNIT
ARROZ COSTEÑO 5KG 25.00
Gaseosa inca kola 3.50
PIÑA GOLDEN 2.50
LECHE GLORIA
TOTAL 31.00`
		})

		It("should keep the product lines in order", func() {
			Expect(items).To(Equal([]string{
				"ARROZ COSTEÑO 5KG 25.00",
				"PIÑA GOLDEN 2.50",
				"LECHE GLORIA",
			}))
		})

		It("should skip lines without capitals", func() {
			Expect(items).NotTo(ContainElement("Gaseosa inca kola 3.50"))
		})
	})

	When("there are no lines", func() {
		BeforeEach(func() {
			text = ""
		})

		It("should return an empty list", func() {
			Expect(items).NotTo(BeNil())
			Expect(items).To(BeEmpty())
		})
	})
})
