package receipt

import (
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/zombor/invoice-ocr/internal/invoice"
)

var _ = Describe("BoltDB", func() {
	var (
		dbPath string
		db     *BoltDB
	)

	newExtraction := func(id string, createdAt time.Time) *Extraction {
		total := decimal.RequireFromString("118.00")
		return &Extraction{
			ID:          id,
			Filename:    id + ".jpg",
			ContentType: "image/jpeg",
			Engine:      "tesseract",
			RawText:     "FACTURA\nTOTAL 118.00",
			Confidence:  0.8,
			Result: &invoice.Result{
				Record: invoice.Record{
					DocumentType: invoice.DocumentTypeInvoice,
					Amounts:      invoice.Amounts{Total: &total},
				},
				Items:    []string{"FACTURA"},
				Category: invoice.CategoryPhysical,
			},
			CreatedAt: createdAt,
		}
	}

	BeforeEach(func() {
		dbPath = filepath.Join(GinkgoT().TempDir(), "test.db")
		var err error
		db, err = NewBoltDB(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Describe("SaveExtraction and GetExtraction", func() {
		It("should round trip the extraction", func() {
			created := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
			Expect(db.SaveExtraction(newExtraction("ext-1", created))).To(Succeed())

			got, err := db.GetExtraction("ext-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Filename).To(Equal("ext-1.jpg"))
			Expect(got.CreatedAt.Equal(created)).To(BeTrue())
			Expect(got.Result.Record.DocumentType).To(Equal("01"))
			Expect(got.Result.Record.Amounts.Total.StringFixed(2)).To(Equal("118.00"))
			Expect(got.Result.Record.Amounts.Base).To(BeNil())
			Expect(got.Result.Category).To(Equal(invoice.CategoryPhysical))
		})

		It("should overwrite an extraction with the same ID", func() {
			first := newExtraction("ext-1", time.Now())
			Expect(db.SaveExtraction(first)).To(Succeed())
			first.Filename = "renamed.jpg"
			Expect(db.SaveExtraction(first)).To(Succeed())

			got, err := db.GetExtraction("ext-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Filename).To(Equal("renamed.jpg"))
		})
	})

	Describe("GetExtraction", func() {
		When("the extraction does not exist", func() {
			It("should return ErrNotFound", func() {
				_, err := db.GetExtraction("missing")
				Expect(err).To(MatchError(ErrNotFound))
			})
		})
	})

	Describe("ListExtractions", func() {
		When("the database is empty", func() {
			It("should return an empty slice", func() {
				extractions, err := db.ListExtractions()
				Expect(err).NotTo(HaveOccurred())
				Expect(extractions).NotTo(BeNil())
				Expect(extractions).To(BeEmpty())
			})
		})

		When("there are several extractions", func() {
			BeforeEach(func() {
				base := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
				Expect(db.SaveExtraction(newExtraction("a", base))).To(Succeed())
				Expect(db.SaveExtraction(newExtraction("b", base.Add(2*time.Hour)))).To(Succeed())
				Expect(db.SaveExtraction(newExtraction("c", base.Add(time.Hour)))).To(Succeed())
			})

			It("should return the newest first", func() {
				extractions, err := db.ListExtractions()
				Expect(err).NotTo(HaveOccurred())
				ids := make([]string, 0, len(extractions))
				for _, e := range extractions {
					ids = append(ids, e.ID)
				}
				Expect(ids).To(Equal([]string{"b", "c", "a"}))
			})
		})
	})

	Describe("DeleteExtraction", func() {
		It("should remove the extraction", func() {
			Expect(db.SaveExtraction(newExtraction("ext-1", time.Now()))).To(Succeed())
			Expect(db.DeleteExtraction("ext-1")).To(Succeed())

			_, err := db.GetExtraction("ext-1")
			Expect(err).To(MatchError(ErrNotFound))
		})

		It("should return ErrNotFound for an unknown ID", func() {
			Expect(db.DeleteExtraction("missing")).To(MatchError(ErrNotFound))
		})
	})

	Describe("reopening", func() {
		It("should keep saved extractions", func() {
			Expect(db.SaveExtraction(newExtraction("ext-1", time.Now()))).To(Succeed())
			Expect(db.Close()).To(Succeed())

			var err error
			db, err = NewBoltDB(dbPath)
			Expect(err).NotTo(HaveOccurred())

			_, err = db.GetExtraction("ext-1")
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
