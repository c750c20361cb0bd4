package scanning

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// receiptImage draws a dark block on white paper
func receiptImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			c := color.RGBA{R: 250, G: 250, B: 245, A: 255}
			if x >= 20 && x < 40 && y >= 20 && y < 40 {
				c = color.RGBA{R: 20, G: 20, B: 30, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func encodeTestPNG(img image.Image) []byte {
	var buf bytes.Buffer
	Expect(png.Encode(&buf, img)).To(Succeed())
	return buf.Bytes()
}

var _ = Describe("decodeImage", func() {
	var (
		data        []byte
		contentType string
		img         image.Image
		err         error
	)

	JustBeforeEach(func() {
		img, err = decodeImage(data, contentType)
	})

	When("the data is a PNG", func() {
		BeforeEach(func() {
			data = encodeTestPNG(receiptImage())
			contentType = "image/png"
		})

		It("should decode it", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(img.Bounds().Dx()).To(Equal(60))
		})
	})

	When("the data is a JPEG", func() {
		BeforeEach(func() {
			var buf bytes.Buffer
			Expect(jpeg.Encode(&buf, receiptImage(), nil)).To(Succeed())
			data = buf.Bytes()
			contentType = "image/jpeg"
		})

		It("should decode it", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(img.Bounds().Dy()).To(Equal(60))
		})
	})

	When("the data is not an image", func() {
		BeforeEach(func() {
			data = []byte("definitely not an image")
			contentType = "image/jpeg"
		})

		It("should return ErrDecode", func() {
			Expect(err).To(MatchError(ErrDecode))
		})
	})
})

var _ = Describe("format detection", func() {
	It("should recognize HEIC magic bytes", func() {
		data := append([]byte{0, 0, 0, 24}, []byte("ftypheic0000")...)
		Expect(isHEICFormat(data)).To(BeTrue())
	})

	It("should not treat short data as HEIC", func() {
		Expect(isHEICFormat([]byte("ftyp"))).To(BeFalse())
	})

	It("should recognize HEIC MIME types", func() {
		Expect(isHEICMimeType("image/heic")).To(BeTrue())
		Expect(isHEICMimeType("image/png")).To(BeFalse())
	})

	It("should recognize PDFs by magic bytes or MIME type", func() {
		Expect(isPDF([]byte("%PDF-1.7"), "")).To(BeTrue())
		Expect(isPDF(nil, "application/pdf")).To(BeTrue())
		Expect(isPDF([]byte("hello"), "image/png")).To(BeFalse())
	})
})

var _ = Describe("Preprocess", func() {
	var out *image.NRGBA

	BeforeEach(func() {
		out = Preprocess(receiptImage())
	})

	It("should keep the image size", func() {
		Expect(out.Bounds().Dx()).To(Equal(60))
		Expect(out.Bounds().Dy()).To(Equal(60))
	})

	It("should turn paper white", func() {
		Expect(out.NRGBAAt(5, 5)).To(Equal(color.NRGBA{R: 255, G: 255, B: 255, A: 255}))
	})

	It("should turn ink black", func() {
		Expect(out.NRGBAAt(30, 30)).To(Equal(color.NRGBA{R: 0, G: 0, B: 0, A: 255}))
	})

	It("should leave only black and white pixels", func() {
		for y := 0; y < 60; y++ {
			for x := 0; x < 60; x++ {
				Expect(out.NRGBAAt(x, y).R).To(Or(Equal(uint8(0)), Equal(uint8(255))))
			}
		}
	})
})

var _ = Describe("PrepareImage", func() {
	It("should return a decodable PNG", func() {
		out, err := PrepareImage(encodeTestPNG(receiptImage()), "image/png")
		Expect(err).NotTo(HaveOccurred())

		_, format, err := image.Decode(bytes.NewReader(out))
		Expect(err).NotTo(HaveOccurred())
		Expect(format).To(Equal("png"))
	})

	It("should fail with ErrDecode on garbage", func() {
		_, err := PrepareImage([]byte{0x01, 0x02}, "image/png")
		Expect(err).To(MatchError(ErrDecode))
	})
})
