package scan_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jrh3k5/qrsvg/generator"
	"github.com/jrh3k5/qrsvg/qr"
	"github.com/jrh3k5/qrsvg/scan"
)

var _ = Describe("Scan", func() {
	DescribeTable("round-trips generated SVG back to the payload",
		func(backend string, payload string, level qr.Level) {
			encoder, err := qr.NewEncoder(backend)
			Expect(err).ToNot(HaveOccurred())

			opts := qr.DefaultOptions()
			opts.Level = level
			doc, err := generator.New(encoder, generator.WithQROptions(opts)).EncodeToSVG(payload)
			Expect(err).ToNot(HaveOccurred(), "generating the SVG should not fail")

			decoded, err := scan.DecodeSVG(doc)
			Expect(err).ToNot(HaveOccurred(), "the generated SVG should be decodable")
			Expect(decoded).To(Equal(payload))
		},
		Entry("alphanumeric", qr.BackendCoding, "HELLO", qr.M),
		Entry("numeric", qr.BackendCoding, "0123456789012345", qr.L),
		Entry("byte", qr.BackendCoding, "https://example.com/scouting?team=254&match=12", qr.Q),
		Entry("high level", qr.BackendCoding, "Team 254 climbed", qr.H),
		Entry("multi-block version", qr.BackendCoding, "The quick brown fox jumps over the lazy dog, 0123456789 times over.", qr.M),
		Entry("skip2 backend", qr.BackendSkip2, "HELLO", qr.M),
		Entry("skip2 mixed payload", qr.BackendSkip2, "match 12 / team 254", qr.Q),
	)

	It("round-trips every fixed mask", func() {
		encoder := qr.NewCodingEncoder()
		for mask := 0; mask < 8; mask++ {
			opts := qr.DefaultOptions()
			opts.Mask = mask
			grid, err := encoder.Encode("MASK TEST", opts)
			Expect(err).ToNot(HaveOccurred())

			decoded, err := scan.DecodeGrid(grid)
			Expect(err).ToNot(HaveOccurred(), "mask %d should decode", mask)
			Expect(decoded).To(Equal("MASK TEST"))
		}
	})

	It("rasterizes with a light quiet zone", func() {
		grid := qr.NewGrid(1, func(int, int) bool { return true })
		img := scan.Rasterize(grid, 2, 1)
		Expect(img.Bounds().Dx()).To(Equal(6))
		Expect(img.GrayAt(0, 0).Y).To(Equal(uint8(0xff)))
		Expect(img.GrayAt(2, 2).Y).To(Equal(uint8(0x00)))
		Expect(img.GrayAt(3, 3).Y).To(Equal(uint8(0x00)))
		Expect(img.GrayAt(4, 4).Y).To(Equal(uint8(0xff)))
	})

	It("fails on a blank symbol", func() {
		_, err := scan.DecodeGrid(qr.NewGrid(21, func(int, int) bool { return false }))
		Expect(err).To(HaveOccurred())
	})

	It("fails on documents that are not rendered symbols", func() {
		_, err := scan.DecodeSVG("<svg></svg>")
		Expect(err).To(HaveOccurred())
	})
})
