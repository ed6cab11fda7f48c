package archive_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jrh3k5/qrsvg/archive"
	"github.com/jrh3k5/qrsvg/export"
	"github.com/jrh3k5/qrsvg/generator"
	"github.com/jrh3k5/qrsvg/qr"
)

var _ = Describe("Archive", func() {
	Context("FileName", func() {
		It("joins team, match and unix milliseconds", func() {
			at := time.Date(2024, time.June, 10, 6, 13, 20, 0, time.UTC)
			Expect(archive.FileName("254", "12", at)).To(Equal("254-12-1718000000000.svg"))
		})
	})

	Context("ParseName", func() {
		It("splits the three parts", func() {
			team, match, timestamp := archive.ParseName("254-12-1718000000000.svg")
			Expect(team).To(Equal("254"))
			Expect(match).To(Equal("12"))
			Expect(timestamp).To(Equal("1718000000000"))
		})

		It("leaves missing parts empty", func() {
			team, match, timestamp := archive.ParseName("254.svg")
			Expect(team).To(Equal("254"))
			Expect(match).To(BeEmpty())
			Expect(timestamp).To(BeEmpty())
		})
	})

	Context("List", func() {
		var dir string

		BeforeEach(func() {
			dir = GinkgoT().TempDir()
		})

		It("returns nothing for a missing directory", func() {
			entries, err := archive.List(filepath.Join(dir, "saved-matches"))
			Expect(err).ToNot(HaveOccurred(), "a missing directory should not be an error")
			Expect(entries).To(BeEmpty())
		})

		It("reads saved SVGs with their payloads", func() {
			gen := generator.New(qr.NewCodingEncoder(), generator.WithEmbeddedPayload(true))
			for _, saved := range []struct{ team, match, payload string }{
				{"971", "3", "971 scored 4"},
				{"254", "12", "254 climbed"},
			} {
				doc, err := gen.EncodeToSVG(saved.payload)
				Expect(err).ToNot(HaveOccurred())
				name := archive.FileName(saved.team, saved.match, time.UnixMilli(1718000000000))
				Expect(export.SaveAsSVG(doc, filepath.Join(dir, name))).To(Succeed())
			}
			Expect(os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644)).To(Succeed())
			Expect(os.Mkdir(filepath.Join(dir, "nested.svg"), 0o755)).To(Succeed())

			entries, err := archive.List(dir)
			Expect(err).ToNot(HaveOccurred())
			Expect(entries).To(HaveLen(2), "only SVG files should be listed")

			Expect(entries[0].Name).To(Equal("254-12-1718000000000.svg"), "entries should be sorted by name")
			Expect(entries[0].TeamNumber).To(Equal("254"))
			Expect(entries[0].MatchNumber).To(Equal("12"))
			Expect(entries[0].Payload).To(Equal("254 climbed"))
			Expect(entries[1].Payload).To(Equal("971 scored 4"))

			savedAt, ok := entries[0].SavedAt()
			Expect(ok).To(BeTrue())
			Expect(savedAt).To(Equal(time.UnixMilli(1718000000000).UTC()))
		})
	})

	Context("SavedAt", func() {
		It("reports malformed timestamps", func() {
			_, ok := archive.Entry{Timestamp: "yesterday"}.SavedAt()
			Expect(ok).To(BeFalse())
		})
	})
})
