package export_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jrh3k5/qrsvg/export"
	"github.com/jrh3k5/qrsvg/failure"
)

var _ = Describe("SaveAsSVG", func() {
	const doc = `<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"></svg>`

	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("creates the file with the exact contents", func() {
		path := filepath.Join(dir, "254-12-1718000000000.svg")
		Expect(export.SaveAsSVG(doc, path)).To(Succeed())

		written, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(written)).To(Equal(doc))
	})

	It("truncates longer prior contents", func() {
		path := filepath.Join(dir, "out.svg")
		Expect(os.WriteFile(path, []byte(strings.Repeat("x", 4096)), 0o644)).To(Succeed())

		Expect(export.SaveAsSVG(doc, path)).To(Succeed())
		Expect(export.SaveAsSVG(doc, path)).To(Succeed(), "saving twice should also succeed")

		written, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(written)).To(Equal(doc), "the file should hold only the SVG text")
	})

	It("writes text verbatim without validating it", func() {
		path := filepath.Join(dir, "notes.txt")
		Expect(export.SaveAsSVG("not svg at all", path)).To(Succeed())

		written, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(written)).To(Equal("not svg at all"))
	})

	It("writes an empty document", func() {
		path := filepath.Join(dir, "empty.svg")
		Expect(export.SaveAsSVG("", path)).To(Succeed())

		info, err := os.Stat(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(info.Size()).To(BeZero())
	})

	It("fails with an IO error when the parent directory is missing", func() {
		path := filepath.Join(dir, "missing", "out.svg")
		err := export.SaveAsSVG(doc, path)

		Expect(errors.Is(err, failure.ErrIO)).To(BeTrue(), "the error should be an IO error")
		Expect(errors.Is(err, fs.ErrNotExist)).To(BeTrue(), "the OS error should be preserved")
		Expect(err.Error()).To(ContainSubstring(path), "the OS message should be surfaced unmodified")

		_, statErr := os.Stat(path)
		Expect(errors.Is(statErr, fs.ErrNotExist)).To(BeTrue(), "no file should be created")
		_, statErr = os.Stat(filepath.Dir(path))
		Expect(errors.Is(statErr, fs.ErrNotExist)).To(BeTrue(), "no directory should be created")
	})

	It("fails with an IO error when the path is a directory", func() {
		err := export.SaveAsSVG(doc, dir)
		Expect(errors.Is(err, failure.ErrIO)).To(BeTrue())
	})
})
