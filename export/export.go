// Package export writes SVG documents to the filesystem.
package export

import (
	"io"
	"os"
	"strings"

	"github.com/jrh3k5/qrsvg/failure"
)

// FileMode is the permission given to newly created files.
const FileMode os.FileMode = 0o644

// SaveAsSVG writes svgText verbatim to path, creating the file if it does not
// exist and truncating it if it does. Parent directories are not created.
// Failures are failure.KindIO errors carrying the OS error unchanged.
// Concurrent saves to the same path are not coordinated: the last writer wins.
func SaveAsSVG(svgText string, path string) (err error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FileMode)
	if err != nil {
		return failure.IO(err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = failure.IO(closeErr)
		}
	}()

	if _, err := io.Copy(file, strings.NewReader(svgText)); err != nil {
		return failure.IO(err)
	}

	return nil
}
