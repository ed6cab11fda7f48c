// Package archive reads a directory of saved match QR codes. Files are named
// "<team>-<match>-<unix millis>.svg" and may carry their payload in a <desc>
// element.
package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jrh3k5/qrsvg/svg"
)

// DefaultDir is the directory saved matches live in, relative to the data
// directory.
const DefaultDir = "saved-matches"

const extension = ".svg"

// Entry is one saved QR code.
type Entry struct {
	Name        string
	Path        string
	TeamNumber  string
	MatchNumber string
	Timestamp   string
	SVG         string
	// Payload is the data embedded in the document, or "" if none was.
	Payload string
}

// SavedAt parses the entry's timestamp, returning false when it is missing or
// malformed.
func (e Entry) SavedAt() (time.Time, bool) {
	millis, err := strconv.ParseInt(e.Timestamp, 10, 64)
	if err != nil {
		return time.Time{}, false
	}

	return time.UnixMilli(millis).UTC(), true
}

// FileName builds the name a match QR code is saved under.
func FileName(teamNumber, matchNumber string, at time.Time) string {
	return fmt.Sprintf("%s-%s-%d%s", teamNumber, matchNumber, at.UnixMilli(), extension)
}

// ParseName splits a saved file name into its team, match and timestamp parts.
// Missing parts are empty.
func ParseName(name string) (teamNumber, matchNumber, timestamp string) {
	parts := strings.SplitN(strings.TrimSuffix(name, extension), "-", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}

	return parts[0], parts[1], parts[2]
}

// List reads every .svg file in dir, sorted by name. A missing directory
// yields no entries.
func List(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read directory '%s': %w", dir, err)
	}

	var entries []Entry
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || !strings.HasSuffix(dirEntry.Name(), extension) {
			continue
		}

		entry, err := Read(filepath.Join(dir, dirEntry.Name()))
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

// Read loads a single saved QR code.
func Read(path string) (Entry, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	name := filepath.Base(path)
	team, match, timestamp := ParseName(name)
	doc := string(contents)

	return Entry{
		Name:        name,
		Path:        path,
		TeamNumber:  team,
		MatchNumber: match,
		Timestamp:   timestamp,
		SVG:         doc,
		Payload:     svg.ExtractDescription(doc),
	}, nil
}
