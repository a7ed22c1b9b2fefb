// Package library discovers calibration documents under configured roots.
package library

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/colonyops/dubcal/internal/core/document"
)

// Entry summarizes one discovered document.
type Entry struct {
	Path       string
	Rev        int
	Segments   int
	DurationMs int
}

// Discover scans each root with the given doublestar pattern and returns
// entries sorted by path. Unreadable or unparseable files are skipped; a
// library listing is best-effort.
func Discover(roots []string, pattern string) ([]Entry, error) {
	var out []Entry
	for _, root := range roots {
		matches, err := doublestar.Glob(os.DirFS(root), pattern)
		if err != nil {
			return nil, err
		}
		for _, rel := range matches {
			path := filepath.Join(root, rel)
			entry, err := Describe(path)
			if err != nil {
				continue
			}
			out = append(out, entry)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Describe loads a document and summarizes it.
func Describe(path string) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, err
	}
	doc, err := document.Parse(data)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Path:       path,
		Rev:        doc.History.Rev,
		Segments:   len(doc.Segments),
		DurationMs: doc.EndMs(),
	}, nil
}
