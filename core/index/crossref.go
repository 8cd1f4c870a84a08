// Package index holds the static knowledge indices behind non-passage
// answers: cross-references, dictionary definitions, word studies,
// biblical geography, and world-religion summaries.
//
// Every index degrades gracefully: optional data files extend a curated
// in-memory table, a missing file is not an error, and lookups return
// empty results rather than failures. A file that exists but cannot be
// decoded fails loudly so corrupt data never silently shrinks an index.
package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/FocuswithJustin/SharpAssistant/core/errors"
	"github.com/FocuswithJustin/SharpAssistant/core/ref"
	"github.com/FocuswithJustin/SharpAssistant/internal/logging"
)

// crossRefsFile is the optional JSON overlay: reference -> related refs.
const crossRefsFile = "cross_references.json"

// curatedCrossRefs seeds the index with well-known chains.
var curatedCrossRefs = map[string][]string{
	"John 3:16":          {"Romans 5:8", "1 John 4:9-10", "John 3:17"},
	"Genesis 1:1":        {"John 1:1-3", "Hebrews 11:3", "Psalm 33:6"},
	"Psalm 23:1":         {"John 10:11", "Ezekiel 34:11-12"},
	"Romans 8:28":        {"Genesis 50:20", "Jeremiah 29:11"},
	"Proverbs 3:5":       {"Jeremiah 17:7", "Psalm 37:5"},
	"John 1:1":           {"Genesis 1:1-3", "Colossians 1:16-17", "Hebrews 1:2-3"},
	"John 14:6":          {"Acts 4:12", "1 Timothy 2:5"},
	"Romans 3:23":        {"Psalm 14:3", "Ecclesiastes 7:20"},
	"Romans 6:23":        {"John 3:36", "Ephesians 2:8-9"},
	"1 Corinthians 13:4": {"Galatians 5:22-23", "1 Peter 4:8"},
	"Ephesians 2:8":      {"Romans 3:24", "Titus 3:5", "2 Timothy 1:9"},
	"1 John 4:8":         {"1 John 4:16", "John 3:16", "Romans 5:8"},
	"Philippians 4:13":   {"2 Corinthians 12:9", "Colossians 1:11"},
}

// CrossReferenceIndex maps a verse reference to related references.
type CrossReferenceIndex struct {
	refs map[string][]string
}

// NewCrossReferenceIndex builds the index from the curated table plus an
// optional cross_references.json overlay in dataDir. Overlay entries win
// over curated ones for the same reference.
func NewCrossReferenceIndex(dataDir string) (*CrossReferenceIndex, error) {
	refs := make(map[string][]string, len(curatedCrossRefs))
	for k, v := range curatedCrossRefs {
		refs[normalizeRefKey(k)] = v
	}

	if dataDir != "" {
		path := filepath.Join(dataDir, crossRefsFile)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var overlay map[string][]string
			if err := json.Unmarshal(data, &overlay); err != nil {
				return nil, errors.NewParse("json", path, "cross-reference overlay: "+err.Error())
			}
			for k, v := range overlay {
				refs[normalizeRefKey(k)] = v
			}
		case !os.IsNotExist(err):
			return nil, errors.NewIO("read", path, err)
		}
	}

	logging.IndexLoaded("cross_references", len(refs))
	return &CrossReferenceIndex{refs: refs}, nil
}

// Lookup returns the related references for a verse, or an empty slice.
// The key is normalized through the reference parser so "Psalm 23:1" and
// "Psalms 23:1" hit the same entry.
func (ci *CrossReferenceIndex) Lookup(reference string) []string {
	if out, ok := ci.refs[normalizeRefKey(reference)]; ok {
		return out
	}
	return []string{}
}

// Len reports the number of indexed references.
func (ci *CrossReferenceIndex) Len() int { return len(ci.refs) }

// normalizeRefKey canonicalizes a reference string for keying. Strings
// that do not parse as references fall back to a case-folded form.
func normalizeRefKey(s string) string {
	if r, ok := ref.Parse(s); ok {
		r.Book = ref.ResolveBook(r.Book)
		return r.String()
	}
	return strings.ToLower(strings.TrimSpace(s))
}
