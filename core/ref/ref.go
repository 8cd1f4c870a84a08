// Package ref parses free-text scripture references and normalizes
// book names across canonical and apocryphal alias tables.
package ref

import (
	"regexp"
	"strconv"
	"strings"
)

// Ref represents a normalized scripture reference.
type Ref struct {
	// Book is the canonical book name after alias resolution (e.g., "John", "1 Samuel", "Tobit").
	Book string `json:"book"`

	// Chapter is the chapter number (1-indexed).
	Chapter int `json:"chapter"`

	// Verse is the starting verse (0 for whole-chapter references).
	Verse int `json:"verse,omitempty"`

	// VerseEnd is the ending verse for ranges (0 for single-verse references).
	VerseEnd int `json:"verse_end,omitempty"`
}

// refPattern captures an optional leading numeral, a book-name token,
// a chapter number, and an optional :verse[-verseEnd] suffix. The range
// separator accepts both hyphen and en dash.
var refPattern = regexp.MustCompile(`\b(\d?\s?[A-Za-z][A-Za-z\s'()\-]+?)\s+(\d{1,3})(?::(\d{1,3})(?:[-–](\d{1,3}))?)?\b`)

// Parse extracts the first scripture reference from free text.
// The second return value reports whether a reference was found;
// Parse never returns an error. Chapter-only references are valid
// and denote whole-chapter intent.
func Parse(raw string) (Ref, bool) {
	if raw == "" {
		return Ref{}, false
	}
	m := refPattern.FindStringSubmatch(raw)
	if m == nil {
		return Ref{}, false
	}

	book := strings.TrimSpace(strings.ReplaceAll(m[1], ".", ""))
	chapter, _ := strconv.Atoi(m[2])

	r := Ref{
		Book:    ResolveBook(book),
		Chapter: chapter,
	}
	if m[3] != "" {
		r.Verse, _ = strconv.Atoi(m[3])
	}
	if m[4] != "" {
		r.VerseEnd, _ = strconv.Atoi(m[4])
	}
	return r, true
}

// ResolveBook maps a raw book token to its canonical name.
// Resolution order: abbreviation table for the canonical books,
// then the apocrypha alias table, then title-casing the raw token.
func ResolveBook(book string) string {
	key := strings.ToLower(strings.ReplaceAll(book, " ", ""))
	if len(key) > 3 {
		key = key[:3]
	}
	if canonical, ok := bookAliases[key]; ok {
		return canonical
	}

	norm := normalizeBookKey(book)
	if canonical, ok := apocryphaAliases[norm]; ok {
		return canonical
	}

	return titleCase(book)
}

// normalizeBookKey lowercases and strips every non-alphanumeric rune.
func normalizeBookKey(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// String returns the normalized display form, e.g. "John 3:16-18" or "Psalms 23".
func (r Ref) String() string {
	var sb strings.Builder
	sb.WriteString(r.Book)
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(r.Chapter))
	if r.Verse > 0 {
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(r.Verse))
		if r.VerseEnd > 0 {
			sb.WriteString("-")
			sb.WriteString(strconv.Itoa(r.VerseEnd))
		}
	}
	return sb.String()
}

// IsWholeChapter reports whether the reference denotes an entire chapter.
func (r Ref) IsWholeChapter() bool {
	return r.Verse == 0
}

// IsRange reports whether the reference spans multiple verses.
func (r Ref) IsRange() bool {
	return r.VerseEnd > 0 && r.VerseEnd > r.Verse
}

// EndVerse returns the effective last verse of the reference.
func (r Ref) EndVerse() int {
	if r.VerseEnd > 0 {
		return r.VerseEnd
	}
	return r.Verse
}
