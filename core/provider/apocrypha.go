package provider

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/SharpAssistant/core/cache"
	"github.com/FocuswithJustin/SharpAssistant/core/text"
)

// apocryphaBooks lists the books the Apocrypha corpus actually carries.
// This is narrower than the alias table: aliases recognize books the
// corpus has no files for yet.
var apocryphaBooks = map[string]struct{}{
	"Tobit": {}, "Judith": {}, "Additions to Esther": {}, "Wisdom of Solomon": {},
	"Sirach": {}, "Baruch": {}, "Letter of Jeremiah": {}, "Song of the Three Holy Children": {},
	"Susanna": {}, "Bel and the Dragon": {}, "1 Esdras": {}, "2 Esdras": {},
	"1 Maccabees": {}, "2 Maccabees": {}, "Prayer of Manasseh": {},
}

// IsApocryphaBook reports whether the Apocrypha corpus carries the book.
func IsApocryphaBook(book string) bool {
	_, ok := apocryphaBooks[book]
	return ok
}

// ApocryphaProvider serves apocryphal books. The corpus text follows
// the KJV tradition, so returned verses are labeled KJV even though the
// provider itself answers to the APOC translation ID.
type ApocryphaProvider struct {
	dir   string
	books *cache.BookCache[chapterMap]
}

// NewApocryphaProvider creates a provider over the apocrypha corpus dir.
func NewApocryphaProvider(dir string) *ApocryphaProvider {
	return &ApocryphaProvider{
		dir:   dir,
		books: cache.NewBookCache[chapterMap](30),
	}
}

// Translation returns the provider's translation ID.
func (p *ApocryphaProvider) Translation() text.TranslationID {
	return text.APOC
}

// GetVerses fetches a verse range from an apocryphal book. Letter of
// Jeremiah chapter 1 is aliased to chapter 6, where the KJV tradition
// places it as Baruch 6. The returned references keep the chapter the
// caller asked for.
func (p *ApocryphaProvider) GetVerses(ctx context.Context, book string, chapter, verseStart, verseEnd int) ([]text.Verse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !IsApocryphaBook(book) {
		return nil, nil
	}

	dataChapter := chapter
	if book == "Letter of Jeremiah" && chapter == 1 {
		dataChapter = 6
	}

	chapters, err := p.loadBook(book)
	if err != nil {
		return nil, err
	}
	if chapters == nil {
		return nil, nil
	}

	verses := versesInRange(chapters, text.KJV, book, dataChapter, verseStart, verseEnd)
	if dataChapter != chapter {
		for i := range verses {
			verses[i].Reference = strings.Replace(verses[i].Reference,
				" "+strconv.Itoa(dataChapter)+":", " "+strconv.Itoa(chapter)+":", 1)
		}
	}
	return verses, nil
}

// Search scans every apocryphal book for a case-insensitive substring
// match, up to limit results.
func (p *ApocryphaProvider) Search(ctx context.Context, query string, limit int) ([]text.Verse, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}

	books := make([]string, 0, len(apocryphaBooks))
	for b := range apocryphaBooks {
		books = append(books, b)
	}
	sort.Strings(books)

	var results []text.Verse
	for _, book := range books {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		chapters, err := p.loadBook(book)
		if err != nil || chapters == nil {
			continue
		}
		for ch, verses := range chapters {
			for vs, t := range verses {
				if strings.Contains(strings.ToLower(t), q) {
					results = append(results, text.Verse{
						Reference:   book + " " + ch + ":" + vs,
						Text:        t,
						Translation: text.KJV,
						Language:    "en",
					})
					if len(results) >= limit {
						return results, nil
					}
				}
			}
		}
	}
	return results, nil
}

func (p *ApocryphaProvider) loadBook(book string) (chapterMap, error) {
	key := cache.BookKey{Translation: text.APOC, Book: book}
	if doc, ok := p.books.Get(key); ok {
		return doc, nil
	}

	path := bookFilePath(p.dir, book)
	if path == "" {
		return nil, nil
	}
	data, err := readBookFile(path)
	if err != nil {
		return nil, err
	}
	chapters, err := decodeTextBook(path, data)
	if err != nil {
		return nil, err
	}

	p.books.Put(key, chapters)
	return chapters, nil
}
