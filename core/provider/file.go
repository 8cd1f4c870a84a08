package provider

import (
	"context"
	"strings"

	"github.com/FocuswithJustin/SharpAssistant/core/cache"
	"github.com/FocuswithJustin/SharpAssistant/core/text"
)

// FileProvider serves one English translation from a directory of
// per-book files, named by canonical book name (e.g. "1 Samuel.json").
// Parsed documents are cached for the process lifetime.
type FileProvider struct {
	id    text.TranslationID
	dir   string
	books *cache.BookCache[chapterMap]
}

// NewFileProvider creates a provider for the translation whose book
// files live under dir.
func NewFileProvider(id text.TranslationID, dir string) *FileProvider {
	return &FileProvider{
		id:    id,
		dir:   dir,
		books: cache.NewBookCache[chapterMap](100),
	}
}

// Translation returns the provider's translation ID.
func (p *FileProvider) Translation() text.TranslationID {
	return p.id
}

// GetVerses fetches a verse range. A missing book file is a miss, not
// an error; a malformed one fails loudly so corpus damage is caught at
// first access rather than silently dropping the book.
func (p *FileProvider) GetVerses(ctx context.Context, book string, chapter, verseStart, verseEnd int) ([]text.Verse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chapters, err := p.loadBook(book)
	if err != nil {
		return nil, err
	}
	if chapters == nil {
		return nil, nil
	}
	return versesInRange(chapters, p.id, book, chapter, verseStart, verseEnd), nil
}

func (p *FileProvider) loadBook(book string) (chapterMap, error) {
	key := cache.BookKey{Translation: p.id, Book: book}
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

	var chapters chapterMap
	if strings.HasSuffix(path, ".xml") {
		chapters, err = decodeOSISBook(path, data)
	} else {
		chapters, err = decodeTextBook(path, data)
	}
	if err != nil {
		return nil, err
	}

	p.books.Put(key, chapters)
	return chapters, nil
}
