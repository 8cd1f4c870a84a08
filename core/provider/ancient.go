package provider

import (
	"context"
	"strconv"

	"github.com/FocuswithJustin/SharpAssistant/core/cache"
	"github.com/FocuswithJustin/SharpAssistant/core/ref"
	"github.com/FocuswithJustin/SharpAssistant/core/text"
)

// maxChapterVerses bounds whole-chapter probing; no chapter exceeds
// Psalm 119's 176 verses.
const maxChapterVerses = 200

// AncientProvider serves a tokenized ancient-language manuscript
// source: WLC (Hebrew Masoretic), LXX (Greek Septuagint), or the Codex
// Sinaiticus. Verses carry word triplets alongside the display text,
// which is normalized per script: Hebrew loses cantillation and niqqud
// and gains RLM wrapping, Greek is composed to NFC.
type AncientProvider struct {
	id    text.TranslationID
	dir   string
	books *cache.BookCache[wordAccessor]

	// hebrewOpts only applies when id is WLC.
	hebrewOpts text.HebrewOptions
}

// NewAncientProvider creates a provider for one manuscript source.
func NewAncientProvider(id text.TranslationID, dir string) *AncientProvider {
	return &AncientProvider{
		id:    id,
		dir:   dir,
		books: cache.NewBookCache[wordAccessor](60),
	}
}

// Translation returns the provider's translation ID.
func (p *AncientProvider) Translation() text.TranslationID {
	return p.id
}

// serves reports whether the source covers the book. WLC and LXX carry
// the Old Testament only; Sinaiticus spans both testaments.
func (p *AncientProvider) serves(book string) bool {
	if p.id == text.SINAITICUS {
		return ref.IsOldTestament(book) || ref.IsNewTestament(book)
	}
	return ref.IsOldTestament(book)
}

// GetVerses fetches a verse range with tokenized words.
func (p *AncientProvider) GetVerses(ctx context.Context, book string, chapter, verseStart, verseEnd int) ([]text.Verse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !p.serves(book) {
		return nil, nil
	}

	acc, err := p.loadBook(book)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, nil
	}

	start, end := verseRange(verseStart, verseEnd)
	if verseStart == 0 {
		// Array-shaped books have no verse index to enumerate, so
		// whole-chapter requests probe ascending verses until the
		// first gap.
		end = maxChapterVerses
	}
	var out []text.Verse
	for v := start; v <= end; v++ {
		words := acc(chapter, v)
		if len(words) == 0 {
			// Whole-chapter scans stop at the first gap; explicit
			// ranges skip over it.
			if verseStart == 0 {
				break
			}
			continue
		}
		out = append(out, p.verse(book, chapter, v, words))
	}
	return out, nil
}

func (p *AncientProvider) verse(book string, chapter, verseNum int, words []text.Word) text.Verse {
	v := text.Verse{
		Reference:   book + " " + strconv.Itoa(chapter) + ":" + strconv.Itoa(verseNum),
		Translation: p.id,
		Language:    p.id.Language(),
		RTL:         p.id.RTL(),
		Words:       words,
	}
	if p.id == text.WLC {
		v.Text = text.HebrewText(words, p.hebrewOpts)
	} else {
		v.Text = text.GreekText(words)
	}
	return v
}

func (p *AncientProvider) loadBook(book string) (wordAccessor, error) {
	key := cache.BookKey{Translation: p.id, Book: book}
	if acc, ok := p.books.Get(key); ok {
		return acc, nil
	}

	path := bookFilePath(p.dir, book)
	if path == "" {
		return nil, nil
	}

	data, err := readBookFile(path)
	if err != nil {
		return nil, err
	}
	acc, err := decodeWordBook(path, data)
	if err != nil {
		return nil, err
	}

	p.books.Put(key, acc)
	return acc, nil
}
