package cache

import (
	"fmt"
	"time"

	"github.com/FocuswithJustin/SharpAssistant/core/text"
)

// VerseTTL is how long a cached verse range stays fresh.
const VerseTTL = 5 * time.Minute

// VerseKey identifies one cached verse-range fetch.
type VerseKey struct {
	Translation text.TranslationID
	Book        string
	Chapter     int
	Verse       int
	VerseEnd    int
}

// String renders the key for logging.
func (k VerseKey) String() string {
	if k.VerseEnd > 0 {
		return fmt.Sprintf("%s:%s:%d:%d-%d", k.Translation, k.Book, k.Chapter, k.Verse, k.VerseEnd)
	}
	return fmt.Sprintf("%s:%s:%d:%d", k.Translation, k.Book, k.Chapter, k.Verse)
}

// VerseCache is a read-through cache over verse-range fetches. It never
// stores empty results, so a provider miss is retried on every call
// instead of being cached as a negative entry.
type VerseCache struct {
	cache Cache[VerseKey, []text.Verse]
}

// NewVerseCache creates a verse-range cache with the standard TTL.
func NewVerseCache(maxSize int) *VerseCache {
	return &VerseCache{
		cache: NewLRUCache[VerseKey, []text.Verse](Config{
			MaxSize: maxSize,
			TTL:     VerseTTL,
		}),
	}
}

// Get retrieves cached verses. Entries older than the TTL are misses.
func (c *VerseCache) Get(key VerseKey) ([]text.Verse, bool) {
	return c.cache.Get(key)
}

// Put stores a verse range. Empty results are dropped.
func (c *VerseCache) Put(key VerseKey, verses []text.Verse) {
	if len(verses) == 0 {
		return
	}
	c.cache.Put(key, verses)
}

// Clear removes every cached range.
func (c *VerseCache) Clear() {
	c.cache.Clear()
}

// Len returns the number of cached ranges.
func (c *VerseCache) Len() int {
	return c.cache.Len()
}

// Stats returns cache statistics.
func (c *VerseCache) Stats() Stats {
	return c.cache.Stats()
}

// BookKey identifies one parsed book document.
type BookKey struct {
	Translation text.TranslationID
	Book        string
}

// BookCache holds parsed per-book documents for the process lifetime.
// Only successful loads are stored; a missing book file is re-probed on
// the next access.
type BookCache[V any] struct {
	cache Cache[BookKey, V]
}

// NewBookCache creates an unexpiring book-document cache.
func NewBookCache[V any](maxSize int) *BookCache[V] {
	return &BookCache[V]{
		cache: NewLRUCache[BookKey, V](Config{MaxSize: maxSize}),
	}
}

// Get retrieves a parsed book document.
func (c *BookCache[V]) Get(key BookKey) (V, bool) {
	return c.cache.Get(key)
}

// Put stores a parsed book document.
func (c *BookCache[V]) Put(key BookKey, doc V) {
	c.cache.Put(key, doc)
}

// Clear removes every cached document.
func (c *BookCache[V]) Clear() {
	c.cache.Clear()
}

// Len returns the number of cached documents.
func (c *BookCache[V]) Len() int {
	return c.cache.Len()
}
