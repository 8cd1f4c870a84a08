package provider

import (
	"context"
	"sync/atomic"

	"github.com/FocuswithJustin/SharpAssistant/core/cache"
	"github.com/FocuswithJustin/SharpAssistant/core/ref"
	"github.com/FocuswithJustin/SharpAssistant/core/text"
	"github.com/FocuswithJustin/SharpAssistant/internal/logging"
)

// fallbackChains maps a preferred translation to the ordered provider
// list tried until one returns verses. The ordering is user-visible
// (the citation names whichever translation actually answered), so it
// is fixed here rather than derived.
var fallbackChains = map[text.TranslationID][]text.TranslationID{
	text.WEB:     {text.WEB, text.KJV, text.ESV, text.ASV},
	text.ESV:     {text.ESV, text.WEB, text.KJV, text.ASV},
	text.ASV:     {text.ASV, text.WEB, text.KJV, text.ESV},
	text.BISHOPS: {text.BISHOPS, text.WEB, text.KJV, text.ESV},
	text.GENEVA:  {text.GENEVA, text.WEB, text.KJV, text.ESV},
}

// defaultChain serves KJV and any unlisted preference.
var defaultChain = []text.TranslationID{text.KJV, text.WEB, text.ESV, text.ASV}

// Chain returns the fallback chain for a preferred translation.
func Chain(preferred text.TranslationID) []text.TranslationID {
	if chain, ok := fallbackChains[preferred]; ok {
		return chain
	}
	return defaultChain
}

// Fetcher answers verse-range requests through the cache and the
// fallback chain. It owns the only verse cache in the process, so
// cache lifetime is explicit rather than module state.
type Fetcher struct {
	providers map[text.TranslationID]Provider
	apocrypha *ApocryphaProvider
	cache     *cache.VerseCache

	// fetches counts provider calls, for cache verification.
	fetches atomic.Int64
}

// NewFetcher wires providers to a fresh verse cache. The apocrypha
// provider may be nil when no apocrypha corpus is configured.
func NewFetcher(providers []Provider, apocrypha *ApocryphaProvider) *Fetcher {
	return NewFetcherSized(providers, apocrypha, 500)
}

// NewFetcherSized is NewFetcher with an explicit verse cache capacity.
func NewFetcherSized(providers []Provider, apocrypha *ApocryphaProvider, cacheSize int) *Fetcher {
	byID := make(map[text.TranslationID]Provider, len(providers))
	for _, p := range providers {
		byID[p.Translation()] = p
	}
	return &Fetcher{
		providers: byID,
		apocrypha: apocrypha,
		cache:     cache.NewVerseCache(cacheSize),
	}
}

// Provider returns the registered provider for a translation, or nil.
func (f *Fetcher) Provider(id text.TranslationID) Provider {
	return f.providers[id]
}

// Apocrypha returns the apocrypha provider, or nil.
func (f *Fetcher) Apocrypha() *ApocryphaProvider {
	return f.apocrypha
}

// FetchCount returns the number of provider calls made so far.
func (f *Fetcher) FetchCount() int64 {
	return f.fetches.Load()
}

// ClearCache drops every cached verse range.
func (f *Fetcher) ClearCache() {
	f.cache.Clear()
}

// CacheStats returns verse cache statistics.
func (f *Fetcher) CacheStats() cache.Stats {
	return f.cache.Stats()
}

// FetchPreferred resolves a reference through the cache, the apocrypha
// quick path, and the preferred translation's fallback chain. The
// result carries whichever translation actually answered; an exhausted
// chain yields an empty slice.
func (f *Fetcher) FetchPreferred(ctx context.Context, r ref.Ref, preferred text.TranslationID) ([]text.Verse, error) {
	if preferred == "" {
		preferred = text.KJV
	}

	key := cache.VerseKey{
		Translation: preferred,
		Book:        r.Book,
		Chapter:     r.Chapter,
		Verse:       r.Verse,
		VerseEnd:    r.VerseEnd,
	}
	if verses, ok := f.cache.Get(key); ok {
		logging.CacheEvent(ctx, "hit", key.String())
		return verses, nil
	}
	logging.CacheEvent(ctx, "miss", key.String())

	// Apocryphal books are answered from the apocrypha corpus first,
	// regardless of the preferred translation.
	if f.apocrypha != nil && IsApocryphaBook(r.Book) && r.Verse > 0 {
		verses, err := f.apocrypha.GetVerses(ctx, r.Book, r.Chapter, r.Verse, r.VerseEnd)
		f.fetches.Add(1)
		if err != nil {
			logging.ProviderFailure(ctx, text.APOC.String(), err, "reference", r.String())
		}
		if len(verses) > 0 {
			f.cache.Put(key, verses)
			return verses, nil
		}
	}

	for _, id := range Chain(preferred) {
		p := f.providers[id]
		if p == nil {
			continue
		}
		if id != preferred {
			logging.ProviderFallback(ctx, preferred.String(), id.String())
		}

		verses, err := p.GetVerses(ctx, r.Book, r.Chapter, r.Verse, r.VerseEnd)
		f.fetches.Add(1)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			logging.ProviderFailure(ctx, id.String(), err, "reference", r.String())
			continue
		}
		if len(verses) > 0 {
			f.cache.Put(key, verses)
			return verses, nil
		}
	}

	return nil, nil
}

// FetchDirect resolves a reference against one source directly,
// bypassing the fallback chain. Used for translation comparison and
// explicit WLC, LXX, and Sinaiticus requests.
func (f *Fetcher) FetchDirect(ctx context.Context, r ref.Ref, id text.TranslationID) ([]text.Verse, error) {
	p := f.providers[id]
	if p == nil {
		return nil, nil
	}

	key := cache.VerseKey{
		Translation: id,
		Book:        r.Book,
		Chapter:     r.Chapter,
		Verse:       r.Verse,
		VerseEnd:    r.VerseEnd,
	}
	if verses, ok := f.cache.Get(key); ok {
		logging.CacheEvent(ctx, "hit", key.String())
		return verses, nil
	}

	verses, err := p.GetVerses(ctx, r.Book, r.Chapter, r.Verse, r.VerseEnd)
	f.fetches.Add(1)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		logging.ProviderFailure(ctx, id.String(), err, "reference", r.String())
		return nil, nil
	}
	f.cache.Put(key, verses)
	return verses, nil
}
