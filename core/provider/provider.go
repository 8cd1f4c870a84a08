// Package provider implements the translation data sources and the
// fallback-chain fetcher sitting behind the verse cache.
//
// Every provider exposes the same contract: fetch the verses of one
// reference range. A provider that cannot locate a book returns an
// empty slice rather than an error, so the fallback chain can proceed
// to the next source. Errors are reserved for malformed data files and
// transport failures; the fetcher logs them and treats them as misses.
package provider

import (
	"context"

	"github.com/FocuswithJustin/SharpAssistant/core/text"
)

// Provider supplies verse text for one translation or manuscript source.
type Provider interface {
	// Translation returns the source's translation ID.
	Translation() text.TranslationID

	// GetVerses fetches verses for the given range. verseStart == 0
	// requests the whole chapter; verseEnd == 0 requests a single
	// verse. Verses are returned in ascending verse order. A missing
	// book or absent verses yield an empty slice, not an error.
	GetVerses(ctx context.Context, book string, chapter, verseStart, verseEnd int) ([]text.Verse, error)
}

// verseRange normalizes a requested range to concrete bounds.
// A zero start denotes whole-chapter intent and is resolved by the
// caller against the chapter's actual verses.
func verseRange(verseStart, verseEnd int) (int, int) {
	start := verseStart
	if start == 0 {
		start = 1
	}
	end := verseEnd
	if end < start {
		end = start
	}
	return start, end
}
