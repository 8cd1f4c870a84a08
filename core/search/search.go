// Package search provides an in-memory full-text index over verses.
//
// The index backs topical retrieval when a question carries no parseable
// reference: verses registered by providers are indexed by reference,
// text, and translation, then ranked with a match query. When the match
// query comes back empty a fuzzy disjunction over the query terms runs as
// a typo-tolerant fallback.
package search

import (
	"context"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/FocuswithJustin/SharpAssistant/core/errors"
	"github.com/FocuswithJustin/SharpAssistant/core/text"
	"github.com/FocuswithJustin/SharpAssistant/internal/logging"
)

// DefaultLimit caps result counts when the caller passes limit <= 0.
const DefaultLimit = 5

// fuzziness for the fallback disjunction. Two edits tolerates most
// single-word typos without dragging in unrelated vocabulary.
const fuzziness = 2

// Result is one ranked verse hit.
type Result struct {
	Verse text.Verse `json:"verse"`
	Score float64    `json:"score"`
}

// verseDoc is the flat document shape handed to bleve.
type verseDoc struct {
	Reference   string `json:"reference"`
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

// VerseIndex is an in-memory bleve index over verses.
type VerseIndex struct {
	index  bleve.Index
	verses map[string]text.Verse // doc ID -> original verse
}

// NewVerseIndex builds an empty in-memory index.
func NewVerseIndex() (*VerseIndex, error) {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	// standard analyzer: lowercase + tokenize, no stemming, so "love"
	// matches "love" and not "loving".
	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("text", textField)
	docMapping.AddFieldMappingsAt("reference", textField)
	keywordField := bleve.NewKeywordFieldMapping()
	docMapping.AddFieldMappingsAt("translation", keywordField)
	im.AddDocumentMapping("verse", docMapping)
	im.DefaultType = "verse"
	im.DefaultMapping = docMapping

	idx, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, errors.Wrap(err, "creating verse index")
	}
	return &VerseIndex{index: idx, verses: make(map[string]text.Verse)}, nil
}

// Add indexes one verse. Verses with empty text are skipped so empty
// provider results never pollute the index.
func (vi *VerseIndex) Add(v text.Verse) error {
	if strings.TrimSpace(v.Text) == "" {
		return nil
	}
	id := string(v.Translation) + ":" + v.Reference
	doc := verseDoc{Reference: v.Reference, Text: v.Text, Translation: string(v.Translation)}
	if err := vi.index.Index(id, doc); err != nil {
		return errors.Wrapf(err, "indexing %s", id)
	}
	vi.verses[id] = v
	return nil
}

// AddAll indexes a batch of verses, stopping at the first error.
func (vi *VerseIndex) AddAll(verses []text.Verse) error {
	for _, v := range verses {
		if err := vi.Add(v); err != nil {
			return err
		}
	}
	return nil
}

// Len reports the number of indexed verses.
func (vi *VerseIndex) Len() int { return len(vi.verses) }

// Close releases the underlying index.
func (vi *VerseIndex) Close() error { return vi.index.Close() }

// Search ranks verses against query and returns up to limit results.
// A plain match query runs first; when it finds nothing, a fuzzy
// disjunction over the query terms retries with typo tolerance.
func (vi *VerseIndex) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.NewValidation("query", "empty search query")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	hits, err := vi.run(bleve.NewMatchQuery(query), limit)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		logging.Debug("fuzzy_retry", "query", query)
		hits, err = vi.run(vi.fuzzyQuery(query), limit)
		if err != nil {
			return nil, err
		}
	}
	return hits, nil
}

func (vi *VerseIndex) run(q blevequery.Query, limit int) ([]Result, error) {
	req := bleve.NewSearchRequest(q)
	req.Size = limit
	res, err := vi.index.Search(req)
	if err != nil {
		return nil, errors.Wrap(err, "verse search")
	}
	out := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		v, ok := vi.verses[hit.ID]
		if !ok {
			continue
		}
		out = append(out, Result{Verse: v, Score: hit.Score})
	}
	return out, nil
}

// fuzzyQuery builds a disjunction of per-term fuzzy queries so any
// near-miss term can match, mirroring match-query OR semantics.
func (vi *VerseIndex) fuzzyQuery(query string) blevequery.Query {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return bleve.NewMatchQuery(query)
	}
	if len(terms) == 1 {
		fq := bleve.NewFuzzyQuery(terms[0])
		fq.SetFuzziness(fuzziness)
		return fq
	}
	queries := make([]blevequery.Query, 0, len(terms))
	for _, term := range terms {
		fq := bleve.NewFuzzyQuery(term)
		fq.SetFuzziness(fuzziness)
		queries = append(queries, fq)
	}
	return bleve.NewDisjunctionQuery(queries...)
}
