package search

import (
	"context"
	"testing"

	"github.com/FocuswithJustin/SharpAssistant/core/errors"
	"github.com/FocuswithJustin/SharpAssistant/core/text"
)

func newTestIndex(t *testing.T) *VerseIndex {
	t.Helper()
	vi, err := NewSeededIndex()
	if err != nil {
		t.Fatalf("NewSeededIndex: %v", err)
	}
	t.Cleanup(func() { vi.Close() })
	return vi
}

func TestSearchMatch(t *testing.T) {
	vi := newTestIndex(t)

	results, err := vi.Search(context.Background(), "shepherd", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected hits for \"shepherd\"")
	}
	for _, r := range results {
		if r.Verse.Reference != "Psalms 23:1" {
			t.Errorf("unexpected hit %s (%s)", r.Verse.Reference, r.Verse.Translation)
		}
		if r.Score <= 0 {
			t.Errorf("non-positive score %f", r.Score)
		}
	}
}

func TestSearchLimit(t *testing.T) {
	vi := newTestIndex(t)

	results, err := vi.Search(context.Background(), "God", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) > 3 {
		t.Fatalf("limit 3 exceeded: got %d results", len(results))
	}

	// limit <= 0 falls back to the default cap
	results, err = vi.Search(context.Background(), "God", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) > DefaultLimit {
		t.Fatalf("default limit exceeded: got %d results", len(results))
	}
}

func TestSearchFuzzyFallback(t *testing.T) {
	vi := newTestIndex(t)

	// "sheperd" is not in the corpus; the fuzzy retry should still land
	// on Psalms 23:1.
	results, err := vi.Search(context.Background(), "sheperd", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected fuzzy hits for \"sheperd\"")
	}
	if results[0].Verse.Reference != "Psalms 23:1" {
		t.Errorf("top hit = %s, want Psalms 23:1", results[0].Verse.Reference)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	vi := newTestIndex(t)

	_, err := vi.Search(context.Background(), "   ", 5)
	if err == nil {
		t.Fatal("expected error for blank query")
	}
	var verr *errors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %T, want *errors.ValidationError", err)
	}
	if verr.Field != "query" {
		t.Errorf("Field = %q, want %q", verr.Field, "query")
	}
}

func TestSearchCancelledContext(t *testing.T) {
	vi := newTestIndex(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := vi.Search(ctx, "love", 5); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestAddSkipsEmptyText(t *testing.T) {
	vi, err := NewVerseIndex()
	if err != nil {
		t.Fatalf("NewVerseIndex: %v", err)
	}
	defer vi.Close()

	if err := vi.Add(text.Verse{Reference: "John 11:35", Translation: "KJV"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if vi.Len() != 0 {
		t.Fatalf("empty verse was indexed, Len = %d", vi.Len())
	}
	if err := vi.Add(text.Verse{Reference: "John 11:35", Text: "Jesus wept.", Translation: "KJV"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if vi.Len() != 1 {
		t.Fatalf("Len = %d, want 1", vi.Len())
	}
}

func TestAddOverwritesSameID(t *testing.T) {
	vi, err := NewVerseIndex()
	if err != nil {
		t.Fatalf("NewVerseIndex: %v", err)
	}
	defer vi.Close()

	v := text.Verse{Reference: "John 11:35", Text: "Jesus wept.", Translation: "KJV"}
	if err := vi.Add(v); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := vi.Add(v); err != nil {
		t.Fatalf("Add again: %v", err)
	}
	if vi.Len() != 1 {
		t.Fatalf("Len = %d after duplicate add, want 1", vi.Len())
	}
}
