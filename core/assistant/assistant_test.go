package assistant

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FocuswithJustin/SharpAssistant/core/index"
	"github.com/FocuswithJustin/SharpAssistant/core/provider"
	"github.com/FocuswithJustin/SharpAssistant/core/search"
	"github.com/FocuswithJustin/SharpAssistant/core/text"
)

const (
	kjvJohn316 = "For God so loved the world, that he gave his only begotten Son, that whosoever believeth in him should not perish, but have everlasting life."
	webJohn316 = "For God so loved the world, that he gave his one and only Son, that whoever believes in him should not perish, but have eternal life."
	tobit11    = "The book of the words of Tobit, son of Tobiel, the son of Ananiel, of the tribe of Nephthali."
)

func writeBookFile(t *testing.T, dir, name, payload string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(payload), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

// stubStats is an in-memory stats provider for the user-stats branch.
type stubStats struct {
	stats Stats
	err   error
}

func (s *stubStats) OverallStats(ctx context.Context, userID string) (Stats, error) {
	return s.stats, s.err
}

// newTestAssistant builds an assistant over a two-translation John
// corpus, a Tobit apocrypha corpus, the seeded search index, and the
// curated fallback indices.
func newTestAssistant(t *testing.T, stats StatsProvider) (*Assistant, *provider.Fetcher) {
	t.Helper()

	kjvDir := t.TempDir()
	writeBookFile(t, kjvDir, "John.json",
		`{"book":"John","chapters":{"3":{"16":"`+kjvJohn316+`"}}}`)

	webDir := t.TempDir()
	writeBookFile(t, webDir, "John.json",
		`{"book":"John","chapters":{"3":{"16":"`+webJohn316+`"}}}`)

	apocDir := t.TempDir()
	writeBookFile(t, apocDir, "Tobit.json",
		`{"book":"Tobit","chapters":{"1":{"1":"`+tobit11+`"}}}`)

	fetcher := provider.NewFetcher([]provider.Provider{
		provider.NewFileProvider(text.KJV, kjvDir),
		provider.NewFileProvider(text.WEB, webDir),
	}, provider.NewApocryphaProvider(apocDir))

	idx, err := search.NewSeededIndex()
	if err != nil {
		t.Fatalf("seeded index: %v", err)
	}
	t.Cleanup(func() { idx.Close() })

	crossRefs, err := index.NewCrossReferenceIndex(t.TempDir())
	if err != nil {
		t.Fatalf("cross references: %v", err)
	}
	dict, err := index.NewDictionaryIndex(t.TempDir())
	if err != nil {
		t.Fatalf("dictionary: %v", err)
	}
	geo, err := index.NewGeoIndex(t.TempDir())
	if err != nil {
		t.Fatalf("geo: %v", err)
	}
	religions, err := index.NewReligionIndex(t.TempDir())
	if err != nil {
		t.Fatalf("religions: %v", err)
	}

	a := New(Config{
		Fetcher:    fetcher,
		Search:     idx,
		CrossRefs:  crossRefs,
		Dictionary: dict,
		Geo:        geo,
		Religions:  religions,
		Stats:      stats,
	})
	return a, fetcher
}

func TestAnswerDirectReference(t *testing.T) {
	a, _ := newTestAssistant(t, nil)

	resp, err := a.Answer(context.Background(), "John 3:16", Context{})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if !strings.Contains(resp.Answer, kjvJohn316) {
		t.Errorf("answer missing verse text:\n%s", resp.Answer)
	}
	if !strings.Contains(resp.Answer, "Neutrality note") {
		t.Errorf("answer missing neutrality disclaimer:\n%s", resp.Answer)
	}
	if len(resp.Citations) != 1 {
		t.Fatalf("citations = %v, want exactly one", resp.Citations)
	}
	if resp.Citations[0].Ref != "John 3:16" || resp.Citations[0].Translation != "KJV" {
		t.Errorf("citation = %+v, want John 3:16 (KJV)", resp.Citations[0])
	}
	if resp.Metadata.Type != TypeReference {
		t.Errorf("metadata type = %q, want %q", resp.Metadata.Type, TypeReference)
	}
	if resp.Metadata.RequestID == "" {
		t.Error("metadata missing request id")
	}
}

func TestAnswerFallbackChain(t *testing.T) {
	// No ESV provider is registered, so an ESV preference must fall
	// through to the next English translation in the chain.
	a, _ := newTestAssistant(t, nil)

	resp, err := a.Answer(context.Background(), "John 3:16", Context{SelectedTranslation: text.ESV})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if !strings.Contains(resp.Answer, webJohn316) {
		t.Errorf("answer missing WEB verse text:\n%s", resp.Answer)
	}
	if len(resp.Citations) != 1 || resp.Citations[0].Translation != "WEB" {
		t.Errorf("citations = %v, want a single WEB citation", resp.Citations)
	}
}

func TestAnswerMapFollowUp(t *testing.T) {
	a, _ := newTestAssistant(t, nil)

	history := []Turn{
		{Role: RoleUser, Content: "Where is Jericho?"},
		{
			Role:    RoleAssistant,
			Content: "Jericho location details",
			Metadata: &Metadata{
				Type:     TypeMapLocation,
				Location: "Jericho",
			},
		},
	}

	resp, err := a.Answer(context.Background(), "it", Context{History: history})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if resp.Metadata.Type != TypeMapLocation {
		t.Fatalf("metadata type = %q, want %q; answer:\n%s", resp.Metadata.Type, TypeMapLocation, resp.Answer)
	}
	if resp.Metadata.Location != "Jericho" {
		t.Errorf("location = %q, want Jericho", resp.Metadata.Location)
	}
	if !strings.Contains(resp.Answer, "Jericho") {
		t.Errorf("answer does not mention Jericho:\n%s", resp.Answer)
	}
	if !strings.Contains(resp.Answer, "Present Day Location") {
		t.Errorf("answer missing map layout:\n%s", resp.Answer)
	}
}

func TestAnswerClarification(t *testing.T) {
	a, fetcher := newTestAssistant(t, nil)

	resp, err := a.Answer(context.Background(), "explain this", Context{})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if !resp.Metadata.NeedsClarification {
		t.Error("expected a clarification response")
	}
	if len(resp.Citations) != 0 {
		t.Errorf("citations = %v, want none", resp.Citations)
	}
	if got := strings.Count(resp.Answer, "• "); got < 4 {
		t.Errorf("clarification offers %d options, want at least 4:\n%s", got, resp.Answer)
	}
	if n := fetcher.FetchCount(); n != 0 {
		t.Errorf("clarification triggered %d provider fetches, want 0", n)
	}
}

func TestAnswerApocrypha(t *testing.T) {
	a, _ := newTestAssistant(t, nil)

	resp, err := a.Answer(context.Background(), "Tobit 1:1", Context{})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if !strings.Contains(resp.Answer, tobit11) {
		t.Errorf("answer missing Tobit text:\n%s", resp.Answer)
	}
	if len(resp.Citations) != 1 {
		t.Fatalf("citations = %v, want exactly one", resp.Citations)
	}
	if resp.Citations[0].Ref != "Tobit 1:1" || resp.Citations[0].Translation != "KJV" {
		t.Errorf("citation = %+v, want Tobit 1:1 (KJV)", resp.Citations[0])
	}
	if !resp.Metadata.Apocrypha {
		t.Error("apocrypha flag not set")
	}
}

func TestAnswerCaching(t *testing.T) {
	a, fetcher := newTestAssistant(t, nil)
	ctx := context.Background()

	first, err := a.Answer(ctx, "John 3:16", Context{})
	if err != nil {
		t.Fatalf("first Answer: %v", err)
	}
	afterFirst := fetcher.FetchCount()
	if afterFirst == 0 {
		t.Fatal("first answer made no provider fetches")
	}

	second, err := a.Answer(ctx, "John 3:16", Context{})
	if err != nil {
		t.Fatalf("second Answer: %v", err)
	}
	if n := fetcher.FetchCount(); n != afterFirst {
		t.Errorf("repeat query fetched again: count %d -> %d", afterFirst, n)
	}
	if first.Answer != second.Answer {
		t.Errorf("cached answer differs:\nfirst:\n%s\nsecond:\n%s", first.Answer, second.Answer)
	}
}

func TestAnswerFeastDay(t *testing.T) {
	a, _ := newTestAssistant(t, nil)

	resp, err := a.Answer(context.Background(), "Tell me about Passover", Context{})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if resp.Metadata.Type != TypeFeastDay {
		t.Fatalf("metadata type = %q, want %q", resp.Metadata.Type, TypeFeastDay)
	}
	for _, want := range []string{"**Passover** (Pesach)", "Exodus 12:1-14", "pilgrimage"} {
		if !strings.Contains(resp.Answer, want) {
			t.Errorf("answer missing %q:\n%s", want, resp.Answer)
		}
	}
}

func TestAnswerWordStudy(t *testing.T) {
	a, _ := newTestAssistant(t, nil)

	resp, err := a.Answer(context.Background(), "word study on love", Context{})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if resp.Metadata.Type != TypeWordStudy {
		t.Fatalf("metadata type = %q, want %q; answer:\n%s", resp.Metadata.Type, TypeWordStudy, resp.Answer)
	}
	for _, want := range []string{"agapē", "Greek", "Strong's G26"} {
		if !strings.Contains(resp.Answer, want) {
			t.Errorf("answer missing %q:\n%s", want, resp.Answer)
		}
	}
}

func TestAnswerDefinition(t *testing.T) {
	a, _ := newTestAssistant(t, nil)

	resp, err := a.Answer(context.Background(), "What is justification?", Context{})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if !resp.Metadata.DefinitionLookup {
		t.Fatalf("definition lookup flag not set; answer:\n%s", resp.Answer)
	}
	if resp.Metadata.Headword != "justification" {
		t.Errorf("headword = %q, want justification", resp.Metadata.Headword)
	}
	if !strings.Contains(resp.Answer, "Forensic declaration") {
		t.Errorf("answer missing curated definition:\n%s", resp.Answer)
	}
	if resp.Metadata.Strategy == nil || resp.Metadata.Strategy.Format != "definition" {
		t.Errorf("strategy = %+v, want definition format", resp.Metadata.Strategy)
	}
}

func TestAnswerReligion(t *testing.T) {
	a, _ := newTestAssistant(t, nil)

	resp, err := a.Answer(context.Background(), "What does Islam teach?", Context{})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if resp.Metadata.Type != TypeReligion {
		t.Fatalf("metadata type = %q, want %q; answer:\n%s", resp.Metadata.Type, TypeReligion, resp.Answer)
	}
	if resp.Metadata.Religion != "Islam" {
		t.Errorf("religion = %q, want Islam", resp.Metadata.Religion)
	}
	for _, want := range []string{"Overview of Islam", "Points of Contrast with Islam"} {
		if !strings.Contains(resp.Answer, want) {
			t.Errorf("answer missing %q:\n%s", want, resp.Answer)
		}
	}
}

func TestAnswerUserStats(t *testing.T) {
	tests := []struct {
		name  string
		stats StatsProvider
		want  string
	}{
		{
			name:  "no provider",
			stats: nil,
			want:  "I don't have access to your study statistics",
		},
		{
			name:  "provider error",
			stats: &stubStats{err: errors.New("backend down")},
			want:  "Could not retrieve user statistics",
		},
		{
			name: "stats available",
			stats: &stubStats{stats: Stats{
				TotalQuizzes:  12,
				CurrentStreak: 4,
				TotalXP:       830,
				Accuracy:      91.5,
			}},
			want: "**Current Streak:** 4 days",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestAssistant(t, tt.stats)
			resp, err := a.Answer(context.Background(), "show me my streak", Context{UserID: "u1"})
			if err != nil {
				t.Fatalf("Answer: %v", err)
			}
			if resp.Metadata.Type != TypeUserStats {
				t.Fatalf("metadata type = %q, want %q", resp.Metadata.Type, TypeUserStats)
			}
			if !strings.Contains(resp.Answer, tt.want) {
				t.Errorf("answer missing %q:\n%s", tt.want, resp.Answer)
			}
		})
	}
}

func TestAnswerRetrievalFallback(t *testing.T) {
	a, _ := newTestAssistant(t, nil)

	resp, err := a.Answer(context.Background(), "verses about the shepherd", Context{})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if resp.Metadata.Type != TypeRetrieval {
		t.Fatalf("metadata type = %q, want %q; answer:\n%s", resp.Metadata.Type, TypeRetrieval, resp.Answer)
	}
	if !strings.Contains(resp.Answer, "Neutrality note") {
		t.Errorf("answer missing neutrality disclaimer:\n%s", resp.Answer)
	}
}

func TestAnswerRetrievalNoMatch(t *testing.T) {
	a, fetcher := newTestAssistant(t, nil)

	resp, err := a.Answer(context.Background(), "verses about quantum chromodynamics", Context{})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if !strings.Contains(resp.Answer, "I didn't find a direct match locally") {
		t.Errorf("answer missing no-match hint:\n%s", resp.Answer)
	}
	if len(resp.Citations) != 0 {
		t.Errorf("citations = %v, want none", resp.Citations)
	}
	if n := fetcher.FetchCount(); n != 0 {
		t.Errorf("no-match query made %d provider fetches, want 0", n)
	}
}
