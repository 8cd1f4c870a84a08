package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/FocuswithJustin/SharpAssistant/core/errors"
	"github.com/FocuswithJustin/SharpAssistant/core/sqlite"
)

func emptyDictionary(t *testing.T) *DictionaryIndex {
	t.Helper()
	di, err := NewDictionaryIndex("")
	if err != nil {
		t.Fatalf("NewDictionaryIndex: %v", err)
	}
	return di
}

func TestDictionaryCuratedLookup(t *testing.T) {
	di := emptyDictionary(t)

	tests := []struct {
		term     string
		headword string
		ok       bool
	}{
		{term: "atonement", headword: "atonement", ok: true},
		{term: "Trinity", headword: "Trinity", ok: true},
		{term: "hypostatic union", headword: "hypostatic union", ok: true}, // space stripped by key normalization
		{term: "THEODICY?", headword: "theodicy", ok: true},
		{term: "zzzunknown", ok: false},
		{term: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			e, ok := di.Lookup(tt.term)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && e.Headword != tt.headword {
				t.Errorf("headword = %q, want %q", e.Headword, tt.headword)
			}
			if ok && e.Source != SourceCurated {
				t.Errorf("source = %q, want %q", e.Source, SourceCurated)
			}
		})
	}
}

func TestDictionaryJSONSources(t *testing.T) {
	dir := t.TempDir()
	webster := `{
		"covenant": {"headword": "covenant", "pos": "n.", "def": "A mutual agreement."},
		"mercy": {"headword": "mercy", "pos": "n.", "def": "Forbearance shown to an offender."}
	}`
	smiths := `{
		"covenant": {"headword": "covenant", "definition": "A solemn compact between parties."}
	}`
	if err := os.WriteFile(filepath.Join(dir, websterFile), []byte(webster), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, smithsFile), []byte(smiths), 0o644); err != nil {
		t.Fatal(err)
	}

	di, err := NewDictionaryIndex(dir)
	if err != nil {
		t.Fatalf("NewDictionaryIndex: %v", err)
	}
	if di.Len() != 2 {
		t.Fatalf("Len = %d, want 2", di.Len())
	}

	// Smith's wins where the two overlap, and its "definition" field is honored.
	e, ok := di.Lookup("covenant")
	if !ok {
		t.Fatal("covenant not found")
	}
	if e.Source != SourceSmiths {
		t.Errorf("source = %q, want %q", e.Source, SourceSmiths)
	}
	if e.Def != "A solemn compact between parties." {
		t.Errorf("def = %q", e.Def)
	}

	e, ok = di.Lookup("mercy")
	if !ok || e.Source != SourceWebster {
		t.Errorf("mercy: ok=%v source=%q", ok, e.Source)
	}

	// stem variant: "covenants" is a prefix-extension of "covenant"
	if _, ok := di.Lookup("covenants"); !ok {
		t.Error("stem variant lookup failed")
	}
}

func TestDictionarySQLiteSource(t *testing.T) {
	dir := t.TempDir()
	db, err := sqlite.Open(filepath.Join(dir, dictionaryDBFile))
	if err != nil {
		t.Fatalf("sqlite.Open: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE entries (key TEXT PRIMARY KEY, headword TEXT, pos TEXT, def TEXT)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO entries VALUES (?, ?, ?, ?)`, "shekinah", "shekinah", "n.", "The manifest dwelling presence of God."); err != nil {
		t.Fatalf("insert: %v", err)
	}
	db.Close()

	di, err := NewDictionaryIndex(dir)
	if err != nil {
		t.Fatalf("NewDictionaryIndex: %v", err)
	}
	e, ok := di.Lookup("shekinah")
	if !ok {
		t.Fatal("shekinah not found")
	}
	if e.Source != SourceSQLite {
		t.Errorf("source = %q, want %q", e.Source, SourceSQLite)
	}
}

func TestDictionaryMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, websterFile), []byte(`not json`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewDictionaryIndex(dir)
	if err == nil {
		t.Fatal("expected error for malformed webster index")
	}
	var perr *errors.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("error is not a ParseError: %v", err)
	}
}

func jsonDictionary(t *testing.T, entries string) *DictionaryIndex {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, websterFile), []byte(entries), 0o644); err != nil {
		t.Fatal(err)
	}
	di, err := NewDictionaryIndex(dir)
	if err != nil {
		t.Fatalf("NewDictionaryIndex: %v", err)
	}
	return di
}

func TestDictionarySearchPrefix(t *testing.T) {
	di := jsonDictionary(t, `{
		"covenant": {"headword": "covenant", "def": "a"},
		"covet": {"headword": "covet", "def": "b"},
		"mercy": {"headword": "mercy", "def": "c"}
	}`)

	hits := di.SearchPrefix("cov", 5)
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits := di.SearchPrefix("cov", 1); len(hits) != 1 {
		t.Errorf("limit 1 returned %d hits", len(hits))
	}
	if hits := di.SearchPrefix("zzz", 5); len(hits) != 0 {
		t.Errorf("unexpected hits %v", hits)
	}
}

func TestDictionarySearchFuzzy(t *testing.T) {
	di := jsonDictionary(t, `{
		"covenant": {"headword": "covenant", "def": "a"},
		"mercy": {"headword": "mercy", "def": "b"},
		"martyr": {"headword": "martyr", "def": "c"}
	}`)

	// one substitution away
	hits := di.SearchFuzzy("mercu", 5)
	if len(hits) == 0 || hits[0].Headword != "mercy" {
		t.Fatalf("fuzzy miss: %v", hits)
	}

	// first-letter pruning: "xercy" shares no first letter with any key
	if hits := di.SearchFuzzy("xercy", 5); len(hits) != 0 {
		t.Errorf("pruning failed: %v", hits)
	}

	// distance bound: "cxyz" allows at most 2 edits, "covenant" needs more
	if hits := di.SearchFuzzy("cxyz", 5); len(hits) != 0 {
		t.Errorf("distance bound failed: %v", hits)
	}
}

func TestDictionarySuggest(t *testing.T) {
	di := jsonDictionary(t, `{"covenant": {"headword": "covenant", "def": "a"}}`)

	got, ok := di.Suggest("covenent")
	if !ok || got != "covenant" {
		t.Errorf("Suggest = %q, %v", got, ok)
	}
	if _, ok := di.Suggest("zzzzzz"); ok {
		t.Error("Suggest matched nonsense")
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"mercy", "mercu", 1},
		{"grace", "trace", 1},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
