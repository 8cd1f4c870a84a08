package index

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/FocuswithJustin/SharpAssistant/core/errors"
	"github.com/FocuswithJustin/SharpAssistant/core/sqlite"
	"github.com/FocuswithJustin/SharpAssistant/internal/logging"
)

// Optional dictionary data files under the data directory.
const (
	websterFile      = "webster1913_index.json"
	smithsFile       = "smiths.json"
	dictionaryDBFile = "dictionary.db"
)

// Entry sources, most authoritative first during merge.
const (
	SourceCurated = "CURATED"
	SourceSmiths  = "SMITHS"
	SourceWebster = "WEBSTER"
	SourceSQLite  = "SQLITE"
)

// Entry is one dictionary definition.
type Entry struct {
	Headword string `json:"headword"`
	POS      string `json:"pos,omitempty"`
	Def      string `json:"def"`
	Source   string `json:"src,omitempty"`
}

// advancedTerms is the curated theological/philosophical vocabulary that
// answers definition questions even with no dictionary files installed.
var advancedTerms = map[string]Entry{
	"atonement":       {Headword: "atonement", POS: "n.", Def: "The reconciliatory work by which estranged parties are brought into unity; in Christian theology, the redemptive act of Christ restoring communion between God and humanity.", Source: SourceCurated},
	"justification":   {Headword: "justification", POS: "n.", Def: "Forensic declaration of righteousness; divine acquittal grounded not in inherent merit but in imputed righteousness.", Source: SourceCurated},
	"sanctification":  {Headword: "sanctification", POS: "n.", Def: "Consecration unto holiness; the transformative work whereby a person is progressively conformed to a sacred standard.", Source: SourceCurated},
	"trinity":         {Headword: "Trinity", POS: "n.", Def: "The one divine essence subsisting in three hypostases (Father, Son, and Holy Spirit) coequal, coeternal, consubstantial.", Source: SourceCurated},
	"kenosis":         {Headword: "kenosis", POS: "n.", Def: "Self-emptying; the incarnational condescension whereby the Son assumes servile form without relinquishing divine nature.", Source: SourceCurated},
	"eschatology":     {Headword: "eschatology", POS: "n.", Def: "Doctrine of last things; consummation of history and final destiny of creation.", Source: SourceCurated},
	"soteriology":     {Headword: "soteriology", POS: "n.", Def: "Doctrine of salvation; modes and means of deliverance and restoration.", Source: SourceCurated},
	"ecclesiology":    {Headword: "ecclesiology", POS: "n.", Def: "Doctrine of the Church; nature, marks, polity, and sacramental life of the ecclesia.", Source: SourceCurated},
	"christology":     {Headword: "Christology", POS: "n.", Def: "Doctrine concerning the person and work of Christ; union of natures and mediatorial office.", Source: SourceCurated},
	"pneumatology":    {Headword: "pneumatology", POS: "n.", Def: "Doctrine of the Spirit; procession, gifts, sanctifying agency.", Source: SourceCurated},
	"hamartiology":    {Headword: "hamartiology", POS: "n.", Def: "Doctrine of sin; privation, guilt, corruption, and their effects.", Source: SourceCurated},
	"theodicy":        {Headword: "theodicy", POS: "n.", Def: "Vindication of divine goodness and justice amid the presence of evil.", Source: SourceCurated},
	"hermeneutics":    {Headword: "hermeneutics", POS: "n.", Def: "Art and theory of interpretation; principles governing textual meaning and application.", Source: SourceCurated},
	"exegesis":        {Headword: "exegesis", POS: "n.", Def: "Critical explanation of a text; drawing meaning out from linguistic, literary, and historical data.", Source: SourceCurated},
	"eisegesis":       {Headword: "eisegesis", POS: "n.", Def: "Reading meaning into a text from prior assumptions rather than drawing it out from the text itself.", Source: SourceCurated},
	"ontology":        {Headword: "ontology", POS: "n.", Def: "Philosophical account of being; categories and modes of existence.", Source: SourceCurated},
	"epistemology":    {Headword: "epistemology", POS: "n.", Def: "Theory of knowledge; sources, scope, and justification of belief.", Source: SourceCurated},
	"teleology":       {Headword: "teleology", POS: "n.", Def: "Explanation by ends or purposes; purposive structure of reality.", Source: SourceCurated},
	"hypostasis":      {Headword: "hypostasis", POS: "n.", Def: "Underlying reality or person; in Trinitarian discourse, a distinct subsistence within the one essence.", Source: SourceCurated},
	"ousia":           {Headword: "ousia", POS: "n.", Def: "Essence or being; that which makes a thing what it is.", Source: SourceCurated},
	"perichoresis":    {Headword: "perichoresis", POS: "n.", Def: "Mutual indwelling and interpenetration without confusion; circumincession of the divine persons.", Source: SourceCurated},
	"homoousios":      {Headword: "homoousios", POS: "adj.", Def: "Of the same essence; consubstantial.", Source: SourceCurated},
	"hypostaticunion": {Headword: "hypostatic union", POS: "n.", Def: "Personal union of divine and human natures in the one person of Christ without confusion, change, division, or separation.", Source: SourceCurated},
}

// DictionaryIndex merges the installed dictionary sources behind exact,
// prefix, and fuzzy lookup. Merge precedence: Smith's over Webster over
// SQLite; the curated table short-circuits everything on exact hits.
type DictionaryIndex struct {
	combined map[string]Entry
	keys     []string // sorted, for deterministic scans
}

// NewDictionaryIndex loads whatever dictionary sources exist in dataDir.
// Missing files are skipped; unreadable or malformed ones are errors.
func NewDictionaryIndex(dataDir string) (*DictionaryIndex, error) {
	combined := make(map[string]Entry)

	if dataDir != "" {
		if err := loadSQLiteDictionary(filepath.Join(dataDir, dictionaryDBFile), combined); err != nil {
			return nil, err
		}
		if err := loadWebster(filepath.Join(dataDir, websterFile), combined); err != nil {
			return nil, err
		}
		if err := loadSmiths(filepath.Join(dataDir, smithsFile), combined); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(combined))
	for k := range combined {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	logging.IndexLoaded("dictionary", len(combined)+len(advancedTerms))
	return &DictionaryIndex{combined: combined, keys: keys}, nil
}

// loadWebster reads the Webster 1913 index: key -> entry, tagged WEBSTER
// when the file carries no source tag.
func loadWebster(path string, into map[string]Entry) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.NewIO("read", path, err)
	}
	var idx map[string]Entry
	if err := json.Unmarshal(data, &idx); err != nil {
		return errors.NewParse("json", path, "webster index: "+err.Error())
	}
	for k, e := range idx {
		key := normalizeTermKey(k)
		if key == "" {
			continue
		}
		if e.Source == "" {
			e.Source = SourceWebster
		}
		if e.Headword == "" {
			e.Headword = k
		}
		into[key] = e
	}
	return nil
}

// smithsEntry tolerates both "def" and "definition" field names.
type smithsEntry struct {
	Headword   string `json:"headword"`
	POS        string `json:"pos"`
	Def        string `json:"def"`
	Definition string `json:"definition"`
}

func loadSmiths(path string, into map[string]Entry) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.NewIO("read", path, err)
	}
	var idx map[string]smithsEntry
	if err := json.Unmarshal(data, &idx); err != nil {
		return errors.NewParse("json", path, "smiths index: "+err.Error())
	}
	for k, e := range idx {
		key := normalizeTermKey(k)
		if key == "" {
			continue
		}
		def := e.Def
		if def == "" {
			def = e.Definition
		}
		headword := e.Headword
		if headword == "" {
			headword = k
		}
		into[key] = Entry{Headword: headword, POS: e.POS, Def: def, Source: SourceSmiths}
	}
	return nil
}

// loadSQLiteDictionary reads the optional SQLite dictionary into memory
// so all lookup modes work uniformly across sources. Expected schema:
// entries(key TEXT PRIMARY KEY, headword TEXT, pos TEXT, def TEXT).
func loadSQLiteDictionary(path string, into map[string]Entry) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return errors.NewIO("open", path, err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT key, headword, pos, def FROM entries`)
	if err != nil {
		return errors.NewParse("sqlite", path, "dictionary query: "+err.Error())
	}
	defer rows.Close()

	for rows.Next() {
		var key, headword, def string
		var pos sql.NullString
		if err := rows.Scan(&key, &headword, &pos, &def); err != nil {
			return errors.NewParse("sqlite", path, "dictionary row: "+err.Error())
		}
		key = normalizeTermKey(key)
		if key == "" {
			continue
		}
		into[key] = Entry{Headword: headword, POS: pos.String, Def: def, Source: SourceSQLite}
	}
	if err := rows.Err(); err != nil {
		return errors.NewParse("sqlite", path, "dictionary rows: "+err.Error())
	}
	return nil
}

// Lookup resolves a term to a definition: curated table first, then an
// exact key hit, then the first stem variant in key order.
func (di *DictionaryIndex) Lookup(term string) (Entry, bool) {
	key := normalizeTermKey(term)
	if key == "" {
		return Entry{}, false
	}
	if e, ok := advancedTerms[key]; ok {
		return e, true
	}
	if e, ok := di.combined[key]; ok {
		return e, true
	}
	for _, k := range di.keys {
		if strings.HasPrefix(k, key) || strings.HasPrefix(key, k) {
			return di.combined[k], true
		}
	}
	return Entry{}, false
}

// SearchPrefix returns up to limit entries whose key is a prefix of the
// term or vice versa.
func (di *DictionaryIndex) SearchPrefix(term string, limit int) []Entry {
	key := normalizeTermKey(term)
	if key == "" {
		return nil
	}
	if limit <= 0 {
		limit = 5
	}
	var out []Entry
	for _, k := range di.keys {
		if len(out) >= limit {
			break
		}
		if strings.HasPrefix(k, key) || strings.HasPrefix(key, k) {
			out = append(out, di.combined[k])
		}
	}
	return out
}

// SearchFuzzy finds near-miss entries by edit distance. Candidates are
// pruned to keys sharing the first letter; the distance bound scales
// with term length, at least 2 edits and up to 30% of the key length.
func (di *DictionaryIndex) SearchFuzzy(term string, limit int) []Entry {
	key := normalizeTermKey(term)
	if key == "" {
		return nil
	}
	if limit <= 0 {
		limit = 5
	}
	maxDist := len(key) * 3 / 10
	if maxDist < 2 {
		maxDist = 2
	}

	type scored struct {
		key  string
		dist int
	}
	var candidates []scored
	first := key[0]
	for _, k := range di.keys {
		if k[0] != first {
			continue
		}
		if d := levenshtein(key, k); d <= maxDist {
			candidates = append(candidates, scored{key: k, dist: d})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].key < candidates[j].key
	})

	out := make([]Entry, 0, limit)
	for _, c := range candidates {
		if len(out) >= limit {
			break
		}
		out = append(out, di.combined[c.key])
	}
	return out
}

// Suggest returns the closest headword for a misspelled term, for
// "did you mean" prompts. ok is false when nothing is close enough.
func (di *DictionaryIndex) Suggest(term string) (string, bool) {
	hits := di.SearchFuzzy(term, 1)
	if len(hits) == 0 {
		return "", false
	}
	return hits[0].Headword, true
}

// Len reports the number of loaded (non-curated) entries.
func (di *DictionaryIndex) Len() int { return len(di.combined) }

// normalizeTermKey lowercases and strips everything but letters.
func normalizeTermKey(term string) string {
	return stripNonAlpha(strings.ToLower(term))
}

// levenshtein computes edit distance with the two-row formulation.
func levenshtein(a, b string) int {
	m, n := len(a), len(b)
	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}
	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}
	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			ins := curr[j-1] + 1
			del := prev[j] + 1
			sub := prev[j-1] + cost
			d := ins
			if del < d {
				d = del
			}
			if sub < d {
				d = sub
			}
			curr[j] = d
		}
		prev, curr = curr, prev
	}
	return prev[n]
}
