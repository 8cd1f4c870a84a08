package index

import (
	"regexp"
	"strings"
)

// WordStudy is one Strong's-keyed gloss entry.
type WordStudy struct {
	Strong   string `json:"strong"`
	Lemma    string `json:"lemma"`
	Language string `json:"language"`
	Gloss    string `json:"gloss"`
	Notes    string `json:"notes"`
}

// lexicon holds the Strong's gloss table keyed by English headword.
var lexicon = map[string]WordStudy{
	"love":           {Strong: "G26", Lemma: "agapē", Language: "Greek", Gloss: "self-giving love; benevolent goodwill", Notes: "Often denotes covenantal, volitional love; cf. 1 John 4:8; John 3:16."},
	"faith":          {Strong: "G4102", Lemma: "pistis", Language: "Greek", Gloss: "faith, trust, fidelity", Notes: "Relational trust in God; assurance."},
	"grace":          {Strong: "G5485", Lemma: "charis", Language: "Greek", Gloss: "grace, favor, gift", Notes: "God's unmerited favor; Ephesians 2:8."},
	"peace":          {Strong: "G1515", Lemma: "eirēnē", Language: "Greek", Gloss: "peace, wholeness", Notes: "Harmony with God; cf. John 14:27."},
	"righteousness":  {Strong: "G1343", Lemma: "dikaiosynē", Language: "Greek", Gloss: "righteousness, justice", Notes: "Right standing/justice; Romans themes."},
	"sin":            {Strong: "G266", Lemma: "hamartia", Language: "Greek", Gloss: "sin, missing the mark", Notes: "Failure to meet God's standard."},
	"spirit":         {Strong: "G4151", Lemma: "pneuma", Language: "Greek", Gloss: "spirit, wind, breath", Notes: "Used of the Holy Spirit and human spirit."},
	"truth":          {Strong: "G225", Lemma: "alētheia", Language: "Greek", Gloss: "truth, reality", Notes: "Faithfulness/verity; John 14:6."},
	"word":           {Strong: "G3056", Lemma: "logos", Language: "Greek", Gloss: "word, message, account", Notes: "Divine Word in John 1:1."},
	"lovingkindness": {Strong: "H2617", Lemma: "ḥesed", Language: "Hebrew", Gloss: "steadfast love, loyal kindness", Notes: "Covenant loyalty; Psalm 136."},
}

// wordStudyPattern extracts the studied word from phrasings like
// "word study on love" or "greek for grace".
var wordStudyPattern = regexp.MustCompile(`(?:word study on|greek for|hebrew for|original (?:word|language) for)\s+([a-z\-']+)`)

// LookupWordStudy resolves a word-study query to a gloss entry. The
// query may be a bare word or a phrase naming the word; unknown words
// return ok=false.
func LookupWordStudy(query string) (WordStudy, bool) {
	if query == "" {
		return WordStudy{}, false
	}
	lower := strings.ToLower(query)
	key := ""
	if m := wordStudyPattern.FindStringSubmatch(lower); m != nil {
		key = m[1]
	} else {
		key = stripNonAlpha(lower)
	}
	ws, ok := lexicon[key]
	return ws, ok
}

func stripNonAlpha(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
