// Package classify assigns questions to a taxonomy of categories and
// routes them to answer strategies.
//
// Classification is table-driven: a single ordered rule list pairs each
// regex with its category and subcategory, so adding a question form is
// one line, and ties between rules resolve by table order.
package classify

import (
	"regexp"
	"strings"

	"github.com/FocuswithJustin/SharpAssistant/core/ref"
)

// Categories.
const (
	CategoryScripture   = "scripture"
	CategoryTheology    = "theology"
	CategoryHistory     = "history"
	CategoryApologetics = "apologetics"
	CategoryPractical   = "practical"
	CategoryPastoral    = "pastoral"
	CategoryComparative = "comparative_religion"
	CategoryPaul        = "paul"
	CategoryGeneral     = "general"
	CategoryAmbiguous   = "ambiguous"
	CategoryUnknown     = "unknown"
)

// Classification is the outcome of classifying one question.
type Classification struct {
	Category           string   `json:"category"`
	Subcategory        string   `json:"subcategory,omitempty"`
	Confidence         float64  `json:"confidence"`
	Keywords           []string `json:"keywords,omitempty"`
	NeedsClarification bool     `json:"needs_clarification"`
	Suggestion         string   `json:"suggestion,omitempty"`
	Ref                *ref.Ref `json:"ref,omitempty"`
}

// rule is one row of the classification table.
type rule struct {
	category    string
	subcategory string
	pattern     *regexp.Regexp
}

// rules is ordered: earlier rows win confidence ties.
var rules = []rule{
	// scripture
	{CategoryScripture, "who", regexp.MustCompile(`(?i)^who (?:is|was|were|are)\b`)},
	{CategoryScripture, "who", regexp.MustCompile(`(?i)\bwho (?:wrote|authored|penned)\b`)},
	{CategoryScripture, "who", regexp.MustCompile(`(?i)^identify\b.*person`)},
	{CategoryScripture, "what_definition", regexp.MustCompile(`(?i)^what (?:is|was|are|were)\b`)},
	{CategoryScripture, "what_definition", regexp.MustCompile(`(?i)^define\b`)},
	{CategoryScripture, "what_definition", regexp.MustCompile(`(?i)^definition of\b`)},
	{CategoryScripture, "what_definition", regexp.MustCompile(`(?i)^meaning of\b`)},
	{CategoryScripture, "what_definition", regexp.MustCompile(`(?i)\bwhat does .* mean\b`)},
	{CategoryScripture, "where", regexp.MustCompile(`(?i)^where (?:is|was|were|are)\b`)},
	{CategoryScripture, "where", regexp.MustCompile(`(?i)^locate\b`)},
	{CategoryScripture, "where", regexp.MustCompile(`(?i)\bgeography of\b`)},
	{CategoryScripture, "where", regexp.MustCompile(`(?i)\bwhere did .* happen\b`)},
	{CategoryScripture, "when", regexp.MustCompile(`(?i)^when (?:did|was|were|is)\b`)},
	{CategoryScripture, "when", regexp.MustCompile(`(?i)\btimeline of\b`)},
	{CategoryScripture, "when", regexp.MustCompile(`(?i)\bdate of\b`)},
	{CategoryScripture, "when", regexp.MustCompile(`(?i)\bwhat year\b`)},
	{CategoryScripture, "why", regexp.MustCompile(`(?i)^why (?:did|does|is|was)\b`)},
	{CategoryScripture, "why", regexp.MustCompile(`(?i)\breason (?:for|behind)\b`)},
	{CategoryScripture, "why", regexp.MustCompile(`(?i)\bwhat caused\b`)},
	{CategoryScripture, "interpretation", regexp.MustCompile(`(?i)\binterpret\b`)},
	{CategoryScripture, "interpretation", regexp.MustCompile(`(?i)\bexplain\b.*(?:verse|passage|chapter|scripture)\b`)},
	{CategoryScripture, "interpretation", regexp.MustCompile(`(?i)\bwhat does .* mean\?$`)},
	{CategoryScripture, "interpretation", regexp.MustCompile(`(?i)\bexegesis of\b`)},
	{CategoryScripture, "interpretation", regexp.MustCompile(`(?i)\bmeaning of .* verse\b`)},
	{CategoryScripture, "interpretation", regexp.MustCompile(`(?i)\bbreak down\b`)},
	{CategoryScripture, "language", regexp.MustCompile(`(?i)\b(?:greek|hebrew|aramaic|original language)\b`)},
	{CategoryScripture, "language", regexp.MustCompile(`(?i)\bwhat (?:is|does) the (?:greek|hebrew)\b`)},
	{CategoryScripture, "language", regexp.MustCompile(`(?i)\b(?:lxx|septuagint) (?:phrasing|wording|translation)\b`)},
	{CategoryScripture, "language", regexp.MustCompile(`(?i)\bstrong['’]?s\b`)},
	{CategoryScripture, "language", regexp.MustCompile(`(?i)\bmorphology\b`)},
	{CategoryScripture, "language", regexp.MustCompile(`(?i)\bword study\b`)},
	{CategoryScripture, "cross_reference", regexp.MustCompile(`(?i)\bcross[- ]?ref(?:erence)?s?\b`)},
	{CategoryScripture, "cross_reference", regexp.MustCompile(`(?i)\brelated (?:verses|passages)\b`)},
	{CategoryScripture, "cross_reference", regexp.MustCompile(`(?i)\bshow (?:me )?(?:all )?verses (?:about|on)\b`)},
	{CategoryScripture, "cross_reference", regexp.MustCompile(`(?i)\bwhere (?:else|in scripture)\b`)},
	{CategoryScripture, "cross_reference", regexp.MustCompile(`(?i)\bparallel passages\b`)},
	{CategoryScripture, "compare_translations", regexp.MustCompile(`(?i)\bcompare (?:translations|versions)\b`)},
	{CategoryScripture, "compare_translations", regexp.MustCompile(`(?i)\b(?:kjv|niv|esv|nasb|nlt|web|asv) vs (?:kjv|niv|esv|nasb|nlt|web|asv)\b`)},
	{CategoryScripture, "compare_translations", regexp.MustCompile(`(?i)\b(?:kjv|niv|esv|nasb|nlt) and (?:lxx|septuagint|masoretic|wlc)\b`)},
	{CategoryScripture, "compare_translations", regexp.MustCompile(`(?i)\bdifferences? between\b.*\b(?:translations?|versions?)\b`)},
	{CategoryScripture, "compare_translations", regexp.MustCompile(`(?i)\bside[- ]?by[- ]?side\b`)},

	// theology
	{CategoryTheology, "doctrine", regexp.MustCompile(`(?i)\b(?:doctrine|doctrinal|systematic theology)\b`)},
	{CategoryTheology, "doctrine", regexp.MustCompile(`(?i)\bwhat (?:is|does) (?:the bible|scripture) (?:say|teach) about\b`)},
	{CategoryTheology, "doctrine", regexp.MustCompile(`(?i)\b(?:trinity|atonement|justification|sanctification|glorification)\b`)},
	{CategoryTheology, "doctrine", regexp.MustCompile(`(?i)\b(?:election|predestination|free will)\b`)},
	{CategoryTheology, "christology", regexp.MustCompile(`(?i)\b(?:christology|nature of christ|deity of christ)\b`)},
	{CategoryTheology, "christology", regexp.MustCompile(`(?i)\b(?:was|is) jesus (?:god|divine|human|man)\b`)},
	{CategoryTheology, "christology", regexp.MustCompile(`(?i)\bhypostatic union\b`)},
	{CategoryTheology, "christology", regexp.MustCompile(`(?i)\bfirstborn of (?:all )?creation\b`)},
	{CategoryTheology, "pneumatology", regexp.MustCompile(`(?i)\bholy spirit\b`)},
	{CategoryTheology, "pneumatology", regexp.MustCompile(`(?i)\bpneumatology\b`)},
	{CategoryTheology, "pneumatology", regexp.MustCompile(`(?i)\btongues\b`)},
	{CategoryTheology, "pneumatology", regexp.MustCompile(`(?i)\bgifts of the spirit\b`)},
	{CategoryTheology, "soteriology", regexp.MustCompile(`(?i)\bsalvation\b`)},
	{CategoryTheology, "soteriology", regexp.MustCompile(`(?i)\bhow (?:do|does|can) (?:someone|people|one) (?:get|be) saved\b`)},
	{CategoryTheology, "soteriology", regexp.MustCompile(`(?i)\beternal security\b`)},
	{CategoryTheology, "soteriology", regexp.MustCompile(`(?i)\bonce saved always saved\b`)},
	{CategoryTheology, "ecclesiology", regexp.MustCompile(`(?i)\bchurch\b`)},
	{CategoryTheology, "ecclesiology", regexp.MustCompile(`(?i)\becclesia\b`)},
	{CategoryTheology, "ecclesiology", regexp.MustCompile(`(?i)\bwomen (?:pastors?|elders?|teachers?)\b`)},
	{CategoryTheology, "eschatology", regexp.MustCompile(`(?i)\bend times\b`)},
	{CategoryTheology, "eschatology", regexp.MustCompile(`(?i)\beschatology\b`)},
	{CategoryTheology, "eschatology", regexp.MustCompile(`(?i)\b(?:rapture|tribulation|millennium|second coming)\b`)},
	{CategoryTheology, "eschatology", regexp.MustCompile(`(?i)\bman of lawlessness\b`)},
	{CategoryTheology, "eschatology", regexp.MustCompile(`(?i)\bantichrist\b`)},

	// history
	{CategoryHistory, "early_church", regexp.MustCompile(`(?i)\bearly church\b`)},
	{CategoryHistory, "early_church", regexp.MustCompile(`(?i)\b(?:apostolic|church) fathers\b`)},
	{CategoryHistory, "early_church", regexp.MustCompile(`(?i)\bwhat did (?:the )?early (?:church|christians) believe\b`)},
	{CategoryHistory, "early_church", regexp.MustCompile(`(?i)\b(?:nicene|chalcedon|constantinople) (?:council|creed)\b`)},
	{CategoryHistory, "jewish_background", regexp.MustCompile(`(?i)\bjewish (?:background|context|customs?|tradition)\b`)},
	{CategoryHistory, "jewish_background", regexp.MustCompile(`(?i)\bsynagogue\b`)},
	{CategoryHistory, "jewish_background", regexp.MustCompile(`(?i)\b(?:pharisees?|sadducees?|essenes?)\b`)},
	{CategoryHistory, "jewish_background", regexp.MustCompile(`(?i)\bsecond temple\b`)},
	{CategoryHistory, "ancient_near_east", regexp.MustCompile(`(?i)\b(?:assyria|babylon|egypt|persia|rome)\b`)},
	{CategoryHistory, "ancient_near_east", regexp.MustCompile(`(?i)\bcanaanite\b`)},
	{CategoryHistory, "ancient_near_east", regexp.MustCompile(`(?i)\bancient near east\b`)},
	{CategoryHistory, "ancient_near_east", regexp.MustCompile(`(?i)\b(?:mesopotamia|levant)\b`)},
	{CategoryHistory, "manuscript_history", regexp.MustCompile(`(?i)\b(?:manuscript|codex|papyri)\b`)},
	{CategoryHistory, "manuscript_history", regexp.MustCompile(`(?i)\b(?:sinaiticus|vaticanus|alexandrinus)\b`)},
	{CategoryHistory, "manuscript_history", regexp.MustCompile(`(?i)\btextual (?:criticism|variant|history)\b`)},
	{CategoryHistory, "manuscript_history", regexp.MustCompile(`(?i)\blonger ending of mark\b`)},

	// apologetics
	{CategoryApologetics, "reliability", regexp.MustCompile(`(?i)\b(?:is|are) (?:the )?bible (?:reliable|trustworthy|accurate)\b`)},
	{CategoryApologetics, "reliability", regexp.MustCompile(`(?i)\bcontradiction(?:s)?\b`)},
	{CategoryApologetics, "reliability", regexp.MustCompile(`(?i)\berror(?:s)? in (?:the )?bible\b`)},
	{CategoryApologetics, "reliability", regexp.MustCompile(`(?i)\bdid jesus (?:really )?rise\b`)},
	{CategoryApologetics, "reliability", regexp.MustCompile(`(?i)\bresurrection (?:evidence|proof)\b`)},
	{CategoryApologetics, "moral_objections", regexp.MustCompile(`(?i)\bwhy did god (?:allow|command|permit)\b`)},
	{CategoryApologetics, "moral_objections", regexp.MustCompile(`(?i)\b(?:slavery|genocide|killing) in (?:the )?bible\b`)},
	{CategoryApologetics, "moral_objections", regexp.MustCompile(`(?i)\bconquest of canaan\b`)},
	{CategoryApologetics, "moral_objections", regexp.MustCompile(`(?i)\bold testament violence\b`)},
	{CategoryApologetics, "science", regexp.MustCompile(`(?i)\b(?:science|evolution|big bang|age of earth)\b`)},
	{CategoryApologetics, "science", regexp.MustCompile(`(?i)\bdoes (?:the )?bible contradict science\b`)},
	{CategoryApologetics, "science", regexp.MustCompile(`(?i)\bgenesis (?:creation|days)\b`)},

	// practical
	{CategoryPractical, "lifestyle", regexp.MustCompile(`(?i)\bshould (?:christians?|i|we)\b`)},
	{CategoryPractical, "lifestyle", regexp.MustCompile(`(?i)\b(?:is|are) .* (?:a )?sin\b`)},
	{CategoryPractical, "lifestyle", regexp.MustCompile(`(?i)\b(?:alcohol|drinking|gambling|smoking)\b`)},
	{CategoryPractical, "lifestyle", regexp.MustCompile(`(?i)\bchristian living\b`)},
	{CategoryPractical, "relationships", regexp.MustCompile(`(?i)\b(?:marriage|divorce|dating|singleness)\b`)},
	{CategoryPractical, "relationships", regexp.MustCompile(`(?i)\bhow (?:should|do) i (?:forgive|love)\b`)},
	{CategoryPractical, "relationships", regexp.MustCompile(`(?i)\brelationship(?:s)?\b`)},
	{CategoryPractical, "spiritual_growth", regexp.MustCompile(`(?i)\bhow (?:do|can) i (?:overcome|grow|read|pray)\b`)},
	{CategoryPractical, "spiritual_growth", regexp.MustCompile(`(?i)\bspiritual (?:growth|discipline|formation)\b`)},
	{CategoryPractical, "spiritual_growth", regexp.MustCompile(`(?i)\btemptation\b`)},
	{CategoryPractical, "spiritual_growth", regexp.MustCompile(`(?i)\bhow (?:should|do) i read (?:the )?bible\b`)},

	// pastoral
	{CategoryPastoral, "emotional", regexp.MustCompile(`(?i)\b(?:depression|anxiety|fear|worry|grief|suffering)\b`)},
	{CategoryPastoral, "emotional", regexp.MustCompile(`(?i)\bhow can i trust god\b`)},
	{CategoryPastoral, "emotional", regexp.MustCompile(`(?i)\bwhy (?:does|did) god allow (?:this|suffering)\b`)},
	{CategoryPastoral, "guidance", regexp.MustCompile(`(?i)\bhow (?:do|can) i know god['’]?s will\b`)},
	{CategoryPastoral, "guidance", regexp.MustCompile(`(?i)\b(?:calling|vocation|direction)\b`)},
	{CategoryPastoral, "guidance", regexp.MustCompile(`(?i)\bwhat should i do\b`)},

	// comparative religion
	{CategoryComparative, "other_religions", regexp.MustCompile(`(?i)\b(?:islam|muslim|judaism|hindu|buddhism|mormon|jehovah)\b`)},
	{CategoryComparative, "other_religions", regexp.MustCompile(`(?i)\bwhat do(?:es)? .* teach\b`)},
	{CategoryComparative, "other_religions", regexp.MustCompile(`(?i)\b(?:christianity|christian) vs\b`)},
	{CategoryComparative, "other_religions", regexp.MustCompile(`(?i)\bcompare (?:christianity|christian faith) (?:to|with)\b`)},
	{CategoryComparative, "cults", regexp.MustCompile(`(?i)\b(?:cult(?:s)?|heresy|heresies|gnosticism)\b`)},
	{CategoryComparative, "cults", regexp.MustCompile(`(?i)\b(?:jehovah['’]?s witnesses?|mormon(?:s|ism)?|lds)\b`)},

	// paul
	{CategoryPaul, "general", regexp.MustCompile(`(?i)\b(?:did|why did|was) paul\b`)},
	{CategoryPaul, "general", regexp.MustCompile(`(?i)\bpaul['’]?s (?:journeys?|missions?|letters?|epistles?|ministry)\b`)},
	{CategoryPaul, "general", regexp.MustCompile(`(?i)\bthorn in (?:the )?flesh\b`)},
}

// ambiguousPatterns short-circuit classification into a clarification
// request before any rule runs.
var ambiguousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^explain this$`),
	regexp.MustCompile(`(?i)^what does this mean$`),
	regexp.MustCompile(`(?i)^tell me about$`),
	regexp.MustCompile(`(?i)^show me$`),
	regexp.MustCompile(`(?i)^this verse$`),
}

// negativeKeywords veto a subcategory when the question contains a term
// that signals a different intent (e.g. "who is Paul" is biography, not
// soteriology even though "salvation" rules could fire elsewhere).
var negativeKeywords = map[string][]string{
	"soteriology":     {"paul", "who is", "biographical", "history of"},
	"cross_reference": {"who is", "when did", "where is"},
}

// ClarificationSuggestion is returned with ambiguous classifications.
const ClarificationSuggestion = "Please provide more context. Do you want: historical background, linguistic analysis, doctrinal interpretation, or practical application?"

var interrogativeStart = regexp.MustCompile(`(?i)^(?:who|what|where|when|why|how|is|are|was|were|did|does|can|should)\b`)
var theologyTerms = regexp.MustCompile(`(?i)\b(?:doctrine|biblical|scriptural|theological)\b`)

// Classify assigns a question to a category with a confidence score.
// Ambiguous forms win before anything else; a parseable verse reference
// short-circuits to scripture/reference_lookup at full confidence.
func Classify(query string) Classification {
	text := strings.TrimSpace(query)
	if text == "" {
		return Classification{Category: CategoryUnknown}
	}

	for _, p := range ambiguousPatterns {
		if p.MatchString(text) {
			return Classification{
				Category:           CategoryAmbiguous,
				Confidence:         1.0,
				NeedsClarification: true,
				Suggestion:         ClarificationSuggestion,
			}
		}
	}

	if r, ok := ref.Parse(text); ok {
		r.Book = ref.ResolveBook(r.Book)
		return Classification{
			Category:    CategoryScripture,
			Subcategory: "reference_lookup",
			Confidence:  1.0,
			Ref:         &r,
		}
	}

	lower := strings.ToLower(text)
	best := Classification{Category: CategoryGeneral}
	for _, rl := range rules {
		if !rl.pattern.MatchString(text) {
			continue
		}
		if vetoed(rl.subcategory, lower) {
			continue
		}
		c := confidence(text, rl.category)
		if c > best.Confidence {
			best = Classification{Category: rl.category, Subcategory: rl.subcategory, Confidence: c}
		}
	}
	best.Keywords = ExtractKeywords(text)
	return best
}

func vetoed(subcategory, lower string) bool {
	for _, neg := range negativeKeywords[subcategory] {
		if strings.Contains(lower, neg) {
			return true
		}
	}
	return false
}

// confidence starts at 0.7 for any rule hit and adds 0.1 each for a
// question mark, an interrogative opener, and (for theology) an
// explicit doctrinal term, capped at 1.0.
func confidence(text, category string) float64 {
	c := 0.7
	if strings.Contains(text, "?") {
		c += 0.1
	}
	if interrogativeStart.MatchString(text) {
		c += 0.1
	}
	if category == CategoryTheology && theologyTerms.MatchString(text) {
		c += 0.1
	}
	if c > 1.0 {
		c = 1.0
	}
	return c
}

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"what": {}, "who": {}, "where": {}, "when": {}, "why": {}, "how": {},
	"does": {}, "do": {}, "did": {}, "can": {}, "should": {}, "would": {},
	"about": {}, "in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
}

var nonWordPattern = regexp.MustCompile(`[^\w\s]`)

// ExtractKeywords pulls the meaningful terms from a question: lowercase
// words over two characters that are not stop words, deduplicated in
// first-seen order.
func ExtractKeywords(text string) []string {
	cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(text), " ")
	seen := make(map[string]struct{})
	var out []string
	for _, w := range strings.Fields(cleaned) {
		if len(w) <= 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
