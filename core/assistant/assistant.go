// Package assistant assembles the question-answering pipeline: it
// resolves follow-ups, classifies and routes questions, fetches verse
// text through the provider fallback chains, and synthesizes neutral
// answers with citations.
//
// Assistant.Answer is the single public entry point the API and CLI
// layers depend on. Nothing in it is fatal: every failure mode
// degrades to an alternate data source or a clarification answer.
package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/SharpAssistant/core/classify"
	"github.com/FocuswithJustin/SharpAssistant/core/index"
	"github.com/FocuswithJustin/SharpAssistant/core/provider"
	"github.com/FocuswithJustin/SharpAssistant/core/ref"
	"github.com/FocuswithJustin/SharpAssistant/core/search"
	"github.com/FocuswithJustin/SharpAssistant/core/text"
	"github.com/FocuswithJustin/SharpAssistant/internal/logging"
)

// Turn roles in conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Answer types carried in Metadata.Type.
const (
	TypeMapLocation = "map_location"
	TypeFeastDay    = "feast_day"
	TypeWordStudy   = "word_study"
	TypeUserStats   = "user_stats"
	TypeCompare     = "compare_translations"
	TypeContext     = "context"
	TypeAncient     = "ancient"
	TypeReference   = "reference"
	TypeDefinition  = "definition"
	TypeReligion    = "religion"
	TypeRetrieval   = "retrieval"
)

// Citation names one source a quoted answer draws on.
type Citation struct {
	Ref         string `json:"ref"`
	Translation string `json:"translation"`
}

// AncientVerse carries the tokenized words of one manuscript verse for
// rendering layers that display lemma and morphology.
type AncientVerse struct {
	Ref   string      `json:"ref"`
	Words []text.Word `json:"words,omitempty"`
}

// Metadata describes how an answer was produced. The follow-up
// resolver reads it back on the next turn.
type Metadata struct {
	RequestID          string                   `json:"request_id,omitempty"`
	Type               string                   `json:"type,omitempty"`
	NeedsClarification bool                     `json:"needs_clarification,omitempty"`
	Suggestion         string                   `json:"suggestion,omitempty"`
	Classification     *classify.Classification `json:"classification,omitempty"`
	Strategy           *classify.Strategy       `json:"strategy,omitempty"`
	Analysis           *classify.Analysis       `json:"analysis,omitempty"`
	Location           string                   `json:"location,omitempty"`
	ModernCountry      string                   `json:"modern_country,omitempty"`
	Headword           string                   `json:"headword,omitempty"`
	PersonLookup       bool                     `json:"person_lookup,omitempty"`
	DefinitionLookup   bool                     `json:"definition_lookup,omitempty"`
	Suggestions        []string                 `json:"suggestions,omitempty"`
	Apocrypha          bool                     `json:"apocrypha,omitempty"`
	Ancient            text.TranslationID       `json:"ancient,omitempty"`
	AncientVerses      []AncientVerse           `json:"ancient_verses,omitempty"`
	SinaiticusMissing  bool                     `json:"sinaiticus_missing,omitempty"`
	Religion           string                   `json:"religion,omitempty"`
}

// Response is one answered query.
type Response struct {
	Answer    string     `json:"answer"`
	Citations []Citation `json:"citations"`
	Metadata  Metadata   `json:"metadata"`
}

// Turn is one message in the conversation history.
type Turn struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	Citations []Citation `json:"citations,omitempty"`
	Metadata  *Metadata  `json:"metadata,omitempty"`
}

// Context carries per-query caller state.
type Context struct {
	UserID              string             `json:"user_id,omitempty"`
	SelectedTranslation text.TranslationID `json:"selected_translation,omitempty"`
	History             []Turn             `json:"history,omitempty"`
}

// Stats summarizes a user's quiz and streak standing.
type Stats struct {
	TotalQuizzes   int     `json:"total_quizzes"`
	TotalCorrect   int     `json:"total_correct"`
	TotalIncorrect int     `json:"total_incorrect"`
	Accuracy       float64 `json:"accuracy"`
	CurrentStreak  int     `json:"current_streak"`
	TotalXP        int     `json:"total_xp"`
}

// StatsProvider supplies user statistics owned by the surrounding
// application. A nil provider disables the stats intent gracefully.
type StatsProvider interface {
	OverallStats(ctx context.Context, userID string) (Stats, error)
}

// Config wires the assistant's data sources. Stats is optional; the
// rest must be non-nil.
type Config struct {
	Fetcher    *provider.Fetcher
	Search     *search.VerseIndex
	CrossRefs  *index.CrossReferenceIndex
	Dictionary *index.DictionaryIndex
	Geo        *index.GeoIndex
	Religions  *index.ReligionIndex
	Stats      StatsProvider
}

// Assistant is the query orchestrator.
type Assistant struct {
	fetcher   *provider.Fetcher
	search    *search.VerseIndex
	crossRefs *index.CrossReferenceIndex
	dict      *index.DictionaryIndex
	geo       *index.GeoIndex
	religions *index.ReligionIndex
	stats     StatsProvider
	persona   *Personality
}

// New builds an assistant over the configured sources.
func New(cfg Config) *Assistant {
	return &Assistant{
		fetcher:   cfg.Fetcher,
		search:    cfg.Search,
		crossRefs: cfg.CrossRefs,
		dict:      cfg.Dictionary,
		geo:       cfg.Geo,
		religions: cfg.Religions,
		stats:     cfg.Stats,
		persona:   NewPersonality(),
	}
}

var (
	tellMeMorePattern = regexp.MustCompile(`(?i)^tell me more about\s+(.+)`)
	whoLeadPattern    = regexp.MustCompile(`(?i)^who\s+(?:is|was|were|are)\s+`)
	whatLeadPattern   = regexp.MustCompile(`(?i)^what\s+(?:is|was|are|were)\s+`)
	fullDetailPattern = regexp.MustCompile(`(?i)\b(?:full|complete|detailed|everything|all about|tell me more|entire|whole)\b`)

	masoreticPattern  = regexp.MustCompile(`(?i)\b(?:masoretic|wlc|hebrew\s+(?:text|mt)|original\s+hebrew)\b`)
	septuagintPattern = regexp.MustCompile(`(?i)\b(?:lxx|septuagint|old\s+greek|rahlfs)\b`)
	sinaiticusPattern = regexp.MustCompile(`(?i)\b(?:sinaiticus|codex\s+sinaiticus|aleph)\b`)
)

// Answer resolves one user message to a response. The only errors it
// returns are context cancellation; every domain failure degrades to
// an answer string.
func (a *Assistant) Answer(ctx context.Context, message string, qctx Context) (*Response, error) {
	start := time.Now()
	requestID := uuid.NewString()
	ctx = logging.WithRequestID(ctx, requestID)

	resp, intent, err := a.answer(ctx, message, qctx)
	if err != nil {
		return nil, err
	}
	resp.Metadata.RequestID = requestID
	if resp.Metadata.Classification != nil {
		s := classify.ResponseStrategy(*resp.Metadata.Classification)
		resp.Metadata.Strategy = &s
	}
	logging.QueryEvent(ctx, intent, resp.Metadata.Type, time.Since(start))
	return resp, nil
}

// answer runs the branch ladder. The second return is the routed
// intent, for the query log.
func (a *Assistant) answer(ctx context.Context, message string, qctx Context) (*Response, string, error) {
	// Follow-up resolution runs first so one-word continuations like
	// "it" pick up their subject before the clarification gate sees
	// them.
	resolved := ResolveFollowUp(message, qctx.History)

	// Malformed questions are turned back before any retrieval.
	if msg, needs := classify.ClarificationMessage(resolved); needs {
		analysis := classify.Analyze(resolved)
		return &Response{
			Answer:    msg,
			Citations: []Citation{},
			Metadata: Metadata{
				NeedsClarification: true,
				Suggestion:         analysis.Suggestion,
				Analysis:           &analysis,
			},
		}, "clarify", nil
	}

	// Explicit "tell me more about X" goes straight to the full
	// dictionary entry.
	if m := tellMeMorePattern.FindStringSubmatch(resolved); m != nil {
		if resp := a.fullDefinition(strings.TrimSpace(m[1])); resp != nil {
			return resp, "define", nil
		}
	}

	if DetectAmbiguousQuestion(resolved) {
		return ClarificationPrompt(), "clarify", nil
	}

	classification := classify.Classify(resolved)
	if classification.NeedsClarification {
		resp := ClarificationPrompt()
		resp.Metadata.Classification = &classification
		return resp, "clarify", nil
	}

	routed := classify.RouteIntent(resolved)
	query := routed.Query

	parsed, parsedOK := ref.Parse(message)
	if parsedOK {
		query = parsed.String()
	}

	if IsFeastQuery(message) {
		if ans, ok := AnswerFeastQuery(message); ok {
			return &Response{
				Answer:    a.persona.Enhance(ans, classification, message),
				Citations: []Citation{},
				Metadata:  Metadata{Type: TypeFeastDay, Classification: &classification},
			}, routed.Type, nil
		}
	}

	if a.mapIntended(routed, qctx.History, resolved != message) {
		if resp := a.mapLocation(routed.Query, classification, message); resp != nil {
			return resp, classify.IntentMapLocation, nil
		}
	}

	if routed.Type == classify.IntentWordStudy {
		if entry, ok := index.LookupWordStudy(query); ok {
			ans := fmt.Sprintf("Word Study: %s (%s) — Strong's %s\nMeaning: %s\nNotes: %s\n\nHint: Ask for passages that use this term to see usage in context.",
				entry.Lemma, entry.Language, entry.Strong, entry.Gloss, entry.Notes)
			return &Response{
				Answer:    ApplyNeutrality(ans),
				Citations: []Citation{},
				Metadata:  Metadata{Type: TypeWordStudy, Headword: entry.Lemma},
			}, routed.Type, nil
		}
	}

	if routed.Type == classify.IntentUserStats {
		return a.userStats(ctx, qctx.UserID), routed.Type, nil
	}

	if routed.Type == classify.IntentCompareTranslations && parsedOK && parsed.Verse > 0 {
		resp, err := a.compareTranslations(ctx, parsed)
		if err != nil {
			return nil, "", err
		}
		if resp != nil {
			return resp, routed.Type, nil
		}
	}

	if routed.Type == classify.IntentContext && parsedOK {
		resp, err := a.passageContext(ctx, parsed, qctx.SelectedTranslation)
		if err != nil {
			return nil, "", err
		}
		return resp, routed.Type, nil
	}

	// Explicit manuscript requests return early with token metadata.
	if parsedOK && parsed.Verse > 0 {
		switch {
		case masoreticPattern.MatchString(message):
			resp, err := a.ancient(ctx, parsed, text.WLC, "WLC Masoretic")
			if err != nil {
				return nil, "", err
			}
			if resp != nil {
				return resp, routed.Type, nil
			}
		case septuagintPattern.MatchString(message):
			resp, err := a.ancient(ctx, parsed, text.LXX, "LXX Septuagint")
			if err != nil {
				return nil, "", err
			}
			if resp != nil {
				return resp, routed.Type, nil
			}
		case sinaiticusPattern.MatchString(message):
			resp, err := a.sinaiticus(ctx, parsed, qctx.SelectedTranslation)
			if err != nil {
				return nil, "", err
			}
			if resp != nil {
				return resp, routed.Type, nil
			}
		}
	}

	if routed.Type == classify.IntentReference && parsedOK && parsed.Verse > 0 {
		resp, err := a.directReference(ctx, parsed, qctx.SelectedTranslation)
		if err != nil {
			return nil, "", err
		}
		if resp != nil {
			return resp, routed.Type, nil
		}
	}

	if classification.Category == classify.CategoryScripture && classification.Subcategory == "who" {
		resp, err := a.personLookup(ctx, message, classification)
		if err != nil {
			return nil, "", err
		}
		if resp != nil {
			return resp, routed.Type, nil
		}
	}

	if classification.Category == classify.CategoryScripture && classification.Subcategory == "what_definition" {
		resp, err := a.definitionLookup(ctx, message, classification)
		if err != nil {
			return nil, "", err
		}
		if resp != nil {
			return resp, routed.Type, nil
		}
	}

	if routed.Type == classify.IntentReligion && a.religions != nil {
		if ans, religion, ok := a.religions.Apologetic(query); ok {
			return &Response{
				Answer:    ans,
				Citations: []Citation{},
				Metadata:  Metadata{Type: TypeReligion, Religion: religion.Name, Classification: &classification},
			}, routed.Type, nil
		}
	}

	resp, err := a.retrievalFallback(ctx, message, query, routed, classification, parsedOK, parsed)
	if err != nil {
		return nil, "", err
	}
	return resp, routed.Type, nil
}

// mapIntended reports whether the map branch should run: either the
// router said so, or a follow-up was resolved against a map answer.
func (a *Assistant) mapIntended(routed classify.Intent, history []Turn, wasResolved bool) bool {
	if a.geo == nil {
		return false
	}
	if routed.Type == classify.IntentMapLocation {
		return true
	}
	if !wasResolved {
		return false
	}
	last := lastAssistantTurn(history)
	return last != nil && last.Metadata != nil && last.Metadata.Type == TypeMapLocation
}

// mapLocation answers geography questions from the location index.
func (a *Assistant) mapLocation(query string, c classify.Classification, original string) *Response {
	locations := a.geo.Search(query)
	if len(locations) == 0 {
		return nil
	}
	loc := locations[0].Location

	var b strings.Builder
	fmt.Fprintf(&b, "📍 **%s**", loc.Name)
	if loc.ModernCountry != "" {
		fmt.Fprintf(&b, "\n\n**Present Day Location:** %s", loc.ModernCountry)
	}
	if loc.Region != "" {
		fmt.Fprintf(&b, "\n**Biblical Region:** %s", loc.Region)
	}
	if loc.Coordinates != nil {
		fmt.Fprintf(&b, "\n**Coordinates:** %g°N, %g°E", loc.Coordinates.Lat, loc.Coordinates.Lng)
	}
	if loc.Description != "" {
		fmt.Fprintf(&b, "\n\n%s", loc.Description)
	}
	if len(loc.Events) > 0 {
		b.WriteString("\n\n**Biblical Significance:**")
		for _, event := range loc.Events {
			fmt.Fprintf(&b, "\n• %s", event)
		}
	}
	if len(loc.PrimaryScriptures) > 0 {
		fmt.Fprintf(&b, "\n\n**Key Passages:** %s", strings.Join(loc.PrimaryScriptures, ", "))
	}

	return &Response{
		Answer:    a.persona.Enhance(b.String(), c, original),
		Citations: []Citation{},
		Metadata: Metadata{
			Type:          TypeMapLocation,
			Location:      loc.Name,
			ModernCountry: loc.ModernCountry,
		},
	}
}

// userStats formats the injected stats provider's summary.
func (a *Assistant) userStats(ctx context.Context, userID string) *Response {
	if a.stats == nil {
		return &Response{
			Answer:    "I don't have access to your study statistics in this session.",
			Citations: []Citation{},
			Metadata:  Metadata{Type: TypeUserStats},
		}
	}
	stats, err := a.stats.OverallStats(ctx, userID)
	if err != nil {
		logging.WarnContext(ctx, "stats provider failed", "error", err)
		return &Response{
			Answer:    "Could not retrieve user statistics.",
			Citations: []Citation{},
			Metadata:  Metadata{Type: TypeUserStats},
		}
	}
	ans := fmt.Sprintf("Here are your current stats:\n\n"+
		"**Current Streak:** %d days\n"+
		"**Total XP:** %d\n"+
		"**Total Quizzes Taken:** %d\n"+
		"**Overall Accuracy:** %g%%\n\n"+
		"Keep up the great work!",
		stats.CurrentStreak, stats.TotalXP, stats.TotalQuizzes, stats.Accuracy)
	return &Response{
		Answer:    ans,
		Citations: []Citation{},
		Metadata:  Metadata{Type: TypeUserStats},
	}
}

// compareSources is the display order for translation comparison:
// ancient manuscripts first, then the apocrypha corpus, then English
// translations oldest-text-first.
var compareSources = []struct {
	id    text.TranslationID
	label string
}{
	{text.WLC, "WLC - Hebrew Masoretic"},
	{text.LXX, "LXX - Greek Septuagint"},
	{text.APOC, "APOC"},
	{text.KJV, "KJV"},
	{text.WEB, "WEB"},
	{text.ESV, "ESV"},
	{text.ASV, "ASV"},
	{text.BISHOPS, "BISHOPS"},
	{text.GENEVA, "GENEVA"},
}

// compareTranslations renders the verse across every available source.
func (a *Assistant) compareTranslations(ctx context.Context, r ref.Ref) (*Response, error) {
	found := make(map[text.TranslationID]text.Verse)
	var order []text.TranslationID

	isOT := ref.IsOldTestament(r.Book)
	for _, src := range compareSources {
		if src.id.IsAncient() && !isOT {
			continue
		}
		var verses []text.Verse
		var err error
		if src.id == text.APOC {
			if a.fetcher.Apocrypha() == nil || !provider.IsApocryphaBook(r.Book) {
				continue
			}
			verses, err = a.fetcher.Apocrypha().GetVerses(ctx, r.Book, r.Chapter, r.Verse, r.VerseEnd)
		} else {
			verses, err = a.fetcher.FetchDirect(ctx, r, src.id)
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			continue
		}
		if len(verses) > 0 {
			found[src.id] = verses[0]
			order = append(order, src.id)
		}
	}
	if len(order) == 0 {
		return nil, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Compare translations for %s:", r.String())
	var names []string
	for _, src := range compareSources {
		v, ok := found[src.id]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n\n[%s] %s", src.label, v.Text)
		names = append(names, src.id.String())
	}
	fmt.Fprintf(&b, "\n\nTip: Ask \"cross refs for %s\" or \"word study on <term>\".", r.String())

	_, hasApoc := found[text.APOC]
	return &Response{
		Answer:    ApplyNeutrality(b.String()),
		Citations: []Citation{{Ref: r.String(), Translation: strings.Join(names, "/")}},
		Metadata:  Metadata{Type: TypeCompare, Apocrypha: hasApoc},
	}, nil
}

// passageContext gives a concise framing answer around one reference.
func (a *Assistant) passageContext(ctx context.Context, r ref.Ref, preferred text.TranslationID) (*Response, error) {
	key := r.String()
	var primary *text.Verse
	if r.Verse > 0 {
		verses, err := a.fetcher.FetchPreferred(ctx, r, preferred)
		if err != nil {
			return nil, err
		}
		if len(verses) > 0 {
			primary = &verses[0]
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Passage context for %s (concise):", key)
	if primary != nil {
		fmt.Fprintf(&b, "\n\n%q — %s", primary.Text, key)
	}
	b.WriteString("\n\nFor full literary context, read the surrounding paragraph in your preferred translation and consider cross-references.")
	b.WriteString(a.relatedPassages(key))

	translation := "Unknown"
	if primary != nil {
		translation = primary.Translation.String()
	}
	return &Response{
		Answer:    ApplyNeutrality(b.String()),
		Citations: []Citation{{Ref: key, Translation: translation}},
		Metadata:  Metadata{Type: TypeContext},
	}, nil
}

// ancient answers an explicit manuscript request from one source.
func (a *Assistant) ancient(ctx context.Context, r ref.Ref, id text.TranslationID, header string) (*Response, error) {
	verses, err := a.fetcher.FetchDirect(ctx, r, id)
	if err != nil {
		return nil, err
	}
	if len(verses) == 0 {
		return nil, nil
	}
	ans := fmt.Sprintf("[%s]\n%s%s", header, manuscriptBlock(verses), a.relatedPassages(r.String()))
	return &Response{
		Answer:    ApplyNeutrality(ans),
		Citations: verseCitations(verses),
		Metadata:  Metadata{Type: TypeAncient, Ancient: id, AncientVerses: ancientVerses(verses)},
	}, nil
}

// sinaiticus answers Codex Sinaiticus requests, degrading to the LXX
// and then the preferred chain when the verse is not extant.
func (a *Assistant) sinaiticus(ctx context.Context, r ref.Ref, preferred text.TranslationID) (*Response, error) {
	resp, err := a.ancient(ctx, r, text.SINAITICUS, "Codex Sinaiticus")
	if err != nil || resp != nil {
		return resp, err
	}

	lxx, err := a.fetcher.FetchDirect(ctx, r, text.LXX)
	if err != nil {
		return nil, err
	}
	if len(lxx) > 0 {
		ans := fmt.Sprintf("Note: requested verse is not extant in Codex Sinaiticus; showing Septuagint (LXX).\n\n%s%s",
			manuscriptBlock(lxx), a.relatedPassages(r.String()))
		return &Response{
			Answer:    ApplyNeutrality(ans),
			Citations: verseCitations(lxx),
			Metadata:  Metadata{Type: TypeAncient, Ancient: text.LXX, AncientVerses: ancientVerses(lxx), SinaiticusMissing: true},
		}, nil
	}

	verses, err := a.fetcher.FetchPreferred(ctx, r, preferred)
	if err != nil {
		return nil, err
	}
	if len(verses) == 0 {
		return nil, nil
	}
	ans := fmt.Sprintf("Note: requested verse is not extant in Codex Sinaiticus; showing %s.\n\n%s%s",
		verses[0].Translation, formatVersesBlock(verses), a.relatedPassages(r.String()))
	return &Response{
		Answer:    ApplyNeutrality(ans),
		Citations: verseCitations(verses),
		Metadata:  Metadata{Type: TypeAncient, SinaiticusMissing: true},
	}, nil
}

// directReference answers a plain verse reference from the preferred
// translation's fallback chain.
func (a *Assistant) directReference(ctx context.Context, r ref.Ref, preferred text.TranslationID) (*Response, error) {
	verses, err := a.fetcher.FetchPreferred(ctx, r, preferred)
	if err != nil {
		return nil, err
	}
	if len(verses) == 0 {
		return nil, nil
	}

	ans := formatVersesBlock(verses) + a.relatedPassages(r.String())
	// Apocrypha verses carry the KJV label, so the corpus is flagged
	// from the book name rather than the verse translation.
	hasApoc := provider.IsApocryphaBook(r.Book)
	return &Response{
		Answer:    ApplyNeutrality(ans),
		Citations: verseCitations(verses),
		Metadata:  Metadata{Type: TypeReference, Apocrypha: hasApoc},
	}, nil
}

// relatedPassages renders the cross-reference suffix for a reference,
// or an empty string when the index has nothing.
func (a *Assistant) relatedPassages(reference string) string {
	if a.crossRefs == nil {
		return ""
	}
	related := a.crossRefs.Lookup(reference)
	if len(related) == 0 {
		return ""
	}
	return fmt.Sprintf("\n\nRelated passages: %s.", strings.Join(related, ", "))
}

func verseCitations(verses []text.Verse) []Citation {
	citations := make([]Citation, 0, len(verses))
	for _, v := range verses {
		citations = append(citations, verseCitation(v))
	}
	return citations
}

func ancientVerses(verses []text.Verse) []AncientVerse {
	out := make([]AncientVerse, 0, len(verses))
	for _, v := range verses {
		out = append(out, AncientVerse{Ref: v.Reference, Words: v.Words})
	}
	return out
}

// manuscriptBlock quotes manuscript verses with a short attribution
// dash, matching the ancient-request answer layout.
func manuscriptBlock(verses []text.Verse) string {
	blocks := make([]string, 0, len(verses))
	for _, v := range verses {
		blocks = append(blocks, fmt.Sprintf("%q\n- %s (%s)", v.Text, v.Reference, v.Translation))
	}
	return strings.Join(blocks, "\n\n")
}
