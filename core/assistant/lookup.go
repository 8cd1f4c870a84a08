package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/FocuswithJustin/SharpAssistant/core/classify"
	"github.com/FocuswithJustin/SharpAssistant/core/index"
	"github.com/FocuswithJustin/SharpAssistant/core/ref"
	"github.com/FocuswithJustin/SharpAssistant/core/search"
	"github.com/FocuswithJustin/SharpAssistant/core/text"
)

// summaryThreshold is the definition length above which answers show a
// summary with a "tell me more" hint instead of the full entry.
const summaryThreshold = 300

// fullDefinition answers "tell me more about X" with the complete
// dictionary entry, nil when nothing matches.
func (a *Assistant) fullDefinition(term string) *Response {
	entry, ok := a.findDefinition(term, 1)
	if !ok {
		return nil
	}
	headword := entry.Headword
	if headword == "" {
		headword = term
	}
	return &Response{
		Answer:    fmt.Sprintf("📖 %s\n\n%s", headword, entry.Def),
		Citations: []Citation{},
		Metadata:  Metadata{Type: TypeDefinition, DefinitionLookup: true, Headword: headword},
	}
}

// findDefinition escalates exact lookup to prefix then fuzzy search.
func (a *Assistant) findDefinition(term string, fuzzyLimit int) (index.Entry, bool) {
	if a.dict == nil {
		return index.Entry{}, false
	}
	if entry, ok := a.dict.Lookup(term); ok {
		return entry, true
	}
	if len(term) > 3 {
		if entries := a.dict.SearchPrefix(term, 1); len(entries) > 0 {
			return entries[0], true
		}
		if entries := a.dict.SearchFuzzy(term, fuzzyLimit); len(entries) > 0 {
			return entries[0], true
		}
	}
	return index.Entry{}, false
}

// personLookup answers "who is X" from the dictionary with supporting
// passages, the misspelling rescue, and a verse-search fallback. nil
// means the caller should keep descending the branch ladder.
func (a *Assistant) personLookup(ctx context.Context, message string, c classify.Classification) (*Response, error) {
	name := strings.TrimSpace(strings.ReplaceAll(whoLeadPattern.ReplaceAllString(message, ""), "?", ""))
	if name == "" {
		return nil, nil
	}

	entry, found, suggestions := a.lookupWithSuggestions(name)
	if !found && len(suggestions) > 0 {
		hint := fmt.Sprintf("I couldn't find %q, but did you mean: %s?", name, strings.Join(suggestions, ", "))
		return &Response{
			Answer:    ApplyNeutrality(hint),
			Citations: []Citation{},
			Metadata:  Metadata{Classification: &c, Suggestions: suggestions},
		}, nil
	}

	if found {
		headword := entry.Headword
		if headword == "" {
			headword = name
		}
		definition := stripDoubledHeadword(entry.Def, headword)

		useSummary := !wantsFullDefinition(message)
		display := definition
		if useSummary {
			display = summarizeDefinition(definition)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "📖 %s\n\n%s", headword, display)
		if useSummary && len(definition) > summaryThreshold {
			fmt.Fprintf(&b, "\n\n💡 Want more details? Ask \"Tell me more about %s\" for the complete entry.", headword)
		}

		hits, err := a.searchVerses(ctx, name, 3)
		if err != nil {
			return nil, err
		}
		relevant := containingTerm(hits, name)
		if len(relevant) > 0 {
			fmt.Fprintf(&b, "\n\n📜 Key passages mentioning %s:\n", name)
			for _, v := range relevant {
				fmt.Fprintf(&b, "\n• %q\n  — %s (%s)", truncate(v.Text, 100), v.Reference, v.Translation)
			}
		}

		ans := a.persona.Enhance(b.String(), c, message)
		ans = AddPaulContext(ans, message)

		// Factual biographical entries skip the neutrality footer.
		return &Response{
			Answer:    ans,
			Citations: verseCitations(relevant),
			Metadata:  Metadata{Classification: &c, PersonLookup: true, Headword: headword},
		}, nil
	}

	hits, err := a.searchVerses(ctx, name, 5)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📖 About %s:\n\nI found these passages mentioning %s:\n\n", name, name)
	b.WriteString(formatVersesBlock(hits))
	fmt.Fprintf(&b, "\n\nTip: Ask \"show context for %s\" for more details.", hits[0].Reference)
	return &Response{
		Answer:    b.String(),
		Citations: verseCitations(hits),
		Metadata:  Metadata{Classification: &c},
	}, nil
}

// definitionLookup answers "what is X" from the dictionary. nil means
// fall through to retrieval.
func (a *Assistant) definitionLookup(ctx context.Context, message string, c classify.Classification) (*Response, error) {
	term := strings.TrimSpace(strings.ReplaceAll(whatLeadPattern.ReplaceAllString(message, ""), "?", ""))
	if term == "" {
		return nil, nil
	}

	entry, found, suggestions := a.lookupWithSuggestions(term)
	if !found && len(suggestions) > 0 {
		hint := fmt.Sprintf("I couldn't find %q, but did you mean: %s?", term, strings.Join(suggestions, ", "))
		return &Response{
			Answer:    ApplyNeutrality(hint),
			Citations: []Citation{},
			Metadata:  Metadata{Classification: &c, Suggestions: suggestions},
		}, nil
	}
	if !found {
		return nil, nil
	}

	headword := entry.Headword
	if headword == "" {
		headword = term
	}
	useSummary := !wantsFullDefinition(message)
	display := entry.Def
	if useSummary {
		display = summarizeDefinition(entry.Def)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📖 %s", headword)
	if entry.POS != "" {
		fmt.Fprintf(&b, " (%s)", entry.POS)
	}
	fmt.Fprintf(&b, "\n\n%s", display)
	if useSummary && len(entry.Def) > summaryThreshold {
		fmt.Fprintf(&b, "\n\n💡 Want more details? Ask \"Tell me more about %s\" for the complete entry.", headword)
	}

	hits, err := a.searchVerses(ctx, term, 3)
	if err != nil {
		return nil, err
	}
	relevant := containingTerm(hits, term)
	if len(relevant) > 0 {
		b.WriteString("\n\n📜 Biblical usage:\n")
		for _, v := range relevant {
			fmt.Fprintf(&b, "\n• %q\n  — %s (%s)", truncate(v.Text, 100), v.Reference, v.Translation)
		}
	}

	return &Response{
		Answer:    a.persona.Enhance(b.String(), c, message),
		Citations: verseCitations(relevant),
		Metadata:  Metadata{Classification: &c, DefinitionLookup: true, Headword: headword},
	}, nil
}

// lookupWithSuggestions resolves a term exactly, by prefix, then
// fuzzily. When the fuzzy pass finds near-misses but no confident
// match it returns them as "did you mean" suggestions.
func (a *Assistant) lookupWithSuggestions(term string) (index.Entry, bool, []string) {
	if a.dict == nil {
		return index.Entry{}, false, nil
	}
	if entry, ok := a.dict.Lookup(term); ok {
		return entry, true, nil
	}
	if len(term) <= 3 {
		return index.Entry{}, false, nil
	}
	if entries := a.dict.SearchPrefix(term, 1); len(entries) > 0 {
		return entries[0], true, nil
	}
	fuzzy := a.dict.SearchFuzzy(term, 3)
	if len(fuzzy) == 0 {
		return index.Entry{}, false, nil
	}
	// An exact-first-word fuzzy hit is close enough to answer with;
	// otherwise surface the candidates instead of silently guessing.
	if strings.EqualFold(fuzzy[0].Headword, term) {
		return fuzzy[0], true, nil
	}
	suggestions := make([]string, 0, 3)
	for _, e := range fuzzy {
		if e.Headword != "" {
			suggestions = append(suggestions, e.Headword)
		}
		if len(suggestions) == 3 {
			break
		}
	}
	return index.Entry{}, false, suggestions
}

// retrievalFallback is the terminal branch: local verse search plus
// neutral synthesis, with the theology register elevation.
func (a *Assistant) retrievalFallback(ctx context.Context, message, query string, routed classify.Intent, c classify.Classification, parsedOK bool, parsed ref.Ref) (*Response, error) {
	var hits []text.Verse
	if a.search != nil {
		results, err := a.search.Search(ctx, query, search.DefaultLimit)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
		} else {
			for _, res := range results {
				hits = append(hits, res.Verse)
			}
		}
	}

	answer, citations := SynthesizeNeutral(query, hits)

	if routed.Type == classify.IntentTheology {
		answer = elevateTheologyRegister(answer)
		answer += a.terminologyNote(message)
	}

	primaryRef := ""
	if len(hits) > 0 {
		primaryRef = hits[0].Reference
	} else if parsedOK {
		primaryRef = parsed.String()
	}
	if primaryRef != "" {
		answer += a.relatedPassages(primaryRef)
	}

	return &Response{
		Answer:    ApplyNeutrality(answer),
		Citations: citations,
		Metadata:  Metadata{Type: TypeRetrieval, Classification: &c},
	}, nil
}

// elevateTheologyRegister swaps the neutral-reading header for
// hermeneutical advisories on theological prompts.
func elevateTheologyRegister(answer string) string {
	const plain = "How to read these neutrally:"
	const elevated = "Hermeneutical advisories:"
	if strings.Contains(answer, plain) {
		answer = strings.Replace(answer, plain, elevated, 1)
	} else {
		answer += "\n\n" + elevated
	}
	answer += "\n• Situate the pericope within its literary horizon."
	answer += "\n• Compare renderings across traditions (translation families)."
	answer += "\n• Correlate with canonical cross-references (Scripture interpreting Scripture)."
	return answer
}

var termWordPattern = regexp.MustCompile(`[^A-Za-z]+`)

// terminologyNote appends one advanced-term definition drawn from the
// question's longer words, or nothing.
func (a *Assistant) terminologyNote(message string) string {
	if a.dict == nil {
		return ""
	}
	words := termWordPattern.Split(message, -1)
	checked := 0
	for _, w := range words {
		if len(w) <= 6 {
			continue
		}
		if checked++; checked > 3 {
			break
		}
		if entry, ok := a.dict.Lookup(w); ok {
			pos := ""
			if entry.POS != "" {
				pos = fmt.Sprintf(" (%s)", entry.POS)
			}
			head := entry.Headword
			if head == "" {
				head = w
			}
			return fmt.Sprintf("\n\nTerminology — %s%s: %s", head, pos, entry.Def)
		}
	}
	return ""
}

// searchVerses runs the local verse index and unwraps the hits.
func (a *Assistant) searchVerses(ctx context.Context, query string, limit int) ([]text.Verse, error) {
	if a.search == nil {
		return nil, nil
	}
	results, err := a.search.Search(ctx, query, limit)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, nil
	}
	verses := make([]text.Verse, 0, len(results))
	for _, res := range results {
		verses = append(verses, res.Verse)
	}
	return verses, nil
}

// containingTerm keeps only verses whose text actually mentions the
// term, so loosely ranked hits do not get cited as usage examples.
func containingTerm(verses []text.Verse, term string) []text.Verse {
	lower := strings.ToLower(term)
	var out []text.Verse
	for _, v := range verses {
		if strings.Contains(strings.ToLower(v.Text), lower) {
			out = append(out, v)
		}
	}
	return out
}

// wantsFullDefinition reports whether the user asked for the complete
// entry rather than a summary.
func wantsFullDefinition(message string) bool {
	return fullDetailPattern.MatchString(message)
}

var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)
var orphanRefPattern = regexp.MustCompile(`\s+\(\d+\.\)\s*$`)
var orphanMarkerPattern = regexp.MustCompile(`\s+\[\w+\]\s*$`)

// summarizeDefinition trims a long definition to its first sentence or
// two, dropping orphaned reference markers left at the cut.
func summarizeDefinition(definition string) string {
	if len(definition) < summaryThreshold {
		return definition
	}
	sentences := sentencePattern.FindAllString(definition, -1)
	if len(sentences) == 0 {
		return definition[:200] + "..."
	}
	summary := sentences[0]
	if len(sentences) > 1 && len(summary) < 150 {
		summary += " " + strings.TrimSpace(sentences[1])
	}
	summary = orphanRefPattern.ReplaceAllString(summary, "")
	summary = orphanMarkerPattern.ReplaceAllString(summary, "")
	return strings.TrimSpace(summary)
}

// stripDoubledHeadword collapses entries that repeat their headword at
// the start of the definition body.
func stripDoubledHeadword(definition, headword string) string {
	pattern, err := regexp.Compile(`(?i)^` + regexp.QuoteMeta(headword) + `\s+` + regexp.QuoteMeta(headword) + `\s*[-—]?\s*`)
	if err != nil {
		return definition
	}
	return pattern.ReplaceAllString(definition, headword+" — ")
}

// truncate shortens text to limit runes with an ellipsis.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
