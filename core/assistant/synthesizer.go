package assistant

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/SharpAssistant/core/text"
)

// synthTop is how many retrieved verses the synthesized answer quotes.
const synthTop = 3

// neutralityMarker keeps ApplyNeutrality idempotent.
const neutralityMarker = "Neutrality note"

// SynthesizeNeutral assembles retrieved verses into a neutral answer
// with reading guidance and next-action hints. No hits yields a
// rephrase hint with zero citations.
func SynthesizeNeutral(query string, hits []text.Verse) (string, []Citation) {
	if len(hits) == 0 {
		answer := fmt.Sprintf(`I didn't find a direct match locally for: %q. Try rephrasing or specifying a book (e.g., "in Romans").`, query)
		return answer, []Citation{}
	}

	top := hits
	if len(top) > synthTop {
		top = top[:synthTop]
	}

	var b strings.Builder
	b.WriteString("Here are passages related to your query:\n\n")
	b.WriteString(formatVersesBlock(top))
	b.WriteString("\n\nHow to read these neutrally:")
	b.WriteString("\n• Consider immediate literary context (preceding and following verses).")
	b.WriteString("\n• Compare translations to avoid relying on a single rendering.")
	b.WriteString("\n• Check cross-references for how Scripture interprets Scripture.")
	b.WriteString("\n\nWould you like:")
	b.WriteString("\n• Passage context")
	b.WriteString("\n• Compare translations")
	b.WriteString("\n• Word study (original language term)?")

	citations := make([]Citation, 0, len(top))
	for _, v := range top {
		citations = append(citations, verseCitation(v))
	}
	return b.String(), citations
}

// ApplyNeutrality appends the fixed neutrality disclaimer exactly once.
func ApplyNeutrality(answer string) string {
	if strings.Contains(answer, neutralityMarker) {
		return answer
	}
	return answer + "\n\nNeutrality note: Interpretations can vary across Christian traditions.\nI can present mainstream perspectives without endorsing any single doctrine."
}

// formatVersesBlock renders verses as quoted blocks with attribution.
func formatVersesBlock(verses []text.Verse) string {
	blocks := make([]string, 0, len(verses))
	for _, v := range verses {
		attribution := v.Reference
		if v.Translation != "" {
			attribution = fmt.Sprintf("%s (%s)", v.Reference, v.Translation)
		}
		blocks = append(blocks, fmt.Sprintf("%q\n— %s", v.Text, attribution))
	}
	return strings.Join(blocks, "\n\n")
}

// verseCitation labels verses from sources that did not tag a
// translation as Unknown rather than leaving the field blank.
func verseCitation(v text.Verse) Citation {
	translation := v.Translation.String()
	if translation == "" {
		translation = "Unknown"
	}
	return Citation{Ref: v.Reference, Translation: translation}
}
