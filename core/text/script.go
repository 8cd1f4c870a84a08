package text

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// rlm is the Unicode right-to-left mark used to pin Hebrew text in
// left-to-right contexts.
const rlm = "‏"

// StripHebrewDiacritics removes niqqud and cantillation marks
// (U+0591 through U+05C7) so mixed-direction rendering stays stable.
func StripHebrewDiacritics(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r >= 0x0591 && r <= 0x05C7 {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// HebrewOptions controls Hebrew word-to-text conversion.
type HebrewOptions struct {
	// KeepDiacritics preserves niqqud and cantillation marks.
	KeepDiacritics bool

	// NoRTLMarks skips wrapping the text in RLM markers.
	NoRTLMarks bool
}

// HebrewText joins word surface forms into display text, stripping
// diacritics and wrapping with RLM markers unless disabled.
func HebrewText(words []Word, opts HebrewOptions) string {
	text := joinSurfaces(words)
	if !opts.KeepDiacritics {
		text = StripHebrewDiacritics(text)
	}
	if !opts.NoRTLMarks {
		text = rlm + text + rlm
	}
	return text
}

// GreekText joins word surface forms into display text. Diacritics are
// kept; the result is normalized to NFC so combining sequences render
// as single composed characters.
func GreekText(words []Word) string {
	return norm.NFC.String(joinSurfaces(words))
}

func joinSurfaces(words []Word) string {
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if w.Surface != "" {
			tokens = append(tokens, w.Surface)
		}
	}
	return strings.Join(tokens, " ")
}
