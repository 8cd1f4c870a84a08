// Package text defines the translation enumeration, verse value objects,
// and script-specific normalization for Hebrew and Greek sources.
package text

import "strings"

// TranslationID identifies one verse data source. Each ID maps to
// exactly one provider.
type TranslationID string

const (
	KJV        TranslationID = "KJV"
	WEB        TranslationID = "WEB"
	ESV        TranslationID = "ESV"
	ASV        TranslationID = "ASV"
	GENEVA     TranslationID = "GENEVA"
	BISHOPS    TranslationID = "BISHOPS"
	WLC        TranslationID = "WLC"
	LXX        TranslationID = "LXX"
	SINAITICUS TranslationID = "SINAITICUS"
	APOC       TranslationID = "APOC"
)

// All lists every known translation ID.
var All = []TranslationID{KJV, WEB, ESV, ASV, GENEVA, BISHOPS, WLC, LXX, SINAITICUS, APOC}

// ParseTranslation resolves a user-supplied translation name,
// case-insensitively. Returns KJV for empty or unknown input.
func ParseTranslation(s string) TranslationID {
	id := TranslationID(strings.ToUpper(strings.TrimSpace(s)))
	for _, t := range All {
		if t == id {
			return t
		}
	}
	return KJV
}

// Language returns the ISO language code of the translation's text.
func (t TranslationID) Language() string {
	switch t {
	case WLC:
		return "he"
	case LXX, SINAITICUS:
		return "grc"
	default:
		return "en"
	}
}

// RTL reports whether the translation's script renders right to left.
func (t TranslationID) RTL() bool {
	return t == WLC
}

// IsAncient reports whether the translation is an ancient-language
// manuscript source carrying tokenized words rather than plain text.
func (t TranslationID) IsAncient() bool {
	switch t {
	case WLC, LXX, SINAITICUS:
		return true
	}
	return false
}

func (t TranslationID) String() string {
	return string(t)
}
