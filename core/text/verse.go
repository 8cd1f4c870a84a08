package text

import (
	"encoding/json"

	"github.com/FocuswithJustin/SharpAssistant/core/errors"
)

// Verse is one retrieved verse. Immutable once produced; stages pass
// verses through without mutation.
type Verse struct {
	// Reference is the normalized display reference (e.g., "John 3:16").
	Reference string `json:"reference"`

	// Text is the verse text after script normalization.
	Text string `json:"text"`

	// Translation identifies the source that supplied the text.
	Translation TranslationID `json:"translation"`

	// Language is the ISO code of the text ("en", "he", "grc").
	Language string `json:"language"`

	// RTL marks right-to-left scripts for the rendering layer.
	RTL bool `json:"rtl,omitempty"`

	// Words holds tokenized word triplets for ancient-language sources.
	Words []Word `json:"words,omitempty"`
}

// Word is one tokenized word from an ancient-language manuscript.
// On disk it is a [surface, lemma, morphology] array.
type Word struct {
	Surface string
	Lemma   string
	Morph   string
}

// UnmarshalJSON accepts the on-disk triplet array form. Shorter arrays
// leave the remaining fields empty.
func (w *Word) UnmarshalJSON(data []byte) error {
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return &errors.ParseError{Format: "word triplet", Message: string(data), Err: err}
	}
	if len(parts) > 0 {
		w.Surface = parts[0]
	}
	if len(parts) > 1 {
		w.Lemma = parts[1]
	}
	if len(parts) > 2 {
		w.Morph = parts[2]
	}
	return nil
}

// MarshalJSON writes the triplet array form.
func (w Word) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{w.Surface, w.Lemma, w.Morph})
}
