package assistant

import (
	"strings"
	"testing"

	"github.com/FocuswithJustin/SharpAssistant/core/text"
)

func TestSynthesizeNeutralNoHits(t *testing.T) {
	answer, citations := SynthesizeNeutral("obscure query", nil)
	if !strings.Contains(answer, "I didn't find a direct match locally") {
		t.Errorf("answer missing no-match hint:\n%s", answer)
	}
	if !strings.Contains(answer, `"obscure query"`) {
		t.Errorf("answer does not echo the query:\n%s", answer)
	}
	if len(citations) != 0 {
		t.Errorf("citations = %v, want empty", citations)
	}
}

func TestSynthesizeNeutralQuotesTopThree(t *testing.T) {
	hits := []text.Verse{
		{Reference: "John 3:16", Text: "first", Translation: text.KJV},
		{Reference: "John 3:17", Text: "second", Translation: text.KJV},
		{Reference: "John 3:18", Text: "third", Translation: text.WEB},
		{Reference: "John 3:19", Text: "fourth", Translation: text.WEB},
	}

	answer, citations := SynthesizeNeutral("light of the world", hits)

	if len(citations) != 3 {
		t.Fatalf("citations = %d, want the top 3", len(citations))
	}
	for _, want := range []string{"John 3:16 (KJV)", "John 3:18 (WEB)", "How to read these neutrally:", "Would you like:"} {
		if !strings.Contains(answer, want) {
			t.Errorf("answer missing %q:\n%s", want, answer)
		}
	}
	if strings.Contains(answer, "John 3:19") {
		t.Errorf("answer quotes past the top 3:\n%s", answer)
	}
}

func TestApplyNeutralityIdempotent(t *testing.T) {
	once := ApplyNeutrality("Some answer.")
	if !strings.Contains(once, "Neutrality note:") {
		t.Fatalf("disclaimer not appended:\n%s", once)
	}
	twice := ApplyNeutrality(once)
	if twice != once {
		t.Errorf("disclaimer appended twice:\n%s", twice)
	}
	if strings.Count(twice, "Neutrality note") != 1 {
		t.Errorf("disclaimer count = %d, want 1", strings.Count(twice, "Neutrality note"))
	}
}

func TestVerseCitationUnknownTranslation(t *testing.T) {
	c := verseCitation(text.Verse{Reference: "John 3:16", Text: "x"})
	if c.Translation != "Unknown" {
		t.Errorf("translation = %q, want Unknown", c.Translation)
	}
	if c.Ref != "John 3:16" {
		t.Errorf("ref = %q, want John 3:16", c.Ref)
	}
}
