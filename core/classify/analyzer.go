package classify

import (
	"regexp"
	"strings"
)

// Analysis is the grammatical breakdown of a question.
type Analysis struct {
	Original     string  `json:"original"`
	Normalized   string  `json:"normalized"`
	QuestionType string  `json:"question_type"`
	QuestionWord string  `json:"question_word,omitempty"`
	Subject      string  `json:"subject,omitempty"`
	Verb         string  `json:"verb,omitempty"`
	WellFormed   bool    `json:"well_formed"`
	Confidence   float64 `json:"confidence"`
	CanAnswer    bool    `json:"can_answer"`
	Suggestion   string  `json:"suggestion,omitempty"`
}

// questionWords in detection order; each maps to a question type.
var questionWords = []struct {
	word            string
	questionType    string
	requiresSubject bool
}{
	{"who", "person", true},
	{"what", "thing/definition", false},
	{"where", "location", true},
	{"when", "time", true},
	{"why", "reason", true},
	{"how", "method/degree", false},
	{"which", "choice", true},
	{"whose", "possession", true},
}

var (
	auxiliaryPrefix  = regexp.MustCompile(`^(?:is|are|was|were|do|does|did|can|could|should|would|will|shall|may|might)\s+`)
	articlePrefix    = regexp.MustCompile(`^(?:the|a|an)\s+`)
	subjectStopWord  = regexp.MustCompile(`^(?:in|on|at|to|from|with|by|about|for|of|is|are|was|were|do|does|did)$`)
	questionWordScan = regexp.MustCompile(`\b(?:who|what|where|when|why|how|which)\b`)
)

var commonVerbs = map[string]struct{}{
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"do": {}, "does": {}, "did": {}, "done": {}, "doing": {},
	"have": {}, "has": {}, "had": {}, "having": {},
	"can": {}, "could": {}, "may": {}, "might": {}, "must": {}, "shall": {}, "should": {}, "will": {}, "would": {},
	"say": {}, "said": {}, "tell": {}, "told": {}, "mean": {}, "meant": {},
	"go": {}, "went": {}, "come": {}, "came": {}, "happen": {}, "happened": {},
}

var biblicalKeywords = []string{
	"bible", "scripture", "verse", "god", "jesus", "christ", "lord", "testament",
	"david", "moses", "paul", "peter", "abraham", "israel", "jerusalem",
	"church", "apostle", "prophet", "king", "priest", "temple", "covenant",
}

// minAnswerConfidence is the floor below which a question is considered
// too vague to route.
const minAnswerConfidence = 0.4

// Analyze breaks a question into its grammatical components and scores
// how confidently it can be answered.
func Analyze(question string) Analysis {
	normalized := strings.ToLower(strings.TrimSpace(question))

	questionType := "statement"
	questionWord := ""
	for _, qw := range questionWords {
		if strings.HasPrefix(normalized, qw.word+" ") || normalized == qw.word {
			questionType = qw.questionType
			questionWord = qw.word
			break
		}
	}

	subject := extractSubject(normalized, questionWord)
	verb := extractVerb(normalized)
	wellFormed := assessWellFormed(normalized, questionType, subject)
	conf := analysisConfidence(normalized, subject, verb, wellFormed)

	a := Analysis{
		Original:     question,
		Normalized:   normalized,
		QuestionType: questionType,
		QuestionWord: questionWord,
		Subject:      subject,
		Verb:         verb,
		WellFormed:   wellFormed,
		Confidence:   conf,
		CanAnswer:    conf > minAnswerConfidence,
	}
	if !wellFormed {
		a.Suggestion = suggestion(normalized, questionType)
	}
	return a
}

// extractSubject strips the question word, auxiliaries, and articles,
// then takes words up to the first preposition or verb (max five).
func extractSubject(normalized, questionWord string) string {
	remaining := normalized
	if questionWord != "" {
		remaining = strings.TrimPrefix(remaining, questionWord)
		remaining = strings.TrimLeft(remaining, " ")
	}
	remaining = auxiliaryPrefix.ReplaceAllString(remaining, "")
	remaining = articlePrefix.ReplaceAllString(remaining, "")

	words := strings.Fields(remaining)
	var subject []string
	for i := 0; i < len(words) && i < 5; i++ {
		if subjectStopWord.MatchString(words[i]) {
			break
		}
		subject = append(subject, words[i])
	}
	return strings.Join(subject, " ")
}

func extractVerb(normalized string) string {
	for _, w := range strings.Fields(normalized) {
		if _, ok := commonVerbs[w]; ok {
			return w
		}
	}
	return ""
}

// assessWellFormed rejects fragments: too short, a lone word that is
// not itself a question, a question word with no subject, or a pileup
// of question words.
func assessWellFormed(normalized, questionType, subject string) bool {
	if len(normalized) < 3 {
		return false
	}
	if !strings.Contains(normalized, " ") {
		switch normalized {
		case "why", "how", "where", "when", "what", "who":
		default:
			return false
		}
	}
	if questionType != "statement" && subject == "" && questionType != "thing/definition" {
		return false
	}
	if len(questionWordScan.FindAllString(normalized, -1)) > 2 {
		return false
	}
	return true
}

// analysisConfidence starts neutral at 0.5 and adds for structure:
// well-formedness, a clear subject, a verb, reasonable length, and a
// biblical keyword. Rambling input over 30 words is penalized.
func analysisConfidence(normalized, subject, verb string, wellFormed bool) float64 {
	c := 0.5
	if wellFormed {
		c += 0.2
	}
	if len(subject) > 2 {
		c += 0.2
	}
	if verb != "" {
		c += 0.1
	}
	wc := len(strings.Fields(normalized))
	switch {
	case wc >= 3 && wc <= 20:
		c += 0.1
	case wc > 30:
		c -= 0.2
	}
	for _, kw := range biblicalKeywords {
		if strings.Contains(normalized, kw) {
			c += 0.1
			break
		}
	}
	if c > 1 {
		c = 1
	}
	if c < 0 {
		c = 0
	}
	return c
}

func suggestion(normalized, questionType string) string {
	if len(strings.Fields(normalized)) < 2 {
		return "Try asking a complete question. For example: 'What is [topic]?' or 'Who is [person]?'"
	}
	if questionType == "statement" {
		return "Try starting with a question word like 'What', 'Who', 'Where', 'When', 'Why', or 'How'."
	}
	return "Try rephrasing your question with more detail. For example: 'What does the Bible say about [topic]?'"
}

// TooVague reports whether a question lacks enough structure to answer.
func TooVague(question string) bool {
	a := Analyze(question)
	return !a.CanAnswer
}

// ClarificationMessage builds the user-facing message for an unclear
// question. ok is false when the question is clear enough to proceed.
func ClarificationMessage(question string) (string, bool) {
	a := Analyze(question)
	if !a.WellFormed && a.Suggestion != "" {
		return "I don't quite understand your question. " + a.Suggestion, true
	}
	if a.Confidence < minAnswerConfidence {
		return "I'm not sure I understand. Could you try rephrasing your question with more detail?", true
	}
	return "", false
}
