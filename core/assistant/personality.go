package assistant

import (
	"math/rand"
	"regexp"
	"strings"
	"sync"

	"github.com/FocuswithJustin/SharpAssistant/core/classify"
)

// greetingPhrases holds the rotating intro lines per greeting category.
// {topic} is replaced with the extracted question subject.
var greetingPhrases = map[string][]string{
	"biographical": {
		"Let me walk with you through {topic}.",
		"Let's explore who {topic} was in the biblical narrative.",
		"Great question about {topic}—let's dive in.",
		"Here's the story of {topic}.",
		"Let me introduce you to {topic}.",
		"Let's unpack {topic}'s role in Scripture.",
	},
	"interpretation": {
		"Let me unpack {topic} for you.",
		"Let's break down {topic}.",
		"Here's what's happening with {topic}.",
		"Let me walk you through {topic}.",
		"Here's what {topic} is really about.",
		"Let's make sense of {topic}.",
	},
	"wordStudy": {
		"Let's dig into the original language of {topic}.",
		"Here's what {topic} means in the original.",
		"Ready for a word study on {topic}?",
		"Let me show you the original meaning of {topic}.",
		"Here's the linguistic key to {topic}.",
		"Let's explore the original word for {topic}.",
	},
	"historical": {
		"Let me set the historical scene for {topic}.",
		"Here's the backdrop to {topic}.",
		"Let's explore the culture around {topic}.",
		"Here's what was happening when {topic} occurred.",
		"Let me show you the setting for {topic}.",
		"Let's understand {topic} in its time.",
	},
	"theological": {
		"Let's explore the theology of {topic}.",
		"Here's what Scripture teaches about {topic}.",
		"Let me unpack the doctrine of {topic}.",
		"Here's the biblical perspective on {topic}.",
		"Let's examine {topic} through a biblical lens.",
		"Ready to dive into {topic}?",
	},
	"definition": {
		"Let me explain what {topic} means.",
		"Here's the definition of {topic}.",
		"Let's define {topic}.",
		"Here's what {topic} is.",
		"Let me break down {topic} for you.",
		"Let's get clear on {topic}.",
	},
	"paul": {
		"Let's explore what Paul said about {topic}.",
		"Here's Paul's perspective on {topic}.",
		"Let me explain Paul's teaching on {topic}.",
		"Here's how Paul addressed {topic}.",
		"Let's understand Paul on {topic}.",
		"Ready for Paul's perspective on {topic}?",
	},
	"general": {
		"Let's dive into {topic}.",
		"Here's what you need to know about {topic}.",
		"Let me help you understand {topic}.",
		"Let's get into {topic}.",
		"Let me shed some light on {topic}.",
		"Let's explore {topic} together.",
	},
}

// greetingCategories maps classification categories and subcategories
// to greeting pools.
var greetingCategories = map[string]string{
	"who":             "biographical",
	"what_definition": "definition",
	"interpretation":  "interpretation",
	"language":        "wordStudy",
	"word_study":      "wordStudy",
	classify.CategoryHistory:  "historical",
	classify.CategoryTheology: "theological",
	classify.CategoryPaul:     "paul",
}

// recentGreetingWindow is how many recent picks per pool are excluded
// before the pool resets.
const recentGreetingWindow = 5

// Personality rotates warm intro lines and engagement invitations so
// repeated questions do not read like canned output. Safe for
// concurrent use.
type Personality struct {
	mu     sync.Mutex
	recent map[string][]string
	intn   func(n int) int
}

// NewPersonality returns a personality layer with the default
// randomness source.
func NewPersonality() *Personality {
	return &Personality{
		recent: make(map[string][]string),
		intn:   rand.Intn,
	}
}

// Enhance prepends a greeting for the question's subject and appends an
// engagement invitation suited to the classification.
func (p *Personality) Enhance(answer string, c classify.Classification, query string) string {
	topic := extractTopic(query, c.Subcategory)
	greeting := p.selectGreeting(greetingPool(c), topic)
	return addEngagementInvitation(greeting+"\n\n"+answer, c)
}

// greetingPool resolves the classification to a greeting pool name,
// preferring the subcategory mapping over the category one.
func greetingPool(c classify.Classification) string {
	if pool, ok := greetingCategories[c.Subcategory]; ok {
		return pool
	}
	if pool, ok := greetingCategories[c.Category]; ok {
		return pool
	}
	return "general"
}

// selectGreeting picks a phrase not used in the last few calls for the
// pool, resetting the pool once every phrase has been used.
func (p *Personality) selectGreeting(pool, topic string) string {
	phrases, ok := greetingPhrases[pool]
	if !ok {
		phrases = greetingPhrases["general"]
	}

	p.mu.Lock()
	recent := p.recent[pool]
	available := phrases[:0:0]
	for _, phrase := range phrases {
		used := false
		for _, r := range recent {
			if r == phrase {
				used = true
				break
			}
		}
		if !used {
			available = append(available, phrase)
		}
	}
	if len(available) == 0 {
		available = phrases
		recent = nil
	}
	selected := available[p.intn(len(available))]
	recent = append(recent, selected)
	if len(recent) > recentGreetingWindow {
		recent = recent[len(recent)-recentGreetingWindow:]
	}
	p.recent[pool] = recent
	p.mu.Unlock()

	return strings.ReplaceAll(selected, "{topic}", topic)
}

var topicLeadPattern = regexp.MustCompile(`(?i)^(?:who is|who was|what is|what was|tell me about|explain|define|meaning of)\s+`)
var namePattern = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?`)

// extractTopic pulls the question subject for greeting interpolation.
func extractTopic(query, subcategory string) string {
	topic := topicLeadPattern.ReplaceAllString(strings.TrimSpace(query), "")
	topic = strings.TrimSuffix(topic, "?")
	topic = strings.TrimSpace(topic)

	if subcategory == "who" {
		if name := namePattern.FindString(topic); name != "" {
			topic = name
		}
	}
	if topic == "" {
		return "this"
	}
	return strings.ToUpper(topic[:1]) + topic[1:]
}

// addEngagementInvitation appends a follow-up prompt unless the answer
// already carries one.
func addEngagementInvitation(answer string, c classify.Classification) string {
	if strings.Contains(answer, "Want ") || strings.Contains(answer, "Would you like") || strings.Contains(answer, "Should I") {
		return answer
	}

	var invitation string
	switch c.Category {
	case classify.CategoryScripture:
		switch c.Subcategory {
		case "who", "what_definition":
			invitation = "\n\n💡 Want the Greek or Hebrew on any of these references?"
		case "interpretation":
			invitation = "\n\n💡 I can go deeper into the historical context if you want."
		case "language":
			invitation = "\n\n💡 Want more word usage examples from Scripture?"
		}
	case classify.CategoryTheology:
		invitation = "\n\n💡 Want to see what the early church fathers said about this?"
	case classify.CategoryHistory:
		invitation = "\n\n💡 Should I unpack the cultural background further?"
	case classify.CategoryPaul:
		invitation = "\n\n💡 Want more on Paul's first-century context?"
	}
	return answer + invitation
}

var paulPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bpaul\b`),
	regexp.MustCompile(`(?i)\bsaul\b`),
	regexp.MustCompile(`(?i)\bapostle to the gentiles\b`),
	regexp.MustCompile(`(?i)\b(?:1|2|first|second)\s*(?:corinthians?|timothy|thessalonians?)\b`),
	regexp.MustCompile(`(?i)\b(?:romans|galatians|ephesians|philippians|colossians|philemon|titus)\b`),
}

// DetectPaulQuestion reports whether the query concerns Paul or a
// Pauline epistle.
func DetectPaulQuestion(query string) bool {
	for _, p := range paulPatterns {
		if p.MatchString(query) {
			return true
		}
	}
	return false
}

// AddPaulContext appends first-century framing to Paul-related answers
// that do not already carry it.
func AddPaulContext(answer, query string) string {
	if !DetectPaulQuestion(query) || strings.Contains(answer, "Paul was") || strings.Contains(answer, "first-century") {
		return answer
	}
	return answer + "\n\n📖 Context: Paul was a first-century Pharisee trained under Gamaliel, writing to mixed Jewish-Gentile audiences in Greco-Roman cities. Understanding his Jewish background and Greco-Roman cultural setting is key to interpreting his letters."
}

var ambiguousQuestionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^explain this$`),
	regexp.MustCompile(`(?i)^what does this mean\??$`),
	regexp.MustCompile(`(?i)^tell me about this$`),
	regexp.MustCompile(`(?i)^this verse$`),
	regexp.MustCompile(`(?i)^what about$`),
	regexp.MustCompile(`(?i)^how about$`),
}

// DetectAmbiguousQuestion reports surface forms too vague to route.
func DetectAmbiguousQuestion(query string) bool {
	trimmed := strings.TrimSpace(query)
	for _, p := range ambiguousQuestionPatterns {
		if p.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// ClarificationPrompt is the response for questions that need a
// direction before retrieval can help.
func ClarificationPrompt() *Response {
	answer := "⚠️ I want to give you the best answer—could you be more specific?\n\n" +
		"Would you like:\n" +
		"• 📜 Historical background and cultural context\n" +
		"• 🔤 Greek/Hebrew word study and linguistic analysis\n" +
		"• ⛪ Early church interpretation and patristic commentary\n" +
		"• 📖 Doctrinal/theological explanation\n" +
		"• 💡 Practical application to daily life\n\n" +
		"Just let me know which direction interests you most!"
	return &Response{
		Answer:    answer,
		Citations: []Citation{},
		Metadata:  Metadata{NeedsClarification: true},
	}
}
