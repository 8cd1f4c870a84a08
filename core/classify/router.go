package classify

import (
	"regexp"
	"strings"
)

// Intent types, checked in order by RouteIntent.
const (
	IntentReference           = "reference"
	IntentWordStudy           = "word_study"
	IntentContext             = "context"
	IntentFeastDay            = "feast_day"
	IntentMapLocation         = "map_location"
	IntentUserStats           = "user_stats"
	IntentReligion            = "religion"
	IntentCompareTranslations = "compare_translations"
	IntentCrossRefs           = "cross_refs"
	IntentTopic               = "topic"
	IntentDefine              = "define"
	IntentTheology            = "theology"
	IntentGeneral             = "general"
	IntentUnknown             = "unknown"
)

// Intent is a routed question.
type Intent struct {
	Type  string `json:"type"`
	Query string `json:"query"`
}

// quickRefPattern is a loose reference sniff: a word, a chapter, and an
// optional verse range. Looser than the full parser on purpose; the
// handler re-parses properly and falls through on failure.
var quickRefPattern = regexp.MustCompile(`\b(\d?\s?[A-Za-z]+)\s+(\d{1,3})(?::(\d{1,3})(?:[-–]\d{1,3})?)?\b`)

var (
	wordStudyIntent = regexp.MustCompile(`(?:word study|greek for|hebrew for|original (?:word|language)|strong['’]s)`)
	contextIntent   = regexp.MustCompile(`(?:context|show context|surrounding|nearby verses|passage context)`)
	feastIntent     = regexp.MustCompile(`(?:feast|holiday|passover|pentecost|tabernacles|sukkot|yom kippur|atonement|trumpets|purim|hanukkah|shabbat|sabbath|rosh chodesh|new moon|hebrew calendar|biblical calendar|appointed time|moedim)`)
	mapIntent       = regexp.MustCompile(`(?:where (?:is|was|are|were)\b|map of|location of|geography of|on (?:the|a) map|biblical location|present day)`)
	statsIntent     = regexp.MustCompile(`(?:my (?:stats|statistics|progress|streak|xp|score)|quiz stats|how am i doing)`)
	religionIntent  = regexp.MustCompile(`(?:religion|world religions|apologetics|compare (?:christianity|christian faith) to|what does (?:islam|hinduism|buddhism|judaism|sikhism|bahai) teach|is (?:islam|hinduism|buddhism|sikhism|judaism) biblical)`)
	compareIntent   = regexp.MustCompile(`(?:compare translations|compare versions|side by side)`)
	crossRefIntent  = regexp.MustCompile(`(?:cross refs?|related passages|where else|parallel passages)`)
	topicIntent     = regexp.MustCompile(`(?:verses?|passages?|scripture|what does .* say|where .* talk)`)
	defineIntent    = regexp.MustCompile(`^(?:what is|define|definition of|meaning of|who is|explain)\b`)
	theologyIntent  = regexp.MustCompile(`(?:meaning|interpret|explain|doctrine|theology|view|perspective)`)
)

// RouteIntent maps a question to its handler type. Reference-looking
// input wins outright; the remaining checks run on the lowercased text
// in priority order.
func RouteIntent(raw string) Intent {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Intent{Type: IntentUnknown}
	}

	if quickRefPattern.MatchString(text) {
		return Intent{Type: IntentReference, Query: text}
	}

	lower := strings.ToLower(text)
	switch {
	case wordStudyIntent.MatchString(lower):
		return Intent{Type: IntentWordStudy, Query: text}
	case contextIntent.MatchString(lower):
		return Intent{Type: IntentContext, Query: text}
	case feastIntent.MatchString(lower):
		return Intent{Type: IntentFeastDay, Query: text}
	case mapIntent.MatchString(lower):
		return Intent{Type: IntentMapLocation, Query: text}
	case statsIntent.MatchString(lower):
		return Intent{Type: IntentUserStats, Query: text}
	case religionIntent.MatchString(lower):
		return Intent{Type: IntentReligion, Query: text}
	case compareIntent.MatchString(lower):
		return Intent{Type: IntentCompareTranslations, Query: text}
	case crossRefIntent.MatchString(lower):
		return Intent{Type: IntentCrossRefs, Query: text}
	case topicIntent.MatchString(lower):
		return Intent{Type: IntentTopic, Query: text}
	case defineIntent.MatchString(lower):
		return Intent{Type: IntentDefine, Query: text}
	case theologyIntent.MatchString(lower):
		return Intent{Type: IntentTheology, Query: text}
	}
	return Intent{Type: IntentGeneral, Query: text}
}
