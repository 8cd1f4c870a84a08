package classify

// Strategy describes how an answer for a classified question should be
// assembled and formatted.
type Strategy struct {
	Steps  []string `json:"steps"`
	Format string   `json:"format"`
}

var strategies = map[string]Strategy{
	"scripture.who":                  {Steps: []string{"identify_person", "provide_biography", "show_key_verses", "historical_context"}, Format: "biographical"},
	"scripture.what_definition":      {Steps: []string{"lookup_dictionary", "provide_definition", "show_biblical_usage", "cross_references"}, Format: "definition"},
	"scripture.interpretation":       {Steps: []string{"show_verse", "historical_context", "linguistic_analysis", "cross_references", "multiple_views"}, Format: "exegetical"},
	"scripture.language":             {Steps: []string{"show_original", "morphology", "lexicon_entry", "usage_examples"}, Format: "linguistic"},
	"scripture.cross_reference":      {Steps: []string{"find_related_verses", "group_by_theme", "show_passages"}, Format: "list"},
	"scripture.compare_translations": {Steps: []string{"fetch_all_translations", "show_side_by_side", "explain_differences"}, Format: "comparison_table"},
	"theology.doctrine":              {Steps: []string{"define_doctrine", "show_key_passages", "multiple_views", "practical_application"}, Format: "doctrinal"},
	"apologetics.reliability":        {Steps: []string{"acknowledge_concern", "provide_evidence", "show_scholarly_consensus", "suggest_resources"}, Format: "apologetic"},
	"practical.lifestyle":            {Steps: []string{"show_relevant_passages", "biblical_principles", "wisdom_and_nuance", "practical_guidance"}, Format: "practical"},
	"pastoral.emotional":             {Steps: []string{"acknowledge_struggle", "show_comforting_passages", "biblical_perspective", "encourage_community"}, Format: "pastoral"},
}

var defaultStrategy = Strategy{
	Steps:  []string{"understand_question", "search_relevant_content", "synthesize_answer"},
	Format: "general",
}

// ResponseStrategy returns the answer-assembly plan for a classification.
func ResponseStrategy(c Classification) Strategy {
	if s, ok := strategies[c.Category+"."+c.Subcategory]; ok {
		return s
	}
	return defaultStrategy
}
