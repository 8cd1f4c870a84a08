package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/FocuswithJustin/SharpAssistant/core/errors"
	"github.com/FocuswithJustin/SharpAssistant/internal/logging"
)

// religionsDir is the optional data subdirectory of grouped summaries;
// each *.json file maps religion name -> record, the file name (minus
// extension, underscores as spaces) is the group.
const religionsDir = "religions"

// Religion is one summarized tradition.
type Religion struct {
	Name        string         `json:"name"`
	Group       string         `json:"group"`
	Summary     string         `json:"summary"`
	KeyConcepts []string       `json:"key_concepts,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
}

// curatedReligions seeds the index when no dataset is installed.
var curatedReligions = []Religion{
	{Name: "Judaism", Group: "Abrahamic", Summary: "Monotheistic faith of the Hebrew people, centered on the covenant with God and the Torah.", KeyConcepts: []string{"Torah", "covenant", "Shema", "synagogue"}},
	{Name: "Islam", Group: "Abrahamic", Summary: "Monotheistic faith founded by Muhammad, holding the Quran as final revelation and submission to God as the believer's duty.", KeyConcepts: []string{"Quran", "Five Pillars", "tawhid", "mosque"}},
	{Name: "Hinduism", Group: "Dharmic", Summary: "Diverse family of Indian traditions oriented around dharma, karma, and liberation (moksha) across cycles of rebirth.", KeyConcepts: []string{"dharma", "karma", "moksha", "Vedas"}},
	{Name: "Buddhism", Group: "Dharmic", Summary: "Path founded by Siddhartha Gautama teaching release from suffering through the Four Noble Truths and the Eightfold Path.", KeyConcepts: []string{"Four Noble Truths", "Eightfold Path", "nirvana", "anatta"}},
	{Name: "Taoism", Group: "East Asian", Summary: "Chinese tradition following the Tao, the natural way underlying all things, cultivated through simplicity and non-striving.", KeyConcepts: []string{"Tao", "wu wei", "yin and yang"}},
	{Name: "Confucianism", Group: "East Asian", Summary: "Chinese ethical and philosophical system of Confucius emphasizing filial piety, ritual propriety, and social harmony.", KeyConcepts: []string{"ren", "li", "filial piety"}},
	{Name: "Shinto", Group: "Indigenous", Summary: "Indigenous Japanese tradition venerating kami, spirits associated with places, ancestors, and natural forces.", KeyConcepts: []string{"kami", "shrine", "purification"}},
	{Name: "Secular Humanism", Group: "Modern", Summary: "Non-theistic life stance grounding ethics and meaning in human reason, experience, and shared welfare.", KeyConcepts: []string{"reason", "ethics without religion", "human dignity"}},
}

// coreChristianClaims anchors the apologetic comparison.
var coreChristianClaims = []string{
	"Jesus Christ is the eternal Son of God, fully God and fully man (John 1:1, 14).",
	"Salvation is by grace through faith, not by works (Ephesians 2:8-9).",
	"Scripture is the authoritative Word of God (2 Timothy 3:16).",
}

// ReligionIndex answers comparative-religion questions from grouped
// summary datasets.
type ReligionIndex struct {
	byKey map[string]Religion
	keys  []string // sorted lookup keys
}

// NewReligionIndex loads religions/*.json from dataDir when present,
// falling back to the curated table when the directory is absent.
func NewReligionIndex(dataDir string) (*ReligionIndex, error) {
	byKey := make(map[string]Religion)

	loaded := false
	if dataDir != "" {
		dir := filepath.Join(dataDir, religionsDir)
		entries, err := os.ReadDir(dir)
		switch {
		case err == nil:
			for _, de := range entries {
				if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
					continue
				}
				path := filepath.Join(dir, de.Name())
				group := strings.ReplaceAll(strings.TrimSuffix(de.Name(), ".json"), "_", " ")
				if err := loadReligionGroup(path, group, byKey); err != nil {
					return nil, err
				}
				loaded = true
			}
		case !os.IsNotExist(err):
			return nil, errors.NewIO("read", dir, err)
		}
	}

	if !loaded {
		for _, r := range curatedReligions {
			byKey[strings.ToLower(r.Name)] = r
		}
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	logging.IndexLoaded("religions", len(byKey))
	return &ReligionIndex{byKey: byKey, keys: keys}, nil
}

// loadReligionGroup decodes one group file: religion name -> record with
// summary, key_concepts, and arbitrary further detail fields.
func loadReligionGroup(path, group string, into map[string]Religion) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewIO("read", path, err)
	}
	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.NewParse("json", path, "religion group: "+err.Error())
	}
	for name, rec := range raw {
		r := Religion{Name: name, Group: group, Details: make(map[string]any)}
		for k, v := range rec {
			switch k {
			case "summary":
				if s, ok := v.(string); ok {
					r.Summary = s
				}
			case "key_concepts":
				if list, ok := v.([]any); ok {
					for _, item := range list {
						if s, ok := item.(string); ok {
							r.KeyConcepts = append(r.KeyConcepts, s)
						}
					}
				}
			default:
				r.Details[k] = v
			}
		}
		into[strings.ToLower(name)] = r
	}
	return nil
}

// List returns the names of all indexed religions, sorted.
func (ri *ReligionIndex) List() []string {
	out := make([]string, 0, len(ri.keys))
	for _, k := range ri.keys {
		out = append(out, ri.byKey[k].Name)
	}
	return out
}

// Get resolves a religion by name, case-insensitive.
func (ri *ReligionIndex) Get(name string) (Religion, bool) {
	r, ok := ri.byKey[strings.ToLower(strings.TrimSpace(name))]
	return r, ok
}

// FindIn returns every indexed religion mentioned in the text, in
// sorted key order so results are deterministic.
func (ri *ReligionIndex) FindIn(text string) []Religion {
	t := strings.ToLower(text)
	var hits []Religion
	for _, k := range ri.keys {
		if strings.Contains(t, k) {
			hits = append(hits, ri.byKey[k])
		}
	}
	return hits
}

// Apologetic builds a comparative answer for the first religion named
// in the query: its summary and key concepts, the core Christian
// claims, points of contrast, and an unabridged dump of any extra
// dataset fields. ok is false when no known religion is mentioned.
func (ri *ReligionIndex) Apologetic(query string) (string, Religion, bool) {
	found := ri.FindIn(query)
	if len(found) == 0 {
		return "", Religion{}, false
	}
	top := found[0]

	var b strings.Builder
	fmt.Fprintf(&b, "Overview of %s (%s)\n\n", top.Name, top.Group)
	fmt.Fprintf(&b, "Summary: %s\n", top.Summary)
	if len(top.KeyConcepts) > 0 {
		fmt.Fprintf(&b, "Key Concepts: %s\n\n", strings.Join(top.KeyConcepts, ", "))
	} else {
		b.WriteString("\n")
	}

	b.WriteString("Christian Apologetics Perspective (concise)\n")
	b.WriteString("- We seek truth with humility and respect (1 Peter 3:15).\n")
	b.WriteString("- We compare every belief with the Gospel of Christ.\n\n")
	b.WriteString("Core Christian Claims:\n")
	for _, claim := range coreChristianClaims {
		fmt.Fprintf(&b, "• %s\n", claim)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Points of Contrast with %s:\n", top.Name)
	fmt.Fprintf(&b, "• View of Jesus: Christianity confesses Jesus as Lord and God; %s holds a different view.\n", top.Name)
	b.WriteString("• Way of Salvation: Christianity teaches grace through faith in Christ; alternative systems often emphasize law, ritual, knowledge, or practice.\n")
	b.WriteString("• Authority: Christianity roots truth in the Bible and the risen Christ; other sources vary by tradition.\n\n")
	b.WriteString("Invitation: Explore the life, death, and resurrection of Jesus (John 3:16; Romans 10:9), and weigh every claim in light of Scripture and truth.")

	if block := detailBlock(top.Details); block != "" {
		fmt.Fprintf(&b, "\n\nUnabridged Details (from dataset)\n%s", block)
	}
	return b.String(), top, true
}

// detailBlock renders every extra dataset field as an indented outline,
// keys sorted for stable output.
func detailBlock(details map[string]any) string {
	if len(details) == 0 {
		return ""
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		lines = append(lines, prettifyKey(k)+":")
		lines = append(lines, formatDetail(details[k], "  "))
		lines = append(lines, "")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// prettifyKey turns snake_case dataset keys into title-case headings.
func prettifyKey(k string) string {
	words := strings.Split(strings.ReplaceAll(k, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// formatDetail renders an arbitrary decoded JSON value as bullets.
func formatDetail(v any, indent string) string {
	next := indent + "  "
	switch val := v.(type) {
	case nil:
		return indent + "- (none)"
	case []any:
		if len(val) == 0 {
			return indent + "- (empty)"
		}
		var lines []string
		for _, item := range val {
			switch item.(type) {
			case map[string]any, []any:
				raw, _ := json.Marshal(item)
				lines = append(lines, indent+"- "+string(raw))
			default:
				lines = append(lines, fmt.Sprintf("%s- %v", indent, item))
			}
		}
		return strings.Join(lines, "\n")
	case map[string]any:
		if len(val) == 0 {
			return indent + "- (empty)"
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var lines []string
		for _, k := range keys {
			lines = append(lines, indent+"- "+k+":")
			lines = append(lines, formatDetail(val[k], next))
		}
		return strings.Join(lines, "\n")
	default:
		return fmt.Sprintf("%s- %v", indent, val)
	}
}
