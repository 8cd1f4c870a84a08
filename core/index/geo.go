package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/FocuswithJustin/SharpAssistant/core/errors"
	"github.com/FocuswithJustin/SharpAssistant/internal/logging"
)

// locationsFile is the optional JSON overlay of biblical locations.
const locationsFile = "biblical_locations.json"

// maxLocationResults caps scored search output.
const maxLocationResults = 5

// Coordinates is an approximate modern lat/lng for a biblical site.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Clues groups hint strings by difficulty, as used by quiz-style answers.
type Clues struct {
	Easy   []string `json:"easy"`
	Medium []string `json:"medium"`
	Hard   []string `json:"hard"`
}

// Location is one biblical place with its modern-day mapping.
type Location struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Type              string       `json:"type"`
	Region            string       `json:"region,omitempty"`
	Aliases           []string     `json:"aliases,omitempty"`
	ModernCountry     string       `json:"modern_country,omitempty"`
	Coordinates       *Coordinates `json:"approximate_coordinates,omitempty"`
	Events            []string     `json:"events,omitempty"`
	PrimaryScriptures []string     `json:"primary_scriptures,omitempty"`
	Difficulty        int          `json:"difficulty,omitempty"`
	Clues             Clues        `json:"clues"`
	Description       string       `json:"description,omitempty"`
}

// ScoredLocation is a search hit with its relevance score.
type ScoredLocation struct {
	Location
	Score int `json:"score"`
}

// curatedLocations is the built-in geography table used when no
// locations file is installed (and merged beneath one when it is).
var curatedLocations = []Location{
	{ID: "canaan", Name: "Canaan", Type: "region", Aliases: []string{"Promised Land", "Land of Israel", "Palestine"}, ModernCountry: "Israel, Palestine, Lebanon, parts of Syria and Jordan", Coordinates: &Coordinates{Lat: 31.7683, Lng: 35.2137}, PrimaryScriptures: []string{"Genesis 12:5", "Numbers 34:2", "Joshua 5:12"}, Description: "The Promised Land, roughly corresponding to modern Israel/Palestine, extending from the Mediterranean coast to the Jordan River Valley"},
	{ID: "mesopotamia", Name: "Mesopotamia", Type: "region", Aliases: []string{"Aram-naharaim"}, ModernCountry: "Iraq, parts of Syria, parts of Turkey, parts of Iran", Coordinates: &Coordinates{Lat: 33.0, Lng: 44.0}, PrimaryScriptures: []string{"Genesis 24:10", "Acts 7:2"}, Description: "Land between the Tigris and Euphrates rivers, cradle of civilization"},
	{ID: "judea", Name: "Judea", Type: "region", Aliases: []string{"Judah", "Land of Judah"}, ModernCountry: "Israel, West Bank", Coordinates: &Coordinates{Lat: 31.7, Lng: 35.0}, PrimaryScriptures: []string{"Matthew 2:1", "Luke 1:5", "Acts 1:8"}, Description: "Southern kingdom and later Roman province, centered on Jerusalem"},
	{ID: "galilee", Name: "Galilee", Type: "region", Aliases: []string{"Galil"}, ModernCountry: "Israel", Coordinates: &Coordinates{Lat: 32.8, Lng: 35.5}, PrimaryScriptures: []string{"Matthew 4:15", "Luke 1:26", "John 7:41"}, Description: "Northern region of ancient Israel, Jesus' home region"},
	{ID: "samaria", Name: "Samaria", Type: "region", Aliases: []string{"Shomron"}, ModernCountry: "West Bank", Coordinates: &Coordinates{Lat: 32.2, Lng: 35.2}, PrimaryScriptures: []string{"1 Kings 16:24", "John 4:4", "Acts 8:1"}, Description: "Central region between Judea and Galilee"},
	{ID: "edom", Name: "Edom", Type: "region", Aliases: []string{"Seir", "Land of Esau"}, ModernCountry: "Southern Jordan, Southern Israel", Coordinates: &Coordinates{Lat: 30.3, Lng: 35.4}, PrimaryScriptures: []string{"Genesis 36:8", "Obadiah 1:1"}, Description: "Land of Esau's descendants, southeast of the Dead Sea"},
	{ID: "moab", Name: "Moab", Type: "region", ModernCountry: "Jordan", Coordinates: &Coordinates{Lat: 31.3, Lng: 35.7}, PrimaryScriptures: []string{"Ruth 1:1", "Numbers 22:1", "Isaiah 15:1"}, Description: "East of the Dead Sea, descendants of Lot"},
	{ID: "jerusalem", Name: "Jerusalem", Type: "city", Aliases: []string{"Zion", "City of David", "Salem", "Jebus"}, ModernCountry: "Israel", Coordinates: &Coordinates{Lat: 31.7683, Lng: 35.2137}, PrimaryScriptures: []string{"Psalm 122:6", "2 Samuel 5:7", "Luke 2:41"}, Description: "Holy city, capital of ancient Israel and Judah"},
	{ID: "bethlehem", Name: "Bethlehem", Type: "city", Aliases: []string{"Ephrathah", "City of David"}, ModernCountry: "West Bank", Coordinates: &Coordinates{Lat: 31.7054, Lng: 35.2024}, PrimaryScriptures: []string{"Micah 5:2", "Matthew 2:1", "Luke 2:4"}, Description: "Birthplace of King David and Jesus Christ"},
	{ID: "nazareth", Name: "Nazareth", Type: "city", ModernCountry: "Israel", Coordinates: &Coordinates{Lat: 32.7006, Lng: 35.2978}, PrimaryScriptures: []string{"Luke 1:26", "Matthew 2:23", "John 1:45-46"}, Description: "Jesus' childhood home in Galilee"},
	{ID: "capernaum", Name: "Capernaum", Type: "city", Aliases: []string{"Kfar Nahum"}, ModernCountry: "Israel", Coordinates: &Coordinates{Lat: 32.8807, Lng: 35.5753}, PrimaryScriptures: []string{"Matthew 4:13", "Mark 2:1", "Luke 4:31"}, Description: "Jesus' ministry headquarters on the Sea of Galilee"},
	{ID: "babylon", Name: "Babylon", Type: "city", Aliases: []string{"Babel", "Great City"}, ModernCountry: "Iraq", Coordinates: &Coordinates{Lat: 32.5355, Lng: 44.4275}, PrimaryScriptures: []string{"Genesis 11:9", "Daniel 4:30", "Revelation 18:2"}, Description: "Capital of the Babylonian Empire"},
	{ID: "nineveh", Name: "Nineveh", Type: "city", ModernCountry: "Iraq (near Mosul)", Coordinates: &Coordinates{Lat: 36.3489, Lng: 43.1522}, PrimaryScriptures: []string{"Jonah 1:2", "Nahum 1:1", "Genesis 10:11"}, Description: "Capital of the Assyrian Empire"},
	{ID: "damascus", Name: "Damascus", Type: "city", ModernCountry: "Syria", Coordinates: &Coordinates{Lat: 33.5138, Lng: 36.2765}, PrimaryScriptures: []string{"Genesis 14:15", "Acts 9:2", "Isaiah 17:1"}, Description: "Ancient city, still inhabited today"},
	{ID: "jericho", Name: "Jericho", Type: "city", Aliases: []string{"City of Palms"}, ModernCountry: "West Bank", Coordinates: &Coordinates{Lat: 31.8557, Lng: 35.4611}, PrimaryScriptures: []string{"Joshua 6:1", "Luke 10:30", "Luke 19:1"}, Description: "Ancient city conquered by Joshua, one of the oldest cities"},
	{ID: "egypt", Name: "Egypt", Type: "region", Aliases: []string{"Mizraim", "Land of Ham"}, ModernCountry: "Egypt", Coordinates: &Coordinates{Lat: 26.8206, Lng: 30.8025}, PrimaryScriptures: []string{"Genesis 12:10", "Exodus 1:1", "Matthew 2:13"}, Description: "Land of bondage and refuge along the Nile"},
	{ID: "persia", Name: "Persia", Type: "region", Aliases: []string{"Elam", "Media-Persia"}, ModernCountry: "Iran, parts of Afghanistan, parts of Pakistan", Coordinates: &Coordinates{Lat: 32.0, Lng: 53.0}, PrimaryScriptures: []string{"Ezra 1:1", "Esther 1:1", "Daniel 6:28"}, Description: "Vast empire that conquered Babylon"},
}

// GeoIndex answers "where is X" questions over biblical locations.
type GeoIndex struct {
	locations []Location
	byName    map[string]int
}

// NewGeoIndex loads biblical_locations.json from dataDir when present
// and merges the curated table beneath it (file entries win by name).
func NewGeoIndex(dataDir string) (*GeoIndex, error) {
	var primary []Location
	if dataDir != "" {
		path := filepath.Join(dataDir, locationsFile)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, &primary); err != nil {
				return nil, errors.NewParse("json", path, "locations file: "+err.Error())
			}
		case !os.IsNotExist(err):
			return nil, errors.NewIO("read", path, err)
		}
	}

	merged := make([]Location, 0, len(primary)+len(curatedLocations))
	seen := make(map[string]struct{}, len(primary))
	for _, loc := range primary {
		merged = append(merged, loc)
		seen[strings.ToLower(loc.Name)] = struct{}{}
	}
	for _, loc := range curatedLocations {
		if _, dup := seen[strings.ToLower(loc.Name)]; !dup {
			merged = append(merged, loc)
		}
	}

	byName := make(map[string]int, len(merged))
	for i, loc := range merged {
		byName[strings.ToLower(loc.Name)] = i
	}

	logging.IndexLoaded("locations", len(merged))
	return &GeoIndex{locations: merged, byName: byName}, nil
}

// ByName returns the location with the given name, case-insensitive.
func (gi *GeoIndex) ByName(name string) (Location, bool) {
	i, ok := gi.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Location{}, false
	}
	return gi.locations[i], true
}

// Len reports the number of indexed locations.
func (gi *GeoIndex) Len() int { return len(gi.locations) }

// Search scores every location against the query and returns the top
// matches, highest score first. Zero-score locations are dropped.
func (gi *GeoIndex) Search(query string) []ScoredLocation {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	var scored []ScoredLocation
	for _, loc := range gi.locations {
		if loc.Description == "" {
			loc.Description = clueDescription(loc.Clues)
		}
		s := scoreLocation(loc, query)
		if s > 0 {
			scored = append(scored, ScoredLocation{Location: loc, Score: s})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > maxLocationResults {
		scored = scored[:maxLocationResults]
	}
	return scored
}

var locationTokenPattern = regexp.MustCompile(`[^a-z0-9]+`)

// scoreLocation ranks how well a location answers the query: exact name
// matches dominate, then substring and alias hits, then weaker signals
// from description, modern country, and region.
func scoreLocation(loc Location, query string) int {
	q := strings.ToLower(query)
	name := strings.ToLower(loc.Name)

	score := 0
	switch {
	case name == q:
		score += 5
	case strings.Contains(name, q) || strings.Contains(q, name):
		score += 3
	}

	tokens := locationTokenPattern.Split(q, -1)
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if t != "" {
			tokenSet[t] = struct{}{}
		}
	}
	if _, ok := tokenSet[name]; ok {
		score += 2
	}

	for _, alias := range loc.Aliases {
		a := strings.ToLower(alias)
		if a == "" {
			continue
		}
		if a == q {
			score += 4
			break
		}
		if strings.Contains(a, q) || strings.Contains(q, a) {
			score += 3
			break
		}
		if _, ok := tokenSet[a]; ok {
			score += 2
			break
		}
	}

	if loc.Description != "" && strings.Contains(strings.ToLower(loc.Description), q) {
		score++
	}
	if loc.ModernCountry != "" && strings.Contains(strings.ToLower(loc.ModernCountry), q) {
		score += 2
	}
	if loc.Region != "" && strings.Contains(strings.ToLower(loc.Region), q) {
		score++
	}
	return score
}

// clueDescription synthesizes a description from clue hints when the
// location record has none.
func clueDescription(c Clues) string {
	if len(c.Easy) > 0 {
		return c.Easy[0]
	}
	if len(c.Medium) > 0 {
		return c.Medium[0]
	}
	return ""
}
