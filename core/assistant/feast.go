package assistant

import (
	"fmt"
	"strings"
)

// Feast is one appointed time from the biblical calendar.
type Feast struct {
	ID          string   `json:"id"`
	EnglishName string   `json:"english_name"`
	HebrewName  string   `json:"hebrew_name"`
	Themes      []string `json:"themes"`
	Observance  string   `json:"observance"`
	PrimaryRefs []string `json:"primary_refs"`
	NTRefs      []string `json:"nt_refs,omitempty"`
	Category    string   `json:"category"`
	Pilgrimage  bool     `json:"pilgrimage,omitempty"`
}

// feastCategories describes each calendar grouping.
var feastCategories = map[string]string{
	"spring":        "Spring feasts celebrating redemption and harvest (Passover, Unleavened Bread, Firstfruits, Shavuot)",
	"fall":          "Fall feasts focused on repentance and ingathering (Trumpets, Atonement, Tabernacles)",
	"weekly":        "Shabbat - the weekly day of rest, remembering creation and redemption",
	"monthly":       "Rosh Chodesh - marking the new moon and beginning of each Hebrew month",
	"post-exilic":   "Purim - celebrating God's deliverance in the time of Esther",
	"second-temple": "Hanukkah - commemorating the rededication of the Temple",
}

var feasts = []Feast{
	{
		ID: "passover", EnglishName: "Passover", HebrewName: "Pesach",
		Themes:      []string{"Redemption", "Sacrifice", "Deliverance"},
		Observance:  "A memorial meal recalling the Exodus, when the blood of the lamb spared Israel's firstborn.",
		PrimaryRefs: []string{"Exodus 12:1-14", "Leviticus 23:4-8", "Deuteronomy 16:1-8"},
		NTRefs:      []string{"Matthew 26:17-30", "John 1:29", "1 Corinthians 5:7"},
		Category:    "spring", Pilgrimage: true,
	},
	{
		ID: "unleavened_bread", EnglishName: "Feast of Unleavened Bread", HebrewName: "Chag HaMatzot",
		Themes:      []string{"Purity", "Haste", "Separation from sin"},
		Observance:  "Seven days of eating unleavened bread, with leaven removed from every home.",
		PrimaryRefs: []string{"Exodus 12:15-20", "Leviticus 23:6-8"},
		NTRefs:      []string{"1 Corinthians 5:6-8"},
		Category:    "spring",
	},
	{
		ID: "firstfruits", EnglishName: "Feast of Firstfruits", HebrewName: "Yom HaBikkurim",
		Themes:      []string{"First harvest", "Dedication", "Resurrection"},
		Observance:  "The first sheaf of the barley harvest waved before the LORD.",
		PrimaryRefs: []string{"Leviticus 23:9-14"},
		NTRefs:      []string{"1 Corinthians 15:20-23"},
		Category:    "spring",
	},
	{
		ID: "weeks", EnglishName: "Feast of Weeks (Pentecost)", HebrewName: "Shavuot",
		Themes:      []string{"Harvest", "Covenant", "Holy Spirit"},
		Observance:  "Fifty days after Firstfruits, offering the first of the wheat harvest.",
		PrimaryRefs: []string{"Leviticus 23:15-22", "Deuteronomy 16:9-12"},
		NTRefs:      []string{"Acts 2:1-4"},
		Category:    "spring", Pilgrimage: true,
	},
	{
		ID: "trumpets", EnglishName: "Feast of Trumpets", HebrewName: "Yom Teruah",
		Themes:      []string{"Awakening", "Repentance", "Kingship"},
		Observance:  "A sabbath of trumpet blasts opening the fall season of repentance.",
		PrimaryRefs: []string{"Leviticus 23:23-25", "Numbers 29:1-6"},
		NTRefs:      []string{"1 Corinthians 15:52", "1 Thessalonians 4:16"},
		Category:    "fall",
	},
	{
		ID: "atonement", EnglishName: "Day of Atonement", HebrewName: "Yom Kippur",
		Themes:      []string{"Atonement", "Cleansing", "Judgment"},
		Observance:  "The solemn fast when the high priest entered the Most Holy Place for the sins of the nation.",
		PrimaryRefs: []string{"Leviticus 16", "Leviticus 23:26-32"},
		NTRefs:      []string{"Hebrews 9:11-28"},
		Category:    "fall",
	},
	{
		ID: "tabernacles", EnglishName: "Feast of Tabernacles", HebrewName: "Sukkot",
		Themes:      []string{"Dwelling", "Provision", "Joy"},
		Observance:  "Seven days dwelling in booths, remembering the wilderness journey.",
		PrimaryRefs: []string{"Leviticus 23:33-43", "Deuteronomy 16:13-15"},
		NTRefs:      []string{"John 7:2-39", "Revelation 21:3"},
		Category:    "fall", Pilgrimage: true,
	},
	{
		ID: "purim", EnglishName: "Purim", HebrewName: "Purim",
		Themes:      []string{"Deliverance", "Providence"},
		Observance:  "Commemorates God's deliverance of the Jews in the days of Esther.",
		PrimaryRefs: []string{"Esther 9:20-28"},
		Category:    "post-exilic",
	},
	{
		ID: "hanukkah", EnglishName: "Hanukkah (Feast of Dedication)", HebrewName: "Chanukah",
		Themes:      []string{"Dedication", "Light"},
		Observance:  "Eight days marking the rededication of the Second Temple.",
		PrimaryRefs: []string{"John 10:22-23"},
		NTRefs:      []string{"John 10:22-23"},
		Category:    "second-temple",
	},
	{
		ID: "sabbath", EnglishName: "Sabbath", HebrewName: "Shabbat",
		Themes:      []string{"Rest", "Creation", "Covenant"},
		Observance:  "The weekly day of rest, set apart from creation onward.",
		PrimaryRefs: []string{"Genesis 2:2-3", "Exodus 20:8-11"},
		NTRefs:      []string{"Mark 2:27-28", "Hebrews 4:9-11"},
		Category:    "weekly",
	},
	{
		ID: "new_moons", EnglishName: "New Moon", HebrewName: "Rosh Chodesh",
		Themes:      []string{"Renewal", "Appointed times"},
		Observance:  "Trumpets over offerings marked the start of each Hebrew month.",
		PrimaryRefs: []string{"Numbers 10:10", "Psalm 81:3"},
		NTRefs:      []string{"Colossians 2:16"},
		Category:    "monthly",
	},
}

// feastKeywords maps query keywords to feast IDs, checked in a stable
// order so overlapping mentions resolve deterministically.
var feastKeywords = []struct {
	keyword string
	feastID string
}{
	{"passover", "passover"},
	{"pesach", "passover"},
	{"unleavened", "unleavened_bread"},
	{"matzot", "unleavened_bread"},
	{"firstfruits", "firstfruits"},
	{"bikkurim", "firstfruits"},
	{"pentecost", "weeks"},
	{"shavuot", "weeks"},
	{"weeks", "weeks"},
	{"trumpets", "trumpets"},
	{"yom teruah", "trumpets"},
	{"rosh hashana", "trumpets"},
	{"atonement", "atonement"},
	{"yom kippur", "atonement"},
	{"tabernacles", "tabernacles"},
	{"sukkot", "tabernacles"},
	{"booths", "tabernacles"},
	{"purim", "purim"},
	{"hanukkah", "hanukkah"},
	{"chanukah", "hanukkah"},
	{"dedication", "hanukkah"},
	{"sabbath", "sabbath"},
	{"shabbat", "sabbath"},
	{"new moon", "new_moons"},
	{"rosh chodesh", "new_moons"},
}

var feastQueryKeywords = []string{
	"feast", "holiday", "passover", "pesach", "unleavened", "pentecost",
	"shavuot", "trumpets", "atonement", "yom kippur", "tabernacles", "sukkot",
	"purim", "hanukkah", "sabbath", "shabbat", "rosh chodesh", "new moon",
	"hebrew calendar", "biblical calendar", "appointed time", "moedim",
}

const feastOverview = `The Biblical feast days (moedim - "appointed times") are sacred calendar events established by God in Leviticus 23 and throughout the Torah. They serve as memorial markers of God's redemptive acts, agricultural celebrations tied to the land of Israel, prophetic patterns pointing to Messiah's work, communal worship gatherings, and teaching tools about covenant relationship with God.

The major feasts fall into two seasons: Spring (redemption and firstfruits, Nisan/Iyar) and Fall (judgment and ingathering, Tishrei). Jesus and the apostles observed these feasts, and the New Testament shows their fulfillment in Christ's death, resurrection, and the giving of the Holy Spirit.`

// IsFeastQuery reports whether a question concerns feast days or the
// biblical calendar.
func IsFeastQuery(query string) bool {
	lower := strings.ToLower(query)
	for _, kw := range feastQueryKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// AnswerFeastQuery builds a feast-day answer for the query. A specific
// feast mention wins over the general overview; ok is false when the
// query names nothing the feast table covers.
func AnswerFeastQuery(query string) (string, bool) {
	lower := strings.ToLower(query)

	for _, m := range feastKeywords {
		if strings.Contains(lower, m.keyword) {
			if f, ok := feastByID(m.feastID); ok {
				return formatFeast(f), true
			}
		}
	}

	if strings.Contains(lower, "feast") || strings.Contains(lower, "holiday") || strings.Contains(lower, "appointed time") || strings.Contains(lower, "moedim") {
		var b strings.Builder
		b.WriteString(feastOverview)
		b.WriteString("\n\nThe major Biblical feasts include:\n")
		for _, f := range feasts[:8] {
			fmt.Fprintf(&b, "\n• **%s** (%s): %s", f.EnglishName, f.HebrewName, strings.Join(f.Themes, ", "))
		}
		b.WriteString("\n\nWould you like to know more about a specific feast day?")
		return b.String(), true
	}

	return "", false
}

func feastByID(id string) (Feast, bool) {
	for _, f := range feasts {
		if f.ID == id {
			return f, true
		}
	}
	return Feast{}, false
}

// formatFeast renders one feast entry in the layered answer layout.
func formatFeast(f Feast) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** (%s)\n\n", f.EnglishName, f.HebrewName)
	if len(f.Themes) > 0 {
		fmt.Fprintf(&b, "**Themes:** %s\n\n", strings.Join(f.Themes, ", "))
	}
	if f.Observance != "" {
		fmt.Fprintf(&b, "**Observance:** %s\n\n", f.Observance)
	}
	if len(f.PrimaryRefs) > 0 {
		b.WriteString("**Primary Scripture References:**\n")
		for _, ref := range f.PrimaryRefs {
			fmt.Fprintf(&b, "• %s\n", ref)
		}
		b.WriteString("\n")
	}
	if len(f.NTRefs) > 0 {
		b.WriteString("**New Testament Fulfillment:**\n")
		for _, ref := range f.NTRefs {
			fmt.Fprintf(&b, "• %s\n", ref)
		}
		b.WriteString("\n")
	}
	if desc, ok := feastCategories[f.Category]; ok {
		fmt.Fprintf(&b, "**Category:** %s\n\n", desc)
	}
	if f.Pilgrimage {
		b.WriteString("**Note:** This is one of the three pilgrimage festivals where Israelites were commanded to appear before the LORD in Jerusalem (see Deuteronomy 16).\n\n")
	}
	return strings.TrimSpace(b.String())
}
