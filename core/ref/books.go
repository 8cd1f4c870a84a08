package ref

// bookAliases maps short abbreviations to canonical book names.
// Lookup uses the first three characters of the space-stripped,
// lowercased token, so two-character keys only match two-character input.
var bookAliases = map[string]string{
	"gen": "Genesis", "ex": "Exodus", "lev": "Leviticus", "num": "Numbers", "deu": "Deuteronomy",
	"jos": "Joshua", "jdg": "Judges", "rut": "Ruth", "1sa": "1 Samuel", "2sa": "2 Samuel",
	"1ki": "1 Kings", "2ki": "2 Kings", "1ch": "1 Chronicles", "2ch": "2 Chronicles", "ezr": "Ezra",
	"neh": "Nehemiah", "est": "Esther", "job": "Job", "ps": "Psalms", "psa": "Psalms", "pro": "Proverbs", "ecc": "Ecclesiastes",
	"isa": "Isaiah", "jer": "Jeremiah", "lam": "Lamentations", "eze": "Ezekiel", "dan": "Daniel",
	"hos": "Hosea", "joe": "Joel", "amo": "Amos", "oba": "Obadiah", "jon": "Jonah", "mic": "Micah",
	"nah": "Nahum", "hab": "Habakkuk", "zep": "Zephaniah", "hag": "Haggai", "zec": "Zechariah", "mal": "Malachi",
	"mat": "Matthew", "mk": "Mark", "lk": "Luke", "jn": "John", "act": "Acts", "rom": "Romans",
	"1co": "1 Corinthians", "2co": "2 Corinthians", "gal": "Galatians", "eph": "Ephesians", "php": "Philippians",
	"col": "Colossians", "1th": "1 Thessalonians", "2th": "2 Thessalonians", "1ti": "1 Timothy", "2ti": "2 Timothy",
	"tit": "Titus", "phm": "Philemon", "heb": "Hebrews", "jas": "James", "1pe": "1 Peter", "2pe": "2 Peter",
	"1jn": "1 John", "2jn": "2 John", "3jn": "3 John", "jud": "Jude", "rev": "Revelation",
}

// apocryphaAliases maps normalized (lowercased, alphanumeric-only) book
// tokens to canonical apocryphal book names.
var apocryphaAliases = map[string]string{
	"tobit": "Tobit", "tobias": "Tobit", "tob": "Tobit",
	"judith": "Judith", "jdt": "Judith",
	"additionstoesther": "Additions to Esther", "greekesther": "Additions to Esther", "addesth": "Additions to Esther",
	"1esdras": "1 Esdras", "iesdras": "1 Esdras", "3esdras": "1 Esdras",
	"2esdras": "2 Esdras", "ivesdras": "2 Esdras", "4esdras": "2 Esdras",
	"prayerofmanasseh": "Prayer of Manasseh", "prmanasseh": "Prayer of Manasseh",
	"prayerofmanasses": "Prayer of Manasseh",
	"psalm151": "Psalm 151", "ps151": "Psalm 151",
	"3maccabees": "3 Maccabees", "iiimaccabees": "3 Maccabees",
	"4maccabees": "4 Maccabees", "ivmaccabees": "4 Maccabees",
	"wisdomofsolomon": "Wisdom of Solomon", "wisdom": "Wisdom of Solomon", "wisd": "Wisdom of Solomon",
	"sirach": "Sirach", "ecclesiasticus": "Sirach", "ecclus": "Sirach",
	"baruch": "Baruch",
	"letterofjeremiah": "Letter of Jeremiah", "epistleofjeremiah": "Letter of Jeremiah",
	"prayerofazariah": "Prayer of Azariah", "songofthreeholychildren": "Song of the Three Holy Children",
	"songofthreeyouths": "Song of the Three Holy Children", "songofthethree": "Song of the Three Holy Children",
	"susanna": "Susanna",
	"belandthedragon": "Bel and the Dragon",
	"1maccabees": "1 Maccabees", "imaccabees": "1 Maccabees",
	"2maccabees": "2 Maccabees", "iimaccabees": "2 Maccabees",
}

// OldTestamentBooks lists the 39 canonical Old Testament books in order.
var OldTestamentBooks = []string{
	"Genesis", "Exodus", "Leviticus", "Numbers", "Deuteronomy",
	"Joshua", "Judges", "Ruth", "1 Samuel", "2 Samuel",
	"1 Kings", "2 Kings", "1 Chronicles", "2 Chronicles", "Ezra",
	"Nehemiah", "Esther", "Job", "Psalms", "Proverbs", "Ecclesiastes",
	"Song of Solomon", "Isaiah", "Jeremiah", "Lamentations", "Ezekiel", "Daniel",
	"Hosea", "Joel", "Amos", "Obadiah", "Jonah", "Micah",
	"Nahum", "Habakkuk", "Zephaniah", "Haggai", "Zechariah", "Malachi",
}

// NewTestamentBooks lists the 27 canonical New Testament books in order.
var NewTestamentBooks = []string{
	"Matthew", "Mark", "Luke", "John", "Acts", "Romans",
	"1 Corinthians", "2 Corinthians", "Galatians", "Ephesians", "Philippians",
	"Colossians", "1 Thessalonians", "2 Thessalonians", "1 Timothy", "2 Timothy",
	"Titus", "Philemon", "Hebrews", "James", "1 Peter", "2 Peter",
	"1 John", "2 John", "3 John", "Jude", "Revelation",
}

var (
	oldTestamentSet = toSet(OldTestamentBooks)
	newTestamentSet = toSet(NewTestamentBooks)
	apocryphaSet    = func() map[string]struct{} {
		s := make(map[string]struct{})
		for _, name := range apocryphaAliases {
			s[name] = struct{}{}
		}
		return s
	}()
)

func toSet(books []string) map[string]struct{} {
	s := make(map[string]struct{}, len(books))
	for _, b := range books {
		s[b] = struct{}{}
	}
	return s
}

// IsOldTestament reports whether the canonical book name is in the Old Testament.
func IsOldTestament(book string) bool {
	_, ok := oldTestamentSet[book]
	return ok
}

// IsNewTestament reports whether the canonical book name is in the New Testament.
func IsNewTestament(book string) bool {
	_, ok := newTestamentSet[book]
	return ok
}

// IsApocryphal reports whether the canonical book name belongs to the Apocrypha.
func IsApocryphal(book string) bool {
	_, ok := apocryphaSet[book]
	return ok
}
