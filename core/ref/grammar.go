package ref

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/FocuswithJustin/SharpAssistant/core/errors"
)

// refGrammar is the participle grammar for normalized references.
// Examples: "John 3", "John 3:16", "John 3:16-18", "1 John 3:16",
// "Song of Solomon 2:1".
//
type refGrammar struct {
	Prefix  *int       `parser:"@Int?"`
	Words   []string   `parser:"@Ident+"`
	Chapter int        `parser:"@Int"`
	Verses  *versePart `parser:"( \":\" @@ )?"`
}

type versePart struct {
	Start int  `parser:"@Int"`
	End   *int `parser:"( \"-\" @Int )?"`
}

var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z][A-Za-z']*`},
	{Name: "Punct", Pattern: `[:\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// ParseNormalized parses a strictly normalized reference string, the
// form produced by Ref.String. Unlike Parse, which scans free text for
// the first reference-shaped substring, ParseNormalized requires the
// whole input to be a reference and returns an error otherwise.
func ParseNormalized(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}, errors.NewValidation("reference", "empty reference string")
	}

	parsed, err := refParser.ParseString("", s)
	if err != nil {
		return Ref{}, &errors.ParseError{
			Format:  "reference",
			Message: s,
			Err:     err,
		}
	}

	book := strings.Join(parsed.Words, " ")
	if parsed.Prefix != nil {
		book = strconv.Itoa(*parsed.Prefix) + " " + book
	}

	r := Ref{
		Book:    ResolveBook(book),
		Chapter: parsed.Chapter,
	}
	if parsed.Verses != nil {
		r.Verse = parsed.Verses.Start
		if parsed.Verses.End != nil {
			r.VerseEnd = *parsed.Verses.End
		}
	}
	return r, nil
}
