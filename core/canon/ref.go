package canon

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	berrors "github.com/FocuswithJustin/BibleArchive/core/errors"
)

// Ref is a resolved book, chapter or verse reference.
type Ref struct {
	// Book is the 1-based book ordinal.
	Book int `json:"book"`

	// Chapter is the chapter number (0 for whole-book references).
	Chapter int `json:"chapter,omitempty"`

	// Verse is the verse number (0 for whole-chapter references).
	Verse int `json:"verse,omitempty"`
}

// String renders the reference with the display abbreviation, e.g. "Ge 1:1".
func (r Ref) String() string {
	var sb strings.Builder
	sb.WriteString(Abbrev(r.Book))
	if r.Chapter > 0 {
		sb.WriteString(" ")
		sb.WriteString(strconv.Itoa(r.Chapter))
		if r.Verse > 0 {
			sb.WriteString(":")
			sb.WriteString(strconv.Itoa(r.Verse))
		}
	}
	return sb.String()
}

// IsBook reports whether the reference names a whole book.
func (r Ref) IsBook() bool {
	return r.Chapter == 0
}

// IsChapter reports whether the reference names a whole chapter.
func (r Ref) IsChapter() bool {
	return r.Chapter > 0 && r.Verse == 0
}

// refGrammar is the participle grammar for human-style references.
// Examples: "Ge", "Ps 119", "1Jn 3:16", "1 John 3", "Song of Solomon 2:4"
//
//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	BookPrefix string       `parser:"@Int?"`
	BookWords  []string     `parser:"@Ident+"`
	ChapterRef *chapterPart `parser:"@@?"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type chapterPart struct {
	Chapter int  `parser:"@Int"`
	Verse   *int `parser:"( \":\" @Int )?"`
}

var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z]+\.?`},
	{Name: "Punct", Pattern: `:`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// ParseRef parses a book, chapter or verse reference.
// Supported formats:
//   - "Ge" (book only)
//   - "Ps 119" (book and chapter)
//   - "1Jn 3:16" (book, chapter and verse)
//   - "1 John 3:16" or "Song of Solomon 2" (full names)
//
// Shape errors are *errors.ReferenceError, unresolved books are
// *errors.UnknownBookError.
func ParseRef(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}, berrors.NewReference(s, "empty reference")
	}

	parsed, err := refParser.ParseString("", s)
	if err != nil {
		return Ref{}, &berrors.ReferenceError{Token: s, Message: "malformed reference", Err: err}
	}

	bookText := parsed.BookPrefix + strings.Join(parsed.BookWords, " ")
	idx, ok := ParseBookAbbrev(bookText)
	if !ok {
		return Ref{}, berrors.NewUnknownBook(bookText, s)
	}

	ref := Ref{Book: idx + 1}
	if parsed.ChapterRef != nil {
		if parsed.ChapterRef.Chapter < 1 {
			return Ref{}, berrors.NewReference(s, "chapter must be at least 1")
		}
		ref.Chapter = parsed.ChapterRef.Chapter
		if parsed.ChapterRef.Verse != nil {
			if *parsed.ChapterRef.Verse < 1 {
				return Ref{}, berrors.NewReference(s, "verse must be at least 1")
			}
			ref.Verse = *parsed.ChapterRef.Verse
		}
	}

	return ref, nil
}

// ParseVerseRef parses a reference that must name a single verse.
func ParseVerseRef(s string) (Ref, error) {
	ref, err := ParseRef(s)
	if err != nil {
		return Ref{}, err
	}
	if ref.Verse == 0 {
		return Ref{}, berrors.NewReference(s, fmt.Sprintf("expected <book> <chapter>:<verse>, got %s", ref))
	}
	return ref, nil
}
