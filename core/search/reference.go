package search

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/BibleArchive/core/canon"
	berrors "github.com/FocuswithJustin/BibleArchive/core/errors"
)

// SpecKind classifies a parsed scope token.
type SpecKind int

const (
	// KindBook targets a single book.
	KindBook SpecKind = iota
	// KindRange targets an inclusive range of books.
	KindRange
	// KindChapter targets one chapter of one book.
	KindChapter
)

func (k SpecKind) String() string {
	switch k {
	case KindBook:
		return "book"
	case KindRange:
		return "range"
	case KindChapter:
		return "chapter"
	default:
		return fmt.Sprintf("SpecKind(%d)", int(k))
	}
}

// ScopeSpec is one parsed scope token.
type ScopeSpec struct {
	Token   string
	Exclude bool
	Kind    SpecKind
	Book    int // first (or only) book ordinal
	BookEnd int // last book ordinal; equals Book unless Kind is KindRange
	Chapter int // chapter number for KindChapter
}

// ParseScopeToken classifies one scope token.
//
// Errors are *errors.ReferenceError for malformed shapes,
// *errors.UnknownBookError for unresolved abbreviations and
// *errors.RangeOrderError for ranges written back to front.
func ParseScopeToken(token string) (ScopeSpec, error) {
	spec := ScopeSpec{Token: token}
	s := token
	if strings.HasPrefix(s, "!") {
		spec.Exclude = true
		s = s[1:]
	}
	s = strings.TrimSpace(s)

	switch {
	case s == "":
		return ScopeSpec{}, berrors.NewReference(token, "empty scope")
	case s == "OT":
		spec.Kind, spec.Book, spec.BookEnd = KindRange, canon.OTFirst, canon.OTLast
	case s == "NT":
		spec.Kind, spec.Book, spec.BookEnd = KindRange, canon.NTFirst, canon.NTLast
	case strings.Contains(s, ".."):
		parts := strings.Split(s, "..")
		if len(parts) != 2 {
			return ScopeSpec{}, berrors.NewReference(token, "a range needs exactly two books")
		}
		from, to := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		start, ok := canon.ParseBookAbbrev(from)
		if !ok {
			return ScopeSpec{}, berrors.NewUnknownBook(from, token)
		}
		end, ok := canon.ParseBookAbbrev(to)
		if !ok {
			return ScopeSpec{}, berrors.NewUnknownBook(to, token)
		}
		if end < start {
			return ScopeSpec{}, berrors.NewRangeOrder(token, from, to)
		}
		spec.Kind, spec.Book, spec.BookEnd = KindRange, start+1, end+1
	default:
		ref, err := canon.ParseRef(s)
		if err != nil {
			return ScopeSpec{}, err
		}
		if ref.Verse != 0 {
			return ScopeSpec{}, berrors.NewReference(token, "scope stops at chapters, verses are not allowed")
		}
		spec.Book, spec.BookEnd = ref.Book, ref.Book
		if ref.Chapter > 0 {
			spec.Kind, spec.Chapter = KindChapter, ref.Chapter
		} else {
			spec.Kind = KindBook
		}
	}
	return spec, nil
}

// ParseScope parses every token, stopping at the first failure.
func ParseScope(tokens []string) ([]ScopeSpec, error) {
	specs := make([]ScopeSpec, 0, len(tokens))
	for _, tok := range tokens {
		spec, err := ParseScopeToken(tok)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
