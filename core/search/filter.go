package search

import (
	"regexp"
	"strings"

	berrors "github.com/FocuswithJustin/BibleArchive/core/errors"
)

// Matcher decides whether one verse text matches a token.
type Matcher interface {
	Match(text string) bool
}

// Substring matches a literal, case-sensitive substring.
type Substring string

// Match implements Matcher.
func (s Substring) Match(text string) bool {
	return strings.Contains(text, string(s))
}

// Pattern matches a compiled regular expression.
type Pattern struct {
	Re *regexp.Regexp
}

// Match implements Matcher.
func (p Pattern) Match(text string) bool {
	return p.Re.MatchString(text)
}

// Group selects which predicate group a token lands in.
type Group int

const (
	// GroupAny admits when any of its matchers match.
	GroupAny Group = iota
	// GroupAll admits only when every matcher matches.
	GroupAll
	// GroupNone rejects when any matcher matches.
	GroupNone
)

// splitPrefix strips a leading "!" or "+" and reports the target group.
func splitPrefix(token string) (Group, string) {
	switch {
	case strings.HasPrefix(token, "!"):
		return GroupNone, token[1:]
	case strings.HasPrefix(token, "+"):
		return GroupAll, token[1:]
	default:
		return GroupAny, token
	}
}

// FilterSet holds the three predicate groups applied to each verse.
type FilterSet struct {
	Any  []Matcher
	All  []Matcher
	None []Matcher
}

func (f *FilterSet) add(g Group, m Matcher) {
	switch g {
	case GroupAll:
		f.All = append(f.All, m)
	case GroupNone:
		f.None = append(f.None, m)
	default:
		f.Any = append(f.Any, m)
	}
}

// AddToken classifies a match token and adds it to its group.
// "/re/" compiles as a regular expression and "/re/i" as a case-insensitive
// one; anything else is a literal substring.
func (f *FilterSet) AddToken(token string) error {
	g, body := splitPrefix(token)
	m, err := compileMatch(body)
	if err != nil {
		return err
	}
	f.add(g, m)
	return nil
}

// AddWord compiles a word token with CompileWord and adds it to its group.
func (f *FilterSet) AddWord(token string) error {
	g, body := splitPrefix(token)
	re, err := CompileWord(body)
	if err != nil {
		return err
	}
	f.add(g, Pattern{Re: re})
	return nil
}

func compileMatch(body string) (Matcher, error) {
	expr, fold, delimited := delimitedPattern(body)
	if !delimited {
		return Substring(body), nil
	}
	if expr == "" {
		return nil, berrors.NewPattern(body, nil)
	}
	if fold {
		expr = `(?i)` + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, berrors.NewPattern(body, err)
	}
	return Pattern{Re: re}, nil
}

// delimitedPattern unwraps "/expr/" and "/expr/i".
func delimitedPattern(s string) (expr string, fold bool, ok bool) {
	if len(s) < 2 || s[0] != '/' {
		return "", false, false
	}
	switch {
	case strings.HasSuffix(s, "/i") && len(s) >= 3:
		return s[1 : len(s)-2], true, true
	case strings.HasSuffix(s, "/"):
		return s[1 : len(s)-1], false, true
	default:
		return "", false, false
	}
}

// Admits applies any ∧ all ∧ ¬none to one verse text. An empty any-group
// admits.
func (f *FilterSet) Admits(text string) bool {
	if len(f.Any) > 0 {
		hit := false
		for _, m := range f.Any {
			if m.Match(text) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	for _, m := range f.All {
		if !m.Match(text) {
			return false
		}
	}
	for _, m := range f.None {
		if m.Match(text) {
			return false
		}
	}
	return true
}

// Empty reports whether the set has no matchers at all.
func (f *FilterSet) Empty() bool {
	return len(f.Any) == 0 && len(f.All) == 0 && len(f.None) == 0
}
