package search

import "fmt"

// RuleOp tags a scope rule.
type RuleOp int

const (
	IncludeAll RuleOp = iota
	ExcludeAll
	IncludeOne
	ExcludeOne
	IncludeRange
	ExcludeRange
)

func (op RuleOp) String() string {
	switch op {
	case IncludeAll:
		return "IncludeAll"
	case ExcludeAll:
		return "ExcludeAll"
	case IncludeOne:
		return "IncludeOne"
	case ExcludeOne:
		return "ExcludeOne"
	case IncludeRange:
		return "IncludeRange"
	case ExcludeRange:
		return "ExcludeRange"
	default:
		return fmt.Sprintf("RuleOp(%d)", int(op))
	}
}

// Rule is one step of a scope chain. Lo and Hi bound the ids it targets;
// One rules use Lo only.
type Rule struct {
	Op RuleOp
	Lo int
	Hi int
}

// Apply folds one candidate id through the rule. Exclusions can only clear
// the accumulator and inclusions can only set it.
func (r Rule) Apply(acc bool, id int) bool {
	switch r.Op {
	case IncludeAll:
		return true
	case ExcludeAll:
		return false
	case IncludeOne:
		return acc || id == r.Lo
	case ExcludeOne:
		return acc && id != r.Lo
	case IncludeRange:
		return acc || (id >= r.Lo && id <= r.Hi)
	case ExcludeRange:
		return acc && (id < r.Lo || id > r.Hi)
	default:
		return acc
	}
}

func (r Rule) String() string {
	switch r.Op {
	case IncludeAll, ExcludeAll:
		return r.Op.String()
	case IncludeOne, ExcludeOne:
		return fmt.Sprintf("%s(%d)", r.Op, r.Lo)
	default:
		return fmt.Sprintf("%s(%d..%d)", r.Op, r.Lo, r.Hi)
	}
}

// Chain is an ordered rule list evaluated as a left fold seeded with true.
// The zero Chain admits everything.
type Chain []Rule

// Admits reports whether id survives the chain.
func (c Chain) Admits(id int) bool {
	acc := true
	for _, r := range c {
		acc = r.Apply(acc, id)
	}
	return acc
}

// Push appends an include or exclude rule for lo..hi. The first inclusion
// on an empty chain is preceded by ExcludeAll, flipping the chain from
// admit-all to deny-all.
func (c *Chain) Push(include bool, lo, hi int) {
	if include && len(*c) == 0 {
		*c = append(*c, Rule{Op: ExcludeAll})
	}
	var op RuleOp
	switch {
	case include && lo == hi:
		op = IncludeOne
	case include:
		op = IncludeRange
	case lo == hi:
		op = ExcludeOne
	default:
		op = ExcludeRange
	}
	*c = append(*c, Rule{Op: op, Lo: lo, Hi: hi})
}

// Scope is the compiled scope of one search: a global book chain and an
// independent chapter chain for each book that received chapter tokens.
type Scope struct {
	Books    Chain
	Chapters map[int]Chain
}

// AdmitsBook reports whether the global chain admits the book.
func (s Scope) AdmitsBook(book int) bool {
	return s.Books.Admits(book)
}

// AdmitsChapter reports whether the book's chapter chain admits the
// chapter. Books without a chapter chain admit every chapter.
func (s Scope) AdmitsChapter(book, chapter int) bool {
	chain, ok := s.Chapters[book]
	if !ok {
		return true
	}
	return chain.Admits(chapter)
}

// CompileScope turns parsed specs into chains, in token order.
//
// A chapter inclusion also admits its book at book level when the global
// chain, as compiled so far, is empty or denies it. A chapter exclusion for a
// book that is not admitted is dropped.
func CompileScope(specs []ScopeSpec) Scope {
	scope := Scope{Chapters: make(map[int]Chain)}
	for _, spec := range specs {
		switch spec.Kind {
		case KindBook, KindRange:
			scope.Books.Push(!spec.Exclude, spec.Book, spec.BookEnd)
		case KindChapter:
			admitted := len(scope.Books) > 0 && scope.Books.Admits(spec.Book)
			chain := scope.Chapters[spec.Book]
			if spec.Exclude {
				if len(scope.Books) > 0 && !admitted {
					continue
				}
				chain.Push(false, spec.Chapter, spec.Chapter)
			} else {
				chain.Push(true, spec.Chapter, spec.Chapter)
				if !admitted {
					scope.Books.Push(true, spec.Book, spec.Book)
				}
			}
			scope.Chapters[spec.Book] = chain
		}
	}
	return scope
}

// BuildScope parses and compiles scope tokens. Any parse error aborts.
func BuildScope(tokens []string) (Scope, error) {
	specs, err := ParseScope(tokens)
	if err != nil {
		return Scope{}, err
	}
	return CompileScope(specs), nil
}
