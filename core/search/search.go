package search

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/FocuswithJustin/BibleArchive/core/bible"
	"github.com/FocuswithJustin/BibleArchive/core/canon"
	berrors "github.com/FocuswithJustin/BibleArchive/core/errors"
	"github.com/FocuswithJustin/BibleArchive/internal/logging"
)

// Corpus is the read-only view of a corpus a search needs.
type Corpus interface {
	BooksInOrder() []*bible.Book
}

// Params describes one search invocation.
type Params struct {
	Match     []string // phrase and regex tokens
	Words     []string // whole-word tokens
	Scope     []string // book and chapter scope tokens
	Count     bool     // report counts instead of listing verses
	Threshold *int     // only report chapters reaching this count
}

// State is a stage of the search lifecycle.
type State int

const (
	StateInit State = iota
	StateParseFilters
	StateScan
	StateReport
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateParseFilters:
		return "parse_filters"
	case StateScan:
		return "scan"
	case StateReport:
		return "report"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Plan is a compiled search, ready to scan.
type Plan struct {
	Scope     Scope
	Filters   FilterSet
	Count     bool
	Threshold *int

	// Word is set in word-count mode: exactly one word token and no match
	// tokens. Its occurrences are counted per admitted verse.
	Word *regexp.Regexp
}

// Compile builds the scope chains and text filters for p. Every token is
// checked before any scanning happens.
func Compile(p Params) (*Plan, error) {
	if p.Threshold != nil && *p.Threshold < 0 {
		return nil, berrors.NewValidation("threshold", "must not be negative")
	}

	scope, err := BuildScope(p.Scope)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Scope: scope, Count: p.Count, Threshold: p.Threshold}
	for _, tok := range p.Match {
		if err := plan.Filters.AddToken(tok); err != nil {
			return nil, err
		}
	}
	for _, tok := range p.Words {
		if err := plan.Filters.AddWord(tok); err != nil {
			return nil, err
		}
	}

	if p.Count && len(p.Words) == 1 && len(p.Match) == 0 {
		_, body := splitPrefix(p.Words[0])
		re, err := CompileWord(body)
		if err != nil {
			return nil, err
		}
		plan.Word = re
	}
	return plan, nil
}

// Hit is one admitted verse.
type Hit struct {
	Book    int
	Chapter int
	Verse   int
	Text    string
}

// String renders the listing line "<Abbrev> <chapter>:<verse> <text>".
func (h Hit) String() string {
	return fmt.Sprintf("%s %d:%d %s", canon.Abbrev(h.Book), h.Chapter, h.Verse, h.Text)
}

// ChapterTally is the per-chapter result of a counting scan.
type ChapterTally struct {
	Book    int
	Chapter int
	Verses  int
	Words   int
}

// Result is the outcome of a completed scan.
type Result struct {
	Hits      []Hit          // listing mode only
	Chapters  []ChapterTally // counting mode only; chapters with at least one verse
	Verses    int
	Words     int
	WordCount bool
}

// Scan walks the corpus in canonical order. The context is checked at each
// chapter boundary; a cancelled scan returns the context error and no result.
func (p *Plan) Scan(ctx context.Context, corpus Corpus) (*Result, error) {
	res := &Result{WordCount: p.Word != nil}

	for _, book := range corpus.BooksInOrder() {
		if book == nil || !p.Scope.AdmitsBook(book.Ordinal) {
			continue
		}
		for slot, ch := range book.Chapters {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if ch == nil {
				continue
			}
			chapter := slot + 1
			if ch.Ordinal != chapter {
				logging.ChapterAnomaly(ctx, book.Ordinal, chapter, "ordinal", ch.Ordinal)
			}
			if ch.Book != book.Ordinal {
				logging.ChapterAnomaly(ctx, book.Ordinal, chapter, "book", ch.Book)
			}
			if !p.Scope.AdmitsChapter(book.Ordinal, chapter) {
				continue
			}

			tally := p.scanChapter(book.Ordinal, chapter, ch, res)
			if p.Count && tally.Verses > 0 {
				res.Chapters = append(res.Chapters, tally)
			}
			res.Verses += tally.Verses
			res.Words += tally.Words
		}
	}
	return res, nil
}

func (p *Plan) scanChapter(book, chapter int, ch *bible.Chapter, res *Result) ChapterTally {
	tally := ChapterTally{Book: book, Chapter: chapter}
	for _, v := range ch.EachVerse() {
		if !p.Filters.Admits(v.Text) {
			continue
		}
		tally.Verses++
		if p.Word != nil {
			tally.Words += len(p.Word.FindAllStringIndex(v.Text, -1))
		}
		if !p.Count {
			res.Hits = append(res.Hits, Hit{Book: book, Chapter: chapter, Verse: v.Ordinal, Text: v.Text})
		}
	}
	return tally
}

// Search compiles p, scans the corpus and writes the listing or count report
// to out. Nothing is written unless the whole search succeeds.
func Search(ctx context.Context, corpus Corpus, p Params, out io.Writer) (*Result, error) {
	start := time.Now()
	state := StateInit
	advance := func(next State) {
		logging.DebugContext(ctx, "search_state", "from", state.String(), "to", next.String())
		state = next
	}

	advance(StateParseFilters)
	plan, err := Compile(p)
	if err != nil {
		advance(StateFailed)
		return nil, err
	}

	advance(StateScan)
	res, err := plan.Scan(ctx, corpus)
	if err != nil {
		advance(StateFailed)
		return nil, err
	}

	advance(StateReport)
	if err := plan.Render(out, res); err != nil {
		advance(StateFailed)
		return nil, berrors.NewIO("write", "search output", err)
	}

	advance(StateDone)
	mode := "list"
	if plan.Count {
		mode = "count"
	}
	logging.SearchCompleted(ctx, mode, res.Verses, res.Words, time.Since(start))
	return res, nil
}
