// Package bible defines the read-only corpus model searched by bartool:
// a Corpus of 66 books, each holding optional chapter slots of verse text.
//
// A nil chapter slot means the archive carries no data for that chapter.
// It is not an error; scans simply skip it.
package bible

import (
	"fmt"
	"slices"
	"strings"

	"github.com/FocuswithJustin/BibleArchive/core/canon"
	berrors "github.com/FocuswithJustin/BibleArchive/core/errors"
)

// Upper bounds on chapter and verse ordinals accepted from importers and
// loaders. No canonical book comes close to either.
const (
	MaxChapters = 200
	MaxVerses   = 200
)

// Corpus is the complete text of one translation.
type Corpus struct {
	Title   string  `json:"title"`
	Version string  `json:"version,omitempty"`
	Books   []*Book `json:"books"`
}

// Book is one book of the corpus.
type Book struct {
	Ordinal      int        `json:"ordinal"`
	Name         string     `json:"name"`
	ChapterCount int        `json:"chapter_count"`
	Chapters     []*Chapter `json:"chapters"`
}

// Chapter holds the verses of one chapter. Book is a back-reference to the
// owning book's ordinal; Ordinal is the chapter number the chapter reports
// for itself.
//
// Verses is indexed by verse ordinal. Gaps lists the ordinals of slots that
// only pad out a sparse chapter; they carry no text and are never visited.
type Chapter struct {
	Book    int      `json:"book"`
	Ordinal int      `json:"ordinal"`
	Verses  []string `json:"verses"`
	Gaps    []int    `json:"gaps,omitempty"`
}

// Verse is an (ordinal, text) pair produced by Chapter.EachVerse.
type Verse struct {
	Ordinal int
	Text    string
}

// NewCorpus returns a corpus with all 66 books present and no chapter data.
func NewCorpus(title string) *Corpus {
	c := &Corpus{Title: title, Books: make([]*Book, 0, canon.BookCount)}
	for _, b := range canon.Books() {
		c.Books = append(c.Books, &Book{
			Ordinal:      b.Ordinal,
			Name:         b.Name,
			ChapterCount: b.Chapters,
			Chapters:     make([]*Chapter, b.Chapters),
		})
	}
	return c
}

// BooksInOrder returns the books in canonical order.
func (c *Corpus) BooksInOrder() []*Book {
	return c.Books
}

// Book returns the book with the given ordinal.
func (c *Corpus) Book(ordinal int) (*Book, bool) {
	if ordinal < 1 || ordinal > len(c.Books) {
		return nil, false
	}
	b := c.Books[ordinal-1]
	return b, b != nil
}

// SetVerse stores text at (book, chapter, verse), growing the chapter and
// its verse list as needed. Used by importers and loaders.
func (c *Corpus) SetVerse(book, chapter, verse int, text string) error {
	b, ok := c.Book(book)
	if !ok {
		return berrors.NewNotFound("book", fmt.Sprintf("%d", book))
	}
	if chapter < 1 || chapter > MaxChapters || verse < 1 || verse > MaxVerses {
		return berrors.NewValidation("reference", fmt.Sprintf("chapter %d verse %d out of range", chapter, verse))
	}
	for len(b.Chapters) < chapter {
		b.Chapters = append(b.Chapters, nil)
	}
	if chapter > b.ChapterCount {
		b.ChapterCount = chapter
	}
	ch := b.Chapters[chapter-1]
	if ch == nil {
		ch = &Chapter{Book: book, Ordinal: chapter}
		b.Chapters[chapter-1] = ch
	}
	return ch.SetVerse(verse, text)
}

// VerseText returns the text at (book, chapter, verse).
func (c *Corpus) VerseText(book, chapter, verse int) (string, error) {
	id := canon.Ref{Book: book, Chapter: chapter, Verse: verse}.String()
	b, ok := c.Book(book)
	if !ok {
		return "", berrors.NewNotFound("book", fmt.Sprintf("%d", book))
	}
	ch, ok := b.Chapter(chapter)
	if !ok {
		return "", berrors.NewNotFound("chapter", id)
	}
	text, ok := ch.Verse(verse)
	if !ok {
		return "", berrors.NewNotFound("verse", id)
	}
	return text, nil
}

// Validate checks that the corpus carries exactly 66 books with contiguous
// ordinals and that no book exceeds MaxChapters or chapter MaxVerses.
func (c *Corpus) Validate() error {
	if len(c.Books) != canon.BookCount {
		return berrors.NewValidation("books", fmt.Sprintf("expected %d books, got %d", canon.BookCount, len(c.Books)))
	}
	var problems []string
	for i, b := range c.Books {
		if b == nil {
			problems = append(problems, fmt.Sprintf("book %d missing", i+1))
			continue
		}
		if b.Ordinal != i+1 {
			problems = append(problems, fmt.Sprintf("book at position %d has ordinal %d", i+1, b.Ordinal))
		}
		if b.ChapterCount < 0 || b.ChapterCount > MaxChapters || len(b.Chapters) > MaxChapters {
			problems = append(problems, fmt.Sprintf("book %d has %d chapters", i+1, max(b.ChapterCount, len(b.Chapters))))
			continue
		}
		for j, ch := range b.Chapters {
			if ch != nil && len(ch.Verses) > MaxVerses {
				problems = append(problems, fmt.Sprintf("chapter %d:%d has %d verses", i+1, j+1, len(ch.Verses)))
			}
		}
	}
	if len(problems) > 0 {
		return berrors.NewValidation("books", strings.Join(problems, "; "))
	}
	return nil
}

// Chapter returns chapter n (1-based) if its slot is present.
func (b *Book) Chapter(n int) (*Chapter, bool) {
	if n < 1 || n > len(b.Chapters) {
		return nil, false
	}
	ch := b.Chapters[n-1]
	return ch, ch != nil
}

// VerseCount returns the number of verses across present chapters.
func (b *Book) VerseCount() int {
	total := 0
	for _, ch := range b.Chapters {
		if ch != nil {
			total += ch.Count()
		}
	}
	return total
}

// PresentChapters returns the number of non-empty chapter slots.
func (b *Book) PresentChapters() int {
	n := 0
	for _, ch := range b.Chapters {
		if ch != nil {
			n++
		}
	}
	return n
}

// SetVerse stores text as verse n, padding any skipped ordinals as gaps.
func (ch *Chapter) SetVerse(n int, text string) error {
	if n < 1 || n > MaxVerses {
		return berrors.NewValidation("verse", fmt.Sprintf("verse %d out of range", n))
	}
	for len(ch.Verses) < n-1 {
		ch.Verses = append(ch.Verses, "")
		ch.Gaps = append(ch.Gaps, len(ch.Verses))
	}
	if len(ch.Verses) == n-1 {
		ch.Verses = append(ch.Verses, text)
		return nil
	}
	ch.Verses[n-1] = text
	ch.Gaps = slices.DeleteFunc(ch.Gaps, func(g int) bool { return g == n })
	return nil
}

func (ch *Chapter) isGap(n int) bool {
	return slices.Contains(ch.Gaps, n)
}

// Count returns the number of present verses.
func (ch *Chapter) Count() int {
	n := 0
	for i := range ch.Verses {
		if !ch.isGap(i + 1) {
			n++
		}
	}
	return n
}

// Verse returns verse n (1-based). Gap slots are reported as absent.
func (ch *Chapter) Verse(n int) (string, bool) {
	if n < 1 || n > len(ch.Verses) || ch.isGap(n) {
		return "", false
	}
	return ch.Verses[n-1], true
}

// EachVerse returns the chapter's present verses as ordinal/text pairs in
// order. Ordinals come from slot position, so they stay correct across gaps.
func (ch *Chapter) EachVerse() []Verse {
	out := make([]Verse, 0, len(ch.Verses))
	for i, text := range ch.Verses {
		if ch.isGap(i + 1) {
			continue
		}
		out = append(out, Verse{Ordinal: i + 1, Text: text})
	}
	return out
}
