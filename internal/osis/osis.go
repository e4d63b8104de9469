// Package osis imports OSIS XML Bibles into a bible.Corpus.
//
// Both verse encodings are accepted: container verses
// (<verse osisID="Gen.1.1">text</verse>) and milestones
// (<verse sID="Gen.1.1"/>text<verse eID="Gen.1.1"/>). Notes are dropped and
// whitespace is collapsed.
package osis

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/BibleArchive/core/bible"
	"github.com/FocuswithJustin/BibleArchive/core/canon"
	berrors "github.com/FocuswithJustin/BibleArchive/core/errors"
	"github.com/FocuswithJustin/BibleArchive/internal/logging"
)

var (
	bookDivExpr = xpath.MustCompile("//div[@type='book']")
	titleExpr   = xpath.MustCompile("//header/work/title")
	textExpr    = xpath.MustCompile("//osisText")
)

// Parse reads an OSIS document. Books whose osisID is not one of the 66
// canonical books are skipped with a warning.
func Parse(ctx context.Context, r io.Reader) (*bible.Corpus, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, berrors.NewParse("OSIS", "", err.Error())
	}

	title := ""
	if n := xmlquery.QuerySelector(doc, titleExpr); n != nil {
		title = collapse(n.InnerText())
	}
	version := ""
	if n := xmlquery.QuerySelector(doc, textExpr); n != nil {
		version = n.SelectAttr("osisIDWork")
	}
	if title == "" {
		title = version
	}

	corpus := bible.NewCorpus(title)
	corpus.Version = version

	divs := xmlquery.QuerySelectorAll(doc, bookDivExpr)
	if len(divs) == 0 {
		return nil, berrors.NewParse("OSIS", "", "no book divisions found")
	}
	for _, div := range divs {
		id := div.SelectAttr("osisID")
		book, ok := canon.BookByOSIS(id)
		if !ok {
			logging.WarnContext(ctx, "skipping unknown OSIS book", "osis_id", id)
			continue
		}
		w := &walker{ctx: ctx, corpus: corpus, book: book.Ordinal}
		w.walk(div)
		if w.err != nil {
			return nil, w.err
		}
		if w.open != "" {
			w.flush()
		}
		logging.DebugContext(ctx, "imported OSIS book", "book", book.OSIS, "verses", w.count)
	}
	return corpus, nil
}

// walker collects verse text from one book division in document order.
type walker struct {
	ctx    context.Context
	corpus *bible.Corpus
	book   int

	open  string // osisID of the milestone verse being collected
	text  strings.Builder
	count int
	err   error
}

func (w *walker) walk(n *xmlquery.Node) {
	for c := n.FirstChild; c != nil && w.err == nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if w.open != "" {
				w.text.WriteString(c.Data)
			}
		case xmlquery.ElementNode:
			switch c.Data {
			case "note":
				continue
			case "verse":
				w.verse(c)
			default:
				w.walk(c)
			}
		}
	}
}

func (w *walker) verse(n *xmlquery.Node) {
	if sid := n.SelectAttr("sID"); sid != "" {
		if w.open != "" {
			w.flush()
		}
		id := n.SelectAttr("osisID")
		if id == "" {
			id = sid
		}
		w.open = id
		return
	}
	if n.SelectAttr("eID") != "" {
		if w.open != "" {
			w.flush()
		}
		return
	}
	id := n.SelectAttr("osisID")
	if id == "" {
		return
	}
	var sb strings.Builder
	textOf(n, &sb)
	w.store(id, sb.String())
}

func (w *walker) flush() {
	id := w.open
	w.open = ""
	text := w.text.String()
	w.text.Reset()
	w.store(id, text)
}

func (w *walker) store(osisID, text string) {
	// A verse spanning several references keeps its text on the first.
	first := strings.Fields(osisID)
	if len(first) == 0 {
		return
	}
	book, chapter, verse, err := parseOSISRef(first[0])
	if err != nil {
		w.err = err
		return
	}
	if book != w.book {
		logging.WarnContext(w.ctx, "verse outside its book division", "osis_id", first[0])
	}
	if err := w.corpus.SetVerse(book, chapter, verse, collapse(text)); err != nil {
		w.err = err
		return
	}
	w.count++
}

// textOf appends the text under n, skipping notes.
func textOf(n *xmlquery.Node, sb *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			sb.WriteString(c.Data)
		case xmlquery.ElementNode:
			if c.Data != "note" {
				textOf(c, sb)
			}
		}
	}
}

// parseOSISRef splits "Gen.1.1" into ordinals.
func parseOSISRef(id string) (book, chapter, verse int, err error) {
	parts := strings.Split(id, ".")
	if len(parts) != 3 {
		return 0, 0, 0, berrors.NewReference(id, "expected Book.Chapter.Verse")
	}
	b, ok := canon.BookByOSIS(parts[0])
	if !ok {
		return 0, 0, 0, berrors.NewUnknownBook(parts[0], id)
	}
	chapter, err = strconv.Atoi(parts[1])
	if err != nil || chapter < 1 {
		return 0, 0, 0, berrors.NewReference(id, fmt.Sprintf("bad chapter %q", parts[1]))
	}
	verse, err = strconv.Atoi(parts[2])
	if err != nil || verse < 1 {
		return 0, 0, 0, berrors.NewReference(id, fmt.Sprintf("bad verse %q", parts[2]))
	}
	return b.Ordinal, chapter, verse, nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
