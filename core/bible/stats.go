package bible

import "strings"

// BookStats summarizes one book.
type BookStats struct {
	Ordinal         int
	Name            string
	DeclaredChapter int
	PresentChapters int
	Verses          int
	Words           int
}

// Stats summarizes a corpus.
type Stats struct {
	Title    string
	Version  string
	Books    int
	Chapters int
	Verses   int
	Words    int
	PerBook  []BookStats
}

// Stats walks the corpus once and tallies chapters, verses and
// whitespace-separated words.
func (c *Corpus) Stats() Stats {
	s := Stats{Title: c.Title, Version: c.Version}
	for _, b := range c.Books {
		if b == nil {
			continue
		}
		bs := b.Stats()
		s.Books++
		s.Chapters += bs.PresentChapters
		s.Verses += bs.Verses
		s.Words += bs.Words
		s.PerBook = append(s.PerBook, bs)
	}
	return s
}

// Stats tallies one book.
func (b *Book) Stats() BookStats {
	bs := BookStats{
		Ordinal:         b.Ordinal,
		Name:            b.Name,
		DeclaredChapter: b.ChapterCount,
	}
	for _, ch := range b.Chapters {
		if ch == nil {
			continue
		}
		bs.PresentChapters++
		for _, v := range ch.EachVerse() {
			bs.Verses++
			bs.Words += len(strings.Fields(v.Text))
		}
	}
	return bs
}
