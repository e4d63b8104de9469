package main

import (
	"fmt"

	"github.com/FocuswithJustin/BibleArchive/core/canon"
)

// DetailsCmd lists the corpus title, version and per-book counts.
type DetailsCmd struct {
	All bool `short:"a" help:"Include books with no chapter data"`
}

func (c *DetailsCmd) Run(g *Globals) error {
	corpus, err := g.openCorpus()
	if err != nil {
		return err
	}
	stats := corpus.Stats()

	fmt.Fprintf(g.Stdout, "Title:   %s\n", stats.Title)
	if stats.Version != "" {
		fmt.Fprintf(g.Stdout, "Version: %s\n", stats.Version)
	}
	fmt.Fprintln(g.Stdout)

	fmt.Fprintf(g.Stdout, "%-5s %-16s %9s %7s %8s\n", "BOOK", "NAME", "CHAPTERS", "VERSES", "WORDS")
	for _, b := range stats.PerBook {
		if b.PresentChapters == 0 && !c.All {
			continue
		}
		chapters := fmt.Sprintf("%d/%d", b.PresentChapters, b.DeclaredChapter)
		fmt.Fprintf(g.Stdout, "%-5s %-16s %9s %7d %8d\n",
			canon.Abbrev(b.Ordinal), b.Name, chapters, b.Verses, b.Words)
	}

	fmt.Fprintf(g.Stdout, "\nBooks: %d  Chapters: %d  Verses: %d  Words: %d\n",
		stats.Books, stats.Chapters, stats.Verses, stats.Words)
	return nil
}
