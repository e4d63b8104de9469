package main

import (
	"github.com/FocuswithJustin/BibleArchive/core/search"
)

// SearchCmd filters the corpus and lists or counts matching verses.
type SearchCmd struct {
	Match     []string `short:"m" sep:"none" help:"Phrase or /regex/ to match; prefix + to require, ! to exclude"`
	Word      []string `short:"w" sep:"none" help:"Whole word to match; prefix + to require, ! to exclude"`
	Include   []string `short:"i" sep:"none" help:"Books, ranges (Ge..De), chapters (Ps 119), OT or NT; prefix ! to exclude"`
	Count     bool     `short:"c" help:"Print per-chapter counts instead of verses"`
	Threshold *int     `short:"t" help:"With --count, only print chapters reaching this count"`
}

func (c *SearchCmd) Run(g *Globals) error {
	corpus, err := g.openCorpus()
	if err != nil {
		return err
	}
	_, err = search.Search(g.Ctx, corpus, search.Params{
		Match:     c.Match,
		Words:     c.Word,
		Scope:     c.Include,
		Count:     c.Count,
		Threshold: c.Threshold,
	}, g.Stdout)
	return err
}
