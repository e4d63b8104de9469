package main

import (
	"fmt"

	"github.com/FocuswithJustin/BibleArchive/core/canon"
	berrors "github.com/FocuswithJustin/BibleArchive/core/errors"
	"github.com/FocuswithJustin/BibleArchive/internal/logging"
)

// VerseCmd prints verses by reference. A bad reference is reported and the
// remaining references are still looked up.
type VerseCmd struct {
	Refs []string `arg:"" name:"ref" help:"Verse references such as \"Ge 1:1\" or \"1 John 4:8\""`
}

func (c *VerseCmd) Run(g *Globals) error {
	corpus, err := g.openCorpus()
	if err != nil {
		return err
	}

	failed := 0
	for _, raw := range c.Refs {
		ref, err := canon.ParseVerseRef(raw)
		if err == nil {
			var text string
			text, err = corpus.VerseText(ref.Book, ref.Chapter, ref.Verse)
			if err == nil {
				fmt.Fprintf(g.Stdout, "%s %s\n", ref, text)
				continue
			}
		}
		failed++
		logging.ErrorContext(g.Ctx, "verse lookup failed", "ref", raw, "error", err)
	}
	if failed > 0 {
		return berrors.NewValidation("ref", fmt.Sprintf("%d of %d references failed", failed, len(c.Refs)))
	}
	return nil
}
