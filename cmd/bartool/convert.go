package main

import (
	"fmt"
	"os"

	berrors "github.com/FocuswithJustin/BibleArchive/core/errors"
	"github.com/FocuswithJustin/BibleArchive/core/sqlite"
	"github.com/FocuswithJustin/BibleArchive/internal/archive"
	"github.com/FocuswithJustin/BibleArchive/internal/logging"
	"github.com/FocuswithJustin/BibleArchive/internal/osis"
	"github.com/FocuswithJustin/BibleArchive/internal/validation"
)

// ImportCmd imports an OSIS XML file.
type ImportCmd struct {
	Path  string `arg:"" help:"OSIS XML file" type:"existingfile"`
	Out   string `required:"" help:"Output corpus path (.bar, .db or .sqlite)" type:"path"`
	Title string `help:"Override the title found in the OSIS header"`
}

func (c *ImportCmd) Run(g *Globals) error {
	if _, err := containerFor(c.Out); err != nil {
		return err
	}
	if err := validation.CheckFile(c.Path, validation.FileTypeXML); err != nil {
		return err
	}
	f, err := os.Open(c.Path)
	if err != nil {
		return berrors.NewIO("open", c.Path, err)
	}
	defer f.Close()

	corpus, err := osis.Parse(g.Ctx, f)
	if err != nil {
		return berrors.Wrapf(err, "import %s", c.Path)
	}
	if c.Title != "" {
		corpus.Title = c.Title
	}
	if err := writeCorpus(g.Ctx, c.Out, corpus); err != nil {
		return err
	}
	stats := corpus.Stats()
	books := 0
	for _, b := range stats.PerBook {
		if b.PresentChapters > 0 {
			books++
		}
	}
	logging.InfoContext(g.Ctx, "imported corpus", "path", c.Out, "books", books, "verses", stats.Verses)
	fmt.Fprintf(g.Stdout, "Imported %d books, %d verses into %s\n", books, stats.Verses, c.Out)
	return nil
}

// ConvertCmd writes the opened corpus into another container.
type ConvertCmd struct {
	Out string `required:"" help:"Output corpus path (.bar, .db or .sqlite)" type:"path"`
}

func (c *ConvertCmd) Run(g *Globals) error {
	if c.Out == g.File {
		return berrors.NewValidation("out", "output path is the input file")
	}
	corpus, err := g.openCorpus()
	if err != nil {
		return err
	}
	if err := writeCorpus(g.Ctx, c.Out, corpus); err != nil {
		return err
	}
	fmt.Fprintf(g.Stdout, "Converted %s -> %s\n", g.File, c.Out)
	return nil
}

// VerifyCmd checks every BAR entry against the manifest digests.
type VerifyCmd struct{}

func (c *VerifyCmd) Run(g *Globals) error {
	if g.File == "" {
		return berrors.NewValidation("file", "path to corpus file not specified")
	}
	kind, err := containerFor(g.File)
	if err != nil {
		return err
	}
	if kind != validation.FileTypeBAR {
		return berrors.NewUnsupported("verify", "only BAR files carry digests")
	}

	report, err := archive.Verify(g.File)
	if err != nil {
		return err
	}
	for _, e := range report.Entries {
		status := "ok"
		if e.Err != nil {
			status = e.Err.Error()
		}
		fmt.Fprintf(g.Stdout, "%-16s %s\n", e.Name, status)
	}
	if !report.OK() {
		return report.Err()
	}
	fmt.Fprintf(g.Stdout, "%d entries verified\n", len(report.Entries))
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	info := sqlite.GetInfo()
	fmt.Fprintf(g.Stdout, "bartool version %s (sqlite: %s)\n", version, info.DriverType)
	return nil
}
