// Command bartool searches and inspects Bible archives.
// It reads BAR files and SQLite corpus databases, imports OSIS XML, and
// converts between the two containers.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/BibleArchive/core/bible"
	berrors "github.com/FocuswithJustin/BibleArchive/core/errors"
	"github.com/FocuswithJustin/BibleArchive/internal/archive"
	"github.com/FocuswithJustin/BibleArchive/internal/logging"
	"github.com/FocuswithJustin/BibleArchive/internal/store"
	"github.com/FocuswithJustin/BibleArchive/internal/validation"
)

const version = "0.4.0"

// Globals holds the flags shared by every command.
type Globals struct {
	File      string `name:"file" short:"f" env:"BAR_FILE" help:"Corpus file (.bar, .db or .sqlite)" type:"path"`
	LogLevel  string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log format (text, json)"`

	Stdout io.Writer       `kong:"-"`
	Ctx    context.Context `kong:"-"`
}

// CLI defines the command-line interface for bartool.
type CLI struct {
	Globals

	Search  SearchCmd  `cmd:"" help:"Search verses by phrase, pattern and word"`
	Verse   VerseCmd   `cmd:"" help:"Print verses by reference"`
	Details DetailsCmd `cmd:"" help:"List details about the corpus"`
	Import  ImportCmd  `cmd:"" help:"Import an OSIS XML Bible"`
	Convert ConvertCmd `cmd:"" help:"Re-encode the corpus into another container"`
	Verify  VerifyCmd  `cmd:"" help:"Verify BAR file integrity"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// containerFor picks the corpus container from the file extension. Only BAR
// and SQLite files hold corpora.
func containerFor(path string) (validation.FileType, error) {
	switch kind := validation.TypeForExtension(path); kind {
	case validation.FileTypeBAR, validation.FileTypeSQLite:
		return kind, nil
	default:
		return "", berrors.NewUnsupported("corpus container", filepath.Ext(path))
	}
}

// openCorpus loads the corpus named by --file.
func (g *Globals) openCorpus() (*bible.Corpus, error) {
	if g.File == "" {
		return nil, berrors.NewValidation("file", "path to corpus file not specified")
	}
	kind, err := containerFor(g.File)
	if err != nil {
		return nil, err
	}
	if err := validation.CheckFile(g.File, kind); err != nil {
		return nil, err
	}

	start := time.Now()
	var corpus *bible.Corpus
	switch kind {
	case validation.FileTypeBAR:
		corpus, err = archive.Open(g.File)
	case validation.FileTypeSQLite:
		corpus, err = loadSQLite(g.Ctx, g.File)
	}
	if err != nil {
		return nil, berrors.Wrapf(err, "open %s", g.File)
	}
	logging.CorpusOpened(g.Ctx, g.File, string(kind), len(corpus.Books), time.Since(start))
	return corpus, nil
}

func loadSQLite(ctx context.Context, path string) (*bible.Corpus, error) {
	db, err := store.OpenReadOnly(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return store.Load(ctx, db)
}

// writeCorpus stores corpus at path in the container its extension names.
func writeCorpus(ctx context.Context, path string, corpus *bible.Corpus) error {
	if err := validation.ValidatePath(path); err != nil {
		return berrors.NewValidation("out", err.Error())
	}
	kind, err := containerFor(path)
	if err != nil {
		return err
	}
	switch kind {
	case validation.FileTypeBAR:
		return archive.Write(path, corpus)
	default:
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return berrors.NewIO("mkdir", filepath.Dir(path), err)
		}
		db, err := store.Open(ctx, path)
		if err != nil {
			return err
		}
		defer db.Close()
		return store.Save(ctx, db, corpus)
	}
}

func parserOptions() []kong.Option {
	return []kong.Option{
		kong.Name("bartool"),
		kong.Description("Bible archive search and inspection"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	}
}

// setup applies the logging flags and fills the runtime fields of Globals.
func (cli *CLI) setup(ctx context.Context, stdout io.Writer) {
	logging.InitLogger(logging.ParseLevel(cli.LogLevel), logging.ParseFormat(cli.LogFormat))
	cli.Stdout = stdout
	cli.Ctx = logging.WithInvocationID(ctx, logging.NewInvocationID())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var cli CLI
	kctx := kong.Parse(&cli, parserOptions()...)
	cli.setup(ctx, os.Stdout)
	logging.DebugContext(cli.Ctx, "command started", "command", kctx.Command())
	err := kctx.Run(&cli.Globals)
	kctx.FatalIfErrorf(err)
}
