package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/BibleArchive/core/bible"
	berrors "github.com/FocuswithJustin/BibleArchive/core/errors"
	"github.com/FocuswithJustin/BibleArchive/internal/archive"
	"github.com/FocuswithJustin/BibleArchive/internal/validation"
)

// runCLI parses args and runs the selected command, returning its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	var usage bytes.Buffer
	opts := append(parserOptions(),
		kong.Writers(&usage, &usage),
		kong.Exit(func(int) {}),
	)
	parser, err := kong.New(&cli, opts...)
	if err != nil {
		t.Fatalf("kong.New() error = %v", err)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	cli.setup(context.Background(), &out)
	err = kctx.Run(&cli.Globals)
	return out.String(), err
}

func testCorpus(t *testing.T) *bible.Corpus {
	t.Helper()
	c := bible.NewCorpus("Test Bible")
	c.Version = "TB"
	for _, v := range []struct {
		book, chapter, verse int
		text                 string
	}{
		{1, 1, 1, "In the beginning God created the heaven and the earth."},
		{1, 1, 2, "And the earth was without form, and void."},
		{19, 119, 164, "Seven times a day do I praise thee because of thy righteous judgments."},
		{43, 11, 35, "Jesus wept."},
		{66, 1, 20, "The seven stars are the angels of the seven churches."},
	} {
		if err := c.SetVerse(v.book, v.chapter, v.verse, v.text); err != nil {
			t.Fatal(err)
		}
	}
	return c
}

func writeTestBAR(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.bar")
	if err := archive.Write(path, testCorpus(t)); err != nil {
		t.Fatalf("archive.Write() error = %v", err)
	}
	return path
}

func TestSearchCommand(t *testing.T) {
	bar := writeTestBAR(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "listing",
			args: []string{"-f", bar, "search", "-w", "seven"},
			want: "Ps 119:164 Seven times a day do I praise thee because of thy righteous judgments.\n" +
				"Rev 1:20 The seven stars are the angels of the seven churches.\n",
		},
		{
			name: "every present verse",
			args: []string{"-f", bar, "search"},
			want: "Ge 1:1 In the beginning God created the heaven and the earth.\n" +
				"Ge 1:2 And the earth was without form, and void.\n" +
				"Ps 119:164 Seven times a day do I praise thee because of thy righteous judgments.\n" +
				"Jn 11:35 Jesus wept.\n" +
				"Rev 1:20 The seven stars are the angels of the seven churches.\n",
		},
		{
			name: "excluded word over sparse chapters",
			args: []string{"-f", bar, "search", "-w", "!seven", "-c"},
			want: "Ge 1: 2 (word count: 0)\nJn 11: 1 (word count: 0)\nTotal: 3 (word count: 0)\n",
		},
		{
			name: "scoped",
			args: []string{"-f", bar, "search", "-w", "seven", "-i", "NT"},
			want: "Rev 1:20 The seven stars are the angels of the seven churches.\n",
		},
		{
			name: "word count",
			args: []string{"-f", bar, "search", "-w", "seven", "-c"},
			want: "Ps 119: 1 (word count: 1)\nRev 1: 1 (word count: 2)\nTotal: 2 (word count: 3)\n",
		},
		{
			name: "threshold",
			args: []string{"-f", bar, "search", "-w", "seven", "-c", "-t", "2"},
			want: "Rev 1: 1 (word count: 2)\nTotal: 2 (word count: 3)\n",
		},
		{
			name: "regex with comma is one token",
			args: []string{"-f", bar, "search", "-m", "/form, and/"},
			want: "Ge 1:2 And the earth was without form, and void.\n",
		},
		{
			name: "no matches",
			args: []string{"-f", bar, "search", "-m", "Melchizedek"},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if out != tt.want {
				t.Errorf("output =\n%s\nwant\n%s", out, tt.want)
			}
		})
	}
}

func TestSearchCommandErrors(t *testing.T) {
	bar := writeTestBAR(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no file", []string{"search", "-w", "seven"}, berrors.ErrInvalidInput},
		{"missing file", []string{"-f", filepath.Join(t.TempDir(), "gone.bar"), "search"}, nil},
		{"unknown container", []string{"-f", "corpus.txt", "search"}, berrors.ErrUnsupported},
		{"range order", []string{"-f", bar, "search", "-i", "Rev..Ge"}, berrors.ErrRangeOrder},
		{"unknown book", []string{"-f", bar, "search", "-i", "Hezekiah"}, berrors.ErrUnknownBook},
		{"bad regex", []string{"-f", bar, "search", "-m", "/[/"}, berrors.ErrInvalidPattern},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if out != "" {
				t.Errorf("wrote %q before failing", out)
			}
		})
	}
}

func TestVerseCommand(t *testing.T) {
	bar := writeTestBAR(t)

	out, err := runCLI(t, "-f", bar, "verse", "Ge 1:1", "John 11:35")
	if err != nil {
		t.Fatal(err)
	}
	want := "Ge 1:1 In the beginning God created the heaven and the earth.\nJn 11:35 Jesus wept.\n"
	if out != want {
		t.Errorf("output =\n%s\nwant\n%s", out, want)
	}

	out, err = runCLI(t, "-f", bar, "verse", "Ge 1:1", "Hezekiah 1:1", "Ex 1:1", "Rev 1:20")
	if !errors.Is(err, berrors.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "Rev 1:20 ") {
		t.Errorf("lookups did not continue past failures: %q", out)
	}
}

func TestDetailsCommand(t *testing.T) {
	bar := writeTestBAR(t)
	out, err := runCLI(t, "-f", bar, "details")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Title:   Test Bible", "Version: TB", "Ge", "Psalms", "1/150", "Verses: 5 "} {
		if !strings.Contains(out, want) {
			t.Errorf("details output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Exodus") {
		t.Error("books without data listed without --all")
	}

	out, err = runCLI(t, "-f", bar, "details", "--all")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Exodus") {
		t.Error("--all should list every book")
	}
}

func TestConvertToSQLiteAndSearch(t *testing.T) {
	bar := writeTestBAR(t)
	db := filepath.Join(t.TempDir(), "out", "test.db")

	if _, err := runCLI(t, "-f", bar, "convert", "--out", db); err != nil {
		t.Fatalf("convert error = %v", err)
	}
	out, err := runCLI(t, "-f", db, "search", "-m", "wept")
	if err != nil {
		t.Fatal(err)
	}
	if out != "Jn 11:35 Jesus wept.\n" {
		t.Errorf("search over SQLite = %q", out)
	}

	back := filepath.Join(t.TempDir(), "back.bar")
	if _, err := runCLI(t, "-f", db, "convert", "--out", back); err != nil {
		t.Fatal(err)
	}
	out, err = runCLI(t, "-f", back, "verse", "Ps 119:164")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "Ps 119:164 Seven times") {
		t.Errorf("round trip = %q", out)
	}
}

func TestVerifyCommand(t *testing.T) {
	bar := writeTestBAR(t)
	out, err := runCLI(t, "-f", bar, "verify")
	if err != nil {
		t.Fatalf("verify error = %v", err)
	}
	if !strings.Contains(out, "4 entries verified") {
		t.Errorf("output = %q", out)
	}

	db := filepath.Join(t.TempDir(), "test.db")
	if _, err := runCLI(t, "-f", db, "verify"); !errors.Is(err, berrors.ErrUnsupported) {
		t.Errorf("verify on SQLite error = %v, want ErrUnsupported", err)
	}
}

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "kjv.xml")
	xml := `<?xml version="1.0"?>
<osis xmlns="http://www.bibletechnologies.net/2003/OSIS/namespace">
  <osisText osisIDWork="KJV">
    <header><work osisWork="KJV"><title>King James Version</title></work></header>
    <div type="book" osisID="John">
      <chapter osisID="John.11"><verse osisID="John.11.35">Jesus wept.</verse></chapter>
    </div>
  </osisText>
</osis>`
	if err := os.WriteFile(src, []byte(xml), 0644); err != nil {
		t.Fatal(err)
	}

	bar := filepath.Join(dir, "kjv.bar")
	out, err := runCLI(t, "import", src, "--out", bar)
	if err != nil {
		t.Fatalf("import error = %v", err)
	}
	if !strings.Contains(out, "Imported 1 books, 1 verses") {
		t.Errorf("output = %q", out)
	}

	out, err = runCLI(t, "-f", bar, "verse", "Jn 11:35")
	if err != nil {
		t.Fatal(err)
	}
	if out != "Jn 11:35 Jesus wept.\n" {
		t.Errorf("verse = %q", out)
	}

	if _, err := runCLI(t, "import", src, "--out", filepath.Join(dir, "kjv.txt")); !errors.Is(err, berrors.ErrUnsupported) {
		t.Errorf("import to unknown container error = %v, want ErrUnsupported", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "bartool version "+version) {
		t.Errorf("output = %q", out)
	}
}

func TestContainerFor(t *testing.T) {
	tests := []struct {
		path string
		want validation.FileType
		ok   bool
	}{
		{"kjv.bar", validation.FileTypeBAR, true},
		{"KJV.BAR", validation.FileTypeBAR, true},
		{"kjv.db", validation.FileTypeSQLite, true},
		{"kjv.sqlite", validation.FileTypeSQLite, true},
		{"kjv.sqlite3", validation.FileTypeSQLite, true},
		{"kjv.xml", "", false},
		{"kjv", "", false},
	}
	for _, tt := range tests {
		got, err := containerFor(tt.path)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("containerFor(%q) = %q, %v", tt.path, got, err)
		}
	}
}
