package archive

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/BibleArchive/core/bible"
	"github.com/FocuswithJustin/BibleArchive/core/canon"
	berrors "github.com/FocuswithJustin/BibleArchive/core/errors"
)

// FormatVersion is the manifest format written by this package.
const FormatVersion = 1

// ManifestName is the archive entry holding the Manifest.
const ManifestName = "manifest.json"

// Manifest describes a BAR file.
type Manifest struct {
	Format  int               `json:"format"`
	Title   string            `json:"title"`
	Version string            `json:"version,omitempty"`
	Created time.Time         `json:"created"`
	Entries map[string]string `json:"entries"` // entry name -> BLAKE3 hex digest
}

// Digest computes the BLAKE3 hex digest of data.
func Digest(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

// BookEntryName returns the archive entry name for a book ordinal.
func BookEntryName(ordinal int) string {
	return fmt.Sprintf("books/%02d.json", ordinal)
}

// EntryStatus is the verification outcome for one archive entry.
type EntryStatus struct {
	Name   string
	Digest string
	Err    error
}

// Report is the outcome of verifying an archive.
type Report struct {
	Manifest *Manifest
	Entries  []EntryStatus
}

// OK reports whether every entry verified.
func (r *Report) OK() bool {
	for _, e := range r.Entries {
		if e.Err != nil {
			return false
		}
	}
	return true
}

// Err returns the first entry failure, if any.
func (r *Report) Err() error {
	for _, e := range r.Entries {
		if e.Err != nil {
			return e.Err
		}
	}
	return nil
}

// verify checks every entry against the manifest.
func verify(entries map[string][]byte) (*Report, error) {
	raw, ok := entries[ManifestName]
	if !ok {
		return nil, berrors.NewNotFound("archive entry", ManifestName)
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, &berrors.ParseError{Format: "manifest", Path: ManifestName, Message: err.Error(), Err: err}
	}
	if m.Format != FormatVersion {
		return nil, berrors.NewUnsupported("manifest format", fmt.Sprintf("version %d", m.Format))
	}

	names := make([]string, 0, len(entries)+len(m.Entries))
	seen := make(map[string]bool)
	for name := range entries {
		if name != ManifestName {
			names = append(names, name)
			seen[name] = true
		}
	}
	for name := range m.Entries {
		if !seen[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	report := &Report{Manifest: &m}
	for _, name := range names {
		status := EntryStatus{Name: name}
		expected := m.Entries[name]
		if data, ok := entries[name]; ok {
			status.Digest = Digest(data)
		}
		if status.Digest != expected {
			status.Err = &berrors.IntegrityError{Entry: name, Expected: expected, Actual: status.Digest}
		}
		report.Entries = append(report.Entries, status)
	}
	return report, nil
}

// Verify checks a BAR file's entries against its manifest without decoding
// the books.
func Verify(path string) (*Report, error) {
	entries, err := ReadEntries(path)
	if err != nil {
		return nil, err
	}
	return verify(entries)
}

// Open reads, verifies and decodes a BAR file. Any integrity failure aborts.
func Open(path string) (*bible.Corpus, error) {
	entries, err := ReadEntries(path)
	if err != nil {
		return nil, err
	}
	report, err := verify(entries)
	if err != nil {
		return nil, err
	}
	if err := report.Err(); err != nil {
		return nil, err
	}

	corpus := bible.NewCorpus(report.Manifest.Title)
	corpus.Version = report.Manifest.Version
	for name, data := range entries {
		if !strings.HasPrefix(name, "books/") {
			continue
		}
		var book bible.Book
		if err := json.Unmarshal(data, &book); err != nil {
			return nil, &berrors.ParseError{Format: "book entry", Path: name, Message: err.Error(), Err: err}
		}
		if _, ok := canon.BookByOrdinal(book.Ordinal); !ok {
			return nil, berrors.NewValidation(name, fmt.Sprintf("book ordinal %d out of range", book.Ordinal))
		}
		if name != BookEntryName(book.Ordinal) {
			return nil, berrors.NewValidation(name, fmt.Sprintf("entry holds book %d", book.Ordinal))
		}
		b := book
		corpus.Books[book.Ordinal-1] = &b
	}
	if err := corpus.Validate(); err != nil {
		return nil, err
	}
	return corpus, nil
}
