package archive

import (
	"archive/tar"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/BibleArchive/core/bible"
	berrors "github.com/FocuswithJustin/BibleArchive/core/errors"
)

// osRename is a variable to allow testing of rename errors.
var osRename = os.Rename

// Write encodes corpus as a BAR file at path. Books with no chapter data are
// left out. The file is written to a temporary sibling and renamed into
// place.
func Write(path string, corpus *bible.Corpus) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return berrors.Wrap(err, "failed to create parent directory")
	}

	created := time.Now().UTC().Truncate(time.Second)
	manifest := Manifest{
		Format:  FormatVersion,
		Title:   corpus.Title,
		Version: corpus.Version,
		Created: created,
		Entries: make(map[string]string),
	}

	type entry struct {
		name string
		data []byte
	}
	var books []entry
	for _, b := range corpus.BooksInOrder() {
		if b == nil || b.PresentChapters() == 0 {
			continue
		}
		data, err := json.Marshal(b)
		if err != nil {
			return berrors.Wrapf(err, "encode book %d", b.Ordinal)
		}
		name := BookEntryName(b.Ordinal)
		manifest.Entries[name] = Digest(data)
		books = append(books, entry{name: name, data: data})
	}

	manifestData, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return berrors.Wrap(err, "encode manifest")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".bar-*")
	if err != nil {
		return berrors.NewIO("create", path, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	xw, err := xz.NewWriter(tmp)
	if err != nil {
		cleanup()
		return berrors.Wrap(err, "xz writer")
	}
	tw := tar.NewWriter(xw)

	all := append([]entry{{name: ManifestName, data: manifestData}}, books...)
	for _, e := range all {
		header := &tar.Header{
			Name:     e.name,
			Mode:     0644,
			Size:     int64(len(e.data)),
			ModTime:  created,
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(header); err != nil {
			cleanup()
			return berrors.Wrapf(err, "write header %s", e.name)
		}
		if _, err := tw.Write(e.data); err != nil {
			cleanup()
			return berrors.Wrapf(err, "write %s", e.name)
		}
	}

	if err := tw.Close(); err != nil {
		cleanup()
		return berrors.Wrap(err, "close tar")
	}
	if err := xw.Close(); err != nil {
		cleanup()
		return berrors.Wrap(err, "close xz")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return berrors.NewIO("close", tmpPath, err)
	}
	if err := osRename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return berrors.NewIO("rename", path, err)
	}
	return nil
}
