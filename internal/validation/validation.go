// Package validation checks user-supplied paths and confirms that corpus
// files hold what their extension claims before they are opened.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	berrors "github.com/FocuswithJustin/BibleArchive/core/errors"
)

// MaxPathLength is the maximum allowed path length.
const MaxPathLength = 4096

// Common validation errors.
var (
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
)

// ValidatePath checks a path for length limits and invalid characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}

// FileType is a corpus file type.
type FileType string

const (
	FileTypeBAR     FileType = "bar"
	FileTypeSQLite  FileType = "sqlite"
	FileTypeXML     FileType = "xml"
	FileTypeUnknown FileType = "unknown"
)

var magicBytes = []struct {
	fileType FileType
	magic    []byte
}{
	{FileTypeBAR, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}}, // xz
	{FileTypeBAR, []byte{0x1f, 0x8b}},                         // gzip, older exports
	{FileTypeSQLite, []byte("SQLite format 3\x00")},
}

// DetectFileType sniffs the leading bytes of r.
func DetectFileType(r io.Reader) (FileType, error) {
	buf := make([]byte, 512)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return FileTypeUnknown, fmt.Errorf("failed to read file header: %w", err)
	}
	buf = buf[:n]

	for _, sig := range magicBytes {
		if bytes.HasPrefix(buf, sig.magic) {
			return sig.fileType, nil
		}
	}
	trimmed := bytes.TrimLeft(buf, "\xef\xbb\xbf \t\r\n")
	if bytes.HasPrefix(trimmed, []byte("<")) {
		return FileTypeXML, nil
	}
	return FileTypeUnknown, nil
}

// TypeForExtension maps a file extension to the type it promises.
func TypeForExtension(path string) FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bar":
		return FileTypeBAR
	case ".db", ".sqlite", ".sqlite3":
		return FileTypeSQLite
	case ".xml", ".osis":
		return FileTypeXML
	default:
		return FileTypeUnknown
	}
}

// CheckFile validates path and confirms its content matches want. An empty
// file passes as SQLite, which treats it as a fresh database.
func CheckFile(path string, want FileType) error {
	if err := ValidatePath(path); err != nil {
		return berrors.NewValidation("path", err.Error())
	}
	f, err := os.Open(path)
	if err != nil {
		return berrors.NewIO("open", path, err)
	}
	defer f.Close()

	got, err := DetectFileType(f)
	if err != nil {
		return berrors.NewIO("read", path, err)
	}
	if got == want {
		return nil
	}
	if want == FileTypeSQLite && got == FileTypeUnknown {
		if info, err := f.Stat(); err == nil && info.Size() == 0 {
			return nil
		}
	}
	return berrors.NewValidation(path, fmt.Sprintf("file type mismatch: expected %s but content is %s", want, got))
}
