package validation

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	berrors "github.com/FocuswithJustin/BibleArchive/core/errors"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"valid", "kjv.bar", nil},
		{"nested", "/data/corpora/kjv.db", nil},
		{"empty", "", ErrEmptyPath},
		{"null byte", "kjv\x00.bar", ErrInvalidCharacter},
		{"control", "kjv\n.bar", ErrInvalidCharacter},
		{"too long", strings.Repeat("a", MaxPathLength+1), ErrPathTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidatePath() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePath() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want FileType
	}{
		{"xz", []byte{0xfd, '7', 'z', 'X', 'Z', 0x00, 0x00}, FileTypeBAR},
		{"gzip", []byte{0x1f, 0x8b, 0x08}, FileTypeBAR},
		{"sqlite", []byte("SQLite format 3\x00rest"), FileTypeSQLite},
		{"xml", []byte("<?xml version=\"1.0\"?><osis/>"), FileTypeXML},
		{"xml with bom and space", []byte("\xef\xbb\xbf\n  <osis/>"), FileTypeXML},
		{"text", []byte("In the beginning"), FileTypeUnknown},
		{"empty", nil, FileTypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFileType(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("DetectFileType() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTypeForExtension(t *testing.T) {
	tests := map[string]FileType{
		"kjv.bar":    FileTypeBAR,
		"KJV.BAR":    FileTypeBAR,
		"kjv.db":     FileTypeSQLite,
		"kjv.sqlite": FileTypeSQLite,
		"kjv.xml":    FileTypeXML,
		"kjv.osis":   FileTypeXML,
		"kjv.txt":    FileTypeUnknown,
	}
	for path, want := range tests {
		if got := TypeForExtension(path); got != want {
			t.Errorf("TypeForExtension(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	xml := write("kjv.xml", []byte("<osis/>"))
	if err := CheckFile(xml, FileTypeXML); err != nil {
		t.Errorf("CheckFile(xml) error = %v", err)
	}
	if err := CheckFile(xml, FileTypeBAR); !errors.Is(err, berrors.ErrInvalidInput) {
		t.Errorf("CheckFile(xml as bar) error = %v, want ErrInvalidInput", err)
	}

	empty := write("empty.db", nil)
	if err := CheckFile(empty, FileTypeSQLite); err != nil {
		t.Errorf("empty SQLite file rejected: %v", err)
	}

	missing := filepath.Join(dir, "missing.bar")
	var ioErr *berrors.IOError
	if err := CheckFile(missing, FileTypeBAR); !errors.As(err, &ioErr) {
		t.Errorf("CheckFile(missing) error = %v, want IOError", err)
	}
}
