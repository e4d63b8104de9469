package search

import (
	"regexp"
	"strings"

	berrors "github.com/FocuswithJustin/BibleArchive/core/errors"
)

// SanitizeWord keeps ASCII letters, digits and spaces.
func SanitizeWord(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == ' ':
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// CompileWord builds a whole-word pattern for raw. An all-lowercase word
// matches case-insensitively; any uppercase letter makes it case-sensitive.
func CompileWord(raw string) (*regexp.Regexp, error) {
	word := SanitizeWord(raw)
	if strings.TrimSpace(word) == "" {
		return nil, berrors.NewPattern(raw, nil)
	}
	pattern := `\b` + word + `\b`
	if word == strings.ToLower(word) {
		pattern = `(?i)` + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, berrors.NewPattern(raw, err)
	}
	return re, nil
}
