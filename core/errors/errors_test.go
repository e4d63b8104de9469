package errors

import (
	"errors"
	"fmt"
	"regexp"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with ID",
			err:      &NotFoundError{Resource: "verse", ID: "Ge 1:99"},
			wantMsg:  "verse not found: Ge 1:99",
			wantBase: ErrNotFound,
		},
		{
			name:     "without ID",
			err:      &NotFoundError{Resource: "chapter"},
			wantMsg:  "chapter not found",
			wantBase: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("slot empty")
		err := &NotFoundError{Resource: "chapter", ID: "Ps 151", Err: underlyingErr}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestConstructionErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantMsg  string
		wantBase error
	}{
		{
			name:     "reference with message",
			err:      NewReference("Ge..Ex..Le", "expected two books"),
			wantMsg:  `invalid reference "Ge..Ex..Le": expected two books`,
			wantBase: ErrInvalidReference,
		},
		{
			name:     "reference without message",
			err:      &ReferenceError{Token: "Ge x"},
			wantMsg:  `invalid reference "Ge x"`,
			wantBase: ErrInvalidReference,
		},
		{
			name:     "unknown book alone",
			err:      NewUnknownBook("Xyz", "Xyz"),
			wantMsg:  `unknown book "Xyz"`,
			wantBase: ErrUnknownBook,
		},
		{
			name:     "unknown book in token",
			err:      NewUnknownBook("Xyz", "Ge..Xyz"),
			wantMsg:  `unknown book "Xyz" in "Ge..Xyz"`,
			wantBase: ErrUnknownBook,
		},
		{
			name:     "range order",
			err:      NewRangeOrder("Ex..Ge", "Ex", "Ge"),
			wantMsg:  `invalid range "Ex..Ge": Ex is after Ge`,
			wantBase: ErrRangeOrder,
		},
		{
			name:     "pattern without cause",
			err:      NewPattern("!!!", nil),
			wantMsg:  `invalid pattern "!!!"`,
			wantBase: ErrInvalidPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, tt.wantBase) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.wantBase)
			}
		})
	}
}

func TestPatternErrorKeepsCompilerError(t *testing.T) {
	_, cause := regexp.Compile("(")
	err := NewPattern("/(/", cause)
	if !errors.Is(err, ErrInvalidPattern) {
		t.Error("PatternError does not match ErrInvalidPattern")
	}
	if !errors.Is(err, cause) {
		t.Error("PatternError does not match its compiler error")
	}
}

func TestReferenceErrorKeepsParserError(t *testing.T) {
	cause := fmt.Errorf("unexpected token \"2\"")
	err := &ReferenceError{Token: "Ge 1 2", Message: "malformed reference", Err: cause}
	if !errors.Is(err, ErrInvalidReference) {
		t.Error("ReferenceError with a cause does not match ErrInvalidReference")
	}
	if !errors.Is(err, cause) {
		t.Error("ReferenceError does not match its parser error")
	}
}

func TestIntegrityError(t *testing.T) {
	tests := []struct {
		name    string
		err     *IntegrityError
		wantMsg string
	}{
		{
			name:    "digest mismatch",
			err:     &IntegrityError{Entry: "books/01.json", Expected: "aa", Actual: "bb"},
			wantMsg: "integrity check failed for books/01.json: expected aa, got bb",
		},
		{
			name:    "unlisted entry",
			err:     &IntegrityError{Entry: "books/99.json", Actual: "bb"},
			wantMsg: "integrity check failed for books/99.json: entry not listed in manifest",
		},
		{
			name:    "missing entry",
			err:     &IntegrityError{Entry: "books/02.json", Expected: "aa"},
			wantMsg: "integrity check failed for books/02.json: entry missing from archive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrIntegrity) {
				t.Errorf("Unwrap() does not reach ErrIntegrity")
			}
		})
	}
}

func TestIOError(t *testing.T) {
	baseErr := fmt.Errorf("permission denied")
	tests := []struct {
		name    string
		err     *IOError
		wantMsg string
	}{
		{
			name:    "with path",
			err:     &IOError{Operation: "read", Path: "/test/kjv.bar", Err: baseErr},
			wantMsg: "failed to read /test/kjv.bar: permission denied",
		},
		{
			name:    "without path",
			err:     &IOError{Operation: "write", Err: baseErr},
			wantMsg: "failed to write: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, baseErr) {
				t.Errorf("Unwrap() = %v, want %v", got, baseErr)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with path",
			err:      &ParseError{Format: "JSON", Path: "manifest.json", Message: "unexpected EOF"},
			wantMsg:  "failed to parse JSON at manifest.json: unexpected EOF",
			wantBase: ErrInvalidInput,
		},
		{
			name:     "without path",
			err:      &ParseError{Format: "OSIS", Message: "no book divisions"},
			wantMsg:  "failed to parse OSIS: no book divisions",
			wantBase: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}
}

func TestValidationAndUnsupported(t *testing.T) {
	v := NewValidation("threshold", "must not be negative")
	if got, want := v.Error(), "validation failed for threshold: must not be negative"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(v, ErrInvalidInput) {
		t.Error("ValidationError does not unwrap to ErrInvalidInput")
	}

	u := NewUnsupported("container", ".zip")
	if got, want := u.Error(), "unsupported container: .zip"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(u, ErrUnsupported) {
		t.Error("UnsupportedError does not unwrap to ErrUnsupported")
	}
}

func TestWrap(t *testing.T) {
	t.Run("wraps error", func(t *testing.T) {
		baseErr := fmt.Errorf("base error")
		wrapped := Wrap(baseErr, "context message")
		if wrapped == nil {
			t.Fatal("Wrap() returned nil")
		}
		if !errors.Is(wrapped, baseErr) {
			t.Errorf("Wrap() error does not unwrap to base error")
		}
		wantMsg := "context message: base error"
		if wrapped.Error() != wantMsg {
			t.Errorf("Wrap() = %q, want %q", wrapped.Error(), wantMsg)
		}
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		if got := Wrap(nil, "context"); got != nil {
			t.Errorf("Wrap(nil) = %v, want nil", got)
		}
	})
}

func TestWrapf(t *testing.T) {
	baseErr := NewUnknownBook("Xyz", "Xyz")
	wrapped := Wrapf(baseErr, "scope token %d", 2)
	if !errors.Is(wrapped, ErrUnknownBook) {
		t.Errorf("Wrapf() error does not unwrap to ErrUnknownBook")
	}
	var ub *UnknownBookError
	if !errors.As(wrapped, &ub) || ub.Abbrev != "Xyz" {
		t.Errorf("errors.As() = %+v, want Abbrev=Xyz", ub)
	}
	if got := Wrapf(nil, "context %s", "test"); got != nil {
		t.Errorf("Wrapf(nil) = %v, want nil", got)
	}
}
