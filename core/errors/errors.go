// Package errors provides the typed error taxonomy shared by the archive, canon and search packages.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a book, chapter or verse is absent from the corpus
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidReference indicates a malformed scope or verse reference
	ErrInvalidReference = errors.New("invalid reference")
	// ErrUnknownBook indicates a book abbreviation that resolves to no book
	ErrUnknownBook = errors.New("unknown book")
	// ErrRangeOrder indicates a book range whose end precedes its start
	ErrRangeOrder = errors.New("range end precedes start")
	// ErrInvalidPattern indicates a search pattern that failed to compile
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrIntegrity indicates archive content that does not match its manifest
	ErrIntegrity = errors.New("integrity check failed")
	// ErrUnsupported indicates an unsupported operation or format
	ErrUnsupported = errors.New("unsupported")
)

// NotFoundError represents a resource not found error with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "book", "chapter", "verse")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Value   string // Value that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// ReferenceError reports a scope or verse token whose shape cannot be parsed.
type ReferenceError struct {
	Token   string // Token as supplied by the operator
	Message string // What was wrong with it
	Err     error  // Underlying error, if any
}

func (e *ReferenceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("invalid reference %q: %s", e.Token, e.Message)
	}
	return fmt.Sprintf("invalid reference %q", e.Token)
}

// Unwrap exposes both the sentinel and the parser error.
func (e *ReferenceError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidReference, e.Err}
	}
	return []error{ErrInvalidReference}
}

// UnknownBookError reports an abbreviation with no matching book.
type UnknownBookError struct {
	Abbrev string // Abbreviation that failed to resolve
	Token  string // Full token it appeared in
}

func (e *UnknownBookError) Error() string {
	if e.Token != "" && e.Token != e.Abbrev {
		return fmt.Sprintf("unknown book %q in %q", e.Abbrev, e.Token)
	}
	return fmt.Sprintf("unknown book %q", e.Abbrev)
}

func (e *UnknownBookError) Unwrap() error {
	return ErrUnknownBook
}

// RangeOrderError reports a book range written back to front.
type RangeOrderError struct {
	Token string // Range token as supplied
	Start string // Start abbreviation
	End   string // End abbreviation
}

func (e *RangeOrderError) Error() string {
	return fmt.Sprintf("invalid range %q: %s is after %s", e.Token, e.Start, e.End)
}

func (e *RangeOrderError) Unwrap() error {
	return ErrRangeOrder
}

// PatternError reports a match or word token that does not compile.
type PatternError struct {
	Pattern string // Pattern text as supplied
	Err     error  // Compiler error, if any
}

func (e *PatternError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("invalid pattern %q", e.Pattern)
}

// Unwrap exposes both the sentinel and the compiler error.
func (e *PatternError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidPattern, e.Err}
	}
	return []error{ErrInvalidPattern}
}

// IntegrityError reports an archive entry whose digest disagrees with the manifest.
type IntegrityError struct {
	Entry    string // Archive entry name
	Expected string // Digest recorded in the manifest
	Actual   string // Digest computed from the entry
}

func (e *IntegrityError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("integrity check failed for %s: entry not listed in manifest", e.Entry)
	}
	if e.Actual == "" {
		return fmt.Sprintf("integrity check failed for %s: entry missing from archive", e.Entry)
	}
	return fmt.Sprintf("integrity check failed for %s: expected %s, got %s", e.Entry, e.Expected, e.Actual)
}

func (e *IntegrityError) Unwrap() error {
	return ErrIntegrity
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing or deserialization error
type ParseError struct {
	Format  string // Format being parsed (e.g., "JSON", "OSIS", "manifest")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// UnsupportedError represents an unsupported feature or format
type UnsupportedError struct {
	Feature string // Feature or format that is unsupported
	Reason  string // Why it's not supported
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

// Helper functions for creating common errors

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewReference creates a ReferenceError
func NewReference(token, message string) *ReferenceError {
	return &ReferenceError{
		Token:   token,
		Message: message,
	}
}

// NewUnknownBook creates an UnknownBookError
func NewUnknownBook(abbrev, token string) *UnknownBookError {
	return &UnknownBookError{
		Abbrev: abbrev,
		Token:  token,
	}
}

// NewRangeOrder creates a RangeOrderError
func NewRangeOrder(token, start, end string) *RangeOrderError {
	return &RangeOrderError{
		Token: token,
		Start: start,
		End:   end,
	}
}

// NewPattern creates a PatternError
func NewPattern(pattern string, err error) *PatternError {
	return &PatternError{
		Pattern: pattern,
		Err:     err,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// NewUnsupported creates an UnsupportedError
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{
		Feature: feature,
		Reason:  reason,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}
