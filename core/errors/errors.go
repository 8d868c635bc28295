// Package errors provides standardized error types and helpers for werd.
//
// The addressing and verse-key layers raise three domain kinds, each with a
// sentinel that callers match with Is:
//
//   - ErrOutOfRange: a surah, page or juz id outside its closed interval
//   - ErrVerseNotFound: a verse number that is not valid for the stated surah
//   - ErrMalformedKey: a verse-key string that does not parse
//
// All of them are deterministic; retrying never helps.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrOutOfRange indicates a surah, page or juz id outside its valid interval
	ErrOutOfRange = errors.New("out of range")
	// ErrVerseNotFound indicates a verse number not valid for its surah
	ErrVerseNotFound = errors.New("verse not found")
	// ErrMalformedKey indicates a verse key that does not parse
	ErrMalformedKey = errors.New("malformed verse key")
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported indicates an unsupported operation or format
	ErrUnsupported = errors.New("unsupported")
)

// OutOfRangeError reports an identifier outside its closed interval.
type OutOfRangeError struct {
	Kind  string // "surah", "page" or "juz"
	Value int
	Min   int
	Max   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %d out of range [%d, %d]", e.Kind, e.Value, e.Min, e.Max)
}

func (e *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}

// VerseNotFoundError reports a verse that no table entry covers.
type VerseNotFoundError struct {
	Surah  int
	Verse  int
	Lookup string // table that was searched, e.g. "page"
}

func (e *VerseNotFoundError) Error() string {
	if e.Lookup != "" {
		return fmt.Sprintf("verse %d:%d not found in %s table", e.Surah, e.Verse, e.Lookup)
	}
	return fmt.Sprintf("verse %d:%d not found", e.Surah, e.Verse)
}

func (e *VerseNotFoundError) Unwrap() error {
	return ErrVerseNotFound
}

// MalformedKeyError reports a verse key string that does not parse.
type MalformedKeyError struct {
	Input  string
	Reason string
	Err    error // Underlying parser error, if any
}

func (e *MalformedKeyError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("malformed verse key %q: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("malformed verse key %q", e.Input)
}

// Unwrap exposes both the sentinel and the parser error.
func (e *MalformedKeyError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedKey, e.Err}
	}
	return []error{ErrMalformedKey}
}

// NotFoundError represents a resource not found error with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "range", "page file")
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
	Value   string // Value that failed validation (may be redacted)
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
	Format  string // Format being parsed (e.g., "JSON", "XML", "backup")
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
	Err     error  // Underlying error, if any
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnsupported
}

// Helper functions for creating common errors

// NewOutOfRange creates an OutOfRangeError
func NewOutOfRange(kind string, value, min, max int) *OutOfRangeError {
	return &OutOfRangeError{Kind: kind, Value: value, Min: min, Max: max}
}

// NewVerseNotFound creates a VerseNotFoundError
func NewVerseNotFound(surah, verse int, lookup string) *VerseNotFoundError {
	return &VerseNotFoundError{Surah: surah, Verse: verse, Lookup: lookup}
}

// NewMalformedKey creates a MalformedKeyError
func NewMalformedKey(input, reason string) *MalformedKeyError {
	return &MalformedKeyError{Input: input, Reason: reason}
}

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

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
