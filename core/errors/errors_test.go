package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantMsg  string
		wantBase error
	}{
		{
			name:     "surah out of range",
			err:      NewOutOfRange("surah", 115, 1, 114),
			wantMsg:  "surah 115 out of range [1, 114]",
			wantBase: ErrOutOfRange,
		},
		{
			name:     "page out of range",
			err:      NewOutOfRange("page", 0, 1, 604),
			wantMsg:  "page 0 out of range [1, 604]",
			wantBase: ErrOutOfRange,
		},
		{
			name:     "verse not found in page table",
			err:      NewVerseNotFound(1, 8, "page"),
			wantMsg:  "verse 1:8 not found in page table",
			wantBase: ErrVerseNotFound,
		},
		{
			name:     "verse not found",
			err:      &VerseNotFoundError{Surah: 2, Verse: 300},
			wantMsg:  "verse 2:300 not found",
			wantBase: ErrVerseNotFound,
		},
		{
			name:     "malformed key with reason",
			err:      NewMalformedKey("2-5", "expected surah:verse"),
			wantMsg:  `malformed verse key "2-5": expected surah:verse`,
			wantBase: ErrMalformedKey,
		},
		{
			name:     "malformed key without reason",
			err:      &MalformedKeyError{Input: ""},
			wantMsg:  `malformed verse key ""`,
			wantBase: ErrMalformedKey,
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

func TestMalformedKeyErrorUnwrapsParserError(t *testing.T) {
	parserErr := fmt.Errorf("unexpected token")
	err := &MalformedKeyError{Input: "a:b", Err: parserErr}

	if !errors.Is(err, ErrMalformedKey) {
		t.Error("expected ErrMalformedKey in chain")
	}
	if !errors.Is(err, parserErr) {
		t.Error("expected parser error in chain")
	}

	wrapped := fmt.Errorf("tap: %w", err)
	var mk *MalformedKeyError
	if !errors.As(wrapped, &mk) {
		t.Fatal("errors.As failed for wrapped MalformedKeyError")
	}
	if mk.Input != "a:b" {
		t.Errorf("Input = %q, want %q", mk.Input, "a:b")
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with ID",
			err:      &NotFoundError{Resource: "range", ID: "abc"},
			wantMsg:  "range not found: abc",
			wantBase: ErrNotFound,
		},
		{
			name:     "without ID",
			err:      &NotFoundError{Resource: "page file"},
			wantMsg:  "page file not found",
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
		underlyingErr := fmt.Errorf("disk error")
		err := &NotFoundError{Resource: "file", ID: "page-001.json", Err: underlyingErr}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestValidationError(t *testing.T) {
	err := NewValidation("page", "must be a number")
	if got := err.Error(); got != "validation failed for page: must be a number" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("expected ErrInvalidInput")
	}

	bare := &ValidationError{Message: "empty body"}
	if got := bare.Error(); got != "validation failed: empty body" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIOError(t *testing.T) {
	underlying := fmt.Errorf("permission denied")
	err := NewIO("open", "/tmp/werd.db", underlying)
	if got := err.Error(); got != "failed to open /tmp/werd.db: permission denied" {
		t.Errorf("Error() = %q", got)
	}
	if err.Unwrap() != underlying {
		t.Error("Unwrap() did not return underlying error")
	}

	noPath := &IOError{Operation: "write", Err: underlying}
	if got := noPath.Error(); got != "failed to write: permission denied" {
		t.Errorf("Error() = %q", got)
	}
}

func TestParseError(t *testing.T) {
	err := NewParse("JSON", "page-003.json", "unexpected EOF")
	if got := err.Error(); got != "failed to parse JSON at page-003.json: unexpected EOF" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("expected ErrInvalidInput")
	}
}

func TestUnsupportedError(t *testing.T) {
	err := NewUnsupported("page format", "yaml")
	if got := err.Error(); got != "unsupported page format: yaml" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Error("expected ErrUnsupported")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	err := Wrap(ErrOutOfRange, "lookup page")
	if err.Error() != "lookup page: out of range" {
		t.Errorf("Wrap() = %q", err.Error())
	}
	if !Is(err, ErrOutOfRange) {
		t.Error("Wrap should preserve chain")
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "page %d", 3) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
	err := Wrapf(ErrVerseNotFound, "page of %d:%d", 1, 8)
	if err.Error() != "page of 1:8: verse not found" {
		t.Errorf("Wrapf() = %q", err.Error())
	}
}

func TestAs(t *testing.T) {
	err := Wrap(NewOutOfRange("juz", 31, 1, 30), "juz lookup")
	var oor *OutOfRangeError
	if !As(err, &oor) {
		t.Fatal("As() = false")
	}
	if oor.Kind != "juz" || oor.Value != 31 {
		t.Errorf("got %+v", oor)
	}
}
