// Package validation checks user-supplied paths, profile names, numeric
// request parameters and backup files before they reach the store or the
// content provider.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	werrors "github.com/FocuswithJustin/werd/core/errors"
)

// Limits on user-supplied input.
const (
	// MaxBackupSize is the largest backup accepted by Import (16 MB).
	MaxBackupSize = 16 << 20
	// MaxProfileLength is the maximum profile name length.
	MaxProfileLength = 64
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// Common validation errors.
var (
	ErrPathTraversal    = errors.New("path traversal detected")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrPathTooLong      = errors.New("path too long")
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrInvalidProfile   = errors.New("invalid profile name")
)

// SanitizePath checks that userPath stays inside baseDir and returns it
// cleaned and relative to baseDir.
func SanitizePath(baseDir, userPath string) (string, error) {
	if err := ValidatePath(userPath); err != nil {
		return "", err
	}

	cleanPath := filepath.Clean(userPath)
	if filepath.IsAbs(cleanPath) {
		return "", fmt.Errorf("%w: absolute path not allowed", ErrPathTraversal)
	}
	if cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
		return "", ErrPathTraversal
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory: %w", err)
	}
	absPath, err := filepath.Abs(filepath.Join(baseDir, cleanPath))
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	relPath, err := filepath.Rel(absBase, absPath)
	if err != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", ErrPathTraversal
	}

	return cleanPath, nil
}

// ValidatePath rejects empty or overlong paths and paths with control
// characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}
	for _, r := range path {
		if r == 0 {
			return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
		}
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}

// ValidateProfile checks a profile name: 1 to MaxProfileLength letters,
// digits, '-', '_' or '.', not starting with '-' or '.'.
func ValidateProfile(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidProfile)
	}
	if len(name) > MaxProfileLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidProfile, MaxProfileLength)
	}
	if name[0] == '-' || name[0] == '.' {
		return fmt.Errorf("%w: cannot start with %q", ErrInvalidProfile, name[0])
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune("-_.", r) {
			return fmt.Errorf("%w: character %q not allowed", ErrInvalidProfile, r)
		}
	}
	return nil
}

// ParseBounded parses a decimal request parameter and checks it against
// [min, max]. A malformed value yields a ValidationError for field; a value
// outside the bounds yields an OutOfRangeError.
func ParseBounded(field, raw string, min, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, werrors.NewValidation(field, fmt.Sprintf("%q is not a number", raw))
	}
	if n < min || n > max {
		return 0, werrors.NewOutOfRange(field, n, min, max)
	}
	return n, nil
}

// FileType is a file type detected from content.
type FileType string

const (
	FileTypeXZ      FileType = "xz"
	FileTypeSQLite  FileType = "sqlite"
	FileTypeJSON    FileType = "json"
	FileTypeXML     FileType = "xml"
	FileTypeUnknown FileType = "unknown"
)

var magicBytes = []struct {
	fileType FileType
	magic    []byte
}{
	{FileTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{FileTypeSQLite, []byte("SQLite format 3\x00")},
}

// DetectFileType sniffs the first bytes of r. Binary formats are matched by
// magic bytes; text is classified as JSON or XML by its first non-space
// byte. The returned reader replays the sniffed bytes.
func DetectFileType(r io.Reader) (FileType, io.Reader, error) {
	buf := make([]byte, 512)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return FileTypeUnknown, nil, fmt.Errorf("failed to read file header: %w", err)
	}
	buf = buf[:n]
	replay := io.MultiReader(bytes.NewReader(buf), r)

	for _, sig := range magicBytes {
		if bytes.HasPrefix(buf, sig.magic) {
			return sig.fileType, replay, nil
		}
	}
	if !isLikelyText(buf) {
		return FileTypeUnknown, replay, nil
	}
	switch trimmed := bytes.TrimLeft(buf, " \t\r\n\ufeff"); {
	case len(trimmed) == 0:
		return FileTypeUnknown, replay, nil
	case trimmed[0] == '{' || trimmed[0] == '[':
		return FileTypeJSON, replay, nil
	case trimmed[0] == '<':
		return FileTypeXML, replay, nil
	}
	return FileTypeUnknown, replay, nil
}

// ExpectFileType is DetectFileType that fails unless the content is want.
func ExpectFileType(r io.Reader, want FileType) (io.Reader, error) {
	got, replay, err := DetectFileType(r)
	if err != nil {
		return nil, err
	}
	if got != want {
		return nil, werrors.NewValidation("file", fmt.Sprintf("expected %s content, found %s", want, got))
	}
	return replay, nil
}

// isLikelyText reports whether buf has no NUL bytes and at most 5% ASCII
// control characters. UTF-8 multibyte sequences count as neither.
func isLikelyText(buf []byte) bool {
	if len(buf) == 0 || bytes.IndexByte(buf, 0) != -1 {
		return false
	}
	printable, control := 0, 0
	for _, b := range buf {
		switch {
		case b == '\t' || b == '\n' || b == '\r' || (b >= 0x20 && b <= 0x7e):
			printable++
		case b < 0x20:
			control++
		}
	}
	return printable > 0 && float64(printable)/float64(printable+control) > 0.95
}
