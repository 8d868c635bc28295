package verse

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/werd/core/errors"
	"github.com/FocuswithJustin/werd/core/quran"
)

// Key addresses one verse as surah:verse.
type Key struct {
	Surah int
	Verse int
}

// NewKey returns the key of a verse.
func NewKey(surah, verse int) Key {
	return Key{Surah: surah, Verse: verse}
}

// String returns the canonical "surah:verse" form.
func (k Key) String() string {
	return strconv.Itoa(k.Surah) + ":" + strconv.Itoa(k.Verse)
}

// IsZero reports whether k is the zero Key.
func (k Key) IsZero() bool {
	return k.Surah == 0 && k.Verse == 0
}

// Compare orders keys canonically: by surah, then by verse.
func (k Key) Compare(o Key) int {
	switch {
	case k.Surah != o.Surah:
		if k.Surah < o.Surah {
			return -1
		}
		return 1
	case k.Verse < o.Verse:
		return -1
	case k.Verse > o.Verse:
		return 1
	}
	return 0
}

// Validate checks the key against the canonical tables. An unknown surah
// fails with errors.ErrOutOfRange, a verse past the surah's end with
// errors.ErrVerseNotFound.
func (k Key) Validate() error {
	count, err := quran.VersesCount(k.Surah)
	if err != nil {
		return err
	}
	if k.Verse < 1 || k.Verse > count {
		return errors.NewVerseNotFound(k.Surah, k.Verse, "")
	}
	return nil
}

// MarshalText encodes the key as "surah:verse".
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a "surah:verse" string.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// keyGrammar is the participle grammar for a verse key, e.g. "2:255".
//
//nolint:govet // participle grammar tags are not standard struct tags
type keyGrammar struct {
	Surah string `@Int ":"`
	Verse string `@Int`
}

// rangeGrammar accepts "2:5", "2:5-10" and "2:5-3:7".
//
//nolint:govet // participle grammar tags are not standard struct tags
type rangeGrammar struct {
	Start *keyGrammar `@@`
	End   *rangeEnd   `( "-" @@ )?`
}

// rangeEnd is either a bare verse in the start surah or a full key.
//
//nolint:govet // participle grammar tags are not standard struct tags
type rangeEnd struct {
	First  string  `@Int`
	Second *string `( ":" @Int )?`
}

// key converts the captured digits in base 10.
func (g *keyGrammar) key() (Key, error) {
	surah, err := strconv.Atoi(g.Surah)
	if err != nil {
		return Key{}, err
	}
	verse, err := strconv.Atoi(g.Verse)
	if err != nil {
		return Key{}, err
	}
	return Key{Surah: surah, Verse: verse}, nil
}

var keyLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[:\-]`},
})

var (
	keyParser   = participle.MustBuild[keyGrammar](participle.Lexer(keyLexer))
	rangeParser = participle.MustBuild[rangeGrammar](participle.Lexer(keyLexer))
)

// ParseKey parses a "surah:verse" string. Surrounding whitespace is
// ignored. Anything else, including zero components, fails with
// errors.ErrMalformedKey. ParseKey does not consult the tables; use
// Validate for that.
func ParseKey(s string) (Key, error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return Key{}, errors.NewMalformedKey(s, "empty")
	}
	parsed, err := keyParser.ParseString("", in)
	if err != nil {
		return Key{}, &errors.MalformedKeyError{Input: s, Reason: "expected surah:verse", Err: err}
	}
	k, err := parsed.key()
	if err != nil {
		return Key{}, &errors.MalformedKeyError{Input: s, Reason: "number too large", Err: err}
	}
	if k.Surah < 1 || k.Verse < 1 {
		return Key{}, errors.NewMalformedKey(s, "surah and verse start at 1")
	}
	return k, nil
}

// MustParseKey is like ParseKey but panics on error.
func MustParseKey(s string) Key {
	k, err := ParseKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// ParseRangeExpr parses a range expression: a single key ("2:5"), a run
// inside one surah ("2:5-10") or two full keys ("2:285-3:2"). A single key
// yields start == end.
func ParseRangeExpr(s string) (start, end Key, err error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return Key{}, Key{}, errors.NewMalformedKey(s, "empty")
	}
	parsed, err := rangeParser.ParseString("", in)
	if err != nil {
		return Key{}, Key{}, &errors.MalformedKeyError{Input: s, Reason: "expected surah:verse[-[surah:]verse]", Err: err}
	}

	start, err = parsed.Start.key()
	if err != nil {
		return Key{}, Key{}, &errors.MalformedKeyError{Input: s, Reason: "number too large", Err: err}
	}
	end = start
	if parsed.End != nil {
		g := keyGrammar{Surah: parsed.Start.Surah, Verse: parsed.End.First}
		if parsed.End.Second != nil {
			g = keyGrammar{Surah: parsed.End.First, Verse: *parsed.End.Second}
		}
		if end, err = g.key(); err != nil {
			return Key{}, Key{}, &errors.MalformedKeyError{Input: s, Reason: "number too large", Err: err}
		}
	}
	if start.Surah < 1 || start.Verse < 1 || end.Surah < 1 || end.Verse < 1 {
		return Key{}, Key{}, errors.NewMalformedKey(s, "surah and verse start at 1")
	}
	return start, end, nil
}
