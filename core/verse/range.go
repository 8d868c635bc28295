package verse

import (
	"fmt"
	"slices"

	"github.com/FocuswithJustin/werd/core/errors"
)

// Range is an inclusive run of verses inside one surah.
//
// Start and End share Surah and Start.Verse <= End.Verse. A selection that
// crosses a surah boundary is stored as two ranges; StartSurah then names
// the surah the selection was started in (0 when absent).
type Range struct {
	ID         string `json:"id"`
	Start      Key    `json:"start"`
	End        Key    `json:"end"`
	Surah      int    `json:"surah"`
	StartSurah int    `json:"start_surah,omitempty"`
}

// NewRange builds a normalized range from two keys of the same surah.
func NewRange(id string, a, b Key) (Range, error) {
	if a.Surah != b.Surah {
		return Range{}, errors.NewValidation("range", fmt.Sprintf("%s and %s are in different surahs", a, b))
	}
	lo, hi := minMax(a.Verse, b.Verse)
	return Range{
		ID:    id,
		Start: Key{Surah: a.Surah, Verse: lo},
		End:   Key{Surah: a.Surah, Verse: hi},
		Surah: a.Surah,
	}, nil
}

// String returns "2:5-2:10", or just "2:5" for a single verse.
func (r Range) String() string {
	if r.Start == r.End {
		return r.Start.String()
	}
	return r.Start.String() + "-" + r.End.String()
}

// Contains reports whether k lies inside the range.
func (r Range) Contains(k Key) bool {
	return k.Surah == r.Surah && k.Verse >= r.Start.Verse && k.Verse <= r.End.Verse
}

// VerseCount returns the number of verses in the range.
func (r Range) VerseCount() int {
	return r.End.Verse - r.Start.Verse + 1
}

// Keys returns every key of the range in ascending order.
func (r Range) Keys() []Key {
	keys := make([]Key, 0, r.VerseCount())
	for v := r.Start.Verse; v <= r.End.Verse; v++ {
		keys = append(keys, Key{Surah: r.Surah, Verse: v})
	}
	return keys
}

// IsSingleVerse reports whether the range covers exactly one verse.
func IsSingleVerse(r Range) bool {
	return r.Start == r.End
}

// FindSingleVerse returns the single-verse range equal to k, if any.
func FindSingleVerse(k Key, ranges []Range) (Range, bool) {
	for _, r := range ranges {
		if IsSingleVerse(r) && r.Start == k {
			return r, true
		}
	}
	return Range{}, false
}

// FindContaining returns the first range that contains k.
func FindContaining(k Key, ranges []Range) (Range, bool) {
	for _, r := range ranges {
		if r.Contains(k) {
			return r, true
		}
	}
	return Range{}, false
}

// IsInRanges reports whether any range contains k.
func IsInRanges(k Key, ranges []Range) bool {
	_, ok := FindContaining(k, ranges)
	return ok
}

// SelectedKeys returns the union of the keys covered by ranges, in
// canonical order and without duplicates.
func SelectedKeys(ranges []Range) []Key {
	seen := make(map[Key]bool)
	var keys []Key
	for _, r := range ranges {
		for _, k := range r.Keys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	slices.SortFunc(keys, Key.Compare)
	return keys
}

// VerseCount returns the total number of distinct verses covered by ranges.
func VerseCount(ranges []Range) int {
	return len(SelectedKeys(ranges))
}
