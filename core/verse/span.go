package verse

import (
	"github.com/FocuswithJustin/werd/core/quran"
)

// VersesInRange returns every key between start and end inclusive.
//
// Inside one surah the run is ascending between the smaller and larger
// verse regardless of argument order. Across surahs the endpoints are put
// in canonical surah order and the result is the tail of the first surah
// followed by the head of the second. Surahs lying strictly between the
// two are not enumerated.
func VersesInRange(start, end Key) ([]Key, error) {
	if start.Surah == end.Surah {
		lo, hi := minMax(start.Verse, end.Verse)
		keys := make([]Key, 0, hi-lo+1)
		for v := lo; v <= hi; v++ {
			keys = append(keys, Key{Surah: start.Surah, Verse: v})
		}
		return keys, nil
	}

	first, second := start, end
	if first.Surah > second.Surah {
		first, second = second, first
	}
	last, err := quran.VersesCount(first.Surah)
	if err != nil {
		return nil, err
	}
	if _, err := quran.VersesCount(second.Surah); err != nil {
		return nil, err
	}

	var keys []Key
	for v := first.Verse; v <= last; v++ {
		keys = append(keys, Key{Surah: first.Surah, Verse: v})
	}
	for v := 1; v <= second.Verse; v++ {
		keys = append(keys, Key{Surah: second.Surah, Verse: v})
	}
	return keys, nil
}

// SplitRangeBySurah turns a key pair into ranges that each stay inside one
// surah. The same surah yields one normalized range. Different surahs yield
// exactly two: the first surah from its endpoint to its last verse, and
// the second from verse 1 to its endpoint. The piece that does not belong
// to the requested start surah records it in StartSurah.
//
// The returned ranges have no ID.
func SplitRangeBySurah(start, end Key) ([]Range, error) {
	if start.Surah == end.Surah {
		lo, hi := minMax(start.Verse, end.Verse)
		return []Range{{
			Start: Key{Surah: start.Surah, Verse: lo},
			End:   Key{Surah: start.Surah, Verse: hi},
			Surah: start.Surah,
		}}, nil
	}

	first, second := start, end
	if first.Surah > second.Surah {
		first, second = second, first
	}
	last, err := quran.VersesCount(first.Surah)
	if err != nil {
		return nil, err
	}
	if _, err := quran.VersesCount(second.Surah); err != nil {
		return nil, err
	}

	out := []Range{
		{
			Start: first,
			End:   Key{Surah: first.Surah, Verse: last},
			Surah: first.Surah,
		},
		{
			Start: Key{Surah: second.Surah, Verse: 1},
			End:   second,
			Surah: second.Surah,
		},
	}
	for i := range out {
		if out[i].Surah != start.Surah {
			out[i].StartSurah = start.Surah
		}
	}
	return out, nil
}

func minMax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
