package layout

import (
	"errors"
	"reflect"
	"testing"

	werrors "github.com/FocuswithJustin/werd/core/errors"
	"github.com/FocuswithJustin/werd/core/verse"
)

func word(id, page, line int, key string) Word {
	return Word{ID: id, PageNumber: page, LineNumber: line, CharType: CharWord, Key: verse.MustParseKey(key)}
}

func wordIDs(words []Word) []int {
	ids := make([]int, len(words))
	for i, w := range words {
		ids[i] = w.ID
	}
	return ids
}

func TestGroupLinesScenario(t *testing.T) {
	verses := []Verse{{
		Key:        verse.MustParseKey("2:1"),
		PageNumber: 5,
		Words:      []Word{word(1, 5, 3, "2:1"), word(2, 5, 3, "2:1"), word(3, 5, 4, "2:1")},
	}}

	buckets := GroupLines(verses)
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	if buckets[0].Key() != "Page5-Line3" || !reflect.DeepEqual(wordIDs(buckets[0].Words), []int{1, 2}) {
		t.Errorf("bucket 0 = %s %v", buckets[0].Key(), wordIDs(buckets[0].Words))
	}
	if buckets[1].Key() != "Page5-Line4" || !reflect.DeepEqual(wordIDs(buckets[1].Words), []int{3}) {
		t.Errorf("bucket 1 = %s %v", buckets[1].Key(), wordIDs(buckets[1].Words))
	}
}

func TestGroupLinesFirstSeenOrder(t *testing.T) {
	verses := []Verse{
		{Words: []Word{word(1, 2, 9, "2:1"), word(2, 2, 10, "2:1")}},
		{Words: []Word{word(3, 2, 10, "2:2"), word(4, 2, 1, "2:2"), word(5, 2, 9, "2:2")}},
	}

	buckets := GroupLines(verses)
	var keys []string
	for _, b := range buckets {
		keys = append(keys, b.Key())
	}
	want := []string{"Page2-Line9", "Page2-Line10", "Page2-Line1"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("keys = %v, want %v", keys, want)
	}
	if got := wordIDs(buckets[0].Words); !reflect.DeepEqual(got, []int{1, 5}) {
		t.Errorf("Page2-Line9 words = %v, want [1 5]", got)
	}
}

func TestGroupLinesEmpty(t *testing.T) {
	if got := GroupLines(nil); len(got) != 0 {
		t.Errorf("GroupLines(nil) = %v", got)
	}
}

func TestGroupPages(t *testing.T) {
	verses := []Verse{
		{ID: 1, PageNumber: 2},
		{ID: 2, PageNumber: 3},
		{ID: 3, PageNumber: 2},
	}
	groups := GroupPages(verses)
	if len(groups) != 2 || groups[0].PageNumber != 2 || groups[1].PageNumber != 3 {
		t.Fatalf("groups = %+v", groups)
	}
	if len(groups[0].Verses) != 2 || groups[0].Verses[1].ID != 3 {
		t.Errorf("page 2 verses = %+v", groups[0].Verses)
	}
}

func TestParseCharType(t *testing.T) {
	for _, s := range []string{"word", "end", "pause", "sajdah", "rub-el-hizb"} {
		if ct, err := ParseCharType(s); err != nil || string(ct) != s {
			t.Errorf("ParseCharType(%q) = %q, %v", s, ct, err)
		}
	}
	if _, err := ParseCharType("glyph"); !errors.Is(err, werrors.ErrInvalidInput) {
		t.Errorf("ParseCharType(glyph) err = %v, want ErrInvalidInput", err)
	}
}

func TestVerseText(t *testing.T) {
	words := []Word{
		{CodeV1: "ﭑ", TextUthmani: "بِسْمِ"},
		{TextUthmani: "ٱللَّهِ", Text: "الله"},
		{Text: "ٱلرَّحْمَٰنِ"},
		{},
		{CharType: CharEnd, Text: "١"},
	}
	want := "ﭑ ٱللَّهِ ٱلرَّحْمَٰنِ ١"
	if got := VerseText(words); got != want {
		t.Errorf("VerseText = %q, want %q", got, want)
	}
	if !words[4].IsVerseEnd() || words[0].IsVerseEnd() {
		t.Error("IsVerseEnd mismatch")
	}
}
