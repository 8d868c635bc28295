package progress

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	werrors "github.com/FocuswithJustin/werd/core/errors"
	"github.com/FocuswithJustin/werd/core/layout"
	"github.com/FocuswithJustin/werd/core/verse"
)

func rng(id, start, end string) verse.Range {
	r, err := verse.NewRange(id, verse.MustParseKey(start), verse.MustParseKey(end))
	if err != nil {
		panic(err)
	}
	return r
}

func TestSummarize(t *testing.T) {
	ranges := []verse.Range{
		rng("a", "1:1", "1:4"),
		rng("b", "1:5", "1:7"),
		rng("c", "2:1", "2:5"),
		rng("d", "2:3", "2:8"),
		rng("e", "114:1", "114:6"),
	}
	words := map[verse.Key]int{verse.NewKey(2, 1): 1, verse.NewKey(2, 2): 7}

	sum, err := Summarize(ranges, words)
	if err != nil {
		t.Fatal(err)
	}
	if sum.TotalMemorizedVerses != 7+8+6 {
		t.Errorf("TotalMemorizedVerses = %d, want 21", sum.TotalMemorizedVerses)
	}
	if sum.TotalVerses != 6236 || sum.OverallProgress != 0 {
		t.Errorf("TotalVerses/OverallProgress = %d/%d", sum.TotalVerses, sum.OverallProgress)
	}
	if sum.CompletedSurahs != 2 || sum.InProgressSurahs != 1 {
		t.Errorf("completed/in progress = %d/%d, want 2/1", sum.CompletedSurahs, sum.InProgressSurahs)
	}
	if len(sum.Surahs) != 3 || sum.Surahs[1].Number != 2 || sum.Surahs[1].MemorizedVerses != 8 {
		t.Fatalf("Surahs = %+v", sum.Surahs)
	}
	if got := sum.Surahs[1].Ranges[0]; got.ID != "d" || got.WordCount != 8 || got.VerseCount != 8 {
		t.Errorf("surah 2 range = %+v", got)
	}
	if sum.Surahs[0].NameEnglish != "Al-Fatihah" || !sum.Surahs[0].Complete() {
		t.Errorf("surah 1 = %+v", sum.Surahs[0])
	}
}

func TestSummarizeRounding(t *testing.T) {
	// 2:1-2:286 plus 3:1-3:26 is 312 verses, 5.003% of 6236.
	sum, err := Summarize([]verse.Range{rng("a", "2:1", "2:286"), rng("b", "3:1", "3:26")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if sum.OverallProgress != 5 {
		t.Errorf("OverallProgress = %d, want 5", sum.OverallProgress)
	}
}

func TestSummarizeInvalid(t *testing.T) {
	_, err := Summarize([]verse.Range{{Start: verse.NewKey(1, 1), End: verse.NewKey(1, 9), Surah: 1}}, nil)
	if !errors.Is(err, werrors.ErrVerseNotFound) {
		t.Errorf("err = %v, want ErrVerseNotFound", err)
	}
}

func TestRangeStatsAndDescribe(t *testing.T) {
	verses := []layout.Verse{
		{Key: verse.NewKey(2, 5), Words: []layout.Word{{TextUthmani: "أُو۟لَٰٓئِكَ"}, {TextUthmani: "عَلَىٰ"}}},
		{Key: verse.NewKey(2, 6), Words: []layout.Word{{Text: "إِنَّ"}}},
	}
	r := rng("x", "2:5", "2:7")

	st := RangeStats(r, verses)
	if st.VerseCount != 3 || st.WordCount != 3 {
		t.Errorf("RangeStats = %+v, want 3 verses 3 words", st)
	}

	d := Describe(r, verses)
	if d.StartText != "أُو۟لَٰٓئِكَ عَلَىٰ" {
		t.Errorf("StartText = %q", d.StartText)
	}
	if d.EndText != "البقرة - 7" {
		t.Errorf("EndText = %q, want fallback", d.EndText)
	}
	if d.ID != "x" || d.StartVerse != 5 || d.EndVerse != 7 {
		t.Errorf("Describe = %+v", d)
	}
}

func TestServerDataRoundTrip(t *testing.T) {
	raw := `{"2":[{"startVerse":12,"endVerse":14,"wordsCount":42},{"startVerse":1,"endVerse":5,"wordsCount":36}],"1":[{"startVerse":1,"endVerse":7,"wordsCount":29}]}`
	var data ServerData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}

	ranges, err := FromServerData(data)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, r := range ranges {
		got = append(got, r.String())
	}
	want := []string{"1:1-1:7", "2:1-2:5", "2:12-2:14"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ranges = %v, want %v", got, want)
	}

	back := ToServerData(ranges, nil)
	wantBack := ServerData{
		1: {{StartVerse: 1, EndVerse: 7}},
		2: {{StartVerse: 1, EndVerse: 5}, {StartVerse: 12, EndVerse: 14}},
	}
	if !reflect.DeepEqual(back, wantBack) {
		t.Errorf("ToServerData = %+v, want %+v", back, wantBack)
	}
}

func TestFromServerDataInvalid(t *testing.T) {
	tests := []struct {
		name string
		data ServerData
		want error
	}{
		{"unknown chapter", ServerData{115: {{StartVerse: 1, EndVerse: 2}}}, werrors.ErrOutOfRange},
		{"verse past end", ServerData{1: {{StartVerse: 1, EndVerse: 8}}}, werrors.ErrVerseNotFound},
		{"zero verse", ServerData{1: {{StartVerse: 0, EndVerse: 2}}}, werrors.ErrVerseNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromServerData(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
