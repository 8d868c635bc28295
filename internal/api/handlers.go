package api

import (
	"net/http"
	"time"

	"github.com/FocuswithJustin/werd/core/layout"
	"github.com/FocuswithJustin/werd/core/quran"
	"github.com/FocuswithJustin/werd/core/verse"
	"github.com/FocuswithJustin/werd/internal/validation"
)

// HealthInfo is the health check response.
type HealthInfo struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	Uptime     string `json:"uptime"`
	Ranges     int    `json:"ranges"`
	Store      bool   `json:"store"`
	Content    bool   `json:"content"`
	WSClients  int    `json:"ws_clients"`
	TotalPages int    `json:"total_pages"`
}

// SurahInfo is a surah with the pages it spans.
type SurahInfo struct {
	quran.SurahMeta
	Pages []int  `json:"pages"`
	URL   string `json:"url"`
}

// LineView is one printed line of a page.
type LineView struct {
	Key        string        `json:"key"`
	PageNumber int           `json:"page_number"`
	LineNumber int           `json:"line_number"`
	SurahStart int           `json:"surah_start,omitempty"` // surah whose first verse opens the line
	Words      []layout.Word `json:"words"`
}

// PageView describes one Mushaf page.
type PageView struct {
	Page       int                 `json:"page"`
	FontName   string              `json:"font_name"`
	Segments   []quran.PageSegment `json:"segments"`
	SurahCount int                 `json:"surah_count"`
	VerseCount int                 `json:"verse_count"`
	Lines      []LineView          `json:"lines,omitempty"`
}

// JuzView describes one juz.
type JuzView struct {
	Juz    int                         `json:"juz"`
	Verses map[int]quran.VerseInterval `json:"verses"`
	URL    string                      `json:"url"`
}

// VerseInfo describes one verse key.
type VerseInfo struct {
	Key       verse.Key `json:"key"`
	Page      int       `json:"page"`
	Juz       int       `json:"juz"`
	Sajdah    bool      `json:"sajdah"`
	Selected  bool      `json:"selected"`
	EndSymbol string    `json:"end_symbol"`
	URL       string    `json:"url"`
}

// RangeExprView is a parsed range expression.
type RangeExprView struct {
	Start  verse.Key     `json:"start"`
	End    verse.Key     `json:"end"`
	Keys   []verse.Key   `json:"keys"`
	Pieces []verse.Range `json:"pieces"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]any{
		"name":    "werd",
		"version": Version,
		"endpoints": []string{
			"GET /health",
			"GET /api/surahs?q=",
			"GET /api/surahs/{id}",
			"GET /api/pages/{page}",
			"GET /api/juz/{juz}",
			"GET /api/verses/{key}",
			"GET /api/ranges/{expr}",
			"GET /api/selection",
			"GET /api/selection/keys",
			"POST /api/selection/tap",
			"PUT /api/selection/pending",
			"DELETE /api/selection/pending",
			"POST /api/selection/ranges",
			"DELETE /api/selection/ranges",
			"DELETE /api/selection/ranges/{id}",
			"POST /api/selection/undo",
			"POST /api/selection/redo",
			"GET /api/progress",
			"GET /api/progress/server",
			"PUT /api/progress/server",
			"WS /ws",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, HealthInfo{
		Status:     "healthy",
		Version:    Version,
		Uptime:     time.Since(s.started).Round(time.Second).String(),
		Ranges:     len(s.sel.Snapshot().Ranges),
		Store:      s.store != nil,
		Content:    s.content != nil,
		WSClients:  s.hub.ClientCount(),
		TotalPages: quran.TotalPages,
	})
}

func (s *Server) handleSurahs(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		respondList(w, quran.FindSurahs(q))
		return
	}
	respondList(w, quran.Surahs())
}

func (s *Server) handleSurah(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseBounded("surah", r.PathValue("id"), 1, quran.TotalSurahs)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	meta, err := quran.Surah(id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	pages, err := quran.SurahPages(id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respond(w, http.StatusOK, SurahInfo{SurahMeta: meta, Pages: pages, URL: quran.SurahURL(id)})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := validation.ParseBounded("page", r.PathValue("page"), 1, quran.TotalPages)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	segments, err := quran.PageSegments(page)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	view := PageView{
		Page:       page,
		FontName:   quran.PageFontName(page),
		Segments:   segments,
		SurahCount: len(segments),
	}
	for _, seg := range segments {
		view.VerseCount += seg.Len()
	}

	if s.content != nil {
		verses, err := s.content.Page(r.Context(), page)
		if err != nil {
			respondErr(w, r, err)
			return
		}
		view.Lines = lineViews(layout.GroupLines(verses))
	}
	respond(w, http.StatusOK, view)
}

// lineViews marks lines that open a surah: the line's first word is the
// first word of verse 1.
func lineViews(buckets []layout.LineBucket) []LineView {
	out := make([]LineView, len(buckets))
	for i, b := range buckets {
		out[i] = LineView{
			Key:        b.Key(),
			PageNumber: b.PageNumber,
			LineNumber: b.LineNumber,
			Words:      b.Words,
		}
		if len(b.Words) > 0 {
			if first := b.Words[0]; first.Key.Verse == 1 && first.Position == 1 {
				out[i].SurahStart = first.Key.Surah
			}
		}
	}
	return out
}

func (s *Server) handleJuz(w http.ResponseWriter, r *http.Request) {
	juz, err := validation.ParseBounded("juz", r.PathValue("juz"), 1, quran.TotalJuz)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	intervals, err := quran.JuzVerseIntervals(juz)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respond(w, http.StatusOK, JuzView{Juz: juz, Verses: intervals, URL: quran.JuzURL(juz)})
}

func (s *Server) handleVerse(w http.ResponseWriter, r *http.Request) {
	key, err := parseValidKey(r.PathValue("key"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	page, err := quran.PageNumber(key.Surah, key.Verse)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respond(w, http.StatusOK, VerseInfo{
		Key:       key,
		Page:      page,
		Juz:       quran.JuzNumber(key.Surah, key.Verse),
		Sajdah:    quran.IsSajdahVerse(key.Surah, key.Verse),
		Selected:  s.sel.IsSelected(key),
		EndSymbol: quran.VerseEndSymbol(key.Verse, true),
		URL:       quran.VerseURL(key.Surah, key.Verse),
	})
}

func (s *Server) handleRangeExpr(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseValidRange(r.PathValue("expr"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	keys, err := verse.VersesInRange(start, end)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	pieces, err := verse.SplitRangeBySurah(start, end)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respond(w, http.StatusOK, RangeExprView{Start: start, End: end, Keys: keys, Pieces: pieces})
}

func parseValidKey(s string) (verse.Key, error) {
	k, err := verse.ParseKey(s)
	if err != nil {
		return verse.Key{}, err
	}
	return k, k.Validate()
}

func parseValidRange(s string) (verse.Key, verse.Key, error) {
	start, end, err := verse.ParseRangeExpr(s)
	if err != nil {
		return start, end, err
	}
	if err := start.Validate(); err != nil {
		return start, end, err
	}
	return start, end, end.Validate()
}
