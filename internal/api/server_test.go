package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FocuswithJustin/werd/core/errors"
	"github.com/FocuswithJustin/werd/core/layout"
	"github.com/FocuswithJustin/werd/core/progress"
	"github.com/FocuswithJustin/werd/core/quran"
	"github.com/FocuswithJustin/werd/core/selection"
	"github.com/FocuswithJustin/werd/core/verse"
	"github.com/FocuswithJustin/werd/internal/store"
)

// envelope mirrors APIResponse with Data left undecoded.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

// fatihaProvider serves page 1: verse n of Al-Fatiha on line n+1, two
// words each.
type fatihaProvider struct{}

func (fatihaProvider) Page(ctx context.Context, page int) ([]layout.Verse, error) {
	if page != 1 {
		return nil, errors.NewNotFound("page file", fmt.Sprint(page))
	}
	var verses []layout.Verse
	for v := 1; v <= 7; v++ {
		k := verse.NewKey(1, v)
		verses = append(verses, layout.Verse{
			ID:         v,
			Key:        k,
			PageNumber: 1,
			Words: []layout.Word{
				{ID: v * 10, Position: 1, PageNumber: 1, LineNumber: v + 1, CharType: layout.CharWord, Text: "w", Key: k},
				{ID: v*10 + 1, Position: 2, PageNumber: 1, LineNumber: v + 1, CharType: layout.CharEnd, Text: "e", Key: k},
			},
		})
	}
	return verses, nil
}

type testServer struct {
	*Server
	store   *store.Store
	handler http.Handler
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("r%02d", n)
	}
}

func newTestServer(t *testing.T, cfg Config) *testServer {
	t.Helper()
	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "werd.db"))
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	sel := selection.New(selection.WithIDFunc(seqIDs()))
	s := New(cfg, sel, WithStore(st), WithContent(fatihaProvider{}))
	t.Cleanup(s.Close)
	return &testServer{Server: s, store: st, handler: s.Handler()}
}

func (ts *testServer) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, r)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: invalid JSON response %q: %v", method, path, w.Body.String(), err)
	}
	return w, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatalf("decoding data %s: %v", env.Data, err)
	}
	return v
}

func rangeStrings(ranges []verse.Range) []string {
	out := make([]string, len(ranges))
	for i, r := range ranges {
		out[i] = r.String()
	}
	return out
}

func TestRootAndHealth(t *testing.T) {
	ts := newTestServer(t, Config{})

	w, env := ts.do(t, http.MethodGet, "/", "")
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("GET / = %d %+v", w.Code, env)
	}

	w, env = ts.do(t, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	health := decodeData[HealthInfo](t, env)
	if health.Status != "healthy" || health.Version != Version || !health.Store || !health.Content {
		t.Errorf("health = %+v", health)
	}
	if health.TotalPages != quran.TotalPages {
		t.Errorf("TotalPages = %d, want %d", health.TotalPages, quran.TotalPages)
	}
}

func TestUnknownEndpoint(t *testing.T) {
	ts := newTestServer(t, Config{})
	w, env := ts.do(t, http.MethodGet, "/api/nope", "")
	if w.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Errorf("GET /api/nope = %d %+v", w.Code, env.Error)
	}
}

func TestSecurityHeaders(t *testing.T) {
	ts := newTestServer(t, Config{})
	w, _ := ts.do(t, http.MethodGet, "/health", "")
	for _, h := range []string{"X-Content-Type-Options", "X-Frame-Options", "Content-Security-Policy", "X-Request-ID"} {
		if w.Header().Get(h) == "" {
			t.Errorf("missing header %s", h)
		}
	}
}

func TestSurahEndpoints(t *testing.T) {
	ts := newTestServer(t, Config{})

	w, env := ts.do(t, http.MethodGet, "/api/surahs", "")
	if w.Code != http.StatusOK || env.Meta.Total != quran.TotalSurahs {
		t.Fatalf("GET /api/surahs = %d total %d", w.Code, env.Meta.Total)
	}

	_, env = ts.do(t, http.MethodGet, "/api/surahs?q=kahf", "")
	found := decodeData[[]quran.SurahMeta](t, env)
	if len(found) != 1 || found[0].ID != 18 {
		t.Errorf("search kahf = %+v", found)
	}

	w, env = ts.do(t, http.MethodGet, "/api/surahs/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/surahs/1 = %d", w.Code)
	}
	info := decodeData[SurahInfo](t, env)
	if info.ID != 1 || info.VersesCount != 7 || len(info.Pages) != 1 || info.Pages[0] != 1 {
		t.Errorf("surah 1 = %+v", info)
	}
	if info.URL != quran.SurahURL(1) {
		t.Errorf("URL = %q", info.URL)
	}
}

func TestLookupErrors(t *testing.T) {
	ts := newTestServer(t, Config{})
	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/api/surahs/0", http.StatusBadRequest, "OUT_OF_RANGE"},
		{"/api/surahs/115", http.StatusBadRequest, "OUT_OF_RANGE"},
		{"/api/surahs/abc", http.StatusBadRequest, "INVALID_INPUT"},
		{"/api/pages/605", http.StatusBadRequest, "OUT_OF_RANGE"},
		{"/api/pages/2", http.StatusNotFound, "NOT_FOUND"},
		{"/api/juz/31", http.StatusBadRequest, "OUT_OF_RANGE"},
		{"/api/verses/2", http.StatusBadRequest, "MALFORMED_KEY"},
		{"/api/verses/2:300", http.StatusNotFound, "VERSE_NOT_FOUND"},
		{"/api/verses/115:1", http.StatusBadRequest, "OUT_OF_RANGE"},
		{"/api/ranges/2:5-", http.StatusBadRequest, "MALFORMED_KEY"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w, env := ts.do(t, http.MethodGet, tt.path, "")
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if env.Success || env.Error == nil || env.Error.Code != tt.code {
				t.Errorf("error = %+v, want code %s", env.Error, tt.code)
			}
		})
	}
}

func TestPageEndpoint(t *testing.T) {
	ts := newTestServer(t, Config{})
	w, env := ts.do(t, http.MethodGet, "/api/pages/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/pages/1 = %d %+v", w.Code, env.Error)
	}
	page := decodeData[PageView](t, env)
	if page.Page != 1 || page.SurahCount != 1 || page.VerseCount != 7 {
		t.Errorf("page = %+v", page)
	}
	if page.FontName != quran.PageFontName(1) {
		t.Errorf("FontName = %q", page.FontName)
	}
	if len(page.Lines) != 7 {
		t.Fatalf("lines = %d, want 7", len(page.Lines))
	}
	first := page.Lines[0]
	if first.Key != "Page1-Line2" || first.SurahStart != 1 || len(first.Words) != 2 {
		t.Errorf("first line = %+v", first)
	}
	if page.Lines[1].SurahStart != 0 {
		t.Errorf("second line SurahStart = %d, want 0", page.Lines[1].SurahStart)
	}
}

func TestPageWithoutContent(t *testing.T) {
	s := New(Config{}, selection.New())
	defer s.Close()

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pages/2", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var env envelope
	json.Unmarshal(w.Body.Bytes(), &env)
	page := decodeData[PageView](t, env)
	if len(page.Lines) != 0 || len(page.Segments) == 0 {
		t.Errorf("page = %+v", page)
	}
}

func TestJuzVerseAndRangeEndpoints(t *testing.T) {
	ts := newTestServer(t, Config{})

	_, env := ts.do(t, http.MethodGet, "/api/juz/1", "")
	juz := decodeData[JuzView](t, env)
	if juz.Juz != 1 || juz.Verses[1] != (quran.VerseInterval{Start: 1, End: 7}) {
		t.Errorf("juz 1 = %+v", juz)
	}

	_, env = ts.do(t, http.MethodGet, "/api/verses/2:255", "")
	info := decodeData[VerseInfo](t, env)
	if info.Key != verse.NewKey(2, 255) || info.Page != 42 || info.Juz != 3 || info.Sajdah || info.Selected {
		t.Errorf("verse 2:255 = %+v", info)
	}

	_, env = ts.do(t, http.MethodGet, "/api/ranges/1:6-2:2", "")
	rv := decodeData[RangeExprView](t, env)
	if len(rv.Keys) != 4 {
		t.Errorf("keys = %v, want 4", rv.Keys)
	}
	if got := rangeStrings(rv.Pieces); len(got) != 2 || got[0] != "1:6-1:7" || got[1] != "2:1-2:2" {
		t.Errorf("pieces = %v", got)
	}
}

func TestTapFlowPersists(t *testing.T) {
	ts := newTestServer(t, Config{})

	w, env := ts.do(t, http.MethodPost, "/api/selection/tap", `{"key":"2:5"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("tap = %d %+v", w.Code, env.Error)
	}
	view := decodeData[SelectionView](t, env)
	if view.Pending == nil || *view.Pending != verse.NewKey(2, 5) || len(view.Ranges) != 0 {
		t.Fatalf("after first tap = %+v", view)
	}

	_, env = ts.do(t, http.MethodPost, "/api/selection/tap", `{"key":"2:10"}`)
	view = decodeData[SelectionView](t, env)
	if view.Pending != nil || view.SelectedCount != 6 || !view.CanUndo {
		t.Fatalf("after second tap = %+v", view)
	}
	if got := rangeStrings(view.Ranges); len(got) != 1 || got[0] != "2:5-2:10" {
		t.Errorf("ranges = %v", got)
	}

	saved, err := ts.store.LoadRanges(context.Background(), "default")
	if err != nil {
		t.Fatal(err)
	}
	if got := rangeStrings(saved); len(got) != 1 || got[0] != "2:5-2:10" {
		t.Errorf("stored = %v", got)
	}

	_, env = ts.do(t, http.MethodGet, "/api/selection/keys", "")
	if env.Meta.Total != 6 {
		t.Errorf("selected keys total = %d, want 6", env.Meta.Total)
	}
	_, env = ts.do(t, http.MethodGet, "/api/verses/2:7", "")
	if info := decodeData[VerseInfo](t, env); !info.Selected {
		t.Error("2:7 should be selected")
	}
}

func TestUndoRedo(t *testing.T) {
	ts := newTestServer(t, Config{})

	w, env := ts.do(t, http.MethodPost, "/api/selection/undo", "")
	if w.Code != http.StatusConflict || env.Error.Code != "NOTHING_TO_UNDO" {
		t.Fatalf("undo on empty = %d %+v", w.Code, env.Error)
	}

	ts.do(t, http.MethodPost, "/api/selection/ranges", `{"expr":"3:1-3:5"}`)
	_, env = ts.do(t, http.MethodPost, "/api/selection/undo", "")
	view := decodeData[SelectionView](t, env)
	if len(view.Ranges) != 0 || view.CanUndo || !view.CanRedo {
		t.Errorf("after undo = %+v", view)
	}
	if saved, _ := ts.store.LoadRanges(context.Background(), "default"); len(saved) != 0 {
		t.Errorf("stored after undo = %v", rangeStrings(saved))
	}

	_, env = ts.do(t, http.MethodPost, "/api/selection/redo", "")
	view = decodeData[SelectionView](t, env)
	if got := rangeStrings(view.Ranges); len(got) != 1 || got[0] != "3:1-3:5" {
		t.Errorf("after redo = %v", got)
	}

	w, env = ts.do(t, http.MethodPost, "/api/selection/redo", "")
	if w.Code != http.StatusConflict || env.Error.Code != "NOTHING_TO_REDO" {
		t.Errorf("redo on empty = %d %+v", w.Code, env.Error)
	}
}

func TestAddRangeRequests(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		want   []string
	}{
		{"keys", `{"start":"2:10","end":"2:5"}`, http.StatusOK, []string{"2:5-2:10"}},
		{"expr", `{"expr":"2:5-10"}`, http.StatusOK, []string{"2:5-2:10"}},
		{"cross surah", `{"start":"1:6","end":"2:2"}`, http.StatusOK, []string{"1:6-1:7", "2:1-2:2"}},
		{"missing end", `{"start":"2:5"}`, http.StatusBadRequest, nil},
		{"expr and keys", `{"expr":"2:5","start":"2:5","end":"2:6"}`, http.StatusBadRequest, nil},
		{"malformed key", `{"start":"2:x","end":"2:6"}`, http.StatusBadRequest, nil},
		{"unknown verse", `{"start":"2:5","end":"2:300"}`, http.StatusNotFound, nil},
		{"unknown field", `{"from":"2:5"}`, http.StatusBadRequest, nil},
		{"not json", `2:5`, http.StatusBadRequest, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, Config{})
			w, env := ts.do(t, http.MethodPost, "/api/selection/ranges", tt.body)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%+v)", w.Code, tt.status, env.Error)
			}
			if tt.want == nil {
				return
			}
			view := decodeData[SelectionView](t, env)
			got := rangeStrings(view.Ranges)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("ranges = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemoveAndClearRanges(t *testing.T) {
	ts := newTestServer(t, Config{})
	ts.do(t, http.MethodPost, "/api/selection/ranges", `{"expr":"2:1-2:3"}`)
	_, env := ts.do(t, http.MethodPost, "/api/selection/ranges", `{"expr":"3:1-3:3"}`)
	view := decodeData[SelectionView](t, env)
	if len(view.Ranges) != 2 {
		t.Fatalf("ranges = %v", rangeStrings(view.Ranges))
	}

	w, env := ts.do(t, http.MethodDelete, "/api/selection/ranges/missing", "")
	if w.Code != http.StatusNotFound || env.Error.Code != "NOT_FOUND" {
		t.Errorf("remove missing = %d %+v", w.Code, env.Error)
	}

	_, env = ts.do(t, http.MethodDelete, "/api/selection/ranges/"+view.Ranges[0].ID, "")
	view = decodeData[SelectionView](t, env)
	if got := rangeStrings(view.Ranges); len(got) != 1 || got[0] != "3:1-3:3" {
		t.Errorf("after remove = %v", got)
	}

	ts.do(t, http.MethodPut, "/api/selection/pending", `{"key":"4:1"}`)
	_, env = ts.do(t, http.MethodDelete, "/api/selection/ranges", "")
	view = decodeData[SelectionView](t, env)
	if len(view.Ranges) != 0 || view.Pending != nil {
		t.Errorf("after clear = %+v", view)
	}
}

func TestPendingEndpoints(t *testing.T) {
	ts := newTestServer(t, Config{})

	_, env := ts.do(t, http.MethodPut, "/api/selection/pending", `{"key":"18:10"}`)
	view := decodeData[SelectionView](t, env)
	if view.Pending == nil || *view.Pending != verse.NewKey(18, 10) {
		t.Fatalf("pending = %+v", view.Pending)
	}

	_, env = ts.do(t, http.MethodDelete, "/api/selection/pending", "")
	view = decodeData[SelectionView](t, env)
	if view.Pending != nil {
		t.Errorf("pending after clear = %v", view.Pending)
	}

	w, _ := ts.do(t, http.MethodPut, "/api/selection/pending", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty key = %d, want 400", w.Code)
	}
}

func TestProgressEndpoints(t *testing.T) {
	ts := newTestServer(t, Config{})
	ts.do(t, http.MethodPost, "/api/selection/ranges", `{"expr":"1:1-1:7"}`)
	ts.do(t, http.MethodPost, "/api/selection/ranges", `{"expr":"2:1-2:5"}`)

	w, env := ts.do(t, http.MethodGet, "/api/progress", "")
	if w.Code != http.StatusOK {
		t.Fatalf("progress = %d", w.Code)
	}
	sum := decodeData[progress.Summary](t, env)
	if sum.TotalMemorizedVerses != 12 || sum.CompletedSurahs != 1 || sum.InProgressSurahs != 1 {
		t.Errorf("summary = %+v", sum)
	}

	// Page 2 is not served, so word counts fall back to zero.
	_, env = ts.do(t, http.MethodGet, "/api/progress/server", "")
	data := decodeData[progress.ServerData](t, env)
	if len(data[1]) != 1 || data[1][0].EndVerse != 7 || data[1][0].WordsCount != 0 {
		t.Errorf("server data = %+v", data)
	}
}

func TestServerDataWordCounts(t *testing.T) {
	ts := newTestServer(t, Config{})
	ts.do(t, http.MethodPost, "/api/selection/ranges", `{"expr":"1:1-1:7"}`)

	_, env := ts.do(t, http.MethodGet, "/api/progress/server", "")
	data := decodeData[progress.ServerData](t, env)
	if len(data[1]) != 1 || data[1][0].WordsCount != 14 {
		t.Errorf("server data = %+v", data)
	}
}

func TestRestoreServerData(t *testing.T) {
	ts := newTestServer(t, Config{})
	ts.do(t, http.MethodPost, "/api/selection/ranges", `{"expr":"5:1"}`)

	body := `{"2":[{"startVerse":1,"endVerse":5,"wordsCount":0},{"startVerse":4,"endVerse":8,"wordsCount":0}],"1":[{"startVerse":1,"endVerse":7,"wordsCount":29}]}`
	w, env := ts.do(t, http.MethodPut, "/api/progress/server", body)
	if w.Code != http.StatusOK {
		t.Fatalf("restore = %d %+v", w.Code, env.Error)
	}
	view := decodeData[SelectionView](t, env)
	if got := rangeStrings(view.Ranges); strings.Join(got, ",") != "1:1-1:7,2:1-2:8" {
		t.Errorf("ranges = %v", got)
	}
	if view.CanUndo || view.CanRedo {
		t.Errorf("restore should reset history: %+v", view)
	}

	saved, _ := ts.store.LoadRanges(context.Background(), "default")
	if len(saved) != 2 {
		t.Errorf("stored = %v", rangeStrings(saved))
	}

	w, _ = ts.do(t, http.MethodPut, "/api/progress/server", `{"2":[{"startVerse":1,"endVerse":400}]}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("invalid server data = %d, want 404", w.Code)
	}
}

func TestLoadRestoresProfile(t *testing.T) {
	ts := newTestServer(t, Config{Profile: "hifz"})
	r, _ := verse.NewRange("", verse.NewKey(67, 1), verse.NewKey(67, 30))
	if _, err := ts.store.SaveRanges(context.Background(), "hifz", []verse.Range{r}); err != nil {
		t.Fatal(err)
	}
	if err := ts.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	_, env := ts.do(t, http.MethodGet, "/api/selection", "")
	view := decodeData[SelectionView](t, env)
	if got := rangeStrings(view.Ranges); len(got) != 1 || got[0] != "67:1-67:30" || view.SelectedCount != 30 {
		t.Errorf("loaded = %+v", view)
	}
}

func TestBodyTooLarge(t *testing.T) {
	ts := newTestServer(t, Config{})
	body := `{"key":"` + strings.Repeat("1", maxBodyBytes) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/api/selection/tap", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{}, false},
		{"bad port", Config{Port: 70000}, true},
		{"bad profile", Config{Profile: "../x"}, true},
		{"short key", Config{Auth: AuthConfig{Enabled: true, APIKey: "short"}}, true},
		{"tls without files", Config{TLS: TLSConfig{Enabled: true}}, true},
		{"tls missing cert", Config{TLS: TLSConfig{Enabled: true, CertFile: "/nonexistent.pem", KeyFile: "/nonexistent.key"}}, true},
		{"negative rate", Config{RateLimit: RateLimitConfig{RequestsPerMinute: -1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		origin     string
		method     string
		wantStatus int
		wantOrigin string
	}{
		{"any origin", nil, "https://a.example", http.MethodGet, http.StatusOK, "*"},
		{"allowed origin", []string{"https://a.example"}, "https://a.example", http.MethodGet, http.StatusOK, "https://a.example"},
		{"other origin", []string{"https://a.example"}, "https://b.example", http.MethodGet, http.StatusOK, ""},
		{"preflight allowed", []string{"https://a.example"}, "https://a.example", http.MethodOptions, http.StatusNoContent, "https://a.example"},
		{"preflight refused", []string{"https://a.example"}, "https://b.example", http.MethodOptions, http.StatusForbidden, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, Config{AllowedOrigins: tt.allowed})
			r := httptest.NewRequest(tt.method, "/health", nil)
			r.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			ts.handler.ServeHTTP(w, r)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

func TestListenAndServeRejectsInvalidConfig(t *testing.T) {
	s := New(Config{Port: -1}, selection.New())
	defer s.Close()
	if err := s.ListenAndServe(context.Background()); err == nil {
		t.Error("expected config error")
	}
}
