package api

import (
	"context"
	"net/http"

	"github.com/FocuswithJustin/werd/core/errors"
	"github.com/FocuswithJustin/werd/core/layout"
	"github.com/FocuswithJustin/werd/core/progress"
	"github.com/FocuswithJustin/werd/core/quran"
	"github.com/FocuswithJustin/werd/core/verse"
	"github.com/FocuswithJustin/werd/internal/logging"
)

// SelectionView is the selection state returned by the selection endpoints.
type SelectionView struct {
	Ranges        []verse.Range `json:"ranges"`
	Pending       *verse.Key    `json:"pending,omitempty"`
	CanUndo       bool          `json:"can_undo"`
	CanRedo       bool          `json:"can_redo"`
	SelectedCount int           `json:"selected_count"`
}

// KeyRequest carries a single verse key, e.g. {"key": "2:255"}.
type KeyRequest struct {
	Key verse.Key `json:"key"`
}

// AddRangeRequest adds a range given either as two keys or as an
// expression such as "2:5-10".
type AddRangeRequest struct {
	Start verse.Key `json:"start"`
	End   verse.Key `json:"end"`
	Expr  string    `json:"expr"`
}

func (s *Server) selectionView() SelectionView {
	snap := s.sel.Snapshot()
	ranges := snap.Ranges
	if ranges == nil {
		ranges = []verse.Range{}
	}
	return SelectionView{
		Ranges:        ranges,
		Pending:       snap.Pending,
		CanUndo:       s.sel.CanUndo(),
		CanRedo:       s.sel.CanRedo(),
		SelectedCount: verse.VerseCount(ranges),
	}
}

// committed persists the selection and writes its state.
func (s *Server) committed(w http.ResponseWriter, r *http.Request) {
	s.persist(r.Context())
	respond(w, http.StatusOK, s.selectionView())
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, s.selectionView())
}

func (s *Server) handleSelectedKeys(w http.ResponseWriter, r *http.Request) {
	respondList(w, s.sel.SelectedKeys())
}

func decodeKey(w http.ResponseWriter, r *http.Request) (verse.Key, bool) {
	var req KeyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondErr(w, r, err)
		return verse.Key{}, false
	}
	if req.Key.IsZero() {
		respondErr(w, r, errors.NewValidation("key", "key is required"))
		return verse.Key{}, false
	}
	if err := req.Key.Validate(); err != nil {
		respondErr(w, r, err)
		return verse.Key{}, false
	}
	return req.Key, true
}

func (s *Server) handleTap(w http.ResponseWriter, r *http.Request) {
	key, ok := decodeKey(w, r)
	if !ok {
		return
	}
	s.sel.TapVerse(key)
	s.committed(w, r)
}

func (s *Server) handleSetPending(w http.ResponseWriter, r *http.Request) {
	key, ok := decodeKey(w, r)
	if !ok {
		return
	}
	s.sel.SetPendingStartVerse(key)
	s.committed(w, r)
}

func (s *Server) handleClearPending(w http.ResponseWriter, r *http.Request) {
	s.sel.ClearPending()
	s.committed(w, r)
}

func (s *Server) handleAddRange(w http.ResponseWriter, r *http.Request) {
	var req AddRangeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	start, end := req.Start, req.End
	switch {
	case req.Expr != "":
		if !start.IsZero() || !end.IsZero() {
			respondErr(w, r, errors.NewValidation("expr", "expr cannot be combined with start and end"))
			return
		}
		var err error
		if start, end, err = parseValidRange(req.Expr); err != nil {
			respondErr(w, r, err)
			return
		}
	case start.IsZero() || end.IsZero():
		respondErr(w, r, errors.NewValidation("range", "start and end, or expr, are required"))
		return
	default:
		for _, k := range []verse.Key{start, end} {
			if err := k.Validate(); err != nil {
				respondErr(w, r, err)
				return
			}
		}
	}

	s.sel.AddVerseRange(start, end)
	s.committed(w, r)
}

func (s *Server) handleClearRanges(w http.ResponseWriter, r *http.Request) {
	s.sel.ClearRanges()
	s.committed(w, r)
}

func (s *Server) handleRemoveRange(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.sel.RemoveRangeIfPresent(id) {
		respondErr(w, r, errors.NewNotFound("range", id))
		return
	}
	s.committed(w, r)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	if !s.sel.Undo() {
		respondError(w, http.StatusConflict, "NOTHING_TO_UNDO", "No change to undo")
		return
	}
	s.committed(w, r)
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	if !s.sel.Redo() {
		respondError(w, http.StatusConflict, "NOTHING_TO_REDO", "No change to redo")
		return
	}
	s.committed(w, r)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	ranges := s.sel.Ranges()
	sum, err := progress.Summarize(ranges, s.wordCounts(r.Context(), ranges))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respond(w, http.StatusOK, sum)
}

func (s *Server) handleServerData(w http.ResponseWriter, r *http.Request) {
	ranges := s.sel.Ranges()
	respond(w, http.StatusOK, progress.ToServerData(ranges, s.wordCounts(r.Context(), ranges)))
}

func (s *Server) handleRestoreServerData(w http.ResponseWriter, r *http.Request) {
	var data progress.ServerData
	if err := decodeJSON(w, r, &data); err != nil {
		respondErr(w, r, err)
		return
	}
	ranges, err := progress.FromServerData(data)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	s.sel.Restore(ranges)
	s.committed(w, r)
}

// wordCounts loads the pages covering ranges from the content provider.
// It returns nil without a provider or when any page fails to load, in
// which case word counts are reported as zero.
func (s *Server) wordCounts(ctx context.Context, ranges []verse.Range) map[verse.Key]int {
	if s.content == nil || len(ranges) == 0 {
		return nil
	}

	pages := make(map[int]bool)
	for _, rg := range verse.MergeOverlapping(ranges) {
		first, err := quran.PageNumber(rg.Start.Surah, rg.Start.Verse)
		if err != nil {
			logging.WarnContext(ctx, "word counts unavailable", "range", rg.String(), "error", err)
			return nil
		}
		last, err := quran.PageNumber(rg.End.Surah, rg.End.Verse)
		if err != nil {
			logging.WarnContext(ctx, "word counts unavailable", "range", rg.String(), "error", err)
			return nil
		}
		for p := first; p <= last; p++ {
			pages[p] = true
		}
	}

	var verses []layout.Verse
	for p := range pages {
		page, err := s.content.Page(ctx, p)
		if err != nil {
			logging.WarnContext(ctx, "word counts unavailable", "page", p, "error", err)
			return nil
		}
		verses = append(verses, page...)
	}
	return progress.WordCounts(verses)
}
