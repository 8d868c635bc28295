// Package selection implements the verse-range selection state machine
// with bounded undo and redo.
//
// A Selection holds the committed ranges and an optional pending start
// verse. Taps drive it through three implicit states: idle, awaiting an
// end verse, and back. Every committed change is an immutable Snapshot;
// history and future stacks hold snapshot pointers, so undo and redo
// restore the exact previous value without copying.
//
// Keys passed in are expected to be valid (see verse.Key.Validate). The
// machine never returns errors: an operation whose keys cannot be split
// is logged and dropped without touching history.
package selection

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/werd/core/verse"
	"github.com/FocuswithJustin/werd/internal/logging"
)

// DefaultHistoryLimit is the number of undo steps kept by default.
const DefaultHistoryLimit = 50

// Op names the operation that produced a change.
type Op string

// Operations reported in Change.
const (
	OpSetPending Op = "set_pending"
	OpAddRange   Op = "add_range"
	OpRemove     Op = "remove_range"
	OpClear      Op = "clear"
	OpUndo       Op = "undo"
	OpRedo       Op = "redo"
	OpRestore    Op = "restore"
)

// Snapshot is one committed selection state. Snapshots are never modified
// after they are published; callers must not modify Ranges.
type Snapshot struct {
	Ranges  []verse.Range `json:"ranges"`
	Pending *verse.Key    `json:"pending,omitempty"`
}

// HasPending reports whether a start verse is awaiting its end.
func (s *Snapshot) HasPending() bool {
	return s.Pending != nil
}

// Change is passed to OnChange hooks after every committed change.
type Change struct {
	Op       Op
	Snapshot *Snapshot
	CanUndo  bool
	CanRedo  bool
}

// Option configures a Selection.
type Option func(*Selection)

// WithIDFunc replaces the uuid generator used for new range ids.
func WithIDFunc(fn func() string) Option {
	return func(s *Selection) { s.newID = fn }
}

// WithHistoryLimit sets how many undo steps are kept. Values below 1 are
// ignored.
func WithHistoryLimit(n int) Option {
	return func(s *Selection) {
		if n > 0 {
			s.limit = n
		}
	}
}

// Selection is safe for concurrent use. Mutations are serialized; reads
// load the last committed snapshot without locking.
type Selection struct {
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
	history []*Snapshot
	future  []*Snapshot
	hooks   []func(Change)

	limit int
	newID func() string
}

var empty = &Snapshot{}

// New creates an empty selection.
func New(opts ...Option) *Selection {
	s := &Selection{
		limit: DefaultHistoryLimit,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.current.Store(empty)
	return s
}

// OnChange registers a hook called after every committed change. Hooks run
// synchronously while the selection is locked, so they must not call back
// into the Selection's mutating methods.
func (s *Selection) OnChange(fn func(Change)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// Snapshot returns the last committed state.
func (s *Selection) Snapshot() *Snapshot {
	return s.current.Load()
}

// Ranges returns a copy of the committed ranges.
func (s *Selection) Ranges() []verse.Range {
	return slices.Clone(s.current.Load().Ranges)
}

// Pending returns the pending start verse, if any.
func (s *Selection) Pending() (verse.Key, bool) {
	p := s.current.Load().Pending
	if p == nil {
		return verse.Key{}, false
	}
	return *p, true
}

// SelectedKeys returns every verse covered by the committed ranges.
func (s *Selection) SelectedKeys() []verse.Key {
	return verse.SelectedKeys(s.current.Load().Ranges)
}

// IsSelected reports whether k lies in a committed range.
func (s *Selection) IsSelected(k verse.Key) bool {
	return verse.IsInRanges(k, s.current.Load().Ranges)
}

// CanUndo reports whether Undo would change anything.
func (s *Selection) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history) > 0
}

// CanRedo reports whether Redo would change anything.
func (s *Selection) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.future) > 0
}

// TapVerse applies one tap on a verse:
//
//   - idle, k inside a multi-verse range: nothing happens
//   - idle, k is a single-verse range: that range is removed
//   - idle, k unselected: k becomes the pending start verse
//   - pending: the range from the pending verse to k is added
func (s *Selection) TapVerse(k verse.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current.Load()
	if cur.Pending != nil {
		s.addRange(cur, *cur.Pending, k)
		return
	}
	if r, ok := verse.FindSingleVerse(k, cur.Ranges); ok {
		s.removeRange(cur, r.ID)
		return
	}
	if verse.IsInRanges(k, cur.Ranges) {
		logging.Debug("tap inside selected range ignored", "verse", k.String())
		return
	}
	s.setPending(cur, &k)
}

// SetPendingStartVerse sets the pending start verse. Setting the value
// already pending is not recorded.
func (s *Selection) SetPendingStartVerse(k verse.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setPending(s.current.Load(), &k)
}

// ClearPending drops the pending start verse, if any.
func (s *Selection) ClearPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setPending(s.current.Load(), nil)
}

// AddVerseRange adds the range between start and end, split at the surah
// boundary if needed, merges it into the existing ranges and clears the
// pending start verse.
func (s *Selection) AddVerseRange(start, end verse.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addRange(s.current.Load(), start, end)
}

// RemoveRange removes the range with the given id and reports whether
// one matched. The step is recorded even when no range matches.
func (s *Selection) RemoveRange(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeRange(s.current.Load(), id)
}

// RemoveRangeIfPresent is RemoveRange without the empty step: when no
// range has the id nothing is recorded and it returns false.
func (s *Selection) RemoveRangeIfPresent(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.current.Load()
	if !slices.ContainsFunc(cur.Ranges, func(r verse.Range) bool { return r.ID == id }) {
		return false
	}
	return s.removeRange(cur, id)
}

// ClearRanges removes every range and the pending start verse.
func (s *Selection) ClearRanges() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(OpClear, empty)
}

// Undo restores the state before the last change. It reports whether
// there was anything to undo.
func (s *Selection) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return false
	}
	prev := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.future = append(s.future, s.current.Load())
	s.publish(OpUndo, prev)
	return true
}

// Redo reapplies the last undone change. It reports whether there was
// anything to redo.
func (s *Selection) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.future) == 0 {
		return false
	}
	next := s.future[len(s.future)-1]
	s.future = s.future[:len(s.future)-1]
	s.history = append(s.history, s.current.Load())
	s.publish(OpRedo, next)
	return true
}

// Restore replaces the state with persisted ranges. The ranges are merged,
// the pending verse is cleared and both stacks are emptied.
func (s *Selection) Restore(ranges []verse.Range) {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := verse.MergeOverlapping(ranges)
	for i := range merged {
		if merged[i].ID == "" {
			merged[i].ID = s.newID()
		}
	}
	s.history = nil
	s.future = nil
	s.publish(OpRestore, &Snapshot{Ranges: merged})
}

func (s *Selection) setPending(cur *Snapshot, k *verse.Key) {
	if samePending(cur.Pending, k) {
		return
	}
	s.commit(OpSetPending, &Snapshot{Ranges: cur.Ranges, Pending: k})
}

func (s *Selection) addRange(cur *Snapshot, start, end verse.Key) {
	pieces, err := verse.SplitRangeBySurah(start, end)
	if err != nil {
		logging.Warn("dropping range that cannot be split",
			"start", start.String(), "end", end.String(), "error", err)
		return
	}
	for i := range pieces {
		pieces[i].ID = s.newID()
	}
	ranges := make([]verse.Range, 0, len(cur.Ranges)+len(pieces))
	ranges = append(ranges, cur.Ranges...)
	ranges = append(ranges, pieces...)
	s.commit(OpAddRange, &Snapshot{Ranges: verse.MergeOverlapping(ranges)})
}

func (s *Selection) removeRange(cur *Snapshot, id string) bool {
	ranges := make([]verse.Range, 0, len(cur.Ranges))
	for _, r := range cur.Ranges {
		if r.ID != id {
			ranges = append(ranges, r)
		}
	}
	s.commit(OpRemove, &Snapshot{Ranges: ranges, Pending: cur.Pending})
	return len(ranges) < len(cur.Ranges)
}

// commit records the current snapshot in history, clears the redo stack
// and publishes next. Callers hold s.mu.
func (s *Selection) commit(op Op, next *Snapshot) {
	s.history = append(s.history, s.current.Load())
	if over := len(s.history) - s.limit; over > 0 {
		s.history = slices.Delete(s.history, 0, over)
	}
	s.future = nil
	s.publish(op, next)
}

func (s *Selection) publish(op Op, next *Snapshot) {
	s.current.Store(next)
	logging.SelectionEvent(string(op), len(next.Ranges), len(s.history), len(s.future))
	if len(s.hooks) == 0 {
		return
	}
	ch := Change{Op: op, Snapshot: next, CanUndo: len(s.history) > 0, CanRedo: len(s.future) > 0}
	for _, fn := range s.hooks {
		fn(ch)
	}
}

func samePending(a, b *verse.Key) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
