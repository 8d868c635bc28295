// Package store persists memorized verse ranges in SQLite, one set per
// profile.
//
// Build modes:
//   - Default (CGO_ENABLED=0): pure Go modernc.org/sqlite
//   - CGO mode (CGO_ENABLED=1 -tags cgo_sqlite): mattn/go-sqlite3
//
// Only ranges are stored. Pending verses and undo history belong to the
// in-memory selection.
package store

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/werd/core/errors"
	"github.com/FocuswithJustin/werd/core/quran"
	"github.com/FocuswithJustin/werd/core/verse"
	"github.com/FocuswithJustin/werd/internal/logging"
	"github.com/FocuswithJustin/werd/internal/validation"
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	name        TEXT PRIMARY KEY,
	fingerprint TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS ranges (
	profile     TEXT NOT NULL REFERENCES profiles(name) ON DELETE CASCADE,
	id          TEXT NOT NULL,
	surah       INTEGER NOT NULL,
	start_verse INTEGER NOT NULL,
	end_verse   INTEGER NOT NULL,
	start_surah INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (profile, id)
);
CREATE INDEX IF NOT EXISTS idx_ranges_surah ON ranges(profile, surah, start_verse);
`

// Info describes the SQLite driver compiled in.
type Info struct {
	DriverName string `json:"driver_name"`
	DriverType string `json:"driver_type"`
	Package    string `json:"package"`
}

// DriverInfo returns the active driver configuration.
func DriverInfo() Info {
	return Info{DriverName: driverName, DriverType: driverType, Package: driverPackage}
}

// Store is a SQLite-backed range store. It is safe for concurrent use.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := validation.ValidatePath(path); err != nil {
		return nil, errors.NewValidation("db", err.Error())
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	// One connection keeps the pragmas and ":memory:" databases consistent.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{"PRAGMA foreign_keys = ON", "PRAGMA busy_timeout = 5000", schema} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, errors.NewIO("initialize", path, err)
		}
	}
	return &Store{db: db, path: path, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.path
}

// Fingerprint returns the hex BLAKE3 digest of the canonical form of
// ranges: merged, with ids assigned, one "id=surah:start-surah:end/start"
// line per range.
func Fingerprint(ranges []verse.Range) string {
	var b strings.Builder
	for _, r := range canonical(ranges) {
		fmt.Fprintf(&b, "%s=%s-%s/%d\n", r.ID, r.Start, r.End, r.StartSurah)
	}
	sum := blake3.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// canonical merges ranges and gives each a unique id. Missing ids become
// r001, r002, ...; a repeated id gets a "#n" suffix.
func canonical(ranges []verse.Range) []verse.Range {
	merged := verse.MergeOverlapping(ranges)
	seen := make(map[string]bool, len(merged))
	for i := range merged {
		switch id := merged[i].ID; {
		case id == "":
			merged[i].ID = fmt.Sprintf("r%03d", i+1)
		case seen[id]:
			merged[i].ID = fmt.Sprintf("%s#%d", id, i+1)
		}
		seen[merged[i].ID] = true
	}
	return merged
}

// SaveRanges replaces the ranges of profile. Ranges are merged before
// writing. The write is skipped, and false returned, when the stored
// fingerprint already matches.
func (s *Store) SaveRanges(ctx context.Context, profile string, ranges []verse.Range) (bool, error) {
	if err := validation.ValidateProfile(profile); err != nil {
		return false, err
	}
	merged := canonical(ranges)
	for _, r := range merged {
		if err := validateRange(r); err != nil {
			return false, err
		}
	}

	fp := Fingerprint(merged)
	stored, err := s.Fingerprint(ctx, profile)
	if err != nil {
		return false, err
	}
	if stored == fp {
		logging.StoreEvent("save", profile, len(merged), "skipped", true)
		return false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, errors.NewIO("begin", s.path, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO profiles (name, fingerprint, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET fingerprint = excluded.fingerprint, updated_at = excluded.updated_at`,
		profile, fp, s.now().UTC().Format(time.RFC3339)); err != nil {
		return false, errors.NewIO("write profile", s.path, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM ranges WHERE profile = ?`, profile); err != nil {
		return false, errors.NewIO("clear ranges", s.path, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO ranges (profile, id, surah, start_verse, end_verse, start_surah) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return false, errors.NewIO("prepare", s.path, err)
	}
	defer stmt.Close()
	for _, r := range merged {
		if _, err := stmt.ExecContext(ctx, profile, r.ID, r.Surah, r.Start.Verse, r.End.Verse, r.StartSurah); err != nil {
			return false, errors.NewIO("write range", s.path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, errors.NewIO("commit", s.path, err)
	}
	logging.StoreEvent("save", profile, len(merged), "skipped", false)
	return true, nil
}

// LoadRanges returns the ranges of profile ordered by surah and start
// verse. An unknown profile has no ranges.
func (s *Store) LoadRanges(ctx context.Context, profile string) ([]verse.Range, error) {
	if err := validation.ValidateProfile(profile); err != nil {
		return nil, err
	}
	return s.query(ctx,
		`SELECT id, surah, start_verse, end_verse, start_surah FROM ranges
		 WHERE profile = ? ORDER BY surah, start_verse`, profile)
}

// LoadSurah returns the ranges of profile inside surah.
func (s *Store) LoadSurah(ctx context.Context, profile string, surah int) ([]verse.Range, error) {
	if err := validation.ValidateProfile(profile); err != nil {
		return nil, err
	}
	if _, err := quran.Surah(surah); err != nil {
		return nil, err
	}
	return s.query(ctx,
		`SELECT id, surah, start_verse, end_verse, start_surah FROM ranges
		 WHERE profile = ? AND surah = ? ORDER BY start_verse`, profile, surah)
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]verse.Range, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.NewIO("query ranges", s.path, err)
	}
	defer rows.Close()

	var out []verse.Range
	for rows.Next() {
		var r verse.Range
		var startVerse, endVerse int
		if err := rows.Scan(&r.ID, &r.Surah, &startVerse, &endVerse, &r.StartSurah); err != nil {
			return nil, errors.NewIO("scan range", s.path, err)
		}
		r.Start = verse.NewKey(r.Surah, startVerse)
		r.End = verse.NewKey(r.Surah, endVerse)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewIO("query ranges", s.path, err)
	}
	return out, nil
}

// Fingerprint returns the stored fingerprint of profile, or "" when the
// profile has never been saved.
func (s *Store) Fingerprint(ctx context.Context, profile string) (string, error) {
	var fp string
	err := s.db.QueryRowContext(ctx, `SELECT fingerprint FROM profiles WHERE name = ?`, profile).Scan(&fp)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.NewIO("read profile", s.path, err)
	}
	return fp, nil
}

// Profiles lists saved profile names in order.
func (s *Store) Profiles(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM profiles ORDER BY name`)
	if err != nil {
		return nil, errors.NewIO("list profiles", s.path, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.NewIO("scan profile", s.path, err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DeleteProfile removes profile and its ranges. Deleting an unknown
// profile returns a NotFoundError.
func (s *Store) DeleteProfile(ctx context.Context, profile string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewIO("begin", s.path, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ranges WHERE profile = ?`, profile); err != nil {
		return errors.NewIO("delete ranges", s.path, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE name = ?`, profile)
	if err != nil {
		return errors.NewIO("delete profile", s.path, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NewNotFound("profile", profile)
	}
	if err := tx.Commit(); err != nil {
		return errors.NewIO("commit", s.path, err)
	}
	logging.StoreEvent("delete", profile, 0)
	return nil
}

func validateRange(r verse.Range) error {
	if err := r.Start.Validate(); err != nil {
		return err
	}
	if err := r.End.Validate(); err != nil {
		return err
	}
	if r.Start.Surah != r.End.Surah {
		return errors.NewValidation("range", r.String()+" crosses a surah boundary")
	}
	return nil
}
