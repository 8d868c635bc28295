package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/werd/core/errors"
	"github.com/FocuswithJustin/werd/core/verse"
	"github.com/FocuswithJustin/werd/internal/logging"
	"github.com/FocuswithJustin/werd/internal/validation"
)

// BackupVersion is the backup format version written by Export.
const BackupVersion = 1

// Backup is the JSON document inside an xz-compressed backup file.
type Backup struct {
	Version     int           `json:"version"`
	Profile     string        `json:"profile"`
	CreatedAt   time.Time     `json:"created_at"`
	Fingerprint string        `json:"fingerprint"`
	Ranges      []verse.Range `json:"ranges"`
}

// injectable for tests
var (
	xzNewWriter = xz.NewWriter
	xzNewReader = xz.NewReader
)

// Export writes the ranges of profile to w as xz-compressed JSON.
func (s *Store) Export(ctx context.Context, w io.Writer, profile string) (Backup, error) {
	ranges, err := s.LoadRanges(ctx, profile)
	if err != nil {
		return Backup{}, err
	}
	if ranges == nil {
		ranges = []verse.Range{}
	}
	b := Backup{
		Version:     BackupVersion,
		Profile:     profile,
		CreatedAt:   s.now().UTC().Truncate(time.Second),
		Fingerprint: Fingerprint(ranges),
		Ranges:      ranges,
	}

	zw, err := xzNewWriter(w)
	if err != nil {
		return Backup{}, fmt.Errorf("failed to create xz writer: %w", err)
	}
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		zw.Close()
		return Backup{}, errors.NewIO("write backup", s.path, err)
	}
	if err := zw.Close(); err != nil {
		return Backup{}, errors.NewIO("write backup", s.path, err)
	}
	logging.StoreEvent("export", profile, len(ranges))
	return b, nil
}

// ReadBackup decodes and verifies a backup without touching a database.
// Every range must be valid and the recorded fingerprint must match the
// ranges.
func ReadBackup(r io.Reader) (Backup, error) {
	r, err := validation.ExpectFileType(io.LimitReader(r, validation.MaxBackupSize), validation.FileTypeXZ)
	if err != nil {
		return Backup{}, err
	}
	zr, err := xzNewReader(r)
	if err != nil {
		return Backup{}, errors.NewParse("backup", "", "xz: "+err.Error())
	}

	var b Backup
	if err := json.NewDecoder(zr).Decode(&b); err != nil {
		return Backup{}, errors.NewParse("backup", "", err.Error())
	}
	if b.Version != BackupVersion {
		return Backup{}, &errors.UnsupportedError{Feature: "backup version", Reason: fmt.Sprint(b.Version)}
	}
	for i, rg := range b.Ranges {
		if err := validateRange(rg); err != nil {
			return Backup{}, errors.Wrapf(err, "backup range %d", i)
		}
	}
	if got := Fingerprint(b.Ranges); got != b.Fingerprint {
		return Backup{}, errors.NewValidation("fingerprint", fmt.Sprintf("backup records %s, ranges hash to %s", b.Fingerprint, got))
	}
	return b, nil
}

// Import verifies a backup and saves its ranges. The ranges go to profile,
// or to the profile recorded in the backup when profile is empty.
func (s *Store) Import(ctx context.Context, r io.Reader, profile string) (Backup, error) {
	b, err := ReadBackup(r)
	if err != nil {
		return Backup{}, err
	}
	if profile == "" {
		profile = b.Profile
	}
	if _, err := s.SaveRanges(ctx, profile, b.Ranges); err != nil {
		return Backup{}, err
	}
	logging.StoreEvent("import", profile, len(b.Ranges), "source_profile", b.Profile)
	return b, nil
}
