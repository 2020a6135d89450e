// Package storage manages record files on disk: where they live, how new
// ones are named, how much recording time is left, and their lifecycle.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hannesa2/AudioRecorder/internal/domain/record"
	applog "github.com/hannesa2/AudioRecorder/internal/log"
)

// Prefs is the subset of persisted preferences the repository reads.
type Prefs interface {
	IsStoreDirPublic() bool
	NamingMode() record.NamingMode
	IncrementRecordCounter() (int64, error)
	Settings() record.Settings
}

// FileRepository owns the recordings directory. Build one at start-up and
// share it; call UpdateRecordingDir after the storage preference changes.
//
// Lifecycle operations on the same path are not coordinated with each
// other; concurrent trash/rename/delete of one file may race.
type FileRepository struct {
	prefs     Prefs
	resolver  *Resolver
	freeSpace FreeSpaceFunc
	now       func() time.Time
	logger    zerolog.Logger

	minRemaining time.Duration

	mu  sync.RWMutex
	loc Location
}

// Option customises a FileRepository.
type Option func(*FileRepository)

// WithFreeSpace replaces the free space probe.
func WithFreeSpace(fn FreeSpaceFunc) Option {
	return func(r *FileRepository) { r.freeSpace = fn }
}

// WithClock replaces the time source used for date and timestamp names.
func WithClock(now func() time.Time) Option {
	return func(r *FileRepository) { r.now = now }
}

// WithMinRemainingTime sets the recording time that must be left for
// HasAvailableSpace to succeed. Non-positive values keep MinRemainingTime.
func WithMinRemainingTime(d time.Duration) Option {
	return func(r *FileRepository) {
		if d > 0 {
			r.minRemaining = d
		}
	}
}

// NewFileRepository resolves the recordings directory from the current
// preferences and returns the repository.
func NewFileRepository(prefs Prefs, resolver *Resolver, opts ...Option) *FileRepository {
	r := &FileRepository{
		prefs:     prefs,
		resolver:  resolver,
		freeSpace: DiskFreeSpace,
		now:       time.Now,
		logger:    applog.WithComponent("storage"),

		minRemaining: MinRemainingTime,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.UpdateRecordingDir()
	return r
}

// UpdateRecordingDir re-resolves the recordings directory from the
// public/private preference and returns the new location.
func (r *FileRepository) UpdateRecordingDir() Location {
	loc := r.resolver.Resolve(r.prefs.IsStoreDirPublic())

	r.mu.Lock()
	prev := r.loc
	r.loc = loc
	r.mu.Unlock()

	if prev != loc {
		r.logger.Info().
			Str(applog.FieldDir, loc.Dir).
			Str(applog.FieldRoot, loc.Root.String()).
			Msg("recordings directory resolved")
	}
	return loc
}

// Location returns the current recordings directory and its storage root.
func (r *FileRepository) Location() Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loc
}

// Dir returns the current recordings directory.
func (r *FileRepository) Dir() string {
	return r.Location().Dir
}

// NewRecordFile creates an empty record file named by the naming
// preference, with the extension of the configured format.
//
// The record counter is incremented and persisted before the file is
// created and is not rolled back if creation fails.
func (r *FileRepository) NewRecordFile() (string, error) {
	counter, err := r.prefs.IncrementRecordCounter()
	if err != nil {
		return "", fmt.Errorf("incrementing record counter: %w", err)
	}

	name := RecordName(r.prefs.NamingMode(), counter, r.now())
	format := r.prefs.Settings().Format
	if !format.Valid() {
		format = record.DefaultFormat
	}

	path, err := createFile(r.Dir(), WithExtension(name, format.Extension()))
	if err != nil {
		return "", err
	}
	r.logger.Debug().Str(applog.FieldPath, path).Int64(applog.FieldCounter, counter).Msg("record file created")
	return path, nil
}

// NewNamedRecordFile creates an empty record file with the given file name
// in the recordings directory.
func (r *FileRepository) NewNamedRecordFile(name string) (string, error) {
	if err := validName(name); err != nil {
		return "", &FileCreationError{Path: filepath.Join(r.Dir(), name), Err: err}
	}
	return createFile(r.Dir(), name)
}

// createFile creates dir/name if needed. An existing file is reused as is.
func createFile(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &FileCreationError{Path: path, Err: err}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", &FileCreationError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &FileCreationError{Path: path, Err: err}
	}
	return path, nil
}

// Trash marks the record at path as deleted by appending the trash
// extension. It returns the new path, or false if the rename failed.
func (r *FileRepository) Trash(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	target := WithExtension(path, TrashExtension)
	if err := renameNoReplace(path, target); err != nil {
		r.logger.Warn().Err(err).Str(applog.FieldPath, path).Msg("trash failed")
		return "", false
	}
	return target, true
}

// Untrash restores a trashed record by stripping the trash extension. It
// returns the restored path, or false if path is not trashed or the rename
// failed.
func (r *FileRepository) Untrash(path string) (string, bool) {
	if !IsTrashed(path) {
		r.logger.Warn().Str(applog.FieldPath, path).Msg("untrash of a record that is not trashed")
		return "", false
	}
	target := TrimExtension(path)
	if err := renameNoReplace(path, target); err != nil {
		r.logger.Warn().Err(err).Str(applog.FieldPath, path).Msg("untrash failed")
		return "", false
	}
	return target, true
}

// Delete removes the file or directory at path. It reports whether
// anything was removed and never fails otherwise.
func (r *FileRepository) Delete(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Lstat(path)
	if err != nil {
		r.logger.Warn().Err(err).Str(applog.FieldPath, path).Msg("delete failed")
		return false
	}
	if info.IsDir() {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		r.logger.Warn().Err(err).Str(applog.FieldPath, path).Msg("delete failed")
		return false
	}
	return true
}

// Rename gives the record at path a new base name in the same directory.
// An empty extension keeps the current one; a trashed record stays
// trashed. It fails if the source is missing, the target exists, or
// newName is not a plain file name.
func (r *FileRepository) Rename(path, newName, extension string) bool {
	if err := validName(newName); err != nil {
		r.logger.Warn().Err(err).Str(applog.FieldPath, path).Msg("rename failed")
		return false
	}
	target := RenameTarget(path, newName, extension)
	if target == filepath.Clean(path) {
		_, err := os.Lstat(path)
		return err == nil
	}
	if err := renameNoReplace(path, target); err != nil {
		r.logger.Warn().Err(err).Str(applog.FieldPath, path).Str(applog.FieldNewPath, target).Msg("rename failed")
		return false
	}
	return true
}

func renameNoReplace(from, to string) error {
	if _, err := os.Lstat(from); err != nil {
		return err
	}
	if _, err := os.Lstat(to); err == nil {
		return fmt.Errorf("%s: %w", to, os.ErrExist)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.Rename(from, to)
}

func validName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("invalid file name %q", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("file name %q contains a path separator", name)
	}
	return nil
}

// PublicDir returns the public recordings directory if it exists.
func (r *FileRepository) PublicDir() (string, error) { return r.resolver.PublicDir() }

// PrivateDir returns the private recordings directory if it exists.
func (r *FileRepository) PrivateDir() (string, error) { return r.resolver.PrivateDir() }

// PublicDirFiles lists the paths in the public directory. An unavailable
// directory yields no files.
func (r *FileRepository) PublicDirFiles() []string {
	dir, err := r.PublicDir()
	if err != nil {
		r.logger.Warn().Err(err).Msg("listing public directory")
		return nil
	}
	return r.listPaths(dir)
}

// PrivateDirFiles lists the paths in the private directory. An unavailable
// directory yields no files.
func (r *FileRepository) PrivateDirFiles() []string {
	dir, err := r.PrivateDir()
	if err != nil {
		r.logger.Warn().Err(err).Msg("listing private directory")
		return nil
	}
	return r.listPaths(dir)
}

func (r *FileRepository) listPaths(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		r.logger.Warn().Err(err).Str(applog.FieldDir, dir).Msg("reading directory")
		return nil
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths
}

// Records returns the record files in the recordings directory, newest
// first. Files whose extension is not a known format are skipped.
func (r *FileRepository) Records() ([]record.Record, error) {
	dir := r.Dir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading recordings directory: %w", err)
	}

	var out []record.Record
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		fileName := e.Name()
		base := fileName
		trashed := IsTrashed(base)
		if trashed {
			base = TrimExtension(base)
		}
		format := record.FormatFromExtension(Extension(base))
		if format == 0 {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, record.Record{
			Name:    TrimExtension(base),
			Path:    filepath.Join(dir, fileName),
			Format:  format,
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Trashed: trashed,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].ModTime.Equal(out[j].ModTime) {
			return out[i].ModTime.After(out[j].ModTime)
		}
		return out[i].Path > out[j].Path
	})
	return out, nil
}

// FreeBytes reports the space left on the filesystem of the recordings directory.
func (r *FileRepository) FreeBytes() (int64, error) {
	return r.freeSpace(r.Dir())
}

// RemainingTime estimates how long the current settings can record for
// with the space left.
func (r *FileRepository) RemainingTime() (time.Duration, error) {
	free, err := r.FreeBytes()
	if err != nil {
		return 0, err
	}
	return EstimateDuration(free, r.prefs.Settings()), nil
}

// MinRemainingTime returns the threshold HasAvailableSpace compares against.
func (r *FileRepository) MinRemainingTime() time.Duration {
	return r.minRemaining
}

// HasAvailableSpace reports whether more than the minimum remaining time
// can be recorded.
func (r *FileRepository) HasAvailableSpace() (bool, error) {
	remaining, err := r.RemainingTime()
	if err != nil {
		return false, err
	}
	r.logger.Debug().Float64(applog.FieldSeconds, remaining.Seconds()).Msg("remaining recording time")
	return remaining > r.minRemaining, nil
}
