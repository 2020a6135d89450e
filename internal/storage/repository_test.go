package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hannesa2/AudioRecorder/internal/domain/record"
)

type fakePrefs struct {
	public   bool
	mode     record.NamingMode
	counter  int64
	settings record.Settings
	incErr   error
}

func (p *fakePrefs) IsStoreDirPublic() bool { return p.public }
func (p *fakePrefs) NamingMode() record.NamingMode { return p.mode }
func (p *fakePrefs) Settings() record.Settings { return p.settings }
func (p *fakePrefs) IncrementRecordCounter() (int64, error) {
	if p.incErr != nil {
		return 0, p.incErr
	}
	p.counter++
	return p.counter, nil
}

type repoFixture struct {
	repo    *FileRepository
	prefs   *fakePrefs
	public  string
	private string
}

func newFixture(t *testing.T, opts ...Option) *repoFixture {
	t.Helper()
	base := t.TempDir()
	f := &repoFixture{
		prefs:   &fakePrefs{mode: record.NamingCounter, settings: record.DefaultSettings()},
		public:  filepath.Join(base, "public"),
		private: filepath.Join(base, "private"),
	}
	resolver := NewResolver(StaticDir(f.public), StaticDir(f.private), filepath.Join(base, "fallback"))
	f.repo = NewFileRepository(f.prefs, resolver, opts...)
	return f
}

func TestNewFileRepository_ResolvesFromPrefs(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, Location{f.private, RootPrivate}, f.repo.Location())

	f.prefs.public = true
	assert.Equal(t, f.private, f.repo.Dir(), "directory is cached until updated")

	loc := f.repo.UpdateRecordingDir()
	assert.Equal(t, Location{f.public, RootPublic}, loc)
	assert.Equal(t, f.public, f.repo.Dir())
}

func TestNewRecordFile_CounterNaming(t *testing.T) {
	f := newFixture(t)

	first, err := f.repo.NewRecordFile()
	require.NoError(t, err)
	second, err := f.repo.NewRecordFile()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(f.private, "Record-1.m4a"), first)
	assert.Equal(t, filepath.Join(f.private, "Record-2.m4a"), second)
	assert.FileExists(t, first)
	assert.FileExists(t, second)
}

func TestNewRecordFile_DateAndTimestampNaming(t *testing.T) {
	now := time.Date(2023, 12, 31, 23, 59, 58, 0, time.Local)
	f := newFixture(t, WithClock(func() time.Time { return now }))
	f.prefs.settings.Format = record.FormatWAV

	f.prefs.mode = record.NamingDate
	path, err := f.repo.NewRecordFile()
	require.NoError(t, err)
	assert.Equal(t, "Record-2023.12.31 23.59.58.wav", filepath.Base(path))

	// Same second: same name, existing file is reused.
	again, err := f.repo.NewRecordFile()
	require.NoError(t, err)
	assert.Equal(t, path, again)

	f.prefs.mode = record.NamingTimestamp
	f.prefs.settings.Format = record.Format3GP
	path, err = f.repo.NewRecordFile()
	require.NoError(t, err)
	assert.Equal(t, WithExtension(RecordName(record.NamingTimestamp, 0, now), "3gp"), filepath.Base(path))

	assert.Equal(t, int64(3), f.prefs.counter, "counter increments in every naming mode")
}

func TestNewRecordFile_CreationFailureKeepsCounter(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.RemoveAll(f.private))
	require.NoError(t, os.WriteFile(f.private, nil, 0o644))

	_, err := f.repo.NewRecordFile()
	require.Error(t, err)

	var creationErr *FileCreationError
	require.True(t, errors.As(err, &creationErr))
	assert.Equal(t, filepath.Join(f.private, "Record-1.m4a"), creationErr.Path)
	assert.Equal(t, int64(1), f.prefs.counter, "counter is not rolled back")

	require.NoError(t, os.Remove(f.private))
	path, err := f.repo.NewRecordFile()
	require.NoError(t, err)
	assert.Equal(t, "Record-2.m4a", filepath.Base(path))
}

func TestNewRecordFile_CounterError(t *testing.T) {
	f := newFixture(t)
	f.prefs.incErr = errors.New("read-only")

	_, err := f.repo.NewRecordFile()
	assert.Error(t, err)
}

func TestNewNamedRecordFile(t *testing.T) {
	f := newFixture(t)

	path, err := f.repo.NewNamedRecordFile("interview.wav")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.private, "interview.wav"), path)
	assert.FileExists(t, path)

	_, err = f.repo.NewNamedRecordFile("../escape.wav")
	var creationErr *FileCreationError
	assert.True(t, errors.As(err, &creationErr))
}

func TestTrashUntrash_RoundTrip(t *testing.T) {
	f := newFixture(t)
	original, err := f.repo.NewRecordFile()
	require.NoError(t, err)

	trashed, ok := f.repo.Trash(original)
	require.True(t, ok)
	assert.Equal(t, original+".deleted", trashed)
	assert.NoFileExists(t, original)
	assert.FileExists(t, trashed)

	restored, ok := f.repo.Untrash(trashed)
	require.True(t, ok)
	assert.Equal(t, original, restored)
	assert.FileExists(t, original)
	assert.NoFileExists(t, trashed)
}

func TestTrash_Failures(t *testing.T) {
	f := newFixture(t)

	_, ok := f.repo.Trash(filepath.Join(f.private, "missing.m4a"))
	assert.False(t, ok)

	_, ok = f.repo.Trash("")
	assert.False(t, ok)

	path, err := f.repo.NewRecordFile()
	require.NoError(t, err)
	_, ok = f.repo.Untrash(path)
	assert.False(t, ok, "untrash requires the trash marker")
	assert.FileExists(t, path)

	_, ok = f.repo.Untrash(path + ".deleted")
	assert.False(t, ok, "missing trashed file")

	// Restoring onto an existing record must not overwrite it.
	require.NoError(t, os.WriteFile(path+".deleted", []byte("old"), 0o644))
	_, ok = f.repo.Untrash(path + ".deleted")
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	path, err := f.repo.NewRecordFile()
	require.NoError(t, err)

	assert.True(t, f.repo.Delete(path))
	assert.NoFileExists(t, path)
	assert.False(t, f.repo.Delete(path))
	assert.False(t, f.repo.Delete(""))

	dir := filepath.Join(f.private, "nested")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "deeper"), 0o755))
	assert.True(t, f.repo.Delete(dir))
	assert.NoDirExists(t, dir)
}

func TestRename(t *testing.T) {
	f := newFixture(t)
	path, err := f.repo.NewRecordFile()
	require.NoError(t, err)

	require.True(t, f.repo.Rename(path, "Meeting", ""))
	renamed := filepath.Join(f.private, "Meeting.m4a")
	assert.FileExists(t, renamed)
	assert.NoFileExists(t, path)

	require.True(t, f.repo.Rename(renamed, "Meeting", "wav"))
	assert.FileExists(t, filepath.Join(f.private, "Meeting.wav"))

	assert.True(t, f.repo.Rename(filepath.Join(f.private, "Meeting.wav"), "Meeting", "wav"), "no-op rename")
}

func TestRename_TrashedStaysTrashed(t *testing.T) {
	f := newFixture(t)
	path, err := f.repo.NewRecordFile()
	require.NoError(t, err)
	trashed, ok := f.repo.Trash(path)
	require.True(t, ok)

	require.True(t, f.repo.Rename(trashed, "Meeting", ""))
	renamed := filepath.Join(f.private, "Meeting.m4a.deleted")
	assert.FileExists(t, renamed)
	assert.NoFileExists(t, trashed)

	recs, err := f.repo.Records()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].Trashed)
	assert.Equal(t, record.FormatM4A, recs[0].Format)

	restored, ok := f.repo.Untrash(renamed)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(f.private, "Meeting.m4a"), restored)
}

func TestRename_Failures(t *testing.T) {
	f := newFixture(t)

	missing := filepath.Join(f.private, "nope.m4a")
	before, err := os.ReadDir(f.private)
	require.NoError(t, err)
	assert.False(t, f.repo.Rename(missing, "other", ""))
	after, err := os.ReadDir(f.private)
	require.NoError(t, err)
	assert.Equal(t, len(before), len(after), "filesystem unchanged")
	assert.NoFileExists(t, filepath.Join(f.private, "other.m4a"))

	a, err := f.repo.NewNamedRecordFile("a.m4a")
	require.NoError(t, err)
	_, err = f.repo.NewNamedRecordFile("b.m4a")
	require.NoError(t, err)

	assert.False(t, f.repo.Rename(a, "b", ""), "existing target")
	assert.False(t, f.repo.Rename(a, "", ""), "empty name")
	assert.False(t, f.repo.Rename(a, "../up", ""), "separator in name")
	assert.FileExists(t, a)
}

func TestRecords(t *testing.T) {
	f := newFixture(t)
	older, err := f.repo.NewRecordFile()
	require.NoError(t, err)
	newer, err := f.repo.NewRecordFile()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(newer, []byte("pcm"), 0o644))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))
	trashed, ok := f.repo.Trash(older)
	require.True(t, ok)

	require.NoError(t, os.WriteFile(filepath.Join(f.private, "notes.txt"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(f.private, "sub"), 0o755))

	recs, err := f.repo.Records()
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "Record-2", recs[0].Name)
	assert.Equal(t, newer, recs[0].Path)
	assert.Equal(t, int64(3), recs[0].Size)
	assert.False(t, recs[0].Trashed)

	assert.Equal(t, "Record-1", recs[1].Name)
	assert.Equal(t, trashed, recs[1].Path)
	assert.Equal(t, record.FormatM4A, recs[1].Format)
	assert.True(t, recs[1].Trashed)
}

func TestDirFiles(t *testing.T) {
	f := newFixture(t)
	path, err := f.repo.NewRecordFile()
	require.NoError(t, err)

	assert.Equal(t, []string{path}, f.repo.PrivateDirFiles())
	assert.Empty(t, f.repo.PublicDirFiles())

	_, err = f.repo.PublicDir()
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NoDirExists(t, f.public, "queries must not create the public directory")

	require.NoError(t, os.MkdirAll(f.public, 0o755))
	pub, err := f.repo.PublicDir()
	require.NoError(t, err)
	assert.Equal(t, f.public, pub)
}

func TestHasAvailableSpace(t *testing.T) {
	var free int64
	f := newFixture(t, WithFreeSpace(func(string) (int64, error) { return free, nil }))

	// 128 kbps m4a: 16000 bytes per second.
	free = 16_000 * 10
	ok, err := f.repo.HasAvailableSpace()
	require.NoError(t, err)
	assert.False(t, ok, "exactly the minimum is not enough")

	free = 16_000 * 11
	ok, err = f.repo.HasAvailableSpace()
	require.NoError(t, err)
	assert.True(t, ok)

	remaining, err := f.repo.RemainingTime()
	require.NoError(t, err)
	assert.Equal(t, 11*time.Second, remaining)

	f.prefs.settings.Format = record.FormatWAV
	ok, err = f.repo.HasAvailableSpace()
	require.NoError(t, err)
	assert.False(t, ok, "wav needs 176400 bytes per second")
}

func TestHasAvailableSpace_ConfiguredThreshold(t *testing.T) {
	free := int64(16_000 * 30)
	f := newFixture(t,
		WithFreeSpace(func(string) (int64, error) { return free, nil }),
		WithMinRemainingTime(30*time.Second),
	)
	assert.Equal(t, 30*time.Second, f.repo.MinRemainingTime())

	ok, err := f.repo.HasAvailableSpace()
	require.NoError(t, err)
	assert.False(t, ok, "exactly the configured minimum is not enough")

	free = 16_000 * 31
	ok, err = f.repo.HasAvailableSpace()
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, MinRemainingTime, newFixture(t, WithMinRemainingTime(0)).repo.MinRemainingTime())
}

func TestHasAvailableSpace_ProbeError(t *testing.T) {
	f := newFixture(t, WithFreeSpace(func(string) (int64, error) { return 0, errors.New("statfs") }))
	ok, err := f.repo.HasAvailableSpace()
	assert.Error(t, err)
	assert.False(t, ok)
}
