package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hannesa2/AudioRecorder/internal/domain/record"
	"github.com/hannesa2/AudioRecorder/internal/prefs"
	"github.com/hannesa2/AudioRecorder/internal/storage"
)

type stubFiles struct {
	space    bool
	spaceErr error
	path     string
	newErr   error
	created  int
	records  []record.Record
	loc      storage.Location
	next     storage.Location
}

func (f *stubFiles) HasAvailableSpace() (bool, error) { return f.space, f.spaceErr }

func (f *stubFiles) NewRecordFile() (string, error) {
	f.created++
	return f.path, f.newErr
}

func (f *stubFiles) Records() ([]record.Record, error) { return f.records, nil }

func (f *stubFiles) Location() storage.Location { return f.loc }

func (f *stubFiles) UpdateRecordingDir() storage.Location {
	f.loc = f.next
	return f.loc
}

type stubRecorder struct {
	ffmpegErr error
	recordErr error
	gotPath   string
	gotCfg    record.Settings
}

func (r *stubRecorder) CheckFFmpeg() error { return r.ffmpegErr }

func (r *stubRecorder) Record(ctx context.Context, path string, s record.Settings) error {
	r.gotPath = path
	r.gotCfg = s
	return r.recordErr
}

type stubSettings struct{ s record.Settings }

func (s stubSettings) Settings() record.Settings { return s.s }

func TestStartRecording_Execute(t *testing.T) {
	files := &stubFiles{space: true, path: "/rec/Record-1.m4a"}
	rec := &stubRecorder{}
	settings := record.DefaultSettings()

	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	calls := 0
	uc := &StartRecording{
		Files:    files,
		Recorder: rec,
		Prefs:    stubSettings{settings},
		Now: func() time.Time {
			calls++
			return start.Add(time.Duration(calls-1) * time.Minute)
		},
	}

	var announced string
	result, err := uc.Execute(context.Background(), func(p string) { announced = p })
	require.NoError(t, err)
	assert.Equal(t, "/rec/Record-1.m4a", announced)
	assert.Equal(t, "/rec/Record-1.m4a", rec.gotPath)
	assert.Equal(t, settings, rec.gotCfg)
	assert.Equal(t, time.Minute, result.Duration())
}

func TestStartRecording_Refusals(t *testing.T) {
	t.Run("no ffmpeg", func(t *testing.T) {
		files := &stubFiles{space: true}
		uc := &StartRecording{Files: files, Recorder: &stubRecorder{ffmpegErr: errors.New("missing")}, Prefs: stubSettings{}}
		_, err := uc.Execute(context.Background(), nil)
		assert.Error(t, err)
		assert.Zero(t, files.created)
	})

	t.Run("no space", func(t *testing.T) {
		files := &stubFiles{space: false}
		uc := &StartRecording{Files: files, Recorder: &stubRecorder{}, Prefs: stubSettings{}}
		_, err := uc.Execute(context.Background(), nil)
		assert.ErrorIs(t, err, ErrInsufficientSpace)
		assert.Zero(t, files.created)
	})

	t.Run("space probe fails", func(t *testing.T) {
		files := &stubFiles{spaceErr: errors.New("statfs")}
		uc := &StartRecording{Files: files, Recorder: &stubRecorder{}, Prefs: stubSettings{}}
		_, err := uc.Execute(context.Background(), nil)
		assert.Error(t, err)
	})

	t.Run("file creation fails", func(t *testing.T) {
		creationErr := &storage.FileCreationError{Path: "/ro/Record-1.m4a", Err: errors.New("read-only")}
		files := &stubFiles{space: true, newErr: creationErr}
		rec := &stubRecorder{}
		uc := &StartRecording{Files: files, Recorder: rec, Prefs: stubSettings{}}
		_, err := uc.Execute(context.Background(), nil)

		var target *storage.FileCreationError
		assert.ErrorAs(t, err, &target)
		assert.Empty(t, rec.gotPath)
	})
}

func TestListRecords_Execute(t *testing.T) {
	files := &stubFiles{records: []record.Record{
		{Name: "Record-3"},
		{Name: "Record-2", Trashed: true},
		{Name: "Record-1"},
	}}

	names := func(rs []record.Record) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.Name)
		}
		return out
	}

	uc := &ListRecords{Files: files}
	got, err := uc.Execute(ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Record-3", "Record-1"}, names(got))

	got, err = uc.Execute(ListOptions{IncludeTrashed: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Record-3", "Record-2", "Record-1"}, names(got))

	got, err = uc.Execute(ListOptions{TrashedOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Record-2"}, names(got))
}

type stubWriter struct {
	err  error
	keys []string
}

func (w *stubWriter) Set(key, value string) error {
	w.keys = append(w.keys, key)
	return w.err
}

func TestUpdateSetting_Execute(t *testing.T) {
	private := storage.Location{Dir: "/private", Root: storage.RootPrivate}
	public := storage.Location{Dir: "/public", Root: storage.RootPublic}

	files := &stubFiles{loc: private, next: public}
	uc := &UpdateSetting{Prefs: &stubWriter{}, Files: files}

	res, err := uc.Execute(prefs.KeyBitrate, "96000")
	require.NoError(t, err)
	assert.False(t, res.Moved)
	assert.Equal(t, private, files.loc, "non-storage keys leave the directory alone")

	res, err = uc.Execute(prefs.KeyStoreDirPublic, "true")
	require.NoError(t, err)
	assert.True(t, res.Moved)
	assert.Equal(t, public, res.Location)

	uc.Prefs = &stubWriter{err: errors.New("bad value")}
	_, err = uc.Execute(prefs.KeyStoreDirPublic, "nope")
	assert.Error(t, err)
}
