package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hannesa2/AudioRecorder/internal/domain/record"
)

// ErrInsufficientSpace is returned when the disk cannot hold the minimum
// recording time with the current settings.
var ErrInsufficientSpace = errors.New("not enough free space to start recording")

// RecordFiles provides record files and the space check.
type RecordFiles interface {
	HasAvailableSpace() (bool, error)
	NewRecordFile() (string, error)
}

// AudioRecorder captures audio into a file until its context ends.
type AudioRecorder interface {
	CheckFFmpeg() error
	Record(ctx context.Context, outputPath string, s record.Settings) error
}

// SettingsSource returns the current recording settings.
type SettingsSource interface {
	Settings() record.Settings
}

// StartRecording records a new record file in the foreground.
type StartRecording struct {
	Files    RecordFiles
	Recorder AudioRecorder
	Prefs    SettingsSource
	Now      func() time.Time
}

// Execute checks prerequisites, provides a record file, and records into
// it until ctx is cancelled. started is called once the file exists and
// capture is about to begin.
func (s *StartRecording) Execute(ctx context.Context, started func(path string)) (*record.RecordingResult, error) {
	if err := s.Recorder.CheckFFmpeg(); err != nil {
		return nil, err
	}

	ok, err := s.Files.HasAvailableSpace()
	if err != nil {
		return nil, fmt.Errorf("checking free space: %w", err)
	}
	if !ok {
		return nil, ErrInsufficientSpace
	}

	path, err := s.Files.NewRecordFile()
	if err != nil {
		return nil, err
	}

	settings := s.Prefs.Settings()
	result := &record.RecordingResult{
		Path:      path,
		Settings:  settings,
		StartedAt: s.now(),
	}
	if started != nil {
		started(path)
	}

	err = s.Recorder.Record(ctx, path, settings)
	result.StoppedAt = s.now()
	return result, err
}

func (s *StartRecording) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
