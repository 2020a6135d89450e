package app

import (
	"fmt"

	"github.com/hannesa2/AudioRecorder/config"
	"github.com/hannesa2/AudioRecorder/internal/audio"
	"github.com/hannesa2/AudioRecorder/internal/domain/record/usecases"
	"github.com/hannesa2/AudioRecorder/internal/prefs"
	"github.com/hannesa2/AudioRecorder/internal/storage"
)

// App is the process-wide state: one preference store and one file
// repository, built at start-up and shared by every command.
type App struct {
	Prefs    *prefs.Store
	Files    *storage.FileRepository
	Recorder *audio.Recorder

	StartRecording *usecases.StartRecording
	ListRecords    *usecases.ListRecords
	UpdateSetting  *usecases.UpdateSetting
}

func New(cfg *config.Config, opts ...storage.Option) (*App, error) {
	store, err := prefs.Open(cfg.PrefsFile)
	if err != nil {
		return nil, fmt.Errorf("opening preferences: %w", err)
	}

	resolver := storage.NewResolver(
		storage.StaticDir(cfg.PublicDir),
		storage.StaticDir(cfg.PrivateDir),
		cfg.FallbackDir,
	)
	opts = append([]storage.Option{storage.WithMinRemainingTime(cfg.MinRemainingTime)}, opts...)
	files := storage.NewFileRepository(store, resolver, opts...)

	recorder := audio.NewRecorder(audio.Input{Format: cfg.InputFormat, Device: cfg.InputDevice})
	recorder.LogDir = cfg.LogDir

	return &App{
		Prefs:    store,
		Files:    files,
		Recorder: recorder,
		StartRecording: &usecases.StartRecording{
			Files:    files,
			Recorder: recorder,
			Prefs:    store,
		},
		ListRecords: &usecases.ListRecords{
			Files: files,
		},
		UpdateSetting: &usecases.UpdateSetting{
			Prefs: store,
			Files: files,
		},
	}, nil
}
