package usecases

import (
	"github.com/hannesa2/AudioRecorder/internal/prefs"
	"github.com/hannesa2/AudioRecorder/internal/storage"
)

// SettingWriter persists a single preference.
type SettingWriter interface {
	Set(key, value string) error
}

// DirUpdater re-resolves the recordings directory.
type DirUpdater interface {
	Location() storage.Location
	UpdateRecordingDir() storage.Location
}

// UpdateSetting changes one preference and keeps the recordings directory
// in sync with the storage preference.
type UpdateSetting struct {
	Prefs SettingWriter
	Files DirUpdater
}

// SettingResult reports the directory after the update and whether it moved.
type SettingResult struct {
	Location storage.Location
	Moved    bool
}

func (u *UpdateSetting) Execute(key, value string) (*SettingResult, error) {
	if err := u.Prefs.Set(key, value); err != nil {
		return nil, err
	}

	before := u.Files.Location()
	if key != prefs.KeyStoreDirPublic {
		return &SettingResult{Location: before}, nil
	}
	after := u.Files.UpdateRecordingDir()
	return &SettingResult{Location: after, Moved: after != before}, nil
}
