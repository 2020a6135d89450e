package record

import "time"

// Record represents a record file found in the recordings directory.
type Record struct {
	Name    string // base name without extension
	Path    string
	Format  Format
	Size    int64
	ModTime time.Time
	Trashed bool
}

// Settings are the encoder parameters a new recording is made with.
type Settings struct {
	Format     Format
	SampleRate SampleRate
	Bitrate    Bitrate
	Channels   Channels
}

// DefaultSettings returns the settings used when nothing is persisted.
func DefaultSettings() Settings {
	return Settings{
		Format:     DefaultFormat,
		SampleRate: DefaultSampleRate,
		Bitrate:    DefaultBitrate,
		Channels:   DefaultChannels,
	}
}

// RecordingResult holds what a finished recording session produced.
type RecordingResult struct {
	Path      string
	Settings  Settings
	StartedAt time.Time
	StoppedAt time.Time
}

// Duration is the wall-clock length of the session.
func (r RecordingResult) Duration() time.Duration {
	return r.StoppedAt.Sub(r.StartedAt)
}
