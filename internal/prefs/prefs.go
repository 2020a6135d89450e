// Package prefs persists the user's recording preferences in a TOML file.
package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"

	"github.com/hannesa2/AudioRecorder/internal/domain/record"
	applog "github.com/hannesa2/AudioRecorder/internal/log"
)

// Persisted preference keys.
const (
	KeyStoreDirPublic  = "store_dir_public"
	KeyNamingFormat    = "naming_format"
	KeyRecordCounter   = "record_counter"
	KeyRecordingFormat = "recording_format"
	KeySampleRate      = "sample_rate"
	KeyBitrate         = "bitrate"
	KeyChannelCount    = "channel_count"
)

// Keys lists every persisted key in display order.
func Keys() []string {
	return []string{
		KeyStoreDirPublic,
		KeyNamingFormat,
		KeyRecordCounter,
		KeyRecordingFormat,
		KeySampleRate,
		KeyBitrate,
		KeyChannelCount,
	}
}

type values struct {
	StoreDirPublic  bool   `toml:"store_dir_public"`
	NamingFormat    string `toml:"naming_format"`
	RecordCounter   int64  `toml:"record_counter"`
	RecordingFormat string `toml:"recording_format"`
	SampleRate      int    `toml:"sample_rate"`
	Bitrate         int    `toml:"bitrate"`
	ChannelCount    string `toml:"channel_count"`
}

func defaults() values {
	s := record.DefaultSettings()
	return values{
		StoreDirPublic:  false,
		NamingFormat:    record.DefaultNamingMode.String(),
		RecordingFormat: s.Format.String(),
		SampleRate:      int(s.SampleRate),
		Bitrate:         int(s.Bitrate),
		ChannelCount:    s.Channels.String(),
	}
}

// Store is a file-backed preference set. All methods are safe for
// concurrent use; every setter writes the whole file atomically.
type Store struct {
	path   string
	logger zerolog.Logger

	mu sync.RWMutex
	v  values
}

// Open loads the preferences at path. A missing file yields defaults and is
// created on the first write.
func Open(path string) (*Store, error) {
	s := &Store{
		path:   path,
		logger: applog.WithComponent("prefs"),
		v:      defaults(),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Reload re-reads the backing file, keeping defaults for absent keys.
func (s *Store) Reload() error {
	v := defaults()
	if _, err := toml.DecodeFile(s.path, &v); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading preferences %s: %w", s.path, err)
		}
	}
	s.mu.Lock()
	s.v = v
	s.mu.Unlock()
	return nil
}

// IsStoreDirPublic reports whether records should go to public storage.
func (s *Store) IsStoreDirPublic() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.StoreDirPublic
}

// SetStoreDirPublic persists the public/private storage flag.
func (s *Store) SetStoreDirPublic(public bool) error {
	return s.update(func(v *values) { v.StoreDirPublic = public })
}

// NamingMode returns the configured naming mode, falling back to the
// default for unknown persisted values.
func (s *Store) NamingMode() record.NamingMode {
	s.mu.RLock()
	key := s.v.NamingFormat
	s.mu.RUnlock()

	m, err := record.ParseNamingMode(key)
	if err != nil {
		s.logger.Warn().Err(err).Str(applog.FieldKey, KeyNamingFormat).Msg("using default naming format")
		return record.DefaultNamingMode
	}
	return m
}

// SetNamingMode persists the naming mode.
func (s *Store) SetNamingMode(m record.NamingMode) error {
	if !m.Valid() {
		return fmt.Errorf("invalid naming mode %d", int(m))
	}
	return s.update(func(v *values) { v.NamingFormat = m.String() })
}

// RecordCounter returns the last persisted counter value.
func (s *Store) RecordCounter() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.RecordCounter
}

// IncrementRecordCounter bumps and persists the counter, returning the new value.
func (s *Store) IncrementRecordCounter() (int64, error) {
	var n int64
	err := s.update(func(v *values) {
		v.RecordCounter++
		n = v.RecordCounter
	})
	return n, err
}

// Settings returns the recording settings. Unknown persisted values fall
// back to their defaults.
func (s *Store) Settings() record.Settings {
	s.mu.RLock()
	v := s.v
	s.mu.RUnlock()

	out := record.DefaultSettings()
	if f, err := record.ParseFormat(v.RecordingFormat); err == nil {
		out.Format = f
	} else {
		s.logger.Warn().Err(err).Str(applog.FieldKey, KeyRecordingFormat).Msg("using default")
	}
	if r := record.SampleRate(v.SampleRate); r.Valid() {
		out.SampleRate = r
	} else {
		s.logger.Warn().Int(applog.FieldValue, v.SampleRate).Str(applog.FieldKey, KeySampleRate).Msg("using default")
	}
	if b := record.Bitrate(v.Bitrate); b.Valid() {
		out.Bitrate = b
	} else {
		s.logger.Warn().Int(applog.FieldValue, v.Bitrate).Str(applog.FieldKey, KeyBitrate).Msg("using default")
	}
	if c, err := record.ParseChannels(v.ChannelCount); err == nil {
		out.Channels = c
	} else {
		s.logger.Warn().Err(err).Str(applog.FieldKey, KeyChannelCount).Msg("using default")
	}
	return out
}

// SetSettings persists all recording settings at once.
func (s *Store) SetSettings(rs record.Settings) error {
	if !rs.Format.Valid() || !rs.SampleRate.Valid() || !rs.Bitrate.Valid() || !rs.Channels.Valid() {
		return fmt.Errorf("invalid recording settings %+v", rs)
	}
	return s.update(func(v *values) {
		v.RecordingFormat = rs.Format.String()
		v.SampleRate = int(rs.SampleRate)
		v.Bitrate = int(rs.Bitrate)
		v.ChannelCount = rs.Channels.String()
	})
}

// Get returns the persisted value of key in its string form.
func (s *Store) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch key {
	case KeyStoreDirPublic:
		return strconv.FormatBool(s.v.StoreDirPublic), nil
	case KeyNamingFormat:
		return s.v.NamingFormat, nil
	case KeyRecordCounter:
		return strconv.FormatInt(s.v.RecordCounter, 10), nil
	case KeyRecordingFormat:
		return s.v.RecordingFormat, nil
	case KeySampleRate:
		return strconv.Itoa(s.v.SampleRate), nil
	case KeyBitrate:
		return strconv.Itoa(s.v.Bitrate), nil
	case KeyChannelCount:
		return s.v.ChannelCount, nil
	}
	return "", fmt.Errorf("unknown preference %q", key)
}

// Set validates value for key and persists it.
func (s *Store) Set(key, value string) error {
	switch key {
	case KeyStoreDirPublic:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return s.SetStoreDirPublic(b)
	case KeyNamingFormat:
		m, err := record.ParseNamingMode(value)
		if err != nil {
			return err
		}
		return s.SetNamingMode(m)
	case KeyRecordCounter:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < 0 {
			return fmt.Errorf("%s: invalid counter %q", key, value)
		}
		return s.update(func(v *values) { v.RecordCounter = n })
	case KeyRecordingFormat:
		f, err := record.ParseFormat(value)
		if err != nil {
			return err
		}
		return s.update(func(v *values) { v.RecordingFormat = f.String() })
	case KeySampleRate:
		r, err := record.ParseSampleRate(value)
		if err != nil {
			return err
		}
		return s.update(func(v *values) { v.SampleRate = int(r) })
	case KeyBitrate:
		b, err := record.ParseBitrate(value)
		if err != nil {
			return err
		}
		return s.update(func(v *values) { v.Bitrate = int(b) })
	case KeyChannelCount:
		c, err := record.ParseChannels(value)
		if err != nil {
			return err
		}
		return s.update(func(v *values) { v.ChannelCount = c.String() })
	}
	return fmt.Errorf("unknown preference %q", key)
}

func (s *Store) update(mutate func(*values)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.v
	mutate(&next)
	if err := s.write(next); err != nil {
		return err
	}
	s.v = next
	return nil
}

func (s *Store) write(v values) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating preferences directory: %w", err)
	}
	if err := renameio.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing preferences %s: %w", s.path, err)
	}
	return nil
}
