package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const appName = "audiorecorder"

const defaultMinRemaining = 10 * time.Second

type Config struct {
	PublicDir   string // shared, user-visible recordings directory
	PrivateDir  string // app-private recordings directory
	FallbackDir string // last resort when neither is usable
	PrefsFile   string // persisted recording preferences
	LogDir      string // ffmpeg session logs, kept out of the recordings directories
	LogLevel    string
	LogJSON     bool
	InputFormat string // ffmpeg capture backend, empty for the platform default
	InputDevice string

	// MinRemainingTime is the recording time that must be left before a
	// recording may start.
	MinRemainingTime time.Duration
}

type fileConfig struct {
	PublicDir   string `toml:"public_dir"`
	PrivateDir  string `toml:"private_dir"`
	FallbackDir string `toml:"fallback_dir"`
	PrefsFile   string `toml:"prefs_file"`
	LogDir      string `toml:"log_dir"`
	LogLevel    string `toml:"log_level"`
	LogJSON     bool   `toml:"log_json"`
	InputFormat string `toml:"input_format"`
	InputDevice string `toml:"input_device"`

	MinRemainingSeconds int `toml:"min_remaining_seconds"`
}

func Load() (*Config, error) {
	cfg := &Config{
		PublicDir:   defaultPublicDir(),
		PrivateDir:  filepath.Join(dataDir(), "records"),
		FallbackDir: DefaultFallbackDir(),
		PrefsFile:   filepath.Join(dataDir(), "prefs.toml"),
		LogDir:      filepath.Join(dataDir(), "logs"),

		MinRemainingTime: defaultMinRemaining,
	}

	if configPath := configFilePath(); configPath != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(configPath, &fc); err != nil {
			return nil, err
		}
		applyFile(cfg, fc)
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

func applyFile(cfg *Config, fc fileConfig) {
	if fc.PublicDir != "" {
		cfg.PublicDir = expandTilde(fc.PublicDir)
	}
	if fc.PrivateDir != "" {
		cfg.PrivateDir = expandTilde(fc.PrivateDir)
	}
	if fc.FallbackDir != "" {
		cfg.FallbackDir = expandTilde(fc.FallbackDir)
	}
	if fc.PrefsFile != "" {
		cfg.PrefsFile = expandTilde(fc.PrefsFile)
	}
	if fc.LogDir != "" {
		cfg.LogDir = expandTilde(fc.LogDir)
	}
	if fc.MinRemainingSeconds > 0 {
		cfg.MinRemainingTime = time.Duration(fc.MinRemainingSeconds) * time.Second
	}
	cfg.LogLevel = fc.LogLevel
	cfg.LogJSON = fc.LogJSON
	cfg.InputFormat = fc.InputFormat
	cfg.InputDevice = fc.InputDevice
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AUDIORECORDER_PUBLIC_DIR"); v != "" {
		cfg.PublicDir = expandTilde(v)
	}
	if v := os.Getenv("AUDIORECORDER_PRIVATE_DIR"); v != "" {
		cfg.PrivateDir = expandTilde(v)
	}
	if v := os.Getenv("AUDIORECORDER_FALLBACK_DIR"); v != "" {
		cfg.FallbackDir = expandTilde(v)
	}
	if v := os.Getenv("AUDIORECORDER_PREFS_FILE"); v != "" {
		cfg.PrefsFile = expandTilde(v)
	}
	if v := os.Getenv("AUDIORECORDER_LOG_DIR"); v != "" {
		cfg.LogDir = expandTilde(v)
	}
	if v := os.Getenv("AUDIORECORDER_MIN_REMAINING_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.MinRemainingTime = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("AUDIORECORDER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func configFilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, appName)
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", appName)
	} else {
		return ""
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// dataDir is the app-private data directory.
func dataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", appName)
	}
	return filepath.Join(DefaultFallbackDir(), "data")
}

// defaultPublicDir is empty when there is no home directory, which leaves
// public storage unavailable.
func defaultPublicDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "Music", "AudioRecorder")
	}
	return ""
}

// DefaultFallbackDir is the hardcoded recordings directory used when no
// storage area can be resolved.
func DefaultFallbackDir() string {
	return filepath.Join(os.TempDir(), appName, "files")
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
