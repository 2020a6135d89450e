package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/hannesa2/AudioRecorder/internal/domain/record"
)

// Input names the ffmpeg capture backend and device.
type Input struct {
	Format string // ffmpeg -f value, e.g. "avfoundation" or "pulse"
	Device string // ffmpeg -i value
}

// DefaultInput returns the system default microphone for this platform.
func DefaultInput() Input {
	switch runtime.GOOS {
	case "darwin":
		return Input{Format: "avfoundation", Device: ":default"}
	case "windows":
		return Input{Format: "dshow", Device: "audio=default"}
	default:
		return Input{Format: "pulse", Device: "default"}
	}
}

// Recorder manages ffmpeg-based mic recording.
type Recorder struct {
	Input Input
	// LogDir receives ffmpeg's stderr, one file per record. Empty means
	// the system temp directory.
	LogDir string
}

func NewRecorder(in Input) *Recorder {
	if in.Format == "" || in.Device == "" {
		in = DefaultInput()
	}
	return &Recorder{Input: in}
}

func (r *Recorder) CheckFFmpeg() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found in PATH")
	}
	return nil
}

// Args builds the ffmpeg command line that records into outputPath with
// the given settings.
func Args(in Input, outputPath string, s record.Settings) []string {
	args := []string{"-hide_banner", "-f", in.Format, "-i", in.Device}

	switch s.Format {
	case record.Format3GP:
		// AMR-NB only supports 8 kHz mono.
		args = append(args, "-c:a", "libopencore_amrnb", "-ar", "8000", "-ac", "1", "-b:a", "12.2k", "-f", "3gp")
	case record.FormatWAV:
		args = append(args,
			"-c:a", "pcm_s16le",
			"-ar", strconv.Itoa(int(s.SampleRate)),
			"-ac", strconv.Itoa(int(s.Channels)),
			"-f", "wav",
		)
	default:
		args = append(args,
			"-c:a", "aac",
			"-ar", strconv.Itoa(int(s.SampleRate)),
			"-ac", strconv.Itoa(int(s.Channels)),
			"-b:a", strconv.Itoa(int(s.Bitrate)),
			"-f", "ipod",
		)
	}
	return append(args, "-y", outputPath)
}

// LogPath is where the ffmpeg log for the record at outputPath goes. It is
// never inside the recordings directory.
func (r *Recorder) LogPath(outputPath string) string {
	dir := r.LogDir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "audiorecorder", "logs")
	}
	return filepath.Join(dir, filepath.Base(outputPath)+".ffmpeg.log")
}

// Record captures audio into outputPath until ctx is cancelled. ffmpeg is
// sent an interrupt so it can finalize the container before exiting.
func (r *Recorder) Record(ctx context.Context, outputPath string, s record.Settings) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", Args(r.Input, outputPath, s)...)
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = 5 * time.Second

	// Log stderr for diagnostics
	logPath := r.LogPath(outputPath)
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	if logFile, err := os.Create(logPath); err == nil {
		cmd.Stderr = logFile
		defer logFile.Close()
	}

	err := cmd.Run()
	if ctx.Err() != nil {
		var exitErr *exec.ExitError
		if err == nil || errors.As(err, &exitErr) {
			// Interrupted on purpose; ffmpeg exits non-zero after SIGINT.
			return nil
		}
	}
	if err != nil {
		return fmt.Errorf("recording to %s: %w (see %s)", outputPath, err, logPath)
	}
	return nil
}
