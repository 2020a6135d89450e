package storage

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/hannesa2/AudioRecorder/internal/domain/record"
)

// MinRemainingTime is the default recording time that must be left on disk
// before a new recording may start.
const MinRemainingTime = 10 * time.Second

// legacyBitrate is what the 3gp encoder always runs at.
const legacyBitrate = record.Bitrate12000

// EstimateSeconds converts free bytes into the number of seconds that can
// still be recorded with the given encoder settings. Unknown formats and
// settings that would divide by zero yield 0.
func EstimateSeconds(freeBytes int64, format record.Format, sampleRate record.SampleRate, bitrate record.Bitrate, channels record.Channels) int64 {
	var bytesPerSecond int64
	switch format {
	case record.Format3GP:
		bytesPerSecond = int64(legacyBitrate) / 8
	case record.FormatM4A:
		bytesPerSecond = int64(bitrate) / 8
	case record.FormatWAV:
		// 16-bit PCM
		bytesPerSecond = int64(sampleRate) * int64(channels) * 2
	default:
		return 0
	}
	if bytesPerSecond <= 0 || freeBytes <= 0 {
		return 0
	}
	return freeBytes / bytesPerSecond
}

// EstimateDuration is EstimateSeconds for a full Settings value.
func EstimateDuration(freeBytes int64, s record.Settings) time.Duration {
	return time.Duration(EstimateSeconds(freeBytes, s.Format, s.SampleRate, s.Bitrate, s.Channels)) * time.Second
}

// FreeSpaceFunc reports the bytes available to unprivileged users on the
// filesystem holding dir.
type FreeSpaceFunc func(dir string) (int64, error)

// DiskFreeSpace is the FreeSpaceFunc backed by the host filesystem.
func DiskFreeSpace(dir string) (int64, error) {
	usage, err := disk.Usage(dir)
	if err != nil {
		return 0, fmt.Errorf("disk usage of %s: %w", dir, err)
	}
	return int64(usage.Free), nil
}
