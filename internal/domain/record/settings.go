package record

import (
	"fmt"
	"strconv"
)

// Format is the container/codec a record file is written in.
type Format int

const (
	FormatM4A Format = iota + 1
	FormatWAV
	Format3GP
)

const DefaultFormat = FormatM4A

var formatKeys = map[Format]string{
	FormatM4A: "m4a",
	FormatWAV: "wav",
	Format3GP: "3gp",
}

// Formats lists every supported format in presentation order.
func Formats() []Format {
	return []Format{FormatM4A, FormatWAV, Format3GP}
}

func (f Format) String() string {
	if k, ok := formatKeys[f]; ok {
		return k
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Extension is the file extension used for records of this format, without the dot.
func (f Format) Extension() string {
	return formatKeys[f]
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	_, ok := formatKeys[f]
	return ok
}

// ParseFormat maps a persisted key ("m4a", "wav", "3gp") to a Format.
func ParseFormat(key string) (Format, error) {
	for f, k := range formatKeys {
		if k == key {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown recording format %q", key)
}

// FormatFromExtension is ParseFormat for file extensions; unknown extensions yield 0.
func FormatFromExtension(ext string) Format {
	f, err := ParseFormat(ext)
	if err != nil {
		return 0
	}
	return f
}

// SampleRate in Hz.
type SampleRate int

const (
	SampleRate8000  SampleRate = 8000
	SampleRate16000 SampleRate = 16000
	SampleRate22050 SampleRate = 22050
	SampleRate32000 SampleRate = 32000
	SampleRate44100 SampleRate = 44100
	SampleRate48000 SampleRate = 48000

	DefaultSampleRate = SampleRate44100
)

// SampleRates lists the supported sample rates in ascending order.
func SampleRates() []SampleRate {
	return []SampleRate{SampleRate8000, SampleRate16000, SampleRate22050, SampleRate32000, SampleRate44100, SampleRate48000}
}

func (s SampleRate) String() string { return strconv.Itoa(int(s)) }

func (s SampleRate) Valid() bool {
	for _, v := range SampleRates() {
		if v == s {
			return true
		}
	}
	return false
}

// ParseSampleRate maps a persisted key such as "44100" to a SampleRate.
func ParseSampleRate(key string) (SampleRate, error) {
	n, err := strconv.Atoi(key)
	if err == nil && SampleRate(n).Valid() {
		return SampleRate(n), nil
	}
	return 0, fmt.Errorf("unknown sample rate %q", key)
}

// Bitrate in bits per second.
type Bitrate int

const (
	// Bitrate12000 is only used by the legacy 3gp format and cannot be selected.
	Bitrate12000  Bitrate = 12000
	Bitrate48000  Bitrate = 48000
	Bitrate96000  Bitrate = 96000
	Bitrate128000 Bitrate = 128000
	Bitrate192000 Bitrate = 192000
	Bitrate256000 Bitrate = 256000

	DefaultBitrate = Bitrate128000
)

// Bitrates lists the selectable bitrates in ascending order.
func Bitrates() []Bitrate {
	return []Bitrate{Bitrate48000, Bitrate96000, Bitrate128000, Bitrate192000, Bitrate256000}
}

func (b Bitrate) String() string { return strconv.Itoa(int(b)) }

// Kbps returns the bitrate in kilobits per second.
func (b Bitrate) Kbps() int { return int(b) / 1000 }

func (b Bitrate) Valid() bool {
	for _, v := range Bitrates() {
		if v == b {
			return true
		}
	}
	return false
}

// ParseBitrate maps a persisted key such as "128000" to a Bitrate.
func ParseBitrate(key string) (Bitrate, error) {
	n, err := strconv.Atoi(key)
	if err == nil && Bitrate(n).Valid() {
		return Bitrate(n), nil
	}
	return 0, fmt.Errorf("unknown bitrate %q", key)
}

// Channels is the number of recorded audio channels.
type Channels int

const (
	Mono   Channels = 1
	Stereo Channels = 2

	DefaultChannels = Stereo
)

func (c Channels) String() string {
	switch c {
	case Mono:
		return "mono"
	case Stereo:
		return "stereo"
	}
	return fmt.Sprintf("channels(%d)", int(c))
}

func (c Channels) Valid() bool { return c == Mono || c == Stereo }

// ParseChannels maps "mono" or "stereo" to Channels.
func ParseChannels(key string) (Channels, error) {
	switch key {
	case "mono":
		return Mono, nil
	case "stereo":
		return Stereo, nil
	}
	return 0, fmt.Errorf("unknown channel count %q", key)
}

// NamingMode selects how new record files are named.
type NamingMode int

const (
	NamingCounter NamingMode = iota + 1
	NamingDate
	NamingTimestamp

	DefaultNamingMode = NamingCounter
)

func (m NamingMode) String() string {
	switch m {
	case NamingCounter:
		return "record"
	case NamingDate:
		return "date"
	case NamingTimestamp:
		return "timestamp"
	}
	return fmt.Sprintf("naming(%d)", int(m))
}

func (m NamingMode) Valid() bool {
	return m == NamingCounter || m == NamingDate || m == NamingTimestamp
}

// ParseNamingMode maps "record", "date" or "timestamp" to a NamingMode.
func ParseNamingMode(key string) (NamingMode, error) {
	switch key {
	case "record":
		return NamingCounter, nil
	case "date":
		return NamingDate, nil
	case "timestamp":
		return NamingTimestamp, nil
	}
	return 0, fmt.Errorf("unknown naming format %q", key)
}
