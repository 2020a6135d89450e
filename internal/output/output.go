package output

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/hannesa2/AudioRecorder/internal/domain/record"
)

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) RecordCreated(path string) {
	fmt.Fprintf(f.w, "✅ Record file created: %s\n", path)
}

func (f *Formatter) RecordingStarted(path string, s record.Settings) {
	fmt.Fprintf(f.w, "🎙️  Recording to %s (%s, %d Hz, %s", path, s.Format, int(s.SampleRate), s.Channels)
	if s.Format == record.FormatM4A {
		fmt.Fprintf(f.w, ", %d kbps", s.Bitrate.Kbps())
	}
	fmt.Fprintf(f.w, ")\n   Press Ctrl+C to stop.\n")
}

func (f *Formatter) RecordingStopped(duration time.Duration) {
	fmt.Fprintf(f.w, "⏹️  Recording stopped (%s)\n", formatDuration(duration))
}

func (f *Formatter) RecordListHeader(dir, root string) {
	fmt.Fprintf(f.w, "📁 Records in %s (%s):\n\n", dir, root)
}

func (f *Formatter) RecordListItem(r record.Record) {
	status := ""
	if r.Trashed {
		status = " 🗑️"
	}
	fmt.Fprintf(f.w, "  %-32s %-4s %8s  %s%s\n",
		r.Name, r.Format, humanize.Bytes(uint64(r.Size)), r.ModTime.Format("2006-01-02 15:04"), status)
}

func (f *Formatter) Moved(verb, from, to string) {
	fmt.Fprintf(f.w, "✅ %s: %s → %s\n", verb, from, to)
}

func (f *Formatter) Space(dir string, free int64, remaining time.Duration, ok bool) {
	fmt.Fprintf(f.w, "💾 %s free in %s\n", humanize.Bytes(uint64(free)), dir)
	fmt.Fprintf(f.w, "⏱️  About %s of recording left\n", formatDuration(remaining))
	if ok {
		f.Success("Enough space to record")
	} else {
		f.Warning("Not enough space to start a recording")
	}
}

func (f *Formatter) Setting(key, value string) {
	fmt.Fprintf(f.w, "  %-18s %s\n", key, value)
}

func (f *Formatter) DirectoryChanged(dir, root string) {
	fmt.Fprintf(f.w, "📁 Recordings directory: %s (%s)\n", dir, root)
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

func (f *Formatter) SetupCheck(name string, ok bool, detail string) {
	if ok {
		fmt.Fprintf(f.w, "  ✅ %s: %s\n", name, detail)
	} else {
		fmt.Fprintf(f.w, "  ❌ %s: %s\n", name, detail)
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
