package storage

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hannesa2/AudioRecorder/internal/domain/record"
)

const (
	recordNamePrefix = "Record-"
	dateNameLayout   = "2006.01.02 15.04.05"

	// TrashExtension marks a soft-deleted record file.
	TrashExtension = "deleted"
)

// RecordName derives a record base name for the given naming mode. Date
// names have one-second resolution and may collide; callers that need
// uniqueness should use counter or timestamp naming.
func RecordName(mode record.NamingMode, counter int64, now time.Time) string {
	switch mode {
	case record.NamingDate:
		return recordNamePrefix + now.Format(dateNameLayout)
	case record.NamingTimestamp:
		return recordNamePrefix + strconv.FormatInt(now.UnixMilli(), 10)
	default:
		return recordNamePrefix + strconv.FormatInt(counter, 10)
	}
}

// WithExtension appends ".ext" to name.
func WithExtension(name, ext string) string {
	return name + "." + ext
}

// TrimExtension removes the last extension of name, if any. Leading dots
// (hidden files) are not treated as extensions.
func TrimExtension(name string) string {
	i := strings.LastIndexByte(name, '.')
	slash := strings.LastIndexAny(name, `/\`)
	if i <= slash+1 {
		return name
	}
	return name[:i]
}

// Extension returns the last extension of name without the dot.
func Extension(name string) string {
	trimmed := TrimExtension(name)
	if trimmed == name {
		return ""
	}
	return name[len(trimmed)+1:]
}

// IsTrashed reports whether path carries the trash marker.
func IsTrashed(path string) bool {
	return Extension(path) == TrashExtension
}

// RenameTarget returns the path a record at path gets when renamed to
// newName. An empty extension keeps the current one. Trashed records keep
// their format extension and the trash marker.
func RenameTarget(path, newName, extension string) string {
	base := path
	trashed := IsTrashed(path)
	if trashed {
		base = TrimExtension(path)
	}
	if extension == "" {
		extension = Extension(base)
	}
	name := newName
	if extension != "" {
		name = WithExtension(newName, extension)
	}
	if trashed {
		name = WithExtension(name, TrashExtension)
	}
	return filepath.Join(filepath.Dir(path), name)
}
