package usecases

import "github.com/hannesa2/AudioRecorder/internal/domain/record"

// RecordLister lists record files, newest first.
type RecordLister interface {
	Records() ([]record.Record, error)
}

// ListOptions filters the listing by trash state.
type ListOptions struct {
	IncludeTrashed bool
	TrashedOnly    bool
}

// ListRecords lists the records in the current recordings directory.
type ListRecords struct {
	Files RecordLister
}

func (l *ListRecords) Execute(opts ListOptions) ([]record.Record, error) {
	all, err := l.Files.Records()
	if err != nil {
		return nil, err
	}

	var out []record.Record
	for _, r := range all {
		switch {
		case opts.TrashedOnly && !r.Trashed:
			continue
		case !opts.TrashedOnly && !opts.IncludeTrashed && r.Trashed:
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
