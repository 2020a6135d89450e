package storage

import "fmt"

// FileCreationError reports that a record file could not be created.
type FileCreationError struct {
	Path string
	Err  error
}

func (e *FileCreationError) Error() string {
	return fmt.Sprintf("cannot create record file %s: %v", e.Path, e.Err)
}

func (e *FileCreationError) Unwrap() error { return e.Err }
