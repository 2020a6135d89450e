package log

// Canonical field names for structured logging.
const (
	FieldComponent = "component"
	FieldEvent     = "event"

	FieldPath    = "path"
	FieldNewPath = "new_path"
	FieldDir     = "dir"
	FieldRoot    = "root"

	FieldFormat  = "format"
	FieldCounter = "counter"
	FieldSeconds = "seconds"
	FieldKey     = "key"
	FieldValue   = "value"
)
