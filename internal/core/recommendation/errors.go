package recommendation

import (
	"errors"
	"fmt"
)

// ErrSchema marks malformed mission data. Fatal at load time.
var ErrSchema = errors.New("mission data invalid")

// SchemaError identifies the offending field and why it was rejected.
type SchemaError struct {
	Path   string
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrSchema, e.Reason)
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s: %s", ErrSchema, e.Path, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is makes errors.Is(err, ErrSchema) true for every SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

func schemaErr(path, format string, args ...any) *SchemaError {
	return &SchemaError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
