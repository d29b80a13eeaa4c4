package publish

import (
	"errors"
	"fmt"
)

// ErrFileExists is reported by a Publisher when the target file is already
// present and overwrite was not requested.
var ErrFileExists = errors.New("file already exists")

// ErrBusy is returned when a publish is started while another is in flight.
var ErrBusy = errors.New("publish already in progress")

// ErrNoPending is returned by ConfirmOverwrite or Retry when there is no
// earlier attempt to repeat.
var ErrNoPending = errors.New("no publish attempt to repeat")

// ValidationError rejects a request locally before any external call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ConflictError asks the operator to confirm overwriting an existing file.
// Nothing has been written when it is returned.
type ConflictError struct {
	DirectoryName string
	FileName      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s/%s already exists; confirm to overwrite", e.DirectoryName, e.FileName)
}

// Unwrap lets errors.Is match ErrFileExists.
func (e *ConflictError) Unwrap() error { return ErrFileExists }

// TransientError wraps any other publisher failure. Its message is the
// publisher's message, unchanged.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return e.Err.Error() }

// Unwrap returns the publisher error.
func (e *TransientError) Unwrap() error { return e.Err }
