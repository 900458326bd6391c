package property

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no property matches the requested id.
var ErrNotFound = errors.New("property not found")

// ErrAmbiguous is returned when more than one row matches a single id.
// The store guarantees uniqueness, so this surfaces a store-side
// invariant violation instead of silently picking a row.
var ErrAmbiguous = errors.New("multiple properties matched one id")

// ValidationError reports a draft field rejected before reaching the
// store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// UploadError reports a failed image upload.
type UploadError struct {
	Key string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("uploading %s: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
