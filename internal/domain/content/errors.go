package content

import (
	"errors"
	"strings"
)

// ErrNotFound is returned by Update and Delete when no item carries the
// requested id.
var ErrNotFound = errors.New("item not found")

// ValidationError reports the rules a write payload failed, one message per
// field ("title is required", ...). The messages are part of the API
// contract and surface verbatim in the 400 response body.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}
