package pagecraft

import (
	"fmt"
)

// ValidationError reports a mutator that was given an unusable value, such as
// an empty stylesheet URL. The first validation failure on a Page is sticky:
// later mutators still chain, and the error surfaces from Err, Fetch and
// Emit.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("pagecraft: invalid %s: %s", e.Field, e.Reason)
}

// SinkError wraps a write failure on the output sink during Emit. It is
// surfaced to the caller and never retried.
type SinkError struct {
	Err error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("pagecraft: emit failed: %v", e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}
