package envmap

import (
	"github.com/pkg/errors"
)

// Per-variable failure causes. Every entry in a LoadError's Vars map is one
// of these two sentinels, so callers can branch with errors.Is.
var (
	// ErrNotPresent indicates the variable has no value in the store and no
	// default was supplied.
	ErrNotPresent = errors.New("environment variable not present")

	// ErrNotValidText indicates the variable has a value that is not valid
	// UTF-8. A default never rescues this case; only a missing variable is
	// defaultable.
	ErrNotValidText = errors.New("environment variable is not valid unicode")
)

// LoadError is the aggregate failure of a Load call. It maps each variable
// that could not be resolved to its cause. Every failing variable from the
// request is reported together; the error is never raised for the first
// failure alone.
//
// The message is a fixed summary. Callers are expected to inspect Vars for
// details rather than parse the message.
type LoadError struct {
	Vars map[string]error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return "error(s) occurred loading environment variables"
}

// Unwrap exposes the per-variable causes so that errors.Is(err, ErrNotPresent)
// and errors.Is(err, ErrNotValidText) work on the aggregate.
func (e *LoadError) Unwrap() []error {
	if e == nil || len(e.Vars) == 0 {
		return nil
	}
	causes := make([]error, 0, len(e.Vars))
	for _, err := range e.Vars {
		causes = append(causes, err)
	}
	return causes
}
