package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoSelection is returned when a driver answers a select prompt with
	// an index outside the offered options.
	ErrNoSelection = errors.New("prompt: selection out of range")
)
