package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrNoForms is returned when no conjugated forms are supplied.
	ErrNoForms = errors.New("no conjugated forms to illustrate")
)
