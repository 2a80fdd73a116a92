// Package conjugation implements the Tagalog verb morphology engine.
//
// Given a lexical root, a grammatical focus (mag, um, in) and an aspect
// (infinitive, completed, incompleted, contemplated), the engine produces a
// single conjugated surface form. Regular forms are derived from phonological
// rules (reduplication, infixation, prefixation, sound changes); roots whose
// behavior is not derivable from those rules are resolved through an
// immutable lexicon of overrides.
//
// Every function in this package is pure: output depends only on the inputs,
// nothing is cached or mutated, and concurrent use needs no synchronization.
package conjugation

import "errors"

// Focus identifies which grammatical role the conjugated verb emphasizes.
type Focus string

// The three supported focuses. Mag and Um are actor-focus paradigms,
// In is the object-focus paradigm.
const (
	FocusMag Focus = "mag"
	FocusUm  Focus = "um"
	FocusIn  Focus = "in"
)

// Aspect identifies the tense/completion marking of the conjugated verb.
type Aspect string

// The four supported aspects.
const (
	AspectInfinitive   Aspect = "infinitive"
	AspectCompleted    Aspect = "completed"
	AspectIncompleted  Aspect = "incompleted"
	AspectContemplated Aspect = "contemplated"
)

// Validation errors returned by Conjugate for values outside the closed
// focus/aspect enumerations. Valid combinations never fail.
var (
	ErrInvalidFocus  = errors.New("invalid focus")
	ErrInvalidAspect = errors.New("invalid aspect")
)

// IsValid reports whether f is one of the three supported focuses.
func (f Focus) IsValid() bool {
	switch f {
	case FocusMag, FocusUm, FocusIn:
		return true
	default:
		return false
	}
}

// IsValid reports whether a is one of the four supported aspects.
func (a Aspect) IsValid() bool {
	switch a {
	case AspectInfinitive, AspectCompleted, AspectIncompleted, AspectContemplated:
		return true
	default:
		return false
	}
}

// ParseFocus converts a string into a Focus.
// Returns ErrInvalidFocus if the string does not name a supported focus.
func ParseFocus(s string) (Focus, error) {
	f := Focus(s)
	if !f.IsValid() {
		return "", ErrInvalidFocus
	}
	return f, nil
}

// ParseAspect converts a string into an Aspect.
// Returns ErrInvalidAspect if the string does not name a supported aspect.
func ParseAspect(s string) (Aspect, error) {
	a := Aspect(s)
	if !a.IsValid() {
		return "", ErrInvalidAspect
	}
	return a, nil
}

// Focuses returns all supported focuses in a stable order.
func Focuses() []Focus {
	return []Focus{FocusMag, FocusUm, FocusIn}
}

// Aspects returns all supported aspects in a stable order.
func Aspects() []Aspect {
	return []Aspect{AspectInfinitive, AspectCompleted, AspectIncompleted, AspectContemplated}
}

// Conjugate returns the conjugated surface form for the given root, focus
// and aspect. The lexicon of irregular overrides is consulted first; on a
// miss the regular phonological rules for the focus apply.
//
// The function is total over its declared domain: for any root (including
// the empty string) and any valid focus/aspect pair it returns a
// deterministic string and a nil error. Focus or aspect values outside the
// closed enumerations are programmer errors and are rejected with
// ErrInvalidFocus or ErrInvalidAspect.
func Conjugate(root string, focus Focus, aspect Aspect) (string, error) {
	if !focus.IsValid() {
		return "", ErrInvalidFocus
	}
	if !aspect.IsValid() {
		return "", ErrInvalidAspect
	}

	if form, ok := lexiconLookup(root, focus, aspect); ok {
		return form, nil
	}

	switch focus {
	case FocusMag:
		return magForm(root, aspect), nil
	case FocusUm:
		return umForm(root, aspect), nil
	default:
		return inForm(root, aspect), nil
	}
}
