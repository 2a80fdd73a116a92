// Package gemini provides an implementation of the generation.Generator
// interface that uses Google's Gemini API to produce Tagalog usage examples
// for conjugated verb forms.
//
// It is an infrastructure adapter in the hexagonal architecture: it translates
// between the application's domain models and the Gemini API without exposing
// the external service to the core application. Transient API failures are
// retried with exponential backoff and jitter; responses blocked by safety
// filters or returned in an unexpected shape are surfaced as permanent errors
// from the generation package.
package gemini
