package generation

import (
	"context"

	"aralin/internal/domain"
)

// Generator defines the interface for generating Tagalog usage examples for
// conjugated verb forms. It serves as a boundary between the application core
// and external AI/LLM services, following the hexagonal architecture pattern.
type Generator interface {
	// GenerateExamples produces one short usage sentence per conjugated form.
	// The returned map is keyed by surface form; forms the model skipped are
	// simply absent, and callers treat a missing example as acceptable.
	//
	// Parameters:
	//   - ctx: Context for the operation, which can be used for cancellation
	//   - verb: The verb whose forms are being illustrated (root and gloss
	//     give the model its context)
	//   - forms: The surface forms to illustrate, produced by the
	//     conjugation engine
	//
	// Returns:
	//   - A map from surface form to example sentence
	//   - An error if the generation fails for any reason (see errors.go for
	//     specific types)
	GenerateExamples(ctx context.Context, verb *domain.Verb, forms []string) (map[string]string, error)
}
