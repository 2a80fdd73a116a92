package api

import (
	"log/slog"
	"net/http"
	"strings"

	"aralin/internal/api/shared"
	"aralin/internal/domain/conjugation"
)

// ConjugationHandler exposes the conjugation engine directly. The endpoint
// is public: conjugation is a pure function and touches no user data.
type ConjugationHandler struct {
	logger *slog.Logger
}

// NewConjugationHandler creates a new ConjugationHandler.
func NewConjugationHandler(logger *slog.Logger) *ConjugationHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &ConjugationHandler{
		logger: logger.With(slog.String("component", "conjugation_handler")),
	}
}

// isValidRoot mirrors the verb domain rule: lowercase Latin letters only.
func isValidRoot(root string) bool {
	if root == "" {
		return false
	}
	for i := 0; i < len(root); i++ {
		if root[i] < 'a' || root[i] > 'z' {
			return false
		}
	}
	return true
}

// Conjugate handles GET /conjugations requests.
//
// With root, focus and aspect query parameters it returns the single
// conjugated form. With only a root it returns the full paradigm, one entry
// per focus/aspect pair.
func (h *ConjugationHandler) Conjugate(w http.ResponseWriter, r *http.Request) {
	root := strings.TrimSpace(r.URL.Query().Get("root"))
	focusParam := r.URL.Query().Get("focus")
	aspectParam := r.URL.Query().Get("aspect")

	if !isValidRoot(root) {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Invalid verb root: must be lowercase Latin letters")
		return
	}

	// A lone root yields the whole table.
	if focusParam == "" && aspectParam == "" {
		shared.RespondWithJSON(w, r, http.StatusOK, paradigmResponse(root))
		return
	}

	focus, err := conjugation.ParseFocus(focusParam)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	aspect, err := conjugation.ParseAspect(aspectParam)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	form, err := conjugation.Conjugate(root, focus, aspect)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ConjugationResponse{
		Root:   root,
		Focus:  string(focus),
		Aspect: string(aspect),
		Form:   form,
	})
}

func paradigmResponse(root string) ParadigmResponse {
	resp := ParadigmResponse{Root: root}
	for _, focus := range conjugation.Focuses() {
		for _, aspect := range conjugation.Aspects() {
			form, _ := conjugation.Conjugate(root, focus, aspect)
			resp.Forms = append(resp.Forms, ConjugationResponse{
				Root:   root,
				Focus:  string(focus),
				Aspect: string(aspect),
				Form:   form,
			})
		}
	}
	return resp
}
