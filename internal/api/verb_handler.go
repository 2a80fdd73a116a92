package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"aralin/internal/api/shared"
	"aralin/internal/domain"
	"aralin/internal/platform/logger"
	"aralin/internal/service"
)

// VerbHandler handles verb-related HTTP requests.
type VerbHandler struct {
	verbService service.VerbService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewVerbHandler creates a new VerbHandler.
func NewVerbHandler(verbService service.VerbService, logger *slog.Logger) *VerbHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &VerbHandler{
		verbService: verbService,
		validator:   validator.New(),
		logger:      logger.With(slog.String("component", "verb_handler")),
	}
}

func verbToResponse(verb *domain.Verb) VerbResponse {
	return VerbResponse{
		ID:        verb.ID,
		Root:      verb.Root,
		Gloss:     verb.Gloss,
		Status:    string(verb.Status),
		CreatedAt: verb.CreatedAt,
		UpdatedAt: verb.UpdatedAt,
	}
}

// CreateVerb handles POST /verbs requests. The verb is created in pending
// status; drill cards are generated asynchronously.
func (h *VerbHandler) CreateVerb(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateVerbRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	verb, err := h.verbService.CreateVerbAndEnqueueTask(r.Context(), userID, req.Root, req.Gloss)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("verb created",
		slog.String("verb_id", verb.ID.String()),
		slog.String("root", verb.Root))
	shared.RespondWithJSON(w, r, http.StatusAccepted, verbToResponse(verb))
}

// GetVerb handles GET /verbs/{id} requests.
func (h *VerbHandler) GetVerb(w http.ResponseWriter, r *http.Request) {
	userID, verbID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	verb, err := h.verbService.GetVerb(r.Context(), verbID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	// Verbs are private to their owner.
	if verb.UserID != userID {
		shared.RespondWithError(w, r, http.StatusNotFound, "Verb not found")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, verbToResponse(verb))
}
