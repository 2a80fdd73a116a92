package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"aralin/internal/domain"
	"aralin/internal/domain/conjugation"
	"aralin/internal/domain/srs"
	"aralin/internal/service"
	"aralin/internal/service/auth"
	"aralin/internal/service/card_review"
	"aralin/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, card_review.ErrCardNotOwned),
		errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, card_review.ErrCardNotFound),
		errors.Is(err, card_review.ErrCardStatsNotFound),
		errors.Is(err, service.ErrVerbNotFound),
		errors.Is(err, service.ErrCardNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, service.ErrDuplicateVerb):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, card_review.ErrInvalidAnswer),
		errors.Is(err, conjugation.ErrInvalidFocus),
		errors.Is(err, conjugation.ErrInvalidAspect),
		errors.Is(err, domain.ErrVerbRootEmpty),
		errors.Is(err, domain.ErrVerbRootNotLower),
		errors.Is(err, srs.ErrInvalidDays):
		return http.StatusBadRequest

	// Special cases
	case errors.Is(err, card_review.ErrNoCardsDue):
		return http.StatusNoContent

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	// Authorization errors
	case errors.Is(err, card_review.ErrCardNotOwned),
		errors.Is(err, service.ErrNotOwned):
		return "You do not own this resource"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrCardNotFound),
		errors.Is(err, card_review.ErrCardNotFound),
		errors.Is(err, service.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, store.ErrVerbNotFound),
		errors.Is(err, service.ErrVerbNotFound):
		return "Verb not found"

	case errors.Is(err, card_review.ErrCardStatsNotFound):
		return "Card statistics not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrVerbExists),
		errors.Is(err, service.ErrDuplicateVerb):
		return "Verb already exists"

	// Bad request errors
	case errors.Is(err, conjugation.ErrInvalidFocus):
		return "Invalid focus: must be one of mag, um, in"

	case errors.Is(err, conjugation.ErrInvalidAspect):
		return "Invalid aspect: must be one of infinitive, completed, incompleted, contemplated"

	case errors.Is(err, domain.ErrVerbRootEmpty),
		errors.Is(err, domain.ErrVerbRootNotLower):
		return "Invalid verb root: must be lowercase Latin letters"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, card_review.ErrInvalidAnswer):
		return "Invalid answer"

	case errors.Is(err, srs.ErrInvalidDays):
		return "Postpone days must be at least 1"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'LoginRequest.Email' Error:Field validation for
	// 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "lowercase", "alpha":
		return "must be lowercase letters"
	case "gte":
		return "too small"
	default:
		return "validation failed"
	}
}
