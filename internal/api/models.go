package api

import (
	"time"

	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// CreateVerbRequest defines the payload for registering a new verb root.
type CreateVerbRequest struct {
	Root  string `json:"root"  validate:"required,lowercase,alpha"`
	Gloss string `json:"gloss" validate:"required,max=200"`
}

// VerbResponse represents the response data for a verb.
type VerbResponse struct {
	ID        uuid.UUID `json:"id"`
	Root      string    `json:"root"`
	Gloss     string    `json:"gloss"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CardResponse represents the response data for a card.
type CardResponse struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	VerbID    uuid.UUID   `json:"verb_id"`
	Content   interface{} `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// SubmitAnswerRequest represents the request body for submitting a card
// review answer.
type SubmitAnswerRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=again hard good easy"`
}

// PostponeCardRequest represents the request body for postponing a card.
type PostponeCardRequest struct {
	Days int `json:"days" validate:"required,gte=1"`
}

// UserCardStatsResponse represents the response data for review statistics.
type UserCardStatsResponse struct {
	UserID             uuid.UUID `json:"user_id"`
	CardID             uuid.UUID `json:"card_id"`
	Interval           int       `json:"interval"`
	EaseFactor         float64   `json:"ease_factor"`
	ConsecutiveCorrect int       `json:"consecutive_correct"`
	LastReviewedAt     time.Time `json:"last_reviewed_at"`
	NextReviewAt       time.Time `json:"next_review_at"`
	ReviewCount        int       `json:"review_count"`
}

// ConjugationResponse represents a single conjugated form.
type ConjugationResponse struct {
	Root   string `json:"root"`
	Focus  string `json:"focus"`
	Aspect string `json:"aspect"`
	Form   string `json:"form"`
}

// ParadigmResponse represents the full conjugation table for a root.
type ParadigmResponse struct {
	Root  string                `json:"root"`
	Forms []ConjugationResponse `json:"forms"`
}
