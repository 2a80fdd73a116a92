package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Card validation errors
var (
	ErrCardIDEmpty       = errors.New("card ID cannot be empty")
	ErrCardUserIDEmpty   = errors.New("card user ID cannot be empty")
	ErrCardVerbIDEmpty   = errors.New("card verb ID cannot be empty")
	ErrCardContentEmpty  = errors.New("card content cannot be empty")
	ErrCardContentNotJSON = errors.New("card content must be valid JSON")
)

// Card represents a conjugation drill flashcard generated from a verb.
// Content is stored as JSONB for flexibility; CardContent documents the
// structure the generator produces.
type Card struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	VerbID    uuid.UUID       `json:"verb_id"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CardContent is the canonical content layout for a drill card: the front
// asks for a root conjugated into a focus/aspect pair, the back carries the
// surface form produced by the conjugation engine, and Example optionally
// holds a generated usage sentence.
type CardContent struct {
	Front   string `json:"front"`
	Back    string `json:"back"`
	Root    string `json:"root"`
	Focus   string `json:"focus"`
	Aspect  string `json:"aspect"`
	Example string `json:"example,omitempty"`
}

// NewCard creates a new Card owned by the given user for the given verb.
// Returns an error if validation fails.
func NewCard(userID, verbID uuid.UUID, content json.RawMessage) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		ID:        uuid.New(),
		UserID:    userID,
		VerbID:    verbID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.UserID == uuid.Nil {
		return ErrCardUserIDEmpty
	}

	if c.VerbID == uuid.Nil {
		return ErrCardVerbIDEmpty
	}

	if len(c.Content) == 0 {
		return ErrCardContentEmpty
	}

	var js json.RawMessage
	if err := json.Unmarshal(c.Content, &js); err != nil {
		return ErrCardContentNotJSON
	}

	return nil
}
