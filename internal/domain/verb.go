package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// VerbStatus tracks the card-generation lifecycle of a verb.
type VerbStatus string

// Possible verb status values
const (
	VerbStatusPending    VerbStatus = "pending"
	VerbStatusProcessing VerbStatus = "processing"
	VerbStatusCompleted  VerbStatus = "completed"
	VerbStatusFailed     VerbStatus = "failed"
)

// Verb validation errors
var (
	ErrVerbIDEmpty       = errors.New("verb ID cannot be empty")
	ErrVerbUserIDEmpty   = errors.New("verb user ID cannot be empty")
	ErrVerbRootEmpty     = errors.New("verb root cannot be empty")
	ErrVerbRootNotLower  = errors.New("verb root must be lowercase Latin letters")
	ErrInvalidVerbStatus = errors.New("invalid verb status")
)

// Verb is a lexical root a user is studying. The root is the bare base form
// without affixes (e.g. "luto", "kain"); drill cards for every focus/aspect
// combination are generated from it.
type Verb struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Root      string     `json:"root"`
	Gloss     string     `json:"gloss"` // English meaning, shown on card fronts
	Status    VerbStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewVerb creates a new Verb in pending status for the given user.
// Returns an error if validation fails.
func NewVerb(userID uuid.UUID, root, gloss string) (*Verb, error) {
	now := time.Now().UTC()
	verb := &Verb{
		ID:        uuid.New(),
		UserID:    userID,
		Root:      root,
		Gloss:     gloss,
		Status:    VerbStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := verb.Validate(); err != nil {
		return nil, err
	}

	return verb, nil
}

// Validate checks if the Verb has valid data.
func (v *Verb) Validate() error {
	if v.ID == uuid.Nil {
		return ErrVerbIDEmpty
	}

	if v.UserID == uuid.Nil {
		return ErrVerbUserIDEmpty
	}

	if v.Root == "" {
		return ErrVerbRootEmpty
	}

	for i := 0; i < len(v.Root); i++ {
		if v.Root[i] < 'a' || v.Root[i] > 'z' {
			return ErrVerbRootNotLower
		}
	}

	switch v.Status {
	case VerbStatusPending, VerbStatusProcessing, VerbStatusCompleted, VerbStatusFailed:
	default:
		return ErrInvalidVerbStatus
	}

	return nil
}

// MarkStatus transitions the verb to the given status and bumps the update
// timestamp. Returns ErrInvalidVerbStatus for unknown statuses.
func (v *Verb) MarkStatus(status VerbStatus) error {
	switch status {
	case VerbStatusPending, VerbStatusProcessing, VerbStatusCompleted, VerbStatusFailed:
	default:
		return ErrInvalidVerbStatus
	}

	v.Status = status
	v.UpdatedAt = time.Now().UTC()
	return nil
}
