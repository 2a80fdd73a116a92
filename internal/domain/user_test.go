package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("maria@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "maria@example.com", user.Email)
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid", email: "maria@example.com", password: "correct horse battery", wantErr: nil},
		{name: "empty email", email: "", password: "correct horse battery", wantErr: ErrEmptyEmail},
		{name: "email without at", email: "maria.example.com", password: "correct horse battery", wantErr: ErrInvalidEmail},
		{name: "email without domain dot", email: "maria@example", password: "correct horse battery", wantErr: ErrInvalidEmail},
		{name: "short password", email: "maria@example.com", password: "short", wantErr: ErrPasswordTooShort},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewUser(tc.email, tc.password)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestUserValidateStoredUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("maria@example.com", "correct horse battery")
	require.NoError(t, err)

	// Users loaded from the store carry only the hash.
	user.Password = ""
	user.HashedPassword = "$2a$10$abcdefghijklmnopqrstuv"
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), ErrEmptyPassword)
}

func TestNewUserCardStats(t *testing.T) {
	t.Parallel()

	stats, err := NewUserCardStats(uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Interval)
	assert.Equal(t, 2.5, stats.EaseFactor)
	assert.False(t, stats.NextReviewAt.After(stats.CreatedAt), "new cards are due immediately")

	_, err = NewUserCardStats(uuid.Nil, uuid.New())
	assert.ErrorIs(t, err, ErrEmptyStatsUserID)
}

func TestReviewOutcomeIsValid(t *testing.T) {
	t.Parallel()

	for _, o := range []ReviewOutcome{ReviewOutcomeAgain, ReviewOutcomeHard, ReviewOutcomeGood, ReviewOutcomeEasy} {
		assert.True(t, o.IsValid())
	}
	assert.False(t, ReviewOutcome("perfect").IsValid())
}
