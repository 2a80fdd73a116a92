package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVerb(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	verb, err := NewVerb(userID, "luto", "to cook")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, verb.ID)
	assert.Equal(t, userID, verb.UserID)
	assert.Equal(t, "luto", verb.Root)
	assert.Equal(t, "to cook", verb.Gloss)
	assert.Equal(t, VerbStatusPending, verb.Status)
	assert.False(t, verb.CreatedAt.IsZero())
}

func TestVerbValidate(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	testCases := []struct {
		name    string
		mutate  func(*Verb)
		wantErr error
	}{
		{name: "valid verb", mutate: func(v *Verb) {}, wantErr: nil},
		{name: "nil ID", mutate: func(v *Verb) { v.ID = uuid.Nil }, wantErr: ErrVerbIDEmpty},
		{name: "nil user ID", mutate: func(v *Verb) { v.UserID = uuid.Nil }, wantErr: ErrVerbUserIDEmpty},
		{name: "empty root", mutate: func(v *Verb) { v.Root = "" }, wantErr: ErrVerbRootEmpty},
		{name: "uppercase root", mutate: func(v *Verb) { v.Root = "Luto" }, wantErr: ErrVerbRootNotLower},
		{name: "root with space", mutate: func(v *Verb) { v.Root = "mag luto" }, wantErr: ErrVerbRootNotLower},
		{name: "unknown status", mutate: func(v *Verb) { v.Status = "archived" }, wantErr: ErrInvalidVerbStatus},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			verb, err := NewVerb(userID, "kain", "to eat")
			require.NoError(t, err)

			tc.mutate(verb)
			err = verb.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestVerbMarkStatus(t *testing.T) {
	t.Parallel()

	verb, err := NewVerb(uuid.New(), "aral", "to study")
	require.NoError(t, err)

	require.NoError(t, verb.MarkStatus(VerbStatusProcessing))
	assert.Equal(t, VerbStatusProcessing, verb.Status)

	err = verb.MarkStatus("retired")
	assert.ErrorIs(t, err, ErrInvalidVerbStatus)
	assert.Equal(t, VerbStatusProcessing, verb.Status, "failed transition must not change status")
}
