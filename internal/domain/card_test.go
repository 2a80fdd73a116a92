package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	verbID := uuid.New()

	content, err := json.Marshal(CardContent{
		Front:  "luto: actor focus, completed",
		Back:   "nagluto",
		Root:   "luto",
		Focus:  "mag",
		Aspect: "completed",
	})
	require.NoError(t, err)

	card, err := NewCard(userID, verbID, content)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, card.ID)
	assert.Equal(t, userID, card.UserID)
	assert.Equal(t, verbID, card.VerbID)

	var parsed CardContent
	require.NoError(t, json.Unmarshal(card.Content, &parsed))
	assert.Equal(t, "nagluto", parsed.Back)
}

func TestCardValidate(t *testing.T) {
	t.Parallel()
	content := json.RawMessage(`{"front":"q","back":"a"}`)

	testCases := []struct {
		name    string
		mutate  func(*Card)
		wantErr error
	}{
		{name: "nil ID", mutate: func(c *Card) { c.ID = uuid.Nil }, wantErr: ErrCardIDEmpty},
		{name: "nil user ID", mutate: func(c *Card) { c.UserID = uuid.Nil }, wantErr: ErrCardUserIDEmpty},
		{name: "nil verb ID", mutate: func(c *Card) { c.VerbID = uuid.Nil }, wantErr: ErrCardVerbIDEmpty},
		{name: "empty content", mutate: func(c *Card) { c.Content = nil }, wantErr: ErrCardContentEmpty},
		{name: "malformed content", mutate: func(c *Card) { c.Content = json.RawMessage(`{notjson`) }, wantErr: ErrCardContentNotJSON},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			card, err := NewCard(uuid.New(), uuid.New(), content)
			require.NoError(t, err)

			tc.mutate(card)
			assert.ErrorIs(t, card.Validate(), tc.wantErr)
		})
	}
}
