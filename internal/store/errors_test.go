package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"aralin/internal/store"
)

func TestNotFoundErrorsWrapErrNotFound(t *testing.T) {
	t.Parallel()

	for _, err := range []error{
		store.ErrUserNotFound,
		store.ErrVerbNotFound,
		store.ErrCardNotFound,
		store.ErrUserCardStatsNotFound,
	} {
		assert.True(t, store.IsNotFoundError(err), "%v should be a not found error", err)
		assert.True(t, errors.Is(err, store.ErrNotFound))
	}

	assert.False(t, store.IsNotFoundError(store.ErrDuplicate))
	assert.False(t, store.IsNotFoundError(nil))
}

func TestDuplicateErrors(t *testing.T) {
	t.Parallel()

	assert.True(t, store.IsDuplicateError(store.ErrEmailExists))
	assert.True(t, store.IsDuplicateError(store.ErrVerbExists))
	assert.False(t, store.IsDuplicateError(store.ErrNotFound))

	// Wrapping preserves classification.
	wrapped := fmt.Errorf("creating user: %w", store.ErrEmailExists)
	assert.True(t, store.IsDuplicateError(wrapped))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	inner := errors.New("connection reset")
	err := store.NewStoreError("verb", "create", "insert failed", inner)

	assert.Contains(t, err.Error(), "create operation on verb failed")
	assert.Contains(t, err.Error(), "connection reset")
	assert.ErrorIs(t, err, inner)

	var storeErr *store.StoreError
	assert.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "verb", storeErr.Entity)

	noInner := store.NewStoreError("card", "delete", "no rows", nil)
	assert.Equal(t, "delete operation on card failed: no rows", noInner.Error())
}
