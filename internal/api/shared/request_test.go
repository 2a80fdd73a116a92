package shared

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	Root  string `json:"root"  validate:"required"`
	Gloss string `json:"gloss" validate:"required"`
}

type selfValidating struct {
	err error
}

func (s selfValidating) Validate() error { return s.err }

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes valid body", func(t *testing.T) {
		t.Parallel()

		body := bytes.NewReader([]byte(`{"root":"luto","gloss":"to cook"}`))
		req := httptest.NewRequest(http.MethodPost, "/test", body)

		var target decodeTarget
		require.NoError(t, DecodeJSON(req, &target))
		assert.Equal(t, "luto", target.Root)
		assert.Equal(t, "to cook", target.Gloss)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader([]byte(`{"root":`)))

		var target decodeTarget
		assert.Error(t, DecodeJSON(req, &target))
	})
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	t.Run("uses struct tags", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, ValidateRequest(decodeTarget{Root: "luto", Gloss: "to cook"}))
		assert.Error(t, ValidateRequest(decodeTarget{Root: "luto"}))
	})

	t.Run("prefers the type's own Validate method", func(t *testing.T) {
		t.Parallel()

		sentinel := errors.New("custom validation failed")
		assert.ErrorIs(t, ValidateRequest(selfValidating{err: sentinel}), sentinel)
		assert.NoError(t, ValidateRequest(selfValidating{}))
	})
}
