package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aralin/internal/api/shared"
	"aralin/internal/domain"
	"aralin/internal/service"
)

// mockVerbService implements service.VerbService for handler tests.
type mockVerbService struct {
	verbs     map[uuid.UUID]*domain.Verb
	createErr error
	getErr    error
}

func newMockVerbService() *mockVerbService {
	return &mockVerbService{verbs: make(map[uuid.UUID]*domain.Verb)}
}

func (m *mockVerbService) CreateVerbAndEnqueueTask(
	ctx context.Context,
	userID uuid.UUID,
	root, gloss string,
) (*domain.Verb, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	verb, err := domain.NewVerb(userID, root, gloss)
	if err != nil {
		return nil, err
	}
	m.verbs[verb.ID] = verb
	return verb, nil
}

func (m *mockVerbService) UpdateVerbStatus(ctx context.Context, verbID uuid.UUID, status domain.VerbStatus) error {
	return nil
}

func (m *mockVerbService) GetVerb(ctx context.Context, verbID uuid.UUID) (*domain.Verb, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	verb, ok := m.verbs[verbID]
	if !ok {
		return nil, service.ErrVerbNotFound
	}
	return verb, nil
}

// withAuthenticatedUser attaches a user ID the way the auth middleware does.
func withAuthenticatedUser(req *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

func TestVerbHandler_CreateVerb(t *testing.T) {
	t.Parallel()

	postVerb := func(t *testing.T, handler *VerbHandler, userID *uuid.UUID, body interface{}) *httptest.ResponseRecorder {
		t.Helper()

		payload, err := json.Marshal(body)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/verbs", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		if userID != nil {
			req = withAuthenticatedUser(req, *userID)
		}
		w := httptest.NewRecorder()
		handler.CreateVerb(w, req)
		return w
	}

	t.Run("accepted with pending status", func(t *testing.T) {
		t.Parallel()

		svc := newMockVerbService()
		handler := NewVerbHandler(svc, nil)
		userID := uuid.New()

		w := postVerb(t, handler, &userID, CreateVerbRequest{Root: "luto", Gloss: "to cook"})
		require.Equal(t, http.StatusAccepted, w.Code)

		var resp VerbResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "luto", resp.Root)
		assert.Equal(t, "to cook", resp.Gloss)
		assert.Equal(t, string(domain.VerbStatusPending), resp.Status)
		assert.Contains(t, svc.verbs, resp.ID)
	})

	t.Run("missing auth context returns unauthorized", func(t *testing.T) {
		t.Parallel()

		handler := NewVerbHandler(newMockVerbService(), nil)

		w := postVerb(t, handler, nil, CreateVerbRequest{Root: "luto", Gloss: "to cook"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("uppercase root is rejected", func(t *testing.T) {
		t.Parallel()

		handler := NewVerbHandler(newMockVerbService(), nil)
		userID := uuid.New()

		w := postVerb(t, handler, &userID, CreateVerbRequest{Root: "Luto", Gloss: "to cook"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing gloss is rejected", func(t *testing.T) {
		t.Parallel()

		handler := NewVerbHandler(newMockVerbService(), nil)
		userID := uuid.New()

		w := postVerb(t, handler, &userID, CreateVerbRequest{Root: "luto"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate root returns conflict", func(t *testing.T) {
		t.Parallel()

		svc := newMockVerbService()
		svc.createErr = service.ErrDuplicateVerb
		handler := NewVerbHandler(svc, nil)
		userID := uuid.New()

		w := postVerb(t, handler, &userID, CreateVerbRequest{Root: "luto", Gloss: "to cook"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestVerbHandler_GetVerb(t *testing.T) {
	t.Parallel()

	getVerb := func(t *testing.T, handler *VerbHandler, userID uuid.UUID, verbID string) *httptest.ResponseRecorder {
		t.Helper()

		router := chi.NewRouter()
		router.Get("/api/verbs/{id}", handler.GetVerb)

		req := httptest.NewRequest(http.MethodGet, "/api/verbs/"+verbID, nil)
		req = withAuthenticatedUser(req, userID)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("owner sees the verb", func(t *testing.T) {
		t.Parallel()

		svc := newMockVerbService()
		handler := NewVerbHandler(svc, nil)
		userID := uuid.New()

		verb, err := svc.CreateVerbAndEnqueueTask(context.Background(), userID, "luto", "to cook")
		require.NoError(t, err)

		w := getVerb(t, handler, userID, verb.ID.String())
		require.Equal(t, http.StatusOK, w.Code)

		var resp VerbResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, verb.ID, resp.ID)
		assert.Equal(t, "luto", resp.Root)
	})

	t.Run("another user's verb reads as not found", func(t *testing.T) {
		t.Parallel()

		svc := newMockVerbService()
		handler := NewVerbHandler(svc, nil)

		verb, err := svc.CreateVerbAndEnqueueTask(context.Background(), uuid.New(), "luto", "to cook")
		require.NoError(t, err)

		w := getVerb(t, handler, uuid.New(), verb.ID.String())
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown verb returns not found", func(t *testing.T) {
		t.Parallel()

		handler := NewVerbHandler(newMockVerbService(), nil)

		w := getVerb(t, handler, uuid.New(), uuid.New().String())
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed verb ID is rejected", func(t *testing.T) {
		t.Parallel()

		handler := NewVerbHandler(newMockVerbService(), nil)

		w := getVerb(t, handler, uuid.New(), "not-a-uuid")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
