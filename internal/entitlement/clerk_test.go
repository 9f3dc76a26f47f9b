package entitlement

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/quickai/config"
	"github.com/d60-Lab/quickai/internal/model"
)

func newClerkFixture(t *testing.T, handler http.HandlerFunc) *ClerkStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClerkStore(config.ClerkConfig{BaseURL: srv.URL, SecretKey: "sk_test"})
}

func TestClerkGetParsesPlanAndUsage(t *testing.T) {
	store := newClerkFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/users/user_123", r.URL.Path)
		require.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"public_metadata":  map[string]any{"plan": "premium"},
			"private_metadata": map[string]any{"free_usage": 4},
		})
	})

	ent, err := store.Get(context.Background(), "user_123")
	require.NoError(t, err)
	require.Equal(t, model.PlanPremium, ent.Plan)
	require.Equal(t, 4, ent.FreeUsage)
	require.True(t, ent.UsageKnown)
}

func TestClerkGetDefaultsToFreeWithUnknownUsage(t *testing.T) {
	store := newClerkFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"public_metadata":  map[string]any{},
			"private_metadata": map[string]any{},
		})
	})

	ent, err := store.Get(context.Background(), "user_123")
	require.NoError(t, err)
	require.Equal(t, model.PlanFree, ent.Plan)
	require.False(t, ent.UsageKnown)
}

func TestClerkErrorsWrapUnavailable(t *testing.T) {
	store := newClerkFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := store.Get(context.Background(), "user_123")
	require.ErrorIs(t, err, ErrUnavailable)

	err = store.SetFreeUsage(context.Background(), "user_123", 1)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestClerkSetFreeUsagePatchesPrivateMetadata(t *testing.T) {
	var got map[string]map[string]any
	store := newClerkFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/users/user_123/metadata", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{}"))
	})

	require.NoError(t, store.SetFreeUsage(context.Background(), "user_123", 7))
	require.Equal(t, float64(7), got["private_metadata"]["free_usage"])
}
