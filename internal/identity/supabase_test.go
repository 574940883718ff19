package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyReturnsNormalizedClaim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "sub-1",
			"email": "ada@clinic.com",
			"user_metadata": {"name": "Ada Y.", "avatar_url": "https://cdn/avatar.png", "role": "Admin"},
			"app_metadata": {"provider": "google", "roles": ["moderator"]}
		}`))
	}))
	defer srv.Close()

	v := NewSupabaseVerifier(srv.URL, "service-key")
	claim, err := v.Verify(context.Background(), "token-123")
	require.NoError(t, err)

	assert.Equal(t, "sub-1", claim.Subject)
	assert.Equal(t, "ada@clinic.com", claim.Email)
	assert.Equal(t, "Ada Y.", claim.Name)
	assert.Equal(t, "https://cdn/avatar.png", claim.AvatarURL)
	assert.Equal(t, "google", claim.Provider)
	assert.True(t, claim.HasAdminRole())
}

func TestVerifyNonSuccessFailsClosed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	v := NewSupabaseVerifier(srv.URL, "service-key")
	_, err := v.Verify(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestVerifyMalformedBodyFailsClosed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	v := NewSupabaseVerifier(srv.URL, "service-key")
	_, err := v.Verify(context.Background(), "token")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestVerifyMissingSubjectFailsClosed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"email": "ada@clinic.com"}`))
	}))
	defer srv.Close()

	v := NewSupabaseVerifier(srv.URL, "service-key")
	_, err := v.Verify(context.Background(), "token")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestVerifyEmptyTokenRejectedLocally(t *testing.T) {
	v := NewSupabaseVerifier("http://127.0.0.1:1", "service-key")
	_, err := v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestVerifyProviderUnreachableFailsClosed(t *testing.T) {
	// Closed server: connection refused must surface as an auth failure,
	// not a panic or hang.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	v := NewSupabaseVerifier(srv.URL, "service-key")
	_, err := v.Verify(context.Background(), "token")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}
