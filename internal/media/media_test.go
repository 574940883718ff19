package media

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudinaryUpload(t *testing.T) {
	var gotSignature, gotAPIKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotSignature = r.FormValue("signature")
		gotAPIKey = r.FormValue("api_key")

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		file.Close()

		json.NewEncoder(w).Encode(map[string]any{
			"public_id":  "clinic/test",
			"secure_url": "https://res.cloudinary.com/demo/clinic/test.png",
			"width":      800,
			"height":     600,
			"format":     "png",
			"bytes":      1234,
		})
	}))
	defer srv.Close()

	client := NewCloudinaryClientWithBaseURL("demo", "key", "secret", srv.URL)
	result, err := client.Upload(context.Background(), []byte("fake-image"), "test.png", "clinic")
	require.NoError(t, err)

	assert.Equal(t, "clinic/test", result.PublicID)
	assert.Equal(t, "https://res.cloudinary.com/demo/clinic/test.png", result.SecureURL)
	assert.Equal(t, "key", gotAPIKey)
	// SHA-1 hex of the sorted param string plus the secret.
	assert.Len(t, gotSignature, 40)
}

func TestCloudinaryUploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "Invalid signature"},
		})
	}))
	defer srv.Close()

	client := NewCloudinaryClientWithBaseURL("demo", "key", "wrong", srv.URL)
	_, err := client.Upload(context.Background(), []byte("x"), "a.png", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid signature")
}

func TestCloudinaryUnconfigured(t *testing.T) {
	client := NewCloudinaryClient("", "", "")
	_, err := client.Upload(context.Background(), []byte("x"), "a.png", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCloudinarySignatureIsDeterministic(t *testing.T) {
	client := NewCloudinaryClient("demo", "key", "secret")
	params := map[string]string{"timestamp": "1700000000", "folder": "clinic"}
	assert.Equal(t, client.sign(params), client.sign(params))
	other := NewCloudinaryClient("demo", "key", "other-secret")
	assert.NotEqual(t, client.sign(params), other.sign(params))
}

func TestRemoveBgStrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, _, err := r.FormFile("image_file")
		require.NoError(t, err)
		file.Close()
		w.Write([]byte("png-without-background"))
	}))
	defer srv.Close()

	client := NewRemoveBgClientWithEndpoint("test-key", srv.URL)
	out, err := client.Strip(context.Background(), []byte("fake-image"), "portrait.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-without-background"), out)
}

func TestRemoveBgFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewRemoveBgClientWithEndpoint("bad-key", srv.URL)
	_, err := client.Strip(context.Background(), []byte("x"), "a.jpg")
	assert.Error(t, err)
}
