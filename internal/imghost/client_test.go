package imghost

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/1/upload", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "aGVsbG8=", r.FormValue("image"))
		assert.Equal(t, "point_1", r.FormValue("name"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"url": "https://img.example/abc.jpg"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key")
	url, err := c.Upload(context.Background(), "aGVsbG8=", "point_1")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/abc.jpg", url)
}

func TestUploadHostRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   map[string]any{"message": "invalid image"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key")
	_, err := c.Upload(context.Background(), "bm90LWFuLWltYWdl", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid image")
}

func TestUploadRequiresKeyAndPayload(t *testing.T) {
	c := New("http://localhost:0", "")
	_, err := c.Upload(context.Background(), "", "x")
	assert.Error(t, err)

	_, err = c.Upload(context.Background(), "aGVsbG8=", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestIsRemoteURL(t *testing.T) {
	assert.True(t, IsRemoteURL("https://img.example/a.jpg"))
	assert.True(t, IsRemoteURL("http://img.example/a.jpg"))
	assert.False(t, IsRemoteURL("file:///tmp/a.jpg"))
	assert.False(t, IsRemoteURL("data:image/png;base64,xxxx"))
	assert.False(t, IsRemoteURL(""))
}
