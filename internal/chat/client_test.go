package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grest/greenspace-server/internal/logger"
	"github.com/grest/greenspace-server/internal/model"
)

func replyWith(text string) []byte {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{
				"role":  "model",
				"parts": []any{map[string]any{"text": text}},
			}},
		},
	})
	return b
}

func TestSendUsesFirstModel(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "user", req.Contents[0].Role)
		assert.Equal(t, "halo", req.Contents[0].Parts[0].Text)
		_, _ = w.Write(replyWith("halo juga"))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", nil, logger.New("chat-test"))
	reply, err := c.Send(context.Background(), "halo")
	require.NoError(t, err)
	assert.Equal(t, "halo juga", reply)
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0], "gemini-1.5-flash-latest")
}

func TestSendFallsBackToSecondModel(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		if strings.Contains(r.URL.Path, "gemini-1.5-flash-latest") {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "model was not found"},
			})
			return
		}
		_, _ = w.Write(replyWith("fallback reply"))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", nil, logger.New("chat-test"))
	reply, err := c.Send(context.Background(), "halo")
	require.NoError(t, err)
	assert.Equal(t, "fallback reply", reply)
	require.Len(t, calls, 2)
}

func TestSendSurfacesFinalErrorAfterAllModels(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "API key not valid"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "bad-key", nil, logger.New("chat-test"))
	_, err := c.Send(context.Background(), "halo")
	require.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.Contains(t, err.Error(), "key is not valid")
}

func TestSendRejectsEmptyMessageLocally(t *testing.T) {
	c := New("http://localhost:0", "k", nil, logger.New("chat-test"))
	_, err := c.Send(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestSendRequiresKey(t *testing.T) {
	c := New("http://localhost:0", "", nil, logger.New("chat-test"))
	_, err := c.Send(context.Background(), "halo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key not configured")
}
