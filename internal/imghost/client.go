// Package imghost is the client for the external image-hosting API
// (imgbb-compatible). Uploads are terminal for a save attempt: a failed
// upload aborts the save and is never retried automatically.
package imghost

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Uploader resolves a locally-selected photo into a hosted URL.
type Uploader interface {
	Upload(ctx context.Context, imageBase64, name string) (string, error)
}

type Client struct {
	client *resty.Client
	key    string
}

// New creates a photo-host client for the given base URL and API key.
func New(baseURL, key string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(2 * time.Minute)
	return &Client{client: c, key: key}
}

// uploadResponse mirrors the host's envelope: a success flag plus either
// the hosted URL or an error message.
type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload posts a base64-encoded image as a multipart form and returns the
// hosted URL.
func (c *Client) Upload(ctx context.Context, imageBase64, name string) (string, error) {
	if imageBase64 == "" {
		return "", fmt.Errorf("empty image payload")
	}
	if c.key == "" {
		return "", fmt.Errorf("photo host API key not configured")
	}
	if name == "" {
		name = fmt.Sprintf("point_%d", time.Now().UnixMilli())
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.key).
		SetMultipartFormData(map[string]string{
			"image": imageBase64,
			"name":  name,
		}).
		Post("/1/upload")
	if err != nil {
		return "", fmt.Errorf("photo upload request: %w", err)
	}

	var ur uploadResponse
	if err := json.Unmarshal(resp.Body(), &ur); err != nil {
		return "", fmt.Errorf("photo upload: decode response (status %d): %w", resp.StatusCode(), err)
	}
	if resp.StatusCode() != http.StatusOK || !ur.Success {
		msg := ur.Error.Message
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode())
		}
		return "", fmt.Errorf("photo upload failed: %s", msg)
	}
	if ur.Data.URL == "" {
		return "", fmt.Errorf("photo upload failed: host returned no URL")
	}
	return ur.Data.URL, nil
}

// IsRemoteURL reports whether a photo reference is already hosted and
// needs no upload.
func IsRemoteURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
