// Package chat is the client for the hosted generative-text assistant.
// It walks a fixed model fallback chain before surfacing a final error,
// matching the behaviour end users saw in the mobile app.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/grest/greenspace-server/internal/model"
)

// DefaultModels is the fallback chain: the current fast model first, the
// classic model as the backup.
var DefaultModels = []string{"gemini-1.5-flash-latest", "gemini-pro"}

type Client struct {
	client *resty.Client
	key    string
	models []string
	log    zerolog.Logger
}

// New creates a chat client. models may be nil to use DefaultModels.
func New(baseURL, key string, models []string, log zerolog.Logger) *Client {
	if len(models) == 0 {
		models = DefaultModels
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(60 * time.Second)
	return &Client{client: c, key: key, models: models, log: log}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Send posts a plain-text message and returns the assistant's plain-text
// reply. Each model in the chain is tried once; only the last failure is
// surfaced.
func (c *Client) Send(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: message must not be empty", model.ErrValidation)
	}
	if c.key == "" {
		return "", fmt.Errorf("chat API key not configured")
	}

	req := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: message}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			TopP:            0.8,
			TopK:            40,
			MaxOutputTokens: 1000,
		},
	}

	var lastErr error
	for _, m := range c.models {
		reply, err := c.generate(ctx, m, &req)
		if err == nil {
			return reply, nil
		}
		c.log.Warn().Str("model", m).Err(err).Msg("chat model failed, trying next")
		lastErr = err
	}
	return "", classify(lastErr)
}

func (c *Client) generate(ctx context.Context, modelName string, req *generateRequest) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.key).
		SetBody(req).
		Post("/v1beta/models/" + modelName + ":generateContent")
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}

	var gr generateResponse
	if err := json.Unmarshal(resp.Body(), &gr); err != nil {
		return "", fmt.Errorf("decode response (status %d): %w", resp.StatusCode(), err)
	}
	if resp.StatusCode() != http.StatusOK {
		msg := gr.Error.Message
		if msg == "" {
			msg = resp.Status()
		}
		return "", fmt.Errorf("status %d: %s", resp.StatusCode(), msg)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model %s", modelName)
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

// classify maps a raw API failure onto the specific user-facing message
// for that failure class.
func classify(err error) error {
	if err == nil {
		return fmt.Errorf("chat assistant unavailable")
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key not valid"):
		return fmt.Errorf("chat API key is not valid, check the configured key")
	case strings.Contains(msg, "was not found"), strings.Contains(msg, "status 404"):
		return fmt.Errorf("no configured chat model is available: %s", msg)
	case strings.Contains(strings.ToLower(msg), "permission"):
		return fmt.Errorf("chat API permission denied: %s", msg)
	default:
		return fmt.Errorf("chat assistant failed after trying all models: %s", msg)
	}
}
