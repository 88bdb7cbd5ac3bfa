// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package answer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pdiddy/paper-agent/pkg/types"
)

// OllamaClient calls the Ollama generate endpoint.
type OllamaClient struct {
	http *resty.Client
}

// NewOllamaClient creates a resty-backed client for the server at baseURL.
// A zero timeout waits indefinitely.
func NewOllamaClient(baseURL string, timeout time.Duration) *OllamaClient {
	return &OllamaClient{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetHeader("Content-Type", "application/json").
			SetTimeout(timeout),
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// Generate sends prompt to model and returns the full response text.
func (c *OllamaClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	var out generateResponse
	var apiErr generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(generateRequest{Model: model, Prompt: prompt, Stream: false}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/api/generate")
	if err != nil {
		return "", fmt.Errorf("%w: calling ollama: %v", types.ErrModel, err)
	}

	if resp.IsError() {
		msg := apiErr.Error
		if msg == "" {
			msg = strings.TrimSpace(resp.String())
		}
		return "", fmt.Errorf("%w: ollama returned %d: %s", types.ErrModel, resp.StatusCode(), msg)
	}
	if out.Error != "" {
		return "", fmt.Errorf("%w: ollama: %s", types.ErrModel, out.Error)
	}
	return out.Response, nil
}
