// Package narrative turns race analyses into publishable prose.
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/yourusername/turf-advisor/internal/httpclient"
	"github.com/yourusername/turf-advisor/internal/models"
)

// Completer is the external text-generation collaborator. Best-effort:
// callers must tolerate errors and fall back.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// chat-completions request/response shapes, kept to the fields used.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// CompletionClient implements Completer against an OpenAI-compatible
// chat completions endpoint.
type CompletionClient struct {
	httpClient *httpclient.Client
	apiURL     string
	apiKey     string
	model      string
	timeout    time.Duration
}

// NewCompletionClient creates a new completion client
func NewCompletionClient(httpClient *httpclient.Client, apiURL, apiKey, model string, timeout time.Duration) *CompletionClient {
	return &CompletionClient{
		httpClient: httpClient,
		apiURL:     apiURL,
		apiKey:     apiKey,
		model:      model,
		timeout:    timeout,
	}
}

// Complete sends the prompts and returns the generated text. An empty
// completion is reported as ErrEmptyCompletion.
func (c *CompletionClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.7,
		MaxTokens:   600,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion API returned status %d", resp.StatusCode)
	}

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	if len(payload.Choices) == 0 {
		return "", models.ErrEmptyCompletion
	}
	text := strings.TrimSpace(payload.Choices[0].Message.Content)
	if text == "" {
		return "", models.ErrEmptyCompletion
	}

	return text, nil
}
