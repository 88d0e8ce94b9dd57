package reasoning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Provider is one prompt-in/text-out reasoning backend. Implementations must
// return an error for any call failure so the adapter can advance its model
// fallback chain; a syntactically odd but delivered response is not an error.
type Provider interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// CallError carries the provider status for failure classification. Its
// message stops at the adapter's logs; callers only ever see the classified,
// user-safe text.
type CallError struct {
	StatusCode int
	Message    string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("reasoning provider: status %d: %s", e.StatusCode, e.Message)
}

// Client speaks the OpenAI-compatible chat-completions shape, which covers
// OpenRouter-style multi-model endpoints with a single implementation.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a reasoning provider client with a bounded per-call
// timeout.
func NewClient(apiKey, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends one prompt to one model and returns its raw text response.
func (c *Client) Complete(ctx context.Context, model, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("reasoning request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &CallError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", &CallError{StatusCode: resp.StatusCode, Message: "response contained no choices"}
	}

	return parsed.Choices[0].Message.Content, nil
}
