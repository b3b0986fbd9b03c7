package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	applog "github.com/janisto/skinai/internal/platform/logging"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	DefaultAnthropicModel   = "claude-sonnet-4-20250514"
	anthropicVersion        = "2023-06-01"
	maxErrorBodyBytes       = 64 << 10
)

// Anthropic implements Model using the Anthropic Messages API.
type Anthropic struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// AnthropicOption configures an Anthropic model.
type AnthropicOption func(*Anthropic)

// WithAnthropicBaseURL sets a custom base URL (useful for testing).
func WithAnthropicBaseURL(url string) AnthropicOption {
	return func(a *Anthropic) {
		if url != "" {
			a.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithAnthropicAPIKey sets the x-api-key credential.
func WithAnthropicAPIKey(key string) AnthropicOption {
	return func(a *Anthropic) {
		a.apiKey = key
	}
}

// WithAnthropicModel overrides the default model identifier.
func WithAnthropicModel(model string) AnthropicOption {
	return func(a *Anthropic) {
		if model != "" {
			a.model = model
		}
	}
}

// NewAnthropic creates an Anthropic model client.
func NewAnthropic(httpClient *http.Client, opts ...AnthropicOption) *Anthropic {
	a := &Anthropic{
		httpClient: httpClient,
		baseURL:    defaultAnthropicBaseURL,
		model:      DefaultAnthropicModel,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Anthropic Messages API wire types (snake_case JSON tags matching the API).

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string           `json:"role"`
	Content []anthropicBlock `json:"content"`
}

type anthropicBlock struct {
	Type   string           `json:"type"`
	Text   string           `json:"text,omitempty"`
	Source *anthropicSource `json:"source,omitempty"`
}

type anthropicSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicResponse struct {
	Content    []anthropicBlock `json:"content"`
	StopReason string           `json:"stop_reason"`
}

type anthropicErrorBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (a *Anthropic) Name() string { return "anthropic/" + a.model }

// HasCredential reports whether an API key is configured.
func (a *Anthropic) HasCredential() bool { return a.apiKey != "" }

func (a *Anthropic) Generate(ctx context.Context, img Image, prompt string) (string, error) {
	payload := anthropicRequest{
		Model:       a.model,
		MaxTokens:   MaxOutputTokens,
		Temperature: Temperature,
		Messages: []anthropicMessage{{
			Role: "user",
			Content: []anthropicBlock{
				{Type: "image", Source: &anthropicSource{Type: "base64", MediaType: img.MediaType, Data: img.Base64}},
				{Type: "text", Text: prompt},
			},
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding anthropic request: %w", err)
	}

	resp, err := a.doRequest(ctx, body)
	if err != nil {
		return "", UpstreamError(0, "API request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", upstreamErrorFromResponse(ctx, resp)
	}

	var decoded anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", ResponseShapeError("no text response from model", fmt.Errorf("decoding anthropic response: %w", err))
	}
	for _, block := range decoded.Content {
		if block.Type == "text" {
			if decoded.StopReason == "max_tokens" {
				applog.LogWarn(ctx, "anthropic response truncated", zap.String("model", a.model))
			}
			return block.Text, nil
		}
	}
	return "", ResponseShapeError("no text response from model", nil)
}

func (a *Anthropic) doRequest(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	return a.httpClient.Do(req)
}

func upstreamErrorFromResponse(ctx context.Context, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	msg := "API request failed"
	var body anthropicErrorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		msg = body.Error.Message
	}
	applog.LogWarn(ctx, "anthropic api error",
		zap.Int("status", resp.StatusCode),
		zap.String("error_type", body.Error.Type),
		zap.String("request_id", resp.Header.Get("request-id")),
	)
	return UpstreamError(resp.StatusCode, msg, errors.New(http.StatusText(resp.StatusCode)))
}

var _ Model = (*Anthropic)(nil)
