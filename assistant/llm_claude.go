package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const claudeMessagesURL = "https://api.anthropic.com/v1/messages"

// ClaudeBackend は Anthropic Messages API の実装。
type ClaudeBackend struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClaudeBackend(settings BackendSettings) (*ClaudeBackend, error) {
	if settings.APIKey == "" {
		return nil, errors.New("CLAUDE_API_KEY が設定されていません")
	}
	return &ClaudeBackend{
		apiKey: settings.APIKey,
		model:  settings.Model,
		httpClient: &http.Client{
			Timeout: settings.timeoutOrDefault(),
		},
	}, nil
}

func (c *ClaudeBackend) ProviderName() string { return "Claude" }

type claudeRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	System      string          `json:"system"`
	Messages    []claudeMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (c *ClaudeBackend) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body, err := json.Marshal(claudeRequest{
		Model:       c.model,
		MaxTokens:   2048,
		System:      systemPrompt,
		Messages:    []claudeMessage{{Role: "user", Content: userPrompt}},
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", claudeMessagesURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &BackendUnavailableError{Provider: c.ProviderName(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return "", &BackendUnavailableError{
			Provider: c.ProviderName(),
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	var data claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", &UpstreamProtocolError{Provider: c.ProviderName(), Msg: err.Error()}
	}
	if len(data.Content) == 0 || data.Content[0].Text == "" {
		return "", &UpstreamProtocolError{Provider: c.ProviderName(), Msg: "content が空です"}
	}
	return data.Content[0].Text, nil
}
