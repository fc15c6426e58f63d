package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OllamaBackend はローカル Ollama の実装。API キー不要。
type OllamaBackend struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewOllamaBackend(settings BackendSettings) *OllamaBackend {
	baseURL := settings.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &OllamaBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   settings.Model,
		httpClient: &http.Client{
			Timeout: settings.timeoutOrDefault(),
		},
	}
}

func (o *OllamaBackend) ProviderName() string { return "Ollama" }

// Available は Ollama が起動しているかを短いタイムアウトで確認する。
func (o *OllamaBackend) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", o.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func (o *OllamaBackend) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body, err := json.Marshal(ollamaRequest{
		Model:   o.model,
		Prompt:  systemPrompt + "\n\n" + userPrompt,
		Stream:  false,
		Options: ollamaOptions{Temperature: 0.7, TopP: 0.9},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", &BackendUnavailableError{Provider: o.ProviderName(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", &BackendUnavailableError{
			Provider: o.ProviderName(),
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	var data ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", &UpstreamProtocolError{Provider: o.ProviderName(), Msg: err.Error()}
	}
	if data.Response == "" {
		return "", &UpstreamProtocolError{Provider: o.ProviderName(), Msg: "response が空です"}
	}
	return data.Response, nil
}
