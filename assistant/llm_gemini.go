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

// GeminiBackend は Google Gemini generateContent API の実装。
type GeminiBackend struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewGeminiBackend(settings BackendSettings) (*GeminiBackend, error) {
	if settings.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY が設定されていません")
	}
	return &GeminiBackend{
		apiKey: settings.APIKey,
		model:  settings.Model,
		httpClient: &http.Client{
			Timeout: settings.timeoutOrDefault(),
		},
	}, nil
}

func (g *GeminiBackend) ProviderName() string { return "Gemini" }

type geminiRequest struct {
	Contents []struct {
		Parts []geminiPart `json:"parts"`
	} `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiBackend) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var payload geminiRequest
	payload.Contents = append(payload.Contents, struct {
		Parts []geminiPart `json:"parts"`
	}{Parts: []geminiPart{{Text: systemPrompt}, {Text: userPrompt}}})
	payload.GenerationConfig = geminiGenConfig{
		Temperature:     0.7,
		TopP:            0.9,
		MaxOutputTokens: 2048,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", &BackendUnavailableError{Provider: g.ProviderName(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return "", &BackendUnavailableError{
			Provider: g.ProviderName(),
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	var data geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", &UpstreamProtocolError{Provider: g.ProviderName(), Msg: err.Error()}
	}
	if len(data.Candidates) == 0 || len(data.Candidates[0].Content.Parts) == 0 {
		return "", &UpstreamProtocolError{Provider: g.ProviderName(), Msg: "candidates が空です"}
	}
	return data.Candidates[0].Content.Parts[0].Text, nil
}
