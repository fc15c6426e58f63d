package assistant

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"promptman/config"
)

// NewBackend は設定されたプロバイダーの Backend を作り、リトライ付きで返す。
// provider が "none" / 空なら nil（構成提案は常に静的フォールバック）。
// 選択されたプロバイダーの資格情報不足は起動時エラーにする。
func NewBackend(cfg config.Config, log *zap.SugaredLogger) (Backend, error) {
	backend, err := newRawBackend(cfg, log)
	if err != nil {
		return nil, err
	}
	if backend == nil {
		return nil, nil
	}
	return WithRetry(backend, cfg.MaxRetries, time.Second, log), nil
}

func newRawBackend(cfg config.Config, log *zap.SugaredLogger) (Backend, error) {
	switch cfg.Provider {
	case "", "none":
		return nil, nil

	case "gemini":
		return NewGeminiBackend(BackendSettings{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			Timeout: cfg.Timeout,
		})

	case "claude":
		return NewClaudeBackend(BackendSettings{
			APIKey:  cfg.ClaudeAPIKey,
			Model:   cfg.ClaudeModel,
			Timeout: cfg.Timeout,
		})

	case "openai":
		return NewOpenAIBackend(BackendSettings{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.Timeout,
		})

	case "ollama":
		ollama := NewOllamaBackend(BackendSettings{
			BaseURL: cfg.OllamaBaseURL,
			Model:   cfg.OllamaModel,
			Timeout: cfg.Timeout,
		})
		// Ollama が起動していなければ Gemini に切り替える（元運用の挙動）。
		if !ollama.Available(context.Background()) {
			if log != nil {
				log.Warnw("Ollama が利用できません。Gemini にフォールバックします", "base_url", cfg.OllamaBaseURL)
			}
			return NewGeminiBackend(BackendSettings{
				APIKey:  cfg.GeminiAPIKey,
				Model:   cfg.GeminiModel,
				Timeout: cfg.Timeout,
			})
		}
		return ollama, nil

	default:
		return nil, fmt.Errorf("未知のLLMプロバイダー: %s", cfg.Provider)
	}
}
