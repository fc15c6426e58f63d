package assistant

import (
	"context"
	"time"
)

// Backend は構成の提案にだけ使う生成バックエンドの抽象。
// 実行用プロンプト本体の組み立てには決して使わない。
type Backend interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	ProviderName() string
}

// BackendSettings は各実装へ渡す共通設定。
type BackendSettings struct {
	Model   string
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

func (s BackendSettings) timeoutOrDefault() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return 30 * time.Second
}
