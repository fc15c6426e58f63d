package assistant

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// retryBackend はリトライ付きの Backend デコレーター。
// 指数バックオフ（base, 2*base, 4*base, ...）で待ち、context の期限を尊重する。
type retryBackend struct {
	inner      Backend
	maxRetries int
	baseDelay  time.Duration
	log        *zap.SugaredLogger
}

// WithRetry は backend をリトライ付きで包む。maxRetries は総試行回数。
func WithRetry(backend Backend, maxRetries int, baseDelay time.Duration, log *zap.SugaredLogger) Backend {
	if maxRetries < 1 {
		maxRetries = 1
	}
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	return &retryBackend{inner: backend, maxRetries: maxRetries, baseDelay: baseDelay, log: log}
}

func (r *retryBackend) ProviderName() string { return r.inner.ProviderName() }

func (r *retryBackend) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var lastErr error
	delay := r.baseDelay

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		out, err := r.inner.Generate(ctx, systemPrompt, userPrompt)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if attempt == r.maxRetries-1 {
			break
		}
		if r.log != nil {
			r.log.Warnw("バックエンド呼び出しに失敗、リトライします",
				"provider", r.inner.ProviderName(), "attempt", attempt+1, "error", err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", &BackendUnavailableError{Provider: r.inner.ProviderName(), Err: ctx.Err()}
		case <-timer.C:
		}
		delay *= 2
	}
	return "", lastErr
}
