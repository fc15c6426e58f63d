package assistant

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIBackend は公式 openai-go SDK（chat completions）による実装。
type OpenAIBackend struct {
	model string
	opts  []option.RequestOption
}

func NewOpenAIBackend(settings BackendSettings) (*OpenAIBackend, error) {
	if settings.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY が設定されていません")
	}
	if settings.Model == "" {
		return nil, errors.New("openai のモデル名が必要です")
	}
	opts := []option.RequestOption{option.WithAPIKey(settings.APIKey)}
	if settings.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(settings.BaseURL))
	}
	return &OpenAIBackend{model: settings.Model, opts: opts}, nil
}

func (o *OpenAIBackend) ProviderName() string { return "OpenAI" }

func (o *OpenAIBackend) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	client := openai.NewClient(o.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return "", &BackendUnavailableError{Provider: o.ProviderName(), Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &UpstreamProtocolError{Provider: o.ProviderName(), Msg: "choices が空です"}
	}
	return resp.Choices[0].Message.Content, nil
}
