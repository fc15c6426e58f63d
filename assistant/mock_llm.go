package assistant

import "context"

// MockBackend は外部モデルを呼ばない占位実装。ローカル動作確認とテスト用。
type MockBackend struct {
	Response string
	Err      error
	Calls    int
}

// NewMockBackend は妥当な見出し配列を返すモックを作る。
func NewMockBackend() *MockBackend {
	return &MockBackend{
		Response: `["最初に困っていたこと", "試したことと変えた点", "いま運用して思うこと"]`,
	}
}

func (m *MockBackend) ProviderName() string { return "Mock" }

func (m *MockBackend) Generate(_ context.Context, _, _ string) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
