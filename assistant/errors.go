package assistant

import "fmt"

// ValidationError はユーザー入力の不備。メッセージはそのまま呼び出し側へ返せる。
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// SessionStateError は手順を飛ばした操作（セッション未作成・構成未提案など）。
type SessionStateError struct {
	Msg string
}

func (e *SessionStateError) Error() string { return e.Msg }

// UnknownMediumError は note/zenn/x 以外の媒体が渡されたとき。
type UnknownMediumError struct {
	Medium string
}

func (e *UnknownMediumError) Error() string {
	return fmt.Sprintf("未知の媒体: %s", e.Medium)
}

// UnknownIntentError はカタログ整合性エラー。通常の入力検証では ValidationError を使う。
type UnknownIntentError struct {
	Key string
}

func (e *UnknownIntentError) Error() string {
	return fmt.Sprintf("未知の意図タイプ: %s", e.Key)
}

// BackendUnavailableError は生成バックエンドへの到達失敗。
// 構成提案経路の中に閉じ込め、呼び出し側には出さない。
type BackendUnavailableError struct {
	Provider string
	Err      error
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("%s に接続できません: %v", e.Provider, e.Err)
}

func (e *BackendUnavailableError) Unwrap() error { return e.Err }

// UpstreamProtocolError はバックエンド応答の形式不正。扱いは BackendUnavailableError と同じ。
type UpstreamProtocolError struct {
	Provider string
	Msg      string
}

func (e *UpstreamProtocolError) Error() string {
	return fmt.Sprintf("%s レスポンスが不正です: %s", e.Provider, e.Msg)
}
