package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// confirmationMessage は構成確認の固定文言。
const confirmationMessage = "この構成で進めて良いですか？"

// IntakeResult はテーマ受付の結果。三択と固定の提示文言を返す。
type IntakeResult struct {
	SessionID       string
	Options         map[string]IntentOption
	SelectionPrompt string
	DetectedIntent  map[string]string
}

// StructureResult は構成提案の結果。確認が取れるまで確定しない。
type StructureResult struct {
	Structure           []string
	Medium              Medium
	Theme               string
	ConfirmationMessage string
}

// PromptResult は確定後の実行用プロンプトと、確定時点のセッション内容。
type PromptResult struct {
	ExecutablePrompt string
	Medium           Medium
	Theme            string
	Structure        []string
	IntentKey        string
}

// Workflow は段階遷移を司る。
// Empty → ThemeSet → StructureProposed → Finalized の順にしか進めない。
type Workflow struct {
	rules    *RuleStore
	catalog  *Catalog
	resolver *Resolver
	compiler *Compiler
	repo     SessionRepo
	log      *zap.SugaredLogger
}

func NewWorkflow(rules *RuleStore, catalog *Catalog, resolver *Resolver, compiler *Compiler, repo SessionRepo, log *zap.SugaredLogger) *Workflow {
	return &Workflow{
		rules:    rules,
		catalog:  catalog,
		resolver: resolver,
		compiler: compiler,
		repo:     repo,
		log:      log,
	}
}

// SubmitTheme はテーマと媒体を受け付けてセッションを開始し、三択を返す。
// sessionID が空なら新規採番する。既存IDなら同じIDでセッションを作り直す。
func (w *Workflow) SubmitTheme(sessionID, theme, media string) (*IntakeResult, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return nil, &ValidationError{Msg: "テーマを入力してください"}
	}
	m, ok := ParseMedium(strings.ToLower(strings.TrimSpace(media)))
	if !ok {
		return nil, &ValidationError{Msg: "媒体は note, zenn, x のいずれかを指定してください"}
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	sess := &Session{
		ID:        sessionID,
		Theme:     theme,
		Medium:    m,
		Phase:     PhaseThemeSet,
		CreatedAt: time.Now(),
	}
	w.repo.Put(sess)

	// 内部検出はログ・診断用。選択肢には反映しない。
	detected := w.catalog.DetectIntent(theme, m)
	if w.log != nil {
		w.log.Debugw("テーマ受付", "session", sessionID, "media", string(m), "detected", detected)
	}

	return &IntakeResult{
		SessionID:       sessionID,
		Options:         w.catalog.Options(m),
		SelectionPrompt: w.catalog.SelectionPrompt(),
		DetectedIntent:  detected,
	}, nil
}

// SelectIntent は意図タイプを受けて構成案を提案する。確定はしない。
// StructureProposed 以降での再実行は許容し、構成を上書きする。
func (w *Workflow) SelectIntent(ctx context.Context, sessionID, intentKey string) (*StructureResult, error) {
	sess, ok := w.repo.Get(sessionID)
	if !ok {
		return nil, &SessionStateError{Msg: "セッションが存在しません。最初から操作をやり直してください"}
	}
	intentKey = strings.TrimSpace(intentKey)
	if !w.catalog.ValidateChoice(intentKey) {
		return nil, &ValidationError{Msg: "無効な意図タイプです"}
	}

	structure := w.resolver.Resolve(ctx, sess.Medium, intentKey, sess.Theme)
	sess.IntentKey = intentKey
	sess.Structure = structure
	sess.Phase = PhaseStructureProposed
	w.repo.Put(sess)

	return &StructureResult{
		Structure:           structure,
		Medium:              sess.Medium,
		Theme:               sess.Theme,
		ConfirmationMessage: confirmationMessage,
	}, nil
}

// Proposed は同じ意図タイプで構成が提案済みかを返す。
// 確定時にここが真なら、提案を解決し直さずそのまま確定できる。
func (w *Workflow) Proposed(sessionID, intentKey string) bool {
	sess, ok := w.repo.Get(sessionID)
	return ok && sess.Phase >= PhaseStructureProposed && sess.IntentKey == strings.TrimSpace(intentKey)
}

// ConfirmStructure は提案済みの構成で実行用プロンプトを確定する。
func (w *Workflow) ConfirmStructure(sessionID string) (*PromptResult, error) {
	sess, ok := w.repo.Get(sessionID)
	if !ok {
		return nil, &SessionStateError{Msg: "セッションが存在しません。最初から操作をやり直してください"}
	}
	if sess.Phase < PhaseStructureProposed {
		return nil, &SessionStateError{Msg: "構成が未提案です。先に意図タイプを選択してください"}
	}

	prompt, err := w.compiler.Compile(sess.Medium, sess.Theme, sess.IntentKey, sess.Structure)
	if err != nil {
		return nil, err
	}
	sess.ExecutablePrompt = prompt
	sess.GeneratedAt = time.Now()
	sess.Phase = PhaseFinalized
	w.repo.Put(sess)

	return &PromptResult{
		ExecutablePrompt: prompt,
		Medium:           sess.Medium,
		Theme:            sess.Theme,
		Structure:        sess.Structure,
		IntentKey:        sess.IntentKey,
	}, nil
}

// Reset はセッションを破棄する。どの段階からでも可。
func (w *Workflow) Reset(sessionID string) {
	w.repo.Delete(sessionID)
}

// Finalized は確定済みセッションを返す。プレビュー表示用。
func (w *Workflow) Finalized(sessionID string) (*Session, bool) {
	sess, ok := w.repo.Get(sessionID)
	if !ok || sess.Phase != PhaseFinalized {
		return nil, false
	}
	return sess, true
}
