package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// structureHeadings は構成トークン→見出しの固定変換表。
// 未知トークンはそのまま通す。
var structureHeadings = map[string]string{
	// note
	"experience":  "AIを使っていて感じていた違和感",
	"realization": "設定を見直すきっかけと気づき",
	"reasoning":   "実際に変えたこと・今思うこと",

	// zenn
	"problem":        "課題",
	"approach":       "解決アプローチ",
	"implementation": "設計・実装のポイント",
	"result":         "結果・業務への影響",

	// x
	"hook":        "問題提起",
	"insight":     "気づき・視点",
	"implication": "余韻・問いかけ",
}

const (
	minStructureLen = 2
	maxStructureLen = 7
)

// Resolver は構成案を決める。バックエンドが設定されていれば提案を試し、
// どんな失敗でも黙って静的構成へフォールバックする。エラーは外に出さない。
type Resolver struct {
	rules   *RuleStore
	catalog *Catalog
	backend Backend
	timeout time.Duration
	log     *zap.SugaredLogger
}

// NewResolver を作る。backend は nil 可（常に静的構成）。
func NewResolver(rules *RuleStore, catalog *Catalog, backend Backend, timeout time.Duration, log *zap.SugaredLogger) *Resolver {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Resolver{rules: rules, catalog: catalog, backend: backend, timeout: timeout, log: log}
}

// Resolve は 2〜7 件の見出し列を必ず返す。
func (r *Resolver) Resolve(ctx context.Context, m Medium, intentKey, theme string) []string {
	if r.backend != nil {
		headings, err := r.suggest(ctx, m, intentKey, theme)
		if err == nil {
			return headings
		}
		if r.log != nil {
			r.log.Warnw("構成提案に失敗、静的構成へフォールバック",
				"provider", r.backend.ProviderName(), "media", string(m), "error", err)
		}
	}
	return r.Static(m)
}

// Static は媒体の静的構成順序を見出しへ変換して返す。
func (r *Resolver) Static(m Medium) []string {
	order := r.rules.StructureOrder(m)
	headings := make([]string, 0, len(order))
	for _, token := range order {
		headings = append(headings, translateStructureToken(token))
	}
	return headings
}

// translateStructureToken は未知トークンをそのまま通す。
func translateStructureToken(token string) string {
	if heading, ok := structureHeadings[token]; ok {
		return heading
	}
	return token
}

func (r *Resolver) suggest(ctx context.Context, m Medium, intentKey, theme string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	details := r.catalog.Details(intentKey)
	system := "あなたは記事構成の提案だけを行うアシスタントです。" +
		"本文は書かず、セクション見出しのみを JSON の文字列配列（2〜7件）で返してください。" +
		"JSON 配列以外のテキストを出力してはいけません。"
	user := fmt.Sprintf("媒体: %s\n方向性: %s\nテーマ: %s\nこの記事のセクション見出し案を出してください。",
		r.rules.DisplayName(m), details.Label, theme)

	raw, err := r.backend.Generate(ctx, system, user)
	if err != nil {
		return nil, err
	}
	return parseHeadings(r.backend.ProviderName(), raw)
}

// parseHeadings はモデル出力から JSON 配列を取り出して検証する。
// 応答全体が配列ならそのまま、前置き付きなら配列部分だけを拾う。
// 配列以外の正しい JSON（オブジェクト等）は形式不正として扱う。
func parseHeadings(provider, raw string) ([]string, error) {
	trimmed := strings.TrimSpace(raw)
	candidate := trimmed
	if gjson.Valid(trimmed) {
		if !gjson.Parse(trimmed).IsArray() {
			return nil, &UpstreamProtocolError{Provider: provider, Msg: "JSON 配列ではありません"}
		}
	} else {
		start := strings.Index(trimmed, "[")
		end := strings.LastIndex(trimmed, "]")
		if start < 0 || end <= start {
			return nil, &UpstreamProtocolError{Provider: provider, Msg: "JSON 配列が見つかりません"}
		}
		candidate = trimmed[start : end+1]
	}
	parsed := gjson.Parse(candidate)
	if !parsed.IsArray() {
		return nil, &UpstreamProtocolError{Provider: provider, Msg: "JSON 配列として解釈できません"}
	}
	elements := parsed.Array()
	if len(elements) < minStructureLen || len(elements) > maxStructureLen {
		return nil, &UpstreamProtocolError{Provider: provider, Msg: fmt.Sprintf("見出し数が範囲外です: %d", len(elements))}
	}
	headings := make([]string, 0, len(elements))
	for _, el := range elements {
		if el.Type != gjson.String {
			continue
		}
		heading := strings.TrimSpace(el.String())
		if heading == "" {
			continue
		}
		headings = append(headings, heading)
	}
	if len(headings) < minStructureLen {
		return nil, &UpstreamProtocolError{Provider: provider, Msg: "有効な見出しが不足しています"}
	}
	return headings, nil
}
