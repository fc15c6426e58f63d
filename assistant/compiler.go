package assistant

import (
	"fmt"
	"strings"
)

// forbiddenPhrases は禁止事項トークン→日本語表現の固定変換表。
// 未知トークンはそのまま通す。
var forbiddenPhrases = map[string]string{
	"aggressive_claims":        "攻撃的な主張",
	"strong_calls_to_action":   "強い行動喚起",
	"storytelling":             "過度なストーリーテリング",
	"vague_phrases":            "曖昧な表現",
	"motivational_language":    "動機づけ的表現",
	"detailed_explanations":    "詳細すぎる説明",
	"conclusions_with_answers": "完全に答えを出す結論",
}

// Compiler は実行用プロンプトの組み立て専用。
//
// 【最重要原則】
// - 本文を生成してはならない
// - モデルを呼び出してはならない
// - 同じ入力からは常にバイト単位で同じ出力を返すこと
type Compiler struct {
	rules *RuleStore
}

func NewCompiler(rules *RuleStore) *Compiler {
	return &Compiler{rules: rules}
}

// Compile は (媒体, テーマ, 意図タイプ, 構成) から実行用プロンプトを組み立てる。
// 失敗するのは未知媒体のときのみ。構成・意図の欠落は呼び出し側の契約違反。
func (c *Compiler) Compile(m Medium, theme, intentKey string, structure []string) (string, error) {
	if _, err := c.rules.GetRules(m); err != nil {
		return "", err
	}

	var sb strings.Builder

	// ヘッダー
	sb.WriteString(fmt.Sprintf("以下の条件で、%s向けの記事本文を書いてください。\n\n", c.rules.DisplayName(m)))

	// テーマ（原文のまま）
	sb.WriteString("【テーマ】\n")
	sb.WriteString(theme)
	sb.WriteString("\n\n")

	// 書き手の立場（グローバル制約）
	sb.WriteString("【書き手の立場】\n")
	sb.WriteString(fmt.Sprintf("・%s\n", c.rules.WriterRole()))
	sb.WriteString("・AIを売る立場ではない\n")
	sb.WriteString("・業務効率化の体験を淡々と共有する\n\n")

	// トーン（媒体別）
	writeToneSection(&sb, c.rules.ToneSettings(m))

	// 構成
	sb.WriteString("【構成】\n")
	for i, section := range structure {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, section))
	}
	sb.WriteString("\n")

	// 禁止事項（グローバル + 媒体別）
	sb.WriteString("【禁止事項】\n")
	sb.WriteString("・収益化の話\n")
	sb.WriteString("・AIを主役にする表現\n")
	sb.WriteString("・「誰でも」「簡単に」などの煽り\n")
	for _, token := range c.rules.ForbiddenItems(m) {
		phrase, ok := forbiddenPhrases[token]
		if !ok {
			phrase = token
		}
		sb.WriteString(fmt.Sprintf("・%s\n", phrase))
	}
	sb.WriteString("\n")

	// 品質基準
	sb.WriteString("【品質基準】\n")
	sb.WriteString("・実務でそのまま使える内容\n")
	sb.WriteString("・書き手の声が残っている\n")
	sb.WriteString("・読後に「売られた感」がない\n\n")

	// 実行指示
	sb.WriteString("上記を守って、自然な日本語で本文を書いてください。\n")

	return sb.String(), nil
}

// writeToneSection は語調設定を固定の対応表で文言化する。
func writeToneSection(sb *strings.Builder, tone ToneSettings) {
	sb.WriteString("【トーン】\n")

	// 一人称。forbidden のときは行を出さない。
	switch tone.FirstPerson {
	case "allowed":
		sb.WriteString("・一人称使用OK\n")
	case "optional":
		sb.WriteString("・一人称は任意（使いすぎない）\n")
	}

	// 断定性
	switch tone.Assertiveness {
	case "low":
		sb.WriteString("・柔らかいが誇張しない\n")
		sb.WriteString("・断定を避け、余白を残す\n")
	case "high":
		sb.WriteString("・断定的\n")
		sb.WriteString("・簡潔に結論を示す\n")
	default:
		sb.WriteString("・適度な断定性\n")
	}

	// 感情表現。allowed のときは行を出さない。
	switch tone.EmotionalWords {
	case "forbidden":
		sb.WriteString("・感情表現は禁止\n")
	case "limited":
		sb.WriteString("・感情表現は控えめに\n")
	}

	sb.WriteString("\n")
}
