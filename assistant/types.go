package assistant

import "time"

// Medium は投稿先媒体。note / Zenn / X の三種のみ。
type Medium string

const (
	MediumNote Medium = "note"
	MediumZenn Medium = "zenn"
	MediumX    Medium = "x"
)

// ParseMedium は入力文字列を Medium に正規化する。
func ParseMedium(s string) (Medium, bool) {
	switch Medium(s) {
	case MediumNote, MediumZenn, MediumX:
		return Medium(s), true
	}
	return "", false
}

// AvailableMedia は対応媒体の一覧（表示順固定）。
func AvailableMedia() []Medium {
	return []Medium{MediumNote, MediumZenn, MediumX}
}

// ToneSettings は媒体別の語調設定。
type ToneSettings struct {
	FirstPerson    string `yaml:"first_person"`   // allowed / optional / forbidden
	Assertiveness  string `yaml:"assertiveness"`  // low / medium / high
	EmotionalWords string `yaml:"emotional_words"` // forbidden / limited / allowed
}

// MediumRuleSet は媒体ひとつ分の静的ルール。ロード後は不変。
type MediumRuleSet struct {
	DisplayName      string       `yaml:"display_name"`
	Tone             ToneSettings `yaml:"tone"`
	StructureOrder   []string     `yaml:"-"`
	Forbidden        []string     `yaml:"forbid"`
	ReaderAssumption string       `yaml:"reader_assumption"`
}

// IntentOption は三択の方向性ひとつ分。カタログデータでありユーザーデータではない。
type IntentOption struct {
	Type         string `yaml:"type"`
	Label        string `yaml:"label"`
	Description  string `yaml:"description"`
	ToneModifier string `yaml:"tone_modifier"`
}

// Phase はセッションの進行段階。Empty は「セッション未作成」で表現する。
type Phase int

const (
	PhaseThemeSet Phase = iota + 1
	PhaseStructureProposed
	PhaseFinalized
)

// Session はユーザー一回分の対話サイクル。単一ライター前提で排他は持たない。
type Session struct {
	ID               string
	Theme            string
	Medium           Medium
	IntentKey        string
	Structure        []string
	ExecutablePrompt string
	Phase            Phase
	CreatedAt        time.Time
	GeneratedAt      time.Time
}
