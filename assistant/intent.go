package assistant

import (
	_ "embed"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/intent_types.yaml
var intentTypesData []byte

// selectionPrompt は三択提示の固定文言。
const selectionPrompt = "このテーマは、次のどれで進めるのが適切そうです。\nどれを採用しますか？"

// defaultIntentKey は未知キーの解決先（体験共有）。
// 歴史的な仕様であり、黙ってエラーに変えないこと。
const defaultIntentKey = "1"

// Catalog は媒体ごとの三択カタログ。
//
// 【最重要原則】
// - 本文を生成してはならない
// - どの選択肢が「正解」かを匂わせてはならない
// - 内部の検出結果を選択肢の並びや文言に反映してはならない
type Catalog struct {
	once    sync.Once
	loadErr error
	byMedia map[Medium]map[string]IntentOption
}

func NewCatalog() *Catalog {
	return &Catalog{}
}

type intentTypesFile struct {
	Media map[string]map[string]IntentOption `yaml:"media"`
}

func (c *Catalog) load() {
	c.once.Do(func() {
		var file intentTypesFile
		if err := yaml.Unmarshal(intentTypesData, &file); err != nil {
			c.loadErr = err
			return
		}
		c.byMedia = make(map[Medium]map[string]IntentOption, len(file.Media))
		for media, options := range file.Media {
			c.byMedia[Medium(media)] = options
		}
	})
}

// Options は媒体向けの三択を返す。未対応の媒体は note の選択肢で代替し、
// 「必ず三択を返す」契約を崩さない。
func (c *Catalog) Options(m Medium) map[string]IntentOption {
	c.load()
	options, ok := c.byMedia[m]
	if !ok {
		options = c.byMedia[MediumNote]
	}
	out := make(map[string]IntentOption, len(options))
	for key, option := range options {
		out[key] = option
	}
	return out
}

// SelectionPrompt は三択提示文言（固定）。
func (c *Catalog) SelectionPrompt() string {
	return selectionPrompt
}

// ValidateChoice はキーがカタログに存在するかだけを見る。媒体には依存しない。
func (c *Catalog) ValidateChoice(key string) bool {
	switch key {
	case "1", "2", "3":
		return true
	}
	return false
}

// Details は選択されたタイプの詳細。未知キーは "1"（体験共有）に解決される。
func (c *Catalog) Details(key string) IntentOption {
	c.load()
	base := c.byMedia[MediumNote]
	if option, ok := base[key]; ok {
		return option
	}
	return base[defaultIntentKey]
}

// DetectIntent は内部解析（ブラックボックス）。結果は診断ログ用途のみで、
// 選択肢の生成・並び・文言には一切使わない。
func (c *Catalog) DetectIntent(theme string, m Medium) map[string]string {
	abstraction := "medium"
	if len([]rune(theme)) > 40 {
		abstraction = "low"
	}
	risk := "medium"
	if strings.ContainsAny(theme, "稼儲") || strings.Contains(theme, "収益") {
		risk = "high"
	}
	return map[string]string{
		"user_position":     "EC実務者",
		"purpose":           "unknown", // あえて判断しない
		"risk_of_overreach": risk,
		"abstraction_level": abstraction,
	}
}
