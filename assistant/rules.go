package assistant

import (
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/media_rules.yaml
var mediaRulesData []byte

// RuleStore は媒体別ルールの読み取り専用ストア。
// 初回アクセス時に一度だけロードし、以後プロセス終了まで不変。
type RuleStore struct {
	once       sync.Once
	loadErr    error
	writerRole string
	rules      map[Medium]MediumRuleSet
}

func NewRuleStore() *RuleStore {
	return &RuleStore{}
}

type mediaRulesFile struct {
	Global struct {
		WriterRole string `yaml:"writer_role"`
	} `yaml:"global"`
	Note mediumRuleYAML `yaml:"note"`
	Zenn mediumRuleYAML `yaml:"zenn"`
	X    mediumRuleYAML `yaml:"x"`
}

type mediumRuleYAML struct {
	DisplayName string       `yaml:"display_name"`
	Tone        ToneSettings `yaml:"tone"`
	Structure   struct {
		Order []string `yaml:"order"`
	} `yaml:"structure"`
	Forbid           []string `yaml:"forbid"`
	ReaderAssumption string   `yaml:"reader_assumption"`
}

func (y mediumRuleYAML) toRuleSet() MediumRuleSet {
	return MediumRuleSet{
		DisplayName:      y.DisplayName,
		Tone:             y.Tone,
		StructureOrder:   y.Structure.Order,
		Forbidden:        y.Forbid,
		ReaderAssumption: y.ReaderAssumption,
	}
}

func (s *RuleStore) load() {
	s.once.Do(func() {
		var file mediaRulesFile
		if err := yaml.Unmarshal(mediaRulesData, &file); err != nil {
			s.loadErr = err
			return
		}
		s.writerRole = file.Global.WriterRole
		s.rules = map[Medium]MediumRuleSet{
			MediumNote: file.Note.toRuleSet(),
			MediumZenn: file.Zenn.toRuleSet(),
			MediumX:    file.X.toRuleSet(),
		}
	})
}

// GetRules は媒体ひとつ分のルール一式を返す。未知の媒体のみエラー。
func (s *RuleStore) GetRules(m Medium) (MediumRuleSet, error) {
	s.load()
	if s.loadErr != nil {
		return MediumRuleSet{}, s.loadErr
	}
	rules, ok := s.rules[m]
	if !ok {
		return MediumRuleSet{}, &UnknownMediumError{Medium: string(m)}
	}
	return rules, nil
}

// DisplayName は表示名。未定義なら媒体キーをそのまま返す。
func (s *RuleStore) DisplayName(m Medium) string {
	s.load()
	if rules, ok := s.rules[m]; ok && rules.DisplayName != "" {
		return rules.DisplayName
	}
	return string(m)
}

// StructureOrder は静的な構成順序トークン列。未定義なら空。
func (s *RuleStore) StructureOrder(m Medium) []string {
	s.load()
	return s.rules[m].StructureOrder
}

// ForbiddenItems は媒体別の禁止事項トークン。未定義なら空。
func (s *RuleStore) ForbiddenItems(m Medium) []string {
	s.load()
	return s.rules[m].Forbidden
}

// ToneSettings は語調設定。未定義ならゼロ値（各行とも既定の扱い）。
func (s *RuleStore) ToneSettings(m Medium) ToneSettings {
	s.load()
	return s.rules[m].Tone
}

// ReaderAssumption は読者想定。未定義なら「一般読者」。
func (s *RuleStore) ReaderAssumption(m Medium) string {
	s.load()
	if rules, ok := s.rules[m]; ok && rules.ReaderAssumption != "" {
		return rules.ReaderAssumption
	}
	return "一般読者"
}

// WriterRole はグローバル制約の書き手役割。
func (s *RuleStore) WriterRole() string {
	s.load()
	return s.writerRole
}
