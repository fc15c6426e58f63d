package assistant

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCompile_Deterministic(t *testing.T) {
	compiler := NewCompiler(NewRuleStore())
	structure := []string{"課題", "解決アプローチ", "結果"}

	first, err := compiler.Compile(MediumZenn, "テスト用テーマ", "2", structure)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := compiler.Compile(MediumZenn, "テスト用テーマ", "2", structure)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatal("compile output differs between identical calls")
		}
	}
}

func TestCompile_UnknownMedium(t *testing.T) {
	compiler := NewCompiler(NewRuleStore())

	_, err := compiler.Compile(Medium("blog"), "テーマ", "1", []string{"a", "b"})
	var unknown *UnknownMediumError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownMediumError, got %v", err)
	}
}

func TestCompile_StructureBlockRoundTrip(t *testing.T) {
	compiler := NewCompiler(NewRuleStore())
	structure := []string{"導入", "本編", "検証", "まとめ", "余談"}

	prompt, err := compiler.Compile(MediumNote, "テーマ", "1", structure)
	if err != nil {
		t.Fatal(err)
	}
	for i, heading := range structure {
		line := fmt.Sprintf("%d. %s\n", i+1, heading)
		if !strings.Contains(prompt, line) {
			t.Errorf("missing structure line %q", line)
		}
	}
	if strings.Contains(prompt, fmt.Sprintf("%d. ", len(structure)+1)) {
		t.Error("structure block has extra numbered line")
	}
}

func TestCompile_ThemeVerbatim(t *testing.T) {
	compiler := NewCompiler(NewRuleStore())
	theme := "AIの設定を見直したら業務が楽になった話"

	prompt, err := compiler.Compile(MediumNote, theme, "1", []string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(prompt, "【テーマ】\n"+theme+"\n") {
		t.Error("theme is not embedded verbatim")
	}
}

func TestCompile_HeaderUsesDisplayName(t *testing.T) {
	compiler := NewCompiler(NewRuleStore())

	prompt, err := compiler.Compile(MediumZenn, "テーマ", "2", []string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(prompt, "以下の条件で、Zenn向けの記事本文を書いてください。\n") {
		t.Errorf("unexpected header: %q", strings.SplitN(prompt, "\n", 2)[0])
	}
}

func TestCompile_ForbiddenTranslationAndPassthrough(t *testing.T) {
	compiler := NewCompiler(NewRuleStore())

	prompt, err := compiler.Compile(MediumZenn, "テーマ", "2", []string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	for _, phrase := range []string{"過度なストーリーテリング", "曖昧な表現", "動機づけ的表現"} {
		if !strings.Contains(prompt, "・"+phrase+"\n") {
			t.Errorf("missing translated forbidden item %q", phrase)
		}
	}
	// グローバル禁止事項は全媒体共通。
	for _, phrase := range []string{"収益化の話", "AIを主役にする表現", "「誰でも」「簡単に」などの煽り"} {
		if !strings.Contains(prompt, "・"+phrase+"\n") {
			t.Errorf("missing global prohibition %q", phrase)
		}
	}
}

func TestToneSection_AllCombinations(t *testing.T) {
	firstPersonLines := map[string][]string{
		"allowed":   {"・一人称使用OK"},
		"optional":  {"・一人称は任意（使いすぎない）"},
		"forbidden": nil,
	}
	assertivenessLines := map[string][]string{
		"low":    {"・柔らかいが誇張しない", "・断定を避け、余白を残す"},
		"medium": {"・適度な断定性"},
		"high":   {"・断定的", "・簡潔に結論を示す"},
	}
	emotionalLines := map[string][]string{
		"forbidden": {"・感情表現は禁止"},
		"limited":   {"・感情表現は控えめに"},
		"allowed":   nil,
	}

	for fp, fpLines := range firstPersonLines {
		for as, asLines := range assertivenessLines {
			for em, emLines := range emotionalLines {
				name := fmt.Sprintf("%s_%s_%s", fp, as, em)
				t.Run(name, func(t *testing.T) {
					var sb strings.Builder
					writeToneSection(&sb, ToneSettings{
						FirstPerson:    fp,
						Assertiveness:  as,
						EmotionalWords: em,
					})

					var want []string
					want = append(want, "【トーン】")
					want = append(want, fpLines...)
					want = append(want, asLines...)
					want = append(want, emLines...)
					want = append(want, "", "")

					if got := strings.Join(want, "\n"); sb.String() != got {
						t.Errorf("tone section mismatch:\ngot:\n%q\nwant:\n%q", sb.String(), got)
					}
				})
			}
		}
	}
}

func TestCompile_BannedPhrasingOnlyInProhibitionBlock(t *testing.T) {
	compiler := NewCompiler(NewRuleStore())

	prompt, err := compiler.Compile(MediumNote, "業務改善の話", "1", []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}

	// 「誰でも」「簡単に」や収益化の語は禁止事項の列挙以外に現れてはならない。
	forbidStart := strings.Index(prompt, "【禁止事項】")
	forbidEnd := strings.Index(prompt, "【品質基準】")
	if forbidStart < 0 || forbidEnd < forbidStart {
		t.Fatal("prohibition block not found")
	}
	outside := prompt[:forbidStart] + prompt[forbidEnd:]
	for _, banned := range []string{"誰でも", "簡単に", "収益"} {
		if strings.Contains(outside, banned) {
			t.Errorf("banned phrasing %q appears outside the prohibition block", banned)
		}
	}
}
