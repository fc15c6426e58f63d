package assistant

import (
	"errors"
	"testing"
)

func TestGetRules_KnownMedia(t *testing.T) {
	store := NewRuleStore()

	for _, m := range AvailableMedia() {
		rules, err := store.GetRules(m)
		if err != nil {
			t.Fatalf("GetRules(%s): %v", m, err)
		}
		if rules.DisplayName == "" {
			t.Errorf("GetRules(%s): display name is empty", m)
		}
		if len(rules.StructureOrder) == 0 {
			t.Errorf("GetRules(%s): structure order is empty", m)
		}
		if len(rules.Forbidden) == 0 {
			t.Errorf("GetRules(%s): forbidden items is empty", m)
		}
	}
}

func TestGetRules_UnknownMedium(t *testing.T) {
	store := NewRuleStore()

	_, err := store.GetRules(Medium("blog"))
	if err == nil {
		t.Fatal("expected error for unknown medium")
	}
	var unknown *UnknownMediumError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownMediumError, got %T", err)
	}
}

func TestRuleStore_StructureOrderLengths(t *testing.T) {
	store := NewRuleStore()

	tests := []struct {
		medium Medium
		want   int
	}{
		{MediumNote, 3},
		{MediumZenn, 4},
		{MediumX, 3},
	}
	for _, tt := range tests {
		if got := len(store.StructureOrder(tt.medium)); got != tt.want {
			t.Errorf("StructureOrder(%s): got %d tokens, want %d", tt.medium, got, tt.want)
		}
	}
}

func TestRuleStore_AccessorDefaults(t *testing.T) {
	store := NewRuleStore()

	// 未知媒体でもアクセサはエラーにせず中立値を返す。
	unknown := Medium("blog")
	if got := store.DisplayName(unknown); got != "blog" {
		t.Errorf("DisplayName fallback: got %q, want %q", got, "blog")
	}
	if got := store.ReaderAssumption(unknown); got != "一般読者" {
		t.Errorf("ReaderAssumption fallback: got %q", got)
	}
	if got := store.StructureOrder(unknown); len(got) != 0 {
		t.Errorf("StructureOrder fallback: got %v, want empty", got)
	}
	if got := store.ForbiddenItems(unknown); len(got) != 0 {
		t.Errorf("ForbiddenItems fallback: got %v, want empty", got)
	}
	if got := store.ToneSettings(unknown); got != (ToneSettings{}) {
		t.Errorf("ToneSettings fallback: got %+v, want zero value", got)
	}
}

func TestRuleStore_WriterRole(t *testing.T) {
	store := NewRuleStore()
	if store.WriterRole() == "" {
		t.Error("writer role should not be empty")
	}
}

func TestRuleStore_DisplayNames(t *testing.T) {
	store := NewRuleStore()

	tests := []struct {
		medium Medium
		want   string
	}{
		{MediumNote, "note"},
		{MediumZenn, "Zenn"},
		{MediumX, "X"},
	}
	for _, tt := range tests {
		if got := store.DisplayName(tt.medium); got != tt.want {
			t.Errorf("DisplayName(%s): got %q, want %q", tt.medium, got, tt.want)
		}
	}
}
