package pagemodule

import "testing"

func TestRegistryEntriesComplete(t *testing.T) {
	for _, ti := range AllTypes() {
		if ti.Type == "" || ti.Name == "" {
			t.Errorf("registry entry incomplete: %+v", ti)
		}
	}
}

func TestAllowedTypesQuiz(t *testing.T) {
	got := AllowedTypes("quiz")
	want := []string{TypeQuizQuestions, TypeQuizResults, TypeTextBlock}
	if len(got) != len(want) {
		t.Fatalf("quiz offers %d types, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Type != w {
			t.Errorf("position %d = %s, want %s", i, got[i].Type, w)
		}
	}
}

func TestAllowedTypesFallsBackToPage(t *testing.T) {
	unknown := AllowedTypes("made_up_type")
	page := AllowedTypes("page")
	if len(unknown) != len(page) {
		t.Fatalf("unknown type got %d entries, page has %d", len(unknown), len(page))
	}
	for i := range page {
		if unknown[i].Type != page[i].Type {
			t.Errorf("position %d differs: %s vs %s", i, unknown[i].Type, page[i].Type)
		}
	}
}

func TestAllowedTypesAreRegistered(t *testing.T) {
	for contentType, keys := range allowed {
		for _, key := range keys {
			if _, ok := LookupType(key); !ok {
				t.Errorf("%s offers unregistered type %s", contentType, key)
			}
		}
	}
}

func TestIsSystemType(t *testing.T) {
	for _, tp := range []string{TypePosterPhoto, TypeFactsTable, TypeRatingWidget, TypeTagsCloud, TypeSocialLinks} {
		if !IsSystemType(tp) {
			t.Errorf("%s should be a system type", tp)
		}
	}
	for _, tp := range []string{TypeTextBlock, TypeHeroCard, "unknown"} {
		if IsSystemType(tp) {
			t.Errorf("%s should not be a system type", tp)
		}
	}
}

func TestDisplayName(t *testing.T) {
	m := Module{Type: TypeTextBlock}
	if got := DisplayName(m); got != "Текстовый блок" {
		t.Errorf("DisplayName = %q", got)
	}

	m.Title = "Своё название"
	if got := DisplayName(m); got != "Своё название" {
		t.Errorf("custom title should win: %q", got)
	}

	unknown := Module{Type: "mystery"}
	if got := DisplayName(unknown); got != "mystery" {
		t.Errorf("unknown type should fall back to the key: %q", got)
	}
}
