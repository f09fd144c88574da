package pagemodule

import (
	"strings"
	"testing"
)

func TestRenderInvisibleModule(t *testing.T) {
	m := Module{Type: TypeTextBlock, Visible: false, Data: map[string]any{"content": "текст"}}
	if _, ok := Render(m, DocumentContext{}); ok {
		t.Error("hidden module rendered")
	}
}

func TestRenderEmptyTextBlock(t *testing.T) {
	for _, content := range []string{"", "   ", "\n"} {
		m := Module{Type: TypeTextBlock, Visible: true, Data: map[string]any{"content": content}}
		if _, ok := Render(m, DocumentContext{}); ok {
			t.Errorf("text block with content %q rendered", content)
		}
	}
}

func TestRenderTextBlockVerbatimHTML(t *testing.T) {
	m := Module{
		Type:    TypeTextBlock,
		Visible: true,
		Data:    map[string]any{"content": `<p>Известен по <a href="/kvn">КВН</a>.</p>`},
	}
	frag, ok := Render(m, DocumentContext{})
	if !ok {
		t.Fatal("no output")
	}
	if !strings.Contains(string(frag), `<a href="/kvn">КВН</a>`) {
		t.Errorf("stored HTML was escaped or rewritten: %s", frag)
	}
}

func TestRenderTextBlockMarkdown(t *testing.T) {
	m := Module{
		Type:    TypeTextBlock,
		Visible: true,
		Data:    map[string]any{"content": "Известен по **КВН**.", "format": "markdown"},
	}
	frag, ok := Render(m, DocumentContext{})
	if !ok {
		t.Fatal("no output")
	}
	if !strings.Contains(string(frag), "<strong>КВН</strong>") {
		t.Errorf("markdown not converted: %s", frag)
	}
}

func TestRenderContentIgnoresDocument(t *testing.T) {
	doc := DocumentContext{Title: "Иван Петров", Tags: []string{"квн"}}
	m := Module{Type: TypeQuote, Visible: true, Data: map[string]any{"text": "цитата"}}

	frag, ok := Render(m, doc)
	if !ok {
		t.Fatal("no output")
	}
	if strings.Contains(string(frag), "Иван Петров") {
		t.Error("content module leaked document fields")
	}
}

func TestRenderSystemReadsDocument(t *testing.T) {
	doc := DocumentContext{
		Title:     "Иван Петров",
		PosterURL: "/uploads/petrov.jpg",
		Facts:     []FactItem{{Label: "Родился", Value: "1970"}},
		Tags:      []string{"квн", "юмор"},
	}

	m := Module{Type: TypePosterPhoto, Visible: true, Data: map[string]any{}}
	frag, ok := Render(m, doc)
	if !ok {
		t.Fatal("poster did not render")
	}
	if !strings.Contains(string(frag), "/uploads/petrov.jpg") {
		t.Errorf("poster missing document image: %s", frag)
	}

	facts := Module{Type: TypeFactsTable, Visible: true, Data: map[string]any{}}
	frag, ok = Render(facts, doc)
	if !ok {
		t.Fatal("facts did not render")
	}
	if !strings.Contains(string(frag), "Родился") {
		t.Errorf("facts missing document data: %s", frag)
	}
}

func TestRenderSystemEmptySource(t *testing.T) {
	doc := DocumentContext{Title: "Без постера"}
	for _, tp := range []string{TypePosterPhoto, TypeFactsTable, TypeRatingWidget, TypeTagsCloud, TypeSocialLinks} {
		m := Module{Type: tp, Visible: true, Data: map[string]any{}}
		if _, ok := Render(m, doc); ok {
			t.Errorf("%s rendered with nothing to show", tp)
		}
	}
}

func TestRenderSystemStyleVariants(t *testing.T) {
	doc := DocumentContext{Facts: []FactItem{{Label: "Город", Value: "Москва"}}}

	def := Module{Type: TypeFactsTable, Visible: true, Data: map[string]any{}}
	frag, _ := Render(def, doc)
	if !strings.Contains(string(frag), "facts-list") {
		t.Errorf("default style not applied: %s", frag)
	}

	styled := Module{Type: TypeFactsTable, Visible: true, Data: map[string]any{"style": "table"}}
	frag, _ = Render(styled, doc)
	if !strings.Contains(string(frag), "facts-table") || !strings.Contains(string(frag), "<table>") {
		t.Errorf("style override not applied: %s", frag)
	}
}

func TestRenderWidgetTypesProduceNothing(t *testing.T) {
	for _, tp := range []string{TypeBestArticles, TypeInteresting, TypeRandomPage, TypeQuizQuestions, TypeTOC, "unknown_thing"} {
		m := Module{Type: tp, Visible: true, Data: map[string]any{}}
		if _, ok := Render(m, DocumentContext{}); ok {
			t.Errorf("%s should have no static rendering", tp)
		}
	}
}

func TestRenderAllSkipsEmpty(t *testing.T) {
	l := buildList(TypeTextBlock, TypeQuote, TypeTextBlock)
	l, _ = l.Update(l[0].ID, Patch{Data: map[string]any{"content": "первый"}})
	// middle quote left empty
	l, _ = l.Update(l[2].ID, Patch{Data: map[string]any{"content": "второй"}})

	frags := RenderAll(l, DocumentContext{})
	if len(frags) != 2 {
		t.Fatalf("fragments = %d, want 2", len(frags))
	}
	if !strings.Contains(string(frags[0]), "первый") || !strings.Contains(string(frags[1]), "второй") {
		t.Error("fragments out of order")
	}
}

func TestRenderMinifies(t *testing.T) {
	m := Module{
		Type:    TypeTags,
		Visible: true,
		Data:    map[string]any{"tags": []any{"квн", "юмор"}},
	}
	frag, ok := Render(m, DocumentContext{})
	if !ok {
		t.Fatal("no output")
	}
	if strings.Contains(string(frag), "\n  ") {
		t.Errorf("output not minified: %q", frag)
	}
}
