package pagemodule

import (
	"encoding/json"
	"testing"
)

func TestDecodeTextBlock(t *testing.T) {
	m := Module{
		Type: TypeTextBlock,
		Data: map[string]any{"title": "Биография", "content": "<p>Родился в Москве.</p>"},
	}
	d, err := Decode(m)
	if err != nil {
		t.Fatal(err)
	}
	tb, ok := d.(TextBlockData)
	if !ok {
		t.Fatalf("decoded to %T", d)
	}
	if tb.Title != "Биография" || tb.Content != "<p>Родился в Москве.</p>" {
		t.Errorf("wrong payload: %+v", tb)
	}
}

func TestDecodeUnknownTypeKeepsRaw(t *testing.T) {
	raw := map[string]any{"weird": []any{1.0, "x"}, "nested": map[string]any{"k": "v"}}
	m := Module{Type: "future_widget", Data: raw}

	d, err := Decode(m)
	if err != nil {
		t.Fatal(err)
	}
	u, ok := d.(UnknownData)
	if !ok {
		t.Fatalf("decoded to %T, want UnknownData", d)
	}

	out, err := EncodeData(u)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := json.Marshal(out)
	want, _ := json.Marshal(raw)
	if string(got) != string(want) {
		t.Errorf("payload changed: %s != %s", got, want)
	}
}

func TestDecodeMalformedPayload(t *testing.T) {
	m := Module{Type: TypeTable, Data: map[string]any{"rows": "not-an-array"}}
	if _, err := Decode(m); err == nil {
		t.Error("expected decode error for malformed table payload")
	}
}

func TestSystemTypesDecodeToPresentation(t *testing.T) {
	for _, tp := range []string{TypePosterPhoto, TypeFactsTable, TypeRatingWidget, TypeTagsCloud, TypeSocialLinks} {
		m := Module{Type: tp, Data: map[string]any{"style": "compact", "size": "small"}}
		d, err := Decode(m)
		if err != nil {
			t.Fatalf("%s: %v", tp, err)
		}
		p, ok := d.(PresentationData)
		if !ok {
			t.Fatalf("%s decoded to %T", tp, d)
		}
		if p.Style != "compact" || p.Size != "small" {
			t.Errorf("%s: %+v", tp, p)
		}
	}
}

func TestEncodeDataRoundTrip(t *testing.T) {
	in := TimelineData{
		Title:  "Хронология",
		Events: []TimelineEvent{{Year: 1997, Title: "Дебют в КВН"}},
	}
	data, err := EncodeData(in)
	if err != nil {
		t.Fatal(err)
	}
	m := Module{Type: TypeTimeline, Data: data}
	d, err := Decode(m)
	if err != nil {
		t.Fatal(err)
	}
	out := d.(TimelineData)
	if out.Title != in.Title || len(out.Events) != 1 || out.Events[0].Year != 1997 {
		t.Errorf("round trip changed payload: %+v", out)
	}
}

func TestModuleWireShape(t *testing.T) {
	l, id := List{}.Add(TypeQuote)
	l, _ = l.Update(id, Patch{Data: map[string]any{"text": "Смех продлевает жизнь"}})

	raw, err := json.Marshal(l[0])
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"id", "type", "order", "visible", "data"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("wire shape missing %q", key)
		}
	}
	if _, ok := decoded["title"]; ok {
		t.Error("empty title should be omitted")
	}
}
