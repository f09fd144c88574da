package pagemodule

import (
	"reflect"
	"testing"

	"humorpedia/internal/logger"
)

func denseOrders(t *testing.T, l List) {
	t.Helper()
	for i, m := range l {
		if m.Order != i {
			t.Fatalf("module %d has order %d, want %d", i, m.Order, i)
		}
	}
}

func buildList(types ...string) List {
	var l List
	for _, tp := range types {
		l, _ = l.Add(tp)
	}
	return l
}

func TestAddAssignsDefaults(t *testing.T) {
	l, id := List{}.Add(TypeTextBlock)
	if len(l) != 1 {
		t.Fatalf("len = %d, want 1", len(l))
	}
	m := l[0]
	if m.ID != id {
		t.Errorf("returned id %q does not match module id %q", id, m.ID)
	}
	if m.Type != TypeTextBlock {
		t.Errorf("type = %q", m.Type)
	}
	if !m.Visible {
		t.Error("new module should be visible")
	}
	if m.Order != 0 {
		t.Errorf("order = %d, want 0", m.Order)
	}
	if m.Data == nil || len(m.Data) != 0 {
		t.Errorf("data = %v, want empty map", m.Data)
	}
}

func TestAddDoesNotMutateReceiver(t *testing.T) {
	base := buildList(TypeTextBlock)
	snapshot := base[0]
	extended, _ := base.Add(TypeQuote)
	if len(base) != 1 {
		t.Fatalf("receiver grew to %d", len(base))
	}
	if !reflect.DeepEqual(base[0], snapshot) {
		t.Error("receiver element changed")
	}
	denseOrders(t, extended)
}

func TestReorderRenumbers(t *testing.T) {
	l := buildList(TypeHeroCard, TypeTextBlock, TypeTimeline)
	ids := []string{l[0].ID, l[1].ID, l[2].ID}

	moved := l.Reorder(0, 2)
	want := []string{ids[1], ids[2], ids[0]}
	for i, id := range want {
		if moved[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, moved[i].ID, id)
		}
	}
	denseOrders(t, moved)

	// Receiver keeps the old arrangement.
	for i, id := range ids {
		if l[i].ID != id {
			t.Fatalf("receiver mutated at %d", i)
		}
	}
}

func TestReorderNoOp(t *testing.T) {
	l := buildList(TypeTextBlock, TypeQuote)
	for _, c := range [][2]int{{1, 1}, {-1, 0}, {0, 5}, {3, 0}} {
		got := l.Reorder(c[0], c[1])
		if len(got) != len(l) || got[0].ID != l[0].ID || got[1].ID != l[1].ID {
			t.Errorf("Reorder(%d, %d) changed the list", c[0], c[1])
		}
	}
}

func TestUpdatePatchesFields(t *testing.T) {
	l := buildList(TypeTextBlock)
	id := l[0].ID

	title := "О персоне"
	hidden := false
	updated, ok := l.Update(id, Patch{
		Title:   &title,
		Visible: &hidden,
		Data:    map[string]any{"content": "текст"},
	})
	if !ok {
		t.Fatal("update reported no match")
	}
	m := updated[0]
	if m.Title != title || m.Visible || m.Data["content"] != "текст" {
		t.Errorf("patch not applied: %+v", m)
	}
	if m.Type != TypeTextBlock {
		t.Errorf("untouched field changed: type = %q", m.Type)
	}
	if l[0].Title != "" || !l[0].Visible {
		t.Error("receiver mutated")
	}
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	SetLogger(logger.NewNop())
	l := buildList(TypeTextBlock)
	title := "x"
	got, ok := l.Update("missing", Patch{Title: &title})
	if ok {
		t.Error("update reported a match for unknown id")
	}
	if len(got) != 1 || got[0].Title != "" {
		t.Error("list changed on unknown id")
	}
}

func TestUpdateDataReplacesWholesale(t *testing.T) {
	l := buildList(TypeTextBlock)
	id := l[0].ID
	l, _ = l.Update(id, Patch{Data: map[string]any{"title": "a", "content": "b"}})
	l, _ = l.Update(id, Patch{Data: map[string]any{"content": "c"}})

	m, _ := l.Get(id)
	if _, stale := m.Data["title"]; stale {
		t.Error("old data key survived a wholesale replace")
	}
	if m.Data["content"] != "c" {
		t.Errorf("content = %v", m.Data["content"])
	}
}

func TestRemoveRenumbers(t *testing.T) {
	l := buildList(TypeHeroCard, TypeTextBlock, TypeTimeline)
	removed, ok := l.Remove(l[1].ID)
	if !ok {
		t.Fatal("remove reported no match")
	}
	if len(removed) != 2 {
		t.Fatalf("len = %d", len(removed))
	}
	denseOrders(t, removed)

	if _, ok := removed.Get(l[1].ID); ok {
		t.Error("removed module still findable")
	}

	_, ok = l.Remove("missing")
	if ok {
		t.Error("remove reported a match for unknown id")
	}
}

func TestVisibleModulesFilters(t *testing.T) {
	l := buildList(TypeTextBlock, TypeQuote, TypeTable)
	hidden := false
	l, _ = l.Update(l[1].ID, Patch{Visible: &hidden})

	vis := l.VisibleModules()
	if len(vis) != 2 {
		t.Fatalf("visible count = %d, want 2", len(vis))
	}
	if vis[0].Type != TypeTextBlock || vis[1].Type != TypeTable {
		t.Errorf("wrong modules survived: %s, %s", vis[0].Type, vis[1].Type)
	}
}
