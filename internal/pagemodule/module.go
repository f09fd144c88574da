package pagemodule

import (
	"github.com/google/uuid"

	"humorpedia/internal/logger"
)

// pkgLog receives the package's warnings. It starts as a no-op so the pure
// list operations stay usable without wiring; main swaps in the
// application logger.
var pkgLog = logger.NewNop()

// SetLogger routes the package's warnings through l.
func SetLogger(l *logger.Logger) {
	if l != nil {
		pkgLog = l
	}
}

// Module is a single typed content block on a page. Data carries the
// type-specific payload; its shape is defined by the module type (see data.go).
type Module struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Order   int            `json:"order"`
	Visible bool           `json:"visible"`
	Title   string         `json:"title,omitempty"`
	Data    map[string]any `json:"data"`
}

// List is the ordered collection of modules attached to one document.
// All operations are pure: they return a new slice and never mutate the
// receiver, so callers can keep the previous value for cheap rollback.
type List []Module

// Patch is a partial module update. Nil fields are left untouched;
// a non-nil Data replaces the payload wholesale.
type Patch struct {
	Type    *string
	Title   *string
	Visible *bool
	Data    map[string]any
}

// Add appends a new module of the given type and returns its id so the
// caller can immediately open its editor.
func (l List) Add(moduleType string) (List, string) {
	id := uuid.NewString()
	out := make(List, len(l), len(l)+1)
	copy(out, l)
	out = append(out, Module{
		ID:      id,
		Type:    moduleType,
		Order:   len(l),
		Visible: true,
		Data:    map[string]any{},
	})
	return out, id
}

// Reorder moves the element at from to position to and renumbers every
// order field to match its new index. Out-of-range or equal indices are a
// no-op returning the receiver unchanged.
func (l List) Reorder(from, to int) List {
	if from == to || from < 0 || to < 0 || from >= len(l) || to >= len(l) {
		return l
	}
	out := make(List, len(l))
	copy(out, l)
	m := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out, Module{})
	copy(out[to+1:], out[to:])
	out[to] = m
	return out.renumber()
}

// Update merges patch into the module with the given id. An unknown id is
// a logged no-op; the second return value reports whether a module matched,
// so callers can escalate to a visible warning if they want to.
func (l List) Update(id string, patch Patch) (List, bool) {
	idx := l.indexOf(id)
	if idx < 0 {
		pkgLog.Warn("обновление модуля с неизвестным id пропущено", "id", id)
		return l, false
	}
	out := make(List, len(l))
	copy(out, l)
	m := out[idx]
	if patch.Type != nil {
		m.Type = *patch.Type
	}
	if patch.Title != nil {
		m.Title = *patch.Title
	}
	if patch.Visible != nil {
		m.Visible = *patch.Visible
	}
	if patch.Data != nil {
		m.Data = patch.Data
	}
	out[idx] = m
	return out, true
}

// Remove deletes the module with the given id and renumbers the survivors,
// keeping order fields dense.
func (l List) Remove(id string) (List, bool) {
	idx := l.indexOf(id)
	if idx < 0 {
		return l, false
	}
	out := make(List, 0, len(l)-1)
	out = append(out, l[:idx]...)
	out = append(out, l[idx+1:]...)
	return out.renumber(), true
}

// Get returns the module with the given id.
func (l List) Get(id string) (Module, bool) {
	if idx := l.indexOf(id); idx >= 0 {
		return l[idx], true
	}
	return Module{}, false
}

// Visible returns the visible modules in order.
func (l List) VisibleModules() List {
	out := make(List, 0, len(l))
	for _, m := range l {
		if m.Visible {
			out = append(out, m)
		}
	}
	return out
}

func (l List) indexOf(id string) int {
	for i, m := range l {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (l List) renumber() List {
	for i := range l {
		l[i].Order = i
	}
	return l
}
