package timeline

import "sort"

// Selection tracks the active single/multi selection set plus the primary
// segment (the last-clicked one, shown in the inspector). It is pure view
// state: it never owns or mutates segments, and selecting a segment grants
// no mutation rights beyond what the user explicitly requests.
type Selection struct {
	ids     map[string]bool
	primary string
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]bool)}
}

// Click selects exactly the given segment (no modifier held).
func (s *Selection) Click(id string) {
	s.ids = map[string]bool{id: true}
	s.primary = id
}

// ToggleClick toggles membership of the given segment (multi-modifier held).
// The clicked segment becomes primary if it is now a member; if it was
// removed, the primary is cleared.
func (s *Selection) ToggleClick(id string) {
	if s.ids[id] {
		delete(s.ids, id)
		if s.primary == id {
			s.primary = ""
		}
		return
	}
	s.ids[id] = true
	s.primary = id
}

// Clear empties the selection (click on empty space).
func (s *Selection) Clear() {
	s.ids = make(map[string]bool)
	s.primary = ""
}

// Drop removes an id from the selection, e.g. after its segment is deleted
// or replaced by a split.
func (s *Selection) Drop(id string) {
	delete(s.ids, id)
	if s.primary == id {
		s.primary = ""
	}
}

// IsSelected reports membership.
func (s *Selection) IsSelected(id string) bool {
	return s.ids[id]
}

// Primary returns the primary segment id, or "" if none.
func (s *Selection) Primary() string {
	return s.primary
}

// Len returns the number of selected segments.
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in a stable order.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
