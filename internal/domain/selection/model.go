package selection

import "symptowise/internal/domain/symptom"

// Set is a visitor's in-progress choice of symptoms.
// INVARIANT: insertion order is selection order; no two entries share an id.
// The zero value is an empty set ready to use.
type Set struct {
	items []symptom.Symptom
}

// Add appends s unless a symptom with the same id is already selected.
// PRE: none
// POST: returns true if the set changed
func (st *Set) Add(s symptom.Symptom) bool {
	if st.Contains(s.ID) {
		return false
	}
	st.items = append(st.items, s)
	return true
}

// Remove deletes the entry with the given id.
// PRE: none
// POST: returns true if an entry was removed; absent ids are a no-op
func (st *Set) Remove(id string) bool {
	for i, s := range st.items {
		if s.ID == id {
			st.items = append(st.items[:i:i], st.items[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether id is selected.
func (st Set) Contains(id string) bool {
	for _, s := range st.items {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Symptoms returns a copy of the selection in selection order.
func (st Set) Symptoms() []symptom.Symptom {
	out := make([]symptom.Symptom, len(st.items))
	copy(out, st.items)
	return out
}

// IDs returns the selected ids in selection order.
func (st Set) IDs() []string {
	ids := make([]string, len(st.items))
	for i, s := range st.items {
		ids[i] = s.ID
	}
	return ids
}

// Len returns the number of selected symptoms.
func (st Set) Len() int {
	return len(st.items)
}

// IsEmpty reports whether nothing is selected.
func (st Set) IsEmpty() bool {
	return len(st.items) == 0
}

// Clone returns an independent copy of the set.
func (st Set) Clone() Set {
	return Set{items: st.Symptoms()}
}
