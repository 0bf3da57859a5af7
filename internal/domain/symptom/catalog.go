package symptom

import "fmt"

// Catalog is the ordered, read-only list of selectable symptoms.
type Catalog struct {
	items []Symptom
	byID  map[string]int
}

// NewCatalog builds a catalog from items, preserving their order.
// PRE: items have unique IDs and pass Validate
// POST: returns a catalog or the first validation / duplicate error
func NewCatalog(items []Symptom) (*Catalog, error) {
	c := &Catalog{
		items: make([]Symptom, 0, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	for _, s := range items {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("symptom %q: %w", s.ID, err)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate symptom id %q", s.ID)
		}
		c.byID[s.ID] = len(c.items)
		c.items = append(c.items, s)
	}
	return c, nil
}

// DefaultCatalog returns the built-in list of common symptoms.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog([]Symptom{
		{ID: "1", Name: "Headache", Severity: SeverityMild},
		{ID: "2", Name: "Fever", Severity: SeverityModerate},
		{ID: "3", Name: "Cough", Severity: SeverityMild},
		{ID: "4", Name: "Nausea", Severity: SeverityModerate},
		{ID: "5", Name: "Chest Pain", Severity: SeveritySevere},
		{ID: "6", Name: "Fatigue", Severity: SeverityMild},
		{ID: "7", Name: "Dizziness", Severity: SeverityModerate},
		{ID: "8", Name: "Shortness of Breath", Severity: SeveritySevere},
	})
	if err != nil {
		panic(err)
	}
	return c
}

// All returns a copy of the catalog entries in declared order.
func (c *Catalog) All() []Symptom {
	out := make([]Symptom, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Lookup returns the symptom with the given id.
func (c *Catalog) Lookup(id string) (Symptom, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Symptom{}, false
	}
	return c.items[i], true
}

// Filter returns the catalog entries whose name contains term (case-insensitive)
// and whose id is not in selected. Results keep catalog order.
// PRE: none
// POST: result is a subset of the catalog; never nil
func Filter(c *Catalog, term string, selected []Symptom) []Symptom {
	taken := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		taken[s.ID] = struct{}{}
	}
	out := []Symptom{}
	for _, s := range c.items {
		if _, ok := taken[s.ID]; ok {
			continue
		}
		if s.Matches(term) {
			out = append(out, s)
		}
	}
	return out
}
