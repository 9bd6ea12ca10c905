package review

// Correction records one field-level edit: the original extracted
// value and what the reviewer replaced it with.
type Correction struct {
	Row       int
	Field     string
	Original  Value
	Corrected Value
}

// CorrectionSet holds at most one correction per (row, field) pair,
// in the order corrections were first recorded.
type CorrectionSet struct {
	entries []Correction
}

func NewCorrectionSet() *CorrectionSet {
	return &CorrectionSet{}
}

// Edit records an edit to a cell. Any prior correction for the cell is
// dropped first; the edit is then kept only if the new value does not
// stringify equal to the original. Editing a cell back to its original
// value therefore leaves no entry behind.
func (s *CorrectionSet) Edit(row int, field string, original, corrected Value) {
	s.remove(row, field)
	if corrected.Equal(original) {
		return
	}
	s.entries = append(s.entries, Correction{
		Row:       row,
		Field:     field,
		Original:  original,
		Corrected: corrected,
	})
}

func (s *CorrectionSet) remove(row int, field string) {
	for i, c := range s.entries {
		if c.Row == row && c.Field == field {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// Get returns the correction recorded for a cell, if any.
func (s *CorrectionSet) Get(row int, field string) (Correction, bool) {
	for _, c := range s.entries {
		if c.Row == row && c.Field == field {
			return c, true
		}
	}
	return Correction{}, false
}

// Len returns the number of recorded corrections.
func (s *CorrectionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Empty reports whether no corrections are recorded.
func (s *CorrectionSet) Empty() bool { return s.Len() == 0 }

// All returns a copy of the corrections in recording order.
func (s *CorrectionSet) All() []Correction {
	out := make([]Correction, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clear drops every correction unconditionally.
func (s *CorrectionSet) Clear() {
	s.entries = s.entries[:0]
}

// Wire converts the set into the commit body form. Row indices are not
// part of the wire contract; field identity is.
func (s *CorrectionSet) Wire() []CorrectionEntry {
	if s.Len() == 0 {
		return nil
	}
	out := make([]CorrectionEntry, 0, len(s.entries))
	for _, c := range s.entries {
		out = append(out, CorrectionEntry{
			Field:          c.Field,
			OriginalValue:  c.Original.String(),
			CorrectedValue: c.Corrected.String(),
		})
	}
	return out
}
