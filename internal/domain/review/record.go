// Package review implements the client-resident review session engine:
// the per-row disposition board, field-level corrections, the undo log,
// aggregate outcome resolution and highlight correlation for one
// record of machine-extracted data under human verification.
package review

import "sort"

// Record is one unit of reviewable work as served by the queue. The
// engine holds a read-only snapshot for the duration of the session;
// the server owns the record itself.
type Record struct {
	ID              string
	Rows            []Row
	Confidence      *float64
	UncertainFields []string
}

// Row is one sub-item of a record (e.g. a table row). Fields preserves
// a deterministic display order for the free-form value map.
type Row struct {
	Fields []string
	Values map[string]Value
}

// NewRow builds a row from a value map with fields sorted by name.
func NewRow(values map[string]Value) Row {
	fields := make([]string, 0, len(values))
	for f := range values {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return Row{Fields: fields, Values: values}
}

// Value looks up a cell by field name.
func (r Row) Value(field string) (Value, bool) {
	v, ok := r.Values[field]
	return v, ok
}

// HasField reports whether the row carries the named field.
func (r Row) HasField(field string) bool {
	_, ok := r.Values[field]
	return ok
}

// RowCount returns the number of rows; a nil record has none.
func (r *Record) RowCount() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Uncertain reports whether the extractor flagged the field as
// numerically uncertain.
func (r *Record) Uncertain(field string) bool {
	if r == nil {
		return false
	}
	for _, f := range r.UncertainFields {
		if f == field {
			return true
		}
	}
	return false
}

// SourceMeta identifies the origin a record was extracted from.
type SourceMeta struct {
	Name string
	Type string
	URL  string
}
