package review

import "fmt"

// HighlightKind discriminates how a highlight locates its region in
// the rendered source document.
type HighlightKind int

const (
	HighlightNone HighlightKind = iota
	HighlightSelector
	HighlightJSONPath
	HighlightBox
)

// BoundingBox is a page-relative rectangle for PDF-style sources.
type BoundingBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Highlight locates one extracted field inside the independently
// rendered source document: a CSS selector for HTML snapshots, a JSON
// path for structured payloads, or a page bounding box for PDFs.
type Highlight struct {
	Field    string
	Selector string
	JSONPath string
	Page     int
	Bounds   *BoundingBox
}

// Kind reports which locator the highlight carries. Selector wins over
// path wins over box when a server sends more than one.
func (h Highlight) Kind() HighlightKind {
	switch {
	case h.Selector != "":
		return HighlightSelector
	case h.JSONPath != "":
		return HighlightJSONPath
	case h.Bounds != nil:
		return HighlightBox
	default:
		return HighlightNone
	}
}

// Describe renders the locator for display in the source pane.
func (h Highlight) Describe() string {
	switch h.Kind() {
	case HighlightSelector:
		return h.Selector
	case HighlightJSONPath:
		return h.JSONPath
	case HighlightBox:
		return fmt.Sprintf("page %d @ (%.0f,%.0f) %gx%g", h.Page, h.Bounds.X, h.Bounds.Y, h.Bounds.Width, h.Bounds.Height)
	default:
		return ""
	}
}

// SourceContent is the captured rendering of a record's origin,
// fetched best-effort and independently of the record itself.
type SourceContent struct {
	SourceType   string
	SourceURL    string
	RawData      string
	HTMLSnapshot string
	Highlights   []Highlight
}

// Correlate resolves the highlight for a selected row: a direct index
// lookup into the highlight list when the list is long enough,
// otherwise the first highlight whose field appears among the row's
// keys. No match means the viewer shows the unannotated document.
// Correlation is a pure projection; selection is the source of truth
// and highlight state never feeds back into it.
func Correlate(src *SourceContent, rowIndex int, row Row) (Highlight, bool) {
	if src == nil || len(src.Highlights) == 0 {
		return Highlight{}, false
	}
	if rowIndex >= 0 && rowIndex < len(src.Highlights) {
		return src.Highlights[rowIndex], true
	}
	for _, h := range src.Highlights {
		if h.Field != "" && row.HasField(h.Field) {
			return h, true
		}
	}
	return Highlight{}, false
}

// CorrelateField resolves a highlight for one named field, used when a
// field cursor is active. Exact field match only.
func CorrelateField(src *SourceContent, field string) (Highlight, bool) {
	if src == nil || field == "" {
		return Highlight{}, false
	}
	for _, h := range src.Highlights {
		if h.Field == field {
			return h, true
		}
	}
	return Highlight{}, false
}
