package api

import (
	"encoding/json"

	"github.com/recheck-dev/recheck/internal/domain/review"
)

// Wire representations of the review server's JSON bodies. Decoding
// ends at the package boundary; everything past it is domain types.

type queueStepWire struct {
	HasNext      bool            `json:"has_next"`
	Review       *reviewWire     `json:"review,omitempty"`
	Source       *sourceMetaWire `json:"source,omitempty"`
	Position     int             `json:"position"`
	TotalPending int             `json:"total_pending"`
}

type reviewWire struct {
	ID              string                    `json:"id"`
	Data            map[string]review.Value   `json:"data,omitempty"`
	Rows            []map[string]review.Value `json:"rows,omitempty"`
	Confidence      *float64                  `json:"confidence,omitempty"`
	UncertainFields []string                  `json:"uncertain_fields,omitempty"`
}

type sourceMetaWire struct {
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

type sourceContentWire struct {
	SourceType   string          `json:"source_type"`
	SourceURL    string          `json:"source_url"`
	RawData      json.RawMessage `json:"raw_data,omitempty"`
	HTMLSnapshot string          `json:"html_snapshot,omitempty"`
	Highlights   []highlightWire `json:"highlights,omitempty"`
}

type highlightWire struct {
	Field    string    `json:"field,omitempty"`
	Selector string    `json:"selector,omitempty"`
	JSONPath string    `json:"json_path,omitempty"`
	Page     int       `json:"page,omitempty"`
	BBox     []float64 `json:"bbox,omitempty"`
}

type commitWire struct {
	Status          string                   `json:"status"`
	RejectionReason string                   `json:"rejection_reason,omitempty"`
	DurationMS      int64                    `json:"review_duration_ms"`
	Corrections     []review.CorrectionEntry `json:"corrections,omitempty"`
}

func (w *reviewWire) toDomain() *review.Record {
	rec := &review.Record{
		ID:              w.ID,
		Confidence:      w.Confidence,
		UncertainFields: w.UncertainFields,
	}
	switch {
	case len(w.Rows) > 0:
		rec.Rows = make([]review.Row, 0, len(w.Rows))
		for _, m := range w.Rows {
			rec.Rows = append(rec.Rows, review.NewRow(m))
		}
	case w.Data != nil:
		// Singleton record: one implicit row.
		rec.Rows = []review.Row{review.NewRow(w.Data)}
	}
	return rec
}

func (w *queueStepWire) toDomain() *review.QueueStep {
	step := &review.QueueStep{
		HasNext:      w.HasNext,
		Position:     w.Position,
		TotalPending: w.TotalPending,
	}
	if w.Review != nil {
		step.Record = w.Review.toDomain()
	}
	if w.Source != nil {
		step.Meta = review.SourceMeta{Name: w.Source.Name, Type: w.Source.Type, URL: w.Source.URL}
	}
	return step
}

func (w *sourceContentWire) toDomain() *review.SourceContent {
	src := &review.SourceContent{
		SourceType:   w.SourceType,
		SourceURL:    w.SourceURL,
		RawData:      string(w.RawData),
		HTMLSnapshot: w.HTMLSnapshot,
	}
	for _, h := range w.Highlights {
		hl := review.Highlight{
			Field:    h.Field,
			Selector: h.Selector,
			JSONPath: h.JSONPath,
			Page:     h.Page,
		}
		if len(h.BBox) == 4 {
			hl.Bounds = &review.BoundingBox{X: h.BBox[0], Y: h.BBox[1], Width: h.BBox[2], Height: h.BBox[3]}
		}
		src.Highlights = append(src.Highlights, hl)
	}
	return src
}
