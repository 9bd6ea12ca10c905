package api

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// The client validates server payloads at the boundary so malformed
// data is rejected with a precise error instead of half-decoding into
// the engine.

const queueStepSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["has_next", "position", "total_pending"],
  "properties": {
    "has_next": {"type": "boolean"},
    "position": {"type": "integer", "minimum": 0},
    "total_pending": {"type": "integer", "minimum": 0},
    "review": {
      "type": ["object", "null"],
      "required": ["id"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "data": {"type": "object"},
        "rows": {"type": "array", "items": {"type": "object"}},
        "confidence": {"type": "number"},
        "uncertain_fields": {"type": "array", "items": {"type": "string"}}
      }
    },
    "source": {
      "type": ["object", "null"],
      "properties": {
        "name": {"type": "string"},
        "type": {"type": "string"},
        "url": {"type": "string"}
      }
    }
  }
}`

const sourceContentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["source_type"],
  "properties": {
    "source_type": {"type": "string"},
    "source_url": {"type": "string"},
    "html_snapshot": {"type": "string"},
    "highlights": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "field": {"type": "string"},
          "selector": {"type": "string"},
          "json_path": {"type": "string"},
          "page": {"type": "integer", "minimum": 0},
          "bbox": {
            "type": "array",
            "items": {"type": "number"},
            "minItems": 4,
            "maxItems": 4
          }
        }
      }
    }
  }
}`

// validatePayload checks a response body against an embedded schema.
func validatePayload(schema string, body []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(body),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid server payload: %s", strings.Join(msgs, "; "))
}
