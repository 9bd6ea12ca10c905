// Package audit models the tamper-evident trail of review actions a
// session leaves behind. Events are hash-chained: each event hashes
// its predecessor's hash, so truncation or edits are detectable.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"
)

// Event is one auditable review action (a disposition change, a
// correction, an undo, a commit, a revert).
type Event struct {
	ID        string         `json:"id"`
	SessionID string         `json:"session_id"`
	Timestamp time.Time      `json:"timestamp"`
	Action    string         `json:"action"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	PrevHash  string         `json:"prev_hash,omitempty"`
	Hash      string         `json:"hash,omitempty"`
}

// CalculateHash produces the deterministic SHA256 hash of the event.
func (e *Event) CalculateHash() string {
	h := sha256.New()
	h.Write([]byte(e.PrevHash))
	h.Write([]byte(e.ID))
	h.Write([]byte(e.SessionID))
	h.Write([]byte(e.Timestamp.Format(time.RFC3339Nano)))
	h.Write([]byte(e.Action))
	h.Write([]byte(canonicalJSON(e.Metadata)))
	return hex.EncodeToString(h.Sum(nil))
}

// canonicalJSON renders metadata with sorted keys so hashing is
// deterministic across map iteration orders.
func canonicalJSON(m map[string]any) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]byte, 0, 256)
	out = append(out, '{')
	for i, k := range keys {
		if i > 0 {
			out = append(out, ',')
		}
		keyJSON, _ := json.Marshal(k)
		valJSON, _ := json.Marshal(m[k])
		out = append(out, keyJSON...)
		out = append(out, ':')
		out = append(out, valJSON...)
	}
	out = append(out, '}')
	return string(out)
}

// Logger records review actions. Services depend on this interface,
// not on a concrete sink; a nil-safe no-op implementation exists for
// callers that do not care.
type Logger interface {
	Log(action string, metadata map[string]any) error
}

// NopLogger discards every event.
type NopLogger struct{}

func (NopLogger) Log(string, map[string]any) error { return nil }
