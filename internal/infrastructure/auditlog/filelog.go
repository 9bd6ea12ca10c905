// Package auditlog appends hash-chained review events to a JSONL file.
package auditlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/recheck-dev/recheck/internal/domain/audit"
)

// FileLogger implements audit.Logger over an append-only JSONL file.
// Each event carries the hash of its predecessor so Verify can detect
// edits or truncation after the fact.
type FileLogger struct {
	mu        sync.Mutex
	path      string
	sessionID string
	lastHash  string
}

// NewFileLogger opens (or creates) the audit file and seeds the hash
// chain from its last entry.
func NewFileLogger(path, sessionID string) (*FileLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create audit directory: %w", err)
	}
	l := &FileLogger{path: path, sessionID: sessionID}

	events, err := readEvents(path)
	if err != nil {
		return nil, err
	}
	if len(events) > 0 {
		l.lastHash = events[len(events)-1].Hash
	}
	return l, nil
}

// Log appends one event to the chain.
func (l *FileLogger) Log(action string, metadata map[string]any) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := audit.Event{
		ID:        uuid.NewString(),
		SessionID: l.sessionID,
		Timestamp: time.Now().UTC(),
		Action:    action,
		Metadata:  metadata,
		PrevHash:  l.lastHash,
	}
	e.Hash = e.CalculateHash()

	line, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	l.lastHash = e.Hash
	return nil
}

// Verify re-reads the file and checks the hash chain end to end.
func Verify(path string) error {
	events, err := readEvents(path)
	if err != nil {
		return err
	}
	prev := ""
	for i, e := range events {
		if e.PrevHash != prev {
			return fmt.Errorf("audit chain broken at entry %d: prev_hash mismatch", i)
		}
		if e.CalculateHash() != e.Hash {
			return fmt.Errorf("audit chain broken at entry %d: hash mismatch", i)
		}
		prev = e.Hash
	}
	return nil
}

func readEvents(path string) ([]audit.Event, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var events []audit.Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e audit.Event
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("corrupt audit entry: %w", err)
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	return events, nil
}
