// Package application orchestrates the review engine against the
// queue transport: cursor loads, the commit/advance protocol, and the
// bookkeeping the domain layer deliberately does not own.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/recheck-dev/recheck/internal/domain/audit"
	"github.com/recheck-dev/recheck/internal/domain/review"
)

// SessionService drives one operator's review session. All mutations
// are synchronous and must run on a single goroutine; the only
// concurrency-aware piece is the load generation counter, which lets a
// caller running network fetches off-thread discard stale responses
// instead of letting a slow load overwrite a newer one.
type SessionService struct {
	queue     review.Queue
	session   *review.Session
	lifecycle *review.Lifecycle
	audit     audit.Logger
	logger    *slog.Logger

	sessionID string
	sourceID  string

	rejectionReason string
	gen             int

	outcomes  map[review.Outcome]int
	startedAt time.Time
}

// Option configures a SessionService.
type Option func(*SessionService)

// WithAudit attaches an audit sink for review actions.
func WithAudit(a audit.Logger) Option {
	return func(s *SessionService) { s.audit = a }
}

// WithLogger attaches a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *SessionService) { s.logger = l }
}

// WithSourceFilter restricts the queue to records from one source.
func WithSourceFilter(sourceID string) Option {
	return func(s *SessionService) { s.sourceID = sourceID }
}

// WithSessionID overrides the generated session identifier so callers
// can correlate the audit sink with the service.
func WithSessionID(id string) Option {
	return func(s *SessionService) { s.sessionID = id }
}

// NewSessionService creates a service over the given queue transport.
func NewSessionService(queue review.Queue, opts ...Option) (*SessionService, error) {
	lifecycle, err := review.NewLifecycle()
	if err != nil {
		return nil, err
	}
	s := &SessionService{
		queue:     queue,
		session:   review.NewSession(),
		lifecycle: lifecycle,
		audit:     audit.NopLogger{},
		logger:    slog.Default(),
		sessionID: uuid.NewString(),
		outcomes:  make(map[review.Outcome]int),
		startedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.record("session.start", map[string]any{"source_filter": s.sourceID})
	return s, nil
}

// Session exposes the per-record review state for rendering.
func (s *SessionService) Session() *review.Session { return s.session }

// SessionID identifies this operator session in the audit trail.
func (s *SessionService) SessionID() string { return s.sessionID }

// Phase returns the lifecycle phase.
func (s *SessionService) Phase() string { return s.lifecycle.Phase() }

// Busy reports whether a network operation is in flight.
func (s *SessionService) Busy() bool { return s.lifecycle.InFlight() }

// Drained reports the terminal queue-exhausted state.
func (s *SessionService) Drained() bool { return s.lifecycle.Drained() }

// RejectionReason returns the reason entered for the current record.
func (s *SessionService) RejectionReason() string { return s.rejectionReason }

// LoadTicket identifies one cursor step. The generation makes stale
// in-flight responses detectable.
type LoadTicket struct {
	Gen   int
	Query review.QueueQuery
}

// LoadResult carries a finished cursor step back to ApplyLoad.
type LoadResult struct {
	Ticket LoadTicket
	Step   *review.QueueStep
	Source *review.SourceContent
	Err    error
}

// StartLoad opens a cursor step in the given direction, anchored on
// the current record when one is loaded. It advances the lifecycle and
// bumps the load generation; the caller performs the network fetch
// (FetchStep) and hands the result to ApplyLoad.
func (s *SessionService) StartLoad(dir review.Direction) (LoadTicket, error) {
	switch s.lifecycle.Phase() {
	case review.PhaseDrained:
		return LoadTicket{}, review.ErrQueueDrained
	case review.PhaseLoading, review.PhaseCommitting:
		return LoadTicket{}, review.ErrBusy
	case review.PhaseIdle, review.PhaseReviewing:
		if err := s.lifecycle.Fire(review.EventLoad); err != nil {
			return LoadTicket{}, err
		}
	case review.PhaseRefreshing:
		// Post-commit advance or a superseding navigation; the phase
		// is already in flight and the new generation wins.
	}

	s.gen++
	q := review.QueueQuery{Direction: dir, SourceID: s.sourceID}
	if s.session.HasRecord() {
		q.AnchorID = s.session.Record().ID
	}
	return LoadTicket{Gen: s.gen, Query: q}, nil
}

// FetchStep performs the network half of a cursor step. It touches no
// session state and is safe to run off the update goroutine. The
// source-content fetch is best-effort: failure degrades the source
// pane, never the load.
func (s *SessionService) FetchStep(ctx context.Context, t LoadTicket) LoadResult {
	res := LoadResult{Ticket: t}
	res.Step, res.Err = s.queue.Next(ctx, t.Query)
	if res.Err != nil || res.Step == nil || !res.Step.HasNext || res.Step.Record == nil {
		return res
	}
	src, err := s.queue.SourceContent(ctx, res.Step.Record.ID)
	if err != nil {
		s.logger.Warn("source content unavailable",
			"record_id", res.Step.Record.ID,
			"error", err)
		return res
	}
	res.Source = src
	return res
}

// ApplyLoad installs a finished cursor step. Stale results (an older
// generation than the most recent StartLoad) are discarded silently.
// Failures leave the current record and all per-record state intact.
func (s *SessionService) ApplyLoad(res LoadResult) error {
	if res.Ticket.Gen != s.gen {
		s.logger.Debug("discarding stale load", "gen", res.Ticket.Gen, "current", s.gen)
		return nil
	}
	if res.Err != nil {
		s.lifecycle.Fire(review.EventLoadFailed)
		return fmt.Errorf("load review: %w", res.Err)
	}
	if res.Step == nil || !res.Step.HasNext {
		s.session.Drain()
		s.lifecycle.Fire(review.EventExhausted)
		s.record("queue.drained", nil)
		return nil
	}

	s.session.Reset(res.Step.Record, res.Step.Meta, res.Source, res.Step.Position, res.Step.TotalPending)
	s.rejectionReason = ""
	s.lifecycle.Fire(review.EventLoaded)
	s.record("record.load", map[string]any{
		"record_id": res.Step.Record.ID,
		"rows":      res.Step.Record.RowCount(),
		"position":  res.Step.Position,
	})
	return nil
}

// Load performs a full synchronous cursor step.
func (s *SessionService) Load(ctx context.Context, dir review.Direction) error {
	t, err := s.StartLoad(dir)
	if err != nil {
		return err
	}
	return s.ApplyLoad(s.FetchStep(ctx, t))
}

// guardMutation rejects store mutations outside the reviewing phase.
func (s *SessionService) guardMutation() error {
	if !s.session.HasRecord() {
		return review.ErrNoRecord
	}
	if !s.lifecycle.CanMutate() {
		return review.ErrBusy
	}
	return nil
}

// Approve marks the selected row approved and advances the cursor.
func (s *SessionService) Approve() error {
	return s.dispose(review.DispositionApproved)
}

// Flag marks the selected row flagged and advances the cursor.
func (s *SessionService) Flag() error {
	return s.dispose(review.DispositionFlagged)
}

// Reject marks the selected row rejected, remembers the reason for
// the eventual commit, and advances the cursor.
func (s *SessionService) Reject(reason string) error {
	if err := s.dispose(review.DispositionRejected); err != nil {
		return err
	}
	s.rejectionReason = reason
	return nil
}

func (s *SessionService) dispose(d review.Disposition) error {
	if err := s.guardMutation(); err != nil {
		return err
	}
	row := s.session.SelectedRow()
	if err := s.session.Dispose(d); err != nil {
		return err
	}
	s.record("row.dispose", map[string]any{
		"record_id":   s.session.Record().ID,
		"row":         row,
		"disposition": string(d),
	})
	return nil
}

// SetStatus applies a disposition to an explicit row without moving
// the selection cursor.
func (s *SessionService) SetStatus(row int, d review.Disposition) error {
	if err := s.guardMutation(); err != nil {
		return err
	}
	if err := s.session.SetStatus(row, d); err != nil {
		return err
	}
	s.record("row.dispose", map[string]any{
		"record_id":   s.session.Record().ID,
		"row":         row,
		"disposition": string(d),
	})
	return nil
}

// ApproveAll promotes every pending row to approved and returns how
// many rows changed. The bulk action is not undoable.
func (s *SessionService) ApproveAll() (int, error) {
	if err := s.guardMutation(); err != nil {
		return 0, err
	}
	changed, err := s.session.ApproveAll()
	if err != nil {
		return 0, err
	}
	if changed > 0 {
		s.record("rows.approve_all", map[string]any{
			"record_id": s.session.Record().ID,
			"changed":   changed,
		})
	}
	return changed, nil
}

// Undo reverses the most recent disposition change. ok=false means
// there was nothing to undo; callers surface a notice, not an error.
func (s *SessionService) Undo() (row int, ok bool) {
	if s.guardMutation() != nil {
		return 0, false
	}
	row, ok = s.session.Undo()
	if ok {
		s.record("row.undo", map[string]any{
			"record_id": s.session.Record().ID,
			"row":       row,
		})
	}
	return row, ok
}

// EditCell records a correction for a field of the selected row. The
// replacement keeps the original value's kind when the input parses as
// that kind, so a numeric cell stays numeric.
func (s *SessionService) EditCell(field, input string) error {
	if err := s.guardMutation(); err != nil {
		return err
	}
	row, _ := s.session.Row()
	original, ok := row.Value(field)
	if !ok {
		return review.ErrUnknownField
	}
	corrected := review.ParseValue(input, original.Kind())
	if err := s.session.EditCell(field, corrected); err != nil {
		return err
	}
	s.record("cell.correct", map[string]any{
		"record_id": s.session.Record().ID,
		"row":       s.session.SelectedRow(),
		"field":     field,
	})
	return nil
}

// ClearCorrections drops every correction for the current record.
func (s *SessionService) ClearCorrections() error {
	if err := s.guardMutation(); err != nil {
		return err
	}
	s.session.ClearCorrections()
	s.record("corrections.clear", map[string]any{"record_id": s.session.Record().ID})
	return nil
}

// CommitTicket identifies one in-flight commit.
type CommitTicket struct {
	RecordID string
	Payload  review.CommitPayload
}

// StartCommit resolves the aggregate outcome and opens the commit.
// The caller performs the network write (PerformCommit) and reports
// back via ApplyCommit; on failure every local store stays untouched
// so the operator can retry.
func (s *SessionService) StartCommit() (CommitTicket, error) {
	if err := s.guardMutation(); err != nil {
		return CommitTicket{}, err
	}
	payload, err := s.session.CommitPayload(s.rejectionReason)
	if err != nil {
		return CommitTicket{}, err
	}
	if err := s.lifecycle.Fire(review.EventCommit); err != nil {
		return CommitTicket{}, err
	}
	return CommitTicket{RecordID: s.session.Record().ID, Payload: payload}, nil
}

// PerformCommit executes the network write for a commit ticket. Like
// FetchStep it touches no session state.
func (s *SessionService) PerformCommit(ctx context.Context, t CommitTicket) error {
	return s.queue.Commit(ctx, t.RecordID, t.Payload)
}

// ApplyCommit settles a finished commit. On failure the session is
// left exactly as it was; on success the outcome is tallied and the
// caller advances the queue with StartLoad(forward).
func (s *SessionService) ApplyCommit(t CommitTicket, err error) error {
	if err != nil {
		s.lifecycle.Fire(review.EventCommitFailed)
		return fmt.Errorf("commit review %s: %w", t.RecordID, err)
	}
	s.outcomes[t.Payload.Status]++
	s.lifecycle.Fire(review.EventCommitted)
	s.record("record.commit", map[string]any{
		"record_id":   t.RecordID,
		"status":      string(t.Payload.Status),
		"corrections": len(t.Payload.Corrections),
		"duration_ms": t.Payload.DurationMS,
	})
	return nil
}

// Commit performs the full synchronous save-and-advance: resolve,
// submit, then step the cursor forward anchored on the committed id.
func (s *SessionService) Commit(ctx context.Context) error {
	t, err := s.StartCommit()
	if err != nil {
		return err
	}
	if err := s.ApplyCommit(t, s.PerformCommit(ctx, t)); err != nil {
		return err
	}
	lt, err := s.StartLoad(review.DirectionForward)
	if err != nil {
		return err
	}
	return s.ApplyLoad(s.FetchStep(ctx, lt))
}

// Revert asks the server to reset a committed record to pending.
func (s *SessionService) Revert(ctx context.Context, recordID string) error {
	if err := s.queue.Revert(ctx, recordID); err != nil {
		return fmt.Errorf("revert review %s: %w", recordID, err)
	}
	s.record("record.revert", map[string]any{"record_id": recordID})
	return nil
}

// Summary tallies what the session committed.
type Summary struct {
	Outcomes map[review.Outcome]int
	Total    int
	Elapsed  time.Duration
}

// Summary returns the running per-outcome tallies for this session.
func (s *SessionService) Summary() Summary {
	out := Summary{
		Outcomes: make(map[review.Outcome]int, len(s.outcomes)),
		Elapsed:  time.Since(s.startedAt),
	}
	for k, v := range s.outcomes {
		out.Outcomes[k] = v
		out.Total += v
	}
	return out
}

func (s *SessionService) record(action string, metadata map[string]any) {
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["session_id"] = s.sessionID
	if err := s.audit.Log(action, metadata); err != nil {
		s.logger.Warn("audit log failed", "action", action, "error", err)
	}
}
