package review

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Session lifecycle phases.
const (
	PhaseIdle       = "idle"       // no record, nothing in flight
	PhaseLoading    = "loading"    // first load in flight, nothing on screen
	PhaseReviewing  = "reviewing"  // record on screen, mutations legal
	PhaseRefreshing = "refreshing" // navigation load in flight, record still on screen
	PhaseCommitting = "committing" // commit in flight
	PhaseDrained    = "drained"    // queue exhausted, terminal
)

// Lifecycle events.
const (
	EventLoad         = "load"
	EventLoaded       = "loaded"
	EventLoadFailed   = "load_failed"
	EventExhausted    = "exhausted"
	EventCommit       = "commit"
	EventCommitted    = "committed"
	EventCommitFailed = "commit_failed"
)

// LifecycleContext carries no data; the machine only sequences phases.
type LifecycleContext struct{}

// Lifecycle guards which engine operations are legal in which phase.
// A failed load from the reviewing phase returns to reviewing with the
// old record intact, which is why loading and refreshing are distinct
// phases rather than one.
type Lifecycle struct {
	interpreter *statekit.Interpreter[LifecycleContext]
}

// NewLifecycle builds the session phase machine starting at idle.
func NewLifecycle() (*Lifecycle, error) {
	builder := statekit.NewMachine[LifecycleContext]("review-session").
		WithInitial(statekit.StateID(PhaseIdle)).
		WithContext(LifecycleContext{})

	builder.State(PhaseIdle).
		On(EventLoad).Target(PhaseLoading).
		Done()

	builder.State(PhaseLoading).
		On(EventLoaded).Target(PhaseReviewing).
		On(EventLoadFailed).Target(PhaseIdle).
		On(EventExhausted).Target(PhaseDrained).
		Done()

	builder.State(PhaseReviewing).
		On(EventLoad).Target(PhaseRefreshing).
		On(EventCommit).Target(PhaseCommitting).
		Done()

	builder.State(PhaseRefreshing).
		On(EventLoaded).Target(PhaseReviewing).
		On(EventLoadFailed).Target(PhaseReviewing).
		On(EventExhausted).Target(PhaseDrained).
		Done()

	builder.State(PhaseCommitting).
		On(EventCommitted).Target(PhaseRefreshing).
		On(EventCommitFailed).Target(PhaseReviewing).
		Done()

	builder.State(PhaseDrained).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build session lifecycle: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &Lifecycle{interpreter: interpreter}, nil
}

// Fire sends an event and reports whether it caused a transition.
func (l *Lifecycle) Fire(event string) error {
	before := l.Phase()
	l.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	if l.Phase() == before {
		return fmt.Errorf("event %q is not valid in phase %q", event, before)
	}
	return nil
}

// Phase returns the current lifecycle phase.
func (l *Lifecycle) Phase() string {
	return string(l.interpreter.State().Value)
}

// CanMutate reports whether row dispositions, corrections and undo are
// legal right now.
func (l *Lifecycle) CanMutate() bool {
	return l.Phase() == PhaseReviewing
}

// InFlight reports whether a network operation is pending.
func (l *Lifecycle) InFlight() bool {
	switch l.Phase() {
	case PhaseLoading, PhaseRefreshing, PhaseCommitting:
		return true
	}
	return false
}

// Drained reports the terminal queue-exhausted phase.
func (l *Lifecycle) Drained() bool {
	return l.Phase() == PhaseDrained
}
