package review

import "testing"

func TestLifecycle_HappyPath(t *testing.T) {
	l, err := NewLifecycle()
	if err != nil {
		t.Fatal(err)
	}
	if l.Phase() != PhaseIdle {
		t.Fatalf("expected idle start, got %s", l.Phase())
	}

	steps := []struct {
		event string
		want  string
	}{
		{EventLoad, PhaseLoading},
		{EventLoaded, PhaseReviewing},
		{EventCommit, PhaseCommitting},
		{EventCommitted, PhaseRefreshing},
		{EventLoaded, PhaseReviewing},
		{EventLoad, PhaseRefreshing},
		{EventExhausted, PhaseDrained},
	}
	for _, s := range steps {
		if err := l.Fire(s.event); err != nil {
			t.Fatalf("fire %s: %v", s.event, err)
		}
		if l.Phase() != s.want {
			t.Fatalf("after %s: expected %s, got %s", s.event, s.want, l.Phase())
		}
	}

	if !l.Drained() {
		t.Error("expected drained terminal state")
	}
	// Drained is terminal: no event leaves it.
	if err := l.Fire(EventLoad); err == nil {
		t.Error("expected load to be invalid when drained")
	}
}

func TestLifecycle_FailuresPreserveRecord(t *testing.T) {
	l, _ := NewLifecycle()

	// A failed first load returns to idle.
	l.Fire(EventLoad)
	if err := l.Fire(EventLoadFailed); err != nil {
		t.Fatal(err)
	}
	if l.Phase() != PhaseIdle {
		t.Errorf("expected idle after first-load failure, got %s", l.Phase())
	}

	// A failed navigation load returns to reviewing with the old
	// record still on screen.
	l.Fire(EventLoad)
	l.Fire(EventLoaded)
	l.Fire(EventLoad)
	if err := l.Fire(EventLoadFailed); err != nil {
		t.Fatal(err)
	}
	if l.Phase() != PhaseReviewing {
		t.Errorf("expected reviewing after navigation failure, got %s", l.Phase())
	}

	// A failed commit also returns to reviewing.
	l.Fire(EventCommit)
	if err := l.Fire(EventCommitFailed); err != nil {
		t.Fatal(err)
	}
	if l.Phase() != PhaseReviewing {
		t.Errorf("expected reviewing after commit failure, got %s", l.Phase())
	}
}

func TestLifecycle_GuardsMutation(t *testing.T) {
	l, _ := NewLifecycle()
	if l.CanMutate() {
		t.Error("idle must not allow mutation")
	}
	if l.InFlight() {
		t.Error("idle has nothing in flight")
	}

	l.Fire(EventLoad)
	if !l.InFlight() {
		t.Error("loading is in flight")
	}

	l.Fire(EventLoaded)
	if !l.CanMutate() {
		t.Error("reviewing must allow mutation")
	}

	l.Fire(EventCommit)
	if l.CanMutate() {
		t.Error("committing must not allow mutation")
	}

	// Invalid events report an error and stay put.
	if err := l.Fire(EventLoad); err == nil {
		t.Error("expected error firing load while committing")
	}
	if l.Phase() != PhaseCommitting {
		t.Errorf("phase moved on invalid event: %s", l.Phase())
	}
}
