package review

import "testing"

func TestUndoLog_LIFO(t *testing.T) {
	l := NewUndoLog()
	l.Push(0, DispositionPending)
	l.Push(1, DispositionApproved)
	l.Push(0, DispositionFlagged)

	e, ok := l.Pop()
	if !ok || e.Row != 0 || e.Previous != DispositionFlagged {
		t.Errorf("unexpected first pop: %+v ok=%v", e, ok)
	}
	e, ok = l.Pop()
	if !ok || e.Row != 1 || e.Previous != DispositionApproved {
		t.Errorf("unexpected second pop: %+v ok=%v", e, ok)
	}
	e, ok = l.Pop()
	if !ok || e.Row != 0 || e.Previous != DispositionPending {
		t.Errorf("unexpected third pop: %+v ok=%v", e, ok)
	}

	if _, ok := l.Pop(); ok {
		t.Error("expected empty log to report no entry")
	}
}

func TestUndoLog_Clear(t *testing.T) {
	l := NewUndoLog()
	l.Push(0, DispositionPending)
	l.Clear()
	if l.Len() != 0 {
		t.Errorf("expected empty log after clear, got %d", l.Len())
	}
}
