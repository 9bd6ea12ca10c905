package review

import "testing"

func TestStatusBoard_DefaultsPending(t *testing.T) {
	b := NewStatusBoard(3)
	for i := 0; i < 3; i++ {
		if got := b.StatusOf(i); got != DispositionPending {
			t.Errorf("row %d: expected pending, got %s", i, got)
		}
	}
	// Out-of-range indexes also read as pending rather than panicking.
	if got := b.StatusOf(99); got != DispositionPending {
		t.Errorf("expected pending for untracked index, got %s", got)
	}
}

func TestStatusBoard_SetReturnsPrevious(t *testing.T) {
	b := NewStatusBoard(2)

	prev, err := b.Set(0, DispositionApproved)
	if err != nil {
		t.Fatal(err)
	}
	if prev != DispositionPending {
		t.Errorf("expected previous pending, got %s", prev)
	}

	prev, err = b.Set(0, DispositionRejected)
	if err != nil {
		t.Fatal(err)
	}
	if prev != DispositionApproved {
		t.Errorf("expected previous approved, got %s", prev)
	}

	if _, err := b.Set(5, DispositionApproved); err == nil {
		t.Error("expected error for out-of-range index")
	}
}

func TestStatusBoard_ApproveAllMonotonic(t *testing.T) {
	b := NewStatusBoard(4)
	b.Set(1, DispositionFlagged)
	b.Set(2, DispositionRejected)

	changed := b.ApproveAll()
	if changed != 2 {
		t.Errorf("expected 2 rows changed, got %d", changed)
	}

	want := []Disposition{DispositionApproved, DispositionFlagged, DispositionRejected, DispositionApproved}
	for i, w := range want {
		if got := b.StatusOf(i); got != w {
			t.Errorf("row %d: expected %s, got %s", i, w, got)
		}
	}

	// A second pass changes nothing.
	if changed := b.ApproveAll(); changed != 0 {
		t.Errorf("expected idempotent second pass, changed %d", changed)
	}
}

func TestStatusBoard_AnyEvery(t *testing.T) {
	b := NewStatusBoard(2)
	if b.Any(DispositionRejected) {
		t.Error("fresh board should have no rejected rows")
	}
	if b.Every(DispositionApproved) {
		t.Error("fresh board is not all approved")
	}

	b.Set(0, DispositionApproved)
	b.Set(1, DispositionApproved)
	if !b.Every(DispositionApproved) {
		t.Error("expected all approved")
	}

	// An empty board is never unanimously anything.
	if NewStatusBoard(0).Every(DispositionApproved) {
		t.Error("empty board must not report unanimous approval")
	}
}

func TestStatusBoard_Counts(t *testing.T) {
	b := NewStatusBoard(3)
	b.Set(0, DispositionApproved)
	b.Set(1, DispositionFlagged)

	counts := b.Counts()
	if counts[DispositionApproved] != 1 || counts[DispositionFlagged] != 1 || counts[DispositionPending] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}
