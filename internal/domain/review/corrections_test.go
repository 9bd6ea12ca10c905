package review

import "testing"

func TestCorrectionSet_EditAndRevert(t *testing.T) {
	s := NewCorrectionSet()

	s.Edit(0, "price", StringValue("10"), StringValue("12"))
	if s.Len() != 1 {
		t.Fatalf("expected 1 correction, got %d", s.Len())
	}

	// Editing back to the original removes the entry instead of
	// storing a no-op.
	s.Edit(0, "price", StringValue("10"), StringValue("10"))
	if !s.Empty() {
		t.Errorf("expected empty set after reverting edit, got %d entries", s.Len())
	}
}

func TestCorrectionSet_OneEntryPerCell(t *testing.T) {
	s := NewCorrectionSet()

	s.Edit(0, "price", StringValue("10"), StringValue("12"))
	s.Edit(0, "price", StringValue("10"), StringValue("14"))
	if s.Len() != 1 {
		t.Fatalf("expected 1 correction after re-edit, got %d", s.Len())
	}
	c, ok := s.Get(0, "price")
	if !ok {
		t.Fatal("expected correction for (0, price)")
	}
	if c.Corrected.String() != "14" {
		t.Errorf("expected latest corrected value 14, got %s", c.Corrected.String())
	}
}

func TestCorrectionSet_IdempotentOverEditSequences(t *testing.T) {
	// Arbitrary sequences of edits on one cell that end at the
	// original value must leave the set untouched.
	sequences := [][]string{
		{"12", "10"},
		{"12", "14", "10"},
		{"10"},
		{"12", "10", "12", "10"},
	}
	for _, seq := range sequences {
		s := NewCorrectionSet()
		original := StringValue("10")
		for _, v := range seq {
			s.Edit(0, "price", original, StringValue(v))
		}
		if !s.Empty() {
			t.Errorf("sequence %v: expected no corrections, got %d", seq, s.Len())
		}
	}
}

func TestCorrectionSet_DistinctCells(t *testing.T) {
	s := NewCorrectionSet()
	s.Edit(0, "price", StringValue("10"), StringValue("12"))
	s.Edit(1, "price", StringValue("20"), StringValue("22"))
	s.Edit(0, "name", StringValue("a"), StringValue("b"))
	if s.Len() != 3 {
		t.Fatalf("expected 3 corrections, got %d", s.Len())
	}

	s.Clear()
	if !s.Empty() {
		t.Error("expected empty set after Clear")
	}
}

func TestCorrectionSet_NumericStringification(t *testing.T) {
	// A numeric original and a string edit that stringifies equal are
	// a revert, not a correction.
	original, err := NumberValue("10")
	if err != nil {
		t.Fatal(err)
	}
	s := NewCorrectionSet()
	s.Edit(0, "qty", original, StringValue("10"))
	if !s.Empty() {
		t.Errorf("expected no correction when values stringify equal, got %d", s.Len())
	}
}

func TestCorrectionSet_Wire(t *testing.T) {
	s := NewCorrectionSet()
	s.Edit(0, "price", StringValue("10"), StringValue("12"))

	wire := s.Wire()
	if len(wire) != 1 {
		t.Fatalf("expected 1 wire entry, got %d", len(wire))
	}
	e := wire[0]
	if e.Field != "price" || e.OriginalValue != "10" || e.CorrectedValue != "12" {
		t.Errorf("unexpected wire entry: %+v", e)
	}

	if NewCorrectionSet().Wire() != nil {
		t.Error("expected nil wire form for empty set")
	}
}
