package history_test

import (
	"testing"

	"github.com/joemooney/jmt/pkg/history"
	"pgregory.net/rapid"
)

func TestUndoRedoRoundTrip(t *testing.T) {
	s := history.NewStacks()

	s.Push([]byte("v1"))
	snap, ok := s.Undo([]byte("v2"))
	if !ok || string(snap) != "v1" {
		t.Fatalf("Undo() = %q, %v, want v1, true", snap, ok)
	}

	snap, ok = s.Redo([]byte("v1"))
	if !ok || string(snap) != "v2" {
		t.Fatalf("Redo() = %q, %v, want v2, true", snap, ok)
	}
}

func TestPushClearsRedo(t *testing.T) {
	s := history.NewStacks()
	s.Push([]byte("v1"))
	s.Undo([]byte("v2"))
	if !s.CanRedo() {
		t.Fatal("expected redo available after undo")
	}
	s.Push([]byte("v3"))
	if s.CanRedo() {
		t.Error("Push must clear the redo stack")
	}
}

func TestCapacityBoundsUndoDepth(t *testing.T) {
	s := history.NewStacksWithCapacity(3)
	for i := 0; i < 10; i++ {
		s.Push([]byte{byte(i)})
	}
	if s.Depth() != 3 {
		t.Errorf("Depth() = %d, want 3", s.Depth())
	}
}

// TestProperty_UndoRedoIsInvolution checks undo(redo(x)) == x and
// redo(undo(x)) == x at snapshot granularity, per §8's round-trip law.
func TestProperty_UndoRedoIsInvolution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.SliceOfN(rapid.Byte(), 1, 20).Draw(t, "a")
		b := rapid.SliceOfN(rapid.Byte(), 1, 20).Draw(t, "b")

		s := history.NewStacks()
		s.Push(a)

		snap, ok := s.Undo(b)
		if !ok {
			t.Fatal("Undo() should have a snapshot")
		}
		restored, ok := s.Redo(snap)
		if !ok {
			t.Fatal("Redo() should have a snapshot")
		}
		if string(restored) != string(b) {
			t.Fatalf("redo(undo(x)) = %v, want %v", restored, b)
		}
	})
}
