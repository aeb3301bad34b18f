package routing

import (
	"testing"

	"github.com/joemooney/jmt/pkg/geometry"
	"github.com/joemooney/jmt/pkg/model"
	"pgregory.net/rapid"
)

func TestSelectSidesVerticalStack(t *testing.T) {
	source := geometry.Rect{X: 0, Y: 0, Width: 50, Height: 50}
	target := geometry.Rect{X: 0, Y: 100, Width: 50, Height: 50}
	sSide, tSide := SelectSides(source, target, 10)
	if sSide != model.Bottom || tSide != model.Top {
		t.Fatalf("got %v/%v, want Bottom/Top", sSide, tSide)
	}
}

func TestSelectSidesHorizontalFallback(t *testing.T) {
	source := geometry.Rect{X: 0, Y: 0, Width: 50, Height: 50}
	target := geometry.Rect{X: 100, Y: 10, Width: 50, Height: 50}
	sSide, tSide := SelectSides(source, target, 10)
	if sSide != model.Right || tSide != model.Left {
		t.Fatalf("got %v/%v, want Right/Left", sSide, tSide)
	}
}

func TestComputeSegmentsProducesFourPoints(t *testing.T) {
	d := model.New(model.StateMachine, "t")
	a := d.AddState(geometry.Rect{X: 0, Y: 0, Width: 50, Height: 50})
	b := d.AddState(geometry.Rect{X: 0, Y: 200, Width: 50, Height: 50})
	c, err := d.AddConnection(a.ID, b.ID)
	if err != nil {
		t.Fatalf("AddConnection: %v", err)
	}
	if err := ComputeSegments(d, c.ID); err != nil {
		t.Fatalf("ComputeSegments: %v", err)
	}
	if len(c.Segments) != 4 {
		t.Fatalf("expected 4 segment points, got %d", len(c.Segments))
	}
	if c.SourceSide != model.Bottom || c.TargetSide != model.Top {
		t.Fatalf("expected Bottom/Top sides, got %v/%v", c.SourceSide, c.TargetSide)
	}
}

func TestComputeSegmentsSelfLoopIgnoresAlignment(t *testing.T) {
	d := model.New(model.StateMachine, "t")
	a := d.AddState(geometry.Rect{X: 0, Y: 0, Width: 50, Height: 50})
	c, err := d.AddConnection(a.ID, a.ID)
	if err != nil {
		t.Fatalf("AddConnection: %v", err)
	}
	if !c.SelfLoop {
		t.Fatal("expected SelfLoop")
	}
	if err := ComputeSegments(d, c.ID); err != nil {
		t.Fatalf("ComputeSegments: %v", err)
	}
	if len(c.Segments) == 0 {
		t.Fatal("expected non-empty self-loop segments")
	}
}

func TestAssignSlotsSingleAlignedConnectionIsCentred(t *testing.T) {
	d := model.New(model.StateMachine, "t")
	a := d.AddState(geometry.Rect{X: 0, Y: 0, Width: 50, Height: 50})
	b := d.AddState(geometry.Rect{X: 0, Y: 200, Width: 50, Height: 50})
	c, _ := d.AddConnection(a.ID, b.ID)

	AssignSlots(d)

	if c.SlotOffset != 0 {
		t.Fatalf("expected SlotOffset 0 for the sole aligned connection, got %v", c.SlotOffset)
	}
}

func TestAssignSlotsMultipleNonAlignedSpreadSymmetrically(t *testing.T) {
	d := model.New(model.StateMachine, "t")
	source := d.AddState(geometry.Rect{X: 0, Y: 0, Width: 200, Height: 50})
	t1 := d.AddState(geometry.Rect{X: -300, Y: 200, Width: 50, Height: 50})
	t2 := d.AddState(geometry.Rect{X: 300, Y: 200, Width: 50, Height: 50})

	c1, _ := d.AddConnection(source.ID, t1.ID)
	c2, _ := d.AddConnection(source.ID, t2.ID)

	AssignSlots(d)

	if c1.SlotOffset == c2.SlotOffset {
		t.Fatalf("expected distinct slot offsets, got %v and %v", c1.SlotOffset, c2.SlotOffset)
	}
	if c1.SlotOffset+c2.SlotOffset != 0 {
		t.Fatalf("expected symmetric offsets around 0, got %v and %v", c1.SlotOffset, c2.SlotOffset)
	}
}

func TestLabelHitTestRespectsBoundingBox(t *testing.T) {
	c := &model.Connection{Segments: []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 20, Y: 10}}}
	anchor := c.LabelAnchor()
	if !LabelHitTest(c, anchor, 5, 5) {
		t.Fatal("expected hit exactly at anchor")
	}
	if LabelHitTest(c, geometry.Point{X: anchor.X + 100, Y: anchor.Y}, 5, 5) {
		t.Fatal("expected miss far from anchor")
	}
}

func TestProperty_RecomputeNeverPanicsAndProducesSegments(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := model.New(model.StateMachine, "t")
		n := rapid.IntRange(1, 6).Draw(rt, "n")
		var ids []*model.State
		for i := 0; i < n; i++ {
			x := rapid.Float64Range(0, 1000).Draw(rt, "x")
			y := rapid.Float64Range(0, 1000).Draw(rt, "y")
			ids = append(ids, d.AddState(geometry.Rect{X: x, Y: y, Width: 40, Height: 40}))
		}
		for i := 0; i < n-1; i++ {
			if _, err := d.AddConnection(ids[i].ID, ids[i+1].ID); err != nil {
				t.Fatalf("AddConnection: %v", err)
			}
		}

		Recompute(d)

		for _, c := range d.Connections {
			if len(c.Segments) < 2 {
				t.Fatalf("connection %v has too few segments: %v", c.ID, c.Segments)
			}
		}
	})
}
