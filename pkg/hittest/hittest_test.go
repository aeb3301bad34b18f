package hittest

import (
	"testing"

	"github.com/joemooney/jmt/pkg/geometry"
	"github.com/joemooney/jmt/pkg/model"
	"github.com/joemooney/jmt/pkg/routing"
)

func TestHitTestPrefersSmallestAreaNode(t *testing.T) {
	d := model.New(model.StateMachine, "t")
	outer := d.AddState(geometry.Rect{X: 0, Y: 0, Width: 200, Height: 200})
	inner := d.AddState(geometry.Rect{X: 50, Y: 50, Width: 20, Height: 20})

	id, ok := HitTest(d, geometry.Point{X: 55, Y: 55})
	if !ok || id != inner.ID {
		t.Fatalf("expected inner %v, got %v ok=%v", inner.ID, id, ok)
	}
	_ = outer
}

func TestHitTestFindsConnectionNearSegment(t *testing.T) {
	d := model.New(model.StateMachine, "t")
	a := d.AddState(geometry.Rect{X: 0, Y: 0, Width: 100, Height: 60})
	b := d.AddState(geometry.Rect{X: 0, Y: 200, Width: 100, Height: 60})
	c, err := d.AddConnection(a.ID, b.ID)
	if err != nil {
		t.Fatalf("AddConnection: %v", err)
	}
	routing.Recompute(d)

	mid := c.Segments[len(c.Segments)/2]
	id, ok := HitTest(d, mid)
	if !ok || id != c.ID {
		t.Fatalf("expected connection %v near its own midpoint, got %v ok=%v", c.ID, id, ok)
	}
}

func TestHitTestMissReturnsFalse(t *testing.T) {
	d := model.New(model.StateMachine, "t")
	d.AddState(geometry.Rect{X: 0, Y: 0, Width: 20, Height: 20})

	if _, ok := HitTest(d, geometry.Point{X: 900, Y: 900}); ok {
		t.Fatal("expected no hit far from any element")
	}
}

func TestPaintOrderPutsRegionsBeforeNodesAndConnectionsLast(t *testing.T) {
	d := model.New(model.StateMachine, "t")
	a := d.AddState(geometry.Rect{X: 0, Y: 0, Width: 100, Height: 60})
	b := d.AddState(geometry.Rect{X: 0, Y: 200, Width: 100, Height: 60})
	c, err := d.AddConnection(a.ID, b.ID)
	if err != nil {
		t.Fatalf("AddConnection: %v", err)
	}

	order := PaintOrder(d)
	idx := make(map[string]int, len(order))
	for i, id := range order {
		idx[string(id)] = i
	}
	if idx[string(c.ID)] < idx[string(a.ID)] || idx[string(c.ID)] < idx[string(b.ID)] {
		t.Fatalf("expected connection to paint after both endpoint states")
	}
	if idx[string(d.RootRegionID)] > idx[string(a.ID)] {
		t.Fatalf("expected the root region to paint before states")
	}
}

func TestContentBoundsUnionsNonRegionElements(t *testing.T) {
	d := model.New(model.StateMachine, "t")
	d.AddState(geometry.Rect{X: 0, Y: 0, Width: 50, Height: 50})
	d.AddState(geometry.Rect{X: 100, Y: 100, Width: 20, Height: 20})

	got := ContentBounds(d)
	want := geometry.Rect{X: 0, Y: 0, Width: 120, Height: 120}
	if got != want {
		t.Fatalf("expected bounds %v, got %v", want, got)
	}
}
