package interaction

import (
	"testing"

	"github.com/joemooney/jmt/pkg/geometry"
	"github.com/joemooney/jmt/pkg/model"
	"github.com/joemooney/jmt/pkg/selection"
)

func TestBeginDragPrefersResizeHandleOverMove(t *testing.T) {
	e, d := newEngine()
	s := d.AddState(geometry.Rect{X: 0, Y: 0, Width: 100, Height: 60})
	e.D.Selection.Select(s.ID)

	e.BeginDrag(geometry.Point{X: 100, Y: 60}, false)
	if e.drag.kind != dragResize {
		t.Fatalf("expected a resize drag at the SE corner, got kind %v", e.drag.kind)
	}
	if e.D.Mode.Mode() != selection.Resize {
		t.Fatalf("expected mode Resize, got %v", e.D.Mode.Mode())
	}
}

func TestContinueDragResizeRecalculatesRegionsBeforeEndDrag(t *testing.T) {
	e, d := newEngine()
	parent := d.AddState(geometry.Rect{X: 0, Y: 0, Width: 100, Height: 60})
	region, err := d.AddRegion(parent.ID, parent.Rect, model.Horizontal)
	if err != nil {
		t.Fatalf("AddRegion: %v", err)
	}
	e.D.Selection.Select(parent.ID)

	e.BeginDrag(geometry.Point{X: 100, Y: 60}, false)
	if e.drag.kind != dragResize {
		t.Fatalf("expected a resize drag, got kind %v", e.drag.kind)
	}
	e.ContinueDrag(geometry.Point{X: 150, Y: 60})

	if got := d.Regions[region.ID].Rect.Width; got != 150 {
		t.Fatalf("expected region width to follow the resize mid-drag (before EndDrag), got %v", got)
	}
}

func TestBeginDragOnSeparatorMovesRegions(t *testing.T) {
	e, d := newEngine()
	parent := d.AddState(geometry.Rect{X: 0, Y: 0, Width: 200, Height: 100})
	left, err := d.AddRegion(parent.ID, geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}, model.Horizontal)
	if err != nil {
		t.Fatalf("AddRegion left: %v", err)
	}
	right, err := d.AddRegion(parent.ID, geometry.Rect{X: 100, Y: 0, Width: 100, Height: 100}, model.Horizontal)
	if err != nil {
		t.Fatalf("AddRegion right: %v", err)
	}

	e.BeginDrag(geometry.Point{X: 100, Y: 50}, false)
	if e.drag.kind != dragSeparator {
		t.Fatalf("expected a separator drag, got kind %v", e.drag.kind)
	}
	e.ContinueDrag(geometry.Point{X: 130, Y: 50})
	e.EndDrag(geometry.Point{X: 130, Y: 50})

	if d.Regions[left.ID].Rect.Width != 130 {
		t.Fatalf("expected left region to grow to width 130, got %v", d.Regions[left.ID].Rect.Width)
	}
	if d.Regions[right.ID].Rect.Width != 70 {
		t.Fatalf("expected right region to shrink to width 70, got %v", d.Regions[right.ID].Rect.Width)
	}
}

func TestMoveSeparatorRefusesToShrinkBelowMinimum(t *testing.T) {
	e, d := newEngine()
	parent := d.AddState(geometry.Rect{X: 0, Y: 0, Width: 200, Height: 100})
	left, err := d.AddRegion(parent.ID, geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}, model.Horizontal)
	if err != nil {
		t.Fatalf("AddRegion left: %v", err)
	}
	right, err := d.AddRegion(parent.ID, geometry.Rect{X: 100, Y: 0, Width: 100, Height: 100}, model.Horizontal)
	if err != nil {
		t.Fatalf("AddRegion right: %v", err)
	}

	e.drag = dragState{kind: dragSeparator, stateID: parent.ID, sepIndex: 0}
	minSep := float64(d.Settings.MinSeparation)
	e.moveSeparator(-(200 - minSep), 0)

	if d.Regions[left.ID].Rect.Width != 100 {
		t.Fatalf("expected left region unchanged by an over-large shrink, got %v", d.Regions[left.ID].Rect.Width)
	}
	if d.Regions[right.ID].Rect.Width != 100 {
		t.Fatalf("expected right region unchanged by an over-large shrink, got %v", d.Regions[right.ID].Rect.Width)
	}
}

func TestMarqueeSelectsOnlyFullyContainedElements(t *testing.T) {
	e, d := newEngine()
	inside := d.AddState(geometry.Rect{X: 10, Y: 10, Width: 20, Height: 20})
	straddling := d.AddState(geometry.Rect{X: 90, Y: 90, Width: 40, Height: 40})
	outside := d.AddState(geometry.Rect{X: 500, Y: 500, Width: 20, Height: 20})

	e.BeginDrag(geometry.Point{X: 0, Y: 0}, false)
	if e.drag.kind != dragMarquee {
		t.Fatalf("expected a marquee drag starting on empty space, got kind %v", e.drag.kind)
	}
	e.ContinueDrag(geometry.Point{X: 100, Y: 100})
	e.EndDrag(geometry.Point{X: 100, Y: 100})

	if !e.D.Selection.Contains(inside.ID) {
		t.Fatal("expected fully contained state to be selected")
	}
	if e.D.Selection.Contains(straddling.ID) {
		t.Fatal("expected straddling state to be excluded from marquee selection")
	}
	if e.D.Selection.Contains(outside.ID) {
		t.Fatal("expected far-away state to be excluded from marquee selection")
	}
}
