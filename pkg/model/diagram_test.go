package model

import (
	"testing"

	"github.com/joemooney/jmt/pkg/elementid"
	"github.com/joemooney/jmt/pkg/geometry"
	"pgregory.net/rapid"
)

func TestNewDiagramHasRootRegion(t *testing.T) {
	d := New(StateMachine, "untitled")
	if _, ok := d.Regions[d.RootRegionID]; !ok {
		t.Fatal("root region missing from Regions map")
	}
	if !d.Regions[d.RootRegionID].IsRoot {
		t.Fatal("root region not flagged IsRoot")
	}
}

func TestAddStateAndDelete(t *testing.T) {
	d := New(StateMachine, "untitled")
	s := d.AddState(geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100})
	if kind, ok := d.ElementKindOf(s.ID); !ok || kind != KindState {
		t.Fatalf("expected KindState, got %v ok=%v", kind, ok)
	}
	if err := d.Delete(s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := d.States[s.ID]; ok {
		t.Fatal("state still present after Delete")
	}
	if _, ok := d.ElementKindOf(s.ID); ok {
		t.Fatal("kindIndex still has entry after Delete")
	}
}

func TestDeleteUnknownIDReturnsNotFound(t *testing.T) {
	d := New(StateMachine, "untitled")
	if err := d.Delete(elementid.New()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddPseudoStateRejectsDuplicateInitial(t *testing.T) {
	d := New(StateMachine, "untitled")
	rect := geometry.Rect{X: 0, Y: 0, Width: 20, Height: 20}
	if _, err := d.AddPseudoState(Initial, rect, d.RootRegionID); err != nil {
		t.Fatalf("first Initial: %v", err)
	}
	if _, err := d.AddPseudoState(Initial, rect, d.RootRegionID); err != ErrDuplicateInitial {
		t.Fatalf("expected ErrDuplicateInitial, got %v", err)
	}
}

func TestAddConnectionSelfLoop(t *testing.T) {
	d := New(StateMachine, "untitled")
	s := d.AddState(geometry.Rect{X: 0, Y: 0, Width: 50, Height: 50})
	c, err := d.AddConnection(s.ID, s.ID)
	if err != nil {
		t.Fatalf("AddConnection: %v", err)
	}
	if !c.SelfLoop {
		t.Fatal("expected SelfLoop true when source == target")
	}
}

func TestAddConnectionUnknownEndpoint(t *testing.T) {
	d := New(StateMachine, "untitled")
	s := d.AddState(geometry.Rect{X: 0, Y: 0, Width: 50, Height: 50})
	if _, err := d.AddConnection(s.ID, elementid.New()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteStateRemovesIncidentConnections(t *testing.T) {
	d := New(StateMachine, "untitled")
	a := d.AddState(geometry.Rect{X: 0, Y: 0, Width: 50, Height: 50})
	b := d.AddState(geometry.Rect{X: 100, Y: 0, Width: 50, Height: 50})
	c, _ := d.AddConnection(a.ID, b.ID)

	if err := d.Delete(a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := d.Connections[c.ID]; ok {
		t.Fatal("connection survived deletion of its source state")
	}
}

func TestDeleteRegionDeletesChildrenRecursively(t *testing.T) {
	d := New(StateMachine, "untitled")
	parent := d.AddState(geometry.Rect{X: 0, Y: 0, Width: 200, Height: 200})
	region, err := d.AddRegion(parent.ID, parent.Rect, Horizontal)
	if err != nil {
		t.Fatalf("AddRegion: %v", err)
	}
	child := d.AddState(geometry.Rect{X: 10, Y: 10, Width: 50, Height: 50})
	child.ParentRegionID = region.ID
	region.Children = append(region.Children, child.ID)

	if err := d.Delete(parent.ID); err != nil {
		t.Fatalf("Delete parent: %v", err)
	}
	if _, ok := d.States[child.ID]; ok {
		t.Fatal("nested child state survived parent deletion")
	}
	if _, ok := d.Regions[region.ID]; ok {
		t.Fatal("region survived parent state deletion")
	}
}

func TestTranslateMovesStateAndItsRegions(t *testing.T) {
	d := New(StateMachine, "untitled")
	parent := d.AddState(geometry.Rect{X: 0, Y: 0, Width: 200, Height: 100})
	region, _ := d.AddRegion(parent.ID, parent.Rect, Horizontal)

	if err := d.Translate(parent.ID, 10, 20); err != nil {
		t.Fatalf("Translate: %v", err)
	}
	want := geometry.Rect{X: 10, Y: 20, Width: 200, Height: 100}
	if d.States[parent.ID].Rect != want {
		t.Fatalf("state rect = %+v, want %+v", d.States[parent.ID].Rect, want)
	}
	if d.Regions[region.ID].Rect != want {
		t.Fatalf("region rect = %+v, want %+v", d.Regions[region.ID].Rect, want)
	}
}

func TestTranslateUnknownIDReturnsNotFound(t *testing.T) {
	d := New(StateMachine, "untitled")
	if err := d.Translate(elementid.New(), 1, 1); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResizeCornerClampsToSettingsMinimum(t *testing.T) {
	d := New(StateMachine, "untitled")
	s := d.AddState(geometry.Rect{X: 0, Y: 0, Width: 50, Height: 50})
	rect, err := d.ResizeCorner(s.ID, geometry.SE, -1000, -1000)
	if err != nil {
		t.Fatalf("ResizeCorner: %v", err)
	}
	if rect.Width < float64(d.Settings.MinStateWidth) || rect.Height < float64(d.Settings.MinStateHeight) {
		t.Fatalf("rect %+v below configured minimum", rect)
	}
}

func TestFindAtPrefersSmallestArea(t *testing.T) {
	d := New(StateMachine, "untitled")
	outer := d.AddState(geometry.Rect{X: 0, Y: 0, Width: 200, Height: 200})
	inner := d.AddState(geometry.Rect{X: 50, Y: 50, Width: 20, Height: 20})

	id, ok := d.FindAt(geometry.Point{X: 55, Y: 55})
	if !ok {
		t.Fatal("expected a hit")
	}
	if id != inner.ID {
		t.Fatalf("expected inner state %v, got %v (outer=%v)", inner.ID, id, outer.ID)
	}
}

func TestIterFiltersByKind(t *testing.T) {
	d := New(StateMachine, "untitled")
	s := d.AddState(geometry.Rect{X: 0, Y: 0, Width: 10, Height: 10})
	kindState := KindState
	ids := d.Iter(&kindState)
	if len(ids) != 1 || ids[0] != s.ID {
		t.Fatalf("Iter(State) = %v, want [%v]", ids, s.ID)
	}
	all := d.Iter(nil)
	if len(all) < 2 {
		t.Fatalf("Iter(nil) should include root region too, got %v", all)
	}
}

func TestProperty_DeleteIsIdempotentNoOp(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := New(StateMachine, "untitled")
		n := rapid.IntRange(0, 5).Draw(rt, "n")
		var ids []elementid.ID
		for i := 0; i < n; i++ {
			s := d.AddState(geometry.Rect{X: float64(i * 10), Y: 0, Width: 5, Height: 5})
			ids = append(ids, s.ID)
		}
		victim := rapid.SampledFrom(append(ids, elementid.New())).Draw(rt, "victim")
		_ = d.Delete(victim)
		if err := d.Delete(victim); err != ErrNotFound {
			t.Fatalf("second delete of %v: expected ErrNotFound, got %v", victim, err)
		}
	})
}
