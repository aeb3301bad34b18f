package interaction

import (
	"math"

	"github.com/joemooney/jmt/pkg/containment"
	"github.com/joemooney/jmt/pkg/elementid"
	"github.com/joemooney/jmt/pkg/geometry"
	"github.com/joemooney/jmt/pkg/model"
	"github.com/joemooney/jmt/pkg/routing"
	"github.com/joemooney/jmt/pkg/selection"
)

// Tolerances used by begin_drag's hit sequence. §4.6 names the 5-unit
// separator tolerance explicitly; the corner and label tolerances are not
// pinned down by the specification and are chosen to be comfortably
// clickable without overlapping a typical minimum state size.
const (
	cornerTolerance    = 8.0
	separatorTolerance = 5.0
	labelTolerance     = 10.0
)

type dragKind int

const (
	dragNone dragKind = iota
	dragMove
	dragResize
	dragSeparator
	dragLabel
	dragMarquee
	dragLasso
)

type dragState struct {
	kind     dragKind
	start    geometry.Point
	last     geometry.Point
	nodeID   elementid.ID
	corner   geometry.Corner
	stateID  elementid.ID
	sepIndex int
	lassoPts []geometry.Point
}

// BeginDrag runs the begin_drag hit sequence of §4.6: resize handle,
// region separator, label, element, then marquee/lasso, in that order.
func (e *Engine) BeginDrag(point geometry.Point, ctrl bool) {
	if id, corner, ok := e.findResizeHandle(point); ok {
		e.pushSnapshot()
		e.drag = dragState{kind: dragResize, nodeID: id, corner: corner, start: point, last: point}
		e.D.Mode.Set(selection.Resize)
		return
	}

	if stateID, sepIndex, ok := e.findSeparator(point); ok {
		e.pushSnapshot()
		e.drag = dragState{kind: dragSeparator, stateID: stateID, sepIndex: sepIndex, start: point, last: point}
		e.D.Mode.Set(selection.MoveRegionSeparator)
		return
	}

	if connID, ok := e.findLabel(point); ok {
		e.pushSnapshot()
		e.D.Connections[connID].LabelSelected = true
		e.drag = dragState{kind: dragLabel, nodeID: connID, start: point, last: point}
		return
	}

	if id, ok := e.D.FindAt(point); ok {
		if !e.D.Selection.Contains(id) {
			if ctrl {
				e.D.Selection.Toggle(id)
			} else {
				e.D.Selection.Select(id)
			}
		}
		e.pushSnapshot()
		e.drag = dragState{kind: dragMove, start: point, last: point}
		e.D.Mode.Set(selection.Move)
		return
	}

	if e.D.Mode.Mode() == selection.Lasso {
		e.drag = dragState{kind: dragLasso, start: point, last: point, lassoPts: []geometry.Point{point}}
		return
	}
	e.drag = dragState{kind: dragMarquee, start: point, last: point}
	e.D.Mode.Set(selection.SelectRect)
}

// ContinueDrag applies the delta since the last call per the active
// sub-mode (§4.6).
func (e *Engine) ContinueDrag(point geometry.Point) {
	dx := point.X - e.drag.last.X
	dy := point.Y - e.drag.last.Y
	e.drag.last = point

	switch e.drag.kind {
	case dragResize:
		_, _ = e.D.ResizeCorner(e.drag.nodeID, e.drag.corner, dx, dy)
		containment.RecalculateRegions(e.D, e.drag.nodeID)
	case dragSeparator:
		e.moveSeparator(dx, dy)
	case dragLabel:
		if c, ok := e.D.Connections[e.drag.nodeID]; ok {
			c.LabelOffset = c.LabelOffset.Add(dx, dy)
		}
	case dragMove:
		for _, id := range e.D.Selection.Order() {
			_ = containment.TranslateWithChildren(e.D, id, dx, dy)
		}
	case dragLasso:
		e.drag.lassoPts = append(e.drag.lassoPts, point)
	case dragMarquee, dragNone:
		// Marquee only needs start/last, already updated above.
	}
}

// EndDrag finalises the active sub-mode: re-parenting and partial
// containment for moves/resizes/separator drags, or selection replacement
// for marquee/lasso. No additional undo snapshot is pushed (§4.6).
func (e *Engine) EndDrag(point geometry.Point) {
	defer func() { e.drag = dragState{} }()

	switch e.drag.kind {
	case dragMove, dragResize, dragSeparator:
		containment.UpdateAllNodeRegions(e.D)
		containment.DetectPartialContainment(e.D)
		routing.Recompute(e.D)
		e.D.Mode.Set(selection.Arrow)
	case dragMarquee:
		rect := geometry.Rect{
			X:      math.Min(e.drag.start.X, point.X),
			Y:      math.Min(e.drag.start.Y, point.Y),
			Width:  math.Abs(point.X - e.drag.start.X),
			Height: math.Abs(point.Y - e.drag.start.Y),
		}
		e.D.Selection.SelectAll(e.elementsFullyContainedIn(rect))
		e.D.Mode.Set(selection.Arrow)
	case dragLasso:
		e.D.Selection.SelectAll(e.elementsFullyContainedInPolygon(e.drag.lassoPts))
		e.D.Mode.Set(selection.Arrow)
	case dragLabel, dragNone:
		// Label offset was already applied live; nothing further to settle.
	}
}

func (e *Engine) findResizeHandle(point geometry.Point) (elementid.ID, geometry.Corner, bool) {
	for _, id := range e.D.Selection.Order() {
		s, ok := e.D.States[id]
		if !ok {
			continue
		}
		if c := geometry.CornerAt(s.Rect, point, cornerTolerance); c != geometry.NotCorner {
			return id, c, true
		}
	}
	return elementid.None, geometry.NotCorner, false
}

func (e *Engine) findSeparator(point geometry.Point) (elementid.ID, int, bool) {
	for stateID, s := range e.D.States {
		if len(s.Regions) < 2 {
			continue
		}
		for i := 0; i < len(s.Regions)-1; i++ {
			a, aOK := e.D.Regions[s.Regions[i]]
			b, bOK := e.D.Regions[s.Regions[i+1]]
			if !aOK || !bOK {
				continue
			}
			if a.Orientation == model.Horizontal {
				if math.Abs(point.X-a.Rect.Right()) <= separatorTolerance &&
					point.Y >= a.Rect.Top() && point.Y <= a.Rect.Bottom() {
					return stateID, i, true
				}
			} else {
				if math.Abs(point.Y-a.Rect.Bottom()) <= separatorTolerance &&
					point.X >= a.Rect.Left() && point.X <= a.Rect.Right() {
					return stateID, i, true
				}
			}
			_ = b
		}
	}
	return elementid.None, -1, false
}

func (e *Engine) findLabel(point geometry.Point) (elementid.ID, bool) {
	for id, c := range e.D.Connections {
		if routing.LabelHitTest(c, point, labelTolerance, labelTolerance) {
			return id, true
		}
	}
	return elementid.None, false
}

func (e *Engine) moveSeparator(dx, dy float64) {
	state, ok := e.D.States[e.drag.stateID]
	if !ok {
		return
	}
	i := e.drag.sepIndex
	if i < 0 || i+1 >= len(state.Regions) {
		return
	}
	a, aOK := e.D.Regions[state.Regions[i]]
	b, bOK := e.D.Regions[state.Regions[i+1]]
	if !aOK || !bOK {
		return
	}
	minSep := float64(e.D.Settings.MinSeparation)

	if a.Orientation == model.Horizontal {
		newAWidth, newBWidth := a.Rect.Width+dx, b.Rect.Width-dx
		if newAWidth < minSep || newBWidth < minSep {
			return
		}
		a.Rect.Width = newAWidth
		b.Rect.X += dx
		b.Rect.Width = newBWidth
		return
	}
	newAHeight, newBHeight := a.Rect.Height+dy, b.Rect.Height-dy
	if newAHeight < minSep || newBHeight < minSep {
		return
	}
	a.Rect.Height = newAHeight
	b.Rect.Y += dy
	b.Rect.Height = newBHeight
}

func (e *Engine) elementsFullyContainedIn(rect geometry.Rect) []elementid.ID {
	var ids []elementid.ID
	for _, id := range e.D.Iter(nil) {
		if kind, _ := e.D.ElementKindOf(id); kind == model.KindRegion {
			continue
		}
		b, ok := e.D.BoundsOf(id)
		if !ok || !geometry.ContainsRect(rect, b) {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func (e *Engine) elementsFullyContainedInPolygon(poly []geometry.Point) []elementid.ID {
	var ids []elementid.ID
	for _, id := range e.D.Iter(nil) {
		if kind, _ := e.D.ElementKindOf(id); kind == model.KindRegion {
			continue
		}
		b, ok := e.D.BoundsOf(id)
		if !ok {
			continue
		}
		fullyInside := true
		for _, c := range b.Corners() {
			if !geometry.PointInPolygon(c, poly) {
				fullyInside = false
				break
			}
		}
		if fullyInside {
			ids = append(ids, id)
		}
	}
	return ids
}
