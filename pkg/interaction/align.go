package interaction

import (
	"fmt"
	"sort"

	"github.com/joemooney/jmt/pkg/containment"
	"github.com/joemooney/jmt/pkg/elementid"
	"github.com/joemooney/jmt/pkg/geometry"
	"github.com/joemooney/jmt/pkg/routing"
)

// AlignMode is one of the six alignment operations of §4.6.
type AlignMode int

const (
	AlignLeft AlignMode = iota
	AlignRight
	AlignTop
	AlignBottom
	AlignCenterH
	AlignCenterV
)

// Axis is the direction a Distribute spreads the selection along.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// Align moves every selected element so its relevant edge or centre line
// matches the target value: the common min/max bound for an edge align,
// or the selection's centroid for a centre align (§4.6, resolving the
// Open Question on target-value semantics in favour of "edges align to
// the extreme, centres align to the mean" — the one reading consistent
// with both named cases in the spec text).
func (e *Engine) Align(mode AlignMode) error {
	ids := e.selectionOrderForOps()
	if len(ids) < 2 {
		return fmt.Errorf("align requires at least two selected elements")
	}

	rects := make([]geometry.Rect, len(ids))
	for i, id := range ids {
		r, ok := e.D.BoundsOf(id)
		if !ok {
			return fmt.Errorf("align: element %s has no bounds", id)
		}
		rects[i] = r
	}

	target := alignTargetValue(mode, rects)
	e.pushSnapshot()

	for i, id := range ids {
		dx, dy := 0.0, 0.0
		switch mode {
		case AlignLeft:
			dx = target - rects[i].Left()
		case AlignRight:
			dx = target - rects[i].Right()
		case AlignTop:
			dy = target - rects[i].Top()
		case AlignBottom:
			dy = target - rects[i].Bottom()
		case AlignCenterH:
			dx = target - rects[i].Center().X
		case AlignCenterV:
			dy = target - rects[i].Center().Y
		}
		if dx != 0 || dy != 0 {
			_ = containment.TranslateWithChildren(e.D, id, dx, dy)
		}
	}
	for _, id := range ids {
		_ = containment.ExpandParentToContain(e.D, id)
	}

	containment.UpdateAllNodeRegions(e.D)
	containment.DetectPartialContainment(e.D)
	routing.Recompute(e.D)
	return nil
}

// Distribute spreads the selection along axis with even edge-to-edge
// gaps, clamped so no gap falls below the diagram's configured minimum
// separation. The first element (by position along axis) stays fixed.
// The last stays fixed too when the even gap already meets the minimum;
// interior elements are then repositioned between the two. When the gap
// has to be widened to the minimum, the last element moves along with
// the interior ones (§4.6).
func (e *Engine) Distribute(axis Axis) error {
	ids := e.selectionOrderForOps()
	if len(ids) < 3 {
		return fmt.Errorf("distribute requires at least three selected elements")
	}

	type positioned struct {
		id   elementid.ID
		rect geometry.Rect
	}
	items := make([]positioned, len(ids))
	for i, id := range ids {
		r, ok := e.D.BoundsOf(id)
		if !ok {
			return fmt.Errorf("distribute: element %s has no bounds", id)
		}
		items[i] = positioned{id: id, rect: r}
	}

	low := func(r geometry.Rect) float64 {
		if axis == AxisHorizontal {
			return r.Left()
		}
		return r.Top()
	}
	high := func(r geometry.Rect) float64 {
		if axis == AxisHorizontal {
			return r.Right()
		}
		return r.Bottom()
	}
	size := func(r geometry.Rect) float64 {
		if axis == AxisHorizontal {
			return r.Width
		}
		return r.Height
	}

	sort.Slice(items, func(i, j int) bool { return low(items[i].rect) < low(items[j].rect) })

	minSep := float64(e.D.Settings.MinSeparation)
	span := high(items[len(items)-1].rect) - low(items[0].rect)
	var occupied float64
	for _, it := range items {
		occupied += size(it.rect)
	}
	gap := (span - occupied) / float64(len(items)-1)
	clamped := false
	if gap < minSep {
		gap = minSep
		clamped = true
	}

	e.pushSnapshot()

	cursor := low(items[0].rect)
	for i, it := range items {
		if i == 0 || (i == len(items)-1 && !clamped) {
			cursor = high(it.rect) + gap
			continue
		}
		delta := cursor - low(it.rect)
		if axis == AxisHorizontal {
			_ = containment.TranslateWithChildren(e.D, it.id, delta, 0)
		} else {
			_ = containment.TranslateWithChildren(e.D, it.id, 0, delta)
		}
		cursor = low(it.rect) + delta + size(it.rect) + gap
	}
	for _, it := range items {
		_ = containment.ExpandParentToContain(e.D, it.id)
	}

	containment.UpdateAllNodeRegions(e.D)
	containment.DetectPartialContainment(e.D)
	routing.Recompute(e.D)
	return nil
}

func alignTargetValue(mode AlignMode, rects []geometry.Rect) float64 {
	switch mode {
	case AlignLeft:
		return minBound(rects, geometry.Rect.Left)
	case AlignRight:
		return maxBound(rects, geometry.Rect.Right)
	case AlignTop:
		return minBound(rects, geometry.Rect.Top)
	case AlignBottom:
		return maxBound(rects, geometry.Rect.Bottom)
	case AlignCenterH:
		return meanBound(rects, func(r geometry.Rect) float64 { return r.Center().X })
	case AlignCenterV:
		return meanBound(rects, func(r geometry.Rect) float64 { return r.Center().Y })
	default:
		return 0
	}
}

func minBound(rects []geometry.Rect, f func(geometry.Rect) float64) float64 {
	best := f(rects[0])
	for _, r := range rects[1:] {
		if v := f(r); v < best {
			best = v
		}
	}
	return best
}

func maxBound(rects []geometry.Rect, f func(geometry.Rect) float64) float64 {
	best := f(rects[0])
	for _, r := range rects[1:] {
		if v := f(r); v > best {
			best = v
		}
	}
	return best
}

func meanBound(rects []geometry.Rect, f func(geometry.Rect) float64) float64 {
	var sum float64
	for _, r := range rects {
		sum += f(r)
	}
	return sum / float64(len(rects))
}
