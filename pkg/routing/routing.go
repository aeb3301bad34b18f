package routing

import (
	"math"
	"sort"

	"github.com/joemooney/jmt/pkg/elementid"
	"github.com/joemooney/jmt/pkg/geometry"
	"github.com/joemooney/jmt/pkg/model"
)

// SelectSides picks the sides a connection leaves source from and enters
// target through (§4.4). stub is the diagram's configured stub length.
func SelectSides(source, target geometry.Rect, stub float64) (model.Side, model.Side) {
	if source.Bottom()+2*stub <= target.Top() {
		return model.Bottom, model.Top
	}
	if source.Top() >= target.Bottom()+2*stub {
		return model.Top, model.Bottom
	}
	if source.Right() < target.Left() {
		return model.Right, model.Left
	}
	return model.Left, model.Right
}

// Recompute reassigns slot offsets for every connection sharing a side,
// then recomputes every connection's segments from scratch. Call this
// after any geometry mutation (move, resize, add, delete) and once after
// deserialisation, since segments are never persisted (I-C2).
func Recompute(d *model.Diagram) {
	AssignSlots(d)
	for id := range d.Connections {
		_ = ComputeSegments(d, id)
	}
}

// ComputeSegments derives connID's side pair, stub points, and middle
// segment from the current rectangles of its endpoints and its already
// assigned SlotOffset.
func ComputeSegments(d *model.Diagram, connID elementid.ID) error {
	c, ok := d.Connections[connID]
	if !ok {
		return model.ErrNotFound
	}
	stub := float64(d.Settings.StubLength)

	if c.SelfLoop {
		segments, ok := selfLoopSegments(d, c, stub)
		if !ok {
			return model.ErrNotFound
		}
		c.Segments = segments
		return nil
	}

	sourceRect, ok := d.BoundsOf(c.Source)
	if !ok {
		return model.ErrNotFound
	}
	targetRect, ok := d.BoundsOf(c.Target)
	if !ok {
		return model.ErrNotFound
	}
	c.SourceSide, c.TargetSide = SelectSides(sourceRect, targetRect, stub)

	sourcePoint := sidePoint(sourceRect, c.SourceSide, c.SlotOffset)
	targetPoint := sidePoint(targetRect, c.TargetSide, c.SlotOffset)
	sourceStub := stubPoint(sourcePoint, c.SourceSide, stub)
	targetStub := stubPoint(targetPoint, c.TargetSide, stub)

	c.Segments = []geometry.Point{sourcePoint, sourceStub, targetStub, targetPoint}
	return nil
}

func sidePoint(rect geometry.Rect, side model.Side, offset float64) geometry.Point {
	center := rect.Center()
	switch side {
	case model.Top:
		return geometry.Point{X: center.X + offset, Y: rect.Top()}
	case model.Bottom:
		return geometry.Point{X: center.X + offset, Y: rect.Bottom()}
	case model.Left:
		return geometry.Point{X: rect.Left(), Y: center.Y + offset}
	default: // model.Right
		return geometry.Point{X: rect.Right(), Y: center.Y + offset}
	}
}

func stubPoint(p geometry.Point, side model.Side, stub float64) geometry.Point {
	switch side {
	case model.Top:
		return geometry.Point{X: p.X, Y: p.Y - stub}
	case model.Bottom:
		return geometry.Point{X: p.X, Y: p.Y + stub}
	case model.Left:
		return geometry.Point{X: p.X - stub, Y: p.Y}
	default:
		return geometry.Point{X: p.X + stub, Y: p.Y}
	}
}

// selfLoopSegments builds a distinct fixed-size arc leaving and
// re-entering the same side, ignoring the target for alignment purposes
// since source == target (§4.4).
func selfLoopSegments(d *model.Diagram, c *model.Connection, stub float64) ([]geometry.Point, bool) {
	rect, ok := d.BoundsOf(c.Source)
	if !ok {
		return nil, false
	}
	side := c.SourceSide
	switch side {
	case model.Top, model.Bottom, model.Left, model.Right:
	default:
		side = model.Right
	}
	const loopSpan = 30.0
	p1 := sidePoint(rect, side, -loopSpan/2)
	p4 := sidePoint(rect, side, loopSpan/2)
	p2 := stubPoint(p1, side, stub+loopSpan)
	p3 := stubPoint(p4, side, stub+loopSpan)
	return []geometry.Point{p1, p2, p3, p4}, true
}

// LabelHitTest reports whether point falls within a half-width ×
// half-height box centred on c's label anchor.
func LabelHitTest(c *model.Connection, point geometry.Point, halfWidth, halfHeight float64) bool {
	anchor := c.LabelAnchor()
	return math.Abs(point.X-anchor.X) <= halfWidth && math.Abs(point.Y-anchor.Y) <= halfHeight
}

type bucketKey struct {
	elem elementid.ID
	side model.Side
}

type bucketMember struct {
	connID  elementid.ID
	axisPos float64
	aligned bool
}

// AssignSlots buckets every non-self-loop connection by (element, side)
// at both its endpoints and classifies each bucket member as aligned or
// not (§4.4 step 2). Each connection's SlotOffset is always taken from
// its source-side bucket, so the result does not depend on ElementId
// ordering between a connection's two endpoints; the target-side bucket
// still affects slot assignment for whichever *other* connections share
// that side of the target element.
func AssignSlots(d *model.Diagram) {
	tolerance := float64(d.Settings.AlignmentTol)
	step := float64(d.Settings.SlotStep)

	buckets := make(map[bucketKey][]bucketMember)

	for _, id := range sortedConnectionIDs(d) {
		c := d.Connections[id]
		if c.SelfLoop {
			continue
		}
		sourceRect, sOK := d.BoundsOf(c.Source)
		targetRect, tOK := d.BoundsOf(c.Target)
		if !sOK || !tOK {
			continue
		}
		sourceSide, targetSide := SelectSides(sourceRect, targetRect, float64(d.Settings.StubLength))
		sourceAxis := axisPos(sourceRect.Center(), sourceSide)
		targetAxis := axisPos(targetRect.Center(), targetSide)
		aligned := math.Abs(targetAxis-sourceAxis) <= tolerance

		buckets[bucketKey{c.Source, sourceSide}] = append(buckets[bucketKey{c.Source, sourceSide}],
			bucketMember{connID: id, axisPos: targetAxis, aligned: aligned})
		buckets[bucketKey{c.Target, targetSide}] = append(buckets[bucketKey{c.Target, targetSide}],
			bucketMember{connID: id, axisPos: sourceAxis, aligned: aligned})
	}

	bucketOffsets := make(map[bucketKey]map[elementid.ID]float64, len(buckets))
	for key, members := range buckets {
		bucketOffsets[key] = computeSlotOffsets(members, step)
	}

	for _, id := range sortedConnectionIDs(d) {
		c := d.Connections[id]
		if c.SelfLoop {
			continue
		}
		sourceRect, sOK := d.BoundsOf(c.Source)
		targetRect, tOK := d.BoundsOf(c.Target)
		if !sOK || !tOK {
			continue
		}
		sourceSide, _ := SelectSides(sourceRect, targetRect, float64(d.Settings.StubLength))
		if offset, ok := bucketOffsets[bucketKey{c.Source, sourceSide}][id]; ok {
			c.SlotOffset = offset
		}
	}
}

func axisPos(c geometry.Point, side model.Side) float64 {
	if side.IsHorizontal() {
		return c.X
	}
	return c.Y
}

func computeSlotOffsets(members []bucketMember, step float64) map[elementid.ID]float64 {
	offsets := make(map[elementid.ID]float64, len(members))

	var aligned, nonAligned []bucketMember
	for _, m := range members {
		if m.aligned {
			aligned = append(aligned, m)
		} else {
			nonAligned = append(nonAligned, m)
		}
	}
	sort.Slice(aligned, func(i, j int) bool { return aligned[i].connID < aligned[j].connID })
	sort.Slice(nonAligned, func(i, j int) bool { return nonAligned[i].axisPos < nonAligned[j].axisPos })

	if len(aligned) == 0 {
		assignCentered(offsets, nonAligned, step)
		return offsets
	}
	assignCentered(offsets, aligned, step)

	alignedMax := 0.0
	if len(aligned) > 1 {
		alignedMax = float64(len(aligned)-1) / 2 * step
	}

	half := len(nonAligned) / 2
	lower, upper := nonAligned[:half], nonAligned[half:]
	for i := len(lower) - 1; i >= 0; i-- {
		mag := alignedMax + step*float64(len(lower)-i)
		offsets[lower[i].connID] = -mag
	}
	for i, m := range upper {
		offsets[m.connID] = alignedMax + step*float64(i+1)
	}
	return offsets
}

func assignCentered(offsets map[elementid.ID]float64, members []bucketMember, step float64) {
	n := len(members)
	for i, m := range members {
		offsets[m.connID] = (float64(i) - float64(n-1)/2) * step
	}
}

func sortedConnectionIDs(d *model.Diagram) []elementid.ID {
	ids := make([]elementid.ID, 0, len(d.Connections))
	for id := range d.Connections {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
