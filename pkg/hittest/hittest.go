package hittest

import (
	"sort"

	"github.com/joemooney/jmt/pkg/elementid"
	"github.com/joemooney/jmt/pkg/geometry"
	"github.com/joemooney/jmt/pkg/model"
)

// connectionHitDistance is the perpendicular-distance threshold (in
// diagram units) within which a click counts as hitting a connection's
// path, rather than its label. Not pinned down by the specification; set
// to the same 10-unit scale as the label hit box.
const connectionHitDistance = 10.0

// PaintOrder returns every node and region id in back-to-front render
// order: regions first (largest area first, so a parent's region paints
// under its children's), then states/pseudostates/aux nodes largest-area
// first, then connections and aux edges, in that fixed sequence. The
// renderer paints this slice in the returned order, so later entries land
// on top.
func PaintOrder(d *model.Diagram) []elementid.ID {
	var order []elementid.ID

	order = append(order, areaSortedDescendingArea(d, regionIDs(d))...)
	var nodes []elementid.ID
	nodes = append(nodes, stateIDs(d)...)
	nodes = append(nodes, pseudoStateIDs(d)...)
	nodes = append(nodes, auxNodeIDs(d)...)
	order = append(order, areaSortedDescendingArea(d, nodes)...)

	order = append(order, sortedIDs(connectionAndAuxEdgeIDs(d))...)
	return order
}

// HitTest returns the topmost element under point, walking PaintOrder
// back to front (i.e. in reverse), so the last-painted element wins:
// connections before nodes, and among nodes the smallest area (equal
// areas: the larger id). Connections are tested by perpendicular distance
// to their segments; aux edges are skipped; the root region is never
// reported; everything else is tested by bounding rectangle. Labels are
// not part of PaintOrder's node/edge tiers, so
// callers that also need label hits should check LabelHitTest
// themselves (the Engine's drag-begin sequence does this explicitly,
// ahead of a plain element hit).
func HitTest(d *model.Diagram, point geometry.Point) (elementid.ID, bool) {
	order := PaintOrder(d)
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		kind, ok := d.ElementKindOf(id)
		if !ok {
			continue
		}
		if kind == model.KindConnection {
			c := d.Connections[id]
			if hitsPolyline(point, c.Segments, connectionHitDistance) {
				return id, true
			}
			continue
		}
		if kind.IsAuxEdge() {
			continue // aux edges have no geometry of their own to hit-test here
		}
		if kind == model.KindRegion && d.Regions[id].IsRoot {
			continue // the diagram-level root region is not a hittable element
		}
		if rect, ok := d.BoundsOf(id); ok && rect.ContainsPoint(point) {
			return id, true
		}
	}
	return elementid.None, false
}

// ContentBounds returns the union of every node's (state, pseudostate,
// aux node) bounding rectangle, used by the renderer to size its
// scrollable canvas (§6); regions, connections and aux edges are not
// included. Returns the zero Rect if the diagram has no nodes.
func ContentBounds(d *model.Diagram) geometry.Rect {
	var (
		result geometry.Rect
		first  = true
	)
	for _, id := range d.Iter(nil) {
		kind, ok := d.ElementKindOf(id)
		if !ok || kind == model.KindRegion || kind == model.KindConnection || kind.IsAuxEdge() {
			continue
		}
		rect, ok := d.BoundsOf(id)
		if !ok {
			continue
		}
		if first {
			result = rect
			first = false
			continue
		}
		result = result.Union(rect)
	}
	return result
}

func hitsPolyline(point geometry.Point, segments []geometry.Point, threshold float64) bool {
	for i := 0; i+1 < len(segments); i++ {
		if geometry.DistancePointToSegment(point, segments[i], segments[i+1]) <= threshold {
			return true
		}
	}
	return false
}

func regionIDs(d *model.Diagram) []elementid.ID {
	ids := make([]elementid.ID, 0, len(d.Regions))
	for id := range d.Regions {
		ids = append(ids, id)
	}
	return ids
}

func stateIDs(d *model.Diagram) []elementid.ID {
	ids := make([]elementid.ID, 0, len(d.States))
	for id := range d.States {
		ids = append(ids, id)
	}
	return ids
}

func pseudoStateIDs(d *model.Diagram) []elementid.ID {
	ids := make([]elementid.ID, 0, len(d.PseudoStates))
	for id := range d.PseudoStates {
		ids = append(ids, id)
	}
	return ids
}

func auxNodeIDs(d *model.Diagram) []elementid.ID {
	ids := make([]elementid.ID, 0, len(d.AuxNodes))
	for id := range d.AuxNodes {
		ids = append(ids, id)
	}
	return ids
}

func connectionAndAuxEdgeIDs(d *model.Diagram) []elementid.ID {
	ids := make([]elementid.ID, 0, len(d.Connections)+len(d.AuxEdges))
	for id := range d.Connections {
		ids = append(ids, id)
	}
	for id := range d.AuxEdges {
		ids = append(ids, id)
	}
	return ids
}

func sortedIDs(ids []elementid.ID) []elementid.ID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// areaSortedAscendingArea sorts ids by increasing bounding-rect area,
// breaking ties by id for determinism.
func areaSortedAscendingArea(d *model.Diagram, ids []elementid.ID) []elementid.ID {
	return sortByArea(d, ids, false)
}

// areaSortedDescendingArea sorts ids by decreasing area, so the largest
// node paints first (at the back) and the smallest paints last (on top),
// matching FindAt's smallest-area-wins hit rule.
func areaSortedDescendingArea(d *model.Diagram, ids []elementid.ID) []elementid.ID {
	return sortByArea(d, ids, true)
}

func sortByArea(d *model.Diagram, ids []elementid.ID, descending bool) []elementid.ID {
	out := append([]elementid.ID{}, ids...)
	area := func(id elementid.ID) float64 {
		r, _ := d.BoundsOf(id)
		return r.Area()
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := area(out[i]), area(out[j])
		if ai == aj {
			return out[i] < out[j]
		}
		if descending {
			return ai > aj
		}
		return ai < aj
	})
	return out
}
