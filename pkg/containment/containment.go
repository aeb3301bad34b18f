package containment

import (
	"github.com/joemooney/jmt/pkg/elementid"
	"github.com/joemooney/jmt/pkg/geometry"
	"github.com/joemooney/jmt/pkg/model"
)

// expandMargin is the slack added beyond the bare shortfall when
// ExpandParentToContain grows an ancestor State, so the child doesn't
// immediately re-trigger partial containment from floating point drift.
const expandMargin = 4.0

// FindStateAtPointExcluding returns the innermost State (smallest area)
// containing point, skipping excludeID. Uses current in-memory rectangles;
// callers that need fresh region bounds call RefreshAllRegionBounds first.
func FindStateAtPointExcluding(d *model.Diagram, point geometry.Point, excludeID elementid.ID) (elementid.ID, bool) {
	var best elementid.ID
	bestArea := -1.0
	found := false
	for id, s := range d.States {
		if id == excludeID || !s.Rect.ContainsPoint(point) {
			continue
		}
		if area := s.Rect.Area(); !found || area < bestArea {
			best, bestArea, found = id, area, true
		}
	}
	return best, found
}

// FindRegionAtPointForNode returns the innermost Region containing point
// whose parent State is strictly larger than nodeArea, which prevents a
// node from becoming its own (or a descendant's) container. Falls back to
// the diagram's root region when no qualifying region exists.
func FindRegionAtPointForNode(d *model.Diagram, point geometry.Point, nodeArea float64, excludeID elementid.ID) elementid.ID {
	var best elementid.ID
	bestArea := -1.0
	found := false
	for id, r := range d.Regions {
		if id == excludeID || !r.Rect.ContainsPoint(point) {
			continue
		}
		if r.ParentStateID != elementid.None {
			parent, ok := d.States[r.ParentStateID]
			if !ok || parent.Rect.Area() <= nodeArea {
				continue
			}
		}
		if area := r.Rect.Area(); !found || area < bestArea {
			best, bestArea, found = id, area, true
		}
	}
	if !found {
		return d.RootRegionID
	}
	return best
}

// AssignToRegion sets node's parent region to regionID, removing it from
// its previous region's Children and adding it (once) to regionID's.
func AssignToRegion(d *model.Diagram, nodeID, regionID elementid.ID) {
	var oldRegionID elementid.ID
	switch kind, ok := d.ElementKindOf(nodeID); {
	case !ok:
		return
	case kind == model.KindState:
		oldRegionID = d.States[nodeID].ParentRegionID
		d.States[nodeID].ParentRegionID = regionID
	case kind == model.KindPseudoState:
		oldRegionID = d.PseudoStates[nodeID].ParentRegionID
		d.PseudoStates[nodeID].ParentRegionID = regionID
	default:
		return
	}

	if old, ok := d.Regions[oldRegionID]; ok && oldRegionID != regionID {
		old.Children = removeID(old.Children, nodeID)
	}
	if region, ok := d.Regions[regionID]; ok && !containsID(region.Children, nodeID) {
		region.Children = append(region.Children, nodeID)
	}
}

// UpdateNodeRegion recomputes nodeID's correct parent region from its
// current rectangle: refresh bounds, find a containing state, synthesise
// a default region if that state has none, then assign into the region
// whose rectangle contains the node's centre.
func UpdateNodeRegion(d *model.Diagram, nodeID elementid.ID) {
	RefreshAllRegionBounds(d)

	rect, ok := d.BoundsOf(nodeID)
	if !ok {
		return
	}
	center := rect.Center()

	parentStateID, found := FindStateAtPointExcluding(d, center, nodeID)
	if !found {
		AssignToRegion(d, nodeID, d.RootRegionID)
		return
	}

	parent := d.States[parentStateID]
	if len(parent.Regions) == 0 {
		if _, err := d.AddRegion(parentStateID, parent.Rect, model.Horizontal); err != nil {
			AssignToRegion(d, nodeID, d.RootRegionID)
			return
		}
	}

	regionID, ok := regionContainingPointAmong(d, parent.Regions, center)
	if !ok {
		regionID = parent.Regions[0]
	}
	AssignToRegion(d, nodeID, regionID)
}

// UpdateAllNodeRegions calls UpdateNodeRegion for every State and
// PseudoState in the diagram; used at drag-end after a batch of moves.
func UpdateAllNodeRegions(d *model.Diagram) {
	for id := range d.States {
		UpdateNodeRegion(d, id)
	}
	for id := range d.PseudoStates {
		UpdateNodeRegion(d, id)
	}
}

// RecalculateRegions recomputes each of stateID's region rectangles from
// the state's current rectangle and the region list's shared orientation,
// preserving each sibling's existing share-of-state ratio (I-R1).
func RecalculateRegions(d *model.Diagram, stateID elementid.ID) {
	state, ok := d.States[stateID]
	if !ok || len(state.Regions) == 0 {
		return
	}
	regions := make([]*model.Region, 0, len(state.Regions))
	for _, rid := range state.Regions {
		if r, ok := d.Regions[rid]; ok {
			regions = append(regions, r)
		}
	}
	if len(regions) == 0 {
		return
	}
	orientation := regions[0].Orientation

	var oldTotal float64
	for _, r := range regions {
		if orientation == model.Horizontal {
			oldTotal += r.Rect.Width
		} else {
			oldTotal += r.Rect.Height
		}
	}
	if oldTotal <= 0 {
		oldTotal = float64(len(regions))
	}

	rect := state.Rect
	if orientation == model.Horizontal {
		x := rect.X
		for _, r := range regions {
			share := r.Rect.Width / oldTotal
			if oldTotal == float64(len(regions)) && r.Rect.Width == 0 {
				share = 1.0 / float64(len(regions))
			}
			w := rect.Width * share
			r.Rect = geometry.Rect{X: x, Y: rect.Y, Width: w, Height: rect.Height}
			x += w
		}
	} else {
		y := rect.Y
		for _, r := range regions {
			share := r.Rect.Height / oldTotal
			if oldTotal == float64(len(regions)) && r.Rect.Height == 0 {
				share = 1.0 / float64(len(regions))
			}
			h := rect.Height * share
			r.Rect = geometry.Rect{X: rect.X, Y: y, Width: rect.Width, Height: h}
			y += h
		}
	}
}

// RefreshAllRegionBounds calls RecalculateRegions for every State that
// owns regions. Searches that rely on current region bounds call this
// first, per the containment engine's "refresh region bounds throughout
// the diagram" step.
func RefreshAllRegionBounds(d *model.Diagram) {
	for id, s := range d.States {
		if len(s.Regions) > 0 {
			RecalculateRegions(d, id)
		}
	}
}

// DetectPartialContainment sets HasError on every State and PseudoState
// whose rectangle has 1, 2, or 3 corners inside its parent region (full
// containment and total exteriority are both "settled" and clear the
// flag). The renderer paints errored nodes red; this never raises.
func DetectPartialContainment(d *model.Diagram) {
	for _, s := range d.States {
		s.HasError = straddles(d, s.Rect, s.ParentRegionID)
	}
	for _, ps := range d.PseudoStates {
		ps.HasError = straddles(d, ps.Rect, ps.ParentRegionID)
	}
}

func straddles(d *model.Diagram, rect geometry.Rect, parentRegionID elementid.ID) bool {
	region, ok := d.Regions[parentRegionID]
	if !ok {
		return false
	}
	n := geometry.CornersInside(region.Rect, rect)
	return n == 1 || n == 2 || n == 3
}

// TranslateWithChildren translates nodeID and every node nested beneath
// it (State -> its Regions -> their child States/PseudoStates,
// recursively) by the same delta, using a visited set so a node reachable
// by more than one path is only moved once.
func TranslateWithChildren(d *model.Diagram, nodeID elementid.ID, dx, dy float64) error {
	visited := make(map[elementid.ID]struct{})
	return translateRecursive(d, nodeID, dx, dy, visited)
}

func translateRecursive(d *model.Diagram, nodeID elementid.ID, dx, dy float64, visited map[elementid.ID]struct{}) error {
	if _, seen := visited[nodeID]; seen {
		return nil
	}
	visited[nodeID] = struct{}{}

	if err := d.Translate(nodeID, dx, dy); err != nil {
		return err
	}

	state, ok := d.States[nodeID]
	if !ok {
		return nil
	}
	for _, regionID := range state.Regions {
		region, ok := d.Regions[regionID]
		if !ok {
			continue
		}
		// d.Translate has already moved this state's own regions.
		for _, childID := range region.Children {
			if err := translateRecursive(d, childID, dx, dy, visited); err != nil {
				return err
			}
		}
	}
	return nil
}

// ExpandParentToContain checks whether nodeID's rectangle escapes its
// parent Region in any direction; if so it grows the parent State on that
// side by the shortfall plus expandMargin, recalculates its regions, and
// recurses to the grandparent. When the escape is on the left or top,
// nodeID (with everything nested in it) is also translated right or down
// by the amount the parent grew on that side. No other element is moved:
// the siblings of nodeID and of the parent State keep their positions.
// Called after align/distribute, whose repositioning can push a member
// outside its container.
func ExpandParentToContain(d *model.Diagram, nodeID elementid.ID) error {
	kind, ok := d.ElementKindOf(nodeID)
	if !ok {
		return model.ErrNotFound
	}

	var parentRegionID elementid.ID
	switch kind {
	case model.KindState:
		parentRegionID = d.States[nodeID].ParentRegionID
	case model.KindPseudoState:
		parentRegionID = d.PseudoStates[nodeID].ParentRegionID
	default:
		return nil
	}

	region, ok := d.Regions[parentRegionID]
	if !ok || region.ParentStateID == elementid.None {
		return nil
	}
	nodeRect, ok := d.BoundsOf(nodeID)
	if !ok {
		return nil
	}

	parentStateID := region.ParentStateID
	parent := d.States[parentStateID]

	dxLeft := region.Rect.Left() - nodeRect.Left()
	dxRight := nodeRect.Right() - region.Rect.Right()
	dyTop := region.Rect.Top() - nodeRect.Top()
	dyBottom := nodeRect.Bottom() - region.Rect.Bottom()

	var shiftX, shiftY, growW, growH float64
	if dxLeft > 0 {
		shiftX = dxLeft + expandMargin
		growW += shiftX
	}
	if dxRight > 0 {
		growW += dxRight + expandMargin
	}
	if dyTop > 0 {
		shiftY = dyTop + expandMargin
		growH += shiftY
	}
	if dyBottom > 0 {
		growH += dyBottom + expandMargin
	}
	if growW == 0 && growH == 0 {
		return nil
	}

	newParentRect := geometry.Rect{
		X:      parent.Rect.X - shiftX,
		Y:      parent.Rect.Y - shiftY,
		Width:  parent.Rect.Width + growW,
		Height: parent.Rect.Height + growH,
	}

	if shiftX != 0 || shiftY != 0 {
		if err := TranslateWithChildren(d, nodeID, shiftX, shiftY); err != nil {
			return err
		}
	}
	d.SetBoundsOf(parentStateID, newParentRect)
	RecalculateRegions(d, parentStateID)

	return ExpandParentToContain(d, parentStateID)
}

func regionContainingPointAmong(d *model.Diagram, regionIDs []elementid.ID, point geometry.Point) (elementid.ID, bool) {
	var best elementid.ID
	bestArea := -1.0
	found := false
	for _, id := range regionIDs {
		r, ok := d.Regions[id]
		if !ok || !r.Rect.ContainsPoint(point) {
			continue
		}
		if area := r.Rect.Area(); !found || area < bestArea {
			best, bestArea, found = id, area, true
		}
	}
	return best, found
}

func removeID(ids []elementid.ID, target elementid.ID) []elementid.ID {
	for i, id := range ids {
		if id == target {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func containsID(ids []elementid.ID, target elementid.ID) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
