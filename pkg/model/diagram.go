package model

import (
	"sort"

	"github.com/joemooney/jmt/pkg/config"
	"github.com/joemooney/jmt/pkg/elementid"
	"github.com/joemooney/jmt/pkg/geometry"
	"github.com/joemooney/jmt/pkg/history"
	"github.com/joemooney/jmt/pkg/selection"
)

// Diagram is the aggregate root described in §3: the element collections
// keyed by id, the root region, the selection state, and the undo/redo
// stacks. Diagram is the "uniform Element façade" the rest of the core
// dispatches through by ElementKind.
type Diagram struct {
	Kind     DiagramKind
	Name     string
	FilePath string
	Settings config.Settings

	States       map[elementid.ID]*State
	Regions      map[elementid.ID]*Region
	PseudoStates map[elementid.ID]*PseudoState
	Connections  map[elementid.ID]*Connection
	AuxNodes     map[elementid.ID]*AuxNode
	AuxEdges     map[elementid.ID]*AuxEdge

	RootRegionID elementid.ID

	Selection *selection.Set
	Mode      *selection.Register

	History *history.Stacks
	Dirty   bool

	kindIndex map[elementid.ID]ElementKind
}

// New creates an empty diagram of the given kind with a synthesised
// diagram-level root region and default settings.
func New(kind DiagramKind, name string) *Diagram {
	d := &Diagram{
		Kind:         kind,
		Name:         name,
		Settings:     config.Default(),
		States:       make(map[elementid.ID]*State),
		Regions:      make(map[elementid.ID]*Region),
		PseudoStates: make(map[elementid.ID]*PseudoState),
		Connections:  make(map[elementid.ID]*Connection),
		AuxNodes:     make(map[elementid.ID]*AuxNode),
		AuxEdges:     make(map[elementid.ID]*AuxEdge),
		Selection:    selection.NewSet(),
		Mode:         selection.NewRegister(),
		History:      history.NewStacks(),
		kindIndex:    make(map[elementid.ID]ElementKind),
	}
	root := &Region{
		ID:          elementid.New(),
		Name:        "root",
		Rect:        geometry.Rect{X: 0, Y: 0, Width: 2000, Height: 2000},
		IsRoot:      true,
		Orientation: Horizontal,
	}
	d.Regions[root.ID] = root
	d.kindIndex[root.ID] = KindRegion
	d.RootRegionID = root.ID
	return d
}

// ElementKindOf reports the ElementKind of id, or ok=false if unknown.
func (d *Diagram) ElementKindOf(id elementid.ID) (ElementKind, bool) {
	k, ok := d.kindIndex[id]
	return k, ok
}

// RebuildIndex clears and repopulates the internal id-to-kind index from
// the element collections. pkg/persistence calls this after populating
// the collections directly from a deserialised document, since kindIndex
// is private to this package.
func (d *Diagram) RebuildIndex() {
	d.kindIndex = make(map[elementid.ID]ElementKind, len(d.States)+len(d.Regions)+len(d.PseudoStates)+len(d.Connections)+len(d.AuxNodes)+len(d.AuxEdges))
	for id := range d.States {
		d.kindIndex[id] = KindState
	}
	for id := range d.Regions {
		d.kindIndex[id] = KindRegion
	}
	for id := range d.PseudoStates {
		d.kindIndex[id] = KindPseudoState
	}
	for id := range d.Connections {
		d.kindIndex[id] = KindConnection
	}
	for id, n := range d.AuxNodes {
		d.kindIndex[id] = n.Kind
	}
	for id, e := range d.AuxEdges {
		d.kindIndex[id] = e.Kind
	}
}

// ReplaceContent overwrites d's persisted content (everything except
// Selection, Mode, History, and Dirty) with other's. pkg/interaction uses
// this to restore an undo/redo snapshot in place, so callers holding a
// *Diagram pointer never see it invalidated.
func (d *Diagram) ReplaceContent(other *Diagram) {
	d.Kind = other.Kind
	d.Name = other.Name
	d.FilePath = other.FilePath
	d.Settings = other.Settings
	d.States = other.States
	d.Regions = other.Regions
	d.PseudoStates = other.PseudoStates
	d.Connections = other.Connections
	d.AuxNodes = other.AuxNodes
	d.AuxEdges = other.AuxEdges
	d.RootRegionID = other.RootRegionID
	d.kindIndex = other.kindIndex
}

// --- Construction -----------------------------------------------------

// AddState creates a State with rect and registers it in the index.
func (d *Diagram) AddState(rect geometry.Rect) *State {
	s := &State{ID: elementid.New(), Rect: rect, ParentRegionID: elementid.None}
	d.States[s.ID] = s
	d.kindIndex[s.ID] = KindState
	return s
}

// AddRegion creates a Region owned by parentStateID and appends it to
// that state's Regions list (I-R2).
func (d *Diagram) AddRegion(parentStateID elementid.ID, rect geometry.Rect, orientation Orientation) (*Region, error) {
	state, ok := d.States[parentStateID]
	if !ok {
		return nil, ErrNotFound
	}
	r := &Region{ID: elementid.New(), Rect: rect, ParentStateID: parentStateID, Orientation: orientation}
	d.Regions[r.ID] = r
	d.kindIndex[r.ID] = KindRegion
	state.Regions = append(state.Regions, r.ID)
	return r, nil
}

// AddPseudoState creates a PseudoState inside parentRegionID, enforcing
// I-P1 (at most one Initial per region).
func (d *Diagram) AddPseudoState(kind PseudoKind, rect geometry.Rect, parentRegionID elementid.ID) (*PseudoState, error) {
	region, ok := d.Regions[parentRegionID]
	if !ok {
		return nil, ErrNotFound
	}
	if kind == Initial {
		for _, childID := range region.Children {
			if ps, isPseudo := d.PseudoStates[childID]; isPseudo && ps.Kind == Initial {
				return nil, ErrDuplicateInitial
			}
		}
	}
	ps := &PseudoState{ID: elementid.New(), Kind: kind, Rect: rect, ParentRegionID: parentRegionID}
	d.PseudoStates[ps.ID] = ps
	d.kindIndex[ps.ID] = KindPseudoState
	region.Children = append(region.Children, ps.ID)
	return ps, nil
}

// AddConnection creates a Connection between two known elements; when
// source == target it is marked SelfLoop (I-C1's explicit self route).
func (d *Diagram) AddConnection(source, target elementid.ID) (*Connection, error) {
	if _, ok := d.kindIndex[source]; !ok {
		return nil, ErrNotFound
	}
	if _, ok := d.kindIndex[target]; !ok {
		return nil, ErrNotFound
	}
	c := &Connection{ID: elementid.New(), Source: source, Target: target, SelfLoop: source == target}
	d.Connections[c.ID] = c
	d.kindIndex[c.ID] = KindConnection
	return c, nil
}

// AddAuxNode creates a rectangle-bearing auxiliary entity of kind.
func (d *Diagram) AddAuxNode(kind ElementKind, rect geometry.Rect) *AuxNode {
	n := &AuxNode{ID: elementid.New(), Kind: kind, Rect: rect, Attrs: make(map[string]string)}
	d.AuxNodes[n.ID] = n
	d.kindIndex[n.ID] = kind
	return n
}

// AddAuxEdge creates an endpoint-pair auxiliary entity of kind.
func (d *Diagram) AddAuxEdge(kind ElementKind, source, target elementid.ID) (*AuxEdge, error) {
	if _, ok := d.kindIndex[source]; !ok {
		return nil, ErrNotFound
	}
	if _, ok := d.kindIndex[target]; !ok {
		return nil, ErrNotFound
	}
	e := &AuxEdge{ID: elementid.New(), Kind: kind, Source: source, Target: target, Attrs: make(map[string]string)}
	d.AuxEdges[e.ID] = e
	d.kindIndex[e.ID] = kind
	return e, nil
}

// --- Uniform accessors --------------------------------------------------

// BoundsOf returns the bounding rectangle of id, dispatching by kind.
// Connections and aux edges have no rectangle and report ok=false.
func (d *Diagram) BoundsOf(id elementid.ID) (geometry.Rect, bool) {
	kind, ok := d.kindIndex[id]
	if !ok {
		return geometry.Rect{}, false
	}
	switch kind {
	case KindState:
		return d.States[id].Rect, true
	case KindRegion:
		return d.Regions[id].Rect, true
	case KindPseudoState:
		return d.PseudoStates[id].Rect, true
	default:
		if kind.IsAuxNode() {
			return d.AuxNodes[id].Rect, true
		}
		return geometry.Rect{}, false
	}
}

// SetBoundsOf overwrites id's rectangle. It performs no containment
// bookkeeping (I-S1 maintenance, region recalculation); callers that
// mutate geometry own that via pkg/containment.
func (d *Diagram) SetBoundsOf(id elementid.ID, rect geometry.Rect) bool {
	kind, ok := d.kindIndex[id]
	if !ok {
		return false
	}
	switch kind {
	case KindState:
		d.States[id].Rect = rect
	case KindRegion:
		d.Regions[id].Rect = rect
	case KindPseudoState:
		d.PseudoStates[id].Rect = rect
	default:
		if !kind.IsAuxNode() {
			return false
		}
		d.AuxNodes[id].Rect = rect
	}
	return true
}

// HasFocusOf reports the transient selection-cursor flag for id.
func (d *Diagram) HasFocusOf(id elementid.ID) bool {
	kind, ok := d.kindIndex[id]
	if !ok {
		return false
	}
	switch kind {
	case KindState:
		return d.States[id].HasFocus
	case KindRegion:
		return d.Regions[id].HasFocus
	case KindPseudoState:
		return d.PseudoStates[id].HasFocus
	default:
		if kind.IsAuxNode() {
			return d.AuxNodes[id].HasFocus
		}
		if kind.IsAuxEdge() {
			return d.AuxEdges[id].HasFocus
		}
		if kind == KindConnection {
			return d.Connections[id].Selected
		}
		return false
	}
}

// SetHasFocusOf sets the transient selection-cursor flag for id.
func (d *Diagram) SetHasFocusOf(id elementid.ID, focus bool) {
	kind, ok := d.kindIndex[id]
	if !ok {
		return
	}
	switch kind {
	case KindState:
		d.States[id].HasFocus = focus
	case KindRegion:
		d.Regions[id].HasFocus = focus
	case KindPseudoState:
		d.PseudoStates[id].HasFocus = focus
	default:
		if kind.IsAuxNode() {
			d.AuxNodes[id].HasFocus = focus
		} else if kind.IsAuxEdge() {
			d.AuxEdges[id].HasFocus = focus
		} else if kind == KindConnection {
			d.Connections[id].Selected = focus
		}
	}
}

// FindAt returns the innermost State/PseudoState/AuxNode under point,
// smallest area wins, per §4.2's element-agnostic contract. Connections
// and the layered render order are pkg/hittest's responsibility.
func (d *Diagram) FindAt(point geometry.Point) (elementid.ID, bool) {
	var best elementid.ID
	bestArea := -1.0
	found := false

	consider := func(id elementid.ID, rect geometry.Rect) {
		if !rect.ContainsPoint(point) {
			return
		}
		area := rect.Area()
		if !found || area < bestArea {
			best, bestArea, found = id, area, true
		}
	}

	for id, s := range d.States {
		consider(id, s.Rect)
	}
	for id, p := range d.PseudoStates {
		consider(id, p.Rect)
	}
	for id, n := range d.AuxNodes {
		consider(id, n.Rect)
	}
	return best, found
}

// Translate moves id's own rectangle by (dx,dy). For a State it also
// shifts its direct child regions by the same delta, which trivially
// preserves I-S1 (a uniform translation preserves the union-of-regions
// relationship). Recursing into grandchildren is pkg/containment's
// TranslateWithChildren, which walks the region tree and calls Translate
// once per visited node.
func (d *Diagram) Translate(id elementid.ID, dx, dy float64) error {
	kind, ok := d.kindIndex[id]
	if !ok {
		return ErrNotFound
	}
	switch kind {
	case KindState:
		st := d.States[id]
		st.Rect = st.Rect.Translate(dx, dy)
		for _, rid := range st.Regions {
			r := d.Regions[rid]
			r.Rect = r.Rect.Translate(dx, dy)
		}
	case KindPseudoState:
		ps := d.PseudoStates[id]
		ps.Rect = ps.Rect.Translate(dx, dy)
	case KindRegion:
		r := d.Regions[id]
		r.Rect = r.Rect.Translate(dx, dy)
	default:
		if kind.IsAuxNode() {
			n := d.AuxNodes[id]
			n.Rect = n.Rect.Translate(dx, dy)
		}
	}
	return nil
}

// ResizeCorner resizes a State's rectangle, clamped to the diagram's
// configured minimums. It is a no-op (ErrNotFound) for any other kind.
func (d *Diagram) ResizeCorner(id elementid.ID, corner geometry.Corner, dx, dy float64) (geometry.Rect, error) {
	st, ok := d.States[id]
	if !ok {
		return geometry.Rect{}, ErrNotFound
	}
	minW := float64(d.Settings.MinStateWidth)
	minH := float64(d.Settings.MinStateHeight)
	st.Rect = geometry.ResizeCorner(st.Rect, corner, dx, dy, minW, minH)
	return st.Rect, nil
}

// Delete removes id. For a State, this recursively deletes its region
// contents; for any element, every incident connection/aux edge is also
// removed. Unknown ids are a no-op returning ErrNotFound, never a panic.
func (d *Diagram) Delete(id elementid.ID) error {
	kind, ok := d.kindIndex[id]
	if !ok {
		return ErrNotFound
	}

	switch kind {
	case KindState:
		st := d.States[id]
		for _, rid := range append([]elementid.ID{}, st.Regions...) {
			d.deleteRegionContents(rid)
		}
		d.detachFromParentRegion(id)
		delete(d.States, id)
	case KindPseudoState:
		d.detachFromParentRegion(id)
		delete(d.PseudoStates, id)
	case KindRegion:
		d.deleteRegionContents(id)
	case KindConnection:
		delete(d.Connections, id)
	default:
		if kind.IsAuxNode() {
			delete(d.AuxNodes, id)
		} else if kind.IsAuxEdge() {
			delete(d.AuxEdges, id)
		}
	}
	delete(d.kindIndex, id)
	d.removeIncidentEdges(id)
	d.Selection.Remove(id)
	return nil
}

func (d *Diagram) deleteRegionContents(regionID elementid.ID) {
	region, ok := d.Regions[regionID]
	if !ok {
		return
	}
	for _, childID := range append([]elementid.ID{}, region.Children...) {
		_ = d.Delete(childID)
	}
	delete(d.Regions, regionID)
	delete(d.kindIndex, regionID)
}

func (d *Diagram) detachFromParentRegion(nodeID elementid.ID) {
	var parentID elementid.ID
	if st, ok := d.States[nodeID]; ok {
		parentID = st.ParentRegionID
	} else if ps, ok := d.PseudoStates[nodeID]; ok {
		parentID = ps.ParentRegionID
	}
	region, ok := d.Regions[parentID]
	if !ok {
		return
	}
	for i, c := range region.Children {
		if c == nodeID {
			region.Children = append(region.Children[:i], region.Children[i+1:]...)
			break
		}
	}
}

func (d *Diagram) removeIncidentEdges(id elementid.ID) {
	for cid, c := range d.Connections {
		if c.Source == id || c.Target == id {
			delete(d.Connections, cid)
			delete(d.kindIndex, cid)
		}
	}
	for eid, e := range d.AuxEdges {
		if e.Source == id || e.Target == id {
			delete(d.AuxEdges, eid)
			delete(d.kindIndex, eid)
		}
	}
}

// Iter returns all element ids, optionally filtered by kind, sorted for
// deterministic iteration.
func (d *Diagram) Iter(kind *ElementKind) []elementid.ID {
	ids := make([]elementid.ID, 0, len(d.kindIndex))
	for id, k := range d.kindIndex {
		if kind == nil || k == *kind {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
