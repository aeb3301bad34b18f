package interaction

import (
	"fmt"
	"time"

	"github.com/joemooney/jmt/pkg/containment"
	"github.com/joemooney/jmt/pkg/elementid"
	"github.com/joemooney/jmt/pkg/geometry"
	"github.com/joemooney/jmt/pkg/jmtlog"
	"github.com/joemooney/jmt/pkg/model"
	"github.com/joemooney/jmt/pkg/persistence"
	"github.com/joemooney/jmt/pkg/routing"
	"github.com/joemooney/jmt/pkg/selection"
)

// Engine is the mutable session wrapped around one Diagram: it owns the
// in-progress drag and the pending-connection source, neither of which
// belongs in the serialised snapshot.
type Engine struct {
	D             *model.Diagram
	drag          dragState
	pendingSource elementid.ID
}

// New wraps d in an Engine. The diagram must already exist (via
// model.New or persistence.Load); Engine never constructs one itself.
func New(d *model.Diagram) *Engine {
	return &Engine{D: d, pendingSource: elementid.None}
}

// pushSnapshot serialises the current diagram and pushes it onto the
// undo stack, clearing redo and marking the diagram dirty (§4.7). A
// serialisation failure is logged and otherwise swallowed: it must never
// block the mutation that's about to happen, per §7's no-panic policy.
func (e *Engine) pushSnapshot() {
	snap, err := persistence.Save(e.D)
	if err != nil {
		jmtlog.L().Errorw("snapshot push failed, continuing without an undo entry", "err", err)
		return
	}
	e.D.History.Push(snap)
	e.D.Dirty = true
}

// Undo restores the most recent undo snapshot in place, preserving the
// Diagram's identity (Mode/History are untouched, content is swapped, and
// the selection is cleared) so callers holding a *model.Diagram pointer
// stay valid.
func (e *Engine) Undo() bool {
	current, err := persistence.Save(e.D)
	if err != nil {
		jmtlog.L().Errorw("undo: failed to snapshot current state", "err", err)
		return false
	}
	snap, ok := e.D.History.Undo(current)
	if !ok {
		return false
	}
	return e.restore(snap)
}

// Redo mirrors Undo using the redo stack.
func (e *Engine) Redo() bool {
	current, err := persistence.Save(e.D)
	if err != nil {
		jmtlog.L().Errorw("redo: failed to snapshot current state", "err", err)
		return false
	}
	snap, ok := e.D.History.Redo(current)
	if !ok {
		return false
	}
	return e.restore(snap)
}

func (e *Engine) restore(snap []byte) bool {
	restored, err := persistence.Load(snap)
	if err != nil {
		jmtlog.L().Errorw("restore: failed to decode snapshot", "err", err)
		return false
	}
	e.D.ReplaceContent(restored)
	routing.Recompute(e.D)
	e.D.Selection.Clear()
	e.D.Dirty = true
	return true
}

// Select, ToggleSelect, and ClearSelection never push undo: selection and
// mode changes are not mutations (§4.6).
func (e *Engine) Select(id elementid.ID)       { e.D.Selection.Select(id) }
func (e *Engine) ToggleSelect(id elementid.ID) { e.D.Selection.Toggle(id) }
func (e *Engine) ClearSelection()              { e.D.Selection.Clear() }

// SetMode switches the edit mode directly, except that entering Connect
// with two or more elements already selected instead immediately creates
// connections pairwise along the selection order and returns to Arrow
// (§4.5).
func (e *Engine) SetMode(m selection.Mode) {
	if m == selection.Connect && e.D.Selection.Len() >= 2 {
		e.autoConnectSelection()
		return
	}
	e.D.Mode.Set(m)
}

func (e *Engine) autoConnectSelection() {
	order := e.selectionOrderForOps()
	e.pushSnapshot()
	for i := 0; i+1 < len(order); i++ {
		if _, err := e.D.AddConnection(order[i], order[i+1]); err != nil {
			jmtlog.L().Debugw("auto-connect skipped a pair", "from", order[i], "to", order[i+1], "err", err)
		}
	}
	routing.Recompute(e.D)
	e.D.Mode.Set(selection.Arrow)
}

// selectionOrderForOps returns the selection in the order alignment and
// auto-connect should honour: explicit insertion order if the user
// ctrl-clicked, otherwise positional order by x (§4.5).
func (e *Engine) selectionOrderForOps() []elementid.ID {
	ids := append([]elementid.ID{}, e.D.Selection.Order()...)
	if e.D.Selection.ExplicitOrder() {
		return ids
	}
	sortByCenterX(e.D, ids)
	return ids
}

// AddElement places a new element of the kind implied by the current
// Add* mode, centred on point, assigns it into the innermost suitable
// region, and pushes undo.
//
// A single click always places an element and stays in mode. Detecting
// the second click of a double-click is owned by the core, not the
// caller (§4.5): now is compared against the mode register's own
// clock-backed record of the previous Add* click, using
// Settings.DoubleClickMS/DoubleClickDist as the time/distance
// thresholds. When that second click qualifies, no element is placed and
// the mode switches to Arrow instead. Placing an Initial or Final always
// auto-transitions to EnterConnect regardless of double-click state.
func (e *Engine) AddElement(point geometry.Point, now time.Time) (elementid.ID, error) {
	mode := e.D.Mode.Mode()
	if !mode.IsAdd() {
		return elementid.None, fmt.Errorf("add_element called outside an Add* mode (current mode %s)", mode)
	}

	maxInterval := time.Duration(e.D.Settings.DoubleClickMS) * time.Millisecond
	maxDist := float64(e.D.Settings.DoubleClickDist)
	if e.D.Mode.NoteAddClick(point, now, maxInterval, maxDist) {
		return elementid.None, nil
	}

	e.pushSnapshot()

	if mode == selection.AddState {
		rect := centeredRect(point, float64(e.D.Settings.MinStateWidth), float64(e.D.Settings.MinStateHeight))
		s := e.D.AddState(rect)
		containment.UpdateNodeRegion(e.D, s.ID)
		return s.ID, nil
	}

	if pk, ok := pseudoKindForMode(mode); ok {
		rect := model.DefaultPseudoStateRect(pk, point)
		regionID := containment.FindRegionAtPointForNode(e.D, point, rect.Area(), elementid.None)
		ps, err := e.D.AddPseudoState(pk, rect, regionID)
		if err != nil {
			return elementid.None, err
		}
		containment.UpdateNodeRegion(e.D, ps.ID)
		if pk == model.Initial || pk == model.Final {
			e.D.Mode.EnterConnectFromAdd()
		}
		return ps.ID, nil
	}

	kind, ok := auxKindForMode(mode)
	if !ok {
		return elementid.None, fmt.Errorf("no element kind registered for mode %s", mode)
	}
	rect := centeredRect(point, float64(e.D.Settings.MinStateWidth), float64(e.D.Settings.MinStateHeight))
	n := e.D.AddAuxNode(kind, rect)
	return n.ID, nil
}

// StartConnection records source as the pending connection endpoint.
func (e *Engine) StartConnection(source elementid.ID) error {
	if _, ok := e.D.ElementKindOf(source); !ok {
		return model.ErrNotFound
	}
	e.pendingSource = source
	e.D.Mode.BeginConnectSource()
	return nil
}

// CompleteConnection validates and creates a Connection from the pending
// source to target, assigns slots for both endpoints, and pushes undo.
// EnterConnect's one-shot source (from placing an Initial/Final) returns
// to Arrow on completion; otherwise the mode is left as it is and only the
// pending source is cleared, so further connections can be chained from a
// new source.
func (e *Engine) CompleteConnection(target elementid.ID) (*model.Connection, error) {
	source := e.pendingSource
	if source == elementid.None {
		return nil, fmt.Errorf("complete_connection called with no pending source")
	}
	if target == source {
		return nil, model.ErrInvalidTarget
	}
	if kind, ok := e.D.ElementKindOf(target); !ok {
		return nil, model.ErrNotFound
	} else if kind == model.KindPseudoState && e.D.PseudoStates[target].Kind == model.Initial {
		return nil, model.ErrInvalidTarget
	}

	e.pushSnapshot()
	c, err := e.D.AddConnection(source, target)
	if err != nil {
		return nil, err
	}
	routing.Recompute(e.D)

	wasEnterConnect := e.D.Mode.Mode() == selection.EnterConnect
	e.pendingSource = elementid.None
	if wasEnterConnect {
		e.D.Mode.CompleteConnection()
	} else {
		e.D.Mode.ClearPendingSource()
	}
	return c, nil
}

// DeleteSelection deletes every selected element (which also deletes
// incident connections) in one undo entry.
func (e *Engine) DeleteSelection() {
	ids := append([]elementid.ID{}, e.D.Selection.Order()...)
	if len(ids) == 0 {
		return
	}
	e.pushSnapshot()
	for _, id := range ids {
		_ = e.D.Delete(id)
	}
	e.D.Selection.Clear()
	routing.Recompute(e.D)
}

// NudgeSelection translates every selected element by (dx,dy). Pass
// isFirstOfBurst=true on the first nudge of a keyboard repeat burst so
// only that one pushes undo (§4.6).
func (e *Engine) NudgeSelection(dx, dy float64, isFirstOfBurst bool) {
	if e.D.Selection.Len() == 0 {
		return
	}
	if isFirstOfBurst {
		e.pushSnapshot()
	}
	for _, id := range e.D.Selection.Order() {
		_ = containment.TranslateWithChildren(e.D, id, dx, dy)
	}
	containment.UpdateAllNodeRegions(e.D)
	containment.DetectPartialContainment(e.D)
	routing.Recompute(e.D)
}

// CursorPreview returns the bounding rectangle of the transient, unattached
// ghost element that would be placed at point in the current mode, for
// the renderer's cursor preview. ok is false outside an Add* mode.
func CursorPreview(d *model.Diagram, mode selection.Mode, point geometry.Point) (geometry.Rect, bool) {
	if mode == selection.AddState {
		return centeredRect(point, float64(d.Settings.MinStateWidth), float64(d.Settings.MinStateHeight)), true
	}
	if pk, ok := pseudoKindForMode(mode); ok {
		return model.DefaultPseudoStateRect(pk, point), true
	}
	if _, ok := auxKindForMode(mode); ok {
		return centeredRect(point, float64(d.Settings.MinStateWidth), float64(d.Settings.MinStateHeight)), true
	}
	return geometry.Rect{}, false
}

func centeredRect(center geometry.Point, w, h float64) geometry.Rect {
	return geometry.Rect{X: center.X - w/2, Y: center.Y - h/2, Width: w, Height: h}
}

func pseudoKindForMode(m selection.Mode) (model.PseudoKind, bool) {
	switch m {
	case selection.AddInitial:
		return model.Initial, true
	case selection.AddFinal:
		return model.Final, true
	case selection.AddChoice:
		return model.Choice, true
	case selection.AddJunction:
		return model.Junction, true
	case selection.AddFork:
		return model.Fork, true
	case selection.AddJoin:
		return model.Join, true
	default:
		return 0, false
	}
}

func auxKindForMode(m selection.Mode) (model.ElementKind, bool) {
	switch m {
	case selection.AddLifeline:
		return model.KindLifeline, true
	case selection.AddActor:
		return model.KindActor, true
	case selection.AddUseCase:
		return model.KindUseCase, true
	case selection.AddSystemBoundary:
		return model.KindSystemBoundary, true
	case selection.AddAction:
		return model.KindAction, true
	case selection.AddSwimlane:
		return model.KindSwimlane, true
	case selection.AddObjectNode:
		return model.KindObjectNode, true
	case selection.AddCombinedFragment:
		return model.KindCombinedFragment, true
	default:
		return 0, false
	}
}
