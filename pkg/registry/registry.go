package registry

import (
	"fmt"
	"sort"

	"github.com/joemooney/jmt/pkg/interaction"
	"github.com/joemooney/jmt/pkg/model"
	"github.com/joemooney/jmt/pkg/persistence"
)

// TabId identifies one open diagram tab, distinct from any element's
// elementid.ID (diagrams aren't addressable diagram elements).
type TabId string

type tab struct {
	diagram *model.Diagram
	engine  *interaction.Engine
}

// Registry is the open-tabs map described in §4.9. The zero value is not
// usable; construct with New.
type Registry struct {
	tabs   map[TabId]*tab
	active TabId
	nextID uint64
}

// New returns an empty Registry with no open tabs.
func New() *Registry {
	return &Registry{tabs: make(map[TabId]*tab)}
}

func (r *Registry) mintTabID() TabId {
	r.nextID++
	return TabId(fmt.Sprintf("tab-%d", r.nextID))
}

// NewDiagram creates a fresh diagram of kind, opens it in a new tab, and
// makes it the active tab.
func (r *Registry) NewDiagram(kind model.DiagramKind) TabId {
	d := model.New(kind, "untitled")
	id := r.mintTabID()
	r.tabs[id] = &tab{diagram: d, engine: interaction.New(d)}
	r.active = id
	return id
}

// Load decodes data as a persisted diagram, opens it in a new tab, and
// makes it the active tab.
func (r *Registry) Load(data []byte) (TabId, error) {
	d, err := persistence.Load(data)
	if err != nil {
		return "", err
	}
	id := r.mintTabID()
	r.tabs[id] = &tab{diagram: d, engine: interaction.New(d)}
	r.active = id
	return id, nil
}

// Save serialises the diagram open in tabID and clears its dirty flag.
func (r *Registry) Save(tabID TabId) ([]byte, error) {
	t, ok := r.tabs[tabID]
	if !ok {
		return nil, model.ErrNotFound
	}
	data, err := persistence.Save(t.diagram)
	if err != nil {
		return nil, err
	}
	t.diagram.Dirty = false
	return data, nil
}

// CloseDiagram removes tabID from the registry. It does not check the
// dirty flag; callers that want a save-prompt must inspect IsDirty
// themselves before calling this, since the registry has no UI of its
// own to prompt with.
func (r *Registry) CloseDiagram(tabID TabId) {
	delete(r.tabs, tabID)
	if r.active == tabID {
		r.active = ""
		for id := range r.tabs {
			r.active = id
			break
		}
	}
}

// SetActiveDiagram switches the active tab. It is a no-op if tabID is
// not open.
func (r *Registry) SetActiveDiagram(tabID TabId) {
	if _, ok := r.tabs[tabID]; ok {
		r.active = tabID
	}
}

// ActiveTab returns the currently active tab, or "" if no tab is open.
func (r *Registry) ActiveTab() TabId {
	return r.active
}

// Diagram returns the *model.Diagram open in tabID.
func (r *Registry) Diagram(tabID TabId) (*model.Diagram, bool) {
	t, ok := r.tabs[tabID]
	if !ok {
		return nil, false
	}
	return t.diagram, true
}

// Engine returns the *interaction.Engine for tabID, which persists across
// calls so a drag spanning begin/continue/end calls keeps its state.
func (r *Registry) Engine(tabID TabId) (*interaction.Engine, bool) {
	t, ok := r.tabs[tabID]
	if !ok {
		return nil, false
	}
	return t.engine, true
}

// IsDirty reports whether tabID has unsaved changes.
func (r *Registry) IsDirty(tabID TabId) bool {
	t, ok := r.tabs[tabID]
	return ok && t.diagram.Dirty
}

// DirtyTabs returns every open tab with unsaved changes, sorted for
// deterministic iteration.
func (r *Registry) DirtyTabs() []TabId {
	var ids []TabId
	for id, t := range r.tabs {
		if t.diagram.Dirty {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// OpenTabs returns every open tab id, sorted for deterministic iteration.
func (r *Registry) OpenTabs() []TabId {
	ids := make([]TabId, 0, len(r.tabs))
	for id := range r.tabs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
