package selection

import "github.com/joemooney/jmt/pkg/elementid"

// Set is the selection set described in §4.5: a set of ElementIds plus a
// parallel order vector and the explicit-order flag that governs whether
// alignment/auto-connect honour insertion order or fall back to
// positional ordering.
type Set struct {
	ids           map[elementid.ID]struct{}
	order         []elementid.ID
	explicitOrder bool
}

// NewSet returns an empty selection set.
func NewSet() *Set {
	return &Set{ids: make(map[elementid.ID]struct{})}
}

// Clear empties the selection and resets explicit ordering.
func (s *Set) Clear() {
	s.ids = make(map[elementid.ID]struct{})
	s.order = nil
	s.explicitOrder = false
}

// Select replaces the selection with the single id.
func (s *Set) Select(id elementid.ID) {
	s.Clear()
	s.add(id)
}

// SelectAll replaces the selection with ids, in the given order. Used by
// marquee/lasso finalisation, which clears explicit ordering.
func (s *Set) SelectAll(ids []elementid.ID) {
	s.Clear()
	for _, id := range ids {
		s.add(id)
	}
	s.explicitOrder = false
}

// Toggle adds id if absent or removes it if present (ctrl-click). This
// always sets explicit_selection_order, per §4.5.
func (s *Set) Toggle(id elementid.ID) {
	if _, ok := s.ids[id]; ok {
		s.remove(id)
	} else {
		s.add(id)
	}
	s.explicitOrder = true
}

func (s *Set) add(id elementid.ID) {
	if _, ok := s.ids[id]; ok {
		return
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *Set) remove(id elementid.ID) {
	if _, ok := s.ids[id]; !ok {
		return
	}
	delete(s.ids, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Contains reports whether id is selected.
func (s *Set) Contains(id elementid.ID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected elements.
func (s *Set) Len() int {
	return len(s.order)
}

// Order returns the selection in insertion order. The returned slice must
// not be mutated by the caller.
func (s *Set) Order() []elementid.ID {
	return s.order
}

// ExplicitOrder reports whether insertion order should be honoured for
// alignment/auto-connect, rather than falling back to positional order.
func (s *Set) ExplicitOrder() bool {
	return s.explicitOrder
}

// Remove drops id from the selection, e.g. because the element was
// deleted. It does not affect explicit_selection_order.
func (s *Set) Remove(id elementid.ID) {
	s.remove(id)
}
