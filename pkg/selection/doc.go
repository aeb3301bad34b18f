// Package selection implements the edit-mode register and the selection
// set described in §4.5: the mode enumeration, mode transition rules that
// don't require touching the entity model (toolbar switch, Escape,
// right-click cancellation), and the ordered selection set with its
// ctrl-toggle / explicit-order semantics.
package selection
