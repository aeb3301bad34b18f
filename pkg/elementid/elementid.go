// Package elementid defines the stable identifier shared by every element
// in the core. It is split out from pkg/model so that leaf packages
// (pkg/selection, pkg/history) can refer to element identities without
// importing the full entity model, keeping the dependency graph acyclic.
package elementid

import "github.com/google/uuid"

// ID is a universally unique, stable identifier for a diagram element.
// The zero value is the well-known "no element" sentinel; it is never
// assigned to a real element.
type ID string

// None is the zero ID, used where a field is optional (e.g. a State with
// no parent region).
const None ID = ""

// New mints a fresh, globally unique ID.
func New() ID {
	return ID(uuid.NewString())
}

// IsNone reports whether id is the unset sentinel.
func (id ID) IsNone() bool {
	return id == None
}
