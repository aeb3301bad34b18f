package model

import (
	"github.com/joemooney/jmt/pkg/elementid"
	"github.com/joemooney/jmt/pkg/geometry"
)

// AuxNode is a rectangle-bearing auxiliary entity: Lifeline, Actor,
// UseCase, SystemBoundary, Action, Swimlane, ObjectNode, or
// CombinedFragment. These participate in selection and drag uniformly
// with States, but never in the containment/regions engine (§3).
type AuxNode struct {
	ID       elementid.ID
	Kind     ElementKind
	Rect     geometry.Rect
	Attrs    map[string]string // element-specific string attributes
	HasFocus bool
}

// AuxEdge is an endpoint-pair auxiliary entity: UseCaseRelationship,
// Message, or ControlFlow. Unlike Connection, these have no slot
// assignment. pkg/routing does not compute their Segments; the field
// holds whatever a caller stores in it.
type AuxEdge struct {
	ID       elementid.ID
	Kind     ElementKind
	Source   elementid.ID
	Target   elementid.ID
	Attrs    map[string]string
	Selected bool
	HasFocus bool

	Segments []geometry.Point
}
