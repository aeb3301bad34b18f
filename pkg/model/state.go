package model

import (
	"github.com/joemooney/jmt/pkg/config"
	"github.com/joemooney/jmt/pkg/elementid"
	"github.com/joemooney/jmt/pkg/geometry"
)

// State is the core containment node (§3). Invariant I-S1: if Regions is
// non-empty, Rect equals the union of the regions' rectangles. Invariant
// I-S2: ParentRegionID is set iff the parent region's Children contains
// this state's id. Invariant I-S3: minimum dimensions are enforced by the
// geometry package's clamps, never by State itself.
type State struct {
	ID              elementid.ID
	Name            string
	Rect            geometry.Rect
	FillColor       *config.Color
	ShowActivities  *bool // per-state override of Settings.ShowActivities
	Entry, Do, Exit string

	Regions        []elementid.ID // ordered child Region ids
	ParentRegionID elementid.ID   // elementid.None if top-level

	HasError bool // transient: partial containment
	HasFocus bool // transient: selection cursor
}

// Region is a container inside a State that tiles the state's interior
// along one axis (§3). Invariant I-R1: siblings tile the parent's
// interior with no gaps along the region axis. Invariant I-R2: every
// non-root region appears exactly once in its parent state's Regions.
type Region struct {
	ID            elementid.ID
	Name          string
	Rect          geometry.Rect
	ParentStateID elementid.ID // elementid.None for the diagram-level root region
	Children      []elementid.ID // ordered State and PseudoState ids
	Orientation   Orientation
	HasFocus      bool
	IsRoot        bool
}

// PseudoState is an Initial/Final/Choice/Junction/Fork/Join node (§3).
// Invariant I-P1 (at most one Initial per region) is enforced by
// Diagram.AddPseudoState at creation time, not by this type.
type PseudoState struct {
	ID             elementid.ID
	Kind           PseudoKind
	Rect           geometry.Rect
	ParentRegionID elementid.ID
	HasError       bool
	HasFocus       bool
}

// DefaultPseudoStateRect returns the default square/bar footprint for a
// newly placed pseudostate of the given kind, centred on center.
func DefaultPseudoStateRect(kind PseudoKind, center geometry.Point) geometry.Rect {
	var w, h float64
	switch kind {
	case Fork, Join:
		w, h = 60, 10
	default:
		w, h = 20, 20
	}
	return geometry.Rect{X: center.X - w/2, Y: center.Y - h/2, Width: w, Height: h}
}
