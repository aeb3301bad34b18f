package model

import (
	"github.com/joemooney/jmt/pkg/elementid"
	"github.com/joemooney/jmt/pkg/geometry"
)

// Connection is a transition/edge between two elements (§3). Invariant
// I-C1: Source != Target (self-connections use SelfLoop instead).
// Invariant I-C2: after any move/resize of source or target, Segments
// must be recomputed before the next render — routing.Recompute does
// this; Connection itself only stores the result. Invariant I-C3:
// SlotOffset is always a multiple of half the diagram's slot step (a
// centred group with an even member count sits at odd half-steps).
type Connection struct {
	ID       elementid.ID
	Source   elementid.ID
	Target   elementid.ID
	Event    string
	Guard    string
	Action   string

	SourceSide Side
	TargetSide Side
	SlotOffset float64

	LabelOffset geometry.Point // caller-supplied offset from the computed anchor

	Selected      bool
	LabelSelected bool

	SelfLoop bool // true when Source == Target (I-C1's explicit self route)

	// Segments is derived and never persisted (§6); it is recomputed by
	// pkg/routing after every geometry mutation and after deserialisation.
	Segments []geometry.Point
}

// LabelAnchor returns the midpoint of the connection's middle segment
// plus LabelOffset, per §4.4. Returns LabelOffset alone if Segments
// hasn't been computed yet (fewer than 2 points).
func (c *Connection) LabelAnchor() geometry.Point {
	if len(c.Segments) < 2 {
		return c.LabelOffset
	}
	mid := len(c.Segments) / 2
	a, b := c.Segments[mid-1], c.Segments[mid]
	return geometry.Point{
		X: (a.X+b.X)/2 + c.LabelOffset.X,
		Y: (a.Y+b.Y)/2 + c.LabelOffset.Y,
	}
}
