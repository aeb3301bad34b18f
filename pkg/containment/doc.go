// Package containment keeps a Diagram's State tree consistent with its
// current geometry: re-parenting nodes into the correct Region as they
// move, retiling sibling Regions to match their parent State's rectangle,
// flagging partial containment, and expanding an ancestor State when a
// child escapes it. It is the single most intricate subsystem: every
// function here is a free function over *model.Diagram rather than a
// method, the same separation the entity model keeps from its own
// geometry mutators (model.Diagram.Translate moves one element's
// rectangle, plus a State's own regions; containment decides which
// Region that rectangle now belongs in).
package containment
