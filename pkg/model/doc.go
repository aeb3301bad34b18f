// Package model owns the element collections of a Diagram and enforces
// the per-element invariants of §3 through identifier-based accessors.
// The model is a tagged union over element variants (States,
// PseudoStates, Regions, Connections, and the auxiliary diagram-type
// entities); Diagram is the uniform Element façade the rest of the core
// dispatches through by ElementKind rather than by Go type, avoiding the
// inheritance hierarchy the original implementation used.
package model
