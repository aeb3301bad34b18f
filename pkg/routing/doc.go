// Package routing turns a Connection's source/target endpoints into a
// renderable three-segment polyline and assigns each connection sharing a
// side of an element its own slot so parallel edges don't overlap. Every
// function here is a free function over *model.Diagram, mirroring
// pkg/containment's separation between the entity model's plain
// rectangle storage and the subsystems that derive geometry from it.
package routing
