// Package geometry provides pure functions over points, rectangles, line
// segments, and polygons. Every operation is side-effect free: it returns a
// value or a well-defined enum, never an error.
package geometry
