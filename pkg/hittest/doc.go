// Package hittest implements §4.8's paint order and its inverse, hit
// testing. Render order and hit order are opposite walks of the same
// ordering: smaller-area nodes paint on top and are hit first, so both
// concerns live behind one PaintOrder slice built by pkg/model's
// uniform accessors, mirroring how the teacher's pkg/export derives a
// single render layout that every consumer (SVG, stats, legend) reads
// rather than recomputing its own.
package hittest
