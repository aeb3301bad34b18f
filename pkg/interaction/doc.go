// Package interaction implements the atomic entry points of §4.6: the
// surface the input layer and chrome call. Engine wires together
// pkg/model (entity storage), pkg/containment (region consistency),
// pkg/routing (connection geometry), pkg/selection (mode and selection
// state), pkg/persistence (snapshot encoding), and pkg/history (the
// undo/redo stacks) behind one per-diagram object that also tracks the
// in-progress drag, mirroring how the teacher's generation pipeline
// holds one mutable session object per run rather than threading loose
// state through free functions.
package interaction
