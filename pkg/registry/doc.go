// Package registry implements the multi-diagram session surface of
// §4.9: the open-tabs map keyed by TabId, the active tab pointer, and
// the dirty-tab bookkeeping the chrome needs to prompt on close. Each
// tab owns one *interaction.Engine so drag state and the undo/redo
// stacks persist across calls the way the teacher's top-level pipeline
// holds one *dungeon.Artifact per generation run rather than recomputing
// state on every call.
package registry
