// Package history implements snapshot-based undo/redo (§4.7). A snapshot
// is an opaque byte sequence produced by pkg/persistence; history itself
// never interprets the bytes, it only stacks and restores them. This
// keeps history free of any dependency on the entity model, matching the
// teacher repository's preference for small, dependency-free leaf
// packages.
package history
