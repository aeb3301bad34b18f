// Package persistence serialises a Diagram to and from the `.jmt` YAML
// format (§6). Elements are written in ElementId-sorted order so two
// saves of the same logical content always produce byte-identical output,
// and Connection segments are never written: Load always recomputes them
// via pkg/routing, since they are a cache over geometry that would
// otherwise go stale (§9 design notes).
package persistence
