// Package export renders a diagram to formats outside the `.jmt`
// persistence format: SVG for visual output and JSON for tooling that
// wants the diagram's content without a YAML decoder. SVG output walks
// pkg/hittest's paint order so it matches what the editor draws on
// screen; JSON output reuses pkg/persistence's document shape.
package export
