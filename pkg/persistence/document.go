package persistence

import (
	"github.com/joemooney/jmt/pkg/config"
	"github.com/joemooney/jmt/pkg/elementid"
	"github.com/joemooney/jmt/pkg/geometry"
	"github.com/joemooney/jmt/pkg/model"
)

// document is the on-disk `.jmt` shape. Connection segments are
// deliberately absent: they are recomputed by Load, never stored.
type document struct {
	Kind         string          `yaml:"kind" json:"kind"`
	Name         string          `yaml:"name" json:"name"`
	FilePath     string          `yaml:"file_path,omitempty" json:"file_path,omitempty"`
	Settings     config.Settings `yaml:"settings" json:"settings"`
	RootRegionID elementid.ID    `yaml:"root_region_id" json:"root_region_id"`

	Regions      []regionDoc      `yaml:"regions,omitempty" json:"regions,omitempty"`
	States       []stateDoc       `yaml:"states,omitempty" json:"states,omitempty"`
	PseudoStates []pseudoStateDoc `yaml:"pseudo_states,omitempty" json:"pseudo_states,omitempty"`
	Connections  []connectionDoc  `yaml:"connections,omitempty" json:"connections,omitempty"`
	AuxNodes     []auxNodeDoc     `yaml:"aux_nodes,omitempty" json:"aux_nodes,omitempty"`
	AuxEdges     []auxEdgeDoc     `yaml:"aux_edges,omitempty" json:"aux_edges,omitempty"`
}

type regionDoc struct {
	ID            elementid.ID      `yaml:"id" json:"id"`
	Name          string            `yaml:"name,omitempty" json:"name,omitempty"`
	Rect          geometry.Rect     `yaml:"rect" json:"rect"`
	ParentStateID elementid.ID      `yaml:"parent_state_id,omitempty" json:"parent_state_id,omitempty"`
	Children      []elementid.ID    `yaml:"children,omitempty" json:"children,omitempty"`
	Orientation   model.Orientation `yaml:"orientation" json:"orientation"`
	IsRoot        bool              `yaml:"is_root,omitempty" json:"is_root,omitempty"`
}

type stateDoc struct {
	ID             elementid.ID   `yaml:"id" json:"id"`
	Name           string         `yaml:"name,omitempty" json:"name,omitempty"`
	Rect           geometry.Rect  `yaml:"rect" json:"rect"`
	FillColor      *config.Color  `yaml:"fill_color,omitempty" json:"fill_color,omitempty"`
	ShowActivities *bool          `yaml:"show_activities,omitempty" json:"show_activities,omitempty"`
	Entry          string         `yaml:"entry,omitempty" json:"entry,omitempty"`
	Do             string         `yaml:"do,omitempty" json:"do,omitempty"`
	Exit           string         `yaml:"exit,omitempty" json:"exit,omitempty"`
	Regions        []elementid.ID `yaml:"regions,omitempty" json:"regions,omitempty"`
	ParentRegionID elementid.ID   `yaml:"parent_region_id,omitempty" json:"parent_region_id,omitempty"`
}

type pseudoStateDoc struct {
	ID             elementid.ID     `yaml:"id" json:"id"`
	Kind           model.PseudoKind `yaml:"kind" json:"kind"`
	Rect           geometry.Rect    `yaml:"rect" json:"rect"`
	ParentRegionID elementid.ID     `yaml:"parent_region_id,omitempty" json:"parent_region_id,omitempty"`
}

type connectionDoc struct {
	ID          elementid.ID   `yaml:"id" json:"id"`
	Source      elementid.ID   `yaml:"source" json:"source"`
	Target      elementid.ID   `yaml:"target" json:"target"`
	Event       string         `yaml:"event,omitempty" json:"event,omitempty"`
	Guard       string         `yaml:"guard,omitempty" json:"guard,omitempty"`
	Action      string         `yaml:"action,omitempty" json:"action,omitempty"`
	SourceSide  model.Side     `yaml:"source_side" json:"source_side"`
	TargetSide  model.Side     `yaml:"target_side" json:"target_side"`
	SlotOffset  float64        `yaml:"slot_offset" json:"slot_offset"`
	LabelOffset geometry.Point `yaml:"label_offset" json:"label_offset"`
	SelfLoop    bool           `yaml:"self_loop,omitempty" json:"self_loop,omitempty"`
}

type auxNodeDoc struct {
	ID    elementid.ID      `yaml:"id" json:"id"`
	Kind  model.ElementKind `yaml:"kind" json:"kind"`
	Rect  geometry.Rect     `yaml:"rect" json:"rect"`
	Attrs map[string]string `yaml:"attrs,omitempty" json:"attrs,omitempty"`
}

type auxEdgeDoc struct {
	ID     elementid.ID      `yaml:"id" json:"id"`
	Kind   model.ElementKind `yaml:"kind" json:"kind"`
	Source elementid.ID      `yaml:"source" json:"source"`
	Target elementid.ID      `yaml:"target" json:"target"`
	Attrs  map[string]string `yaml:"attrs,omitempty" json:"attrs,omitempty"`
}
