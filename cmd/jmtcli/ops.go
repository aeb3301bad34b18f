package main

import (
	"fmt"

	"github.com/joemooney/jmt/pkg/elementid"
	"github.com/joemooney/jmt/pkg/geometry"
	"github.com/joemooney/jmt/pkg/interaction"
	"github.com/joemooney/jmt/pkg/model"
	"gopkg.in/yaml.v3"
)

// script is a headless driver for pkg/interaction, the scripted analogue
// of mouse events: each op names a ref it creates or a set of refs it
// acts on, so a script can build and manipulate a diagram without ever
// touching an elementid.ID directly.
type script struct {
	Ops []op `yaml:"ops"`
}

type op struct {
	Op     string         `yaml:"op"`
	Ref    string         `yaml:"ref,omitempty"`
	Parent string         `yaml:"parent,omitempty"`
	Refs   []string       `yaml:"refs,omitempty"`
	Source string         `yaml:"source,omitempty"`
	Target string         `yaml:"target,omitempty"`
	Name   string         `yaml:"name,omitempty"`
	Event  string         `yaml:"event,omitempty"`
	Kind   string         `yaml:"kind,omitempty"`
	Mode   string         `yaml:"mode,omitempty"`
	Axis   string         `yaml:"axis,omitempty"`
	Rect   *rectSpec      `yaml:"rect,omitempty"`
	Dx     float64        `yaml:"dx,omitempty"`
	Dy     float64        `yaml:"dy,omitempty"`
}

type rectSpec struct {
	X, Y, W, H float64
}

func (r rectSpec) toRect() geometry.Rect {
	return geometry.Rect{X: r.X, Y: r.Y, Width: r.W, Height: r.H}
}

func loadScript(data []byte) (*script, error) {
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return &s, nil
}

// run executes every op against d/eng in order, tracking ref -> ID so
// later ops can refer back to elements created earlier in the script.
func (s *script) run(d *model.Diagram, eng *interaction.Engine) error {
	refs := make(map[string]elementid.ID)

	resolve := func(ref string) (elementid.ID, error) {
		id, ok := refs[ref]
		if !ok {
			return elementid.None, fmt.Errorf("undefined ref %q", ref)
		}
		return id, nil
	}

	for i, o := range s.Ops {
		switch o.Op {
		case "add_state":
			st := d.AddState(o.Rect.toRect())
			st.Name = o.Name
			if o.Ref != "" {
				refs[o.Ref] = st.ID
			}

		case "add_region":
			parent, err := resolve(o.Parent)
			if err != nil {
				return fmt.Errorf("op %d (%s): %w", i, o.Op, err)
			}
			orient := model.Horizontal
			if o.Kind == "vertical" {
				orient = model.Vertical
			}
			r, err := d.AddRegion(parent, o.Rect.toRect(), orient)
			if err != nil {
				return fmt.Errorf("op %d (%s): %w", i, o.Op, err)
			}
			if o.Ref != "" {
				refs[o.Ref] = r.ID
			}

		case "add_pseudostate":
			parent, err := resolve(o.Parent)
			if err != nil {
				return fmt.Errorf("op %d (%s): %w", i, o.Op, err)
			}
			kind, err := parsePseudoKind(o.Kind)
			if err != nil {
				return fmt.Errorf("op %d (%s): %w", i, o.Op, err)
			}
			ps, err := d.AddPseudoState(kind, o.Rect.toRect(), parent)
			if err != nil {
				return fmt.Errorf("op %d (%s): %w", i, o.Op, err)
			}
			if o.Ref != "" {
				refs[o.Ref] = ps.ID
			}

		case "add_connection":
			source, err := resolve(o.Source)
			if err != nil {
				return fmt.Errorf("op %d (%s): %w", i, o.Op, err)
			}
			target, err := resolve(o.Target)
			if err != nil {
				return fmt.Errorf("op %d (%s): %w", i, o.Op, err)
			}
			c, err := d.AddConnection(source, target)
			if err != nil {
				return fmt.Errorf("op %d (%s): %w", i, o.Op, err)
			}
			c.Event = o.Event
			if o.Ref != "" {
				refs[o.Ref] = c.ID
			}

		case "select":
			ids := make([]elementid.ID, 0, len(o.Refs))
			for _, ref := range o.Refs {
				id, err := resolve(ref)
				if err != nil {
					return fmt.Errorf("op %d (%s): %w", i, o.Op, err)
				}
				ids = append(ids, id)
			}
			d.Selection.SelectAll(ids)

		case "nudge":
			eng.NudgeSelection(o.Dx, o.Dy, true)

		case "align":
			mode, err := parseAlignMode(o.Mode)
			if err != nil {
				return fmt.Errorf("op %d (%s): %w", i, o.Op, err)
			}
			if err := eng.Align(mode); err != nil {
				return fmt.Errorf("op %d (%s): %w", i, o.Op, err)
			}

		case "distribute":
			axis, err := parseAxis(o.Axis)
			if err != nil {
				return fmt.Errorf("op %d (%s): %w", i, o.Op, err)
			}
			if err := eng.Distribute(axis); err != nil {
				return fmt.Errorf("op %d (%s): %w", i, o.Op, err)
			}

		case "delete":
			eng.DeleteSelection()

		case "undo":
			eng.Undo()

		case "redo":
			eng.Redo()

		default:
			return fmt.Errorf("op %d: unknown op %q", i, o.Op)
		}
	}
	return nil
}

func parsePseudoKind(s string) (model.PseudoKind, error) {
	switch s {
	case "initial":
		return model.Initial, nil
	case "final":
		return model.Final, nil
	case "choice":
		return model.Choice, nil
	case "junction":
		return model.Junction, nil
	case "fork":
		return model.Fork, nil
	case "join":
		return model.Join, nil
	default:
		return 0, fmt.Errorf("unknown pseudostate kind %q", s)
	}
}

func parseAlignMode(s string) (interaction.AlignMode, error) {
	switch s {
	case "left":
		return interaction.AlignLeft, nil
	case "right":
		return interaction.AlignRight, nil
	case "top":
		return interaction.AlignTop, nil
	case "bottom":
		return interaction.AlignBottom, nil
	case "center_h":
		return interaction.AlignCenterH, nil
	case "center_v":
		return interaction.AlignCenterV, nil
	default:
		return 0, fmt.Errorf("unknown align mode %q", s)
	}
}

func parseAxis(s string) (interaction.Axis, error) {
	switch s {
	case "horizontal":
		return interaction.AxisHorizontal, nil
	case "vertical":
		return interaction.AxisVertical, nil
	default:
		return 0, fmt.Errorf("unknown axis %q", s)
	}
}
