package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/joemooney/jmt/pkg/elementid"
	"github.com/joemooney/jmt/pkg/model"
	"github.com/joemooney/jmt/pkg/routing"
	"gopkg.in/yaml.v3"
)

// Save serialises d to the `.jmt` YAML format. Elements are written in
// ElementId-sorted order, so two saves of logically identical content are
// byte-identical. Connection sides and slot offsets are refreshed via
// pkg/routing first, so the stored values match what Load recomputes and
// save(load(bytes)) reproduces bytes.
func Save(d *model.Diagram) ([]byte, error) {
	routing.Recompute(d)
	doc := buildDocument(d)
	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal diagram: %v", model.ErrPersistence, err)
	}
	return out, nil
}

// ToJSON serialises d to the same document shape as Save, encoded as JSON
// instead of YAML. It exists for tooling that wants a diagram's content
// without pulling in a YAML decoder, e.g. web previews and pkg/export.
func ToJSON(d *model.Diagram, indent bool) ([]byte, error) {
	doc := buildDocument(d)
	var out []byte
	var err error
	if indent {
		out, err = json.MarshalIndent(&doc, "", "  ")
	} else {
		out, err = json.Marshal(&doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: marshal diagram: %v", model.ErrPersistence, err)
	}
	return out, nil
}

// FromJSON is ToJSON's inverse: it decodes a JSON-encoded document into a
// new Diagram, recomputing connection segments exactly as Load does.
func FromJSON(data []byte) (*model.Diagram, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: unmarshal diagram: %v", model.ErrPersistence, err)
	}
	return applyDocument(&doc), nil
}

func buildDocument(d *model.Diagram) document {
	doc := document{
		Kind:         d.Kind.String(),
		Name:         d.Name,
		FilePath:     d.FilePath,
		Settings:     d.Settings,
		RootRegionID: d.RootRegionID,
	}

	for _, id := range d.Iter(nil) {
		kind, ok := d.ElementKindOf(id)
		if !ok {
			continue
		}
		switch {
		case kind == model.KindRegion:
			r := d.Regions[id]
			doc.Regions = append(doc.Regions, regionDoc{
				ID: r.ID, Name: r.Name, Rect: r.Rect, ParentStateID: r.ParentStateID,
				Children: r.Children, Orientation: r.Orientation, IsRoot: r.IsRoot,
			})
		case kind == model.KindState:
			s := d.States[id]
			doc.States = append(doc.States, stateDoc{
				ID: s.ID, Name: s.Name, Rect: s.Rect, FillColor: s.FillColor,
				ShowActivities: s.ShowActivities, Entry: s.Entry, Do: s.Do, Exit: s.Exit,
				Regions: s.Regions, ParentRegionID: s.ParentRegionID,
			})
		case kind == model.KindPseudoState:
			p := d.PseudoStates[id]
			doc.PseudoStates = append(doc.PseudoStates, pseudoStateDoc{
				ID: p.ID, Kind: p.Kind, Rect: p.Rect, ParentRegionID: p.ParentRegionID,
			})
		case kind == model.KindConnection:
			c := d.Connections[id]
			doc.Connections = append(doc.Connections, connectionDoc{
				ID: c.ID, Source: c.Source, Target: c.Target, Event: c.Event, Guard: c.Guard,
				Action: c.Action, SourceSide: c.SourceSide, TargetSide: c.TargetSide,
				SlotOffset: c.SlotOffset, LabelOffset: c.LabelOffset, SelfLoop: c.SelfLoop,
			})
		case kind.IsAuxNode():
			n := d.AuxNodes[id]
			doc.AuxNodes = append(doc.AuxNodes, auxNodeDoc{ID: n.ID, Kind: n.Kind, Rect: n.Rect, Attrs: n.Attrs})
		case kind.IsAuxEdge():
			e := d.AuxEdges[id]
			doc.AuxEdges = append(doc.AuxEdges, auxEdgeDoc{ID: e.ID, Kind: e.Kind, Source: e.Source, Target: e.Target, Attrs: e.Attrs})
		}
	}
	return doc
}

// Load deserialises data into a new Diagram and recomputes every
// connection's segments via pkg/routing, since segments are never
// persisted (I-C2, §9).
func Load(data []byte) (*model.Diagram, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: unmarshal diagram: %v", model.ErrPersistence, err)
	}
	return applyDocument(&doc), nil
}

func applyDocument(doc *document) *model.Diagram {
	d := model.New(parseDiagramKind(doc.Kind), doc.Name)
	d.FilePath = doc.FilePath
	d.Settings = doc.Settings
	d.RootRegionID = doc.RootRegionID

	d.Regions = make(map[elementid.ID]*model.Region, len(doc.Regions))
	for _, r := range doc.Regions {
		d.Regions[r.ID] = &model.Region{
			ID: r.ID, Name: r.Name, Rect: r.Rect, ParentStateID: r.ParentStateID,
			Children: r.Children, Orientation: r.Orientation, IsRoot: r.IsRoot,
		}
	}
	d.States = make(map[elementid.ID]*model.State, len(doc.States))
	for _, s := range doc.States {
		d.States[s.ID] = &model.State{
			ID: s.ID, Name: s.Name, Rect: s.Rect, FillColor: s.FillColor,
			ShowActivities: s.ShowActivities, Entry: s.Entry, Do: s.Do, Exit: s.Exit,
			Regions: s.Regions, ParentRegionID: s.ParentRegionID,
		}
	}
	d.PseudoStates = make(map[elementid.ID]*model.PseudoState, len(doc.PseudoStates))
	for _, p := range doc.PseudoStates {
		d.PseudoStates[p.ID] = &model.PseudoState{ID: p.ID, Kind: p.Kind, Rect: p.Rect, ParentRegionID: p.ParentRegionID}
	}
	d.Connections = make(map[elementid.ID]*model.Connection, len(doc.Connections))
	for _, c := range doc.Connections {
		d.Connections[c.ID] = &model.Connection{
			ID: c.ID, Source: c.Source, Target: c.Target, Event: c.Event, Guard: c.Guard,
			Action: c.Action, SourceSide: c.SourceSide, TargetSide: c.TargetSide,
			SlotOffset: c.SlotOffset, LabelOffset: c.LabelOffset, SelfLoop: c.SelfLoop,
		}
	}
	d.AuxNodes = make(map[elementid.ID]*model.AuxNode, len(doc.AuxNodes))
	for _, n := range doc.AuxNodes {
		d.AuxNodes[n.ID] = &model.AuxNode{ID: n.ID, Kind: n.Kind, Rect: n.Rect, Attrs: n.Attrs}
	}
	d.AuxEdges = make(map[elementid.ID]*model.AuxEdge, len(doc.AuxEdges))
	for _, e := range doc.AuxEdges {
		d.AuxEdges[e.ID] = &model.AuxEdge{ID: e.ID, Kind: e.Kind, Source: e.Source, Target: e.Target, Attrs: e.Attrs}
	}

	d.RebuildIndex()
	routing.Recompute(d)
	return d
}

func parseDiagramKind(s string) model.DiagramKind {
	switch s {
	case model.Sequence.String():
		return model.Sequence
	case model.UseCase.String():
		return model.UseCase
	case model.Activity.String():
		return model.Activity
	default:
		return model.StateMachine
	}
}
