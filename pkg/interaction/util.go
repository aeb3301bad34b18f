package interaction

import (
	"sort"

	"github.com/joemooney/jmt/pkg/elementid"
	"github.com/joemooney/jmt/pkg/model"
)

func sortByCenterX(d *model.Diagram, ids []elementid.ID) {
	sort.Slice(ids, func(i, j int) bool {
		ri, _ := d.BoundsOf(ids[i])
		rj, _ := d.BoundsOf(ids[j])
		return ri.Center().X < rj.Center().X
	})
}
