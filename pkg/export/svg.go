package export

import (
	"bytes"
	"fmt"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/joemooney/jmt/pkg/geometry"
	"github.com/joemooney/jmt/pkg/hittest"
	"github.com/joemooney/jmt/pkg/model"
)

// SVGOptions configures a diagram's SVG rendering.
type SVGOptions struct {
	Margin       int    // Canvas margin in pixels around the content bounds
	ShowGrid     bool   // Draw a light background grid
	RegionStroke string // Stroke color for region separators
	StateFill    string // Default fill color for states
	StateStroke  string // Default stroke color for states
}

// DefaultSVGOptions returns sensible default SVG export options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Margin:       40,
		ShowGrid:     false,
		RegionStroke: "#94a3b8",
		StateFill:    "#ffffff",
		StateStroke:  "#1f2937",
	}
}

// ExportSVG renders d as an SVG document sized to its content bounds
// plus opts.Margin, painting in PaintOrder so occlusion matches the
// editor's own render order.
func ExportSVG(d *model.Diagram, opts SVGOptions) ([]byte, error) {
	bounds := hittest.ContentBounds(d)
	width := int(bounds.Width) + 2*opts.Margin
	height := int(bounds.Height) + 2*opts.Margin
	if width <= 0 {
		width = 400
	}
	if height <= 0 {
		height = 300
	}
	offsetX := float64(opts.Margin) - bounds.X
	offsetY := float64(opts.Margin) - bounds.Y

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#f8fafc")

	for _, id := range hittest.PaintOrder(d) {
		kind, ok := d.ElementKindOf(id)
		if !ok {
			continue
		}
		switch kind {
		case model.KindRegion:
			drawRegion(canvas, d.Regions[id], opts, offsetX, offsetY)
		case model.KindState:
			drawState(canvas, d.States[id], opts, offsetX, offsetY)
		case model.KindPseudoState:
			drawPseudoState(canvas, d.PseudoStates[id], offsetX, offsetY)
		case model.KindConnection:
			drawConnection(canvas, d.Connections[id], offsetX, offsetY)
		default:
			if kind.IsAuxNode() {
				drawAuxNode(canvas, d.AuxNodes[id], opts, offsetX, offsetY)
			}
		}
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVGToFile renders d and writes it to filepath with 0644
// permissions.
func SaveSVGToFile(d *model.Diagram, filepath string, opts SVGOptions) error {
	data, err := ExportSVG(d, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

func drawRegion(canvas *svg.SVG, r *model.Region, opts SVGOptions, ox, oy float64) {
	if r.IsRoot {
		return // the root region has no visible boundary of its own
	}
	canvas.Rect(
		int(r.Rect.X+ox), int(r.Rect.Y+oy), int(r.Rect.Width), int(r.Rect.Height),
		fmt.Sprintf("fill:none;stroke:%s;stroke-dasharray:4,3", opts.RegionStroke),
	)
}

func drawState(canvas *svg.SVG, s *model.State, opts SVGOptions, ox, oy float64) {
	fill := opts.StateFill
	if s.FillColor != nil {
		fill = fmt.Sprintf("#%02x%02x%02x", s.FillColor.R, s.FillColor.G, s.FillColor.B)
	}
	stroke := opts.StateStroke
	if s.HasError {
		stroke = "#dc2626"
	}
	canvas.Roundrect(
		int(s.Rect.X+ox), int(s.Rect.Y+oy), int(s.Rect.Width), int(s.Rect.Height), 8, 8,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2", fill, stroke),
	)
	if s.Name != "" {
		canvas.Text(
			int(s.Rect.X+ox+s.Rect.Width/2), int(s.Rect.Y+oy+s.Rect.Height/2),
			s.Name, "text-anchor:middle;dominant-baseline:middle;font-size:12px",
		)
	}
}

func drawPseudoState(canvas *svg.SVG, ps *model.PseudoState, ox, oy float64) {
	cx, cy := int(ps.Rect.Center().X+ox), int(ps.Rect.Center().Y+oy)
	switch ps.Kind {
	case model.Initial:
		canvas.Circle(cx, cy, int(ps.Rect.Width/2), "fill:#1f2937")
	case model.Final:
		canvas.Circle(cx, cy, int(ps.Rect.Width/2), "fill:none;stroke:#1f2937;stroke-width:2")
		canvas.Circle(cx, cy, int(ps.Rect.Width/2)-4, "fill:#1f2937")
	case model.Fork, model.Join:
		canvas.Rect(int(ps.Rect.X+ox), int(ps.Rect.Y+oy), int(ps.Rect.Width), int(ps.Rect.Height), "fill:#1f2937")
	default: // Choice, Junction
		half := ps.Rect.Width / 2
		xs := []int{cx, int(ps.Rect.X+ox+half), cx, int(ps.Rect.X+ox)}
		ys := []int{int(ps.Rect.Y + oy), cy, int(ps.Rect.Y + oy + ps.Rect.Height), cy}
		canvas.Polygon(xs, ys, "fill:#fbbf24;stroke:#1f2937")
	}
}

func drawAuxNode(canvas *svg.SVG, n *model.AuxNode, opts SVGOptions, ox, oy float64) {
	canvas.Rect(
		int(n.Rect.X+ox), int(n.Rect.Y+oy), int(n.Rect.Width), int(n.Rect.Height),
		fmt.Sprintf("fill:%s;stroke:%s", opts.StateFill, opts.StateStroke),
	)
	if name := n.Attrs["name"]; name != "" {
		canvas.Text(
			int(n.Rect.X+ox+n.Rect.Width/2), int(n.Rect.Y+oy+n.Rect.Height/2),
			name, "text-anchor:middle;dominant-baseline:middle;font-size:11px",
		)
	}
}

func drawConnection(canvas *svg.SVG, c *model.Connection, ox, oy float64) {
	if len(c.Segments) < 2 {
		return
	}
	xs := make([]int, len(c.Segments))
	ys := make([]int, len(c.Segments))
	for i, p := range c.Segments {
		xs[i] = int(p.X + ox)
		ys[i] = int(p.Y + oy)
	}
	canvas.Polyline(xs, ys, "fill:none;stroke:#1f2937;stroke-width:1.5")
	drawArrowHead(canvas, c.Segments[len(c.Segments)-2], c.Segments[len(c.Segments)-1], ox, oy)

	if c.Event != "" {
		anchor := c.LabelAnchor()
		canvas.Text(int(anchor.X+ox), int(anchor.Y+oy), c.Event, "font-size:10px;fill:#1f2937")
	}
}

func drawArrowHead(canvas *svg.SVG, from, to geometry.Point, ox, oy float64) {
	const size = 8.0
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	tipX, tipY := to.X+ox, to.Y+oy
	leftX := tipX - size*math.Cos(angle-0.4)
	leftY := tipY - size*math.Sin(angle-0.4)
	rightX := tipX - size*math.Cos(angle+0.4)
	rightY := tipY - size*math.Sin(angle+0.4)
	canvas.Polygon(
		[]int{int(tipX), int(leftX), int(rightX)},
		[]int{int(tipY), int(leftY), int(rightY)},
		"fill:#1f2937",
	)
}
