package tui

import (
	"image"
	"image/color"
	"math"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"loov.dev/calltimeline/callgraph"
	"loov.dev/calltimeline/trace"
)

var axisColor = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}

// Viewport maps trace coordinates into a pixel rectangle: time grows to the
// right starting at zero, levels grow upwards starting at zero.
type Viewport struct {
	Rect image.Rectangle
	XMax float64
	YMax float64
}

// NewViewport creates a viewport showing graph inside rect.
func NewViewport(graph *callgraph.Graph, rect image.Rectangle) Viewport {
	xmax := float64(graph.End())
	if xmax <= 0 {
		xmax = 1
	}
	return Viewport{
		Rect: rect,
		XMax: xmax,
		YMax: float64(graph.MaxDepth + 1),
	}
}

func (view Viewport) X(t trace.Time) int {
	return view.Rect.Min.X + int(math.Round(float64(t)/view.XMax*float64(view.Rect.Dx())))
}

func (view Viewport) Y(level int) int {
	return view.Rect.Max.Y - int(math.Round(float64(level)/view.YMax*float64(view.Rect.Dy())))
}

// Segment is a filled rectangle in pixels.
type Segment struct {
	Rect  image.Rectangle
	Color color.NRGBA
}

// Segments converts the line primitives of graph into rectangles of the given
// line width. Guides outside of the viewport are dropped.
func Segments(graph *callgraph.Graph, view Viewport, width int) []Segment {
	if width < 1 {
		width = 1
	}

	var segments []Segment
	for _, p := range graph.Primitives {
		switch p := p.(type) {
		case callgraph.Guide:
			if float64(p.Y) > view.YMax {
				continue
			}
			y := view.Y(p.Y)
			segments = append(segments, Segment{
				Rect:  image.Rect(view.Rect.Min.X, y, view.Rect.Max.X, y+width),
				Color: callgraph.GuideColor,
			})
		case callgraph.Vertical:
			x := view.X(p.X)
			y0, y1 := view.Y(p.From), view.Y(p.To)
			segments = append(segments, Segment{
				Rect:  image.Rect(x, y0, x+width, y1).Canon(),
				Color: graph.Color(p.Function),
			})
		case callgraph.Horizontal:
			y := view.Y(p.Y)
			segments = append(segments, Segment{
				Rect:  image.Rect(view.X(p.From), y, view.X(p.To)+width, y+width),
				Color: graph.Color(p.Function),
			})
		}
	}
	return segments
}

// GraphStyle draws a call graph with axes and function labels.
type GraphStyle struct {
	Theme *material.Theme
	Graph *callgraph.Graph

	LineWidth unit.Dp
	TextSize  unit.Sp
}

func Graph(th *material.Theme, graph *callgraph.Graph) GraphStyle {
	return GraphStyle{
		Theme:     th,
		Graph:     graph,
		LineWidth: unit.Dp(1),
		TextSize:  th.TextSize * 12.0 / 16.0,
	}
}

func (style GraphStyle) Layout(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max
	axisHeight := 3 * gtx.Sp(style.TextSize)
	margin := gtx.Dp(Large)

	plot := image.Rect(margin, margin, size.X-margin, size.Y-axisHeight)
	if plot.Empty() {
		return layout.Dimensions{Size: size}
	}
	view := NewViewport(style.Graph, plot)

	for _, seg := range Segments(style.Graph, view, gtx.Dp(style.LineWidth)) {
		paint.FillShape(gtx.Ops, seg.Color, clip.Rect(seg.Rect).Op())
	}

	paint.FillShape(gtx.Ops, axisColor, clip.Rect(image.Rect(plot.Min.X-1, plot.Min.Y, plot.Min.X, plot.Max.Y)).Op())
	paint.FillShape(gtx.Ops, axisColor, clip.Rect(image.Rect(plot.Min.X-1, plot.Max.Y, plot.Max.X, plot.Max.Y+1)).Op())

	style.layoutLabels(gtx, view)
	style.layoutAxis(gtx, view)

	return layout.Dimensions{Size: size}
}

// layoutLabels places the labels of each depth left to right above its row.
func (style GraphStyle) layoutLabels(gtx layout.Context, view Viewport) {
	gap := gtx.Dp(Medium)
	next := map[int]int{}

	for _, label := range style.Graph.Labels() {
		x, ok := next[label.Depth]
		if !ok {
			x = view.Rect.Min.X + gap
		}

		lbl := material.Label(style.Theme, style.TextSize, label.Function)
		lbl.Color = style.Graph.Color(label.Function)
		lbl.Font.Weight = text.Bold

		dims := style.place(gtx, lbl, x, view.Y(label.Y), true)
		next[label.Depth] = x + dims.Size.X + gap
	}
}

func (style GraphStyle) layoutAxis(gtx layout.Context, view Viewport) {
	tick := func(t trace.Time) {
		lbl := material.Label(style.Theme, style.TextSize, t.String())
		lbl.Color = axisColor
		style.place(gtx, lbl, view.X(t), view.Rect.Max.Y+gtx.Dp(Tiny), false)
	}
	tick(0)
	if end := style.Graph.End(); end > 0 {
		tick(end)
	}

	name := material.Label(style.Theme, style.TextSize, "Time (ns)")
	name.Color = axisColor
	name.Alignment = text.Middle
	center := (view.Rect.Min.X + view.Rect.Max.X) / 2
	style.place(gtx, name, center-gtx.Dp(unit.Dp(30)), view.Rect.Max.Y+gtx.Sp(style.TextSize)+gtx.Dp(Small), false)
}

// place lays out lbl at x, y; with above set, y is the bottom edge of the label.
func (style GraphStyle) place(gtx layout.Context, lbl material.LabelStyle, x, y int, above bool) layout.Dimensions {
	gtx.Constraints.Min = image.Point{}

	macro := op.Record(gtx.Ops)
	dims := lbl.Layout(gtx)
	call := macro.Stop()

	if above {
		y -= dims.Size.Y
	}
	defer op.Offset(image.Point{X: x, Y: y}).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
	return dims
}
