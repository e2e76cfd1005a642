package tui

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
)

type Gap = unit.Dp

var (
	Tiny   = unit.Dp(2)
	Small  = unit.Dp(4)
	Medium = unit.Dp(6)
	Large  = unit.Dp(10)
)

// StackStyle lays widgets out top to bottom, the last widget takes the
// remaining height.
type StackStyle struct {
	Gap Gap
}

func Stack(gap Gap) StackStyle {
	return StackStyle{
		Gap: gap,
	}
}

func (stack StackStyle) Layout(gtx layout.Context, ws ...layout.Widget) layout.Dimensions {
	gap := gtx.Dp(stack.Gap)
	dims := layout.Dimensions{
		Size: image.Point{X: gtx.Constraints.Max.X},
	}

	for i, w := range ws {
		cgtx := gtx
		cgtx.Constraints.Min.Y = 0
		cgtx.Constraints.Max.Y = positiveInt(gtx.Constraints.Max.Y - dims.Size.Y)
		if i+1 == len(ws) {
			cgtx.Constraints.Min.Y = cgtx.Constraints.Max.Y
		}

		offset := op.Offset(image.Point{Y: dims.Size.Y}).Push(gtx.Ops)
		wdims := w(cgtx)
		offset.Pop()

		dims.Size.Y += wdims.Size.Y
		if i+1 < len(ws) {
			dims.Size.Y += gap
		}
	}

	return dims
}

// BoxStyle fills the available area with a background and insets the content.
type BoxStyle struct {
	Background color.NRGBA
	Gap        Gap
}

func Box(col color.NRGBA) BoxStyle {
	return BoxStyle{
		Background: col,
		Gap:        Small,
	}
}

func (box BoxStyle) Layout(gtx layout.Context, w layout.Widget) layout.Dimensions {
	size := gtx.Constraints.Max
	paint.FillShape(gtx.Ops, box.Background, clip.Rect{Max: size}.Op())

	gtx.Constraints.Min = size
	layout.UniformInset(box.Gap).Layout(gtx, w)

	return layout.Dimensions{Size: size}
}

func positiveInt(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
