package tui

import (
	"image/color"

	"gioui.org/layout"
	"gioui.org/widget/material"
)

type PanelStyle struct {
	Caption    material.LabelStyle
	Background color.NRGBA
}

func Panel(th *material.Theme, caption string) PanelStyle {
	cap := material.Body2(th, caption)
	cap.Color = color.NRGBA{R: 0x50, G: 0x50, B: 0x58, A: 0xFF}
	return PanelStyle{
		Caption:    cap,
		Background: color.NRGBA{R: 0xF4, G: 0xF4, B: 0xF6, A: 0xFF},
	}
}

// Layout draws the caption above the content, the content fills the rest.
func (p PanelStyle) Layout(gtx layout.Context, w layout.Widget) layout.Dimensions {
	return Stack(Small).Layout(gtx,
		p.Caption.Layout,
		func(gtx layout.Context) layout.Dimensions {
			return Box(p.Background).Layout(gtx, w)
		},
	)
}
