package callgraph

import (
	"image/color"
	"math"
)

// GuideColor is the neutral color of level guides.
var GuideColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x4D}

// Color returns the color of function, picked from a rainbow colormap by the
// function's registry slot. Unknown functions are drawn black.
func (graph *Graph) Color(function string) color.NRGBA {
	slot, ok := graph.Registry.Slot(function)
	if !ok {
		return color.NRGBA{A: 0xFF}
	}
	return Rainbow(float64(slot) / float64(graph.Registry.Len()))
}

// Rainbow maps v in [0, 1] from purple over green to red.
func Rainbow(v float64) color.NRGBA {
	v = clamp(v)
	r := clamp(math.Abs(2*v - 0.5))
	g := clamp(math.Sin(math.Pi * v))
	b := clamp(math.Cos(math.Pi * v / 2))
	return color.NRGBA{
		R: uint8(math.Round(r * 0xFF)),
		G: uint8(math.Round(g * 0xFF)),
		B: uint8(math.Round(b * 0xFF)),
		A: 0xFF,
	}
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
