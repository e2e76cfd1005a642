package callgraph

import (
	"image/color"
	"testing"

	"loov.dev/calltimeline/trace"
)

func TestRainbow(t *testing.T) {
	for _, test := range []struct {
		v    float64
		want color.NRGBA
	}{
		{0, color.NRGBA{R: 0x80, G: 0x00, B: 0xFF, A: 0xFF}},
		{0.5, color.NRGBA{R: 0x80, G: 0xFF, B: 0xB4, A: 0xFF}},
		{1, color.NRGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}},
		{-3, color.NRGBA{R: 0x80, G: 0x00, B: 0xFF, A: 0xFF}},
	} {
		if got := Rainbow(test.v); got != test.want {
			t.Errorf("Rainbow(%v) = %v, want %v", test.v, got, test.want)
		}
	}
}

func TestGraphColorFollowsRegistry(t *testing.T) {
	log := trace.NewLog()
	log.Enter("first", 10)
	log.Enter("second", 0)
	graph := Reconstruct(log, trace.NewRegistry(log))

	if got, want := graph.Color("first"), Rainbow(0); got != want {
		t.Errorf("Color(first) = %v, want %v", got, want)
	}
	if got, want := graph.Color("second"), Rainbow(0.5); got != want {
		t.Errorf("Color(second) = %v, want %v", got, want)
	}
	if got := graph.Color("unknown"); got != (color.NRGBA{A: 0xFF}) {
		t.Errorf("Color(unknown) = %v, want black", got)
	}
}
