package plot

import (
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"loov.dev/calltimeline/callgraph"
)

// LabelMargin is the gap before and between labels, as a fraction of the
// plot width.
const LabelMargin = 0.01

// Placement positions a label along the x axis.
type Placement struct {
	callgraph.Label
	// Offset is the distance from the left edge as a fraction of the plot width.
	Offset float64
}

// PlaceLabels lays out the labels of each depth left to right, in label
// order, using face to measure the text. width is the plot width in pixels.
func PlaceLabels(labels []callgraph.Label, face font.Face, width int) []Placement {
	if face == nil {
		face = basicfont.Face7x13
	}
	if width <= 0 {
		width = 1
	}

	sorted := append([]callgraph.Label(nil), labels...)
	sort.SliceStable(sorted, func(i, k int) bool {
		if sorted[i].Depth != sorted[k].Depth {
			return sorted[i].Depth < sorted[k].Depth
		}
		return sorted[i].Index < sorted[k].Index
	})

	placements := make([]Placement, 0, len(sorted))
	next := map[int]float64{}
	for _, label := range sorted {
		offset, ok := next[label.Depth]
		if !ok {
			offset = LabelMargin
		}
		placements = append(placements, Placement{
			Label:  label,
			Offset: offset,
		})

		advance := font.MeasureString(face, label.Function).Ceil()
		next[label.Depth] = offset + float64(advance)/float64(width) + LabelMargin
	}
	return placements
}
