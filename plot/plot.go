// Package plot renders a call graph into a static PNG or SVG chart.
package plot

import (
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"github.com/zeebo/errs/v2"
	"golang.org/x/image/font/basicfont"

	"loov.dev/calltimeline/callgraph"
)

// ErrRender is returned when a chart cannot be produced.
const ErrRender = errs.Tag("render failed")

type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// FormatFromPath picks the format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	default:
		return "", ErrRender.Errorf("unsupported output format %q", ext)
	}
}

func (format Format) provider() chart.RendererProvider {
	if format == SVG {
		return chart.SVG
	}
	return chart.PNG
}

type Options struct {
	Title  string
	Width  int
	Height int
}

var DefaultOptions = Options{
	Title:  "Function Call Graph",
	Width:  1200,
	Height: 600,
}

// Render draws graph to w.
func Render(w io.Writer, graph *callgraph.Graph, format Format, opts Options) error {
	ch, err := Chart(graph, opts)
	if err != nil {
		return err
	}
	if err := ch.Render(format.provider(), w); err != nil {
		return ErrRender.Wrap(err)
	}
	return nil
}

// Chart builds the chart for graph: one series per segment and guide,
// and an annotation series with the function labels.
func Chart(graph *callgraph.Graph, opts Options) (chart.Chart, error) {
	if len(graph.Primitives) == 0 {
		return chart.Chart{}, ErrRender.Errorf("trace has no events")
	}

	xmax := float64(graph.End())
	if xmax <= 0 {
		xmax = 1
	}
	ymax := float64(graph.MaxDepth + 1)

	var series []chart.Series
	var labels []callgraph.Label
	for _, p := range graph.Primitives {
		switch p := p.(type) {
		case callgraph.Vertical:
			series = append(series, segment(
				float64(p.X), float64(p.X),
				float64(p.From), float64(p.To),
				graph.Color(p.Function)))
		case callgraph.Horizontal:
			series = append(series, segment(
				float64(p.From), float64(p.To),
				float64(p.Y), float64(p.Y),
				graph.Color(p.Function)))
		case callgraph.Guide:
			if float64(p.Y) > ymax {
				continue
			}
			series = append(series, segment(
				0, xmax,
				float64(p.Y), float64(p.Y),
				callgraph.GuideColor))
		case callgraph.Label:
			labels = append(labels, p)
		}
	}

	if len(labels) > 0 {
		annotations := chart.AnnotationSeries{
			Style: chart.Style{
				FillColor:   drawing.ColorTransparent,
				StrokeColor: drawing.ColorTransparent,
			},
		}
		for _, placed := range PlaceLabels(labels, basicfont.Face7x13, opts.Width) {
			annotations.Annotations = append(annotations.Annotations, chart.Value2{
				XValue: placed.Offset * xmax,
				YValue: float64(placed.Y),
				Label:  placed.Function,
				Style: chart.Style{
					FontColor: toDrawing(graph.Color(placed.Function)),
				},
			})
		}
		series = append(series, annotations)
	}

	return chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Time (ns)",
			Range: &chart.ContinuousRange{Min: 0, Max: xmax},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: ymax},
			Ticks: []chart.Tick{{Value: 0}, {Value: ymax}},
		},
		Series: series,
	}, nil
}

func segment(x0, x1, y0, y1 float64, col color.NRGBA) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Style: chart.Style{
			StrokeColor: toDrawing(col),
			StrokeWidth: 1,
		},
		XValues: []float64{x0, x1},
		YValues: []float64{y0, y1},
	}
}

func toDrawing(col color.NRGBA) drawing.Color {
	return drawing.Color{R: col.R, G: col.G, B: col.B, A: col.A}
}
