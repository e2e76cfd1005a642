package callgraph

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Summary describes a reconstructed graph without its primitives.
type Summary struct {
	Events           int                                   `json:"events"`
	Functions        []string                              `json:"functions"`
	MaxDepth         int                                   `json:"max_depth"`
	FunctionsAtLevel *orderedmap.OrderedMap[int, []string] `json:"functions_at_level"`

	Verticals   int `json:"verticals"`
	Horizontals int `json:"horizontals"`
	Guides      int `json:"guides"`
	Labels      int `json:"labels"`

	Skipped    int `json:"skipped_lines"`
	Unbalanced int `json:"unbalanced_exits"`
	Dangling   int `json:"dangling_enters"`
}

// Summarize collects the summary of graph. skipped is the number of input
// lines the decoder could not use.
func (graph *Graph) Summarize(skipped int) Summary {
	summary := Summary{
		Events:           len(graph.Events),
		Functions:        graph.Registry.Names(),
		MaxDepth:         graph.MaxDepth,
		FunctionsAtLevel: graph.Levels,
		Skipped:          skipped,
		Unbalanced:       graph.Unbalanced,
		Dangling:         graph.Dangling,
	}
	for _, p := range graph.Primitives {
		switch p.(type) {
		case Vertical:
			summary.Verticals++
		case Horizontal:
			summary.Horizontals++
		case Guide:
			summary.Guides++
		case Label:
			summary.Labels++
		}
	}
	return summary
}

// WriteTo writes a human readable table of the summary.
func (summary Summary) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "events\t%d\n", summary.Events)
	fmt.Fprintf(tw, "functions\t%s\n", strings.Join(summary.Functions, ", "))
	fmt.Fprintf(tw, "max depth\t%d\n", summary.MaxDepth)
	if summary.FunctionsAtLevel != nil {
		for pair := summary.FunctionsAtLevel.Oldest(); pair != nil; pair = pair.Next() {
			fmt.Fprintf(tw, "  level %d\t%s\n", pair.Key, strings.Join(pair.Value, ", "))
		}
	}
	fmt.Fprintf(tw, "primitives\t%d vertical, %d horizontal, %d guide, %d label\n",
		summary.Verticals, summary.Horizontals, summary.Guides, summary.Labels)
	fmt.Fprintf(tw, "skipped lines\t%d\n", summary.Skipped)
	fmt.Fprintf(tw, "unbalanced exits\t%d\n", summary.Unbalanced)
	fmt.Fprintf(tw, "dangling enters\t%d\n", summary.Dangling)
	_ = tw.Flush()

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
