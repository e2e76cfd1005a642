// Package callgraph replays the call stack implied by a trace and produces
// the primitives for drawing it as a timeline.
package callgraph

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"loov.dev/calltimeline/trace"
)

// Graph is the result of replaying a trace.
type Graph struct {
	Registry *trace.Registry
	// Events is the chronological event sequence that was replayed.
	Events []trace.Event
	// Span is the time covered by the events, invalid for an empty trace.
	Span trace.TimeRange
	// Primitives in the order they were produced.
	Primitives []Primitive

	// MaxDepth is the largest stack depth reached.
	MaxDepth int
	// Levels maps a caller depth to the functions first entered from it.
	Levels *orderedmap.OrderedMap[int, []string]

	// Unbalanced counts exits that had no open frame.
	Unbalanced int
	// Dangling counts frames that were never exited.
	Dangling int
}

// Reconstruct replays log and builds the chart primitives.
//
// Malformed traces never fail: an exit without an open frame is dropped, and
// frames left open at the end draw a zero-length segment at the last event.
func Reconstruct(log *trace.Log, registry *trace.Registry) *Graph {
	events := log.Flatten()
	graph := &Graph{
		Registry: registry,
		Events:   events,
		Span:     log.TimeRange(),
		Levels:   orderedmap.New[int, []string](),
	}

	var stack Stack
	for i, ev := range events {
		switch ev.Kind {
		case trace.Enter:
			graph.enter(&stack, ev)
		case trace.Exit:
			graph.exit(&stack, ev)
		}

		top, ok := stack.Top()
		if !ok {
			continue
		}
		next := ev.Time
		if i+1 < len(events) {
			next = events[i+1].Time
		}
		graph.emit(Horizontal{
			From:     ev.Time,
			To:       next,
			Y:        top.Level,
			Function: top.Function,
		})
	}
	graph.Dangling = stack.Len()

	for _, function := range registry.Names() {
		slot, _ := registry.Slot(function)
		graph.emit(Guide{
			Y:        slot + 1,
			Function: function,
		})
	}

	return graph
}

func (graph *Graph) emit(p Primitive) {
	graph.Primitives = append(graph.Primitives, p)
}

func (graph *Graph) enter(stack *Stack, ev trace.Event) {
	level := stack.Len()
	graph.emit(Vertical{
		X:        ev.Time,
		From:     level,
		To:       level + 1,
		Function: ev.Function,
	})
	stack.Push(Frame{
		Function: ev.Function,
		Enter:    ev.Time,
		Level:    level + 1,
	})
	if stack.Len() > graph.MaxDepth {
		graph.MaxDepth = stack.Len()
	}

	functions, _ := graph.Levels.Get(level)
	for _, function := range functions {
		if function == ev.Function {
			return
		}
	}
	graph.Levels.Set(level, append(functions, ev.Function))
	graph.emit(Label{
		Depth:    level,
		Y:        level + 1,
		Index:    len(functions),
		Function: ev.Function,
	})
}

func (graph *Graph) exit(stack *Stack, ev trace.Event) {
	frame, ok := stack.PopNearest(ev.Function)
	if !ok {
		graph.Unbalanced++
		return
	}
	graph.emit(Vertical{
		X:        ev.Time,
		From:     frame.Level,
		To:       stack.Level(),
		Function: ev.Function,
	})
}

// FunctionsAt returns the functions first entered from depth.
func (graph *Graph) FunctionsAt(depth int) []string {
	functions, _ := graph.Levels.Get(depth)
	return functions
}

// End returns the time of the last replayed event, 0 for an empty trace.
func (graph *Graph) End() trace.Time {
	if !graph.Span.IsValid() {
		return 0
	}
	return graph.Span.Finish
}

func (graph *Graph) Verticals() []Vertical {
	var out []Vertical
	for _, p := range graph.Primitives {
		if v, ok := p.(Vertical); ok {
			out = append(out, v)
		}
	}
	return out
}

func (graph *Graph) Horizontals() []Horizontal {
	var out []Horizontal
	for _, p := range graph.Primitives {
		if h, ok := p.(Horizontal); ok {
			out = append(out, h)
		}
	}
	return out
}

func (graph *Graph) Guides() []Guide {
	var out []Guide
	for _, p := range graph.Primitives {
		if g, ok := p.(Guide); ok {
			out = append(out, g)
		}
	}
	return out
}

func (graph *Graph) Labels() []Label {
	var out []Label
	for _, p := range graph.Primitives {
		if l, ok := p.(Label); ok {
			out = append(out, l)
		}
	}
	return out
}
