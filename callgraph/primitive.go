package callgraph

import (
	"fmt"

	"loov.dev/calltimeline/trace"
)

// Primitive is a single drawing instruction for a chart renderer.
//
// The concrete types are Vertical, Horizontal, Guide and Label.
type Primitive interface {
	fmt.Stringer
	primitive()
}

// Vertical is a depth transition at time X.
type Vertical struct {
	X        trace.Time
	From     int
	To       int
	Function string
}

// Horizontal marks the frame on top of the stack between two events.
type Horizontal struct {
	From     trace.Time
	To       trace.Time
	Y        int
	Function string
}

// Guide is a full-width line at the registry row of a function.
type Guide struct {
	Y        int
	Function string
}

// Label names a function at the depth it was first called from.
//
// Index is the position of the function among the labels of the same depth,
// renderers lay labels of a depth out left to right in that order.
type Label struct {
	Depth    int
	Y        int
	Index    int
	Function string
}

func (Vertical) primitive()   {}
func (Horizontal) primitive() {}
func (Guide) primitive()      {}
func (Label) primitive()      {}

func (p Vertical) String() string {
	return fmt.Sprintf("vertical x=%d y=%d..%d %q", p.X, p.From, p.To, p.Function)
}

func (p Horizontal) String() string {
	return fmt.Sprintf("horizontal x=%d..%d y=%d %q", p.From, p.To, p.Y, p.Function)
}

func (p Guide) String() string {
	return fmt.Sprintf("guide y=%d %q", p.Y, p.Function)
}

func (p Label) String() string {
	return fmt.Sprintf("label y=%d #%d %q", p.Y, p.Index, p.Function)
}
