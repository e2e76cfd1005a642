package callgraph

import "loov.dev/calltimeline/trace"

// Frame is one active invocation of a function.
type Frame struct {
	Function string
	Enter    trace.Time
	// Level is the stack depth while the frame is on top.
	Level int
}

// Stack is the call stack replayed from a trace, the most recent frame last.
type Stack struct {
	frames []Frame
}

func (stack *Stack) Len() int { return len(stack.frames) }

func (stack *Stack) Push(frame Frame) {
	stack.frames = append(stack.frames, frame)
}

// Top returns the most recent frame.
func (stack *Stack) Top() (Frame, bool) {
	if len(stack.frames) == 0 {
		return Frame{}, false
	}
	return stack.frames[len(stack.frames)-1], true
}

// Level returns the level of the top frame, or 0 for an empty stack.
func (stack *Stack) Level() int {
	top, ok := stack.Top()
	if !ok {
		return 0
	}
	return top.Level
}

// PopNearest removes the most recent frame of function, even when other
// frames were entered after it. Frames above it stay on the stack.
func (stack *Stack) PopNearest(function string) (Frame, bool) {
	for i := len(stack.frames) - 1; i >= 0; i-- {
		if stack.frames[i].Function != function {
			continue
		}
		frame := stack.frames[i]
		stack.frames = append(stack.frames[:i], stack.frames[i+1:]...)
		return frame, true
	}
	return Frame{}, false
}
