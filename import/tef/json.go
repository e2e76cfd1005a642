// Package tef converts Trace Event Format files, as written by Chrome tracing
// and many profilers, into a trace log.
//
// See https://docs.google.com/document/d/1CvAClvFfyA5R-PhYUmn5OOQtYMH4h6I0nSsKchNAySU/preview
package tef

/*
{
  "traceEvents": [
    {"name": "Asub", "cat": "PERF", "ph": "B", "pid": 22630, "tid": 22630, "ts": 829},
    {"name": "Asub", "cat": "PERF", "ph": "E", "pid": 22630, "tid": 22630, "ts": 833}
  ],
  "displayTimeUnit": "ns"
}
*/

type File struct {
	TraceEvents []Event `json:"traceEvents"`
	// DisplayTimeUnit is either "ms" (default) or "ns".
	DisplayTimeUnit string         `json:"displayTimeUnit"`
	OtherData       map[string]any `json:"otherData"`
}

type Event struct {
	Name     string `json:"name"`
	Category string `json:"cat"`
	Phase    Phase  `json:"ph"`
	// Timestamp is in microseconds, fractions are allowed.
	Timestamp float64 `json:"ts"`
	// ThreadTimestamp is the thread clock timestamp in microseconds.
	ThreadTimestamp float64 `json:"tts,omitzero"`
	ProcessID       int64   `json:"pid"`
	ThreadID        int64   `json:"tid"`

	Args map[string]any `json:"args,omitempty"`

	// Duration of Complete events, in microseconds.
	Duration float64 `json:"dur,omitzero"`
}

type Phase string

const (
	DurationBegin Phase = "B"
	DurationEnd   Phase = "E"
	Complete      Phase = "X"
	Instant       Phase = "i"
	Counter       Phase = "C"
	Metadata      Phase = "M"
)

func (phase Phase) isDuration() bool {
	return phase == DurationBegin || phase == DurationEnd || phase == Complete
}
