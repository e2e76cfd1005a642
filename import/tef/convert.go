package tef

import (
	"encoding/json"
	"io"
	"math"
	"sort"

	"github.com/zeebo/errs/v2"

	"loov.dev/calltimeline/trace"
)

// ErrMalformedFile is returned for input that is not a trace event file.
const ErrMalformedFile = errs.Tag("malformed trace event file")

// Parse decodes a trace event file from r and converts it.
func Parse(r io.Reader) (*trace.Log, error) {
	var file File
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, ErrMalformedFile.Wrap(err)
	}
	return Convert(file)
}

// Convert turns duration events into enter and exit records.
//
// Begin and End events map directly, Complete events produce an enter at the
// timestamp and an exit after the duration. Other phases are counted as skipped.
// Events of all threads are merged in timestamp order and shifted so that the
// earliest duration event starts at zero. An End event closes the most recent
// Begin of the same name on its thread, or the most recent Begin when it has
// no name.
func Convert(file File) (*trace.Log, error) {
	scale := 1000.0 // microseconds to nanoseconds
	if file.DisplayTimeUnit == "ns" {
		scale = 1
	}

	events := append([]Event(nil), file.TraceEvents...)
	sort.SliceStable(events, func(i, k int) bool {
		return events[i].Timestamp < events[k].Timestamp
	})

	origin := math.Inf(1)
	for _, ev := range events {
		if ev.Timestamp < 0 || ev.Duration < 0 {
			return nil, ErrMalformedFile.Errorf("event %q has a negative time", ev.Name)
		}
		if ev.Phase.isDuration() {
			origin = math.Min(origin, ev.Timestamp)
		}
	}
	toTime := func(v float64) trace.Time {
		return trace.Time(math.Round((v - origin) * scale))
	}

	type threadID struct{ pid, tid int64 }
	open := map[threadID][]string{}

	log := trace.NewLog()
	for _, ev := range events {
		thread := threadID{ev.ProcessID, ev.ThreadID}
		switch ev.Phase {
		case DurationBegin:
			open[thread] = append(open[thread], ev.Name)
			log.Enter(ev.Name, toTime(ev.Timestamp))
		case DurationEnd:
			name, stack := closeBegin(open[thread], ev.Name)
			open[thread] = stack
			log.Exit(name, toTime(ev.Timestamp), 0)
		case Complete:
			start := toTime(ev.Timestamp)
			duration := trace.Time(math.Round(ev.Duration * scale))
			log.Enter(ev.Name, start)
			log.Exit(ev.Name, start+duration, duration)
		default:
			log.Skipped++
		}
	}

	return log, nil
}

// closeBegin removes the Begin closed by an End named name from stack.
// An End that matches nothing keeps its name and leaves stack unchanged.
func closeBegin(stack []string, name string) (string, []string) {
	for i := len(stack) - 1; i >= 0; i-- {
		if name != "" && stack[i] != name {
			continue
		}
		closed := stack[i]
		return closed, append(stack[:i:i], stack[i+1:]...)
	}
	return name, stack
}
