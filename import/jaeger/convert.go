package jaeger

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/zeebo/errs/v2"

	"loov.dev/calltimeline/trace"
)

// ErrMalformedFile is returned for input that is not a Jaeger export.
const ErrMalformedFile = errs.Tag("malformed jaeger file")

// Parse decodes a Jaeger export from r and converts it.
func Parse(r io.Reader) (*trace.Log, error) {
	var file File
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, ErrMalformedFile.Wrap(err)
	}
	return Convert(file.Data...)
}

// Convert turns every span into an enter at its start and an exit at its end.
// Times are shifted so that the earliest span starts at zero.
func Convert(traces ...Trace) (*trace.Log, error) {
	var spans []*Span
	for i := range traces {
		tr := &traces[i]
		for k := range tr.Spans {
			span := &tr.Spans[k]
			if span.StartTime < 0 || span.Duration < 0 {
				return nil, ErrMalformedFile.Errorf("span %q has a negative time", span.SpanID)
			}
			spans = append(spans, span)
		}
	}

	sort.SliceStable(spans, func(i, k int) bool {
		return spans[i].StartTime < spans[k].StartTime
	})

	log := trace.NewLog()
	if len(spans) == 0 {
		return log, nil
	}

	origin := spans[0].StartTime
	for _, span := range spans {
		start := trace.NewTime((span.StartTime - origin).Std())
		duration := trace.NewTime(span.Duration.Std())
		log.Enter(span.OperationName, start)
		log.Exit(span.OperationName, start+duration, duration)
	}
	return log, nil
}
