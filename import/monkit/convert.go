package monkit

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/zeebo/errs/v2"

	"loov.dev/calltimeline/trace"
)

// ErrMalformedFile is returned for input that is not a monkit span dump.
const ErrMalformedFile = errs.Tag("malformed monkit file")

// Parse decodes a span dump from r and converts it.
func Parse(r io.Reader) (*trace.Log, error) {
	var file File
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, ErrMalformedFile.Wrap(err)
	}
	return Convert(file)
}

// Convert turns every span into an enter at its start and an exit at its
// finish. Times are shifted so that the earliest span starts at zero.
func Convert(files ...File) (*trace.Log, error) {
	var spans []*Span
	for i := range files {
		file := files[i]
		for k := range file {
			span := &file[k]
			if span.Finish < span.Start {
				return nil, ErrMalformedFile.Errorf("span %d finishes before it starts", span.ID)
			}
			spans = append(spans, span)
		}
	}

	sort.SliceStable(spans, func(i, k int) bool {
		return spans[i].Start < spans[k].Start
	})

	log := trace.NewLog()
	if len(spans) == 0 {
		return log, nil
	}

	origin := spans[0].Start.Time()
	for _, span := range spans {
		start := span.Start.Time() - origin
		finish := span.Finish.Time() - origin
		caption := span.Func.Caption()
		log.Enter(caption, start)
		log.Exit(caption, finish, finish-start)
	}
	return log, nil
}
