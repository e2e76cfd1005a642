// Package loader picks the importer for a trace file.
package loader

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/errs/v2"

	"loov.dev/calltimeline/import/jaeger"
	"loov.dev/calltimeline/import/monkit"
	"loov.dev/calltimeline/import/tef"
	"loov.dev/calltimeline/import/tracer"
	"loov.dev/calltimeline/trace"
)

// ErrUnknownFormat is returned for JSON files that match no importer.
const ErrUnknownFormat = errs.Tag("unknown trace format")

type Format string

const (
	Tracer Format = "tracer"
	TEF    Format = "tef"
	Jaeger Format = "jaeger"
	Monkit Format = "monkit"
)

// Load reads the trace at path. Files ending in ".json" are inspected for a
// Trace Event, Jaeger or monkit export, everything else is decoded as a
// tracer text log. A ".json" file that is not a JSON object or array is
// decoded as a tracer text log too.
func Load(path string) (*trace.Log, Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", tracer.ErrSourceUnavailable.Wrap(err)
	}

	format := Tracer
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format, err = Detect(data)
		if err != nil {
			return nil, "", err
		}
	}

	log, err := Parse(format, bytes.NewReader(data))
	if err != nil {
		return nil, "", errs.Errorf("%q: %w", path, err)
	}
	return log, format, nil
}

// Detect guesses the format of a document: JSON arrays are monkit spans,
// JSON objects are told apart by their fields, anything else is a text log.
func Detect(data []byte) (Format, error) {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.HasPrefix(trimmed, []byte("[")):
		return Monkit, nil
	case !bytes.HasPrefix(trimmed, []byte("{")):
		return Tracer, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return "", ErrUnknownFormat.Wrap(err)
	}
	switch {
	case fields["traceEvents"] != nil:
		return TEF, nil
	case fields["data"] != nil:
		return Jaeger, nil
	}
	return "", ErrUnknownFormat.Errorf("expected traceEvents or data field")
}

// Parse decodes r with the importer for format.
func Parse(format Format, r io.Reader) (*trace.Log, error) {
	switch format {
	case Tracer:
		return tracer.Parse(r)
	case TEF:
		return tef.Parse(r)
	case Jaeger:
		return jaeger.Parse(r)
	case Monkit:
		return monkit.Parse(r)
	}
	return nil, ErrUnknownFormat.Errorf("%q", string(format))
}
