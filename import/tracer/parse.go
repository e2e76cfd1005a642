// Package tracer writes and decodes the call log:
//
//	Enter Account::deposit at 1200 ns
//	Exit Account::deposit at 5400 ns (duration: 4200 ns)
//
// Lines may be indented and may carry other text; anything that does not
// match either shape is skipped.
package tracer

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/zeebo/errs/v2"

	"loov.dev/calltimeline/trace"
)

// ErrSourceUnavailable is returned when the log cannot be opened or read.
const ErrSourceUnavailable = errs.Tag("source unavailable")

const maxLineSize = 16 << 20

var (
	enterLine = regexp.MustCompile(`Enter (.*?) at (\d+) ns`)
	exitLine  = regexp.MustCompile(`Exit (.*?) at (\d+) ns \(duration: (\d+) ns\)`)
)

// ReadFile decodes the log at path.
func ReadFile(path string) (*trace.Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrSourceUnavailable.Wrap(err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse decodes every line of r. Only read failures are reported as errors,
// lines longer than maxLineSize are skipped like any other malformed line.
func Parse(r io.Reader) (*trace.Log, error) {
	log := trace.NewLog()

	br := bufio.NewReaderSize(r, 64*1024)
	for {
		line, tooLong, err := readLine(br)
		if len(line) > 0 || tooLong {
			if tooLong || !ParseLine(log, trimEOL(line)) {
				log.Skipped++
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, ErrSourceUnavailable.Wrap(err)
		}
	}

	return log, nil
}

// readLine reads up to and including the next newline. The content of lines
// over maxLineSize is dropped and reported with tooLong.
func readLine(br *bufio.Reader) (line []byte, tooLong bool, err error) {
	for {
		chunk, readErr := br.ReadSlice('\n')
		switch {
		case tooLong:
		case len(line)+len(chunk) > maxLineSize:
			tooLong, line = true, nil
		default:
			line = append(line, chunk...)
		}
		if !errors.Is(readErr, bufio.ErrBufferFull) {
			return line, tooLong, readErr
		}
	}
}

func trimEOL(line []byte) string {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	return string(line)
}

// ParseLine adds the records found in line to log and reports whether
// the line matched any shape. Both shapes are tried independently.
func ParseLine(log *trace.Log, line string) bool {
	matched := false

	if m := enterLine.FindStringSubmatch(line); m != nil {
		if at, ok := parseNanos(m[2]); ok {
			log.Enter(m[1], at)
			matched = true
		}
	}

	if m := exitLine.FindStringSubmatch(line); m != nil {
		at, okAt := parseNanos(m[2])
		duration, okDuration := parseNanos(m[3])
		if okAt && okDuration {
			log.Exit(m[1], at, duration)
			matched = true
		}
	}

	return matched
}

func parseNanos(digits string) (trace.Time, bool) {
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return trace.Time(v), true
}
