package tracer

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"loov.dev/calltimeline/trace"
)

// Tracer writes enter and exit lines for traced calls. Times are measured
// from the creation of the Tracer, lines are indented by call depth.
//
//	defer tr.Trace("Account::deposit")()
type Tracer struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	start  time.Time
	now    func() time.Time
	depth  int
	err    error
}

const indentWidth = 2

func New(w io.Writer) *Tracer {
	return &Tracer{
		w:     w,
		start: time.Now(),
		now:   time.Now,
	}
}

// Create writes the log to a new file at path.
func Create(path string) (*Tracer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, ErrSourceUnavailable.Wrap(err)
	}
	tr := New(f)
	tr.closer = f
	return tr, nil
}

// Trace records entering function and returns the func that records the exit.
func (tr *Tracer) Trace(function string) func() {
	tr.mu.Lock()
	entered := tr.now()
	tr.writeLine(tr.depth, "Enter "+function+" at "+tr.since(entered)+" ns")
	tr.depth++
	tr.mu.Unlock()

	return func() {
		tr.mu.Lock()
		defer tr.mu.Unlock()

		exited := tr.now()
		if tr.depth > 0 {
			tr.depth--
		}
		duration := trace.NewTime(exited.Sub(entered))
		tr.writeLine(tr.depth, "Exit "+function+" at "+tr.since(exited)+" ns (duration: "+
			strconv.FormatInt(int64(duration), 10)+" ns)")
	}
}

func (tr *Tracer) since(t time.Time) string {
	return strconv.FormatInt(int64(trace.NewTime(t.Sub(tr.start))), 10)
}

func (tr *Tracer) writeLine(depth int, line string) {
	if tr.err != nil {
		return
	}
	_, tr.err = io.WriteString(tr.w, strings.Repeat(" ", depth*indentWidth)+line+"\n")
}

// Err returns the first write error.
func (tr *Tracer) Err() error {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.err
}

// Close closes the file opened by Create and returns the first write error.
func (tr *Tracer) Close() error {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if tr.closer != nil {
		if err := tr.closer.Close(); tr.err == nil {
			tr.err = err
		}
		tr.closer = nil
	}
	return tr.err
}
