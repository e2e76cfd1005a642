package trace

import (
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind distinguishes function entry from function exit.
type Kind uint8

const (
	Enter Kind = iota
	Exit
)

func (k Kind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// Record is a single decoded entry or exit of a function.
type Record struct {
	Time Time
	Kind Kind
	// Duration is the duration reported by an exit record, zero otherwise.
	Duration Time
}

// Event is a Record together with the function it belongs to.
type Event struct {
	Function string
	Time     Time
	Kind     Kind
}

// Log is the decoded trace: records grouped per function, functions kept in
// the order of their first appearance and records in the order they were decoded.
type Log struct {
	functions *orderedmap.OrderedMap[string, []Record]

	// Skipped counts the source lines or entries that could not be decoded.
	Skipped int
}

func NewLog() *Log {
	return &Log{
		functions: orderedmap.New[string, []Record](),
	}
}

// Add appends a record for function.
func (log *Log) Add(function string, rec Record) {
	records, _ := log.functions.Get(function)
	log.functions.Set(function, append(records, rec))
}

func (log *Log) Enter(function string, at Time) {
	log.Add(function, Record{Time: at, Kind: Enter})
}

func (log *Log) Exit(function string, at, duration Time) {
	log.Add(function, Record{Time: at, Kind: Exit, Duration: duration})
}

// Len returns the number of distinct functions.
func (log *Log) Len() int { return log.functions.Len() }

// Names returns function names in first-appearance order.
func (log *Log) Names() []string {
	names := make([]string, 0, log.functions.Len())
	for pair := log.functions.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Records returns the records of function in decode order.
func (log *Log) Records(function string) []Record {
	records, _ := log.functions.Get(function)
	return records
}

// Each calls fn for every function in first-appearance order.
func (log *Log) Each(fn func(function string, records []Record)) {
	for pair := log.functions.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// EventCount returns the total number of records.
func (log *Log) EventCount() int {
	n := 0
	log.Each(func(_ string, records []Record) { n += len(records) })
	return n
}

// Flatten merges all records into one chronological sequence.
//
// Events are sorted by time only. Events sharing a timestamp stay in
// flattening order: per function in decode order, functions in
// first-appearance order.
func (log *Log) Flatten() []Event {
	events := make([]Event, 0, log.EventCount())
	log.Each(func(function string, records []Record) {
		for _, rec := range records {
			events = append(events, Event{
				Function: function,
				Time:     rec.Time,
				Kind:     rec.Kind,
			})
		}
	})

	sort.SliceStable(events, func(i, k int) bool {
		return events[i].Time < events[k].Time
	})
	return events
}

// TimeRange returns the span covered by all records, InvalidRange when empty.
func (log *Log) TimeRange() TimeRange {
	r := InvalidRange
	log.Each(func(_ string, records []Record) {
		for _, rec := range records {
			r = r.Include(rec.Time)
		}
	})
	return r
}
