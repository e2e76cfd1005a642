package trace

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLogFlatten(t *testing.T) {
	for _, test := range []struct {
		description string
		build       func(log *Log)
		want        []Event
	}{{
		description: "empty",
		build:       func(log *Log) {},
		want:        []Event{},
	}, {
		description: "sorted by time across functions",
		build: func(log *Log) {
			log.Enter("main", 0)
			log.Exit("main", 30, 30)
			log.Enter("work", 10)
			log.Exit("work", 20, 10)
		},
		want: []Event{
			{Function: "main", Time: 0, Kind: Enter},
			{Function: "work", Time: 10, Kind: Enter},
			{Function: "work", Time: 20, Kind: Exit},
			{Function: "main", Time: 30, Kind: Exit},
		},
	}, {
		description: "ties keep function order then decode order",
		build: func(log *Log) {
			log.Exit("b", 5, 0)
			log.Enter("a", 5)
			log.Exit("a", 5, 0)
			log.Enter("b", 1)
		},
		want: []Event{
			{Function: "b", Time: 1, Kind: Enter},
			{Function: "b", Time: 5, Kind: Exit},
			{Function: "a", Time: 5, Kind: Enter},
			{Function: "a", Time: 5, Kind: Exit},
		},
	}} {
		t.Run(test.description, func(t *testing.T) {
			log := NewLog()
			test.build(log)
			if diff := cmp.Diff(test.want, log.Flatten()); diff != "" {
				t.Errorf("Flatten() = diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLogNamesAndRecords(t *testing.T) {
	log := NewLog()
	log.Enter("outer", 1)
	log.Enter("inner", 2)
	log.Exit("inner", 3, 1)
	log.Exit("outer", 4, 3)

	if diff := cmp.Diff([]string{"outer", "inner"}, log.Names()); diff != "" {
		t.Errorf("Names() = diff (-want +got):\n%s", diff)
	}
	wantInner := []Record{
		{Time: 2, Kind: Enter},
		{Time: 3, Kind: Exit, Duration: 1},
	}
	if diff := cmp.Diff(wantInner, log.Records("inner")); diff != "" {
		t.Errorf("Records(inner) = diff (-want +got):\n%s", diff)
	}
	if got := log.EventCount(); got != 4 {
		t.Errorf("EventCount() = %d, want 4", got)
	}
	if got, want := log.TimeRange(), (TimeRange{Start: 1, Finish: 4}); got != want {
		t.Errorf("TimeRange() = %v, want %v", got, want)
	}
}

func TestEmptyLogTimeRange(t *testing.T) {
	if NewLog().TimeRange().IsValid() {
		t.Errorf("empty log has a valid time range")
	}
}
