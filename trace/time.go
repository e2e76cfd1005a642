package trace

import (
	"math"
	"strconv"
	"time"
)

// Time in nanoseconds since the start of the traced run.
type Time int64

func NewTime(t time.Duration) Time { return Time(t.Nanoseconds()) }

func (t Time) String() string { return strconv.FormatInt(int64(t), 10) + "ns" }

func (t Time) Min(b Time) Time {
	if t < b {
		return t
	}
	return b
}

func (t Time) Max(b Time) Time {
	if t > b {
		return t
	}
	return b
}

type TimeRange struct {
	Start  Time
	Finish Time
}

var InvalidRange = TimeRange{
	Start:  math.MaxInt64,
	Finish: math.MinInt64,
}

func (a TimeRange) IsValid() bool { return a.Start <= a.Finish }

func (a TimeRange) Include(t Time) TimeRange {
	return TimeRange{
		Start:  a.Start.Min(t),
		Finish: a.Finish.Max(t),
	}
}
