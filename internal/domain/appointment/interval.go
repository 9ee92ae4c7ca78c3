package appointment

import (
	"errors"
	"time"
)

var errEmptyInterval = errors.New("interval end must be after start")

// Interval is the half-open span [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start time.Time, d time.Duration) (Interval, error) {
	if d <= 0 {
		return Interval{}, errEmptyInterval
	}
	return Interval{Start: start, End: start.Add(d)}, nil
}

// Overlaps uses half-open semantics: intervals that only touch do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

func (i Interval) Overlaps(o Interval) bool {
	return Overlaps(i, o)
}

// Within reports whether i lies entirely inside outer.
func (i Interval) Within(outer Interval) bool {
	return !i.Start.Before(outer.Start) && !i.End.After(outer.End)
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}
