package appointment

import (
	"fmt"
	"time"
)

// Clock is a wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

func ParseClock(hm string) (Clock, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid time of day %q: %w", hm, err)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c Clock) minutes() int {
	return c.Hour*60 + c.Minute
}

// On places the clock on the calendar day of date, in date's location.
func (c Clock) On(date time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		c.Hour, c.Minute, 0, 0,
		date.Location(),
	)
}

// WorkingHours is the salon-wide daily window and slot grid.
type WorkingHours struct {
	Start           Clock
	End             Clock
	SlotStepMinutes int
}

func (w WorkingHours) Validate() error {
	if w.Start.minutes() >= w.End.minutes() {
		return fmt.Errorf("work start %s must be before work end %s", w.Start, w.End)
	}
	if w.SlotStepMinutes <= 0 {
		return fmt.Errorf("slot step must be positive, got %d", w.SlotStepMinutes)
	}
	return nil
}

func (w WorkingHours) Step() time.Duration {
	return time.Duration(w.SlotStepMinutes) * time.Minute
}

// Window returns [workStart, workEnd) on the day of date.
func (w WorkingHours) Window(date time.Time) Interval {
	return Interval{Start: w.Start.On(date), End: w.End.On(date)}
}

// Contains checks iv against the window of the day iv starts on.
func (w WorkingHours) Contains(iv Interval) bool {
	return iv.Within(w.Window(iv.Start))
}

// HoursSource hands out the working hours in force right now. Callers take a
// fresh value per operation so updates apply to the next request.
type HoursSource interface {
	Current() WorkingHours
}
