package appointment

import "time"

// Slot is a bookable interval offered for a specialist.
type Slot struct {
	SpecialistID uint
	Interval
}

type AvailabilityInput struct {
	SpecialistID uint
	ServiceID    uint
	Date         time.Time
}

// ComputeSlots walks the slot grid of window and keeps every candidate of
// length duration that fits before closing and overlaps no busy interval.
// busy may be in any order.
func ComputeSlots(
	duration time.Duration,
	window Interval,
	step time.Duration,
	busy []Interval,
) []Interval {

	slots := []Interval{}
	if duration <= 0 || step <= 0 || !window.Start.Before(window.End) {
		return slots
	}

	for cursor := window.Start; cursor.Before(window.End); cursor = cursor.Add(step) {
		candidate := Interval{Start: cursor, End: cursor.Add(duration)}

		// no partial slots past closing time
		if candidate.End.After(window.End) {
			break
		}

		if !HasConflict(candidate, busy) {
			slots = append(slots, candidate)
		}
	}

	return slots
}

func SlotsFor(specialistID uint, intervals []Interval) []Slot {
	out := make([]Slot, 0, len(intervals))
	for _, iv := range intervals {
		out = append(out, Slot{SpecialistID: specialistID, Interval: iv})
	}
	return out
}
