package appointment

import "github.com/BruksfildServices01/salon-scheduler/internal/models"

// HasConflict reports whether candidate overlaps any of the active intervals.
func HasConflict(candidate Interval, active []Interval) bool {
	for _, b := range active {
		if Overlaps(candidate, b) {
			return true
		}
	}
	return false
}

// BusyIntervals keeps the active appointments of specialistID.
func BusyIntervals(specialistID uint, aps []models.Appointment) []Interval {
	out := make([]Interval, 0, len(aps))
	for _, ap := range aps {
		if ap.SpecialistID != specialistID || !ap.Active() {
			continue
		}
		out = append(out, Interval{Start: ap.StartAt, End: ap.EndAt})
	}
	return out
}
