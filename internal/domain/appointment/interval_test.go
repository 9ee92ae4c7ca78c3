package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestOverlaps(t *testing.T) {
	base := Interval{Start: at(10, 0), End: at(11, 0)}

	cases := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", base, true},
		{"inside", Interval{Start: at(10, 15), End: at(10, 45)}, true},
		{"covers", Interval{Start: at(9, 0), End: at(12, 0)}, true},
		{"straddles start", Interval{Start: at(9, 30), End: at(10, 30)}, true},
		{"straddles end", Interval{Start: at(10, 59), End: at(11, 30)}, true},
		{"touches end", Interval{Start: at(11, 0), End: at(12, 0)}, false},
		{"touches start", Interval{Start: at(9, 0), End: at(10, 0)}, false},
		{"disjoint", Interval{Start: at(13, 0), End: at(14, 0)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(base, tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestNewInterval(t *testing.T) {
	iv, err := NewInterval(at(9, 0), 50*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, at(9, 50), iv.End)
	assert.Equal(t, 50*time.Minute, iv.Duration())

	_, err = NewInterval(at(9, 0), 0)
	assert.Error(t, err)
}

func TestHasConflictAndBusyIntervals(t *testing.T) {
	aps := []models.Appointment{
		{SpecialistID: 1, StartAt: at(9, 0), EndAt: at(9, 50)},
		{SpecialistID: 1, StartAt: at(11, 0), EndAt: at(12, 0), Canceled: true},
		{SpecialistID: 2, StartAt: at(13, 0), EndAt: at(14, 0)},
	}

	busy := BusyIntervals(1, aps)
	require.Len(t, busy, 1)

	assert.True(t, HasConflict(Interval{Start: at(9, 30), End: at(10, 0)}, busy))
	assert.False(t, HasConflict(Interval{Start: at(9, 50), End: at(10, 40)}, busy))
	assert.False(t, HasConflict(Interval{Start: at(11, 0), End: at(12, 0)}, busy), "canceled appointments do not block")
	assert.False(t, HasConflict(Interval{Start: at(13, 0), End: at(14, 0)}, busy), "other specialists do not block")
	assert.False(t, HasConflict(Interval{Start: at(9, 0), End: at(10, 0)}, nil))
}
