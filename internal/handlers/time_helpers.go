package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// parseDate reads YYYY-MM-DD as midnight in the salon location.
func parseDate(dateStr string, loc *time.Location) (time.Time, error) {
	return timezone.ParseDate(dateStr, loc)
}

// isBeforeToday compares calendar days in loc, so any time today passes.
func isBeforeToday(date time.Time, loc *time.Location) bool {
	today := timezone.StartOfDay(time.Now().In(loc))
	return timezone.StartOfDay(date.In(loc)).Before(today)
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
