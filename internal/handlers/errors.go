package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/locker"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

// respondError renders domain errors with their own status; anything else is
// an infrastructure failure.
func respondError(c *gin.Context, log *zap.Logger, op string, err error) {
	if httperr.Business(c, err) {
		return
	}

	if errors.Is(err, locker.ErrLockTimeout) {
		httperr.Unavailable(c, "lock_timeout", "Specialist calendar is busy, try again.")
		return
	}

	log.Error(op+" failed",
		zap.String("request_id", middleware.RequestID(c)),
		zap.Error(err),
	)
	httperr.Internal(c, "internal_error", "Internal server error.")
}
