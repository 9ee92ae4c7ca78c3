package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// New builds an active appointment for service starting at start. end_at is
// fixed here and never recomputed from the service afterwards.
func New(specialistID uint, service *models.Service, start time.Time) *models.Appointment {
	return &models.Appointment{
		SpecialistID: specialistID,
		ServiceID:    service.ID,
		StartAt:      start,
		EndAt:        start.Add(service.Duration()),
		Canceled:     false,
	}
}

// Cancel moves ap to Canceled. It reports false when ap was already canceled
// and the policy tolerates it, in which case nothing changes.
func Cancel(ap *models.Appointment, now time.Time, policy CancelPolicy) (bool, error) {
	current := StatusOf(ap)
	if err := CanCancel(current, policy); err != nil {
		return false, err
	}
	if current == StatusCanceled {
		return false, nil
	}

	ap.Canceled = true
	ap.CanceledAt = &now
	return true, nil
}
