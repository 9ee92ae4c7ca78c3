package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CancelAppointment struct {
	repo   domain.Repository
	policy domain.CancelPolicy
	audit  *audit.Dispatcher
	now    func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	policy domain.CancelPolicy,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:   repo,
		policy: policy,
		audit:  audit,
		now:    time.Now,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	changed, err := domain.Cancel(ap, now, uc.policy)
	if err != nil {
		return nil, err
	}
	if !changed {
		return ap, nil
	}

	updated, err := uc.repo.MarkCanceled(ctx, ap.ID, now)
	if err != nil {
		return nil, fmt.Errorf("mark canceled: %w", err)
	}
	if !updated {
		// a concurrent cancel won; judge it as a re-cancel
		if err := domain.CanCancel(domain.StatusCanceled, uc.policy); err != nil {
			return nil, err
		}
		return uc.repo.FindByID(ctx, ap.ID)
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_canceled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
