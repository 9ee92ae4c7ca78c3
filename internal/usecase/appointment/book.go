package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/locker"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	SpecialistID uint
	ServiceID    uint

	// Date is midnight of the requested day in the salon location.
	Date      time.Time
	StartTime domain.Clock
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo   domain.Repository
	hours  domain.HoursSource
	locker locker.Locker
	audit  *audit.Dispatcher
}

func NewBookAppointment(
	repo domain.Repository,
	hours domain.HoursSource,
	lk locker.Locker,
	audit *audit.Dispatcher,
) *BookAppointment {
	return &BookAppointment{
		repo:   repo,
		hours:  hours,
		locker: lk,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Directories
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetSpecialist(ctx, in.SpecialistID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Capability
	// --------------------------------------------------
	ok, err := uc.repo.SupportsService(ctx, in.SpecialistID, in.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("capability lookup: %w", err)
	}
	if !ok {
		return nil, domain.ErrCapability
	}

	// --------------------------------------------------
	// Working hours
	// --------------------------------------------------
	ap := domain.New(in.SpecialistID, service, in.StartTime.On(in.Date))

	hours := uc.hours.Current()
	if !hours.Contains(domain.Interval{Start: ap.StartAt, End: ap.EndAt}) {
		return nil, domain.ErrOutsideWorkingHours
	}

	// --------------------------------------------------
	// Conflict + insert, serialized per specialist
	// --------------------------------------------------
	release, err := uc.locker.Acquire(ctx, locker.SpecialistKey(in.SpecialistID))
	if err != nil {
		return nil, err
	}
	defer release()

	if err := uc.repo.InsertIfNoConflict(ctx, ap); err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) {
			uc.audit.Dispatch(audit.Event{
				Action:   "appointment_conflict",
				Entity:   "specialist",
				EntityID: &in.SpecialistID,
				Metadata: map[string]any{
					"service_id": in.ServiceID,
					"start_at":   ap.StartAt,
				},
			})
			return nil, err
		}
		return nil, fmt.Errorf("insert appointment: %w", err)
	}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"specialist_id": ap.SpecialistID,
			"service_id":    ap.ServiceID,
			"start_at":      ap.StartAt,
			"end_at":        ap.EndAt,
		},
	})

	return ap, nil
}
