package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute returns every appointment of the day, canceled ones included.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	specialistID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	if _, err := uc.repo.GetSpecialist(ctx, specialistID); err != nil {
		return nil, err
	}

	start := timezone.StartOfDay(date)
	end := start.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListForSpecialistInPeriod(
		ctx,
		specialistID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return dto.ToAppointmentList(appointments), nil
}
