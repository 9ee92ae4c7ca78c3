package appointment

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

type GetAvailability struct {
	repo  domain.Repository
	hours domain.HoursSource
}

func NewGetAvailability(
	repo domain.Repository,
	hours domain.HoursSource,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		hours: hours,
	}
}

// Execute lists the bookable slots of in.Date. in.Date carries the salon
// location; busy intervals are read fresh on every call.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.Slot, error) {

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetSpecialist(ctx, in.SpecialistID); err != nil {
		return nil, err
	}

	ok, err := uc.repo.SupportsService(ctx, in.SpecialistID, in.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("capability lookup: %w", err)
	}
	if !ok {
		return nil, domain.ErrCapability
	}

	hours := uc.hours.Current()
	window := hours.Window(in.Date)

	appointments, err := uc.repo.FindActiveBySpecialistInWindow(
		ctx,
		in.SpecialistID,
		window.Start,
		window.End,
	)
	if err != nil {
		return nil, fmt.Errorf("load busy intervals: %w", err)
	}

	intervals := domain.ComputeSlots(
		service.Duration(),
		window,
		hours.Step(),
		domain.BusyIntervals(in.SpecialistID, appointments),
	)

	return domain.SlotsFor(in.SpecialistID, intervals), nil
}
