package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Repository is the appointment store plus the service/specialist lookups the
// scheduling core needs. Lookups return the package NotFound errors.
type Repository interface {
	// -------- Directories --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetSpecialist(
		ctx context.Context,
		id uint,
	) (*models.Specialist, error)

	// -------- Capability --------
	SupportsService(
		ctx context.Context,
		specialistID uint,
		serviceID uint,
	) (bool, error)

	// -------- Availability --------
	FindActiveBySpecialistInWindow(
		ctx context.Context,
		specialistID uint,
		windowStart time.Time,
		windowEnd time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (create / conflict) --------

	// InsertIfNoConflict checks ap against the specialist's active
	// appointments and inserts it as one atomic step. An overlap yields
	// ErrSlotUnavailable and writes nothing.
	InsertIfNoConflict(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	FindByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// MarkCanceled flips an active appointment to canceled and reports
	// whether this call did it. An already canceled row is left untouched.
	MarkCanceled(
		ctx context.Context,
		id uint,
		at time.Time,
	) (bool, error)

	// -------- Listing --------
	ListForSpecialistInPeriod(
		ctx context.Context,
		specialistID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListActiveStartingBetween(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)
}

// Directory manages services, specialists and their capability sets.
type Directory interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	UpdateService(ctx context.Context, s *models.Service) error

	ListSpecialists(ctx context.Context) ([]models.Specialist, error)
	CreateSpecialist(ctx context.Context, sp *models.Specialist, serviceIDs []uint) error
}
