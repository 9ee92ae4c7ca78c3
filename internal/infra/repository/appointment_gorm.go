package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func notFound(err, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}

// --------------------------------------------------
// Directories
// --------------------------------------------------

func (r *GormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, notFound(err, domain.ErrServiceNotFound)
	}
	return &svc, nil
}

func (r *GormRepository) GetSpecialist(
	ctx context.Context,
	id uint,
) (*models.Specialist, error) {

	var sp models.Specialist
	if err := r.db.WithContext(ctx).
		Preload("Services").
		First(&sp, id).Error; err != nil {
		return nil, notFound(err, domain.ErrSpecialistNotFound)
	}
	return &sp, nil
}

func (r *GormRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepository) CreateService(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *GormRepository) UpdateService(ctx context.Context, s *models.Service) error {
	res := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"name":             s.Name,
			"duration_minutes": s.DurationMinutes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

func (r *GormRepository) ListSpecialists(ctx context.Context) ([]models.Specialist, error) {
	var out []models.Specialist
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepository) CreateSpecialist(
	ctx context.Context,
	sp *models.Specialist,
	serviceIDs []uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var services []models.Service
		if len(serviceIDs) > 0 {
			if err := tx.Where("id IN ?", serviceIDs).Find(&services).Error; err != nil {
				return err
			}
			if len(services) != len(uniq(serviceIDs)) {
				return domain.ErrServiceNotFound
			}
		}

		sp.Services = services
		return tx.Create(sp).Error
	})
}

// --------------------------------------------------
// Capability
// --------------------------------------------------

func (r *GormRepository) SupportsService(
	ctx context.Context,
	specialistID uint,
	serviceID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Table("specialist_services").
		Where("specialist_id = ? AND service_id = ?", specialistID, serviceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *GormRepository) FindActiveBySpecialistInWindow(
	ctx context.Context,
	specialistID uint,
	windowStart time.Time,
	windowEnd time.Time,
) ([]models.Appointment, error) {
	return activeOverlapping(r.db.WithContext(ctx), specialistID, windowStart, windowEnd)
}

func activeOverlapping(
	db *gorm.DB,
	specialistID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := db.
		Where(
			"specialist_id = ? AND canceled = ? AND start_at < ? AND end_at > ?",
			specialistID, false, end, start,
		).
		Order("start_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// InsertIfNoConflict serializes bookings of one specialist on the specialist
// row lock; the exclusion constraint backs it up.
func (r *GormRepository) InsertIfNoConflict(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sp models.Specialist
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&sp, ap.SpecialistID).Error; err != nil {
			return notFound(err, domain.ErrSpecialistNotFound)
		}

		active, err := activeOverlapping(tx, ap.SpecialistID, ap.StartAt, ap.EndAt)
		if err != nil {
			return err
		}

		candidate := domain.Interval{Start: ap.StartAt, End: ap.EndAt}
		if domain.HasConflict(candidate, domain.BusyIntervals(ap.SpecialistID, active)) {
			return domain.ErrSlotUnavailable
		}

		return tx.Omit(clause.Associations).Create(ap).Error
	})

	if err != nil && httperr.IsExclusionConflict(err) {
		return domain.ErrSlotUnavailable
	}
	return err
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *GormRepository) FindByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, notFound(err, domain.ErrAppointmentNotFound)
	}
	return &ap, nil
}

// MarkCanceled only touches active rows, so a concurrent second cancel keeps
// the first canceled_at and gets false.
func (r *GormRepository) MarkCanceled(
	ctx context.Context,
	id uint,
	at time.Time,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND canceled = ?", id, false).
		Updates(map[string]any{
			"canceled":    true,
			"canceled_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, domain.ErrAppointmentNotFound
	}
	return false, nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *GormRepository) ListForSpecialistInPeriod(
	ctx context.Context,
	specialistID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"specialist_id = ? AND start_at >= ? AND start_at < ?",
			specialistID, start, end,
		).
		Order("start_at ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *GormRepository) ListActiveStartingBetween(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Specialist").
		Preload("Service").
		Where("canceled = ? AND start_at BETWEEN ? AND ?", false, from, to).
		Order("start_at ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func uniq(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Compile-time check
var (
	_ domain.Repository = (*GormRepository)(nil)
	_ domain.Directory  = (*GormRepository)(nil)
)
