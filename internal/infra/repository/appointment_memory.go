package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// MemoryRepository keeps everything in process. One mutex makes
// InsertIfNoConflict atomic.
type MemoryRepository struct {
	mu sync.RWMutex

	services     map[uint]models.Service
	specialists  map[uint]models.Specialist
	capabilities map[uint]map[uint]struct{}
	appointments map[uint]models.Appointment

	nextServiceID     uint
	nextSpecialistID  uint
	nextAppointmentID uint

	now func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		services:     make(map[uint]models.Service),
		specialists:  make(map[uint]models.Specialist),
		capabilities: make(map[uint]map[uint]struct{}),
		appointments: make(map[uint]models.Appointment),
		now:          time.Now,
	}
}

// --------------------------------------------------
// Directories
// --------------------------------------------------

func (r *MemoryRepository) GetService(_ context.Context, id uint) (*models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.services[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	return &svc, nil
}

func (r *MemoryRepository) GetSpecialist(_ context.Context, id uint) (*models.Specialist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sp, ok := r.specialists[id]
	if !ok {
		return nil, domain.ErrSpecialistNotFound
	}
	sp.Services = r.servicesOf(id)
	return &sp, nil
}

func (r *MemoryRepository) servicesOf(specialistID uint) []models.Service {
	out := []models.Service{}
	for sid := range r.capabilities[specialistID] {
		if svc, ok := r.services[sid]; ok {
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *MemoryRepository) ListServices(_ context.Context) ([]models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Service, 0, len(r.services))
	for _, svc := range r.services {
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) CreateService(_ context.Context, s *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextServiceID++
	now := r.now()
	s.ID = r.nextServiceID
	s.CreatedAt, s.UpdatedAt = now, now
	r.services[s.ID] = *s
	return nil
}

func (r *MemoryRepository) UpdateService(_ context.Context, s *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.services[s.ID]
	if !ok {
		return domain.ErrServiceNotFound
	}
	cur.Name = s.Name
	cur.DurationMinutes = s.DurationMinutes
	cur.UpdatedAt = r.now()
	r.services[s.ID] = cur
	*s = cur
	return nil
}

func (r *MemoryRepository) ListSpecialists(_ context.Context) ([]models.Specialist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Specialist, 0, len(r.specialists))
	for id, sp := range r.specialists {
		sp.Services = r.servicesOf(id)
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) CreateSpecialist(_ context.Context, sp *models.Specialist, serviceIDs []uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	caps := make(map[uint]struct{}, len(serviceIDs))
	for _, sid := range serviceIDs {
		if _, ok := r.services[sid]; !ok {
			return domain.ErrServiceNotFound
		}
		caps[sid] = struct{}{}
	}

	r.nextSpecialistID++
	now := r.now()
	sp.ID = r.nextSpecialistID
	sp.CreatedAt, sp.UpdatedAt = now, now

	stored := *sp
	stored.Services = nil
	r.specialists[sp.ID] = stored
	r.capabilities[sp.ID] = caps
	sp.Services = r.servicesOf(sp.ID)
	return nil
}

// --------------------------------------------------
// Capability
// --------------------------------------------------

func (r *MemoryRepository) SupportsService(_ context.Context, specialistID, serviceID uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.capabilities[specialistID][serviceID]
	return ok, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *MemoryRepository) FindActiveBySpecialistInWindow(
	_ context.Context,
	specialistID uint,
	windowStart time.Time,
	windowEnd time.Time,
) ([]models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activeOverlapping(specialistID, domain.Interval{Start: windowStart, End: windowEnd}), nil
}

func (r *MemoryRepository) activeOverlapping(specialistID uint, window domain.Interval) []models.Appointment {
	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.SpecialistID != specialistID || !ap.Active() {
			continue
		}
		if domain.Overlaps(window, domain.Interval{Start: ap.StartAt, End: ap.EndAt}) {
			out = append(out, ap)
		}
	}
	sortByStart(out)
	return out
}

func (r *MemoryRepository) InsertIfNoConflict(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.specialists[ap.SpecialistID]; !ok {
		return domain.ErrSpecialistNotFound
	}

	candidate := domain.Interval{Start: ap.StartAt, End: ap.EndAt}
	active := r.activeOverlapping(ap.SpecialistID, candidate)
	if domain.HasConflict(candidate, domain.BusyIntervals(ap.SpecialistID, active)) {
		return domain.ErrSlotUnavailable
	}

	r.nextAppointmentID++
	now := r.now()
	ap.ID = r.nextAppointmentID
	ap.CreatedAt, ap.UpdatedAt = now, now
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	return &ap, nil
}

func (r *MemoryRepository) MarkCanceled(_ context.Context, id uint, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[id]
	if !ok {
		return false, domain.ErrAppointmentNotFound
	}
	if ap.Canceled {
		return false, nil
	}
	ap.Canceled = true
	ap.CanceledAt = &at
	ap.UpdatedAt = r.now()
	r.appointments[id] = ap
	return true, nil
}

func (r *MemoryRepository) ListForSpecialistInPeriod(
	_ context.Context,
	specialistID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.SpecialistID != specialistID {
			continue
		}
		if ap.StartAt.Before(start) || !ap.StartAt.Before(end) {
			continue
		}
		if svc, ok := r.services[ap.ServiceID]; ok {
			ap.Service = &svc
		}
		out = append(out, ap)
	}
	sortByStart(out)
	return out, nil
}

func (r *MemoryRepository) ListActiveStartingBetween(
	_ context.Context,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if !ap.Active() || ap.StartAt.Before(from) || ap.StartAt.After(to) {
			continue
		}
		if sp, ok := r.specialists[ap.SpecialistID]; ok {
			ap.Specialist = &sp
		}
		if svc, ok := r.services[ap.ServiceID]; ok {
			ap.Service = &svc
		}
		out = append(out, ap)
	}
	sortByStart(out)
	return out, nil
}

func sortByStart(aps []models.Appointment) {
	sort.Slice(aps, func(i, j int) bool {
		if aps[i].StartAt.Equal(aps[j].StartAt) {
			return aps[i].ID < aps[j].ID
		}
		return aps[i].StartAt.Before(aps[j].StartAt)
	})
}

var (
	_ domain.Repository = (*MemoryRepository)(nil)
	_ domain.Directory  = (*MemoryRepository)(nil)
)
