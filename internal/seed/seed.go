// Package seed loads a demo catalogue and a day of appointments.
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	usecase "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

const (
	appointmentsPerSpecialist = 3
	maxPlacementAttempts      = 20
)

var catalogue = []models.Service{
	{Name: "Haircut", DurationMinutes: 50},
	{Name: "Hairstyling", DurationMinutes: 70},
	{Name: "Manicure", DurationMinutes: 25},
}

var roster = []struct {
	name     string
	services []string
}{
	{"Specialist A", []string{"Haircut", "Hairstyling"}},
	{"Specialist B", []string{"Haircut", "Manicure"}},
	{"Specialist C", []string{"Hairstyling", "Manicure"}},
}

type Result struct {
	Services     int
	Specialists  int
	Appointments int
}

type Seeder struct {
	dir   domain.Directory
	book  *usecase.BookAppointment
	hours domain.HoursSource
	rnd   *rand.Rand
	log   *zap.Logger
}

func New(
	dir domain.Directory,
	book *usecase.BookAppointment,
	hours domain.HoursSource,
	log *zap.Logger,
) *Seeder {
	return &Seeder{
		dir:   dir,
		book:  book,
		hours: hours,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		log:   log,
	}
}

// Run reuses services and specialists that already exist by name, then books
// up to three appointments per seeded specialist on date.
func (s *Seeder) Run(ctx context.Context, date time.Time) (Result, error) {
	var res Result

	services, err := s.ensureServices(ctx)
	if err != nil {
		return res, err
	}
	res.Services = len(services)

	specialists, err := s.ensureSpecialists(ctx, services)
	if err != nil {
		return res, err
	}
	res.Specialists = len(specialists)

	for i, sp := range specialists {
		var offered []models.Service
		for _, name := range roster[i].services {
			offered = append(offered, services[name])
		}

		n, err := s.placeAppointments(ctx, sp, offered, date)
		if err != nil {
			return res, err
		}
		res.Appointments += n
	}

	s.log.Info("seed done",
		zap.Int("services", res.Services),
		zap.Int("specialists", res.Specialists),
		zap.Int("appointments", res.Appointments),
	)
	return res, nil
}

func (s *Seeder) ensureServices(ctx context.Context) (map[string]models.Service, error) {
	existing, err := s.dir.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	byName := make(map[string]models.Service, len(catalogue))
	for _, svc := range existing {
		byName[svc.Name] = svc
	}

	for _, want := range catalogue {
		if _, ok := byName[want.Name]; ok {
			continue
		}
		svc := want
		if err := s.dir.CreateService(ctx, &svc); err != nil {
			return nil, fmt.Errorf("create service %s: %w", want.Name, err)
		}
		byName[svc.Name] = svc
	}
	return byName, nil
}

func (s *Seeder) ensureSpecialists(
	ctx context.Context,
	services map[string]models.Service,
) ([]models.Specialist, error) {

	existing, err := s.dir.ListSpecialists(ctx)
	if err != nil {
		return nil, fmt.Errorf("list specialists: %w", err)
	}

	byName := make(map[string]models.Specialist, len(existing))
	for _, sp := range existing {
		byName[sp.Name] = sp
	}

	out := make([]models.Specialist, 0, len(roster))
	for _, entry := range roster {
		if sp, ok := byName[entry.name]; ok {
			out = append(out, sp)
			continue
		}

		ids := make([]uint, 0, len(entry.services))
		for _, name := range entry.services {
			ids = append(ids, services[name].ID)
		}

		sp := models.Specialist{Name: entry.name}
		if err := s.dir.CreateSpecialist(ctx, &sp, ids); err != nil {
			return nil, fmt.Errorf("create specialist %s: %w", entry.name, err)
		}
		out = append(out, sp)
	}
	return out, nil
}

func (s *Seeder) placeAppointments(
	ctx context.Context,
	sp models.Specialist,
	offered []models.Service,
	date time.Time,
) (int, error) {

	hours := s.hours.Current()
	window := hours.Window(date)
	gridSize := int(window.Duration() / hours.Step())
	if gridSize <= 0 {
		return 0, nil
	}

	placed := 0
	for i := 0; i < appointmentsPerSpecialist; i++ {
		svc := offered[s.rnd.Intn(len(offered))]

		for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
			start := window.Start.Add(time.Duration(s.rnd.Intn(gridSize)) * hours.Step())

			_, err := s.book.Execute(ctx, usecase.BookAppointmentInput{
				SpecialistID: sp.ID,
				ServiceID:    svc.ID,
				Date:         date,
				StartTime:    domain.Clock{Hour: start.Hour(), Minute: start.Minute()},
			})
			if err == nil {
				placed++
				break
			}
			if errors.Is(err, domain.ErrSlotUnavailable) || errors.Is(err, domain.ErrOutsideWorkingHours) {
				continue
			}
			return placed, err
		}
	}
	return placed, nil
}
