package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// pgDB is nil unless TEST_DATABASE_URL points at a reachable Postgres.
var pgDB *gorm.DB

func TestMain(m *testing.M) {
	if url := os.Getenv("TEST_DATABASE_URL"); url != "" {
		db, err := gorm.Open(postgres.Open(url), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "connect test database: %v\n", err)
			os.Exit(1)
		}
		if err := dbpkg.Migrate(db); err != nil {
			fmt.Fprintf(os.Stderr, "migrate test database: %v\n", err)
			os.Exit(1)
		}
		pgDB = db
	}

	code := m.Run()

	if pgDB != nil {
		if sqlDB, err := pgDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	os.Exit(code)
}

func gormSeeded(t *testing.T) (*GormRepository, *models.Service, *models.Specialist) {
	t.Helper()
	if pgDB == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}

	require.NoError(t, pgDB.Exec(
		`TRUNCATE appointments, specialist_services, specialists, services, audit_logs RESTART IDENTITY CASCADE`,
	).Error)

	repo := NewGormRepository(pgDB)
	ctx := context.Background()

	svc := &models.Service{Name: "Haircut", DurationMinutes: 50}
	require.NoError(t, repo.CreateService(ctx, svc))

	sp := &models.Specialist{Name: "Alice"}
	require.NoError(t, repo.CreateSpecialist(ctx, sp, []uint{svc.ID}))

	return repo, svc, sp
}

func TestGormRepository_ConcurrentSameSlotSingleWinner(t *testing.T) {
	repo, svc, sp := gormSeeded(t)
	ctx := context.Background()

	const callers = 8
	var (
		wins  int32
		taken int32
		wg    sync.WaitGroup
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.InsertIfNoConflict(ctx, domain.New(sp.ID, svc, at(14, 0)))
			switch {
			case err == nil:
				atomic.AddInt32(&wins, 1)
			case assert.ErrorIs(t, err, domain.ErrSlotUnavailable):
				atomic.AddInt32(&taken, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
	assert.Equal(t, int32(callers-1), taken)

	active, err := repo.FindActiveBySpecialistInWindow(ctx, sp.ID, at(9, 0), at(18, 0))
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestGormRepository_CancelThenRebook(t *testing.T) {
	repo, svc, sp := gormSeeded(t)
	ctx := context.Background()

	ap := domain.New(sp.ID, svc, at(11, 0))
	require.NoError(t, repo.InsertIfNoConflict(ctx, ap))
	require.ErrorIs(t,
		repo.InsertIfNoConflict(ctx, domain.New(sp.ID, svc, at(11, 30))),
		domain.ErrSlotUnavailable,
	)

	canceledAt := at(8, 0)
	changed, err := repo.MarkCanceled(ctx, ap.ID, canceledAt)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.MarkCanceled(ctx, ap.ID, at(9, 0))
	require.NoError(t, err)
	assert.False(t, changed)

	got, err := repo.FindByID(ctx, ap.ID)
	require.NoError(t, err)
	assert.True(t, got.Canceled)
	require.NotNil(t, got.CanceledAt)
	assert.True(t, got.CanceledAt.Equal(canceledAt))

	assert.NoError(t, repo.InsertIfNoConflict(ctx, domain.New(sp.ID, svc, at(11, 0))))

	_, err = repo.MarkCanceled(ctx, 999, at(9, 0))
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}

func TestGormRepository_ExclusionConstraintRejectsDirectOverlap(t *testing.T) {
	repo, svc, sp := gormSeeded(t)
	ctx := context.Background()

	require.NoError(t, repo.InsertIfNoConflict(ctx, domain.New(sp.ID, svc, at(10, 0))))

	overlapping := domain.New(sp.ID, svc, at(10, 30))
	err := pgDB.Omit("Specialist", "Service").Create(overlapping).Error
	require.Error(t, err)
	assert.True(t, httperr.IsExclusionConflict(err))

	canceled := domain.New(sp.ID, svc, at(10, 30))
	canceled.Canceled = true
	assert.NoError(t, pgDB.Omit("Specialist", "Service").Create(canceled).Error)

	adjacent := domain.New(sp.ID, svc, at(10, 50))
	assert.NoError(t, repo.InsertIfNoConflict(ctx, adjacent))
}

func TestGormRepository_InsertUnknownSpecialist(t *testing.T) {
	repo, svc, _ := gormSeeded(t)

	err := repo.InsertIfNoConflict(context.Background(), domain.New(999, svc, at(10, 0)))
	assert.ErrorIs(t, err, domain.ErrSpecialistNotFound)
}

func TestGormRepository_DirectoryAndCapability(t *testing.T) {
	repo, svc, sp := gormSeeded(t)
	ctx := context.Background()

	other := &models.Service{Name: "Manicure", DurationMinutes: 25}
	require.NoError(t, repo.CreateService(ctx, other))

	ok, err := repo.SupportsService(ctx, sp.ID, svc.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.SupportsService(ctx, sp.ID, other.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetSpecialist(ctx, sp.ID)
	require.NoError(t, err)
	require.Len(t, got.Services, 1)
	assert.Equal(t, svc.ID, got.Services[0].ID)

	err = repo.CreateSpecialist(ctx, &models.Specialist{Name: "Bob"}, []uint{svc.ID, 999})
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)

	_, err = repo.GetService(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)
}

func TestGormRepository_Listings(t *testing.T) {
	repo, svc, sp := gormSeeded(t)
	ctx := context.Background()

	late := domain.New(sp.ID, svc, at(15, 0))
	early := domain.New(sp.ID, svc, at(9, 0))
	require.NoError(t, repo.InsertIfNoConflict(ctx, late))
	require.NoError(t, repo.InsertIfNoConflict(ctx, early))
	_, err := repo.MarkCanceled(ctx, late.ID, at(8, 0))
	require.NoError(t, err)

	day, err := repo.ListForSpecialistInPeriod(ctx, sp.ID, at(0, 0), at(0, 0).Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, early.ID, day[0].ID)
	require.NotNil(t, day[0].Service)
	assert.Equal(t, "Haircut", day[0].Service.Name)

	upcoming, err := repo.ListActiveStartingBetween(ctx, at(8, 0), at(16, 0))
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, early.ID, upcoming[0].ID)
	require.NotNil(t, upcoming[0].Specialist)
	assert.Equal(t, "Alice", upcoming[0].Specialist.Name)
}
