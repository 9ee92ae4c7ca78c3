package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func seeded(t *testing.T) (*MemoryRepository, *models.Service, *models.Specialist) {
	t.Helper()

	ctx := context.Background()
	repo := NewMemoryRepository()

	svc := &models.Service{Name: "Haircut", DurationMinutes: 50}
	require.NoError(t, repo.CreateService(ctx, svc))

	sp := &models.Specialist{Name: "Alice"}
	require.NoError(t, repo.CreateSpecialist(ctx, sp, []uint{svc.ID}))

	return repo, svc, sp
}

func at(h, m int) time.Time {
	return time.Date(2030, 3, 14, h, m, 0, 0, time.UTC)
}

func TestMemoryRepository_Capability(t *testing.T) {
	repo, svc, sp := seeded(t)
	ctx := context.Background()

	ok, err := repo.SupportsService(ctx, sp.ID, svc.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.SupportsService(ctx, sp.ID, svc.ID+1)
	require.NoError(t, err)
	assert.False(t, ok)

	err = repo.CreateSpecialist(ctx, &models.Specialist{Name: "Bob"}, []uint{99})
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)
}

func TestMemoryRepository_InsertIfNoConflict(t *testing.T) {
	repo, svc, sp := seeded(t)
	ctx := context.Background()

	first := domain.New(sp.ID, svc, at(10, 0))
	require.NoError(t, repo.InsertIfNoConflict(ctx, first))
	assert.NotZero(t, first.ID)

	overlapping := domain.New(sp.ID, svc, at(10, 30))
	assert.ErrorIs(t, repo.InsertIfNoConflict(ctx, overlapping), domain.ErrSlotUnavailable)

	// touching intervals do not overlap
	adjacent := domain.New(sp.ID, svc, at(10, 50))
	assert.NoError(t, repo.InsertIfNoConflict(ctx, adjacent))

	unknown := domain.New(sp.ID+10, svc, at(12, 0))
	assert.ErrorIs(t, repo.InsertIfNoConflict(ctx, unknown), domain.ErrSpecialistNotFound)
}

func TestMemoryRepository_CanceledFreesInterval(t *testing.T) {
	repo, svc, sp := seeded(t)
	ctx := context.Background()

	ap := domain.New(sp.ID, svc, at(11, 0))
	require.NoError(t, repo.InsertIfNoConflict(ctx, ap))

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

	active, err := repo.FindActiveBySpecialistInWindow(ctx, sp.ID, at(9, 0), at(18, 0))
	require.NoError(t, err)
	assert.Empty(t, active)

	assert.NoError(t, repo.InsertIfNoConflict(ctx, domain.New(sp.ID, svc, at(11, 0))))
	_, err = repo.MarkCanceled(ctx, 999, at(9, 0))
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}

func TestMemoryRepository_ConcurrentInsertsOneWins(t *testing.T) {
	repo, svc, sp := seeded(t)
	ctx := context.Background()

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.InsertIfNoConflict(ctx, domain.New(sp.ID, svc, at(14, 0))); err == nil {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
}

func TestMemoryRepository_Listings(t *testing.T) {
	repo, svc, sp := seeded(t)
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

func TestMemoryRepository_UpdateServiceKeepsBookedEnd(t *testing.T) {
	repo, svc, sp := seeded(t)
	ctx := context.Background()

	ap := domain.New(sp.ID, svc, at(10, 0))
	require.NoError(t, repo.InsertIfNoConflict(ctx, ap))

	require.NoError(t, repo.UpdateService(ctx, &models.Service{ID: svc.ID, Name: "Haircut", DurationMinutes: 90}))

	got, err := repo.FindByID(ctx, ap.ID)
	require.NoError(t, err)
	assert.True(t, got.EndAt.Equal(at(10, 50)))

	err = repo.UpdateService(ctx, &models.Service{ID: 42, Name: "x", DurationMinutes: 10})
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)
}
