package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/locker"
	usecase "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

func TestSeeder_Run(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()

	settings, err := config.NewSettings(domain.WorkingHours{
		Start:           domain.Clock{Hour: 9},
		End:             domain.Clock{Hour: 18},
		SlotStepMinutes: 30,
	})
	require.NoError(t, err)

	book := usecase.NewBookAppointment(repo, settings, locker.NewLocal(time.Second), nil)
	s := New(repo, book, settings, zap.NewNop())

	date := time.Date(2030, 3, 14, 0, 0, 0, 0, time.UTC)

	res, err := s.Run(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Services)
	assert.Equal(t, 3, res.Specialists)
	assert.Greater(t, res.Appointments, 0)
	assert.LessOrEqual(t, res.Appointments, 9)

	specialists, err := repo.ListSpecialists(ctx)
	require.NoError(t, err)
	require.Len(t, specialists, 3)
	assert.Len(t, specialists[0].Services, 2)

	for _, sp := range specialists {
		apps, err := repo.ListForSpecialistInPeriod(ctx, sp.ID, date, date.AddDate(0, 0, 1))
		require.NoError(t, err)

		busy := domain.BusyIntervals(sp.ID, apps)
		for i := range busy {
			assert.True(t, settings.Current().Contains(busy[i]))
			for j := i + 1; j < len(busy); j++ {
				assert.False(t, domain.Overlaps(busy[i], busy[j]))
			}
		}
	}

	// a second run reuses the catalogue
	res, err = s.Run(ctx, date)
	require.NoError(t, err)
	services, err := repo.ListServices(ctx)
	require.NoError(t, err)
	assert.Len(t, services, 3)
	assert.Equal(t, 3, res.Specialists)
}
