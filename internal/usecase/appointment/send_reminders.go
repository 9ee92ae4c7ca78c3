package appointment

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Reminder is what a Notifier gets for one upcoming appointment.
type Reminder struct {
	AppointmentID  uint
	SpecialistID   uint
	SpecialistName string
	ServiceName    string
	StartAt        time.Time
	EndAt          time.Time
}

type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

type SendReminders struct {
	repo     domain.Repository
	notifier Notifier
	lead     time.Duration
	window   time.Duration
	log      *zap.Logger
}

func NewSendReminders(
	repo domain.Repository,
	notifier Notifier,
	lead time.Duration,
	window time.Duration,
	log *zap.Logger,
) *SendReminders {
	return &SendReminders{
		repo:     repo,
		notifier: notifier,
		lead:     lead,
		window:   window,
		log:      log,
	}
}

// Execute notifies every active appointment starting in
// [now+lead, now+lead+window] and returns how many were delivered. A failed
// notification is logged and does not stop the batch.
func (uc *SendReminders) Execute(ctx context.Context, now time.Time) (int, error) {
	from := now.Add(uc.lead)
	to := from.Add(uc.window)

	appointments, err := uc.repo.ListActiveStartingBetween(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("list upcoming appointments: %w", err)
	}

	sent := 0
	for _, ap := range appointments {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		if err := uc.notifier.Notify(ctx, reminderFor(ap)); err != nil {
			uc.log.Warn("reminder failed",
				zap.Uint("appointment_id", ap.ID),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	return sent, nil
}

func reminderFor(ap models.Appointment) Reminder {
	r := Reminder{
		AppointmentID: ap.ID,
		SpecialistID:  ap.SpecialistID,
		StartAt:       ap.StartAt,
		EndAt:         ap.EndAt,
	}
	if ap.Specialist != nil {
		r.SpecialistName = ap.Specialist.Name
	}
	if ap.Service != nil {
		r.ServiceName = ap.Service.Name
	}
	return r
}
