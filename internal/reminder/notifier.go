package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"

	usecase "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// LogNotifier writes each reminder as a structured log line.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, r usecase.Reminder) error {
	n.log.Info("appointment reminder",
		zap.Uint("appointment_id", r.AppointmentID),
		zap.Uint("specialist_id", r.SpecialistID),
		zap.String("specialist", r.SpecialistName),
		zap.String("service", r.ServiceName),
		zap.String("start_at", r.StartAt.Format(time.RFC3339)),
	)
	return nil
}

var _ usecase.Notifier = (*LogNotifier)(nil)
