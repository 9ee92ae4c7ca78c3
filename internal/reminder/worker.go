package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sender is the reminder pass run on every tick.
type Sender interface {
	Execute(ctx context.Context, now time.Time) (int, error)
}

type Worker struct {
	sender   Sender
	log      *zap.Logger
	interval time.Duration
	now      func() time.Time
}

func NewWorker(sender Sender, log *zap.Logger, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Worker{
		sender:   sender,
		log:      log,
		interval: interval,
		now:      time.Now,
	}
}

// Run sends once immediately, then on every tick until ctx is done.
func (w *Worker) Run(ctx context.Context) {
	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	sent, err := w.sender.Execute(ctx, w.now())
	if err != nil {
		w.log.Error("reminder batch failed", zap.Error(err))
		return
	}
	w.log.Info("reminder batch done", zap.Int("sent", sent))
}
