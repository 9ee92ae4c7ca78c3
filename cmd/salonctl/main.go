package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/bootstrap"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/reminder"
	"github.com/BruksfildServices01/salon-scheduler/internal/seed"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "salonctl",
		Short:         "Maintenance commands for the salon scheduler",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newSeedCmd(), newRemindCmd())
	return root
}

// withApp loads config, logger and backends, runs fn, then releases them.
func withApp(fn func(ctx context.Context, app *bootstrap.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(ctx, app)
}

func newSeedCmd() *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create demo services, specialists and a day of appointments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(func(ctx context.Context, app *bootstrap.App) error {
				date := timezone.StartOfDay(time.Now().In(app.Location))
				if dateStr != "" {
					d, err := timezone.ParseDate(dateStr, app.Location)
					if err != nil {
						return fmt.Errorf("--date: %w", err)
					}
					date = d
				}

				book := ucAppointment.NewBookAppointment(app.Repo, app.Settings, app.Locker, app.Audit)
				res, err := seed.New(app.Directory, book, app.Settings, app.Log).Run(ctx, date)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d services, %d specialists, %d appointments\n",
					res.Services, res.Specialists, res.Appointments)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "day to fill with appointments (YYYY-MM-DD, default today)")
	return cmd
}

func newRemindCmd() *cobra.Command {
	var every time.Duration

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send reminders for appointments starting after the configured lead time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(func(ctx context.Context, app *bootstrap.App) error {
				sender := ucAppointment.NewSendReminders(
					app.Repo,
					reminder.NewLogNotifier(app.Log),
					app.Config.ReminderLead,
					app.Config.ReminderWindow,
					app.Log,
				)

				if every > 0 {
					app.Log.Info("reminder worker started", zap.Duration("every", every))
					reminder.NewWorker(sender, app.Log, every).Run(ctx)
					return nil
				}

				sent, err := sender.Execute(ctx, time.Now())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "sent %d reminders\n", sent)
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&every, "every", 0, "keep running and send on this interval (e.g. 5m)")
	return cmd
}
