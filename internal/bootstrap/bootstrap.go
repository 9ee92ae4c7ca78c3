// Package bootstrap picks the store, lock and audit backends from config.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/locker"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type App struct {
	Config   *config.Config
	Log      *zap.Logger
	Location *time.Location

	Repo      domain.Repository
	Directory domain.Directory
	Settings  *config.Settings
	Locker    locker.Locker

	Audit       *audit.Dispatcher
	AuditReader audit.Reader

	closers []func()
}

type store interface {
	domain.Repository
	domain.Directory
}

func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	hours, err := cfg.WorkingHours()
	if err != nil {
		return nil, err
	}
	settings, err := config.NewSettings(hours)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		Log:      log,
		Location: timezone.Location(cfg.Timezone),
		Settings: settings,
	}

	// ---- store + audit sink ----
	var (
		st   store
		sink audit.Sink
	)
	if cfg.DBUrl != "" {
		db, err := dbpkg.NewDB(cfg, log)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, func() { _ = sqlDB.Close() })

		st = infraRepo.NewGormRepository(db)
		gormAudit := audit.New(db)
		sink, app.AuditReader = gormAudit, gormAudit
		log.Info("using postgres store")
	} else {
		st = infraRepo.NewMemoryRepository()
		memAudit := audit.NewMemoryLog()
		sink, app.AuditReader = memAudit, memAudit
		log.Warn("DATABASE_URL not set, using in-memory store")
	}
	app.Repo, app.Directory = st, st

	// ---- specialist lock ----
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			app.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		app.closers = append(app.closers, func() { _ = rdb.Close() })

		app.Locker = locker.NewRedis(rdb, log, locker.RedisConfig{
			TTL:  cfg.LockTTL,
			Wait: cfg.LockWait,
		})
		log.Info("using redis specialist lock", zap.String("addr", cfg.RedisAddr))
	} else {
		app.Locker = locker.NewLocal(cfg.LockWait)
	}

	// ---- audit ----
	app.Audit = audit.NewDispatcher(sink, log)

	return app, nil
}

// Close drains audit events before releasing connections.
func (a *App) Close() {
	a.Audit.Close()
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
