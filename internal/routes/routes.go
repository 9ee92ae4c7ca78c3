package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/bootstrap"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

func RegisterRoutes(r *gin.Engine, app *bootstrap.App) error {
	cfg := app.Config
	log := app.Log

	if err := validators.Register(); err != nil {
		return err
	}

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.Recovery(log),
		middleware.AccessLog(log),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	// ======================================================
	// USE CASES - APPOINTMENTS
	// ======================================================
	getAvailabilityUC := ucAppointment.NewGetAvailability(
		app.Repo,
		app.Settings,
	)

	bookAppointmentUC := ucAppointment.NewBookAppointment(
		app.Repo,
		app.Settings,
		app.Locker,
		app.Audit,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		app.Repo,
		cfg.CancelPolicy,
		app.Audit,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		handlers.AppointmentHandlerDeps{
			GetAvailability: getAvailabilityUC,
			Book:            bookAppointmentUC,
			Cancel:          cancelAppointmentUC,
			Get:             ucAppointment.NewGetAppointment(app.Repo),
			ListByDate:      ucAppointment.NewListAppointmentsByDate(app.Repo),
			ListByMonth:     ucAppointment.NewListAppointmentsByMonth(app.Repo),
		},
		app.Location,
		log,
	)

	directoryHandler := handlers.NewDirectoryHandler(app.Directory, app.Repo, log)
	workingHoursHandler := handlers.NewWorkingHoursHandler(app.Settings, app.Audit, log)
	auditLogsHandler := handlers.NewAuditLogsHandler(app.AuditReader, log)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.NoRoute(func(c *gin.Context) {
		httperr.NotFound(c, "route_not_found", "Route not found.")
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		// ------------------------------
		// SCHEDULING
		// ------------------------------
		api.GET("/slots", appointmentHandler.Slots)
		api.POST("/book", appointmentHandler.Book)
		api.GET("/appointments/:id", appointmentHandler.Show)
		api.DELETE("/appointments/:id", appointmentHandler.Cancel)

		// ------------------------------
		// DIRECTORIES
		// ------------------------------
		api.GET("/services", directoryHandler.ListServices)
		api.POST("/services", directoryHandler.CreateService)
		api.PATCH("/services/:id", directoryHandler.UpdateService)

		api.GET("/specialists", directoryHandler.ListSpecialists)
		api.POST("/specialists", directoryHandler.CreateSpecialist)
		api.GET("/specialists/:id", directoryHandler.ShowSpecialist)
		api.GET("/specialists/:id/appointments", appointmentHandler.ListByDate)
		api.GET("/specialists/:id/appointments/month", appointmentHandler.ListByMonth)

		// ------------------------------
		// SETTINGS / AUDIT
		// ------------------------------
		api.GET("/settings/working-hours", workingHoursHandler.Get)
		api.PUT("/settings/working-hours", workingHoursHandler.Update)

		api.GET("/audit-logs", auditLogsHandler.List)
	}

	return nil
}
