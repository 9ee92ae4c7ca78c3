package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
)

type WorkingHoursHandler struct {
	settings *config.Settings
	audit    *audit.Dispatcher
	log      *zap.Logger
}

func NewWorkingHoursHandler(settings *config.Settings, audit *audit.Dispatcher, log *zap.Logger) *WorkingHoursHandler {
	return &WorkingHoursHandler{settings: settings, audit: audit, log: log}
}

type WorkingHoursPayload struct {
	WorkStart       string `json:"work_start" binding:"required,clock"`
	WorkEnd         string `json:"work_end" binding:"required,clock"`
	SlotStepMinutes int    `json:"slot_step_minutes" binding:"required,min=1"`
}

func toPayload(wh domain.WorkingHours) WorkingHoursPayload {
	return WorkingHoursPayload{
		WorkStart:       wh.Start.String(),
		WorkEnd:         wh.End.String(),
		SlotStepMinutes: wh.SlotStepMinutes,
	}
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	httpresp.Data(c, toPayload(h.settings.Current()))
}

// Update applies to the next slot listing or booking; existing appointments
// are left as they are.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	var req WorkingHoursPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	start, err := domain.ParseClock(req.WorkStart)
	if err != nil {
		httperr.BadRequest(c, "invalid_work_start", err.Error())
		return
	}
	end, err := domain.ParseClock(req.WorkEnd)
	if err != nil {
		httperr.BadRequest(c, "invalid_work_end", err.Error())
		return
	}

	wh := domain.WorkingHours{Start: start, End: end, SlotStepMinutes: req.SlotStepMinutes}
	if err := h.settings.Update(wh); err != nil {
		httperr.Unprocessable(c, "invalid_working_hours", err.Error())
		return
	}

	h.log.Info("working hours updated",
		zap.String("work_start", start.String()),
		zap.String("work_end", end.String()),
		zap.Int("slot_step_minutes", wh.SlotStepMinutes),
	)
	h.audit.Dispatch(audit.Event{
		Action:   "working_hours_updated",
		Entity:   "settings",
		Metadata: toPayload(wh),
	})

	httpresp.Data(c, toPayload(wh))
}
