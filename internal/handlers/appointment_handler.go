package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	getAvailability *ucAppointment.GetAvailability
	book            *ucAppointment.BookAppointment
	cancel          *ucAppointment.CancelAppointment
	get             *ucAppointment.GetAppointment
	listByDate      *ucAppointment.ListAppointmentsByDate
	listByMonth     *ucAppointment.ListAppointmentsByMonth

	loc     *time.Location
	timeout time.Duration
	log     *zap.Logger
}

type AppointmentHandlerDeps struct {
	GetAvailability *ucAppointment.GetAvailability
	Book            *ucAppointment.BookAppointment
	Cancel          *ucAppointment.CancelAppointment
	Get             *ucAppointment.GetAppointment
	ListByDate      *ucAppointment.ListAppointmentsByDate
	ListByMonth     *ucAppointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	deps AppointmentHandlerDeps,
	loc *time.Location,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		getAvailability: deps.GetAvailability,
		book:            deps.Book,
		cancel:          deps.Cancel,
		get:             deps.Get,
		listByDate:      deps.ListByDate,
		listByMonth:     deps.ListByMonth,
		loc:             loc,
		timeout:         10 * time.Second,
		log:             log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ListSlotsQuery struct {
	Date         string `form:"date" binding:"required,date"`
	ServiceID    uint   `form:"service_id" binding:"required,min=1"`
	SpecialistID uint   `form:"specialist_id" binding:"required,min=1"`
}

type BookAppointmentRequest struct {
	Date         string `json:"date" binding:"required,date"`
	ServiceID    uint   `json:"service_id" binding:"required,min=1"`
	SpecialistID uint   `json:"specialist_id" binding:"required,min=1"`
	StartTime    string `json:"start_time" binding:"required,clock"`
}

func (h *AppointmentHandler) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// ======================================================
// SLOTS
// ======================================================

func (h *AppointmentHandler) Slots(c *gin.Context) {
	var q ListSlotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	date, err := parseDate(q.Date, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	slots, err := h.getAvailability.Execute(ctx, domain.AvailabilityInput{
		SpecialistID: q.SpecialistID,
		ServiceID:    q.ServiceID,
		Date:         date,
	})
	if err != nil {
		respondError(c, h.log, "list slots", err)
		return
	}

	httpresp.List(c, dto.ToSlots(slots))
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	date, err := parseDate(req.Date, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}
	if isBeforeToday(date, h.loc) {
		httperr.Unprocessable(c, "date_in_past", "Appointments can only be booked for today or future dates.")
		return
	}

	startTime, err := domain.ParseClock(req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_time", "start_time must be HH:MM.")
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	ap, err := h.book.Execute(ctx, ucAppointment.BookAppointmentInput{
		SpecialistID: req.SpecialistID,
		ServiceID:    req.ServiceID,
		Date:         date,
		StartTime:    startTime,
	})
	if err != nil {
		respondError(c, h.log, "book appointment", err)
		return
	}

	httpresp.Created(c, dto.ToAppointment(ap))
}

// ======================================================
// CANCEL / SHOW
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	if _, err := h.cancel.Execute(ctx, id); err != nil {
		respondError(c, h.log, "cancel appointment", err)
		return
	}

	httpresp.Message(c, "Canceled")
}

func (h *AppointmentHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	ap, err := h.get.Execute(ctx, id)
	if err != nil {
		respondError(c, h.log, "get appointment", err)
		return
	}

	httpresp.Data(c, dto.ToAppointment(ap))
}

// ======================================================
// LIST (specialist calendar)
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	specialistID, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid specialist id.")
		return
	}

	date := time.Now().In(h.loc)
	if dateStr := c.Query("date"); dateStr != "" {
		d, err := parseDate(dateStr, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
			return
		}
		date = d
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	out, err := h.listByDate.Execute(ctx, specialistID, date)
	if err != nil {
		respondError(c, h.log, "list appointments", err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	specialistID, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid specialist id.")
		return
	}

	now := time.Now().In(h.loc)

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	out, err := h.listByMonth.Execute(ctx, specialistID, year, month, h.loc)
	if err != nil {
		respondError(c, h.log, "list appointments", err)
		return
	}

	httpresp.List(c, out)
}
