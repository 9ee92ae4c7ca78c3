package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type DirectoryHandler struct {
	dir  domain.Directory
	repo domain.Repository
	log  *zap.Logger
}

func NewDirectoryHandler(dir domain.Directory, repo domain.Repository, log *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{dir: dir, repo: repo, log: log}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
}

type UpdateServiceRequest struct {
	Name            *string `json:"name,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" binding:"omitempty,min=1"`
}

type CreateSpecialistRequest struct {
	Name       string `json:"name" binding:"required"`
	ServiceIDs []uint `json:"service_ids"`
}

// --------- Services ---------

func (h *DirectoryHandler) ListServices(c *gin.Context) {
	services, err := h.dir.ListServices(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "list services", err)
		return
	}
	httpresp.List(c, services)
}

func (h *DirectoryHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	svc := models.Service{
		Name:            strings.TrimSpace(req.Name),
		DurationMinutes: req.DurationMinutes,
	}
	if err := h.dir.CreateService(c.Request.Context(), &svc); err != nil {
		respondError(c, h.log, "create service", err)
		return
	}

	httpresp.Created(c, svc)
}

// UpdateService never touches booked appointments; they keep their end_at.
func (h *DirectoryHandler) UpdateService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ctx := c.Request.Context()

	svc, err := h.repo.GetService(ctx, id)
	if err != nil {
		respondError(c, h.log, "get service", err)
		return
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}

	if err := h.dir.UpdateService(ctx, svc); err != nil {
		respondError(c, h.log, "update service", err)
		return
	}

	httpresp.Data(c, svc)
}

// --------- Specialists ---------

func (h *DirectoryHandler) ListSpecialists(c *gin.Context) {
	specialists, err := h.dir.ListSpecialists(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "list specialists", err)
		return
	}
	httpresp.List(c, specialists)
}

func (h *DirectoryHandler) CreateSpecialist(c *gin.Context) {
	var req CreateSpecialistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	sp := models.Specialist{Name: strings.TrimSpace(req.Name)}
	if err := h.dir.CreateSpecialist(c.Request.Context(), &sp, req.ServiceIDs); err != nil {
		respondError(c, h.log, "create specialist", err)
		return
	}

	httpresp.Created(c, sp)
}

func (h *DirectoryHandler) ShowSpecialist(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid specialist id.")
		return
	}

	sp, err := h.repo.GetSpecialist(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "get specialist", err)
		return
	}

	httpresp.Data(c, sp)
}
