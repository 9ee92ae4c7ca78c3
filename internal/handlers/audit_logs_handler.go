package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	reader audit.Reader
	log    *zap.Logger
}

func NewAuditLogsHandler(reader audit.Reader, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{reader: reader, log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	action := c.Query("action")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	logs, err := h.reader.List(c.Request.Context(), action, limit)
	if err != nil {
		respondError(c, h.log, "list audit logs", err)
		return
	}

	httpresp.List(c, logs)
}
