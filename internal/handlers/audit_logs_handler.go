package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type auditLogLister interface {
	List(ctx context.Context, f infraRepo.AuditLogFilter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	logs        auditLogLister
	showDetails bool
}

func NewAuditLogsHandler(logs auditLogLister, showDetails bool) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, showDetails: showDetails}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	f := infraRepo.AuditLogFilter{
		Action: c.Query("action"),
		Actor:  c.Query("actor"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	// --------------------------------------------------
	// Optional date range (UTC days, "to" inclusive)
	// --------------------------------------------------

	if from, err := time.Parse(timezone.DateLayout, c.Query("from")); err == nil {
		f.From = &from
	}
	if to, err := time.Parse(timezone.DateLayout, c.Query("to")); err == nil {
		end := to.Add(24 * time.Hour)
		f.To = &end
	}

	list, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Handle(c, err, h.showDetails)
		return
	}

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	httpresp.Page(c, list, total, f.Page, f.Limit)
}
