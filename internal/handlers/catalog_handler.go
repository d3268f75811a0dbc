package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type CatalogHandler struct {
	reader          domain.Catalog
	repo            catalog.Repository
	cache           catalog.Invalidator
	audit           audit.Recorder
	defaultCapacity int
	showDetails     bool
	logger          *zap.Logger
}

func NewCatalogHandler(
	reader domain.Catalog,
	repo catalog.Repository,
	cache catalog.Invalidator,
	audit audit.Recorder,
	defaultCapacity int,
	showDetails bool,
	logger *zap.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		reader:          reader,
		repo:            repo,
		cache:           cache,
		audit:           audit,
		defaultCapacity: defaultCapacity,
		showDetails:     showDetails,
		logger:          logger,
	}
}

// ======================================================
// DTOs
// ======================================================

type ServiceRequest struct {
	Code        *string `json:"code"`
	Label       *string `json:"label"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Duration    *string `json:"duration"`
	Image       *string `json:"image"`
	Capacity    *int    `json:"capacity"` // 0 resets to the default capacity
	Active      *bool   `json:"active"`
}

func (h *CatalogHandler) toDTO(s models.Service) dto.ServiceDTO {
	table := domain.NewCapacityTable(h.defaultCapacity, []models.Service{s})
	return dto.ServiceDTO{
		ID:          s.ID,
		Code:        s.Code,
		Label:       s.Label,
		Description: s.Description,
		Category:    s.Category,
		Duration:    s.Duration,
		Image:       s.Image,
		Capacity:    table.Capacity(s.Code),
	}
}

// ======================================================
// PUBLIC
// ======================================================

// ListServices returns active services grouped by category.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	list, err := h.reader.ListServices(c.Request.Context())
	if err != nil {
		httperr.Handle(c, err, h.showDetails)
		return
	}

	grouped := map[string][]dto.ServiceDTO{
		models.CategoryAesthetic: {},
		models.CategoryDental:    {},
	}
	for _, s := range list {
		if !s.Active {
			continue
		}
		grouped[s.Category] = append(grouped[s.Category], h.toDTO(s))
	}

	httpresp.OK(c, gin.H{
		"services":     grouped,
		"timeSlots":    domain.TimeSlots,
		"slotCapacity": h.defaultCapacity,
	})
}

func (h *CatalogHandler) TimeSlots(c *gin.Context) {
	httpresp.List(c, domain.TimeSlots)
}

// ======================================================
// ADMIN
// ======================================================

func (h *CatalogHandler) AdminList(c *gin.Context) {
	list, err := h.repo.ListServices(c.Request.Context())
	if err != nil {
		httperr.Handle(c, err, h.showDetails)
		return
	}

	out := make([]dto.ServiceDTO, 0, len(list))
	for _, s := range list {
		out = append(out, h.toDTO(s))
	}
	httpresp.List(c, out)
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return
	}

	if req.Code == nil || strings.TrimSpace(*req.Code) == "" {
		httperr.Write(c, http.StatusBadRequest, httperr.HTTPError{Code: "invalid_request", Field: "code", Message: "Service name is required"})
		return
	}
	if req.Category == nil {
		httperr.Write(c, http.StatusBadRequest, httperr.HTTPError{Code: "invalid_category", Field: "category", Message: "Category must be Aesthetic or Dental"})
		return
	}

	s := models.Service{Active: true}
	if !h.apply(c, &s, req) {
		return
	}

	if err := h.repo.CreateService(c.Request.Context(), &s); err != nil {
		httperr.Handle(c, err, h.showDetails)
		return
	}

	h.changed(c, audit.ActionServiceCreated, s.ID)
	httpresp.Created(c, h.toDTO(s))
}

func (h *CatalogHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return
	}

	s, err := h.repo.GetService(c.Request.Context(), id)
	if err != nil {
		httperr.Handle(c, err, h.showDetails)
		return
	}

	if !h.apply(c, s, req) {
		return
	}

	if err := h.repo.UpdateService(c.Request.Context(), s); err != nil {
		httperr.Handle(c, err, h.showDetails)
		return
	}

	h.changed(c, audit.ActionServiceUpdated, s.ID)
	httpresp.OK(c, h.toDTO(*s))
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteService(c.Request.Context(), id); err != nil {
		httperr.Handle(c, err, h.showDetails)
		return
	}

	h.changed(c, audit.ActionServiceDeleted, id)
	httpresp.OK(c, gin.H{"message": "Service deleted"})
}

// apply copies the set fields of req onto s, writing a 400 and returning
// false on invalid input.
func (h *CatalogHandler) apply(c *gin.Context, s *models.Service, req ServiceRequest) bool {
	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code == "" || strings.Contains(code, domain.ServiceDelimiter) {
			httperr.Write(c, http.StatusBadRequest, httperr.HTTPError{Code: "invalid_request", Field: "code", Message: "Service name must be non-empty and must not contain a comma"})
			return false
		}
		s.Code = code
		if s.Label == "" {
			s.Label = code
		}
	}
	if req.Label != nil && strings.TrimSpace(*req.Label) != "" {
		s.Label = strings.TrimSpace(*req.Label)
	}
	if req.Description != nil {
		s.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		if !models.IsValidCategory(*req.Category) {
			httperr.Write(c, http.StatusBadRequest, httperr.HTTPError{Code: "invalid_category", Field: "category", Message: "Category must be Aesthetic or Dental"})
			return false
		}
		s.Category = *req.Category
	}
	if req.Duration != nil {
		s.Duration = strings.TrimSpace(*req.Duration)
	}
	if req.Image != nil {
		s.Image = strings.TrimSpace(*req.Image)
	}
	if req.Capacity != nil {
		switch {
		case *req.Capacity < 0:
			httperr.Write(c, http.StatusBadRequest, httperr.HTTPError{Code: "invalid_capacity", Field: "capacity", Message: "Capacity must be a positive number, or 0 for the default"})
			return false
		case *req.Capacity == 0:
			// 0 clears the override
			s.Capacity = nil
		default:
			s.Capacity = req.Capacity
		}
	}
	if req.Active != nil {
		s.Active = *req.Active
	}
	return true
}

func (h *CatalogHandler) changed(c *gin.Context, action string, id uint) {
	if err := h.cache.Invalidate(c.Request.Context()); err != nil {
		h.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
	h.audit.Dispatch(audit.Event{
		Action:   action,
		Actor:    c.GetString(middleware.ContextAdminEmail),
		Entity:   "service",
		EntityID: audit.UintPtr(id),
	})
}
