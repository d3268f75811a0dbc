package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/contact"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

type ContactHandler struct {
	repo        contact.Repository
	audit       audit.Recorder
	showDetails bool
}

func NewContactHandler(repo contact.Repository, audit audit.Recorder, showDetails bool) *ContactHandler {
	return &ContactHandler{repo: repo, audit: audit, showDetails: showDetails}
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (h *ContactHandler) Create(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Write(c, http.StatusBadRequest, httperr.HTTPError{Message: "Invalid request body", Field: "body"})
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	message := strings.TrimSpace(req.Message)

	switch {
	case name == "":
		httperr.Write(c, http.StatusBadRequest, httperr.HTTPError{Message: "Name is required", Field: "name"})
		return
	case email == "":
		httperr.Write(c, http.StatusBadRequest, httperr.HTTPError{Message: "Email is required", Field: "email"})
		return
	case message == "":
		httperr.Write(c, http.StatusBadRequest, httperr.HTTPError{Message: "Message is required", Field: "message"})
		return
	case !validators.IsEmailShape(email):
		httperr.Write(c, http.StatusBadRequest, httperr.HTTPError{Message: "Invalid email address", Field: "email"})
		return
	}

	ct := models.Contact{
		Name:    name,
		Email:   email,
		Phone:   validators.StripPhoneSeparators(req.Phone),
		Message: message,
	}
	if err := h.repo.CreateContact(c.Request.Context(), &ct); err != nil {
		httperr.Handle(c, err, h.showDetails)
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   audit.ActionContactCreated,
		Entity:   "contact",
		EntityID: audit.UintPtr(ct.ID),
	})

	httpresp.Created(c, gin.H{
		"message":   "Message sent successfully",
		"contactId": ct.ID,
	})
}

func (h *ContactHandler) List(c *gin.Context) {
	list, err := h.repo.ListContacts(c.Request.Context())
	if err != nil {
		httperr.Handle(c, err, h.showDetails)
		return
	}
	httpresp.List(c, list)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteContact(c.Request.Context(), id); err != nil {
		httperr.Handle(c, err, h.showDetails)
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   audit.ActionContactDeleted,
		Actor:    c.GetString(middleware.ContextAdminEmail),
		Entity:   "contact",
		EntityID: audit.UintPtr(id),
	})
	httpresp.OK(c, gin.H{"message": "Contact deleted"})
}
