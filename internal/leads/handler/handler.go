// Package handler exposes the leads HTTP endpoints.
package handler

import (
	"net/http"

	"medportal_backend/internal/leads/management"
	"medportal_backend/internal/leads/status"
	"medportal_backend/internal/leads/timeline"
	"medportal_backend/internal/leads/transport"
	"medportal_backend/platform/httpkit"
	"medportal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const errInvalidLeadID = "invalid lead ID"

// Handler handles lead HTTP requests.
type Handler struct {
	management *management.Service
	status     *status.Service
	timeline   *timeline.Service
	notes      *NotesHandler
	val        *validator.Validator
}

// New creates a new leads handler.
func New(mgmt *management.Service, statusSvc *status.Service, timelineSvc *timeline.Service, notes *NotesHandler, val *validator.Validator) *Handler {
	return &Handler{
		management: mgmt,
		status:     statusSvc,
		timeline:   timelineSvc,
		notes:      notes,
		val:        val,
	}
}

// RegisterPublicRoutes mounts the unauthenticated intake endpoint.
func (h *Handler) RegisterPublicRoutes(group *gin.RouterGroup) {
	group.POST("", h.HandleCreate)
}

// RegisterRoutes mounts the authenticated lead routes.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/:leadId", h.HandleGet)
	group.PATCH("/:leadId/status", h.HandleUpdateStatus)
	group.GET("/:leadId/history", h.HandleHistory)
	group.GET("/:leadId/timeline", h.HandleTimeline)

	h.notes.RegisterRoutes(group)
}

// HandleCreate captures an inbound lead form submission.
// POST /api/v1/leads
func (h *Handler) HandleCreate(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	resp, err := h.management.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// HandleGet returns a single lead.
// GET /api/v1/leads/:leadId
func (h *Handler) HandleGet(c *gin.Context) {
	leadID, ok := h.leadID(c)
	if !ok {
		return
	}

	resp, err := h.management.Get(c.Request.Context(), leadID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// HandleUpdateStatus moves a lead to a new status.
// PATCH /api/v1/leads/:leadId/status
func (h *Handler) HandleUpdateStatus(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	leadID, ok := h.leadID(c)
	if !ok {
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	actor := identity.AdminID()
	if err := h.status.SetStatus(c.Request.Context(), leadID, req.StatusID, &actor); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"success": true})
}

// HandleHistory returns a lead's status transitions, newest first.
// GET /api/v1/leads/:leadId/history
func (h *Handler) HandleHistory(c *gin.Context) {
	leadID, ok := h.leadID(c)
	if !ok {
		return
	}

	resp, err := h.status.History(c.Request.Context(), leadID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// HandleTimeline returns the merged activity feed for a lead.
// GET /api/v1/leads/:leadId/timeline
func (h *Handler) HandleTimeline(c *gin.Context) {
	leadID, ok := h.leadID(c)
	if !ok {
		return
	}

	resp, err := h.timeline.Feed(c.Request.Context(), leadID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

func (h *Handler) leadID(c *gin.Context) (uuid.UUID, bool) {
	leadID, err := uuid.Parse(c.Param("leadId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, errInvalidLeadID, nil)
		return uuid.Nil, false
	}
	return leadID, true
}
