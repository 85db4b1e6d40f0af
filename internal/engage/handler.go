package engage

import (
	"net/http"

	"medportal_backend/platform/httpkit"
	"medportal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles engagement HTTP requests.
type Handler struct {
	service *Service
	val     *validator.Validator
}

// NewHandler creates a new engage handler.
func NewHandler(service *Service, val *validator.Validator) *Handler {
	return &Handler{service: service, val: val}
}

// RegisterRoutes mounts the engagement routes (all authenticated).
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/email", h.HandleSendEmail)
	group.GET("/whatsapp-link", h.HandleWhatsAppLink)
	group.POST("/scheduling-link", h.HandleSchedulingLink)
}

// HandleSendEmail dispatches a transactional email to a lead.
// POST /api/v1/engage/email
func (h *Handler) HandleSendEmail(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	resp, err := h.service.SendEmail(c.Request.Context(), identity.AdminID(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// HandleWhatsAppLink builds a wa.me deep link for a lead.
// GET /api/v1/engage/whatsapp-link?leadId=...&message=...
func (h *Handler) HandleWhatsAppLink(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	leadID, err := uuid.Parse(c.Query("leadId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead ID", nil)
		return
	}

	resp, err := h.service.WhatsAppLink(c.Request.Context(), leadID, c.Query("message"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// HandleSchedulingLink creates a single-use booking link for a lead.
// POST /api/v1/engage/scheduling-link
func (h *Handler) HandleSchedulingLink(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req CreateSchedulingLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	resp, err := h.service.CreateSchedulingLink(c.Request.Context(), identity.AdminID(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}
