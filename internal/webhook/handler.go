package webhook

import (
	"net/http"

	"medportal_backend/internal/calendly"
	"medportal_backend/platform/httpkit"
	"medportal_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// Handler receives scheduling-provider webhook deliveries.
type Handler struct {
	service *Service
	log     *logger.Logger
}

// NewHandler creates a new webhook handler.
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// HandleCalendly processes a Calendly delivery. Deliveries that cannot be
// matched are still acknowledged with 200 so the provider does not retry;
// only internal failures return 5xx, which triggers a provider retry.
// POST /api/v1/webhook/calendly
func (h *Handler) HandleCalendly(c *gin.Context) {
	var payload calendly.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		// Malformed bodies will never parse on retry either. Ack and drop.
		h.log.Warn("dropping malformed webhook delivery", "error", err.Error())
		httpkit.OK(c, gin.H{"received": true})
		return
	}

	if err := h.service.HandleEvent(c.Request.Context(), payload); err != nil {
		h.log.DatabaseError("webhook reconcile", err)
		httpkit.Error(c, http.StatusInternalServerError, "failed to process webhook", nil)
		return
	}

	httpkit.OK(c, gin.H{"received": true})
}
