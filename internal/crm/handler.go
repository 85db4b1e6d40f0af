package crm

import (
	"net/http"

	"medportal_backend/platform/httpkit"
	"medportal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler exposes the per-source sync intake endpoints.
type Handler struct {
	service *Service
	val     *validator.Validator
}

// NewHandler creates a new CRM sync handler.
func NewHandler(service *Service, val *validator.Validator) *Handler {
	return &Handler{service: service, val: val}
}

// RegisterRoutes mounts one intake route per lead source.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/sync/general", h.sync(SourceGeneral))
	group.POST("/sync/hospital", h.sync(SourceHospital))
	group.POST("/sync/private", h.sync(SourcePrivate))
}

func (h *Handler) sync(source string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SyncRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
		if err := h.val.Struct(req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
			return
		}

		resp, err := h.service.Sync(c.Request.Context(), source, req)
		if httpkit.HandleError(c, err) {
			return
		}

		httpkit.OK(c, resp)
	}
}
