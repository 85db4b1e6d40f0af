package content

import (
	"net/http"

	"medportal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler exposes the content CRUD endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates a new content handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the read endpoints used by the site.
func (h *Handler) RegisterPublicRoutes(group *gin.RouterGroup) {
	group.GET("/:kind", h.HandleList)
	group.GET("/:kind/:id", h.HandleGet)
}

// RegisterRoutes mounts the write endpoints (admin only).
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/:kind", h.HandleCreate)
	group.PUT("/:kind/:id", h.HandleUpdate)
	group.DELETE("/:kind/:id", h.HandleDelete)
}

type writeRequest struct {
	Fields map[string]any `json:"fields"`
}

// HandleCreate persists a new entry after running the translation pipeline.
// POST /api/v1/content/:kind
func (h *Handler) HandleCreate(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req writeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.service.Create(c.Request.Context(), c.Param("kind"), req.Fields)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, entry)
}

// HandleUpdate replaces an entry's fields and re-derives its translations.
// PUT /api/v1/content/:kind/:id
func (h *Handler) HandleUpdate(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid entry ID", nil)
		return
	}

	var req writeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.service.Update(c.Request.Context(), c.Param("kind"), id, req.Fields)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, entry)
}

// HandleDelete removes an entry.
// DELETE /api/v1/content/:kind/:id
func (h *Handler) HandleDelete(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid entry ID", nil)
		return
	}

	if httpkit.HandleError(c, h.service.Delete(c.Request.Context(), c.Param("kind"), id)) {
		return
	}

	httpkit.OK(c, gin.H{"deleted": true})
}

// HandleList returns all entries of a kind resolved for the locale.
// GET /api/v1/content/:kind?locale=ar
func (h *Handler) HandleList(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context(), c.Param("kind"), c.Query("locale"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"entries": entries})
}

// HandleGet returns one entry resolved for the locale.
// GET /api/v1/content/:kind/:id?locale=ar
func (h *Handler) HandleGet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid entry ID", nil)
		return
	}

	entry, err := h.service.Get(c.Request.Context(), c.Param("kind"), id, c.Query("locale"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, entry)
}
