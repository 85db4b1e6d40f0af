package handler

import (
	"net/http"

	"medportal_backend/internal/leads/notes"
	"medportal_backend/internal/leads/transport"
	"medportal_backend/platform/httpkit"
	"medportal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotesHandler handles lead note HTTP requests.
type NotesHandler struct {
	notes *notes.Service
	val   *validator.Validator
}

// NewNotesHandler creates a new notes handler.
func NewNotesHandler(svc *notes.Service, val *validator.Validator) *NotesHandler {
	return &NotesHandler{notes: svc, val: val}
}

// RegisterRoutes mounts note routes under the leads group.
func (h *NotesHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/:leadId/notes", h.HandleList)
	group.POST("/:leadId/notes", h.HandleAdd)
	group.PUT("/:leadId/notes/:noteId", h.HandleEdit)
	group.DELETE("/:leadId/notes/:noteId", h.HandleDelete)
}

// HandleList returns all notes for a lead.
// GET /api/v1/leads/:leadId/notes
func (h *NotesHandler) HandleList(c *gin.Context) {
	leadID, ok := parseParamID(c, "leadId", errInvalidLeadID)
	if !ok {
		return
	}

	resp, err := h.notes.List(c.Request.Context(), leadID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// HandleAdd adds a new note to a lead.
// POST /api/v1/leads/:leadId/notes
func (h *NotesHandler) HandleAdd(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	leadID, ok := parseParamID(c, "leadId", errInvalidLeadID)
	if !ok {
		return
	}

	var req transport.CreateLeadNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	resp, err := h.notes.Add(c.Request.Context(), leadID, identity.AdminID(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// HandleEdit replaces a note's body.
// PUT /api/v1/leads/:leadId/notes/:noteId
func (h *NotesHandler) HandleEdit(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	noteID, ok := parseParamID(c, "noteId", "invalid note ID")
	if !ok {
		return
	}

	var req transport.UpdateLeadNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	resp, err := h.notes.Edit(c.Request.Context(), noteID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// HandleDelete removes a note.
// DELETE /api/v1/leads/:leadId/notes/:noteId
func (h *NotesHandler) HandleDelete(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	noteID, ok := parseParamID(c, "noteId", "invalid note ID")
	if !ok {
		return
	}

	if err := h.notes.Delete(c.Request.Context(), noteID); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"success": true})
}

func parseParamID(c *gin.Context, param, errMsg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, errMsg, nil)
		return uuid.Nil, false
	}
	return id, true
}
