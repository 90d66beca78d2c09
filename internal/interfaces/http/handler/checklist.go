package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	validationapp "github.com/sfgnexus/backend/internal/application/validation"
)

// ChecklistHandler handles quote validation checklist endpoints
type ChecklistHandler struct {
	BaseHandler
	service *validationapp.Service
}

// NewChecklistHandler creates a new checklist handler
func NewChecklistHandler(service *validationapp.Service) *ChecklistHandler {
	return &ChecklistHandler{service: service}
}

// RecordCheck marks a single checklist item complete or incomplete.
// Completing the last outstanding item flips the document to VALIDATED.
func (h *ChecklistHandler) RecordCheck(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	var req validationapp.RecordCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.service.RecordCheck(c.Request.Context(), documentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetByDocumentID retrieves the validation checklist for a document
func (h *ChecklistHandler) GetByDocumentID(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	result, err := h.service.GetByDocumentID(c.Request.Context(), documentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
