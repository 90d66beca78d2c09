package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	documentapp "github.com/sfgnexus/backend/internal/application/document"
	"github.com/sfgnexus/backend/internal/interfaces/http/dto"
)

// DocumentHandler handles document lifecycle endpoints
type DocumentHandler struct {
	BaseHandler
	service *documentapp.Service
	gate    *documentapp.ConversionGate
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(service *documentapp.Service, gate *documentapp.ConversionGate) *DocumentHandler {
	return &DocumentHandler{
		service: service,
		gate:    gate,
	}
}

// Create registers a new enquiry. Intake data may be incomplete;
// missing required fields are recorded, not rejected.
func (h *DocumentHandler) Create(c *gin.Context) {
	var req documentapp.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// UpdateFields applies a partial update to a document's gated fields
// and product counts.
func (h *DocumentHandler) UpdateFields(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	var req documentapp.UpdateFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.service.UpdateFields(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Transition attempts to progress a document to the next stage, or to
// revise a quote in place. A refused progression reports the gate that
// blocked it together with the missing fields or incomplete checks.
func (h *DocumentHandler) Transition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	var req documentapp.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.gate.AttemptTransition(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if result.Blocked != nil {
		h.respondBlocked(c, result)
		return
	}

	h.Success(c, result)
}

// respondBlocked renders a refused transition. The error code drives
// the HTTP status while the full gate result stays in the body so
// clients can show which fields or checks are outstanding.
func (h *DocumentHandler) respondBlocked(c *gin.Context, result *documentapp.TransitionResult) {
	code := dto.NormalizeErrorCode(result.Blocked.Code)
	response := dto.NewErrorResponseWithRequestID(code, result.Blocked.Message, getRequestID(c))
	response.Data = result
	c.JSON(dto.GetHTTPStatus(code), response)
}

// GetByID retrieves a document by ID
func (h *DocumentHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetByFullNumber retrieves a document by its prefixed number,
// e.g. Q2025-0001.
func (h *DocumentHandler) GetByFullNumber(c *gin.Context) {
	fullNumber := c.Param("fullNumber")
	if fullNumber == "" {
		h.BadRequest(c, "Full number is required")
		return
	}

	result, err := h.service.GetByFullNumber(c.Request.Context(), fullNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List retrieves documents with filtering and pagination
func (h *DocumentHandler) List(c *gin.Context) {
	var filter documentapp.DocumentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	results, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, results, total, filter.Page, filter.PageSize)
}

// GetCompleteness reports required-field completeness for a document
func (h *DocumentHandler) GetCompleteness(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	result, err := h.service.GetCompleteness(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetLineage retrieves every stage a base number has passed through,
// oldest first.
func (h *DocumentHandler) GetLineage(c *gin.Context) {
	baseNumber := c.Param("baseNumber")
	if baseNumber == "" {
		h.BadRequest(c, "Base number is required")
		return
	}

	results, err := h.service.GetLineage(c.Request.Context(), baseNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// GetAuditTrail retrieves the audit entries for a document
func (h *DocumentHandler) GetAuditTrail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	results, err := h.service.GetAuditTrail(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}
