package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	approvalapp "github.com/sfgnexus/backend/internal/application/approval"
)

// ApprovalHandler handles approval workflow endpoints
type ApprovalHandler struct {
	BaseHandler
	service *approvalapp.Service
}

// NewApprovalHandler creates a new approval handler
func NewApprovalHandler(service *approvalapp.Service) *ApprovalHandler {
	return &ApprovalHandler{service: service}
}

// Request raises an approval request for a quote. The applicable
// workflow rules are captured on the request at this moment, so later
// rule changes do not affect it.
func (h *ApprovalHandler) Request(c *gin.Context) {
	var req approvalapp.RequestApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.service.Request(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Resolve records an approve or reject decision on a pending request.
// Passing an idempotency key makes retried decisions safe to replay.
func (h *ApprovalHandler) Resolve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid approval request ID")
		return
	}

	var req approvalapp.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.service.Resolve(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetByID retrieves an approval request by ID
func (h *ApprovalHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid approval request ID")
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListByDocument retrieves the approval requests raised against a
// document, newest first.
func (h *ApprovalHandler) ListByDocument(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	results, err := h.service.ListByDocument(c.Request.Context(), documentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}
