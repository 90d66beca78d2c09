package approval

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sfgnexus/backend/internal/domain/approval"
)

// RequestApprovalRequest represents a request to raise an approval
type RequestApprovalRequest struct {
	DocumentID  uuid.UUID `json:"document_id" binding:"required"`
	RequestedBy string    `json:"requested_by" binding:"required,min=1,max=100"`
}

// ResolveRequest represents an approve or reject decision
type ResolveRequest struct {
	Decision       string `json:"decision" binding:"required,oneof=approve reject"`
	ResolvedBy     string `json:"resolved_by" binding:"required,min=1,max=100"`
	Reason         string `json:"reason"`
	IdempotencyKey string `json:"idempotency_key"`
}

// RequestResponse represents an approval request in API responses
type RequestResponse struct {
	ID                     uuid.UUID       `json:"id"`
	WorkflowID             uuid.UUID       `json:"workflow_id"`
	DocumentID             uuid.UUID       `json:"document_id"`
	BaseNumber             string          `json:"base_number"`
	RequestedBy            string          `json:"requested_by"`
	Value                  decimal.Decimal `json:"value"`
	DeliveryType           string          `json:"delivery_type"`
	RequiresSecondApproval bool            `json:"requires_second_approval"`
	MandatoryApproval      bool            `json:"mandatory_approval"`
	CanSelfApprove         bool            `json:"can_self_approve"`
	Status                 string          `json:"status"`
	FirstApprovedBy        string          `json:"first_approved_by,omitempty"`
	ResolvedBy             string          `json:"resolved_by,omitempty"`
	ResolvedAt             *time.Time      `json:"resolved_at,omitempty"`
	Reason                 string          `json:"reason,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
}

// ToRequestResponse converts a domain request to a response DTO
func ToRequestResponse(req *approval.Request) RequestResponse {
	return RequestResponse{
		ID:                     req.ID,
		WorkflowID:             req.WorkflowID,
		DocumentID:             req.DocumentID,
		BaseNumber:             req.BaseNumber,
		RequestedBy:            req.RequestedBy,
		Value:                  req.Value,
		DeliveryType:           string(req.DeliveryType),
		RequiresSecondApproval: req.RequiresSecondApproval,
		MandatoryApproval:      req.MandatoryApproval,
		CanSelfApprove:         req.CanSelfApprove,
		Status:                 string(req.Status),
		FirstApprovedBy:        req.FirstApprovedBy,
		ResolvedBy:             req.ResolvedBy,
		ResolvedAt:             req.ResolvedAt,
		Reason:                 req.Reason,
		CreatedAt:              req.CreatedAt,
	}
}
