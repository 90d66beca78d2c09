package approval

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sfgnexus/backend/internal/domain/audit"
	"github.com/sfgnexus/backend/internal/domain/document"
	"github.com/sfgnexus/backend/internal/domain/shared"
)

// Status represents the lifecycle of an approval request
type Status string

const (
	StatusPending                Status = "PENDING"
	StatusRequiresSecondApproval Status = "REQUIRES_SECOND_APPROVAL"
	StatusApproved               Status = "APPROVED"
	StatusRejected               Status = "REJECTED"
)

// IsValid checks if the status is a valid approval status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusRequiresSecondApproval, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsResolved reports whether the request reached a final outcome
func (s Status) IsResolved() bool {
	return s == StatusApproved || s == StatusRejected
}

// Request is one approval request raised against a document. The
// gating flags are derived once from the rules at creation time and
// frozen on the request, so a later policy change never reclassifies an
// open request.
type Request struct {
	shared.BaseAggregateRoot
	WorkflowID             uuid.UUID             `gorm:"not null;index"`
	DocumentID             uuid.UUID             `gorm:"not null;index"`
	BaseNumber             string                `gorm:"not null;index"`
	RequestedBy            string                `gorm:"not null"`
	Value                  decimal.Decimal       `gorm:"type:decimal(14,2)"`
	DeliveryType           document.DeliveryType `gorm:"not null"`
	RequiresSecondApproval bool                  `gorm:"not null"`
	MandatoryApproval      bool                  `gorm:"not null"`
	CanSelfApprove         bool                  `gorm:"not null"`
	Status                 Status                `gorm:"not null;index"`
	FirstApprovedBy        string
	ResolvedBy             string
	ResolvedAt             *time.Time
	Reason                 string
}

// TableName returns the database table name
func (Request) TableName() string {
	return "approval_requests"
}

// NewRequest raises a request against an active workflow and derives
// its gating flags from the rules.
func NewRequest(workflow *Workflow, documentID uuid.UUID, baseNumber, requestedBy string, value decimal.Decimal, deliveryType document.DeliveryType, rules Rules) (*Request, error) {
	if workflow == nil || !workflow.Active {
		return nil, shared.ErrNoActiveWorkflow
	}
	if documentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Document ID is required")
	}
	if requestedBy == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Requester is required")
	}
	return &Request{
		BaseAggregateRoot:      shared.NewBaseAggregateRoot(),
		WorkflowID:             workflow.ID,
		DocumentID:             documentID,
		BaseNumber:             baseNumber,
		RequestedBy:            requestedBy,
		Value:                  value,
		DeliveryType:           deliveryType,
		RequiresSecondApproval: rules.RequiresSecondApproval(value, deliveryType),
		MandatoryApproval:      rules.MandatoryApproval(value, deliveryType),
		CanSelfApprove:         rules.CanSelfApprove(value, deliveryType),
		Status:                 StatusPending,
	}, nil
}

// Approve records one approval leg. A request flagged for second
// approval needs two distinct approvers; the requester can never
// approve their own mandatory request.
func (r *Request) Approve(by string) error {
	if by == "" {
		return shared.NewDomainError("INVALID_INPUT", "Approver is required")
	}
	if r.Status.IsResolved() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Request is already %s", r.Status))
	}
	if by == r.RequestedBy && !r.CanSelfApprove {
		return shared.ErrSelfApprovalForbidden
	}

	now := time.Now()
	switch r.Status {
	case StatusPending:
		if r.RequiresSecondApproval {
			r.Status = StatusRequiresSecondApproval
			r.FirstApprovedBy = by
			r.UpdatedAt = now
			return nil
		}
		r.Status = StatusApproved
	case StatusRequiresSecondApproval:
		if by == r.FirstApprovedBy {
			return shared.NewDomainError("INVALID_INPUT", "Second approval must come from a different approver")
		}
		r.Status = StatusApproved
	}
	r.ResolvedBy = by
	r.ResolvedAt = &now
	r.UpdatedAt = now
	return nil
}

// Reject resolves the request negatively with a reason. The
// self-approval guard applies to rejection too: resolution is
// resolution either way.
func (r *Request) Reject(by, reason string) error {
	if by == "" {
		return shared.NewDomainError("INVALID_INPUT", "Approver is required")
	}
	if r.Status.IsResolved() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Request is already %s", r.Status))
	}
	if by == r.RequestedBy && !r.CanSelfApprove {
		return shared.ErrSelfApprovalForbidden
	}
	now := time.Now()
	r.Status = StatusRejected
	r.ResolvedBy = by
	r.Reason = reason
	r.ResolvedAt = &now
	r.UpdatedAt = now
	return nil
}

// Repository is the persistence port for approval requests.
//
// Resolve commits the request together with the entity status change
// and the audit entry in one transaction, so an approved request never
// coexists with an unchanged document.
type Repository interface {
	shared.Repository[Request]
	FindByDocumentID(ctx context.Context, documentID uuid.UUID) ([]*Request, error)
	FindOpenByDocumentID(ctx context.Context, documentID uuid.UUID) (*Request, error)
	Resolve(ctx context.Context, req *Request, doc *document.Document, entry *audit.Entry) error
}
