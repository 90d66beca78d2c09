package approval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sfgnexus/backend/internal/domain/approval"
	"github.com/sfgnexus/backend/internal/domain/audit"
	"github.com/sfgnexus/backend/internal/domain/document"
	"github.com/sfgnexus/backend/internal/domain/shared"
)

const resolutionIdempotencyTTL = 24 * time.Hour

// Service coordinates approval requests and their resolution
type Service struct {
	approvalRepo approval.Repository
	workflowRepo approval.WorkflowRepository
	docRepo      document.Repository
	auditRepo    audit.Repository
	rules        approval.Rules
	idempotency  shared.IdempotencyStore
	notifier     shared.Notifier
}

// NewService creates a new approval Service
func NewService(approvalRepo approval.Repository, workflowRepo approval.WorkflowRepository, docRepo document.Repository, auditRepo audit.Repository, rules approval.Rules, idempotency shared.IdempotencyStore, notifier shared.Notifier) *Service {
	return &Service{
		approvalRepo: approvalRepo,
		workflowRepo: workflowRepo,
		docRepo:      docRepo,
		auditRepo:    auditRepo,
		rules:        rules,
		idempotency:  idempotency,
		notifier:     notifier,
	}
}

// Request raises an approval request for a quote against the active
// workflow. At most one open request per document.
func (s *Service) Request(ctx context.Context, req RequestApprovalRequest) (*RequestResponse, error) {
	doc, err := s.docRepo.FindByID(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc.Prefix != document.PrefixQuote {
		return nil, shared.NewDomainError("INVALID_STATE", "Only quotes can be submitted for approval")
	}
	if doc.Status != document.StatusActive {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot request approval of a %s quote", doc.Status))
	}

	open, err := s.approvalRepo.FindOpenByDocumentID(ctx, doc.ID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if open != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An open approval request already exists for this document")
	}

	workflow, err := s.workflowRepo.FindActiveByEntityType(ctx, approval.EntityQuote)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNoActiveWorkflow
		}
		return nil, err
	}

	request, err := approval.NewRequest(workflow, doc.ID, doc.BaseNumber, req.RequestedBy, doc.Value, doc.DeliveryType, s.rules)
	if err != nil {
		return nil, err
	}
	if err := s.approvalRepo.Save(ctx, request); err != nil {
		return nil, err
	}

	entry := audit.NewEntry(doc.ID, doc.BaseNumber, audit.ActionApprovalRequested, req.RequestedBy, map[string]any{
		"request_id":               request.ID,
		"requires_second_approval": request.RequiresSecondApproval,
		"mandatory_approval":       request.MandatoryApproval,
	})
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	response := ToRequestResponse(request)
	return &response, nil
}

// Resolve applies an approve or reject decision. The request, the
// entity status and the audit entry commit in one transaction: a final
// approval marks the quote won, a rejection marks it lost with the
// reason. A repeated delivery of the same decision is dropped by the
// idempotency key. The key is only consumed by a resolution that
// committed; a failed attempt hands it back so a retry can still apply
// the decision.
func (s *Service) Resolve(ctx context.Context, requestID uuid.UUID, req ResolveRequest) (*RequestResponse, error) {
	var key string
	if req.IdempotencyKey != "" && s.idempotency != nil {
		key = "approval:" + req.IdempotencyKey
		fresh, err := s.idempotency.MarkProcessed(ctx, key, resolutionIdempotencyTTL)
		if err != nil {
			return nil, err
		}
		if !fresh {
			request, err := s.approvalRepo.FindByID(ctx, requestID)
			if err != nil {
				return nil, err
			}
			response := ToRequestResponse(request)
			return &response, nil
		}
	}

	response, err := s.resolve(ctx, requestID, req)
	if err != nil && key != "" {
		// Best effort; a leaked key only costs the TTL
		_ = s.idempotency.Release(ctx, key)
	}
	return response, err
}

// resolve applies the decision and commits it
func (s *Service) resolve(ctx context.Context, requestID uuid.UUID, req ResolveRequest) (*RequestResponse, error) {
	request, err := s.approvalRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	doc, err := s.docRepo.FindByID(ctx, request.DocumentID)
	if err != nil {
		return nil, err
	}

	switch req.Decision {
	case "approve":
		if err := request.Approve(req.ResolvedBy); err != nil {
			return nil, err
		}
		if request.Status == approval.StatusApproved {
			if err := doc.MarkWon(); err != nil {
				return nil, err
			}
		}
	case "reject":
		if err := request.Reject(req.ResolvedBy, req.Reason); err != nil {
			return nil, err
		}
		if err := doc.MarkLost(req.Reason); err != nil {
			return nil, err
		}
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown decision %q", req.Decision))
	}

	entry := audit.NewEntry(doc.ID, doc.BaseNumber, audit.ActionApprovalResolved, req.ResolvedBy, map[string]any{
		"request_id": request.ID,
		"decision":   req.Decision,
		"status":     string(request.Status),
	})
	if err := s.approvalRepo.Resolve(ctx, request, doc, entry); err != nil {
		return nil, err
	}

	if s.notifier != nil && request.Status == approval.StatusRequiresSecondApproval {
		msg := fmt.Sprintf("Quote %s needs a second approval (first approved by %s)", doc.FullNumber, request.FirstApprovedBy)
		_ = s.notifier.Notify(ctx, "Second approval needed", msg)
	}

	response := ToRequestResponse(request)
	return &response, nil
}

// GetByID retrieves an approval request by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*RequestResponse, error) {
	request, err := s.approvalRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToRequestResponse(request)
	return &response, nil
}

// ListByDocument retrieves every approval request raised for a document
func (s *Service) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]RequestResponse, error) {
	requests, err := s.approvalRepo.FindByDocumentID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	responses := make([]RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, ToRequestResponse(request))
	}
	return responses, nil
}
