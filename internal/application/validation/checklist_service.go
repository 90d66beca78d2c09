package validation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sfgnexus/backend/internal/domain/audit"
	"github.com/sfgnexus/backend/internal/domain/document"
	"github.com/sfgnexus/backend/internal/domain/shared"
	"github.com/sfgnexus/backend/internal/domain/validation"
)

// RecordCheckRequest represents performing one checklist item. Valid
// carries the outcome; recording always marks the item as checked.
type RecordCheckRequest struct {
	Name  string `json:"name" binding:"required"`
	Valid bool   `json:"valid"`
	By    string `json:"by" binding:"required,min=1,max=100"`
	Note  string `json:"note"`
}

// ItemResponse represents one checklist item in API responses
type ItemResponse struct {
	Name    string     `json:"name"`
	Checked bool       `json:"checked"`
	Valid   bool       `json:"valid"`
	By      string     `json:"by,omitempty"`
	At      *time.Time `json:"at,omitempty"`
	Note    string     `json:"note,omitempty"`
}

// ChecklistResponse represents a checklist in API responses
type ChecklistResponse struct {
	ID                uuid.UUID      `json:"id"`
	DocumentID        uuid.UUID      `json:"document_id"`
	DeliveryType      string         `json:"delivery_type"`
	Items             []ItemResponse `json:"items"`
	AllChecksComplete bool           `json:"all_checks_complete"`
	ValidationPassed  bool           `json:"validation_passed"`
}

// ToChecklistResponse converts a domain checklist to a response DTO
func ToChecklistResponse(c *validation.Checklist) ChecklistResponse {
	items := make([]ItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, ItemResponse{
			Name:    item.Name,
			Checked: item.Checked,
			Valid:   item.Valid,
			By:      item.By,
			At:      item.At,
			Note:    item.Note,
		})
	}
	return ChecklistResponse{
		ID:                c.ID,
		DocumentID:        c.DocumentID,
		DeliveryType:      string(c.DeliveryType),
		Items:             items,
		AllChecksComplete: c.AllChecksComplete,
		ValidationPassed:  c.ValidationPassed,
	}
}

// Service handles the quote validation checklist
type Service struct {
	checklistRepo validation.Repository
	docRepo       document.Repository
	auditRepo     audit.Repository
}

// NewService creates a new checklist Service
func NewService(checklistRepo validation.Repository, docRepo document.Repository, auditRepo audit.Repository) *Service {
	return &Service{
		checklistRepo: checklistRepo,
		docRepo:       docRepo,
		auditRepo:     auditRepo,
	}
}

// RecordCheck records one performed item on a document's checklist,
// creating the checklist on first use. The completion audit entry is
// written only when this call moves the checklist from incomplete to
// complete.
func (s *Service) RecordCheck(ctx context.Context, documentID uuid.UUID, req RecordCheckRequest) (*ChecklistResponse, error) {
	doc, err := s.docRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Prefix != document.PrefixQuote {
		return nil, shared.NewDomainError("INVALID_STATE", "Validation checks apply to quotes only")
	}

	checklist, err := s.checklistRepo.FindByDocumentID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		checklist, err = validation.NewChecklist(documentID, doc.DeliveryType)
		if err != nil {
			return nil, err
		}
	}

	// Keep applicability in sync if the quote type changed since the
	// checklist was created
	checklist.ApplyDeliveryType(doc.DeliveryType)

	if err := checklist.RecordCheck(req.Name, req.Valid, req.By, req.Note); err != nil {
		return nil, err
	}
	completedNow := checklist.Recompute()

	if err := s.checklistRepo.Save(ctx, checklist); err != nil {
		return nil, err
	}

	if completedNow {
		entry := audit.NewEntry(doc.ID, doc.BaseNumber, audit.ActionValidationComplete, req.By, map[string]any{
			"checklist_id":      checklist.ID,
			"validation_passed": checklist.ValidationPassed,
		})
		if err := s.auditRepo.Append(ctx, entry); err != nil {
			return nil, err
		}
	}

	response := ToChecklistResponse(checklist)
	return &response, nil
}

// GetByDocumentID retrieves a document's checklist
func (s *Service) GetByDocumentID(ctx context.Context, documentID uuid.UUID) (*ChecklistResponse, error) {
	checklist, err := s.checklistRepo.FindByDocumentID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	response := ToChecklistResponse(checklist)
	return &response, nil
}
