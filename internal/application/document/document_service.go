package document

import (
	"context"

	"github.com/google/uuid"

	"github.com/sfgnexus/backend/internal/domain/audit"
	"github.com/sfgnexus/backend/internal/domain/document"
	"github.com/sfgnexus/backend/internal/domain/shared"
)

// Service handles document registration and field maintenance
type Service struct {
	docRepo   document.Repository
	auditRepo audit.Repository
	allocator document.SequenceAllocator
	required  []string
}

// NewService creates a new document Service
func NewService(docRepo document.Repository, auditRepo audit.Repository, allocator document.SequenceAllocator, required []string) *Service {
	return &Service{
		docRepo:   docRepo,
		auditRepo: auditRepo,
		allocator: allocator,
		required:  required,
	}
}

// Create allocates a base number and registers a new enquiry. Intake
// data may be incomplete; completeness is recorded, not enforced, at
// this stage.
func (s *Service) Create(ctx context.Context, req CreateDocumentRequest) (*DocumentResponse, error) {
	alloc, err := s.allocator.Allocate(ctx, document.PrefixEnquiry)
	if err != nil {
		return nil, err
	}

	doc, err := document.NewDocument(alloc, req.Customer, req.Project, req.Location, req.ProductType,
		document.DeliveryType(req.DeliveryType), req.Value)
	if err != nil {
		return nil, err
	}

	if req.InitialCount != nil {
		entry := document.CountLogEntry{
			User:   req.RequestedBy,
			Source: "intake",
			Status: document.CountLogAgreed,
		}
		if err := doc.SetCounts(req.InitialCount, req.InitialCount, entry); err != nil {
			return nil, err
		}
	}
	doc.RefreshCompleteness(s.required)

	created := audit.NewEntry(doc.ID, doc.BaseNumber, audit.ActionDocumentCreated, req.RequestedBy, map[string]any{
		"full_number":  doc.FullNumber,
		"completeness": doc.Completeness,
	})
	if err := s.docRepo.SaveWithAudit(ctx, doc, created); err != nil {
		return nil, err
	}

	response := ToDocumentResponse(doc)
	return &response, nil
}

// UpdateFields applies a partial update to a document's gated fields
// and product counts, then re-derives completeness.
func (s *Service) UpdateFields(ctx context.Context, id uuid.UUID, req UpdateFieldsRequest) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := make([]string, 0, len(req.Fields))
	for name, value := range req.Fields {
		if err := doc.SetField(name, value); err != nil {
			return nil, err
		}
		changed = append(changed, name)
	}

	if req.InitialCount != nil || req.CurrentCount != nil {
		entry := document.CountLogEntry{
			User:   req.UpdatedBy,
			Source: "field_update",
			Note:   req.CountNote,
			Status: document.CountLogPricingNeeded,
		}
		if err := doc.SetCounts(req.InitialCount, req.CurrentCount, entry); err != nil {
			return nil, err
		}
	}
	doc.RefreshCompleteness(s.required)

	updated := audit.NewEntry(doc.ID, doc.BaseNumber, audit.ActionFieldsUpdated, req.UpdatedBy, map[string]any{
		"fields":       changed,
		"completeness": doc.Completeness,
	})
	if err := s.docRepo.SaveWithAudit(ctx, doc, updated); err != nil {
		return nil, err
	}

	response := ToDocumentResponse(doc)
	return &response, nil
}

// GetByID retrieves a document by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToDocumentResponse(doc)
	return &response, nil
}

// GetByFullNumber retrieves a document by its full number
func (s *Service) GetByFullNumber(ctx context.Context, fullNumber string) (*DocumentResponse, error) {
	if !document.ValidateFullNumber(fullNumber) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid full number format")
	}
	doc, err := s.docRepo.FindByFullNumber(ctx, fullNumber)
	if err != nil {
		return nil, err
	}
	response := ToDocumentResponse(doc)
	return &response, nil
}

// GetLineage retrieves every stage of a base number, oldest first
func (s *Service) GetLineage(ctx context.Context, baseNumber string) ([]DocumentResponse, error) {
	if !document.ValidateBaseNumber(baseNumber) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid base number format")
	}
	docs, err := s.docRepo.FindByBaseNumber(ctx, baseNumber)
	if err != nil {
		return nil, err
	}
	responses := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, ToDocumentResponse(doc))
	}
	return responses, nil
}

// List retrieves documents with filtering and pagination
func (s *Service) List(ctx context.Context, filter DocumentListFilter) ([]DocumentResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	if filter.Prefix != "" {
		domainFilter.Filters["prefix"] = filter.Prefix
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.BaseNumber != "" {
		domainFilter.Filters["base_number"] = filter.BaseNumber
	}

	docs, err := s.docRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.docRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]DocumentResponse, 0, len(docs))
	for i := range docs {
		responses = append(responses, ToDocumentResponse(&docs[i]))
	}
	return responses, total, nil
}

// GetCompleteness reports required-field completeness for a document
// without persisting anything.
func (s *Service) GetCompleteness(ctx context.Context, id uuid.UUID) (*CompletenessResponse, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	values := doc.FieldValues()
	validation := document.ValidateRequired(values, s.required)
	return &CompletenessResponse{
		DocumentID:    doc.ID,
		FullNumber:    doc.FullNumber,
		Valid:         validation.Valid,
		MissingFields: validation.MissingFields,
		Completeness:  document.Completeness(values, s.required),
	}, nil
}

// GetAuditTrail returns the audit entries for a document, oldest first
func (s *Service) GetAuditTrail(ctx context.Context, id uuid.UUID) ([]AuditEntryResponse, error) {
	if _, err := s.docRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	entries, err := s.auditRepo.FindByDocumentID(ctx, id)
	if err != nil {
		return nil, err
	}
	responses := make([]AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, ToAuditEntryResponse(entry))
	}
	return responses, nil
}
