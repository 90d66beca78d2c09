package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sfgnexus/backend/internal/domain/audit"
	"github.com/sfgnexus/backend/internal/domain/document"
)

// CreateDocumentRequest represents a request to register a new enquiry
type CreateDocumentRequest struct {
	Customer     string          `json:"customer"`
	Project      string          `json:"project"`
	Location     string          `json:"location"`
	ProductType  string          `json:"product_type"`
	DeliveryType string          `json:"delivery_type"`
	Value        decimal.Decimal `json:"value"`
	InitialCount *int            `json:"initial_count"`
	RequestedBy  string          `json:"requested_by" binding:"required,min=1,max=100"`
}

// UpdateFieldsRequest represents a partial update of a document's gated fields
type UpdateFieldsRequest struct {
	Fields       map[string]string `json:"fields"`
	InitialCount *int              `json:"initial_count"`
	CurrentCount *int              `json:"current_count"`
	CountNote    string            `json:"count_note"`
	UpdatedBy    string            `json:"updated_by" binding:"required,min=1,max=100"`
}

// TransitionRequest represents an attempt to progress a document
type TransitionRequest struct {
	To           string `json:"to" binding:"required"`
	Actor        string `json:"actor" binding:"required,min=1,max=100"`
	ProductCount *int   `json:"product_count"`
}

// DocumentListFilter represents filter options for document lists
type DocumentListFilter struct {
	Search     string `form:"search"`
	Prefix     string `form:"prefix"`
	Status     string `form:"status"`
	BaseNumber string `form:"base_number"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// DocumentResponse represents a document in API responses
type DocumentResponse struct {
	ID             uuid.UUID                `json:"id"`
	BaseNumber     string                   `json:"base_number"`
	Prefix         string                   `json:"prefix"`
	FullNumber     string                   `json:"full_number"`
	Customer       string                   `json:"customer"`
	Project        string                   `json:"project"`
	Location       string                   `json:"location"`
	ProductType    string                   `json:"product_type"`
	DeliveryType   string                   `json:"delivery_type"`
	Value          decimal.Decimal          `json:"value"`
	InitialCount   *int                     `json:"initial_count"`
	CurrentCount   *int                     `json:"current_count"`
	Revision       int                      `json:"revision"`
	RevisionCounts []document.RevisionCount `json:"revision_counts"`
	MissingFields  []string                 `json:"missing_fields"`
	Completeness   int                      `json:"data_completeness"`
	CanonicalPath  string                   `json:"canonical_path"`
	DeliveryNotes  string                   `json:"delivery_notes_status"`
	Status         string                   `json:"status"`
	Version        int                      `json:"version"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
	ConvertedAt    *time.Time               `json:"converted_at,omitempty"`
}

// CompletenessResponse reports required-field completeness for a document
type CompletenessResponse struct {
	DocumentID    uuid.UUID `json:"document_id"`
	FullNumber    string    `json:"full_number"`
	Valid         bool      `json:"valid"`
	MissingFields []string  `json:"missing_fields"`
	Completeness  int       `json:"data_completeness"`
}

// BlockedResult explains why a transition was refused. NonNegotiable
// flags blocks that no substitute data can clear, such as the missing
// product counts a binding conversion demands.
type BlockedResult struct {
	Code             string   `json:"code"`
	Message          string   `json:"message"`
	NonNegotiable    bool     `json:"non_negotiable"`
	MissingFields    []string `json:"missing_fields,omitempty"`
	IncompleteChecks []string `json:"incomplete_checks,omitempty"`
	FailedChecks     []string `json:"failed_checks,omitempty"`
}

// TransitionResult is the outcome of a transition attempt. Exactly one
// of Blocked or Successor is set for a progression; a quote revision
// sets neither and returns the revised document.
type TransitionResult struct {
	Allowed   bool              `json:"allowed"`
	Blocked   *BlockedResult    `json:"blocked,omitempty"`
	Document  *DocumentResponse `json:"document,omitempty"`
	Successor *DocumentResponse `json:"successor,omitempty"`
}

// ToDocumentResponse converts a domain document to a response DTO
func ToDocumentResponse(doc *document.Document) DocumentResponse {
	return DocumentResponse{
		ID:             doc.ID,
		BaseNumber:     doc.BaseNumber,
		Prefix:         doc.Prefix.String(),
		FullNumber:     doc.FullNumber,
		Customer:       doc.Customer,
		Project:        doc.Project,
		Location:       doc.Location,
		ProductType:    doc.ProductType,
		DeliveryType:   string(doc.DeliveryType),
		Value:          doc.Value,
		InitialCount:   doc.InitialCount,
		CurrentCount:   doc.CurrentCount,
		Revision:       doc.Revision,
		RevisionCounts: doc.RevisionCounts,
		MissingFields:  doc.MissingFields,
		Completeness:   doc.Completeness,
		CanonicalPath:  doc.CanonicalPath,
		DeliveryNotes:  string(doc.DeliveryReadiness()),
		Status:         string(doc.Status),
		Version:        doc.Version,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
		ConvertedAt:    doc.ConvertedAt,
	}
}

// AuditEntryResponse represents one audit trail record in API responses
type AuditEntryResponse struct {
	ID         uuid.UUID      `json:"id"`
	DocumentID uuid.UUID      `json:"document_id"`
	BaseNumber string         `json:"base_number"`
	Action     string         `json:"action"`
	Actor      string         `json:"actor"`
	Detail     map[string]any `json:"detail,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ToAuditEntryResponse converts a domain audit entry to a response DTO
func ToAuditEntryResponse(entry *audit.Entry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:         entry.ID,
		DocumentID: entry.DocumentID,
		BaseNumber: entry.BaseNumber,
		Action:     entry.Action,
		Actor:      entry.Actor,
		Detail:     entry.Detail,
		CreatedAt:  entry.CreatedAt,
	}
}
