package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/sfgnexus/backend/internal/domain/shared"
)

// Action names for the append-only audit trail
const (
	ActionDocumentCreated    = "DOCUMENT_CREATED"
	ActionFieldsUpdated      = "FIELDS_UPDATED"
	ActionStageConverted     = "STAGE_CONVERTED"
	ActionQuoteRevised       = "QUOTE_REVISED"
	ActionApprovalRequested  = "APPROVAL_REQUESTED"
	ActionApprovalResolved   = "APPROVAL_RESOLVED"
	ActionValidationComplete = "VALIDATION_COMPLETE"
	ActionCheckRecorded      = "CHECK_RECORDED"
)

// Entry is one immutable audit record. Entries are only ever appended,
// never updated or deleted.
type Entry struct {
	shared.BaseEntity
	DocumentID uuid.UUID      `gorm:"not null;index"`
	BaseNumber string         `gorm:"index"`
	Action     string         `gorm:"not null;index"`
	Actor      string         `gorm:"not null"`
	Detail     map[string]any `gorm:"serializer:json"`
}

// TableName returns the database table name
func (Entry) TableName() string {
	return "audit_entries"
}

// NewEntry creates an audit entry for the given document and action
func NewEntry(documentID uuid.UUID, baseNumber, action, actor string, detail map[string]any) *Entry {
	return &Entry{
		BaseEntity: shared.NewBaseEntity(),
		DocumentID: documentID,
		BaseNumber: baseNumber,
		Action:     action,
		Actor:      actor,
		Detail:     detail,
	}
}

// Repository is the append-only store for audit entries
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	FindByDocumentID(ctx context.Context, documentID uuid.UUID) ([]*Entry, error)
	FindByBaseNumber(ctx context.Context, baseNumber string) ([]*Entry, error)
}
