package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sfgnexus/backend/internal/domain/audit"
)

// GormAuditRepository implements audit.Repository using GORM.
// Entries are append-only; there is no update or delete path.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append inserts an audit entry
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByDocumentID finds entries for a document, oldest first
func (r *GormAuditRepository) FindByDocumentID(ctx context.Context, documentID uuid.UUID) ([]*audit.Entry, error) {
	var entries []*audit.Entry
	if err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByBaseNumber finds entries across a whole lineage, oldest first
func (r *GormAuditRepository) FindByBaseNumber(ctx context.Context, baseNumber string) ([]*audit.Entry, error) {
	var entries []*audit.Entry
	if err := r.db.WithContext(ctx).
		Where("base_number = ?", baseNumber).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
