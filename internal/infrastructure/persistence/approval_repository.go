package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sfgnexus/backend/internal/domain/approval"
	"github.com/sfgnexus/backend/internal/domain/audit"
	"github.com/sfgnexus/backend/internal/domain/document"
	"github.com/sfgnexus/backend/internal/domain/shared"
)

var openStatuses = []approval.Status{approval.StatusPending, approval.StatusRequiresSecondApproval}

// GormApprovalRepository implements approval.Repository using GORM
type GormApprovalRepository struct {
	db *gorm.DB
}

// NewGormApprovalRepository creates a new GormApprovalRepository
func NewGormApprovalRepository(db *gorm.DB) *GormApprovalRepository {
	return &GormApprovalRepository{db: db}
}

// FindByID finds an approval request by its ID
func (r *GormApprovalRepository) FindByID(ctx context.Context, id uuid.UUID) (*approval.Request, error) {
	var req approval.Request
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// FindAll finds approval requests with filtering and pagination
func (r *GormApprovalRepository) FindAll(ctx context.Context, filter shared.Filter) ([]approval.Request, error) {
	var reqs []approval.Request
	query := r.db.WithContext(ctx).Model(&approval.Request{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := query.Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// Save creates or updates an approval request
func (r *GormApprovalRepository) Save(ctx context.Context, req *approval.Request) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// Count counts approval requests matching a filter
func (r *GormApprovalRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&approval.Request{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByDocumentID finds every request raised for a document
func (r *GormApprovalRepository) FindByDocumentID(ctx context.Context, documentID uuid.UUID) ([]*approval.Request, error) {
	var reqs []*approval.Request
	if err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// FindOpenByDocumentID finds the unresolved request for a document
func (r *GormApprovalRepository) FindOpenByDocumentID(ctx context.Context, documentID uuid.UUID) (*approval.Request, error) {
	var req approval.Request
	if err := r.db.WithContext(ctx).
		Where("document_id = ? AND status IN ?", documentID, openStatuses).
		Order("created_at DESC").
		First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// Resolve commits the resolved request, the mutated document and the
// audit entry in one transaction, with optimistic version checks on
// both aggregates.
func (r *GormApprovalRepository) Resolve(ctx context.Context, req *approval.Request, doc *document.Document, entry *audit.Entry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := req.Version
		req.Version++
		req.UpdatedAt = time.Now()

		result := tx.Model(&approval.Request{}).
			Where("id = ? AND version = ?", req.ID, currentVersion).
			Updates(map[string]interface{}{
				"status":            req.Status,
				"first_approved_by": req.FirstApprovedBy,
				"resolved_by":       req.ResolvedBy,
				"resolved_at":       req.ResolvedAt,
				"reason":            req.Reason,
				"version":           req.Version,
				"updated_at":        req.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			req.Version = currentVersion
			return shared.ErrConcurrencyConflict
		}

		docRepo := NewGormDocumentRepository(tx)
		if err := docRepo.saveWithLock(tx, doc); err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

// GormWorkflowRepository implements approval.WorkflowRepository using GORM
type GormWorkflowRepository struct {
	db *gorm.DB
}

// NewGormWorkflowRepository creates a new GormWorkflowRepository
func NewGormWorkflowRepository(db *gorm.DB) *GormWorkflowRepository {
	return &GormWorkflowRepository{db: db}
}

// FindByID finds a workflow by its ID
func (r *GormWorkflowRepository) FindByID(ctx context.Context, id uuid.UUID) (*approval.Workflow, error) {
	var workflow approval.Workflow
	if err := r.db.WithContext(ctx).First(&workflow, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &workflow, nil
}

// FindAll finds workflows
func (r *GormWorkflowRepository) FindAll(ctx context.Context, filter shared.Filter) ([]approval.Workflow, error) {
	var workflows []approval.Workflow
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&workflows).Error; err != nil {
		return nil, err
	}
	return workflows, nil
}

// Save creates or updates a workflow
func (r *GormWorkflowRepository) Save(ctx context.Context, workflow *approval.Workflow) error {
	return r.db.WithContext(ctx).Save(workflow).Error
}

// Count counts workflows
func (r *GormWorkflowRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&approval.Workflow{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindActiveByEntityType finds the active workflow for an entity type
func (r *GormWorkflowRepository) FindActiveByEntityType(ctx context.Context, entityType approval.EntityType) (*approval.Workflow, error) {
	var workflow approval.Workflow
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND active = ?", entityType, true).
		Order("created_at DESC").
		First(&workflow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &workflow, nil
}
