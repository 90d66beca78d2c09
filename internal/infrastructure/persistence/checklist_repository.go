package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sfgnexus/backend/internal/domain/shared"
	"github.com/sfgnexus/backend/internal/domain/validation"
)

// GormChecklistRepository implements validation.Repository using GORM
type GormChecklistRepository struct {
	db *gorm.DB
}

// NewGormChecklistRepository creates a new GormChecklistRepository
func NewGormChecklistRepository(db *gorm.DB) *GormChecklistRepository {
	return &GormChecklistRepository{db: db}
}

// FindByID finds a checklist by its ID
func (r *GormChecklistRepository) FindByID(ctx context.Context, id uuid.UUID) (*validation.Checklist, error) {
	var checklist validation.Checklist
	if err := r.db.WithContext(ctx).First(&checklist, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &checklist, nil
}

// FindAll finds checklists
func (r *GormChecklistRepository) FindAll(ctx context.Context, filter shared.Filter) ([]validation.Checklist, error) {
	var checklists []validation.Checklist
	query := r.db.WithContext(ctx).Model(&validation.Checklist{})
	if passed, ok := filter.Filters["validation_passed"]; ok {
		query = query.Where("validation_passed = ?", passed)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := query.Order("created_at DESC").Find(&checklists).Error; err != nil {
		return nil, err
	}
	return checklists, nil
}

// Save creates or updates a checklist with an optimistic version check
func (r *GormChecklistRepository) Save(ctx context.Context, checklist *validation.Checklist) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := checklist.Version
		checklist.Version++
		checklist.UpdatedAt = time.Now()

		result := tx.Model(&validation.Checklist{}).
			Where("id = ? AND version = ?", checklist.ID, currentVersion).
			Updates(map[string]interface{}{
				"delivery_type":       checklist.DeliveryType,
				"items":               checklist.Items,
				"all_checks_complete": checklist.AllChecksComplete,
				"validation_passed":   checklist.ValidationPassed,
				"version":             checklist.Version,
				"updated_at":          checklist.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			checklist.Version = currentVersion
			var count int64
			if err := tx.Model(&validation.Checklist{}).Where("id = ?", checklist.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return tx.Create(checklist).Error
			}
			return shared.ErrConcurrencyConflict
		}
		return nil
	})
}

// Count counts checklists
func (r *GormChecklistRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&validation.Checklist{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByDocumentID finds the checklist for a document
func (r *GormChecklistRepository) FindByDocumentID(ctx context.Context, documentID uuid.UUID) (*validation.Checklist, error) {
	var checklist validation.Checklist
	if err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		First(&checklist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &checklist, nil
}
