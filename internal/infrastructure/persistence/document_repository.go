package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sfgnexus/backend/internal/domain/audit"
	"github.com/sfgnexus/backend/internal/domain/document"
	"github.com/sfgnexus/backend/internal/domain/shared"
)

// GormDocumentRepository implements document.Repository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a document by its ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	var doc document.Document
	if err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// FindByFullNumber finds a document by its full number
func (r *GormDocumentRepository) FindByFullNumber(ctx context.Context, fullNumber string) (*document.Document, error) {
	var doc document.Document
	if err := r.db.WithContext(ctx).
		Where("full_number = ?", fullNumber).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// FindByBaseNumber finds every stage of a lineage, oldest first
func (r *GormDocumentRepository) FindByBaseNumber(ctx context.Context, baseNumber string) ([]*document.Document, error) {
	var docs []*document.Document
	if err := r.db.WithContext(ctx).
		Where("base_number = ?", baseNumber).
		Order("created_at ASC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// FindAll finds documents with filtering and pagination
func (r *GormDocumentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]document.Document, error) {
	var docs []document.Document
	query := r.applyFilter(r.db.WithContext(ctx).Model(&document.Document{}), filter)
	if err := query.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Count counts documents matching a filter
func (r *GormDocumentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&document.Document{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a document
func (r *GormDocumentRepository) Save(ctx context.Context, doc *document.Document) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

// SaveWithAudit saves a document and appends the audit entry in one
// transaction, with an optimistic version check on the document.
func (r *GormDocumentRepository) SaveWithAudit(ctx context.Context, doc *document.Document, entry *audit.Entry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.saveWithLock(tx, doc); err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

// CommitConversion inserts the successor, saves the converted
// predecessor and appends the audit entry atomically. A duplicate full
// number on the successor insert means a concurrent conversion won.
func (r *GormDocumentRepository) CommitConversion(ctx context.Context, predecessor, successor *document.Document, entry *audit.Entry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(successor).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.NewDomainError("ALREADY_EXISTS", "Document was already converted to this stage")
			}
			return err
		}
		if err := r.saveWithLock(tx, predecessor); err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

// ExistsByFullNumber checks whether a stage already exists
func (r *GormDocumentRepository) ExistsByFullNumber(ctx context.Context, fullNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&document.Document{}).
		Where("full_number = ?", fullNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// saveWithLock updates a document with an optimistic version check so
// a concurrent mutation surfaces instead of silently losing writes.
func (r *GormDocumentRepository) saveWithLock(tx *gorm.DB, doc *document.Document) error {
	currentVersion := doc.Version
	doc.Version++
	doc.UpdatedAt = time.Now()

	result := tx.Model(&document.Document{}).
		Where("id = ? AND version = ?", doc.ID, currentVersion).
		Updates(map[string]interface{}{
			"customer":          doc.Customer,
			"project":           doc.Project,
			"location":          doc.Location,
			"product_type":      doc.ProductType,
			"delivery_type":     doc.DeliveryType,
			"value":             doc.Value,
			"initial_count":     doc.InitialCount,
			"current_count":     doc.CurrentCount,
			"prepared_count":    doc.PreparedCount,
			"delivered_count":   doc.DeliveredCount,
			"collected_count":   doc.CollectedCount,
			"revision":          doc.Revision,
			"revision_counts":   doc.RevisionCounts,
			"count_log":         doc.CountLog,
			"missing_fields":    doc.MissingFields,
			"data_completeness": doc.Completeness,
			"canonical_path":    doc.CanonicalPath,
			"month_shortcut":    doc.MonthShortcut,
			"status":            doc.Status,
			"converted_at":      doc.ConvertedAt,
			"lost_reason":       doc.LostReason,
			"version":           doc.Version,
			"updated_at":        doc.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		doc.Version = currentVersion
		// First save of a fresh document inserts instead
		var count int64
		if err := tx.Model(&document.Document{}).Where("id = ?", doc.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return tx.Create(doc).Error
		}
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// applyFilter applies filter options including pagination
func (r *GormDocumentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, DocumentSortFields, "created_at")
		dir := ValidateSortOrder(filter.OrderDir)
		query = query.Order(field + " " + dir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormDocumentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("full_number ILIKE ? OR customer ILIKE ? OR project ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "prefix":
			query = query.Where("prefix = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "base_number":
			query = query.Where("base_number = ?", value)
		case "delivery_type":
			query = query.Where("delivery_type = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	return query
}
